// Copyright (C) 2025 depsec GmbH
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package commands

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/depsec-io/depsec/accesscontrol"
	"github.com/depsec-io/depsec/controllers"
	"github.com/depsec-io/depsec/daemons"
	"github.com/depsec-io/depsec/database"
	"github.com/depsec-io/depsec/database/repositories"
	"github.com/depsec-io/depsec/middlewares"
	"github.com/depsec-io/depsec/pubsub"
	"github.com/depsec-io/depsec/router"
	"github.com/depsec-io/depsec/services"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"
)

func NewServeCommand() *cobra.Command {
	serve := cobra.Command{
		Use:   "serve",
		Short: "Run the api server and the clone worker",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			pool := database.NewPgxConnPool(database.GetPoolConfigFromEnv())
			db := database.NewGormDB(pool)

			if err := database.RunMigrationsWithDB(db); err != nil {
				return err
			}

			broker, err := pubsub.BrokerFactory()
			if err != nil {
				return err
			}
			// the clone worker runs in this very process
			broker.SetShouldReceiveOwnMessages(true)
			defer broker.Close() // nolint: errcheck

			projectRepository := repositories.NewProjectRepository(db)
			teamRepository := repositories.NewTeamRepository(db)
			cloneStateRepository := repositories.NewCloneStateRepository(db)

			evaluator := accesscontrol.NewEvaluator(viper.GetBool("portfolio_access_control"), teamRepository)
			projectService := services.NewProjectService(projectRepository, teamRepository, evaluator)
			cloneService := services.NewCloneService(projectRepository, cloneStateRepository, evaluator, broker)

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			worker := daemons.NewCloneWorker(broker, projectRepository, cloneStateRepository)
			if err := worker.Start(ctx); err != nil {
				return err
			}

			e := middlewares.Server()
			apiV1 := router.NewAPIV1Router(e, middlewares.NewHeaderPrincipalResolver(db))
			router.NewProjectRouter(apiV1, controllers.NewProjectController(projectService, cloneService))

			g, ctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				port := viper.GetString("port")
				slog.Info("starting api server", "port", port)
				if err := e.Start(":" + port); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			})
			g.Go(func() error {
				<-ctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				return e.Shutdown(shutdownCtx)
			})

			return g.Wait()
		},
	}

	return &serve
}
