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
	"log/slog"
	"os"

	"github.com/depsec-io/depsec/database"
	"github.com/depsec-io/depsec/shared"
	"github.com/spf13/cobra"
)

func NewMigrateCommand() *cobra.Command {
	migrate := cobra.Command{
		Use:   "migrate",
		Short: "Run pending database migrations",
		Args:  cobra.ExactArgs(0),
		Run: func(cmd *cobra.Command, args []string) {
			db, err := shared.DatabaseFactory()
			if err != nil {
				slog.Error("could not connect to database", "err", err)
				os.Exit(1)
			}

			if err := database.RunMigrationsWithDB(db); err != nil {
				slog.Error("could not run migrations", "err", err)
				os.Exit(1)
			}

			version, dirty, err := database.GetMigrationVersionWithDB(db)
			if err != nil {
				slog.Error("could not read migration version", "err", err)
				os.Exit(1)
			}
			slog.Info("database schema up to date", "version", version, "dirty", dirty)
		},
	}

	return &migrate
}
