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

package router

import (
	"net/http"

	"github.com/depsec-io/depsec/middlewares"
	"github.com/labstack/echo/v4"
)

type APIV1Router struct {
	*echo.Group
}

func NewAPIV1Router(e *echo.Echo, resolver middlewares.PrincipalResolver) APIV1Router {
	apiV1Router := e.Group("/api/v1")

	apiV1Router.GET("/health/", func(ctx echo.Context) error {
		return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	apiV1Router.Use(middlewares.SessionMiddleware(resolver))

	return APIV1Router{Group: apiV1Router}
}
