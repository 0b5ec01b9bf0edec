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
	"github.com/depsec-io/depsec/controllers"
	"github.com/depsec-io/depsec/middlewares"
	"github.com/depsec-io/depsec/shared"
	"github.com/labstack/echo/v4"
)

type ProjectRouter struct {
	*echo.Group
}

func NewProjectRouter(apiV1Router APIV1Router, projectController *controllers.ProjectController) ProjectRouter {
	viewRequired := middlewares.RequirePermission(shared.PermissionViewPortfolio)
	manageRequired := middlewares.RequirePermission(shared.PermissionPortfolioManagement)

	projectRouter := apiV1Router.Group.Group("/project")

	projectRouter.GET("/", projectController.List, viewRequired)
	projectRouter.GET("/lookup/", projectController.Lookup, viewRequired)
	projectRouter.GET("/latest/:name/", projectController.Latest, viewRequired)
	projectRouter.GET("/clone/:token/", projectController.CloneStatus, viewRequired)
	projectRouter.GET("/:projectUUID/", projectController.Read, viewRequired)
	projectRouter.GET("/:projectUUID/children/", projectController.Children, viewRequired)

	projectRouter.PUT("/", projectController.Create, manageRequired)
	projectRouter.POST("/", projectController.Update, manageRequired)
	projectRouter.PATCH("/:projectUUID/", projectController.Patch, manageRequired)
	projectRouter.DELETE("/:projectUUID/", projectController.Delete, manageRequired)
	projectRouter.PUT("/clone/", projectController.Clone, manageRequired)

	return ProjectRouter{Group: projectRouter}
}
