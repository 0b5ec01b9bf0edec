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

package controllers

import (
	"fmt"
	"net/http"

	"github.com/depsec-io/depsec/dtos"
	"github.com/depsec-io/depsec/shared"
	"github.com/depsec-io/depsec/transformer"
	"github.com/depsec-io/depsec/utils"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type ProjectController struct {
	projectService shared.ProjectService
	cloneService   shared.CloneService
}

func NewProjectController(projectService shared.ProjectService, cloneService shared.CloneService) *ProjectController {
	return &ProjectController{
		projectService: projectService,
		cloneService:   cloneService,
	}
}

// @Summary Create project
// @Security ApiKeyAuth
// @Param body body dtos.ProjectCreateRequest true "Request body"
// @Success 201 {object} dtos.ProjectDTO
// @Router /project [put]
func (c *ProjectController) Create(ctx shared.Context) error {
	var req dtos.ProjectCreateRequest
	if err := ctx.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unable to process request").WithInternal(err)
	}
	if err := shared.V.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("could not validate request: %s", err.Error()))
	}

	project, err := c.projectService.CreateProject(shared.GetPrincipal(ctx), req)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusCreated, transformer.ProjectModelToDTO(project))
}

// @Summary Update project
// @Security ApiKeyAuth
// @Param body body dtos.ProjectUpdateRequest true "Request body"
// @Success 200 {object} dtos.ProjectDTO
// @Router /project [post]
func (c *ProjectController) Update(ctx shared.Context) error {
	var req dtos.ProjectUpdateRequest
	if err := ctx.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unable to process request").WithInternal(err)
	}
	if err := shared.V.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("could not validate request: %s", err.Error()))
	}

	project, err := c.projectService.UpdateProject(shared.GetPrincipal(ctx), req)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, transformer.ProjectModelToDTO(project))
}

// @Summary Patch project
// @Security ApiKeyAuth
// @Param projectUUID path string true "Project UUID"
// @Param body body dtos.ProjectPatchRequest true "Request body"
// @Success 200 {object} dtos.ProjectDTO
// @Router /project/{projectUUID} [patch]
func (c *ProjectController) Patch(ctx shared.Context) error {
	projectUUID, err := shared.GetProjectUUID(ctx)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid project uuid").WithInternal(err)
	}

	var req dtos.ProjectPatchRequest
	if err := ctx.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unable to process request").WithInternal(err)
	}
	if err := shared.V.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("could not validate request: %s", err.Error()))
	}

	project, modified, err := c.projectService.PatchProject(shared.GetPrincipal(ctx), projectUUID, req)
	if err != nil {
		return err
	}
	if !modified {
		return ctx.NoContent(http.StatusNotModified)
	}

	return ctx.JSON(http.StatusOK, transformer.ProjectModelToDTO(project))
}

// @Summary Delete project
// @Security ApiKeyAuth
// @Param projectUUID path string true "Project UUID"
// @Success 204
// @Router /project/{projectUUID} [delete]
func (c *ProjectController) Delete(ctx shared.Context) error {
	projectUUID, err := shared.GetProjectUUID(ctx)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid project uuid").WithInternal(err)
	}

	if err := c.projectService.DeleteProject(shared.GetPrincipal(ctx), projectUUID); err != nil {
		return err
	}

	return ctx.NoContent(http.StatusNoContent)
}

// @Summary Clone project
// @Security ApiKeyAuth
// @Param body body dtos.CloneProjectRequest true "Request body"
// @Success 202 {object} dtos.CloneResponse
// @Router /project/clone [put]
func (c *ProjectController) Clone(ctx shared.Context) error {
	var req dtos.CloneProjectRequest
	if err := ctx.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unable to process request").WithInternal(err)
	}
	if err := shared.V.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("could not validate request: %s", err.Error()))
	}

	token, err := c.cloneService.InitiateClone(shared.GetPrincipal(ctx), req)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusAccepted, dtos.CloneResponse{Token: token})
}

// @Summary Get clone status
// @Security ApiKeyAuth
// @Param token path string true "Clone token"
// @Success 200 {object} dtos.CloneStatusDTO
// @Router /project/clone/{token} [get]
func (c *ProjectController) CloneStatus(ctx shared.Context) error {
	token, err := uuid.Parse(ctx.Param("token"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid clone token").WithInternal(err)
	}

	state, err := c.cloneService.GetCloneStatus(token)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, transformer.CloneStateModelToDTO(state))
}

// @Summary List projects
// @Security ApiKeyAuth
// @Param name query string false "Filter by project name"
// @Param page query int false "Page"
// @Param pageSize query int false "Page size"
// @Success 200 {object} shared.Paged[dtos.ProjectDTO]
// @Router /project [get]
func (c *ProjectController) List(ctx shared.Context) error {
	pageInfo := shared.GetPageInfo(ctx)
	name := utils.EmptyThenNil(ctx.QueryParam("name"))

	page, err := c.projectService.GetProjects(shared.GetPrincipal(ctx), pageInfo, name)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, shared.NewPaged(page.PageInfo, page.Total, utils.Map(page.Data, transformer.ProjectModelToDTO)))
}

// @Summary Get project
// @Security ApiKeyAuth
// @Param projectUUID path string true "Project UUID"
// @Success 200 {object} dtos.ProjectDTO
// @Router /project/{projectUUID} [get]
func (c *ProjectController) Read(ctx shared.Context) error {
	projectUUID, err := shared.GetProjectUUID(ctx)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid project uuid").WithInternal(err)
	}

	project, err := c.projectService.GetProject(shared.GetPrincipal(ctx), projectUUID)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, transformer.ProjectModelToDTO(project))
}

// @Summary Lookup project by name and version
// @Security ApiKeyAuth
// @Param name query string true "Project name"
// @Param version query string false "Project version"
// @Success 200 {object} dtos.ProjectDTO
// @Router /project/lookup [get]
func (c *ProjectController) Lookup(ctx shared.Context) error {
	name := ctx.QueryParam("name")
	if name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "query parameter name is required")
	}
	version := utils.EmptyThenNil(ctx.QueryParam("version"))

	project, err := c.projectService.LookupProject(shared.GetPrincipal(ctx), name, version)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, transformer.ProjectModelToDTO(project))
}

// @Summary Get latest project version by name
// @Security ApiKeyAuth
// @Param name path string true "Project name"
// @Success 200 {object} dtos.ProjectDTO
// @Router /project/latest/{name} [get]
func (c *ProjectController) Latest(ctx shared.Context) error {
	name := ctx.Param("name")
	if name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "path parameter name is required")
	}

	project, err := c.projectService.GetLatestProject(shared.GetPrincipal(ctx), name)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, transformer.ProjectModelToDTO(project))
}

// @Summary List direct children of a project
// @Security ApiKeyAuth
// @Param projectUUID path string true "Project UUID"
// @Success 200 {array} dtos.ProjectDTO
// @Router /project/{projectUUID}/children [get]
func (c *ProjectController) Children(ctx shared.Context) error {
	projectUUID, err := shared.GetProjectUUID(ctx)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid project uuid").WithInternal(err)
	}

	children, err := c.projectService.GetChildren(shared.GetPrincipal(ctx), projectUUID)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, utils.Map(children, transformer.ProjectModelToDTO))
}
