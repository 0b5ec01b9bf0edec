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
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/depsec-io/depsec/database/models"
	"github.com/depsec-io/depsec/dtos"
	"github.com/depsec-io/depsec/mocks"
	"github.com/depsec-io/depsec/shared"
	"github.com/depsec-io/depsec/utils"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newTestContext(t *testing.T, method, body string) (shared.Context, *httptest.ResponseRecorder, *mocks.Principal) {
	t.Helper()
	req := httptest.NewRequest(method, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

	rec := httptest.NewRecorder()
	e := echo.New()
	ctx := e.NewContext(req, rec)

	principal := mocks.NewPrincipal(t)
	shared.SetPrincipal(ctx, principal)
	return ctx, rec, principal
}

func TestControllerCreate(t *testing.T) {
	t.Run("should reject a body without a name", func(t *testing.T) {
		ctx, _, _ := newTestContext(t, http.MethodPut, `{"version": "1.0.0"}`)

		c := NewProjectController(mocks.NewProjectService(t), mocks.NewCloneService(t))

		err := c.Create(ctx)
		assert.Equal(t, http.StatusBadRequest, err.(*echo.HTTPError).Code)
	})

	t.Run("should reject an unknown classifier", func(t *testing.T) {
		ctx, _, _ := newTestContext(t, http.MethodPut, `{"name": "backend", "classifier": "SPACESHIP"}`)

		c := NewProjectController(mocks.NewProjectService(t), mocks.NewCloneService(t))

		err := c.Create(ctx)
		assert.Equal(t, http.StatusBadRequest, err.(*echo.HTTPError).Code)
	})

	t.Run("should answer with 201 and the created project", func(t *testing.T) {
		ctx, rec, principal := newTestContext(t, http.MethodPut, `{"name": "backend", "version": "1.0.0"}`)

		created := models.Project{Name: "backend", Version: utils.Ptr("1.0.0"), IsActive: true}
		created.UUID = uuid.New()

		projectService := mocks.NewProjectService(t)
		projectService.On("CreateProject", principal, mock.MatchedBy(func(req dtos.ProjectCreateRequest) bool {
			return req.Name == "backend"
		})).Return(created, nil)

		c := NewProjectController(projectService, mocks.NewCloneService(t))

		assert.NoError(t, c.Create(ctx))
		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Contains(t, rec.Body.String(), created.UUID.String())
	})
}

func TestControllerPatch(t *testing.T) {
	t.Run("should answer with 304 when nothing changed", func(t *testing.T) {
		ctx, rec, principal := newTestContext(t, http.MethodPatch, `{"description": "unchanged"}`)
		projectUUID := uuid.New()
		ctx.SetParamNames("projectUUID")
		ctx.SetParamValues(projectUUID.String())

		projectService := mocks.NewProjectService(t)
		projectService.On("PatchProject", principal, projectUUID, mock.Anything).Return(models.Project{}, false, nil)

		c := NewProjectController(projectService, mocks.NewCloneService(t))

		assert.NoError(t, c.Patch(ctx))
		assert.Equal(t, http.StatusNotModified, rec.Code)
	})

	t.Run("should reject a malformed project uuid", func(t *testing.T) {
		ctx, _, _ := newTestContext(t, http.MethodPatch, `{}`)
		ctx.SetParamNames("projectUUID")
		ctx.SetParamValues("not-a-uuid")

		c := NewProjectController(mocks.NewProjectService(t), mocks.NewCloneService(t))

		err := c.Patch(ctx)
		assert.Equal(t, http.StatusBadRequest, err.(*echo.HTTPError).Code)
	})
}

func TestControllerClone(t *testing.T) {
	t.Run("should answer with 202 and the tracking token", func(t *testing.T) {
		source := uuid.New()
		ctx, rec, principal := newTestContext(t, http.MethodPut, `{"project": "`+source.String()+`", "version": "2.0.0"}`)

		token := uuid.New()
		cloneService := mocks.NewCloneService(t)
		cloneService.On("InitiateClone", principal, mock.MatchedBy(func(req dtos.CloneProjectRequest) bool {
			return req.Project == source && req.Version == "2.0.0"
		})).Return(token, nil)

		c := NewProjectController(mocks.NewProjectService(t), cloneService)

		assert.NoError(t, c.Clone(ctx))
		assert.Equal(t, http.StatusAccepted, rec.Code)
		assert.Contains(t, rec.Body.String(), token.String())
	})

	t.Run("should reject a clone request without a version", func(t *testing.T) {
		ctx, _, _ := newTestContext(t, http.MethodPut, `{"project": "`+uuid.NewString()+`"}`)

		c := NewProjectController(mocks.NewProjectService(t), mocks.NewCloneService(t))

		err := c.Clone(ctx)
		assert.Equal(t, http.StatusBadRequest, err.(*echo.HTTPError).Code)
	})
}

func TestControllerCloneStatus(t *testing.T) {
	t.Run("should reject a malformed token", func(t *testing.T) {
		ctx, _, _ := newTestContext(t, http.MethodGet, "")
		ctx.SetParamNames("token")
		ctx.SetParamValues("garbage")

		c := NewProjectController(mocks.NewProjectService(t), mocks.NewCloneService(t))

		err := c.CloneStatus(ctx)
		assert.Equal(t, http.StatusBadRequest, err.(*echo.HTTPError).Code)
	})

	t.Run("should return the clone state", func(t *testing.T) {
		ctx, rec, _ := newTestContext(t, http.MethodGet, "")
		token := uuid.New()
		ctx.SetParamNames("token")
		ctx.SetParamValues(token.String())

		cloneService := mocks.NewCloneService(t)
		cloneService.On("GetCloneStatus", token).Return(models.CloneState{Token: token, Status: models.CloneStatusComplete}, nil)

		c := NewProjectController(mocks.NewProjectService(t), cloneService)

		assert.NoError(t, c.CloneStatus(ctx))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), string(models.CloneStatusComplete))
	})
}

func TestControllerList(t *testing.T) {
	t.Run("should pass paging and name filter through", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/?name=backend&page=2&pageSize=5", nil)
		rec := httptest.NewRecorder()
		e := echo.New()
		ctx := e.NewContext(req, rec)
		principal := mocks.NewPrincipal(t)
		shared.SetPrincipal(ctx, principal)

		pageInfo := shared.PageInfo{Page: 2, PageSize: 5}
		projectService := mocks.NewProjectService(t)
		projectService.On("GetProjects", principal, pageInfo, utils.Ptr("backend")).
			Return(shared.NewPaged(pageInfo, 11, []models.Project{{Name: "backend", Version: utils.Ptr("1.0.0")}}), nil)

		c := NewProjectController(projectService, mocks.NewCloneService(t))

		assert.NoError(t, c.List(ctx))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "backend")
		assert.Contains(t, rec.Body.String(), `"total":11`)
	})
}

func TestControllerLookup(t *testing.T) {
	t.Run("should require the name query parameter", func(t *testing.T) {
		ctx, _, _ := newTestContext(t, http.MethodGet, "")

		c := NewProjectController(mocks.NewProjectService(t), mocks.NewCloneService(t))

		err := c.Lookup(ctx)
		assert.Equal(t, http.StatusBadRequest, err.(*echo.HTTPError).Code)
	})

	t.Run("should pass name and version through", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/?name=backend&version=1.0.0", nil)
		rec := httptest.NewRecorder()
		e := echo.New()
		ctx := e.NewContext(req, rec)
		principal := mocks.NewPrincipal(t)
		shared.SetPrincipal(ctx, principal)

		projectService := mocks.NewProjectService(t)
		projectService.On("LookupProject", principal, "backend", utils.Ptr("1.0.0")).Return(models.Project{Name: "backend"}, nil)

		c := NewProjectController(projectService, mocks.NewCloneService(t))

		assert.NoError(t, c.Lookup(ctx))
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
