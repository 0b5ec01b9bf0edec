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

package accesscontrol

import (
	"net/http"
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

func TestHasAccess(t *testing.T) {
	team := models.Team{Name: "platform"}
	team.ID = 1
	team.UUID = uuid.New()
	otherTeam := models.Team{Name: "billing"}
	otherTeam.ID = 2
	otherTeam.UUID = uuid.New()

	t.Run("should allow everything when access control is disabled", func(t *testing.T) {
		principal := mocks.NewPrincipal(t)
		e := NewEvaluator(false, mocks.NewTeamRepository(t))

		assert.True(t, e.HasAccess(principal, &models.Project{AccessTeams: []models.Team{team}}))
	})

	t.Run("should allow principals with the access management permission", func(t *testing.T) {
		principal := mocks.NewPrincipal(t)
		principal.On("HasPermission", shared.PermissionAccessManagement).Return(true)

		e := NewEvaluator(true, mocks.NewTeamRepository(t))

		assert.True(t, e.HasAccess(principal, &models.Project{AccessTeams: []models.Team{team}}))
	})

	t.Run("should keep projects without acl entries visible to everyone", func(t *testing.T) {
		principal := mocks.NewPrincipal(t)
		principal.On("HasPermission", shared.PermissionAccessManagement).Return(false)

		e := NewEvaluator(true, mocks.NewTeamRepository(t))

		assert.True(t, e.HasAccess(principal, &models.Project{}))
	})

	t.Run("should require a team intersection otherwise", func(t *testing.T) {
		principal := mocks.NewPrincipal(t)
		principal.On("HasPermission", shared.PermissionAccessManagement).Return(false)
		principal.On("GetTeams").Return([]models.Team{otherTeam})

		e := NewEvaluator(true, mocks.NewTeamRepository(t))

		project := &models.Project{AccessTeams: []models.Team{team}}
		assert.False(t, e.HasAccess(principal, project))

		project.AccessTeams = append(project.AccessTeams, otherTeam)
		assert.True(t, e.HasAccess(principal, project))
	})
}

func TestResolveChosenTeams(t *testing.T) {
	team := models.Team{Name: "platform"}
	team.ID = 1
	team.UUID = uuid.New()
	otherTeam := models.Team{Name: "billing"}
	otherTeam.ID = 2
	otherTeam.UUID = uuid.New()

	t.Run("should resolve nothing to an empty acl", func(t *testing.T) {
		principal := mocks.NewPrincipal(t)
		e := NewEvaluator(true, mocks.NewTeamRepository(t))

		teams, err := e.ResolveChosenTeams(nil, principal, nil)
		assert.NoError(t, err)
		assert.Empty(t, teams)
	})

	t.Run("should reject a reference without uuid and name", func(t *testing.T) {
		principal := mocks.NewPrincipal(t)
		principal.On("HasPermission", shared.PermissionAccessManagement).Return(false)
		principal.On("GetTeams").Return([]models.Team{team})

		e := NewEvaluator(true, mocks.NewTeamRepository(t))

		_, err := e.ResolveChosenTeams(nil, principal, []dtos.TeamRef{{}})
		assert.Equal(t, http.StatusBadRequest, err.(*echo.HTTPError).Code)
	})

	t.Run("should reject teams outside the principal's membership", func(t *testing.T) {
		principal := mocks.NewPrincipal(t)
		principal.On("HasPermission", shared.PermissionAccessManagement).Return(false)
		principal.On("GetTeams").Return([]models.Team{team})

		e := NewEvaluator(true, mocks.NewTeamRepository(t))

		_, err := e.ResolveChosenTeams(nil, principal, []dtos.TeamRef{{UUID: utils.Ptr(otherTeam.UUID)}})
		assert.Equal(t, http.StatusBadRequest, err.(*echo.HTTPError).Code)
	})

	t.Run("should resolve by name within the principal's teams", func(t *testing.T) {
		teamRepository := mocks.NewTeamRepository(t)
		teamRepository.On("ListByIDs", mock.Anything, []uint{1}).Return([]models.Team{team}, nil)

		principal := mocks.NewPrincipal(t)
		principal.On("HasPermission", shared.PermissionAccessManagement).Return(false)
		principal.On("GetTeams").Return([]models.Team{team})

		e := NewEvaluator(true, teamRepository)

		teams, err := e.ResolveChosenTeams(nil, principal, []dtos.TeamRef{{Name: utils.Ptr("platform")}})
		assert.NoError(t, err)
		assert.Len(t, teams, 1)
		assert.Equal(t, "platform", teams[0].Name)
	})

	t.Run("should let access managers pick any team", func(t *testing.T) {
		teamRepository := mocks.NewTeamRepository(t)
		teamRepository.On("All").Return([]models.Team{team, otherTeam}, nil)
		teamRepository.On("ListByIDs", mock.Anything, []uint{2}).Return([]models.Team{otherTeam}, nil)

		principal := mocks.NewPrincipal(t)
		principal.On("HasPermission", shared.PermissionAccessManagement).Return(true)

		e := NewEvaluator(true, teamRepository)

		teams, err := e.ResolveChosenTeams(nil, principal, []dtos.TeamRef{{UUID: utils.Ptr(otherTeam.UUID)}})
		assert.NoError(t, err)
		assert.Len(t, teams, 1)
		assert.Equal(t, "billing", teams[0].Name)
	})

	t.Run("should deduplicate references to the same team", func(t *testing.T) {
		teamRepository := mocks.NewTeamRepository(t)
		teamRepository.On("ListByIDs", mock.Anything, []uint{1}).Return([]models.Team{team}, nil)

		principal := mocks.NewPrincipal(t)
		principal.On("HasPermission", shared.PermissionAccessManagement).Return(false)
		principal.On("GetTeams").Return([]models.Team{team})

		e := NewEvaluator(true, teamRepository)

		teams, err := e.ResolveChosenTeams(nil, principal, []dtos.TeamRef{
			{UUID: utils.Ptr(team.UUID)},
			{Name: utils.Ptr("platform")},
		})
		assert.NoError(t, err)
		assert.Len(t, teams, 1)
	})
}
