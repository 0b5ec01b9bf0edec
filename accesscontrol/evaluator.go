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

	"github.com/depsec-io/depsec/database/models"
	"github.com/depsec-io/depsec/dtos"
	"github.com/depsec-io/depsec/shared"
	"github.com/depsec-io/depsec/utils"
	"github.com/labstack/echo/v4"
)

type evaluator struct {
	enabled        bool
	teamRepository shared.TeamRepository
}

func NewEvaluator(enabled bool, teamRepository shared.TeamRepository) *evaluator {
	return &evaluator{
		enabled:        enabled,
		teamRepository: teamRepository,
	}
}

func (e *evaluator) Enabled() bool {
	return e.enabled
}

// HasAccess decides portfolio visibility. The project must be loaded with its
// access teams. A project without any acl entry stays visible to everyone.
func (e *evaluator) HasAccess(principal shared.Principal, project *models.Project) bool {
	if !e.enabled {
		return true
	}
	if principal.HasPermission(shared.PermissionAccessManagement) {
		return true
	}
	if len(project.AccessTeams) == 0 {
		return true
	}
	return project.HasAccessTeam(principal.GetTeams())
}

// ResolveChosenTeams maps team references from a request onto team rows the
// principal is allowed to attach. The resolved teams are re-read through the
// current transaction so stale rows never end up on an acl.
func (e *evaluator) ResolveChosenTeams(tx shared.DB, principal shared.Principal, refs []dtos.TeamRef) ([]models.Team, error) {
	if len(refs) == 0 {
		return []models.Team{}, nil
	}

	var visible []models.Team
	if principal.HasPermission(shared.PermissionAccessManagement) {
		all, err := e.teamRepository.All()
		if err != nil {
			return nil, err
		}
		visible = all
	} else {
		visible = principal.GetTeams()
	}

	chosenIDs := make([]uint, 0, len(refs))
	for _, ref := range refs {
		if ref.UUID == nil && ref.Name == nil {
			return nil, echo.NewHTTPError(http.StatusBadRequest, "team reference needs a uuid or a name")
		}

		team, ok := utils.Find(visible, func(t models.Team) bool {
			if ref.UUID != nil {
				return t.UUID == *ref.UUID
			}
			return t.Name == *ref.Name
		})
		if !ok {
			return nil, echo.NewHTTPError(http.StatusBadRequest, "team does not exist or is not available to the principal")
		}
		if !utils.Contains(chosenIDs, team.ID) {
			chosenIDs = append(chosenIDs, team.ID)
		}
	}

	return e.teamRepository.ListByIDs(tx, chosenIDs)
}
