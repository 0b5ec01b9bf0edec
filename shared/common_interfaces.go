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

package shared

import (
	"github.com/depsec-io/depsec/database"
	"github.com/depsec-io/depsec/database/models"
	"github.com/depsec-io/depsec/dtos"
	"github.com/google/uuid"
)

type ProjectRepository interface {
	database.Repository[uint, models.Project, DB]
	ReadByUUID(tx DB, projectUUID uuid.UUID) (models.Project, error)
	ReadByUUIDWithAssociations(tx DB, projectUUID uuid.UUID) (models.Project, error)
	FindByNameAndVersion(tx DB, name string, version *string) (models.Project, error)
	ExistsWithNameAndVersion(tx DB, name string, version *string, excludeUUID *uuid.UUID) (bool, error)
	FindLatestVersion(tx DB, name string) (models.Project, error)
	ClearLatestFlag(tx DB, name string, excludeUUID uuid.UUID) error
	ListPaged(tx DB, pageInfo PageInfo, name *string, accessibleTeamIDs *[]uint) ([]models.Project, int64, error)
	GetDirectChildProjects(tx DB, projectID uint) ([]models.Project, error)
	HasActiveDirectChildren(tx DB, projectID uint) (bool, error)
	GetAncestorIDs(tx DB, projectID uint) ([]uint, error)
	ReplaceAccessTeams(tx DB, project *models.Project, teams []models.Team) error
	ReplaceTags(tx DB, project *models.Project, tags []models.Tag) error
	ReplaceExternalReferences(tx DB, project *models.Project, refs []models.ExternalReference) error
	ReplaceProperties(tx DB, project *models.Project, properties []models.ProjectProperty) error
	UpsertTags(tx DB, names []string) ([]models.Tag, error)
}

type TeamRepository interface {
	database.Repository[uint, models.Team, DB]
	All() ([]models.Team, error)
	ListByIDs(tx DB, ids []uint) ([]models.Team, error)
}

type CloneStateRepository interface {
	Save(tx DB, state *models.CloneState) error
	FindByToken(token uuid.UUID) (models.CloneState, error)
}

// AccessControlEvaluator decides portfolio visibility based on the team
// intersection between a principal and a project.
type AccessControlEvaluator interface {
	Enabled() bool
	HasAccess(principal Principal, project *models.Project) bool
	ResolveChosenTeams(tx DB, principal Principal, refs []dtos.TeamRef) ([]models.Team, error)
}

type ProjectService interface {
	CreateProject(principal Principal, request dtos.ProjectCreateRequest) (models.Project, error)
	UpdateProject(principal Principal, request dtos.ProjectUpdateRequest) (models.Project, error)
	PatchProject(principal Principal, projectUUID uuid.UUID, request dtos.ProjectPatchRequest) (models.Project, bool, error)
	DeleteProject(principal Principal, projectUUID uuid.UUID) error
	GetProject(principal Principal, projectUUID uuid.UUID) (models.Project, error)
	GetProjects(principal Principal, pageInfo PageInfo, name *string) (Paged[models.Project], error)
	LookupProject(principal Principal, name string, version *string) (models.Project, error)
	GetLatestProject(principal Principal, name string) (models.Project, error)
	GetChildren(principal Principal, projectUUID uuid.UUID) ([]models.Project, error)
}

type CloneService interface {
	InitiateClone(principal Principal, request dtos.CloneProjectRequest) (uuid.UUID, error)
	GetCloneStatus(token uuid.UUID) (models.CloneState, error)
}
