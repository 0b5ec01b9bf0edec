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

package services

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/depsec-io/depsec/database"
	"github.com/depsec-io/depsec/database/models"
	"github.com/depsec-io/depsec/dtos"
	"github.com/depsec-io/depsec/shared"
	"github.com/depsec-io/depsec/transformer"
	"github.com/depsec-io/depsec/utils"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

type projectService struct {
	projectRepository shared.ProjectRepository
	teamRepository    shared.TeamRepository
	accessControl     shared.AccessControlEvaluator
}

func NewProjectService(projectRepository shared.ProjectRepository, teamRepository shared.TeamRepository, accessControl shared.AccessControlEvaluator) *projectService {
	return &projectService{
		projectRepository: projectRepository,
		teamRepository:    teamRepository,
		accessControl:     accessControl,
	}
}

func (s *projectService) CreateProject(principal shared.Principal, request dtos.ProjectCreateRequest) (models.Project, error) {
	name := strings.TrimSpace(request.Name)
	if name == "" {
		return models.Project{}, echo.NewHTTPError(http.StatusBadRequest, "project name must not be empty")
	}
	version := utils.TrimToNil(request.Version)

	var project models.Project
	err := s.projectRepository.Transaction(func(tx shared.DB) error {
		exists, err := s.projectRepository.ExistsWithNameAndVersion(tx, name, version, nil)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "could not check project identity").WithInternal(err)
		}
		if exists {
			return echo.NewHTTPError(http.StatusConflict, "a project with the same name and version already exists")
		}

		project = transformer.ProjectCreateRequestToModel(request)

		if request.Parent != nil {
			parent, err := s.resolveParent(tx, principal, request.Parent.UUID, nil)
			if err != nil {
				return err
			}
			project.ParentID = utils.Ptr(parent.ID)
		}

		teams, err := s.accessControl.ResolveChosenTeams(tx, principal, request.AccessTeams)
		if err != nil {
			return err
		}
		project.AccessTeams = teams

		tags, err := s.projectRepository.UpsertTags(tx, request.Tags)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "could not resolve tags").WithInternal(err)
		}
		project.Tags = tags

		if project.IsLatest {
			if err := s.guardLatestTransition(tx, principal, name); err != nil {
				return err
			}
		}

		if err := s.projectRepository.Create(tx, &project); err != nil {
			if database.IsDuplicateKeyError(err) {
				return echo.NewHTTPError(http.StatusConflict, "a project with the same name and version already exists").WithInternal(err)
			}
			return echo.NewHTTPError(http.StatusInternalServerError, "could not create project").WithInternal(err)
		}

		if project.IsLatest {
			if err := s.projectRepository.ClearLatestFlag(tx, project.Name, project.UUID); err != nil {
				return echo.NewHTTPError(http.StatusInternalServerError, "could not move latest flag").WithInternal(err)
			}
		}
		return nil
	})
	if err != nil {
		return models.Project{}, err
	}

	slog.Info("project created", "uuid", project.UUID, "name", project.Name, "version", utils.SafeDereference(project.Version))
	return project, nil
}

func (s *projectService) UpdateProject(principal shared.Principal, request dtos.ProjectUpdateRequest) (models.Project, error) {
	var project models.Project
	err := s.projectRepository.Transaction(func(tx shared.DB) error {
		var err error
		project, err = s.projectRepository.ReadByUUIDWithAssociations(tx, request.UUID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return echo.NewHTTPError(http.StatusNotFound, "project could not be found")
			}
			return echo.NewHTTPError(http.StatusInternalServerError, "could not load project").WithInternal(err)
		}
		if !s.accessControl.HasAccess(principal, &project) {
			return echo.NewHTTPError(http.StatusForbidden, "access to the specified project is forbidden")
		}

		// a blank name keeps the stored one
		name := strings.TrimSpace(request.Name)
		if name == "" {
			name = project.Name
		}
		version := utils.TrimToNil(request.Version)

		nameChanged := project.Name != name
		identityChanged := nameChanged || !utils.PtrEqual(project.Version, version)

		// renaming the latest holder moves the flag to the new name, which
		// needs the same guard as flipping it on. The guard runs before the
		// identity check; a request failing both answers 403.
		takesLatest := request.IsLatest && (!project.IsLatest || nameChanged)
		if takesLatest {
			if err := s.guardLatestTransition(tx, principal, name); err != nil {
				return err
			}
		}

		if identityChanged {
			exists, err := s.projectRepository.ExistsWithNameAndVersion(tx, name, version, utils.Ptr(project.UUID))
			if err != nil {
				return echo.NewHTTPError(http.StatusInternalServerError, "could not check project identity").WithInternal(err)
			}
			if exists {
				return echo.NewHTTPError(http.StatusConflict, "a project with the same name and version already exists")
			}
		}

		if project.IsActive && request.IsActive != nil && !*request.IsActive {
			if err := s.guardDeactivation(tx, project); err != nil {
				return err
			}
		}

		request.Name = name
		transformer.ApplyProjectUpdateRequestToModel(request, &project)
		project.IsLatest = request.IsLatest

		if request.Parent != nil {
			parent, err := s.resolveParent(tx, principal, request.Parent.UUID, &project)
			if err != nil {
				return err
			}
			project.ParentID = utils.Ptr(parent.ID)
			project.Parent = &parent
		}

		// collections are replaced wholesale on a full update
		tags, err := s.projectRepository.UpsertTags(tx, request.Tags)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "could not resolve tags").WithInternal(err)
		}
		if err := s.projectRepository.ReplaceTags(tx, &project, tags); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "could not update tags").WithInternal(err)
		}
		if err := s.projectRepository.ReplaceExternalReferences(tx, &project, transformer.ExternalReferenceDTOsToModels(request.ExternalReferences)); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "could not update external references").WithInternal(err)
		}
		if err := s.projectRepository.ReplaceProperties(tx, &project, transformer.ProjectPropertyDTOsToModels(request.Properties)); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "could not update properties").WithInternal(err)
		}

		if err := s.projectRepository.Save(tx, &project); err != nil {
			if database.IsDuplicateKeyError(err) {
				return echo.NewHTTPError(http.StatusConflict, "a project with the same name and version already exists").WithInternal(err)
			}
			return echo.NewHTTPError(http.StatusInternalServerError, "could not update project").WithInternal(err)
		}

		if takesLatest {
			if err := s.projectRepository.ClearLatestFlag(tx, project.Name, project.UUID); err != nil {
				return echo.NewHTTPError(http.StatusInternalServerError, "could not move latest flag").WithInternal(err)
			}
		}
		return nil
	})
	if err != nil {
		return models.Project{}, err
	}

	slog.Info("project updated", "uuid", project.UUID, "name", project.Name)
	return project, nil
}

func (s *projectService) PatchProject(principal shared.Principal, projectUUID uuid.UUID, request dtos.ProjectPatchRequest) (models.Project, bool, error) {
	var project models.Project
	modified := false

	err := s.projectRepository.Transaction(func(tx shared.DB) error {
		var err error
		project, err = s.projectRepository.ReadByUUIDWithAssociations(tx, projectUUID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return echo.NewHTTPError(http.StatusNotFound, "project could not be found")
			}
			return echo.NewHTTPError(http.StatusInternalServerError, "could not load project").WithInternal(err)
		}
		if !s.accessControl.HasAccess(principal, &project) {
			return echo.NewHTTPError(http.StatusForbidden, "access to the specified project is forbidden")
		}

		if project.IsActive && request.IsActive != nil && !*request.IsActive {
			if err := s.guardDeactivation(tx, project); err != nil {
				return err
			}
		}

		// stage identity first so the uniqueness check sees the final values
		name := project.Name
		if request.Name != nil {
			name = strings.TrimSpace(*request.Name)
			if name == "" {
				return echo.NewHTTPError(http.StatusBadRequest, "project name must not be empty")
			}
		}
		version := project.Version
		if request.Version != nil {
			version = utils.TrimToNil(request.Version)
		}

		nameChanged := name != project.Name
		identityChanged := nameChanged || !utils.PtrEqual(version, project.Version)

		willBeLatest := project.IsLatest
		if request.IsLatest != nil {
			willBeLatest = *request.IsLatest
		}
		// renaming the latest holder moves the flag to the new name, which
		// needs the same guard as flipping it on. The guard runs before the
		// identity check; a request failing both answers 403.
		takesLatest := willBeLatest && (!project.IsLatest || nameChanged)
		if takesLatest {
			if err := s.guardLatestTransition(tx, principal, name); err != nil {
				return err
			}
		}

		if identityChanged {
			exists, err := s.projectRepository.ExistsWithNameAndVersion(tx, name, version, utils.Ptr(project.UUID))
			if err != nil {
				return echo.NewHTTPError(http.StatusInternalServerError, "could not check project identity").WithInternal(err)
			}
			if exists {
				return echo.NewHTTPError(http.StatusConflict, "a project with the same name and version already exists")
			}
			project.Name = name
			project.Version = version
			modified = true
		}

		modified = transformer.ApplyProjectPatchRequestToModel(request, &project) || modified

		if request.IsLatest != nil && *request.IsLatest != project.IsLatest {
			project.IsLatest = *request.IsLatest
			modified = true
		}

		if request.Parent != nil {
			if project.Parent == nil || project.Parent.UUID != request.Parent.UUID {
				parent, err := s.resolveParent(tx, principal, request.Parent.UUID, &project)
				if err != nil {
					return err
				}
				project.ParentID = utils.Ptr(parent.ID)
				project.Parent = &parent
				modified = true
			}
		}

		var chosenTeams []models.Team
		replaceACL := false
		if request.AccessTeams != nil {
			chosenTeams, err = s.accessControl.ResolveChosenTeams(tx, principal, *request.AccessTeams)
			if err != nil {
				return err
			}
			if !teamSetsEqual(project.AccessTeams, chosenTeams) {
				replaceACL = true
				modified = true
			}
		}

		var tags []models.Tag
		replaceTags := false
		if request.Tags != nil && transformer.TagsModified(project.Tags, *request.Tags) {
			tags, err = s.projectRepository.UpsertTags(tx, *request.Tags)
			if err != nil {
				return echo.NewHTTPError(http.StatusInternalServerError, "could not resolve tags").WithInternal(err)
			}
			replaceTags = true
			modified = true
		}

		replaceRefs := request.ExternalReferences != nil && transformer.ExternalReferencesModified(project.ExternalReferences, *request.ExternalReferences)
		replaceProps := request.Properties != nil && transformer.PropertiesModified(project.Properties, *request.Properties)
		modified = modified || replaceRefs || replaceProps

		if !modified {
			return nil
		}

		if err := s.projectRepository.Save(tx, &project); err != nil {
			if database.IsDuplicateKeyError(err) {
				return echo.NewHTTPError(http.StatusConflict, "a project with the same name and version already exists").WithInternal(err)
			}
			return echo.NewHTTPError(http.StatusInternalServerError, "could not update project").WithInternal(err)
		}

		if replaceACL {
			if err := s.projectRepository.ReplaceAccessTeams(tx, &project, chosenTeams); err != nil {
				return echo.NewHTTPError(http.StatusInternalServerError, "could not update access teams").WithInternal(err)
			}
		}
		if replaceTags {
			if err := s.projectRepository.ReplaceTags(tx, &project, tags); err != nil {
				return echo.NewHTTPError(http.StatusInternalServerError, "could not update tags").WithInternal(err)
			}
		}
		if replaceRefs {
			if err := s.projectRepository.ReplaceExternalReferences(tx, &project, transformer.ExternalReferenceDTOsToModels(*request.ExternalReferences)); err != nil {
				return echo.NewHTTPError(http.StatusInternalServerError, "could not update external references").WithInternal(err)
			}
		}
		if replaceProps {
			if err := s.projectRepository.ReplaceProperties(tx, &project, transformer.ProjectPropertyDTOsToModels(*request.Properties)); err != nil {
				return echo.NewHTTPError(http.StatusInternalServerError, "could not update properties").WithInternal(err)
			}
		}

		if takesLatest {
			if err := s.projectRepository.ClearLatestFlag(tx, project.Name, project.UUID); err != nil {
				return echo.NewHTTPError(http.StatusInternalServerError, "could not move latest flag").WithInternal(err)
			}
		}
		return nil
	})
	if err != nil {
		return models.Project{}, false, err
	}

	if modified {
		slog.Info("project patched", "uuid", project.UUID, "name", project.Name)
	}
	return project, modified, nil
}

func (s *projectService) DeleteProject(principal shared.Principal, projectUUID uuid.UUID) error {
	err := s.projectRepository.Transaction(func(tx shared.DB) error {
		project, err := s.projectRepository.ReadByUUIDWithAssociations(tx, projectUUID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return echo.NewHTTPError(http.StatusNotFound, "project could not be found")
			}
			return echo.NewHTTPError(http.StatusInternalServerError, "could not load project").WithInternal(err)
		}
		if !s.accessControl.HasAccess(principal, &project) {
			return echo.NewHTTPError(http.StatusForbidden, "access to the specified project is forbidden")
		}

		// children, acl entries, tags, references and properties go with the
		// row via fk cascade
		if err := s.projectRepository.Delete(tx, project.ID); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "could not delete project").WithInternal(err)
		}

		slog.Info("project deleted", "uuid", project.UUID, "name", project.Name)
		return nil
	})
	return err
}

func (s *projectService) GetProject(principal shared.Principal, projectUUID uuid.UUID) (models.Project, error) {
	project, err := s.projectRepository.ReadByUUIDWithAssociations(nil, projectUUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Project{}, echo.NewHTTPError(http.StatusNotFound, "project could not be found")
		}
		return models.Project{}, echo.NewHTTPError(http.StatusInternalServerError, "could not load project").WithInternal(err)
	}
	if !s.accessControl.HasAccess(principal, &project) {
		return models.Project{}, echo.NewHTTPError(http.StatusForbidden, "access to the specified project is forbidden")
	}
	return project, nil
}

func (s *projectService) LookupProject(principal shared.Principal, name string, version *string) (models.Project, error) {
	project, err := s.projectRepository.FindByNameAndVersion(nil, name, version)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Project{}, echo.NewHTTPError(http.StatusNotFound, "project could not be found")
		}
		return models.Project{}, echo.NewHTTPError(http.StatusInternalServerError, "could not load project").WithInternal(err)
	}
	if !s.accessControl.HasAccess(principal, &project) {
		return models.Project{}, echo.NewHTTPError(http.StatusForbidden, "access to the specified project is forbidden")
	}
	return project, nil
}

func (s *projectService) GetLatestProject(principal shared.Principal, name string) (models.Project, error) {
	project, err := s.projectRepository.FindLatestVersion(nil, name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Project{}, echo.NewHTTPError(http.StatusNotFound, "no latest version exists for the given name")
		}
		return models.Project{}, echo.NewHTTPError(http.StatusInternalServerError, "could not load project").WithInternal(err)
	}
	if !s.accessControl.HasAccess(principal, &project) {
		return models.Project{}, echo.NewHTTPError(http.StatusForbidden, "access to the specified project is forbidden")
	}
	return project, nil
}

// GetProjects returns one page of the portfolio. With access control enabled
// the acl restriction is pushed into the query so totals stay correct.
func (s *projectService) GetProjects(principal shared.Principal, pageInfo shared.PageInfo, name *string) (shared.Paged[models.Project], error) {
	var accessibleTeamIDs *[]uint
	if s.accessControl.Enabled() && !principal.HasPermission(shared.PermissionAccessManagement) {
		ids := utils.Map(principal.GetTeams(), func(t models.Team) uint {
			return t.ID
		})
		accessibleTeamIDs = &ids
	}

	projects, total, err := s.projectRepository.ListPaged(nil, pageInfo, name, accessibleTeamIDs)
	if err != nil {
		return shared.Paged[models.Project]{}, echo.NewHTTPError(http.StatusInternalServerError, "could not load projects").WithInternal(err)
	}

	return shared.NewPaged(pageInfo, total, projects), nil
}

func (s *projectService) GetChildren(principal shared.Principal, projectUUID uuid.UUID) ([]models.Project, error) {
	project, err := s.GetProject(principal, projectUUID)
	if err != nil {
		return nil, err
	}

	children, err := s.projectRepository.GetDirectChildProjects(nil, project.ID)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "could not load child projects").WithInternal(err)
	}

	return utils.Filter(children, func(child models.Project) bool {
		return s.accessControl.HasAccess(principal, &child)
	}), nil
}

// resolveParent loads and validates a prospective parent. When child is set,
// self-references and cycles through the ancestor chain are rejected.
func (s *projectService) resolveParent(tx shared.DB, principal shared.Principal, parentUUID uuid.UUID, child *models.Project) (models.Project, error) {
	parent, err := s.projectRepository.ReadByUUIDWithAssociations(tx, parentUUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Project{}, echo.NewHTTPError(http.StatusNotFound, "parent project could not be found")
		}
		return models.Project{}, echo.NewHTTPError(http.StatusInternalServerError, "could not load parent project").WithInternal(err)
	}
	if !s.accessControl.HasAccess(principal, &parent) {
		return models.Project{}, echo.NewHTTPError(http.StatusForbidden, "access to the specified parent project is forbidden")
	}
	if !parent.IsActive {
		return models.Project{}, echo.NewHTTPError(http.StatusConflict, "an inactive project cannot be selected as parent")
	}

	if child != nil {
		if parent.UUID == child.UUID {
			return models.Project{}, echo.NewHTTPError(http.StatusConflict, "a project cannot be its own parent")
		}
		ancestors, err := s.projectRepository.GetAncestorIDs(tx, parent.ID)
		if err != nil {
			return models.Project{}, echo.NewHTTPError(http.StatusInternalServerError, "could not walk project hierarchy").WithInternal(err)
		}
		if utils.Contains(ancestors, child.ID) {
			return models.Project{}, echo.NewHTTPError(http.StatusConflict, "the selected parent would create a cycle in the project hierarchy")
		}
	}

	return parent, nil
}

// guardLatestTransition makes sure the principal may take the latest flag
// away from the current holder before it is flipped on elsewhere.
func (s *projectService) guardLatestTransition(tx shared.DB, principal shared.Principal, name string) error {
	current, err := s.projectRepository.FindLatestVersion(tx, name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "could not load current latest version").WithInternal(err)
	}
	if !s.accessControl.HasAccess(principal, &current) {
		return echo.NewHTTPError(http.StatusForbidden, "access to the current latest version is forbidden")
	}
	return nil
}

func (s *projectService) guardDeactivation(tx shared.DB, project models.Project) error {
	hasActiveChildren, err := s.projectRepository.HasActiveDirectChildren(tx, project.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "could not load child projects").WithInternal(err)
	}
	if hasActiveChildren {
		return echo.NewHTTPError(http.StatusConflict, "a project with active children cannot be deactivated")
	}
	return nil
}

func teamSetsEqual(a, b []models.Team) bool {
	if len(a) != len(b) {
		return false
	}
	uuids := map[uuid.UUID]struct{}{}
	for _, t := range a {
		uuids[t.UUID] = struct{}{}
	}
	for _, t := range b {
		if _, ok := uuids[t.UUID]; !ok {
			return false
		}
	}
	return true
}
