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
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/depsec-io/depsec/database/models"
	"github.com/depsec-io/depsec/dtos"
	"github.com/depsec-io/depsec/shared"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

type cloneService struct {
	projectRepository    shared.ProjectRepository
	cloneStateRepository shared.CloneStateRepository
	accessControl        shared.AccessControlEvaluator
	broker               shared.PubSubBroker
}

func NewCloneService(projectRepository shared.ProjectRepository, cloneStateRepository shared.CloneStateRepository, accessControl shared.AccessControlEvaluator, broker shared.PubSubBroker) *cloneService {
	return &cloneService{
		projectRepository:    projectRepository,
		cloneStateRepository: cloneStateRepository,
		accessControl:        accessControl,
		broker:               broker,
	}
}

// InitiateClone validates a clone request and hands it off to the clone
// channel. The transaction writes the tracking state only, never a project
// row; the worker's insert claims the identity slot. Two concurrent handoffs
// for the same slot both pass validation, the unique index settles the race
// when the second worker run tries to insert.
func (s *cloneService) InitiateClone(principal shared.Principal, request dtos.CloneProjectRequest) (uuid.UUID, error) {
	version := strings.TrimSpace(request.Version)
	if version == "" {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "clone version must not be empty")
	}
	request.Version = version

	token := uuid.New()

	err := s.projectRepository.Transaction(func(tx shared.DB) error {
		source, err := s.projectRepository.ReadByUUIDWithAssociations(tx, request.Project)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return echo.NewHTTPError(http.StatusNotFound, "project to clone could not be found")
			}
			return echo.NewHTTPError(http.StatusInternalServerError, "could not load project").WithInternal(err)
		}
		if !s.accessControl.HasAccess(principal, &source) {
			return echo.NewHTTPError(http.StatusForbidden, "access to the specified project is forbidden")
		}

		exists, err := s.projectRepository.ExistsWithNameAndVersion(tx, source.Name, &version, nil)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "could not check project identity").WithInternal(err)
		}
		if exists {
			return echo.NewHTTPError(http.StatusConflict, "a project with the requested version already exists")
		}

		if request.MakeCloneLatest {
			current, err := s.projectRepository.FindLatestVersion(tx, source.Name)
			if err != nil {
				if !errors.Is(err, gorm.ErrRecordNotFound) {
					return echo.NewHTTPError(http.StatusInternalServerError, "could not load current latest version").WithInternal(err)
				}
			} else if !s.accessControl.HasAccess(principal, &current) {
				return echo.NewHTTPError(http.StatusForbidden, "access to the current latest version is forbidden")
			}
		}

		state := models.CloneState{
			Token:      token,
			Status:     models.CloneStatusQueued,
			SourceUUID: source.UUID,
		}
		if err := s.cloneStateRepository.Save(tx, &state); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "could not record clone state").WithInternal(err)
		}
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}

	job := dtos.CloneJob{
		Token:      token,
		SourceUUID: request.Project,
		Request:    request,
	}
	payload, err := cloneJobToPayload(job)
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusInternalServerError, "could not encode clone job").WithInternal(err)
	}
	if err := s.broker.Publish(context.Background(), shared.NewSimplePubSubMessage(shared.ProjectClone, payload)); err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusInternalServerError, "could not publish clone job").WithInternal(err)
	}

	slog.Info("clone initiated", "token", token, "source", request.Project, "version", version)
	return token, nil
}

func (s *cloneService) GetCloneStatus(token uuid.UUID) (models.CloneState, error) {
	state, err := s.cloneStateRepository.FindByToken(token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.CloneState{}, echo.NewHTTPError(http.StatusNotFound, "clone token could not be found")
		}
		return models.CloneState{}, echo.NewHTTPError(http.StatusInternalServerError, "could not load clone state").WithInternal(err)
	}
	return state, nil
}

func cloneJobToPayload(job dtos.CloneJob) (map[string]any, error) {
	raw, err := json.Marshal(job)
	if err != nil {
		return nil, err
	}
	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// CloneJobFromPayload is the inverse of the publish encoding, used by the
// worker when a message arrives.
func CloneJobFromPayload(payload map[string]any) (dtos.CloneJob, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return dtos.CloneJob{}, err
	}
	var job dtos.CloneJob
	if err := json.Unmarshal(raw, &job); err != nil {
		return dtos.CloneJob{}, err
	}
	return job, nil
}
