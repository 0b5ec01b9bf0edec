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

package daemons

import (
	"context"
	"log/slog"
	"strings"

	"github.com/depsec-io/depsec/database"
	"github.com/depsec-io/depsec/database/models"
	"github.com/depsec-io/depsec/dtos"
	"github.com/depsec-io/depsec/services"
	"github.com/depsec-io/depsec/shared"
	"github.com/depsec-io/depsec/utils"
	"github.com/pkg/errors"
)

// CloneWorker consumes clone jobs from the clone channel and performs the
// actual copy. The insert of the cloned row is the claim on the (name,
// version) identity slot; if two jobs race for the same slot the unique
// index fails the second insert and the failure lands on that job's token.
type CloneWorker struct {
	broker               shared.PubSubBroker
	projectRepository    shared.ProjectRepository
	cloneStateRepository shared.CloneStateRepository
}

func NewCloneWorker(broker shared.PubSubBroker, projectRepository shared.ProjectRepository, cloneStateRepository shared.CloneStateRepository) *CloneWorker {
	return &CloneWorker{
		broker:               broker,
		projectRepository:    projectRepository,
		cloneStateRepository: cloneStateRepository,
	}
}

// Start subscribes to the clone channel and processes jobs until ctx is
// canceled.
func (w *CloneWorker) Start(ctx context.Context) error {
	ch, err := w.broker.Subscribe(shared.ProjectClone)
	if err != nil {
		return errors.Wrap(err, "could not subscribe to clone channel")
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				slog.Info("clone worker stopped")
				return
			case payload, ok := <-ch:
				if !ok {
					slog.Info("clone channel closed")
					return
				}
				w.handlePayload(payload)
			}
		}
	}()

	slog.Info("clone worker started")
	return nil
}

func (w *CloneWorker) handlePayload(payload map[string]any) {
	job, err := services.CloneJobFromPayload(payload)
	if err != nil {
		slog.Error("could not decode clone job", "err", err)
		return
	}

	if err := w.HandleJob(job); err != nil {
		slog.Error("clone job failed", "token", job.Token, "err", err)
	}
}

// HandleJob performs a single clone. Failures are recorded on the job's
// clone state so the status endpoint can surface them.
func (w *CloneWorker) HandleJob(job dtos.CloneJob) error {
	if err := w.setState(job, models.CloneStatusProcessing, nil, nil); err != nil {
		return errors.Wrap(err, "could not mark clone as processing")
	}

	var cloned *models.Project
	err := w.projectRepository.Transaction(func(tx shared.DB) error {
		source, err := w.projectRepository.ReadByUUIDWithAssociations(tx, job.SourceUUID)
		if err != nil {
			return errors.Wrap(err, "source project disappeared")
		}

		version := strings.TrimSpace(job.Request.Version)
		clone := models.Project{
			Name:       source.Name,
			Version:    utils.Ptr(version),
			Classifier: source.Classifier,
			IsActive:   source.IsActive,
			ParentID:   source.ParentID,

			Author:      source.Author,
			Publisher:   source.Publisher,
			Group:       source.Group,
			Description: source.Description,

			CPE:       source.CPE,
			PURL:      source.PURL,
			SWIDTagID: source.SWIDTagID,

			Authors:      source.Authors,
			Supplier:     source.Supplier,
			Manufacturer: source.Manufacturer,
		}

		if job.Request.IncludeACL {
			clone.AccessTeams = source.AccessTeams
		}
		if job.Request.IncludeTags {
			clone.Tags = source.Tags
		}
		if job.Request.IncludeProperties {
			clone.Properties = utils.Map(source.Properties, func(p models.ProjectProperty) models.ProjectProperty {
				return models.ProjectProperty{
					GroupName:     p.GroupName,
					PropertyName:  p.PropertyName,
					PropertyValue: p.PropertyValue,
					PropertyType:  p.PropertyType,
				}
			})
		}
		clone.ExternalReferences = utils.Map(source.ExternalReferences, func(r models.ExternalReference) models.ExternalReference {
			return models.ExternalReference{
				URL:     r.URL,
				Type:    r.Type,
				Comment: r.Comment,
			}
		})

		if err := w.projectRepository.Create(tx, &clone); err != nil {
			if database.IsDuplicateKeyError(err) {
				return errors.Wrap(err, "a project with the requested version already exists")
			}
			return errors.Wrap(err, "could not create cloned project")
		}

		if job.Request.MakeCloneLatest {
			if err := w.projectRepository.ClearLatestFlag(tx, clone.Name, clone.UUID); err != nil {
				return errors.Wrap(err, "could not move latest flag")
			}
			clone.IsLatest = true
			if err := w.projectRepository.Save(tx, &clone); err != nil {
				return errors.Wrap(err, "could not set latest flag on clone")
			}
		}

		cloned = &clone
		return nil
	})
	if err != nil {
		note := err.Error()
		if stateErr := w.setState(job, models.CloneStatusFailed, nil, &note); stateErr != nil {
			slog.Error("could not record clone failure", "token", job.Token, "err", stateErr)
		}
		return err
	}

	if err := w.setState(job, models.CloneStatusComplete, cloned, nil); err != nil {
		return errors.Wrap(err, "could not mark clone as complete")
	}

	slog.Info("project cloned", "token", job.Token, "source", job.SourceUUID, "clone", cloned.UUID, "version", job.Request.Version)
	return nil
}

func (w *CloneWorker) setState(job dtos.CloneJob, status models.CloneStatus, clone *models.Project, note *string) error {
	state := models.CloneState{
		Token:       job.Token,
		Status:      status,
		SourceUUID:  job.SourceUUID,
		FailureNote: note,
	}
	if clone != nil {
		state.ClonedUUID = utils.Ptr(clone.UUID)
	}
	return w.cloneStateRepository.Save(nil, &state)
}
