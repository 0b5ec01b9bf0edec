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
	"testing"

	"github.com/depsec-io/depsec/database/models"
	"github.com/depsec-io/depsec/dtos"
	"github.com/depsec-io/depsec/mocks"
	"github.com/depsec-io/depsec/utils"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestHandleJob(t *testing.T) {
	t.Run("should clone the project and mark the state complete", func(t *testing.T) {
		broker := mocks.NewPubSubBroker(t)
		projectRepository := mocks.NewProjectRepository(t)
		cloneStateRepository := mocks.NewCloneStateRepository(t)

		source := models.Project{
			Name:       "backend",
			Version:    utils.Ptr("1.0.0"),
			Classifier: models.ClassifierApplication,
			IsActive:   true,
			Tags:       []models.Tag{{ID: 1, Name: "internal"}},
			Properties: []models.ProjectProperty{{GroupName: "ci", PropertyName: "pipeline", PropertyValue: "main", PropertyType: "STRING"}},
		}
		source.ID = 1
		source.UUID = uuid.New()

		job := dtos.CloneJob{
			Token:      uuid.New(),
			SourceUUID: source.UUID,
			Request: dtos.CloneProjectRequest{
				Project:     source.UUID,
				Version:     "2.0.0",
				IncludeTags: true,
			},
		}

		cloneStateRepository.On("Save", mock.Anything, mock.MatchedBy(func(state *models.CloneState) bool {
			return state.Token == job.Token && state.Status == models.CloneStatusProcessing
		})).Return(nil).Once()
		projectRepository.On("Transaction", mock.Anything).Return(nil)
		projectRepository.On("ReadByUUIDWithAssociations", mock.Anything, source.UUID).Return(source, nil)
		projectRepository.On("Create", mock.Anything, mock.MatchedBy(func(p *models.Project) bool {
			return p.Name == "backend" &&
				utils.SafeDereference(p.Version) == "2.0.0" &&
				len(p.Tags) == 1 &&
				len(p.Properties) == 0 // properties were not requested
		})).Return(nil)
		cloneStateRepository.On("Save", mock.Anything, mock.MatchedBy(func(state *models.CloneState) bool {
			return state.Token == job.Token && state.Status == models.CloneStatusComplete && state.ClonedUUID != nil
		})).Return(nil).Once()

		w := NewCloneWorker(broker, projectRepository, cloneStateRepository)

		assert.NoError(t, w.HandleJob(job))
	})

	t.Run("should move the latest flag onto the clone when requested", func(t *testing.T) {
		broker := mocks.NewPubSubBroker(t)
		projectRepository := mocks.NewProjectRepository(t)
		cloneStateRepository := mocks.NewCloneStateRepository(t)

		source := models.Project{Name: "backend", Version: utils.Ptr("1.0.0"), IsActive: true, IsLatest: true}
		source.UUID = uuid.New()

		job := dtos.CloneJob{
			Token:      uuid.New(),
			SourceUUID: source.UUID,
			Request:    dtos.CloneProjectRequest{Project: source.UUID, Version: "2.0.0", MakeCloneLatest: true},
		}

		cloneStateRepository.On("Save", mock.Anything, mock.Anything).Return(nil)
		projectRepository.On("Transaction", mock.Anything).Return(nil)
		projectRepository.On("ReadByUUIDWithAssociations", mock.Anything, source.UUID).Return(source, nil)
		projectRepository.On("Create", mock.Anything, mock.Anything).Return(nil)
		projectRepository.On("ClearLatestFlag", mock.Anything, "backend", mock.Anything).Return(nil)
		projectRepository.On("Save", mock.Anything, mock.MatchedBy(func(p *models.Project) bool {
			return p.IsLatest
		})).Return(nil)

		w := NewCloneWorker(broker, projectRepository, cloneStateRepository)

		assert.NoError(t, w.HandleJob(job))
	})

	t.Run("should record a lost identity race as failure", func(t *testing.T) {
		broker := mocks.NewPubSubBroker(t)
		projectRepository := mocks.NewProjectRepository(t)
		cloneStateRepository := mocks.NewCloneStateRepository(t)

		source := models.Project{Name: "backend", IsActive: true}
		source.UUID = uuid.New()

		job := dtos.CloneJob{
			Token:      uuid.New(),
			SourceUUID: source.UUID,
			Request:    dtos.CloneProjectRequest{Project: source.UUID, Version: "2.0.0"},
		}

		cloneStateRepository.On("Save", mock.Anything, mock.MatchedBy(func(state *models.CloneState) bool {
			return state.Status == models.CloneStatusProcessing
		})).Return(nil).Once()
		projectRepository.On("Transaction", mock.Anything).Return(nil)
		projectRepository.On("ReadByUUIDWithAssociations", mock.Anything, source.UUID).Return(source, nil)
		projectRepository.On("Create", mock.Anything, mock.Anything).Return(&pgconn.PgError{Code: "23505"})
		cloneStateRepository.On("Save", mock.Anything, mock.MatchedBy(func(state *models.CloneState) bool {
			return state.Status == models.CloneStatusFailed && state.FailureNote != nil
		})).Return(nil).Once()

		w := NewCloneWorker(broker, projectRepository, cloneStateRepository)

		assert.Error(t, w.HandleJob(job))
	})

	t.Run("should record a vanished source as failure", func(t *testing.T) {
		broker := mocks.NewPubSubBroker(t)
		projectRepository := mocks.NewProjectRepository(t)
		cloneStateRepository := mocks.NewCloneStateRepository(t)

		job := dtos.CloneJob{
			Token:      uuid.New(),
			SourceUUID: uuid.New(),
			Request:    dtos.CloneProjectRequest{Project: uuid.New(), Version: "2.0.0"},
		}

		cloneStateRepository.On("Save", mock.Anything, mock.MatchedBy(func(state *models.CloneState) bool {
			return state.Status == models.CloneStatusProcessing
		})).Return(nil).Once()
		projectRepository.On("Transaction", mock.Anything).Return(nil)
		projectRepository.On("ReadByUUIDWithAssociations", mock.Anything, job.SourceUUID).Return(models.Project{}, assert.AnError)
		cloneStateRepository.On("Save", mock.Anything, mock.MatchedBy(func(state *models.CloneState) bool {
			return state.Status == models.CloneStatusFailed
		})).Return(nil).Once()

		w := NewCloneWorker(broker, projectRepository, cloneStateRepository)

		assert.Error(t, w.HandleJob(job))
	})
}
