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

package models

import (
	"time"

	"github.com/google/uuid"
)

type CloneStatus string

const (
	CloneStatusQueued     CloneStatus = "QUEUED"
	CloneStatusProcessing CloneStatus = "PROCESSING"
	CloneStatusComplete   CloneStatus = "COMPLETE"
	CloneStatusFailed     CloneStatus = "FAILED"
)

// CloneState tracks the progress of an async clone by its handoff token.
// The initiating request never writes a project row; the worker does.
type CloneState struct {
	Token       uuid.UUID   `json:"token" gorm:"type:uuid;primarykey"`
	Status      CloneStatus `json:"status" gorm:"type:text;not null;default:'QUEUED'"`
	SourceUUID  uuid.UUID   `json:"sourceUuid" gorm:"type:uuid;not null"`
	ClonedUUID  *uuid.UUID  `json:"clonedUuid" gorm:"type:uuid"`
	FailureNote *string     `json:"failureNote" gorm:"type:text"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

func (c CloneState) TableName() string {
	return "clone_states"
}
