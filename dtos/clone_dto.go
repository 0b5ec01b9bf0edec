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

package dtos

import (
	"time"

	"github.com/depsec-io/depsec/database/models"
	"github.com/google/uuid"
)

type CloneProjectRequest struct {
	Project uuid.UUID `json:"project" validate:"required"`
	Version string    `json:"version" validate:"required"`

	MakeCloneLatest bool `json:"makeCloneLatest"`

	IncludeTags             bool `json:"includeTags"`
	IncludeProperties       bool `json:"includeProperties"`
	IncludeACL              bool `json:"includeACL"`
	IncludeAuditHistory     bool `json:"includeAuditHistory"`
	IncludeBOM              bool `json:"includeComponents"`
	IncludeMetrics          bool `json:"includeMetrics"`
	IncludeFindings         bool `json:"includeFindings"`
	IncludePolicyViolations bool `json:"includePolicyViolations"`
}

// CloneJob is the immutable handoff descriptor published on the clone
// channel. It carries everything the worker needs; no project row exists
// until the worker claims the identity slot.
type CloneJob struct {
	Token      uuid.UUID           `json:"token"`
	SourceUUID uuid.UUID           `json:"sourceUuid"`
	Request    CloneProjectRequest `json:"request"`
}

type CloneResponse struct {
	Token uuid.UUID `json:"token"`
}

type CloneStatusDTO struct {
	Token       uuid.UUID          `json:"token"`
	Status      models.CloneStatus `json:"status"`
	SourceUUID  uuid.UUID          `json:"sourceUuid"`
	ClonedUUID  *uuid.UUID         `json:"clonedUuid"`
	FailureNote *string            `json:"failureNote"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
}
