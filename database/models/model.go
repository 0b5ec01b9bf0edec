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

// Model is the base of every persisted entity. ID is the storage-assigned
// key, never exposed outside the process. UUID is the externally visible
// identity, generated once at creation and immutable afterwards.
type Model struct {
	ID        uint      `json:"-" gorm:"primarykey"`
	UUID      uuid.UUID `json:"uuid" gorm:"type:uuid;uniqueIndex;not null;default:gen_random_uuid()"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (m Model) GetID() uint {
	return m.ID
}

func (m Model) GetUUID() uuid.UUID {
	return m.UUID
}
