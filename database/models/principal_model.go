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
	"slices"

	"gorm.io/datatypes"
)

// User and APIKey are the two principal kinds. Authentication happens
// upstream; these rows only carry team memberships and capability
// permissions for portfolio access decisions.
type User struct {
	Model
	Username    string                      `json:"username" gorm:"type:text;not null;uniqueIndex"`
	Teams       []Team                      `json:"teams" gorm:"many2many:user_teams;"`
	Permissions datatypes.JSONSlice[string] `json:"permissions" gorm:"type:jsonb"`
}

func (u User) TableName() string {
	return "users"
}

func (u User) GetUserID() string {
	return u.Username
}

func (u User) GetTeams() []Team {
	return u.Teams
}

func (u User) HasPermission(permission string) bool {
	return slices.Contains(u.Permissions, permission)
}

type APIKey struct {
	Model
	// PublicID identifies the key without exposing key material
	PublicID    string                      `json:"publicId" gorm:"type:text;not null;uniqueIndex"`
	Comment     string                      `json:"comment" gorm:"type:text"`
	Teams       []Team                      `json:"teams" gorm:"many2many:api_key_teams;"`
	Permissions datatypes.JSONSlice[string] `json:"permissions" gorm:"type:jsonb"`
}

func (k APIKey) TableName() string {
	return "api_keys"
}

func (k APIKey) GetUserID() string {
	return k.PublicID
}

func (k APIKey) GetTeams() []Team {
	return k.Teams
}

func (k APIKey) HasPermission(permission string) bool {
	return slices.Contains(k.Permissions, permission)
}
