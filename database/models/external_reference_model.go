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

// ExternalReference rows are owned by their project and replaced wholesale
// on update.
type ExternalReference struct {
	ID        uint   `json:"-" gorm:"primarykey"`
	ProjectID uint   `json:"-" gorm:"not null;index"`
	URL       string `json:"url" gorm:"type:text;not null"`
	Type      string `json:"type" gorm:"type:text"`
	Comment   string `json:"comment" gorm:"type:text"`
}

func (e ExternalReference) TableName() string {
	return "external_references"
}
