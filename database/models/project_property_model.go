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

// ProjectProperty is a namespaced key/value configuration entry on a project.
type ProjectProperty struct {
	ID            uint   `json:"-" gorm:"primarykey"`
	ProjectID     uint   `json:"-" gorm:"not null;index"`
	GroupName     string `json:"groupName" gorm:"type:text;not null"`
	PropertyName  string `json:"propertyName" gorm:"type:text;not null"`
	PropertyValue string `json:"propertyValue" gorm:"type:text"`
	PropertyType  string `json:"propertyType" gorm:"type:text;not null;default:'STRING'"`
}

func (p ProjectProperty) TableName() string {
	return "project_properties"
}
