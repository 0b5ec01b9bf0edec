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
	"gorm.io/datatypes"
)

type Classifier string

const (
	ClassifierApplication     Classifier = "APPLICATION"
	ClassifierFramework       Classifier = "FRAMEWORK"
	ClassifierLibrary         Classifier = "LIBRARY"
	ClassifierContainer       Classifier = "CONTAINER"
	ClassifierOperatingSystem Classifier = "OPERATING_SYSTEM"
	ClassifierDevice          Classifier = "DEVICE"
	ClassifierFirmware        Classifier = "FIRMWARE"
	ClassifierFile            Classifier = "FILE"
)

func (c Classifier) Valid() bool {
	switch c {
	case ClassifierApplication, ClassifierFramework, ClassifierLibrary,
		ClassifierContainer, ClassifierOperatingSystem, ClassifierDevice,
		ClassifierFirmware, ClassifierFile:
		return true
	}
	return false
}

// Project is a versioned entry in the portfolio. Identity is (Name, Version);
// a nil Version occupies the same identity slot as any other value, which the
// partial unique index on (name, coalesce(version, '')) enforces.
type Project struct {
	Model
	Name       string     `json:"name" gorm:"type:text;not null"`
	Version    *string    `json:"version" gorm:"type:text"`
	Classifier Classifier `json:"classifier" gorm:"type:text;not null;default:'APPLICATION'"`

	IsActive bool `json:"active" gorm:"not null;default:true"`
	// at most one project per name may carry the latest flag
	IsLatest bool `json:"isLatest" gorm:"not null;default:false"`

	ParentID *uint     `json:"-"`
	Parent   *Project  `json:"-" gorm:"foreignKey:ParentID"`
	Children []Project `json:"-" gorm:"foreignKey:ParentID;constraint:OnDelete:CASCADE;"`

	AccessTeams        []Team              `json:"accessTeams" gorm:"many2many:project_access_teams;"`
	Tags               []Tag               `json:"tags" gorm:"many2many:project_tags;"`
	ExternalReferences []ExternalReference `json:"externalReferences" gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE;"`
	Properties         []ProjectProperty   `json:"properties" gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE;"`

	Author      *string `json:"author" gorm:"type:text"`
	Publisher   *string `json:"publisher" gorm:"type:text"`
	Group       *string `json:"group" gorm:"type:text"`
	Description *string `json:"description" gorm:"type:text"`

	CPE       *string `json:"cpe" gorm:"type:text"`
	PURL      *string `json:"purl" gorm:"type:text"`
	SWIDTagID *string `json:"swidTagId" gorm:"type:text"`

	// opaque organizational contacts, stored as-is
	Authors      datatypes.JSON `json:"authors" gorm:"type:jsonb"`
	Supplier     datatypes.JSON `json:"supplier" gorm:"type:jsonb"`
	Manufacturer datatypes.JSON `json:"manufacturer" gorm:"type:jsonb"`
}

func (p Project) TableName() string {
	return "projects"
}

// HasAccessTeam reports whether any of the given teams is on the project acl.
func (p Project) HasAccessTeam(teams []Team) bool {
	for _, t := range teams {
		for _, at := range p.AccessTeams {
			if at.UUID == t.UUID {
				return true
			}
		}
	}
	return false
}
