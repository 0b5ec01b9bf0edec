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
	"gorm.io/datatypes"
)

// TeamRef selects a team either by uuid or by name. At least one must be set.
type TeamRef struct {
	UUID *uuid.UUID `json:"uuid"`
	Name *string    `json:"name"`
}

type ParentRef struct {
	UUID uuid.UUID `json:"uuid" validate:"required"`
}

type ExternalReferenceDTO struct {
	URL     string `json:"url" validate:"required"`
	Type    string `json:"type"`
	Comment string `json:"comment"`
}

type ProjectPropertyDTO struct {
	GroupName     string `json:"groupName" validate:"required"`
	PropertyName  string `json:"propertyName" validate:"required"`
	PropertyValue string `json:"propertyValue"`
	PropertyType  string `json:"propertyType"`
}

type ProjectCreateRequest struct {
	Name       string             `json:"name" validate:"required"`
	Version    *string            `json:"version"`
	Classifier *models.Classifier `json:"classifier" validate:"omitempty,oneof=APPLICATION FRAMEWORK LIBRARY CONTAINER OPERATING_SYSTEM DEVICE FIRMWARE FILE"`

	IsActive *bool `json:"active"`
	IsLatest bool  `json:"isLatest"`

	Parent      *ParentRef `json:"parent"`
	AccessTeams []TeamRef  `json:"accessTeams"`

	Tags               []string               `json:"tags"`
	ExternalReferences []ExternalReferenceDTO `json:"externalReferences" validate:"dive"`
	Properties         []ProjectPropertyDTO   `json:"properties" validate:"dive"`

	Author      *string `json:"author"`
	Publisher   *string `json:"publisher"`
	Group       *string `json:"group"`
	Description *string `json:"description"`

	CPE       *string `json:"cpe"`
	PURL      *string `json:"purl" validate:"omitempty,purl"`
	SWIDTagID *string `json:"swidTagId"`

	Authors      datatypes.JSON `json:"authors"`
	Supplier     datatypes.JSON `json:"supplier"`
	Manufacturer datatypes.JSON `json:"manufacturer"`
}

// ProjectUpdateRequest replaces every mutable field of the addressed project.
// A blank name keeps the stored one. Access teams are intentionally absent;
// the acl is managed via patch.
type ProjectUpdateRequest struct {
	UUID       uuid.UUID          `json:"uuid" validate:"required"`
	Name       string             `json:"name"`
	Version    *string            `json:"version"`
	Classifier *models.Classifier `json:"classifier" validate:"omitempty,oneof=APPLICATION FRAMEWORK LIBRARY CONTAINER OPERATING_SYSTEM DEVICE FIRMWARE FILE"`

	IsActive *bool `json:"active"`
	IsLatest bool  `json:"isLatest"`

	Parent *ParentRef `json:"parent"`

	Tags               []string               `json:"tags"`
	ExternalReferences []ExternalReferenceDTO `json:"externalReferences" validate:"dive"`
	Properties         []ProjectPropertyDTO   `json:"properties" validate:"dive"`

	Author      *string `json:"author"`
	Publisher   *string `json:"publisher"`
	Group       *string `json:"group"`
	Description *string `json:"description"`

	CPE       *string `json:"cpe"`
	PURL      *string `json:"purl" validate:"omitempty,purl"`
	SWIDTagID *string `json:"swidTagId"`

	Authors      datatypes.JSON `json:"authors"`
	Supplier     datatypes.JSON `json:"supplier"`
	Manufacturer datatypes.JSON `json:"manufacturer"`
}

// ProjectPatchRequest carries only the fields to change. A nil field means
// "leave untouched"; a present collection replaces the stored one wholesale.
type ProjectPatchRequest struct {
	Name       *string            `json:"name"`
	Version    *string            `json:"version"`
	Classifier *models.Classifier `json:"classifier" validate:"omitempty,oneof=APPLICATION FRAMEWORK LIBRARY CONTAINER OPERATING_SYSTEM DEVICE FIRMWARE FILE"`

	IsActive *bool `json:"active"`
	IsLatest *bool `json:"isLatest"`

	Parent      *ParentRef `json:"parent"`
	AccessTeams *[]TeamRef `json:"accessTeams"`

	Tags               *[]string               `json:"tags"`
	ExternalReferences *[]ExternalReferenceDTO `json:"externalReferences" validate:"omitempty,dive"`
	Properties         *[]ProjectPropertyDTO   `json:"properties" validate:"omitempty,dive"`

	Author      *string `json:"author"`
	Publisher   *string `json:"publisher"`
	Group       *string `json:"group"`
	Description *string `json:"description"`

	CPE       *string `json:"cpe"`
	PURL      *string `json:"purl" validate:"omitempty,purl"`
	SWIDTagID *string `json:"swidTagId"`

	Authors      datatypes.JSON `json:"authors"`
	Supplier     datatypes.JSON `json:"supplier"`
	Manufacturer datatypes.JSON `json:"manufacturer"`
}

type TeamDTO struct {
	UUID uuid.UUID `json:"uuid"`
	Name string    `json:"name"`
}

type ProjectDTO struct {
	UUID       uuid.UUID         `json:"uuid"`
	Name       string            `json:"name"`
	Version    *string           `json:"version"`
	Classifier models.Classifier `json:"classifier"`

	IsActive bool `json:"active"`
	IsLatest bool `json:"isLatest"`

	ParentUUID *uuid.UUID `json:"parentUuid"`

	AccessTeams        []TeamDTO              `json:"accessTeams"`
	Tags               []string               `json:"tags"`
	ExternalReferences []ExternalReferenceDTO `json:"externalReferences"`
	Properties         []ProjectPropertyDTO   `json:"properties"`

	Author      *string `json:"author"`
	Publisher   *string `json:"publisher"`
	Group       *string `json:"group"`
	Description *string `json:"description"`

	CPE       *string `json:"cpe"`
	PURL      *string `json:"purl"`
	SWIDTagID *string `json:"swidTagId"`

	Authors      datatypes.JSON `json:"authors"`
	Supplier     datatypes.JSON `json:"supplier"`
	Manufacturer datatypes.JSON `json:"manufacturer"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
