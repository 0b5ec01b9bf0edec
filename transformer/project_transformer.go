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

package transformer

import (
	"bytes"
	"strings"

	"github.com/depsec-io/depsec/database/models"
	"github.com/depsec-io/depsec/dtos"
	"github.com/depsec-io/depsec/utils"
	"github.com/google/uuid"
)

func ProjectCreateRequestToModel(request dtos.ProjectCreateRequest) models.Project {
	classifier := models.ClassifierApplication
	if request.Classifier != nil && request.Classifier.Valid() {
		classifier = *request.Classifier
	}

	return models.Project{
		Name:       strings.TrimSpace(request.Name),
		Version:    utils.TrimToNil(request.Version),
		Classifier: classifier,

		IsActive: utils.OrDefault(request.IsActive, true),
		IsLatest: request.IsLatest,

		ExternalReferences: ExternalReferenceDTOsToModels(request.ExternalReferences),
		Properties:         ProjectPropertyDTOsToModels(request.Properties),

		Author:      request.Author,
		Publisher:   request.Publisher,
		Group:       request.Group,
		Description: request.Description,

		CPE:       request.CPE,
		PURL:      request.PURL,
		SWIDTagID: request.SWIDTagID,

		Authors:      request.Authors,
		Supplier:     request.Supplier,
		Manufacturer: request.Manufacturer,
	}
}

// ApplyProjectUpdateRequestToModel overwrites every mutable scalar field.
// Collections and parent are handled by the service, since they need
// repository round trips.
func ApplyProjectUpdateRequestToModel(request dtos.ProjectUpdateRequest, project *models.Project) {
	project.Name = strings.TrimSpace(request.Name)
	project.Version = utils.TrimToNil(request.Version)
	if request.Classifier != nil && request.Classifier.Valid() {
		project.Classifier = *request.Classifier
	}
	project.IsActive = utils.OrDefault(request.IsActive, project.IsActive)

	project.Author = request.Author
	project.Publisher = request.Publisher
	project.Group = request.Group
	project.Description = request.Description

	project.CPE = request.CPE
	project.PURL = request.PURL
	project.SWIDTagID = request.SWIDTagID

	project.Authors = request.Authors
	project.Supplier = request.Supplier
	project.Manufacturer = request.Manufacturer
}

func setIfDifferent[T comparable](target *T, source *T, modified *bool) {
	if source == nil {
		return
	}
	if *target != *source {
		*target = *source
		*modified = true
	}
}

func setPtrIfDifferent[T comparable](target **T, source *T, modified *bool) {
	if source == nil {
		return
	}
	if !utils.PtrEqual(*target, source) {
		*target = source
		*modified = true
	}
}

// ApplyProjectPatchRequestToModel applies the scalar part of a patch and
// reports whether anything actually changed. Fields absent from the patch are
// left untouched; setting a field to its current value does not count as a
// modification. Identity fields (name, version), latest flag, parent,
// acl and collections are handled by the service.
func ApplyProjectPatchRequestToModel(patch dtos.ProjectPatchRequest, project *models.Project) bool {
	modified := false

	if patch.Classifier != nil && patch.Classifier.Valid() {
		setIfDifferent(&project.Classifier, patch.Classifier, &modified)
	}
	setIfDifferent(&project.IsActive, patch.IsActive, &modified)

	setPtrIfDifferent(&project.Author, patch.Author, &modified)
	setPtrIfDifferent(&project.Publisher, patch.Publisher, &modified)
	setPtrIfDifferent(&project.Group, patch.Group, &modified)
	setPtrIfDifferent(&project.Description, patch.Description, &modified)

	setPtrIfDifferent(&project.CPE, patch.CPE, &modified)
	setPtrIfDifferent(&project.PURL, patch.PURL, &modified)
	setPtrIfDifferent(&project.SWIDTagID, patch.SWIDTagID, &modified)

	if patch.Authors != nil && !bytes.Equal(project.Authors, patch.Authors) {
		project.Authors = patch.Authors
		modified = true
	}
	if patch.Supplier != nil && !bytes.Equal(project.Supplier, patch.Supplier) {
		project.Supplier = patch.Supplier
		modified = true
	}
	if patch.Manufacturer != nil && !bytes.Equal(project.Manufacturer, patch.Manufacturer) {
		project.Manufacturer = patch.Manufacturer
		modified = true
	}

	return modified
}

// TagsModified reports whether the requested tag set differs from the stored
// one, comparing normalized names order-insensitively.
func TagsModified(current []models.Tag, requested []string) bool {
	normalized := map[string]struct{}{}
	for _, n := range requested {
		if t := models.NormalizeTagName(n); t != "" {
			normalized[t] = struct{}{}
		}
	}
	if len(normalized) != len(current) {
		return true
	}
	for _, t := range current {
		if _, ok := normalized[t.Name]; !ok {
			return true
		}
	}
	return false
}

// ExternalReferencesModified compares stored references with the requested
// ones by value, order-sensitively, matching replace semantics.
func ExternalReferencesModified(current []models.ExternalReference, requested []dtos.ExternalReferenceDTO) bool {
	if len(current) != len(requested) {
		return true
	}
	for i, r := range requested {
		if current[i].URL != r.URL || current[i].Type != r.Type || current[i].Comment != r.Comment {
			return true
		}
	}
	return false
}

func PropertiesModified(current []models.ProjectProperty, requested []dtos.ProjectPropertyDTO) bool {
	if len(current) != len(requested) {
		return true
	}
	for i, r := range requested {
		if current[i].GroupName != r.GroupName ||
			current[i].PropertyName != r.PropertyName ||
			current[i].PropertyValue != r.PropertyValue ||
			current[i].PropertyType != propertyTypeOrDefault(r.PropertyType) {
			return true
		}
	}
	return false
}

func propertyTypeOrDefault(t string) string {
	if t == "" {
		return "STRING"
	}
	return t
}

func ExternalReferenceDTOsToModels(refs []dtos.ExternalReferenceDTO) []models.ExternalReference {
	return utils.Map(refs, func(r dtos.ExternalReferenceDTO) models.ExternalReference {
		return models.ExternalReference{
			URL:     r.URL,
			Type:    r.Type,
			Comment: r.Comment,
		}
	})
}

func ProjectPropertyDTOsToModels(properties []dtos.ProjectPropertyDTO) []models.ProjectProperty {
	return utils.Map(properties, func(p dtos.ProjectPropertyDTO) models.ProjectProperty {
		return models.ProjectProperty{
			GroupName:     p.GroupName,
			PropertyName:  p.PropertyName,
			PropertyValue: p.PropertyValue,
			PropertyType:  propertyTypeOrDefault(p.PropertyType),
		}
	})
}

func TeamModelToDTO(team models.Team) dtos.TeamDTO {
	return dtos.TeamDTO{
		UUID: team.UUID,
		Name: team.Name,
	}
}

func ProjectModelToDTO(project models.Project) dtos.ProjectDTO {
	var parentUUID *uuid.UUID
	if project.Parent != nil {
		parentUUID = utils.Ptr(project.Parent.UUID)
	}

	return dtos.ProjectDTO{
		UUID:       project.UUID,
		Name:       project.Name,
		Version:    project.Version,
		Classifier: project.Classifier,

		IsActive: project.IsActive,
		IsLatest: project.IsLatest,

		ParentUUID: parentUUID,

		AccessTeams: utils.Map(project.AccessTeams, TeamModelToDTO),
		Tags: utils.Map(project.Tags, func(t models.Tag) string {
			return t.Name
		}),
		ExternalReferences: utils.Map(project.ExternalReferences, func(r models.ExternalReference) dtos.ExternalReferenceDTO {
			return dtos.ExternalReferenceDTO{
				URL:     r.URL,
				Type:    r.Type,
				Comment: r.Comment,
			}
		}),
		Properties: utils.Map(project.Properties, func(p models.ProjectProperty) dtos.ProjectPropertyDTO {
			return dtos.ProjectPropertyDTO{
				GroupName:     p.GroupName,
				PropertyName:  p.PropertyName,
				PropertyValue: p.PropertyValue,
				PropertyType:  p.PropertyType,
			}
		}),

		Author:      project.Author,
		Publisher:   project.Publisher,
		Group:       project.Group,
		Description: project.Description,

		CPE:       project.CPE,
		PURL:      project.PURL,
		SWIDTagID: project.SWIDTagID,

		Authors:      project.Authors,
		Supplier:     project.Supplier,
		Manufacturer: project.Manufacturer,

		CreatedAt: project.CreatedAt,
		UpdatedAt: project.UpdatedAt,
	}
}

func CloneStateModelToDTO(state models.CloneState) dtos.CloneStatusDTO {
	return dtos.CloneStatusDTO{
		Token:       state.Token,
		Status:      state.Status,
		SourceUUID:  state.SourceUUID,
		ClonedUUID:  state.ClonedUUID,
		FailureNote: state.FailureNote,
		CreatedAt:   state.CreatedAt,
		UpdatedAt:   state.UpdatedAt,
	}
}
