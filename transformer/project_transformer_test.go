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
	"testing"

	"github.com/depsec-io/depsec/database/models"
	"github.com/depsec-io/depsec/dtos"
	"github.com/depsec-io/depsec/utils"
	"github.com/stretchr/testify/assert"
)

func TestProjectCreateRequestToModel(t *testing.T) {
	t.Run("should default classifier and active flag", func(t *testing.T) {
		project := ProjectCreateRequestToModel(dtos.ProjectCreateRequest{Name: "  backend  "})

		assert.Equal(t, "backend", project.Name)
		assert.Nil(t, project.Version)
		assert.Equal(t, models.ClassifierApplication, project.Classifier)
		assert.True(t, project.IsActive)
		assert.False(t, project.IsLatest)
	})

	t.Run("should keep an explicit classifier", func(t *testing.T) {
		project := ProjectCreateRequestToModel(dtos.ProjectCreateRequest{
			Name:       "firmware-blob",
			Classifier: utils.Ptr(models.ClassifierFirmware),
			IsActive:   utils.Ptr(false),
		})

		assert.Equal(t, models.ClassifierFirmware, project.Classifier)
		assert.False(t, project.IsActive)
	})
}

func TestApplyProjectPatchRequestToModel(t *testing.T) {
	t.Run("should report no modification for an empty patch", func(t *testing.T) {
		project := models.Project{Name: "backend", IsActive: true, Description: utils.Ptr("a backend")}

		assert.False(t, ApplyProjectPatchRequestToModel(dtos.ProjectPatchRequest{}, &project))
	})

	t.Run("should ignore fields set to their current value", func(t *testing.T) {
		project := models.Project{Name: "backend", IsActive: true, Description: utils.Ptr("a backend")}

		modified := ApplyProjectPatchRequestToModel(dtos.ProjectPatchRequest{
			IsActive:    utils.Ptr(true),
			Description: utils.Ptr("a backend"),
		}, &project)

		assert.False(t, modified)
	})

	t.Run("should apply changed scalars", func(t *testing.T) {
		project := models.Project{Name: "backend", IsActive: true}

		modified := ApplyProjectPatchRequestToModel(dtos.ProjectPatchRequest{
			Description: utils.Ptr("the payment backend"),
			Classifier:  utils.Ptr(models.ClassifierLibrary),
		}, &project)

		assert.True(t, modified)
		assert.Equal(t, "the payment backend", *project.Description)
		assert.Equal(t, models.ClassifierLibrary, project.Classifier)
	})

	t.Run("should detect json document changes by content", func(t *testing.T) {
		project := models.Project{Authors: []byte(`[{"name":"a"}]`)}

		assert.False(t, ApplyProjectPatchRequestToModel(dtos.ProjectPatchRequest{Authors: []byte(`[{"name":"a"}]`)}, &project))
		assert.True(t, ApplyProjectPatchRequestToModel(dtos.ProjectPatchRequest{Authors: []byte(`[{"name":"b"}]`)}, &project))
	})
}

func TestTagsModified(t *testing.T) {
	current := []models.Tag{{ID: 1, Name: "internal"}, {ID: 2, Name: "payment"}}

	t.Run("should normalize and ignore order", func(t *testing.T) {
		assert.False(t, TagsModified(current, []string{" Payment ", "INTERNAL"}))
	})

	t.Run("should detect added and removed tags", func(t *testing.T) {
		assert.True(t, TagsModified(current, []string{"internal"}))
		assert.True(t, TagsModified(current, []string{"internal", "payment", "deprecated"}))
	})

	t.Run("should treat an empty request as clearing", func(t *testing.T) {
		assert.True(t, TagsModified(current, nil))
		assert.False(t, TagsModified(nil, nil))
	})
}

func TestExternalReferencesModified(t *testing.T) {
	current := []models.ExternalReference{{URL: "https://example.org", Type: "website"}}

	assert.False(t, ExternalReferencesModified(current, []dtos.ExternalReferenceDTO{{URL: "https://example.org", Type: "website"}}))
	assert.True(t, ExternalReferencesModified(current, []dtos.ExternalReferenceDTO{{URL: "https://example.org", Type: "vcs"}}))
	assert.True(t, ExternalReferencesModified(current, nil))
}

func TestPropertiesModified(t *testing.T) {
	current := []models.ProjectProperty{{GroupName: "ci", PropertyName: "pipeline", PropertyValue: "main", PropertyType: "STRING"}}

	t.Run("should fill in the default property type before comparing", func(t *testing.T) {
		assert.False(t, PropertiesModified(current, []dtos.ProjectPropertyDTO{{GroupName: "ci", PropertyName: "pipeline", PropertyValue: "main"}}))
	})

	t.Run("should detect value changes", func(t *testing.T) {
		assert.True(t, PropertiesModified(current, []dtos.ProjectPropertyDTO{{GroupName: "ci", PropertyName: "pipeline", PropertyValue: "release"}}))
	})
}

func TestProjectModelToDTO(t *testing.T) {
	parent := models.Project{Name: "platform"}
	parent.ID = 1

	project := models.Project{
		Name:       "backend",
		Version:    utils.Ptr("1.0.0"),
		Classifier: models.ClassifierApplication,
		IsActive:   true,
		ParentID:   utils.Ptr(parent.ID),
		Parent:     &parent,
		Tags:       []models.Tag{{ID: 1, Name: "internal"}},
	}

	dto := ProjectModelToDTO(project)

	assert.Equal(t, "backend", dto.Name)
	assert.Equal(t, "1.0.0", *dto.Version)
	assert.NotNil(t, dto.ParentUUID)
	assert.Equal(t, []string{"internal"}, dto.Tags)
}
