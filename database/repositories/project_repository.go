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

package repositories

import (
	"github.com/depsec-io/depsec/database"
	"github.com/depsec-io/depsec/database/models"
	"github.com/depsec-io/depsec/shared"
	"github.com/depsec-io/depsec/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type projectRepository struct {
	db *gorm.DB
	*database.GormRepository[uint, models.Project]
}

func NewProjectRepository(db *gorm.DB) *projectRepository {
	return &projectRepository{
		db:             db,
		GormRepository: database.NewGormRepository[uint, models.Project](db),
	}
}

func (g *projectRepository) ReadByUUID(tx *gorm.DB, projectUUID uuid.UUID) (models.Project, error) {
	var project models.Project
	err := g.GetDB(tx).Where("uuid = ?", projectUUID).First(&project).Error
	return project, err
}

func (g *projectRepository) ReadByUUIDWithAssociations(tx *gorm.DB, projectUUID uuid.UUID) (models.Project, error) {
	var project models.Project
	err := g.GetDB(tx).
		Preload("AccessTeams").
		Preload("Tags").
		Preload("ExternalReferences").
		Preload("Properties").
		Preload("Parent").
		Where("uuid = ?", projectUUID).First(&project).Error
	return project, err
}

func (g *projectRepository) FindByNameAndVersion(tx *gorm.DB, name string, version *string) (models.Project, error) {
	var project models.Project
	err := g.GetDB(tx).
		Preload("AccessTeams").
		Where("name = ? AND COALESCE(version, '') = COALESCE(?, '')", name, version).
		First(&project).Error
	return project, err
}

func (g *projectRepository) ExistsWithNameAndVersion(tx *gorm.DB, name string, version *string, excludeUUID *uuid.UUID) (bool, error) {
	var count int64
	q := g.GetDB(tx).Model(&models.Project{}).
		Where("name = ? AND COALESCE(version, '') = COALESCE(?, '')", name, version)
	if excludeUUID != nil {
		q = q.Where("uuid != ?", *excludeUUID)
	}
	err := q.Count(&count).Error
	return count > 0, err
}

func (g *projectRepository) FindLatestVersion(tx *gorm.DB, name string) (models.Project, error) {
	var project models.Project
	err := g.GetDB(tx).
		Preload("AccessTeams").
		Where("name = ? AND is_latest = true", name).
		First(&project).Error
	return project, err
}

func (g *projectRepository) ClearLatestFlag(tx *gorm.DB, name string, excludeUUID uuid.UUID) error {
	return g.GetDB(tx).Model(&models.Project{}).
		Where("name = ? AND uuid != ? AND is_latest = true", name, excludeUUID).
		Update("is_latest", false).Error
}

// ListPaged returns one page of the portfolio plus the total count under the
// same filters. A nil accessibleTeamIDs means no acl restriction; otherwise
// only projects without acl entries or with an entry for one of the given
// teams are returned.
func (g *projectRepository) ListPaged(tx *gorm.DB, pageInfo shared.PageInfo, name *string, accessibleTeamIDs *[]uint) ([]models.Project, int64, error) {
	q := g.GetDB(tx).Model(&models.Project{})
	if name != nil {
		q = q.Where("name = ?", *name)
	}
	if accessibleTeamIDs != nil {
		q = q.Where(`(NOT EXISTS (SELECT 1 FROM project_access_teams pat WHERE pat.project_id = projects.id)
			OR EXISTS (SELECT 1 FROM project_access_teams pat WHERE pat.project_id = projects.id AND pat.team_id IN ?))`, *accessibleTeamIDs)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var projects []models.Project
	err := pageInfo.ApplyOnDB(q).
		Preload("AccessTeams").
		Preload("Tags").
		Order("name, version").
		Find(&projects).Error
	return projects, total, err
}

func (g *projectRepository) GetDirectChildProjects(tx *gorm.DB, projectID uint) ([]models.Project, error) {
	var projects []models.Project
	err := g.GetDB(tx).Where("parent_id = ?", projectID).Find(&projects).Error
	return projects, err
}

func (g *projectRepository) HasActiveDirectChildren(tx *gorm.DB, projectID uint) (bool, error) {
	var count int64
	err := g.GetDB(tx).Model(&models.Project{}).
		Where("parent_id = ? AND is_active = true", projectID).
		Count(&count).Error
	return count > 0, err
}

// GetAncestorIDs returns the id of the project itself plus all of its
// transitive parents.
func (g *projectRepository) GetAncestorIDs(tx *gorm.DB, projectID uint) ([]uint, error) {
	var ids []uint
	err := g.GetDB(tx).Raw(`
		WITH RECURSIVE parents AS (
			SELECT id, parent_id
			FROM projects
			WHERE id = ?
			UNION ALL
			SELECT p.id, p.parent_id
			FROM projects p
			INNER JOIN parents c ON p.id = c.parent_id
		)
		SELECT id FROM parents
	`, projectID).Scan(&ids).Error
	return ids, err
}

func (g *projectRepository) ReplaceAccessTeams(tx *gorm.DB, project *models.Project, teams []models.Team) error {
	if err := g.GetDB(tx).Model(project).Association("AccessTeams").Replace(&teams); err != nil {
		return err
	}
	project.AccessTeams = teams
	return nil
}

func (g *projectRepository) ReplaceTags(tx *gorm.DB, project *models.Project, tags []models.Tag) error {
	if err := g.GetDB(tx).Model(project).Association("Tags").Replace(&tags); err != nil {
		return err
	}
	project.Tags = tags
	return nil
}

func (g *projectRepository) ReplaceExternalReferences(tx *gorm.DB, project *models.Project, refs []models.ExternalReference) error {
	db := g.GetDB(tx)
	if err := db.Where("project_id = ?", project.ID).Delete(&models.ExternalReference{}).Error; err != nil {
		return err
	}
	if len(refs) == 0 {
		project.ExternalReferences = nil
		return nil
	}
	for i := range refs {
		refs[i].ID = 0
		refs[i].ProjectID = project.ID
	}
	if err := db.Create(&refs).Error; err != nil {
		return err
	}
	project.ExternalReferences = refs
	return nil
}

func (g *projectRepository) ReplaceProperties(tx *gorm.DB, project *models.Project, properties []models.ProjectProperty) error {
	db := g.GetDB(tx)
	if err := db.Where("project_id = ?", project.ID).Delete(&models.ProjectProperty{}).Error; err != nil {
		return err
	}
	if len(properties) == 0 {
		project.Properties = nil
		return nil
	}
	for i := range properties {
		properties[i].ID = 0
		properties[i].ProjectID = project.ID
	}
	if err := db.Create(&properties).Error; err != nil {
		return err
	}
	project.Properties = properties
	return nil
}

// UpsertTags resolves normalized tag names to rows, creating missing ones.
func (g *projectRepository) UpsertTags(tx *gorm.DB, names []string) ([]models.Tag, error) {
	normalized := make([]string, 0, len(names))
	for _, n := range names {
		t := models.NormalizeTagName(n)
		if t != "" && !utils.Contains(normalized, t) {
			normalized = append(normalized, t)
		}
	}
	if len(normalized) == 0 {
		return []models.Tag{}, nil
	}

	db := g.GetDB(tx)
	tags := utils.Map(normalized, func(n string) models.Tag {
		return models.Tag{Name: n}
	})
	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(&tags).Error; err != nil {
		return nil, err
	}

	var result []models.Tag
	err := db.Where("name IN ?", normalized).Find(&result).Error
	return result, err
}
