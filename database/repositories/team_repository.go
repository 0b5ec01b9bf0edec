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
	"gorm.io/gorm"
)

type teamRepository struct {
	db *gorm.DB
	*database.GormRepository[uint, models.Team]
}

func NewTeamRepository(db *gorm.DB) *teamRepository {
	return &teamRepository{
		db:             db,
		GormRepository: database.NewGormRepository[uint, models.Team](db),
	}
}

func (g *teamRepository) All() ([]models.Team, error) {
	var teams []models.Team
	err := g.db.Order("name").Find(&teams).Error
	return teams, err
}

func (g *teamRepository) ListByIDs(tx *gorm.DB, ids []uint) ([]models.Team, error) {
	if len(ids) == 0 {
		return []models.Team{}, nil
	}
	var teams []models.Team
	err := g.GetDB(tx).Where("id IN ?", ids).Find(&teams).Error
	return teams, err
}
