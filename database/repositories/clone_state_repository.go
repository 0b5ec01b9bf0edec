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
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type cloneStateRepository struct {
	db *gorm.DB
	*database.GormRepository[uuid.UUID, models.CloneState]
}

func NewCloneStateRepository(db *gorm.DB) *cloneStateRepository {
	return &cloneStateRepository{
		db:             db,
		GormRepository: database.NewGormRepository[uuid.UUID, models.CloneState](db),
	}
}

func (g *cloneStateRepository) FindByToken(token uuid.UUID) (models.CloneState, error) {
	var state models.CloneState
	err := g.db.Where("token = ?", token).First(&state).Error
	return state, err
}
