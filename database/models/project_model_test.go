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
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestClassifierValid(t *testing.T) {
	assert.True(t, ClassifierApplication.Valid())
	assert.True(t, ClassifierOperatingSystem.Valid())
	assert.False(t, Classifier("SPACESHIP").Valid())
	assert.False(t, Classifier("").Valid())
}

func TestHasAccessTeam(t *testing.T) {
	team := Team{Name: "platform"}
	team.UUID = uuid.New()
	otherTeam := Team{Name: "billing"}
	otherTeam.UUID = uuid.New()

	project := Project{AccessTeams: []Team{team}}

	assert.True(t, project.HasAccessTeam([]Team{team, otherTeam}))
	assert.False(t, project.HasAccessTeam([]Team{otherTeam}))
	assert.False(t, project.HasAccessTeam(nil))
}

func TestNormalizeTagName(t *testing.T) {
	assert.Equal(t, "internal", NormalizeTagName("  Internal "))
	assert.Equal(t, "", NormalizeTagName("   "))
}
