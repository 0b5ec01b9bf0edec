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

package middlewares

import (
	"errors"
	"net/http"

	"github.com/depsec-io/depsec/database/models"
	"github.com/depsec-io/depsec/shared"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// PrincipalResolver maps an incoming request onto a principal. Session
// management itself lives outside this service; whatever sits in front
// (gateway, auth proxy) asserts the identity headers.
type PrincipalResolver interface {
	ResolvePrincipal(ctx shared.Context) (shared.Principal, error)
}

// HeaderPrincipalResolver trusts the X-User / X-Api-Key headers set by the
// authenticating proxy and loads the matching principal row with its teams.
type HeaderPrincipalResolver struct {
	db shared.DB
}

func NewHeaderPrincipalResolver(db shared.DB) *HeaderPrincipalResolver {
	return &HeaderPrincipalResolver{db: db}
}

func (r *HeaderPrincipalResolver) ResolvePrincipal(ctx shared.Context) (shared.Principal, error) {
	if username := ctx.Request().Header.Get("X-User"); username != "" {
		var user models.User
		if err := r.db.Preload("Teams").Where("username = ?", username).First(&user).Error; err != nil {
			return nil, err
		}
		return user, nil
	}

	if publicID := ctx.Request().Header.Get("X-Api-Key"); publicID != "" {
		var key models.APIKey
		if err := r.db.Preload("Teams").Where("public_id = ?", publicID).First(&key).Error; err != nil {
			return nil, err
		}
		return key, nil
	}

	return nil, gorm.ErrRecordNotFound
}

// SessionMiddleware resolves the principal for every request and rejects
// anonymous ones.
func SessionMiddleware(resolver PrincipalResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			principal, err := resolver.ResolvePrincipal(ctx)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return echo.NewHTTPError(http.StatusUnauthorized, "could not resolve principal")
				}
				return echo.NewHTTPError(http.StatusUnauthorized, "could not resolve principal").WithInternal(err)
			}

			shared.SetPrincipal(ctx, principal)
			return next(ctx)
		}
	}
}
