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
	"net/http"

	"github.com/depsec-io/depsec/shared"
	"github.com/labstack/echo/v4"
)

// RequirePermission guards a route group with a capability check on the
// resolved principal.
func RequirePermission(permission string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			if !shared.HasPrincipal(ctx) {
				return echo.NewHTTPError(http.StatusUnauthorized, "could not resolve principal")
			}
			if !shared.GetPrincipal(ctx).HasPermission(permission) {
				return echo.NewHTTPError(http.StatusForbidden, "missing permission "+permission)
			}
			return next(ctx)
		}
	}
}
