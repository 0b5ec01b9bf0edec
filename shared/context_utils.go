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
package shared

import (
	"fmt"
	"strconv"

	"github.com/depsec-io/depsec/database/models"
	"github.com/google/uuid"
)

// capability permissions a principal may carry. Session management itself
// lives outside this service; the middleware only resolves a Principal and
// stores it on the request context.
const (
	PermissionViewPortfolio       = "VIEW_PORTFOLIO"
	PermissionPortfolioManagement = "PORTFOLIO_MANAGEMENT"
	PermissionAccessManagement    = "ACCESS_MANAGEMENT"
)

// Principal is whoever issued the request, a user or an api key.
type Principal interface {
	GetUserID() string
	GetTeams() []models.Team
	HasPermission(permission string) bool
}

func GetPrincipal(ctx Context) Principal {
	return ctx.Get("principal").(Principal)
}

func SetPrincipal(ctx Context, principal Principal) {
	ctx.Set("principal", principal)
}

func HasPrincipal(ctx Context) bool {
	_, ok := ctx.Get("principal").(Principal)
	return ok
}

func GetParam(ctx Context, param string) string {
	v := ctx.Param(param)
	if v == "" {
		fallback := ctx.Get(param)
		if fallback == nil {
			return ""
		}
		return fallback.(string)
	}
	return v
}

func GetProjectUUID(ctx Context) (uuid.UUID, error) {
	raw := GetParam(ctx, "projectUUID")
	if raw == "" {
		return uuid.Nil, fmt.Errorf("could not get project uuid")
	}
	return uuid.Parse(raw)
}

type PageInfo struct {
	PageSize int `json:"pageSize"`
	Page     int `json:"page"`
}

func (p PageInfo) ApplyOnDB(db DB) DB {
	return db.Offset((p.Page - 1) * p.PageSize).Limit(p.PageSize)
}

type Paged[T any] struct {
	PageInfo
	Total int64 `json:"total"`
	Data  []T   `json:"data"`
}

func NewPaged[T any](pageInfo PageInfo, total int64, data []T) Paged[T] {
	return Paged[T]{
		PageInfo: pageInfo,
		Total:    total,
		Data:     data,
	}
}

func GetPageInfo(ctx Context) PageInfo {
	page, _ := strconv.Atoi(ctx.QueryParam("page"))
	if page <= 0 {
		page = 1
	}

	pageSize, _ := strconv.Atoi(ctx.QueryParam("pageSize"))
	if pageSize <= 0 {
		pageSize = 10
	}

	return PageInfo{
		Page:     page,
		PageSize: pageSize,
	}
}
