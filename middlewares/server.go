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
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

func registerMiddlewares(e *echo.Echo) {
	e.Pre(middleware.AddTrailingSlash())

	e.Use(logger())
	e.Use(middleware.Recover())

	e.HTTPErrorHandler = func(err error, ctx echo.Context) {
		// do the logging straight inside the error handler
		// this keeps controller methods clean
		slog.Error(err.Error(), "method", ctx.Request().Method, "path", ctx.Request().URL)

		if ctx.Response().Committed {
			return
		}

		if he, ok := err.(*echo.HTTPError); ok {
			if err := ctx.JSON(he.Code, echo.Map{"message": he.Message}); err != nil {
				slog.Error("could not send error response", "error", err)
			}
			return
		}

		// internals never leak details to the client
		he := &echo.HTTPError{
			Code:    http.StatusInternalServerError,
			Message: http.StatusText(http.StatusInternalServerError),
		}

		message := he.Message
		switch m := he.Message.(type) {
		case string:
			message = echo.Map{"message": m}
		case json.Marshaler:
			// do nothing - this type knows how to format itself to JSON
		case error:
			message = echo.Map{"message": m.Error()}
		}

		if ctx.Request().Method == http.MethodHead {
			if err := ctx.NoContent(he.Code); err != nil {
				slog.Error("could not send error response", "error", err)
			}
		} else {
			if err := ctx.JSON(he.Code, message); err != nil {
				slog.Error("could not send error response", "error", err)
			}
		}
	}
}

var E *echo.Echo

func Server() *echo.Echo {
	E = echo.New()
	E.HideBanner = true
	E.Logger.SetLevel(99)
	registerMiddlewares(E)
	return E
}
