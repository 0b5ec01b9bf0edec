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
	"log/slog"
	"os"
	"time"

	"github.com/depsec-io/depsec/database"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/lmittmann/tint"
	"github.com/package-url/packageurl-go"
	"gorm.io/gorm"
)

type Server = *echo.Group
type MiddlewareFunc = echo.MiddlewareFunc
type Context = echo.Context
type DB = *gorm.DB

func DatabaseFactory() (DB, error) {
	db, err := database.NewConnection(os.Getenv("POSTGRES_HOST"), os.Getenv("POSTGRES_USER"), os.Getenv("POSTGRES_PASSWORD"), os.Getenv("POSTGRES_DB"), os.Getenv("POSTGRES_PORT"))

	return db, err
}

// InitLogger initializes the logger with a tint handler.
// tint is a simple logging library that allows to add colors to the log output.
// this is obviously not required, but it makes the logs easier to read.
func InitLogger() {
	w := os.Stderr

	// set global logger with custom options
	slog.SetDefault(slog.New(
		tint.NewHandler(w, &tint.Options{
			Level:      slog.LevelDebug,
			AddSource:  true,
			TimeFormat: time.Kitchen,
		}),
	))
}

func LoadConfig() error {
	return godotenv.Load()
}

var V = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// purl fields carry a full package-url, validated by the reference parser
	_ = v.RegisterValidation("purl", func(fl validator.FieldLevel) bool {
		_, err := packageurl.FromString(fl.Field().String())
		return err == nil
	})
	return v
}
