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

package main

import (
	"log/slog"
	"os"

	"github.com/depsec-io/depsec/cmd/depsec/commands"
	"github.com/depsec-io/depsec/shared"

	_ "github.com/lib/pq"
)

func main() {
	shared.LoadConfig() // nolint: errcheck
	shared.InitLogger()

	root := commands.GetRootCmd()
	root.AddCommand(commands.NewServeCommand())
	root.AddCommand(commands.NewMigrateCommand())

	if err := root.Execute(); err != nil {
		slog.Error("error executing command", "err", err)
		os.Exit(1)
	}
}
