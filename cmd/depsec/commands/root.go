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

package commands

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "depsec",
	Short: "Portfolio service",
	Long:  `depsec manages a portfolio of versioned software projects under security analysis.`,
}

func GetRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	viper.SetEnvPrefix("DEPSEC")
	viper.AutomaticEnv()

	viper.SetDefault("port", "8080")
	viper.SetDefault("portfolio_access_control", false)
}
