// Copyright 2025-2026
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cmd

import (
	"os"

	"github.com/openfund/fundstats/common"
	"github.com/openfund/fundstats/fund"
	"github.com/openfund/fundstats/loader"
	"github.com/openfund/fundstats/report"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rankOutput string

func init() {
	rankCmd.Flags().StringVarP(&rankOutput, "output", "o", "", "Also write the comparison table to this CSV file")
	rootCmd.AddCommand(rankCmd)
}

var rankCmd = &cobra.Command{
	Use:   "rank <fund-dir>",
	Short: "Rank all funds in a directory by risk-adjusted performance",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		common.SetupLogging()

		series, err := loader.LoadFundDir(args[0])
		if err != nil {
			log.Fatal().Err(err).Str("Dir", args[0]).Msg("could not read fund directory")
		}
		if len(series) == 0 {
			log.Fatal().Str("Dir", args[0]).Msg("no fund series loaded")
		}
		log.Info().Int("NumFunds", len(series)).Msg("loaded fund histories")

		table := fund.RankFunds(series, viper.GetFloat64("analyze.risk_free_rate"))
		report.WriteComparison(os.Stdout, table)

		if rankOutput != "" {
			if err := report.ComparisonCSV(rankOutput, table); err != nil {
				log.Fatal().Err(err).Str("File", rankOutput).Msg("could not write comparison csv")
			}
			log.Info().Str("File", rankOutput).Msg("wrote comparison csv")
		}
	},
}
