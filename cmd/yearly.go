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

var yearlyOutput string

func init() {
	yearlyCmd.Flags().StringVarP(&yearlyOutput, "output", "o", "", "Also write the yearly comparison to this CSV file")
	rootCmd.AddCommand(yearlyCmd)
}

var yearlyCmd = &cobra.Command{
	Use:   "yearly <fund-dir> <index-dir>",
	Short: "Compare each fund against benchmark indices year by year",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		common.SetupLogging()

		funds, err := loader.LoadFundDir(args[0])
		if err != nil {
			log.Fatal().Err(err).Str("Dir", args[0]).Msg("could not read fund directory")
		}
		indices, err := loader.LoadIndexDir(args[1])
		if err != nil {
			log.Fatal().Err(err).Str("Dir", args[1]).Msg("could not read index directory")
		}

		policy := fund.IndexPolicy{
			MinFirstYearMonths: viper.GetFloat64("eligibility.index_min_first_year_months"),
			MinYears:           viper.GetInt("eligibility.index_min_years"),
		}
		kept := make([]*fund.Series, 0, len(indices))
		names := make([]string, 0, len(indices))
		for _, idx := range indices {
			if !policy.Eligible(idx) {
				log.Warn().Str("Index", idx.Name).Msg("index rejected by eligibility policy")
				continue
			}
			kept = append(kept, idx)
			names = append(names, idx.Name)
		}
		log.Info().Int("NumFunds", len(funds)).Int("NumIndices", len(kept)).Msg("loaded series")

		rows := fund.CompareYearly(funds, kept)
		report.WriteYearly(os.Stdout, rows, names)

		if yearlyOutput != "" {
			if err := report.YearlyCSV(yearlyOutput, rows, names); err != nil {
				log.Fatal().Err(err).Str("File", yearlyOutput).Msg("could not write yearly csv")
			}
			log.Info().Str("File", yearlyOutput).Msg("wrote yearly csv")
		}
	},
}
