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
	"path/filepath"

	"github.com/openfund/fundstats/common"
	"github.com/openfund/fundstats/fund"
	"github.com/openfund/fundstats/loader"
	"github.com/openfund/fundstats/report"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var chartOut string

func init() {
	chartCmd.Flags().StringVarP(&chartOut, "out", "d", ".", "Directory to write chart PNGs into")
	rootCmd.AddCommand(chartCmd)
}

var chartCmd = &cobra.Command{
	Use:   "chart <fund-dir>",
	Short: "Render NAV growth and CAGR charts for eligible funds",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		common.SetupLogging()

		series, err := loader.LoadFundDir(args[0])
		if err != nil {
			log.Fatal().Err(err).Str("Dir", args[0]).Msg("could not read fund directory")
		}

		eligible := make([]*fund.Series, 0, len(series))
		for _, s := range series {
			if ok, _ := fund.EligibleFund(s); ok {
				eligible = append(eligible, s)
			}
		}
		if len(eligible) == 0 {
			log.Fatal().Msg("no eligible funds to chart")
		}

		navPath := filepath.Join(chartOut, "nav.png")
		if err := report.NAVChart(eligible, navPath); err != nil {
			log.Fatal().Err(err).Msg("could not render nav chart")
		}
		log.Info().Str("File", navPath).Msg("wrote nav chart")

		table := fund.RankFunds(eligible, viper.GetFloat64("analyze.risk_free_rate"))
		cagrPath := filepath.Join(chartOut, "cagr.png")
		if err := report.CAGRChart(table, cagrPath); err != nil {
			log.Fatal().Err(err).Msg("could not render cagr chart")
		}
		log.Info().Str("File", cagrPath).Msg("wrote cagr chart")
	},
}
