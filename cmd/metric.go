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
	"fmt"

	"github.com/openfund/fundstats/common"
	"github.com/openfund/fundstats/fund"
	"github.com/openfund/fundstats/loader"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(metricCmd)
}

var metricCmd = &cobra.Command{
	Use:   "metric <fund.csv> [name]",
	Short: "calculate metrics for a single fund (mostly useful for debugging)",
	Args:  cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		common.SetupLogging()

		s, err := loader.LoadFund(args[0])
		if err != nil {
			log.Fatal().Err(err).Str("File", args[0]).Msg("could not load fund")
		}

		m := fund.ComputeMetrics(s, viper.GetFloat64("analyze.risk_free_rate"))

		values := map[string]float64{
			"spanYears":      m.SpanYears,
			"periodsPerYear": m.PeriodsPerYear,
			"cagr":           m.CAGR,
			"volatility":     m.Volatility,
			"sharpe":         m.Sharpe,
			"maxDrawdown":    m.MaxDrawdown,
			"calmar":         m.Calmar,
			"return30":       m.Return30,
			"return90":       m.Return90,
			"return180":      m.Return180,
			"return365":      m.Return365,
			"returnYTD":      m.ReturnYTD,
		}

		if len(args) == 2 {
			v, ok := values[args[1]]
			if !ok {
				log.Fatal().Str("Metric", args[1]).Msg("unknown metric name")
			}
			fmt.Printf("%s\t%s\t%f\n", s.Name, args[1], v)
			return
		}

		fmt.Printf("%s (%s to %s)\n", s.Name, m.Start.Format("2006-01-02"), m.End.Format("2006-01-02"))
		order := []string{
			"spanYears", "periodsPerYear", "cagr", "volatility", "sharpe",
			"maxDrawdown", "calmar", "return30", "return90", "return180",
			"return365", "returnYTD",
		}
		for _, name := range order {
			fmt.Printf("%-16s%f\n", name, values[name])
		}
	},
}
