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
	"os"
	"time"

	"github.com/openfund/fundstats/common"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Analysis
	viper.BindEnv("analyze.risk_free_rate", "FUNDSTATS_RISK_FREE")
	rootCmd.PersistentFlags().Float64("risk-free", 0.03, "Annual risk-free rate used for Sharpe ratios")
	viper.BindPFlag("analyze.risk_free_rate", rootCmd.PersistentFlags().Lookup("risk-free"))

	viper.SetDefault("eligibility.index_min_first_year_months", 3.0)
	viper.SetDefault("eligibility.index_min_years", 2)

	// Providers
	viper.SetDefault("provider.fmarket_url", "https://api.fmarket.vn/res")
	viper.SetDefault("provider.tcbs_url", "https://apipubaws.tcbs.com.vn")
	viper.SetDefault("provider.requests_per_second", 2.0)
	viper.SetDefault("fetch.chunk_size", 10)
	viper.SetDefault("fetch.chunk_pause", 90*time.Second)

	// Logging configuration
	viper.BindEnv("log.level", "FUNDSTATS_LOG_LEVEL")
	rootCmd.PersistentFlags().String("log-level", "warning", "Logging level")
	viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))

	viper.BindEnv("log.report_caller", "FUNDSTATS_LOG_REPORT_CALLER")
	rootCmd.PersistentFlags().Bool("log-report-caller", false, "Log function name that called log statement")
	viper.BindPFlag("log.report_caller", rootCmd.PersistentFlags().Lookup("log-report-caller"))

	viper.BindEnv("log.output", "FUNDSTATS_LOG_OUTPUT")
	rootCmd.PersistentFlags().String("log-output", "stderr", "Write logs to specified output one of: file path, `stdout`, or `stderr`")
	viper.BindPFlag("log.output", rootCmd.PersistentFlags().Lookup("log-output"))

	viper.BindEnv("log.pretty", "FUNDSTATS_LOG_PRETTY")
	rootCmd.PersistentFlags().Bool("log-pretty", false, "Print colorized logs for human consumption")
	viper.BindPFlag("log.pretty", rootCmd.PersistentFlags().Lookup("log-pretty"))
}

var rootCmd = &cobra.Command{
	Use:     "fundstats",
	Version: common.CurrentVersion.String(),
	Short:   "Fundstats computes and ranks historical fund performance",
	Long: `Fundstats turns per-fund NAV histories into standardized risk/return
metrics, ranks funds against their peers, and compares them against market
indices year by year.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
