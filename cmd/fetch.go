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
	"context"
	"path/filepath"
	"time"

	"github.com/openfund/fundstats/common"
	"github.com/openfund/fundstats/provider"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	fetchType string
	fetchOut  string

	indexOut   string
	indexStart string
	indexEnd   string
)

// per-type subdirectory names, matching the layout the analyzer expects
var fundTypeDirs = map[provider.FundType]string{
	provider.FundTypeBond:     "bond_fund",
	provider.FundTypeBalanced: "balanced_fund",
	provider.FundTypeStock:    "stock_fund",
}

func init() {
	fetchCmd.Flags().StringVarP(&fetchType, "type", "t", "all", "Fund type to download: bond, balanced, stock, or all")
	fetchCmd.Flags().StringVarP(&fetchOut, "out", "d", "data", "Directory to write per-fund CSV files into")
	rootCmd.AddCommand(fetchCmd)

	fetchIndexCmd.Flags().StringVarP(&indexOut, "out", "d", "data/index", "Directory to write index CSV files into")
	fetchIndexCmd.Flags().StringVar(&indexStart, "start", "2010-01-01", "Start date (YYYY-MM-DD)")
	fetchIndexCmd.Flags().StringVar(&indexEnd, "end", "", "End date (YYYY-MM-DD); defaults to today")
	rootCmd.AddCommand(fetchIndexCmd)
}

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download NAV histories for all listed open-end funds",
	Run: func(cmd *cobra.Command, args []string) {
		common.SetupLogging()
		ctx := context.Background()

		var types []provider.FundType
		if fetchType == "all" {
			types = []provider.FundType{provider.FundTypeBond, provider.FundTypeBalanced, provider.FundTypeStock}
		} else {
			ft, err := provider.ParseFundType(fetchType)
			if err != nil {
				log.Fatal().Err(err).Msg("invalid fund type")
			}
			types = []provider.FundType{ft}
		}

		client := provider.NewFMarket()
		for _, ft := range types {
			dir := filepath.Join(fetchOut, fundTypeDirs[ft])
			log.Info().Str("FundType", string(ft)).Str("Dir", dir).Msg("downloading fund histories")
			if err := client.DownloadAll(ctx, ft, dir); err != nil {
				log.Fatal().Err(err).Str("FundType", string(ft)).Msg("download failed")
			}
		}
		log.Info().Msg("all fund data downloaded")
	},
}

var fetchIndexCmd = &cobra.Command{
	Use:   "fetch-index <symbol>...",
	Short: "Download daily history for one or more index symbols",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		common.SetupLogging()
		ctx := context.Background()

		start, err := time.Parse("2006-01-02", indexStart)
		if err != nil {
			log.Fatal().Err(err).Str("Start", indexStart).Msg("invalid start date")
		}
		end := time.Now()
		if indexEnd != "" {
			end, err = time.Parse("2006-01-02", indexEnd)
			if err != nil {
				log.Fatal().Err(err).Str("End", indexEnd).Msg("invalid end date")
			}
		}

		client := provider.NewTCBS()
		for _, symbol := range args {
			if err := client.DownloadSymbol(ctx, symbol, start, end, indexOut); err != nil {
				log.Error().Err(err).Str("Symbol", symbol).Msg("could not download symbol history")
				continue
			}
			log.Info().Str("Symbol", symbol).Msg("downloaded symbol history")
		}
	},
}
