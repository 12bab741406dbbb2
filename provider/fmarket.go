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

package provider

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// FundType selects the fmarket fund asset class.
type FundType string

const (
	FundTypeBond     FundType = "BOND"
	FundTypeBalanced FundType = "BALANCED"
	FundTypeStock    FundType = "STOCK"
)

// ParseFundType maps a CLI argument to a FundType.
func ParseFundType(s string) (FundType, error) {
	switch s {
	case "bond":
		return FundTypeBond, nil
	case "balanced":
		return FundTypeBalanced, nil
	case "stock":
		return FundTypeStock, nil
	}
	return "", fmt.Errorf("unknown fund type %q (want bond, balanced, or stock)", s)
}

// FundInfo is one listed open-end fund.
type FundInfo struct {
	ID        int    `json:"id"`
	ShortName string `json:"shortName"`
	Name      string `json:"name"`
}

// NAVPoint is one entry in a fund's NAV report.
type NAVPoint struct {
	Date string  `json:"navDate"`
	NAV  float64 `json:"nav"`
}

// FMarket downloads open-end fund NAV reports from the fmarket API.
type FMarket struct {
	*restClient
	baseURL string
}

func NewFMarket() *FMarket {
	return &FMarket{
		restClient: newRESTClient(viper.GetFloat64("provider.requests_per_second")),
		baseURL:    viper.GetString("provider.fmarket_url"),
	}
}

type fundListRequest struct {
	Types          []string `json:"types"`
	FundAssetTypes []string `json:"fundAssetTypes"`
	Page           int      `json:"page"`
	PageSize       int      `json:"pageSize"`
	SortField      string   `json:"sortField"`
	SortOrder      string   `json:"sortOrder"`
}

type fundListResponse struct {
	Data struct {
		Total int        `json:"total"`
		Rows  []FundInfo `json:"rows"`
	} `json:"data"`
}

// ListFunds retrieves the listed funds of one asset class.
func (f *FMarket) ListFunds(ctx context.Context, fundType FundType) ([]FundInfo, error) {
	req := fundListRequest{
		Types:          []string{"NEW_FUND", "TRADING_FUND"},
		FundAssetTypes: []string{string(fundType)},
		Page:           1,
		PageSize:       1000,
		SortField:      "navTo6Months",
		SortOrder:      "DESC",
	}

	var resp fundListResponse
	url := fmt.Sprintf("%s/products/filter", f.baseURL)
	if err := f.postJSON(ctx, url, req, &resp); err != nil {
		return nil, err
	}
	if len(resp.Data.Rows) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoFunds, fundType)
	}
	return resp.Data.Rows, nil
}

type navHistoryRequest struct {
	ProductID int `json:"productId"`
	IsAllData int `json:"isAllData"`
}

type navHistoryResponse struct {
	Data []NAVPoint `json:"data"`
}

// NAVHistory retrieves the full NAV report for one fund.
func (f *FMarket) NAVHistory(ctx context.Context, fundID int) ([]NAVPoint, error) {
	req := navHistoryRequest{
		ProductID: fundID,
		IsAllData: 1,
	}

	var resp navHistoryResponse
	url := fmt.Sprintf("%s/product/get-nav-history", f.baseURL)
	if err := f.postJSON(ctx, url, req, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// DownloadAll fetches the NAV report of every fund of the given type and
// writes one CSV per fund into dir. Funds are processed in chunks with a
// pause between chunks to stay inside the provider's rate limit; a failed
// fund is logged and skipped, it never aborts the batch.
func (f *FMarket) DownloadAll(ctx context.Context, fundType FundType, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	funds, err := f.ListFunds(ctx, fundType)
	if err != nil {
		return err
	}

	chunkSize := viper.GetInt("fetch.chunk_size")
	if chunkSize <= 0 {
		chunkSize = 10
	}
	pause := viper.GetDuration("fetch.chunk_pause")

	numChunks := (len(funds) + chunkSize - 1) / chunkSize
	for chunkIdx := 0; chunkIdx*chunkSize < len(funds); chunkIdx++ {
		log.Info().Int("Chunk", chunkIdx+1).Int("NumChunks", numChunks).Str("FundType", string(fundType)).Msg("processing fund chunk")

		end := (chunkIdx + 1) * chunkSize
		if end > len(funds) {
			end = len(funds)
		}
		for _, info := range funds[chunkIdx*chunkSize : end] {
			subLog := log.With().Str("Fund", info.ShortName).Logger()
			points, err := f.NAVHistory(ctx, info.ID)
			if err != nil {
				subLog.Error().Err(err).Msg("could not download nav report")
				continue
			}
			if err := writeFundCSV(dir, info.ShortName, points); err != nil {
				subLog.Error().Err(err).Msg("could not write nav report")
				continue
			}
			subLog.Info().Int("NumObservations", len(points)).Msg("downloaded nav report")
		}

		if end < len(funds) && pause > 0 {
			log.Info().Dur("Pause", pause).Msg("waiting between chunks to avoid rate limit")
			if err := sleepCtx(ctx, pause); err != nil {
				return err
			}
		}
	}

	return nil
}

func writeFundCSV(dir string, shortName string, points []NAVPoint) error {
	path := filepath.Join(dir, fmt.Sprintf("%s.csv", shortName))
	fh, err := os.Create(path)
	if err != nil {
		return err
	}
	defer fh.Close()

	writer := csv.NewWriter(fh)
	defer writer.Flush()

	if err := writer.Write([]string{"date", "nav_per_unit", "short_name"}); err != nil {
		return err
	}
	for _, p := range points {
		date, err := time.Parse("2006-01-02", p.Date)
		if err != nil {
			// fmarket occasionally returns timestamped dates
			date, err = time.Parse("2006-01-02T15:04:05", p.Date)
			if err != nil {
				return fmt.Errorf("could not parse nav date %q", p.Date)
			}
		}
		row := []string{
			date.Format("2006-01-02"),
			strconv.FormatFloat(p.NAV, 'f', -1, 64),
			shortName,
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	return writer.Error()
}
