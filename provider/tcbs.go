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

	"github.com/spf13/viper"
)

// Bar is one daily close for an index or stock symbol. The time/close field
// names match the CSV schema the loader expects for indices.
type Bar struct {
	Date  string  `json:"tradingDate"`
	Close float64 `json:"close"`
}

// TCBS downloads daily index/symbol history from the TCBS public API.
type TCBS struct {
	*restClient
	baseURL string
}

func NewTCBS() *TCBS {
	return &TCBS{
		restClient: newRESTClient(viper.GetFloat64("provider.requests_per_second")),
		baseURL:    viper.GetString("provider.tcbs_url"),
	}
}

type barsResponse struct {
	Data []Bar `json:"data"`
}

// SymbolHistory retrieves daily bars for one symbol over [start, end].
func (t *TCBS) SymbolHistory(ctx context.Context, symbol string, start time.Time, end time.Time) ([]Bar, error) {
	url := fmt.Sprintf("%s/stock-insight/v2/stock/bars-long-term?ticker=%s&type=index&resolution=D&from=%d&to=%d",
		t.baseURL, symbol, start.Unix(), end.Unix())

	var resp barsResponse
	if err := t.getJSON(ctx, url, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// DownloadSymbol fetches history for one symbol and writes it as
// <dir>/<symbol>.csv with time/close columns.
func (t *TCBS) DownloadSymbol(ctx context.Context, symbol string, start time.Time, end time.Time, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	bars, err := t.SymbolHistory(ctx, symbol, start, end)
	if err != nil {
		return err
	}

	path := filepath.Join(dir, fmt.Sprintf("%s.csv", symbol))
	fh, err := os.Create(path)
	if err != nil {
		return err
	}
	defer fh.Close()

	writer := csv.NewWriter(fh)
	defer writer.Flush()

	if err := writer.Write([]string{"time", "close"}); err != nil {
		return err
	}
	for _, bar := range bars {
		date, err := time.Parse("2006-01-02", bar.Date)
		if err != nil {
			date, err = time.Parse(time.RFC3339, bar.Date)
			if err != nil {
				return fmt.Errorf("could not parse trading date %q", bar.Date)
			}
		}
		row := []string{
			date.Format("2006-01-02"),
			strconv.FormatFloat(bar.Close, 'f', -1, 64),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	return writer.Error()
}
