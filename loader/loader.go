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

// Package loader reads per-subject NAV histories from CSV files and
// normalizes them into fund.Series values. Fund files carry the columns
// date,nav_per_unit[,short_name]; index files carry time,close. A file with
// a broken schema fails on its own, never the whole batch.
package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/openfund/fundstats/fund"

	"github.com/rs/zerolog/log"
)

var (
	ErrMissingColumn = errors.New("required column missing")
	ErrEmptyFile     = errors.New("file contains no data rows")
)

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"02/01/2006",
}

// LoadFund reads one fund CSV. The subject identifier comes from the
// short_name column when present, otherwise from the upper-cased file stem.
func LoadFund(path string) (*fund.Series, error) {
	header, rows, err := readCSV(path)
	if err != nil {
		return nil, err
	}

	dateIdx, ok := header["date"]
	if !ok {
		return nil, fmt.Errorf("%s: column 'date': %w", path, ErrMissingColumn)
	}
	navIdx, ok := header["nav_per_unit"]
	if !ok {
		return nil, fmt.Errorf("%s: column 'nav_per_unit': %w", path, ErrMissingColumn)
	}
	nameIdx, hasName := header["short_name"]

	name := fileStem(path)
	obs := make([]fund.Observation, 0, len(rows))
	for _, row := range rows {
		o, err := parseObservation(row[dateIdx], row[navIdx])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		obs = append(obs, o)
		if hasName && row[nameIdx] != "" {
			name = row[nameIdx]
		}
	}

	return fund.NewSeries(name, obs)
}

// LoadIndex reads one index CSV; source columns time/close map to
// date/value. The identifier is the upper-cased file stem.
func LoadIndex(path string) (*fund.Series, error) {
	header, rows, err := readCSV(path)
	if err != nil {
		return nil, err
	}

	dateIdx, ok := header["time"]
	if !ok {
		return nil, fmt.Errorf("%s: column 'time': %w", path, ErrMissingColumn)
	}
	closeIdx, ok := header["close"]
	if !ok {
		return nil, fmt.Errorf("%s: column 'close': %w", path, ErrMissingColumn)
	}

	obs := make([]fund.Observation, 0, len(rows))
	for _, row := range rows {
		o, err := parseObservation(row[dateIdx], row[closeIdx])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		obs = append(obs, o)
	}

	return fund.NewSeries(fileStem(path), obs)
}

// LoadFundDir loads every *.csv under dir as a fund series. Files that fail
// to load are logged and skipped; each subject's load is independent.
func LoadFundDir(dir string) ([]*fund.Series, error) {
	return loadDir(dir, LoadFund)
}

// LoadIndexDir loads every *.csv under dir as an index series.
func LoadIndexDir(dir string) ([]*fund.Series, error) {
	return loadDir(dir, LoadIndex)
}

func loadDir(dir string, loadOne func(string) (*fund.Series, error)) ([]*fund.Series, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.csv"))
	if err != nil {
		return nil, err
	}

	series := make([]*fund.Series, 0, len(paths))
	for _, path := range paths {
		s, err := loadOne(path)
		if err != nil {
			log.Warn().Err(err).Str("File", path).Msg("skipping unreadable series")
			continue
		}
		series = append(series, s)
	}
	return series, nil
}

func readCSV(path string) (map[string]int, [][]string, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer fh.Close()

	reader := csv.NewReader(fh)
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(records) < 2 {
		return nil, nil, fmt.Errorf("%s: %w", path, ErrEmptyFile)
	}

	header := make(map[string]int, len(records[0]))
	for ii, col := range records[0] {
		header[strings.ToLower(strings.TrimSpace(col))] = ii
	}
	return header, records[1:], nil
}

func parseObservation(dateStr, valueStr string) (fund.Observation, error) {
	var date time.Time
	var err error
	for _, layout := range dateLayouts {
		date, err = time.Parse(layout, strings.TrimSpace(dateStr))
		if err == nil {
			break
		}
	}
	if err != nil {
		return fund.Observation{}, fmt.Errorf("could not parse date %q", dateStr)
	}

	value, err := strconv.ParseFloat(strings.TrimSpace(valueStr), 64)
	if err != nil {
		return fund.Observation{}, fmt.Errorf("could not parse value %q", valueStr)
	}

	return fund.Observation{Date: date, Value: value}, nil
}

func fileStem(path string) string {
	base := filepath.Base(path)
	return strings.ToUpper(strings.TrimSuffix(base, filepath.Ext(base)))
}
