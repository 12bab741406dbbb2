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

// Package report renders comparison tables to the terminal, to CSV files,
// and to PNG charts. Percent-like metrics are scaled x100 for display;
// undefined values render as blank cells, never as zero or false.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/openfund/fundstats/fund"

	"github.com/jedib0t/go-pretty/v6/table"
)

// WriteComparison renders the peer-ranking table, followed by the excluded
// subjects when there are any.
func WriteComparison(w io.Writer, t *fund.ComparisonTable) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{
		"Fund", "Years", "CAGR %", "Vol %", "Sharpe", "Max DD %", "Calmar",
		"30D %", "90D %", "180D %", "1Y %", "YTD %",
	})
	for _, row := range t.Rows {
		tw.AppendRow(table.Row{
			row.Name,
			num(row.SpanYears),
			percent(row.CAGR),
			percent(row.Volatility),
			num(row.Sharpe),
			percent(row.MaxDrawdown),
			num(row.Calmar),
			percent(row.Return30),
			percent(row.Return90),
			percent(row.Return180),
			percent(row.Return365),
			percent(row.ReturnYTD),
		})
	}
	tw.Render()

	if len(t.Dropped) == 0 {
		return
	}
	dw := table.NewWriter()
	dw.SetOutputMirror(w)
	dw.SetStyle(table.StyleRounded)
	dw.SetTitle("Excluded (insufficient history)")
	dw.AppendHeader(table.Row{"Fund", "Years"})
	for _, d := range t.Dropped {
		dw.AppendRow(table.Row{d.Name, num(d.SpanYears)})
	}
	dw.Render()
}

// ComparisonCSV writes the comparison table to a CSV file. Undefined values
// become empty fields.
func ComparisonCSV(path string, t *fund.ComparisonTable) error {
	fh, err := os.Create(path)
	if err != nil {
		return err
	}
	defer fh.Close()

	writer := csv.NewWriter(fh)
	defer writer.Flush()

	header := []string{
		"fund", "start", "end", "span_years", "periods_per_year",
		"cagr", "volatility", "sharpe", "max_drawdown", "calmar",
		"return_30d", "return_90d", "return_180d", "return_365d", "return_ytd",
	}
	if err := writer.Write(header); err != nil {
		return err
	}
	for _, row := range t.Rows {
		record := []string{
			row.Name,
			row.Start.Format("2006-01-02"),
			row.End.Format("2006-01-02"),
			csvNum(row.SpanYears),
			csvNum(row.PeriodsPerYear),
			csvNum(row.CAGR),
			csvNum(row.Volatility),
			csvNum(row.Sharpe),
			csvNum(row.MaxDrawdown),
			csvNum(row.Calmar),
			csvNum(row.Return30),
			csvNum(row.Return90),
			csvNum(row.Return180),
			csvNum(row.Return365),
			csvNum(row.ReturnYTD),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	return writer.Error()
}

// WriteYearly renders the fund-vs-index yearly comparison. indexNames fixes
// the column order; the beat_<index> column is blank when the index has no
// data that year.
func WriteYearly(w io.Writer, rows []fund.YearlyRow, indexNames []string) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleRounded)

	header := table.Row{"Fund", "Year", "Return %"}
	for _, name := range indexNames {
		header = append(header, fmt.Sprintf("%s %%", name), fmt.Sprintf("beat_%s", name))
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		record := table.Row{row.Fund, row.Year, percent(row.Return)}
		for _, name := range indexNames {
			outcome := row.Indexes[name]
			record = append(record, percent(outcome.Return), boolCell(outcome.Beat))
		}
		tw.AppendRow(record)
	}
	tw.Render()
}

// YearlyCSV writes the yearly comparison to a CSV file.
func YearlyCSV(path string, rows []fund.YearlyRow, indexNames []string) error {
	fh, err := os.Create(path)
	if err != nil {
		return err
	}
	defer fh.Close()

	writer := csv.NewWriter(fh)
	defer writer.Flush()

	header := []string{"fund", "year", "fund_return"}
	for _, name := range indexNames {
		header = append(header, fmt.Sprintf("%s_return", name), fmt.Sprintf("beat_%s", name))
	}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, row := range rows {
		record := []string{row.Fund, fmt.Sprintf("%d", row.Year), csvNum(row.Return)}
		for _, name := range indexNames {
			outcome := row.Indexes[name]
			record = append(record, csvNum(outcome.Return), boolCell(outcome.Beat))
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	return writer.Error()
}

func percent(x float64) string {
	if math.IsNaN(x) {
		return ""
	}
	return fmt.Sprintf("%.2f", x*100)
}

func num(x float64) string {
	if math.IsNaN(x) {
		return ""
	}
	return fmt.Sprintf("%.2f", x)
}

func csvNum(x float64) string {
	if math.IsNaN(x) {
		return ""
	}
	return fmt.Sprintf("%g", x)
}

func boolCell(b *bool) string {
	if b == nil {
		return ""
	}
	if *b {
		return "true"
	}
	return "false"
}
