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

package report

import (
	"errors"
	"math"
	"os"
	"time"

	"github.com/openfund/fundstats/fund"

	"github.com/wcharczuk/go-chart/v2"
)

var ErrNoChartData = errors.New("no data to chart")

// NAVChart renders the growth of each series, normalized to 1.0 at its first
// observation, as a PNG line chart.
func NAVChart(series []*fund.Series, path string) error {
	plots := make([]chart.Series, 0, len(series))
	for _, s := range series {
		if s.Len() < 2 {
			continue
		}
		base := s.First().Value
		ts := chart.TimeSeries{
			Name:    s.Name,
			XValues: make([]time.Time, 0, s.Len()),
			YValues: make([]float64, 0, s.Len()),
		}
		for _, o := range s.Obs {
			ts.XValues = append(ts.XValues, o.Date)
			ts.YValues = append(ts.YValues, o.Value/base)
		}
		plots = append(plots, ts)
	}
	if len(plots) == 0 {
		return ErrNoChartData
	}

	graph := chart.Chart{
		Title:  "Growth of 1 unit",
		Width:  1280,
		Height: 720,
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeDateValueFormatter,
		},
		Series: plots,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	return renderPNG(&graph, path)
}

// CAGRChart renders the comparison table's CAGR column as a PNG bar chart,
// scaled to percent. Funds with undefined CAGR are omitted.
func CAGRChart(table *fund.ComparisonTable, path string) error {
	bars := make([]chart.Value, 0, len(table.Rows))
	for _, row := range table.Rows {
		if math.IsNaN(row.CAGR) {
			continue
		}
		bars = append(bars, chart.Value{
			Label: row.Name,
			Value: row.CAGR * 100,
		})
	}
	if len(bars) == 0 {
		return ErrNoChartData
	}

	graph := chart.BarChart{
		Title:    "CAGR (%)",
		Width:    1280,
		Height:   720,
		BarWidth: 40,
		Bars:     bars,
	}

	fh, err := os.Create(path)
	if err != nil {
		return err
	}
	defer fh.Close()
	return graph.Render(chart.PNG, fh)
}

func renderPNG(graph *chart.Chart, path string) error {
	fh, err := os.Create(path)
	if err != nil {
		return err
	}
	defer fh.Close()
	return graph.Render(chart.PNG, fh)
}
