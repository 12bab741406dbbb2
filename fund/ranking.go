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

package fund

import (
	"math"
	"sort"
)

// ComparisonRow is one eligible fund's entry in the peer comparison.
type ComparisonRow struct {
	Name string
	MetricSet
}

// Excluded records a subject dropped by the eligibility filter, with the
// span that disqualified it (NaN when it could not be computed).
type Excluded struct {
	Name      string
	SpanYears float64
}

// ComparisonTable is the peer-ranking output: metric rows sorted by
// (Sharpe desc, CAGR desc) plus the audit list of excluded subjects. A
// non-nil table with no rows means "computed, nothing eligible".
type ComparisonTable struct {
	Rows    []ComparisonRow
	Dropped []Excluded
}

// RankFunds runs the metrics engine over every eligible fund and builds the
// sorted comparison table. Ineligible funds are recorded and skipped before
// any metric work is done for them.
func RankFunds(series []*Series, riskFree float64) *ComparisonTable {
	table := &ComparisonTable{
		Rows:    []ComparisonRow{},
		Dropped: []Excluded{},
	}

	for _, s := range series {
		ok, span := EligibleFund(s)
		if !ok {
			table.Dropped = append(table.Dropped, Excluded{Name: s.Name, SpanYears: span})
			continue
		}
		table.Rows = append(table.Rows, ComparisonRow{
			Name:      s.Name,
			MetricSet: *ComputeMetrics(s, riskFree),
		})
	}

	sort.SliceStable(table.Rows, func(i, j int) bool {
		if c := compareDesc(table.Rows[i].Sharpe, table.Rows[j].Sharpe); c != 0 {
			return c < 0
		}
		return compareDesc(table.Rows[i].CAGR, table.Rows[j].CAGR) < 0
	})

	return table
}

// compareDesc orders descending with NaN always last regardless of
// direction: -1 when a sorts before b, +1 after, 0 equal.
func compareDesc(a, b float64) int {
	aNaN := math.IsNaN(a)
	bNaN := math.IsNaN(b)
	switch {
	case aNaN && bNaN:
		return 0
	case aNaN:
		return 1
	case bNaN:
		return -1
	case a > b:
		return -1
	case a < b:
		return 1
	}
	return 0
}
