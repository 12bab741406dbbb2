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

import "math"

// IndexOutcome is one benchmark's result for a (fund, year) pair. Return is
// NaN and Beat is nil when the index has no data in that year; the missing
// state is never coerced to zero or false.
type IndexOutcome struct {
	Return float64
	Beat   *bool
}

// YearlyRow compares one fund against every benchmark index for a single
// calendar year.
type YearlyRow struct {
	Fund    string
	Year    int
	Return  float64
	Indexes map[string]IndexOutcome
}

// CompareYearly emits one YearlyRow per (fund, calendar year) pair, for each
// year present in that fund's series. Within-year returns use the first and
// last observations inside the year directly; no anchor lookup crosses a
// year boundary. Indices are expected to be pre-filtered by IndexPolicy;
// empty index series simply yield NaN outcomes.
func CompareYearly(funds []*Series, indices []*Series) []YearlyRow {
	rows := make([]YearlyRow, 0, len(funds)*4)

	for _, f := range funds {
		for _, year := range f.Years() {
			row := YearlyRow{
				Fund:    f.Name,
				Year:    year,
				Return:  yearReturn(f, year),
				Indexes: make(map[string]IndexOutcome, len(indices)),
			}

			for _, idx := range indices {
				outcome := IndexOutcome{Return: yearReturn(idx, year)}
				if !math.IsNaN(row.Return) && !math.IsNaN(outcome.Return) {
					beat := row.Return > outcome.Return
					outcome.Beat = &beat
				}
				row.Indexes[idx.Name] = outcome
			}

			rows = append(rows, row)
		}
	}

	return rows
}

// yearReturn is last/first - 1 over the observations within one calendar
// year; NaN when the series has no data that year.
func yearReturn(s *Series, year int) float64 {
	first, last, ok := s.YearBounds(year)
	if !ok {
		return math.NaN()
	}
	return last.Value/first.Value - 1
}
