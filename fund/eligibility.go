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

const (
	// MinFundSpanYears is the minimum first-to-last calendar span a fund
	// needs before it enters a peer comparison.
	MinFundSpanYears = 1.0

	// daysPerMonth is the average month length used by the index coverage
	// check.
	daysPerMonth = 30.44
)

// EligibleFund reports whether a fund has enough history for the peer
// comparison, along with the computed span (possibly NaN) for the audit
// record of excluded subjects.
func EligibleFund(s *Series) (bool, float64) {
	span := s.SpanYears()
	return !math.IsNaN(span) && span >= MinFundSpanYears, span
}

// IndexPolicy is the stricter two-stage eligibility rule applied to market
// indices before they are used as benchmarks.
type IndexPolicy struct {
	// MinFirstYearMonths is the minimum months of coverage required within
	// a calendar year for that year to count as the valid start year.
	MinFirstYearMonths float64

	// MinYears is the minimum number of calendar years, counted from the
	// valid start year onward, the index must have data for.
	MinYears int
}

func DefaultIndexPolicy() IndexPolicy {
	return IndexPolicy{
		MinFirstYearMonths: 3,
		MinYears:           2,
	}
}

// Eligible applies the two-stage rule. Stage one anchors on the series'
// first calendar year: it must carry at least MinFirstYearMonths of
// first-to-last coverage to be the valid start year, otherwise the whole
// series is rejected (an index that appears in November cannot anchor a
// yearly comparison). Stage two requires at least MinYears distinct calendar
// years from the valid start year onward. Coverage is measured as date span
// only, not observation density; two observations in January and December of
// one year count as eleven months.
func (p IndexPolicy) Eligible(s *Series) bool {
	years := s.Years()
	if len(years) == 0 {
		return false
	}

	first, last, ok := s.YearBounds(years[0])
	if !ok {
		return false
	}
	months := last.Date.Sub(first.Date).Hours() / 24 / daysPerMonth
	if months < p.MinFirstYearMonths {
		return false
	}
	validStart := years[0]

	count := 0
	for _, y := range years {
		if y >= validStart {
			count++
		}
	}
	return count >= p.MinYears
}
