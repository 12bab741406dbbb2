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
	"time"
)

// DaysPerYear is the single day-count convention used for every span and
// annualization computation in the package. Mixing divisors would make CAGR
// and Sharpe disagree about what a "year" is.
const DaysPerYear = 365.25

// Observation is one NAV (or index level) reading at a point in time.
type Observation struct {
	Date  time.Time
	Value float64
}

// Series is a chronologically ascending, duplicate-free NAV history for a
// single subject (fund or index). Construct with NewSeries which normalizes
// and validates raw input.
type Series struct {
	Name string
	Obs  []Observation
}

// NewSeries builds a normalized Series from raw observations: sorted by date
// ascending and deduplicated keeping the first occurrence of each date.
func NewSeries(name string, obs []Observation) (*Series, error) {
	if name == "" {
		return nil, ErrEmptyIdentifier
	}
	for _, o := range obs {
		if o.Date.IsZero() {
			return nil, ErrZeroDate
		}
		if o.Value <= 0 || math.IsNaN(o.Value) || math.IsInf(o.Value, 0) {
			return nil, ErrNonPositiveValue
		}
	}

	sorted := make([]Observation, len(obs))
	copy(sorted, obs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	// stable sort keeps input order for equal dates; keep the first one
	deduped := sorted[:0]
	for _, o := range sorted {
		if len(deduped) > 0 && deduped[len(deduped)-1].Date.Equal(o.Date) {
			continue
		}
		deduped = append(deduped, o)
	}

	return &Series{
		Name: name,
		Obs:  deduped,
	}, nil
}

func (s *Series) Len() int {
	return len(s.Obs)
}

// First returns the earliest observation; only valid when Len() > 0.
func (s *Series) First() Observation {
	return s.Obs[0]
}

// Last returns the most recent observation; only valid when Len() > 0.
func (s *Series) Last() Observation {
	return s.Obs[len(s.Obs)-1]
}

// SpanYears measures calendar coverage from the first to the last
// observation, NOT the row count. NaN for empty series or non-positive spans.
func (s *Series) SpanYears() float64 {
	if len(s.Obs) == 0 {
		return math.NaN()
	}
	days := s.Last().Date.Sub(s.First().Date).Hours() / 24
	if days <= 0 {
		return math.NaN()
	}
	return days / DaysPerYear
}

// PeriodsPerYear infers the average number of observations per year from the
// series' own calendar. Funds have different dealing schedules, so this
// replaces the usual fixed trading-day assumption.
func (s *Series) PeriodsPerYear() float64 {
	years := s.SpanYears()
	if math.IsNaN(years) || years <= 0 {
		return math.NaN()
	}
	return float64(len(s.Obs)) / years
}

// AtOrBefore returns the most recent observation dated at or before target.
// ok is false when every observation is after target.
func (s *Series) AtOrBefore(target time.Time) (Observation, bool) {
	// first index with date > target
	idx := sort.Search(len(s.Obs), func(i int) bool {
		return s.Obs[i].Date.After(target)
	})
	if idx == 0 {
		return Observation{}, false
	}
	return s.Obs[idx-1], true
}

// PeriodReturn computes the return over the trailing window of the given
// number of calendar days, ending at the last observation. The starting NAV
// is the nearest observation at or before the window anchor, so an irregular
// calendar does not abort the calculation. NaN when the series is too short
// or no observation precedes the anchor.
func (s *Series) PeriodReturn(days int) float64 {
	if len(s.Obs) < 2 {
		return math.NaN()
	}
	end := s.Last()
	anchor := end.Date.AddDate(0, 0, -days)
	start, ok := s.AtOrBefore(anchor)
	if !ok {
		return math.NaN()
	}
	return end.Value/start.Value - 1
}

// Years lists the distinct calendar years present in the series, ascending.
func (s *Series) Years() []int {
	years := make([]int, 0, 16)
	for _, o := range s.Obs {
		y := o.Date.Year()
		if len(years) == 0 || years[len(years)-1] != y {
			years = append(years, y)
		}
	}
	return years
}

// YearBounds returns the first and last observations that fall within the
// given calendar year. ok is false when the series has no data that year.
func (s *Series) YearBounds(year int) (first Observation, last Observation, ok bool) {
	startIdx := sort.Search(len(s.Obs), func(i int) bool {
		return s.Obs[i].Date.Year() >= year
	})
	if startIdx == len(s.Obs) || s.Obs[startIdx].Date.Year() != year {
		return Observation{}, Observation{}, false
	}
	endIdx := sort.Search(len(s.Obs), func(i int) bool {
		return s.Obs[i].Date.Year() > year
	})
	return s.Obs[startIdx], s.Obs[endIdx-1], true
}
