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
	"time"

	"gonum.org/v1/gonum/stat"
)

const (
	// DefaultRiskFree is the annual risk-free rate assumed when the caller
	// does not supply one.
	DefaultRiskFree = 0.03

	// fallbackPeriodsPerYear is the trading-day convention used when the
	// observation frequency cannot be inferred from the series itself.
	fallbackPeriodsPerYear = 252

	// returnClip bounds per-step returns fed into the mean/volatility/Sharpe
	// pipeline. Dampens data-entry glitches (bad ticks, unadjusted splits)
	// without discarding the observation. CAGR, drawdown, and windowed
	// returns see the raw values.
	returnClip = 0.5
)

// Trailing return windows, in calendar days.
var TrailingWindows = []int{30, 90, 180, 365}

// MetricSet holds the full statistic set for one series. Every numeric field
// is NaN when there is not enough data to compute it; never zero.
type MetricSet struct {
	Start          time.Time
	End            time.Time
	SpanYears      float64
	PeriodsPerYear float64
	CAGR           float64
	Volatility     float64
	Sharpe         float64
	MaxDrawdown    float64
	Calmar         float64
	Return30       float64
	Return90       float64
	Return180      float64
	Return365      float64
	ReturnYTD      float64
}

// ComputeMetrics calculates the complete MetricSet for a series given an
// annual risk-free rate. Metrics are independent: one resolving to NaN never
// blocks the others.
func ComputeMetrics(s *Series, riskFree float64) *MetricSet {
	m := &MetricSet{
		SpanYears:      s.SpanYears(),
		PeriodsPerYear: s.PeriodsPerYear(),
		CAGR:           math.NaN(),
		Volatility:     math.NaN(),
		Sharpe:         math.NaN(),
		MaxDrawdown:    math.NaN(),
		Calmar:         math.NaN(),
		Return30:       math.NaN(),
		Return90:       math.NaN(),
		Return180:      math.NaN(),
		Return365:      math.NaN(),
		ReturnYTD:      math.NaN(),
	}
	if s.Len() == 0 {
		return m
	}

	m.Start = s.First().Date
	m.End = s.Last().Date

	// CAGR from raw first/last values
	if years := m.SpanYears; !math.IsNaN(years) && years > 0 {
		m.CAGR = math.Pow(s.Last().Value/s.First().Value, 1/years) - 1
	}

	// annualization factor; never let a degenerate calendar kill the
	// volatility/Sharpe computation outright
	periods := m.PeriodsPerYear
	if math.IsNaN(periods) || periods <= 0 {
		periods = fallbackPeriodsPerYear
	}

	clipped := clippedReturns(s)
	if len(clipped) >= 2 {
		sd := stat.StdDev(clipped, nil)
		m.Volatility = sd * math.Sqrt(periods)
		if sd > 0 {
			rfPeriod := math.Pow(1+riskFree, 1/periods) - 1
			m.Sharpe = (stat.Mean(clipped, nil) - rfPeriod) / sd * math.Sqrt(periods)
		}
	}

	m.MaxDrawdown = maxDrawdown(s)
	if !math.IsNaN(m.CAGR) && !math.IsNaN(m.MaxDrawdown) && m.MaxDrawdown != 0 {
		m.Calmar = m.CAGR / math.Abs(m.MaxDrawdown)
	}

	m.Return30 = s.PeriodReturn(30)
	m.Return90 = s.PeriodReturn(90)
	m.Return180 = s.PeriodReturn(180)
	m.Return365 = s.PeriodReturn(365)
	m.ReturnYTD = ytdReturn(s)

	return m
}

// clippedReturns computes per-step returns bounded to ±returnClip.
func clippedReturns(s *Series) []float64 {
	if s.Len() < 2 {
		return nil
	}
	rets := make([]float64, 0, s.Len()-1)
	for i := 1; i < s.Len(); i++ {
		r := s.Obs[i].Value/s.Obs[i-1].Value - 1
		if r > returnClip {
			r = returnClip
		} else if r < -returnClip {
			r = -returnClip
		}
		rets = append(rets, r)
	}
	return rets
}

// maxDrawdown returns the most negative peak-to-trough decline; 0 for a
// series that never falls below a prior peak.
func maxDrawdown(s *Series) float64 {
	if s.Len() == 0 {
		return math.NaN()
	}
	peak := s.Obs[0].Value
	maxDD := 0.0
	for _, o := range s.Obs {
		peak = math.Max(peak, o.Value)
		dd := o.Value/peak - 1
		if dd < maxDD {
			maxDD = dd
		}
	}
	return maxDD
}

// ytdReturn anchors at Jan 1 of the last observation's year and uses the
// nearest-prior observation as the starting NAV.
func ytdReturn(s *Series) float64 {
	if s.Len() < 2 {
		return math.NaN()
	}
	end := s.Last()
	anchor := time.Date(end.Date.Year(), time.January, 1, 0, 0, 0, 0, end.Date.Location())
	start, ok := s.AtOrBefore(anchor)
	if !ok {
		return math.NaN()
	}
	return end.Value/start.Value - 1
}
