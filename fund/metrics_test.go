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

package fund_test

import (
	"math"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/openfund/fundstats/fund"
)

var _ = Describe("Metrics", func() {
	Describe("with an empty series", func() {
		It("resolves every metric to NaN", func() {
			s, err := fund.NewSeries("VFF", nil)
			Expect(err).To(BeNil())

			m := fund.ComputeMetrics(s, fund.DefaultRiskFree)
			Expect(math.IsNaN(m.CAGR)).To(BeTrue())
			Expect(math.IsNaN(m.Volatility)).To(BeTrue())
			Expect(math.IsNaN(m.Sharpe)).To(BeTrue())
			Expect(math.IsNaN(m.MaxDrawdown)).To(BeTrue())
			Expect(math.IsNaN(m.Calmar)).To(BeTrue())
			Expect(math.IsNaN(m.Return30)).To(BeTrue())
			Expect(math.IsNaN(m.ReturnYTD)).To(BeTrue())
		})
	})

	Describe("with a single observation", func() {
		It("computes a zero drawdown and NaN everywhere else", func() {
			s, err := fund.NewSeries("VFF", []fund.Observation{
				{Date: day(2022, 6, 1), Value: 100},
			})
			Expect(err).To(BeNil())

			m := fund.ComputeMetrics(s, fund.DefaultRiskFree)
			Expect(m.MaxDrawdown).To(Equal(0.0))
			Expect(math.IsNaN(m.CAGR)).To(BeTrue())
			Expect(math.IsNaN(m.Volatility)).To(BeTrue())
			Expect(math.IsNaN(m.Sharpe)).To(BeTrue())
			Expect(math.IsNaN(m.Return30)).To(BeTrue())
			Expect(math.IsNaN(m.Return90)).To(BeTrue())
			Expect(math.IsNaN(m.Return180)).To(BeTrue())
			Expect(math.IsNaN(m.Return365)).To(BeTrue())
			Expect(math.IsNaN(m.ReturnYTD)).To(BeTrue())
		})
	})

	Describe("with a constant-value series", func() {
		var m *fund.MetricSet

		BeforeEach(func() {
			s := dailySeries("FLAT", day(2020, 1, 1), 800, func(i int) float64 {
				return 100
			})
			m = fund.ComputeMetrics(s, fund.DefaultRiskFree)
		})

		It("has zero CAGR", func() {
			Expect(m.CAGR).To(BeNumerically("~", 0, 1e-12))
		})

		It("has zero volatility", func() {
			Expect(m.Volatility).To(BeNumerically("~", 0, 1e-12))
		})

		It("has zero max drawdown", func() {
			Expect(m.MaxDrawdown).To(Equal(0.0))
		})

		It("has NaN Sharpe because the denominator is zero", func() {
			Expect(math.IsNaN(m.Sharpe)).To(BeTrue())
		})

		It("has NaN Calmar because the drawdown is zero", func() {
			Expect(math.IsNaN(m.Calmar)).To(BeTrue())
		})
	})

	Describe("with a linear ramp over one year", func() {
		var m *fund.MetricSet

		BeforeEach(func() {
			// 367 daily values spanning 366 days; 100 -> 110
			s := dailySeries("RAMP", day(2021, 1, 1), 367, func(i int) float64 {
				return 100 + 10*float64(i)/366
			})
			m = fund.ComputeMetrics(s, fund.DefaultRiskFree)
		})

		It("annualizes CAGR with the 365.25 day-count convention", func() {
			expected := math.Pow(1.1, fund.DaysPerYear/366) - 1
			Expect(m.CAGR).To(BeNumerically("~", expected, 1e-9))
			Expect(m.CAGR).To(BeNumerically("~", 0.0998, 5e-4))
		})

		It("has zero drawdown for a monotonic series", func() {
			Expect(m.MaxDrawdown).To(Equal(0.0))
		})

		It("has NaN Calmar when drawdown is zero", func() {
			Expect(math.IsNaN(m.Calmar)).To(BeTrue())
		})

		It("computes every trailing window", func() {
			Expect(math.IsNaN(m.Return30)).To(BeFalse())
			Expect(math.IsNaN(m.Return90)).To(BeFalse())
			Expect(math.IsNaN(m.Return180)).To(BeFalse())
			Expect(math.IsNaN(m.Return365)).To(BeFalse())
			Expect(m.Return30).To(BeNumerically(">", 0))
		})

		It("computes a year-to-date return from the Jan 1 anchor", func() {
			// last observation is 2022-01-02; anchor Jan 1 2022 resolves to
			// the 2022-01-01 observation
			v366 := 100 + 10*366.0/366
			v365 := 100 + 10*365.0/366
			Expect(m.ReturnYTD).To(BeNumerically("~", v366/v365-1, 1e-12))
		})

		It("has a positive Sharpe ratio for drift above the risk-free rate", func() {
			m0 := fund.ComputeMetrics(dailySeries("RAMP", day(2021, 1, 1), 367, func(i int) float64 {
				return 100 + 10*float64(i)/366
			}), 0)
			Expect(m0.Sharpe).To(BeNumerically(">", 0))
		})
	})

	Describe("when a data glitch produces an extreme step return", func() {
		It("clips the step for volatility but not for drawdown", func() {
			// one bad tick: 100 -> 1000 -> 100
			values := []float64{100, 1000, 100, 100}
			s := dailySeries("GLITCH", day(2022, 3, 1), len(values), func(i int) float64 {
				return values[i]
			})
			m := fund.ComputeMetrics(s, fund.DefaultRiskFree)

			// clipped steps: +0.5, -0.5, 0
			sd := 0.5 // sample stdev of {0.5, -0.5, 0}
			periods := 4.0 / (3.0 / fund.DaysPerYear)
			Expect(m.Volatility).To(BeNumerically("~", sd*math.Sqrt(periods), 1e-9))

			// drawdown sees the raw collapse from the bad tick
			Expect(m.MaxDrawdown).To(BeNumerically("~", 100.0/1000.0-1, 1e-12))
		})
	})

	Describe("with a single return observation", func() {
		It("cannot yield a volatility", func() {
			s, err := fund.NewSeries("SHORT", []fund.Observation{
				{Date: day(2022, 5, 2), Value: 100},
				{Date: day(2022, 5, 3), Value: 101},
			})
			Expect(err).To(BeNil())
			m := fund.ComputeMetrics(s, fund.DefaultRiskFree)
			Expect(math.IsNaN(m.Volatility)).To(BeTrue())
			Expect(math.IsNaN(m.Sharpe)).To(BeTrue())
		})
	})

	Describe("independence of metrics", func() {
		It("computes defined metrics even when others are NaN", func() {
			// two observations: CAGR and drawdown defined, volatility and
			// Sharpe undefined (single return), YTD undefined (no prior-year
			// anchor)
			s, err := fund.NewSeries("VFF", []fund.Observation{
				{Date: day(2021, 6, 1), Value: 100},
				{Date: day(2022, 6, 1), Value: 112},
			})
			Expect(err).To(BeNil())

			m := fund.ComputeMetrics(s, fund.DefaultRiskFree)
			Expect(math.IsNaN(m.CAGR)).To(BeFalse())
			Expect(m.MaxDrawdown).To(Equal(0.0))
			Expect(math.IsNaN(m.Volatility)).To(BeTrue())
			Expect(math.IsNaN(m.Sharpe)).To(BeTrue())
			Expect(math.IsNaN(m.ReturnYTD)).To(BeFalse())
			Expect(m.Return365).To(BeNumerically("~", 0.12, 1e-12))
		})
	})
})

var _ = Describe("MetricSet dates", func() {
	It("records the series start and end", func() {
		s, err := fund.NewSeries("VFF", []fund.Observation{
			{Date: day(2021, 2, 1), Value: 100},
			{Date: day(2022, 2, 1), Value: 105},
		})
		Expect(err).To(BeNil())
		m := fund.ComputeMetrics(s, fund.DefaultRiskFree)
		Expect(m.Start).To(Equal(time.Date(2021, 2, 1, 0, 0, 0, 0, time.UTC)))
		Expect(m.End).To(Equal(time.Date(2022, 2, 1, 0, 0, 0, 0, time.UTC)))
	})
})
