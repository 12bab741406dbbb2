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

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/openfund/fundstats/fund"
)

var _ = Describe("RankFunds", func() {
	// rampFund grows linearly by the given daily step over two years
	rampFund := func(name string, step float64) *fund.Series {
		return dailySeries(name, day(2020, 1, 6), 730, func(i int) float64 {
			return 100 + step*float64(i)
		})
	}

	It("returns an empty, non-nil table when nothing is eligible", func() {
		table := fund.RankFunds([]*fund.Series{
			spanSeries("NEW1", day(2022, 6, 1), 90),
			spanSeries("NEW2", day(2022, 6, 1), 30),
		}, fund.DefaultRiskFree)

		Expect(table).NotTo(BeNil())
		Expect(table.Rows).To(BeEmpty())
		Expect(table.Dropped).To(HaveLen(2))
	})

	It("records excluded funds with their span", func() {
		table := fund.RankFunds([]*fund.Series{
			rampFund("OLD", 0.05),
			spanSeries("NEW", day(2022, 6, 1), 90),
		}, fund.DefaultRiskFree)

		Expect(table.Rows).To(HaveLen(1))
		Expect(table.Dropped).To(HaveLen(1))
		Expect(table.Dropped[0].Name).To(Equal("NEW"))
		Expect(table.Dropped[0].SpanYears).To(BeNumerically("~", 90.0/365.25, 1e-12))
	})

	It("sorts by Sharpe descending", func() {
		table := fund.RankFunds([]*fund.Series{
			rampFund("SLOW", 0.01),
			rampFund("FAST", 0.10),
			rampFund("MID", 0.05),
		}, fund.DefaultRiskFree)

		Expect(table.Rows).To(HaveLen(3))
		for ii := 0; ii < len(table.Rows)-1; ii++ {
			a := table.Rows[ii]
			b := table.Rows[ii+1]
			ordered := a.Sharpe > b.Sharpe ||
				(a.Sharpe == b.Sharpe && a.CAGR >= b.CAGR) ||
				math.IsNaN(b.Sharpe)
			Expect(ordered).To(BeTrue())
		}
	})

	It("breaks Sharpe ties by CAGR descending", func() {
		// two flat funds: Sharpe NaN for both, CAGR zero for both; then one
		// fund with defined Sharpe must sort first
		flat1 := dailySeries("FLAT1", day(2020, 1, 6), 500, func(i int) float64 { return 100 })
		flat2 := dailySeries("FLAT2", day(2020, 1, 6), 500, func(i int) float64 { return 200 })
		grow := rampFund("GROW", 0.05)

		table := fund.RankFunds([]*fund.Series{flat1, grow, flat2}, fund.DefaultRiskFree)
		Expect(table.Rows).To(HaveLen(3))
		Expect(table.Rows[0].Name).To(Equal("GROW"))
		// NaN Sharpe rows sort last regardless of direction
		Expect(math.IsNaN(table.Rows[1].Sharpe)).To(BeTrue())
		Expect(math.IsNaN(table.Rows[2].Sharpe)).To(BeTrue())
	})

	It("skips metric computation for ineligible funds", func() {
		// an ineligible fund appears only in the dropped list
		table := fund.RankFunds([]*fund.Series{
			spanSeries("NEW", day(2022, 6, 1), 10),
		}, fund.DefaultRiskFree)
		Expect(table.Rows).To(BeEmpty())
		Expect(table.Dropped).To(HaveLen(1))
	})
})
