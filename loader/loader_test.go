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

package loader_test

import (
	"os"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/openfund/fundstats/loader"
)

var _ = Describe("Loader", func() {
	var dir string

	writeFile := func(name string, contents string) string {
		path := filepath.Join(dir, name)
		Expect(os.WriteFile(path, []byte(contents), 0o600)).To(Succeed())
		return path
	}

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
	})

	Describe("when loading a fund CSV", func() {
		It("parses date, nav, and short name", func() {
			path := writeFile("dcds.csv", `date,nav_per_unit,short_name
2022-01-10,52104.3,DCDS
2022-01-03,51873.1,DCDS
`)
			s, err := loader.LoadFund(path)
			Expect(err).To(BeNil())
			Expect(s.Name).To(Equal("DCDS"))
			Expect(s.Len()).To(Equal(2))
			// sorted on load
			Expect(s.First().Date).To(Equal(time.Date(2022, 1, 3, 0, 0, 0, 0, time.UTC)))
			Expect(s.First().Value).To(BeNumerically("~", 51873.1))
		})

		It("derives the identifier from the file name when short_name is absent", func() {
			path := writeFile("vcbf-bcf.csv", `date,nav_per_unit
2022-01-03,21873.1
2022-01-10,22104.3
`)
			s, err := loader.LoadFund(path)
			Expect(err).To(BeNil())
			Expect(s.Name).To(Equal("VCBF-BCF"))
		})

		It("fails when a required column is missing", func() {
			path := writeFile("broken.csv", `date,price
2022-01-03,21873.1
`)
			_, err := loader.LoadFund(path)
			Expect(err).To(MatchError(loader.ErrMissingColumn))
		})

		It("fails on a file with no data rows", func() {
			path := writeFile("empty.csv", "date,nav_per_unit\n")
			_, err := loader.LoadFund(path)
			Expect(err).To(MatchError(loader.ErrEmptyFile))
		})

		It("fails on an unparseable value", func() {
			path := writeFile("bad.csv", `date,nav_per_unit
2022-01-03,not-a-number
`)
			_, err := loader.LoadFund(path)
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("when loading an index CSV", func() {
		It("maps time/close to date/value", func() {
			path := writeFile("vnindex.csv", `time,close
2022-01-04,1525.58
2022-01-05,1522.50
`)
			s, err := loader.LoadIndex(path)
			Expect(err).To(BeNil())
			Expect(s.Name).To(Equal("VNINDEX"))
			Expect(s.Len()).To(Equal(2))
			Expect(s.Last().Value).To(BeNumerically("~", 1522.50))
		})

		It("fails when the close column is missing", func() {
			path := writeFile("broken.csv", `time,nav_per_unit
2022-01-04,1525.58
`)
			_, err := loader.LoadIndex(path)
			Expect(err).To(MatchError(loader.ErrMissingColumn))
		})
	})

	Describe("when loading a directory", func() {
		It("skips unreadable files and loads the rest", func() {
			writeFile("good.csv", `date,nav_per_unit
2022-01-03,21873.1
2022-01-10,22104.3
`)
			writeFile("broken.csv", `date,price
2022-01-03,21873.1
`)
			series, err := loader.LoadFundDir(dir)
			Expect(err).To(BeNil())
			Expect(series).To(HaveLen(1))
			Expect(series[0].Name).To(Equal("GOOD"))
		})

		It("returns an empty slice for a directory with no CSV files", func() {
			series, err := loader.LoadFundDir(dir)
			Expect(err).To(BeNil())
			Expect(series).To(BeEmpty())
		})
	})
})
