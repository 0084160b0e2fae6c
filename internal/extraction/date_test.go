package extraction

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("FindDate", func() {
	DescribeTable("recognized forms",
		func(text, iso string, ambiguous bool) {
			r, ok := FindDate(text)
			Expect(ok).To(BeTrue())
			Expect(r.ISO).To(Equal(iso))
			Expect(r.Ambiguous).To(Equal(ambiguous))
		},
		Entry("year first", "Date: 2024-03-12", "2024-03-12", false),
		Entry("year first with slashes", "2024/3/7", "2024-03-07", false),
		Entry("day first, both readings valid", "12/03/2024", "2024-03-12", true),
		Entry("same day and month", "05/05/2024", "2024-05-05", false),
		Entry("only month first is valid", "03/25/2024", "2024-03-25", false),
		Entry("two digit year in this century", "12.03.24", "2024-03-12", true),
		Entry("two digit year in the last century", "31-12-99", "1999-12-31", false),
		Entry("month name", "March 12, 2024", "2024-03-12", false),
		Entry("abbreviated month with ordinal", "Sept 1st 2023", "2023-09-01", false),
		Entry("day before month name", "15 Jan 2024", "2024-01-15", false),
		Entry("day before month name with ordinal", "22nd February 2020", "2020-02-22", false),
	)

	DescribeTable("rejected candidates",
		func(text string) {
			_, ok := FindDate(text)
			Expect(ok).To(BeFalse())
		},
		Entry("day 31 in a 30 day month", "2024-04-31"),
		Entry("month 13 either way", "13/13/2024"),
		Entry("February 30th", "30/02/2024"),
		Entry("not a month", "Foo 12, 2024"),
		Entry("no date at all", "Total 80.00"),
	)

	It("should skip an invalid candidate and take the next one", func() {
		r, ok := FindDate("2024-02-30 then 2024-02-29")
		Expect(ok).To(BeTrue())
		Expect(r.ISO).To(Equal("2024-02-29"))
	})

	It("should produce dates that re-parse to the same calendar day", func() {
		for _, text := range []string{"12/03/2024", "March 12, 2024", "1 Jan 2000", "29.02.2024"} {
			r, ok := FindDate(text)
			Expect(ok).To(BeTrue(), text)
			t, err := time.Parse(isoDate, r.ISO)
			Expect(err).NotTo(HaveOccurred())
			Expect(t.Format(isoDate)).To(Equal(r.ISO))

			again, ok := FindDate(r.ISO)
			Expect(ok).To(BeTrue())
			Expect(again.ISO).To(Equal(r.ISO))
		}
	})
})

var _ = Describe("dateStrategies", func() {
	It("should report the whole text strategy when a date is present", func() {
		_, how, ok := firstMatch(NewDocument("Acme\n12/03/2024"), dateStrategies)
		Expect(ok).To(BeTrue())
		Expect(how).To(Equal("whole_text"))
	})

	It("should fail without a date", func() {
		_, _, ok := firstMatch(NewDocument("Acme\nTotal 5.00"), dateStrategies)
		Expect(ok).To(BeFalse())
	})
})
