package extraction

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("ParseMinorUnits", func() {
	DescribeTable("parsing tokens",
		func(token string, expected int64) {
			minor, ok := ParseMinorUnits(token)
			Expect(ok).To(BeTrue())
			Expect(minor).To(Equal(expected))
		},
		Entry("European grouping", "1.234,56", int64(123456)),
		Entry("US grouping", "1,234.56", int64(123456)),
		Entry("bare integer", "1234", int64(123400)),
		Entry("rupee symbol", "₹80.00", int64(8000)),
		Entry("Rs prefix", "Rs. 499.50", int64(49950)),
		Entry("comma decimal", "12,50", int64(1250)),
		Entry("comma thousands", "12,500", int64(1250000)),
		Entry("dot thousands", "1.500", int64(150000)),
		Entry("one fractional digit is a thousands group", "12.5", int64(12500)),
		Entry("Indian lakh grouping", "1,23,456.78", int64(12345678)),
		Entry("negative credit", "-45.10", int64(-4510)),
		Entry("leading currency code", "USD 19.99", int64(1999)),
		Entry("no digit before the point", "₹.50", int64(50)),
		Entry("negative with no digit before the point", "-.75", int64(-75)),
	)

	When("the token has no digits", func() {
		It("should report no value", func() {
			_, ok := ParseMinorUnits("Rs.")
			Expect(ok).To(BeFalse())
		})
	})

	When("the value overflows minor units", func() {
		It("should report no value", func() {
			_, ok := ParseMinorUnits("99999999999999999999")
			Expect(ok).To(BeFalse())
		})
	})
})

var _ = Describe("MonetaryAmount", func() {
	DescribeTable("formatting for display",
		func(amount MonetaryAmount, expected string) {
			Expect(amount.String()).To(Equal(expected))
		},
		Entry("rupees with grouping", MonetaryAmount{MinorUnits: 123456, Currency: INR}, "₹1,234.56"),
		Entry("millions", MonetaryAmount{MinorUnits: 123456789, Currency: USD}, "$1,234,567.89"),
		Entry("small negative", MonetaryAmount{MinorUnits: -5, Currency: USD}, "-$0.05"),
		Entry("unknown currency", MonetaryAmount{MinorUnits: 8000, Currency: UnknownCurrency}, "80.00"),
	)

	It("should round trip through the parser", func() {
		for _, minor := range []int64{0, 1, 99, 100, 8000, 123456, 100000000, -4510, 987654321012} {
			for _, c := range []Currency{INR, USD, EUR, GBP, JPY, UnknownCurrency} {
				rendered := MonetaryAmount{MinorUnits: minor, Currency: c}.String()
				parsed, ok := ParseMinorUnits(rendered)
				Expect(ok).To(BeTrue(), rendered)
				Expect(parsed).To(Equal(minor), rendered)
			}
		}
	})
})

var _ = Describe("numericTokens", func() {
	It("should split a row into its amounts", func() {
		Expect(numericTokens("Bread 2 40.00 80.00")).To(Equal([]string{"2", "40.00", "80.00"}))
	})

	It("should not treat a joining hyphen as a sign", func() {
		Expect(numericTokens("Item-2 -5.00")).To(Equal([]string{"2", "-5.00"}))
	})
})
