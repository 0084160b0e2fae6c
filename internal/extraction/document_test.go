package extraction

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("NormalizeLines", func() {
	var (
		raw   string
		lines []string
	)

	JustBeforeEach(func() {
		lines = NormalizeLines(raw)
	})

	When("the input is empty", func() {
		BeforeEach(func() {
			raw = ""
		})

		It("should yield no lines", func() {
			Expect(lines).To(BeEmpty())
		})
	})

	When("the input mixes line endings and spacing", func() {
		BeforeEach(func() {
			raw = "  Acme  Store \r\n\r\n\tMilk\t\t2   40.00\rTotal  80.00\n   \n"
		})

		It("should split, collapse and trim", func() {
			Expect(lines).To(Equal([]string{"Acme Store", "Milk 2 40.00", "Total 80.00"}))
		})
	})

	When("the input has compatibility characters", func() {
		BeforeEach(func() {
			raw = "ﬁsh ＄１２.５０"
		})

		It("should fold them", func() {
			Expect(lines).To(Equal([]string{"fish $12.50"}))
		})
	})
})

var _ = Describe("DetectCurrency", func() {
	DescribeTable("detecting",
		func(text string, expected Currency) {
			Expect(DetectCurrency(text)).To(Equal(expected))
		},
		Entry("rupee symbol", "Total ₹80.00", INR),
		Entry("Rs abbreviation", "Amount Rs. 120", INR),
		Entry("INR code", "inr 120", INR),
		Entry("dollar sign", "Total $5.00", USD),
		Entry("USD code", "Amount USD 5", USD),
		Entry("euro", "Summe 5,00 €", EUR),
		Entry("pound", "£3.20", GBP),
		Entry("yen", "¥500", JPY),
		Entry("rupee wins over dollar", "$1 ₹80", INR),
		Entry("nothing", "Total 80.00", UnknownCurrency),
		Entry("word containing rs", "Hours 10", UnknownCurrency),
	)

	Describe("ResolveCurrency", func() {
		It("should default to INR when amounts exist", func() {
			Expect(ResolveCurrency("Total 80.00", true)).To(Equal(INR))
		})

		It("should stay unknown without amounts", func() {
			Expect(ResolveCurrency("hello", false)).To(Equal(UnknownCurrency))
		})

		It("should prefer a detected marker", func() {
			Expect(ResolveCurrency("Total $80.00", true)).To(Equal(USD))
		})
	})
})
