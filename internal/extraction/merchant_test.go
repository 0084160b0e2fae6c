package extraction

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("merchantStrategies", func() {
	var (
		text     string
		merchant string
		how      string
		found    bool
	)

	JustBeforeEach(func() {
		merchant, how, found = firstMatch(NewDocument(text), merchantStrategies)
	})

	When("the first line is the store name", func() {
		BeforeEach(func() {
			text = "Acme Store\n12/03/2024\nTotal 80.00"
		})

		It("should pick it from the header", func() {
			Expect(found).To(BeTrue())
			Expect(merchant).To(Equal("Acme Store"))
			Expect(how).To(Equal("header_line"))
		})
	})

	When("the header starts with structural labels", func() {
		BeforeEach(func() {
			text = "TAX INVOICE\nGSTIN 29ABCDE1234F1Z5\n** Sharma & Sons (P) Ltd. **\nTotal 80.00"
		})

		It("should skip them and strip stray symbols", func() {
			Expect(merchant).To(Equal("Sharma & Sons (P) Ltd."))
			Expect(how).To(Equal("header_line"))
		})
	})

	When("a header line is too short once cleaned", func() {
		BeforeEach(func() {
			text = "#A1#\nCorner Cafe"
		})

		It("should move on to the next line", func() {
			Expect(merchant).To(Equal("Corner Cafe"))
		})
	})

	When("no leading line qualifies", func() {
		BeforeEach(func() {
			text = "Invoice\nBill No 4\nDate 1\nTotal\nAmount\nPrice\nzq"
		})

		It("should fall back to the first line with a letter", func() {
			Expect(found).To(BeTrue())
			Expect(merchant).To(Equal("Invoice"))
			Expect(how).To(Equal("first_letter_line"))
		})
	})

	When("no line has a letter", func() {
		BeforeEach(func() {
			text = "123\n45.00"
		})

		It("should find nothing", func() {
			Expect(found).To(BeFalse())
		})
	})
})
