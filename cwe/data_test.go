package cwe_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/securego/memcheck/cwe"
)

var _ = Describe("CWE data", func() {
	Context("when consulting cwe data", func() {
		It("it should retrieves the weakness", func() {
			weakness := cwe.Get("416")
			Expect(weakness).ShouldNot(BeNil())
			Expect(weakness.ID).Should(Equal("416"))
			Expect(weakness.Name).Should(Equal("Use After Free"))
			Expect(weakness.Description).ShouldNot(BeEmpty())
		})

		It("it should return nil for an unknown weakness", func() {
			Expect(cwe.Get("79")).Should(BeNil())
		})
	})
})
