package cwe_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/securego/memcheck/cwe"
)

var _ = Describe("CWE Types", func() {
	Context("when consulting cwe types", func() {
		It("it should retrieves the information and download URIs", func() {
			Expect(cwe.InformationURI).To(Equal("https://cwe.mitre.org/data/published/cwe_v4.4.pdf/"))
			Expect(cwe.DownloadURI).To(Equal("https://cwe.mitre.org/data/xml/cwec_v4.4.xml.zip"))
		})

		It("it should retrieves the weakness ID and URL", func() {
			weakness := &cwe.Weakness{ID: "401"}
			Expect(weakness.SprintID()).To(Equal("CWE-401"))
			Expect(weakness.SprintURL()).To(Equal("https://cwe.mitre.org/data/definitions/401.html"))
		})

		It("it should print a placeholder ID for a missing weakness", func() {
			var weakness *cwe.Weakness
			Expect(weakness.SprintID()).To(Equal("CWE-0000"))
		})

		It("it should marshal only the ID and URL", func() {
			raw, err := cwe.Get("415").MarshalJSON()
			Expect(err).ShouldNot(HaveOccurred())
			Expect(string(raw)).To(Equal(`{"id": "415", "url": "https://cwe.mitre.org/data/definitions/415.html"}`))
		})
	})
})
