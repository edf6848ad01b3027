package main

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("prepareVersionInfo", func() {
	var origVersion string

	BeforeEach(func() {
		origVersion = Version
	})

	AfterEach(func() {
		Version = origVersion
	})

	It("should fall back to 'dev' without build information", func() {
		Version = ""
		prepareVersionInfo()
		Expect(Version).To(Equal("dev"))
	})

	It("should not change an injected Version", func() {
		Version = "1.2.3"
		prepareVersionInfo()
		Expect(Version).To(Equal("1.2.3"))
	})
})
