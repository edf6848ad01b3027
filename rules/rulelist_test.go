package rules_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/securego/memcheck/rules"
)

var _ = Describe("Rule list", func() {
	It("should generate every rule by default", func() {
		list := rules.Generate()
		Expect(list).Should(HaveLen(19))
		Expect(list.IDs()[0]).Should(Equal(rules.AllocUnassigned))
		Expect(list.IDs()[18]).Should(Equal(rules.LeakUnknown))
	})

	It("should exclude filtered rules", func() {
		list := rules.Generate(rules.NewRuleFilter(true, rules.Leak, rules.DerefUntracked))
		Expect(list.Enabled(rules.Leak)).Should(BeFalse())
		Expect(list.Enabled(rules.DerefUntracked)).Should(BeFalse())
		Expect(list.Enabled(rules.DoubleFree)).Should(BeTrue())
		Expect(list).Should(HaveLen(17))
	})

	It("should include only selected rules", func() {
		list := rules.Generate(rules.NewRuleFilter(false, rules.DoubleFree))
		Expect(list.IDs()).Should(Equal([]string{rules.DoubleFree}))
	})

	It("should carry the rule metadata", func() {
		meta := rules.Generate()[rules.DoubleFree].MetaData()
		Expect(meta.ID).Should(Equal(rules.DoubleFree))
		Expect(meta.What).Should(Equal("Double free"))
	})
})
