package rules_test

import (
	"context"
	"fmt"
	"log"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/securego/memcheck"
	"github.com/securego/memcheck/rules"
	"github.com/securego/memcheck/testutils"
)

var _ = Describe("memcheck rules", func() {
	var (
		logger *log.Logger
		runner func(string, []testutils.CodeSample)
	)

	BeforeEach(func() {
		logger, _ = testutils.NewLogger()
		runner = func(rule string, samples []testutils.CodeSample) {
			for n, sample := range samples {
				config := sample.Config
				if config == nil {
					config = memcheck.NewConfig()
				}
				analyzer, err := memcheck.NewAnalyzer(config, logger)
				Expect(err).ShouldNot(HaveOccurred())
				analyzer.LoadRules(rules.Generate(rules.NewRuleFilter(false, rule)))

				src := testutils.NewTestSource()
				Expect(src).ShouldNot(BeNil())
				for i, code := range sample.Code {
					src.AddFile(fmt.Sprintf("sample_%d_%d.c", n, i), code)
				}
				paths, err := src.Write()
				Expect(err).ShouldNot(HaveOccurred())

				err = analyzer.Process(context.Background(), paths...)
				src.Close()
				Expect(err).ShouldNot(HaveOccurred())

				issues, _, errors := analyzer.Report()
				Expect(errors).Should(BeEmpty(), "sample %d of %s does not parse", n, rule)
				for _, iss := range issues {
					Expect(iss.RuleID).Should(Equal(rule))
				}
				Expect(issues).Should(HaveLen(sample.Errors), "sample %d of %s:\n%s", n, rule, sample.Code)
			}
		}
	})

	Context("report correct errors for all samples", func() {
		DescribeTable("per rule samples",
			func(rule string, samples []testutils.CodeSample) {
				runner(rule, samples)
			},
			Entry("M101", rules.AllocUnassigned, testutils.SampleCodeM101),
			Entry("M102", rules.ReallocUnassigned, testutils.SampleCodeM102),
			Entry("M103", rules.ReallocNotVariable, testutils.SampleCodeM103),
			Entry("M104", rules.ReallocSameVariable, testutils.SampleCodeM104),
			Entry("M105", rules.ReallocIntoOwned, testutils.SampleCodeM105),
			Entry("M201", rules.DoubleFree, testutils.SampleCodeM201),
			Entry("M202", rules.FreeUnknown, testutils.SampleCodeM202),
			Entry("M203", rules.FreeNotVariable, testutils.SampleCodeM203),
			Entry("M301", rules.DerefFreed, testutils.SampleCodeM301),
			Entry("M302", rules.DerefUnknown, testutils.SampleCodeM302),
			Entry("M303", rules.DerefUntracked, testutils.SampleCodeM303),
			Entry("M401", rules.AliasOwned, testutils.SampleCodeM401),
			Entry("M402", rules.OverwriteOwned, testutils.SampleCodeM402),
			Entry("M403", rules.OverwriteUnknown, testutils.SampleCodeM403),
			Entry("M501", rules.ReturnOwned, testutils.SampleCodeM501),
			Entry("M502", rules.ReturnFreed, testutils.SampleCodeM502),
			Entry("M503", rules.ReturnUnknown, testutils.SampleCodeM503),
			Entry("M601", rules.Leak, testutils.SampleCodeM601),
			Entry("M602", rules.LeakUnknown, testutils.SampleCodeM602),
		)
	})
})
