package checker_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/securego/memcheck/cast"
	"github.com/securego/memcheck/checker"
	"github.com/securego/memcheck/frontend"
	"github.com/securego/memcheck/rules"
)

func parse(src string) *cast.TranslationUnit {
	unit, err := frontend.NewParser(frontend.Options{}).ParseSource(context.Background(), "test.c", []byte(src))
	Expect(err).ShouldNot(HaveOccurred())
	return unit
}

func ruleIDs(r *checker.Result) []string {
	ids := []string{}
	for _, d := range r.Diagnostics {
		ids = append(ids, d.RuleID)
	}
	return ids
}

var _ = Describe("Checker", func() {
	var (
		opts  checker.Options
		check func(src string) *checker.Result
	)

	BeforeEach(func() {
		opts = checker.Options{}
		check = func(src string) *checker.Result {
			return checker.New(opts).Check(parse(src))
		}
	})

	Context("variables that never receive heap memory", func() {
		It("should not report any use of them", func() {
			r := check(`
int *f(int *p) {
    int *q = p;
    int x = 0;
    q = p;
    x = 1;
    return q;
}`)
			Expect(r.Diagnostics).Should(BeEmpty())
			Expect(r.MemoryOK()).Should(BeTrue())
			Expect(r.Tracked).Should(Equal(0))
		})
	})

	Context("allocation", func() {
		It("should accept an allocation that is freed once", func() {
			r := check(`
void f() {
    int *ptr = malloc(sizeof(int) * 10);
    free(ptr);
}`)
			Expect(r.MemoryOK()).Should(BeTrue())
			Expect(r.Tracked).Should(Equal(1))
		})

		It("should report memory that is never freed at its declaration", func() {
			r := check(`
void f() {
    int *ptr = calloc(10, sizeof(int));
}`)
			Expect(ruleIDs(r)).Should(Equal([]string{rules.Leak}))
			Expect(r.MemoryOK()).Should(BeFalse())
			d := r.Diagnostics[0]
			Expect(d.Var).Should(Equal("ptr"))
			Expect(d.String()).Should(Equal("test.c:3:10: error: potentially unfreed memory (variable 'ptr')"))
		})

		It("should report an allocation with no target", func() {
			r := check(`
void g(void *);
void f() {
    malloc(4);
    g(malloc(8));
}`)
			Expect(ruleIDs(r)).Should(Equal([]string{rules.AllocUnassigned, rules.AllocUnassigned}))
			Expect(r.Diagnostics[0].Var).Should(BeEmpty())
		})

		It("should bind an allocation through casts and parentheses", func() {
			r := check(`
void f() {
    int *p = (int *)(malloc(4));
    int *q;
    q = ((int *)calloc(1, 4));
    free(p);
    free(q);
}`)
			Expect(r.MemoryOK()).Should(BeTrue())
		})

		It("should bind only the first allocation of an initializer", func() {
			r := check(`
void f(int c) {
    int *p = c ? malloc(4) : malloc(8);
    free(p);
}`)
			Expect(ruleIDs(r)).Should(Equal([]string{rules.AllocUnassigned}))
		})

		It("should bind nested declarations and assignments to their own variable", func() {
			r := check(`
void f() {
    int *p;
    int *q = (p = malloc(4), malloc(8));
    free(p);
    free(q);
}`)
			Expect(r.Diagnostics).Should(BeEmpty())
		})

		It("should not bind member targets", func() {
			r := check(`
struct s { int *p; };
void f(struct s *v) {
    v->p = malloc(4);
}`)
			Expect(ruleIDs(r)).Should(Equal([]string{rules.AllocUnassigned}))
		})
	})

	Context("reallocation", func() {
		It("should reject reallocation into the same variable whatever its state", func() {
			owned := check(`
void f() {
    int *ptr = malloc(sizeof(int) * 10);
    ptr = realloc(ptr, sizeof(int) * 20);
    free(ptr);
}`)
			Expect(ruleIDs(owned)).Should(Equal([]string{rules.ReallocSameVariable}))
			Expect(owned.Diagnostics[0].String()).Should(
				Equal("test.c:4:11: error: cannot reallocate to same variable (variable 'ptr')"))

			freed := check(`
void f() {
    int *ptr = malloc(4);
    free(ptr);
    ptr = realloc(ptr, 8);
}`)
			Expect(ruleIDs(freed)).Should(Equal([]string{rules.ReallocSameVariable}))

			untracked := check(`
void f(int *ptr) {
    ptr = realloc(ptr, 8);
}`)
			Expect(ruleIDs(untracked)).Should(Equal([]string{rules.ReallocSameVariable}))

			declared := check(`
void f() {
    int *ptr = realloc(ptr, 8);
}`)
			Expect(ruleIDs(declared)).Should(Equal([]string{rules.ReallocSameVariable}))
		})

		It("should leave the source owned after reallocating into another variable", func() {
			r := check(`
void f() {
    int *ptr = malloc(sizeof(int) * 10);
    int *tmp = realloc(ptr, sizeof(int) * 20);
    free(tmp);
}`)
			Expect(ruleIDs(r)).Should(Equal([]string{rules.Leak}))
			Expect(r.Diagnostics[0].Var).Should(Equal("ptr"))
		})

		It("should mark the source unknown when configured to", func() {
			opts.ReallocInvalidatesSource = true
			r := check(`
void f() {
    int *ptr = malloc(sizeof(int) * 10);
    int *tmp = realloc(ptr, sizeof(int) * 20);
    free(tmp);
}`)
			Expect(ruleIDs(r)).Should(Equal([]string{rules.LeakUnknown}))
			Expect(r.Diagnostics[0].Var).Should(Equal("ptr"))
		})

		It("should reject reallocation into a variable owning memory", func() {
			r := check(`
void f() {
    int *p = malloc(4);
    int *q = (q = malloc(4), realloc(p, 8));
    free(p);
    free(q);
}`)
			Expect(ruleIDs(r)).Should(Equal([]string{rules.ReallocIntoOwned}))
		})

		It("should reject reallocation that is not assigned or not of a variable", func() {
			r := check(`
void f() {
    int *p = malloc(4);
    realloc(p, 8);
    int *q = realloc(p + 1, 8);
    free(p);
}`)
			Expect(ruleIDs(r)).Should(Equal([]string{rules.ReallocUnassigned, rules.ReallocNotVariable}))
		})
	})

	Context("release", func() {
		It("should report every double free", func() {
			r := check(`
void f() {
    int *p = malloc(4);
    free(p);
    free(p);
    free(p);
}`)
			Expect(ruleIDs(r)).Should(Equal([]string{rules.DoubleFree, rules.DoubleFree}))
			Expect(r.Diagnostics[0].Pos.Line).Should(Equal(5))
			Expect(r.Diagnostics[1].Pos.Line).Should(Equal(6))
		})

		It("should report a free of an untracked pointer or of an expression", func() {
			r := check(`
void f(char *s) {
    int *p = malloc(4);
    free(s);
    free(p + 0);
    free(p);
}`)
			Expect(ruleIDs(r)).Should(Equal([]string{rules.FreeUnknown, rules.FreeNotVariable}))
		})
	})

	Context("writes through a pointer", func() {
		It("should allow writes through owned memory", func() {
			r := check(`
void f() {
    int *p = malloc(8);
    *p = 1;
    p[1] = 2;
    *(p + 1) = 3;
    free(p);
}`)
			Expect(r.Diagnostics).Should(BeEmpty())
		})

		It("should report writes through freed memory", func() {
			r := check(`
void f() {
    int *p = malloc(8);
    free(p);
    *p = 1;
    p[1] = 2;
}`)
			Expect(ruleIDs(r)).Should(Equal([]string{rules.DerefFreed, rules.DerefFreed}))
			Expect(r.Diagnostics[0].Message).Should(ContainSubstring("dereference of freed memory"))
			Expect(r.Diagnostics[1].Message).Should(ContainSubstring("index into freed memory"))
		})

		It("should report writes through a pointer in unknown state", func() {
			opts.ReallocInvalidatesSource = true
			r := check(`
void f() {
    int *p = malloc(8);
    int *q = realloc(p, 16);
    *p = 1;
    free(q);
}`)
			Expect(ruleIDs(r)).Should(Equal([]string{rules.DerefUnknown, rules.LeakUnknown}))
		})

		It("should report writes through a pointer that was never tracked", func() {
			r := check(`
void f(int *p) {
    *p = 1;
    p[0] = 2;
}`)
			Expect(ruleIDs(r)).Should(Equal([]string{rules.DerefUntracked, rules.DerefUntracked}))
		})
	})

	Context("assignment", func() {
		It("should report aliasing of an owning pointer", func() {
			r := check(`
void f() {
    int *p = malloc(4);
    int *q;
    q = p;
    free(p);
}`)
			Expect(ruleIDs(r)).Should(Equal([]string{rules.AliasOwned}))
			Expect(r.Diagnostics[0].Var).Should(Equal("p"))
		})

		It("should allow copies of free or unknown pointers and of other types", func() {
			r := check(`
void f(int *u) {
    int *p = malloc(4);
    char *c;
    int *q;
    c = p;
    free(p);
    q = p;
    q = u;
}`)
			Expect(r.Diagnostics).Should(BeEmpty())
		})

		It("should report an overwrite of owned memory", func() {
			r := check(`
void f() {
    int *p = malloc(4);
    p = malloc(8);
    free(p);
}`)
			Expect(ruleIDs(r)).Should(Equal([]string{rules.OverwriteOwned}))
		})

		It("should allow reuse of a freed variable", func() {
			r := check(`
void f() {
    int *p = malloc(4);
    free(p);
    p = malloc(8);
    free(p);
}`)
			Expect(r.MemoryOK()).Should(BeTrue())
		})

		It("should report an overwrite of a variable in unknown state", func() {
			opts.ReallocInvalidatesSource = true
			r := check(`
void f() {
    int *p = malloc(4);
    int *q = realloc(p, 8);
    p = 0;
    free(q);
}`)
			Expect(ruleIDs(r)).Should(Equal([]string{rules.OverwriteUnknown, rules.LeakUnknown}))
		})
	})

	Context("return", func() {
		It("should report returning owned and freed pointers differently", func() {
			r := check(`
int *ret_ptr_unfreed() {
  int *ptr = malloc(sizeof(int) * 10);
  return ptr;
}

int *ret_ptr_freed() {
  int *ptr = malloc(sizeof(int) * 10);
  free(ptr);
  return ptr;
}`)
			Expect(ruleIDs(r)).Should(Equal([]string{rules.ReturnOwned, rules.ReturnFreed, rules.Leak}))
			Expect(r.Diagnostics[0].Message).ShouldNot(Equal(r.Diagnostics[1].Message))
			Expect(r.Diagnostics[2].Pos.Line).Should(Equal(3))
		})

		It("should report returning a pointer in unknown state", func() {
			opts.ReallocInvalidatesSource = true
			r := check(`
int *f() {
    int *p = malloc(4);
    int *q = realloc(p, 8);
    free(q);
    return p;
}`)
			Expect(ruleIDs(r)).Should(Equal([]string{rules.ReturnUnknown, rules.LeakUnknown}))
		})
	})

	Context("end of unit", func() {
		It("should keep same-named locals of different functions apart", func() {
			r := check(`
void memory_leak() {
    int *ptr = malloc(sizeof(int) * 10);
}

void no_leak() {
    int *ptr = malloc(sizeof(int) * 10);
    free(ptr);
}`)
			Expect(ruleIDs(r)).Should(Equal([]string{rules.Leak}))
			Expect(r.Diagnostics[0].Pos.Line).Should(Equal(3))
		})

		It("should report only the first offender in declaration order by default", func() {
			src := `
void f() {
    int *a = malloc(1);
    int *b = malloc(2);
}`
			first := check(src)
			Expect(first.Diagnostics).Should(HaveLen(1))
			Expect(first.Diagnostics[0].Var).Should(Equal("a"))

			opts.LeakReport = checker.LeakAll
			all := check(src)
			Expect(all.Diagnostics).Should(HaveLen(2))
			Expect(all.Diagnostics[1].Var).Should(Equal("b"))
		})
	})

	Context("notes", func() {
		It("should note allocators used other than as callees without failing", func() {
			r := check(`
void f() {
    void *(*alloc)(unsigned long) = malloc;
    int *p = alloc(4);
}`)
			Expect(r.MemoryOK()).Should(BeTrue())
			Expect(r.Notes).Should(HaveLen(1))
			Expect(r.Notes[0].Message).Should(Equal("malloc referenced indirectly; calls through it are not tracked"))
		})
	})

	It("should give identical results when a unit is checked twice", func() {
		unit := parse(`
void f() {
    int *p = malloc(4);
    free(p);
    free(p);
    int *q = malloc(4);
}`)
		c := checker.New(opts)
		first := c.Check(unit)
		second := c.Check(unit)
		Expect(second).Should(Equal(first))
		Expect(ruleIDs(first)).Should(Equal([]string{rules.DoubleFree, rules.Leak}))
	})

	Describe("ParseLeakMode", func() {
		It("should accept first and all", func() {
			m, err := checker.ParseLeakMode("all")
			Expect(err).ShouldNot(HaveOccurred())
			Expect(m).Should(Equal(checker.LeakAll))
			Expect(m.String()).Should(Equal("all"))

			m, err = checker.ParseLeakMode("")
			Expect(err).ShouldNot(HaveOccurred())
			Expect(m).Should(Equal(checker.LeakFirst))

			_, err = checker.ParseLeakMode("some")
			Expect(err).Should(HaveOccurred())
		})
	})
})
