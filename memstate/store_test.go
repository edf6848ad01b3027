package memstate_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/securego/memcheck/cast"
	"github.com/securego/memcheck/memstate"
)

var _ = Describe("Store", func() {
	var store *memstate.Store

	BeforeEach(func() {
		store = memstate.NewStore()
	})

	It("should treat absent variables as unknown and untracked", func() {
		st, ok := store.Lookup(1)
		Expect(ok).Should(BeFalse())
		Expect(st).Should(Equal(memstate.Unknown))
		Expect(store.State(1)).Should(Equal(memstate.Unknown))
		Expect(store.Len()).Should(Equal(0))
	})

	Context("allocation", func() {
		It("should own memory whatever the previous state", func() {
			for _, prev := range []memstate.State{memstate.Unknown, memstate.Free, memstate.Owned} {
				store.Set(1, prev)
				store.Allocate(1)
				Expect(store.State(1)).Should(Equal(memstate.Owned))
			}
		})
	})

	Context("reallocation", func() {
		It("should reject the same variable as target and source", func() {
			Expect(store.Reallocate(1, 1, false)).Should(MatchError(memstate.ErrReallocSameVariable))
			Expect(store.Len()).Should(Equal(0))
		})

		It("should reject a target that owns memory and leave it unchanged", func() {
			store.Allocate(1)
			store.Allocate(2)
			Expect(store.Reallocate(2, 1, true)).Should(MatchError(memstate.ErrReallocIntoOwned))
			Expect(store.State(1)).Should(Equal(memstate.Owned))
			Expect(store.State(2)).Should(Equal(memstate.Owned))
		})

		It("should own memory from a free or untracked target", func() {
			store.Allocate(1)
			Expect(store.Reallocate(2, 1, false)).Should(Succeed())
			Expect(store.State(2)).Should(Equal(memstate.Owned))

			store.Set(3, memstate.Free)
			Expect(store.Reallocate(3, 1, false)).Should(Succeed())
			Expect(store.State(3)).Should(Equal(memstate.Owned))
			Expect(store.State(1)).Should(Equal(memstate.Owned))
		})

		It("should invalidate the source on request", func() {
			store.Allocate(1)
			Expect(store.Reallocate(2, 1, true)).Should(Succeed())
			Expect(store.State(1)).Should(Equal(memstate.Unknown))
			_, tracked := store.Lookup(1)
			Expect(tracked).Should(BeTrue())
		})
	})

	Context("release", func() {
		It("should free owned memory once", func() {
			store.Allocate(1)
			Expect(store.Release(1)).Should(Succeed())
			Expect(store.State(1)).Should(Equal(memstate.Free))
			Expect(store.Release(1)).Should(MatchError(memstate.ErrDoubleFree))
			Expect(store.State(1)).Should(Equal(memstate.Free))
		})

		It("should reject unknown and untracked pointers without tracking them", func() {
			Expect(store.Release(7)).Should(MatchError(memstate.ErrFreeUnknown))
			Expect(store.Len()).Should(Equal(0))

			store.Set(8, memstate.Unknown)
			Expect(store.Release(8)).Should(MatchError(memstate.ErrFreeUnknown))
		})
	})

	It("should list unresolved variables in declaration order", func() {
		store.Allocate(5)
		store.Set(3, memstate.Unknown)
		store.Set(4, memstate.Free)
		store.Allocate(1)

		Expect(store.Entries()).Should(HaveLen(4))
		Expect(store.Unresolved()).Should(Equal([]memstate.Entry{
			{ID: 1, State: memstate.Owned},
			{ID: 3, State: memstate.Unknown},
			{ID: 5, State: memstate.Owned},
		}))

		store.Reset()
		Expect(store.Entries()).Should(BeEmpty())
		Expect(store.Unresolved()).Should(BeEmpty())
	})

	It("should name states", func() {
		Expect(memstate.Owned.String()).Should(Equal("owned"))
		Expect(memstate.Free.String()).Should(Equal("free"))
		Expect(memstate.Unknown.String()).Should(Equal("unknown"))
		Expect(memstate.State(9).String()).Should(Equal("invalid"))
	})

	It("should key by variable identity", func() {
		store.Allocate(cast.VarID(2))
		Expect(store.State(cast.VarID(2))).Should(Equal(memstate.Owned))
		Expect(store.State(cast.VarID(3))).Should(Equal(memstate.Unknown))
	})
})
