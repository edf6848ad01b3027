package checker

import (
	"github.com/securego/memcheck/cast"
	"github.com/securego/memcheck/memstate"
	"github.com/securego/memcheck/rules"
)

// checkLeaks inspects the final store in declaration order. Offenders are
// reported at their declaration.
func (c *Checker) checkLeaks() {
	for _, e := range c.store.Unresolved() {
		var pos cast.Pos
		if v := c.unit.Var(e.ID); v != nil {
			pos = v.Position
		}
		if e.State == memstate.Owned {
			c.report(pos, rules.Leak, e.ID, "potentially unfreed memory")
		} else {
			c.report(pos, rules.LeakUnknown, e.ID, "memory state is unknown at end of unit")
		}
		if c.opts.LeakReport != LeakAll {
			return
		}
	}
}
