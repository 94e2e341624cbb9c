package engine

import (
	"fmt"
	"io"
	"strconv"

	"github.com/rs/zerolog"
)

// CutStatistics collects node counts and alpha-beta cutoffs for one search.
type CutStatistics struct {
	Nodes       uint64
	Evaluated   uint64
	BetaCutoffs uint64
	// Skipped[d] counts siblings pruned at remaining depth d.
	Skipped []uint64
}

// PrintCutStats controls whether the engine dumps the cut statistics once the
// current search finishes. Set via a CLI/command toggle.
var PrintCutStats bool

func (c *CutStatistics) reset(depth int) {
	c.Nodes, c.Evaluated, c.BetaCutoffs = 0, 0, 0
	c.Skipped = append(c.Skipped[:0], make([]uint64, depth+1)...)
}

func (c *CutStatistics) addSkips(depth, skipped int) {
	c.BetaCutoffs++
	for len(c.Skipped) <= depth {
		c.Skipped = append(c.Skipped, 0)
	}
	c.Skipped[depth] += uint64(skipped)
}

// Merge adds o's counters to c.
func (c *CutStatistics) Merge(o CutStatistics) {
	c.Nodes += o.Nodes
	c.Evaluated += o.Evaluated
	c.BetaCutoffs += o.BetaCutoffs
	for d, n := range o.Skipped {
		for len(c.Skipped) <= d {
			c.Skipped = append(c.Skipped, 0)
		}
		c.Skipped[d] += n
	}
}

// TotalSkipped is the number of pruned siblings at all depths.
func (c CutStatistics) TotalSkipped() uint64 {
	var total uint64
	for _, n := range c.Skipped {
		total += n
	}
	return total
}

func (c CutStatistics) MarshalZerologObject(e *zerolog.Event) {
	e.Uint64("nodes", c.Nodes).
		Uint64("evaluated", c.Evaluated).
		Uint64("betaCutoffs", c.BetaCutoffs)
	skips := zerolog.Dict()
	for d, n := range c.Skipped {
		if n > 0 {
			skips.Uint64(strconv.Itoa(d), n)
		}
	}
	e.Dict("skipped", skips)
}

// Dump writes the statistics as UCI info strings.
func (c CutStatistics) Dump(w io.Writer) {
	fmt.Fprintln(w, "info string Cut statistics:")
	fmt.Fprintf(w, "info string   Nodes: %d\n", c.Nodes)
	fmt.Fprintf(w, "info string   Evaluated positions: %d\n", c.Evaluated)
	fmt.Fprintf(w, "info string   Beta cutoffs: %d\n", c.BetaCutoffs)
	for d, n := range c.Skipped {
		if n > 0 {
			fmt.Fprintf(w, "info string   Skipped at depth %d: %d\n", d, n)
		}
	}
}
