package engine

import "runtime"

// Yielder hands control back to the host scheduler between recursive search steps. It has
// no effect on the search result.
type Yielder interface {
	Yield()
}

// YieldFunc adapts a plain function to Yielder.
type YieldFunc func()

func (f YieldFunc) Yield() { f() }

var (
	// GoschedYielder lets other goroutines run, keeping a host loop responsive during
	// long cooperative searches.
	GoschedYielder Yielder = YieldFunc(runtime.Gosched)
	// NopYielder never yields; workers use it since they own their goroutine.
	NopYielder Yielder = YieldFunc(func() {})
)
