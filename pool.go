package rregex

import (
	"regexp/syntax"
	"sync"

	"github.com/coregx/coregex/meta"
)

// enginePool hands out engines compiled from one pattern, one per running
// search. A meta.Engine keeps scratch state (PikeVM thread sets, caches)
// that each search mutates, so an engine is owned by a single goroutine
// between get and put.
type enginePool struct {
	pool sync.Pool
}

// newEnginePool returns a pool seeded with first. Further engines are built
// by compile on demand.
func newEnginePool(first *meta.Engine, compile func() (*meta.Engine, error)) *enginePool {
	p := &enginePool{}
	p.pool = sync.Pool{
		New: func() any {
			e, err := compile()
			if err != nil {
				// The pattern compiled once already.
				panic("rregex: recompile engine: " + err.Error())
			}
			return e
		},
	}
	p.pool.Put(first)
	return p
}

// get retrieves an engine for one search.
func (p *enginePool) get() *meta.Engine {
	return p.pool.Get().(*meta.Engine)
}

// put returns an engine to the pool.
func (p *enginePool) put(e *meta.Engine) {
	if e == nil {
		return
	}
	p.pool.Put(e)
}

// with runs fn with an engine owned by the caller for the duration of fn.
func (p *enginePool) with(fn func(e *meta.Engine)) {
	e := p.get()
	defer p.put(e)
	fn(e)
}

// compilePattern returns a compile func that parses pattern afresh on every
// call, optionally rewriting the tree first, so no syntax tree is shared
// between engines.
func compilePattern(pattern string, config Config, rewrite func(*syntax.Regexp)) func() (*meta.Engine, error) {
	return func() (*meta.Engine, error) {
		if rewrite == nil {
			return meta.CompileWithConfig(pattern, config)
		}
		re, err := syntax.Parse(pattern, syntax.Perl)
		if err != nil {
			return nil, &meta.CompileError{Pattern: pattern, Err: err}
		}
		rewrite(re)
		return meta.CompileRegexp(re, config)
	}
}
