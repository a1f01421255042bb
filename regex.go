// Package rregex exposes compiled regular expressions together with their
// structure and their match results in a form a dynamically typed consumer
// can inspect.
//
// Matching is done by the coregex meta engine. On top of it rregex adds:
//   - Syntax, which encodes the pattern's syntax tree as a tagged value
//     (see packages hir and tagged);
//   - Captures, which align one match with the pattern's group table so
//     that groups can be read by index and by name;
//   - the search, replace and split operations of a regex API, with
//     offsets past the end of the text reported as no match.
//
// Basic usage:
//
//	re, err := rregex.Compile(`(?P<first>\w)(\w)(?:\w)\w(?P<last>\w)`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	caps := re.Captures("toady")
//	fmt.Println(caps.Get(0).Value)       // toady
//	fmt.Println(caps.Name("last").Value) // y
//
//	// Structure of the pattern
//	v := re.Syntax()
//	fmt.Println(v.TypeName(), v.VariantName()) // hir.HirKind Concat
//
// All offsets are byte offsets into the UTF-8 text.
package rregex

import (
	"regexp/syntax"
	"sync"
	"unicode/utf8"

	"github.com/coregx/coregex/meta"

	"github.com/coregx/rregex/hir"
	"github.com/coregx/rregex/tagged"
)

// Config is the engine configuration used to compile patterns.
type Config = meta.Config

// Regex represents a compiled regular expression.
//
// A Regex is safe to use concurrently from multiple goroutines: every search
// runs on an engine of its own taken from a pool. Results are fresh values
// per call and never refer back to the Regex.
//
// Example:
//
//	re := rregex.MustCompile(`hello`)
//	if re.IsMatch("hello world") {
//	    println("matched!")
//	}
type Regex struct {
	engines  *enginePool
	strategy string
	pattern  string
	config  Config
	parsed  *syntax.Regexp

	// names is the capture name table, fixed at compile time.
	names []string

	hirOnce sync.Once
	tree    *hir.Hir

	shortestOnce sync.Once
	shortest     *enginePool
}

// Compile compiles a regular expression pattern.
//
// Syntax is Perl-compatible (same as Go's stdlib regexp).
// Returns an error if the pattern is invalid.
//
// Example:
//
//	re, err := rregex.Compile(`\d{3}-\d{4}`)
//	if err != nil {
//	    log.Fatal(err)
//	}
func Compile(pattern string) (*Regex, error) {
	return CompileWithConfig(pattern, DefaultConfig())
}

// MustCompile compiles a regular expression pattern and panics if it fails.
//
// This is useful for patterns known to be valid at compile time.
//
// Example:
//
//	var word = rregex.MustCompile(`\w+`)
func MustCompile(pattern string) *Regex {
	re, err := Compile(pattern)
	if err != nil {
		panic("rregex: Compile(`" + pattern + "`): " + err.Error())
	}
	return re
}

// CompileWithConfig compiles a pattern with custom engine configuration.
//
// Errors are returned as produced by the engine: a *meta.CompileError that
// unwraps to the *syntax.Error for invalid syntax, or a *meta.ConfigError.
//
// Example:
//
//	config := rregex.DefaultConfig()
//	config.MaxDFAStates = 100000 // Larger cache
//	re, err := rregex.CompileWithConfig("(a|b|c)*", config)
func CompileWithConfig(pattern string, config Config) (*Regex, error) {
	engine, err := meta.CompileWithConfig(pattern, config)
	if err != nil {
		return nil, err
	}

	// The engine parsed successfully with the same flags, so this cannot fail.
	parsed, err := syntax.Parse(pattern, syntax.Perl)
	if err != nil {
		return nil, &meta.CompileError{Pattern: pattern, Err: err}
	}

	return &Regex{
		engines:  newEnginePool(engine, compilePattern(pattern, config, nil)),
		strategy: engine.Strategy().String(),
		pattern:  pattern,
		config:   config,
		parsed:   parsed,
		names:    engine.SubexpNames(),
	}, nil
}

// DefaultConfig returns the default engine configuration.
//
// Example:
//
//	config := rregex.DefaultConfig()
//	config.EnableDFA = false // Use NFA only
//	re, _ := rregex.CompileWithConfig("pattern", config)
func DefaultConfig() Config {
	return meta.DefaultConfig()
}

// String returns the source text used to compile the regular expression.
func (r *Regex) String() string {
	return r.pattern
}

// Strategy returns the name of the execution strategy the engine selected.
func (r *Regex) Strategy() string {
	return r.strategy
}

// IsMatch reports whether text contains any match of the pattern.
//
// Example:
//
//	re := rregex.MustCompile(`\d+`)
//	re.IsMatch("hello 123") // true
func (r *Regex) IsMatch(text string) bool {
	var found bool
	r.engines.with(func(e *meta.Engine) {
		found = e.IsMatch([]byte(text))
	})
	return found
}

// IsMatchAt is like IsMatch but starts the search at byte offset start.
// The text before start is still seen by assertions: `\A` only matches when
// start is 0. An offset past the end of text reports false.
func (r *Regex) IsMatchAt(text string, start int) bool {
	if start < 0 || start > len(text) {
		return false
	}
	var found bool
	r.engines.with(func(e *meta.Engine) {
		_, _, found = e.FindIndicesAt([]byte(text), start)
	})
	return found
}

// Find returns the leftmost-first match in text, or nil.
//
// Example:
//
//	re := rregex.MustCompile(`a`)
//	m := re.Find("abc")
//	// m = &Match{Start: 0, End: 1, Value: "a"}
func (r *Regex) Find(text string) *Match {
	return r.FindAt(text, 0)
}

// FindAt is like Find but starts the search at byte offset start. An offset
// past the end of text reports no match.
func (r *Regex) FindAt(text string, start int) *Match {
	if start < 0 || start > len(text) {
		return nil
	}
	var m *Match
	r.engines.with(func(e *meta.Engine) {
		if s, end, found := e.FindIndicesAt([]byte(text), start); found {
			m = newMatch(text, s, end)
		}
	})
	return m
}

// FindAll returns every successive non-overlapping match in text.
//
// Example:
//
//	re := rregex.MustCompile(`a`)
//	ms := re.FindAll("abcabc")
//	// ms = [{0 1 a} {3 4 a}]
func (r *Regex) FindAll(text string) []Match {
	var out []Match
	r.engines.with(func(e *meta.Engine) {
		each(e, []byte(text), func(s, end int) bool {
			out = append(out, *newMatch(text, s, end))
			return true
		})
	})
	return out
}

// each calls fn with the bounds of every successive non-overlapping match
// of e in b until fn returns false. An empty match that begins where the previous
// match ended is skipped, and after an empty match the search resumes one
// UTF-8 character later.
func each(engine *meta.Engine, b []byte, fn func(start, end int) bool) {
	at, last := 0, -1
	for at <= len(b) {
		s, e, found := engine.FindIndicesAt(b, at)
		if !found {
			return
		}
		if s == e && s == last {
			if s >= len(b) {
				return
			}
			at = s + runeLen(b[s:])
			continue
		}
		if !fn(s, e) {
			return
		}
		last = e
		if s == e {
			if e >= len(b) {
				return
			}
			at = e + runeLen(b[e:])
			continue
		}
		at = e
	}
}

func runeLen(b []byte) int {
	_, size := utf8.DecodeRune(b)
	return size
}

// ShortestMatch returns the end offset of a match in text, preferring the
// shortest one: the pattern is run with every repetition made lazy. For
// patterns without alternation the result is never later than Find's end.
// Alternation keeps its leftmost-first preference, so `abc|b` on "abc" ends
// at 3 rather than at the earliest possible end 2. On no match the offset
// is 0.
//
// Example:
//
//	re := rregex.MustCompile(`a+`)
//	end, _ := re.ShortestMatch("aaaaa")
//	// end = 1
func (r *Regex) ShortestMatch(text string) (int, bool) {
	return r.ShortestMatchAt(text, 0)
}

// ShortestMatchAt is like ShortestMatch but starts the search at byte
// offset start. An offset past the end of text reports no match.
func (r *Regex) ShortestMatchAt(text string, start int) (int, bool) {
	if start < 0 || start > len(text) {
		return 0, false
	}
	var (
		end   int
		found bool
	)
	r.shortestEngines().with(func(e *meta.Engine) {
		_, end, found = e.FindIndicesAt([]byte(text), start)
	})
	if !found {
		return 0, false
	}
	return end, true
}

func (r *Regex) shortestEngines() *enginePool {
	r.shortestOnce.Do(func() {
		compile := compilePattern(r.pattern, r.config, makeLazy)
		if first, err := compile(); err == nil {
			r.shortest = newEnginePool(first, compile)
		} else {
			r.shortest = r.engines
		}
	})
	return r.shortest
}

// makeLazy marks every repetition in re as non-greedy.
func makeLazy(re *syntax.Regexp) {
	switch re.Op {
	case syntax.OpStar, syntax.OpPlus, syntax.OpQuest, syntax.OpRepeat:
		re.Flags |= syntax.NonGreedy
	}
	for _, sub := range re.Sub {
		makeLazy(sub)
	}
}

// Hir returns the syntax tree of the pattern.
func (r *Regex) Hir() *hir.Hir {
	r.hirOnce.Do(func() {
		r.tree = hir.FromSyntax(r.parsed, hir.DefaultConfig())
	})
	return r.tree
}

// Syntax returns the syntax tree of the pattern encoded as a tagged value.
// See hir.Encode for the layout.
func (r *Regex) Syntax() tagged.Value {
	return hir.Encode(r.Hir())
}
