package rregex

import (
	"encoding/json"
	"fmt"

	"github.com/coregx/ahocorasick"

	"github.com/coregx/rregex/hir"
	"github.com/coregx/rregex/internal/sparse"
)

// SetError reports the pattern of a set that failed to compile.
type SetError struct {
	Index   int
	Pattern string
	Err     error
}

// Error implements the error interface.
func (e *SetError) Error() string {
	return fmt.Sprintf("rregex: set pattern %d (%q): %v", e.Index, e.Pattern, e.Err)
}

// Unwrap returns the compile error.
func (e *SetError) Unwrap() error {
	return e.Err
}

// RegexSet matches several patterns against a text at once and reports
// which of them match. Matches of different patterns may overlap.
//
// Patterns that are plain literals share one Aho-Corasick automaton: when it
// finds none of them in a text, none of those patterns are searched again.
//
// A RegexSet is safe for concurrent use.
type RegexSet struct {
	regexes []*Regex
	// literal[i] reports whether pattern i is a plain literal.
	literal  []bool
	numLit   int
	literals *ahocorasick.Automaton
}

// NewSet compiles every pattern. The first failure is returned as a
// *SetError.
//
// Example:
//
//	set, _ := rregex.NewSet([]string{`\w+`, `\d+`, `foo`})
//	set.Matches("foo").Indices() // [0 2]
func NewSet(patterns []string) (*RegexSet, error) {
	return NewSetWithConfig(patterns, DefaultConfig())
}

// NewSetWithConfig is like NewSet with a custom engine configuration.
func NewSetWithConfig(patterns []string, config Config) (*RegexSet, error) {
	set := &RegexSet{
		regexes: make([]*Regex, len(patterns)),
		literal: make([]bool, len(patterns)),
	}
	var lits [][]byte
	for i, p := range patterns {
		re, err := CompileWithConfig(p, config)
		if err != nil {
			return nil, &SetError{Index: i, Pattern: p, Err: err}
		}
		set.regexes[i] = re
		if h := re.Hir(); h.Kind() == hir.KindLiteral {
			lits = append(lits, h.Literal())
			set.literal[i] = true
			set.numLit++
		}
	}
	if len(lits) > 0 {
		builder := ahocorasick.NewBuilder()
		for _, lit := range lits {
			builder.AddPattern(lit)
		}
		// Without an automaton every literal pattern is searched directly.
		if auto, err := builder.Build(); err == nil {
			set.literals = auto
		}
	}
	return set, nil
}

// Len returns the number of patterns.
func (s *RegexSet) Len() int {
	return len(s.regexes)
}

// Patterns returns the patterns in the order given to NewSet.
func (s *RegexSet) Patterns() []string {
	out := make([]string, len(s.regexes))
	for i, re := range s.regexes {
		out[i] = re.String()
	}
	return out
}

// literalsPossible reports whether any literal pattern can match b.
func (s *RegexSet) literalsPossible(b []byte) bool {
	if s.numLit == 0 {
		return false
	}
	if s.literals == nil {
		return true
	}
	return s.literals.IsMatch(b)
}

// IsMatch reports whether at least one pattern matches text.
func (s *RegexSet) IsMatch(text string) bool {
	b := []byte(text)
	if s.literals != nil && s.numLit == len(s.regexes) {
		return s.literals.IsMatch(b)
	}
	checkLit := s.literalsPossible(b)
	for i, re := range s.regexes {
		if s.literal[i] && !checkLit {
			continue
		}
		if re.IsMatch(text) {
			return true
		}
	}
	return false
}

// Matches reports which patterns match text.
func (s *RegexSet) Matches(text string) SetMatches {
	b := []byte(text)
	matched := sparse.New(len(s.regexes))
	checkLit := s.literalsPossible(b)
	for i, re := range s.regexes {
		if s.literal[i] && !checkLit {
			continue
		}
		if re.IsMatch(text) {
			matched.Insert(i)
		}
	}
	return SetMatches{matched: matched}
}

// SetMatches is the outcome of RegexSet.Matches.
type SetMatches struct {
	matched *sparse.Set
}

// Len returns the number of patterns in the set, matched or not.
func (m SetMatches) Len() int {
	if m.matched == nil {
		return 0
	}
	return m.matched.Cap()
}

// MatchedAny reports whether any pattern matched.
func (m SetMatches) MatchedAny() bool {
	return m.matched != nil && m.matched.Len() > 0
}

// Matched reports whether pattern i matched.
func (m SetMatches) Matched(i int) bool {
	return m.matched != nil && m.matched.Contains(i)
}

// Indices returns the indexes of the matching patterns in ascending order.
func (m SetMatches) Indices() []int {
	if m.matched == nil {
		return []int{}
	}
	// Patterns are tested in order, so insertion order is ascending.
	return m.matched.Values()
}

// MarshalJSON encodes the matching indexes as an array.
func (m SetMatches) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.Indices())
}
