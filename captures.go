package rregex

import (
	"encoding/json"
	"fmt"
	"maps"

	"github.com/coregx/coregex/meta"
)

// Match is a matched region of the searched text.
//
// Start <= End, and both fall on boundaries of the text. Start == End is an
// empty match, which is a successful match and not the same as no match.
type Match struct {
	Start int    `json:"start" yaml:"start"`
	End   int    `json:"end" yaml:"end"`
	Value string `json:"value" yaml:"value"`
}

func newMatch(text string, start, end int) *Match {
	return &Match{Start: start, End: end, Value: text[start:end]}
}

// Len returns the length of the match in bytes.
func (m Match) Len() int { return m.End - m.Start }

// IsEmpty reports whether the match is zero-length.
func (m Match) IsEmpty() bool { return m.Start == m.End }

// CaptureAttempt is the raw outcome of a capture search: per-group byte
// bounds, where group 0 is the whole match. *meta.MatchWithCaptures
// satisfies it.
type CaptureAttempt interface {
	// NumCaptures returns the number of groups, including group 0.
	NumCaptures() int
	// GroupIndex returns [start, end] of group i, or nil when the group did
	// not participate in the match.
	GroupIndex(i int) []int
}

// Captures holds the groups of one match, readable by index and by name.
//
// Len always equals the number of groups of the compiled pattern, including
// group 0, whatever groups took part in the match. Groups that did not take
// part are absent: Get returns nil for them and they have no Name entry.
type Captures struct {
	groups []*Match
	named  map[string]*Match
}

// AlignCaptures joins one capture attempt with the pattern's name table.
// names[i] is the name of group i, or "" when the group is unnamed; names[0]
// is ignored, the whole match is never named.
//
// AlignCaptures returns nil when group 0 is absent, that is when there was
// no match. It panics when the attempt and the name table disagree on the
// number of groups, and when a group's bounds are neither nil nor a
// start/end pair within text.
func AlignCaptures(attempt CaptureAttempt, text string, names []string) *Captures {
	if n := attempt.NumCaptures(); n != len(names) {
		panic(fmt.Sprintf("rregex: capture attempt has %d groups but name table has %d", n, len(names)))
	}
	if len(names) == 0 || groupBounds(attempt, 0, len(text)) == nil {
		return nil
	}

	c := &Captures{
		groups: make([]*Match, len(names)),
		named:  make(map[string]*Match),
	}
	for i, name := range names {
		idx := groupBounds(attempt, i, len(text))
		if idx == nil {
			continue
		}
		m := newMatch(text, idx[0], idx[1])
		c.groups[i] = m
		if i > 0 && name != "" {
			c.named[name] = m
		}
	}
	return c
}

// groupBounds returns the bounds of group i, or nil when the group did not
// participate. Anything but nil or an in-range start/end pair is a broken
// attempt and panics.
func groupBounds(attempt CaptureAttempt, i, n int) []int {
	idx := attempt.GroupIndex(i)
	if idx == nil {
		return nil
	}
	if len(idx) != 2 || idx[0] < 0 || idx[1] < idx[0] || idx[1] > n {
		panic(fmt.Sprintf("rregex: capture attempt group %d has malformed bounds %v", i, idx))
	}
	return idx
}

// Len returns the number of groups, including group 0.
func (c *Captures) Len() int { return len(c.groups) }

// Get returns group i, or nil when the group did not participate or i is
// out of range.
func (c *Captures) Get(i int) *Match {
	if i < 0 || i >= len(c.groups) || c.groups[i] == nil {
		return nil
	}
	m := *c.groups[i]
	return &m
}

// Name returns the named group, or nil when no group of that name
// participated.
func (c *Captures) Name(name string) *Match {
	m, ok := c.named[name]
	if !ok {
		return nil
	}
	cp := *m
	return &cp
}

// Groups returns every group by index. Absent groups are nil.
func (c *Captures) Groups() []*Match {
	out := make([]*Match, len(c.groups))
	for i := range c.groups {
		out[i] = c.Get(i)
	}
	return out
}

// Named returns the participating named groups.
func (c *Captures) Named() map[string]Match {
	out := make(map[string]Match, len(c.named))
	for name, m := range c.named {
		out[name] = *m
	}
	return out
}

// capturesDoc is the serialized layout of Captures.
type capturesDoc struct {
	Get  []*Match          `json:"get" yaml:"get"`
	Name map[string]*Match `json:"name" yaml:"name"`
}

func (c *Captures) doc() capturesDoc {
	return capturesDoc{Get: c.Groups(), Name: maps.Clone(c.named)}
}

// MarshalJSON encodes c as {"get": [match or null...], "name": {name: match}}.
func (c *Captures) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.doc())
}

// MarshalYAML encodes c with the same layout as MarshalJSON.
func (c *Captures) MarshalYAML() (interface{}, error) {
	return c.doc(), nil
}

// CapturesLen returns the number of capture groups of the pattern,
// including the implicit group 0.
func (r *Regex) CapturesLen() int {
	return len(r.names)
}

// CaptureNames returns the name of each group by index. Unnamed groups, and
// group 0, have the name "".
//
// Example:
//
//	re := rregex.MustCompile(`(?P<year>\d+)-(\d+)`)
//	names := re.CaptureNames()
//	// names = ["", "year", ""]
func (r *Regex) CaptureNames() []string {
	return append([]string(nil), r.names...)
}

// Captures returns the groups of the leftmost-first match in text, or nil.
//
// Example:
//
//	re := rregex.MustCompile(`(?P<first>\w)(\w)(?:\w)\w(?P<last>\w)`)
//	caps := re.Captures("toady")
//	// caps.Get(2).Value = "o"
//	// caps.Name("last").Value = "y"
func (r *Regex) Captures(text string) *Captures {
	return r.CapturesAt(text, 0)
}

// CapturesAt is like Captures but starts the search at byte offset start.
// An offset past the end of text reports no match.
func (r *Regex) CapturesAt(text string, start int) *Captures {
	if start < 0 || start > len(text) {
		return nil
	}
	var caps *Captures
	r.engines.with(func(e *meta.Engine) {
		if attempt := e.FindSubmatchAt([]byte(text), start); attempt != nil {
			caps = AlignCaptures(attempt, text, r.names)
		}
	})
	return caps
}

// CapturesAll returns the groups of every successive non-overlapping match.
func (r *Regex) CapturesAll(text string) []*Captures {
	b := []byte(text)
	var out []*Captures
	r.engines.with(func(e *meta.Engine) {
		each(e, b, func(s, _ int) bool {
			attempt := e.FindSubmatchAt(b, s)
			if attempt == nil {
				return false
			}
			if c := AlignCaptures(attempt, text, r.names); c != nil {
				out = append(out, c)
			}
			return true
		})
	})
	return out
}
