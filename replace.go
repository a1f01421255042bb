package rregex

import (
	"strconv"
	"strings"

	"github.com/coregx/coregex/meta"
)

// Replace replaces the leftmost-first match in text with rep. See Replacen
// for the template syntax. Text without a match is returned unchanged.
//
// Example:
//
//	re := rregex.MustCompile(`a`)
//	re.Replace("abcabc", "z") // "zbcabc"
func (r *Regex) Replace(text, rep string) string {
	return r.Replacen(text, 1, rep)
}

// ReplaceAll replaces every non-overlapping match in text with rep.
//
// Example:
//
//	re := rregex.MustCompile(`(?P<user>\w+)@(\w+)`)
//	re.ReplaceAll("me@home", "$2:${user}") // "home:me"
func (r *Regex) ReplaceAll(text, rep string) string {
	return r.Replacen(text, 0, rep)
}

// Replacen replaces at most limit non-overlapping matches in text with rep.
// A limit of 0 replaces every match.
//
// Inside rep, $name and ${name} expand to the group of that name or index:
// $0 is the whole match, $1 the first group, $first the group named first.
// The longest run of letters, digits and underscores after $ is the name, so
// use ${1}x rather than $1x. $$ is a literal $. A group that does not exist
// or did not participate expands to the empty string.
func (r *Regex) Replacen(text string, limit int, rep string) string {
	if limit < 0 {
		limit = 0
	}
	literal := !strings.Contains(rep, "$")
	b := []byte(text)

	var out strings.Builder
	last, n := 0, 0
	r.engines.with(func(engine *meta.Engine) {
		each(engine, b, func(s, e int) bool {
			if limit > 0 && n == limit {
				return false
			}
			var caps *Captures
			if !literal {
				attempt := engine.FindSubmatchAt(b, s)
				if attempt == nil {
					return false
				}
				caps = AlignCaptures(attempt, text, r.names)
			}
			n++
			out.WriteString(text[last:s])
			last = e
			if literal {
				out.WriteString(rep)
			} else {
				expand(&out, rep, caps)
			}
			return true
		})
	})
	if n == 0 {
		return text
	}
	out.WriteString(text[last:])
	return out.String()
}

// expand appends template to dst, replacing $ references with groups of caps.
func expand(dst *strings.Builder, template string, caps *Captures) {
	for len(template) > 0 {
		i := strings.IndexByte(template, '$')
		if i < 0 {
			dst.WriteString(template)
			return
		}
		dst.WriteString(template[:i])
		template = template[i:]

		if len(template) > 1 && template[1] == '$' {
			dst.WriteByte('$')
			template = template[2:]
			continue
		}

		name, rest, ok := parseRef(template)
		if !ok {
			dst.WriteByte('$')
			template = template[1:]
			continue
		}
		template = rest
		if caps == nil {
			continue
		}
		var m *Match
		if idx, err := strconv.Atoi(name); err == nil {
			m = caps.Get(idx)
		} else {
			m = caps.Name(name)
		}
		if m != nil {
			dst.WriteString(m.Value)
		}
	}
}

// parseRef parses a $name or ${name} reference at the start of template.
func parseRef(template string) (name, rest string, ok bool) {
	if len(template) < 2 {
		return "", "", false
	}
	if template[1] == '{' {
		end := strings.IndexByte(template, '}')
		if end < 0 || end == 2 {
			return "", "", false
		}
		return template[2:end], template[end+1:], true
	}
	j := 1
	for j < len(template) && isNameByte(template[j]) {
		j++
	}
	if j == 1 {
		return "", "", false
	}
	return template[1:j], template[j:], true
}

func isNameByte(c byte) bool {
	return c == '_' ||
		('0' <= c && c <= '9') ||
		('a' <= c && c <= 'z') ||
		('A' <= c && c <= 'Z')
}

// Split returns the substrings of text between matches.
//
// Example:
//
//	re := rregex.MustCompile(`a`)
//	re.Split("abcabc") // ["", "bc", "bc"]
func (r *Regex) Split(text string) []string {
	return r.Splitn(text, -1)
}

// Splitn is like Split but returns at most limit substrings; the last one is
// the unsplit remainder of text. A limit of 0 returns nil and a negative
// limit means no limit.
//
// Example:
//
//	re := rregex.MustCompile(`a`)
//	re.Splitn("abcabcabc", 2) // ["", "bcabcabc"]
func (r *Regex) Splitn(text string, limit int) []string {
	if limit == 0 {
		return nil
	}
	var out []string
	last := 0
	r.engines.with(func(engine *meta.Engine) {
		each(engine, []byte(text), func(s, e int) bool {
			if limit > 0 && len(out) == limit-1 {
				return false
			}
			out = append(out, text[last:s])
			last = e
			return true
		})
	})
	return append(out, text[last:])
}
