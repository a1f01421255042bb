package rregex

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReplace(t *testing.T) {
	tests := []struct {
		pattern string
		input   string
		rep     string
		want    string
	}{
		{`a`, "abcabcabc", "z", "zbcabcabc"},
		{`a`, "defdefdef", "z", "defdefdef"},
		{`[^01]+`, "1078910", "", "1010"},
		{`(?P<last>[^,\s]+),\s+(?P<first>\S+)`, "Springsteen, Bruce", "$first $last", "Bruce Springsteen"},
		{`(?P<first>\w+)\s+(?P<second>\w+)`, "deep fried", "${first}_$second", "deep_fried"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MustCompile(tt.pattern).Replace(tt.input, tt.rep),
			"Replace(%q, %q, %q)", tt.pattern, tt.input, tt.rep)
	}
}

func TestReplaceAll(t *testing.T) {
	re := MustCompile(`a`)
	assert.Equal(t, "zbczbczbc", re.ReplaceAll("abcabcabc", "z"))
	assert.Equal(t, "defdefdef", re.ReplaceAll("defdefdef", "z"))

	assert.Equal(t, "-a-b-c-", MustCompile(`x*`).ReplaceAll("abc", "-"))
	assert.Equal(t, "-é-", MustCompile(`x*`).ReplaceAll("é", "-"))
}

func TestReplacen(t *testing.T) {
	re := MustCompile(`a`)
	assert.Equal(t, "zbczbcabc", re.Replacen("abcabcabc", 2, "z"))
	assert.Equal(t, "defdefdef", re.Replacen("defdefdef", 2, "z"))
	assert.Equal(t, "zbczbczbc", re.Replacen("abcabcabc", 0, "z"))
	assert.Equal(t, "zbczbczbc", re.Replacen("abcabcabc", 10, "z"))
}

func TestReplaceTemplate(t *testing.T) {
	re := MustCompile(`(?P<user>\w+)@(\w+)`)
	tests := []struct {
		rep  string
		want string
	}{
		{"$2:${user}", "home:me"},
		{"$0", "me@home"},
		{"$$1", "$1"},
		{"${1}x", "mex"},
		// The longest name is taken, and a group that does not exist is empty.
		{"$1x", ""},
		{"$missing", ""},
		{"${9}", ""},
		{"cost: $", "cost: $"},
		{"${}", "${}"},
		{"${user", "${user"},
		{"$-", "$-"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, re.Replace("me@home", tt.rep), "template %q", tt.rep)
	}
}

func TestReplaceAbsentGroup(t *testing.T) {
	re := MustCompile(`(a)|(b)`)
	assert.Equal(t, "[a|][|b]", re.ReplaceAll("ab", "[$1|$2]"))
}

func TestSplit(t *testing.T) {
	re := MustCompile(`a`)
	assert.Equal(t, []string{"", "bc", "bc", "bc"}, re.Split("abcabcabc"))
	assert.Equal(t, []string{"defdefdef"}, re.Split("defdefdef"))

	fields := MustCompile(`[ \t]+`).Split("a b \t  c\td    e")
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, fields)
}

func TestSplitn(t *testing.T) {
	re := MustCompile(`,`)
	tests := []struct {
		input string
		limit int
		want  []string
	}{
		{"a,b,c", 0, nil},
		{"a,b,c", 1, []string{"a,b,c"}},
		{"a,b,c", 2, []string{"a", "b,c"}},
		{"a,b,c", 3, []string{"a", "b", "c"}},
		{"a,b,c", 4, []string{"a", "b", "c"}},
		{"a,b,c", 5, []string{"a", "b", "c"}},
		{"a,b,c", -1, []string{"a", "b", "c"}},
		{"abc", 0, nil},
		{"abc", 1, []string{"abc"}},
		{"abc", 2, []string{"abc"}},
		{"abc", 3, []string{"abc"}},
		{"", 2, []string{""}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, re.Splitn(tt.input, tt.limit), "Splitn(%q, %d)", tt.input, tt.limit)
	}

	fields := MustCompile(`\W+`).Splitn("Hey! How are you?", 3)
	assert.Equal(t, []string{"Hey", "How", "are you?"}, fields)
}

func TestEscape(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"plain", "plain"},
		{"1.5-2", `1\.5\-2`},
		{`\.+*?()|[]{}^$#&-~`, `\\\.\+\*\?\(\)\|\[\]\{\}\^\$\#\&\-\~`},
		{"é.", `é\.`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Escape(tt.input), "Escape(%q)", tt.input)
	}
}

func TestEscapeMatchesLiterally(t *testing.T) {
	for _, text := range []string{"1.5-2", "(a|b)*", "$100 & ~x", "a{2}[b]"} {
		re, err := Compile(Escape(text))
		if !assert.NoError(t, err, text) {
			continue
		}
		m := re.Find("<<" + text + ">>")
		if assert.NotNil(t, m, text) {
			assert.Equal(t, text, m.Value)
		}
	}
}
