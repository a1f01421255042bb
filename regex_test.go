package rregex

import (
	"errors"
	"regexp/syntax"
	"sync"
	"testing"

	"github.com/coregx/coregex/meta"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coregx/rregex/hir"
)

const thirteen = `\b\w{13}\b`

func TestCompileErrors(t *testing.T) {
	_, err := Compile(`a(b`)
	require.Error(t, err)

	var compileErr *meta.CompileError
	require.ErrorAs(t, err, &compileErr)
	assert.Equal(t, `a(b`, compileErr.Pattern)

	var syntaxErr *syntax.Error
	require.ErrorAs(t, err, &syntaxErr)
	assert.Equal(t, syntax.ErrMissingParen, syntaxErr.Code)
}

func TestMustCompilePanics(t *testing.T) {
	assert.PanicsWithValue(t,
		"rregex: Compile(`[z-a]`): "+mustErr(t, `[z-a]`).Error(),
		func() { MustCompile(`[z-a]`) })
}

func mustErr(t *testing.T, pattern string) error {
	t.Helper()
	_, err := Compile(pattern)
	require.Error(t, err)
	return err
}

func TestString(t *testing.T) {
	assert.Equal(t, "a", MustCompile("a").String())
	assert.NotEmpty(t, MustCompile("a").Strategy())
}

func TestIsMatch(t *testing.T) {
	re := MustCompile(`a`)
	assert.True(t, re.IsMatch("abc"))
	assert.False(t, re.IsMatch("def"))

	assert.True(t, MustCompile(thirteen).IsMatch("I categorically deny having triskaidekaphobia."))
}

func TestIsMatchAt(t *testing.T) {
	re := MustCompile(`a`)
	tests := []struct {
		text  string
		start int
		want  bool
	}{
		{"ab", 0, true},
		{"ab", 1, false},
		{"ab", 100, false},
		{"ab", -1, false},
		{"aba", 0, true},
		{"aba", 1, true},
		{"aba", 2, true},
		{"aba", 3, false},
		{"aba", 100, false},
		{"def", 0, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, re.IsMatchAt(tt.text, tt.start), "IsMatchAt(%q, %d)", tt.text, tt.start)
	}

	text := "I categorically deny having triskaidekaphobia."
	word := MustCompile(thirteen)
	assert.True(t, word.IsMatchAt(text, 1))
	assert.False(t, word.IsMatchAt(text, 5), "text before start still counts for \\b")
}

func TestFind(t *testing.T) {
	re := MustCompile(`a`)
	assert.Equal(t, &Match{Start: 0, End: 1, Value: "a"}, re.Find("abc"))
	assert.Nil(t, re.Find("def"))

	m := MustCompile(thirteen).Find("I categorically deny having triskaidekaphobia.")
	assert.Equal(t, &Match{Start: 2, End: 15, Value: "categorically"}, m)
}

func TestFindAt(t *testing.T) {
	re := MustCompile(`a`)
	assert.Nil(t, re.FindAt("abc", 1))
	assert.Nil(t, re.FindAt("abc", 100))
	assert.Equal(t, &Match{Start: 3, End: 4, Value: "a"}, re.FindAt("abca", 1))

	text := "I categorically deny having triskaidekaphobia."
	word := MustCompile(thirteen)
	assert.Equal(t, &Match{Start: 2, End: 15, Value: "categorically"}, word.FindAt(text, 1))
	assert.Nil(t, word.FindAt(text, 5))
}

func TestFindUTF8(t *testing.T) {
	m := MustCompile(`ä`).Find("äöü")
	require.NotNil(t, m)
	assert.Equal(t, 0, m.Start)
	assert.Equal(t, 2, m.End)

	m = MustCompile(`\p{Greek}+`).Find("Greek: αβγδ")
	assert.Equal(t, &Match{Start: 7, End: 15, Value: "αβγδ"}, m)
}

func TestFindAll(t *testing.T) {
	re := MustCompile(`a`)
	assert.Equal(t, []Match{
		{Start: 0, End: 1, Value: "a"},
		{Start: 3, End: 4, Value: "a"},
		{Start: 6, End: 7, Value: "a"},
	}, re.FindAll("abcabcabc"))
	assert.Empty(t, re.FindAll("def"))

	text := "Retroactively relinquishing remunerations is reprehensible."
	assert.Equal(t, []Match{
		{Start: 0, End: 13, Value: "Retroactively"},
		{Start: 14, End: 27, Value: "relinquishing"},
		{Start: 28, End: 41, Value: "remunerations"},
		{Start: 45, End: 58, Value: "reprehensible"},
	}, MustCompile(thirteen).FindAll(text))
}

func TestFindAllEmptyMatches(t *testing.T) {
	tests := []struct {
		pattern string
		text    string
		want    [][2]int
	}{
		// No empty match right after a non-empty one.
		{`a*`, "aaa", [][2]int{{0, 3}}},
		{`a*`, "baaac", [][2]int{{0, 0}, {1, 4}, {5, 5}}},
		{`x*`, "", [][2]int{{0, 0}}},
		// Empty matches step over whole characters.
		{`x*`, "é", [][2]int{{0, 0}, {2, 2}}},
	}
	for _, tt := range tests {
		t.Run(tt.pattern+"/"+tt.text, func(t *testing.T) {
			var got [][2]int
			for _, m := range MustCompile(tt.pattern).FindAll(tt.text) {
				got = append(got, [2]int{m.Start, m.End})
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestShortestMatch(t *testing.T) {
	re := MustCompile(`a`)
	tests := []struct {
		text   string
		want   int
		wantOK bool
	}{
		{"abcabcabc", 1, true},
		{"bcabcabc", 3, true},
		{"cabcabc", 2, true},
		{"defdefdef", 0, false},
	}
	for _, tt := range tests {
		end, ok := re.ShortestMatch(tt.text)
		assert.Equal(t, tt.wantOK, ok, tt.text)
		assert.Equal(t, tt.want, end, tt.text)
	}

	end, ok := MustCompile(`a+`).ShortestMatch("aaaaa")
	assert.True(t, ok)
	assert.Equal(t, 1, end)
}

func TestShortestMatchAt(t *testing.T) {
	re := MustCompile(`a`)
	tests := []struct {
		text   string
		start  int
		want   int
		wantOK bool
	}{
		{"abcabca", 0, 1, true},
		{"abcabca", 1, 4, true},
		{"abcabca", 2, 4, true},
		{"abcabca", 3, 4, true},
		{"abcabca", 4, 7, true},
		{"abcabca", 5, 7, true},
		{"abcabca", 6, 7, true},
		{"abcabca", 7, 0, false},
		{"abcabca", 100, 0, false},
		{"defdefdef", 0, 0, false},
		{"defdefdef", 1, 0, false},
		{"defdefdef", 2, 0, false},
	}
	for _, tt := range tests {
		end, ok := re.ShortestMatchAt(tt.text, tt.start)
		assert.Equal(t, tt.wantOK, ok, "%q at %d", tt.text, tt.start)
		assert.Equal(t, tt.want, end, "%q at %d", tt.text, tt.start)
	}
}

func TestShortestMatchKeepsAlternationOrder(t *testing.T) {
	end, ok := MustCompile(`abc|b`).ShortestMatch("abc")
	assert.True(t, ok)
	assert.Equal(t, 3, end)
}

func TestShortestNeverAfterFind(t *testing.T) {
	patterns := []string{`a+`, `a{2,5}`, `\w+\d*`, `[a-c]+?x?`, `(ab)+`}
	texts := []string{"aaaa", "abab1", "xyz", "cabbage"}
	for _, p := range patterns {
		re := MustCompile(p)
		for _, text := range texts {
			m := re.Find(text)
			end, ok := re.ShortestMatch(text)
			if m == nil {
				assert.False(t, ok, "%s on %q", p, text)
				continue
			}
			require.True(t, ok, "%s on %q", p, text)
			assert.LessOrEqual(t, end, m.End, "%s on %q", p, text)
		}
	}
}

func TestHirAndSyntax(t *testing.T) {
	re := MustCompile(`a+`)
	h := re.Hir()
	require.Equal(t, hir.KindRepetition, h.Kind())
	assert.Same(t, h, re.Hir())

	v := re.Syntax()
	assert.Equal(t, hir.TypeHirKind, v.TypeName())
	assert.Equal(t, "Repetition", v.VariantName())
	back, err := hir.Decode(v)
	require.NoError(t, err)
	assert.True(t, h.Equal(back))
}

func TestConcurrentUse(t *testing.T) {
	re := MustCompile(`(?P<first>\w)(\w)(?:\w)\w(?P<last>\w)`)
	const text = "toady frogs newts"
	wantAll := re.FindAll(text)
	require.Len(t, wantAll, 3)

	var wg sync.WaitGroup
	for g := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 200 {
				start := (g + i) % len(text)
				want := wantAll[0]
				for _, m := range wantAll {
					if m.Start >= start {
						want = m
						break
					}
				}
				caps := re.CapturesAt(text, start)
				if start > wantAll[2].Start {
					if caps != nil {
						t.Errorf("CapturesAt(%d) = %v, want nil", start, caps.Get(0))
					}
				} else if caps == nil || *caps.Get(0) != want {
					t.Errorf("CapturesAt(%d) did not return %v", start, want)
				}
				if got := re.FindAll(text); len(got) != 3 || got[1] != wantAll[1] {
					t.Errorf("FindAll = %v", got)
				}
				if end, ok := re.ShortestMatchAt(text, 0); !ok || end != 5 {
					t.Errorf("ShortestMatchAt = %d, %v", end, ok)
				}
				if !re.IsMatchAt(text, start%6) {
					t.Errorf("IsMatchAt(%d) = false", start%6)
				}
				re.Hir()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, "y", re.Captures(text).Name("last").Value)
}

func TestConfigError(t *testing.T) {
	config := DefaultConfig()
	config.MaxDFAStates = 0
	_, err := CompileWithConfig(`a`, config)
	require.Error(t, err)
	var configErr *meta.ConfigError
	require.True(t, errors.As(err, &configErr), "got %T", err)
	assert.Equal(t, "MaxDFAStates", configErr.Field)
}
