package schema_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coregx/rregex/hir"
	"github.com/coregx/rregex/schema"
	"github.com/coregx/rregex/tagged"
)

func TestSchemaIsValidJSON(t *testing.T) {
	var doc map[string]any
	require.NoError(t, json.Unmarshal(schema.Bytes(), &doc))
	assert.Equal(t, "http://json-schema.org/draft-07/schema#", doc["$schema"])
}

func TestSchemaDefinesEveryVariant(t *testing.T) {
	defs, err := schema.Definitions()
	require.NoError(t, err)

	for _, k := range hir.Kinds() {
		assert.Contains(t, defs, "HirKind."+k.String())
	}
	for _, l := range hir.Looks() {
		assert.Contains(t, defs, "Look."+l.String())
	}
	for _, name := range []string{"Class.Unicode", "Class.Bytes", "ClassUnicodeRange", "ClassBytesRange", "Repetition", "Capture", "Literal"} {
		assert.Contains(t, defs, name)
	}

	looks := 0
	for _, d := range defs {
		if len(d) > 5 && d[:5] == "Look." {
			looks++
		}
	}
	assert.Equal(t, len(hir.Looks()), looks, "no stale Look definitions")
}

func TestEncodingsValidate(t *testing.T) {
	patterns := []string{
		``, `a`, `a+`, `a*?`, `a{2,5}`, `cat|dog`, `(?P<first>\w)(\w)(?:\w)\w(?P<last>\w)`,
		`(?m)^x$`, `\bfoo\B`, `[^a-z]`, `(?i)k`, `(?s).`, `[^\x00-\x{10FFFF}]`, `((a|b)*c)+?`,
		"\x00", `\x{10FFFF}`,
	}
	for _, p := range patterns {
		for _, unicode := range []bool{true, false} {
			h, err := hir.Parse(p, hir.Config{Flags: hir.DefaultConfig().Flags, Unicode: unicode})
			require.NoError(t, err)
			assert.NoError(t, schema.Validate(hir.Encode(h)), "pattern %q", p)
		}
	}
	for _, l := range hir.Looks() {
		assert.NoError(t, schema.Validate(hir.Encode(hir.NewLook(l))), l.String())
	}
	bytesClass := hir.NewClass(hir.NewClassBytes(hir.ClassBytesRange{Start: 0x80, End: 0xFF}))
	assert.NoError(t, schema.Validate(hir.Encode(bytesClass)))
	assert.NoError(t, schema.Validate(hir.Encode(hir.Literal([]byte{0xFF}))))
}

func TestRejectsForeignShapes(t *testing.T) {
	tests := []struct {
		name string
		v    tagged.Value
	}{
		{"bare struct", tagged.MakeStruct("hir.Literal")},
		{"unknown variant", tagged.MakeVariant(hir.TypeHirKind, "Backref")},
		{"look with wrong type name", tagged.MakeVariant(hir.TypeHirKind, "Look",
			tagged.MakeVariant("hir.HirKind", "Start"))},
		{"concat of one", tagged.MakeVariant(hir.TypeHirKind, "Concat",
			tagged.List(hir.Encode(hir.Empty())))},
		{"empty with payload", tagged.MakeVariant(hir.TypeHirKind, "Empty", tagged.Int(0))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := schema.Validate(tt.v)
			require.Error(t, err)
			var ve *schema.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.NotEmpty(t, ve.Problems)
		})
	}
}

func TestValidateJSONRejectsSyntax(t *testing.T) {
	err := schema.ValidateJSON([]byte(`{`))
	assert.Error(t, err)
}
