// Package schema holds the JSON Schema of the tagged HIR encoding and
// validates encoded values against it.
//
// The schema documents every shape hir.Encode can produce: one definition
// per node kind, both class encodings and each of the eighteen assertion
// kinds. It is a tested artifact: the tests check it against the hir
// package rather than trusting it as prose.
package schema

import (
	"embed"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"

	"github.com/coregx/rregex/tagged"
)

// FileName is the name of the embedded schema document.
const FileName = "hir.schema.json"

// FS holds the embedded schema document.
//
//go:embed hir.schema.json
var FS embed.FS

// Bytes returns the raw schema document.
func Bytes() []byte {
	b, err := FS.ReadFile(FileName)
	if err != nil {
		panic("schema: embedded document missing: " + err.Error())
	}
	return b
}

var compiled = sync.OnceValues(func() (*gojsonschema.Schema, error) {
	return gojsonschema.NewSchema(gojsonschema.NewBytesLoader(Bytes()))
})

// ValidationError lists the ways a document departs from the schema.
type ValidationError struct {
	Problems []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if len(e.Problems) == 1 {
		return "schema: " + e.Problems[0]
	}
	return fmt.Sprintf("schema: %d problems: %s", len(e.Problems), strings.Join(e.Problems, "; "))
}

// Validate checks that v is a valid encoding of a tree.
func Validate(v tagged.Value) error {
	doc, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("schema: encode value: %w", err)
	}
	return ValidateJSON(doc)
}

// ValidateJSON checks a JSON document against the schema.
func ValidateJSON(doc []byte) error {
	s, err := compiled()
	if err != nil {
		return fmt.Errorf("schema: compile: %w", err)
	}
	result, err := s.Validate(gojsonschema.NewBytesLoader(doc))
	if err != nil {
		return fmt.Errorf("schema: validate: %w", err)
	}
	if result.Valid() {
		return nil
	}
	problems := make([]string, 0, len(result.Errors()))
	for _, re := range result.Errors() {
		problems = append(problems, re.Field()+": "+re.Description())
	}
	return &ValidationError{Problems: problems}
}

// Definitions returns the names of the schema definitions, sorted.
func Definitions() ([]string, error) {
	var doc struct {
		Definitions map[string]json.RawMessage `json:"definitions"`
	}
	if err := json.Unmarshal(Bytes(), &doc); err != nil {
		return nil, fmt.Errorf("schema: parse document: %w", err)
	}
	names := make([]string, 0, len(doc.Definitions))
	for name := range doc.Definitions {
		names = append(names, name)
	}
	slices.Sort(names)
	return names, nil
}
