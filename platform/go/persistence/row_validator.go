package persistence

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// recordRowSchema constrains a spreadsheet row before it is turned into a
// record. Only the two fields the store itself requires are mandatory; the
// rest must merely be strings when present.
const recordRowSchema = `{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type": "object",
	"properties": {
		"ownerName":         {"type": "string", "minLength": 1},
		"establishmentName": {"type": "string", "minLength": 1},
		"businessAddress":   {"type": "string"},
		"contactNumber":     {"type": "string"},
		"fsicAppNo":         {"type": "string"},
		"dateInspected":     {"type": "string"},
		"dateReinspected":   {"type": "string"},
		"inspector1":        {"type": "string"},
		"inspector2":        {"type": "string"},
		"inspector3":        {"type": "string"},
		"remarks":           {"type": "string"},
		"orNumber":          {"type": "string"},
		"orAmount":          {"type": "string"},
		"orDate":            {"type": "string"}
	},
	"required": ["ownerName", "establishmentName"]
}`

// RowValidator validates imported spreadsheet rows against the record row
// schema, compiled once via santhosh-tekuri/jsonschema.
type RowValidator struct {
	once     sync.Once
	compiled *jsonschema.Schema
	initErr  error
}

// NewRowValidator returns a validator; the schema compiles lazily on first use.
func NewRowValidator() *RowValidator {
	return &RowValidator{}
}

// Validate ensures the row matches the record row schema.
func (v *RowValidator) Validate(row map[string]any) error {
	v.once.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("memory://schemas/record-row", strings.NewReader(recordRowSchema)); err != nil {
			v.initErr = fmt.Errorf("register record row schema: %w", err)
			return
		}
		v.compiled, v.initErr = compiler.Compile("memory://schemas/record-row")
	})
	if v.initErr != nil {
		return v.initErr
	}

	// Round-trip through JSON so the validator sees plain any values.
	body, err := json.Marshal(row)
	if err != nil {
		return fmt.Errorf("encode row: %w", err)
	}
	var document any
	if err := json.Unmarshal(body, &document); err != nil {
		return fmt.Errorf("decode row: %w", err)
	}

	if err := v.compiled.Validate(document); err != nil {
		return fmt.Errorf("row validation: %w", err)
	}
	return nil
}
