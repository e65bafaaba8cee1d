package scheduler

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/abhisek/drill/internal/session"
)

const itemSchemaURL = "schema://scheduler-item.json"

// itemSchema describes the response of POST /next.
var itemSchema = map[string]any{
	"type":     "object",
	"required": []string{"question", "answer", "consec", "weights"},
	"properties": map[string]any{
		"question": map[string]any{"type": "string"},
		"answer":   map[string]any{"type": "string"},
		"consec":   map[string]any{"type": "integer", "minimum": 0},
		"weights": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items": map[string]any{
				"type":     "object",
				"required": []string{"consec", "weight"},
				"properties": map[string]any{
					"consec": map[string]any{"type": "integer"},
					"weight": map[string]any{"type": "number"},
					"size":   map[string]any{"type": "number"},
				},
			},
		},
	},
}

// DecodeItem validates raw against the item schema and decodes it.
// Returns *ErrInvalidResponse on failure.
func DecodeItem(raw []byte) (*session.Item, error) {
	if err := validateItem(raw); err != nil {
		return nil, err
	}
	var item session.Item
	if err := json.Unmarshal(raw, &item); err != nil {
		return nil, &ErrInvalidResponse{Content: raw, Err: err}
	}
	return &item, nil
}

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

// validateItem checks raw JSON against the item schema.
// Returns *ErrInvalidResponse on failure.
func validateItem(raw json.RawMessage) error {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return &ErrInvalidResponse{
			Content: raw,
			Err:     fmt.Errorf("invalid JSON: %w", err),
		}
	}

	schema, err := getItemSchema()
	if err != nil {
		return &ErrInvalidResponse{
			Content: raw,
			Err:     fmt.Errorf("compile item schema: %w", err),
		}
	}

	if err := schema.Validate(parsed); err != nil {
		return &ErrInvalidResponse{
			Content: raw,
			Err:     fmt.Errorf("schema validation failed: %w", err),
		}
	}
	return nil
}

func getItemSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		// The compiler wants a plain decoded JSON value.
		defBytes, err := json.Marshal(itemSchema)
		if err != nil {
			compileErr = fmt.Errorf("marshal schema definition: %w", err)
			return
		}
		var def any
		if err := json.Unmarshal(defBytes, &def); err != nil {
			compileErr = fmt.Errorf("parse schema definition: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource(itemSchemaURL, def); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile(itemSchemaURL)
	})
	return compiledSchema, compileErr
}
