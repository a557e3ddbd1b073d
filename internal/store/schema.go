package store

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const stateSchemaURL = "schema://progress-state.json"

// stateSchema describes the persisted blob. Fields that normalize() repairs
// (itemId, reviewCount, timeSpent) are only type-checked.
const stateSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["items"],
  "properties": {
    "items": {
      "type": "object",
      "additionalProperties": { "$ref": "#/$defs/item" }
    },
    "lastActivityDate": { "type": "string" },
    "streakCount": { "type": "number" }
  },
  "$defs": {
    "item": {
      "type": "object",
      "required": ["solvedAt", "nextReviewAt", "confidence"],
      "properties": {
        "itemId": { "type": "string" },
        "solvedAt": { "type": "array", "items": { "type": "number" } },
        "difficulty": { "type": "string" },
        "timeSpent": { "type": ["number", "null"] },
        "confidence": { "type": "number" },
        "nextReviewAt": { "type": "number" },
        "reviewCount": { "type": "number" }
      }
    }
  }
}`

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

func getStateSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		var def any
		if err := json.Unmarshal([]byte(stateSchema), &def); err != nil {
			compileErr = fmt.Errorf("parse schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(stateSchemaURL, def); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile(stateSchemaURL)
	})
	return compiledSchema, compileErr
}

// validateState checks a parsed JSON document against the state schema.
func validateState(doc any) error {
	sch, err := getStateSchema()
	if err != nil {
		return fmt.Errorf("compile state schema: %w", err)
	}
	if err := sch.Validate(doc); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}
