package questionbank

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// recordSchemaJSON describes one question record of the bank resource.
// Cross-field rules (unique option ids, correct id present) are checked
// after decoding because JSON Schema cannot express them.
const recordSchemaJSON = `{
  "type": "object",
  "required": ["level", "scenario", "options", "correct", "feedback"],
  "properties": {
    "level": {"type": "string", "minLength": 1},
    "scenario": {"type": "string", "minLength": 1},
    "options": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["id", "command"],
        "properties": {
          "id": {"type": "string", "minLength": 1},
          "command": {"type": "string"}
        }
      }
    },
    "correct": {"type": "string", "minLength": 1},
    "feedback": {
      "type": "object",
      "required": ["correct"],
      "properties": {
        "correct": {"type": "string"},
        "incorrect": {
          "type": "object",
          "required": ["definition", "retry"],
          "properties": {
            "command": {"type": "string"},
            "definition": {"type": "string"},
            "analogy": {"type": "string"},
            "example": {"type": "string"},
            "retry": {"type": "boolean"}
          }
        }
      }
    }
  }
}`

const recordSchemaURL = "schema://question-record.json"

var (
	recordSchemaOnce sync.Once
	recordSchema     *jsonschema.Schema
	recordSchemaErr  error
)

// compiledRecordSchema compiles the record schema once per process.
func compiledRecordSchema() (*jsonschema.Schema, error) {
	recordSchemaOnce.Do(func() {
		// The compiler wants a decoded JSON value, not raw bytes.
		var def any
		if err := json.Unmarshal([]byte(recordSchemaJSON), &def); err != nil {
			recordSchemaErr = fmt.Errorf("parse schema definition: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(recordSchemaURL, def); err != nil {
			recordSchemaErr = fmt.Errorf("add resource: %w", err)
			return
		}
		recordSchema, recordSchemaErr = c.Compile(recordSchemaURL)
		if recordSchemaErr != nil {
			recordSchemaErr = fmt.Errorf("compile: %w", recordSchemaErr)
		}
	})
	return recordSchema, recordSchemaErr
}

// validateRecord checks a raw record against the schema.
func validateRecord(raw json.RawMessage) error {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	sch, err := compiledRecordSchema()
	if err != nil {
		return err
	}
	if err := sch.Validate(parsed); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}
