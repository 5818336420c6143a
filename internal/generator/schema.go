package generator

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// questionSchema constrains what we accept from the model before trusting
// the payload enough to unmarshal it. Cross-field checks (correctIndex
// within the options slice) happen in Go after validation.
const questionSchema = `{
  "type": "object",
  "required": ["question", "options", "correctIndex", "explanation"],
  "properties": {
    "question": {"type": "string", "minLength": 1},
    "options": {
      "type": "array",
      "minItems": 2,
      "maxItems": 6,
      "items": {"type": "string", "minLength": 1}
    },
    "correctIndex": {"type": "integer", "minimum": 0},
    "explanation": {"type": "string", "minLength": 1},
    "hint": {"type": "string"}
  }
}`

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

func questionSchemaCompiled() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(strings.NewReader(questionSchema))
		if err != nil {
			schemaErr = fmt.Errorf("parse question schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource("question.json", doc); err != nil {
			schemaErr = fmt.Errorf("add question schema: %w", err)
			return
		}
		compiledSchema, schemaErr = c.Compile("question.json")
	})
	return compiledSchema, schemaErr
}

// ValidateQuestionPayload checks a raw model response against the question
// schema before it is unmarshalled into a GeneratedQuestion.
func ValidateQuestionPayload(raw []byte) error {
	sch, err := questionSchemaCompiled()
	if err != nil {
		return err
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return fmt.Errorf("parse question payload: %w", err)
	}
	if err := sch.Validate(v); err != nil {
		return fmt.Errorf("question payload rejected: %w", err)
	}
	return nil
}
