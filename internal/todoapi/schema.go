package todoapi

import (
	"errors"
	"fmt"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// todoItemSchema accepts any object carrying a non-empty identifier. Other
// fields are only type-checked when present.
const todoItemSchema = `{
	"type": "object",
	"properties": {
		"id":        {"type": "string", "minLength": 1},
		"_id":       {"type": "string", "minLength": 1},
		"text":      {"type": "string"},
		"completed": {"type": "boolean"},
		"createdAt": {"type": "string"}
	},
	"anyOf": [
		{"required": ["id"]},
		{"required": ["_id"]}
	]
}`

var itemSchema = jsonschema.MustCompileString("todo_item.schema.json", todoItemSchema)

// validateItem checks a decoded JSON value against the item schema.
func validateItem(op string, doc any) error {
	if err := itemSchema.Validate(doc); err != nil {
		return &InvalidResponseError{Op: op, Reason: schemaReason(err)}
	}
	return nil
}

func schemaReason(err error) string {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return err.Error()
	}
	leaf := firstLeaf(ve)
	location := strings.TrimPrefix(leaf.InstanceLocation, "/")
	if location == "" {
		location = "payload"
	}
	return fmt.Sprintf("%s: %s", location, leaf.Message)
}

func firstLeaf(ve *jsonschema.ValidationError) *jsonschema.ValidationError {
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	return ve
}
