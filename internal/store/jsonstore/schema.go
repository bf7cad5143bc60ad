package jsonstore

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/idilsaglam/todomenu/internal/model"
)

const schemaURL = "todos.schema.json"

//go:embed todos.schema.json
var schemaSource string

var compileSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaURL, strings.NewReader(schemaSource)); err != nil {
		return nil, fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return schema, nil
})

// decode parses b and checks that it is a JSON array of
// {text: string, completed: bool} records. Extra fields are tolerated.
// Keys match exactly, so "Text" is an extra field and not the text.
func decode(b []byte) (model.List, error) {
	schema, err := compileSchema()
	if err != nil {
		return nil, err
	}

	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("json unmarshal: trailing data")
	}

	if err := schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("schema: %s", schemaMessage(err))
	}

	records, _ := doc.([]any)
	items := make(model.List, 0, len(records))
	for _, r := range records {
		fields, _ := r.(map[string]any)
		text, _ := fields["text"].(string)
		completed, _ := fields["completed"].(bool)
		items = append(items, model.Todo{Text: text, Completed: completed})
	}
	return items, nil
}

// schemaMessage flattens a validation error to its first leaf cause.
func schemaMessage(err error) string {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return err.Error()
	}
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	if ve.InstanceLocation == "" {
		return ve.Message
	}
	return ve.InstanceLocation + ": " + ve.Message
}
