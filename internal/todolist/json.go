package todolist

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/idilsaglam/todolist/internal/model"
)

//go:embed schema.json
var schemaSource string

var documentSchema = jsonschema.MustCompileString("https://github.com/idilsaglam/todolist/schema.json", schemaSource)

// document is the on-disk JSON shape.
type document struct {
	Items  map[string]model.Item `json:"items"`
	NextID uint32                `json:"next_id"`
}

// MarshalJSON implements json.Marshaler.
func (c *Collection) MarshalJSON() ([]byte, error) {
	items := c.items
	if items == nil {
		items = map[string]model.Item{}
	}
	return json.Marshal(document{Items: items, NextID: c.nextID})
}

// UnmarshalJSON implements json.Unmarshaler with the same checks as ParseJSON.
func (c *Collection) UnmarshalJSON(data []byte) error {
	parsed, err := ParseJSON(data)
	if err != nil {
		return err
	}
	*c = *parsed
	return nil
}

// JSON returns the compact encoding.
func (c *Collection) JSON() ([]byte, error) {
	return json.Marshal(c)
}

// JSONPretty returns the encoding indented by two spaces.
func (c *Collection) JSONPretty() ([]byte, error) {
	return json.MarshalIndent(c, "", "  ")
}

// ParseJSON decodes a collection. The document must match the schema
// and every key must equal its item's normalized description, ids must
// be unique and below next_id. Failures match ErrMalformedStorage.
func ParseJSON(data []byte) (*Collection, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			err = errors.New("empty document")
		}
		return nil, &ParseError{Format: "json", Err: err}
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, &ParseError{Format: "json", Err: errors.New("unexpected data after document")}
	}

	if err := documentSchema.Validate(raw); err != nil {
		return nil, schemaError(err)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &ParseError{Format: "json", Err: err}
	}
	return restore(doc)
}

func restore(doc document) (*Collection, error) {
	keys := make([]string, 0, len(doc.Items))
	for k := range doc.Items {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	c := New()
	c.nextID = doc.NextID
	for _, key := range keys {
		it := doc.Items[key]
		path := "items." + key
		if Normalize(it.Description) != key {
			return nil, &ParseError{Format: "json", Path: path + ".description",
				Err: fmt.Errorf("description %q does not match key", it.Description)}
		}
		if it.ID >= doc.NextID {
			return nil, &ParseError{Format: "json", Path: path + ".id",
				Err: fmt.Errorf("id %d is not below next_id %d", it.ID, doc.NextID)}
		}
		if other, dup := c.keys[it.ID]; dup {
			return nil, &ParseError{Format: "json", Path: path + ".id",
				Err: fmt.Errorf("id %d already used by %q", it.ID, other)}
		}
		c.put(key, it)
	}
	return c, nil
}

// schemaError reports the first leaf cause of a schema failure.
func schemaError(err error) error {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return &ParseError{Format: "json", Err: err}
	}
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	return &ParseError{
		Format: "json",
		Path:   pointerToPath(ve.InstanceLocation),
		Err:    errors.New(ve.Message),
	}
}

func pointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "#")
	ptr = strings.TrimPrefix(ptr, "/")
	if ptr == "" {
		return ""
	}
	parts := strings.Split(ptr, "/")
	for i, part := range parts {
		part = strings.ReplaceAll(part, "~1", "/")
		parts[i] = strings.ReplaceAll(part, "~0", "~")
	}
	return strings.Join(parts, ".")
}
