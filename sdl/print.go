package sdl

import (
	"bytes"
	"io"

	"github.com/pkg/errors"
	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/formatter"

	schemafu "github.com/ccbrown/schema-fu"
)

// Print writes the schema definition language document of a built schema to w.
func Print(w io.Writer, s *schemafu.Schema) error {
	doc, err := Document(s)
	if err != nil {
		return err
	}
	formatter.NewFormatter(w).FormatSchemaDocument(doc)
	return nil
}

// String returns the schema definition language document of a built schema.
func String(s *schemafu.Schema) (string, error) {
	var buf bytes.Buffer
	if err := Print(&buf, s); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Load prints the schema and parses it back, validating it against the GraphQL specification.
func Load(s *schemafu.Schema) (*ast.Schema, error) {
	src, err := String(s)
	if err != nil {
		return nil, err
	}
	loaded, gqlErr := gqlparser.LoadSchema(&ast.Source{
		Name:  "schema.graphql",
		Input: src,
	})
	if gqlErr != nil {
		return nil, errors.Wrap(gqlErr, "invalid schema document")
	}
	return loaded, nil
}

// Validate returns an error if the printed schema isn't a valid GraphQL schema.
func Validate(s *schemafu.Schema) error {
	_, err := Load(s)
	return err
}
