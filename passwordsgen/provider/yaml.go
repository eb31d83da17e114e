package provider

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/broady/passwords/passwordsgen/schema"
)

// YAMLProvider reads entity schemas from a YAML document:
//
//	package: passwords
//	entities:
//	  - name: Folder
//	    endpoint: 1.0/folder
//	    ops: [list, get, find]
//	    details: [revisions, passwords]
//	    fields:
//	      - {name: ID, json: id, type: uuid.UUID, pw: "update(required)"}
//
// Omitting ops enables every operation.
type YAMLProvider struct{}

type yamlSchema struct {
	Package  string       `yaml:"package"`
	Entities []yamlEntity `yaml:"entities"`
}

type yamlEntity struct {
	Name     string      `yaml:"name"`
	Endpoint string      `yaml:"endpoint"`
	Doc      string      `yaml:"doc"`
	Ops      []string    `yaml:"ops"`
	Details  []string    `yaml:"details"`
	Fields   []yamlField `yaml:"fields"`
}

type yamlField struct {
	Name string `yaml:"name"`
	JSON string `yaml:"json"`
	Type string `yaml:"type"`
	PW   string `yaml:"pw"`
	Doc  string `yaml:"doc"`
}

// BuildSchema reads and validates the schema stored at path.
func (p *YAMLProvider) BuildSchema(ctx context.Context, path string) (*schema.Schema, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s, err := p.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Decode reads and validates a schema document. Unknown keys are errors.
func (p *YAMLProvider) Decode(r io.Reader) (*schema.Schema, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc yamlSchema
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty schema document")
		}
		return nil, err
	}

	s := &schema.Schema{Package: doc.Package}
	for _, ye := range doc.Entities {
		e := &schema.Entity{
			Name:     ye.Name,
			Endpoint: ye.Endpoint,
			Doc:      ye.Doc,
			Details:  ye.Details,
		}
		ops, err := schema.ParseOps(strings.Join(ye.Ops, ","))
		if err != nil {
			return nil, fmt.Errorf("entity %s: %w", ye.Name, err)
		}
		e.Ops = ops

		for _, yf := range ye.Fields {
			tag, err := schema.ParseTag(yf.PW)
			if err != nil {
				return nil, fmt.Errorf("entity %s: field %s: %w", ye.Name, yf.Name, err)
			}
			e.Fields = append(e.Fields, schema.Field{
				Name:     yf.Name,
				JSONName: yf.JSON,
				Type:     yf.Type,
				Tag:      tag,
				Doc:      strings.TrimSpace(yf.Doc),
			})
		}
		s.AddEntity(e)
	}
	if len(s.Entities) == 0 {
		return nil, fmt.Errorf("schema declares no entities")
	}
	return validated(s)
}
