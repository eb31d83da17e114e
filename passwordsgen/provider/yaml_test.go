package provider

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/broady/passwords/passwordsgen/schema"
)

const tagSchema = `
package: passwords
entities:
  - name: Tag
    endpoint: 1.0/tag
    doc: Tag is a colored label.
    details: [revisions]
    fields:
      - {name: ID, json: id, type: uuid.UUID, pw: "update(required)"}
      - {name: Label, json: label, type: string, pw: "versioned create(required) update(required)"}
      - {name: Color, json: color, type: string, pw: "versioned create(required) update(required)"}
      - {name: Trashed, json: trashed, type: bool, pw: "versioned search"}
      - name: Revisions
        json: revisions
        type: "[]VersionedTag"
`

func TestYAMLProviderDecode(t *testing.T) {
	s, err := (&YAMLProvider{}).Decode(strings.NewReader(tagSchema))
	require.NoError(t, err)
	assert.Equal(t, "passwords", s.Package)
	require.Len(t, s.Entities, 1)

	tag := s.Entities[0]
	assert.Equal(t, "Tag", tag.Name)
	assert.Equal(t, schema.AllOps, tag.Ops)
	assert.Equal(t, []string{"revisions"}, tag.Details)
	require.Len(t, tag.Fields, 5)
	assert.Equal(t, "[]VersionedTag", tag.Fields[4].Type)
	assert.True(t, tag.Fields[4].Tag.IsPlain())

	sets := schema.Partition(tag)
	assert.Len(t, sets.CreateRequired, 2)
	assert.Len(t, sets.Searchable, 1)
}

func TestYAMLProviderBuildSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schema.yaml")
	require.NoError(t, os.WriteFile(path, []byte(tagSchema), 0o644))

	s, err := (&YAMLProvider{}).BuildSchema(context.Background(), path)
	require.NoError(t, err)
	assert.NotNil(t, entityNamed(s, "Tag"))

	_, err = (&YAMLProvider{}).BuildSchema(context.Background(), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestYAMLProviderErrors(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{"empty", "", "empty schema document"},
		{"no entities", "package: p\n", "no entities"},
		{"unknown key", "package: p\nentites: []\n", "entites"},
		{"bad op", "entities:\n  - {name: X, endpoint: 1.0/x, ops: [purge]}\n", `unknown operation "purge"`},
		{"bad tag", "entities:\n  - name: X\n    endpoint: 1.0/x\n    fields:\n      - {name: A, json: a, type: int, pw: create}\n", "field A"},
		{"invalid", "entities:\n  - {name: x, endpoint: /1.0/x, ops: [list]}\n", "invalid_entity_name"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := (&YAMLProvider{}).Decode(strings.NewReader(tt.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
