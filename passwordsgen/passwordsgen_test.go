package passwordsgen

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/broady/passwords/passwordsgen/golang"
	"github.com/broady/passwords/passwordsgen/schema"
	"github.com/broady/passwords/passwordsgen/sink"
)

func TestFromPackages(t *testing.T) {
	res, err := FromPackages("../internal/schemadef").PackageName("passwords").Generate()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Folder", "Password", "Tag", "Share"}, res.Entities)

	var paths []string
	for _, f := range res.Files {
		paths = append(paths, f.Path)
		assert.True(t, bytes.HasPrefix(f.Content, []byte(golang.Header)), f.Path)
		assert.Contains(t, string(f.Content), "package passwords\n")
	}
	assert.ElementsMatch(t, []string{"folder_gen.go", "password_gen.go", "tag_gen.go", "share_gen.go"}, paths)
}

func TestCheckedInBindingsAreCurrent(t *testing.T) {
	res, err := FromPackages("../internal/schemadef").PackageName("passwords").Generate()
	require.NoError(t, err)
	require.NotEmpty(t, res.Files)

	for _, f := range res.Files {
		current, err := os.ReadFile(filepath.Join("..", f.Path))
		require.NoError(t, err, f.Path)
		assert.Equal(t, string(f.Content), string(current), "%s is stale; run go generate in the module root", f.Path)
	}
}

func TestFromPackagesDir(t *testing.T) {
	assert.NoError(t, FromPackages("./internal/schemadef").Dir("..").PackageName("passwords").Check())
}

func TestFromFileToDir(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "schema.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
package: things
entities:
  - name: Widget
    endpoint: 1.0/widget
    ops: [list, create]
    fields:
      - {name: ID, json: id, type: uuid.UUID}
      - {name: Label, json: label, type: string, pw: "versioned create(required)"}
`), 0o644))

	out := filepath.Join(dir, "out")
	res, err := FromFile(path).ToDir(out)
	require.NoError(t, err)
	assert.Equal(t, []string{"Widget"}, res.Entities)

	content, err := os.ReadFile(filepath.Join(out, "widget_gen.go"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "package things")
	assert.Contains(t, string(content), "func (a *WidgetAPI) Create(")
	assert.NotContains(t, string(content), "func (a *WidgetAPI) Delete(")
}

func TestFromSchemaToSink(t *testing.T) {
	s := &schema.Schema{Package: "p", Entities: []*schema.Entity{{
		Name:     "Note",
		Endpoint: "1.0/note",
		Ops:      []schema.Op{schema.OpList},
		Fields:   []schema.Field{{Name: "Text", JSONName: "text", Type: "string", Tag: schema.MustParseTag("versioned")}},
	}}}
	mem := sink.NewMemorySink()

	res, err := FromSchema(s).WithContext(context.Background()).ToSink(mem)
	require.NoError(t, err)
	require.Len(t, res.Files, 1)
	assert.Equal(t, []string{"note_gen.go"}, mem.Paths())
	assert.Equal(t, res.Files[0].Content, mem.Get("note_gen.go"))
}

func TestCheckReportsSchemaErrors(t *testing.T) {
	s := &schema.Schema{Entities: []*schema.Entity{
		{Name: "note", Endpoint: "1.0/note"},
		{Name: "Dup", Endpoint: "/bad"},
		{Name: "Dup", Endpoint: "1.0/dup"},
	}}
	err := FromSchema(s).Check()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid_entity_name")
	assert.Contains(t, err.Error(), "invalid_endpoint")
	assert.Contains(t, err.Error(), "duplicate_entity")
}

func TestNoSource(t *testing.T) {
	_, err := (&Generator{}).Generate()
	assert.ErrorContains(t, err, "no schema source")
}

func TestCanceledWrite(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := &schema.Schema{Package: "p", Entities: []*schema.Entity{{
		Name:     "Note",
		Endpoint: "1.0/note",
		Fields:   []schema.Field{{Name: "Text", JSONName: "text", Type: "string"}},
	}}}
	_, err := FromSchema(s).WithContext(ctx).ToDir(t.TempDir())
	assert.ErrorIs(t, err, context.Canceled)
}
