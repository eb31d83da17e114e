package directive

import (
	"go/parser"
	"go/token"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseSource(t *testing.T, src string) ([]Decl, error) {
	t.Helper()
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, "schema.go", src, parser.ParseComments)
	require.NoError(t, err)
	return ParseFile(fset, f)
}

func TestParseFile(t *testing.T) {
	decls, err := parseSource(t, `package schemadef

// Folder groups passwords.
//
//passwords:entity 1.0/folder
//passwords:details revisions passwords
type Folder struct {
	ID string `+"`json:\"id\"`"+`
}

// Share is read only.
//
//passwords:entity 1.0/share list,get
type Share struct{}

// Person is not an entity.
type Person struct{}
`)
	require.NoError(t, err)
	require.Len(t, decls, 2)

	folder := decls[0]
	assert.Equal(t, "Folder", folder.Name)
	assert.Equal(t, "Folder groups passwords.\n", folder.Doc)
	assert.Equal(t, KindEntity, folder.Entity.Kind)
	assert.Equal(t, []string{"1.0/folder"}, folder.Entity.Args)
	require.NotNil(t, folder.Details)
	assert.Equal(t, []string{"revisions", "passwords"}, folder.Details.Args)
	assert.Equal(t, 5, folder.Entity.Pos.Line)

	share := decls[1]
	assert.Equal(t, []string{"1.0/share", "list,get"}, share.Entity.Args)
	assert.Nil(t, share.Details)
}

func TestParseFileGroupedTypes(t *testing.T) {
	decls, err := parseSource(t, `package schemadef

type (
	//passwords:entity 1.0/tag
	Tag struct{}

	Color string
)
`)
	require.NoError(t, err)
	require.Len(t, decls, 1)
	assert.Equal(t, "Tag", decls[0].Name)
}

func TestParseFileErrors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantErr string
	}{
		{
			name: "unknown directive",
			src: `package p

//passwords:entity 1.0/x
//passwords:bogus
type X struct{}
`,
			wantErr: "unknown directive //passwords:bogus",
		},
		{
			name: "missing endpoint",
			src: `package p

//passwords:entity
type X struct{}
`,
			wantErr: "takes an endpoint",
		},
		{
			name: "duplicate entity",
			src: `package p

//passwords:entity 1.0/x
//passwords:entity 1.0/y
type X struct{}
`,
			wantErr: "duplicate //passwords:entity",
		},
		{
			name: "details without entity",
			src: `package p

//passwords:details revisions
type X struct{}
`,
			wantErr: "details without",
		},
		{
			name: "not a struct",
			src: `package p

//passwords:entity 1.0/x
type X string
`,
			wantErr: "must be a struct type",
		},
		{
			name: "detached directive",
			src: `package p

//passwords:entity 1.0/x

func f() {}
`,
			wantErr: "must be in the doc comment of a type declaration",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseSource(t, tt.src)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParseSchemaPackage(t *testing.T) {
	results, err := Parse("../schemadef", "")
	require.NoError(t, err)
	require.Len(t, results, 1)

	var names []string
	for _, d := range results[0].Decls {
		names = append(names, d.Name)
	}
	assert.ElementsMatch(t, []string{"Folder", "Password", "Share", "Tag"}, names)
	assert.Equal(t, "schemadef", results[0].PackageName)
}
