// Package golang emits Go bindings for entity schemas.
//
// For every entity it writes one file holding the record type, its
// versioned sub-record, the create and update builders, the search
// criteria builder, the detail-level selector and the API type whose
// methods issue the remote calls.
package golang

import (
	"bytes"
	"embed"
	"fmt"
	"go/format"
	"go/token"
	"regexp"
	"sort"
	"strings"
	"text/template"
	"unicode"

	"github.com/broady/passwords/passwordsgen/schema"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var entityTemplate = template.Must(template.New("entity.go.tmpl").ParseFS(templateFS, "templates/entity.go.tmpl"))

// Header is the first line of every generated file.
const Header = "// Code generated by passwordsgen. DO NOT EDIT."

// DefaultImports resolves package selectors used in field types.
var DefaultImports = map[string]string{
	"uuid": "github.com/google/uuid",
	"json": "encoding/json",
	"time": "time",
}

// Config controls code emission.
type Config struct {
	// Package is the package clause of the generated files.
	Package string

	// Imports maps package selectors that appear in field types to import
	// paths. Entries override DefaultImports.
	Imports map[string]string
}

// File is one emitted Go source file.
type File struct {
	Path    string
	Content []byte
}

// Emit generates one file per entity, in schema order.
func Emit(s *schema.Schema, cfg Config) ([]File, error) {
	pkg := cfg.Package
	if pkg == "" {
		pkg = s.Package
	}
	if pkg == "" {
		return nil, fmt.Errorf("package name is required")
	}

	imports := make(map[string]string, len(DefaultImports)+len(cfg.Imports))
	for k, v := range DefaultImports {
		imports[k] = v
	}
	for k, v := range cfg.Imports {
		imports[k] = v
	}

	files := make([]File, 0, len(s.Entities))
	for _, e := range s.Entities {
		content, err := EmitEntity(pkg, e, imports)
		if err != nil {
			return nil, fmt.Errorf("entity %s: %w", e.Name, err)
		}
		files = append(files, File{Path: FileName(e), Content: content})
	}
	return files, nil
}

// FileName returns the output file name for an entity.
func FileName(e *schema.Entity) string {
	return strings.ToLower(e.Name) + "_gen.go"
}

// EmitEntity renders and formats the file for a single entity.
func EmitEntity(pkg string, e *schema.Entity, imports map[string]string) ([]byte, error) {
	view, err := newEntityView(pkg, e, imports)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := entityTemplate.Execute(&buf, view); err != nil {
		return nil, fmt.Errorf("execute template: %w", err)
	}

	out, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("format generated code: %w\n%s", err, buf.Bytes())
	}
	return out, nil
}

type fieldView struct {
	Name  string
	Type  string
	Tag   string // full struct tag literal including backquotes
	Param string
}

type detailView struct {
	Field string
	Flag  string
}

type entityView struct {
	Header  string
	Package string
	Imports []string // "" separates the standard library group

	Name     string
	Lower    string
	Endpoint string
	Accessor string
	Doc      []string

	NotVersioned   []fieldView
	Versioned      []fieldView
	HasCreate      bool
	CreateRequired []fieldView
	CreateOptional []fieldView
	HasUpdate      bool
	UpdateRequired []fieldView
	UpdateOptional []fieldView
	Searchable     []fieldView
	Details        []detailView

	List, Get, Find, Create, Update, Delete, Restore bool
}

func (v *entityView) HasOps() bool {
	return v.List || v.Get || v.Find || v.Create || v.Update || v.Delete || v.Restore
}

func newEntityView(pkg string, e *schema.Entity, imports map[string]string) (*entityView, error) {
	sets := schema.Partition(e)
	v := &entityView{
		Header:    Header,
		Package:   pkg,
		Name:      e.Name,
		Lower:     strings.ToLower(e.Name),
		Endpoint:  e.Endpoint,
		Accessor:  e.Accessor(),
		HasCreate: sets.HasCreate(),
		HasUpdate: sets.HasUpdate(),
		List:      e.HasOp(schema.OpList),
		Get:       e.HasOp(schema.OpGet),
		Find:      e.HasOp(schema.OpFind),
		Create:    e.HasOp(schema.OpCreate),
		Update:    e.HasOp(schema.OpUpdate),
		Delete:    e.HasOp(schema.OpDelete),
		Restore:   e.HasOp(schema.OpRestore),
	}
	if v.Create && !v.HasCreate {
		return nil, fmt.Errorf("create enabled without create fields")
	}
	if v.Update && !v.HasUpdate {
		return nil, fmt.Errorf("update enabled without update fields")
	}

	if e.Doc != "" {
		v.Doc = strings.Split(strings.TrimRight(e.Doc, "\n"), "\n")
	} else {
		v.Doc = []string{fmt.Sprintf("%s is a record of the %s endpoints.", e.Name, e.Endpoint)}
	}

	plain := func(f schema.Field) fieldView {
		return fieldView{Name: f.Name, Type: f.Type, Tag: "`json:\"" + f.JSONName + jsonOptions(f) + "\"`", Param: paramName(f.Name)}
	}
	required := func(f schema.Field) fieldView {
		return fieldView{Name: f.Name, Type: f.Type, Tag: "`json:\"" + f.JSONName + "\"`", Param: paramName(f.Name)}
	}
	optional := func(f schema.Field) fieldView {
		return fieldView{Name: f.Name, Type: f.Type, Tag: "`json:\"" + f.JSONName + ",omitzero\"`", Param: paramName(f.Name)}
	}
	search := func(f schema.Field) fieldView {
		return fieldView{Name: f.Name, Type: f.Type, Tag: "`json:\"" + f.JSONName + ",omitempty\"`", Param: paramName(f.Name)}
	}

	v.NotVersioned = mapFields(sets.NotVersioned, plain)
	v.Versioned = mapFields(sets.Versioned, plain)
	v.CreateRequired = mapFields(sets.CreateRequired, required)
	v.CreateOptional = mapFields(sets.CreateOptional, optional)
	v.UpdateRequired = mapFields(sets.UpdateRequired, required)
	v.UpdateOptional = mapFields(sets.UpdateOptional, optional)
	v.Searchable = mapFields(sets.Searchable, search)

	uniqueParams(v.CreateRequired)
	uniqueParams(v.UpdateRequired)
	for i := range v.CreateOptional {
		uniqueParams(v.CreateOptional[i:i+1], "c")
	}
	for i := range v.UpdateOptional {
		uniqueParams(v.UpdateOptional[i:i+1], "u")
	}

	for _, d := range e.Details {
		v.Details = append(v.Details, detailView{Field: exportName(d), Flag: d})
	}

	std, ext, err := collectImports(v, e, imports)
	if err != nil {
		return nil, err
	}
	v.Imports = std
	if len(std) > 0 && len(ext) > 0 {
		v.Imports = append(v.Imports, "")
	}
	v.Imports = append(v.Imports, ext...)
	return v, nil
}

func mapFields(fields []schema.Field, fn func(schema.Field) fieldView) []fieldView {
	out := make([]fieldView, len(fields))
	for i, f := range fields {
		out[i] = fn(f)
	}
	return out
}

// uniqueParams renames parameters that collide with each other or with a
// reserved name such as the method receiver: id, id -> id, id2.
func uniqueParams(fields []fieldView, reserved ...string) {
	taken := make(map[string]bool, len(fields)+len(reserved))
	for _, r := range reserved {
		taken[r] = true
	}
	for i := range fields {
		p := fields[i].Param
		for n := 2; taken[p]; n++ {
			p = fmt.Sprintf("%s%d", fields[i].Param, n)
		}
		taken[p] = true
		fields[i].Param = p
	}
}

// jsonOptions keeps omitempty for related-record fields that are only
// present at higher detail levels.
func jsonOptions(f schema.Field) string {
	if strings.HasPrefix(f.Type, "[]") || strings.HasPrefix(f.Type, "*") || strings.HasPrefix(f.Type, "map[") {
		return ",omitempty"
	}
	return ""
}

var selectorRe = regexp.MustCompile(`\b([a-z_][A-Za-z0-9_]*)\.`)

func collectImports(v *entityView, e *schema.Entity, imports map[string]string) (std, ext []string, err error) {
	used := make(map[string]bool)
	for _, f := range e.Fields {
		for _, m := range selectorRe.FindAllStringSubmatch(f.Type, -1) {
			path, ok := imports[m[1]]
			if !ok {
				return nil, nil, fmt.Errorf("field %s: unknown package %q in type %s", f.Name, m[1], f.Type)
			}
			used[path] = true
		}
	}
	if v.HasOps() {
		used["context"] = true
	}
	if v.Get || v.Delete || v.Restore {
		used[imports["uuid"]] = true
	}
	if len(v.Details) > 0 {
		used["strings"] = true
	}

	for path := range used {
		first, _, _ := strings.Cut(path, "/")
		if strings.Contains(first, ".") {
			ext = append(ext, path)
		} else {
			std = append(std, path)
		}
	}
	sort.Strings(std)
	sort.Strings(ext)
	return std, ext, nil
}

// paramName lowers the leading initialism or first letter of a field name:
// ID -> id, CSEType -> cseType, Label -> label.
func paramName(name string) string {
	runes := []rune(name)
	n := 0
	for n < len(runes) && unicode.IsUpper(runes[n]) {
		n++
	}
	switch {
	case n == 0:
	case n == len(runes) || n == 1:
		for i := 0; i < n; i++ {
			runes[i] = unicode.ToLower(runes[i])
		}
	default:
		for i := 0; i < n-1; i++ {
			runes[i] = unicode.ToLower(runes[i])
		}
	}
	out := string(runes)
	if token.IsKeyword(out) {
		out += "Value"
	}
	return out
}

// exportName turns a detail flag like "revisions" into "Revisions".
func exportName(flag string) string {
	if flag == "" {
		return flag
	}
	r := []rune(flag)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
