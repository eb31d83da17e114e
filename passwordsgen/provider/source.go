package provider

import (
	"context"
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"reflect"
	"strings"

	"github.com/broady/passwords/internal/directive"
	"github.com/broady/passwords/passwordsgen/schema"
)

// SourceProvider reads entity schemas from Go packages. Schema files are
// only parsed, never type-checked, so they may refer to types that exist
// only in the generated package.
type SourceProvider struct{}

// SourceOptions configures source-based schema extraction.
type SourceOptions struct {
	// Packages are package patterns, resolved relative to Dir.
	Packages []string

	// Dir is the working directory for package loading. Empty means the
	// current directory.
	Dir string
}

// BuildSchema collects every //passwords:entity struct in the packages.
// The schema's package name is taken from the first package.
func (p *SourceProvider) BuildSchema(ctx context.Context, opts SourceOptions) (*schema.Schema, error) {
	if len(opts.Packages) == 0 {
		return nil, fmt.Errorf("no packages specified")
	}

	s := &schema.Schema{}
	for _, pattern := range opts.Packages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		results, err := directive.Parse(pattern, opts.Dir)
		if err != nil {
			return nil, err
		}
		for _, res := range results {
			if s.Package == "" {
				s.Package = res.PackageName
			}
			for _, decl := range res.Decls {
				e, err := entityFromDecl(res.Fset, decl)
				if err != nil {
					return nil, err
				}
				s.AddEntity(e)
			}
		}
	}
	if len(s.Entities) == 0 {
		return nil, fmt.Errorf("no %sentity declarations found in %s", directive.Prefix, strings.Join(opts.Packages, " "))
	}
	return validated(s)
}

func entityFromDecl(fset *token.FileSet, decl directive.Decl) (*schema.Entity, error) {
	e := &schema.Entity{
		Name:     decl.Name,
		Endpoint: decl.Entity.Args[0],
		Doc:      decl.Doc,
	}

	var opList string
	if len(decl.Entity.Args) > 1 {
		opList = decl.Entity.Args[1]
	}
	ops, err := schema.ParseOps(opList)
	if err != nil {
		return nil, fmt.Errorf("%s: entity %s: %w", decl.Entity.Pos, decl.Name, err)
	}
	e.Ops = ops

	if decl.Details != nil {
		e.Details = append([]string(nil), decl.Details.Args...)
	}

	st := decl.Spec.Type.(*ast.StructType)
	for _, f := range st.Fields.List {
		pos := fset.Position(f.Pos())
		if len(f.Names) == 0 {
			return nil, fmt.Errorf("%s: entity %s: embedded fields are not supported", pos, decl.Name)
		}

		var tag reflect.StructTag
		if f.Tag != nil {
			tag = reflect.StructTag(strings.Trim(f.Tag.Value, "`"))
		}
		jsonName, skip := jsonName(tag.Get("json"))
		if skip {
			continue
		}
		pw, err := schema.ParseTag(tag.Get("pw"))
		if err != nil {
			return nil, fmt.Errorf("%s: entity %s: %w", pos, decl.Name, err)
		}

		var doc string
		if f.Doc != nil {
			doc = f.Doc.Text()
		} else if f.Comment != nil {
			doc = f.Comment.Text()
		}

		typ := types.ExprString(f.Type)
		for _, name := range f.Names {
			if !name.IsExported() {
				continue
			}
			e.Fields = append(e.Fields, schema.Field{
				Name:     name.Name,
				JSONName: jsonName,
				Type:     typ,
				Tag:      pw,
				Doc:      strings.TrimSpace(doc),
			})
		}
	}
	return e, nil
}

// jsonName returns the wire name from a json tag and whether the field is
// excluded from the wire format.
func jsonName(tag string) (name string, skip bool) {
	if tag == "-" {
		return "", true
	}
	name, _, _ = strings.Cut(tag, ",")
	return name, false
}
