// Package directive finds passwordsgen directives in Go source files.
//
// Directives are line comments in the doc comment of a type declaration:
//
//	//passwords:entity <endpoint> [op,op,...]
//	//passwords:details flag flag ...
//
// The entity directive marks a struct as an entity schema. The details
// directive lists the detail-level flags the server accepts for it and is
// only valid next to an entity directive.
package directive

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"path/filepath"
	"strings"

	"golang.org/x/tools/go/packages"
)

// Prefix starts every directive comment.
const Prefix = "//passwords:"

// BuildTag hides schema files from ordinary builds.
const BuildTag = "passwordsgen"

// Kind is the directive name after the prefix.
type Kind string

const (
	KindEntity  Kind = "entity"
	KindDetails Kind = "details"
)

// Directive is one parsed directive comment.
type Directive struct {
	Kind Kind
	Args []string
	Pos  token.Position
}

// Decl is a type declaration carrying an entity directive.
type Decl struct {
	Name    string
	Doc     string // doc comment without directive lines
	Spec    *ast.TypeSpec
	Entity  Directive
	Details *Directive
	Pos     token.Position
}

// Result holds every entity declaration found in a package.
type Result struct {
	PackageName string
	PackagePath string
	Dir         string
	Fset        *token.FileSet
	Decls       []Decl
}

// Parse loads the packages matching pattern with the passwordsgen build tag
// and collects their entity declarations in file and declaration order.
// If dir is empty, the current directory is used.
func Parse(pattern, dir string) ([]*Result, error) {
	cfg := &packages.Config{
		Mode:       packages.NeedName | packages.NeedFiles,
		Dir:        dir,
		BuildFlags: []string{"-tags=" + BuildTag},
	}
	pkgs, err := packages.Load(cfg, pattern)
	if err != nil {
		return nil, fmt.Errorf("load package: %w", err)
	}
	if len(pkgs) == 0 {
		return nil, fmt.Errorf("no packages found matching %q", pattern)
	}

	var out []*Result
	for _, pkg := range pkgs {
		if len(pkg.Errors) > 0 {
			return nil, fmt.Errorf("package %s: %v", pkg.PkgPath, pkg.Errors[0])
		}
		res := &Result{PackageName: pkg.Name, PackagePath: pkg.PkgPath, Fset: token.NewFileSet()}
		if len(pkg.GoFiles) > 0 {
			res.Dir = filepath.Dir(pkg.GoFiles[0])
		}
		for _, filename := range pkg.GoFiles {
			f, err := parser.ParseFile(res.Fset, filename, nil, parser.ParseComments)
			if err != nil {
				return nil, fmt.Errorf("parse %s: %w", filename, err)
			}
			decls, err := ParseFile(res.Fset, f)
			if err != nil {
				return nil, err
			}
			res.Decls = append(res.Decls, decls...)
		}
		out = append(out, res)
	}
	return out, nil
}

// ParseFile extracts entity declarations from a parsed file. A directive
// that is not part of a type declaration's doc comment is an error, as is
// an unknown directive name.
func ParseFile(fset *token.FileSet, f *ast.File) ([]Decl, error) {
	attached := make(map[*ast.CommentGroup]bool)
	var decls []Decl

	for _, d := range f.Decls {
		gen, ok := d.(*ast.GenDecl)
		if !ok || gen.Tok != token.TYPE {
			continue
		}
		for _, spec := range gen.Specs {
			ts := spec.(*ast.TypeSpec)
			doc := ts.Doc
			if doc == nil && len(gen.Specs) == 1 {
				doc = gen.Doc
			}
			if doc == nil {
				continue
			}
			attached[doc] = true

			decl, found, err := parseDoc(fset, ts, doc)
			if err != nil {
				return nil, err
			}
			if found {
				decls = append(decls, decl)
			}
		}
	}

	for _, cg := range f.Comments {
		if attached[cg] {
			continue
		}
		for _, c := range cg.List {
			if strings.HasPrefix(c.Text, Prefix) {
				return nil, fmt.Errorf("%s: %s directive must be in the doc comment of a type declaration", fset.Position(c.Pos()), strings.Fields(c.Text)[0])
			}
		}
	}
	return decls, nil
}

func parseDoc(fset *token.FileSet, ts *ast.TypeSpec, doc *ast.CommentGroup) (Decl, bool, error) {
	decl := Decl{Name: ts.Name.Name, Spec: ts, Doc: doc.Text(), Pos: fset.Position(ts.Pos())}
	var entity *Directive

	for _, c := range doc.List {
		if !strings.HasPrefix(c.Text, Prefix) {
			continue
		}
		pos := fset.Position(c.Pos())
		parts := strings.Fields(strings.TrimPrefix(c.Text, Prefix))
		if len(parts) == 0 {
			return decl, false, fmt.Errorf("%s: empty directive", pos)
		}
		d := Directive{Kind: Kind(parts[0]), Args: parts[1:], Pos: pos}

		switch d.Kind {
		case KindEntity:
			if entity != nil {
				return decl, false, fmt.Errorf("%s: duplicate %sentity directive on %s", pos, Prefix, decl.Name)
			}
			if len(d.Args) == 0 || len(d.Args) > 2 {
				return decl, false, fmt.Errorf("%s: %sentity takes an endpoint and an optional op list", pos, Prefix)
			}
			entity = &d
		case KindDetails:
			if decl.Details != nil {
				return decl, false, fmt.Errorf("%s: duplicate %sdetails directive on %s", pos, Prefix, decl.Name)
			}
			decl.Details = &d
		default:
			return decl, false, fmt.Errorf("%s: unknown directive %s%s", pos, Prefix, parts[0])
		}
	}

	if entity == nil {
		if decl.Details != nil {
			return decl, false, fmt.Errorf("%s: %sdetails without %sentity on %s", decl.Details.Pos, Prefix, Prefix, decl.Name)
		}
		return decl, false, nil
	}
	if _, ok := ts.Type.(*ast.StructType); !ok {
		return decl, false, fmt.Errorf("%s: entity %s must be a struct type", decl.Pos, decl.Name)
	}
	decl.Entity = *entity
	return decl, true, nil
}
