// Package passwordsgen generates typed Go bindings for the entities of the
// Passwords API.
//
// Entities are declared either as Go structs carrying //passwords:entity
// directives in files built only under the passwordsgen tag, or in a YAML
// document. Each entity is emitted as one file holding its record types,
// payload builders, search criteria, detail selector and API methods.
//
// Example:
//
//	passwordsgen.FromPackages("./internal/schemadef").
//	    PackageName("passwords").
//	    ToDir(".")
package passwordsgen

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/broady/passwords/passwordsgen/golang"
	"github.com/broady/passwords/passwordsgen/provider"
	"github.com/broady/passwords/passwordsgen/schema"
	"github.com/broady/passwords/passwordsgen/sink"
)

// Generator provides a fluent API for code generation. Create one with
// FromPackages, FromFile or FromSchema and configure it with method chaining.
type Generator struct {
	ctx      context.Context
	packages []string
	dir      string
	file     string
	schema   *schema.Schema
	pkgName  string
	imports  map[string]string
	logger   *slog.Logger
}

// GenerateResult lists what a run produced.
type GenerateResult struct {
	Files    []golang.File
	Entities []string
}

// FromPackages reads entity declarations from Go package patterns.
func FromPackages(patterns ...string) *Generator {
	return &Generator{packages: patterns}
}

// FromFile reads entity declarations from a YAML schema document.
func FromFile(path string) *Generator {
	return &Generator{file: path}
}

// FromSchema uses an already built schema.
func FromSchema(s *schema.Schema) *Generator {
	return &Generator{schema: s}
}

// WithContext bounds package loading and file writes.
func (g *Generator) WithContext(ctx context.Context) *Generator {
	g.ctx = ctx
	return g
}

// Dir sets the working directory package patterns are resolved against.
func (g *Generator) Dir(dir string) *Generator {
	g.dir = dir
	return g
}

// PackageName sets the package clause of the generated files. By default
// the schema's own package name is used.
func (g *Generator) PackageName(name string) *Generator {
	g.pkgName = name
	return g
}

// Import maps a package selector used in field types to an import path.
func (g *Generator) Import(selector, path string) *Generator {
	if g.imports == nil {
		g.imports = make(map[string]string)
	}
	g.imports[selector] = path
	return g
}

// Logger sets where progress is reported. Nothing is logged by default.
func (g *Generator) Logger(l *slog.Logger) *Generator {
	g.logger = l
	return g
}

func (g *Generator) context() context.Context {
	if g.ctx == nil {
		return context.Background()
	}
	return g.ctx
}

func (g *Generator) log() *slog.Logger {
	if g.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return g.logger
}

// Schema loads and validates the schema without emitting anything.
func (g *Generator) Schema() (*schema.Schema, error) {
	ctx := g.context()
	switch {
	case g.schema != nil:
		if errs := g.schema.Validate(); len(errs) > 0 {
			return nil, fmt.Errorf("invalid schema: %w", errors.Join(errs...))
		}
		return g.schema, nil
	case g.file != "":
		return (&provider.YAMLProvider{}).BuildSchema(ctx, g.file)
	case len(g.packages) > 0:
		return (&provider.SourceProvider{}).BuildSchema(ctx, provider.SourceOptions{Packages: g.packages, Dir: g.dir})
	default:
		return nil, fmt.Errorf("no schema source: use FromPackages, FromFile or FromSchema")
	}
}

// Check validates the schema and renders every file without writing.
func (g *Generator) Check() error {
	_, err := g.Generate()
	return err
}

// Generate returns the generated files in memory.
func (g *Generator) Generate() (*GenerateResult, error) {
	s, err := g.Schema()
	if err != nil {
		return nil, err
	}
	files, err := golang.Emit(s, golang.Config{Package: g.pkgName, Imports: g.imports})
	if err != nil {
		return nil, err
	}
	res := &GenerateResult{Files: files}
	for _, e := range s.Entities {
		res.Entities = append(res.Entities, e.Name)
	}
	g.log().Debug("schema rendered", slog.Int("entities", len(res.Entities)), slog.Int("files", len(files)))
	return res, nil
}

// ToDir generates the files and writes them below dir.
func (g *Generator) ToDir(dir string) (*GenerateResult, error) {
	return g.ToSink(sink.NewFilesystemSink(dir))
}

// ToSink generates the files and writes them to out.
func (g *Generator) ToSink(out sink.OutputSink) (*GenerateResult, error) {
	res, err := g.Generate()
	if err != nil {
		return nil, err
	}
	ctx := g.context()
	for _, f := range res.Files {
		if err := out.WriteFile(ctx, f.Path, f.Content); err != nil {
			return nil, fmt.Errorf("write %s: %w", f.Path, err)
		}
		g.log().Info("wrote file", slog.String("path", f.Path))
	}
	return res, nil
}
