package schema

import (
	"fmt"
	"go/token"
	"strings"
)

// Op is one remote operation an entity may support.
type Op string

const (
	OpList    Op = "list"
	OpGet     Op = "get"
	OpFind    Op = "find"
	OpCreate  Op = "create"
	OpUpdate  Op = "update"
	OpDelete  Op = "delete"
	OpRestore Op = "restore"
)

// AllOps lists the operations in their canonical order.
var AllOps = []Op{OpList, OpGet, OpFind, OpCreate, OpUpdate, OpDelete, OpRestore}

// Valid reports whether o is a known operation.
func (o Op) Valid() bool {
	for _, known := range AllOps {
		if o == known {
			return true
		}
	}
	return false
}

// ParseOps parses a comma separated op list. An empty string yields AllOps.
func ParseOps(s string) ([]Op, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return append([]Op(nil), AllOps...), nil
	}
	var ops []Op
	seen := make(map[Op]bool)
	for _, part := range strings.Split(s, ",") {
		op := Op(strings.TrimSpace(part))
		if !op.Valid() {
			return nil, fmt.Errorf("unknown operation %q", op)
		}
		if seen[op] {
			return nil, fmt.Errorf("operation %q listed twice", op)
		}
		seen[op] = true
		ops = append(ops, op)
	}
	return ops, nil
}

// Field is one schema field.
type Field struct {
	Name     string // Go identifier
	JSONName string // wire name
	Type     string // Go type expression, e.g. "uuid.UUID" or "[]VersionedFolder"
	Tag      Tag
	Doc      string
}

// Entity is the declarative description of one managed record kind.
type Entity struct {
	Name     string   // record type name, e.g. "Folder"
	Endpoint string   // wire prefix relative to the api root, e.g. "1.0/folder"
	Ops      []Op     // enabled operations
	Details  []string // detail-level flags in declaration order
	Fields   []Field
	Doc      string
}

// HasOp reports whether op is enabled for the entity.
func (e *Entity) HasOp(op Op) bool {
	for _, o := range e.Ops {
		if o == op {
			return true
		}
	}
	return false
}

// Accessor returns the name of the Client method exposing the entity API.
func (e *Entity) Accessor() string {
	return e.Name + "s"
}

// Schema is a set of entities generated into one package.
type Schema struct {
	Package  string
	Entities []*Entity
}

// AddEntity appends an entity to the schema.
func (s *Schema) AddEntity(e *Entity) {
	s.Entities = append(s.Entities, e)
}

// ValidationError is a single schema-definition problem.
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Code + ": " + e.Message
}

// Validate checks the schema for definition errors and returns all of them.
func (s *Schema) Validate() []error {
	var errs []*ValidationError
	add := func(code, format string, args ...any) {
		errs = append(errs, &ValidationError{Code: code, Message: fmt.Sprintf(format, args...)})
	}

	if s.Package != "" && !token.IsIdentifier(s.Package) {
		add("invalid_package", "package name %q is not an identifier", s.Package)
	}

	entities := make(map[string]bool)
	for _, e := range s.Entities {
		if !token.IsIdentifier(e.Name) || !token.IsExported(e.Name) {
			add("invalid_entity_name", "entity name %q must be an exported identifier", e.Name)
		}
		if entities[e.Name] {
			add("duplicate_entity", "duplicate entity name: %s", e.Name)
		}
		entities[e.Name] = true

		if e.Endpoint == "" || strings.HasPrefix(e.Endpoint, "/") || strings.HasSuffix(e.Endpoint, "/") {
			add("invalid_endpoint", "entity %s: endpoint %q must be a relative path like 1.0/folder", e.Name, e.Endpoint)
		}

		for _, op := range e.Ops {
			if !op.Valid() {
				add("unknown_op", "entity %s: unknown operation %q", e.Name, op)
			}
		}

		names := make(map[string]bool)
		wire := make(map[string]bool)
		for _, f := range e.Fields {
			if !token.IsIdentifier(f.Name) || !token.IsExported(f.Name) {
				add("invalid_field_name", "entity %s: field name %q must be an exported identifier", e.Name, f.Name)
			}
			if names[f.Name] {
				add("duplicate_field", "entity %s: duplicate field name: %s", e.Name, f.Name)
			}
			names[f.Name] = true
			if f.JSONName == "" {
				add("missing_json_name", "entity %s: field %s has no wire name", e.Name, f.Name)
			} else if wire[f.JSONName] {
				add("duplicate_json_name", "entity %s: duplicate wire name: %s", e.Name, f.JSONName)
			}
			wire[f.JSONName] = true
			if f.Type == "" {
				add("missing_type", "entity %s: field %s has no type", e.Name, f.Name)
			}
		}

		details := make(map[string]bool)
		for _, d := range e.Details {
			if !token.IsIdentifier(d) {
				add("invalid_detail", "entity %s: detail flag %q is not an identifier", e.Name, d)
			}
			if details[d] {
				add("duplicate_detail", "entity %s: duplicate detail flag: %s", e.Name, d)
			}
			details[d] = true
		}

		sets := Partition(e)
		if e.HasOp(OpCreate) && len(sets.CreateRequired)+len(sets.CreateOptional) == 0 {
			add("empty_create", "entity %s: create enabled but no field is tagged create(...)", e.Name)
		}
		if e.HasOp(OpUpdate) && len(sets.UpdateRequired)+len(sets.UpdateOptional) == 0 {
			add("empty_update", "entity %s: update enabled but no field is tagged update(...)", e.Name)
		}
	}

	if len(errs) == 0 {
		return nil
	}
	out := make([]error, len(errs))
	for i, e := range errs {
		out[i] = e
	}
	return out
}
