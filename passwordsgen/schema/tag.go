// Package schema describes entity schemas for the passwords binding generator.
//
// An entity schema is an ordered list of fields, each carrying a field tag
// that decides which generated types the field takes part in:
//
//	create(required|optional)  field of CreateEntity
//	update(required|optional)  field of UpdateEntity
//	versioned                  field of VersionedEntity (and revision history)
//	search                     criterion slot of EntitySearch
//
// Tags combine freely across categories; a field may be create-required,
// versioned and searchable at once.
package schema

import (
	"fmt"
	"strings"
)

// Mode is the participation of a field in a create or update payload.
type Mode uint8

const (
	ModeNone Mode = iota
	ModeRequired
	ModeOptional
)

func (m Mode) String() string {
	switch m {
	case ModeRequired:
		return "required"
	case ModeOptional:
		return "optional"
	default:
		return "none"
	}
}

// Tag is the parsed annotation of a single field.
type Tag struct {
	Create    Mode
	Update    Mode
	Versioned bool
	Search    bool
}

// Class is one classification a field falls into.
type Class string

const (
	ClassCreateRequired Class = "create-required"
	ClassCreateOptional Class = "create-optional"
	ClassUpdateRequired Class = "update-required"
	ClassUpdateOptional Class = "update-optional"
	ClassVersioned      Class = "versioned"
	ClassSearchable     Class = "searchable"
	ClassPlain          Class = "plain"
)

// Classes returns every class the tag puts its field in.
// A tag with nothing set yields only ClassPlain.
func (t Tag) Classes() []Class {
	var out []Class
	switch t.Create {
	case ModeRequired:
		out = append(out, ClassCreateRequired)
	case ModeOptional:
		out = append(out, ClassCreateOptional)
	}
	switch t.Update {
	case ModeRequired:
		out = append(out, ClassUpdateRequired)
	case ModeOptional:
		out = append(out, ClassUpdateOptional)
	}
	if t.Versioned {
		out = append(out, ClassVersioned)
	}
	if t.Search {
		out = append(out, ClassSearchable)
	}
	if len(out) == 0 {
		out = append(out, ClassPlain)
	}
	return out
}

// IsPlain reports whether the field is read-only, flat and not searchable.
func (t Tag) IsPlain() bool {
	return t == Tag{}
}

// String renders the tag in canonical token form, accepted by ParseTag.
func (t Tag) String() string {
	var parts []string
	if t.Create != ModeNone {
		parts = append(parts, "create("+t.Create.String()+")")
	}
	if t.Update != ModeNone {
		parts = append(parts, "update("+t.Update.String()+")")
	}
	if t.Versioned {
		parts = append(parts, "versioned")
	}
	if t.Search {
		parts = append(parts, "search")
	}
	return strings.Join(parts, " ")
}

// TagError reports a malformed field tag.
type TagError struct {
	Tag   string // full raw tag
	Token string // offending token
	Msg   string
}

func (e *TagError) Error() string {
	if e.Token == "" {
		return fmt.Sprintf("tag %q: %s", e.Tag, e.Msg)
	}
	return fmt.Sprintf("tag %q: token %q: %s", e.Tag, e.Token, e.Msg)
}

// ParseTag parses a whitespace separated tag token list.
//
// Each category may appear at most once. versioned and search accept an
// optional boolean argument; create and update require one of required
// or optional.
func ParseTag(raw string) (Tag, error) {
	var t Tag
	seen := make(map[string]bool, 4)

	for _, tok := range strings.Fields(raw) {
		name, arg, hasArg, err := splitToken(tok)
		if err != nil {
			return Tag{}, &TagError{Tag: raw, Token: tok, Msg: err.Error()}
		}
		if seen[name] {
			return Tag{}, &TagError{Tag: raw, Token: tok, Msg: "category " + name + " given more than once"}
		}
		seen[name] = true

		switch name {
		case "create", "update":
			if !hasArg {
				return Tag{}, &TagError{Tag: raw, Token: tok, Msg: "expected " + name + "(required) or " + name + "(optional)"}
			}
			var m Mode
			switch arg {
			case "required":
				m = ModeRequired
			case "optional":
				m = ModeOptional
			default:
				return Tag{}, &TagError{Tag: raw, Token: tok, Msg: "unknown mode " + arg}
			}
			if name == "create" {
				t.Create = m
			} else {
				t.Update = m
			}
		case "versioned", "search":
			v := true
			if hasArg {
				switch arg {
				case "true":
				case "false":
					v = false
				default:
					return Tag{}, &TagError{Tag: raw, Token: tok, Msg: "expected true or false"}
				}
			}
			if name == "versioned" {
				t.Versioned = v
			} else {
				t.Search = v
			}
		default:
			return Tag{}, &TagError{Tag: raw, Token: tok, Msg: "unknown tag"}
		}
	}
	return t, nil
}

// MustParseTag is like ParseTag but panics on error.
func MustParseTag(raw string) Tag {
	t, err := ParseTag(raw)
	if err != nil {
		panic(err)
	}
	return t
}

func splitToken(tok string) (name, arg string, hasArg bool, err error) {
	open := strings.IndexByte(tok, '(')
	if open < 0 {
		if strings.ContainsRune(tok, ')') {
			return "", "", false, fmt.Errorf("unbalanced parenthesis")
		}
		return tok, "", false, nil
	}
	if !strings.HasSuffix(tok, ")") || strings.Count(tok, "(") != 1 || strings.Count(tok, ")") != 1 {
		return "", "", false, fmt.Errorf("unbalanced parenthesis")
	}
	name = tok[:open]
	arg = tok[open+1 : len(tok)-1]
	if name == "" || arg == "" {
		return "", "", false, fmt.Errorf("empty name or argument")
	}
	return name, arg, true, nil
}
