package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOp_Valid(t *testing.T) {
	for _, op := range AllOps {
		assert.True(t, op.Valid(), op)
	}
	assert.False(t, Op("purge").Valid())
	assert.False(t, Op("show").Valid())
}

func TestParseOps(t *testing.T) {
	ops, err := ParseOps("")
	require.NoError(t, err)
	assert.Equal(t, AllOps, ops)

	ops, err = ParseOps("list, get,find")
	require.NoError(t, err)
	assert.Equal(t, []Op{OpList, OpGet, OpFind}, ops)

	_, err = ParseOps("list,purge")
	assert.ErrorContains(t, err, "purge")

	_, err = ParseOps("list,list")
	assert.ErrorContains(t, err, "twice")
}

func validEntity() *Entity {
	return &Entity{
		Name:     "Folder",
		Endpoint: "1.0/folder",
		Ops:      AllOps,
		Details:  []string{"revisions"},
		Fields: []Field{
			{Name: "ID", JSONName: "id", Type: "uuid.UUID", Tag: MustParseTag("update(required)")},
			{Name: "Label", JSONName: "label", Type: "string", Tag: MustParseTag("create(required) update(required) versioned")},
		},
	}
}

func TestSchema_Validate(t *testing.T) {
	s := &Schema{Package: "passwords"}
	s.AddEntity(validEntity())
	assert.Empty(t, s.Validate())
	require.Len(t, s.Entities, 1)
}

func TestSchema_ValidateErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Schema)
		code   string
	}{
		{"duplicate entity", func(s *Schema) { s.AddEntity(validEntity()) }, "duplicate_entity"},
		{"duplicate field", func(s *Schema) {
			e := s.Entities[0]
			e.Fields = append(e.Fields, Field{Name: "Label", JSONName: "other", Type: "string"})
		}, "duplicate_field"},
		{"duplicate json name", func(s *Schema) {
			e := s.Entities[0]
			e.Fields = append(e.Fields, Field{Name: "Other", JSONName: "label", Type: "string"})
		}, "duplicate_json_name"},
		{"unexported entity", func(s *Schema) { s.Entities[0].Name = "folder" }, "invalid_entity_name"},
		{"bad endpoint", func(s *Schema) { s.Entities[0].Endpoint = "/1.0/folder" }, "invalid_endpoint"},
		{"unknown op", func(s *Schema) { s.Entities[0].Ops = []Op{"purge"} }, "unknown_op"},
		{"empty create", func(s *Schema) {
			s.Entities[0].Fields[1].Tag.Create = ModeNone
		}, "empty_create"},
		{"empty update", func(s *Schema) {
			for i := range s.Entities[0].Fields {
				s.Entities[0].Fields[i].Tag.Update = ModeNone
			}
		}, "empty_update"},
		{"duplicate detail", func(s *Schema) {
			s.Entities[0].Details = []string{"tags", "tags"}
		}, "duplicate_detail"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Schema{Package: "passwords", Entities: []*Entity{validEntity()}}
			tt.mutate(s)
			errs := s.Validate()
			require.NotEmpty(t, errs)

			var codes []string
			for _, err := range errs {
				codes = append(codes, err.(*ValidationError).Code)
			}
			assert.Contains(t, codes, tt.code)
		})
	}
}
