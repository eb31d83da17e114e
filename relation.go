package passwords

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// Relation references another record. Depending on the requested detail
// level the server sends either the bare identifier or the full record;
// Relation holds whichever arrived and always knows the identifier.
type Relation[T any] struct {
	ID   uuid.UUID
	data *T
}

// RelationTo returns an identifier-only relation.
func RelationTo[T any](id uuid.UUID) Relation[T] {
	return Relation[T]{ID: id}
}

// EmbeddedRelation returns a relation carrying the full record.
func EmbeddedRelation[T any](id uuid.UUID, v T) Relation[T] {
	return Relation[T]{ID: id, data: &v}
}

// Data returns the embedded record, if the server sent one.
func (r Relation[T]) Data() (T, bool) {
	if r.data == nil {
		var zero T
		return zero, false
	}
	return *r.data, true
}

// IsEmbedded reports whether the relation carries the full record.
func (r Relation[T]) IsEmbedded() bool {
	return r.data != nil
}

// IsZero reports whether the relation is empty.
func (r Relation[T]) IsZero() bool {
	return r.ID == uuid.Nil && r.data == nil
}

// MarshalJSON always encodes the bare identifier. The server only accepts
// ids in relation fields.
func (r Relation[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.ID)
}

func (r *Relation[T]) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*r = Relation[T]{}
		return nil
	case len(data) > 0 && data[0] == '"':
		var id uuid.UUID
		if err := json.Unmarshal(data, &id); err != nil {
			return err
		}
		*r = Relation[T]{ID: id}
		return nil
	case len(data) > 0 && data[0] == '{':
		var head struct {
			ID uuid.UUID `json:"id"`
		}
		if err := json.Unmarshal(data, &head); err != nil {
			return err
		}
		var v T
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*r = Relation[T]{ID: head.ID, data: &v}
		return nil
	default:
		return fmt.Errorf("relation: expected identifier or object, got %.20s", data)
	}
}
