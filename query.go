package passwords

import (
	"encoding/json"
	"fmt"
)

// Operator is a search comparison operator.
type Operator string

const (
	OpExact          Operator = ""
	OpEqual          Operator = "eq"
	OpNotEqual       Operator = "ne"
	OpLessThan       Operator = "lt"
	OpGreaterThan    Operator = "gt"
	OpLessOrEqual    Operator = "le"
	OpGreaterOrEqual Operator = "ge"
)

func (o Operator) valid() bool {
	switch o {
	case OpExact, OpEqual, OpNotEqual, OpLessThan, OpGreaterThan, OpLessOrEqual, OpGreaterOrEqual:
		return true
	}
	return false
}

// Query is a single search criterion. Exact criteria are sent as the bare
// value, all others as {"<op>": value}.
type Query[T any] struct {
	Op    Operator
	Value T
}

func Exact[T any](v T) Query[T]          { return Query[T]{Op: OpExact, Value: v} }
func Equal[T any](v T) Query[T]          { return Query[T]{Op: OpEqual, Value: v} }
func NotEqual[T any](v T) Query[T]       { return Query[T]{Op: OpNotEqual, Value: v} }
func LessThan[T any](v T) Query[T]       { return Query[T]{Op: OpLessThan, Value: v} }
func GreaterThan[T any](v T) Query[T]    { return Query[T]{Op: OpGreaterThan, Value: v} }
func LessOrEqual[T any](v T) Query[T]    { return Query[T]{Op: OpLessOrEqual, Value: v} }
func GreaterOrEqual[T any](v T) Query[T] { return Query[T]{Op: OpGreaterOrEqual, Value: v} }

func (q Query[T]) MarshalJSON() ([]byte, error) {
	if q.Op == OpExact {
		return json.Marshal(q.Value)
	}
	if !q.Op.valid() {
		return nil, fmt.Errorf("unknown search operator %q", q.Op)
	}
	return json.Marshal(map[string]T{string(q.Op): q.Value})
}

func (q *Query[T]) UnmarshalJSON(data []byte) error {
	var wrapped map[string]json.RawMessage
	if len(data) > 0 && data[0] == '{' && json.Unmarshal(data, &wrapped) == nil && len(wrapped) == 1 {
		for k, raw := range wrapped {
			op := Operator(k)
			if op != OpExact && op.valid() {
				var v T
				if err := json.Unmarshal(raw, &v); err != nil {
					return err
				}
				*q = Query[T]{Op: op, Value: v}
				return nil
			}
		}
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*q = Exact(v)
	return nil
}
