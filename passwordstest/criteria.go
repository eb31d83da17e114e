package passwordstest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// criterion is one decoded find constraint.
type criterion struct {
	op    string // eq, ne, lt, gt, le, ge
	value any
}

// parseCriterion accepts a bare value or a single {"<op>": value} object.
func parseCriterion(raw json.RawMessage) (criterion, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && raw[0] == '{' {
		var wrapped map[string]any
		if err := json.Unmarshal(raw, &wrapped); err != nil {
			return criterion{}, err
		}
		if len(wrapped) != 1 {
			return criterion{}, fmt.Errorf("criterion must have one operator")
		}
		for op, v := range wrapped {
			switch op {
			case "eq", "ne", "lt", "gt", "le", "ge":
				return criterion{op: op, value: v}, nil
			}
			return criterion{}, fmt.Errorf("unknown operator %q", op)
		}
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return criterion{}, err
	}
	return criterion{op: "eq", value: v}, nil
}

func (c criterion) match(actual any) bool {
	cmp, ok := compare(actual, c.value)
	if !ok {
		return c.op == "ne"
	}
	switch c.op {
	case "eq":
		return cmp == 0
	case "ne":
		return cmp != 0
	case "lt":
		return cmp < 0
	case "gt":
		return cmp > 0
	case "le":
		return cmp <= 0
	case "ge":
		return cmp >= 0
	}
	return false
}

// compare orders a against b. ok is false when they cannot be compared.
func compare(a, b any) (int, bool) {
	if fa, ok := toFloat(a); ok {
		fb, ok := toFloat(b)
		if !ok {
			return 0, false
		}
		switch {
		case fa < fb:
			return -1, true
		case fa > fb:
			return 1, true
		}
		return 0, true
	}
	switch a := a.(type) {
	case bool:
		b, ok := b.(bool)
		if !ok {
			return 0, false
		}
		if a == b {
			return 0, true
		}
		if !a {
			return -1, true
		}
		return 1, true
	case string:
		b, ok := b.(string)
		if !ok {
			return 0, false
		}
		switch {
		case a < b:
			return -1, true
		case a > b:
			return 1, true
		}
		return 0, true
	case nil:
		return 0, b == nil
	}
	return 0, false
}

func toFloat(v any) (float64, bool) {
	switch v := v.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	}
	return 0, false
}

func toInt(v any) int {
	f, _ := toFloat(v)
	return int(f)
}

func toString(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case nil:
		return ""
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return fmt.Sprint(v)
}
