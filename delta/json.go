package delta

import (
	"encoding/json"
)

// MarshalJSON renders op in the wire shape Quill clients expect: a
// single key named after the action ("insert", "retain" or "delete")
// holding the value, plus an "attributes" key when present.
func (op Op) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, 2)
	m[string(op.Action)] = op.Value
	if len(op.Attrs) > 0 {
		m["attributes"] = op.Attrs
	}
	return json.Marshal(m)
}

// UnmarshalJSON parses the Quill wire shape described by MarshalJSON.
func (op *Op) UnmarshalJSON(data []byte) error {
	var generic map[string]any
	if err := json.Unmarshal(data, &generic); err != nil {
		return err
	}
	decoded, err := opFromGeneric(generic)
	if err != nil {
		return err
	}
	*op = decoded
	return nil
}

// opFromGeneric builds an Op from a map already decoded by
// encoding/json (so numbers arrive as float64, objects as
// map[string]any, nulls as untyped nil).
func opFromGeneric(m map[string]any) (Op, error) {
	var attrs Attrs
	if raw, ok := m["attributes"]; ok {
		am, ok := raw.(map[string]any)
		if !ok {
			return Op{}, &ErrInvalidOp{Reason: "attributes must be an object"}
		}
		attrs = Attrs(am)
	}
	for _, action := range []Action{ActionInsert, ActionRetain, ActionDelete} {
		raw, ok := m[string(action)]
		if !ok {
			continue
		}
		value, err := valueFromGeneric(action, raw)
		if err != nil {
			return Op{}, err
		}
		return Op{Action: action, Value: value, Attrs: attrs}, nil
	}
	return Op{}, &ErrInvalidOp{Reason: "operation object has no insert/retain/delete key"}
}

func valueFromGeneric(action Action, raw any) (any, error) {
	switch v := raw.(type) {
	case string:
		if action == ActionRetain || action == ActionDelete {
			return nil, &ErrInvalidOp{Reason: "retain/delete value must be numeric or an embed object"}
		}
		return v, nil
	case float64:
		return int(v), nil
	case map[string]any:
		if action == ActionDelete {
			return nil, &ErrInvalidOp{Reason: "delete value must be numeric"}
		}
		return Embed(v), nil
	default:
		return nil, &ErrInvalidOp{Reason: "operation value has an unsupported JSON type"}
	}
}
