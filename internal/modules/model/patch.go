package model

import (
	"time"

	"github.com/bytedance/sonic"
)

type columns map[string]any

// add records the pointed-to value under name when ptr is non-nil.
func (c columns) add(name string, ptr any) {
	switch v := ptr.(type) {
	case *string:
		if v != nil {
			c[name] = *v
		}
	case *int:
		if v != nil {
			c[name] = *v
		}
	case *uint:
		if v != nil {
			c[name] = *v
		}
	case *float64:
		if v != nil {
			c[name] = *v
		}
	case *bool:
		if v != nil {
			c[name] = *v
		}
	case *ProjectStatus:
		if v != nil {
			c[name] = string(*v)
		}
	case *TaskStatus:
		if v != nil {
			c[name] = string(*v)
		}
	case *Priority:
		if v != nil {
			c[name] = string(*v)
		}
	case *Role:
		if v != nil {
			c[name] = string(*v)
		}
	case *time.Time:
		if v != nil {
			c[name] = *v
		}
	}
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

// Nullable is an optional reference in a patch. Set is true when the key was
// present; a present null clears the column.
type Nullable[T any] struct {
	Set   bool
	Value *T
}

// Some sets the field to v.
func Some[T any](v T) Nullable[T] { return Nullable[T]{Set: true, Value: &v} }

// Null clears the field.
func Null[T any]() Nullable[T] { return Nullable[T]{Set: true} }

func (n *Nullable[T]) UnmarshalJSON(b []byte) error {
	n.Set = true
	n.Value = nil
	if string(b) == "null" {
		return nil
	}
	var v T
	if err := sonic.Unmarshal(b, &v); err != nil {
		return err
	}
	n.Value = &v
	return nil
}

func (n Nullable[T]) MarshalJSON() ([]byte, error) {
	if n.Value == nil {
		return []byte("null"), nil
	}
	return sonic.Marshal(*n.Value)
}

func setNullable[T any](dst **T, n Nullable[T]) {
	if !n.Set {
		return
	}
	if n.Value == nil {
		*dst = nil
		return
	}
	v := *n.Value
	*dst = &v
}

func addNullable[T any](c columns, name string, n Nullable[T]) {
	switch {
	case !n.Set:
	case n.Value == nil:
		c[name] = nil
	default:
		c[name] = *n.Value
	}
}

// marshalPatch encodes v without its null keys, except the ones in keep.
func marshalPatch(v any, keep map[string]bool) ([]byte, error) {
	raw, err := sonic.Marshal(v)
	if err != nil {
		return nil, err
	}
	fields := map[string]any{}
	if err := sonic.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	for k, val := range fields {
		if val == nil && !keep[k] {
			delete(fields, k)
		}
	}
	return sonic.Marshal(fields)
}
