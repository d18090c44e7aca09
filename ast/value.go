package ast

// ValueKind identifies which variant of Value is populated.
type ValueKind int

// Value kinds. Value has no Array/Object-of-Node forms and carries no
// position or annotations: an annotation argument can never itself be
// annotated (spec.md §9), so it gets its own small recursive type instead
// of reusing Node.
const (
	ValueNull ValueKind = iota
	ValueBool
	ValueInt
	ValueFloat
	ValueString
	ValueArray
	ValueObject
)

// Value is the JSON-like value carried by an Annotation. Its object variant
// is an ordered slice of properties rather than a Go map, because the
// standard library has no order-preserving map and spec.md §3 requires
// annotation argument mappings to preserve insertion order, same as the
// main Node.Properties slice.
type Value struct {
	Kind ValueKind

	Bool  bool
	Int   int64
	Float float64
	Str   string

	Elements   []*Value
	Properties []*ValueProperty
}

// ValueProperty is one key/value pair of an annotation-argument object.
type ValueProperty struct {
	Key   string
	Value *Value
}

func NewValueNull() *Value           { return &Value{Kind: ValueNull} }
func NewValueBool(v bool) *Value     { return &Value{Kind: ValueBool, Bool: v} }
func NewValueInt(v int64) *Value     { return &Value{Kind: ValueInt, Int: v} }
func NewValueFloat(v float64) *Value { return &Value{Kind: ValueFloat, Float: v} }
func NewValueString(v string) *Value { return &Value{Kind: ValueString, Str: v} }
func NewValueArray() *Value          { return &Value{Kind: ValueArray, Elements: []*Value{}} }
func NewValueObject() *Value         { return &Value{Kind: ValueObject, Properties: []*ValueProperty{}} }

// Get returns the value of the first property with the given key, and
// whether it was found. Matches the first occurrence, consistent with
// duplicate-key preservation elsewhere in the tree.
func (v *Value) Get(key string) (*Value, bool) {
	if v == nil || v.Kind != ValueObject {
		return nil, false
	}
	for _, p := range v.Properties {
		if p.Key == key {
			return p.Value, true
		}
	}
	return nil, false
}
