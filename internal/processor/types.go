package processor

import (
	"strconv"
	"strings"
)

// Kind tags the concrete type held by a Value.
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindFloat
	KindBool
	KindList
)

// Value is a tagged metadata value: a string, number, boolean, or list of
// strings. The rich typed form is kept internally; Flatten converts to the
// flat string form the vector index requires.
type Value struct {
	kind Kind
	str  string
	num  float64
	b    bool
	list []string
}

func StringValue(s string) Value      { return Value{kind: KindString, str: s} }
func IntValue(n int) Value            { return Value{kind: KindInt, num: float64(n)} }
func FloatValue(f float64) Value      { return Value{kind: KindFloat, num: f} }
func BoolValue(b bool) Value          { return Value{kind: KindBool, b: b} }
func ListValue(items []string) Value  { return Value{kind: KindList, list: items} }

// Kind returns the tag of the value.
func (v Value) Kind() Kind { return v.kind }

// List returns the list form, or nil for non-list values.
func (v Value) List() []string { return v.list }

// String renders the value as a flat scalar string. Lists are comma-joined,
// which is the normalization contract for the index boundary.
func (v Value) String() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindInt:
		return strconv.FormatInt(int64(v.num), 10)
	case KindFloat:
		return strconv.FormatFloat(v.num, 'g', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindList:
		return strings.Join(v.list, ", ")
	default:
		return ""
	}
}

// Metadata is a document- or chunk-level metadata mapping.
type Metadata map[string]Value

// Clone returns a shallow copy of the metadata map.
func (m Metadata) Clone() Metadata {
	out := make(Metadata, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Flatten converts the metadata to flat string values. The index layer
// disallows nested list values, so every value crosses this boundary as a
// scalar or comma-joined string.
func (m Metadata) Flatten() map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v.String()
	}
	return out
}

// Chunk is a token-bounded, possibly overlapping slice of a document's text,
// the unit handed to the vector index.
type Chunk struct {
	Content    string
	Index      int
	StartToken int
	EndToken   int
	Metadata   Metadata
}
