package depot

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
)

// EmptySequence is the serialized form of a field with no symbols. It is
// compared against the raw text so absent data skips decoding entirely.
const EmptySequence = "[]"

type listKind uint8

const (
	listEmpty listKind = iota
	listSingle
	listMany
)

// List is a serialized sequence that the extraction tool sometimes writes as
// a lone bare element instead of a one-element array. Decoding records which
// shape was found; Items always returns a slice.
type List[T any] struct {
	kind  listKind
	items []T
}

// Single returns a List holding one bare element.
func Single[T any](v T) List[T] {
	return List[T]{kind: listSingle, items: []T{v}}
}

// Many returns a List holding vs. An empty vs yields the empty List.
func Many[T any](vs ...T) List[T] {
	if len(vs) == 0 {
		return List[T]{}
	}
	return List[T]{kind: listMany, items: vs}
}

// Items returns the normalized elements.
func (l List[T]) Items() []T { return l.items }

// Len returns the number of elements.
func (l List[T]) Len() int { return len(l.items) }

// IsSingle reports whether the source held one bare element.
func (l List[T]) IsSingle() bool { return l.kind == listSingle }

// UnmarshalJSON accepts null, an array, or a single bare object.
func (l *List[T]) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	switch {
	case len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")):
		*l = List[T]{}
	case trimmed[0] == '[':
		var items []T
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return err
		}
		*l = Many(items...)
	default:
		var item T
		if err := json.Unmarshal(trimmed, &item); err != nil {
			return err
		}
		*l = Single(item)
	}
	return nil
}

// MarshalJSON always writes an array, so a round trip normalizes a bare
// element into a one-element sequence.
func (l List[T]) MarshalJSON() ([]byte, error) {
	if len(l.items) == 0 {
		return []byte(EmptySequence), nil
	}
	return json.Marshal(l.items)
}

// Symbol describes one documented constant, function or class. Constants
// and functions use the common fields; classes add namespace, package,
// inheritance and member lists.
type Symbol struct {
	Name       string     `json:"name"`
	Namespace  string     `json:"namespace,omitempty"`
	Package    string     `json:"package,omitempty"`
	Type       string     `json:"type,omitempty"`
	Value      string     `json:"value,omitempty"`
	Visibility string     `json:"visibility,omitempty"`
	Static     bool       `json:"static,omitempty"`
	Abstract   bool       `json:"abstract,omitempty"`
	Final      bool       `json:"final,omitempty"`
	Line       int        `json:"line,omitempty"`
	Signature  string     `json:"signature,omitempty"`
	Extends    string     `json:"extends,omitempty"`
	Implements []string   `json:"implements,omitempty"`
	Arguments  []Argument `json:"arguments,omitempty"`
	Docblock   *Docblock  `json:"docblock,omitempty"`
	Constants  []Symbol   `json:"constants,omitempty"`
	Properties []Symbol   `json:"properties,omitempty"`
	Methods    []Symbol   `json:"methods,omitempty"`
}

// IsZero reports whether every field is unset, as happens when a malformed
// record normalizes to a one-element list holding an empty object.
func (s Symbol) IsZero() bool {
	return reflect.ValueOf(s).IsZero()
}

// Argument is one function or method parameter.
type Argument struct {
	Name    string `json:"name"`
	Type    string `json:"type,omitempty"`
	Default string `json:"default,omitempty"`
}

// Docblock is a parsed documentation comment.
type Docblock struct {
	Short string `json:"short,omitempty"`
	Long  string `json:"long,omitempty"`
	Tags  []Tag  `json:"tags,omitempty"`
}

// Tag is one @tag line of a docblock.
type Tag struct {
	Name        string `json:"name"`
	Type        string `json:"type,omitempty"`
	Variable    string `json:"variable,omitempty"`
	Description string `json:"description,omitempty"`
}

// Marker is a todo, fixme or deprecated annotation found in a file.
type Marker struct {
	Type    string `json:"type"`
	Line    int    `json:"line,omitempty"`
	Message string `json:"message,omitempty"`
}

// isEmptySequence reports whether a raw blob is the empty-sequence sentinel.
func isEmptySequence(raw string) bool {
	return raw == EmptySequence
}

// decodeList decodes a raw blob into a normalized List.
func decodeList[T any](field, raw string) (List[T], error) {
	var l List[T]
	if strings.TrimSpace(raw) == "" {
		return l, nil
	}
	if err := json.Unmarshal([]byte(raw), &l); err != nil {
		return l, fmt.Errorf("decode %s: %w: %v", field, ErrCorruptBlob, err)
	}
	return l, nil
}

// decodeSymbols decodes one of the constants, functions or classes blobs.
func decodeSymbols(field, raw string) ([]Symbol, error) {
	l, err := decodeList[Symbol](field, raw)
	if err != nil {
		return nil, err
	}
	return l.Items(), nil
}

// decodeDocblock decodes the file-level docblock. An unset docblock is nil.
func decodeDocblock(raw string) (*Docblock, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || trimmed == "null" || trimmed == EmptySequence {
		return nil, nil
	}
	var d Docblock
	if err := json.Unmarshal([]byte(trimmed), &d); err != nil {
		return nil, fmt.Errorf("decode docblock: %w: %v", ErrCorruptBlob, err)
	}
	return &d, nil
}
