// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package propbag

import (
	"errors"
	"fmt"
)

// Value is the payload of a property. The concrete type is one of
// [Bool], [Int], [String], [Name], [*Struct], or [*Array]; no other
// implementations exist.
type Value interface {
	// Type returns the property type this value belongs to.
	Type() Type

	// Length returns the number of bytes the payload occupies when
	// encoded, including its own size and padding fields. Struct and
	// array payloads are prefixed by their length, so this must be
	// exact before anything is written.
	Length() int

	sealed()
}

// Bool is a boolean value. Encoded as a zero size field, padding, and
// one byte.
type Bool bool

// Int is a 32-bit signed integer value.
type Int int32

// String is a UTF-8 text value. The empty string is encoded without a
// terminator byte.
type String string

// Name is a name value: text plus a trailing integer whose meaning is
// not known. Number is carried verbatim and must never be recomputed.
type Name struct {
	Text   string
	Number int32
}

// Struct is a nested, ordered property list. Property names are not
// required to be unique. TypeName is the engine's struct type (for
// example "TAppearance") and is restored verbatim on encode.
type Struct struct {
	TypeName   string
	Properties []Property
}

// Array is a list of entries, each a property list of its own.
//
// Size is the array's own size field. Its meaning is unresolved (the
// editor writes 4 for the character pool), so it is carried as read.
//
// Headed marks the character pool shape: a header property list and a
// repeated element count precede the entries. Only the array named
// [PoolPropertyName] has this shape, and the decoder sets Headed from
// that name.
type Array struct {
	Size    int32
	Headed  bool
	Headers []Property
	Entries []Entry
}

// Entry is one element of an [Array].
type Entry struct {
	Properties []Property
}

func (Bool) Type() Type    { return TypeBool }
func (Int) Type() Type     { return TypeInt }
func (String) Type() Type  { return TypeString }
func (Name) Type() Type    { return TypeName }
func (*Struct) Type() Type { return TypeStruct }
func (*Array) Type() Type  { return TypeArray }

func (Bool) sealed()    {}
func (Int) sealed()     {}
func (String) sealed()  {}
func (Name) sealed()    {}
func (*Struct) sealed() {}
func (*Array) sealed()  {}

// Length is size + padding + one byte.
func (Bool) Length() int { return intSize + intSize + 1 }

// Length is size + padding + the integer.
func (Int) Length() int { return intSize + intSize + intSize }

// Length is size + padding + the length-prefixed text.
func (s String) Length() int { return intSize + intSize + s.sizeField() }

// Length is size + padding + the length-prefixed text + the number.
func (n Name) Length() int { return intSize + intSize + n.sizeField() }

// Length is size + padding + type name + padding + children + sentinel.
func (s *Struct) Length() int {
	return intSize + intSize + stringLength(s.TypeName) + intSize + s.sizeField()
}

// Length is size + padding + count, the optional header section
// (headers, sentinel, repeated count), and every entry with its
// sentinel.
func (a *Array) Length() int {
	total := intSize + intSize + intSize
	if a.Headed {
		total += propertiesLength(a.Headers) + SentinelLength + intSize
	}
	for _, entry := range a.Entries {
		total += entry.Length()
	}
	return total
}

// Length returns the encoded size of the entry's properties plus the
// closing sentinel.
func (e Entry) Length() int {
	return propertiesLength(e.Properties) + SentinelLength
}

// The size fields written into payloads. The decoder checks each of
// these against the bytes actually consumed.

func (s String) sizeField() int  { return stringLength(string(s)) }
func (n Name) sizeField() int    { return stringLength(n.Text) + intSize }
func (s *Struct) sizeField() int { return propertiesLength(s.Properties) + SentinelLength }

// Find returns the first child property with the given name.
func (s *Struct) Find(name string) (*Property, bool) {
	return findProperty(s.Properties, name)
}

// Header returns the first header property with the given name.
func (a *Array) Header(name string) (*Property, bool) {
	return findProperty(a.Headers, name)
}

// Property is a named, typed value. Type must match Value.Type();
// [Property.Validate] checks this recursively.
type Property struct {
	Name  string
	Type  Type
	Value Value
}

// NewProperty returns a property whose Type is taken from value.
func NewProperty(name string, value Value) Property {
	return Property{Name: name, Type: value.Type(), Value: value}
}

// Length returns the encoded size of the whole record: name, padding,
// type name, padding, and payload.
func (p Property) Length() int {
	return stringLength(p.Name) + intSize + stringLength(p.Type.WireName()) + intSize + p.Value.Length()
}

// ErrInvalidTree is wrapped by errors describing a property tree that
// cannot be encoded into something the decoder would accept.
var ErrInvalidTree = errors.New("invalid property tree")

// Validate checks that the property and everything nested in it can be
// encoded: a supported type, a value of that type, a name that is not
// the sentinel, and header sections only on the character pool array.
func (p Property) Validate() error {
	if p.Name == SentinelName {
		return fmt.Errorf("%w: property named %q collides with the list sentinel", ErrInvalidTree, SentinelName)
	}
	if !p.Type.Valid() {
		return fmt.Errorf("%w: property %q has unsupported type %d", ErrInvalidTree, p.Name, uint8(p.Type))
	}
	if p.Value == nil {
		return fmt.Errorf("%w: property %q has no value", ErrInvalidTree, p.Name)
	}
	if p.Value.Type() != p.Type {
		return fmt.Errorf("%w: property %q declared %s but holds a %s value",
			ErrInvalidTree, p.Name, p.Type, p.Value.Type())
	}

	switch value := p.Value.(type) {
	case *Struct:
		if value == nil {
			return fmt.Errorf("%w: property %q has a nil struct", ErrInvalidTree, p.Name)
		}
		if err := validateProperties(value.Properties); err != nil {
			return fmt.Errorf("struct %q: %w", p.Name, err)
		}
	case *Array:
		if value == nil {
			return fmt.Errorf("%w: property %q has a nil array", ErrInvalidTree, p.Name)
		}
		if value.Headed != (p.Name == PoolPropertyName) {
			return fmt.Errorf("%w: array %q: header section is only valid on %q",
				ErrInvalidTree, p.Name, PoolPropertyName)
		}
		if err := validateProperties(value.Headers); err != nil {
			return fmt.Errorf("array %q header: %w", p.Name, err)
		}
		for i, entry := range value.Entries {
			if err := validateProperties(entry.Properties); err != nil {
				return fmt.Errorf("array %q entry %d: %w", p.Name, i, err)
			}
		}
	}
	return nil
}

// Clone returns a deep copy of the property.
func (p Property) Clone() Property {
	clone := p
	switch value := p.Value.(type) {
	case *Struct:
		if value != nil {
			clone.Value = value.Clone()
		}
	case *Array:
		if value != nil {
			clone.Value = value.Clone()
		}
	}
	return clone
}

// Clone returns a deep copy of the struct.
func (s *Struct) Clone() *Struct {
	return &Struct{TypeName: s.TypeName, Properties: CloneProperties(s.Properties)}
}

// Clone returns a deep copy of the array.
func (a *Array) Clone() *Array {
	clone := &Array{Size: a.Size, Headed: a.Headed, Headers: CloneProperties(a.Headers)}
	if a.Entries != nil {
		clone.Entries = make([]Entry, len(a.Entries))
		for i, entry := range a.Entries {
			clone.Entries[i] = Entry{Properties: CloneProperties(entry.Properties)}
		}
	}
	return clone
}

// CloneProperties deep-copies a property list. A nil list stays nil.
func CloneProperties(properties []Property) []Property {
	if properties == nil {
		return nil
	}
	clone := make([]Property, len(properties))
	for i, property := range properties {
		clone[i] = property.Clone()
	}
	return clone
}

// File is a decoded file: the top-level property list in order. A nil
// element stands for a sentinel found at the top level; it is kept so
// the file re-encodes to the same bytes.
type File struct {
	Properties []*Property
}

// Find returns the first top-level property with the given name.
func (f *File) Find(name string) (*Property, bool) {
	for _, property := range f.Properties {
		if property != nil && property.Name == name {
			return property, true
		}
	}
	return nil, false
}

// Length returns the encoded size of the whole file including the
// magic marker.
func (f *File) Length() int {
	total := intSize
	for _, property := range f.Properties {
		if property == nil {
			total += SentinelLength
			continue
		}
		total += property.Length()
	}
	return total
}

// Validate checks every top-level property (see [Property.Validate]).
func (f *File) Validate() error {
	for i, property := range f.Properties {
		if property == nil {
			continue
		}
		if err := property.Validate(); err != nil {
			return fmt.Errorf("top-level property %d: %w", i, err)
		}
	}
	return nil
}

// Clone returns a deep copy of the file.
func (f *File) Clone() *File {
	clone := &File{Properties: make([]*Property, len(f.Properties))}
	for i, property := range f.Properties {
		if property == nil {
			continue
		}
		copied := property.Clone()
		clone.Properties[i] = &copied
	}
	return clone
}

func propertiesLength(properties []Property) int {
	var total int
	for _, property := range properties {
		total += property.Length()
	}
	return total
}

func validateProperties(properties []Property) error {
	for _, property := range properties {
		if err := property.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func findProperty(properties []Property, name string) (*Property, bool) {
	for i := range properties {
		if properties[i].Name == name {
			return &properties[i], true
		}
	}
	return nil, false
}
