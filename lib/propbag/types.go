// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package propbag

import "fmt"

// Wire format constants.
const (
	// Magic is the 4-byte marker at the start of every file.
	Magic uint32 = 0xFFFFFFFF

	// SentinelName is the reserved property name that terminates a
	// property list. It is never a real property.
	SentinelName = "None"

	// PoolPropertyName is the name of the top-level array holding the
	// character entries. Only an array with this name carries the
	// header section (see [Array.Headed]).
	PoolPropertyName = "CharacterPool"

	// SentinelLength is the encoded size of a sentinel: the
	// length-prefixed "None\x00" string plus one padding word.
	SentinelLength = 4 + len(SentinelName) + 1 + 4

	// intSize is the width of every size, count, and padding field.
	intSize = 4
)

// Type identifies the kind of value a property carries. The set is
// closed: a type name not listed here is rejected during decoding.
type Type uint8

const (
	TypeBool Type = iota + 1
	TypeInt
	TypeString
	TypeName
	TypeStruct
	TypeArray
)

// typeWireNames maps each type to the string that identifies it on
// the wire. These are protocol constants.
var typeWireNames = map[Type]string{
	TypeBool:   "BoolProperty",
	TypeInt:    "IntProperty",
	TypeString: "StrProperty",
	TypeName:   "NameProperty",
	TypeStruct: "StructProperty",
	TypeArray:  "ArrayProperty",
}

var typesByWireName = func() map[string]Type {
	types := make(map[string]Type, len(typeWireNames))
	for propertyType, wireName := range typeWireNames {
		types[wireName] = propertyType
	}
	return types
}()

// WireName returns the type name as written in the file
// (e.g., "StrProperty"). Returns "" for an invalid Type.
func (t Type) WireName() string {
	return typeWireNames[t]
}

// String returns a short lowercase name for display.
func (t Type) String() string {
	switch t {
	case TypeBool:
		return "bool"
	case TypeInt:
		return "int"
	case TypeString:
		return "string"
	case TypeName:
		return "name"
	case TypeStruct:
		return "struct"
	case TypeArray:
		return "array"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(t))
	}
}

// Valid reports whether t is one of the supported types.
func (t Type) Valid() bool {
	_, ok := typeWireNames[t]
	return ok
}

// MarshalText encodes the type as its short name so that dumps and
// JSON output are readable.
func (t Type) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("invalid property type %d", uint8(t))
	}
	return []byte(t.String()), nil
}

// ParseType looks up a type by its wire name. Returns an
// [*UnsupportedTypeError] for any name outside the supported set.
func ParseType(wireName string) (Type, error) {
	propertyType, ok := typesByWireName[wireName]
	if !ok {
		return 0, &UnsupportedTypeError{Offset: -1, Name: wireName}
	}
	return propertyType, nil
}

// stringLength returns the encoded size of a length-prefixed string:
// the 4-byte length, then the UTF-8 bytes and a NUL terminator. The
// empty string is encoded as a zero length with no terminator.
func stringLength(s string) int {
	if s == "" {
		return intSize
	}
	return intSize + len(s) + 1
}
