// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import "encoding/binary"

// sentinelLength is the encoded size of "None" plus its padding word.
const sentinelLength = 4 + 5 + 4

// Wire appends property bag fields in wire order. Every method returns
// the receiver so fixtures read top to bottom:
//
//	entry := testutil.NewWire().
//	    StrProperty("strFirstName", "Jane").
//	    IntProperty("iGender", 2)
type Wire struct {
	buffer []byte
}

// NewWire returns an empty builder.
func NewWire() *Wire {
	return &Wire{}
}

// Magic appends the 0xFFFFFFFF file marker.
func (w *Wire) Magic() *Wire {
	return w.Uint32(0xFFFFFFFF)
}

// Uint32 appends a little-endian 32-bit value.
func (w *Wire) Uint32(value uint32) *Wire {
	w.buffer = binary.LittleEndian.AppendUint32(w.buffer, value)
	return w
}

// Int32 appends a little-endian signed 32-bit value.
func (w *Wire) Int32(value int32) *Wire {
	return w.Uint32(uint32(value))
}

// Byte appends a single byte.
func (w *Wire) Byte(value byte) *Wire {
	w.buffer = append(w.buffer, value)
	return w
}

// Raw appends bytes verbatim.
func (w *Wire) Raw(data []byte) *Wire {
	w.buffer = append(w.buffer, data...)
	return w
}

// Str appends a length-prefixed, NUL-terminated string. The empty
// string is a bare zero length.
func (w *Wire) Str(s string) *Wire {
	if s == "" {
		return w.Int32(0)
	}
	w.Int32(int32(len(s) + 1))
	w.buffer = append(w.buffer, s...)
	return w.Byte(0)
}

// Padding appends a zero padding word.
func (w *Wire) Padding() *Wire {
	return w.Uint32(0)
}

// Sentinel appends the "None" list terminator and its padding.
func (w *Wire) Sentinel() *Wire {
	return w.Str("None").Padding()
}

// Tag appends a property's name and type name, each followed by
// padding.
func (w *Wire) Tag(name, typeName string) *Wire {
	return w.Str(name).Padding().Str(typeName).Padding()
}

// BoolProperty appends a complete bool property.
func (w *Wire) BoolProperty(name string, value bool) *Wire {
	w.Tag(name, "BoolProperty").Int32(0).Padding()
	if value {
		return w.Byte(1)
	}
	return w.Byte(0)
}

// IntProperty appends a complete int property.
func (w *Wire) IntProperty(name string, value int32) *Wire {
	return w.Tag(name, "IntProperty").Int32(4).Padding().Int32(value)
}

// StrProperty appends a complete string property.
func (w *Wire) StrProperty(name, value string) *Wire {
	text := NewWire().Str(value)
	return w.Tag(name, "StrProperty").Int32(int32(text.Len())).Padding().Raw(text.Bytes())
}

// NameProperty appends a complete name property with its trailing
// number.
func (w *Wire) NameProperty(name, text string, number int32) *Wire {
	payload := NewWire().Str(text).Int32(number)
	return w.Tag(name, "NameProperty").Int32(int32(payload.Len())).Padding().Raw(payload.Bytes())
}

// StructProperty appends a struct property whose children are the
// bytes already in children. The closing sentinel is appended here and
// counted in the size field.
func (w *Wire) StructProperty(name, structType string, children *Wire) *Wire {
	w.Tag(name, "StructProperty").Int32(int32(children.Len() + sentinelLength)).Padding()
	return w.Str(structType).Padding().Raw(children.Bytes()).Sentinel()
}

// ArrayProperty appends a header-less array property. size is the
// array's own size field, written verbatim. Each entry's properties
// are followed by a sentinel.
func (w *Wire) ArrayProperty(name string, size int32, entries ...*Wire) *Wire {
	w.Tag(name, "ArrayProperty").Int32(size).Padding().Int32(int32(len(entries)))
	for _, entry := range entries {
		w.Raw(entry.Bytes()).Sentinel()
	}
	return w
}

// PoolProperty appends the "CharacterPool" array with its header
// section and repeated element count.
func (w *Wire) PoolProperty(size int32, headers *Wire, entries ...*Wire) *Wire {
	count := int32(len(entries))
	w.Tag("CharacterPool", "ArrayProperty").Int32(size).Padding().Int32(count)
	w.Raw(headers.Bytes()).Sentinel().Int32(count)
	for _, entry := range entries {
		w.Raw(entry.Bytes()).Sentinel()
	}
	return w
}

// Len returns the number of bytes built so far.
func (w *Wire) Len() int {
	return len(w.buffer)
}

// Bytes returns a copy of the bytes built so far.
func (w *Wire) Bytes() []byte {
	return append([]byte(nil), w.buffer...)
}
