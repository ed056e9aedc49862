// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package propbag

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/bureau-foundation/poolkit/lib/atomicfile"
)

// Encode serializes f into the byte layout [Decode] accepts. The tree
// is validated first (see [File.Validate]); an invalid tree returns an
// error wrapping [ErrInvalidTree] and no bytes.
func Encode(f *File) ([]byte, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	e := &encoder{buffer: make([]byte, 0, f.Length())}
	e.putUint32(Magic)
	for _, property := range f.Properties {
		if property == nil {
			e.writeSentinel()
			continue
		}
		e.writeProperty(*property)
	}
	return e.buffer, nil
}

// EncodeList serializes a property list and its closing sentinel, the
// layout of one array entry. No magic is written.
func EncodeList(properties []Property) ([]byte, error) {
	if err := validateProperties(properties); err != nil {
		return nil, err
	}
	e := &encoder{buffer: make([]byte, 0, Entry{Properties: properties}.Length())}
	e.writeProperties(properties)
	return e.buffer, nil
}

// Write encodes f and writes it to w.
func Write(w io.Writer, f *File) error {
	data, err := Encode(f)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing property stream: %w", err)
	}
	return nil
}

// WriteFile encodes f and atomically replaces the file at path. On any
// failure the original file is left untouched.
func WriteFile(path string, f *File) error {
	data, err := Encode(f)
	if err != nil {
		return err
	}
	return atomicfile.WriteFile(path, data, 0o644)
}

// encoder appends the wire layout to a buffer pre-sized from the
// tree's computed length.
type encoder struct {
	buffer []byte
}

func (e *encoder) writeProperty(property Property) {
	e.writeString(property.Name)
	e.writePadding()
	e.writeString(property.Type.WireName())
	e.writePadding()
	e.writeValue(property.Value)
}

func (e *encoder) writeProperties(properties []Property) {
	for _, property := range properties {
		e.writeProperty(property)
	}
	e.writeSentinel()
}

func (e *encoder) writeValue(value Value) {
	switch value := value.(type) {
	case Bool:
		e.putInt32(0)
		e.writePadding()
		if value {
			e.buffer = append(e.buffer, 1)
		} else {
			e.buffer = append(e.buffer, 0)
		}

	case Int:
		e.putInt32(intSize)
		e.writePadding()
		e.putInt32(int32(value))

	case String:
		e.putInt32(int32(value.sizeField()))
		e.writePadding()
		e.writeString(string(value))

	case Name:
		e.putInt32(int32(value.sizeField()))
		e.writePadding()
		e.writeString(value.Text)
		e.putInt32(value.Number)

	case *Struct:
		e.putInt32(int32(value.sizeField()))
		e.writePadding()
		e.writeString(value.TypeName)
		e.writePadding()
		e.writeProperties(value.Properties)

	case *Array:
		// Only the header section has a closing sentinel; the decoder
		// reads none after the last entry.
		count := int32(len(value.Entries))
		e.putInt32(value.Size)
		e.writePadding()
		e.putInt32(count)
		if value.Headed {
			e.writeProperties(value.Headers)
			e.putInt32(count)
		}
		for _, entry := range value.Entries {
			e.writeProperties(entry.Properties)
		}
	}
}

// writeString writes a length-prefixed string. The length counts the
// NUL terminator; the empty string is a bare zero length.
func (e *encoder) writeString(s string) {
	if s == "" {
		e.putInt32(0)
		return
	}
	e.putInt32(int32(len(s) + 1))
	e.buffer = append(e.buffer, s...)
	e.buffer = append(e.buffer, 0)
}

func (e *encoder) writeSentinel() {
	e.writeString(SentinelName)
	e.writePadding()
}

func (e *encoder) writePadding() {
	e.putUint32(0)
}

func (e *encoder) putInt32(value int32) {
	e.putUint32(uint32(value))
}

func (e *encoder) putUint32(value uint32) {
	e.buffer = binary.LittleEndian.AppendUint32(e.buffer, value)
}
