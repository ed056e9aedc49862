// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package propbag

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

// ReadFile reads and decodes the file at path.
func ReadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading property file: %w", err)
	}
	file, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return file, nil
}

// Read reads r to the end and decodes the result.
func Read(r io.Reader) (*File, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading property stream: %w", err)
	}
	return Decode(data)
}

// Decode parses a complete file. The top-level property list runs
// until the data is exhausted; running out of data anywhere else is a
// truncation error.
func Decode(data []byte) (*File, error) {
	d := &decoder{data: data}

	magicOffset := d.offset
	magic, err := d.readUint32()
	if err != nil {
		return nil, err
	}
	if magic != Magic {
		return nil, &FormatError{
			Offset:   magicOffset,
			Expected: fmt.Sprintf("0x%08X", Magic),
			Actual:   fmt.Sprintf("0x%08X", magic),
			Err:      ErrMagic,
		}
	}

	file := &File{}
	for d.offset < len(d.data) {
		property, err := d.readProperty()
		if err != nil {
			return nil, err
		}
		file.Properties = append(file.Properties, property)
	}

	if len(d.checkpoints) != 0 {
		return nil, fmt.Errorf("propbag: %d size checkpoints left open after decode", len(d.checkpoints))
	}
	return file, nil
}

// decoder is a forward-only cursor over one file. checkpoints is the
// stack of offsets where sized blobs began; every mark is matched by
// exactly one check, innermost first. A decoder is used for a single
// Decode call and never shared.
type decoder struct {
	data        []byte
	offset      int
	checkpoints []int
}

// readProperty reads one record. Returns (nil, nil) for the sentinel,
// which ends the enclosing list.
func (d *decoder) readProperty() (*Property, error) {
	name, err := d.readString()
	if err != nil {
		return nil, err
	}
	if err := d.readPadding(); err != nil {
		return nil, err
	}
	if name == SentinelName {
		return nil, nil
	}

	typeOffset := d.offset
	typeName, err := d.readString()
	if err != nil {
		return nil, err
	}
	propertyType, err := ParseType(typeName)
	if err != nil {
		return nil, &UnsupportedTypeError{Offset: typeOffset, Name: typeName}
	}
	if err := d.readPadding(); err != nil {
		return nil, err
	}

	value, err := d.readValue(name, propertyType)
	if err != nil {
		return nil, err
	}
	return &Property{Name: name, Type: propertyType, Value: value}, nil
}

// readList reads properties until a sentinel and returns them in order.
// A list holding only the sentinel yields nil.
func (d *decoder) readList() ([]Property, error) {
	var properties []Property
	for {
		property, err := d.readProperty()
		if err != nil {
			return nil, err
		}
		if property == nil {
			return properties, nil
		}
		properties = append(properties, *property)
	}
}

func (d *decoder) readValue(name string, propertyType Type) (Value, error) {
	switch propertyType {
	case TypeBool:
		return d.readBool()
	case TypeInt:
		return d.readInt()
	case TypeString:
		return d.readStringValue()
	case TypeName:
		return d.readName()
	case TypeStruct:
		return d.readStruct()
	case TypeArray:
		return d.readArray(name == PoolPropertyName)
	default:
		return nil, fmt.Errorf("propbag: no reader for property type %s", propertyType)
	}
}

func (d *decoder) readBool() (Value, error) {
	if err := d.expectSize(0); err != nil {
		return nil, err
	}
	if err := d.readPadding(); err != nil {
		return nil, err
	}
	if err := d.need(1); err != nil {
		return nil, err
	}
	raw := d.data[d.offset]
	d.offset++
	// Any non-zero byte is true; encoding writes it back as 0x01.
	return Bool(raw != 0), nil
}

func (d *decoder) readInt() (Value, error) {
	if err := d.expectSize(intSize); err != nil {
		return nil, err
	}
	if err := d.readPadding(); err != nil {
		return nil, err
	}
	value, err := d.readInt32()
	if err != nil {
		return nil, err
	}
	return Int(value), nil
}

func (d *decoder) readStringValue() (Value, error) {
	size, err := d.readInt32()
	if err != nil {
		return nil, err
	}
	d.mark()
	if err := d.readPadding(); err != nil {
		return nil, err
	}
	text, err := d.readString()
	if err != nil {
		return nil, err
	}
	// The size field excludes itself but the checkpoint includes the
	// padding word.
	if err := d.check(int(size) + intSize); err != nil {
		return nil, err
	}
	return String(text), nil
}

func (d *decoder) readName() (Value, error) {
	size, err := d.readInt32()
	if err != nil {
		return nil, err
	}
	d.mark()
	if err := d.readPadding(); err != nil {
		return nil, err
	}
	text, err := d.readString()
	if err != nil {
		return nil, err
	}
	number, err := d.readInt32()
	if err != nil {
		return nil, err
	}
	if err := d.check(int(size) + intSize); err != nil {
		return nil, err
	}
	return Name{Text: text, Number: number}, nil
}

func (d *decoder) readStruct() (Value, error) {
	size, err := d.readInt32()
	if err != nil {
		return nil, err
	}
	if err := d.readPadding(); err != nil {
		return nil, err
	}
	typeName, err := d.readString()
	if err != nil {
		return nil, err
	}
	if err := d.readPadding(); err != nil {
		return nil, err
	}

	// The struct size covers the children and the closing sentinel.
	d.mark()
	properties, err := d.readList()
	if err != nil {
		return nil, err
	}
	if err := d.check(int(size)); err != nil {
		return nil, err
	}
	return &Struct{TypeName: typeName, Properties: properties}, nil
}

func (d *decoder) readArray(headed bool) (Value, error) {
	size, err := d.readInt32()
	if err != nil {
		return nil, err
	}
	if err := d.readPadding(); err != nil {
		return nil, err
	}
	count, err := d.readCount()
	if err != nil {
		return nil, err
	}

	array := &Array{Size: size, Headed: headed}
	if headed {
		headers, err := d.readList()
		if err != nil {
			return nil, err
		}
		array.Headers = headers

		// The element count is repeated after the header section. The
		// reason is unknown; the two must agree.
		repeatOffset := d.offset
		repeated, err := d.readInt32()
		if err != nil {
			return nil, err
		}
		if int(repeated) != count {
			return nil, &FormatError{
				Offset:   repeatOffset,
				Expected: fmt.Sprintf("repeated element count %d", count),
				Actual:   fmt.Sprintf("%d", repeated),
				Err:      ErrCountMismatch,
			}
		}
	}

	if count > 0 {
		array.Entries = make([]Entry, 0, count)
	}
	for i := 0; i < count; i++ {
		properties, err := d.readList()
		if err != nil {
			return nil, err
		}
		array.Entries = append(array.Entries, Entry{Properties: properties})
	}
	return array, nil
}

// readCount reads an array element count. Each entry needs at least a
// sentinel, which bounds the count by the remaining data before any
// allocation happens.
func (d *decoder) readCount() (int, error) {
	countOffset := d.offset
	count, err := d.readInt32()
	if err != nil {
		return 0, err
	}
	if count < 0 {
		return 0, &FormatError{
			Offset:   countOffset,
			Expected: "non-negative element count",
			Actual:   fmt.Sprintf("%d", count),
			Err:      ErrLength,
		}
	}
	if remaining := len(d.data) - d.offset; int(count) > remaining/SentinelLength {
		return 0, &FormatError{
			Offset:   countOffset,
			Expected: fmt.Sprintf("at most %d elements in %d remaining bytes", remaining/SentinelLength, remaining),
			Actual:   fmt.Sprintf("%d", count),
			Err:      ErrTruncated,
		}
	}
	return int(count), nil
}

// readString reads a length-prefixed, NUL-terminated string. A zero
// length is the empty string with no terminator.
func (d *decoder) readString() (string, error) {
	lengthOffset := d.offset
	length, err := d.readInt32()
	if err != nil {
		return "", err
	}
	if length == 0 {
		return "", nil
	}
	if length < 0 {
		// Negative lengths mark UTF-16 strings in the engine, which
		// this format never uses.
		return "", &FormatError{
			Offset:   lengthOffset,
			Expected: "non-negative string length",
			Actual:   fmt.Sprintf("%d", length),
			Err:      ErrLength,
		}
	}
	if err := d.need(int(length)); err != nil {
		return "", err
	}
	raw := d.data[d.offset : d.offset+int(length)]
	d.offset += int(length)
	if terminator := raw[len(raw)-1]; terminator != 0 {
		return "", &FormatError{
			Offset:   d.offset - 1,
			Expected: "0x00",
			Actual:   fmt.Sprintf("0x%02X", terminator),
			Err:      ErrTerminator,
		}
	}
	return string(raw[:len(raw)-1]), nil
}

func (d *decoder) readPadding() error {
	paddingOffset := d.offset
	value, err := d.readUint32()
	if err != nil {
		return err
	}
	if value != 0 {
		return &FormatError{
			Offset:   paddingOffset,
			Expected: "0x00000000",
			Actual:   fmt.Sprintf("0x%08X", value),
			Err:      ErrPadding,
		}
	}
	return nil
}

// expectSize reads a size field that has a fixed value for its type.
func (d *decoder) expectSize(expected int32) error {
	sizeOffset := d.offset
	size, err := d.readInt32()
	if err != nil {
		return err
	}
	if size != expected {
		return &FormatError{
			Offset:   sizeOffset,
			Expected: fmt.Sprintf("size %d", expected),
			Actual:   fmt.Sprintf("size %d", size),
			Err:      ErrSize,
		}
	}
	return nil
}

func (d *decoder) readInt32() (int32, error) {
	value, err := d.readUint32()
	return int32(value), err
}

func (d *decoder) readUint32() (uint32, error) {
	if err := d.need(intSize); err != nil {
		return 0, err
	}
	value := binary.LittleEndian.Uint32(d.data[d.offset:])
	d.offset += intSize
	return value, nil
}

func (d *decoder) need(n int) error {
	if remaining := len(d.data) - d.offset; remaining < n {
		return &FormatError{
			Offset:   d.offset,
			Expected: fmt.Sprintf("%d bytes", n),
			Actual:   fmt.Sprintf("%d bytes", remaining),
			Err:      ErrTruncated,
		}
	}
	return nil
}

// mark records the start of a sized blob.
func (d *decoder) mark() {
	d.checkpoints = append(d.checkpoints, d.offset)
}

// check closes the innermost blob and verifies that exactly expected
// bytes were consumed since its mark.
func (d *decoder) check(expected int) error {
	if len(d.checkpoints) == 0 {
		return fmt.Errorf("propbag: size check at offset %d without a matching mark", d.offset)
	}
	last := len(d.checkpoints) - 1
	start := d.checkpoints[last]
	d.checkpoints = d.checkpoints[:last]

	if actual := d.offset - start; actual != expected {
		return &FormatError{
			Offset:   d.offset,
			Expected: fmt.Sprintf("%d bytes since offset %d", expected, start),
			Actual:   fmt.Sprintf("%d bytes", actual),
			Err:      ErrSize,
		}
	}
	return nil
}
