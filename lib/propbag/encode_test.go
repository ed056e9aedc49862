// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package propbag

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/bureau-foundation/poolkit/lib/testutil"
)

func TestRoundTripBytes(t *testing.T) {
	data := testutil.SamplePool("Soldiers")

	file, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got := file.Length(); got != len(data) {
		t.Errorf("File.Length = %d, want %d", got, len(data))
	}

	encoded, err := Encode(file)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !bytes.Equal(encoded, data) {
		t.Fatalf("re-encoded file differs from input (%d vs %d bytes)", len(encoded), len(data))
	}
}

func TestRoundTripTree(t *testing.T) {
	original := &File{Properties: []*Property{
		{Name: "Version", Type: TypeInt, Value: Int(-7)},
		nil,
		{Name: PoolPropertyName, Type: TypeArray, Value: &Array{
			Size:    4,
			Headed:  true,
			Headers: []Property{NewProperty("PoolFileName", String("Mixed"))},
			Entries: []Entry{
				{Properties: []Property{
					NewProperty("strFirstName", String("Ünïcödé")),
					NewProperty("Country", Name{Text: "Country_Japan", Number: -1}),
					NewProperty("kAppearance", &Struct{
						TypeName: "TAppearance",
						Properties: []Property{
							NewProperty("iGender", Int(1)),
							NewProperty("Nested", &Struct{TypeName: "TInner"}),
						},
					}),
					NewProperty("Extras", &Array{Size: 9, Entries: []Entry{{}, {
						Properties: []Property{NewProperty("On", Bool(true))},
					}}}),
				}},
				{},
			},
		}},
		{Name: "Trailer", Type: TypeString, Value: String("")},
	}}

	data, err := Encode(original)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	decoded, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !reflect.DeepEqual(decoded, original) {
		t.Errorf("decode(encode(tree)) differs:\n got %+v\nwant %+v", decoded, original)
	}
}

func TestSizeLaw(t *testing.T) {
	file, err := Decode(testutil.SamplePool("Soldiers"))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	var check func(property Property)
	check = func(property Property) {
		t.Helper()
		single := &File{Properties: []*Property{&property}}
		encoded, err := Encode(single)
		if err != nil {
			t.Fatalf("Encode(%s): %v", property.Name, err)
		}
		tagLength := testutil.NewWire().Tag(property.Name, property.Type.WireName()).Len()
		written := len(encoded) - 4 - tagLength
		if written != property.Value.Length() {
			t.Errorf("%s: Length() = %d, wrote %d payload bytes", property.Name, property.Value.Length(), written)
		}

		switch value := property.Value.(type) {
		case *Struct:
			for _, child := range value.Properties {
				check(child)
			}
		case *Array:
			for _, entry := range value.Entries {
				for _, child := range entry.Properties {
					check(child)
				}
			}
		}
	}

	for _, property := range file.Properties {
		check(*property)
	}
}

func TestSentinelLaw(t *testing.T) {
	data := testutil.SamplePool("Soldiers")
	file, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	encoded, err := Encode(file)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	// One sentinel per list: the pool header, two entries, two
	// appearance structs, and the single ModTags entry.
	sentinel := testutil.NewWire().Sentinel().Bytes()
	if got := bytes.Count(encoded, sentinel); got != 6 {
		t.Errorf("encoded file holds %d sentinels, want 6", got)
	}
	if got := bytes.Count(data, sentinel); got != 6 {
		t.Errorf("fixture holds %d sentinels, want 6", got)
	}
}

func TestUnknownPropertyBytesPreserved(t *testing.T) {
	unknown := testutil.NewWire().NameProperty("nmMysteryPart", "Part_A", 7).Bytes()
	data := testutil.SamplePool("Soldiers")
	if !bytes.Contains(data, unknown) {
		t.Fatal("fixture does not contain the unknown property")
	}

	file, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	encoded, err := Encode(file)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if bytes.Index(encoded, unknown) != bytes.Index(data, unknown) {
		t.Error("unknown property moved or changed during the round trip")
	}
}

func TestEncodeInvalidTree(t *testing.T) {
	tests := []struct {
		name     string
		property Property
	}{
		{
			name:     "type does not match value",
			property: Property{Name: "iGender", Type: TypeString, Value: Int(1)},
		},
		{
			name:     "missing value",
			property: Property{Name: "iGender", Type: TypeInt},
		},
		{
			name:     "unsupported type",
			property: Property{Name: "Health", Type: Type(42), Value: Int(1)},
		},
		{
			name:     "sentinel name",
			property: NewProperty(SentinelName, Int(1)),
		},
		{
			name:     "header section outside the pool",
			property: NewProperty("ModTags", &Array{Headed: true}),
		},
		{
			name:     "pool without header section",
			property: NewProperty(PoolPropertyName, &Array{Size: 4}),
		},
		{
			name: "nested mismatch",
			property: NewProperty("kAppearance", &Struct{
				TypeName:   "TAppearance",
				Properties: []Property{{Name: "iGender", Type: TypeBool, Value: Int(1)}},
			}),
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			property := test.property
			_, err := Encode(&File{Properties: []*Property{&property}})
			if !errors.Is(err, ErrInvalidTree) {
				t.Errorf("Encode error = %v, want ErrInvalidTree", err)
			}
		})
	}
}

func TestParseType(t *testing.T) {
	for _, propertyType := range []Type{TypeBool, TypeInt, TypeString, TypeName, TypeStruct, TypeArray} {
		parsed, err := ParseType(propertyType.WireName())
		if err != nil {
			t.Errorf("ParseType(%q): %v", propertyType.WireName(), err)
			continue
		}
		if parsed != propertyType {
			t.Errorf("ParseType(%q) = %s, want %s", propertyType.WireName(), parsed, propertyType)
		}
	}

	_, err := ParseType("ByteProperty")
	var unsupported *UnsupportedTypeError
	if !errors.As(err, &unsupported) || unsupported.Name != "ByteProperty" {
		t.Errorf("ParseType(ByteProperty) error = %v, want *UnsupportedTypeError", err)
	}
}

func TestWriteFileAndReadFile(t *testing.T) {
	data := testutil.SamplePool("Soldiers")
	source := testutil.TempFile(t, "Soldiers.bin", data)

	file, err := ReadFile(source)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}

	destination := filepath.Join(t.TempDir(), "Copy.bin")
	if err := WriteFile(destination, file); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if written := testutil.ReadFile(t, destination); !bytes.Equal(written, data) {
		t.Error("written file differs from the source")
	}

	leftovers, err := filepath.Glob(filepath.Join(filepath.Dir(destination), ".poolkit-*"))
	if err != nil {
		t.Fatalf("Glob: %v", err)
	}
	if len(leftovers) != 0 {
		t.Errorf("temporary files left behind: %v", leftovers)
	}
}

func TestWriteFileInvalidTreeLeavesOriginal(t *testing.T) {
	data := testutil.SamplePool("Soldiers")
	path := testutil.TempFile(t, "Soldiers.bin", data)

	invalid := &File{Properties: []*Property{{Name: "Broken", Type: TypeInt, Value: String("x")}}}
	if err := WriteFile(path, invalid); err == nil {
		t.Fatal("WriteFile succeeded with an invalid tree")
	}
	if current, _ := os.ReadFile(path); !bytes.Equal(current, data) {
		t.Error("original file was modified")
	}
}

func TestConcurrentDecode(t *testing.T) {
	// Decoders share nothing, so independent files decode in parallel.
	inputs := [][]byte{
		testutil.SamplePool("Alpha"),
		testutil.SamplePool("Bravo"),
		testutil.SamplePool("Charlie"),
		testutil.SamplePool("Delta"),
	}

	type result struct {
		index int
		data  []byte
		err   error
	}
	results := make(chan result, len(inputs))
	for i, input := range inputs {
		go func() {
			file, err := Decode(input)
			if err != nil {
				results <- result{index: i, err: err}
				return
			}
			encoded, err := Encode(file)
			results <- result{index: i, data: encoded, err: err}
		}()
	}

	for range inputs {
		got := testutil.RequireReceive(t, results, 5*time.Second, "waiting for decode results")
		if got.err != nil {
			t.Fatalf("input %d: %v", got.index, got.err)
		}
		if !bytes.Equal(got.data, inputs[got.index]) {
			t.Errorf("input %d did not round-trip", got.index)
		}
	}
}

func TestClone(t *testing.T) {
	file, err := Decode(testutil.SamplePool("Soldiers"))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	clone := file.Clone()
	if !reflect.DeepEqual(clone, file) {
		t.Fatal("clone differs from original")
	}

	pool, _ := clone.Find(PoolPropertyName)
	pool.Value.(*Array).Entries[0].Properties[0].Value = String("Changed")

	original, _ := file.Find(PoolPropertyName)
	if original.Value.(*Array).Entries[0].Properties[0].Value != String("Jane") {
		t.Error("mutating the clone changed the original")
	}
}

func TestEncodeListMatchesEntryBytes(t *testing.T) {
	want := testutil.SampleReaper().Sentinel().Bytes()

	file, err := Decode(testutil.SamplePool("Soldiers"))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	pool, _ := file.Find(PoolPropertyName)
	entry := pool.Value.(*Array).Entries[1]

	got, err := EncodeList(entry.Properties)
	if err != nil {
		t.Fatalf("EncodeList: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("EncodeList differs from the entry's wire bytes (%d vs %d bytes)", len(got), len(want))
	}

	invalid := []Property{{Name: SentinelName, Type: TypeInt, Value: Int(1)}}
	if _, err := EncodeList(invalid); !errors.Is(err, ErrInvalidTree) {
		t.Errorf("EncodeList(invalid) error = %v, want ErrInvalidTree", err)
	}
}
