// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package pool

import (
	"github.com/bureau-foundation/poolkit/lib/propbag"
)

// node mirrors a property for JSON and CBOR output. Exactly one group
// of value fields is set, chosen by Type.
type node struct {
	Name string       `json:"name"            cbor:"name"`
	Type propbag.Type `json:"type"            cbor:"type"`

	Bool   *bool   `json:"bool,omitempty"   cbor:"bool,omitempty"`
	Int    *int32  `json:"int,omitempty"    cbor:"int,omitempty"`
	String *string `json:"string,omitempty" cbor:"string,omitempty"`
	Number *int32  `json:"number,omitempty" cbor:"number,omitempty"`

	StructType string  `json:"struct_type,omitempty" cbor:"struct_type,omitempty"`
	Properties []*node `json:"properties,omitempty"  cbor:"properties,omitempty"`

	Size    *int32    `json:"size,omitempty"    cbor:"size,omitempty"`
	Headers []*node   `json:"headers,omitempty" cbor:"headers,omitempty"`
	Entries [][]*node `json:"entries,omitempty" cbor:"entries,omitempty"`
}

// newNode mirrors property. A nil property (a sentinel kept in the
// top-level list) mirrors to nil.
func newNode(property *propbag.Property) *node {
	if property == nil {
		return nil
	}
	n := &node{Name: property.Name, Type: property.Type}
	switch value := property.Value.(type) {
	case propbag.Bool:
		b := bool(value)
		n.Bool = &b
	case propbag.Int:
		i := int32(value)
		n.Int = &i
	case propbag.String:
		s := string(value)
		n.String = &s
	case propbag.Name:
		text, number := value.Text, value.Number
		n.String = &text
		n.Number = &number
	case *propbag.Struct:
		n.StructType = value.TypeName
		n.Properties = newNodes(value.Properties)
	case *propbag.Array:
		size := value.Size
		n.Size = &size
		if value.Headed {
			n.Headers = newNodes(value.Headers)
		}
		n.Entries = make([][]*node, 0, len(value.Entries))
		for _, entry := range value.Entries {
			n.Entries = append(n.Entries, newNodes(entry.Properties))
		}
	}
	return n
}

func newNodes(properties []propbag.Property) []*node {
	nodes := make([]*node, 0, len(properties))
	for i := range properties {
		nodes = append(nodes, newNode(&properties[i]))
	}
	return nodes
}

func fileNodes(file *propbag.File) []*node {
	nodes := make([]*node, 0, len(file.Properties))
	for _, property := range file.Properties {
		nodes = append(nodes, newNode(property))
	}
	return nodes
}
