// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package charpool

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bureau-foundation/poolkit/lib/propbag"
)

// PoolFileNameProperty is the header property of the character pool
// array naming the pool inside the game.
const PoolFileNameProperty = "PoolFileName"

// poolArraySize is the opaque array size field written for pools that
// were not decoded from a file.
const poolArraySize = 4

// ErrNoCharacterPool is returned when a decoded file contains no
// character pool array.
var ErrNoCharacterPool = errors.New("no CharacterPool array in file")

// Pool is a character pool: the characters of the CharacterPool array
// plus enough of the source tree to write the file back unchanged.
type Pool struct {
	// Name is the display name, normally the base name of the file.
	Name string

	// FileName is the value of the PoolFileName header, or the name
	// without its extension when the file has none. It is written back
	// on encode only when it differs from what was read.
	FileName string

	// Path is the file the pool was opened from, if any.
	Path string

	Characters []*Character

	// source is the decoded file. The pool property inside it is
	// replaced on encode; everything else is written as read.
	source *propbag.File

	// sourceFileName is FileName as read from source.
	sourceFileName string
}

// NewPool returns an empty pool with the given name. The pool file name
// header defaults to the name.
func NewPool(name string) *Pool {
	return &Pool{Name: name, FileName: name}
}

// Open reads and maps the pool file at path.
func Open(path string) (*Pool, error) {
	file, err := propbag.ReadFile(path)
	if err != nil {
		return nil, err
	}
	pool, err := FromFile(filepath.Base(path), file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	pool.Path = path
	return pool, nil
}

// Read decodes pool bytes and maps them. Name becomes the pool's
// display name and the fallback file name.
func Read(name string, data []byte) (*Pool, error) {
	file, err := propbag.Decode(data)
	if err != nil {
		return nil, err
	}
	return FromFile(name, file)
}

// FromFile maps a decoded file. The pool keeps its own copy of the
// tree; later changes to file do not affect it.
func FromFile(name string, file *propbag.File) (*Pool, error) {
	property, ok := file.Find(propbag.PoolPropertyName)
	if !ok {
		return nil, ErrNoCharacterPool
	}
	array, ok := property.Value.(*propbag.Array)
	if !ok {
		return nil, fmt.Errorf("%w: %s is a %s property", ErrNoCharacterPool, propbag.PoolPropertyName, property.Type)
	}

	pool := &Pool{
		Name:       name,
		FileName:   strings.TrimSuffix(name, filepath.Ext(name)),
		Characters: make([]*Character, 0, len(array.Entries)),
		source:     file.Clone(),
	}
	if header, ok := array.Header(PoolFileNameProperty); ok {
		if text, ok := displayText(header.Value); ok {
			pool.FileName = text
		}
	}
	pool.sourceFileName = pool.FileName
	for _, entry := range array.Entries {
		pool.Characters = append(pool.Characters, NewCharacterFromProperties(entry.Properties))
	}
	return pool, nil
}

// File builds the property tree for the pool. Top-level properties
// other than the pool array, the array's size field and its headers
// are taken from the source file. The PoolFileName header is rewritten
// only when FileName changed, and is added to a source without one
// only then.
func (p *Pool) File() *propbag.File {
	array := &propbag.Array{Size: poolArraySize, Headed: true}
	if p.source == nil {
		array.Headers = []propbag.Property{p.fileNameHeader(propbag.String(""))}
		array.Entries = p.entries()
		property := propbag.NewProperty(propbag.PoolPropertyName, array)
		return &propbag.File{Properties: []*propbag.Property{&property}}
	}

	file := p.source.Clone()
	property, _ := file.Find(propbag.PoolPropertyName)
	source := property.Value.(*propbag.Array)
	array.Size = source.Size
	array.Headers = source.Headers
	replaced := false
	for i := range array.Headers {
		header := &array.Headers[i]
		if header.Name == PoolFileNameProperty && (header.Type == propbag.TypeString || header.Type == propbag.TypeName) {
			if text, _ := displayText(header.Value); text != p.FileName {
				*header = p.fileNameHeader(header.Value)
			}
			replaced = true
			break
		}
	}
	if !replaced && p.FileName != p.sourceFileName {
		array.Headers = append([]propbag.Property{p.fileNameHeader(propbag.String(""))}, array.Headers...)
	}
	array.Entries = p.entries()
	property.Value = array
	return file
}

// Encode returns the pool file bytes.
func (p *Pool) Encode() ([]byte, error) {
	return propbag.Encode(p.File())
}

// Write encodes the pool and atomically replaces the file at path.
func (p *Pool) Write(path string) error {
	return propbag.WriteFile(path, p.File())
}

// Add appends a character and returns its index.
func (p *Pool) Add(character *Character) int {
	p.Characters = append(p.Characters, character)
	return len(p.Characters) - 1
}

// Remove deletes the character at index.
func (p *Pool) Remove(index int) error {
	if index < 0 || index >= len(p.Characters) {
		return fmt.Errorf("character index %d out of range [0, %d)", index, len(p.Characters))
	}
	p.Characters = append(p.Characters[:index], p.Characters[index+1:]...)
	return nil
}

// Character returns the character at index.
func (p *Pool) Character(index int) (*Character, error) {
	if index < 0 || index >= len(p.Characters) {
		return nil, fmt.Errorf("character index %d out of range [0, %d)", index, len(p.Characters))
	}
	return p.Characters[index], nil
}

func (p *Pool) entries() []propbag.Entry {
	if len(p.Characters) == 0 {
		return nil
	}
	entries := make([]propbag.Entry, 0, len(p.Characters))
	for _, character := range p.Characters {
		entries = append(entries, propbag.Entry{Properties: character.Properties()})
	}
	return entries
}

// fileNameHeader returns a PoolFileName header holding FileName, of the
// same type as previous. A Name keeps its number.
func (p *Pool) fileNameHeader(previous propbag.Value) propbag.Property {
	if name, ok := previous.(propbag.Name); ok {
		return propbag.NewProperty(PoolFileNameProperty, propbag.Name{Text: p.FileName, Number: name.Number})
	}
	return propbag.NewProperty(PoolFileNameProperty, propbag.String(p.FileName))
}

func displayText(value propbag.Value) (string, bool) {
	switch v := value.(type) {
	case propbag.String:
		return string(v), true
	case propbag.Name:
		return v.Text, true
	}
	return "", false
}
