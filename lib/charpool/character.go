// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package charpool

import (
	"fmt"
	"strings"

	"github.com/bureau-foundation/poolkit/lib/digest"
	"github.com/bureau-foundation/poolkit/lib/propbag"
)

// DefaultAppearanceType is the struct type name given to an appearance
// struct created by [Character.Set].
const DefaultAppearanceType = "TAppearance"

// Entry is one field of a character and its value.
type Entry struct {
	Field Field
	Value propbag.Value
}

// Character is one entry of the character pool array. Top-level
// properties keep their file order. The appearance struct, when
// present, occupies a single slot in that order; its children are kept
// separately, also in file order.
type Character struct {
	// entries holds the top-level properties. The slot for the
	// appearance struct has Field == Appearance and a nil Value.
	entries []Entry

	appearance     []Entry
	appearanceType string
	hasAppearance  bool
}

// NewCharacter returns a character with no properties.
func NewCharacter() *Character {
	return &Character{}
}

// NewCharacterFromProperties maps the properties of one pool entry.
// The first struct-typed kAppearance property becomes the appearance;
// any later duplicate is kept as an unknown property.
func NewCharacterFromProperties(properties []propbag.Property) *Character {
	character := &Character{entries: make([]Entry, 0, len(properties))}
	for _, property := range properties {
		field := lookupTopLevel(property.Name, property.Type)
		if field == Appearance && !character.hasAppearance {
			appearance := property.Value.(*propbag.Struct)
			character.hasAppearance = true
			character.appearanceType = appearance.TypeName
			character.appearance = make([]Entry, 0, len(appearance.Properties))
			for _, child := range appearance.Properties {
				character.appearance = append(character.appearance, Entry{
					Field: lookupAppearance(child.Name, child.Type),
					Value: child.Clone().Value,
				})
			}
			character.entries = append(character.entries, Entry{Field: Appearance})
			continue
		}
		if field == Appearance {
			field = NewUnknownField(property.Name, property.Type)
		}
		character.entries = append(character.entries, Entry{Field: field, Value: property.Clone().Value})
	}
	return character
}

// Get returns the value of a field. Appearance fields are read from the
// appearance struct. Getting [Appearance] returns a freshly built
// struct.
func (c *Character) Get(field Field) (propbag.Value, bool) {
	if field == Appearance {
		if !c.hasAppearance {
			return nil, false
		}
		return c.appearanceStruct(), true
	}
	if index := c.indexOf(field); index >= 0 {
		return c.entries[index].Value, true
	}
	if index := c.appearanceIndexOf(field); index >= 0 {
		return c.appearance[index].Value, true
	}
	return nil, false
}

// Set stores a value for a field, replacing any existing value in place
// or appending a new property. The value's type must match the field's
// type. Setting an appearance field on a character without an
// appearance struct creates one.
func (c *Character) Set(field Field, value propbag.Value) error {
	if field == nil {
		return fmt.Errorf("charpool: nil field")
	}
	if value == nil {
		return fmt.Errorf("charpool: nil value for %s", field.Name())
	}
	if value.Type() != field.Type() {
		return fmt.Errorf("charpool: %s holds %s values, got %s", field.Name(), field.Type(), value.Type())
	}
	if err := propbag.NewProperty(field.Name(), value).Validate(); err != nil {
		return fmt.Errorf("charpool: %w", err)
	}

	switch f := field.(type) {
	case CharacterField:
		if f == Appearance {
			c.setAppearanceStruct(value.(*propbag.Struct))
			return nil
		}
		c.setTopLevel(field, value)
	case AppearanceField:
		c.ensureAppearance()
		if index := c.appearanceIndexOf(field); index >= 0 {
			c.appearance[index].Value = value
		} else {
			c.appearance = append(c.appearance, Entry{Field: field, Value: value})
		}
	case UnknownField:
		if index := c.appearanceIndexOf(field); index >= 0 && c.indexOf(field) < 0 {
			c.appearance[index].Value = value
			return nil
		}
		c.setTopLevel(field, value)
	}
	return nil
}

// Delete removes a field. It reports whether anything was removed.
// Deleting [Appearance] removes the whole appearance struct.
func (c *Character) Delete(field Field) bool {
	if field == Appearance {
		if !c.hasAppearance {
			return false
		}
		c.entries = removeEntry(c.entries, c.indexOf(Appearance))
		c.appearance = nil
		c.appearanceType = ""
		c.hasAppearance = false
		return true
	}
	if index := c.indexOf(field); index >= 0 {
		c.entries = removeEntry(c.entries, index)
		return true
	}
	if index := c.appearanceIndexOf(field); index >= 0 {
		c.appearance = removeEntry(c.appearance, index)
		return true
	}
	return false
}

// Entries returns a flattened view of the character: top-level entries
// in order, with the appearance children spliced in at the position of
// the appearance struct.
func (c *Character) Entries() []Entry {
	result := make([]Entry, 0, len(c.entries)+len(c.appearance))
	for _, entry := range c.entries {
		if entry.Field == Appearance && entry.Value == nil {
			result = append(result, c.appearance...)
			continue
		}
		result = append(result, entry)
	}
	return result
}

// TopLevel returns the entries outside the appearance struct, in file
// order.
func (c *Character) TopLevel() []Entry {
	result := make([]Entry, 0, len(c.entries))
	for _, entry := range c.entries {
		if entry.Field == Appearance && entry.Value == nil {
			continue
		}
		result = append(result, entry)
	}
	return result
}

// AppearanceEntries returns the children of the appearance struct, in
// file order.
func (c *Character) AppearanceEntries() []Entry {
	return append([]Entry(nil), c.appearance...)
}

// Unknown returns the entries whose fields are not in the registry,
// top-level first, then those inside the appearance struct.
func (c *Character) Unknown() []Entry {
	var result []Entry
	for _, entry := range c.Entries() {
		if _, ok := entry.Field.(UnknownField); ok {
			result = append(result, entry)
		}
	}
	return result
}

// AppearanceType returns the struct type name of the appearance struct.
func (c *Character) AppearanceType() (string, bool) {
	return c.appearanceType, c.hasAppearance
}

// Properties rebuilds the property list of the character, re-nesting
// appearance fields under the appearance struct. The result shares no
// memory with the character.
func (c *Character) Properties() []propbag.Property {
	properties := make([]propbag.Property, 0, len(c.entries))
	for _, entry := range c.entries {
		if entry.Field == Appearance && entry.Value == nil {
			properties = append(properties, propbag.NewProperty(Appearance.Name(), c.appearanceStruct()))
			continue
		}
		properties = append(properties, propbag.NewProperty(entry.Field.Name(), entry.Value).Clone())
	}
	return properties
}

// Digest returns the content digest of the character's encoded
// properties. Two characters with the same digest are byte-identical
// pool entries.
func (c *Character) Digest() (digest.Hash, error) {
	data, err := propbag.EncodeList(c.Properties())
	if err != nil {
		return digest.Hash{}, err
	}
	return digest.Character(data), nil
}

// Clone returns a deep copy of the character.
func (c *Character) Clone() *Character {
	return NewCharacterFromProperties(c.Properties())
}

func (c *Character) appearanceStruct() *propbag.Struct {
	children := make([]propbag.Property, 0, len(c.appearance))
	for _, entry := range c.appearance {
		children = append(children, propbag.NewProperty(entry.Field.Name(), entry.Value).Clone())
	}
	return &propbag.Struct{TypeName: c.appearanceType, Properties: children}
}

func (c *Character) setAppearanceStruct(value *propbag.Struct) {
	c.ensureAppearance()
	c.appearanceType = value.TypeName
	c.appearance = make([]Entry, 0, len(value.Properties))
	for _, child := range value.Properties {
		c.appearance = append(c.appearance, Entry{
			Field: lookupAppearance(child.Name, child.Type),
			Value: child.Clone().Value,
		})
	}
}

func (c *Character) ensureAppearance() {
	if c.hasAppearance {
		return
	}
	c.hasAppearance = true
	c.appearanceType = DefaultAppearanceType
	c.entries = append(c.entries, Entry{Field: Appearance})
}

func (c *Character) setTopLevel(field Field, value propbag.Value) {
	if index := c.indexOf(field); index >= 0 {
		c.entries[index].Value = value
		return
	}
	c.entries = append(c.entries, Entry{Field: field, Value: value})
}

func (c *Character) indexOf(field Field) int {
	for i, entry := range c.entries {
		if entry.Field == field {
			return i
		}
	}
	return -1
}

func (c *Character) appearanceIndexOf(field Field) int {
	for i, entry := range c.appearance {
		if entry.Field == field {
			return i
		}
	}
	return -1
}

func removeEntry(entries []Entry, index int) []Entry {
	return append(entries[:index:index], entries[index+1:]...)
}

// Typed accessors.

// FirstName returns the first name, or "" when absent.
func (c *Character) FirstName() string { return c.stringField(FirstName) }

// LastName returns the last name, or "" when absent.
func (c *Character) LastName() string { return c.stringField(LastName) }

// Nickname returns the nickname without the single quotes the game
// stores around it.
func (c *Character) Nickname() string {
	nickname := c.stringField(Nickname)
	if len(nickname) > 2 && strings.HasPrefix(nickname, "'") && strings.HasSuffix(nickname, "'") {
		return nickname[1 : len(nickname)-1]
	}
	return nickname
}

// DisplayName joins first name, nickname and last name. An empty
// nickname is skipped.
func (c *Character) DisplayName() string {
	parts := []string{c.FirstName()}
	if nickname := c.stringField(Nickname); nickname != "" {
		parts = append(parts, nickname)
	}
	parts = append(parts, c.LastName())
	return strings.TrimSpace(strings.Join(parts, " "))
}

// Biography returns the background text.
func (c *Character) Biography() string { return c.stringField(Biography) }

// Template returns the character template name, e.g. "ReaperSoldier".
func (c *Character) Template() string { return c.nameField(Template) }

// SoldierClass returns the soldier class template name.
func (c *Character) SoldierClass() string { return c.nameField(SoldierClass) }

// Country returns the country name, e.g. "Country_USA".
func (c *Character) Country() string { return c.nameField(Country) }

// Gender returns the appearance gender.
func (c *Character) Gender() (SoldierGender, bool) {
	value, ok := c.intField(Gender)
	return SoldierGender(value), ok
}

// Race returns the appearance race.
func (c *Character) Race() (SoldierRace, bool) {
	value, ok := c.intField(Race)
	return SoldierRace(value), ok
}

// Personality returns the appearance attitude.
func (c *Character) Personality() (SoldierPersonality, bool) {
	value, ok := c.intField(Attitude)
	return SoldierPersonality(value), ok
}

func (c *Character) stringField(field Field) string {
	value, ok := c.Get(field)
	if !ok {
		return ""
	}
	s, _ := value.(propbag.String)
	return string(s)
}

func (c *Character) nameField(field Field) string {
	value, ok := c.Get(field)
	if !ok {
		return ""
	}
	n, _ := value.(propbag.Name)
	return n.Text
}

func (c *Character) intField(field Field) (int32, bool) {
	value, ok := c.Get(field)
	if !ok {
		return 0, false
	}
	i, ok := value.(propbag.Int)
	return int32(i), ok
}
