// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package pool

import (
	"fmt"
	"strconv"

	"github.com/bureau-foundation/poolkit/lib/charpool"
	"github.com/bureau-foundation/poolkit/lib/propbag"
)

// formatValue renders a property value for text output.
func formatValue(value propbag.Value) string {
	switch v := value.(type) {
	case propbag.Bool:
		return strconv.FormatBool(bool(v))
	case propbag.Int:
		return strconv.FormatInt(int64(v), 10)
	case propbag.String:
		return string(v)
	case propbag.Name:
		if v.Number != 0 {
			return fmt.Sprintf("%s #%d", v.Text, v.Number)
		}
		return v.Text
	case *propbag.Struct:
		return fmt.Sprintf("%s{%d properties}", v.TypeName, len(v.Properties))
	case *propbag.Array:
		return fmt.Sprintf("[%d entries]", len(v.Entries))
	default:
		return fmt.Sprintf("%v", value)
	}
}

// formatFieldValue adds the decoded meaning of enumerated fields, e.g.
// "2 (Female)".
func formatFieldValue(field charpool.Field, value propbag.Value) string {
	text := formatValue(value)
	number, ok := value.(propbag.Int)
	if ok {
		switch field {
		case charpool.Gender:
			return text + " (" + charpool.SoldierGender(number).String() + ")"
		case charpool.Race:
			return text + " (" + charpool.SoldierRace(number).String() + ")"
		case charpool.Attitude:
			return text + " (" + charpool.SoldierPersonality(number).String() + ")"
		}
	}
	if field == charpool.Template {
		if label := charpool.TemplateLabel(text); label != text {
			return text + " (" + label + ")"
		}
	}
	return text
}

// fieldLabel returns the human label of a known field, or the property
// name of an unknown one.
func fieldLabel(field charpool.Field) string {
	switch f := field.(type) {
	case charpool.CharacterField:
		return f.Label()
	case charpool.AppearanceField:
		return f.Label()
	default:
		return field.Name()
	}
}

// fieldKey returns the CLI key of a known field, or "" for unknown ones.
func fieldKey(field charpool.Field) string {
	switch f := field.(type) {
	case charpool.CharacterField:
		return f.Key()
	case charpool.AppearanceField:
		return f.Key()
	default:
		return ""
	}
}

func isUnknown(field charpool.Field) bool {
	_, ok := field.(charpool.UnknownField)
	return ok
}
