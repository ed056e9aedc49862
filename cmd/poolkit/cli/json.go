// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"encoding/json"
	"io"
	"reflect"
)

// JSONOutput adds --json to any parameter struct that embeds it:
//
//	type listParams struct {
//	    cli.ConfigParams
//	    cli.JSONOutput
//	}
//
// Run functions call [JSONOutput.EmitJSON] first and fall through to
// their text rendering when it reports false.
type JSONOutput struct {
	OutputJSON bool `json:"-" flag:"json" desc:"output as JSON"`
}

// EmitJSON writes result to w when --json is set and reports whether it
// did. A nil slice result is written as [] rather than null.
func (j *JSONOutput) EmitJSON(w io.Writer, result any) (bool, error) {
	if !j.OutputJSON {
		return false, nil
	}
	return true, WriteJSON(w, emptyIfNilSlice(result))
}

// WriteJSON writes value to w as two-space indented JSON.
func WriteJSON(w io.Writer, value any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}

func emptyIfNilSlice(value any) any {
	v := reflect.ValueOf(value)
	if v.Kind() != reflect.Slice || !v.IsNil() {
		return value
	}
	return reflect.MakeSlice(v.Type(), 0, 0).Interface()
}
