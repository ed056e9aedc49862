// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package pool

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bureau-foundation/poolkit/cmd/poolkit/cli"
	"github.com/bureau-foundation/poolkit/lib/backup"
	"github.com/bureau-foundation/poolkit/lib/charpool"
	"github.com/bureau-foundation/poolkit/lib/codec"
	"github.com/bureau-foundation/poolkit/lib/digest"
	"github.com/bureau-foundation/poolkit/lib/propbag"
	"github.com/bureau-foundation/poolkit/lib/testutil"
)

func samplePath(t *testing.T) string {
	t.Helper()
	return testutil.TempFile(t, "Sample.bin", testutil.SamplePool("Sample"))
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func jsonOutput() cli.JSONOutput {
	return cli.JSONOutput{OutputJSON: true}
}

func TestListJSON(t *testing.T) {
	var output bytes.Buffer
	if err := runList(&output, samplePath(t), jsonOutput()); err != nil {
		t.Fatalf("runList: %v", err)
	}

	var result listResult
	if err := json.Unmarshal(output.Bytes(), &result); err != nil {
		t.Fatalf("decoding output: %v\n%s", err, output.String())
	}
	if result.FileName != "Sample" {
		t.Errorf("FileName = %q", result.FileName)
	}
	if len(result.Characters) != 2 {
		t.Fatalf("got %d characters, want 2", len(result.Characters))
	}
	soldier, reaper := result.Characters[0], result.Characters[1]
	if soldier.Name != "Jane Kelly" || soldier.Template != "Soldier" || soldier.Gender != "Female" || soldier.Unknown != 2 {
		t.Errorf("soldier = %+v", soldier)
	}
	if reaper.Index != 1 || reaper.Template != "Reaper" || reaper.Class != "" {
		t.Errorf("reaper = %+v", reaper)
	}
	if len(soldier.Digest) != 12 || soldier.Digest == reaper.Digest {
		t.Errorf("digests = %q, %q", soldier.Digest, reaper.Digest)
	}
}

func TestListText(t *testing.T) {
	var output bytes.Buffer
	if err := runList(&output, samplePath(t), cli.JSONOutput{}); err != nil {
		t.Fatalf("runList: %v", err)
	}
	text := output.String()
	for _, want := range []string{"NAME", "Jane Kelly", "Elena 'Shade' Dragunova", "Reaper", "Country_Mexico"} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %q:\n%s", want, text)
		}
	}
}

func TestShow(t *testing.T) {
	path := samplePath(t)

	var output bytes.Buffer
	if err := runShow(&output, path, "0", jsonOutput()); err != nil {
		t.Fatalf("runShow: %v", err)
	}
	var result struct {
		Name           string `json:"name"`
		AppearanceType string `json:"appearance_type"`
		Fields         []struct {
			Key        string `json:"key"`
			Appearance bool   `json:"appearance"`
			Unknown    bool   `json:"unknown"`
			Property   struct {
				Name string `json:"name"`
				Type string `json:"type"`
				Int  *int32 `json:"int"`
			} `json:"property"`
		} `json:"fields"`
	}
	if err := json.Unmarshal(output.Bytes(), &result); err != nil {
		t.Fatalf("decoding output: %v\n%s", err, output.String())
	}
	if result.Name != "Jane Kelly" || result.AppearanceType != "TAppearance" {
		t.Errorf("header = %q, %q", result.Name, result.AppearanceType)
	}
	if len(result.Fields) != 19 {
		t.Fatalf("got %d fields, want 19", len(result.Fields))
	}
	var sawGender, sawUnknown bool
	for _, field := range result.Fields {
		if field.Key == "gender" {
			sawGender = true
			if !field.Appearance || field.Property.Type != "int" || field.Property.Int == nil || *field.Property.Int != 2 {
				t.Errorf("gender field = %+v", field)
			}
		}
		if field.Property.Name == "ExtraModField" {
			sawUnknown = true
			if !field.Unknown || field.Key != "" || field.Appearance {
				t.Errorf("ExtraModField = %+v", field)
			}
		}
	}
	if !sawGender || !sawUnknown {
		t.Errorf("missing fields: gender=%v unknown=%v", sawGender, sawUnknown)
	}

	output.Reset()
	if err := runShow(&output, path, "0", cli.JSONOutput{}); err != nil {
		t.Fatalf("runShow text: %v", err)
	}
	text := output.String()
	for _, want := range []string{"#0 Jane Kelly", "Appearance", "2 (Female)", "4 (Happy Go Lucky)", "ExtraModField", "(unknown)"} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %q:\n%s", want, text)
		}
	}
}

func TestShowIndexErrors(t *testing.T) {
	path := samplePath(t)
	var output bytes.Buffer
	if err := runShow(&output, path, "two", cli.JSONOutput{}); err == nil {
		t.Error("non-numeric index accepted")
	}
	if err := runShow(&output, path, "2", cli.JSONOutput{}); err == nil {
		t.Error("out-of-range index accepted")
	}
}

func TestSetWritesPoolAndBackup(t *testing.T) {
	path := samplePath(t)
	original := testutil.ReadFile(t, path)
	store := &backup.Store{Dir: filepath.Join(t.TempDir(), "backups"), Compression: backup.CompressionZstd}

	err := runSet(discardLogger(), path, "0",
		[]string{"first-name=Janet", "attitude=twitchy", "gender=male", "allow-vip=true"},
		[]string{"biography"},
		writeTarget{Path: path, Store: store})
	if err != nil {
		t.Fatalf("runSet: %v", err)
	}

	pool, err := charpool.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	character := pool.Characters[0]
	if character.FirstName() != "Janet" {
		t.Errorf("FirstName = %q", character.FirstName())
	}
	if personality, _ := character.Personality(); personality != charpool.Twitchy {
		t.Errorf("Personality = %v", personality)
	}
	if gender, _ := character.Gender(); gender != charpool.Male {
		t.Errorf("Gender = %v", gender)
	}
	if value, _ := character.Get(charpool.AllowedVIP); value != propbag.Bool(true) {
		t.Errorf("AllowedVIP = %#v", value)
	}
	if _, ok := character.Get(charpool.Biography); ok {
		t.Error("biography still present after --unset")
	}
	if len(character.Unknown()) != 2 {
		t.Errorf("unknown fields lost: %d left", len(character.Unknown()))
	}
	if got := pool.Characters[1].DisplayName(); got != "Elena 'Shade' Dragunova" {
		t.Errorf("second character changed: %q", got)
	}

	records, err := store.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d backups, want 1", len(records))
	}
	if records[0].Digest != digest.Pool(original) {
		t.Error("backup digest does not match the file before the edit")
	}
}

func TestSetToOutputLeavesSource(t *testing.T) {
	path := samplePath(t)
	original := testutil.ReadFile(t, path)
	output := filepath.Join(t.TempDir(), "edited.bin")

	if err := runSet(discardLogger(), path, "1", []string{"nickname='Ghost'"}, nil, writeTarget{Path: output}); err != nil {
		t.Fatalf("runSet: %v", err)
	}
	if !bytes.Equal(testutil.ReadFile(t, path), original) {
		t.Error("source pool modified when --output was given")
	}
	pool, err := charpool.Open(output)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if got := pool.Characters[1].Nickname(); got != "Ghost" {
		t.Errorf("Nickname = %q", got)
	}
}

func TestSetRejectsBadAssignments(t *testing.T) {
	path := samplePath(t)
	tests := []struct {
		name       string
		assignment string
		wantText   string
	}{
		{"no equals", "first-name", "not key=value"},
		{"misspelled key", "frist-name=Jane", `did you mean "first-name"`},
		{"struct field", "appearance=x", "struct"},
		{"bad bool", "allow-vip=maybe", "not a boolean"},
		{"bad int", "race=purple", "unknown race"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := runSet(discardLogger(), path, "0", []string{test.assignment}, nil, writeTarget{Path: path})
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), test.wantText) {
				t.Errorf("error %q does not mention %q", err, test.wantText)
			}
		})
	}
}

func TestParseFieldValueKeepsNameNumber(t *testing.T) {
	value, err := parseFieldValue(charpool.Head, "Head_B", propbag.Name{Text: "Head_A", Number: 7})
	if err != nil {
		t.Fatalf("parseFieldValue: %v", err)
	}
	if value != (propbag.Name{Text: "Head_B", Number: 7}) {
		t.Errorf("value = %#v", value)
	}
}

func TestRemove(t *testing.T) {
	path := samplePath(t)
	if err := runRemove(discardLogger(), path, "0", writeTarget{Path: path}); err != nil {
		t.Fatalf("runRemove: %v", err)
	}
	pool, err := charpool.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if len(pool.Characters) != 1 || pool.Characters[0].FirstName() != "Elena" {
		t.Errorf("after remove: %d characters", len(pool.Characters))
	}
	if pool.FileName != "Sample" {
		t.Errorf("FileName = %q", pool.FileName)
	}
}

func TestVerify(t *testing.T) {
	good := samplePath(t)
	data := testutil.SamplePool("Sample")
	truncated := testutil.TempFile(t, "Truncated.bin", data[:len(data)-5])

	results := verifyPools([]string{good, truncated})
	if !results[0].ok() {
		t.Errorf("sample pool failed: %+v", results[0].Checks)
	}
	if results[0].Characters != 2 || results[0].Digest != digest.Pool(data) {
		t.Errorf("sample result = %+v", results[0])
	}
	if results[1].ok() {
		t.Error("truncated pool passed")
	}

	var output bytes.Buffer
	err := reportVerify(&output, results, cli.JSONOutput{})
	var exitErr *cli.ExitError
	if !errors.As(err, &exitErr) || exitErr.Code != 1 {
		t.Fatalf("reportVerify error = %v, want exit code 1", err)
	}
	text := output.String()
	if !strings.Contains(text, "OK   "+good) || !strings.Contains(text, "FAIL "+truncated) {
		t.Errorf("report:\n%s", text)
	}

	output.Reset()
	if err := reportVerify(&output, results[:1], jsonOutput()); err != nil {
		t.Errorf("reportVerify on a passing pool: %v", err)
	}
	var decoded []struct {
		Digest string `json:"digest"`
		Checks []struct {
			Name string `json:"name"`
			OK   bool   `json:"ok"`
		} `json:"checks"`
	}
	if err := json.Unmarshal(output.Bytes(), &decoded); err != nil {
		t.Fatalf("decoding JSON: %v", err)
	}
	if len(decoded) != 1 || len(decoded[0].Checks) != 3 || decoded[0].Digest != digest.Pool(data).String() {
		t.Errorf("JSON report = %+v", decoded)
	}
}

func TestVerifyMissingFile(t *testing.T) {
	result := verifyPool(filepath.Join(t.TempDir(), "missing.bin"))
	if result.ok() || result.Checks[0].Name != "read" {
		t.Errorf("result = %+v", result)
	}
}

func TestDump(t *testing.T) {
	path := samplePath(t)

	var output bytes.Buffer
	if err := runDump(&output, path, "json"); err != nil {
		t.Fatalf("runDump json: %v", err)
	}
	var nodes []map[string]any
	if err := json.Unmarshal(output.Bytes(), &nodes); err != nil {
		t.Fatalf("decoding JSON: %v", err)
	}
	if len(nodes) != 1 || nodes[0]["name"] != "CharacterPool" || nodes[0]["type"] != "array" {
		t.Fatalf("top level = %v", nodes)
	}
	entries, _ := nodes[0]["entries"].([]any)
	if len(entries) != 2 {
		t.Errorf("got %d entries, want 2", len(entries))
	}
	headers, _ := nodes[0]["headers"].([]any)
	if len(headers) != 1 {
		t.Errorf("got %d headers, want 1", len(headers))
	}

	output.Reset()
	if err := runDump(&output, path, "cbor"); err != nil {
		t.Fatalf("runDump cbor: %v", err)
	}
	var decoded []map[string]any
	if err := codec.Unmarshal(output.Bytes(), &decoded); err != nil {
		t.Fatalf("decoding CBOR: %v", err)
	}
	if len(decoded) != 1 || decoded[0]["name"] != "CharacterPool" {
		t.Errorf("CBOR top level = %v", decoded)
	}

	output.Reset()
	if err := runDump(&output, path, "diag"); err != nil {
		t.Fatalf("runDump diag: %v", err)
	}
	if !strings.Contains(output.String(), `"CharacterPool"`) || !strings.HasPrefix(output.String(), "[{") {
		t.Errorf("diagnostic output = %q", output.String())
	}

	if err := runDump(&output, path, "yaml"); err == nil {
		t.Error("unknown format accepted")
	}
}

func TestDumpKeepsTopLevelSentinel(t *testing.T) {
	data := testutil.NewWire().
		Magic().
		IntProperty("Version", 3).
		Sentinel().
		PoolProperty(4, testutil.NewWire()).
		Bytes()
	path := testutil.TempFile(t, "sentinel.bin", data)

	var output bytes.Buffer
	if err := runDump(&output, path, ""); err != nil {
		t.Fatalf("runDump: %v", err)
	}
	var nodes []map[string]any
	if err := json.Unmarshal(output.Bytes(), &nodes); err != nil {
		t.Fatalf("decoding JSON: %v", err)
	}
	if len(nodes) != 3 || nodes[1] != nil {
		t.Errorf("nodes = %v, want a null between two properties", nodes)
	}
}

func TestFields(t *testing.T) {
	var output bytes.Buffer
	if err := runFields(&output, jsonOutput()); err != nil {
		t.Fatalf("runFields: %v", err)
	}
	var fields []struct {
		Key        string `json:"key"`
		Property   string `json:"property"`
		Type       string `json:"type"`
		Appearance bool   `json:"appearance"`
	}
	if err := json.Unmarshal(output.Bytes(), &fields); err != nil {
		t.Fatalf("decoding JSON: %v", err)
	}
	want := len(charpool.CharacterFields()) + len(charpool.AppearanceFields())
	if len(fields) != want {
		t.Fatalf("got %d fields, want %d", len(fields), want)
	}
	if fields[0].Key != "first-name" || fields[0].Property != "strFirstName" || fields[0].Type != "string" {
		t.Errorf("first field = %+v", fields[0])
	}

	output.Reset()
	if err := runFields(&output, cli.JSONOutput{}); err != nil {
		t.Fatalf("runFields text: %v", err)
	}
	if !strings.Contains(output.String(), "iAttitude") {
		t.Errorf("text output missing iAttitude:\n%s", output.String())
	}
}

func TestWritePoolSkipsBackupForNewFile(t *testing.T) {
	store := &backup.Store{Dir: filepath.Join(t.TempDir(), "backups")}
	destination := filepath.Join(t.TempDir(), "New.bin")

	pool := charpool.NewPool("New")
	if err := writePool(discardLogger(), pool, writeTarget{Path: destination, Store: store}); err != nil {
		t.Fatalf("writePool: %v", err)
	}
	if _, err := os.Stat(destination); err != nil {
		t.Errorf("pool not written: %v", err)
	}
	records, err := store.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("got %d backups for a file that did not exist", len(records))
	}
}

func TestCopyIntoNewAndExistingPool(t *testing.T) {
	source := samplePath(t)
	destination := filepath.Join(t.TempDir(), "Squad.bin")

	if err := runCopy(discardLogger(), source, "1", writeTarget{Path: destination}); err != nil {
		t.Fatalf("runCopy into new pool: %v", err)
	}
	if err := runCopy(discardLogger(), source, "0", writeTarget{Path: destination}); err != nil {
		t.Fatalf("runCopy into existing pool: %v", err)
	}

	pool, err := charpool.Open(destination)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if pool.FileName != "Squad" {
		t.Errorf("FileName = %q, want Squad", pool.FileName)
	}
	if len(pool.Characters) != 2 {
		t.Fatalf("got %d characters, want 2", len(pool.Characters))
	}
	if pool.Characters[0].FirstName() != "Elena" || pool.Characters[1].FirstName() != "Jane" {
		t.Errorf("order = %q, %q", pool.Characters[0].FirstName(), pool.Characters[1].FirstName())
	}

	original, err := charpool.Open(source)
	if err != nil {
		t.Fatalf("Open source: %v", err)
	}
	want, _ := original.Characters[0].Digest()
	got, _ := pool.Characters[1].Digest()
	if got != want {
		t.Error("copied character is not byte-identical to the source entry")
	}
}
