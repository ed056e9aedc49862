// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package digest

import (
	"strings"
	"testing"
)

func TestDomainsAreSeparated(t *testing.T) {
	input := []byte("identical input for both domains")
	if Pool(input) == Character(input) {
		t.Error("pool and character domains produced the same hash")
	}
}

func TestDeterministic(t *testing.T) {
	input := []byte("pool bytes")
	if Pool(input) != Pool(input) {
		t.Error("Pool is not deterministic")
	}
	if Pool(input) == Pool([]byte("pool bytez")) {
		t.Error("different inputs produced the same hash")
	}
}

func TestDomainKeysArePadded(t *testing.T) {
	keys := map[string]domainKey{
		"poolkit.pool":      poolDomainKey,
		"poolkit.character": characterDomainKey,
	}
	for name, key := range keys {
		if got := strings.TrimRight(string(key[:]), "\x00"); got != name {
			t.Errorf("key %q decodes to %q", name, got)
		}
	}
}

func TestFormatAndParse(t *testing.T) {
	hash := Pool([]byte("round trip"))
	text := hash.String()
	if len(text) != 64 {
		t.Fatalf("String() length = %d, want 64", len(text))
	}
	if !strings.HasPrefix(text, hash.Short()) || len(hash.Short()) != 12 {
		t.Errorf("Short() = %q is not a 12-character prefix of %q", hash.Short(), text)
	}

	parsed, err := Parse(text)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if parsed != hash {
		t.Error("Parse(String()) did not return the original hash")
	}

	var unmarshaled Hash
	if err := unmarshaled.UnmarshalText([]byte(text)); err != nil || unmarshaled != hash {
		t.Errorf("UnmarshalText = %v, %v", unmarshaled, err)
	}

	for _, bad := range []string{"zz", "abcd", strings.Repeat("0", 66)} {
		if _, err := Parse(bad); err == nil {
			t.Errorf("Parse(%q) succeeded", bad)
		}
	}
	if !(Hash{}).IsZero() || hash.IsZero() {
		t.Error("IsZero misreports")
	}
}
