// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package charpool

import (
	"strings"
	"testing"

	"github.com/bureau-foundation/poolkit/lib/digest"
	"github.com/bureau-foundation/poolkit/lib/propbag"
	"github.com/bureau-foundation/poolkit/lib/testutil"
)

func sampleSoldier(t *testing.T) *Character {
	t.Helper()
	pool, err := Read("sample.bin", testutil.SamplePool("Sample Pool"))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	return pool.Characters[0]
}

func TestCharacterTypedAccessors(t *testing.T) {
	character := sampleSoldier(t)

	if got := character.DisplayName(); got != "Jane Kelly" {
		t.Errorf("DisplayName = %q", got)
	}
	if got := character.Template(); got != "Soldier" {
		t.Errorf("Template = %q", got)
	}
	if got := character.SoldierClass(); got != "Ranger" {
		t.Errorf("SoldierClass = %q", got)
	}
	if got := character.Country(); got != "Country_Mexico" {
		t.Errorf("Country = %q", got)
	}
	if got := character.Biography(); got != "Born in Oaxaca." {
		t.Errorf("Biography = %q", got)
	}
	if gender, ok := character.Gender(); !ok || gender != Female {
		t.Errorf("Gender = %v, %v", gender, ok)
	}
	if race, ok := character.Race(); !ok || race != Hispanic {
		t.Errorf("Race = %v, %v", race, ok)
	}
	if personality, ok := character.Personality(); !ok || personality != HappyGoLucky {
		t.Errorf("Personality = %v, %v", personality, ok)
	}
	if typeName, ok := character.AppearanceType(); !ok || typeName != "TAppearance" {
		t.Errorf("AppearanceType = %q, %v", typeName, ok)
	}
}

func TestCharacterNickname(t *testing.T) {
	pool, err := Read("sample.bin", testutil.SamplePool("Sample Pool"))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	reaper := pool.Characters[1]
	if got := reaper.Nickname(); got != "Shade" {
		t.Errorf("Nickname = %q, want quotes stripped", got)
	}
	if got := reaper.DisplayName(); got != "Elena 'Shade' Dragunova" {
		t.Errorf("DisplayName = %q", got)
	}
	if _, ok := reaper.Race(); ok {
		t.Error("Race reported present on a character without iRace")
	}
}

func TestCharacterUnknownPropertiesKeepPosition(t *testing.T) {
	character := sampleSoldier(t)

	var names []string
	for _, entry := range character.Entries() {
		names = append(names, entry.Field.Name())
	}
	joined := strings.Join(names, ",")
	want := "strFirstName,strLastName,strNickName,m_SoldierClassTemplateName,CharacterTemplateName," +
		"ExtraModField,nmHead,iGender,iRace,nmHaircut,iAttitude,nmMysteryPart,bGhostPawn," +
		"Country,AllowedTypeSoldier,AllowedTypeVIP,AllowedTypeDarkVIP,PoolTimestamp,BackgroundText"
	if joined != want {
		t.Errorf("Entries order:\n got %s\nwant %s", joined, want)
	}

	unknown := character.Unknown()
	if len(unknown) != 2 {
		t.Fatalf("Unknown: got %d entries, want 2", len(unknown))
	}
	if unknown[0].Field != NewUnknownField("ExtraModField", propbag.TypeInt) || unknown[0].Value != propbag.Int(7) {
		t.Errorf("Unknown[0] = %v %#v", unknown[0].Field, unknown[0].Value)
	}
	if unknown[1].Value != (propbag.Name{Text: "Part_A", Number: 7}) {
		t.Errorf("Unknown[1] = %v %#v", unknown[1].Field, unknown[1].Value)
	}

	// Re-nesting puts the unknown top-level property back between the
	// template name and the appearance struct.
	properties := character.Properties()
	if properties[5].Name != "ExtraModField" || properties[6].Name != "kAppearance" {
		t.Errorf("Properties()[5:7] = %s, %s", properties[5].Name, properties[6].Name)
	}
	appearance := properties[6].Value.(*propbag.Struct)
	if _, ok := appearance.Find("nmMysteryPart"); !ok {
		t.Error("unknown appearance child dropped on re-nesting")
	}
}

func TestCharacterSet(t *testing.T) {
	character := sampleSoldier(t)

	if err := character.Set(FirstName, propbag.String("Ana")); err != nil {
		t.Fatalf("Set FirstName: %v", err)
	}
	if got := character.FirstName(); got != "Ana" {
		t.Errorf("FirstName = %q", got)
	}
	// Replaced in place, not appended.
	if got := character.Entries()[0].Field; got != FirstName {
		t.Errorf("first entry = %v, want strFirstName", got)
	}

	if err := character.Set(Race, propbag.Int(int32(EastAsian))); err != nil {
		t.Fatalf("Set Race: %v", err)
	}
	if race, _ := character.Race(); race != EastAsian {
		t.Errorf("Race = %v", race)
	}

	if err := character.Set(FirstName, propbag.Int(3)); err == nil {
		t.Error("Set accepted a value of the wrong type")
	}
	if err := character.Set(Gender, nil); err == nil {
		t.Error("Set accepted a nil value")
	}
}

func TestCharacterSetCreatesAppearance(t *testing.T) {
	character := NewCharacter()
	if err := character.Set(FirstName, propbag.String("Ana")); err != nil {
		t.Fatal(err)
	}
	if err := character.Set(Gender, propbag.Int(int32(Male))); err != nil {
		t.Fatal(err)
	}

	typeName, ok := character.AppearanceType()
	if !ok || typeName != DefaultAppearanceType {
		t.Fatalf("AppearanceType = %q, %v", typeName, ok)
	}
	properties := character.Properties()
	if len(properties) != 2 || properties[1].Name != "kAppearance" {
		t.Fatalf("Properties = %+v", properties)
	}
	appearance := properties[1].Value.(*propbag.Struct)
	if len(appearance.Properties) != 1 || appearance.Properties[0].Value != propbag.Int(1) {
		t.Errorf("appearance children = %+v", appearance.Properties)
	}
}

func TestCharacterDelete(t *testing.T) {
	character := sampleSoldier(t)

	if !character.Delete(Biography) {
		t.Error("Delete(Biography) reported nothing removed")
	}
	if _, ok := character.Get(Biography); ok {
		t.Error("Biography still present after Delete")
	}
	if !character.Delete(Haircut) {
		t.Error("Delete(Haircut) reported nothing removed")
	}
	if character.Delete(Haircut) {
		t.Error("second Delete(Haircut) reported a removal")
	}
	if !character.Delete(Appearance) {
		t.Error("Delete(Appearance) reported nothing removed")
	}
	if _, ok := character.Gender(); ok {
		t.Error("Gender still present after deleting the appearance")
	}
	for _, property := range character.Properties() {
		if property.Name == "kAppearance" {
			t.Error("appearance struct still emitted after Delete")
		}
	}
}

func TestCharacterPropertiesAreIndependent(t *testing.T) {
	character := sampleSoldier(t)
	properties := character.Properties()
	appearance := properties[6].Value.(*propbag.Struct)
	appearance.Properties[0].Value = propbag.Name{Text: "Changed"}

	value, _ := character.Get(Head)
	if value.(propbag.Name).Text != "LatFem_C" {
		t.Errorf("mutating Properties() changed the character: %#v", value)
	}
}

func TestCharacterTopLevelAndAppearanceEntries(t *testing.T) {
	character := sampleSoldier(t)

	topLevel := character.TopLevel()
	if len(topLevel) != 12 {
		t.Fatalf("TopLevel: got %d entries, want 12", len(topLevel))
	}
	for _, entry := range topLevel {
		if entry.Field == Appearance {
			t.Error("TopLevel includes the appearance slot")
		}
	}

	appearance := character.AppearanceEntries()
	if len(appearance) != 7 {
		t.Fatalf("AppearanceEntries: got %d entries, want 7", len(appearance))
	}
	if appearance[0].Field != Head || appearance[1].Field != Gender {
		t.Errorf("AppearanceEntries starts with %v, %v", appearance[0].Field, appearance[1].Field)
	}

	// The returned slice is a copy.
	appearance[0] = Entry{}
	if character.AppearanceEntries()[0].Field != Head {
		t.Error("AppearanceEntries shares its backing array with the character")
	}
}

func TestCharacterDigest(t *testing.T) {
	pool, err := Read("sample.bin", testutil.SamplePool("Sample Pool"))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	soldier, reaper := pool.Characters[0], pool.Characters[1]

	first, err := soldier.Digest()
	if err != nil {
		t.Fatalf("Digest: %v", err)
	}
	if first != digest.Character(testutil.SampleSoldier().Sentinel().Bytes()) {
		t.Error("Digest is not the digest of the entry's wire bytes")
	}
	if again, _ := soldier.Clone().Digest(); again != first {
		t.Error("clone has a different digest")
	}
	if other, _ := reaper.Digest(); other == first {
		t.Error("different characters share a digest")
	}

	if err := soldier.Set(FirstName, propbag.String("Janet")); err != nil {
		t.Fatal(err)
	}
	if edited, _ := soldier.Digest(); edited == first {
		t.Error("digest unchanged after an edit")
	}
}
