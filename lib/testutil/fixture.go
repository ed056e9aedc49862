// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

// SampleSoldier returns the wire properties (without the closing
// sentinel) of a fully populated soldier: known character fields, an
// appearance struct that also holds an unrecognized child, and an
// unrecognized top-level property between known ones.
func SampleSoldier() *Wire {
	appearance := NewWire().
		NameProperty("nmHead", "LatFem_C", 0).
		IntProperty("iGender", 2).
		IntProperty("iRace", 3).
		NameProperty("nmHaircut", "FemHair_B", 0).
		IntProperty("iAttitude", 4).
		NameProperty("nmMysteryPart", "Part_A", 7).
		BoolProperty("bGhostPawn", false)

	return NewWire().
		StrProperty("strFirstName", "Jane").
		StrProperty("strLastName", "Kelly").
		StrProperty("strNickName", "").
		NameProperty("m_SoldierClassTemplateName", "Ranger", 0).
		NameProperty("CharacterTemplateName", "Soldier", 0).
		IntProperty("ExtraModField", 7).
		StructProperty("kAppearance", "TAppearance", appearance).
		NameProperty("Country", "Country_Mexico", 0).
		BoolProperty("AllowedTypeSoldier", true).
		BoolProperty("AllowedTypeVIP", false).
		BoolProperty("AllowedTypeDarkVIP", false).
		StrProperty("PoolTimestamp", "2016/02/05 13:22").
		StrProperty("BackgroundText", "Born in Oaxaca.")
}

// SampleReaper returns a second, sparser character that also carries
// a header-less nested array.
func SampleReaper() *Wire {
	tags := NewWire().StrProperty("Tag", "veteran")
	return NewWire().
		StrProperty("strFirstName", "Elena").
		StrProperty("strLastName", "Dragunova").
		StrProperty("strNickName", "'Shade'").
		NameProperty("CharacterTemplateName", "ReaperSoldier", 0).
		ArrayProperty("ModTags", 4, tags).
		StructProperty("kAppearance", "TAppearance", NewWire().IntProperty("iGender", 2))
}

// SamplePool returns a complete pool file named poolFileName holding
// the two sample characters.
func SamplePool(poolFileName string) []byte {
	headers := NewWire().StrProperty("PoolFileName", poolFileName)
	return NewWire().
		Magic().
		PoolProperty(4, headers, SampleSoldier(), SampleReaper()).
		Bytes()
}
