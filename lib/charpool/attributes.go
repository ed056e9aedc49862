// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package charpool

import (
	"fmt"
	"strconv"
	"strings"
)

// SoldierGender is the value of the iGender appearance field.
type SoldierGender int32

const (
	Male   SoldierGender = 1
	Female SoldierGender = 2
)

func (g SoldierGender) String() string {
	switch g {
	case Male:
		return "Male"
	case Female:
		return "Female"
	default:
		return fmt.Sprintf("SoldierGender(%d)", int32(g))
	}
}

// SoldierRace is the value of the iRace appearance field.
type SoldierRace int32

const (
	Caucasian SoldierRace = iota
	African
	EastAsian
	Hispanic
)

var raceNames = [...]string{"Caucasian", "African", "East Asian", "Hispanic"}

func (r SoldierRace) String() string {
	if r >= 0 && int(r) < len(raceNames) {
		return raceNames[r]
	}
	return fmt.Sprintf("SoldierRace(%d)", int32(r))
}

// SoldierPersonality is the value of the iAttitude appearance field.
type SoldierPersonality int32

const (
	ByTheBook SoldierPersonality = iota
	LaidBack
	Normal
	Twitchy
	HappyGoLucky
	HardLuck
	Intense
	Angry
	Cocky
	Suspicious
	Smug
	LetsGo
)

var personalityNames = [...]string{
	"By The Book",
	"Laid Back",
	"Normal",
	"Twitchy",
	"Happy Go Lucky",
	"Hard Luck",
	"Intense",
	"Angry",
	"Cocky",
	"Suspicious",
	"Smug",
	"Let's Go!",
}

func (p SoldierPersonality) String() string {
	if p >= 0 && int(p) < len(personalityNames) {
		return personalityNames[p]
	}
	return fmt.Sprintf("SoldierPersonality(%d)", int32(p))
}

// templateLabels maps CharacterTemplateName values to the character
// type shown to players.
var templateLabels = map[string]string{
	"Soldier":           "Soldier",
	"ReaperSoldier":     "Reaper",
	"SkirmisherSoldier": "Skirmisher",
	"TemplarSoldier":    "Templar",
	"SparkSoldier":      "SPARK",
}

// TemplateLabel returns the display name of a character template.
// Unrecognized templates are returned unchanged.
func TemplateLabel(template string) string {
	if label, ok := templateLabels[template]; ok {
		return label
	}
	return template
}

// ParseGender accepts "male", "female" or the numeric value.
func ParseGender(s string) (SoldierGender, error) {
	for _, gender := range []SoldierGender{Male, Female} {
		if strings.EqualFold(s, gender.String()) {
			return gender, nil
		}
	}
	value, err := parseAttributeNumber("gender", s)
	return SoldierGender(value), err
}

// ParseRace accepts a race name ("east asian" or "east-asian") or the
// numeric value.
func ParseRace(s string) (SoldierRace, error) {
	value, err := parseNamedAttribute("race", s, raceNames[:])
	return SoldierRace(value), err
}

// ParsePersonality accepts a personality name ("happy go lucky" or
// "happy-go-lucky") or the numeric value.
func ParsePersonality(s string) (SoldierPersonality, error) {
	value, err := parseNamedAttribute("personality", s, personalityNames[:])
	return SoldierPersonality(value), err
}

func parseNamedAttribute(kind, s string, names []string) (int32, error) {
	wanted := normalizeAttributeName(s)
	for i, name := range names {
		if normalizeAttributeName(name) == wanted {
			return int32(i), nil
		}
	}
	return parseAttributeNumber(kind, s)
}

func normalizeAttributeName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer("-", " ", "_", " ", "'", "", "!", "").Replace(s)
	return strings.Join(strings.Fields(s), " ")
}

// parseAttributeNumber accepts any int32. Values outside the known
// tables are allowed; the game and mods define more than this package
// names.
func parseAttributeNumber(kind, s string) (int32, error) {
	value, err := strconv.ParseInt(strings.TrimSpace(s), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("unknown %s %q", kind, s)
	}
	return int32(value), nil
}
