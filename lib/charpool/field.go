// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package charpool

import (
	"fmt"
	"strings"

	"github.com/bureau-foundation/poolkit/lib/propbag"
)

// Field identifies a property of a character. The concrete type is
// [CharacterField], [AppearanceField], or [UnknownField]. All three are
// comparable, so fields can be used as map keys.
type Field interface {
	// Name returns the property name as stored in the file.
	Name() string

	// Type returns the property type the field holds.
	Type() propbag.Type

	field()
}

// fieldInfo is one row of a registry table.
type fieldInfo struct {
	name         string
	propertyType propbag.Type
	key          string
	label        string
}

// CharacterField is a known top-level property of a character.
type CharacterField uint8

const (
	FirstName CharacterField = iota + 1
	LastName
	Nickname
	Country
	Biography
	SoldierClass
	Template
	AllowedSoldier
	AllowedVIP
	AllowedDarkVIP
	CreationDate
	Appearance
)

var characterFields = map[CharacterField]fieldInfo{
	FirstName:      {"strFirstName", propbag.TypeString, "first-name", "First name"},
	LastName:       {"strLastName", propbag.TypeString, "last-name", "Last name"},
	Nickname:       {"strNickName", propbag.TypeString, "nickname", "Nickname"},
	Country:        {"Country", propbag.TypeName, "country", "Country"},
	Biography:      {"BackgroundText", propbag.TypeString, "biography", "Biography"},
	SoldierClass:   {"m_SoldierClassTemplateName", propbag.TypeName, "class", "Soldier class"},
	Template:       {"CharacterTemplateName", propbag.TypeName, "template", "Character type"},
	AllowedSoldier: {"AllowedTypeSoldier", propbag.TypeBool, "allow-soldier", "Allowed as soldier"},
	AllowedVIP:     {"AllowedTypeVIP", propbag.TypeBool, "allow-vip", "Allowed as VIP"},
	AllowedDarkVIP: {"AllowedTypeDarkVIP", propbag.TypeBool, "allow-dark-vip", "Allowed as dark VIP"},
	CreationDate:   {"PoolTimestamp", propbag.TypeString, "created", "Created"},
	Appearance:     {"kAppearance", propbag.TypeStruct, "appearance", "Appearance"},
}

func (f CharacterField) Name() string       { return characterFields[f].name }
func (f CharacterField) Type() propbag.Type { return characterFields[f].propertyType }
func (CharacterField) field()               {}

// Key returns the short name used on the command line.
func (f CharacterField) Key() string { return characterFields[f].key }

// Label returns a human-readable label.
func (f CharacterField) Label() string { return characterFields[f].label }

func (f CharacterField) String() string { return f.Name() }

// AppearanceField is a known child of the appearance struct.
type AppearanceField uint8

const (
	Head AppearanceField = iota + 1
	Gender
	Race
	Haircut
	HairColor
	FacialHair
	Beard
	SkinColor
	EyeColor
	Flag
	Voice
	Attitude
	ArmorDeco
	ArmorTint
	ArmorTintSecondary
	WeaponTint
	TattooTint
	WeaponPattern
	Pawn
	Torso
	Arms
	Legs
	Helmet
	Eye
	Teeth
	FacePropLower
	FacePropUpper
	Patterns
	VoiceName
	Language
	TattooLeftArm
	TattooRightArm
	Scars
	TorsoUnderlay
	ArmsUnderlay
	LegsUnderlay
	FacePaint
	LeftArm
	RightArm
	LeftArmDeco
	RightArmDeco
	LeftForearm
	RightForearm
	Thighs
	Shins
	TorsoDeco
	GhostPawn
)

var appearanceFields = map[AppearanceField]fieldInfo{
	Head:               {"nmHead", propbag.TypeName, "head", "Head"},
	Gender:             {"iGender", propbag.TypeInt, "gender", "Gender"},
	Race:               {"iRace", propbag.TypeInt, "race", "Race"},
	Haircut:            {"nmHaircut", propbag.TypeName, "haircut", "Haircut"},
	HairColor:          {"iHairColor", propbag.TypeInt, "hair-color", "Hair color"},
	FacialHair:         {"iFacialHair", propbag.TypeInt, "facial-hair", "Facial hair"},
	Beard:              {"nmBeard", propbag.TypeName, "beard", "Beard"},
	SkinColor:          {"iSkinColor", propbag.TypeInt, "skin-color", "Skin color"},
	EyeColor:           {"iEyeColor", propbag.TypeInt, "eye-color", "Eye color"},
	Flag:               {"nmFlag", propbag.TypeName, "flag", "Flag"},
	Voice:              {"iVoice", propbag.TypeInt, "voice", "Voice"},
	Attitude:           {"iAttitude", propbag.TypeInt, "attitude", "Attitude"},
	ArmorDeco:          {"iArmorDeco", propbag.TypeInt, "armor-deco", "Armor decoration"},
	ArmorTint:          {"iArmorTint", propbag.TypeInt, "armor-tint", "Armor tint"},
	ArmorTintSecondary: {"iArmorTintSecondary", propbag.TypeInt, "armor-tint-secondary", "Secondary armor tint"},
	WeaponTint:         {"iWeaponTint", propbag.TypeInt, "weapon-tint", "Weapon tint"},
	TattooTint:         {"iTattooTint", propbag.TypeInt, "tattoo-tint", "Tattoo tint"},
	WeaponPattern:      {"nmWeaponPattern", propbag.TypeName, "weapon-pattern", "Weapon pattern"},
	Pawn:               {"nmPawn", propbag.TypeName, "pawn", "Pawn"},
	Torso:              {"nmTorso", propbag.TypeName, "torso", "Torso"},
	Arms:               {"nmArms", propbag.TypeName, "arms", "Arms"},
	Legs:               {"nmLegs", propbag.TypeName, "legs", "Legs"},
	Helmet:             {"nmHelmet", propbag.TypeName, "helmet", "Helmet"},
	Eye:                {"nmEye", propbag.TypeName, "eye", "Eyes"},
	Teeth:              {"nmTeeth", propbag.TypeName, "teeth", "Teeth"},
	FacePropLower:      {"nmFacePropLower", propbag.TypeName, "face-prop-lower", "Lower face prop"},
	FacePropUpper:      {"nmFacePropUpper", propbag.TypeName, "face-prop-upper", "Upper face prop"},
	Patterns:           {"nmPatterns", propbag.TypeName, "patterns", "Armor pattern"},
	VoiceName:          {"nmVoice", propbag.TypeName, "voice-name", "Voice name"},
	Language:           {"nmLanguage", propbag.TypeName, "language", "Language"},
	TattooLeftArm:      {"nmTattoo_LeftArm", propbag.TypeName, "tattoo-left-arm", "Left arm tattoo"},
	TattooRightArm:     {"nmTattoo_RightArm", propbag.TypeName, "tattoo-right-arm", "Right arm tattoo"},
	Scars:              {"nmScars", propbag.TypeName, "scars", "Scars"},
	TorsoUnderlay:      {"nmTorso_Underlay", propbag.TypeName, "torso-underlay", "Torso underlay"},
	ArmsUnderlay:       {"nmArms_Underlay", propbag.TypeName, "arms-underlay", "Arms underlay"},
	LegsUnderlay:       {"nmLegs_Underlay", propbag.TypeName, "legs-underlay", "Legs underlay"},
	FacePaint:          {"nmFacePaint", propbag.TypeName, "face-paint", "Face paint"},
	LeftArm:            {"nmLeftArm", propbag.TypeName, "left-arm", "Left arm"},
	RightArm:           {"nmRightArm", propbag.TypeName, "right-arm", "Right arm"},
	LeftArmDeco:        {"nmLeftArmDeco", propbag.TypeName, "left-arm-deco", "Left arm decoration"},
	RightArmDeco:       {"nmRightArmDeco", propbag.TypeName, "right-arm-deco", "Right arm decoration"},
	LeftForearm:        {"nmLeftForearm", propbag.TypeName, "left-forearm", "Left forearm"},
	RightForearm:       {"nmRightForearm", propbag.TypeName, "right-forearm", "Right forearm"},
	Thighs:             {"nmThighs", propbag.TypeName, "thighs", "Thighs"},
	Shins:              {"nmShins", propbag.TypeName, "shins", "Shins"},
	TorsoDeco:          {"nmTorsoDeco", propbag.TypeName, "torso-deco", "Torso decoration"},
	GhostPawn:          {"bGhostPawn", propbag.TypeBool, "ghost-pawn", "Ghost pawn"},
}

func (f AppearanceField) Name() string       { return appearanceFields[f].name }
func (f AppearanceField) Type() propbag.Type { return appearanceFields[f].propertyType }
func (AppearanceField) field()               {}

// Key returns the short name used on the command line.
func (f AppearanceField) Key() string { return appearanceFields[f].key }

// Label returns a human-readable label.
func (f AppearanceField) Label() string { return appearanceFields[f].label }

func (f AppearanceField) String() string { return f.Name() }

// UnknownField is a property whose name is not in the registry. The
// name and type are kept so the property can be written back as read.
type UnknownField struct {
	name         string
	propertyType propbag.Type
}

// NewUnknownField returns the field for an unrecognized property.
func NewUnknownField(name string, propertyType propbag.Type) UnknownField {
	return UnknownField{name: name, propertyType: propertyType}
}

func (f UnknownField) Name() string       { return f.name }
func (f UnknownField) Type() propbag.Type { return f.propertyType }
func (UnknownField) field()               {}

func (f UnknownField) String() string {
	return fmt.Sprintf("%s (unknown %s)", f.name, f.propertyType)
}

// Lookup tables from wire name and CLI key to field.
var (
	characterFieldsByName  = make(map[string]CharacterField, len(characterFields))
	appearanceFieldsByName = make(map[string]AppearanceField, len(appearanceFields))
	fieldsByKey            = make(map[string]Field, len(characterFields)+len(appearanceFields))
)

func init() {
	for field, info := range characterFields {
		characterFieldsByName[info.name] = field
		fieldsByKey[info.key] = field
	}
	for field, info := range appearanceFields {
		appearanceFieldsByName[info.name] = field
		fieldsByKey[info.key] = field
	}
}

// LookupCharacterField returns the known top-level field with the given
// property name.
func LookupCharacterField(name string) (CharacterField, bool) {
	field, ok := characterFieldsByName[name]
	return field, ok
}

// LookupAppearanceField returns the known appearance field with the
// given property name.
func LookupAppearanceField(name string) (AppearanceField, bool) {
	field, ok := appearanceFieldsByName[name]
	return field, ok
}

// LookupField resolves a property to a field: a known character field
// first, then a known appearance field, and otherwise an
// [UnknownField]. A known name stored with a different type than the
// registry expects is also treated as unknown, so its value is never
// misread.
func LookupField(name string, propertyType propbag.Type) Field {
	if field, ok := characterFieldsByName[name]; ok && field.Type() == propertyType {
		return field
	}
	if field, ok := appearanceFieldsByName[name]; ok && field.Type() == propertyType {
		return field
	}
	return NewUnknownField(name, propertyType)
}

// lookupTopLevel resolves a property found directly in a character
// entry. Appearance names are only recognized inside the appearance
// struct.
func lookupTopLevel(name string, propertyType propbag.Type) Field {
	if field, ok := characterFieldsByName[name]; ok && field.Type() == propertyType {
		return field
	}
	return NewUnknownField(name, propertyType)
}

// lookupAppearance resolves a child of the appearance struct.
func lookupAppearance(name string, propertyType propbag.Type) Field {
	if field, ok := appearanceFieldsByName[name]; ok && field.Type() == propertyType {
		return field
	}
	return NewUnknownField(name, propertyType)
}

// ParseField resolves a known field from either its CLI key
// ("first-name") or its property name ("strFirstName"). Matching is
// case-insensitive.
func ParseField(s string) (Field, error) {
	if field, ok := fieldsByKey[strings.ToLower(s)]; ok {
		return field, nil
	}
	for name, field := range characterFieldsByName {
		if strings.EqualFold(name, s) {
			return field, nil
		}
	}
	for name, field := range appearanceFieldsByName {
		if strings.EqualFold(name, s) {
			return field, nil
		}
	}
	return nil, fmt.Errorf("unknown field %q", s)
}

// CharacterFields returns every known character field in declaration
// order.
func CharacterFields() []CharacterField {
	fields := make([]CharacterField, 0, len(characterFields))
	for field := FirstName; field <= Appearance; field++ {
		fields = append(fields, field)
	}
	return fields
}

// AppearanceFields returns every known appearance field in declaration
// order.
func AppearanceFields() []AppearanceField {
	fields := make([]AppearanceField, 0, len(appearanceFields))
	for field := Head; field <= GhostPawn; field++ {
		fields = append(fields, field)
	}
	return fields
}
