package model

import "gorm.io/datatypes"

// Character is a person in the campaign, either a player character or an NPC.
type Character struct {
	ID              int64                       `gorm:"primaryKey;autoIncrement" json:"-"`
	Name            string                      `gorm:"uniqueIndex;size:128;not null" json:"name" validate:"required,max=128"`
	Race            string                      `gorm:"size:64" json:"race,omitempty"`
	Occupation      string                      `gorm:"size:128" json:"occupation,omitempty"`
	Location        string                      `gorm:"size:128" json:"location,omitempty"`
	Description     string                      `gorm:"type:text" json:"description,omitempty"`
	ResourceURL     string                      `gorm:"size:512" json:"resourceUrl,omitempty" validate:"omitempty,url"`
	Affiliations    datatypes.JSONSlice[string] `json:"affiliations"`
	KnownBy         datatypes.JSONSlice[string] `json:"knownBy"`
	PlayerCharacter bool                        `gorm:"index;default:false" json:"playerCharacter"`
}

// Validate checks the record constraints.
func (c *Character) Validate() error { return validateStruct(c) }

// Known reports whether anyone in the party has met the character.
func (c *Character) Known() bool { return len(c.KnownBy) > 0 }
