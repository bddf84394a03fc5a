package model

import "gorm.io/datatypes"

// Contact is an organisation, vendor or informant the party can reach.
type Contact struct {
	ID           int64                      `gorm:"primaryKey;autoIncrement" json:"-"`
	Name         string                     `gorm:"uniqueIndex;size:128;not null" json:"name" validate:"required,max=128"`
	Description  string                     `gorm:"type:text" json:"description,omitempty"`
	Location     string                     `gorm:"size:128" json:"location,omitempty"`
	ResourceURL  string                     `gorm:"size:512" json:"resourceUrl,omitempty" validate:"omitempty,url"`
	Affiliations datatypes.JSONSlice[string] `json:"affiliations"`
	KnownBy      datatypes.JSONSlice[string] `json:"knownBy"`
}

func (c *Contact) Validate() error { return validateStruct(c) }
