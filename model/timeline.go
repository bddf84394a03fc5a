package model

import "gorm.io/datatypes"

// TimelineEvent is a dated entry in the campaign history. Date is free-form
// in-world text and is not parsed.
type TimelineEvent struct {
	ID          int64                      `gorm:"primaryKey;autoIncrement" json:"-"`
	Name        string                     `gorm:"uniqueIndex;size:128;not null" json:"name" validate:"required,max=128"`
	Date        string                     `gorm:"size:64" json:"date" validate:"required"`
	Location    string                     `gorm:"size:128" json:"location,omitempty"`
	Description string                     `gorm:"type:text" json:"description,omitempty"`
	KnownBy     datatypes.JSONSlice[string] `json:"knownBy"`
}

func (e *TimelineEvent) Validate() error { return validateStruct(e) }
