package model

import "gorm.io/datatypes"

// Player is a table participant, keyed by the identity provider's user name.
type Player struct {
	ID           int64                      `gorm:"primaryKey;autoIncrement" json:"-"`
	UserName     string                     `gorm:"index;size:128;not null" json:"userName" validate:"required"`
	DisplayName  string                     `gorm:"size:128" json:"displayName,omitempty"`
	Characters   datatypes.JSONSlice[string] `json:"characters"`
	IsGameMaster bool                       `gorm:"default:false" json:"isGameMaster"`
}
