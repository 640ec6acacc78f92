package model

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SettingType is the closed set of value shapes a system setting can carry.
type SettingType string

const (
	SettingText    SettingType = "text"
	SettingNumber  SettingType = "number"
	SettingBoolean SettingType = "boolean"
	SettingJSON    SettingType = "json"
)

// Valid reports whether t is a known setting type.
func (t SettingType) Valid() bool {
	switch t {
	case SettingText, SettingNumber, SettingBoolean, SettingJSON:
		return true
	}
	return false
}

// Setting is an admin-managed system setting. Value is stored as JSON and
// discriminated by Type; the typed accessors fail rather than coerce when the
// stored shape does not match.
type Setting struct {
	ID        uuid.UUID      `json:"id" gorm:"type:char(36);primaryKey"`
	Key       string         `json:"key" gorm:"uniqueIndex;size:100;not null"`
	Type      SettingType    `json:"type" gorm:"type:varchar(10);not null"`
	Value     datatypes.JSON `json:"value" gorm:"type:json"`
	UpdatedBy *uuid.UUID     `json:"updated_by,omitempty" gorm:"type:char(36)"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (s *Setting) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// Text returns the value for a text setting.
func (s *Setting) Text() (string, error) {
	if s.Type != SettingText {
		return "", fmt.Errorf("setting %s has type %s, not %s", s.Key, s.Type, SettingText)
	}
	var v string
	if err := json.Unmarshal(s.Value, &v); err != nil {
		return "", fmt.Errorf("setting %s: %w", s.Key, err)
	}
	return v, nil
}

// Number returns the value for a number setting.
func (s *Setting) Number() (float64, error) {
	if s.Type != SettingNumber {
		return 0, fmt.Errorf("setting %s has type %s, not %s", s.Key, s.Type, SettingNumber)
	}
	v, err := strconv.ParseFloat(string(s.Value), 64)
	if err != nil {
		return 0, fmt.Errorf("setting %s: %w", s.Key, err)
	}
	return v, nil
}

// Bool returns the value for a boolean setting.
func (s *Setting) Bool() (bool, error) {
	if s.Type != SettingBoolean {
		return false, fmt.Errorf("setting %s has type %s, not %s", s.Key, s.Type, SettingBoolean)
	}
	var v bool
	if err := json.Unmarshal(s.Value, &v); err != nil {
		return false, fmt.Errorf("setting %s: %w", s.Key, err)
	}
	return v, nil
}

// JSONValue decodes the value of a json setting into out.
func (s *Setting) JSONValue(out any) error {
	if s.Type != SettingJSON {
		return fmt.Errorf("setting %s has type %s, not %s", s.Key, s.Type, SettingJSON)
	}
	return json.Unmarshal(s.Value, out)
}
