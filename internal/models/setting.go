package models

import "time"

// Setting is one row of the open-ended key/value settings store
type Setting struct {
	Key       string    `json:"key" gorm:"type:text;primaryKey;column:key"`
	Value     string    `json:"value" gorm:"type:text;not null;column:value"`
	UpdatedAt time.Time `json:"updated_at" gorm:"type:datetime;default:CURRENT_TIMESTAMP;column:updated_at"`
}
