package domain

import (
	"encoding/json"
	"time"
)

// Setting is one row of the persisted key/value configuration store. Values
// are stored as JSON so callers can round-trip booleans, numbers and strings.
type Setting struct {
	Key         string          `json:"key" db:"key"`
	Value       json.RawMessage `json:"value" db:"value"`
	Description string          `json:"description" db:"description"`
	UpdatedAt   time.Time       `json:"updated_at" db:"updated_at"`
}

// SettingApplicationsOpen gates the public application form.
const SettingApplicationsOpen = "applications_open"
