package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// JSONB column plumbing: these slice/struct types round-trip through Postgres
// jsonb columns via sqlx.

func jsonbValue(v interface{}) (driver.Value, error) {
	return json.Marshal(v)
}

func jsonbScan(src, dest interface{}) error {
	switch data := src.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(data, dest)
	case string:
		return json.Unmarshal([]byte(data), dest)
	default:
		return errors.New("unsupported jsonb source type")
	}
}

type AnswerList []Answer

func (a AnswerList) Value() (driver.Value, error) {
	if a == nil {
		return json.Marshal([]Answer{})
	}
	return jsonbValue(a)
}

func (a *AnswerList) Scan(src interface{}) error { return jsonbScan(src, a) }

type RuleList []Rule

func (r RuleList) Value() (driver.Value, error) {
	if r == nil {
		return json.Marshal([]Rule{})
	}
	return jsonbValue(r)
}

func (r *RuleList) Scan(src interface{}) error { return jsonbScan(src, r) }

type StringList []string

func (s StringList) Value() (driver.Value, error) {
	if s == nil {
		return json.Marshal([]string{})
	}
	return jsonbValue(s)
}

func (s *StringList) Scan(src interface{}) error { return jsonbScan(src, s) }

type TableRowList []TableRow

func (t TableRowList) Value() (driver.Value, error) {
	if t == nil {
		return json.Marshal([]TableRow{})
	}
	return jsonbValue(t)
}

func (t *TableRowList) Scan(src interface{}) error { return jsonbScan(src, t) }

func (v QuestionValidation) Value() (driver.Value, error) { return jsonbValue(v) }

func (v *QuestionValidation) Scan(src interface{}) error { return jsonbScan(src, v) }

type Metadata map[string]interface{}

func (m Metadata) Value() (driver.Value, error) {
	if m == nil {
		return json.Marshal(map[string]interface{}{})
	}
	return jsonbValue(m)
}

func (m *Metadata) Scan(src interface{}) error { return jsonbScan(src, m) }
