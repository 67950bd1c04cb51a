package domain

import (
	"time"

	"github.com/google/uuid"
)

type SectionType string

const (
	SectionList   SectionType = "list"
	SectionTable  SectionType = "table"
	SectionText   SectionType = "text"
	SectionCustom SectionType = "custom"
)

func (t SectionType) IsValid() bool {
	switch t {
	case SectionList, SectionTable, SectionText, SectionCustom:
		return true
	default:
		return false
	}
}

type CardStyle string

const (
	CardNormal  CardStyle = "normal"
	CardWarning CardStyle = "warning"
	CardInfo    CardStyle = "info"
	CardSuccess CardStyle = "success"
)

func (s CardStyle) IsValid() bool {
	switch s {
	case CardNormal, CardWarning, CardInfo, CardSuccess:
		return true
	default:
		return false
	}
}

// Rule is one numbered entry inside a list-type section. Rules live embedded
// in the section row, not in their own table.
type Rule struct {
	ID     uuid.UUID `json:"id"`
	Number int       `json:"number"`
	Text   string    `json:"text"`
	Order  int       `json:"order"`
}

type TableRow struct {
	Cells []string `json:"cells"`
}

// RuleSection holds one card on the rules page. SortOrder is a dense zero
// based rank: across all sections every rank 0..N-1 is occupied exactly once.
type RuleSection struct {
	ID           uuid.UUID    `json:"id" db:"id"`
	Title        string       `json:"title" db:"title"`
	Icon         string       `json:"icon" db:"icon"`
	Type         SectionType  `json:"type" db:"type"`
	SortOrder    int          `json:"sort_order" db:"sort_order"`
	Active       bool         `json:"active" db:"active"`
	Rules        RuleList     `json:"rules" db:"rules"`
	Content      string       `json:"content" db:"content"`
	TableHeaders StringList   `json:"table_headers" db:"table_headers"`
	TableRows    TableRowList `json:"table_rows" db:"table_rows"`
	Notes        StringList   `json:"notes" db:"notes"`
	CardStyle    CardStyle    `json:"card_style" db:"card_style"`
	CreatedAt    time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at" db:"updated_at"`
}

// AddRule appends a rule numbered one past the current maximum.
func (s *RuleSection) AddRule(text string) Rule {
	maxNumber := 0
	for _, r := range s.Rules {
		if r.Number > maxNumber {
			maxNumber = r.Number
		}
	}
	rule := Rule{
		ID:     uuid.New(),
		Number: maxNumber + 1,
		Text:   text,
		Order:  len(s.Rules),
	}
	s.Rules = append(s.Rules, rule)
	return rule
}

// RemoveRule deletes a rule and renumbers the remainder 1..N with dense
// orders 0..N-1. Returns false when the rule is not part of the section.
func (s *RuleSection) RemoveRule(ruleID uuid.UUID) bool {
	kept := make(RuleList, 0, len(s.Rules))
	found := false
	for _, r := range s.Rules {
		if r.ID == ruleID {
			found = true
			continue
		}
		kept = append(kept, r)
	}
	if !found {
		return false
	}
	for i := range kept {
		kept[i].Number = i + 1
		kept[i].Order = i
	}
	s.Rules = kept
	return true
}

// UpdateRule rewrites the text of one embedded rule.
func (s *RuleSection) UpdateRule(ruleID uuid.UUID, text string) bool {
	for i := range s.Rules {
		if s.Rules[i].ID == ruleID {
			s.Rules[i].Text = text
			return true
		}
	}
	return false
}

type CreateRuleSectionInput struct {
	Title        string       `json:"title"`
	Icon         *string      `json:"icon,omitempty"`
	Type         *SectionType `json:"type,omitempty"`
	Content      string       `json:"content"`
	Rules        []string     `json:"rules,omitempty"`
	TableHeaders []string     `json:"table_headers,omitempty"`
	TableRows    []TableRow   `json:"table_rows,omitempty"`
	Notes        []string     `json:"notes,omitempty"`
	CardStyle    *CardStyle   `json:"card_style,omitempty"`
}

type UpdateRuleSectionInput struct {
	Title        *string      `json:"title,omitempty"`
	Icon         *string      `json:"icon,omitempty"`
	Type         *SectionType `json:"type,omitempty"`
	Content      *string      `json:"content,omitempty"`
	TableHeaders *[]string    `json:"table_headers,omitempty"`
	TableRows    *[]TableRow  `json:"table_rows,omitempty"`
	Notes        *[]string    `json:"notes,omitempty"`
	CardStyle    *CardStyle   `json:"card_style,omitempty"`
	Active       *bool        `json:"active,omitempty"`
}

type ReorderInput struct {
	NewOrder *int `json:"new_order"`
}

type RuleTextInput struct {
	Text string `json:"text"`
}
