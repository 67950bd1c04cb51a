package domain

import (
	"time"

	"github.com/google/uuid"
)

type QuestionType string

const (
	QuestionText     QuestionType = "text"
	QuestionNumber   QuestionType = "number"
	QuestionEmail    QuestionType = "email"
	QuestionTextarea QuestionType = "textarea"
)

func (t QuestionType) IsValid() bool {
	switch t {
	case QuestionText, QuestionNumber, QuestionEmail, QuestionTextarea:
		return true
	default:
		return false
	}
}

type Question struct {
	ID          uuid.UUID          `json:"id" db:"id"`
	Text        string             `json:"text" db:"text"`
	Type        QuestionType       `json:"type" db:"type"`
	IsRequired  bool               `json:"is_required" db:"is_required"`
	IsBasic     bool               `json:"is_basic" db:"is_basic"`
	SortOrder   int                `json:"sort_order" db:"sort_order"`
	Active      bool               `json:"active" db:"active"`
	Placeholder string             `json:"placeholder" db:"placeholder"`
	Validation  QuestionValidation `json:"validation" db:"validation"`
	CreatedAt   time.Time          `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at" db:"updated_at"`
}

type QuestionValidation struct {
	MinLength *int `json:"min_length,omitempty"`
	MaxLength *int `json:"max_length,omitempty"`
	Min       *int `json:"min,omitempty"`
	Max       *int `json:"max,omitempty"`
}

type CreateQuestionInput struct {
	Text        string              `json:"text"`
	Type        QuestionType        `json:"type"`
	IsRequired  *bool               `json:"is_required,omitempty"`
	IsBasic     bool                `json:"is_basic"`
	SortOrder   int                 `json:"sort_order"`
	Placeholder string              `json:"placeholder"`
	Validation  *QuestionValidation `json:"validation,omitempty"`
}

type UpdateQuestionInput struct {
	Text        *string             `json:"text,omitempty"`
	Type        *QuestionType       `json:"type,omitempty"`
	IsRequired  *bool               `json:"is_required,omitempty"`
	IsBasic     *bool               `json:"is_basic,omitempty"`
	SortOrder   *int                `json:"sort_order,omitempty"`
	Placeholder *string             `json:"placeholder,omitempty"`
	Validation  *QuestionValidation `json:"validation,omitempty"`
	Active      *bool               `json:"active,omitempty"`
}

type QuestionFilter struct {
	Type    *QuestionType
	IsBasic *bool
	Active  *bool
}

// ApplicationQuestions is what the public activation form renders: the fixed
// basic prompts in order, plus a random sample from the pool.
type ApplicationQuestions struct {
	Basic  []Question `json:"basic"`
	Random []Question `json:"random"`
}
