package domain

import (
	"time"

	"github.com/google/uuid"
)

type ApplicationStatus string

const (
	AppStatusNone     ApplicationStatus = "none"
	AppStatusPending  ApplicationStatus = "pending"
	AppStatusAccepted ApplicationStatus = "accepted"
	AppStatusRejected ApplicationStatus = "rejected"
)

type Application struct {
	ID              uuid.UUID         `json:"id" db:"id"`
	UserID          uuid.UUID         `json:"user_id" db:"user_id"`
	DiscordID       string            `json:"discord_id" db:"discord_id"`
	RealName        string            `json:"real_name" db:"real_name"`
	RealAge         int               `json:"real_age" db:"real_age"`
	Country         string            `json:"country" db:"country"`
	Answers         AnswerList        `json:"answers" db:"answers"`
	Status          ApplicationStatus `json:"status" db:"status"`
	ReviewedBy      *uuid.UUID        `json:"reviewed_by,omitempty" db:"reviewed_by"`
	ReviewedAt      *time.Time        `json:"reviewed_at,omitempty" db:"reviewed_at"`
	RejectionReason *string           `json:"rejection_reason,omitempty" db:"rejection_reason"`
	CreatedAt       time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at" db:"updated_at"`

	Applicant *UserProfile `json:"applicant,omitempty" db:"-"`
	Reviewer  *string      `json:"reviewer,omitempty" db:"-"`
}

// Answer snapshots one sampled question with the applicant's response, so the
// application stays readable even if the question is later edited or deleted.
type Answer struct {
	QuestionID   *uuid.UUID `json:"question_id,omitempty"`
	QuestionText string     `json:"question_text"`
	Answer       string     `json:"answer"`
}

type BasicAnswers struct {
	RealName string `json:"real_name"`
	RealAge  int    `json:"real_age"`
	Country  string `json:"country"`
}

func (b BasicAnswers) Complete() bool {
	return b.RealName != "" && b.RealAge != 0 && b.Country != ""
}

type SubmitApplicationInput struct {
	UserID       uuid.UUID    `json:"user_id"`
	BasicAnswers BasicAnswers `json:"basic_answers"`
	Answers      []Answer     `json:"random_answers"`
}

type RejectApplicationInput struct {
	Reason string `json:"reason"`
}

type ApplicationStats struct {
	Total    int64 `json:"total"`
	Pending  int64 `json:"pending"`
	Accepted int64 `json:"accepted"`
	Rejected int64 `json:"rejected"`
}
