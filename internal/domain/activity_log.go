package domain

import (
	"time"

	"github.com/google/uuid"
)

type ActivityAction string

const (
	ActionLogin              ActivityAction = "LOGIN"
	ActionLogout             ActivityAction = "LOGOUT"
	ActionCreateProduct      ActivityAction = "CREATE_PRODUCT"
	ActionUpdateProduct      ActivityAction = "UPDATE_PRODUCT"
	ActionDeleteProduct      ActivityAction = "DELETE_PRODUCT"
	ActionCreateDiscountCode ActivityAction = "CREATE_DISCOUNT_CODE"
	ActionUpdateDiscountCode ActivityAction = "UPDATE_DISCOUNT_CODE"
	ActionDeleteDiscountCode ActivityAction = "DELETE_DISCOUNT_CODE"
	ActionCreateRule         ActivityAction = "CREATE_RULE"
	ActionUpdateRule         ActivityAction = "UPDATE_RULE"
	ActionDeleteRule         ActivityAction = "DELETE_RULE"
	ActionCreateAdmin        ActivityAction = "CREATE_ADMIN"
	ActionDeleteAdmin        ActivityAction = "DELETE_ADMIN"
	ActionAcceptApplication  ActivityAction = "ACCEPT_APPLICATION"
	ActionRejectApplication  ActivityAction = "REJECT_APPLICATION"
	ActionOther              ActivityAction = "OTHER"
)

type ActivityLog struct {
	ID          uuid.UUID      `json:"id" db:"id"`
	Action      ActivityAction `json:"action" db:"action"`
	Description string         `json:"description" db:"description"`
	AdminID     *uuid.UUID     `json:"admin_id,omitempty" db:"admin_id"`
	Username    *string        `json:"username,omitempty" db:"username"`
	TargetID    *string        `json:"target_id,omitempty" db:"target_id"`
	TargetType  *string        `json:"target_type,omitempty" db:"target_type"`
	Metadata    Metadata       `json:"metadata,omitempty" db:"metadata"`
	IPAddress   *string        `json:"ip_address,omitempty" db:"ip_address"`
	UserAgent   *string        `json:"user_agent,omitempty" db:"user_agent"`
	CreatedAt   time.Time      `json:"created_at" db:"created_at"`
}

type ActivityLogFilter struct {
	Action    *ActivityAction
	Username  *string
	StartDate *time.Time
	EndDate   *time.Time
}

type ActionCount struct {
	Action ActivityAction `json:"action" db:"action"`
	Count  int64          `json:"count" db:"count"`
}

type ActivityLogStats struct {
	TotalLogs  int64         `json:"total_logs"`
	LogsLast24 int64         `json:"logs_last_24h"`
	LogsLast7d int64         `json:"logs_last_7d"`
	TopActions []ActionCount `json:"top_actions"`
}
