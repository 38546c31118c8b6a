package model

import "time"

type LogAction string

const (
	LogActionCreate  LogAction = "create"
	LogActionUpdate  LogAction = "update"
	LogActionDestroy LogAction = "destroy"
)

type LogItem struct {
	ID            int64          `json:"id"`
	SiteID        int64          `json:"site_id"`
	PersonID      *int64         `json:"person_id"`
	LoggableType  string         `json:"loggable_type"`
	LoggableID    int64          `json:"loggable_id"`
	Action        LogAction      `json:"action"`
	ObjectChanges map[string]any `json:"object_changes"`
	CreatedAt     time.Time      `json:"created_at"`
}
