package models

import "time"

// Review status values. The store does not enforce an ordering between
// them: any status may follow any other.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
	StatusPosted   = "posted"
)

// ValidStatus reports whether s is one of the known review statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusPosted:
		return true
	}
	return false
}

// Video represents one reviewable clip pasted into the board.
// The ID is generated client-side from the Drive file id plus a
// timestamp and random suffix; the primary key constraint is the only
// server-side uniqueness guarantee.
type Video struct {
	ID          string    `gorm:"primaryKey" json:"id"`
	DateKey     string    `gorm:"column:date_key;not null;index" json:"date_key"`
	FileID      string    `gorm:"column:file_id;not null" json:"file_id"`
	OriginalURL string    `gorm:"column:original_url;not null" json:"original_url"`
	Caption     string    `gorm:"default:''" json:"caption"`
	Feedback    string    `gorm:"default:''" json:"feedback"`
	Status      string    `gorm:"default:'pending';index" json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}
