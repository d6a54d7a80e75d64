package models

import (
	"time"

	"github.com/google/uuid"
)

// Verification status values for a report's image
const (
	VerificationPending    = "pending"
	VerificationVerified   = "verified"
	VerificationSuspicious = "suspicious"
)

// Report represents a citizen report attached to a disaster
// DB: reports
type Report struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	DisasterID         uuid.UUID `gorm:"column:disaster_id;type:uuid;not null;index:idx_reports_disaster" json:"disaster_id"`
	UserID             string    `gorm:"column:user_id;size:100;not null" json:"user_id"`
	Content            string    `gorm:"column:content;type:text" json:"content"`
	ImageURL           *string   `gorm:"column:image_url;type:text" json:"image_url,omitempty"`
	VerificationStatus string    `gorm:"column:verification_status;size:20;not null;default:pending" json:"verification_status"`
	CreatedAt          time.Time `gorm:"column:created_at;not null;index:idx_reports_created,sort:desc" json:"created_at"`
	UpdatedAt          time.Time `gorm:"column:updated_at;not null" json:"updated_at"`
}

func (Report) TableName() string {
	return "reports"
}
