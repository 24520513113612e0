package models

import (
	"time"

	"github.com/google/uuid"
)

// JobPosting is authored by a recruiter and read-only to applicants.
// The pipeline never mutates it.
type JobPosting struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	RecruiterID uuid.UUID `gorm:"type:uuid;not null;index" json:"recruiter_id"`
	Title       string    `gorm:"type:text;not null" json:"title"`
	Description string    `gorm:"type:text;not null" json:"description"`
	Location    string    `gorm:"type:text" json:"location,omitempty"`
	Salary      string    `gorm:"type:text" json:"salary,omitempty"`
	Remote      bool      `gorm:"default:false" json:"remote"`
	CreatedAt   time.Time `gorm:"type:timestamp;default:now()" json:"created_at"`
	UpdatedAt   time.Time `gorm:"type:timestamp;default:now()" json:"updated_at"`

	// Relations
	Recruiter Account `gorm:"foreignKey:RecruiterID" json:"-"`
}

func (JobPosting) TableName() string {
	return "job_postings"
}
