package models

import (
	"time"

	"github.com/google/uuid"
)

type ApplicationStatus string

const (
	StatusStarted            ApplicationStatus = "started"
	StatusTextExtracted      ApplicationStatus = "text_extracted"
	StatusSummarized         ApplicationStatus = "summarized"
	StatusQuestionsGenerated ApplicationStatus = "questions_generated"
	StatusResponsesCollected ApplicationStatus = "responses_collected"
	StatusAssessed           ApplicationStatus = "assessed"
	StatusSubmitted          ApplicationStatus = "submitted"
	StatusAccepted           ApplicationStatus = "accepted"
	StatusRejected           ApplicationStatus = "rejected"
)

// nextStatuses is the full transition table. Submitted is terminal for the
// applicant; Accepted and Rejected are terminal overall.
var nextStatuses = map[ApplicationStatus][]ApplicationStatus{
	StatusStarted:            {StatusTextExtracted},
	StatusTextExtracted:      {StatusSummarized},
	StatusSummarized:         {StatusQuestionsGenerated},
	StatusQuestionsGenerated: {StatusResponsesCollected},
	StatusResponsesCollected: {StatusAssessed},
	StatusAssessed:           {StatusSubmitted},
	StatusSubmitted:          {StatusAccepted, StatusRejected},
	StatusAccepted:           {},
	StatusRejected:           {},
}

// CanTransition reports whether moving from s to next is legal.
func (s ApplicationStatus) CanTransition(next ApplicationStatus) bool {
	for _, allowed := range nextStatuses[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transitions are possible.
func (s ApplicationStatus) Terminal() bool {
	return len(nextStatuses[s]) == 0
}

// Application is the stateful record of one applicant's attempt at one job.
// It is written once, fully populated, at Assessed -> Submitted; only the
// owning recruiter's decision mutates it afterwards.
type Application struct {
	ID              uuid.UUID         `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	JobPostingID    uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex:idx_applications_applicant_job" json:"job_posting_id"`
	ApplicantID     uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex:idx_applications_applicant_job" json:"applicant_id"`
	Status          ApplicationStatus `gorm:"type:text;not null" json:"status"`
	CVText          string            `gorm:"type:text" json:"-"`
	Summary         string            `gorm:"type:text" json:"summary"`
	Questions       []string          `gorm:"serializer:json;type:jsonb" json:"questions"`
	Responses       []string          `gorm:"serializer:json;type:jsonb" json:"responses"`
	Score           int               `gorm:"not null;default:0" json:"score"`
	Verdict         string            `gorm:"type:text" json:"verdict"`
	FitAssessment   string            `gorm:"type:text" json:"fit_assessment,omitempty"`
	RejectionReason string            `gorm:"type:text" json:"rejection_reason,omitempty"`
	CreatedAt       time.Time         `gorm:"type:timestamp;default:now()" json:"created_at"`
	UpdatedAt       time.Time         `gorm:"type:timestamp;default:now()" json:"updated_at"`

	// Relations
	JobPosting JobPosting `gorm:"foreignKey:JobPostingID" json:"-"`
	Applicant  Account    `gorm:"foreignKey:ApplicantID" json:"-"`
}

func (Application) TableName() string {
	return "applications"
}
