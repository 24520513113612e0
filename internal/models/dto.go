package models

type RegisterRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	DisplayName string `json:"display_name" validate:"required"`
	Role        string `json:"role" validate:"required,oneof=applicant recruiter"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token   string   `json:"token"`
	Account *Account `json:"account"`
}

type CreateJobRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
	Location    string `json:"location"`
	Salary      string `json:"salary"`
	Remote      bool   `json:"remote"`
}

// DraftResponse is returned when an application pipeline reaches
// QuestionsGenerated. Nothing is persisted yet at that point.
type DraftResponse struct {
	DraftID   string   `json:"draft_id"`
	JobID     string   `json:"job_id"`
	Status    string   `json:"status"`
	Summary   string   `json:"summary"`
	Questions []string `json:"questions"`
}

type SubmitRequest struct {
	Responses []string `json:"responses" validate:"required"`
}

type DecisionRequest struct {
	Decision string `json:"decision" validate:"required,oneof=accepted rejected"`
	Reason   string `json:"reason"`
}
