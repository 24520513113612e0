package models

import "errors"

// Sentinel errors matched with errors.Is by handlers and services.
var (
	// ErrDuplicateRoleAccount is returned when the (email, role) pair is taken.
	ErrDuplicateRoleAccount = errors.New("an account with this email and role already exists")

	// ErrCrossRoleConflict is returned when the email already holds the
	// opposite role. An identity holds exactly one role.
	ErrCrossRoleConflict = errors.New("this email is already registered under a different role")

	// ErrInvalidCredentials covers both unknown email and wrong password so
	// login failures are indistinguishable to the caller.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrUnsupportedFileType is returned for uploads that are neither PDF nor DOCX.
	ErrUnsupportedFileType = errors.New("unsupported file type: please upload a PDF or DOCX document")

	// ErrEmptyDocument is returned when extraction yields no text.
	ErrEmptyDocument = errors.New("no text could be extracted from the document")

	// ErrInvalidTransition signals an out-of-order pipeline operation. It is a
	// bug-class error, not a user-recoverable one.
	ErrInvalidTransition = errors.New("invalid application status transition")

	// ErrAlreadyApplied enforces one application per (applicant, job).
	ErrAlreadyApplied = errors.New("you have already applied to this job")

	// ErrResponseCountMismatch is returned when the submitted answers do not
	// pair 1:1 with the generated questions.
	ErrResponseCountMismatch = errors.New("each question requires exactly one response")

	ErrNotFound  = errors.New("record not found")
	ErrForbidden = errors.New("you do not have access to this resource")
)
