package repositories

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"banana/jobboard/internal/models"
)

type ApplicationRepository interface {
	// Create persists a fully-populated application in a single insert.
	// Either every field lands or none do.
	Create(app *models.Application) error
	FindByID(id uuid.UUID) (*models.Application, error)
	FindByApplicantAndJob(applicantID, jobID uuid.UUID) (*models.Application, error)
	ListByApplicant(applicantID uuid.UUID) ([]models.Application, error)
	ListByJob(jobID uuid.UUID) ([]models.Application, error)
	UpdateDecision(id uuid.UUID, status models.ApplicationStatus, reason string) error
}

type applicationRepository struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &applicationRepository{db: db}
}

func (r *applicationRepository) Create(app *models.Application) error {
	if err := r.db.Create(app).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.ErrAlreadyApplied
		}
		return fmt.Errorf("failed to create application: %w", err)
	}
	return nil
}

func (r *applicationRepository) FindByID(id uuid.UUID) (*models.Application, error) {
	var app models.Application
	if err := r.db.Where("id = ?", id).First(&app).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find application: %w", err)
	}
	return &app, nil
}

func (r *applicationRepository) FindByApplicantAndJob(applicantID, jobID uuid.UUID) (*models.Application, error) {
	var app models.Application
	err := r.db.
		Where("applicant_id = ? AND job_posting_id = ?", applicantID, jobID).
		First(&app).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find application: %w", err)
	}
	return &app, nil
}

func (r *applicationRepository) ListByApplicant(applicantID uuid.UUID) ([]models.Application, error) {
	var apps []models.Application
	err := r.db.
		Where("applicant_id = ?", applicantID).
		Order("created_at DESC").
		Find(&apps).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	return apps, nil
}

func (r *applicationRepository) ListByJob(jobID uuid.UUID) ([]models.Application, error) {
	var apps []models.Application
	err := r.db.
		Where("job_posting_id = ?", jobID).
		Order("created_at DESC").
		Find(&apps).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	return apps, nil
}

func (r *applicationRepository) UpdateDecision(id uuid.UUID, status models.ApplicationStatus, reason string) error {
	result := r.db.Model(&models.Application{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":           status,
			"rejection_reason": reason,
			"updated_at":       time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update decision: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return models.ErrNotFound
	}

	return nil
}
