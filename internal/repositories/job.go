package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"banana/jobboard/internal/models"
)

type JobRepository interface {
	Create(job *models.JobPosting) error
	FindByID(id uuid.UUID) (*models.JobPosting, error)
	List() ([]models.JobPosting, error)
	ListByRecruiter(recruiterID uuid.UUID) ([]models.JobPosting, error)
}

type jobRepository struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) JobRepository {
	return &jobRepository{db: db}
}

// Create implements JobRepository.
func (r *jobRepository) Create(job *models.JobPosting) error {
	if err := r.db.Create(job).Error; err != nil {
		return fmt.Errorf("failed to create job posting: %w", err)
	}

	return nil
}

// FindByID implements JobRepository.
func (r *jobRepository) FindByID(id uuid.UUID) (*models.JobPosting, error) {
	var job models.JobPosting
	if err := r.db.Where("id = ?", id).First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}

		return nil, fmt.Errorf("failed to find job posting: %w", err)
	}

	return &job, nil
}

// List implements JobRepository.
func (r *jobRepository) List() ([]models.JobPosting, error) {
	var jobs []models.JobPosting
	if err := r.db.Order("created_at DESC").Find(&jobs).Error; err != nil {
		return nil, fmt.Errorf("failed to list job postings: %w", err)
	}

	return jobs, nil
}

// ListByRecruiter implements JobRepository.
func (r *jobRepository) ListByRecruiter(recruiterID uuid.UUID) ([]models.JobPosting, error) {
	var jobs []models.JobPosting
	if err := r.db.Where("recruiter_id = ?", recruiterID).Order("created_at DESC").Find(&jobs).Error; err != nil {
		return nil, fmt.Errorf("failed to list job postings: %w", err)
	}

	return jobs, nil
}
