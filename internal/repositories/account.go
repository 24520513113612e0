package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"banana/jobboard/internal/models"
)

type AccountRepository interface {
	Create(account *models.Account) error
	FindByID(id uuid.UUID) (*models.Account, error)
	FindByEmail(email string) (*models.Account, error)
	FindByEmailAndRole(email string, role models.Role) (*models.Account, error)
}

type accountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{db: db}
}

// Create implements AccountRepository.
func (r *accountRepository) Create(account *models.Account) error {
	if err := r.db.Create(account).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.ErrDuplicateRoleAccount
		}
		return fmt.Errorf("failed to create account: %w", err)
	}

	return nil
}

// FindByID implements AccountRepository.
func (r *accountRepository) FindByID(id uuid.UUID) (*models.Account, error) {
	var account models.Account
	if err := r.db.Where("id = ?", id).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}

		return nil, fmt.Errorf("failed to find account: %w", err)
	}

	return &account, nil
}

// FindByEmail implements AccountRepository. At most one account exists per
// email under the single-role policy.
func (r *accountRepository) FindByEmail(email string) (*models.Account, error) {
	var account models.Account
	if err := r.db.Where("email = ?", email).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}

		return nil, fmt.Errorf("failed to find account: %w", err)
	}

	return &account, nil
}

// FindByEmailAndRole implements AccountRepository.
func (r *accountRepository) FindByEmailAndRole(email string, role models.Role) (*models.Account, error) {
	var account models.Account
	if err := r.db.Where("email = ? AND role = ?", email, role).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}

		return nil, fmt.Errorf("failed to find account: %w", err)
	}

	return &account, nil
}
