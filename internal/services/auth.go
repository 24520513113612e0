package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"banana/jobboard/internal/models"
	"banana/jobboard/internal/repositories"
)

// AuthService is the account guard: it enforces role exclusivity at sign-up
// and performs credential checks at login.
type AuthService interface {
	Register(email, password, displayName string, role models.Role) (*models.Account, error)
	Authenticate(email, password string) (*models.Account, string, error)
	ParseToken(token string) (uuid.UUID, models.Role, error)
}

type authService struct {
	accounts   repositories.AccountRepository
	notifier   Notifier
	jwtSecret  []byte
	tokenTTL   time.Duration
	bcryptCost int
}

func NewAuthService(
	accounts repositories.AccountRepository,
	notifier Notifier,
	jwtSecret string,
	tokenTTL time.Duration,
	bcryptCost int,
) AuthService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > 14 {
		bcryptCost = bcrypt.DefaultCost
	}

	return &authService{
		accounts:   accounts,
		notifier:   notifier,
		jwtSecret:  []byte(jwtSecret),
		tokenTTL:   tokenTTL,
		bcryptCost: bcryptCost,
	}
}

// Register implements AuthService. An identity holds exactly one role:
// registering the same (email, role) pair twice fails with
// ErrDuplicateRoleAccount, and registering an email that already holds the
// opposite role fails with ErrCrossRoleConflict.
func (s *authService) Register(email, password, displayName string, role models.Role) (*models.Account, error) {
	if !role.Valid() {
		return nil, fmt.Errorf("invalid role: %s", role)
	}

	if _, err := s.accounts.FindByEmailAndRole(email, role); err == nil {
		return nil, models.ErrDuplicateRoleAccount
	} else if !errors.Is(err, models.ErrNotFound) {
		return nil, err
	}

	if _, err := s.accounts.FindByEmail(email); err == nil {
		return nil, models.ErrCrossRoleConflict
	} else if !errors.Is(err, models.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	account := &models.Account{
		ID:           uuid.New(),
		Email:        email,
		Role:         role,
		PasswordHash: string(hash),
		DisplayName:  displayName,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := s.accounts.Create(account); err != nil {
		return nil, err
	}

	// Welcome mail is best-effort: a delivery failure never rolls back the
	// registration.
	s.notifier.Notify(account.Email, "Welcome to Banana",
		fmt.Sprintf("Hi %s,\n\nWelcome to Banana, the applicant-centric job platform!", account.DisplayName))

	return account, nil
}

// Authenticate implements AuthService. The returned error is identical for
// unknown emails and wrong passwords; the distinction is only logged.
func (s *authService) Authenticate(email, password string) (*models.Account, string, error) {
	account, err := s.accounts.FindByEmail(email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			log.Printf("🔒 Login failed: unknown email %s\n", email)
			return nil, "", models.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		log.Printf("🔒 Login failed: wrong password for account %s\n", account.ID)
		return nil, "", models.ErrInvalidCredentials
	}

	token, err := s.issueToken(account)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}

	return account, token, nil
}

func (s *authService) issueToken(account *models.Account) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  account.ID.String(),
		"role": string(account.Role),
		"iat":  now.Unix(),
		"exp":  now.Add(s.tokenTTL).Unix(),
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
}

// ParseToken implements AuthService.
func (s *authService) ParseToken(tokenStr string) (uuid.UUID, models.Role, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, "", models.ErrInvalidCredentials
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, "", models.ErrInvalidCredentials
	}

	sub, _ := claims["sub"].(string)
	accountID, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, "", models.ErrInvalidCredentials
	}

	roleStr, _ := claims["role"].(string)
	role := models.Role(roleStr)
	if !role.Valid() {
		return uuid.Nil, "", models.ErrInvalidCredentials
	}

	return accountID, role, nil
}
