package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"banana/jobboard/internal/models"
)

func newTestAuthService(t *testing.T) (AuthService, *fakeAccountRepo, *fakeNotifier) {
	t.Helper()
	accounts := newFakeAccountRepo()
	notifier := &fakeNotifier{}
	// MinCost keeps the hashing fast in tests.
	auth := NewAuthService(accounts, notifier, "test-secret", time.Hour, 4)
	return auth, accounts, notifier
}

func TestRegister_Success(t *testing.T) {
	auth, _, notifier := newTestAuthService(t)

	account, err := auth.Register("ana@example.com", "supersecret", "Ana", models.RoleApplicant)
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", account.Email)
	assert.Equal(t, models.RoleApplicant, account.Role)
	assert.NotEqual(t, "supersecret", account.PasswordHash)

	mails := notifier.sent()
	require.Len(t, mails, 1)
	assert.Equal(t, "ana@example.com", mails[0].to)
}

func TestRegister_DuplicateRoleAccount(t *testing.T) {
	auth, _, _ := newTestAuthService(t)

	_, err := auth.Register("ana@example.com", "supersecret", "Ana", models.RoleApplicant)
	require.NoError(t, err)

	_, err = auth.Register("ana@example.com", "othersecret", "Ana Again", models.RoleApplicant)
	assert.ErrorIs(t, err, models.ErrDuplicateRoleAccount)
}

func TestRegister_CrossRoleConflict(t *testing.T) {
	auth, _, _ := newTestAuthService(t)

	_, err := auth.Register("ana@example.com", "supersecret", "Ana", models.RoleApplicant)
	require.NoError(t, err)

	// The same email cannot hold the recruiter role too.
	_, err = auth.Register("ana@example.com", "supersecret", "Ana", models.RoleRecruiter)
	assert.ErrorIs(t, err, models.ErrCrossRoleConflict)
}

func TestRegister_InvalidRole(t *testing.T) {
	auth, _, _ := newTestAuthService(t)

	_, err := auth.Register("ana@example.com", "supersecret", "Ana", models.Role("admin"))
	assert.Error(t, err)
}

func TestAuthenticate_Success(t *testing.T) {
	auth, _, _ := newTestAuthService(t)

	registered, err := auth.Register("ana@example.com", "supersecret", "Ana", models.RoleApplicant)
	require.NoError(t, err)

	account, token, err := auth.Authenticate("ana@example.com", "supersecret")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, account.ID)
	assert.NotEmpty(t, token)

	accountID, role, err := auth.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, accountID)
	assert.Equal(t, models.RoleApplicant, role)
}

func TestAuthenticate_IndistinguishableFailures(t *testing.T) {
	auth, _, _ := newTestAuthService(t)

	_, err := auth.Register("ana@example.com", "supersecret", "Ana", models.RoleApplicant)
	require.NoError(t, err)

	_, _, wrongPassword := auth.Authenticate("ana@example.com", "wrong")
	_, _, unknownEmail := auth.Authenticate("nobody@example.com", "supersecret")

	// Wrong password and unknown email must be indistinguishable to callers.
	assert.ErrorIs(t, wrongPassword, models.ErrInvalidCredentials)
	assert.ErrorIs(t, unknownEmail, models.ErrInvalidCredentials)
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}

func TestParseToken_Garbage(t *testing.T) {
	auth, _, _ := newTestAuthService(t)

	_, _, err := auth.ParseToken("not-a-token")
	assert.ErrorIs(t, err, models.ErrInvalidCredentials)
}

func TestParseToken_WrongSecret(t *testing.T) {
	auth, _, _ := newTestAuthService(t)
	other := NewAuthService(newFakeAccountRepo(), &fakeNotifier{}, "other-secret", time.Hour, 4)

	_, err := auth.Register("ana@example.com", "supersecret", "Ana", models.RoleApplicant)
	require.NoError(t, err)

	_, token, err := auth.Authenticate("ana@example.com", "supersecret")
	require.NoError(t, err)

	_, _, err = other.ParseToken(token)
	assert.ErrorIs(t, err, models.ErrInvalidCredentials)
}
