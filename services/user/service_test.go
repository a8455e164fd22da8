package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"curanest/models"
	"curanest/utils"
)

type fakeUserRepo struct {
	users map[string]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*models.User)}
}

func (r *fakeUserRepo) GetByID(id string) (*models.User, error) { return r.users[id], nil }
func (r *fakeUserRepo) GetByEmail(email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}
func (r *fakeUserRepo) GetAll(role string) ([]models.User, error) { return nil, nil }
func (r *fakeUserRepo) Create(u *models.User) error               { r.users[u.ID] = u; return nil }
func (r *fakeUserRepo) Update(u *models.User) error               { r.users[u.ID] = u; return nil }
func (r *fakeUserRepo) SetTokenHash(id, hash string) error {
	if u := r.users[id]; u != nil {
		u.TokenHash = hash
	}
	return nil
}
func (r *fakeUserRepo) Delete(id string) error                 { delete(r.users, id); return nil }
func (r *fakeUserRepo) CountByRole(role string) (int64, error) { return 0, nil }

func TestRegister(t *testing.T) {
	svc := &DefaultUserService{Repo: newFakeUserRepo()}

	user, err := svc.Register(models.User{
		Name: "Asha", Email: "Asha@Example.com", Password: "s3cret",
	})
	require.NoError(t, err)
	assert.Equal(t, "asha@example.com", user.Email)
	assert.Equal(t, models.RolePatient, user.Role)
	assert.Empty(t, user.Password)
	assert.NotEmpty(t, user.PasswordHash)
	assert.NotEqual(t, "s3cret", user.PasswordHash)

	// Duplicate email, case-insensitively.
	_, err = svc.Register(models.User{Name: "Asha", Email: "ASHA@example.com", Password: "x"})
	assert.True(t, utils.HasCode(err, utils.CodeConflict))
}

func TestRegisterValidation(t *testing.T) {
	svc := &DefaultUserService{Repo: newFakeUserRepo()}

	_, err := svc.Register(models.User{Email: "a@b.c", Password: "x"})
	assert.True(t, utils.HasCode(err, utils.CodeValidation))

	_, err = svc.Register(models.User{Name: "A", Email: "a@b.c", Password: "x", Role: "SUPERVISOR"})
	assert.True(t, utils.HasCode(err, utils.CodeValidation))
}

func TestAuthenticate(t *testing.T) {
	repo := newFakeUserRepo()
	svc := &DefaultUserService{Repo: repo}
	registered, err := svc.Register(models.User{
		Name: "Asha", Email: "asha@example.com", Password: "s3cret", Role: models.RoleNurse,
	})
	require.NoError(t, err)

	user, token, err := svc.Authenticate("asha@example.com", "s3cret")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, utils.HashToken(token), user.TokenHash)

	sub, role, err := utils.ExtractIdentityFromToken(token)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, sub)
	assert.Equal(t, models.RoleNurse, role)
}

func TestAuthenticateRejectsBadCredentials(t *testing.T) {
	svc := &DefaultUserService{Repo: newFakeUserRepo()}
	_, err := svc.Register(models.User{Name: "Asha", Email: "asha@example.com", Password: "s3cret"})
	require.NoError(t, err)

	_, _, err = svc.Authenticate("asha@example.com", "wrong")
	assert.True(t, utils.HasCode(err, utils.CodeForbidden))

	_, _, err = svc.Authenticate("nobody@example.com", "s3cret")
	assert.True(t, utils.HasCode(err, utils.CodeForbidden))
}

func TestRevokeAuthToken(t *testing.T) {
	repo := newFakeUserRepo()
	svc := &DefaultUserService{Repo: repo}
	user, err := svc.Register(models.User{Name: "Asha", Email: "asha@example.com", Password: "s3cret"})
	require.NoError(t, err)

	_, _, err = svc.Authenticate("asha@example.com", "s3cret")
	require.NoError(t, err)
	require.NotEmpty(t, repo.users[user.ID].TokenHash)

	require.NoError(t, svc.RevokeAuthToken(user.ID))
	assert.Empty(t, repo.users[user.ID].TokenHash)
}
