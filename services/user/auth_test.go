package user

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	userRepo "portflow/database/repository/user"
	"portflow/models"
	"portflow/utils"
)

// memUserRepo is a map-backed UserRepository.
type memUserRepo struct {
	users map[string]*models.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*models.User)}
}

func (r *memUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, userRepo.ErrNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *memUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, userRepo.ErrNotFound
}

func (r *memUserRepo) GetAll(ctx context.Context) ([]models.User, error) {
	var out []models.User
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func (r *memUserRepo) Create(ctx context.Context, user *models.User) error {
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *memUserRepo) Update(ctx context.Context, user *models.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return userRepo.ErrNotFound
	}
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

type nopRecorder struct{}

func (nopRecorder) Record(ctx context.Context, actor models.Actor, entityType, entityID, action, description string) {
}

func (nopRecorder) Query(ctx context.Context, filter models.AuditFilter) ([]models.AuditLog, error) {
	return nil, nil
}

func newUserService() (*DefaultUserService, *memUserRepo) {
	repo := newMemUserRepo()
	return &DefaultUserService{Repo: repo, Audit: nopRecorder{}}, repo
}

func seedUser(repo *memUserRepo, id, email, password string) {
	hashed, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	repo.users[id] = &models.User{
		ID:           id,
		FullName:     "Seed User",
		Email:        email,
		PasswordHash: string(hashed),
		Role:         models.RoleCarrier,
		CreatedAt:    time.Now().UTC(),
	}
}

func TestVerifyPasswordComplexity(t *testing.T) {
	cases := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"valid", "harbor2026", false},
		{"too short", "ab1", true},
		{"no letters", "12345678", true},
		{"no numbers", "harborgate", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := verifyPasswordComplexity(tc.password)
			if tc.wantErr {
				assert.Equal(t, utils.CodeValidation, utils.CodeOf(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRegister_Validation(t *testing.T) {
	svc, _ := newUserService()
	ctx := context.Background()
	valid := RegisterInput{
		FullName: "Nadia Ops",
		Email:    "nadia@example.com",
		Password: "harbor2026",
		Role:     models.RoleOperator,
	}

	cases := []struct {
		name   string
		mutate func(in *RegisterInput)
	}{
		{"missing name", func(in *RegisterInput) { in.FullName = "" }},
		{"bad email", func(in *RegisterInput) { in.Email = "not-an-email" }},
		{"unknown role", func(in *RegisterInput) { in.Role = "SUPERUSER" }},
		{"weak password", func(in *RegisterInput) { in.Password = "short" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := valid
			tc.mutate(&input)
			_, err := svc.Register(ctx, input)
			assert.Equal(t, utils.CodeValidation, utils.CodeOf(err))
		})
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, repo := newUserService()
	seedUser(repo, "u1", "taken@example.com", "harbor2026")

	_, err := svc.Register(context.Background(), RegisterInput{
		FullName: "Second Account",
		Email:    "taken@example.com",
		Password: "harbor2026",
		Role:     models.RoleCarrier,
	})

	assert.Equal(t, utils.CodeValidation, utils.CodeOf(err))
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, repo := newUserService()
	seedUser(repo, "u1", "sami@example.com", "harbor2026")

	_, err := svc.Login(context.Background(), "sami@example.com", "wrong-password")

	assert.Equal(t, utils.CodeForbidden, utils.CodeOf(err))
	assert.Contains(t, err.Error(), "invalid email or password")
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc, _ := newUserService()

	_, err := svc.Login(context.Background(), "nobody@example.com", "harbor2026")

	assert.Equal(t, utils.CodeForbidden, utils.CodeOf(err))
}

func TestGetUser_StripsPasswordHash(t *testing.T) {
	svc, repo := newUserService()
	seedUser(repo, "u1", "sami@example.com", "harbor2026")

	u, err := svc.GetUser(context.Background(), "u1")
	require.NoError(t, err)

	assert.Equal(t, "sami@example.com", u.Email)
	assert.Empty(t, u.PasswordHash)
	// The stored record keeps its hash.
	assert.NotEmpty(t, repo.users["u1"].PasswordHash)
}

func TestGetUser_NotFound(t *testing.T) {
	svc, _ := newUserService()

	_, err := svc.GetUser(context.Background(), "missing")

	assert.Equal(t, utils.CodeNotFound, utils.CodeOf(err))
}

func TestUpdateUser(t *testing.T) {
	svc, repo := newUserService()
	seedUser(repo, "u1", "sami@example.com", "harbor2026")
	actor := models.Actor{Type: models.ActorUser, ID: "u1"}

	updated, err := svc.UpdateUser(context.Background(), actor, "u1",
		UpdateInput{FullName: "Sami Benali", Password: "newharbor1"})
	require.NoError(t, err)

	assert.Equal(t, "Sami Benali", updated.FullName)
	assert.Empty(t, updated.PasswordHash)

	stored := repo.users["u1"]
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("newharbor1")))
}

func TestUpdateUser_WeakPassword(t *testing.T) {
	svc, repo := newUserService()
	seedUser(repo, "u1", "sami@example.com", "harbor2026")
	actor := models.Actor{Type: models.ActorUser, ID: "u1"}

	_, err := svc.UpdateUser(context.Background(), actor, "u1", UpdateInput{Password: "short"})

	assert.Equal(t, utils.CodeValidation, utils.CodeOf(err))
}
