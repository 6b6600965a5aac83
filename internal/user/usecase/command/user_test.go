package command

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cedarmart/commerce/pkg/apperrors"
	"github.com/cedarmart/commerce/pkg/auth"

	"github.com/cedarmart/commerce/internal/user/domain"
)

var errRecordNotFound = errors.New("record not found")

type fakeUserRepo struct {
	nextID uint
	users  map[uint]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uint]*domain.User)}
}

func (r *fakeUserRepo) Create(user *domain.User) error {
	r.nextID++
	user.ID = r.nextID
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) FindByID(id uint) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, errRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) FindByUsername(username string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, errRecordNotFound
}

func (r *fakeUserRepo) FindByEmail(email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, errRecordNotFound
}

func (r *fakeUserRepo) FindAll(limit, offset int) ([]domain.User, error) {
	return nil, nil
}

func (r *fakeUserRepo) Update(user *domain.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return errRecordNotFound
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) Delete(id uint) error {
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) Count() (int64, error) {
	return int64(len(r.users)), nil
}

func register(t *testing.T, repo *fakeUserRepo, username, email string) *domain.User {
	t.Helper()
	user, err := NewRegisterUserHandler(repo).Handle(RegisterUserCommand{
		Username: username,
		Email:    email,
		Password: "correct-horse",
	})
	require.NoError(t, err)
	return user
}

func TestRegisterUserDefaults(t *testing.T) {
	repo := newFakeUserRepo()

	user := register(t, repo, "gwen", "gwen@example.com")

	assert.Equal(t, domain.RoleCustomer, user.Role)
	assert.Equal(t, domain.TierNormal, user.MembershipTier)
	assert.True(t, user.IsActive)
	assert.NotEqual(t, "correct-horse", user.Password)
	assert.True(t, auth.CheckPassword(user.Password, "correct-horse"))
}

func TestRegisterUserRejectsDuplicates(t *testing.T) {
	repo := newFakeUserRepo()
	register(t, repo, "gwen", "gwen@example.com")
	handler := NewRegisterUserHandler(repo)

	_, err := handler.Handle(RegisterUserCommand{Username: "gwen", Email: "other@example.com", Password: "correct-horse"})
	assert.True(t, apperrors.IsConflict(err))

	_, err = handler.Handle(RegisterUserCommand{Username: "other", Email: "gwen@example.com", Password: "correct-horse"})
	assert.True(t, apperrors.IsConflict(err))
}

func TestRegisterUserValidation(t *testing.T) {
	handler := NewRegisterUserHandler(newFakeUserRepo())

	_, err := handler.Handle(RegisterUserCommand{Email: "a@b.c", Password: "correct-horse"})
	assert.True(t, apperrors.IsValidation(err))

	_, err = handler.Handle(RegisterUserCommand{Username: "gwen", Password: "correct-horse"})
	assert.True(t, apperrors.IsValidation(err))

	_, err = handler.Handle(RegisterUserCommand{Username: "gwen", Email: "a@b.c", Password: "short"})
	assert.True(t, apperrors.IsValidation(err))
}

func TestLoginIssuesToken(t *testing.T) {
	repo := newFakeUserRepo()
	register(t, repo, "gwen", "gwen@example.com")

	resp, err := NewLoginUserHandler(repo).Handle(LoginUserCommand{Username: "gwen", Password: "correct-horse"})
	require.NoError(t, err)

	claims, err := auth.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "gwen", claims.Username)
	assert.Equal(t, domain.RoleCustomer, claims.Role)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	repo := newFakeUserRepo()
	register(t, repo, "gwen", "gwen@example.com")
	handler := NewLoginUserHandler(repo)

	_, err := handler.Handle(LoginUserCommand{Username: "gwen", Password: "wrong"})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindUnauthorized, apperrors.KindOf(err))

	_, err = handler.Handle(LoginUserCommand{Username: "nobody", Password: "correct-horse"})
	assert.Equal(t, apperrors.KindUnauthorized, apperrors.KindOf(err))
}

func TestLoginRejectsDeactivatedAccount(t *testing.T) {
	repo := newFakeUserRepo()
	user := register(t, repo, "gwen", "gwen@example.com")

	stored, _ := repo.FindByID(user.ID)
	stored.IsActive = false
	require.NoError(t, repo.Update(stored))

	_, err := NewLoginUserHandler(repo).Handle(LoginUserCommand{Username: "gwen", Password: "correct-horse"})
	assert.True(t, apperrors.IsForbidden(err))
}

func TestChangeRole(t *testing.T) {
	repo := newFakeUserRepo()
	user := register(t, repo, "gwen", "gwen@example.com")
	handler := NewChangeRoleHandler(repo)

	_, err := handler.Handle(ChangeRoleCommand{UserID: user.ID, Role: "Wizard"})
	assert.True(t, apperrors.IsValidation(err))

	updated, err := handler.Handle(ChangeRoleCommand{UserID: user.ID, Role: domain.RoleProductManager})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleProductManager, updated.Role)

	_, err = handler.Handle(ChangeRoleCommand{UserID: 999, Role: domain.RoleCustomer})
	assert.True(t, apperrors.IsNotFound(err))
}

func TestUpdateWishlist(t *testing.T) {
	repo := newFakeUserRepo()
	user := register(t, repo, "gwen", "gwen@example.com")
	handler := NewUpdateWishlistHandler(repo)

	updated, err := handler.Handle(UpdateWishlistCommand{UserID: user.ID, ProductID: 4})
	require.NoError(t, err)
	assert.Equal(t, []uint{4}, updated.Wishlist)

	// adding again is a no-op
	updated, err = handler.Handle(UpdateWishlistCommand{UserID: user.ID, ProductID: 4})
	require.NoError(t, err)
	assert.Equal(t, []uint{4}, updated.Wishlist)

	updated, err = handler.Handle(UpdateWishlistCommand{UserID: user.ID, ProductID: 9})
	require.NoError(t, err)
	assert.Equal(t, []uint{4, 9}, updated.Wishlist)

	updated, err = handler.Handle(UpdateWishlistCommand{UserID: user.ID, ProductID: 4, Remove: true})
	require.NoError(t, err)
	assert.Equal(t, []uint{9}, updated.Wishlist)
}
