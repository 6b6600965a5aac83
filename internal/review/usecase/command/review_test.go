package command

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cedarmart/commerce/pkg/apperrors"

	catalogdomain "github.com/cedarmart/commerce/internal/catalog/domain"

	"github.com/cedarmart/commerce/internal/review/domain"
)

var errRecordNotFound = errors.New("record not found")

type fakeReviewRepo struct {
	nextID  uint
	reviews map[uint]*domain.Review
}

func (r *fakeReviewRepo) Create(review *domain.Review) error {
	r.nextID++
	review.ID = r.nextID
	cp := *review
	r.reviews[review.ID] = &cp
	return nil
}

func (r *fakeReviewRepo) FindByID(id uint) (*domain.Review, error) {
	rv, ok := r.reviews[id]
	if !ok {
		return nil, errRecordNotFound
	}
	cp := *rv
	return &cp, nil
}

func (r *fakeReviewRepo) FindAll() ([]domain.Review, error) {
	out := make([]domain.Review, 0, len(r.reviews))
	for _, rv := range r.reviews {
		out = append(out, *rv)
	}
	return out, nil
}

func (r *fakeReviewRepo) FindByProduct(productID uint) ([]domain.Review, error) {
	var out []domain.Review
	for _, rv := range r.reviews {
		if rv.ProductID == productID {
			out = append(out, *rv)
		}
	}
	return out, nil
}

func (r *fakeReviewRepo) Update(review *domain.Review) error {
	if _, ok := r.reviews[review.ID]; !ok {
		return errRecordNotFound
	}
	cp := *review
	r.reviews[review.ID] = &cp
	return nil
}

func (r *fakeReviewRepo) Delete(id uint) error {
	delete(r.reviews, id)
	return nil
}

type fakeProductRepo struct {
	products map[uint]*catalogdomain.Product
}

func (r *fakeProductRepo) Create(p *catalogdomain.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) FindByID(id uint) (*catalogdomain.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, errRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) FindByIDForUpdate(id uint) (*catalogdomain.Product, error) {
	return r.FindByID(id)
}

func (r *fakeProductRepo) FindAll(limit, offset int) ([]catalogdomain.Product, error) {
	return nil, nil
}

func (r *fakeProductRepo) FindByCategory(categoryID uint, limit, offset int) ([]catalogdomain.Product, error) {
	return nil, nil
}

func (r *fakeProductRepo) Update(p *catalogdomain.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) UpdateStock(id uint, stock int) error {
	p, ok := r.products[id]
	if !ok {
		return errRecordNotFound
	}
	p.Stock = stock
	return nil
}

func (r *fakeProductRepo) Delete(id uint) error {
	delete(r.products, id)
	return nil
}

func (r *fakeProductRepo) Count() (int64, error) {
	return int64(len(r.products)), nil
}

type fakeRecorder struct {
	actions []string
}

func (r *fakeRecorder) Record(actorID uint, action string) error {
	r.actions = append(r.actions, action)
	return nil
}

type fakeUnitOfWork struct {
	repos domain.Repos
}

func (u *fakeUnitOfWork) Execute(ctx context.Context, fn func(domain.Repos) error) error {
	return fn(u.repos)
}

func newReviewUoW(products ...*catalogdomain.Product) (*fakeUnitOfWork, *fakeReviewRepo) {
	reviews := &fakeReviewRepo{reviews: make(map[uint]*domain.Review)}
	productRepo := &fakeProductRepo{products: make(map[uint]*catalogdomain.Product)}
	for _, p := range products {
		productRepo.products[p.ID] = p
	}
	uow := &fakeUnitOfWork{repos: domain.Repos{
		Reviews:  reviews,
		Products: productRepo,
		Audit:    &fakeRecorder{},
	}}
	return uow, reviews
}

func TestCreateReview(t *testing.T) {
	uow, reviews := newReviewUoW(&catalogdomain.Product{ID: 1, Name: "Lamp"})
	handler := NewCreateReviewHandler(uow)

	review, err := handler.Handle(context.Background(), CreateReviewCommand{
		UserID: 10, ProductID: 1, Rating: 4, Comment: "solid build",
	})
	require.NoError(t, err)

	assert.NotZero(t, review.ID)
	stored, err := reviews.FindByID(review.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, stored.Rating)
}

func TestCreateReviewValidation(t *testing.T) {
	uow, _ := newReviewUoW(&catalogdomain.Product{ID: 1, Name: "Lamp"})
	handler := NewCreateReviewHandler(uow)

	_, err := handler.Handle(context.Background(), CreateReviewCommand{UserID: 10, Rating: 4})
	assert.True(t, apperrors.IsValidation(err))

	_, err = handler.Handle(context.Background(), CreateReviewCommand{UserID: 10, ProductID: 1, Rating: 0})
	assert.True(t, apperrors.IsValidation(err))

	_, err = handler.Handle(context.Background(), CreateReviewCommand{UserID: 10, ProductID: 1, Rating: 6})
	assert.True(t, apperrors.IsValidation(err))

	_, err = handler.Handle(context.Background(), CreateReviewCommand{
		UserID: 10, ProductID: 1, Rating: 3, Comment: strings.Repeat("x", 1001),
	})
	assert.True(t, apperrors.IsValidation(err))

	_, err = handler.Handle(context.Background(), CreateReviewCommand{UserID: 10, ProductID: 42, Rating: 3})
	assert.True(t, apperrors.IsNotFound(err))
}

func TestUpdateReviewOwnerOnly(t *testing.T) {
	uow, _ := newReviewUoW(&catalogdomain.Product{ID: 1, Name: "Lamp"})
	review, err := NewCreateReviewHandler(uow).Handle(context.Background(), CreateReviewCommand{
		UserID: 10, ProductID: 1, Rating: 4, Comment: "solid build",
	})
	require.NoError(t, err)

	handler := NewUpdateReviewHandler(uow)

	rating := 2
	_, err = handler.Handle(context.Background(), UpdateReviewCommand{UserID: 99, ReviewID: review.ID, Rating: &rating})
	assert.True(t, apperrors.IsForbidden(err))

	updated, err := handler.Handle(context.Background(), UpdateReviewCommand{UserID: 10, ReviewID: review.ID, Rating: &rating})
	require.NoError(t, err)
	assert.Equal(t, 2, updated.Rating)
	assert.Equal(t, "solid build", updated.Comment)

	bad := 0
	_, err = handler.Handle(context.Background(), UpdateReviewCommand{UserID: 10, ReviewID: review.ID, Rating: &bad})
	assert.True(t, apperrors.IsValidation(err))
}

func TestDeleteReviewOwnerOnly(t *testing.T) {
	uow, reviews := newReviewUoW(&catalogdomain.Product{ID: 1, Name: "Lamp"})
	review, err := NewCreateReviewHandler(uow).Handle(context.Background(), CreateReviewCommand{
		UserID: 10, ProductID: 1, Rating: 4,
	})
	require.NoError(t, err)

	handler := NewDeleteReviewHandler(uow)

	err = handler.Handle(context.Background(), DeleteReviewCommand{UserID: 99, ReviewID: review.ID})
	assert.True(t, apperrors.IsForbidden(err))

	err = handler.Handle(context.Background(), DeleteReviewCommand{UserID: 10, ReviewID: review.ID})
	require.NoError(t, err)

	_, err = reviews.FindByID(review.ID)
	assert.Error(t, err)

	err = handler.Handle(context.Background(), DeleteReviewCommand{UserID: 10, ReviewID: review.ID})
	assert.True(t, apperrors.IsNotFound(err))
}
