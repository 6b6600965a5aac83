package command

import (
	"context"
	"errors"

	"github.com/cedarmart/commerce/internal/catalog/domain"
)

var errRecordNotFound = errors.New("record not found")

type fakeProductRepo struct {
	nextID   uint
	products map[uint]*domain.Product
}

func (r *fakeProductRepo) Create(p *domain.Product) error {
	r.nextID++
	p.ID = r.nextID
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) FindByID(id uint) (*domain.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, errRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) FindByIDForUpdate(id uint) (*domain.Product, error) {
	return r.FindByID(id)
}

func (r *fakeProductRepo) FindAll(limit, offset int) ([]domain.Product, error) {
	out := make([]domain.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, *p)
	}
	return out, nil
}

func (r *fakeProductRepo) FindByCategory(categoryID uint, limit, offset int) ([]domain.Product, error) {
	var out []domain.Product
	for _, p := range r.products {
		if p.CategoryID == categoryID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) Update(p *domain.Product) error {
	if _, ok := r.products[p.ID]; !ok {
		return errRecordNotFound
	}
	cp := *p
	r.products[p.ID] = &cp
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

type fakeCategoryRepo struct {
	nextID     uint
	categories map[uint]*domain.Category
}

func (r *fakeCategoryRepo) Create(c *domain.Category) error {
	r.nextID++
	c.ID = r.nextID
	cp := *c
	r.categories[c.ID] = &cp
	return nil
}

func (r *fakeCategoryRepo) FindByID(id uint) (*domain.Category, error) {
	c, ok := r.categories[id]
	if !ok {
		return nil, errRecordNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCategoryRepo) FindAll() ([]domain.Category, error) {
	out := make([]domain.Category, 0, len(r.categories))
	for _, c := range r.categories {
		out = append(out, *c)
	}
	return out, nil
}

func (r *fakeCategoryRepo) Update(c *domain.Category) error {
	if _, ok := r.categories[c.ID]; !ok {
		return errRecordNotFound
	}
	cp := *c
	r.categories[c.ID] = &cp
	return nil
}

func (r *fakeCategoryRepo) Delete(id uint) error {
	delete(r.categories, id)
	return nil
}

type fakeSubcategoryRepo struct {
	nextID        uint
	subcategories map[uint]*domain.Subcategory
}

func (r *fakeSubcategoryRepo) Create(s *domain.Subcategory) error {
	r.nextID++
	s.ID = r.nextID
	cp := *s
	r.subcategories[s.ID] = &cp
	return nil
}

func (r *fakeSubcategoryRepo) FindByID(id uint) (*domain.Subcategory, error) {
	s, ok := r.subcategories[id]
	if !ok {
		return nil, errRecordNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *fakeSubcategoryRepo) FindByCategory(categoryID uint) ([]domain.Subcategory, error) {
	var out []domain.Subcategory
	for _, s := range r.subcategories {
		if s.CategoryID == categoryID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *fakeSubcategoryRepo) Update(s *domain.Subcategory) error {
	if _, ok := r.subcategories[s.ID]; !ok {
		return errRecordNotFound
	}
	cp := *s
	r.subcategories[s.ID] = &cp
	return nil
}

func (r *fakeSubcategoryRepo) Delete(id uint) error {
	delete(r.subcategories, id)
	return nil
}

type fakeRecorder struct {
	actions []string
}

func (r *fakeRecorder) Record(actorID uint, action string) error {
	r.actions = append(r.actions, action)
	return nil
}

// fakeUnitOfWork rolls repository state back when fn fails so bulk writes
// behave transactionally.
type fakeUnitOfWork struct {
	products      *fakeProductRepo
	categories    *fakeCategoryRepo
	subcategories *fakeSubcategoryRepo
	audit         *fakeRecorder
}

func (u *fakeUnitOfWork) Execute(ctx context.Context, fn func(domain.Repos) error) error {
	snap := make(map[uint]*domain.Product, len(u.products.products))
	for id, p := range u.products.products {
		cp := *p
		snap[id] = &cp
	}

	err := fn(domain.Repos{
		Products:      u.products,
		Categories:    u.categories,
		Subcategories: u.subcategories,
		Audit:         u.audit,
	})
	if err != nil {
		u.products.products = snap
	}
	return err
}

type catalogFixture struct {
	uow           *fakeUnitOfWork
	products      *fakeProductRepo
	categories    *fakeCategoryRepo
	subcategories *fakeSubcategoryRepo
	audit         *fakeRecorder
}

func newCatalogFixture() *catalogFixture {
	f := &catalogFixture{
		products:      &fakeProductRepo{products: make(map[uint]*domain.Product)},
		categories:    &fakeCategoryRepo{categories: make(map[uint]*domain.Category)},
		subcategories: &fakeSubcategoryRepo{subcategories: make(map[uint]*domain.Subcategory)},
		audit:         &fakeRecorder{},
	}
	f.uow = &fakeUnitOfWork{
		products:      f.products,
		categories:    f.categories,
		subcategories: f.subcategories,
		audit:         f.audit,
	}
	return f
}

func (f *catalogFixture) seedCategory(name string) *domain.Category {
	c := &domain.Category{Name: name}
	_ = f.categories.Create(c)
	return c
}
