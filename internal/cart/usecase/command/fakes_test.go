package command

import (
	"context"
	"sync"

	"gorm.io/gorm"

	catalogdomain "github.com/cedarmart/commerce/internal/catalog/domain"

	"github.com/cedarmart/commerce/internal/cart/domain"
)

var errRecordNotFound = gorm.ErrRecordNotFound

type fakeProductRepo struct {
	products map[uint]*catalogdomain.Product

	// When set, FindByIDForUpdate fails with this error, standing in for
	// a connection dropping mid-transaction.
	lockErr error
}

func newFakeProductRepo(products ...*catalogdomain.Product) *fakeProductRepo {
	r := &fakeProductRepo{products: make(map[uint]*catalogdomain.Product)}
	for _, p := range products {
		r.products[p.ID] = p
	}
	return r
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
	if r.lockErr != nil {
		return nil, r.lockErr
	}
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

type fakeCartRepo struct {
	nextCartID uint
	nextItemID uint
	carts      map[uint]*domain.Cart
	items      map[uint]domain.CartItem
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{
		carts: make(map[uint]*domain.Cart),
		items: make(map[uint]domain.CartItem),
	}
}

func (r *fakeCartRepo) FindByUserID(userID uint) (*domain.Cart, error) {
	for _, cart := range r.carts {
		if cart.UserID == userID {
			cp := *cart
			cp.Items = nil
			for _, item := range r.items {
				if item.CartID == cart.ID {
					cp.Items = append(cp.Items, item)
				}
			}
			return &cp, nil
		}
	}
	return nil, errRecordNotFound
}

func (r *fakeCartRepo) FindOrCreateByUserID(userID uint) (*domain.Cart, error) {
	if cart, err := r.FindByUserID(userID); err == nil {
		return cart, nil
	}
	r.nextCartID++
	cart := &domain.Cart{ID: r.nextCartID, UserID: userID}
	r.carts[cart.ID] = cart
	cp := *cart
	return &cp, nil
}

func (r *fakeCartRepo) FindItem(cartID, productID uint) (*domain.CartItem, error) {
	for _, item := range r.items {
		if item.CartID == cartID && item.ProductID == productID {
			cp := item
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeCartRepo) CreateItem(item *domain.CartItem) error {
	r.nextItemID++
	item.ID = r.nextItemID
	r.items[item.ID] = *item
	return nil
}

func (r *fakeCartRepo) UpdateItem(item *domain.CartItem) error {
	if _, ok := r.items[item.ID]; !ok {
		return errRecordNotFound
	}
	r.items[item.ID] = *item
	return nil
}

func (r *fakeCartRepo) DeleteItem(id uint) error {
	delete(r.items, id)
	return nil
}

func (r *fakeCartRepo) DeleteItems(cartID uint) error {
	for id, item := range r.items {
		if item.CartID == cartID {
			delete(r.items, id)
		}
	}
	return nil
}

type fakeRecorder struct {
	actions []string
}

func (r *fakeRecorder) Record(actorID uint, action string) error {
	r.actions = append(r.actions, action)
	return nil
}

// fakeUnitOfWork serializes transactions with a mutex, standing in for the
// row locks the real implementation takes.
type fakeUnitOfWork struct {
	mu    sync.Mutex
	repos domain.Repos
}

func (u *fakeUnitOfWork) Execute(ctx context.Context, fn func(domain.Repos) error) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	return fn(u.repos)
}

type cartFixture struct {
	uow      *fakeUnitOfWork
	products *fakeProductRepo
	carts    *fakeCartRepo
	audit    *fakeRecorder
}

func newCartFixture(products ...*catalogdomain.Product) *cartFixture {
	f := &cartFixture{
		products: newFakeProductRepo(products...),
		carts:    newFakeCartRepo(),
		audit:    &fakeRecorder{},
	}
	f.uow = &fakeUnitOfWork{repos: domain.Repos{
		Carts:    f.carts,
		Products: f.products,
		Audit:    f.audit,
	}}
	return f
}
