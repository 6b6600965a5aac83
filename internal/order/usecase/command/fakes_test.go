package command

import (
	"context"
	"fmt"
	"sync"

	"gorm.io/gorm"

	auditdomain "github.com/cedarmart/commerce/internal/audit/domain"
	catalogdomain "github.com/cedarmart/commerce/internal/catalog/domain"

	"github.com/cedarmart/commerce/internal/order/domain"
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

func (r *fakeProductRepo) snapshot() map[uint]*catalogdomain.Product {
	s := make(map[uint]*catalogdomain.Product, len(r.products))
	for id, p := range r.products {
		cp := *p
		s[id] = &cp
	}
	return s
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

type fakeOrderRepo struct {
	nextOrderID  uint
	nextItemID   uint
	nextReturnID uint
	orders       map[uint]*domain.Order
	returns      map[uint]*domain.Return
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{
		orders:  make(map[uint]*domain.Order),
		returns: make(map[uint]*domain.Return),
	}
}

func (r *fakeOrderRepo) snapshot() (map[uint]*domain.Order, map[uint]*domain.Return) {
	orders := make(map[uint]*domain.Order, len(r.orders))
	for id, o := range r.orders {
		cp := *o
		cp.Items = append([]domain.OrderItem(nil), o.Items...)
		orders[id] = &cp
	}
	returns := make(map[uint]*domain.Return, len(r.returns))
	for id, ret := range r.returns {
		cp := *ret
		returns[id] = &cp
	}
	return orders, returns
}

func (r *fakeOrderRepo) Create(order *domain.Order) error {
	r.nextOrderID++
	order.ID = r.nextOrderID
	for i := range order.Items {
		r.nextItemID++
		order.Items[i].ID = r.nextItemID
		order.Items[i].OrderID = order.ID
	}
	cp := *order
	cp.Items = append([]domain.OrderItem(nil), order.Items...)
	r.orders[order.ID] = &cp
	return nil
}

func (r *fakeOrderRepo) FindByID(id uint) (*domain.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, errRecordNotFound
	}
	cp := *o
	cp.Items = append([]domain.OrderItem(nil), o.Items...)
	return &cp, nil
}

func (r *fakeOrderRepo) FindByIDForUpdate(id uint) (*domain.Order, error) {
	return r.FindByID(id)
}

func (r *fakeOrderRepo) FindAll(limit, offset int) ([]domain.Order, error) {
	return nil, nil
}

func (r *fakeOrderRepo) FindByUser(userID uint, limit, offset int) ([]domain.Order, error) {
	return nil, nil
}

func (r *fakeOrderRepo) Update(order *domain.Order) error {
	stored, ok := r.orders[order.ID]
	if !ok {
		return errRecordNotFound
	}
	items := stored.Items
	cp := *order
	cp.Items = items
	r.orders[order.ID] = &cp
	return nil
}

func (r *fakeOrderRepo) Delete(id uint) error {
	delete(r.orders, id)
	return nil
}

func (r *fakeOrderRepo) Count() (int64, error) {
	return int64(len(r.orders)), nil
}

func (r *fakeOrderRepo) FindItem(orderID, itemID uint) (*domain.OrderItem, error) {
	o, ok := r.orders[orderID]
	if !ok {
		return nil, nil
	}
	for _, item := range o.Items {
		if item.ID == itemID {
			cp := item
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeOrderRepo) DeleteItem(id uint) error {
	for _, o := range r.orders {
		for i, item := range o.Items {
			if item.ID == id {
				o.Items = append(o.Items[:i], o.Items[i+1:]...)
				return nil
			}
		}
	}
	return errRecordNotFound
}

func (r *fakeOrderRepo) CreateReturn(ret *domain.Return) error {
	r.nextReturnID++
	ret.ID = r.nextReturnID
	cp := *ret
	r.returns[ret.ID] = &cp
	return nil
}

func (r *fakeOrderRepo) FindReturnByID(id uint) (*domain.Return, error) {
	ret, ok := r.returns[id]
	if !ok {
		return nil, errRecordNotFound
	}
	cp := *ret
	return &cp, nil
}

func (r *fakeOrderRepo) FindAllReturns(limit, offset int) ([]domain.Return, error) {
	out := make([]domain.Return, 0, len(r.returns))
	for _, ret := range r.returns {
		out = append(out, *ret)
	}
	return out, nil
}

func (r *fakeOrderRepo) UpdateReturn(ret *domain.Return) error {
	if _, ok := r.returns[ret.ID]; !ok {
		return errRecordNotFound
	}
	cp := *ret
	r.returns[ret.ID] = &cp
	return nil
}

type fakeRecorder struct {
	actions []string
}

func (r *fakeRecorder) Record(actorID uint, action string) error {
	r.actions = append(r.actions, fmt.Sprintf("%d: %s", actorID, action))
	return nil
}

type fakePublisher struct {
	placed   int
	canceled int
}

func (p *fakePublisher) OrderPlaced(ctx context.Context, order *domain.Order) error {
	p.placed++
	return nil
}

func (p *fakePublisher) OrderCanceled(ctx context.Context, order *domain.Order) error {
	p.canceled++
	return nil
}

// fakeUnitOfWork serializes transactions with a mutex and rolls repository
// state back when fn fails, matching the real transactional behavior.
type fakeUnitOfWork struct {
	mu       sync.Mutex
	orders   *fakeOrderRepo
	products *fakeProductRepo
	audit    *fakeRecorder
}

func (u *fakeUnitOfWork) Execute(ctx context.Context, fn func(domain.Repos) error) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	productSnap := u.products.snapshot()
	orderSnap, returnSnap := u.orders.snapshot()

	err := fn(domain.Repos{Orders: u.orders, Products: u.products, Audit: u.audit})
	if err != nil {
		u.products.products = productSnap
		u.orders.orders = orderSnap
		u.orders.returns = returnSnap
	}
	return err
}

type orderFixture struct {
	uow       *fakeUnitOfWork
	orders    *fakeOrderRepo
	products  *fakeProductRepo
	audit     *fakeRecorder
	publisher *fakePublisher
}

func newOrderFixture(products ...*catalogdomain.Product) *orderFixture {
	f := &orderFixture{
		orders:    newFakeOrderRepo(),
		products:  newFakeProductRepo(products...),
		audit:     &fakeRecorder{},
		publisher: &fakePublisher{},
	}
	f.uow = &fakeUnitOfWork{orders: f.orders, products: f.products, audit: f.audit}
	return f
}

var _ auditdomain.Recorder = (*fakeRecorder)(nil)
var _ domain.OrderRepository = (*fakeOrderRepo)(nil)
var _ catalogdomain.ProductRepository = (*fakeProductRepo)(nil)
