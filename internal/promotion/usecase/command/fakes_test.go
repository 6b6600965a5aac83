package command

import (
	"context"
	"errors"

	orderdomain "github.com/cedarmart/commerce/internal/order/domain"

	"github.com/cedarmart/commerce/internal/promotion/domain"
)

var errRecordNotFound = errors.New("record not found")

type fakePromotionRepo struct {
	promotions map[uint]*domain.Promotion
}

func (r *fakePromotionRepo) Create(p *domain.Promotion) error {
	if p.ID == 0 {
		p.ID = uint(len(r.promotions) + 1)
	}
	r.promotions[p.ID] = p
	return nil
}

func (r *fakePromotionRepo) FindByID(id uint) (*domain.Promotion, error) {
	p, ok := r.promotions[id]
	if !ok {
		return nil, errRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakePromotionRepo) FindAll() ([]domain.Promotion, error) {
	out := make([]domain.Promotion, 0, len(r.promotions))
	for _, p := range r.promotions {
		out = append(out, *p)
	}
	return out, nil
}

func (r *fakePromotionRepo) Update(p *domain.Promotion) error {
	if _, ok := r.promotions[p.ID]; !ok {
		return errRecordNotFound
	}
	r.promotions[p.ID] = p
	return nil
}

func (r *fakePromotionRepo) Delete(id uint) error {
	delete(r.promotions, id)
	return nil
}

func (r *fakePromotionRepo) ReplaceProducts(promotionID uint, productIDs []uint) error {
	return nil
}

func (r *fakePromotionRepo) DetachProducts(promotionID uint) error {
	return nil
}

type fakeCouponRepo struct {
	coupons map[uint]*domain.Coupon
}

func (r *fakeCouponRepo) Create(c *domain.Coupon) error {
	if c.ID == 0 {
		c.ID = uint(len(r.coupons) + 1)
	}
	r.coupons[c.ID] = c
	return nil
}

func (r *fakeCouponRepo) FindByID(id uint) (*domain.Coupon, error) {
	c, ok := r.coupons[id]
	if !ok {
		return nil, errRecordNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCouponRepo) FindByCode(code string) (*domain.Coupon, error) {
	for _, c := range r.coupons {
		if c.Code == code {
			cp := *c
			return &cp, nil
		}
	}
	return nil, errRecordNotFound
}

func (r *fakeCouponRepo) FindByCodeForUpdate(code string) (*domain.Coupon, error) {
	return r.FindByCode(code)
}

func (r *fakeCouponRepo) FindForUser(userID uint) ([]domain.Coupon, error) {
	var out []domain.Coupon
	for _, c := range r.coupons {
		if c.UserID == nil || *c.UserID == userID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *fakeCouponRepo) Update(c *domain.Coupon) error {
	if _, ok := r.coupons[c.ID]; !ok {
		return errRecordNotFound
	}
	cp := *c
	r.coupons[c.ID] = &cp
	return nil
}

func (r *fakeCouponRepo) Delete(id uint) error {
	delete(r.coupons, id)
	return nil
}

type fakeOrderRepo struct {
	orders map[uint]*orderdomain.Order
}

func (r *fakeOrderRepo) Create(o *orderdomain.Order) error {
	r.orders[o.ID] = o
	return nil
}

func (r *fakeOrderRepo) FindByID(id uint) (*orderdomain.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, errRecordNotFound
	}
	cp := *o
	return &cp, nil
}

func (r *fakeOrderRepo) FindByIDForUpdate(id uint) (*orderdomain.Order, error) {
	return r.FindByID(id)
}

func (r *fakeOrderRepo) FindAll(limit, offset int) ([]orderdomain.Order, error) {
	return nil, nil
}

func (r *fakeOrderRepo) FindByUser(userID uint, limit, offset int) ([]orderdomain.Order, error) {
	return nil, nil
}

func (r *fakeOrderRepo) Update(o *orderdomain.Order) error {
	if _, ok := r.orders[o.ID]; !ok {
		return errRecordNotFound
	}
	cp := *o
	r.orders[o.ID] = &cp
	return nil
}

func (r *fakeOrderRepo) Delete(id uint) error {
	delete(r.orders, id)
	return nil
}

func (r *fakeOrderRepo) Count() (int64, error) {
	return int64(len(r.orders)), nil
}

func (r *fakeOrderRepo) FindItem(orderID, itemID uint) (*orderdomain.OrderItem, error) {
	return nil, nil
}

func (r *fakeOrderRepo) DeleteItem(id uint) error {
	return nil
}

func (r *fakeOrderRepo) CreateReturn(ret *orderdomain.Return) error {
	return nil
}

func (r *fakeOrderRepo) FindReturnByID(id uint) (*orderdomain.Return, error) {
	return nil, errRecordNotFound
}

func (r *fakeOrderRepo) FindAllReturns(limit, offset int) ([]orderdomain.Return, error) {
	return nil, nil
}

func (r *fakeOrderRepo) UpdateReturn(ret *orderdomain.Return) error {
	return nil
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

type promotionFixture struct {
	uow        *fakeUnitOfWork
	promotions *fakePromotionRepo
	coupons    *fakeCouponRepo
	orders     *fakeOrderRepo
	audit      *fakeRecorder
}

func newPromotionFixture() *promotionFixture {
	f := &promotionFixture{
		promotions: &fakePromotionRepo{promotions: make(map[uint]*domain.Promotion)},
		coupons:    &fakeCouponRepo{coupons: make(map[uint]*domain.Coupon)},
		orders:     &fakeOrderRepo{orders: make(map[uint]*orderdomain.Order)},
		audit:      &fakeRecorder{},
	}
	f.uow = &fakeUnitOfWork{repos: domain.Repos{
		Promotions: f.promotions,
		Coupons:    f.coupons,
		Orders:     f.orders,
		Audit:      f.audit,
	}}
	return f
}
