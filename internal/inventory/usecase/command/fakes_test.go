package command

import (
	"context"
	"errors"
	"sort"

	catalogdomain "github.com/cedarmart/commerce/internal/catalog/domain"

	"github.com/cedarmart/commerce/internal/inventory/domain"
)

var errRecordNotFound = errors.New("record not found")

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

type fakeInventoryRepo struct {
	nextID  uint
	records map[uint]*domain.Inventory
}

func (r *fakeInventoryRepo) Create(record *domain.Inventory) error {
	r.nextID++
	record.ID = r.nextID
	cp := *record
	r.records[record.ID] = &cp
	return nil
}

func (r *fakeInventoryRepo) FindByProductAndLocation(productID uint, location string) (*domain.Inventory, error) {
	for _, rec := range r.records {
		if rec.ProductID == productID && rec.Location == location {
			cp := *rec
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeInventoryRepo) FindAll() ([]domain.Inventory, error) {
	out := make([]domain.Inventory, 0, len(r.records))
	for _, rec := range r.records {
		out = append(out, *rec)
	}
	return out, nil
}

// FindByProduct returns records best stocked first, matching the real
// repository's ordering.
func (r *fakeInventoryRepo) FindByProduct(productID uint) ([]domain.Inventory, error) {
	var out []domain.Inventory
	for _, rec := range r.records {
		if rec.ProductID == productID {
			out = append(out, *rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StockLevel > out[j].StockLevel })
	return out, nil
}

func (r *fakeInventoryRepo) Update(record *domain.Inventory) error {
	if _, ok := r.records[record.ID]; !ok {
		return errRecordNotFound
	}
	cp := *record
	r.records[record.ID] = &cp
	return nil
}

func (r *fakeInventoryRepo) SumByProduct(productID uint) (int, error) {
	total := 0
	for _, rec := range r.records {
		if rec.ProductID == productID {
			total += rec.StockLevel
		}
	}
	return total, nil
}

func (r *fakeInventoryRepo) LowStock() ([]domain.LowStockAlert, error) {
	return nil, nil
}

func (r *fakeInventoryRepo) SalesReport() ([]domain.SalesReportRow, error) {
	return nil, nil
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

type inventoryFixture struct {
	uow         *fakeUnitOfWork
	inventories *fakeInventoryRepo
	products    *fakeProductRepo
	audit       *fakeRecorder
}

func newInventoryFixture(products ...*catalogdomain.Product) *inventoryFixture {
	f := &inventoryFixture{
		inventories: &fakeInventoryRepo{records: make(map[uint]*domain.Inventory)},
		products:    &fakeProductRepo{products: make(map[uint]*catalogdomain.Product)},
		audit:       &fakeRecorder{},
	}
	for _, p := range products {
		f.products.products[p.ID] = p
	}
	f.uow = &fakeUnitOfWork{repos: domain.Repos{
		Inventories: f.inventories,
		Products:    f.products,
		Audit:       f.audit,
	}}
	return f
}
