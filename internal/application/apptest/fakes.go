// Package apptest contiene repositorios en memoria y un TxRunner con semántica
// de snapshot/rollback para probar los casos de uso sin base de datos.
package apptest

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
)

// Store agrupa el estado compartido por todos los repositorios fake.
type Store struct {
	Stocks    map[string]*entity.Stock // clave productID|branchID
	Movements []*entity.StockMovement
	Sales     map[string]*entity.Sale
	Orders    map[string]*entity.Order
	Products  map[string]*entity.Product
	Branches  map[string]*entity.Branch
	Customers map[string]*entity.Customer
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{
		Stocks:    make(map[string]*entity.Stock),
		Sales:     make(map[string]*entity.Sale),
		Orders:    make(map[string]*entity.Order),
		Products:  make(map[string]*entity.Product),
		Branches:  make(map[string]*entity.Branch),
		Customers: make(map[string]*entity.Customer),
	}
}

func stockKey(productID, branchID string) string {
	return productID + "|" + branchID
}

// SeedStock registra stock inicial sin pasar por el caso de uso.
func (s *Store) SeedStock(productID, branchID string, qty int64) {
	s.Stocks[stockKey(productID, branchID)] = &entity.Stock{
		ProductID:       productID,
		BranchID:        branchID,
		CurrentQuantity: qty,
		LastUpdated:     time.Now(),
	}
}

// StockQty devuelve la cantidad actual o -1 si el par no existe.
func (s *Store) StockQty(productID, branchID string) int64 {
	st, ok := s.Stocks[stockKey(productID, branchID)]
	if !ok {
		return -1
	}
	return st.CurrentQuantity
}

// snapshot copia el estado completo para poder restaurarlo en un rollback.
func (s *Store) snapshot() *Store {
	cp := NewStore()
	for k, v := range s.Stocks {
		c := *v
		cp.Stocks[k] = &c
	}
	cp.Movements = make([]*entity.StockMovement, len(s.Movements))
	for i, m := range s.Movements {
		c := *m
		cp.Movements[i] = &c
	}
	for k, v := range s.Sales {
		cp.Sales[k] = cloneSale(v)
	}
	for k, v := range s.Orders {
		cp.Orders[k] = cloneOrder(v)
	}
	for k, v := range s.Products {
		c := *v
		cp.Products[k] = &c
	}
	for k, v := range s.Branches {
		c := *v
		cp.Branches[k] = &c
	}
	for k, v := range s.Customers {
		c := *v
		cp.Customers[k] = &c
	}
	return cp
}

func (s *Store) restore(from *Store) {
	s.Stocks = from.Stocks
	s.Movements = from.Movements
	s.Sales = from.Sales
	s.Orders = from.Orders
	s.Products = from.Products
	s.Branches = from.Branches
	s.Customers = from.Customers
}

func cloneSale(v *entity.Sale) *entity.Sale {
	c := *v
	c.Items = make([]*entity.SaleItem, len(v.Items))
	for i, it := range v.Items {
		ci := *it
		c.Items[i] = &ci
	}
	return &c
}

func cloneOrder(v *entity.Order) *entity.Order {
	c := *v
	c.Items = make([]*entity.OrderItem, len(v.Items))
	for i, it := range v.Items {
		ci := *it
		c.Items[i] = &ci
	}
	return &c
}

// ──────────────────────────────────────────────────────────────────────────────
// TxRunner
// ──────────────────────────────────────────────────────────────────────────────

// TxRunner implementa los TxRunner de stock, ventas y órdenes sobre el store.
// Si fn falla, restaura el snapshot previo (rollback).
type TxRunner struct {
	Store *Store
	// FailCommit fuerza un error después de ejecutar fn, simulando un commit fallido.
	FailCommit error
}

// NewTxRunner construye el runner sobre el store dado.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{Store: store}
}

func (r *TxRunner) run(fn func() error) error {
	before := r.Store.snapshot()
	if err := fn(); err != nil {
		r.Store.restore(before)
		return err
	}
	if r.FailCommit != nil {
		r.Store.restore(before)
		return r.FailCommit
	}
	return nil
}

func (r *TxRunner) RunStock(ctx context.Context, fn func(
	stockRepo repository.StockRepository,
	movRepo repository.StockMovementRepository,
) error) error {
	return r.run(func() error {
		return fn(&StockRepo{r.Store}, &MovementRepo{r.Store})
	})
}

func (r *TxRunner) RunSale(ctx context.Context, fn func(
	stockRepo repository.StockRepository,
	movRepo repository.StockMovementRepository,
	saleRepo repository.SaleRepository,
	branchRepo repository.BranchRepository,
	customerRepo repository.CustomerRepository,
) error) error {
	return r.run(func() error {
		return fn(&StockRepo{r.Store}, &MovementRepo{r.Store}, &SaleRepo{r.Store},
			&BranchRepo{r.Store}, &CustomerRepo{r.Store})
	})
}

func (r *TxRunner) RunOrder(ctx context.Context, fn func(
	stockRepo repository.StockRepository,
	movRepo repository.StockMovementRepository,
	saleRepo repository.SaleRepository,
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	branchRepo repository.BranchRepository,
) error) error {
	return r.run(func() error {
		return fn(&StockRepo{r.Store}, &MovementRepo{r.Store}, &SaleRepo{r.Store},
			&OrderRepo{r.Store}, &ProductRepo{r.Store}, &BranchRepo{r.Store})
	})
}

// ──────────────────────────────────────────────────────────────────────────────
// Repositorios
// ──────────────────────────────────────────────────────────────────────────────

// StockRepo implementa repository.StockRepository en memoria.
type StockRepo struct{ S *Store }

func (r *StockRepo) Get(productID, branchID string) (*entity.Stock, error) {
	st, ok := r.S.Stocks[stockKey(productID, branchID)]
	if !ok {
		return nil, nil
	}
	c := *st
	return &c, nil
}

func (r *StockRepo) GetForUpdate(productID, branchID string) (*entity.Stock, error) {
	return r.Get(productID, branchID)
}

func (r *StockRepo) Create(stock *entity.Stock) error {
	key := stockKey(stock.ProductID, stock.BranchID)
	if _, exists := r.S.Stocks[key]; exists {
		return fmt.Errorf("%w: stock duplicado", domain.ErrConflict)
	}
	c := *stock
	r.S.Stocks[key] = &c
	return nil
}

func (r *StockRepo) UpdateQuantity(productID, branchID string, quantity int64) error {
	st, ok := r.S.Stocks[stockKey(productID, branchID)]
	if !ok {
		return domain.ErrNotFound
	}
	st.CurrentQuantity = quantity
	st.LastUpdated = time.Now()
	return nil
}

func (r *StockRepo) ListByProducts(productIDs []string, branchID string) ([]*entity.Stock, error) {
	out := make([]*entity.Stock, 0, len(productIDs))
	for _, id := range productIDs {
		if st, ok := r.S.Stocks[stockKey(id, branchID)]; ok {
			c := *st
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *StockRepo) ListAvailableByProducts(productIDs []string, minQty int64) ([]*entity.Stock, error) {
	wanted := make(map[string]bool, len(productIDs))
	for _, id := range productIDs {
		wanted[id] = true
	}
	var out []*entity.Stock
	for _, st := range r.S.Stocks {
		if wanted[st.ProductID] && st.CurrentQuantity >= minQty {
			c := *st
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].BranchID != out[j].BranchID {
			return out[i].BranchID < out[j].BranchID
		}
		return out[i].ProductID < out[j].ProductID
	})
	return out, nil
}

func (r *StockRepo) ListByBranch(branchID string) ([]*entity.Stock, error) {
	var out []*entity.Stock
	for _, st := range r.S.Stocks {
		if st.BranchID == branchID {
			c := *st
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductID < out[j].ProductID })
	return out, nil
}

// MovementRepo implementa repository.StockMovementRepository en memoria.
type MovementRepo struct{ S *Store }

func (r *MovementRepo) Create(movement *entity.StockMovement) error {
	c := *movement
	r.S.Movements = append(r.S.Movements, &c)
	return nil
}

func (r *MovementRepo) ListByBranch(branchID string, limit, offset int) ([]*entity.StockMovement, error) {
	return r.list(func(m *entity.StockMovement) bool { return m.BranchID == branchID }, limit, offset), nil
}

func (r *MovementRepo) ListByProduct(productID string, limit, offset int) ([]*entity.StockMovement, error) {
	return r.list(func(m *entity.StockMovement) bool { return m.ProductID == productID }, limit, offset), nil
}

func (r *MovementRepo) list(match func(*entity.StockMovement) bool, limit, offset int) []*entity.StockMovement {
	var all []*entity.StockMovement
	// más recientes primero
	for i := len(r.S.Movements) - 1; i >= 0; i-- {
		if match(r.S.Movements[i]) {
			c := *r.S.Movements[i]
			all = append(all, &c)
		}
	}
	if offset >= len(all) {
		return nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all
}

// SaleRepo implementa repository.SaleRepository en memoria.
type SaleRepo struct{ S *Store }

func (r *SaleRepo) Create(sale *entity.Sale) error {
	r.S.Sales[sale.ID] = cloneSale(sale)
	return nil
}

func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	s, ok := r.S.Sales[id]
	if !ok {
		return nil, nil
	}
	return cloneSale(s), nil
}

func (r *SaleRepo) UpdateStatus(id, status string) error {
	s, ok := r.S.Sales[id]
	if !ok {
		return domain.ErrNotFound
	}
	s.Status = status
	return nil
}

func (r *SaleRepo) ListByBranch(branchID string, limit, offset int) ([]*entity.Sale, error) {
	all := r.salesSorted(branchID)
	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

func (r *SaleRepo) ListByDateRange(branchID string, from, to time.Time) ([]*entity.Sale, error) {
	var out []*entity.Sale
	for _, s := range r.salesSorted(branchID) {
		if !s.SaleDate.Before(from) && s.SaleDate.Before(to) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *SaleRepo) GetRecentItems(branchID string, limit int) ([]*entity.SaleItem, error) {
	var out []*entity.SaleItem
	for _, s := range r.salesSorted(branchID) {
		for _, it := range s.Items {
			if it.ItemType != entity.SaleItemTypeSALE {
				continue
			}
			c := *it
			out = append(out, &c)
			if len(out) == limit {
				return out, nil
			}
		}
	}
	return out, nil
}

func (r *SaleRepo) salesSorted(branchID string) []*entity.Sale {
	var out []*entity.Sale
	for _, s := range r.S.Sales {
		if s.BranchID == branchID {
			out = append(out, cloneSale(s))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SaleDate.After(out[j].SaleDate) })
	return out
}

// OrderRepo implementa repository.OrderRepository en memoria.
type OrderRepo struct{ S *Store }

func (r *OrderRepo) Create(order *entity.Order) error {
	r.S.Orders[order.ID] = cloneOrder(order)
	return nil
}

func (r *OrderRepo) GetByID(id string) (*entity.Order, error) {
	o, ok := r.S.Orders[id]
	if !ok {
		return nil, nil
	}
	return cloneOrder(o), nil
}

func (r *OrderRepo) UpdateStatus(id, status string) error {
	o, ok := r.S.Orders[id]
	if !ok {
		return domain.ErrNotFound
	}
	o.Status = status
	o.UpdatedAt = time.Now()
	return nil
}

func (r *OrderRepo) ListByCustomer(customerID, status string) ([]*entity.Order, error) {
	var out []*entity.Order
	for _, o := range r.S.Orders {
		if o.CustomerID == customerID && (status == "" || o.Status == status) {
			out = append(out, cloneOrder(o))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// ProductRepo implementa repository.ProductRepository en memoria.
type ProductRepo struct{ S *Store }

func (r *ProductRepo) Create(product *entity.Product) error {
	c := *product
	r.S.Products[product.ID] = &c
	return nil
}

func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.S.Products[id]
	if !ok {
		return nil, nil
	}
	c := *p
	return &c, nil
}

func (r *ProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	for _, p := range r.S.Products {
		if p.SKU == sku {
			c := *p
			return &c, nil
		}
	}
	return nil, nil
}

func (r *ProductRepo) GetLastCode() (string, error) {
	last := ""
	for _, p := range r.S.Products {
		if len(p.Code) > len(last) || (len(p.Code) == len(last) && p.Code > last) {
			last = p.Code
		}
	}
	return last, nil
}

func (r *ProductRepo) ListByIDs(ids []string, onlyActive bool) ([]*entity.Product, error) {
	out := make([]*entity.Product, 0, len(ids))
	for _, id := range ids {
		p, ok := r.S.Products[id]
		if !ok || (onlyActive && !p.IsActive) {
			continue
		}
		c := *p
		out = append(out, &c)
	}
	return out, nil
}

func (r *ProductRepo) Update(product *entity.Product) error {
	if _, ok := r.S.Products[product.ID]; !ok {
		return domain.ErrNotFound
	}
	c := *product
	r.S.Products[product.ID] = &c
	return nil
}

func (r *ProductRepo) UpdateImages(id, imageURL, thumbnailURL string) error {
	p, ok := r.S.Products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.ImageURL = imageURL
	p.ThumbnailURL = thumbnailURL
	return nil
}

func (r *ProductRepo) List(limit, offset int, search string, onlyActive bool) ([]*entity.Product, int, error) {
	var all []*entity.Product
	for _, p := range r.S.Products {
		if onlyActive && !p.IsActive {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(search)) {
			continue
		}
		c := *p
		all = append(all, &c)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Code < all[j].Code })
	total := len(all)
	if offset >= len(all) {
		return nil, total, nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all, total, nil
}

// BranchRepo implementa repository.BranchRepository en memoria.
type BranchRepo struct{ S *Store }

func (r *BranchRepo) Create(branch *entity.Branch) error {
	c := *branch
	r.S.Branches[branch.ID] = &c
	return nil
}

func (r *BranchRepo) GetByID(id string) (*entity.Branch, error) {
	b, ok := r.S.Branches[id]
	if !ok {
		return nil, nil
	}
	c := *b
	return &c, nil
}

func (r *BranchRepo) GetLast() (*entity.Branch, error) {
	var last *entity.Branch
	for _, b := range r.S.Branches {
		if last == nil || b.CreatedAt.After(last.CreatedAt) {
			last = b
		}
	}
	if last == nil {
		return nil, nil
	}
	c := *last
	return &c, nil
}

func (r *BranchRepo) ListByIDs(ids []string) ([]*entity.Branch, error) {
	out := make([]*entity.Branch, 0, len(ids))
	for _, id := range ids {
		if b, ok := r.S.Branches[id]; ok {
			c := *b
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *BranchRepo) Update(branch *entity.Branch) error {
	if _, ok := r.S.Branches[branch.ID]; !ok {
		return domain.ErrNotFound
	}
	c := *branch
	r.S.Branches[branch.ID] = &c
	return nil
}

func (r *BranchRepo) List(limit, offset int, search string, onlyActive bool) ([]*entity.Branch, int, error) {
	var all []*entity.Branch
	for _, b := range r.S.Branches {
		if onlyActive && !b.IsActive {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(b.Name), strings.ToLower(search)) {
			continue
		}
		c := *b
		all = append(all, &c)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Code < all[j].Code })
	total := len(all)
	if offset >= len(all) {
		return nil, total, nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all, total, nil
}

// CustomerRepo implementa repository.CustomerRepository en memoria.
type CustomerRepo struct{ S *Store }

func (r *CustomerRepo) Create(customer *entity.Customer) error {
	for _, c := range r.S.Customers {
		if c.Phone == customer.Phone {
			return fmt.Errorf("%w: teléfono", domain.ErrDuplicate)
		}
	}
	c := *customer
	r.S.Customers[customer.ID] = &c
	return nil
}

func (r *CustomerRepo) GetByID(id string) (*entity.Customer, error) {
	c, ok := r.S.Customers[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *CustomerRepo) GetByPhone(phone string) (*entity.Customer, error) {
	for _, c := range r.S.Customers {
		if c.Phone == phone {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *CustomerRepo) Update(customer *entity.Customer) error {
	if _, ok := r.S.Customers[customer.ID]; !ok {
		return domain.ErrNotFound
	}
	c := *customer
	r.S.Customers[customer.ID] = &c
	return nil
}

func (r *CustomerRepo) List(limit, offset int) ([]*entity.Customer, int, error) {
	var all []*entity.Customer
	for _, c := range r.S.Customers {
		cp := *c
		all = append(all, &cp)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	total := len(all)
	if offset >= len(all) {
		return nil, total, nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all, total, nil
}

// Aserciones de interfaz.
var (
	_ repository.StockRepository         = (*StockRepo)(nil)
	_ repository.StockMovementRepository = (*MovementRepo)(nil)
	_ repository.SaleRepository          = (*SaleRepo)(nil)
	_ repository.OrderRepository         = (*OrderRepo)(nil)
	_ repository.ProductRepository       = (*ProductRepo)(nil)
	_ repository.BranchRepository        = (*BranchRepo)(nil)
	_ repository.CustomerRepository      = (*CustomerRepo)(nil)
)
