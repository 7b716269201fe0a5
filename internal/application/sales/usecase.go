package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
)

const (
	recentItemsTTL   = time.Minute
	recentItemsLimit = 5
)

// SaleUseCase es el motor transaccional de ventas: valida el carrito contra el
// libro de stock, calcula totales, crea la venta con sus líneas y descuenta
// stock, todo dentro de una transacción.
type SaleUseCase struct {
	txRunner     TxRunner
	ledger       StockLedger
	saleRepo     repository.SaleRepository   // lecturas fuera de tx
	branchRepo   repository.BranchRepository
	customerRepo repository.CustomerRepository
	productRepo  repository.ProductRepository
	cache        Cache // opcional
	pdf          ReceiptPDFGenerator
	now          func() time.Time
}

// NewSaleUseCase construye el caso de uso.
func NewSaleUseCase(
	txRunner TxRunner,
	ledger StockLedger,
	saleRepo repository.SaleRepository,
	branchRepo repository.BranchRepository,
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
	cache Cache,
	pdf ReceiptPDFGenerator,
) *SaleUseCase {
	return &SaleUseCase{
		txRunner:     txRunner,
		ledger:       ledger,
		saleRepo:     saleRepo,
		branchRepo:   branchRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
		cache:        cache,
		pdf:          pdf,
		now:          time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *SaleUseCase) WithClock(now func() time.Time) *SaleUseCase {
	uc.now = now
	return uc
}

// GetSaleByID obtiene una venta con sus líneas.
func (uc *SaleUseCase) GetSaleByID(ctx context.Context, saleID string) (*dto.SaleResponse, error) {
	sale, err := uc.saleRepo.GetByID(saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, fmt.Errorf("%w: venta", domain.ErrNotFound)
	}
	return dto.NewSaleResponse(sale), nil
}

// GetSales lista ventas de una sucursal, más recientes primero.
func (uc *SaleUseCase) GetSales(ctx context.Context, branchID string, limit, offset int) ([]*dto.SaleResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	list, err := uc.saleRepo.ListByBranch(branchID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.SaleResponse, 0, len(list))
	for _, s := range list {
		out = append(out, dto.NewSaleResponse(s))
	}
	return out, nil
}

// GetTodaySales lista las ventas del día en curso para una sucursal.
func (uc *SaleUseCase) GetTodaySales(ctx context.Context, branchID string) ([]*dto.SaleResponse, error) {
	now := uc.now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	end := start.Add(24*time.Hour - time.Nanosecond)
	list, err := uc.saleRepo.ListByDateRange(branchID, start, end)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.SaleResponse, 0, len(list))
	for _, s := range list {
		out = append(out, dto.NewSaleResponse(s))
	}
	return out, nil
}

// GetRecentSaleItems devuelve nombre y precio de las últimas líneas vendidas en
// la sucursal. El resultado se cachea por sucursal y se invalida al vender.
func (uc *SaleUseCase) GetRecentSaleItems(ctx context.Context, branchID string) ([]*dto.RecentSaleItemResponse, error) {
	if branchID == "" {
		return nil, domain.ErrInvalidInput
	}
	cacheKey := recentItemsKey(branchID)
	if uc.cache != nil {
		var cached []*dto.RecentSaleItemResponse
		if ok, err := uc.cache.Get(ctx, cacheKey, &cached); err == nil && ok {
			return cached, nil
		}
	}

	items, err := uc.saleRepo.GetRecentItems(branchID, recentItemsLimit)
	if err != nil {
		return nil, err
	}
	productIDs := make([]string, 0, len(items))
	for _, it := range items {
		productIDs = append(productIDs, it.ProductID)
	}
	products, err := uc.productRepo.ListByIDs(productIDs, false)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(products))
	for _, p := range products {
		names[p.ID] = p.Name
	}
	out := make([]*dto.RecentSaleItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, &dto.RecentSaleItemResponse{
			ProductName: names[it.ProductID],
			Price:       it.UnitPrice,
		})
	}
	if uc.cache != nil {
		_ = uc.cache.Set(ctx, cacheKey, out, recentItemsTTL)
	}
	return out, nil
}

// GetReceiptPDF genera el recibo en PDF de una venta.
func (uc *SaleUseCase) GetReceiptPDF(ctx context.Context, saleID string) ([]byte, error) {
	if uc.pdf == nil {
		return nil, fmt.Errorf("%w: generador de recibos no configurado", domain.ErrInvalidInput)
	}
	sale, err := uc.saleRepo.GetByID(saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, fmt.Errorf("%w: venta", domain.ErrNotFound)
	}
	branch, err := uc.branchRepo.GetByID(sale.BranchID)
	if err != nil {
		return nil, err
	}
	var customer *entity.Customer
	if sale.CustomerID != "" {
		customer, _ = uc.customerRepo.GetByID(sale.CustomerID)
	}

	productIDs := make([]string, 0, len(sale.Items))
	for _, it := range sale.Items {
		productIDs = append(productIDs, it.ProductID)
	}
	products, err := uc.productRepo.ListByIDs(productIDs, false)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(products))
	for _, p := range products {
		names[p.ID] = p.Name
	}
	lines := make([]ReceiptLine, 0, len(sale.Items))
	for _, it := range sale.Items {
		lines = append(lines, ReceiptLine{
			ProductName: names[it.ProductID],
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			LineTotal:   it.LineTotal,
			ItemType:    it.ItemType,
		})
	}
	return uc.pdf.GenerateReceiptPDF(ctx, sale, branch, customer, lines)
}

// invalidateRecentItems borra el caché de items recientes tras una venta.
func (uc *SaleUseCase) invalidateRecentItems(ctx context.Context, branchID string) {
	if uc.cache != nil {
		_ = uc.cache.Delete(ctx, recentItemsKey(branchID))
	}
}

func recentItemsKey(branchID string) string {
	return "sales:recent:" + branchID
}

