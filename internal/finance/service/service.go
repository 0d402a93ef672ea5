// Package service implements finance business logic: expense logging,
// sale recording with stock decrement, and monthly summaries.
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"shopwise_backend/internal/events"
	"shopwise_backend/internal/finance/repository"
	"shopwise_backend/internal/finance/transport"
	"shopwise_backend/platform/apperr"
	"shopwise_backend/platform/logger"
)

// ErrInsufficientStock is returned by StockPort implementations when a
// decrement would take stock below zero.
var ErrInsufficientStock = errors.New("insufficient stock")

// ProductInfo is what a sale needs to know about the sold product.
type ProductInfo struct {
	Title      string
	PriceCents int64
}

// StockPort adjusts catalog stock for a sale. Implemented by an adapter
// over the catalog module. RestoreStock compensates a decrement when the
// sale itself cannot be persisted.
type StockPort interface {
	DecrementStock(ctx context.Context, businessID, productID uuid.UUID, quantity int) (ProductInfo, error)
	RestoreStock(ctx context.Context, businessID, productID uuid.UUID, quantity int) error
}

// Service provides finance business logic.
type Service struct {
	repo  repository.Repository
	stock StockPort
	bus   events.Bus
	log   *logger.Logger
}

// New creates a new finance service.
func New(repo repository.Repository, stock StockPort, bus events.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, stock: stock, bus: bus, log: log}
}

// CreateExpense logs a cost.
func (s *Service) CreateExpense(ctx context.Context, businessID uuid.UUID, req transport.CreateExpenseRequest) (transport.ExpenseResponse, error) {
	incurredAt := time.Now().UTC()
	if req.IncurredAt != "" {
		parsed, err := time.Parse("2006-01-02", req.IncurredAt)
		if err != nil {
			return transport.ExpenseResponse{}, apperr.Validation("invalid expense date")
		}
		incurredAt = parsed
	}

	expense, err := s.repo.CreateExpense(ctx, repository.CreateExpenseParams{
		BusinessID:  businessID,
		Category:    strings.TrimSpace(req.Category),
		AmountCents: req.AmountCents,
		IncurredAt:  incurredAt,
		Note:        req.Note,
	})
	if err != nil {
		return transport.ExpenseResponse{}, err
	}

	s.log.Info("expense logged", "id", expense.ID, "category", expense.Category, "amount_cents", expense.AmountCents)
	return toExpenseResponse(expense), nil
}

// DeleteExpense removes an expense.
func (s *Service) DeleteExpense(ctx context.Context, businessID, id uuid.UUID) error {
	return s.repo.DeleteExpense(ctx, businessID, id)
}

// ListExpenses lists expenses with optional window and category filters.
func (s *Service) ListExpenses(ctx context.Context, businessID uuid.UUID, req transport.ListExpensesRequest) (transport.ExpenseListResponse, error) {
	page, pageSize := clampPage(req.Page, req.PageSize)
	from, to, err := parseWindow(req.From, req.To)
	if err != nil {
		return transport.ExpenseListResponse{}, err
	}

	items, total, err := s.repo.ListExpenses(ctx, repository.ListParams{
		BusinessID: businessID,
		From:       from,
		To:         to,
		Category:   strings.TrimSpace(req.Category),
		Offset:     (page - 1) * pageSize,
		Limit:      pageSize,
	})
	if err != nil {
		return transport.ExpenseListResponse{}, err
	}

	responses := make([]transport.ExpenseResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, toExpenseResponse(item))
	}

	return transport.ExpenseListResponse{
		Items:      responses,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages(total, pageSize),
	}, nil
}

// RecordSale decrements stock and persists the sale. When the request
// carries no unit price the product's current price is used. The sale is
// rejected when stock would go negative.
func (s *Service) RecordSale(ctx context.Context, businessID uuid.UUID, req transport.RecordSaleRequest) (transport.SaleResponse, error) {
	soldAt := time.Now().UTC()
	if req.SoldAt != "" {
		parsed, err := time.Parse("2006-01-02", req.SoldAt)
		if err != nil {
			return transport.SaleResponse{}, apperr.Validation("invalid sale date")
		}
		soldAt = parsed
	}

	product, err := s.stock.DecrementStock(ctx, businessID, req.ProductID, req.Quantity)
	if err != nil {
		if errors.Is(err, ErrInsufficientStock) {
			return transport.SaleResponse{}, apperr.Conflict("insufficient stock")
		}
		return transport.SaleResponse{}, err
	}

	unitPrice := product.PriceCents
	if req.UnitPriceCents != nil {
		unitPrice = *req.UnitPriceCents
	}

	sale, err := s.repo.CreateSale(ctx, repository.CreateSaleParams{
		BusinessID:     businessID,
		ProductID:      req.ProductID,
		ProductTitle:   product.Title,
		Quantity:       req.Quantity,
		UnitPriceCents: unitPrice,
		SoldAt:         soldAt,
	})
	if err != nil {
		// The decrement already happened; put the stock back so a failed
		// insert does not lose inventory.
		if restoreErr := s.stock.RestoreStock(ctx, businessID, req.ProductID, req.Quantity); restoreErr != nil {
			s.log.Error("restore stock after failed sale insert",
				"product_id", req.ProductID,
				"quantity", req.Quantity,
				"error", restoreErr,
			)
		}
		return transport.SaleResponse{}, err
	}

	s.bus.Publish(ctx, events.SaleRecorded{
		BaseEvent:  events.NewBaseEvent(),
		BusinessID: businessID,
		SaleID:     sale.ID,
		ProductID:  sale.ProductID,
		Quantity:   sale.Quantity,
		TotalCents: sale.TotalCents,
	})

	s.log.Info("sale recorded",
		"id", sale.ID,
		"product_id", sale.ProductID,
		"quantity", sale.Quantity,
		"total_cents", sale.TotalCents,
	)
	return toSaleResponse(sale), nil
}

// GetSale fetches one sale.
func (s *Service) GetSale(ctx context.Context, businessID, id uuid.UUID) (transport.SaleResponse, error) {
	sale, err := s.repo.GetSaleByID(ctx, businessID, id)
	if err != nil {
		return transport.SaleResponse{}, err
	}
	return toSaleResponse(sale), nil
}

// ListSales lists sales with an optional window.
func (s *Service) ListSales(ctx context.Context, businessID uuid.UUID, req transport.ListSalesRequest) (transport.SaleListResponse, error) {
	page, pageSize := clampPage(req.Page, req.PageSize)
	from, to, err := parseWindow(req.From, req.To)
	if err != nil {
		return transport.SaleListResponse{}, err
	}

	items, total, err := s.repo.ListSales(ctx, repository.ListParams{
		BusinessID: businessID,
		From:       from,
		To:         to,
		Offset:     (page - 1) * pageSize,
		Limit:      pageSize,
	})
	if err != nil {
		return transport.SaleListResponse{}, err
	}

	responses := make([]transport.SaleResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, toSaleResponse(item))
	}

	return transport.SaleListResponse{
		Items:      responses,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages(total, pageSize),
	}, nil
}

// MonthlySummary aggregates one calendar month of activity.
func (s *Service) MonthlySummary(ctx context.Context, businessID uuid.UUID, month string) (transport.MonthlySummaryResponse, error) {
	from, err := time.Parse("2006-01", month)
	if err != nil {
		return transport.MonthlySummaryResponse{}, apperr.Validation("month must be formatted as YYYY-MM")
	}
	to := from.AddDate(0, 1, 0)

	summary, err := s.repo.GetMonthlySummary(ctx, businessID, from, to)
	if err != nil {
		return transport.MonthlySummaryResponse{}, err
	}

	resp := transport.MonthlySummaryResponse{
		Month:              month,
		SalesTotalCents:    summary.SalesTotalCents,
		SaleCount:          summary.SaleCount,
		ExpensesTotalCents: summary.ExpensesTotalCents,
		ExpenseCount:       summary.ExpenseCount,
		NetCents:           summary.SalesTotalCents - summary.ExpensesTotalCents,
		TopProducts:        make([]transport.TopProductResponse, 0, len(summary.TopProducts)),
		ExpensesByCategory: make([]transport.CategoryTotalResponse, 0, len(summary.ExpensesByCategory)),
	}
	for _, top := range summary.TopProducts {
		resp.TopProducts = append(resp.TopProducts, transport.TopProductResponse{
			ProductID:  top.ProductID,
			Title:      top.Title,
			Quantity:   top.Quantity,
			TotalCents: top.TotalCents,
		})
	}
	for _, cat := range summary.ExpensesByCategory {
		resp.ExpensesByCategory = append(resp.ExpensesByCategory, transport.CategoryTotalResponse{
			Category:   cat.Category,
			TotalCents: cat.TotalCents,
		})
	}
	return resp, nil
}

func parseWindow(fromRaw, toRaw string) (*time.Time, *time.Time, error) {
	var from, to *time.Time
	if fromRaw != "" {
		parsed, err := time.Parse("2006-01-02", fromRaw)
		if err != nil {
			return nil, nil, apperr.Validation("invalid from date")
		}
		from = &parsed
	}
	if toRaw != "" {
		parsed, err := time.Parse("2006-01-02", toRaw)
		if err != nil {
			return nil, nil, apperr.Validation("invalid to date")
		}
		// Inclusive end date: the query window is half-open.
		end := parsed.AddDate(0, 0, 1)
		to = &end
	}
	return from, to, nil
}

func clampPage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}
	return page, pageSize
}

func totalPages(total, pageSize int) int {
	if total <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}

func toExpenseResponse(expense repository.Expense) transport.ExpenseResponse {
	return transport.ExpenseResponse{
		ID:          expense.ID,
		Category:    expense.Category,
		AmountCents: expense.AmountCents,
		IncurredAt:  expense.IncurredAt.Format("2006-01-02"),
		Note:        expense.Note,
		CreatedAt:   expense.CreatedAt,
	}
}

func toSaleResponse(sale repository.Sale) transport.SaleResponse {
	return transport.SaleResponse{
		ID:             sale.ID,
		ProductID:      sale.ProductID,
		ProductTitle:   sale.ProductTitle,
		Quantity:       sale.Quantity,
		UnitPriceCents: sale.UnitPriceCents,
		TotalCents:     sale.TotalCents,
		SoldAt:         sale.SoldAt.Format("2006-01-02"),
		CreatedAt:      sale.CreatedAt,
	}
}
