package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"shopwise_backend/internal/events"
	"shopwise_backend/internal/finance/repository"
	"shopwise_backend/internal/finance/transport"
	"shopwise_backend/platform/logger"
)

type fakeRepo struct {
	repository.Repository

	createSaleErr error
	createdSales  []repository.CreateSaleParams
}

func (f *fakeRepo) CreateSale(ctx context.Context, params repository.CreateSaleParams) (repository.Sale, error) {
	if f.createSaleErr != nil {
		return repository.Sale{}, f.createSaleErr
	}
	f.createdSales = append(f.createdSales, params)
	return repository.Sale{
		ID:             uuid.New(),
		BusinessID:     params.BusinessID,
		ProductID:      params.ProductID,
		ProductTitle:   params.ProductTitle,
		Quantity:       params.Quantity,
		UnitPriceCents: params.UnitPriceCents,
		TotalCents:     params.UnitPriceCents * int64(params.Quantity),
		SoldAt:         params.SoldAt,
	}, nil
}

type fakeStock struct {
	decremented  []int
	restored     []int
	decrementErr error
}

func (f *fakeStock) DecrementStock(ctx context.Context, businessID, productID uuid.UUID, quantity int) (ProductInfo, error) {
	if f.decrementErr != nil {
		return ProductInfo{}, f.decrementErr
	}
	f.decremented = append(f.decremented, quantity)
	return ProductInfo{Title: "Maize flour", PriceCents: 1500}, nil
}

func (f *fakeStock) RestoreStock(ctx context.Context, businessID, productID uuid.UUID, quantity int) error {
	f.restored = append(f.restored, quantity)
	return nil
}

func newSaleService(repo *fakeRepo, stock *fakeStock) *Service {
	log := logger.New("test")
	return New(repo, stock, events.NewInMemoryBus(log), log)
}

func TestRecordSaleRestoresStockWhenInsertFails(t *testing.T) {
	repo := &fakeRepo{createSaleErr: errors.New("insert failed")}
	stock := &fakeStock{}
	svc := newSaleService(repo, stock)

	_, err := svc.RecordSale(context.Background(), uuid.New(), transport.RecordSaleRequest{
		ProductID: uuid.New(),
		Quantity:  3,
	})
	if err == nil {
		t.Fatalf("failed insert reported no error")
	}
	if len(stock.decremented) != 1 || stock.decremented[0] != 3 {
		t.Fatalf("decrements = %v, want [3]", stock.decremented)
	}
	if len(stock.restored) != 1 || stock.restored[0] != 3 {
		t.Fatalf("restores = %v, want [3]", stock.restored)
	}
}

func TestRecordSaleDoesNotRestoreStockOnSuccess(t *testing.T) {
	repo := &fakeRepo{}
	stock := &fakeStock{}
	svc := newSaleService(repo, stock)

	sale, err := svc.RecordSale(context.Background(), uuid.New(), transport.RecordSaleRequest{
		ProductID: uuid.New(),
		Quantity:  2,
	})
	if err != nil {
		t.Fatalf("record sale: %v", err)
	}
	if sale.TotalCents != 3000 {
		t.Fatalf("total = %d, want 3000 (2 x product price)", sale.TotalCents)
	}
	if len(stock.restored) != 0 {
		t.Fatalf("restores = %v, want none", stock.restored)
	}
	if len(repo.createdSales) != 1 {
		t.Fatalf("sales persisted = %d, want 1", len(repo.createdSales))
	}
}

func TestRecordSaleInsufficientStockSkipsInsert(t *testing.T) {
	repo := &fakeRepo{}
	stock := &fakeStock{decrementErr: ErrInsufficientStock}
	svc := newSaleService(repo, stock)

	_, err := svc.RecordSale(context.Background(), uuid.New(), transport.RecordSaleRequest{
		ProductID: uuid.New(),
		Quantity:  5,
	})
	if err == nil {
		t.Fatalf("insufficient stock reported no error")
	}
	if len(repo.createdSales) != 0 {
		t.Fatalf("sale persisted despite insufficient stock")
	}
	if len(stock.restored) != 0 {
		t.Fatalf("restore ran without a decrement")
	}
}

func TestParseWindow(t *testing.T) {
	from, to, err := parseWindow("2026-03-01", "2026-03-31")
	if err != nil {
		t.Fatalf("parse window: %v", err)
	}
	if from == nil || !from.Equal(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("from = %v", from)
	}
	// End date is inclusive: the half-open window must extend to April 1st.
	if to == nil || !to.Equal(time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("to = %v", to)
	}
}

func TestParseWindowOpenEnded(t *testing.T) {
	from, to, err := parseWindow("", "")
	if err != nil {
		t.Fatalf("parse window: %v", err)
	}
	if from != nil || to != nil {
		t.Fatalf("empty window parsed to %v/%v", from, to)
	}
}

func TestParseWindowRejectsGarbage(t *testing.T) {
	if _, _, err := parseWindow("03/01/2026", ""); err == nil {
		t.Fatalf("US-format date accepted")
	}
	if _, _, err := parseWindow("", "yesterday"); err == nil {
		t.Fatalf("non-date accepted")
	}
}
