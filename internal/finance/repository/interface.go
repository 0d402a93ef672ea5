package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository defines finance persistence operations.
type Repository interface {
	CreateExpense(ctx context.Context, params CreateExpenseParams) (Expense, error)
	DeleteExpense(ctx context.Context, businessID, id uuid.UUID) error
	ListExpenses(ctx context.Context, params ListParams) ([]Expense, int, error)
	CreateSale(ctx context.Context, params CreateSaleParams) (Sale, error)
	GetSaleByID(ctx context.Context, businessID, id uuid.UUID) (Sale, error)
	ListSales(ctx context.Context, params ListParams) ([]Sale, int, error)
	GetMonthlySummary(ctx context.Context, businessID uuid.UUID, from, to time.Time) (MonthlySummary, error)
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)
