// Package repository implements expense and sale persistence.
package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"shopwise_backend/platform/apperr"
)

// Expense is a recorded business cost.
type Expense struct {
	ID          uuid.UUID `db:"id"`
	BusinessID  uuid.UUID `db:"business_id"`
	Category    string    `db:"category"`
	AmountCents int64     `db:"amount_cents"`
	IncurredAt  time.Time `db:"incurred_at"`
	Note        *string   `db:"note"`
	CreatedAt   string    `db:"created_at"`
}

// Sale is a recorded product sale. ProductTitle is snapshotted at sale
// time so history survives product renames and deletes.
type Sale struct {
	ID             uuid.UUID `db:"id"`
	BusinessID     uuid.UUID `db:"business_id"`
	ProductID      uuid.UUID `db:"product_id"`
	ProductTitle   string    `db:"product_title"`
	Quantity       int       `db:"quantity"`
	UnitPriceCents int64     `db:"unit_price_cents"`
	TotalCents     int64     `db:"total_cents"`
	SoldAt         time.Time `db:"sold_at"`
	CreatedAt      string    `db:"created_at"`
}

// TopProduct is an aggregate row in the monthly summary.
type TopProduct struct {
	ProductID  uuid.UUID
	Title      string
	Quantity   int
	TotalCents int64
}

// CategoryTotal is an expense aggregate row in the monthly summary.
type CategoryTotal struct {
	Category   string
	TotalCents int64
}

// MonthlySummary aggregates one calendar month of finance activity.
type MonthlySummary struct {
	SalesTotalCents    int64
	SaleCount          int
	ExpensesTotalCents int64
	ExpenseCount       int
	TopProducts        []TopProduct
	ExpensesByCategory []CategoryTotal
}

// CreateExpenseParams contains data for logging an expense.
type CreateExpenseParams struct {
	BusinessID  uuid.UUID
	Category    string
	AmountCents int64
	IncurredAt  time.Time
	Note        *string
}

// CreateSaleParams contains data for recording a sale.
type CreateSaleParams struct {
	BusinessID     uuid.UUID
	ProductID      uuid.UUID
	ProductTitle   string
	Quantity       int
	UnitPriceCents int64
	SoldAt         time.Time
}

// ListParams defines a time window plus pagination for list queries.
type ListParams struct {
	BusinessID uuid.UUID
	From       *time.Time
	To         *time.Time
	Category   string
	Offset     int
	Limit      int
}

// Repo implements finance persistence on Postgres.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new finance repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// CreateExpense logs a cost.
func (r *Repo) CreateExpense(ctx context.Context, params CreateExpenseParams) (Expense, error) {
	var expense Expense
	var createdAt time.Time
	err := r.pool.QueryRow(ctx, `
		INSERT INTO finance_expenses (business_id, category, amount_cents, incurred_at, note)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, business_id, category, amount_cents, incurred_at, note, created_at
	`, params.BusinessID, params.Category, params.AmountCents, params.IncurredAt, params.Note).Scan(
		&expense.ID, &expense.BusinessID, &expense.Category, &expense.AmountCents,
		&expense.IncurredAt, &expense.Note, &createdAt,
	)
	if err != nil {
		return Expense{}, fmt.Errorf("create expense: %w", err)
	}
	expense.CreatedAt = createdAt.Format(time.RFC3339)
	return expense, nil
}

// DeleteExpense removes an expense.
func (r *Repo) DeleteExpense(ctx context.Context, businessID, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM finance_expenses WHERE id = $1 AND business_id = $2`, id, businessID)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound("expense not found")
	}
	return nil
}

// ListExpenses lists expenses in a window, newest first.
func (r *Repo) ListExpenses(ctx context.Context, params ListParams) ([]Expense, int, error) {
	whereClauses := []string{"business_id = $1"}
	args := []interface{}{params.BusinessID}
	argIdx := 2

	if params.From != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("incurred_at >= $%d", argIdx))
		args = append(args, *params.From)
		argIdx++
	}
	if params.To != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("incurred_at < $%d", argIdx))
		args = append(args, *params.To)
		argIdx++
	}
	if params.Category != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("category = $%d", argIdx))
		args = append(args, params.Category)
		argIdx++
	}

	whereClause := strings.Join(whereClauses, " AND ")

	var total int
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM finance_expenses WHERE %s", whereClause)
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count expenses: %w", err)
	}

	args = append(args, params.Limit, params.Offset)
	query := fmt.Sprintf(`
		SELECT id, business_id, category, amount_cents, incurred_at, note, created_at
		FROM finance_expenses
		WHERE %s
		ORDER BY incurred_at DESC, created_at DESC
		LIMIT $%d OFFSET $%d
	`, whereClause, argIdx, argIdx+1)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	items := make([]Expense, 0)
	for rows.Next() {
		var expense Expense
		var createdAt time.Time
		if err := rows.Scan(
			&expense.ID, &expense.BusinessID, &expense.Category, &expense.AmountCents,
			&expense.IncurredAt, &expense.Note, &createdAt,
		); err != nil {
			return nil, 0, fmt.Errorf("scan expense: %w", err)
		}
		expense.CreatedAt = createdAt.Format(time.RFC3339)
		items = append(items, expense)
	}
	if rows.Err() != nil {
		return nil, 0, fmt.Errorf("iterate expenses: %w", rows.Err())
	}
	return items, total, nil
}

// CreateSale records a sale.
func (r *Repo) CreateSale(ctx context.Context, params CreateSaleParams) (Sale, error) {
	totalCents := int64(params.Quantity) * params.UnitPriceCents

	var sale Sale
	var createdAt time.Time
	err := r.pool.QueryRow(ctx, `
		INSERT INTO finance_sales (
			business_id, product_id, product_title, quantity, unit_price_cents, total_cents, sold_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, business_id, product_id, product_title, quantity, unit_price_cents, total_cents, sold_at, created_at
	`, params.BusinessID, params.ProductID, params.ProductTitle, params.Quantity,
		params.UnitPriceCents, totalCents, params.SoldAt).Scan(
		&sale.ID, &sale.BusinessID, &sale.ProductID, &sale.ProductTitle,
		&sale.Quantity, &sale.UnitPriceCents, &sale.TotalCents, &sale.SoldAt, &createdAt,
	)
	if err != nil {
		return Sale{}, fmt.Errorf("create sale: %w", err)
	}
	sale.CreatedAt = createdAt.Format(time.RFC3339)
	return sale, nil
}

// GetSaleByID fetches one sale.
func (r *Repo) GetSaleByID(ctx context.Context, businessID, id uuid.UUID) (Sale, error) {
	var sale Sale
	var createdAt time.Time
	err := r.pool.QueryRow(ctx, `
		SELECT id, business_id, product_id, product_title, quantity, unit_price_cents, total_cents, sold_at, created_at
		FROM finance_sales
		WHERE id = $1 AND business_id = $2
	`, id, businessID).Scan(
		&sale.ID, &sale.BusinessID, &sale.ProductID, &sale.ProductTitle,
		&sale.Quantity, &sale.UnitPriceCents, &sale.TotalCents, &sale.SoldAt, &createdAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Sale{}, apperr.NotFound("sale not found")
		}
		return Sale{}, fmt.Errorf("get sale by id: %w", err)
	}
	sale.CreatedAt = createdAt.Format(time.RFC3339)
	return sale, nil
}

// ListSales lists sales in a window, newest first.
func (r *Repo) ListSales(ctx context.Context, params ListParams) ([]Sale, int, error) {
	whereClauses := []string{"business_id = $1"}
	args := []interface{}{params.BusinessID}
	argIdx := 2

	if params.From != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("sold_at >= $%d", argIdx))
		args = append(args, *params.From)
		argIdx++
	}
	if params.To != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("sold_at < $%d", argIdx))
		args = append(args, *params.To)
		argIdx++
	}

	whereClause := strings.Join(whereClauses, " AND ")

	var total int
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM finance_sales WHERE %s", whereClause)
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count sales: %w", err)
	}

	args = append(args, params.Limit, params.Offset)
	query := fmt.Sprintf(`
		SELECT id, business_id, product_id, product_title, quantity, unit_price_cents, total_cents, sold_at, created_at
		FROM finance_sales
		WHERE %s
		ORDER BY sold_at DESC, created_at DESC
		LIMIT $%d OFFSET $%d
	`, whereClause, argIdx, argIdx+1)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()

	items := make([]Sale, 0)
	for rows.Next() {
		var sale Sale
		var createdAt time.Time
		if err := rows.Scan(
			&sale.ID, &sale.BusinessID, &sale.ProductID, &sale.ProductTitle,
			&sale.Quantity, &sale.UnitPriceCents, &sale.TotalCents, &sale.SoldAt, &createdAt,
		); err != nil {
			return nil, 0, fmt.Errorf("scan sale: %w", err)
		}
		sale.CreatedAt = createdAt.Format(time.RFC3339)
		items = append(items, sale)
	}
	if rows.Err() != nil {
		return nil, 0, fmt.Errorf("iterate sales: %w", rows.Err())
	}
	return items, total, nil
}

// GetMonthlySummary aggregates sales and expenses within [from, to).
func (r *Repo) GetMonthlySummary(ctx context.Context, businessID uuid.UUID, from, to time.Time) (MonthlySummary, error) {
	var summary MonthlySummary

	err := r.pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(total_cents), 0), COUNT(*)
		FROM finance_sales
		WHERE business_id = $1 AND sold_at >= $2 AND sold_at < $3
	`, businessID, from, to).Scan(&summary.SalesTotalCents, &summary.SaleCount)
	if err != nil {
		return MonthlySummary{}, fmt.Errorf("sum sales: %w", err)
	}

	err = r.pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(amount_cents), 0), COUNT(*)
		FROM finance_expenses
		WHERE business_id = $1 AND incurred_at >= $2 AND incurred_at < $3
	`, businessID, from, to).Scan(&summary.ExpensesTotalCents, &summary.ExpenseCount)
	if err != nil {
		return MonthlySummary{}, fmt.Errorf("sum expenses: %w", err)
	}

	rows, err := r.pool.Query(ctx, `
		SELECT product_id, product_title, SUM(quantity)::int, SUM(total_cents)
		FROM finance_sales
		WHERE business_id = $1 AND sold_at >= $2 AND sold_at < $3
		GROUP BY product_id, product_title
		ORDER BY SUM(total_cents) DESC
		LIMIT 5
	`, businessID, from, to)
	if err != nil {
		return MonthlySummary{}, fmt.Errorf("top products: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var top TopProduct
		if err := rows.Scan(&top.ProductID, &top.Title, &top.Quantity, &top.TotalCents); err != nil {
			return MonthlySummary{}, fmt.Errorf("scan top product: %w", err)
		}
		summary.TopProducts = append(summary.TopProducts, top)
	}
	if rows.Err() != nil {
		return MonthlySummary{}, fmt.Errorf("iterate top products: %w", rows.Err())
	}

	catRows, err := r.pool.Query(ctx, `
		SELECT category, SUM(amount_cents)
		FROM finance_expenses
		WHERE business_id = $1 AND incurred_at >= $2 AND incurred_at < $3
		GROUP BY category
		ORDER BY SUM(amount_cents) DESC
	`, businessID, from, to)
	if err != nil {
		return MonthlySummary{}, fmt.Errorf("expenses by category: %w", err)
	}
	defer catRows.Close()

	for catRows.Next() {
		var cat CategoryTotal
		if err := catRows.Scan(&cat.Category, &cat.TotalCents); err != nil {
			return MonthlySummary{}, fmt.Errorf("scan category total: %w", err)
		}
		summary.ExpensesByCategory = append(summary.ExpensesByCategory, cat)
	}
	if catRows.Err() != nil {
		return MonthlySummary{}, fmt.Errorf("iterate category totals: %w", catRows.Err())
	}

	return summary, nil
}
