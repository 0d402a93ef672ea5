package transport

import "github.com/google/uuid"

// Expenses

type CreateExpenseRequest struct {
	Category    string  `json:"category" validate:"required,min=1,max=100"`
	AmountCents int64   `json:"amountCents" validate:"required,min=1"`
	IncurredAt  string  `json:"incurredAt,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Note        *string `json:"note,omitempty" validate:"omitempty,max=500"`
}

type ListExpensesRequest struct {
	From     string `form:"from" validate:"omitempty,datetime=2006-01-02"`
	To       string `form:"to" validate:"omitempty,datetime=2006-01-02"`
	Category string `form:"category" validate:"omitempty,max=100"`
	Page     int    `form:"page" validate:"omitempty,min=1"`
	PageSize int    `form:"pageSize" validate:"omitempty,min=1,max=100"`
}

type ExpenseResponse struct {
	ID          uuid.UUID `json:"id"`
	Category    string    `json:"category"`
	AmountCents int64     `json:"amountCents"`
	IncurredAt  string    `json:"incurredAt"`
	Note        *string   `json:"note,omitempty"`
	CreatedAt   string    `json:"createdAt"`
}

type ExpenseListResponse struct {
	Items      []ExpenseResponse `json:"items"`
	Total      int               `json:"total"`
	Page       int               `json:"page"`
	PageSize   int               `json:"pageSize"`
	TotalPages int               `json:"totalPages"`
}

// Sales

type RecordSaleRequest struct {
	ProductID      uuid.UUID `json:"productId" validate:"required"`
	Quantity       int       `json:"quantity" validate:"required,min=1"`
	UnitPriceCents *int64    `json:"unitPriceCents,omitempty" validate:"omitempty,min=0"`
	SoldAt         string    `json:"soldAt,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

type ListSalesRequest struct {
	From     string `form:"from" validate:"omitempty,datetime=2006-01-02"`
	To       string `form:"to" validate:"omitempty,datetime=2006-01-02"`
	Page     int    `form:"page" validate:"omitempty,min=1"`
	PageSize int    `form:"pageSize" validate:"omitempty,min=1,max=100"`
}

type SaleResponse struct {
	ID             uuid.UUID `json:"id"`
	ProductID      uuid.UUID `json:"productId"`
	ProductTitle   string    `json:"productTitle"`
	Quantity       int       `json:"quantity"`
	UnitPriceCents int64     `json:"unitPriceCents"`
	TotalCents     int64     `json:"totalCents"`
	SoldAt         string    `json:"soldAt"`
	CreatedAt      string    `json:"createdAt"`
}

type SaleListResponse struct {
	Items      []SaleResponse `json:"items"`
	Total      int            `json:"total"`
	Page       int            `json:"page"`
	PageSize   int            `json:"pageSize"`
	TotalPages int            `json:"totalPages"`
}

// Summary

type TopProductResponse struct {
	ProductID  uuid.UUID `json:"productId"`
	Title      string    `json:"title"`
	Quantity   int       `json:"quantity"`
	TotalCents int64     `json:"totalCents"`
}

type CategoryTotalResponse struct {
	Category   string `json:"category"`
	TotalCents int64  `json:"totalCents"`
}

type MonthlySummaryResponse struct {
	Month              string                  `json:"month"`
	SalesTotalCents    int64                   `json:"salesTotalCents"`
	SaleCount          int                     `json:"saleCount"`
	ExpensesTotalCents int64                   `json:"expensesTotalCents"`
	ExpenseCount       int                     `json:"expenseCount"`
	NetCents           int64                   `json:"netCents"`
	TopProducts        []TopProductResponse    `json:"topProducts"`
	ExpensesByCategory []CategoryTotalResponse `json:"expensesByCategory"`
}
