package adapters

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	assistantservice "shopwise_backend/internal/assistant/service"
	businessrepo "shopwise_backend/internal/business/repository"
	catalogrepo "shopwise_backend/internal/catalog/repository"
	financerepo "shopwise_backend/internal/finance/repository"
	workforcerepo "shopwise_backend/internal/workforce/repository"
)

// AssistantContextProvider assembles the business snapshot the assistant
// injects into its system prompt. It reads across the other bounded
// contexts' repositories without coupling their services.
type AssistantContextProvider struct {
	businesses *businessrepo.Repository
	catalog    catalogrepo.Repository
	finance    *financerepo.Repo
	workforce  *workforcerepo.Repo
}

// NewAssistantContextProvider creates the adapter.
func NewAssistantContextProvider(
	businesses *businessrepo.Repository,
	catalog catalogrepo.Repository,
	finance *financerepo.Repo,
	workforce *workforcerepo.Repo,
) *AssistantContextProvider {
	return &AssistantContextProvider{
		businesses: businesses,
		catalog:    catalog,
		finance:    finance,
		workforce:  workforce,
	}
}

// Snapshot renders a compact plain-text view of the business: profile,
// top products, current-month finances and head count. Sections that
// fail to load are skipped so one bad query never blocks a reply.
func (p *AssistantContextProvider) Snapshot(ctx context.Context, businessID uuid.UUID) (string, error) {
	var b strings.Builder

	business, err := p.businesses.GetByID(ctx, businessID)
	if err != nil {
		return "", err
	}
	fmt.Fprintf(&b, "Business: %s (%s, %s)\n", business.Name, business.District, business.Province)
	if business.About != "" {
		fmt.Fprintf(&b, "About: %s\n", business.About)
	}

	products, total, err := p.catalog.ListProducts(ctx, catalogrepo.ListProductsParams{
		BusinessID: businessID,
		Limit:      10,
		SortBy:     "stockQuantity",
		SortOrder:  "desc",
	})
	if err == nil {
		fmt.Fprintf(&b, "Products (%d total):\n", total)
		for _, product := range products {
			fmt.Fprintf(&b, "- %s (%s): %d in stock, %d cents\n",
				product.Title, product.Category, product.StockQuantity, product.PriceCents)
		}
	}

	now := time.Now().UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	summary, err := p.finance.GetMonthlySummary(ctx, businessID, monthStart, monthStart.AddDate(0, 1, 0))
	if err == nil {
		fmt.Fprintf(&b, "This month: %d sales totaling %d cents, %d expenses totaling %d cents\n",
			summary.SaleCount, summary.SalesTotalCents, summary.ExpenseCount, summary.ExpensesTotalCents)
		for _, top := range summary.TopProducts {
			fmt.Fprintf(&b, "- top seller: %s, %d sold\n", top.Title, top.Quantity)
		}
	}

	employees, err := p.workforce.ListActiveEmployees(ctx, businessID)
	if err == nil {
		fmt.Fprintf(&b, "Active employees: %d\n", len(employees))
	}

	return b.String(), nil
}

// Compile-time check that the adapter satisfies the port.
var _ assistantservice.ContextProvider = (*AssistantContextProvider)(nil)
