// Package service implements workforce business logic: employee management
// and monthly payroll runs.
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"shopwise_backend/internal/events"
	"shopwise_backend/internal/workforce/repository"
	"shopwise_backend/internal/workforce/transport"
	"shopwise_backend/platform/apperr"
	"shopwise_backend/platform/logger"
	"shopwise_backend/platform/phone"
)

// Statutory employee contributions, in basis points of gross salary.
// Pension 6% plus maternity leave 0.3%.
const (
	pensionRateBps   = 600
	maternityRateBps = 30
)

// Service provides workforce business logic.
type Service struct {
	repo *repository.Repo
	bus  events.Bus
	log  *logger.Logger
}

// New creates a new workforce service.
func New(repo *repository.Repo, bus events.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, bus: bus, log: log}
}

// CreateEmployee registers a staff member.
func (s *Service) CreateEmployee(ctx context.Context, businessID uuid.UUID, req transport.CreateEmployeeRequest) (transport.EmployeeResponse, error) {
	hiredAt := time.Now().UTC()
	if req.HiredAt != "" {
		parsed, err := time.Parse("2006-01-02", req.HiredAt)
		if err != nil {
			return transport.EmployeeResponse{}, apperr.Validation("invalid hire date")
		}
		hiredAt = parsed
	}

	phoneNumber := req.Phone
	if phoneNumber != nil {
		normalized := phone.NormalizeE164(*phoneNumber)
		phoneNumber = &normalized
	}

	employee, err := s.repo.CreateEmployee(ctx, repository.CreateEmployeeParams{
		BusinessID:  businessID,
		FullName:    strings.TrimSpace(req.FullName),
		RoleTitle:   strings.TrimSpace(req.RoleTitle),
		Phone:       phoneNumber,
		NationalID:  req.NationalID,
		SalaryCents: req.SalaryCents,
		HiredAt:     hiredAt,
	})
	if err != nil {
		return transport.EmployeeResponse{}, err
	}

	s.bus.Publish(ctx, events.WorkforceChanged{
		BaseEvent:  events.NewBaseEvent(),
		BusinessID: businessID,
	})

	s.log.Info("employee created", "id", employee.ID, "business_id", businessID)
	return toEmployeeResponse(employee), nil
}

// UpdateEmployee patches a staff member.
func (s *Service) UpdateEmployee(ctx context.Context, businessID, id uuid.UUID, req transport.UpdateEmployeeRequest) (transport.EmployeeResponse, error) {
	phoneNumber := req.Phone
	if phoneNumber != nil {
		normalized := phone.NormalizeE164(*phoneNumber)
		phoneNumber = &normalized
	}

	employee, err := s.repo.UpdateEmployee(ctx, repository.UpdateEmployeeParams{
		ID:          id,
		BusinessID:  businessID,
		FullName:    req.FullName,
		RoleTitle:   req.RoleTitle,
		Phone:       phoneNumber,
		NationalID:  req.NationalID,
		SalaryCents: req.SalaryCents,
		Active:      req.Active,
	})
	if err != nil {
		return transport.EmployeeResponse{}, err
	}
	return toEmployeeResponse(employee), nil
}

// DeleteEmployee removes a staff member.
func (s *Service) DeleteEmployee(ctx context.Context, businessID, id uuid.UUID) error {
	if err := s.repo.DeleteEmployee(ctx, businessID, id); err != nil {
		return err
	}

	s.bus.Publish(ctx, events.WorkforceChanged{
		BaseEvent:  events.NewBaseEvent(),
		BusinessID: businessID,
	})

	s.log.Info("employee deleted", "id", id, "business_id", businessID)
	return nil
}

// GetEmployee retrieves a staff member.
func (s *Service) GetEmployee(ctx context.Context, businessID, id uuid.UUID) (transport.EmployeeResponse, error) {
	employee, err := s.repo.GetEmployeeByID(ctx, businessID, id)
	if err != nil {
		return transport.EmployeeResponse{}, err
	}
	return toEmployeeResponse(employee), nil
}

// ListEmployees lists staff with search and pagination.
func (s *Service) ListEmployees(ctx context.Context, businessID uuid.UUID, req transport.ListEmployeesRequest) (transport.EmployeeListResponse, error) {
	page, pageSize := clampPage(req.Page, req.PageSize)

	items, total, err := s.repo.ListEmployees(ctx, repository.ListEmployeesParams{
		BusinessID: businessID,
		Search:     strings.TrimSpace(req.Search),
		ActiveOnly: req.ActiveOnly,
		Offset:     (page - 1) * pageSize,
		Limit:      pageSize,
	})
	if err != nil {
		return transport.EmployeeListResponse{}, err
	}

	responses := make([]transport.EmployeeResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, toEmployeeResponse(item))
	}

	return transport.EmployeeListResponse{
		Items:      responses,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages(total, pageSize),
	}, nil
}

// RunPayroll executes payroll for the given period over all active
// employees. Gross is the monthly salary; deductions are the statutory
// employee contributions. A second run for the same period is rejected.
func (s *Service) RunPayroll(ctx context.Context, businessID uuid.UUID, req transport.RunPayrollRequest) (transport.PayrollRunResponse, error) {
	employees, err := s.repo.ListActiveEmployees(ctx, businessID)
	if err != nil {
		return transport.PayrollRunResponse{}, err
	}
	if len(employees) == 0 {
		return transport.PayrollRunResponse{}, apperr.Validation("no active employees to run payroll for")
	}

	run := repository.PayrollRun{
		BusinessID: businessID,
		Period:     req.Period,
	}
	items := make([]repository.PayrollItem, 0, len(employees))
	for _, employee := range employees {
		gross := employee.SalaryCents
		deductions := computeDeductions(gross)
		items = append(items, repository.PayrollItem{
			EmployeeID:      employee.ID,
			EmployeeName:    employee.FullName,
			GrossCents:      gross,
			DeductionsCents: deductions,
			NetCents:        gross - deductions,
		})
		run.TotalGrossCents += gross
		run.TotalDeductionsCents += deductions
		run.TotalNetCents += gross - deductions
	}

	run, items, err = s.repo.CreatePayrollRun(ctx, run, items)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateRun) {
			return transport.PayrollRunResponse{}, apperr.Conflict("payroll already run for this period")
		}
		return transport.PayrollRunResponse{}, err
	}

	s.log.Info("payroll run completed",
		"business_id", businessID,
		"period", run.Period,
		"employees", len(items),
		"total_net_cents", run.TotalNetCents,
	)
	return toRunResponse(run, items), nil
}

// ListPayrollRuns lists run history, newest period first.
func (s *Service) ListPayrollRuns(ctx context.Context, businessID uuid.UUID, page, pageSize int) (transport.PayrollRunListResponse, error) {
	page, pageSize = clampPage(page, pageSize)

	runs, total, err := s.repo.ListPayrollRuns(ctx, businessID, (page-1)*pageSize, pageSize)
	if err != nil {
		return transport.PayrollRunListResponse{}, err
	}

	responses := make([]transport.PayrollRunResponse, 0, len(runs))
	for _, run := range runs {
		responses = append(responses, toRunResponse(run, nil))
	}

	return transport.PayrollRunListResponse{
		Items:      responses,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages(total, pageSize),
	}, nil
}

// GetPayrollRun fetches one run including its per-employee items.
func (s *Service) GetPayrollRun(ctx context.Context, businessID, runID uuid.UUID) (transport.PayrollRunResponse, error) {
	run, items, err := s.repo.GetPayrollRun(ctx, businessID, runID)
	if err != nil {
		return transport.PayrollRunResponse{}, err
	}
	return toRunResponse(run, items), nil
}

// EmployeeCount reports the active head count for one business.
func (s *Service) EmployeeCount(ctx context.Context, businessID uuid.UUID) (int, error) {
	employees, err := s.repo.ListActiveEmployees(ctx, businessID)
	if err != nil {
		return 0, err
	}
	return len(employees), nil
}

func computeDeductions(grossCents int64) int64 {
	return grossCents * (pensionRateBps + maternityRateBps) / 10000
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

func toEmployeeResponse(employee repository.Employee) transport.EmployeeResponse {
	return transport.EmployeeResponse{
		ID:          employee.ID,
		FullName:    employee.FullName,
		RoleTitle:   employee.RoleTitle,
		Phone:       employee.Phone,
		NationalID:  employee.NationalID,
		SalaryCents: employee.SalaryCents,
		Active:      employee.Active,
		HiredAt:     employee.HiredAt.Format("2006-01-02"),
		CreatedAt:   employee.CreatedAt,
		UpdatedAt:   employee.UpdatedAt,
	}
}

func toRunResponse(run repository.PayrollRun, items []repository.PayrollItem) transport.PayrollRunResponse {
	resp := transport.PayrollRunResponse{
		ID:                   run.ID,
		Period:               run.Period,
		TotalGrossCents:      run.TotalGrossCents,
		TotalDeductionsCents: run.TotalDeductionsCents,
		TotalNetCents:        run.TotalNetCents,
		CreatedAt:            run.CreatedAt,
	}
	for _, item := range items {
		resp.Items = append(resp.Items, transport.PayrollItemResponse{
			EmployeeID:      item.EmployeeID,
			EmployeeName:    item.EmployeeName,
			GrossCents:      item.GrossCents,
			DeductionsCents: item.DeductionsCents,
			NetCents:        item.NetCents,
		})
	}
	return resp
}
