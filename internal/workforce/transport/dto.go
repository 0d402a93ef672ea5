package transport

import "github.com/google/uuid"

// Employees

type CreateEmployeeRequest struct {
	FullName    string  `json:"fullName" validate:"required,min=1,max=200"`
	RoleTitle   string  `json:"roleTitle" validate:"required,min=1,max=100"`
	Phone       *string `json:"phone,omitempty" validate:"omitempty,min=6,max=20"`
	NationalID  *string `json:"nationalId,omitempty" validate:"omitempty,min=4,max=32"`
	SalaryCents int64   `json:"salaryCents" validate:"min=0"`
	HiredAt     string  `json:"hiredAt,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

type UpdateEmployeeRequest struct {
	FullName    *string `json:"fullName,omitempty" validate:"omitempty,min=1,max=200"`
	RoleTitle   *string `json:"roleTitle,omitempty" validate:"omitempty,min=1,max=100"`
	Phone       *string `json:"phone,omitempty" validate:"omitempty,min=6,max=20"`
	NationalID  *string `json:"nationalId,omitempty" validate:"omitempty,min=4,max=32"`
	SalaryCents *int64  `json:"salaryCents,omitempty" validate:"omitempty,min=0"`
	Active      *bool   `json:"active,omitempty"`
}

type ListEmployeesRequest struct {
	Search     string `form:"search" validate:"max=100"`
	ActiveOnly bool   `form:"activeOnly"`
	Page       int    `form:"page" validate:"omitempty,min=1"`
	PageSize   int    `form:"pageSize" validate:"omitempty,min=1,max=100"`
}

type EmployeeResponse struct {
	ID          uuid.UUID `json:"id"`
	FullName    string    `json:"fullName"`
	RoleTitle   string    `json:"roleTitle"`
	Phone       *string   `json:"phone,omitempty"`
	NationalID  *string   `json:"nationalId,omitempty"`
	SalaryCents int64     `json:"salaryCents"`
	Active      bool      `json:"active"`
	HiredAt     string    `json:"hiredAt"`
	CreatedAt   string    `json:"createdAt"`
	UpdatedAt   string    `json:"updatedAt"`
}

type EmployeeListResponse struct {
	Items      []EmployeeResponse `json:"items"`
	Total      int                `json:"total"`
	Page       int                `json:"page"`
	PageSize   int                `json:"pageSize"`
	TotalPages int                `json:"totalPages"`
}

// Payroll

type RunPayrollRequest struct {
	Period string `json:"period" validate:"required,datetime=2006-01"`
}

type PayrollItemResponse struct {
	EmployeeID      uuid.UUID `json:"employeeId"`
	EmployeeName    string    `json:"employeeName"`
	GrossCents      int64     `json:"grossCents"`
	DeductionsCents int64     `json:"deductionsCents"`
	NetCents        int64     `json:"netCents"`
}

type PayrollRunResponse struct {
	ID                   uuid.UUID             `json:"id"`
	Period               string                `json:"period"`
	TotalGrossCents      int64                 `json:"totalGrossCents"`
	TotalDeductionsCents int64                 `json:"totalDeductionsCents"`
	TotalNetCents        int64                 `json:"totalNetCents"`
	Items                []PayrollItemResponse `json:"items,omitempty"`
	CreatedAt            string                `json:"createdAt"`
}

type PayrollRunListResponse struct {
	Items      []PayrollRunResponse `json:"items"`
	Total      int                  `json:"total"`
	Page       int                  `json:"page"`
	PageSize   int                  `json:"pageSize"`
	TotalPages int                  `json:"totalPages"`
}
