package transport

import "time"

type RegisterBusinessRequest struct {
	Name        string  `json:"name" validate:"required,min=2,max=160"`
	About       string  `json:"about" validate:"omitempty,max=2000"`
	WebsiteLink string  `json:"websiteLink" validate:"omitempty,url,max=300"`
	Phone       string  `json:"phone" validate:"required,max=20"`
	Province    string  `json:"province" validate:"required,max=80"`
	District    string  `json:"district" validate:"required,max=80"`
	Sector      string  `json:"sector" validate:"required,max=80"`
	Cell        string  `json:"cell" validate:"required,max=80"`
	Village     string  `json:"village" validate:"required,max=80"`
	Latitude    float64 `json:"latitude" validate:"required,gte=-90,lte=90"`
	Longitude   float64 `json:"longitude" validate:"required,gte=-180,lte=180"`
}

type UpdateBusinessRequest struct {
	Name        string  `json:"name" validate:"required,min=2,max=160"`
	About       string  `json:"about" validate:"omitempty,max=2000"`
	WebsiteLink string  `json:"websiteLink" validate:"omitempty,url,max=300"`
	Phone       string  `json:"phone" validate:"required,max=20"`
	Province    string  `json:"province" validate:"required,max=80"`
	District    string  `json:"district" validate:"required,max=80"`
	Sector      string  `json:"sector" validate:"required,max=80"`
	Cell        string  `json:"cell" validate:"required,max=80"`
	Village     string  `json:"village" validate:"required,max=80"`
	Latitude    float64 `json:"latitude" validate:"required,gte=-90,lte=90"`
	Longitude   float64 `json:"longitude" validate:"required,gte=-180,lte=180"`
	Published   *bool   `json:"published" validate:"omitempty"`
}

type LogoUploadRequest struct {
	FileName    string `json:"fileName" validate:"required,max=255"`
	ContentType string `json:"contentType" validate:"required,max=100"`
	SizeBytes   int64  `json:"sizeBytes" validate:"required,gt=0"`
}

type BusinessResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	About       string    `json:"about"`
	WebsiteLink string    `json:"websiteLink"`
	Phone       string    `json:"phone"`
	Province    string    `json:"province"`
	District    string    `json:"district"`
	Sector      string    `json:"sector"`
	Cell        string    `json:"cell"`
	Village     string    `json:"village"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	LogoKey     *string   `json:"logoKey,omitempty"`
	Published   bool      `json:"published"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
