package transport

import "github.com/google/uuid"

// RegionFilters is the optional administrative-region narrowing hierarchy
// (province > district > sector > cell > village).
type RegionFilters struct {
	Province string `json:"province,omitempty" validate:"omitempty,max=100"`
	District string `json:"district,omitempty" validate:"omitempty,max=100"`
	Sector   string `json:"sector,omitempty" validate:"omitempty,max=100"`
	Cell     string `json:"cell,omitempty" validate:"omitempty,max=100"`
	Village  string `json:"village,omitempty" validate:"omitempty,max=100"`
}

// SearchRequest is the shared JSON body for the geo search endpoints.
type SearchRequest struct {
	Latitude  float64 `json:"latitude" validate:"min=-90,max=90"`
	Longitude float64 `json:"longitude" validate:"min=-180,max=180"`
	RadiusKm  float64 `json:"radius" validate:"omitempty,min=0,max=500"`
	Skip      int     `json:"skip" validate:"min=0"`
	Limit     int     `json:"limit" validate:"omitempty,min=1,max=100"`
	RegionFilters
}

// AdvancedSearchRequest is the multi-field search body. Clients may send the
// literal sentinel "none" for unset fields; the service normalizes it away.
type AdvancedSearchRequest struct {
	BusinessName string `json:"businessName,omitempty" validate:"omitempty,max=200"`
	ProductName  string `json:"productName,omitempty" validate:"omitempty,max=200"`
	SearchRequest
}

// LocationResponse is the hierarchical address plus coordinate of a listing.
type LocationResponse struct {
	Province  string  `json:"province,omitempty"`
	District  string  `json:"district,omitempty"`
	Sector    string  `json:"sector,omitempty"`
	Cell      string  `json:"cell,omitempty"`
	Village   string  `json:"village,omitempty"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// BusinessResult is one directory listing in a search response.
type BusinessResult struct {
	ID                uuid.UUID        `json:"id"`
	Name              string           `json:"name"`
	About             string           `json:"about,omitempty"`
	WebsiteLink       string           `json:"websiteLink,omitempty"`
	Phone             string           `json:"phone,omitempty"`
	Location          LocationResponse `json:"location"`
	ProductCount      int              `json:"productCount"`
	EmployeeCount     *int             `json:"employeeCount,omitempty"`
	DistanceKm        *float64         `json:"distanceKm,omitempty"`
	FormattedDistance *string          `json:"formattedDistance,omitempty"`
}

// SearchResponse is the paginated search envelope.
type SearchResponse struct {
	Data       []BusinessResult `json:"data"`
	TotalCount int              `json:"totalCount"`
	Skip       int              `json:"skip"`
	Limit      int              `json:"limit"`
	HasMore    bool             `json:"hasMore"`
}
