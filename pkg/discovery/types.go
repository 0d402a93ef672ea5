package discovery

// DefaultRadiusKm is the search radius used when the caller has not
// customized one.
const DefaultRadiusKm = 10.0

// DefaultCoordinate is the fallback position (Kigali city center) used
// when geolocation is denied or unavailable.
var DefaultCoordinate = Coordinate{Latitude: -1.9441, Longitude: 30.0619}

// Coordinate is a WGS84 position in degrees.
type Coordinate struct {
	Latitude  float64
	Longitude float64
}

// SearchType selects which endpoint family a free-text term targets.
type SearchType string

const (
	SearchBusiness SearchType = "business"
	SearchProduct  SearchType = "product"
	SearchAdvanced SearchType = "advanced"
)

// LocationFilters is the administrative-region narrowing hierarchy plus
// search radius. Empty strings mean unset; the literal sentinel "none"
// is treated as unset too.
type LocationFilters struct {
	Province string
	District string
	Sector   string
	Cell     string
	Village  string
	RadiusKm float64
}

// AdvancedParams is the multi-field search form: two free-text fields on
// top of the region hierarchy. Independent of the session's plain
// filters once advanced mode is entered.
type AdvancedParams struct {
	BusinessName string
	ProductName  string
	LocationFilters
}

// PageState tracks pagination, derived entirely from the last successful
// response. Current is 0-based.
type PageState struct {
	Current    int
	TotalItems int
	HasMore    bool
}

// Location is the hierarchical address plus coordinate of a result.
type Location struct {
	Province  string  `json:"province,omitempty"`
	District  string  `json:"district,omitempty"`
	Sector    string  `json:"sector,omitempty"`
	Cell      string  `json:"cell,omitempty"`
	Village   string  `json:"village,omitempty"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Business is one directory result. Identity is ID; pages are merged
// with dedupe on it.
type Business struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	About             string   `json:"about,omitempty"`
	WebsiteLink       string   `json:"websiteLink,omitempty"`
	Phone             string   `json:"phone,omitempty"`
	Location          Location `json:"location"`
	ProductCount      int      `json:"productCount"`
	EmployeeCount     *int     `json:"employeeCount,omitempty"`
	DistanceKm        *float64 `json:"distanceKm,omitempty"`
	FormattedDistance *string  `json:"formattedDistance,omitempty"`
}

// Page is the paginated search envelope returned by every search
// endpoint.
type Page struct {
	Data       []Business `json:"data"`
	TotalCount int        `json:"totalCount"`
	Skip       int        `json:"skip"`
	Limit      int        `json:"limit"`
	HasMore    bool       `json:"hasMore"`
}
