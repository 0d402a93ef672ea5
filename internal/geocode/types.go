package geocode

// LookupRequest represents the query parameters from the frontend.
type LookupRequest struct {
	Query string `form:"q" binding:"required,min=3"`
}

// PlaceSuggestion is the normalized data returned to the frontend form.
type PlaceSuggestion struct {
	Label    string  `json:"label"`
	Province string  `json:"province,omitempty"`
	District string  `json:"district,omitempty"`
	Sector   string  `json:"sector,omitempty"`
	Village  string  `json:"village,omitempty"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
}

type nominatimAddress struct {
	State        string `json:"state"`
	County       string `json:"county"`
	City         string `json:"city"`
	Town         string `json:"town"`
	Suburb       string `json:"suburb"`
	Village      string `json:"village"`
	Municipality string `json:"municipality"`
	Hamlet       string `json:"hamlet"`
}

// nominatimResponse mirrors the relevant parts of the OSM search payload.
type nominatimResponse struct {
	DisplayName string           `json:"display_name"`
	Lat         string           `json:"lat"`
	Lon         string           `json:"lon"`
	Address     nominatimAddress `json:"address"`
}
