package models

// ErrorResponse is the uniform error envelope.
type ErrorResponse struct {
	Error string `json:"error"`
}

// AckResponse acknowledges a side-effecting call.
type AckResponse struct {
	Message string `json:"message"`
}

// CheckOutResponse returns the released occupant.
type CheckOutResponse struct {
	OccupantToken string `json:"occupantToken"`
}

// RouteResponse answers a start/end route query.
type RouteResponse struct {
	Path     []string `json:"path"`
	Distance float64  `json:"distance"`
}

// NearestShelterResponse answers a nearest-shelter query.
type NearestShelterResponse struct {
	ShelterID   string   `json:"shelterId"`
	ShelterName string   `json:"shelterName"`
	Path        []string `json:"path"`
	Distance    float64  `json:"distance"`
}

// QueueStatusResponse reports the dispatch queue state.
type QueueStatusResponse struct {
	IsEmpty  bool `json:"isEmpty"`
	IsFull   bool `json:"isFull"`
	Size     int  `json:"size"`
	Capacity int  `json:"capacity"`
}
