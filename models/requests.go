// Package models holds the JSON request and response shapes of the HTTP
// surface. Core packages never depend on these types.
package models

// NodeRequest creates or updates a graph node.
type NodeRequest struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// EdgeRequest creates a directed edge. Bidirectional set true creates the
// reverse edge too, with "-rev" appended to its id.
type EdgeRequest struct {
	ID            string  `json:"id"`
	From          string  `json:"from"`
	To            string  `json:"to"`
	Weight        float64 `json:"weight"`
	Bidirectional bool    `json:"bidirectional,omitempty"`
}

// BlockRequest toggles an edge's blocked flag.
type BlockRequest struct {
	Blocked bool `json:"blocked"`
}

// ShelterRequest creates a shelter.
type ShelterRequest struct {
	ShelterID string  `json:"shelterId"`
	Name      string  `json:"name"`
	Capacity  int     `json:"capacity"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// CheckInRequest admits one occupant. An empty token gets a generated one.
type CheckInRequest struct {
	OccupantToken string `json:"occupantToken"`
}

// SensorDataRequest records an obstacle. Either the structured fields or
// the legacy colon-joined Data form must be present.
type SensorDataRequest struct {
	EdgeID       string `json:"edgeId"`
	ObstacleType string `json:"obstacleType"`
	Description  string `json:"description"`
	// Data is the legacy "edgeId:obstacleType:description" form.
	Data string `json:"data,omitempty"`
}

// EnqueueRequest submits a rescue request.
type EnqueueRequest struct {
	FamilyName    string `json:"familyName"`
	Address       string `json:"address"`
	ChildrenCount int    `json:"childrenCount"`
	ElderlyCount  int    `json:"elderlyCount"`
	SpecialNeeds  string `json:"specialNeeds,omitempty"`
}
