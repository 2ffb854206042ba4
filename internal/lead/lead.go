package lead

import "github.com/google/uuid"

// SourcePlaces identifies leads discovered through the places search.
const SourcePlaces = "google_places"

// Lead is the record shape handed to the CRM/storage layer. The pipeline
// only produces it; persistence belongs to the consumer.
type Lead struct {
	ID              string       `json:"id"`
	Name            string       `json:"name"`
	Phone           string       `json:"phone,omitempty"`
	Website         string       `json:"website,omitempty"`
	Address         string       `json:"address,omitempty"`
	Location        *Coordinates `json:"location,omitempty"`
	Category        string       `json:"category,omitempty"`
	Score           float64      `json:"score"`
	Urgency         Urgency      `json:"urgency"`
	HasWebsite      bool         `json:"has_website"`
	Tags            []string     `json:"tags,omitempty"`
	ContactStrategy string       `json:"contact_strategy,omitempty"`
	Source          string       `json:"source"`
}

// NewLead builds a Lead from a scored candidate.
func NewLead(c Candidate, s ScoreResult) Lead {
	return Lead{
		ID:              uuid.New().String(),
		Name:            c.Name,
		Phone:           c.Phone,
		Website:         c.Website,
		Address:         c.Address,
		Location:        c.Location,
		Category:        s.Category,
		Score:           s.Score,
		Urgency:         s.Urgency,
		HasWebsite:      c.HasWebsite(),
		Tags:            c.Types,
		ContactStrategy: s.ContactStrategy,
		Source:          SourcePlaces,
	}
}
