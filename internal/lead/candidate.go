package lead

// Coordinates is a WGS84 point.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Review is a single review snippet attached to a Candidate. The author is
// intentionally not carried; only the text and rating matter for scoring.
type Review struct {
	Text   string  `json:"text"`
	Rating float64 `json:"rating"`
}

// Candidate is a normalized place record emitted by the search stage.
// It is immutable once returned by the searcher; downstream stages
// (filter, scorer, outreach) only read it.
type Candidate struct {
	ID             string       `json:"id"`
	Name           string       `json:"name"`
	Address        string       `json:"address,omitempty"`
	Phone          string       `json:"phone,omitempty"`
	Website        string       `json:"website,omitempty"`
	Rating         float64      `json:"rating,omitempty"`
	ReviewCount    int          `json:"review_count,omitempty"`
	Types          []string     `json:"types,omitempty"`
	BusinessStatus string       `json:"business_status,omitempty"`
	PriceLevel     string       `json:"price_level,omitempty"`
	Location       *Coordinates `json:"location,omitempty"`
	Reviews        []Review     `json:"reviews,omitempty"`
}

// HasWebsite reports whether the candidate already has a web presence.
// Candidates without one are the highest-value prospects for a web-services
// outreach campaign.
func (c Candidate) HasWebsite() bool {
	return c.Website != ""
}
