package dataservice

import "github.com/01001010100011/scolamia.it/app/countdown"

// currentCountdownRecord is a row of the countdown_events table.
type currentCountdownRecord struct {
	ID         string `json:"id"`
	Slug       string `json:"slug"`
	Title      string `json:"title"`
	TargetAt   string `json:"target_at"`
	IsFeatured bool   `json:"is_featured"`
	Active     bool   `json:"active"`
}

// normalize maps a row to the domain event. Rows without a slug keep their
// raw id as the addressable key.
func (r currentCountdownRecord) normalize() countdown.Event {
	slug := r.Slug
	if slug == "" {
		slug = r.ID
	}
	return countdown.Event{
		ID:       r.ID,
		Slug:     slug,
		Title:    r.Title,
		TargetAt: r.TargetAt,
		Featured: r.IsFeatured,
		Active:   r.Active,
	}
}

// legacyCountdownRecord is a row of the retired school_events table, which
// spelled the featured flag differently and had no separate id column worth
// keeping.
type legacyCountdownRecord struct {
	Slug     string `json:"slug"`
	Title    string `json:"title"`
	TargetAt string `json:"target_at"`
	Featured bool   `json:"featured"`
	Active   bool   `json:"active"`
}

func (r legacyCountdownRecord) normalize() countdown.Event {
	return countdown.Event{
		Slug:     r.Slug,
		Title:    r.Title,
		TargetAt: r.TargetAt,
		Featured: r.Featured,
		Active:   r.Active,
	}
}

// postgrestError is the error body PostgREST answers with.
type postgrestError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
