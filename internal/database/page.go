package database

const (
	DefaultLimit = 100
	MaxLimit     = 1000
)

// Page is an offset/limit window over a listing.
type Page struct {
	Offset int
	Limit  int
}

// Normalize applies the default and the hard cap.
func (p Page) Normalize() Page {
	if p.Offset < 0 {
		p.Offset = 0
	}

	switch {
	case p.Limit <= 0:
		p.Limit = DefaultLimit
	case p.Limit > MaxLimit:
		p.Limit = MaxLimit
	}

	return p
}
