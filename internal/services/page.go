package services

import "gorm.io/gorm"

const (
	// DefaultPageLimit is used when a caller asks for a non-positive limit.
	DefaultPageLimit = 100
	// MaxPageLimit caps any requested limit.
	MaxPageLimit = 100
)

// Page bounds a list query. Results are always ordered by primary key.
type Page struct {
	Offset int
	Limit  int
}

// Normalize clamps the page into the accepted range.
func (p Page) Normalize() Page {
	if p.Offset < 0 {
		p.Offset = 0
	}
	if p.Limit <= 0 {
		p.Limit = DefaultPageLimit
	}
	if p.Limit > MaxPageLimit {
		p.Limit = MaxPageLimit
	}
	return p
}

// scope applies ordering, offset and limit to a query.
func (p Page) scope(table string) func(*gorm.DB) *gorm.DB {
	p = p.Normalize()
	return func(db *gorm.DB) *gorm.DB {
		return db.Order(table + ".id ASC").Offset(p.Offset).Limit(p.Limit)
	}
}
