package models

import "time"

// AssociatedTitle links a transaction title to a category so new
// transactions can be categorized automatically. Exact-match links take
// precedence over containment matches.
type AssociatedTitle struct {
	ID     int64 `json:"id"`
	UserID int64 `json:"-"`

	// Title is the remembered transaction title, unique per user.
	Title string `json:"title"`

	// CategoryServerID references the category record's ServerID.
	CategoryServerID string `json:"category_server_id"`

	// IsExactMatch requires the full title to match; otherwise a
	// case-insensitive containment match suffices.
	IsExactMatch bool `json:"is_exact_match"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the AssociatedTitle model.
func (a AssociatedTitle) TableName() string {
	return "associated_titles"
}
