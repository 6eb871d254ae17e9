package domain

import "time"

// Category classifies an announcement by urgency
type Category string

const (
	CategoryUrgent      Category = "urgente"
	CategoryImportant   Category = "importante"
	CategoryInformative Category = "informativo"
)

// IsValid reports whether the category is one of the known values
func (c Category) IsValid() bool {
	return c == CategoryUrgent || c == CategoryImportant || c == CategoryInformative
}

// Announcement is a notice published to the member area
type Announcement struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Body        string    `json:"body"`
	Category    Category  `json:"category"`
	Author      string    `json:"author"`
	PublishedAt time.Time `json:"published_at"`
}
