package dto

import (
	"time"

	"github.com/Insper-Code/site-code/internal/domain"
)

// CreateAnnouncementRequest represents publishing a new announcement
type CreateAnnouncementRequest struct {
	Title    string `json:"title" binding:"required"`
	Body     string `json:"body" binding:"required"`
	Category string `json:"category" binding:"required"`
}

// Validate checks fields beyond what binding tags cover
func (r *CreateAnnouncementRequest) Validate() error {
	if r.Title == "" || r.Body == "" {
		return domain.ErrMissingFields
	}
	if !domain.Category(r.Category).IsValid() {
		return domain.ErrInvalidCategory
	}
	return nil
}

// UpdateAnnouncementRequest represents editing an announcement
type UpdateAnnouncementRequest struct {
	Title    string `json:"title" binding:"required"`
	Body     string `json:"body" binding:"required"`
	Category string `json:"category" binding:"required"`
}

// Validate checks fields beyond what binding tags cover
func (r *UpdateAnnouncementRequest) Validate() error {
	if r.Title == "" || r.Body == "" {
		return domain.ErrMissingFields
	}
	if !domain.Category(r.Category).IsValid() {
		return domain.ErrInvalidCategory
	}
	return nil
}

// AnnouncementResponse represents announcement data in responses
type AnnouncementResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Body        string    `json:"body"`
	Category    string    `json:"category"`
	Author      string    `json:"author"`
	PublishedAt time.Time `json:"published_at"`
}

// ToAnnouncementResponse converts a domain announcement to its response shape
func ToAnnouncementResponse(a *domain.Announcement) AnnouncementResponse {
	return AnnouncementResponse{
		ID:          a.ID,
		Title:       a.Title,
		Body:        a.Body,
		Category:    string(a.Category),
		Author:      a.Author,
		PublishedAt: a.PublishedAt,
	}
}

// ToAnnouncementResponses converts a slice of domain announcements
func ToAnnouncementResponses(list []*domain.Announcement) []AnnouncementResponse {
	out := make([]AnnouncementResponse, 0, len(list))
	for _, a := range list {
		out = append(out, ToAnnouncementResponse(a))
	}
	return out
}
