package models

import "time"

// Hospital is one bed-availability record.
type Hospital struct {
	ID            string `json:"id,omitempty"`
	Name          string `json:"name"`
	Email         string `json:"email,omitempty"`
	Address       string `json:"address,omitempty"`
	Area          string `json:"area,omitempty"`
	TotalBeds     int    `json:"totalBeds"`
	AvailableBeds int    `json:"availableBeds"`
	ICUBeds       int    `json:"icuBeds,omitempty"`
	Contact       string `json:"contact,omitempty"`
	Verified      bool   `json:"verified"`
}

// HasFreeBeds reports whether any bed is available.
func (h Hospital) HasFreeBeds() bool { return h.AvailableBeds > 0 }

type NewsItem struct {
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	URL         string     `json:"url,omitempty"`
	Source      string     `json:"source,omitempty"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
}

// Report is downloadable report metadata.
type Report struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	URL       string     `json:"url"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

// Volunteer is a volunteer record as seen by managers.
type Volunteer struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Area     string `json:"area,omitempty"`
	Skills   string `json:"skills,omitempty"`
	Verified bool   `json:"verified"`
}
