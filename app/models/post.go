package models

import "time"

// Validate checks if the post meets all validation requirements
func (p *Post) Validate() error {
	return validate.Struct(p)
}

// BeforeCreate sets up any necessary fields before creation
func (p *Post) BeforeCreate() {
	now := time.Now()
	if p.Status == "" {
		p.Status = StatusDraft
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
}

// Touch refreshes the updated timestamp
func (p *Post) Touch() {
	p.UpdatedAt = time.Now()
}

// IsPublished reports whether the post is visible in public listings
func (p *Post) IsPublished() bool {
	return p.Status == StatusPublished
}
