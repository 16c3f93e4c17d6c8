package models

import "time"

// Validate checks if the comment meets all validation requirements
func (c *Comment) Validate() error {
	return validate.Struct(c)
}

// BeforeCreate sets up any necessary fields before creation
func (c *Comment) BeforeCreate() {
	now := time.Now()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	c.UpdatedAt = now
}

// SetPost sets the parent post and updates the PostID
func (c *Comment) SetPost(post *Post) {
	c.Post = post
	if post != nil {
		c.PostID = post.ID
	}
}
