package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Status is the publication state of a post.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
)

// Audit holds the fields shared by all user-generated content: who wrote
// it and when it was created and last changed.
type Audit struct {
	AuthorID  int       `json:"author_id" validate:"required,gt=0"`
	CreatedAt time.Time `json:"created_at" validate:"-"`
	UpdatedAt time.Time `json:"updated_at" validate:"-"`
}

// Post represents a blog post. Slug is assigned once at creation and never
// changes afterwards, even when the title is edited.
type Post struct {
	ID      int    `json:"id" validate:"gte=0"`
	Title   string `json:"title" validate:"required,max=200"`
	Slug    string `json:"slug" validate:"omitempty,max=200"`
	Content string `json:"content" validate:"required"`
	Image   string `json:"image,omitempty" validate:"-"`
	Status  Status `json:"status" validate:"required,oneof=draft published"`
	Audit
	Comments []*Comment `json:"comments,omitempty" validate:"-"`
}

// Comment represents a comment on a blog post. A comment never outlives
// its post: deleting the post removes its comments in the same transaction.
type Comment struct {
	ID      int    `json:"id" validate:"gte=0"`
	PostID  int    `json:"post_id" validate:"required,gt=0"`
	Content string `json:"content" validate:"required"`
	Audit
	Post *Post `json:"-" validate:"-"`
}

// User is a registered account. PasswordHash is a bcrypt hash, never the
// plain password.
type User struct {
	ID           int       `json:"id" validate:"gte=0"`
	Username     string    `json:"username" validate:"required,min=3,max=50"`
	PasswordHash string    `json:"password_hash" validate:"required"`
	IsStaff      bool      `json:"is_staff"`
	CreatedAt    time.Time `json:"created_at" validate:"-"`
}
