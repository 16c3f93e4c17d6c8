package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validComment() *Comment {
	comment := &Comment{PostID: 1, Content: "Test comment"}
	comment.AuthorID = 2
	return comment
}

func TestCommentValidate(t *testing.T) {
	t.Run("valid comment", func(t *testing.T) {
		assert.NoError(t, validComment().Validate())
	})

	t.Run("missing post", func(t *testing.T) {
		comment := validComment()
		comment.PostID = 0
		assert.Error(t, comment.Validate())
	})

	t.Run("empty content", func(t *testing.T) {
		comment := validComment()
		comment.Content = ""
		assert.Error(t, comment.Validate())
	})

	t.Run("missing author", func(t *testing.T) {
		comment := validComment()
		comment.AuthorID = 0
		assert.Error(t, comment.Validate())
	})
}

func TestCommentSetPost(t *testing.T) {
	post := &Post{ID: 7}
	comment := &Comment{Content: "hi"}
	comment.SetPost(post)
	assert.Equal(t, 7, comment.PostID)
	assert.Same(t, post, comment.Post)
}

func TestCommentBeforeCreate(t *testing.T) {
	comment := validComment()
	comment.BeforeCreate()
	assert.False(t, comment.CreatedAt.IsZero())
	assert.Equal(t, comment.CreatedAt, comment.UpdatedAt)
}

func TestUserValidate(t *testing.T) {
	t.Run("valid user", func(t *testing.T) {
		user := &User{Username: "alice", PasswordHash: "$2a$10$hash"}
		assert.NoError(t, user.Validate())
	})

	t.Run("short username", func(t *testing.T) {
		user := &User{Username: "al", PasswordHash: "$2a$10$hash"}
		assert.Error(t, user.Validate())
	})

	t.Run("missing hash", func(t *testing.T) {
		user := &User{Username: "alice"}
		assert.Error(t, user.Validate())
	})
}
