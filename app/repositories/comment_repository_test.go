package repositories

import (
	"testing"
	"time"

	"inkwell/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newComment(postID int, content string) *models.Comment {
	comment := &models.Comment{PostID: postID, Content: content}
	comment.AuthorID = 2
	return comment
}

func TestBadgerCommentRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewBadgerCommentRepository(db)

	t.Run("create assigns id and timestamps", func(t *testing.T) {
		comment := newComment(1, "first!")
		require.NoError(t, repo.Create(comment))
		assert.Equal(t, 1, comment.ID)
		assert.False(t, comment.CreatedAt.IsZero())
	})

	t.Run("get by id", func(t *testing.T) {
		comment, err := repo.GetByID(1)
		require.NoError(t, err)
		assert.Equal(t, "first!", comment.Content)
		assert.Equal(t, 1, comment.PostID)
	})

	t.Run("get missing comment", func(t *testing.T) {
		_, err := repo.GetByID(999)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		comment := newComment(1, "soon gone")
		require.NoError(t, repo.Create(comment))
		require.NoError(t, repo.Delete(comment.ID))

		_, err := repo.GetByID(comment.ID)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("delete missing comment", func(t *testing.T) {
		assert.ErrorIs(t, repo.Delete(999), ErrNotFound)
	})
}

func TestBadgerCommentRepositoryListByPost(t *testing.T) {
	db := newTestDB(t)
	repo := NewBadgerCommentRepository(db)

	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		comment := newComment(1, "on post one")
		comment.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, repo.Create(comment))
	}
	other := newComment(2, "on post two")
	require.NoError(t, repo.Create(other))

	t.Run("only the requested post's comments, newest first", func(t *testing.T) {
		comments, err := repo.ListByPost(1)
		require.NoError(t, err)
		require.Len(t, comments, 3)
		for _, c := range comments {
			assert.Equal(t, 1, c.PostID)
		}
		assert.True(t, comments[0].CreatedAt.After(comments[2].CreatedAt))
	})

	t.Run("count by post", func(t *testing.T) {
		count, err := repo.CountByPost(1)
		require.NoError(t, err)
		assert.Equal(t, 3, count)

		count, err = repo.CountByPost(2)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("post without comments", func(t *testing.T) {
		comments, err := repo.ListByPost(42)
		require.NoError(t, err)
		assert.Empty(t, comments)

		count, err := repo.CountByPost(42)
		require.NoError(t, err)
		assert.Equal(t, 0, count)
	})
}
