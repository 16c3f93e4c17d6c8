package services

import (
	"errors"
	"fmt"

	"inkwell/app/models"
	"inkwell/app/policy"
	"inkwell/app/repositories"
)

// CommentService orchestrates the comment workflow.
type CommentService struct {
	commentRepo repositories.CommentRepository
	postRepo    repositories.PostRepository
}

// NewCommentService creates a new CommentService
func NewCommentService(commentRepo repositories.CommentRepository, postRepo repositories.PostRepository) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
	}
}

// Add attaches a new comment by actor to the given post. The returned
// comment carries its parent post so callers can redirect to it.
func (s *CommentService) Add(actor policy.Actor, postID int, content string) (*models.Comment, error) {
	if !policy.Can(actor, policy.CreateComment, nil) {
		return nil, ErrForbidden
	}

	post, err := s.postRepo.GetByID(postID)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{Content: content}
	comment.AuthorID = actor.ID
	comment.SetPost(post)
	if err := comment.Validate(); err != nil {
		return nil, fmt.Errorf("invalid comment: %w", err)
	}

	if err := s.commentRepo.Create(comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// Delete removes a comment when actor is its author or staff. A denial is
// non-fatal: the parent post comes back alongside ErrForbidden so the
// caller can still redirect to it, only with a different message.
func (s *CommentService) Delete(actor policy.Actor, id int) (*models.Post, error) {
	comment, err := s.commentRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	post, err := s.postRepo.GetByID(comment.PostID)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}

	if !policy.Can(actor, policy.DeleteComment, comment) {
		return post, ErrForbidden
	}

	if err := s.commentRepo.Delete(id); err != nil {
		return post, err
	}
	return post, nil
}

// ListForPost retrieves all comments for a post, newest first
func (s *CommentService) ListForPost(postID int) ([]*models.Comment, error) {
	if _, err := s.postRepo.GetByID(postID); err != nil {
		return nil, err
	}
	return s.commentRepo.ListByPost(postID)
}

// Count reports how many comments a post has. Read-only, no auth.
func (s *CommentService) Count(postID int) (int, error) {
	if _, err := s.postRepo.GetByID(postID); err != nil {
		return 0, err
	}
	return s.commentRepo.CountByPost(postID)
}
