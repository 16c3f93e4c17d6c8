package services

import (
	"errors"
	"fmt"

	"inkwell/app/models"
	"inkwell/app/policy"
	"inkwell/app/repositories"
	"inkwell/app/slug"
)

// DefaultPageSize is the number of posts per listing page when the caller
// does not say otherwise.
const DefaultPageSize = 10

// maxSlugAttempts bounds the numeric disambiguation loop for derived slugs.
const maxSlugAttempts = 50

// PostService orchestrates the post workflow: every mutation checks the
// authorization policy before touching the stores.
type PostService struct {
	postRepo    repositories.PostRepository
	commentRepo repositories.CommentRepository
}

// NewPostService creates a new PostService
func NewPostService(postRepo repositories.PostRepository, commentRepo repositories.CommentRepository) *PostService {
	return &PostService{
		postRepo:    postRepo,
		commentRepo: commentRepo,
	}
}

// PostUpdate carries the editable fields of a post. The slug is not among
// them: it is fixed at creation and editing the title does not re-slug.
type PostUpdate struct {
	Title   string
	Content string
	Image   string
	Status  models.Status
}

// ListPublished returns one page of published posts, newest first. No
// authorization applies; anonymous visitors see the same listing.
func (s *PostService) ListPublished(page, perPage int) ([]*models.Post, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = DefaultPageSize
	}

	offset := (page - 1) * perPage
	return s.postRepo.ListPublished(perPage, offset)
}

// GetBySlug retrieves a post by slug with its comments attached, newest
// comment first. Drafts resolve like published posts; only the listing
// filters by status.
func (s *PostService) GetBySlug(slugStr string) (*models.Post, error) {
	post, err := s.postRepo.GetBySlug(slugStr)
	if err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.ListByPost(post.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get comments: %v", err)
	}
	post.Comments = comments

	return post, nil
}

// Create creates a post authored by actor. When no slug is supplied one is
// derived from the title; a derived slug that collides gets a numeric
// suffix (my-post-2, my-post-3, ...). A caller-supplied slug that collides
// surfaces ErrConflict untouched.
func (s *PostService) Create(actor policy.Actor, post *models.Post) error {
	if !policy.Can(actor, policy.CreatePost, nil) {
		return ErrForbidden
	}
	post.AuthorID = actor.ID
	if post.Status == "" {
		post.Status = models.StatusDraft
	}
	if err := post.Validate(); err != nil {
		return fmt.Errorf("invalid post: %w", err)
	}

	if post.Slug != "" {
		return s.postRepo.Create(post)
	}

	base := slug.Make(post.Title)
	if base == "" {
		base = "post"
	}
	post.Slug = base
	for n := 2; ; n++ {
		err := s.postRepo.Create(post)
		if !errors.Is(err, repositories.ErrConflict) {
			return err
		}
		if n > maxSlugAttempts {
			return err
		}
		post.Slug = slug.WithSuffix(base, n)
	}
}

// Update applies upd to the post identified by slug, provided actor is its
// author. The creation time and slug survive the update; UpdatedAt is
// refreshed.
func (s *PostService) Update(actor policy.Actor, slugStr string, upd PostUpdate) (*models.Post, error) {
	post, err := s.postRepo.GetBySlug(slugStr)
	if err != nil {
		return nil, err
	}
	if !policy.Can(actor, policy.UpdatePost, post) {
		return nil, ErrForbidden
	}

	post.Title = upd.Title
	post.Content = upd.Content
	post.Image = upd.Image
	if upd.Status != "" {
		post.Status = upd.Status
	}
	if err := post.Validate(); err != nil {
		return nil, fmt.Errorf("invalid post: %w", err)
	}

	post.Touch()
	if err := s.postRepo.Update(post); err != nil {
		return nil, err
	}
	return post, nil
}

// Delete removes the post identified by slug and cascades to its comments,
// provided actor is its author.
func (s *PostService) Delete(actor policy.Actor, slugStr string) error {
	post, err := s.postRepo.GetBySlug(slugStr)
	if err != nil {
		return err
	}
	if !policy.Can(actor, policy.DeletePost, post) {
		return ErrForbidden
	}

	return s.postRepo.Delete(post.ID)
}
