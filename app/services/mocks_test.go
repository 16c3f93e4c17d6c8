package services

import (
	"sort"

	"inkwell/app/models"
	"inkwell/app/repositories"
)

// Map-backed repository fakes. They mirror the BadgerDB implementations
// closely enough for workflow tests: slug and username uniqueness, cascade
// on post delete, newest-first comment ordering.

type mockPostRepo struct {
	posts    map[int]*models.Post
	slugs    map[string]int
	nextID   int
	comments *mockCommentRepo
}

func newMockPostRepo(comments *mockCommentRepo) *mockPostRepo {
	return &mockPostRepo{
		posts:    make(map[int]*models.Post),
		slugs:    make(map[string]int),
		comments: comments,
	}
}

func copyPost(post *models.Post) *models.Post {
	cp := *post
	cp.Comments = nil
	return &cp
}

func (r *mockPostRepo) Create(post *models.Post) error {
	if _, taken := r.slugs[post.Slug]; taken {
		return repositories.ErrConflict
	}
	r.nextID++
	post.ID = r.nextID
	post.BeforeCreate()
	r.posts[post.ID] = copyPost(post)
	r.slugs[post.Slug] = post.ID
	return nil
}

func (r *mockPostRepo) GetByID(id int) (*models.Post, error) {
	post, ok := r.posts[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return copyPost(post), nil
}

func (r *mockPostRepo) GetBySlug(slug string) (*models.Post, error) {
	id, ok := r.slugs[slug]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return r.GetByID(id)
}

func (r *mockPostRepo) ListPublished(limit, offset int) ([]*models.Post, error) {
	var posts []*models.Post
	for _, post := range r.posts {
		if post.IsPublished() {
			posts = append(posts, copyPost(post))
		}
	}
	sort.Slice(posts, func(i, j int) bool {
		if posts[i].CreatedAt.Equal(posts[j].CreatedAt) {
			return posts[i].ID > posts[j].ID
		}
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
	if offset >= len(posts) {
		return nil, nil
	}
	posts = posts[offset:]
	if limit < len(posts) {
		posts = posts[:limit]
	}
	return posts, nil
}

func (r *mockPostRepo) Update(post *models.Post) error {
	if _, ok := r.posts[post.ID]; !ok {
		return repositories.ErrNotFound
	}
	r.posts[post.ID] = copyPost(post)
	return nil
}

func (r *mockPostRepo) Delete(id int) error {
	post, ok := r.posts[id]
	if !ok {
		return repositories.ErrNotFound
	}
	if r.comments != nil {
		for cid, comment := range r.comments.comments {
			if comment.PostID == id {
				delete(r.comments.comments, cid)
			}
		}
	}
	delete(r.slugs, post.Slug)
	delete(r.posts, id)
	return nil
}

type mockCommentRepo struct {
	comments map[int]*models.Comment
	nextID   int
}

func newMockCommentRepo() *mockCommentRepo {
	return &mockCommentRepo{comments: make(map[int]*models.Comment)}
}

func copyComment(comment *models.Comment) *models.Comment {
	cp := *comment
	cp.Post = nil
	return &cp
}

func (r *mockCommentRepo) Create(comment *models.Comment) error {
	r.nextID++
	comment.ID = r.nextID
	comment.BeforeCreate()
	r.comments[comment.ID] = copyComment(comment)
	return nil
}

func (r *mockCommentRepo) GetByID(id int) (*models.Comment, error) {
	comment, ok := r.comments[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return copyComment(comment), nil
}

func (r *mockCommentRepo) ListByPost(postID int) ([]*models.Comment, error) {
	var comments []*models.Comment
	for _, comment := range r.comments {
		if comment.PostID == postID {
			comments = append(comments, copyComment(comment))
		}
	}
	sort.Slice(comments, func(i, j int) bool {
		if comments[i].CreatedAt.Equal(comments[j].CreatedAt) {
			return comments[i].ID > comments[j].ID
		}
		return comments[i].CreatedAt.After(comments[j].CreatedAt)
	})
	return comments, nil
}

func (r *mockCommentRepo) CountByPost(postID int) (int, error) {
	count := 0
	for _, comment := range r.comments {
		if comment.PostID == postID {
			count++
		}
	}
	return count, nil
}

func (r *mockCommentRepo) Delete(id int) error {
	if _, ok := r.comments[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.comments, id)
	return nil
}

type mockUserRepo struct {
	users  map[int]*models.User
	byName map[string]int
	nextID int
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{
		users:  make(map[int]*models.User),
		byName: make(map[string]int),
	}
}

func (r *mockUserRepo) Create(user *models.User) error {
	if _, taken := r.byName[user.Username]; taken {
		return repositories.ErrConflict
	}
	r.nextID++
	user.ID = r.nextID
	user.BeforeCreate()
	cp := *user
	r.users[user.ID] = &cp
	r.byName[user.Username] = user.ID
	return nil
}

func (r *mockUserRepo) GetByID(id int) (*models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *user
	return &cp, nil
}

func (r *mockUserRepo) GetByUsername(username string) (*models.User, error) {
	id, ok := r.byName[username]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return r.GetByID(id)
}

type mockSessionRepo struct {
	sessions map[string]int
}

func newMockSessionRepo() *mockSessionRepo {
	return &mockSessionRepo{sessions: make(map[string]int)}
}

func (r *mockSessionRepo) Create(token string, userID int) error {
	r.sessions[token] = userID
	return nil
}

func (r *mockSessionRepo) Get(token string) (int, error) {
	userID, ok := r.sessions[token]
	if !ok {
		return 0, repositories.ErrNotFound
	}
	return userID, nil
}

func (r *mockSessionRepo) Delete(token string) error {
	delete(r.sessions, token)
	return nil
}
