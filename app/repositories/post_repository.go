package repositories

import (
	"fmt"
	"sort"

	"inkwell/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerPostRepository implements PostRepository using BadgerDB. Slug
// uniqueness is enforced with a post_slug: index key written in the same
// transaction as the post itself.
type BadgerPostRepository struct {
	db *badger.DB
}

// NewBadgerPostRepository creates a new BadgerPostRepository
func NewBadgerPostRepository(db *badger.DB) *BadgerPostRepository {
	return &BadgerPostRepository{db: db}
}

// Create creates a new post. It fails with ErrConflict when the slug is
// already taken by another post.
func (r *BadgerPostRepository) Create(post *models.Post) error {
	if post.Slug == "" {
		return fmt.Errorf("post slug is required")
	}
	return r.db.Update(func(txn *badger.Txn) error {
		slugKey := []byte(PostSlugKeyPrefix + post.Slug)
		_, err := txn.Get(slugKey)
		if err == nil {
			return ErrConflict
		}
		if err != badger.ErrKeyNotFound {
			return err
		}

		id, err := getNextID(txn, PostSeqKey)
		if err != nil {
			return err
		}
		post.ID = id
		post.BeforeCreate()

		data, err := marshalEntity(post)
		if err != nil {
			return err
		}

		key := []byte(fmt.Sprintf("%s%d", PostKeyPrefix, post.ID))
		if err := txn.Set(key, data); err != nil {
			return err
		}
		return txn.Set(slugKey, encodeID(post.ID))
	})
}

// GetByID retrieves a post by ID
func (r *BadgerPostRepository) GetByID(id int) (*models.Post, error) {
	var post models.Post

	err := r.db.View(func(txn *badger.Txn) error {
		return getPost(txn, id, &post)
	})

	if err != nil {
		return nil, err
	}
	return &post, nil
}

// GetBySlug retrieves a post by its slug via the post_slug: index
func (r *BadgerPostRepository) GetBySlug(slug string) (*models.Post, error) {
	var post models.Post

	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(PostSlugKeyPrefix + slug))
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		var id int
		if err := item.Value(func(val []byte) error {
			id = decodeID(val)
			return nil
		}); err != nil {
			return err
		}
		return getPost(txn, id, &post)
	})

	if err != nil {
		return nil, err
	}
	return &post, nil
}

// ListPublished retrieves a page of published posts ordered by creation
// time, newest first.
func (r *BadgerPostRepository) ListPublished(limit, offset int) ([]*models.Post, error) {
	var published []*models.Post
	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(PostKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			var post models.Post
			err := item.Value(func(val []byte) error {
				return unmarshalEntity(val, &post)
			})
			if err != nil {
				return fmt.Errorf("failed to unmarshal post: %v", err)
			}
			if post.IsPublished() {
				published = append(published, &post)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(published, func(i, j int) bool {
		if published[i].CreatedAt.Equal(published[j].CreatedAt) {
			return published[i].ID > published[j].ID
		}
		return published[i].CreatedAt.After(published[j].CreatedAt)
	})

	if offset >= len(published) {
		return []*models.Post{}, nil
	}
	end := offset + limit
	if end > len(published) {
		end = len(published)
	}
	return published[offset:end], nil
}

// Update updates an existing post. The slug never changes after creation,
// so the post_slug: index needs no maintenance here.
func (r *BadgerPostRepository) Update(post *models.Post) error {
	return r.db.Update(func(txn *badger.Txn) error {
		key := []byte(fmt.Sprintf("%s%d", PostKeyPrefix, post.ID))

		// Verify post exists
		_, err := txn.Get(key)
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		data, err := marshalEntity(post)
		if err != nil {
			return err
		}
		return txn.Set(key, data)
	})
}

// Delete deletes a post, its slug index entry and every comment attached
// to it, all in one transaction: either everything goes or nothing does.
func (r *BadgerPostRepository) Delete(id int) error {
	return r.db.Update(func(txn *badger.Txn) error {
		var post models.Post
		if err := getPost(txn, id, &post); err != nil {
			return err
		}

		// Collect comment keys first; deleting while iterating is unsafe.
		var commentKeys [][]byte
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		prefix := []byte(fmt.Sprintf("%s%d:", CommentKeyPrefix, id))
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			commentKeys = append(commentKeys, it.Item().KeyCopy(nil))
		}
		it.Close()

		for _, key := range commentKeys {
			if err := txn.Delete(key); err != nil {
				return err
			}
		}
		if err := txn.Delete([]byte(PostSlugKeyPrefix + post.Slug)); err != nil {
			return err
		}
		return txn.Delete([]byte(fmt.Sprintf("%s%d", PostKeyPrefix, id)))
	})
}

// getPost reads a post by ID within an open transaction
func getPost(txn *badger.Txn, id int, post *models.Post) error {
	key := []byte(fmt.Sprintf("%s%d", PostKeyPrefix, id))
	item, err := txn.Get(key)
	if err == badger.ErrKeyNotFound {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	return item.Value(func(val []byte) error {
		return unmarshalEntity(val, post)
	})
}
