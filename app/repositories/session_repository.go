package repositories

import "github.com/dgraph-io/badger/v4"

// BadgerSessionRepository stores opaque session tokens mapped to user IDs.
type BadgerSessionRepository struct {
	db *badger.DB
}

// NewBadgerSessionRepository creates a new BadgerSessionRepository
func NewBadgerSessionRepository(db *badger.DB) *BadgerSessionRepository {
	return &BadgerSessionRepository{db: db}
}

// Create stores a session token for a user
func (r *BadgerSessionRepository) Create(token string, userID int) error {
	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(SessionKeyPrefix+token), encodeID(userID))
	})
}

// Get resolves a session token to a user ID
func (r *BadgerSessionRepository) Get(token string) (int, error) {
	var userID int
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(SessionKeyPrefix + token))
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			userID = decodeID(val)
			return nil
		})
	})
	if err != nil {
		return 0, err
	}
	return userID, nil
}

// Delete removes a session token
func (r *BadgerSessionRepository) Delete(token string) error {
	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(SessionKeyPrefix + token))
	})
}
