package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	leadserrors "foamparty/internal/leads/errors"
	"foamparty/pkg/logger"
	"foamparty/pkg/model"

	"github.com/dgraph-io/badger/v4"
)

const maxConflictRetries = 3

// badgerLeadRepository keeps every lead in one JSON array stored under a
// fixed key, the way the landing page kept them in browser storage.
type badgerLeadRepository struct {
	db  *badger.DB
	key []byte
	mu  sync.Mutex
	log *logger.Logger
}

// OpenBadger opens the embedded store at path. An empty path keeps the data
// in memory only.
func OpenBadger(path string, log *logger.Logger) (*badger.DB, error) {
	opts := badger.DefaultOptions(path).WithLogger(log.Component("badger"))
	if path == "" {
		opts = opts.WithInMemory(true)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger at %q: %w", path, err)
	}
	return db, nil
}

func NewBadgerLeadRepository(db *badger.DB, storageKey string, log *logger.Logger) LeadRepository {
	return &badgerLeadRepository{
		db:  db,
		key: []byte(storageKey),
		log: log,
	}
}

// Append reads the stored list, appends lead and writes the list back in one
// transaction. A stored value that is not a JSON array is left untouched.
func (r *badgerLeadRepository) Append(ctx context.Context, lead model.BookingRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var err error
	for attempt := 0; attempt < maxConflictRetries; attempt++ {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		err = r.db.Update(func(txn *badger.Txn) error {
			leads, err := readLeads(txn, r.key)
			if err != nil {
				return err
			}

			data, err := json.Marshal(append(leads, lead))
			if err != nil {
				return fmt.Errorf("encode lead list: %w", err)
			}
			return txn.Set(r.key, data)
		})
		if !errors.Is(err, badger.ErrConflict) {
			return err
		}
		r.log.Warn("lead list write conflict, retrying", "attempt", attempt+1)
	}
	return err
}

func (r *badgerLeadRepository) List(ctx context.Context, limit int, offset int64) ([]model.BookingRequest, int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	var leads []model.BookingRequest
	err := r.db.View(func(txn *badger.Txn) error {
		var err error
		leads, err = readLeads(txn, r.key)
		return err
	})
	if err != nil {
		return nil, 0, err
	}

	return page(leads, limit, offset), int64(len(leads)), nil
}

func (r *badgerLeadRepository) Ping(ctx context.Context) error {
	if r.db.IsClosed() {
		return badger.ErrDBClosed
	}
	return nil
}

func readLeads(txn *badger.Txn, key []byte) ([]model.BookingRequest, error) {
	item, err := txn.Get(key)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return []model.BookingRequest{}, nil
	}
	if err != nil {
		return nil, err
	}

	var leads []model.BookingRequest
	err = item.Value(func(val []byte) error {
		if err := json.Unmarshal(val, &leads); err != nil {
			return fmt.Errorf("%w: %v", leadserrors.ErrCorruptLeadList, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if leads == nil {
		leads = []model.BookingRequest{}
	}
	return leads, nil
}
