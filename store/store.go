// Package store owns the shared database handle and the write discipline:
// every mutation runs inside a transaction submitted through RunWrite, which
// absorbs transient engine contention with a bounded retry loop.
package store

import (
	"errors"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	// writeAttempts bounds the retry loop: one initial try plus four retries.
	writeAttempts = 5
	// retryDelay is the base pause between attempts; a little jitter is added
	// so concurrent writers don't wake up in lockstep.
	retryDelay  = 100 * time.Millisecond
	retryJitter = 50 * time.Millisecond
)

// ErrBusy is the terminal error after the retry budget is exhausted. Handlers
// map it to 503; it is never confused with validation or not-found failures.
var ErrBusy = errors.New("store is locked, retries exceeded")

type Store struct {
	db  *gorm.DB
	log *logrus.Logger
}

func New(db *gorm.DB, log *logrus.Logger) *Store {
	return &Store{db: db, log: log}
}

// DB exposes the handle for reads. Writes go through RunWrite.
func (s *Store) DB() *gorm.DB {
	return s.db
}

// RunWrite executes fn inside a transaction. On transient contention the
// whole transaction is retried, so a compound write (parent row plus
// dependent rows) commits fully formed or not at all. Non-transient errors
// propagate immediately without consuming retry budget.
func (s *Store) RunWrite(op string, fn func(tx *gorm.DB) error) error {
	for attempt := 1; attempt <= writeAttempts; attempt++ {
		err := s.db.Transaction(fn)
		if err == nil {
			return nil
		}
		if !IsTransient(err) {
			return err
		}
		s.log.WithFields(logrus.Fields{
			"op":       op,
			"attempt":  attempt,
			"attempts": writeAttempts,
		}).Warn("store busy, retrying write")
		if attempt < writeAttempts {
			time.Sleep(retryDelay + time.Duration(rand.Int63n(int64(retryJitter))))
		}
	}
	return ErrBusy
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
