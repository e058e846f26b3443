// Package memory is the in-process DeviceStore used by tests and by dev
// mode when DATABASE_URL is unset.
package memory

import (
	"context"
	"sync"

	"github.com/wendrick1998/outlet-vault-tracker-sub001/internal/importer/model"
	"github.com/wendrick1998/outlet-vault-tracker-sub001/internal/store"
)

type Store struct {
	mu          sync.RWMutex
	byIMEI      map[string]model.ParsedItem
	noIMEI      int   // items inserted without an IMEI
	failing     error // when set, every call returns this error
	failInserts error // when set, only InsertBatch fails
}

func New() *Store {
	return &Store{byIMEI: make(map[string]model.ParsedItem)}
}

// Seed marks IMEIs as already persisted.
func (s *Store) Seed(imeis ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, im := range imeis {
		s.byIMEI[im] = model.ParsedItem{IMEI: im}
	}
}

// Fail makes the store return err on every call; nil restores it.
func (s *Store) Fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failing = err
}

// FailInserts makes only InsertBatch return err; nil restores it.
func (s *Store) FailInserts(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failInserts = err
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byIMEI) + s.noIMEI
}

func (s *Store) ExistingIMEIs(_ context.Context, imeis []string) (map[string]bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.failing != nil {
		return nil, s.failing
	}
	existing := make(map[string]bool, len(imeis))
	for _, im := range imeis {
		if _, ok := s.byIMEI[im]; ok {
			existing[im] = true
		}
	}
	return existing, nil
}

func (s *Store) InsertBatch(_ context.Context, items []model.ParsedItem) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failing != nil {
		return 0, s.failing
	}
	if s.failInserts != nil {
		return 0, s.failInserts
	}
	// all-or-nothing, mirroring the single transaction of the SQL store
	for _, it := range items {
		if it.IMEI == "" {
			continue
		}
		if _, ok := s.byIMEI[it.IMEI]; ok {
			return 0, store.ErrDuplicateIMEI
		}
	}
	for _, it := range items {
		if it.IMEI == "" {
			s.noIMEI++
			continue
		}
		s.byIMEI[it.IMEI] = it
	}
	return len(items), nil
}
