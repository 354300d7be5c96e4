package fakesessionrepo

import (
	"context"
	"sync"

	"github.com/jrsteele09/eero-client/sessions"
)

var _ sessions.Repo = (*FakeSessionRepo)(nil)

// FakeSessionRepo keeps the encoded session in memory so saves and loads go
// through the same JSON layout as the real backends.
type FakeSessionRepo struct {
	blob    []byte
	saves   int
	loads   int
	saveErr error
	lock    sync.RWMutex
}

func NewFakeSessionRepo() *FakeSessionRepo {
	return &FakeSessionRepo{}
}

// Seed stores s without counting it as a save.
func (sr *FakeSessionRepo) Seed(s *sessions.Session) error {
	data, err := sessions.Encode(s)
	if err != nil {
		return err
	}
	sr.lock.Lock()
	defer sr.lock.Unlock()
	sr.blob = data
	return nil
}

// FailSaves makes every following Save return err.
func (sr *FakeSessionRepo) FailSaves(err error) {
	sr.lock.Lock()
	defer sr.lock.Unlock()
	sr.saveErr = err
}

func (sr *FakeSessionRepo) Load(_ context.Context) (*sessions.Session, error) {
	sr.lock.Lock()
	defer sr.lock.Unlock()
	sr.loads++
	if sr.blob == nil {
		return nil, nil
	}
	s, err := sessions.Decode(sr.blob)
	if err != nil {
		return nil, nil
	}
	return s, nil
}

func (sr *FakeSessionRepo) Save(_ context.Context, s *sessions.Session) error {
	sr.lock.Lock()
	defer sr.lock.Unlock()
	if sr.saveErr != nil {
		return sr.saveErr
	}
	data, err := sessions.Encode(s)
	if err != nil {
		return err
	}
	sr.blob = data
	sr.saves++
	return nil
}

func (sr *FakeSessionRepo) Delete(_ context.Context) error {
	sr.lock.Lock()
	defer sr.lock.Unlock()
	sr.blob = nil
	return nil
}

// Stored decodes what is currently persisted, nil when nothing is.
func (sr *FakeSessionRepo) Stored() *sessions.Session {
	sr.lock.RLock()
	defer sr.lock.RUnlock()
	if sr.blob == nil {
		return nil
	}
	s, _ := sessions.Decode(sr.blob)
	return s
}

// Raw returns the persisted JSON.
func (sr *FakeSessionRepo) Raw() []byte {
	sr.lock.RLock()
	defer sr.lock.RUnlock()
	return append([]byte(nil), sr.blob...)
}

// Saves returns the number of successful saves.
func (sr *FakeSessionRepo) Saves() int {
	sr.lock.RLock()
	defer sr.lock.RUnlock()
	return sr.saves
}

// Loads returns the number of loads.
func (sr *FakeSessionRepo) Loads() int {
	sr.lock.RLock()
	defer sr.lock.RUnlock()
	return sr.loads
}
