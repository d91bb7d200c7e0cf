package progress

import (
	"context"
	"maps"
	"sync"
)

// MemoryRepo is a Repo that keeps progress in process memory.
type MemoryRepo struct {
	mu      sync.Mutex
	account Account
	records map[int]Record

	// Writes counts successful save calls.
	Writes int
}

// NewMemoryRepo returns an empty MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{records: make(map[int]Record)}
}

func (m *MemoryRepo) LoadAccount(context.Context) (Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.account, nil
}

func (m *MemoryRepo) LoadRecords(context.Context) (map[int]Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return maps.Clone(m.records), nil
}

func (m *MemoryRepo) SaveRecord(_ context.Context, index int, r Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[index] = r
	m.Writes++
	return nil
}

func (m *MemoryRepo) SaveXP(_ context.Context, xp int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.account.XP = xp
	m.Writes++
	return nil
}

func (m *MemoryRepo) SaveStreak(_ context.Context, streak int, lastActive string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.account.Streak = streak
	m.account.LastActive = lastActive
	m.Writes++
	return nil
}

func (m *MemoryRepo) Reset(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.account = Account{}
	m.records = make(map[int]Record)
	return nil
}
