package storage

import (
	"context"
	"sync"
)

// MockStorage is an in memory Storage for tests.
type MockStorage struct {
	values map[string][]byte
	lock   sync.Mutex

	// FailWrite, when set, is consulted before each write. A non nil result fails the write.
	FailWrite func(key string) error
}

// NewMockStorage returns an empty in memory Storage.
func NewMockStorage() *MockStorage {
	return &MockStorage{
		values: make(map[string][]byte),
	}
}

func (m *MockStorage) Write(ctx context.Context, key string, body []byte, options *Options) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	if m.FailWrite != nil {
		if err := m.FailWrite(key); err != nil {
			return err
		}
	}

	c := make([]byte, len(body))
	copy(c, body)
	m.values[key] = c
	return nil
}

func (m *MockStorage) Read(ctx context.Context, key string) ([]byte, error) {
	m.lock.Lock()
	defer m.lock.Unlock()

	b, exists := m.values[key]
	if !exists {
		return nil, ErrNotFound
	}

	c := make([]byte, len(b))
	copy(c, b)
	return c, nil
}

func (m *MockStorage) Remove(ctx context.Context, key string) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	if _, exists := m.values[key]; !exists {
		return ErrNotFound
	}
	delete(m.values, key)
	return nil
}

func (m *MockStorage) Close() error {
	return nil
}

// Len returns the number of stored values.
func (m *MockStorage) Len() int {
	m.lock.Lock()
	defer m.lock.Unlock()

	return len(m.values)
}
