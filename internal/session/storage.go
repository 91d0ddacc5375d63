package session

import "sync"

// AuthRecord — то, что переживает перезапуск бота: токен, роль и имя.
// Ровно тот же набор веб-клиент держал в localStorage.
type AuthRecord struct {
	Token    string
	Role     string
	FullName string
}

// Storage — порт долговременного хранилища сессий. Менеджеру все равно,
// стоит за ним Postgres (internal/db) или память (тесты).
type Storage interface {
	SaveAuth(chatID int64, rec AuthRecord) error
	LoadAuth(chatID int64) (AuthRecord, bool, error)
	DeleteAuth(chatID int64) error
}

// MemoryStorage — хранилище в памяти для тестов и локального запуска
// без базы.
type MemoryStorage struct {
	mu   sync.RWMutex
	auth map[int64]AuthRecord
}

// NewMemoryStorage создает пустое хранилище в памяти.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{auth: make(map[int64]AuthRecord)}
}

func (m *MemoryStorage) SaveAuth(chatID int64, rec AuthRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.auth[chatID] = rec
	return nil
}

func (m *MemoryStorage) LoadAuth(chatID int64) (AuthRecord, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.auth[chatID]
	return rec, ok, nil
}

func (m *MemoryStorage) DeleteAuth(chatID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.auth, chatID)
	return nil
}
