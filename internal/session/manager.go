package session

import (
	"fmt"
	"log"
	"sync"

	"montajbot/internal/constants"
)

// Counts — счетчики для бейджей меню. Обновляются асинхронно; при ошибке
// обновления остается прежнее значение.
type Counts struct {
	LogistNew          int
	LogistReviews      int
	AdminActive        int
	MontajnikAvailable int
	MontajnikAssigned  int
	TechReviews        int
}

// Session — состояние одного чата: авторизация, счетчики и FSM диалога.
type Session struct {
	ChatID   int64
	Token    string
	Role     string
	FullName string
	Counts   Counts
}

// Manager управляет сессиями чатов. Авторизация дублируется в Storage и
// восстанавливается оттуда после перезапуска; FSM-состояние и временные
// данные живут только в памяти.
type Manager struct {
	storage Storage

	mu       sync.RWMutex
	sessions map[int64]*Session

	stateMu sync.RWMutex
	states  map[int64]string
	history map[int64][]string

	tempMu      sync.RWMutex
	tempDrafts  map[int64]TempDraftData
	tempReports map[int64]TempReportData
	tempTargets map[int64]TempTarget
	tempAdmins  map[int64]TempAdminData
}

// NewManager создает менеджер поверх переданного хранилища.
func NewManager(storage Storage) *Manager {
	if storage == nil {
		panic("session.NewManager: storage не предоставлен")
	}
	return &Manager{
		storage:     storage,
		sessions:    make(map[int64]*Session),
		states:      make(map[int64]string),
		history:     make(map[int64][]string),
		tempDrafts:  make(map[int64]TempDraftData),
		tempReports: make(map[int64]TempReportData),
		tempTargets: make(map[int64]TempTarget),
		tempAdmins:  make(map[int64]TempAdminData),
	}
}

// --- Авторизация ---

// SetAuth сохраняет авторизацию в памяти и в хранилище. Значение роли
// не проверяется: роль выдал бэкенд, ему и верим.
func (m *Manager) SetAuth(chatID int64, token, role, fullName string) error {
	if err := m.storage.SaveAuth(chatID, AuthRecord{Token: token, Role: role, FullName: fullName}); err != nil {
		return fmt.Errorf("ошибка сохранения сессии chatID %d: %w", chatID, err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	s := m.sessions[chatID]
	if s == nil {
		s = &Session{ChatID: chatID}
		m.sessions[chatID] = s
	}
	s.Token = token
	s.Role = role
	s.FullName = fullName
	log.Printf("session: авторизация chatID %d, роль %s", chatID, role)
	return nil
}

// Get возвращает сессию чата. При промахе по памяти пытается восстановить
// авторизацию из хранилища; восстановление состоится только если там есть
// и токен, и роль (имя опционально).
func (m *Manager) Get(chatID int64) (Session, bool) {
	m.mu.RLock()
	s := m.sessions[chatID]
	m.mu.RUnlock()
	if s != nil && s.Token != "" {
		return *s, true
	}

	rec, ok, err := m.storage.LoadAuth(chatID)
	if err != nil {
		log.Printf("session: ошибка чтения хранилища для chatID %d: %v", chatID, err)
		return Session{}, false
	}
	if !ok || rec.Token == "" || rec.Role == "" {
		return Session{}, false
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	restored := &Session{ChatID: chatID, Token: rec.Token, Role: rec.Role, FullName: rec.FullName}
	m.sessions[chatID] = restored
	log.Printf("session: сессия chatID %d восстановлена из хранилища, роль %s", chatID, rec.Role)
	return *restored, true
}

// Logout снимает авторизацию: чистит хранилище, обнуляет счетчики,
// сбрасывает диалог. Уже отправленные запросы с этим токеном не отменяются.
func (m *Manager) Logout(chatID int64) error {
	if err := m.storage.DeleteAuth(chatID); err != nil {
		return fmt.Errorf("ошибка удаления сессии chatID %d: %w", chatID, err)
	}
	m.mu.Lock()
	delete(m.sessions, chatID)
	m.mu.Unlock()
	m.ClearState(chatID)
	m.ClearTempDraft(chatID)
	m.ClearTempReport(chatID)
	m.ClearTempTarget(chatID)
	m.ClearTempAdmin(chatID)
	log.Printf("session: chatID %d вышел из системы", chatID)
	return nil
}

// UpdateCounts применяет функцию к счетчикам сессии (под общим замком).
func (m *Manager) UpdateCounts(chatID int64, fn func(*Counts)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := m.sessions[chatID]
	if s == nil {
		return
	}
	fn(&s.Counts)
}

// --- FSM диалога ---

// GetState возвращает текущее состояние диалога (STATE_IDLE по умолчанию).
func (m *Manager) GetState(chatID int64) string {
	m.stateMu.RLock()
	defer m.stateMu.RUnlock()
	state, ok := m.states[chatID]
	if !ok {
		return constants.STATE_IDLE
	}
	return state
}

// SetState переводит диалог в новое состояние и пишет его в историю.
func (m *Manager) SetState(chatID int64, state string) {
	m.stateMu.Lock()
	defer m.stateMu.Unlock()
	m.states[chatID] = state
	h := m.history[chatID]
	if len(h) == 0 || h[len(h)-1] != state {
		m.history[chatID] = append(h, state)
	}
}

// PopState откатывает диалог на предыдущее состояние; при пустой истории
// возвращает STATE_IDLE.
func (m *Manager) PopState(chatID int64) string {
	m.stateMu.Lock()
	defer m.stateMu.Unlock()
	h := m.history[chatID]
	if len(h) > 1 {
		m.history[chatID] = h[:len(h)-1]
		prev := m.history[chatID][len(m.history[chatID])-1]
		m.states[chatID] = prev
		return prev
	}
	m.states[chatID] = constants.STATE_IDLE
	m.history[chatID] = []string{constants.STATE_IDLE}
	return constants.STATE_IDLE
}

// ClearState сбрасывает диалог в STATE_IDLE и чистит историю.
func (m *Manager) ClearState(chatID int64) {
	m.stateMu.Lock()
	defer m.stateMu.Unlock()
	m.states[chatID] = constants.STATE_IDLE
	m.history[chatID] = []string{constants.STATE_IDLE}
}
