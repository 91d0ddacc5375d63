package session

import "montajbot/internal/models"

// TempDraftData — черновик задания, собираемый логистом по шагам диалога.
// Хранится только в памяти: до первого сохранения на бэкенд терять нечего,
// после — источником истины становится бэкенд.
type TempDraftData struct {
	DraftID   int64 // 0, пока черновик не сохранен на бэкенде
	Payload   models.TaskPayload
	MessageID int // главное сообщение диалога, которое редактируем
}

// TempTarget — задание (и, возможно, отчет), к которому относится
// ожидаемый от пользователя текстовый ввод: комментарий возврата,
// причина отклонения отчета, новый комментарий задания.
type TempTarget struct {
	TaskID   int64
	ReportID int64
}

// TempReportData — отчет монтажника, собираемый по шагам.
type TempReportData struct {
	TaskID    int64
	Text      string
	Photos    []string // storage_key уже загруженных вложений
	MessageID int
}

// GetTempDraft возвращает временный черновик чата, создавая пустой при
// отсутствии.
func (m *Manager) GetTempDraft(chatID int64) TempDraftData {
	m.tempMu.RLock()
	d, ok := m.tempDrafts[chatID]
	m.tempMu.RUnlock()
	if ok {
		return d
	}
	m.tempMu.Lock()
	defer m.tempMu.Unlock()
	d = TempDraftData{}
	m.tempDrafts[chatID] = d
	return d
}

// UpdateTempDraft перезаписывает временный черновик чата.
func (m *Manager) UpdateTempDraft(chatID int64, d TempDraftData) {
	m.tempMu.Lock()
	defer m.tempMu.Unlock()
	m.tempDrafts[chatID] = d
}

// ClearTempDraft удаляет временный черновик чата.
func (m *Manager) ClearTempDraft(chatID int64) {
	m.tempMu.Lock()
	defer m.tempMu.Unlock()
	delete(m.tempDrafts, chatID)
}

// GetTempReport возвращает временный отчет чата.
func (m *Manager) GetTempReport(chatID int64) TempReportData {
	m.tempMu.RLock()
	defer m.tempMu.RUnlock()
	return m.tempReports[chatID]
}

// UpdateTempReport перезаписывает временный отчет чата.
func (m *Manager) UpdateTempReport(chatID int64, r TempReportData) {
	m.tempMu.Lock()
	defer m.tempMu.Unlock()
	m.tempReports[chatID] = r
}

// ClearTempReport удаляет временный отчет чата.
func (m *Manager) ClearTempReport(chatID int64) {
	m.tempMu.Lock()
	defer m.tempMu.Unlock()
	delete(m.tempReports, chatID)
}

// TempAdminData — заготовка пользователя или позиции справочника,
// собираемая администратором по шагам.
type TempAdminData struct {
	User      models.UserPayload
	Catalog   models.CatalogPayload
	CatalogID int64 // id редактируемой позиции; 0 при создании
	MessageID int
}

// GetTempAdmin возвращает временные данные администратора.
func (m *Manager) GetTempAdmin(chatID int64) TempAdminData {
	m.tempMu.RLock()
	defer m.tempMu.RUnlock()
	return m.tempAdmins[chatID]
}

// UpdateTempAdmin перезаписывает временные данные администратора.
func (m *Manager) UpdateTempAdmin(chatID int64, d TempAdminData) {
	m.tempMu.Lock()
	defer m.tempMu.Unlock()
	m.tempAdmins[chatID] = d
}

// ClearTempAdmin удаляет временные данные администратора.
func (m *Manager) ClearTempAdmin(chatID int64) {
	m.tempMu.Lock()
	defer m.tempMu.Unlock()
	delete(m.tempAdmins, chatID)
}

// SetTempTarget запоминает цель ожидаемого текстового ввода.
func (m *Manager) SetTempTarget(chatID int64, t TempTarget) {
	m.tempMu.Lock()
	defer m.tempMu.Unlock()
	m.tempTargets[chatID] = t
}

// TempTargetOf возвращает цель ожидаемого ввода (нулевую, если не задана).
func (m *Manager) TempTargetOf(chatID int64) TempTarget {
	m.tempMu.RLock()
	defer m.tempMu.RUnlock()
	return m.tempTargets[chatID]
}

// ClearTempTarget забывает цель ожидаемого ввода.
func (m *Manager) ClearTempTarget(chatID int64) {
	m.tempMu.Lock()
	defer m.tempMu.Unlock()
	delete(m.tempTargets, chatID)
}

// AddTempReportPhoto атомарно добавляет вложение к временному отчету.
// Возвращает новое количество фото и признак «лимит исчерпан».
func (m *Manager) AddTempReportPhoto(chatID int64, storageKey string, limit int) (int, bool) {
	m.tempMu.Lock()
	defer m.tempMu.Unlock()
	r := m.tempReports[chatID]
	for _, k := range r.Photos {
		if k == storageKey {
			return len(r.Photos), false
		}
	}
	if len(r.Photos) >= limit {
		return len(r.Photos), true
	}
	r.Photos = append(r.Photos, storageKey)
	m.tempReports[chatID] = r
	return len(r.Photos), false
}
