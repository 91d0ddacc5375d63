package db

import (
	"database/sql"
	"fmt"
	"log"

	"montajbot/internal/session"
)

// SaveAuth сохраняет или обновляет авторизацию чата.
func (s *Store) SaveAuth(chatID int64, rec session.AuthRecord) error {
	_, err := s.db.Exec(`
        INSERT INTO bot_sessions (chat_id, token, role, full_name, created_at, updated_at)
        VALUES ($1, $2, $3, $4, NOW(), NOW())
        ON CONFLICT (chat_id) DO UPDATE
            SET token = EXCLUDED.token,
                role = EXCLUDED.role,
                full_name = EXCLUDED.full_name,
                updated_at = NOW()`,
		chatID, rec.Token, rec.Role, sql.NullString{String: rec.FullName, Valid: rec.FullName != ""})
	if err != nil {
		log.Printf("SaveAuth: ошибка сохранения сессии chatID %d: %v", chatID, err)
		return fmt.Errorf("ошибка сохранения сессии: %w", err)
	}
	return nil
}

// LoadAuth читает авторизацию чата. Второе значение — false, если записи нет.
func (s *Store) LoadAuth(chatID int64) (session.AuthRecord, bool, error) {
	var rec session.AuthRecord
	var fullName sql.NullString
	err := s.db.QueryRow(
		`SELECT token, role, full_name FROM bot_sessions WHERE chat_id = $1`, chatID,
	).Scan(&rec.Token, &rec.Role, &fullName)
	if err == sql.ErrNoRows {
		return session.AuthRecord{}, false, nil
	}
	if err != nil {
		log.Printf("LoadAuth: ошибка чтения сессии chatID %d: %v", chatID, err)
		return session.AuthRecord{}, false, fmt.Errorf("ошибка чтения сессии: %w", err)
	}
	if fullName.Valid {
		rec.FullName = fullName.String
	}
	return rec, true, nil
}

// DeleteAuth удаляет авторизацию чата (выход из системы).
func (s *Store) DeleteAuth(chatID int64) error {
	if _, err := s.db.Exec(`DELETE FROM bot_sessions WHERE chat_id = $1`, chatID); err != nil {
		log.Printf("DeleteAuth: ошибка удаления сессии chatID %d: %v", chatID, err)
		return fmt.Errorf("ошибка удаления сессии: %w", err)
	}
	return nil
}
