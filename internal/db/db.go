// Пакет db — собственное хранилище бота: Postgres с единственной таблицей
// сессий. Данные заданий здесь не живут, их источник — бэкенд MontajPro.
package db

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/lib/pq" // драйвер PostgreSQL
)

// Store — подключение к базе сессий. Реализует session.Storage.
type Store struct {
	db *sql.DB
}

// New открывает соединение, проверяет его и накатывает схему.
func New(databaseURL string) (*Store, error) {
	if databaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL не установлена")
	}

	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("ошибка подключения к базе данных: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ошибка проверки соединения с базой данных: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	log.Println("Успешное подключение к базе сессий.")
	return s, nil
}

// Close закрывает соединение.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	const schema = `
        CREATE TABLE IF NOT EXISTS bot_sessions (
            chat_id    BIGINT PRIMARY KEY,
            token      TEXT NOT NULL,
            role       TEXT NOT NULL,
            full_name  TEXT,
            created_at TIMESTAMP NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMP NOT NULL DEFAULT NOW()
        );`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("ошибка миграции таблицы сессий: %w", err)
	}
	return nil
}
