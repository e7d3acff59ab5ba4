// Файл: internal/db/db.go
package db

import (
	"database/sql"
	"fmt"
	"log"
	"net/url"
	"os"
	"time"

	_ "github.com/lib/pq" // Драйвер PostgreSQL
)

var DB *sql.DB // Глобальная переменная для хранения подключения к БД

// InitDB инициализирует соединение с базой данных и выполняет миграции.
// Бот хранит в БД ровно одну вещь: зашифрованные bearer-токены курьеров
// (аналог secure storage мобильного клиента, переживающий перезапуски).
func InitDB() error {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return fmt.Errorf("DATABASE_URL не установлена")
	}

	parsedURL, err := url.Parse(dbURL)
	if err != nil {
		return fmt.Errorf("ошибка парсинга DATABASE_URL: %v", err)
	}

	query := parsedURL.Query()
	// Пример: query.Set("sslmode", "require")
	parsedURL.RawQuery = query.Encode()
	finalURL := parsedURL.String()

	DB, err = sql.Open("postgres", finalURL)
	if err != nil {
		return fmt.Errorf("ошибка подключения к базе данных: %v", err)
	}

	// Настройки пула соединений
	DB.SetMaxOpenConns(20)
	DB.SetMaxIdleConns(10)
	DB.SetConnMaxLifetime(5 * time.Minute)

	if err := DB.Ping(); err != nil {
		return fmt.Errorf("ошибка проверки соединения с базой данных: %v", err)
	}

	log.Println("Успешное подключение к базе данных.")

	createTablesSQL := `
        CREATE TABLE IF NOT EXISTS auth_tokens (
            chat_id BIGINT PRIMARY KEY,
            token TEXT NOT NULL,
            created_at TIMESTAMP NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMP NOT NULL DEFAULT NOW()
        );`

	if _, err = DB.Exec(createTablesSQL); err != nil {
		return fmt.Errorf("ошибка создания таблиц: %v", err)
	}

	log.Println("Миграции выполнены, таблица auth_tokens готова.")
	return nil
}

// CloseDB закрывает соединение с базой данных.
func CloseDB() {
	if DB != nil {
		if err := DB.Close(); err != nil {
			log.Printf("Ошибка закрытия соединения с БД: %v", err)
		} else {
			log.Println("Соединение с базой данных закрыто.")
		}
	}
}
