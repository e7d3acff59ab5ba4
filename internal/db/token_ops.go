// Файл: internal/db/token_ops.go
package db

import (
	"database/sql"
	"fmt"
	"log"

	"Courier/internal/utils"
)

// TokenStore - постоянное хранилище bearer-токенов курьеров.
// Токены лежат в Postgres в зашифрованном виде (AES-256-GCM, см. utils).
// Пишет сюда только вход, удаляют - выход и неудачный bootstrap.
type TokenStore struct {
	db *sql.DB
}

// NewTokenStore создает хранилище поверх готового соединения с БД.
func NewTokenStore(database *sql.DB) *TokenStore {
	return &TokenStore{db: database}
}

// Get возвращает расшифрованный токен курьера.
// Отсутствие токена - не ошибка: возвращается пустая строка.
func (ts *TokenStore) Get(chatID int64) (string, error) {
	var encrypted string
	err := ts.db.QueryRow(`SELECT token FROM auth_tokens WHERE chat_id = $1`, chatID).Scan(&encrypted)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("ошибка чтения токена для chatID %d: %w", chatID, err)
	}

	token, err := utils.DecryptToken(encrypted)
	if err != nil {
		// Поврежденный или зашифрованный старым ключом токен бесполезен.
		log.Printf("TokenStore.Get: не удалось расшифровать токен для chatID %d: %v", chatID, err)
		return "", fmt.Errorf("токен для chatID %d не расшифрован: %w", chatID, err)
	}
	return token, nil
}

// Save шифрует и сохраняет токен курьера (upsert).
func (ts *TokenStore) Save(chatID int64, token string) error {
	encrypted, err := utils.EncryptToken(token)
	if err != nil {
		return fmt.Errorf("ошибка шифрования токена для chatID %d: %w", chatID, err)
	}

	_, err = ts.db.Exec(`
        INSERT INTO auth_tokens (chat_id, token, created_at, updated_at)
        VALUES ($1, $2, NOW(), NOW())
        ON CONFLICT (chat_id) DO UPDATE SET token = EXCLUDED.token, updated_at = NOW()`,
		chatID, encrypted)
	if err != nil {
		return fmt.Errorf("ошибка сохранения токена для chatID %d: %w", chatID, err)
	}
	return nil
}

// Delete удаляет сохраненный токен курьера. Отсутствие строки - не ошибка.
func (ts *TokenStore) Delete(chatID int64) error {
	_, err := ts.db.Exec(`DELETE FROM auth_tokens WHERE chat_id = $1`, chatID)
	if err != nil {
		return fmt.Errorf("ошибка удаления токена для chatID %d: %w", chatID, err)
	}
	return nil
}
