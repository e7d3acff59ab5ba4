package utils

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"log"
	"os"
)

// encryptionKey - глобальный ключ шифрования bearer-токенов.
// Инициализируется через InitEncryptionKey().
var encryptionKey []byte

// InitEncryptionKey инициализирует ключ шифрования из переменной окружения.
// Должна вызываться один раз при старте приложения. Без ключа токены
// невозможно ни сохранить, ни прочитать.
func InitEncryptionKey() error {
	keyHex := os.Getenv("TOKEN_ENCRYPTION_KEY_HEX") // 32-байтовый ключ в HEX (64 символа)
	if keyHex == "" {
		log.Println("КРИТИЧЕСКАЯ ОШИБКА: Ключ шифрования TOKEN_ENCRYPTION_KEY_HEX не установлен в переменных окружения.")
		return fmt.Errorf("ключ шифрования TOKEN_ENCRYPTION_KEY_HEX не установлен")
	}

	var err error
	encryptionKey, err = hex.DecodeString(keyHex)
	if err != nil {
		log.Printf("КРИТИЧЕСКАЯ ОШИБКА: Не удалось декодировать TOKEN_ENCRYPTION_KEY_HEX: %v", err)
		return fmt.Errorf("некорректный формат ключа шифрования (не HEX): %w", err)
	}

	if len(encryptionKey) != 32 { // AES-256 требует ключ длиной 32 байта.
		log.Printf("КРИТИЧЕСКАЯ ОШИБКА: Длина ключа шифрования должна быть 32 байта (64 HEX символа), получено %d байт.", len(encryptionKey))
		return fmt.Errorf("некорректная длина ключа шифрования, требуется 32 байта, получено %d", len(encryptionKey))
	}

	log.Println("Ключ шифрования токенов успешно инициализирован.")
	return nil
}

// EncryptToken шифрует bearer-токен алгоритмом AES-256-GCM.
// Возвращает hex-кодированный шифротекст для хранения в БД.
func EncryptToken(plainToken string) (string, error) {
	if len(encryptionKey) == 0 {
		return "", fmt.Errorf("ключ шифрования не инициализирован")
	}

	block, err := aes.NewCipher(encryptionKey)
	if err != nil {
		return "", fmt.Errorf("ошибка создания шифра: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", fmt.Errorf("ошибка создания GCM: %w", err)
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err = io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("ошибка генерации nonce: %w", err)
	}

	// Seal дописывает nonce в начало шифротекста.
	cipherText := gcm.Seal(nonce, nonce, []byte(plainToken), nil)
	return hex.EncodeToString(cipherText), nil
}

// DecryptToken расшифровывает hex-кодированный шифротекст токена.
func DecryptToken(cipherTokenHex string) (string, error) {
	if len(encryptionKey) == 0 {
		return "", fmt.Errorf("ключ шифрования не инициализирован")
	}

	cipherText, err := hex.DecodeString(cipherTokenHex)
	if err != nil {
		return "", fmt.Errorf("не удалось декодировать зашифрованный токен из hex: %w", err)
	}

	block, err := aes.NewCipher(encryptionKey)
	if err != nil {
		return "", fmt.Errorf("ошибка создания шифра при дешифровании: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", fmt.Errorf("ошибка создания GCM при дешифровании: %w", err)
	}

	if len(cipherText) < gcm.NonceSize() {
		return "", fmt.Errorf("размер зашифрованного текста меньше размера nonce")
	}

	// Nonce хранится в начале шифротекста.
	nonce, actualCipherText := cipherText[:gcm.NonceSize()], cipherText[gcm.NonceSize():]

	plainText, err := gcm.Open(nil, nonce, actualCipherText, nil)
	if err != nil {
		log.Printf("Ошибка дешифрования токена (возможно, сменился ключ или данные повреждены): %v", err)
		return "", fmt.Errorf("ошибка дешифрования токена: %w", err)
	}

	return string(plainText), nil
}
