package utils

import (
	"fmt"
	"log"

	"github.com/skip2/go-qrcode"
)

// GenerateBotLink генерирует ссылку на бота для кнопки "Поделиться"
// в настройках. botUsername - конфигурационное значение.
func GenerateBotLink(botUsername string) (string, error) {
	if botUsername == "" {
		log.Println("GenerateBotLink: botUsername не предоставлен.")
		return "", fmt.Errorf("имя пользователя бота не настроено")
	}
	return fmt.Sprintf("https://t.me/%s", botUsername), nil
}

// GenerateBotQRCode генерирует PNG с QR-кодом ссылки на бота.
func GenerateBotQRCode(botUsername string) ([]byte, error) {
	link, err := GenerateBotLink(botUsername)
	if err != nil {
		return nil, err
	}

	// qrcode.Medium - уровень коррекции ошибок, 256 - размер QR-кода в пикселях.
	qrBytes, err := qrcode.Encode(link, qrcode.Medium, 256)
	if err != nil {
		log.Printf("GenerateBotQRCode: ошибка кодирования QR-кода для ссылки '%s': %v", link, err)
		return nil, err
	}
	return qrBytes, nil
}
