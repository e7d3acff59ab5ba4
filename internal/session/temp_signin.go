// Файл: internal/session/temp_signin.go
package session

// TempSignIn - временные данные диалога входа: email, введенный на первом
// шаге, и ID сообщения-приглашения, которое редактируется по ходу диалога.
// Пароль здесь не хранится никогда: он читается из сообщения и сразу
// уходит в SignIn.
type TempSignIn struct {
	Email           string
	PromptMessageID int
}

// GetTempSignIn возвращает временные данные диалога входа.
func (sm *Manager) GetTempSignIn(chatID int64) TempSignIn {
	sm.tempSignInMutex.RLock()
	defer sm.tempSignInMutex.RUnlock()
	return sm.tempSignIns[chatID]
}

// UpdateTempSignIn сохраняет временные данные диалога входа.
func (sm *Manager) UpdateTempSignIn(chatID int64, data TempSignIn) {
	sm.tempSignInMutex.Lock()
	defer sm.tempSignInMutex.Unlock()
	sm.tempSignIns[chatID] = data
}

// ClearTempSignIn удаляет временные данные диалога входа.
func (sm *Manager) ClearTempSignIn(chatID int64) {
	sm.tempSignInMutex.Lock()
	defer sm.tempSignInMutex.Unlock()
	delete(sm.tempSignIns, chatID)
}
