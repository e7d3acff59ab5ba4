package session

import (
	"context"
	"log"
	"sync"

	"Courier/internal/backend"
	"Courier/internal/constants"
	"Courier/internal/models"
)

// AuthStatus - статус аутентификации курьера в рамках одного чата.
// AuthStatus - the courier's authentication status within a single chat.
type AuthStatus string

const (
	StatusLoading   AuthStatus = "loading"
	StatusSignedOut AuthStatus = "signedOut"
	StatusSignedIn  AuthStatus = "signedIn"
)

// AuthSession - сессия курьера. Инвариант: Token и User либо оба заполнены
// (StatusSignedIn), либо оба пусты. Никогда одно без другого.
// AuthSession - the courier's session. Invariant: Token and User are either
// both set (StatusSignedIn) or both empty. Never one without the other.
type AuthSession struct {
	Status AuthStatus
	Token  string
	User   models.DeliveryManUser
}

// TokenStore - постоянное хранилище токенов. Единственный долговременный
// разделяемый ресурс; продакшен-реализация живет в internal/db.
type TokenStore interface {
	Get(chatID int64) (string, error)
	Save(chatID int64, token string) error
	Delete(chatID int64) error
}

// Manager - единственный источник истины о том, "кто вошел" в каждом чате.
// Остальному приложению сессия доступна только на чтение (копией) и через
// четыре операции: Bootstrap, SignIn, SignOut, Refresh.
// Обработчики бота выполняются в отдельных горутинах, поэтому, в отличие от
// однопоточного мобильного клиента, менеджер защищен мьютексами; при
// конкурирующих операциях побеждает последняя запись.
type Manager struct {
	tokens TokenStore

	authSessions   map[int64]AuthSession
	authMutex      sync.RWMutex
	userStates     map[int64]string   // Ключ: chatID, Значение: текущее состояние диалога / Key: chatID, Value: current dialog state
	userHistory    map[int64][]string // Ключ: chatID, Значение: история состояний / Key: chatID, Value: state history
	userStateMutex sync.RWMutex

	tempStatusUpdates     map[int64]TempStatusUpdate
	tempStatusUpdateMutex sync.RWMutex

	tempSignIns     map[int64]TempSignIn
	tempSignInMutex sync.RWMutex
}

// NewManager создает менеджер сессий поверх переданного хранилища токенов.
func NewManager(tokens TokenStore) *Manager {
	return &Manager{
		tokens:            tokens,
		authSessions:      make(map[int64]AuthSession),
		userStates:        make(map[int64]string),
		userHistory:       make(map[int64][]string),
		tempStatusUpdates: make(map[int64]TempStatusUpdate),
		tempSignIns:       make(map[int64]TempSignIn),
	}
}

// --- Аутентификация (Auth Session) ---

// Auth возвращает копию сессии чата. Если сессии еще нет, возвращается
// начальное состояние StatusLoading (bootstrap еще не выполнялся).
func (sm *Manager) Auth(chatID int64) AuthSession {
	sm.authMutex.RLock()
	defer sm.authMutex.RUnlock()
	session, ok := sm.authSessions[chatID]
	if !ok {
		return AuthSession{Status: StatusLoading}
	}
	return session
}

func (sm *Manager) setAuth(chatID int64, session AuthSession) {
	sm.authMutex.Lock()
	defer sm.authMutex.Unlock()
	sm.authSessions[chatID] = session
}

// Bootstrap восстанавливает сессию из сохраненного токена.
// Токена нет -> signedOut. Токен есть -> проверка через "me"; при успехе
// signedIn, при ЛЮБОЙ ошибке сохраненный токен стирается и статус signedOut.
// Это единственное место (вместе с Refresh), где протухший токен
// обнаруживается и вычищается.
func (sm *Manager) Bootstrap(ctx context.Context, chatID int64) AuthSession {
	stored, err := sm.tokens.Get(chatID)
	if err != nil {
		// Нечитаемый токен равносилен отсутствующему, но запись надо убрать.
		log.Printf("Session.Bootstrap: токен для chatID %d не прочитан: %v", chatID, err)
		if delErr := sm.tokens.Delete(chatID); delErr != nil {
			log.Printf("Session.Bootstrap: не удалось удалить токен для chatID %d: %v", chatID, delErr)
		}
		stored = ""
	}

	if stored == "" {
		session := AuthSession{Status: StatusSignedOut}
		sm.setAuth(chatID, session)
		return session
	}

	user, err := backend.Me(ctx, stored)
	if err != nil {
		log.Printf("Session.Bootstrap: проверка токена для chatID %d не прошла: %v", chatID, err)
		if delErr := sm.tokens.Delete(chatID); delErr != nil {
			log.Printf("Session.Bootstrap: не удалось удалить токен для chatID %d: %v", chatID, delErr)
		}
		session := AuthSession{Status: StatusSignedOut}
		sm.setAuth(chatID, session)
		return session
	}

	session := AuthSession{Status: StatusSignedIn, Token: stored, User: user}
	sm.setAuth(chatID, session)
	log.Printf("Session.Bootstrap: chatID %d вошел как %s (id=%d)", chatID, user.Email, user.ID)
	return session
}

// SignIn выполняет вход по учетным данным. При успехе токен сохраняется
// в хранилище и сессия переходит в signedIn. При неудаче состояние сессии
// НЕ меняется, а ошибка отдается вызывающему для показа пользователю.
func (sm *Manager) SignIn(ctx context.Context, chatID int64, email, password string) error {
	result, err := backend.SignIn(ctx, email, password)
	if err != nil {
		return err
	}

	if err := sm.tokens.Save(chatID, result.Token); err != nil {
		// Вход удался, но токен не переживет перезапуск. Сессию все равно
		// поднимаем, об ошибке только сообщаем в лог.
		log.Printf("Session.SignIn: токен для chatID %d не сохранен: %v", chatID, err)
	}

	sm.setAuth(chatID, AuthSession{Status: StatusSignedIn, Token: result.Token, User: result.User})
	log.Printf("Session.SignIn: chatID %d вошел как %s (id=%d)", chatID, result.User.Email, result.User.ID)
	return nil
}

// SignOut выполняет выход. Порядок принципиален: сначала синхронно
// очищается локальная сессия (интерфейс разблокируется сразу), затем
// стирается сохраненный токен, затем best-effort уведомляется бэкенд.
// Ошибка сети на последнем шаге игнорируется - локальный выход не может
// не удаться.
func (sm *Manager) SignOut(ctx context.Context, chatID int64) {
	current := sm.Auth(chatID)
	sm.setAuth(chatID, AuthSession{Status: StatusSignedOut})

	if err := sm.tokens.Delete(chatID); err != nil {
		log.Printf("Session.SignOut: не удалось удалить токен для chatID %d: %v", chatID, err)
	}

	if current.Token != "" {
		backend.Logout(ctx, current.Token)
	}
	log.Printf("Session.SignOut: chatID %d вышел", chatID)
}

// Refresh повторяет логику Bootstrap без сброса в loading: используется для
// повторной проверки токена и синхронизации профиля по требованию.
func (sm *Manager) Refresh(ctx context.Context, chatID int64) AuthSession {
	return sm.Bootstrap(ctx, chatID)
}

// --- Управление состоянием диалога (User State) ---
// --- Dialog State Management ---

// GetState возвращает текущее состояние диалога пользователя.
// Если состояние не установлено, возвращает STATE_IDLE.
func (sm *Manager) GetState(chatID int64) string {
	sm.userStateMutex.RLock()
	defer sm.userStateMutex.RUnlock()
	state, ok := sm.userStates[chatID]
	if !ok {
		return constants.STATE_IDLE
	}
	return state
}

// SetState устанавливает новое состояние диалога и добавляет его в историю.
func (sm *Manager) SetState(chatID int64, state string) {
	sm.userStateMutex.Lock()
	defer sm.userStateMutex.Unlock()

	sm.userStates[chatID] = state
	if _, exists := sm.userHistory[chatID]; !exists {
		sm.userHistory[chatID] = []string{}
	}
	// Не дублируем последнее состояние в истории
	historyLen := len(sm.userHistory[chatID])
	if historyLen == 0 || sm.userHistory[chatID][historyLen-1] != state {
		sm.userHistory[chatID] = append(sm.userHistory[chatID], state)
	}
	log.Printf("Session.SetState: chatID %d -> %s, история: %v", chatID, state, sm.userHistory[chatID])
}

// PopState удаляет последнее состояние из истории и возвращает предыдущее.
// Если история пуста или содержит одно состояние, устанавливает STATE_IDLE.
func (sm *Manager) PopState(chatID int64) string {
	sm.userStateMutex.Lock()
	defer sm.userStateMutex.Unlock()

	history, ok := sm.userHistory[chatID]
	if ok && len(history) > 1 {
		sm.userHistory[chatID] = history[:len(history)-1]
		newState := sm.userHistory[chatID][len(sm.userHistory[chatID])-1]
		sm.userStates[chatID] = newState
		return newState
	}

	sm.userStates[chatID] = constants.STATE_IDLE
	sm.userHistory[chatID] = []string{constants.STATE_IDLE}
	return constants.STATE_IDLE
}

// ClearState сбрасывает состояние диалога к STATE_IDLE и очищает историю.
func (sm *Manager) ClearState(chatID int64) {
	sm.userStateMutex.Lock()
	defer sm.userStateMutex.Unlock()
	sm.userStates[chatID] = constants.STATE_IDLE
	sm.userHistory[chatID] = []string{constants.STATE_IDLE}
}
