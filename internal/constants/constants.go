package constants

// Authentication Flow States
// Состояния потока аутентификации
const (
	STATE_IDLE           = "idle"
	STATE_AUTH_EMAIL     = "auth_email"    // Ожидание ввода email / Awaiting email input
	STATE_AUTH_PASSWORD  = "auth_password" // Ожидание ввода пароля / Awaiting password input
	STATE_AUTH_IN_FLIGHT = "auth_in_flight"
)

// Order Viewing States
// Состояния просмотра заказов
const (
	STATE_MAIN_MENU    = "main_menu"
	STATE_ORDERS_LIST  = "orders_list"
	STATE_ORDER_VIEW   = "order_view"
	STATE_HISTORY_VIEW = "history_view"
	STATE_SETTINGS     = "settings"
)

// Status Update Flow States
// Состояния потока смены статуса заказа
const (
	STATE_STATUS_SELECT        = "status_select"        // Выбор целевого статуса
	STATE_STATUS_REASON_SELECT = "status_reason_select" // Выбор канонической причины
	STATE_STATUS_REASON_INPUT  = "status_reason_input"  // Свободный ввод причины
	STATE_STATUS_CONFIRM       = "status_confirm"       // Подтверждение отправки
)

// General Text Messages
// Общие текстовые сообщения
const (
	NotSignedInMessage = "🔐 Вы не вошли в систему. Нажмите /start, чтобы войти."
	GenericErrorText   = "❌ Произошла ошибка. Попробуйте еще раз."
)

// Callback Data Prefixes
// Префиксы данных обратного вызова
const (
	CALLBACK_MAIN_MENU     = "main_menu"
	CALLBACK_SIGN_IN       = "sign_in"
	CALLBACK_SIGN_OUT      = "sign_out"
	CALLBACK_REFRESH       = "refresh_session"
	CALLBACK_LATEST_ORDERS = "latest_orders"
	CALLBACK_ALL_ORDERS    = "all_orders"
	CALLBACK_HISTORY       = "history"
	CALLBACK_SETTINGS      = "settings"
	CALLBACK_SHARE_QR      = "share_qr"

	CALLBACK_PREFIX_ORDER_VIEW    = "ord_view"    // ord_view_<id>
	CALLBACK_PREFIX_ORDER_ACCEPT  = "ord_accept"  // ord_accept_<id>
	CALLBACK_PREFIX_ORDER_REFRESH = "ord_refresh" // ord_refresh_<id>, повторная загрузка деталей
	CALLBACK_PREFIX_STATUS_MENU   = "st_menu"     // st_menu_<id>, открыть выбор статуса
	CALLBACK_PREFIX_STATUS_SET    = "st_set"      // st_set_<id>_<STATUS>
	CALLBACK_PREFIX_REASON_PICK   = "st_reason"   // st_reason_<id>_<index канонической причины>
	CALLBACK_PREFIX_REASON_EDIT   = "st_redit"    // st_redit_<id>, перейти к свободному вводу
	CALLBACK_PREFIX_STATUS_SUBMIT = "st_submit"   // st_submit_<id>
	CALLBACK_PREFIX_STATUS_CANCEL = "st_cancel"   // st_cancel_<id>, вернуться к деталям заказа

	CALLBACK_PREFIX_FILTER         = "ord_filter" // ord_filter_<bucket>
	CALLBACK_PREFIX_RETRY_LIST     = "retry_list" // retry_list_<latest|all>
	CALLBACK_PREFIX_HISTORY_EXPORT = "hist_export"
)

// Фильтры списка заказов (callback-суффиксы).
// Order list filters (callback suffixes).
const (
	FILTER_ALL         = "all"
	FILTER_PENDING     = "pending"
	FILTER_IN_PROGRESS = "in_progress"
	FILTER_DELIVERED   = "delivered"
)

// Pagination
// Пагинация
const (
	OrdersPerPage = 10
)
