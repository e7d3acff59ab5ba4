package models

// DeliveryMan - профиль курьера (доставщика), вложенный в DeliveryManUser.
// DeliveryMan - the courier (deliveryman) profile nested in DeliveryManUser.
type DeliveryMan struct {
	ID          int64   `json:"id"`
	City        *string `json:"city"`
	VehicleType *string `json:"vehicleType"`
	Active      bool    `json:"active"`
	BaseFee     float64 `json:"baseFee,omitempty"`
}

// DeliveryManUser - учетная запись курьера, которую возвращает бэкенд
// при входе (login) и при проверке сессии (me).
// DeliveryManUser - the courier account returned by the backend
// on login and on session check (me).
type DeliveryManUser struct {
	ID          int64       `json:"id"`
	Name        string      `json:"name"`
	Email       string      `json:"email"`
	Image       *string     `json:"image,omitempty"`
	Role        string      `json:"role"` // Всегда "DELIVERYMAN" / Always "DELIVERYMAN"
	DeliveryMan DeliveryMan `json:"deliveryMan"`
}

// UserInfo - краткие данные пользователя внутри заказа (клиент магазина, курьер).
type UserInfo struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Phone string  `json:"phone"`
	Email string  `json:"email,omitempty"`
	Image *string `json:"image,omitempty"`
}
