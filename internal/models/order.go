package models

import "encoding/json"

// Product - товар в позиции заказа.
type Product struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Image *string `json:"image"`
	SKU   *string `json:"sku"`
}

// OrderItem - позиция заказа.
type OrderItem struct {
	ID            int64   `json:"id"`
	OrderID       int64   `json:"orderId"`
	ProductID     int64   `json:"productId"`
	Quantity      int     `json:"quantity"`
	Price         float64 `json:"price"`
	OriginalPrice float64 `json:"originalPrice"`
	IsFree        bool    `json:"isFree"`
	Product       Product `json:"product"`
}

// Merchant - магазин, которому принадлежит заказ.
type Merchant struct {
	ID          int64    `json:"id"`
	CompanyName string   `json:"companyName"`
	User        UserInfo `json:"user"`
}

// DeliveryManInfo - курьер, назначенный на заказ (краткая форма).
type DeliveryManInfo struct {
	ID   int64    `json:"id"`
	User UserInfo `json:"user"`
}

// Order - заказ на доставку. Заказами владеет бэкенд: бот их только читает
// и переводит по статусам, никогда не создает и не удаляет.
// Order - a delivery order. The backend owns orders: the bot only reads them
// and moves them through statuses, never creates or deletes.
type Order struct {
	ID                  int64           `json:"id"`
	OrderCode           string          `json:"orderCode"`
	CustomerName        string          `json:"customerName"`
	CustomerPhone       string          `json:"customerPhone"`
	Address             string          `json:"address"`
	City                string          `json:"city"`
	Note                string          `json:"note"`
	TotalPrice          float64         `json:"totalPrice"`
	PaymentMethod       string          `json:"paymentMethod"`
	MerchantEarning     float64         `json:"merchantEarning"`
	Status              OrderStatus     `json:"status"`
	MerchantID          int64           `json:"merchantId"`
	DeliveryManID       int64           `json:"deliveryManId"`
	DiscountType        *string         `json:"discountType"`
	DiscountValue       *float64        `json:"discountValue"`
	DiscountDescription *string         `json:"discountDescription"`
	OriginalTotalPrice  *float64        `json:"originalTotalPrice"`
	TotalDiscount       *float64        `json:"totalDiscount"`
	BuyXGetYConfig      json.RawMessage `json:"buyXGetYConfig"`
	CreatedAt           string          `json:"createdAt"`
	DeliveredAt         *string         `json:"deliveredAt"`
	UpdatedAt           string          `json:"updatedAt"`
	OrderItems          []OrderItem     `json:"orderItems"`
	Merchant            Merchant        `json:"merchant"`
	DeliveryMan         DeliveryManInfo `json:"deliveryMan"`
}

// OrderSummary - краткая сводка заказа, которую бэкенд возвращает
// в ответах accept и update-status.
type OrderSummary struct {
	ID            int64       `json:"id"`
	OrderCode     string      `json:"orderCode"`
	Status        OrderStatus `json:"status"`
	DeliveryManID int64       `json:"deliveryManId,omitempty"`
	AttemptNumber int         `json:"attemptNumber,omitempty"`
}
