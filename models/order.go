package models

import "time"

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"    // placed, awaiting processing
	OrderStatusProcessing OrderStatus = "processing" // being prepared
	OrderStatusShipped    OrderStatus = "shipped"    // out for delivery
	OrderStatusDelivered  OrderStatus = "delivered"  // customer received the item
)

type PaymentMethod string

const (
	PaymentMethodCard        PaymentMethod = "card"
	PaymentMethodCOD         PaymentMethod = "cod"
	PaymentMethodStoreCredit PaymentMethod = "store_credit"
)

type Order struct {
	ID            uint               `gorm:"primaryKey" json:"id"`
	OrderRef      string             `gorm:"uniqueIndex" json:"order_ref"`
	UserID        string             `gorm:"not null;index" json:"user_id"`
	User          User               `gorm:"foreignKey:UserID" json:"user"`
	Items         []OrderItem        `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	Shipping      ShippingAddress    `gorm:"embedded;embeddedPrefix:shipping_" json:"shipping_address"`
	PaymentMethod PaymentMethod      `gorm:"type:VARCHAR(20)" json:"payment_method"`
	TotalAmount   int                `json:"total_amount"`
	Status        OrderStatus        `gorm:"type:VARCHAR(20);default:'pending'" json:"status"`
	StatusHistory []OrderStatusEvent `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"status_history"`
	CreatedAt     time.Time          `json:"created_at"`
}

// OrderItem is one line item. Price is the unit price captured at order
// time; later catalog edits do not touch it.
type OrderItem struct {
	ID        uint    `gorm:"primaryKey" json:"-"`
	OrderID   uint    `gorm:"index" json:"-"`
	ProductID uint    `json:"product_id"`
	Product   Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Size      int     `json:"size"`
	Quantity  int     `gorm:"check:quantity >= 1" json:"quantity"`
	Price     int     `json:"price"`
}

// ShippingAddress is snapshotted into the order at creation, so profile
// edits never rewrite history.
type ShippingAddress struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Phone      string `json:"phone"`
}

// OrderStatusEvent is one entry in an order's status history log.
type OrderStatusEvent struct {
	ID        uint        `gorm:"primaryKey" json:"-"`
	OrderID   uint        `gorm:"index" json:"-"`
	Status    OrderStatus `gorm:"type:VARCHAR(20)" json:"status"`
	CreatedAt time.Time   `json:"timestamp"`
}
