package orderControllers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hoopkicks/hoopkicks-api/models"
)

// totalTolerance is the allowed gap, in currency units, between the
// client-submitted total and the server-computed one.
const totalTolerance = 1

// paymentDiscounts maps a payment method to its percentage discount.
var paymentDiscounts = map[models.PaymentMethod]int{
	models.PaymentMethodCard:        0,
	models.PaymentMethodCOD:         0,
	models.PaymentMethodStoreCredit: 5,
}

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrSizeNotAvailable  = errors.New("size not available")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrTotalMismatch     = errors.New("total amount does not match server-computed total")
	ErrInvalidPayment    = errors.New("invalid payment method")
	ErrShippingRequired  = errors.New("all shipping address fields are required")
)

// -------- Request Structs --------

type OrderItemInput struct {
	ProductID uint `json:"product_id" binding:"required"`
	Size      int  `json:"size" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,min=1"`
	Price     int  `json:"price"`
}

type PlaceOrderRequest struct {
	Items         []OrderItemInput       `json:"items" binding:"required,min=1,dive"`
	Shipping      models.ShippingAddress `json:"shipping_address" binding:"required"`
	PaymentMethod models.PaymentMethod   `json:"payment_method" binding:"required"`
	TotalAmount   int                    `json:"total_amount"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// -------- Helpers --------

func mapOrderStatus(status string) (models.OrderStatus, error) {
	switch strings.ToLower(status) {
	case string(models.OrderStatusPending):
		return models.OrderStatusPending, nil
	case string(models.OrderStatusProcessing):
		return models.OrderStatusProcessing, nil
	case string(models.OrderStatusShipped):
		return models.OrderStatusShipped, nil
	case string(models.OrderStatusDelivered):
		return models.OrderStatusDelivered, nil
	default:
		return "", errors.New("invalid order status")
	}
}

func validateShipping(s models.ShippingAddress) error {
	if s.Name == "" || s.Email == "" || s.Address == "" || s.City == "" ||
		s.PostalCode == "" || s.Phone == "" {
		return ErrShippingRequired
	}
	return nil
}

// generateOrderRef returns a unique order reference.
// Example: 20250908130500-<uuid4>
func generateOrderRef() string {
	return time.Now().Format("20060102150405") + "-" + uuid.NewString()
}

// -------- Core Logic --------

// PlaceOrder validates stock and prices against the live catalog, decrements
// per-size stock and creates the order — all inside one transaction, so a
// failing line item leaves earlier items untouched.
func PlaceOrder(db *gorm.DB, userID string, req PlaceOrderRequest) (*models.Order, error) {
	discount, ok := paymentDiscounts[req.PaymentMethod]
	if !ok {
		return nil, ErrInvalidPayment
	}
	if err := validateShipping(req.Shipping); err != nil {
		return nil, err
	}

	var order models.Order

	err := db.Transaction(func(tx *gorm.DB) error {
		subtotal := 0
		orderItems := make([]models.OrderItem, 0, len(req.Items))

		for _, item := range req.Items {
			var product models.Product
			if err := tx.Preload("Sizes").First(&product, item.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: product %d", ErrProductNotFound, item.ProductID)
				}
				return err
			}

			sizeKnown := false
			for _, s := range product.Sizes {
				if s.Size == item.Size {
					sizeKnown = true
					break
				}
			}
			if !sizeKnown {
				return fmt.Errorf("%w: %s size %d", ErrSizeNotAvailable, product.Name, item.Size)
			}

			// Conditional decrement: zero rows means another checkout got
			// there first or stock was already short. Aborts the whole
			// transaction, so nothing partial is ever applied.
			res := tx.Model(&models.ProductSize{}).
				Where("product_id = ? AND size = ? AND stock >= ?", item.ProductID, item.Size, item.Quantity).
				Update("stock", gorm.Expr("stock - ?", item.Quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("%w: %s size %d", ErrInsufficientStock, product.Name, item.Size)
			}

			if err := tx.Model(&models.Product{}).Where("id = ?", product.ID).
				Update("stock", gorm.Expr("stock - ?", item.Quantity)).Error; err != nil {
				return err
			}

			// Unit price comes from the catalog, never from the client.
			subtotal += product.Price * item.Quantity
			orderItems = append(orderItems, models.OrderItem{
				ProductID: product.ID,
				Size:      item.Size,
				Quantity:  item.Quantity,
				Price:     product.Price,
			})
		}

		total := subtotal - subtotal*discount/100
		if diff := total - req.TotalAmount; diff > totalTolerance || diff < -totalTolerance {
			return fmt.Errorf("%w: expected %d", ErrTotalMismatch, total)
		}

		order = models.Order{
			OrderRef:      generateOrderRef(),
			UserID:        userID,
			Items:         orderItems,
			Shipping:      req.Shipping,
			PaymentMethod: req.PaymentMethod,
			TotalAmount:   total,
			Status:        models.OrderStatusPending,
			StatusHistory: []models.OrderStatusEvent{
				{Status: models.OrderStatusPending, CreatedAt: time.Now()},
			},
			CreatedAt: time.Now(),
		}
		return tx.Create(&order).Error
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// DeleteOrder restores every line item's stock, then removes the order.
// Runs in one transaction so a mid-loop failure restores nothing.
func DeleteOrder(db *gorm.DB, orderID string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.Preload("Items").First(&order, "id = ?", orderID).Error; err != nil {
			return err
		}

		for _, item := range order.Items {
			if err := tx.Model(&models.ProductSize{}).
				Where("product_id = ? AND size = ?", item.ProductID, item.Size).
				Update("stock", gorm.Expr("stock + ?", item.Quantity)).Error; err != nil {
				return err
			}
			// Unscoped: the product may have been soft-deleted since.
			if err := tx.Unscoped().Model(&models.Product{}).Where("id = ?", item.ProductID).
				Update("stock", gorm.Expr("stock + ?", item.Quantity)).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("order_id = ?", order.ID).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("order_id = ?", order.ID).Delete(&models.OrderStatusEvent{}).Error; err != nil {
			return err
		}
		return tx.Delete(&order).Error
	})
}

// UpdateOrderStatus overwrites the status and appends to the history log.
func UpdateOrderStatus(db *gorm.DB, orderID string, newStatus models.OrderStatus) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.First(&order, "id = ?", orderID).Error; err != nil {
			return err
		}
		if err := tx.Model(&order).Update("status", newStatus).Error; err != nil {
			return err
		}
		event := models.OrderStatusEvent{
			OrderID:   order.ID,
			Status:    newStatus,
			CreatedAt: time.Now(),
		}
		return tx.Create(&event).Error
	})
}

// -------- Handlers --------

// POST /orders
func PlaceOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var req PlaceOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		order, err := PlaceOrder(db, userIDVal.(string), req)
		if err != nil {
			switch {
			case errors.Is(err, ErrProductNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			case errors.Is(err, ErrSizeNotAvailable),
				errors.Is(err, ErrInsufficientStock),
				errors.Is(err, ErrTotalMismatch),
				errors.Is(err, ErrInvalidPayment),
				errors.Is(err, ErrShippingRequired):
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to place order"})
			}
			return
		}

		broadcastNewOrder(*order)
		c.JSON(http.StatusCreated, order)
	}
}

// GET /admin/orders
func GetAllOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var orders []models.Order
		if err := db.
			Preload("User").
			Preload("Items").
			Preload("Items.Product", func(db *gorm.DB) *gorm.DB {
				// Soft-deleted products still expand in historical orders.
				return db.Unscoped()
			}).
			Preload("StatusHistory").
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// GET /user/orders
func GetUserOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var orders []models.Order
		if err := db.
			Where("user_id = ?", userIDVal.(string)).
			Preload("Items").
			Preload("Items.Product", func(db *gorm.DB) *gorm.DB {
				return db.Unscoped()
			}).
			Preload("StatusHistory").
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// PUT /admin/orders/:orderID/status
func UpdateOrderStatusHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID := c.Param("orderID")
		var req UpdateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		newStatus, err := mapOrderStatus(req.Status)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := UpdateOrderStatus(db, orderID, newStatus); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update order status"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Order status updated successfully"})
	}
}

// DELETE /admin/orders/:orderID
func DeleteOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID := c.Param("orderID")
		if err := DeleteOrder(db, orderID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete order"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Order deleted successfully"})
	}
}
