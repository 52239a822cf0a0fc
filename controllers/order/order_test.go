package orderControllers

import (
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/hoopkicks/hoopkicks-api/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.ProductSize{},
		&models.ProductImage{},
		&models.Order{},
		&models.OrderItem{},
		&models.OrderStatusEvent{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB) models.User {
	t.Helper()
	user := models.User{
		ID:           uuid.NewString(),
		Name:         "Test Customer",
		Email:        uuid.NewString() + "@example.com",
		PasswordHash: "x",
		Role:         models.RoleCustomer,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func seedProduct(t *testing.T, db *gorm.DB, name string, price int, sizes map[int]int) models.Product {
	t.Helper()
	total := 0
	var sizeRecords []models.ProductSize
	for size, stock := range sizes {
		sizeRecords = append(sizeRecords, models.ProductSize{Size: size, Stock: stock})
		total += stock
	}
	product := models.Product{
		Name:     name,
		Price:    price,
		Brand:    "Nike",
		Category: models.CategoryMen,
		Image:    "/img/" + name + ".png",
		Sizes:    sizeRecords,
		Stock:    total,
	}
	require.NoError(t, db.Create(&product).Error)
	return product
}

func sizeStock(t *testing.T, db *gorm.DB, productID uint, size int) int {
	t.Helper()
	var ps models.ProductSize
	require.NoError(t, db.Where("product_id = ? AND size = ?", productID, size).First(&ps).Error)
	return ps.Stock
}

func shipping() models.ShippingAddress {
	return models.ShippingAddress{
		Name:       "Test Customer",
		Email:      "customer@example.com",
		Address:    "12 Baseline Rd",
		City:       "Colombo",
		PostalCode: "00100",
		Phone:      "0771234567",
	}
}

func TestPlaceOrderDecrementsStockAndComputesTotal(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	p := seedProduct(t, db, "jordan-1", 150, map[int]int{9: 3, 10: 2})

	order, err := PlaceOrder(db, user.ID, PlaceOrderRequest{
		Items: []OrderItemInput{
			{ProductID: p.ID, Size: 9, Quantity: 2, Price: 150},
		},
		Shipping:      shipping(),
		PaymentMethod: models.PaymentMethodCard,
		TotalAmount:   300,
	})
	require.NoError(t, err)

	assert.Equal(t, 300, order.TotalAmount)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	require.Len(t, order.Items, 1)
	assert.Equal(t, 150, order.Items[0].Price) // snapshotted unit price
	assert.NotEmpty(t, order.OrderRef)

	assert.Equal(t, 1, sizeStock(t, db, p.ID, 9))
	assert.Equal(t, 2, sizeStock(t, db, p.ID, 10)) // untouched size

	var stored models.Product
	require.NoError(t, db.First(&stored, p.ID).Error)
	assert.Equal(t, 3, stored.Stock) // aggregate 5 - 2

	var history []models.OrderStatusEvent
	require.NoError(t, db.Where("order_id = ?", order.ID).Find(&history).Error)
	require.Len(t, history, 1)
	assert.Equal(t, models.OrderStatusPending, history[0].Status)
}

func TestPlaceOrderUsesCatalogPricesNotClientPrices(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	p := seedProduct(t, db, "dunk-low", 100, map[int]int{8: 5})

	// Client lies about the unit price; the server still prices from the
	// catalog and rejects the doctored total.
	_, err := PlaceOrder(db, user.ID, PlaceOrderRequest{
		Items: []OrderItemInput{
			{ProductID: p.ID, Size: 8, Quantity: 1, Price: 1},
		},
		Shipping:      shipping(),
		PaymentMethod: models.PaymentMethodCard,
		TotalAmount:   1,
	})
	require.ErrorIs(t, err, ErrTotalMismatch)

	// Nothing applied.
	assert.Equal(t, 5, sizeStock(t, db, p.ID, 8))
}

func TestPlaceOrderInsufficientStockRollsBackEarlierItems(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	p1 := seedProduct(t, db, "af1", 90, map[int]int{9: 10})
	p2 := seedProduct(t, db, "blazer", 110, map[int]int{9: 1})

	_, err := PlaceOrder(db, user.ID, PlaceOrderRequest{
		Items: []OrderItemInput{
			{ProductID: p1.ID, Size: 9, Quantity: 2},
			{ProductID: p2.ID, Size: 9, Quantity: 5}, // only 1 in stock
		},
		Shipping:      shipping(),
		PaymentMethod: models.PaymentMethodCard,
		TotalAmount:   90*2 + 110*5,
	})
	require.ErrorIs(t, err, ErrInsufficientStock)
	assert.Contains(t, err.Error(), "blazer")

	// The first line item's decrement must not survive the failure.
	assert.Equal(t, 10, sizeStock(t, db, p1.ID, 9))
	assert.Equal(t, 1, sizeStock(t, db, p2.ID, 9))

	var count int64
	db.Model(&models.Order{}).Count(&count)
	assert.Zero(t, count)
}

func TestPlaceOrderUnknownSize(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	p := seedProduct(t, db, "cortez", 70, map[int]int{9: 3})

	_, err := PlaceOrder(db, user.ID, PlaceOrderRequest{
		Items:         []OrderItemInput{{ProductID: p.ID, Size: 13, Quantity: 1}},
		Shipping:      shipping(),
		PaymentMethod: models.PaymentMethodCard,
		TotalAmount:   70,
	})
	require.ErrorIs(t, err, ErrSizeNotAvailable)
}

func TestPlaceOrderUnknownProduct(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)

	_, err := PlaceOrder(db, user.ID, PlaceOrderRequest{
		Items:         []OrderItemInput{{ProductID: 999, Size: 9, Quantity: 1}},
		Shipping:      shipping(),
		PaymentMethod: models.PaymentMethodCard,
		TotalAmount:   100,
	})
	require.ErrorIs(t, err, ErrProductNotFound)
}

func TestPlaceOrderInvalidPaymentMethod(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	p := seedProduct(t, db, "pegasus", 130, map[int]int{9: 3})

	_, err := PlaceOrder(db, user.ID, PlaceOrderRequest{
		Items:         []OrderItemInput{{ProductID: p.ID, Size: 9, Quantity: 1}},
		Shipping:      shipping(),
		PaymentMethod: "bitcoin",
		TotalAmount:   130,
	})
	require.ErrorIs(t, err, ErrInvalidPayment)
}

func TestPlaceOrderRequiresFullShippingAddress(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	p := seedProduct(t, db, "waffle", 60, map[int]int{9: 2})

	incomplete := shipping()
	incomplete.Phone = ""

	_, err := PlaceOrder(db, user.ID, PlaceOrderRequest{
		Items:         []OrderItemInput{{ProductID: p.ID, Size: 9, Quantity: 1}},
		Shipping:      incomplete,
		PaymentMethod: models.PaymentMethodCard,
		TotalAmount:   60,
	})
	require.ErrorIs(t, err, ErrShippingRequired)
	assert.Equal(t, 2, sizeStock(t, db, p.ID, 9))
}

func TestStoreCreditDiscountApplied(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	p := seedProduct(t, db, "vapormax", 200, map[int]int{9: 3})

	order, err := PlaceOrder(db, user.ID, PlaceOrderRequest{
		Items:         []OrderItemInput{{ProductID: p.ID, Size: 9, Quantity: 1}},
		Shipping:      shipping(),
		PaymentMethod: models.PaymentMethodStoreCredit,
		TotalAmount:   190, // 5% off 200
	})
	require.NoError(t, err)
	assert.Equal(t, 190, order.TotalAmount)
}

func TestSecondOversellingOrderFails(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	p := seedProduct(t, db, "jordan-4", 250, map[int]int{9: 3})

	req := PlaceOrderRequest{
		Items:         []OrderItemInput{{ProductID: p.ID, Size: 9, Quantity: 2}},
		Shipping:      shipping(),
		PaymentMethod: models.PaymentMethodCard,
		TotalAmount:   500,
	}

	_, err := PlaceOrder(db, user.ID, req)
	require.NoError(t, err)
	assert.Equal(t, 1, sizeStock(t, db, p.ID, 9))

	_, err = PlaceOrder(db, user.ID, req)
	require.ErrorIs(t, err, ErrInsufficientStock)
	assert.Equal(t, 1, sizeStock(t, db, p.ID, 9))
}

func TestDeleteOrderRestoresStock(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	p := seedProduct(t, db, "huarache", 140, map[int]int{9: 4, 10: 4})

	order, err := PlaceOrder(db, user.ID, PlaceOrderRequest{
		Items: []OrderItemInput{
			{ProductID: p.ID, Size: 9, Quantity: 3},
			{ProductID: p.ID, Size: 10, Quantity: 1},
		},
		Shipping:      shipping(),
		PaymentMethod: models.PaymentMethodCard,
		TotalAmount:   140 * 4,
	})
	require.NoError(t, err)
	require.Equal(t, 1, sizeStock(t, db, p.ID, 9))

	// Place-then-delete is stock-idempotent.
	require.NoError(t, DeleteOrder(db, fmt.Sprint(order.ID)))
	assert.Equal(t, 4, sizeStock(t, db, p.ID, 9))
	assert.Equal(t, 4, sizeStock(t, db, p.ID, 10))

	var stored models.Product
	require.NoError(t, db.First(&stored, p.ID).Error)
	assert.Equal(t, 8, stored.Stock)

	var count int64
	db.Model(&models.Order{}).Count(&count)
	assert.Zero(t, count)
}

func TestDeleteMissingOrder(t *testing.T) {
	db := setupTestDB(t)
	err := DeleteOrder(db, "424242")
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUpdateOrderStatusAppendsHistory(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	p := seedProduct(t, db, "react", 120, map[int]int{9: 2})

	order, err := PlaceOrder(db, user.ID, PlaceOrderRequest{
		Items:         []OrderItemInput{{ProductID: p.ID, Size: 9, Quantity: 1}},
		Shipping:      shipping(),
		PaymentMethod: models.PaymentMethodCOD,
		TotalAmount:   120,
	})
	require.NoError(t, err)

	require.NoError(t, UpdateOrderStatus(db, fmt.Sprint(order.ID), models.OrderStatusProcessing))
	require.NoError(t, UpdateOrderStatus(db, fmt.Sprint(order.ID), models.OrderStatusShipped))

	var stored models.Order
	require.NoError(t, db.Preload("StatusHistory").First(&stored, order.ID).Error)
	assert.Equal(t, models.OrderStatusShipped, stored.Status)

	require.Len(t, stored.StatusHistory, 3)
	assert.Equal(t, models.OrderStatusPending, stored.StatusHistory[0].Status)
	assert.Equal(t, models.OrderStatusProcessing, stored.StatusHistory[1].Status)
	assert.Equal(t, models.OrderStatusShipped, stored.StatusHistory[2].Status)
}

func TestMapOrderStatus(t *testing.T) {
	for _, valid := range []string{"pending", "Processing", "SHIPPED", "delivered"} {
		_, err := mapOrderStatus(valid)
		assert.NoError(t, err, valid)
	}
	_, err := mapOrderStatus("cancelled")
	assert.Error(t, err)
}
