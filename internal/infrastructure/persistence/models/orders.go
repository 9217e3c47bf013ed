package models

import (
	"encoding/json"
	"time"

	"github.com/a7delivery/backend/internal/domain/orders"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderModel is the GORM model for store orders
type OrderModel struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ShopOrderID     string          `gorm:"type:varchar(100);uniqueIndex;not null"`
	OrderNumber     string          `gorm:"type:varchar(50)"`
	CustomerName    string          `gorm:"type:varchar(200)"`
	CustomerPhone   string          `gorm:"type:varchar(50)"`
	CustomerEmail   string          `gorm:"type:varchar(200)"`
	ShippingAddress string          `gorm:"type:text"`
	City            string          `gorm:"type:varchar(100)"`
	LineItems       string          `gorm:"type:text"` // JSON-encoded line items
	TotalPrice      decimal.Decimal `gorm:"type:decimal(12,2)"`
	FinancialStatus string          `gorm:"type:varchar(50)"`
	Status          string          `gorm:"type:varchar(20);index;not null;default:'pending'"`
	TrackingNumber  string          `gorm:"type:varchar(100)"`
	Notes           string          `gorm:"type:text"`
	SentAt          *time.Time
	CreatedAt       time.Time `gorm:"not null;index"`
	UpdatedAt       time.Time `gorm:"not null"`
}

// TableName returns the table name for OrderModel
func (OrderModel) TableName() string {
	return "orders"
}

// ToDomain converts the model to a domain entity
func (m *OrderModel) ToDomain() *orders.Order {
	var items []orders.LineItem
	if m.LineItems != "" {
		// Rows written by this application always hold valid JSON
		_ = json.Unmarshal([]byte(m.LineItems), &items)
	}

	return &orders.Order{
		BaseEntity:      baseEntity(m.ID, m.CreatedAt, m.UpdatedAt),
		ShopOrderID:     m.ShopOrderID,
		OrderNumber:     m.OrderNumber,
		CustomerName:    m.CustomerName,
		CustomerPhone:   m.CustomerPhone,
		CustomerEmail:   m.CustomerEmail,
		ShippingAddress: m.ShippingAddress,
		City:            m.City,
		LineItems:       items,
		TotalPrice:      m.TotalPrice,
		FinancialStatus: m.FinancialStatus,
		Status:          orders.Status(m.Status),
		TrackingNumber:  m.TrackingNumber,
		Notes:           m.Notes,
		SentAt:          m.SentAt,
	}
}

// OrderModelFromDomain converts a domain entity to a model
func OrderModelFromDomain(o *orders.Order) *OrderModel {
	items, _ := json.Marshal(o.LineItems)

	return &OrderModel{
		ID:              o.ID,
		ShopOrderID:     o.ShopOrderID,
		OrderNumber:     o.OrderNumber,
		CustomerName:    o.CustomerName,
		CustomerPhone:   o.CustomerPhone,
		CustomerEmail:   o.CustomerEmail,
		ShippingAddress: o.ShippingAddress,
		City:            o.City,
		LineItems:       string(items),
		TotalPrice:      o.TotalPrice,
		FinancialStatus: o.FinancialStatus,
		Status:          string(o.Status),
		TrackingNumber:  o.TrackingNumber,
		Notes:           o.Notes,
		SentAt:          o.SentAt,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}
