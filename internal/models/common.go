// internal/models/common.go
package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base model with common fields
type BaseModel struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BeforeCreate assigns the id on the client side so postgres and sqlite behave the same.
func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// Enums
type Category string

const (
	CategoryApple           Category = "APPLE"
	CategoryNintendoSwitch  Category = "NINTENDO_SWITCH"
	CategoryNintendoSwitch2 Category = "NINTENDO_SWITCH_2"
	CategoryPC              Category = "PC"
	CategoryAccessories     Category = "ACCESSORIES"
)

var categoryInfo = map[Category]struct{ code, name string }{
	CategoryApple:           {"APPL", "Apple"},
	CategoryNintendoSwitch:  {"NSW", "Nintendo Switch"},
	CategoryNintendoSwitch2: {"NSW2", "Nintendo Switch 2"},
	CategoryPC:              {"PC", "PC"},
	CategoryAccessories:     {"ACSS", "Accessories"},
}

// Categories lists every category in display order.
func Categories() []Category {
	return []Category{
		CategoryApple,
		CategoryNintendoSwitch,
		CategoryNintendoSwitch2,
		CategoryPC,
		CategoryAccessories,
	}
}

func (c Category) IsValid() bool {
	_, ok := categoryInfo[c]
	return ok
}

func (c Category) Code() string        { return categoryInfo[c].code }
func (c Category) DisplayName() string { return categoryInfo[c].name }

// ParseCategory accepts the enum name in any letter case.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToUpper(strings.TrimSpace(s)))
	if !c.IsValid() {
		return "", fmt.Errorf("unknown category %q", s)
	}
	return c, nil
}

type OrderStatus string

const (
	OrderStatusDraft     OrderStatus = "DRAFT"
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusSent      OrderStatus = "SENT"
	OrderStatusDelivered OrderStatus = "DELIVERED"
)

var orderStatusInfo = map[OrderStatus]struct{ code, name string }{
	OrderStatusDraft:     {"DF", "Draft"},
	OrderStatusPending:   {"PD", "Pending"},
	OrderStatusSent:      {"ST", "Sent"},
	OrderStatusDelivered: {"DV", "Delivered"},
}

// OrderStatuses lists every status in lifecycle order.
func OrderStatuses() []OrderStatus {
	return []OrderStatus{
		OrderStatusDraft,
		OrderStatusPending,
		OrderStatusSent,
		OrderStatusDelivered,
	}
}

func (s OrderStatus) IsValid() bool {
	_, ok := orderStatusInfo[s]
	return ok
}

func (s OrderStatus) Code() string        { return orderStatusInfo[s].code }
func (s OrderStatus) DisplayName() string { return orderStatusInfo[s].name }

// ParseOrderStatus accepts the enum name in any letter case.
func ParseOrderStatus(s string) (OrderStatus, error) {
	status := OrderStatus(strings.ToUpper(strings.TrimSpace(s)))
	if !status.IsValid() {
		return "", fmt.Errorf("unknown order status %q", s)
	}
	return status, nil
}
