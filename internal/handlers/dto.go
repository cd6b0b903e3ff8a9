// internal/handlers/dto.go
package handlers

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pixelarium/backend/internal/models"
)

type UserResponse struct {
	ID           uuid.UUID `json:"id"`
	UserName     string    `json:"userName"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Email        string    `json:"email"`
	RegisterDate string    `json:"registerDate"`
}

type ProductResponse struct {
	ID             uuid.UUID       `json:"id"`
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	Price          string          `json:"price"`
	SalePrice      *string         `json:"salePrice"`
	EffectivePrice string          `json:"effectivePrice"`
	OnSale         bool            `json:"onSale"`
	ImagePath      string          `json:"imagePath,omitempty"`
	Stock          int             `json:"stock"`
	Category       models.Category `json:"category"`
}

type OrderItemResponse struct {
	ID        uuid.UUID `json:"id"`
	ProductID uuid.UUID `json:"productId"`
	Quantity  int       `json:"quantity"`
	UnitPrice string    `json:"unitPrice"`
	LineTotal string    `json:"lineTotal"`
}

type OrderResponse struct {
	ID         uuid.UUID           `json:"id"`
	UserID     uuid.UUID           `json:"userId"`
	OrderDate  time.Time           `json:"orderDate"`
	TotalPrice string              `json:"totalPrice"`
	Status     models.OrderStatus  `json:"status"`
	Items      []OrderItemResponse `json:"items"`
}

// EnumResponse describes one value of a reference enum.
type EnumResponse struct {
	Name        string `json:"name"`
	Code        string `json:"code"`
	DisplayName string `json:"displayName"`
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func toUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:           u.ID,
		UserName:     u.UserName,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Email:        u.Email,
		RegisterDate: u.RegisterDate.UTC().Format(dateLayout),
	}
}

func toUserResponses(users []models.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, toUserResponse(&users[i]))
	}
	return out
}

func toProductResponse(p *models.Product) ProductResponse {
	resp := ProductResponse{
		ID:             p.ID,
		Name:           p.Name,
		Description:    p.Description,
		Price:          money(p.Price),
		EffectivePrice: money(p.EffectivePrice()),
		OnSale:         p.OnSale(),
		ImagePath:      p.ImagePath,
		Stock:          p.Stock,
		Category:       p.Category,
	}
	if p.SalePrice.Valid {
		sale := money(p.SalePrice.Decimal)
		resp.SalePrice = &sale
	}
	return resp
}

func toProductResponses(products []models.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for i := range products {
		out = append(out, toProductResponse(&products[i]))
	}
	return out
}

func toOrderResponse(o *models.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, OrderItemResponse{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: money(item.UnitPrice),
			LineTotal: money(item.LineTotal()),
		})
	}

	return OrderResponse{
		ID:         o.ID,
		UserID:     o.UserID,
		OrderDate:  o.OrderDate.UTC(),
		TotalPrice: money(o.TotalPrice),
		Status:     o.Status,
		Items:      items,
	}
}

func toOrderResponses(orders []models.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, toOrderResponse(&orders[i]))
	}
	return out
}
