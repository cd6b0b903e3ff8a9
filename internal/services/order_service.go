// internal/services/order_service.go
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/pixelarium/backend/internal/i18n"
	"github.com/pixelarium/backend/internal/models"
	"github.com/pixelarium/backend/internal/repository"
	"github.com/pixelarium/backend/internal/utils"
)

type OrderService struct {
	store repository.Store
	now   func() time.Time
}

type CreateOrderRequest struct {
	UserID uuid.UUID          `json:"userId" validate:"required"`
	Items  []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

type OrderItemRequest struct {
	ProductID uuid.UUID `json:"productId" validate:"required"`
	Quantity  int       `json:"quantity" validate:"min=1"`
}

type UpdateOrderRequest struct {
	UserID *uuid.UUID                `json:"userId,omitempty"`
	Items  []OrderItemQuantityUpdate `json:"items,omitempty" validate:"omitempty,dive"`
}

type OrderItemQuantityUpdate struct {
	ID       uuid.UUID `json:"id" validate:"required"`
	Quantity int       `json:"quantity" validate:"min=1"`
}

func NewOrderService(store repository.Store) *OrderService {
	return &OrderService{
		store: store,
		now:   time.Now,
	}
}

// CreateOrder snapshots each product's current effective price into the new
// order's items and computes the total once. Stock is not decremented.
func (s *OrderService) CreateOrder(ctx context.Context, req *CreateOrderRequest) (*models.Order, error) {
	if len(req.Items) == 0 {
		return nil, invalidInput(i18n.KeyOrderNoItems, "order has no items")
	}
	for _, item := range req.Items {
		if item.Quantity < 1 {
			return nil, invalidInput(i18n.KeyOrderInvalidQuantity, "quantity %d for product %s is not positive", item.Quantity, item.ProductID)
		}
	}
	if err := utils.ValidateStruct(req); err != nil {
		return nil, validationFailed(err)
	}

	var order *models.Order
	err := s.store.WithinTx(ctx, func(r repository.TxRepos) error {
		if _, err := r.Users().FindByID(ctx, req.UserID); err != nil {
			return lookupError(err, i18n.KeyUserNotFound, "user", req.UserID)
		}

		items := make([]models.OrderItem, 0, len(req.Items))
		for i, line := range req.Items {
			product, err := r.Products().FindByID(ctx, line.ProductID)
			if err != nil {
				return lookupError(err, i18n.KeyProductNotFound, "product", line.ProductID)
			}
			items = append(items, models.OrderItem{
				BaseModel: models.BaseModel{ID: uuid.New()},
				ProductID: product.ID,
				Position:  i,
				Quantity:  line.Quantity,
				UnitPrice: product.EffectivePrice(),
			})
		}

		order = &models.Order{
			BaseModel: models.BaseModel{ID: uuid.New()},
			UserID:    req.UserID,
			OrderDate: s.now().UTC(),
			Status:    models.OrderStatusDraft,
			Items:     items,
		}
		order.TotalPrice = order.ComputeTotal()
		for i := range order.Items {
			order.Items[i].OrderID = order.ID
		}

		if err := r.Orders().Create(ctx, order); err != nil {
			return fmt.Errorf("database error: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"order_id": order.ID,
		"user_id":  order.UserID,
		"items":    len(order.Items),
		"total":    order.TotalPrice.StringFixed(2),
	}).Info("Order created")

	return order, nil
}

// ChangeOrderStatus applies a status transition if the guard allows it.
// A refused transition leaves the order untouched.
func (s *OrderService) ChangeOrderStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) (*models.Order, error) {
	if !status.IsValid() {
		return nil, invalidInput(i18n.KeyOrderInvalidStatus, "unknown order status %q", status)
	}

	var order *models.Order
	err := s.store.WithinTx(ctx, func(r repository.TxRepos) error {
		var err error
		order, err = r.Orders().FindByID(ctx, id)
		if err != nil {
			return lookupError(err, i18n.KeyOrderNotFound, "order", id)
		}

		if !order.Status.CanTransitionTo(status) {
			return conflict(i18n.KeyOrderTransitionBlocked, "order %s cannot move from %s to %s", id, order.Status, status)
		}

		if err := r.Orders().UpdateStatus(ctx, id, status); err != nil {
			return lookupError(err, i18n.KeyOrderNotFound, "order", id)
		}
		order.Status = status
		return nil
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"order_id": id,
		"status":   status,
	}).Info("Order status changed")

	return order, nil
}

// CancelOrder deletes a pending order and its items. There is no cancelled state.
func (s *OrderService) CancelOrder(ctx context.Context, id uuid.UUID) error {
	err := s.store.WithinTx(ctx, func(r repository.TxRepos) error {
		order, err := r.Orders().FindByID(ctx, id)
		if err != nil {
			return lookupError(err, i18n.KeyOrderNotFound, "order", id)
		}
		if order.Status != models.OrderStatusPending {
			return conflict(i18n.KeyOrderNotCancellable, "order %s is %s, only PENDING orders can be cancelled", id, order.Status)
		}
		if err := r.Orders().Delete(ctx, id); err != nil {
			return lookupError(err, i18n.KeyOrderNotFound, "order", id)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logrus.WithField("order_id", id).Info("Order cancelled")
	return nil
}

// UpdateOrder can reassign the owner and change item quantities. Unit prices
// and the stored total stay as they were at creation.
func (s *OrderService) UpdateOrder(ctx context.Context, id uuid.UUID, req *UpdateOrderRequest) (*models.Order, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, validationFailed(err)
	}

	var order *models.Order
	err := s.store.WithinTx(ctx, func(r repository.TxRepos) error {
		current, err := r.Orders().FindByID(ctx, id)
		if err != nil {
			return lookupError(err, i18n.KeyOrderNotFound, "order", id)
		}

		if req.UserID != nil && *req.UserID != current.UserID {
			if _, err := r.Users().FindByID(ctx, *req.UserID); err != nil {
				return lookupError(err, i18n.KeyUserNotFound, "user", *req.UserID)
			}
			if err := r.Orders().UpdateOwner(ctx, id, *req.UserID); err != nil {
				return lookupError(err, i18n.KeyOrderNotFound, "order", id)
			}
		}

		for _, change := range req.Items {
			if current.Item(change.ID) == nil {
				return notFound(i18n.KeyOrderItemNotFound, "item %s not found in order %s", change.ID, id)
			}
			if err := r.Orders().UpdateItemQuantity(ctx, id, change.ID, change.Quantity); err != nil {
				return lookupError(err, i18n.KeyOrderItemNotFound, "order item", change.ID)
			}
		}

		order, err = r.Orders().FindByID(ctx, id)
		if err != nil {
			return lookupError(err, i18n.KeyOrderNotFound, "order", id)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return order, nil
}

func (s *OrderService) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	return s.store.WithinTx(ctx, func(r repository.TxRepos) error {
		if err := r.Orders().Delete(ctx, id); err != nil {
			return lookupError(err, i18n.KeyOrderNotFound, "order", id)
		}
		return nil
	})
}

func (s *OrderService) GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	order, err := s.store.Orders().FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, i18n.KeyOrderNotFound, "order", id)
	}
	return order, nil
}

func (s *OrderService) ListOrders(ctx context.Context, params utils.PaginationParams) ([]models.Order, int64, error) {
	orders, total, err := s.store.Orders().List(ctx, params)
	if err != nil {
		return nil, 0, fmt.Errorf("database error: %w", err)
	}
	return orders, total, nil
}

func (s *OrderService) FindOrdersByUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	return dbResult(s.store.Orders().FindByUser(ctx, userID))
}

func (s *OrderService) FindOrdersByStatus(ctx context.Context, status models.OrderStatus) ([]models.Order, error) {
	if !status.IsValid() {
		return nil, invalidInput(i18n.KeyOrderInvalidStatus, "unknown order status %q", status)
	}
	return dbResult(s.store.Orders().FindByStatus(ctx, status))
}

// FindOrdersByDate returns the orders placed on the given UTC calendar day.
func (s *OrderService) FindOrdersByDate(ctx context.Context, day time.Time) ([]models.Order, error) {
	return s.FindOrdersByDateRange(ctx, day, day)
}

// FindOrdersByDateRange includes both boundary days.
func (s *OrderService) FindOrdersByDateRange(ctx context.Context, from, to time.Time) ([]models.Order, error) {
	start := models.StartOfDay(from)
	end := models.StartOfDay(to).AddDate(0, 0, 1)
	return dbResult(s.store.Orders().FindByDateRange(ctx, start, end))
}

func (s *OrderService) FindOrdersByTotalPrice(ctx context.Context, total decimal.Decimal) ([]models.Order, error) {
	return dbResult(s.store.Orders().FindByTotalPrice(ctx, total))
}
