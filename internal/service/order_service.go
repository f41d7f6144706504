package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"tofi-shop/internal/cache"
	"tofi-shop/internal/delivery"
	"tofi-shop/internal/events"
	"tofi-shop/internal/metrics"
	"tofi-shop/internal/model"
	"tofi-shop/internal/repository"
	"tofi-shop/internal/swiss"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Shipping is free from CHF 100, otherwise a flat fee applies.
var (
	freeShippingThreshold = decimal.NewFromInt(100)
	flatShippingFee       = decimal.RequireFromString("9.90")
)

// Transient transaction conflicts are retried a bounded number of times.
const (
	maxPlaceAttempts = 3
	conflictBackoff  = 25 * time.Millisecond
)

// orderService implements OrderService.
type orderService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	zones       delivery.Checker
	publisher   events.Publisher
	cache       *cache.Cache // nil when caching is disabled
	logger      zerolog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	zones delivery.Checker,
	publisher events.Publisher,
	c *cache.Cache,
	logger zerolog.Logger,
) OrderService {
	return &orderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		zones:       zones,
		publisher:   publisher,
		cache:       c,
		logger:      logger.With().Str("service", "order").Logger(),
	}
}

// PlaceOrder validates availability and stock, computes totals and persists
// the order atomically with the stock decrement.
func (s *orderService) PlaceOrder(ctx context.Context, req *model.OrderRequest) (*model.OrderResponse, error) {
	resp, err := s.placeOrder(ctx, req)
	metrics.RecordOrderOperation("place_order", err == nil)
	return resp, err
}

func (s *orderService) placeOrder(ctx context.Context, req *model.OrderRequest) (*model.OrderResponse, error) {
	if err := s.validateOrderRequest(req); err != nil {
		return nil, err
	}

	if err := s.zones.Deliverable(ctx, req.ShippingAddress.ZipCode); err != nil {
		s.logger.Warn().
			Str("zip", req.ShippingAddress.ZipCode).
			Msg("shipping address outside delivery area")
		return nil, err
	}

	// Duplicate product IDs are merged into one line each; quantities add up.
	lines := mergeItems(req.Items)

	productIDs := make([]string, len(lines))
	for i, line := range lines {
		productIDs[i] = line.ProductID
	}

	products, err := s.productRepo.GetActiveByIDs(ctx, productIDs)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to resolve products")
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	if len(products) != len(productIDs) {
		s.logger.Warn().
			Int("requested", len(productIDs)).
			Int("resolved", len(products)).
			Msg("order references missing or inactive products")
		return nil, model.ErrProductUnavailable
	}

	productsByID := make(map[string]model.Product, len(products))
	for _, p := range products {
		productsByID[p.ID] = p
	}

	// Pre-check stock for a precise error without touching the database.
	// The conditional decrement inside the transaction is what actually
	// guarantees stock never goes negative.
	for _, line := range lines {
		p := productsByID[line.ProductID]
		if p.Stock < line.Quantity {
			s.logger.Warn().
				Str("product_id", p.ID).
				Int("requested", line.Quantity).
				Int("available", p.Stock).
				Msg("insufficient stock")
			return nil, &model.InsufficientStockError{
				ProductID:   p.ID,
				ProductName: p.Name,
				Requested:   line.Quantity,
				Available:   p.Stock,
			}
		}
	}

	// Totals use the current catalogue price, never a client-supplied one.
	subtotal := decimal.Zero
	for _, line := range lines {
		p := productsByID[line.ProductID]
		subtotal = subtotal.Add(p.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	mwst := swiss.CalculateMWST(subtotal)
	shippingCost := flatShippingFee
	if subtotal.GreaterThanOrEqual(freeShippingThreshold) {
		shippingCost = decimal.Zero
	}
	total := subtotal.Add(mwst).Add(shippingCost)

	var (
		order *model.Order
		items []model.OrderItem
	)
	for attempt := 1; ; attempt++ {
		order, items, err = s.placeOrderTx(ctx, req, lines, productsByID, subtotal, mwst, shippingCost, total)
		if err == nil || !isRetryableTxError(err) {
			break
		}
		if attempt >= maxPlaceAttempts {
			s.logger.Warn().Err(err).Int("attempts", attempt).Msg("giving up after repeated transaction conflicts")
			return nil, model.ErrTransactionConflict
		}
		s.logger.Warn().Err(err).Int("attempt", attempt).Msg("transaction conflict during checkout, retrying")
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(conflictBackoff * time.Duration(attempt)):
		}
	}
	if err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.EventOrderCreated, order)
	s.invalidateCachedProducts(ctx, productIDs)

	s.logger.Info().
		Str("order_id", order.ID.String()).
		Str("order_number", order.OrderNumber).
		Str("total", order.Total.StringFixed(2)).
		Int("item_count", len(items)).
		Msg("order placed successfully")

	return &model.OrderResponse{
		Order:    order,
		Items:    items,
		Products: products,
	}, nil
}

// placeOrderTx runs the write side of checkout in one transaction: order
// insert, item inserts and the conditional stock decrements. Any failed
// decrement rolls the whole transaction back.
func (s *orderService) placeOrderTx(
	ctx context.Context,
	req *model.OrderRequest,
	lines []model.OrderItemRequest,
	productsByID map[string]model.Product,
	subtotal, mwst, shippingCost, total decimal.Decimal,
) (*model.Order, []model.OrderItem, error) {
	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to place order: %w", err)
	}

	// Ensure transaction is rolled back on error
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	now := time.Now()
	order := &model.Order{
		ID:              uuid.New(),
		OrderNumber:     GenerateOrderNumber(now.UnixMilli()),
		Status:          model.OrderStatusPending,
		PaymentMethod:   req.PaymentMethod,
		PaymentStatus:   model.PaymentStatusPending,
		ShippingAddress: req.ShippingAddress,
		BillingAddress:  req.BillingAddress,
		Subtotal:        subtotal,
		MWST:            mwst,
		ShippingCost:    shippingCost,
		Total:           total,
		Notes:           req.Notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err = s.orderRepo.CreateOrder(ctx, tx, order); err != nil {
		return nil, nil, fmt.Errorf("failed to place order: %w", err)
	}

	items := make([]model.OrderItem, len(lines))
	for i, line := range lines {
		p := productsByID[line.ProductID]
		items[i] = model.OrderItem{
			ID:        uuid.New(),
			OrderID:   order.ID,
			ProductID: p.ID,
			Quantity:  line.Quantity,
			UnitPrice: p.Price,
			LineTotal: p.Price.Mul(decimal.NewFromInt(int64(line.Quantity))),
		}
	}

	if err = s.orderRepo.CreateOrderItems(ctx, tx, items); err != nil {
		return nil, nil, fmt.Errorf("failed to place order: %w", err)
	}

	// Decrement in ascending product-id order so concurrent checkouts
	// touching the same products lock rows in the same order.
	sorted := make([]model.OrderItemRequest, len(lines))
	copy(sorted, lines)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ProductID < sorted[j].ProductID })

	for _, line := range sorted {
		var ok bool
		ok, err = s.productRepo.DecrementStock(ctx, tx, line.ProductID, line.Quantity)
		if err != nil {
			err = fmt.Errorf("failed to place order: %w", err)
			return nil, nil, err
		}
		if !ok {
			// A concurrent checkout consumed the stock between our
			// pre-check and this decrement.
			p := productsByID[line.ProductID]
			available, stockErr := s.productRepo.GetStock(ctx, tx, line.ProductID)
			if stockErr != nil {
				available = 0
			}
			err = &model.InsufficientStockError{
				ProductID:   p.ID,
				ProductName: p.Name,
				Requested:   line.Quantity,
				Available:   available,
			}
			return nil, nil, err
		}
	}

	if err = tx.Commit(ctx); err != nil {
		err = fmt.Errorf("failed to place order: %w", err)
		return nil, nil, err
	}

	return order, items, nil
}

// RecordPaymentOutcome transitions the order's payment status. Only orders
// still awaiting payment transition; anything else is reported as a conflict
// rather than silently re-applied.
func (s *orderService) RecordPaymentOutcome(ctx context.Context, orderID uuid.UUID, success bool) (*model.OrderResponse, error) {
	resp, err := s.recordPaymentOutcome(ctx, orderID, success)
	metrics.RecordOrderOperation("record_payment", err == nil)
	return resp, err
}

func (s *orderService) recordPaymentOutcome(ctx context.Context, orderID uuid.UUID, success bool) (*model.OrderResponse, error) {
	paymentStatus := model.PaymentStatusPaid
	status := model.OrderStatusConfirmed
	eventType := events.EventOrderPaid
	if !success {
		paymentStatus = model.PaymentStatusFailed
		status = model.OrderStatusCancelled
		eventType = events.EventOrderPaymentFailed
	}

	order, err := s.orderRepo.RecordPayment(ctx, orderID, paymentStatus, status)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", orderID.String()).Msg("failed to record payment outcome")
		return nil, fmt.Errorf("failed to record payment outcome: %w", err)
	}

	if order == nil {
		existing, _, getErr := s.orderRepo.GetByID(ctx, orderID)
		if getErr != nil {
			return nil, fmt.Errorf("failed to record payment outcome: %w", getErr)
		}
		if existing == nil {
			return nil, model.ErrOrderNotFound
		}
		s.logger.Warn().
			Str("order_id", orderID.String()).
			Str("payment_status", string(existing.PaymentStatus)).
			Msg("payment outcome already recorded")
		return nil, model.ErrPaymentAlreadyRecorded
	}

	s.publishEvent(ctx, eventType, order)

	return s.GetByID(ctx, orderID)
}

// GetByID retrieves an order by its ID with all items and product details.
func (s *orderService) GetByID(ctx context.Context, id uuid.UUID) (*model.OrderResponse, error) {
	order, items, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to get order")
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	if order == nil {
		return nil, model.ErrOrderNotFound
	}

	return s.attachProducts(ctx, order, items)
}

// GetByOrderNumber retrieves an order by its human-readable order number.
func (s *orderService) GetByOrderNumber(ctx context.Context, orderNumber string) (*model.OrderResponse, error) {
	order, items, err := s.orderRepo.GetByOrderNumber(ctx, orderNumber)
	if err != nil {
		s.logger.Error().Err(err).Str("order_number", orderNumber).Msg("failed to get order")
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	if order == nil {
		return nil, model.ErrOrderNotFound
	}

	return s.attachProducts(ctx, order, items)
}

// attachProducts loads product details for display. Inactive products are
// included so historical orders still render.
func (s *orderService) attachProducts(ctx context.Context, order *model.Order, items []model.OrderItem) (*model.OrderResponse, error) {
	productIDs := make([]string, len(items))
	for i, item := range items {
		productIDs[i] = item.ProductID
	}

	products, err := s.productRepo.GetByIDs(ctx, productIDs)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to retrieve product details")
		return nil, fmt.Errorf("failed to retrieve product details: %w", err)
	}

	return &model.OrderResponse{
		Order:    order,
		Items:    items,
		Products: products,
	}, nil
}

// publishEvent publishes an order event. Publishing is best effort and never
// fails the originating operation.
func (s *orderService) publishEvent(ctx context.Context, eventType string, order *model.Order) {
	err := s.publisher.PublishOrderEvent(ctx, events.OrderEvent{
		Type:        eventType,
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		Total:       order.Total,
		OccurredAt:  time.Now(),
	})
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("type", eventType).
			Str("order_id", order.ID.String()).
			Msg("failed to publish order event")
	}
}

// invalidateCachedProducts drops cache entries whose stock just changed.
func (s *orderService) invalidateCachedProducts(ctx context.Context, productIDs []string) {
	if s.cache == nil {
		return
	}

	keys := make([]string, 0, len(productIDs)+1)
	keys = append(keys, cache.FeaturedKey)
	for _, id := range productIDs {
		keys = append(keys, cache.ProductKey(id))
	}

	if err := s.cache.Delete(ctx, keys...); err != nil {
		s.logger.Error().Err(err).Msg("failed to invalidate cached products")
	}
}

// validateOrderRequest validates the order request.
func (s *orderService) validateOrderRequest(req *model.OrderRequest) error {
	if req == nil {
		return fmt.Errorf("order request is nil")
	}

	if len(req.Items) == 0 {
		return fmt.Errorf("order must contain at least one item")
	}

	for i, item := range req.Items {
		if item.ProductID == "" {
			return fmt.Errorf("item %d: product ID is required", i)
		}

		if item.Quantity <= 0 {
			s.logger.Warn().
				Int("item_index", i).
				Str("product_id", item.ProductID).
				Int("quantity", item.Quantity).
				Msg("invalid quantity")
			return model.ErrInvalidQuantity
		}
	}

	if !req.PaymentMethod.IsValid() {
		return model.NewDomainError(model.ErrCodeInvalidPaymentMethod,
			fmt.Sprintf("Unsupported payment method: %q", req.PaymentMethod))
	}

	if err := req.ShippingAddress.Validate(); err != nil {
		return fmt.Errorf("shipping address: %w", err)
	}
	if err := req.BillingAddress.Validate(); err != nil {
		return fmt.Errorf("billing address: %w", err)
	}

	return nil
}

// mergeItems collapses duplicate product IDs into one line each, preserving
// first-occurrence order.
func mergeItems(items []model.OrderItemRequest) []model.OrderItemRequest {
	merged := make([]model.OrderItemRequest, 0, len(items))
	index := make(map[string]int, len(items))

	for _, item := range items {
		if i, ok := index[item.ProductID]; ok {
			merged[i].Quantity += item.Quantity
			continue
		}
		index[item.ProductID] = len(merged)
		merged = append(merged, item)
	}

	return merged
}

// isRetryableTxError reports whether the transaction failed for a transient
// reason: serialization failure, deadlock, or an order-number collision
// (regenerated on retry).
func isRetryableTxError(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	switch pgErr.Code {
	case "40001", "40P01":
		return true
	case "23505":
		return pgErr.ConstraintName == "orders_order_number_key"
	}
	return false
}
