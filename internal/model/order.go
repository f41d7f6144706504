package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus is the fulfilment state of an order.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusPreparing OrderStatus = "preparing"
	OrderStatusReady     OrderStatus = "ready"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
	OrderStatusRefunded  OrderStatus = "refunded"
)

// orderTransitions is the allowed status transition table. Cancelled,
// delivered and refunded are terminal except for delivered -> refunded,
// which the external refund workflow may trigger.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:   {OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusConfirmed: {OrderStatusPreparing, OrderStatusCancelled, OrderStatusRefunded},
	OrderStatusPreparing: {OrderStatusReady, OrderStatusShipped},
	OrderStatusReady:     {OrderStatusShipped, OrderStatusDelivered},
	OrderStatusShipped:   {OrderStatusDelivered},
	OrderStatusDelivered: {OrderStatusRefunded},
}

// CanTransitionTo reports whether the status may move to next.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transitions are possible.
func (s OrderStatus) IsTerminal() bool {
	return len(orderTransitions[s]) == 0
}

// PaymentStatus is the payment state of an order.
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// PaymentMethod is one of the payment options offered at checkout.
type PaymentMethod string

const (
	PaymentMethodCreditCard   PaymentMethod = "credit_card"
	PaymentMethodTwint        PaymentMethod = "twint"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodPostFinance  PaymentMethod = "postfinance"
	PaymentMethodInvoice      PaymentMethod = "invoice"
)

// IsValid reports whether the payment method is one of the supported options.
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCreditCard, PaymentMethodTwint, PaymentMethodBankTransfer,
		PaymentMethodPostFinance, PaymentMethodInvoice:
		return true
	}
	return false
}

// Order represents a placed customer order. Monetary fields are CHF and
// internally consistent: Total = Subtotal + MWST + ShippingCost.
type Order struct {
	ID              uuid.UUID       `json:"id" db:"id"`
	OrderNumber     string          `json:"orderNumber" db:"order_number"`
	Status          OrderStatus     `json:"status" db:"status"`
	PaymentMethod   PaymentMethod   `json:"paymentMethod" db:"payment_method"`
	PaymentStatus   PaymentStatus   `json:"paymentStatus" db:"payment_status"`
	ShippingAddress Address         `json:"shippingAddress" db:"shipping_address"`
	BillingAddress  Address         `json:"billingAddress" db:"billing_address"`
	Subtotal        decimal.Decimal `json:"subtotal" db:"subtotal"`
	MWST            decimal.Decimal `json:"mwst" db:"mwst"`
	ShippingCost    decimal.Decimal `json:"shippingCost" db:"shipping_cost"`
	Total           decimal.Decimal `json:"total" db:"total"`
	Notes           *string         `json:"notes,omitempty" db:"notes"`
	CreatedAt       time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time       `json:"updatedAt" db:"updated_at"`
}

// OrderItem is a line of an order. UnitPrice is copied from the catalogue at
// order time so later price changes do not rewrite history.
type OrderItem struct {
	ID        uuid.UUID       `json:"-" db:"id"`
	OrderID   uuid.UUID       `json:"-" db:"order_id"`
	ProductID string          `json:"productId" db:"product_id"`
	Quantity  int             `json:"quantity" db:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice" db:"unit_price"`
	LineTotal decimal.Decimal `json:"lineTotal" db:"line_total"`
}

// OrderRequest represents the request payload for placing an order.
type OrderRequest struct {
	Items           []OrderItemRequest `json:"items"`
	ShippingAddress Address            `json:"shippingAddress"`
	BillingAddress  Address            `json:"billingAddress"`
	PaymentMethod   PaymentMethod      `json:"paymentMethod"`
	Notes           *string            `json:"notes,omitempty"`
}

// OrderItemRequest represents a single item in an order request.
type OrderItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// OrderResponse represents the response payload for an order, with product
// details attached for display.
type OrderResponse struct {
	Order    *Order      `json:"order"`
	Items    []OrderItem `json:"items"`
	Products []Product   `json:"products"`
}
