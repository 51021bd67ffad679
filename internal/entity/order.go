package entity

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

const trackingURLFormat = "https://www.ipshopy.com/index.php?route=account/order/info&order_id=%d"

// Order is a read-only projection of an OpenCart order row. Fetched
// fresh per request, never mutated or cached in-process.
// StatusID is a pointer because order_status_id is nullable in the
// store schema and 0 is a real value (missing orders), not absence.
type Order struct {
	ID           int    `json:"-"`
	OrderID      string `json:"order_id"`
	CustomerName string `json:"customer_name"`
	Status       string `json:"status"`
	StatusID     *int   `json:"status_id,omitempty"`
	Total        string `json:"total"`
	DateAdded    string `json:"date_added"`
	TrackingURL  string `json:"tracking_url"`
	Phone        string `json:"phone,omitempty"`
}

// Factory
func NewOrder(id int, firstName, lastName, status, total, dateAdded, phone string) *Order {
	name := strings.TrimSpace(strings.TrimSpace(firstName) + " " + strings.TrimSpace(lastName))
	if name == "" {
		name = "Customer"
	}
	if status == "" {
		status = "Unknown"
	}

	return &Order{
		ID:           id,
		OrderID:      strconv.Itoa(id),
		CustomerName: name,
		Status:       status,
		Total:        total,
		DateAdded:    dateAdded,
		TrackingURL:  fmt.Sprintf(trackingURLFormat, id),
		Phone:        phone,
	}
}

// Send outcome statuses for one batch item. Flat state machine:
// pending -> skipped | success | failed | error. Terminal on first
// transition, no retries within a run.
const (
	OutcomeSkipped = "skipped"
	OutcomeSuccess = "success"
	OutcomeFailed  = "failed"
	OutcomeError   = "error"
)

type SendOutcome struct {
	OrderID      string `json:"order_id"`
	Phone        string `json:"phone,omitempty"`
	CustomerName string `json:"customer_name,omitempty"`
	Status       string `json:"status"`
	Reason       string `json:"reason,omitempty"`
	StatusCode   int    `json:"whatsapp_status_code,omitempty"`
	Error        any    `json:"error,omitempty"`
}

type BatchResult struct {
	Total   int           `json:"total"`
	Success int           `json:"success"`
	Failed  int           `json:"failed"`
	Skipped int           `json:"skipped"`
	Details []SendOutcome `json:"details"`
}

// AutomationFilter: every field is optional; nil means "do not filter".
// Filters combine with AND.
type AutomationFilter struct {
	Limit         *int
	OrderStatusID *int
	DaysBack      *int
}

type OrderRepository interface {
	// FindWithPhone returns the order projection plus the phone on file
	// (order phone, falling back to the linked customer phone, empty when
	// both are absent). A missing row returns (nil, "", nil).
	FindWithPhone(ctx context.Context, orderID int) (*Order, string, error)

	// FindForAutomation returns orders matching the filter, newest first,
	// restricted to rows whose resolved phone is usable for WhatsApp.
	FindForAutomation(ctx context.Context, filter AutomationFilter) ([]Order, error)
}
