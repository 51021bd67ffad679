package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ipshopy/order-notify/internal/entity"
	"github.com/ipshopy/order-notify/internal/infra/queue"
)

// minPhoneLength is the shortest trimmed phone we will hand to Interakt.
// Anything shorter is skipped without touching the gateway.
const minPhoneLength = 10

// BatchSender pushes one template message per order, strictly serially,
// with a fixed pause between sends. The serial loop is the rate-limit
// strategy: one in-flight send at a time, never a fan-out.
type BatchSender struct {
	Gateway MessageGateway
	Events  DeliveryPublisher

	// sleep is swappable so tests do not pay the pacing delay.
	sleep func(time.Duration)
}

func NewBatchSender(gateway MessageGateway, events DeliveryPublisher) *BatchSender {
	return &BatchSender{
		Gateway: gateway,
		Events:  events,
		sleep:   time.Sleep,
	}
}

// Run processes orders in input order and aggregates per-item outcomes.
// A gateway rejection or transport fault is isolated to its item; only a
// missing-credential configuration fault aborts the run. The returned
// result always satisfies Success+Failed+Skipped == Total and
// len(Details) == Total.
func (s *BatchSender) Run(ctx context.Context, orders []entity.Order, delay time.Duration, source string) (entity.BatchResult, error) {
	result := entity.BatchResult{
		Total:   len(orders),
		Details: make([]entity.SendOutcome, 0, len(orders)),
	}

	for i := range orders {
		order := &orders[i]
		phone := order.Phone

		// 1. Skip unusable phones without consuming pacing budget
		if len(strings.TrimSpace(phone)) < minPhoneLength {
			result.Skipped++
			result.Details = append(result.Details, entity.SendOutcome{
				OrderID: order.OrderID,
				Status:  entity.OutcomeSkipped,
				Reason:  "No phone number",
			})
			s.publish(ctx, order.OrderID, phone, entity.OutcomeSkipped, 0, "No phone number", source)
			continue
		}

		// 2. Attempt the send
		statusCode, resp, err := s.Gateway.SendOrderStatus(ctx, order, phone)

		switch {
		case err != nil:
			var techErr *TechnicalError
			if errors.As(err, &techErr) && techErr.Code == CodeGatewayNotConfigured {
				// Missing credential is a deployment problem, not an
				// item problem. Abort instead of failing every order.
				return result, err
			}

			// Transport fault: true delivery state unknown, keep going
			result.Failed++
			result.Details = append(result.Details, entity.SendOutcome{
				OrderID:      order.OrderID,
				Phone:        phone,
				CustomerName: order.CustomerName,
				Status:       entity.OutcomeError,
				Error:        err.Error(),
			})
			s.publish(ctx, order.OrderID, phone, entity.OutcomeError, 0, err.Error(), source)
			log.Printf("⚠️ Order %s: WhatsApp send error: %v", order.OrderID, err)

		case statusCode == 200 || statusCode == 201:
			result.Success++
			result.Details = append(result.Details, entity.SendOutcome{
				OrderID:      order.OrderID,
				Phone:        phone,
				CustomerName: order.CustomerName,
				Status:       entity.OutcomeSuccess,
				StatusCode:   statusCode,
			})
			s.publish(ctx, order.OrderID, phone, entity.OutcomeSuccess, statusCode, "", source)

		default:
			result.Failed++
			result.Details = append(result.Details, entity.SendOutcome{
				OrderID:      order.OrderID,
				Phone:        phone,
				CustomerName: order.CustomerName,
				Status:       entity.OutcomeFailed,
				StatusCode:   statusCode,
				Error:        resp,
			})
			s.publish(ctx, order.OrderID, phone, entity.OutcomeFailed, statusCode, "", source)
			log.Printf("❌ Order %s: Interakt returned %d", order.OrderID, statusCode)
		}

		// 3. Pace before the next order (never after the last one)
		if delay > 0 && i < len(orders)-1 {
			s.sleep(delay)
		}
	}

	return result, nil
}

func (s *BatchSender) publish(ctx context.Context, orderID, phone, status string, statusCode int, reason, source string) {
	if s.Events == nil {
		return
	}

	event := queue.NewDeliveryEvent(uuid.New().String(), orderID, phone, status, source)
	event.StatusCode = statusCode
	event.Reason = reason

	if err := s.Events.PublishDelivery(ctx, event); err != nil {
		log.Printf("⚠️ Delivery event publish failed for order %s: %v", orderID, err)
	}
}
