package usecase

import (
	"context"

	"github.com/ipshopy/order-notify/internal/entity"
	"github.com/ipshopy/order-notify/internal/infra/queue"
)

// MessageGateway is the outbound WhatsApp boundary. It reports the raw
// vendor status code plus the decoded response body; the body falls back
// to {"raw_text": ...} when the vendor returns something that is not JSON.
type MessageGateway interface {
	SendOrderStatus(ctx context.Context, order *entity.Order, phone string) (int, map[string]any, error)
}

// DeliveryPublisher emits one event per send attempt for downstream
// consumers. Implementations must be safe to skip (nil) and must not
// make publish failures fatal to the send path.
type DeliveryPublisher interface {
	PublishDelivery(ctx context.Context, event queue.DeliveryEvent) error
}

// ReportMailer delivers the batch summary after an automation run.
type ReportMailer interface {
	SendBatchReport(to string, runID string, result entity.BatchResult) error
}
