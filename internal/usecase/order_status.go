package usecase

import (
	"context"
	"log"

	"github.com/google/uuid"
	"github.com/ipshopy/order-notify/internal/entity"
	"github.com/ipshopy/order-notify/internal/infra/queue"
)

type GetOrderStatusInput struct {
	OrderID int
	Phone   string
}

type GetOrderStatusOutput struct {
	Found              bool           `json:"found"`
	Authorized         bool           `json:"authorized"`
	Order              *entity.Order  `json:"order,omitempty"`
	WhatsAppStatusCode int            `json:"whatsapp_status_code,omitempty"`
	InteraktResponse   map[string]any `json:"interakt_response,omitempty"`
}

type GetOrderStatusUseCase struct {
	Repo    entity.OrderRepository
	Gateway MessageGateway
	Events  DeliveryPublisher
}

func NewGetOrderStatusUseCase(repo entity.OrderRepository, gateway MessageGateway, events DeliveryPublisher) *GetOrderStatusUseCase {
	return &GetOrderStatusUseCase{
		Repo:    repo,
		Gateway: gateway,
		Events:  events,
	}
}

// Execute runs the single-order flow: fetch, authorize against the phone
// on file, then trigger the WhatsApp template send. Not-found and
// phone-mismatch come back as DomainError values with the partial output
// still populated; only data-access and gateway faults are technical.
func (uc *GetOrderStatusUseCase) Execute(ctx context.Context, input GetOrderStatusInput) (*GetOrderStatusOutput, error) {
	output := &GetOrderStatusOutput{}

	// 1. Fetch order + phone on file
	order, dbPhone, err := uc.Repo.FindWithPhone(ctx, input.OrderID)
	if err != nil {
		log.Printf("❌ Database error fetching order %d: %v", input.OrderID, err)
		return output, &TechnicalError{Code: CodeDatabaseError, Message: "Database error: " + err.Error()}
	}

	if order == nil {
		return output, ErrOrderNotFound()
	}
	output.Found = true
	output.Order = order

	// 2. Authorize: the caller must hold the phone this order was placed with
	if !PhoneMatches(dbPhone, input.Phone) {
		return output, ErrPhoneMismatch()
	}
	output.Authorized = true

	// 3. Send the template message
	statusCode, resp, err := uc.Gateway.SendOrderStatus(ctx, order, input.Phone)
	if err != nil {
		uc.publish(ctx, order, input.Phone, entity.OutcomeError, 0, err.Error())
		return output, err
	}

	output.WhatsAppStatusCode = statusCode
	output.InteraktResponse = resp

	outcome := entity.OutcomeSuccess
	if statusCode != 200 && statusCode != 201 {
		outcome = entity.OutcomeFailed
	}
	uc.publish(ctx, order, input.Phone, outcome, statusCode, "")

	log.Printf("✅ Order %s: WhatsApp send returned %d for %s", order.OrderID, statusCode, order.CustomerName)
	return output, nil
}

func (uc *GetOrderStatusUseCase) publish(ctx context.Context, order *entity.Order, phone, status string, statusCode int, reason string) {
	if uc.Events == nil {
		return
	}

	event := queue.NewDeliveryEvent(uuid.New().String(), order.OrderID, phone, status, queue.SourceSingle)
	event.StatusCode = statusCode
	event.Reason = reason

	if err := uc.Events.PublishDelivery(ctx, event); err != nil {
		log.Printf("⚠️ Delivery event publish failed for order %s: %v", order.OrderID, err)
	}
}
