package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/ipshopy/order-notify/internal/entity"
	"github.com/ipshopy/order-notify/internal/infra/http/middleware"
	"github.com/ipshopy/order-notify/internal/usecase"
)

type OrderHandler struct {
	GetOrderStatusUC *usecase.GetOrderStatusUseCase
}

func NewOrderHandler(uc *usecase.GetOrderStatusUseCase) *OrderHandler {
	return &OrderHandler{GetOrderStatusUC: uc}
}

// HandleGetStatus (GET /api/order-status?order_id=178541&phone=+917588348865)
//
// Flow: validate query, fetch + authorize against the phone on file,
// send the WhatsApp template, echo the gateway status back as our own.
func (h *OrderHandler) HandleGetStatus(w http.ResponseWriter, r *http.Request) {
	rawOrderID := r.URL.Query().Get("order_id")
	phone := r.URL.Query().Get("phone")

	orderID, verrs := usecase.ValidateOrderStatusParams(rawOrderID, phone)
	if len(verrs) > 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": verrs[0].Error()})
		return
	}

	debugHint := fmt.Sprintf("Check /api/debug/order/%d for more details", orderID)

	output, err := h.GetOrderStatusUC.Execute(r.Context(), usecase.GetOrderStatusInput{
		OrderID: orderID,
		Phone:   phone,
	})

	if err != nil {
		var domainErr *usecase.DomainError
		if errors.As(err, &domainErr) {
			switch domainErr.Code {
			case usecase.CodeOrderNotFound:
				writeJSON(w, http.StatusNotFound, map[string]any{
					"found":      false,
					"authorized": false,
					"order_id":   rawOrderID,
					"message":    domainErr.Message,
					"debug_hint": debugHint,
				})
			case usecase.CodePhoneMismatch:
				writeJSON(w, http.StatusForbidden, map[string]any{
					"found":      true,
					"authorized": false,
					"order_id":   output.Order.OrderID,
					"message":    domainErr.Message,
				})
			}
			return
		}

		var techErr *usecase.TechnicalError
		if errors.As(err, &techErr) {
			switch techErr.Code {
			case usecase.CodeDatabaseError:
				writeJSON(w, http.StatusInternalServerError, map[string]any{
					"found":      false,
					"authorized": false,
					"order_id":   rawOrderID,
					"message":    techErr.Message,
					"debug_hint": debugHint,
				})
			case usecase.CodeGatewayNotConfigured:
				middleware.RecordIntegrationError("interakt")
				writeErrorResponse(w, http.StatusInternalServerError, techErr.Code, techErr.Message)
			}
			return
		}

		// Gateway transport or configuration fault
		middleware.RecordIntegrationError("interakt")
		writeErrorResponse(w, http.StatusBadGateway, "GATEWAY_ERROR", err.Error())
		return
	}

	outcome := entity.OutcomeSuccess
	if output.WhatsAppStatusCode != 200 && output.WhatsAppStatusCode != 201 {
		outcome = entity.OutcomeFailed
	}
	middleware.RecordMessage(outcome)

	// Interakt's status is passed through as ours
	writeJSON(w, output.WhatsAppStatusCode, output)
}
