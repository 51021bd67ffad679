package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/ipshopy/order-notify/internal/entity"
	"github.com/ipshopy/order-notify/internal/infra/http/middleware"
	"github.com/ipshopy/order-notify/internal/usecase"
)

type AutomationHandler struct {
	AutomateUC *usecase.AutomateSendUseCase
}

func NewAutomationHandler(uc *usecase.AutomateSendUseCase) *AutomationHandler {
	return &AutomationHandler{AutomateUC: uc}
}

// filtersEcho repeats the applied filters in every automation response
// so operators can see what a run actually selected.
type filtersEcho struct {
	Limit         *int `json:"limit"`
	OrderStatusID *int `json:"order_status_id"`
	DaysBack      *int `json:"days_back"`
}

// HandleSendMessages (GET or POST /api/automate/send-messages)
//
// Parameters come from the query string (GET) or a JSON body (POST):
// limit, order_status_id, days_back, delay_seconds (default 1),
// dry_run (default false).
func (h *AutomationHandler) HandleSendMessages(w http.ResponseWriter, r *http.Request) {
	var input usecase.AutomateSendInput

	if r.Method == http.MethodPost {
		input.DelaySeconds = 1
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
			return
		}
	} else {
		input = usecase.AutomateSendInput{
			Limit:         queryInt(r, "limit"),
			OrderStatusID: queryInt(r, "order_status_id"),
			DaysBack:      queryInt(r, "days_back"),
			DelaySeconds:  queryFloat(r, "delay_seconds", 1),
			DryRun:        queryBool(r, "dry_run"),
		}
	}

	if verrs := usecase.ValidateAutomateInput(input); len(verrs) > 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": verrs[0].Error()})
		return
	}

	filters := filtersEcho{
		Limit:         input.Limit,
		OrderStatusID: input.OrderStatusID,
		DaysBack:      input.DaysBack,
	}

	output, err := h.AutomateUC.Execute(r.Context(), input)
	if err != nil {
		var techErr *usecase.TechnicalError
		if errors.As(err, &techErr) && techErr.Code == usecase.CodeGatewayNotConfigured {
			middleware.RecordIntegrationError("interakt")
		}
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"success": false,
			"error":   err.Error(),
			"message": "Failed to process automation",
		})
		return
	}

	if output.OrdersFound == 0 {
		writeJSON(w, http.StatusNotFound, map[string]any{
			"success":      false,
			"message":      "No orders found matching the criteria",
			"orders_found": 0,
			"filters":      filters,
		})
		return
	}

	if output.DryRun {
		writeJSON(w, http.StatusOK, map[string]any{
			"success":      true,
			"dry_run":      true,
			"message":      fmt.Sprintf("Found %d orders (dry run - no messages sent)", output.OrdersFound),
			"orders_found": output.OrdersFound,
			"orders":       output.Orders,
			"filters":      filters,
		})
		return
	}

	middleware.RecordBatchRun()
	for _, detail := range output.Result.Details {
		outcome := detail.Status
		if outcome == entity.OutcomeError {
			outcome = entity.OutcomeFailed
		}
		middleware.RecordMessage(outcome)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"run_id":  output.RunID,
		"message": fmt.Sprintf("Processed %d orders", output.Result.Total),
		"summary": map[string]int{
			"total":   output.Result.Total,
			"success": output.Result.Success,
			"failed":  output.Result.Failed,
			"skipped": output.Result.Skipped,
		},
		"details": output.Result.Details,
		"filters": filters,
	})
}

// HandlePreview (GET /api/automate/preview)
//
// Same filters as send-messages but never touches the gateway.
func (h *AutomationHandler) HandlePreview(w http.ResponseWriter, r *http.Request) {
	filter := entity.AutomationFilter{
		Limit:         queryInt(r, "limit"),
		OrderStatusID: queryInt(r, "order_status_id"),
		DaysBack:      queryInt(r, "days_back"),
	}

	orders, err := h.AutomateUC.Preview(r.Context(), filter)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"error":   err.Error(),
			"message": "Failed to fetch orders",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"orders_found": len(orders),
		"orders":       orders,
		"filters": filtersEcho{
			Limit:         filter.Limit,
			OrderStatusID: filter.OrderStatusID,
			DaysBack:      filter.DaysBack,
		},
	})
}
