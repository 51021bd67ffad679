package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/ipshopy/order-notify/internal/infra/database"
)

// DebugHandler answers whether an order exists at all, plus a few table
// statistics, to tell connection problems apart from bad identifiers.
type DebugHandler struct {
	Repo   *database.OrderRepository
	DBName string
}

func NewDebugHandler(repo *database.OrderRepository, dbName string) *DebugHandler {
	return &DebugHandler{Repo: repo, DBName: dbName}
}

// HandleDebugOrder (GET /api/debug/order/{orderID})
func (h *DebugHandler) HandleDebugOrder(w http.ResponseWriter, r *http.Request) {
	orderID, err := strconv.Atoi(chi.URLParam(r, "orderID"))
	if err != nil || orderID <= 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "order_id must be a positive integer"})
		return
	}

	info, err := h.Repo.DebugOrder(r.Context(), orderID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"error":    err.Error(),
			"order_id": orderID,
			"database": h.DBName,
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"order_id":       orderID,
		"order_found":    info.OrderFound,
		"order_data":     info.Order,
		"database":       h.DBName,
		"table_prefix":   "oc_",
		"total_orders":   info.TotalOrders,
		"order_id_range": map[string]int{"min_id": info.MinOrderID, "max_id": info.MaxOrderID},
		"sample_orders":  info.SampleOrders,
	})
}
