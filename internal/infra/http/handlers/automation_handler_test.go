package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ipshopy/order-notify/internal/entity"
	"github.com/ipshopy/order-notify/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newAutomationHandler(repo *MockOrderRepository, gateway *MockMessageGateway) *AutomationHandler {
	sender := usecase.NewBatchSender(gateway, nil)
	return NewAutomationHandler(usecase.NewAutomateSendUseCase(repo, sender, nil, ""))
}

func automationOrder(id int, phone string) entity.Order {
	o := entity.NewOrder(id, "Jane", "Doe", "Shipped", "499.00", "2026-08-01 10:00:00", phone)
	return *o
}

func TestAutomationNoOrdersFound(t *testing.T) {
	repo := new(MockOrderRepository)
	repo.On("FindForAutomation", mock.Anything, mock.Anything).Return([]entity.Order{}, nil)

	h := newAutomationHandler(repo, new(MockMessageGateway))

	req := httptest.NewRequest("GET", "/api/automate/send-messages?days_back=7", nil)
	rec := httptest.NewRecorder()
	h.HandleSendMessages(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)

	var body map[string]any
	json.Unmarshal(rec.Body.Bytes(), &body)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, float64(0), body["orders_found"])

	filters := body["filters"].(map[string]any)
	assert.Equal(t, float64(7), filters["days_back"])
	assert.Nil(t, filters["limit"])
}

func TestAutomationDryRun(t *testing.T) {
	repo := new(MockOrderRepository)
	gateway := new(MockMessageGateway)
	repo.On("FindForAutomation", mock.Anything, mock.Anything).
		Return([]entity.Order{automationOrder(178541, "+917588348865")}, nil)

	h := newAutomationHandler(repo, gateway)

	req := httptest.NewRequest("GET", "/api/automate/send-messages?dry_run=true", nil)
	rec := httptest.NewRecorder()
	h.HandleSendMessages(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	json.Unmarshal(rec.Body.Bytes(), &body)
	assert.Equal(t, true, body["dry_run"])
	assert.Equal(t, float64(1), body["orders_found"])
	assert.NotNil(t, body["orders"])
	gateway.AssertNotCalled(t, "SendOrderStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestAutomationDryRunCaseInsensitive(t *testing.T) {
	// "dry_run=True" must never trigger real sends
	for _, raw := range []string{"True", "TRUE", "Yes", "1"} {
		repo := new(MockOrderRepository)
		gateway := new(MockMessageGateway)
		repo.On("FindForAutomation", mock.Anything, mock.Anything).
			Return([]entity.Order{automationOrder(178541, "+917588348865")}, nil)

		h := newAutomationHandler(repo, gateway)

		req := httptest.NewRequest("GET", "/api/automate/send-messages?dry_run="+raw, nil)
		rec := httptest.NewRecorder()
		h.HandleSendMessages(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code, raw)

		var body map[string]any
		json.Unmarshal(rec.Body.Bytes(), &body)
		assert.Equal(t, true, body["dry_run"], raw)
		gateway.AssertNotCalled(t, "SendOrderStatus", mock.Anything, mock.Anything, mock.Anything)
	}
}

func TestAutomationPostRun(t *testing.T) {
	repo := new(MockOrderRepository)
	gateway := new(MockMessageGateway)
	repo.On("FindForAutomation", mock.Anything, mock.Anything).Return([]entity.Order{
		automationOrder(178541, "+917588348865"),
		automationOrder(178540, "123"),
	}, nil)
	gateway.On("SendOrderStatus", mock.Anything, mock.Anything, "+917588348865").
		Return(200, map[string]any{"result": true}, nil)

	h := newAutomationHandler(repo, gateway)

	payload := `{"limit": 10, "days_back": 7, "delay_seconds": 0}`
	req := httptest.NewRequest("POST", "/api/automate/send-messages", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	h.HandleSendMessages(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	json.Unmarshal(rec.Body.Bytes(), &body)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Processed 2 orders", body["message"])

	summary := body["summary"].(map[string]any)
	assert.Equal(t, float64(2), summary["total"])
	assert.Equal(t, float64(1), summary["success"])
	assert.Equal(t, float64(0), summary["failed"])
	assert.Equal(t, float64(1), summary["skipped"])

	details := body["details"].([]any)
	assert.Len(t, details, 2)
}

func TestAutomationInvalidJSONBody(t *testing.T) {
	h := newAutomationHandler(new(MockOrderRepository), new(MockMessageGateway))

	req := httptest.NewRequest("POST", "/api/automate/send-messages", strings.NewReader("{"))
	rec := httptest.NewRecorder()
	h.HandleSendMessages(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAutomationNegativeDelayRejected(t *testing.T) {
	h := newAutomationHandler(new(MockOrderRepository), new(MockMessageGateway))

	payload := `{"delay_seconds": -1}`
	req := httptest.NewRequest("POST", "/api/automate/send-messages", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	h.HandleSendMessages(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAutomationPreview(t *testing.T) {
	repo := new(MockOrderRepository)
	gateway := new(MockMessageGateway)
	repo.On("FindForAutomation", mock.Anything, mock.Anything).
		Return([]entity.Order{automationOrder(178541, "+917588348865")}, nil)

	h := newAutomationHandler(repo, gateway)

	req := httptest.NewRequest("GET", "/api/automate/preview?limit=5", nil)
	rec := httptest.NewRecorder()
	h.HandlePreview(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	json.Unmarshal(rec.Body.Bytes(), &body)
	assert.Equal(t, float64(1), body["orders_found"])
	gateway.AssertNotCalled(t, "SendOrderStatus", mock.Anything, mock.Anything, mock.Anything)
}
