package mail

import (
	"bytes"
	"testing"

	"github.com/ipshopy/order-notify/internal/entity"
	"github.com/stretchr/testify/assert"
)

func TestReportTemplate(t *testing.T) {
	result := entity.BatchResult{
		Total:   3,
		Success: 1,
		Failed:  1,
		Skipped: 1,
		Details: []entity.SendOutcome{
			{OrderID: "178541", Status: entity.OutcomeSuccess},
			{OrderID: "178540", Status: entity.OutcomeFailed},
			{OrderID: "178539", Status: entity.OutcomeSkipped, Reason: "No phone number"},
		},
	}

	var body bytes.Buffer
	err := reportTemplate.Execute(&body, struct {
		RunID  string
		Result entity.BatchResult
	}{RunID: "run-123", Result: result})

	assert.NoError(t, err)
	out := body.String()
	assert.Contains(t, out, "run-123")
	assert.Contains(t, out, "Success: 1")
	assert.Contains(t, out, "#178539  skipped (No phone number)")
}
