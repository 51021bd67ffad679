package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateOrderStatusParams(t *testing.T) {
	id, errs := ValidateOrderStatusParams("178541", "+917588348865")
	assert.Empty(t, errs)
	assert.Equal(t, 178541, id)

	_, errs = ValidateOrderStatusParams("", "+917588348865")
	assert.Len(t, errs, 1)
	assert.Equal(t, "order_id", errs[0].Field)

	_, errs = ValidateOrderStatusParams("abc", "+917588348865")
	assert.Len(t, errs, 1)
	assert.Equal(t, "order_id: must be integer", errs[0].Error())

	_, errs = ValidateOrderStatusParams("-5", "+917588348865")
	assert.Len(t, errs, 1)

	_, errs = ValidateOrderStatusParams("178541", "  ")
	assert.Len(t, errs, 1)
	assert.Equal(t, "phone", errs[0].Field)

	_, errs = ValidateOrderStatusParams("", "")
	assert.Len(t, errs, 2)
}

func TestValidateAutomateInput(t *testing.T) {
	assert.Empty(t, ValidateAutomateInput(AutomateSendInput{DelaySeconds: 1}))
	assert.Empty(t, ValidateAutomateInput(AutomateSendInput{DelaySeconds: 0}))

	bad := -1
	errs := ValidateAutomateInput(AutomateSendInput{Limit: &bad, DelaySeconds: 1})
	assert.Len(t, errs, 1)

	errs = ValidateAutomateInput(AutomateSendInput{DelaySeconds: -0.5})
	assert.Len(t, errs, 1)
	assert.Equal(t, "delay_seconds", errs[0].Field)
}
