package interakt

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/ipshopy/order-notify/internal/entity"
	"github.com/ipshopy/order-notify/internal/usecase"
)

type Client struct {
	apiKey             string
	baseURL            string
	templateName       string
	templateLang       string
	defaultCountryCode string
	http               *http.Client
}

func NewClient(apiKey, baseURL, templateName, templateLang, defaultCountryCode string) *Client {
	return &Client{
		apiKey:             apiKey,
		baseURL:            baseURL,
		templateName:       templateName,
		templateLang:       templateLang,
		defaultCountryCode: defaultCountryCode,
		http:               &http.Client{Timeout: 10 * time.Second},
	}
}

// SendOrderStatus fires the order-status template at one phone number.
// The template expects {{1}} = customer name in the body and {{1}} =
// order id in the first button's URL. Returns the raw Interakt status
// code and the decoded body; callers decide what a non-2xx means.
func (c *Client) SendOrderStatus(ctx context.Context, order *entity.Order, phone string) (int, map[string]any, error) {
	if c.apiKey == "" {
		return 0, nil, &usecase.TechnicalError{
			Code:    usecase.CodeGatewayNotConfigured,
			Message: "INTERAKT_API_KEY not set",
		}
	}

	countryCode, phoneNum := ParsePhone(phone, c.defaultCountryCode)

	payload := sendTemplateRequest{
		CountryCode:  countryCode,
		PhoneNumber:  phoneNum,
		CallbackData: fmt.Sprintf("order:%s", order.OrderID),
		Type:         "Template",
		Template: templateBlock{
			Name:         c.templateName,
			LanguageCode: c.templateLang,
			BodyValues:   []string{order.CustomerName},
			ButtonValues: map[string][]string{
				"0": {order.OrderID},
			},
		},
	}

	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return 0, nil, fmt.Errorf("interakt payload marshal failed: %w", err)
	}

	url := fmt.Sprintf("%s/v1/public/message/", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Authorization", "Basic "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("interakt request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Printf("❌ Interakt returned %d for order %s: %s", resp.StatusCode, order.OrderID, string(respBody))
	}

	// The body is opaque to us: decode when it is JSON, keep the raw
	// text otherwise.
	var data map[string]any
	if err := json.Unmarshal(respBody, &data); err != nil {
		data = map[string]any{"raw_text": string(respBody)}
	}

	return resp.StatusCode, data, nil
}

// ParsePhone splits a raw phone into Interakt's countryCode + phoneNumber
// pair. Only +91 and +1 are recognized; everything else falls back to
// the configured default country code with the full digit string.
// Known limitation: other international prefixes (e.g. +44) are not
// detected and get the default-country treatment.
func ParsePhone(phone, defaultCountryCode string) (string, string) {
	phone = strings.TrimSpace(phone)

	var b strings.Builder
	for _, ch := range phone {
		if ch == '+' || (ch >= '0' && ch <= '9') {
			b.WriteRune(ch)
		}
	}
	clean := b.String()

	if strings.HasPrefix(clean, "+") {
		digits := clean[1:]

		if strings.HasPrefix(digits, "91") && len(digits) >= 12 {
			return "+91", digits[2:]
		}
		if strings.HasPrefix(digits, "1") && len(digits) >= 11 {
			return "+1", digits[1:]
		}
		return defaultCountryCode, digits
	}

	// India without the +: 91XXXXXXXXXX
	if strings.HasPrefix(clean, "91") && len(clean) >= 12 {
		return "+91", clean[2:]
	}

	return defaultCountryCode, clean
}
