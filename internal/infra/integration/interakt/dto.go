package interakt

type sendTemplateRequest struct {
	CountryCode  string        `json:"countryCode"`
	PhoneNumber  string        `json:"phoneNumber"`
	CallbackData string        `json:"callbackData"`
	Type         string        `json:"type"`
	Template     templateBlock `json:"template"`
}

type templateBlock struct {
	Name         string              `json:"name"`
	LanguageCode string              `json:"languageCode"`
	BodyValues   []string            `json:"bodyValues"`
	ButtonValues map[string][]string `json:"buttonValues"`
}
