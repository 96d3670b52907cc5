package types

// SendEmailRequest is the body of POST /api/send-email.
type SendEmailRequest struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// SendEmailResponse is the success body of POST /api/send-email.
type SendEmailResponse struct {
	Success   bool   `json:"success"`
	MessageID string `json:"messageId"`
	Message   string `json:"message"`
}

// TranslateRequest is the body of POST /api/translate.
type TranslateRequest struct {
	Text           string `json:"text"`
	TargetLanguage string `json:"targetLanguage"`
}

// TranslateResponse is the success body of POST /api/translate.
type TranslateResponse struct {
	TranslatedText   string `json:"translatedText"`
	DetectedLanguage string `json:"detectedLanguage"`
	TargetLanguage   string `json:"targetLanguage"`
}

// ReverseGeocodeResponse is the success body of GET /api/geocode/reverse.
type ReverseGeocodeResponse struct {
	DisplayName string            `json:"displayName"`
	Address     map[string]string `json:"address,omitempty"`
}

// RetranslateRequest re-runs a stored translation to a new language.
type RetranslateRequest struct {
	TargetLanguage string `json:"targetLanguage"`
}

// EditTranslationRequest replaces a stored entry's source text.
type EditTranslationRequest struct {
	SourceText string `json:"sourceText"`
}
