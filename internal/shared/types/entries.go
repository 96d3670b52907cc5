package types

// Entry status values for email sends.
const (
	StatusSent   = "sent"
	StatusFailed = "failed"
)

// EmailEntry records one email send attempt within a session.
type EmailEntry struct {
	ID        string `json:"id"`
	Recipient string `json:"recipient"`
	Subject   string `json:"subject"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
	Status    string `json:"status"` // "sent" or "failed"
}

// PrimaryText returns the text a session title is derived from.
func (e EmailEntry) PrimaryText() string { return e.Subject }

// TranslationEntry records one translation within a session. It is the
// only mutable entry variant: retranslation replaces translated_text and
// target_language in place, and editing replaces source_text, re-derives
// the translation, and stamps edited/editedAt.
type TranslationEntry struct {
	Timestamp        string `json:"timestamp"`
	SourceText       string `json:"source_text"`
	TranslatedText   string `json:"translated_text"`
	TargetLanguage   string `json:"target_language"`
	DetectedLanguage string `json:"detected_language"`
	Edited           bool   `json:"edited,omitempty"`
	EditedAt         string `json:"editedAt,omitempty"`
}

// PrimaryText returns the text a session title is derived from.
func (e TranslationEntry) PrimaryText() string { return e.SourceText }

// WeatherEntry records one weather lookup within a session. Exactly one
// of Weather and Error is populated.
type WeatherEntry struct {
	ID        string         `json:"id"`
	City      string         `json:"city"`
	Timestamp string         `json:"timestamp"`
	Weather   *WeatherReport `json:"weather,omitempty"`
	Error     string         `json:"error,omitempty"`
}

// PrimaryText returns the text a session title is derived from. Successful
// lookups title the session with the resolved place name; failed lookups
// fall back to what the user typed.
func (e WeatherEntry) PrimaryText() string {
	if e.Weather != nil {
		return e.Weather.Location.Name + ", " + e.Weather.Location.Country
	}
	return e.City
}
