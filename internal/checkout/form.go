package checkout

import "strings"

// Form is the typed replacement for looking form fields up in a rendering
// surface: the UI collaborator populates it and passes it in as a value.
type Form struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	CEP          string `json:"cep"`
	Street       string `json:"street"`
	Number       string `json:"number"`
	Complement   string `json:"complement"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
}

// requiredFields fixes the validation order; the first missing field is the
// one reported and focused.
var requiredFields = []struct {
	field string
	label string
	value func(*Form) string
}{
	{"name", "Nome", func(f *Form) string { return f.Name }},
	{"email", "E-mail", func(f *Form) string { return f.Email }},
	{"phone", "Telefone", func(f *Form) string { return f.Phone }},
	{"cep", "CEP", func(f *Form) string { return f.CEP }},
	{"street", "Rua", func(f *Form) string { return f.Street }},
	{"number", "Número", func(f *Form) string { return f.Number }},
	{"neighborhood", "Bairro", func(f *Form) string { return f.Neighborhood }},
	{"city", "Cidade", func(f *Form) string { return f.City }},
	{"state", "Estado", func(f *Form) string { return f.State }},
}

// Validate returns nil when every required field is non-empty after
// trimming, or a ValidationError for the first missing one. Complement is
// collected but never required.
func (f *Form) Validate() *ValidationError {
	for _, rf := range requiredFields {
		if strings.TrimSpace(rf.value(f)) == "" {
			return &ValidationError{Field: rf.field, Label: rf.label}
		}
	}
	return nil
}
