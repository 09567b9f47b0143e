package models

// View is the JSON document returned for page requests. It carries what a
// template would need: the page name, queued notices, per-field validation
// messages and page data.
type View struct {
	Name    string              `json:"view"`
	Flashes []Flash             `json:"flashes"`
	Errors  map[string][]string `json:"errors,omitempty"`
	Data    any                 `json:"data,omitempty"`
}

// StatusMessage is the small JSON body used by asynchronous endpoints.
type StatusMessage struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// ErrorMessage is the JSON body of plain API errors.
type ErrorMessage struct {
	Error string `json:"error"`
}

// MailMessage is a plain-text email.
type MailMessage struct {
	To      string
	Subject string
	Body    string
}
