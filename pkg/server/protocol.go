package server

// Message types.
const (
	TypeNavigate = "navigate"
	TypeHello    = "hello"
	TypeRender   = "render"
	TypeError    = "error"
)

// ClientMessage is a frame sent by the browser.
type ClientMessage struct {
	Type string `json:"type"`
	Hash string `json:"hash"`
}

// ServerMessage is a frame sent to the browser.
type ServerMessage struct {
	Type string `json:"type"`

	Session string `json:"session,omitempty"`

	Route    string `json:"route,omitempty"`
	Path     string `json:"path,omitempty"`
	SubRoute string `json:"subRoute,omitempty"`
	HTML     string `json:"html,omitempty"`

	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}
