package models

// ErrorResponse is the JSON body of every error the gateway produces itself.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
