package models

// ErrorResponse โครงสร้างมาตรฐานสำหรับการส่ง Error
type ErrorResponse struct {
	Status  int    `json:"status"`
	Kind    string `json:"kind,omitempty"` // not_found, forbidden, invalid_request, internal
	Message string `json:"message"`
}

const (
	KindNotFound       = "not_found"
	KindForbidden      = "forbidden"
	KindInvalidRequest = "invalid_request"
	KindInternal       = "internal"
)
