package models

type ErrorResponse struct {
	Error string `json:"error"`
}

// WebhookEvent is the envelope Polar delivers: a type discriminator plus a
// loosely-typed payload. Data stays a map on purpose; field aliases are
// resolved by the licensing normalizer, not by struct tags.
type WebhookEvent struct {
	Type string         `json:"type"`
	Data map[string]any `json:"data"`
}

type IssueResponse struct {
	Success    bool   `json:"success"`
	LicenseKey string `json:"licenseKey"`
	Existing   bool   `json:"existing,omitempty"`
}

type RefundResponse struct {
	Success                bool   `json:"success"`
	RefundedOrderID        string `json:"refundedOrderId"`
	DeactivatedActivations int64  `json:"deactivatedActivations"`
}

type IgnoredResponse struct {
	Message string `json:"message"`
}

type PortalRequest struct {
	ReturnURL string `json:"returnUrl"`
}

type PortalResponse struct {
	PortalURL string `json:"portalUrl"`
}
