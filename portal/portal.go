package portal

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/videolighter/videolighter/go/models"
)

// DefaultAPIBase is Polar's public API endpoint.
const DefaultAPIBase = "https://api.polar.sh"

// ErrNotConfigured means the service has no Polar access token, so no
// portal session can ever be created.
var ErrNotConfigured = errors.New("POLAR_ACCESS_TOKEN is not configured")

// NoCustomerError means the caller has no license linked to a Polar
// customer, so there is no billing account to manage.
type NoCustomerError struct {
	UserID uuid.UUID
}

func (e *NoCustomerError) Error() string {
	return "No Polar customer found for this account. Please contact support."
}

// UpstreamError reports that Polar rejected both payload shapes. Status and
// detail are passed through to the caller verbatim.
type UpstreamError struct {
	Status int
	Detail string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("polar customer session failed: %d %s", e.Status, e.Detail)
}

// Broker requests a self-service billing portal session from Polar on
// behalf of an authenticated user.
type Broker struct {
	DB          *gorm.DB
	HTTPClient  *http.Client
	AccessToken string
	APIBase     string // DefaultAPIBase when empty
}

// Polar has shipped both snake_case and camelCase session schemas. Builders
// are tried in order and the first 2xx wins.
var sessionPayloads = []func(customerID, returnURL string) map[string]string{
	func(customerID, returnURL string) map[string]string {
		return map[string]string{"customer_id": customerID, "return_url": returnURL}
	},
	func(customerID, returnURL string) map[string]string {
		return map[string]string{"customerId": customerID, "returnUrl": returnURL}
	},
}

func (b *Broker) apiBase() string {
	if b.APIBase != "" {
		return b.APIBase
	}
	return DefaultAPIBase
}

// CreateSession finds the user's most recent Polar-linked license and asks
// Polar for a customer portal URL.
func (b *Broker) CreateSession(userID uuid.UUID, returnURL string) (string, error) {
	if b.AccessToken == "" {
		return "", ErrNotConfigured
	}

	var license models.License
	res := b.DB.
		Where("user_id = ? AND polar_customer_id IS NOT NULL", userID).
		Order("created_at DESC").
		First(&license)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return "", &NoCustomerError{UserID: userID}
		}
		return "", res.Error
	}

	var (
		lastStatus = http.StatusInternalServerError
		lastBody   map[string]any
	)
	for _, buildPayload := range sessionPayloads {
		status, body, err := b.postSession(buildPayload(*license.PolarCustomerID, returnURL))
		if err != nil {
			return "", err
		}
		if status >= 200 && status < 300 {
			return portalURL(body), nil
		}
		lastStatus, lastBody = status, body
	}

	return "", &UpstreamError{Status: lastStatus, Detail: upstreamDetail(lastBody)}
}

func (b *Broker) postSession(payload map[string]string) (int, map[string]any, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return 0, nil, err
	}

	req, err := http.NewRequest(http.MethodPost, b.apiBase()+"/v1/customer-sessions", bytes.NewReader(data))
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+b.AccessToken)

	resp, err := b.HTTPClient.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	// a non-JSON error body is fine, the status is what matters
	body := map[string]any{}
	_ = json.NewDecoder(resp.Body).Decode(&body)
	return resp.StatusCode, body, nil
}

// portalURL reads the session URL from either response schema.
func portalURL(body map[string]any) string {
	for _, field := range []string{"customer_portal_url", "url"} {
		if s, ok := body[field].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

func upstreamDetail(body map[string]any) string {
	for _, field := range []string{"detail", "error"} {
		if s, ok := body[field].(string); ok && s != "" {
			return s
		}
	}
	return "Failed to create customer session"
}
