package licensing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/videolighter/videolighter/go/models"
)

func newTestRouter(gdb *gorm.DB) *Router {
	return &Router{
		Issuer:  newTestIssuer(gdb),
		Revoker: &Revoker{DB: gdb},
	}
}

func TestHandleEventUnknownType(t *testing.T) {
	gdb := newTestDB(t)
	router := newTestRouter(gdb)

	result, err := router.HandleEvent(models.WebhookEvent{
		Type: "subscription.updated",
		Data: map[string]any{"id": "sub_1"},
	})
	require.NoError(t, err)
	assert.Equal(t, models.IgnoredResponse{Message: "Ignored event"}, result.Body)
	assert.Nil(t, result.Issued)

	var count int64
	require.NoError(t, gdb.Model(&models.License{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestHandleEventOrderPaid(t *testing.T) {
	gdb := newTestDB(t)
	seedProfile(t, gdb, "a@example.com")
	router := newTestRouter(gdb)

	event := models.WebhookEvent{
		Type: EventOrderPaid,
		Data: map[string]any{"customer_email": "a@example.com", "id": "ord_1"},
	}

	result, err := router.HandleEvent(event)
	require.NoError(t, err)
	require.NotNil(t, result.Issued)

	body, ok := result.Body.(models.IssueResponse)
	require.True(t, ok)
	assert.True(t, body.Success)
	assert.False(t, body.Existing)
	assert.NotEmpty(t, body.LicenseKey)

	// redelivery acknowledges without a second issuance
	replay, err := router.HandleEvent(event)
	require.NoError(t, err)
	assert.Nil(t, replay.Issued)

	replayBody, ok := replay.Body.(models.IssueResponse)
	require.True(t, ok)
	assert.True(t, replayBody.Existing)
	assert.Equal(t, body.LicenseKey, replayBody.LicenseKey)
}

func TestHandleEventRefundWithoutOrderID(t *testing.T) {
	gdb := newTestDB(t)
	router := newTestRouter(gdb)

	result, err := router.HandleEvent(models.WebhookEvent{
		Type: EventOrderRefunded,
		Data: map[string]any{},
	})
	require.NoError(t, err)
	assert.Equal(t, models.IgnoredResponse{Message: "Refund event without order id"}, result.Body)
}

func TestHandleEventRefund(t *testing.T) {
	gdb := newTestDB(t)
	seedProfile(t, gdb, "a@example.com")
	router := newTestRouter(gdb)

	_, err := router.HandleEvent(models.WebhookEvent{
		Type: EventOrderPaid,
		Data: map[string]any{"customer_email": "a@example.com", "id": "ord_1"},
	})
	require.NoError(t, err)

	result, err := router.HandleEvent(models.WebhookEvent{
		Type: EventOrderRefunded,
		Data: map[string]any{"id": "ord_1"},
	})
	require.NoError(t, err)

	body, ok := result.Body.(models.RefundResponse)
	require.True(t, ok)
	assert.True(t, body.Success)
	assert.Equal(t, "ord_1", body.RefundedOrderID)
	assert.Zero(t, body.DeactivatedActivations)
}
