package licensing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/videolighter/videolighter/go/models"
)

func newTestIssuer(gdb *gorm.DB) *Issuer {
	return &Issuer{
		DB:                gdb,
		Resolver:          &Resolver{DB: gdb},
		MonthlyProductID:  "prod_monthly",
		LifetimeProductID: "prod_lifetime",
	}
}

func TestProcessOrderPaidLifetime(t *testing.T) {
	gdb := newTestDB(t)
	profile := seedProfile(t, gdb, "a@example.com")
	issuer := newTestIssuer(gdb)

	result, err := issuer.ProcessOrderPaid(map[string]any{
		"customer_email": "A@Example.com",
		"id":             "ord_1",
		"product_id":     "prod_lifetime",
	})
	require.NoError(t, err)
	assert.False(t, result.Existing)
	assert.Regexp(t, `^VL-[A-Z0-9]{4}-[A-Z0-9]{4}$`, result.LicenseKey)

	var license models.License
	require.NoError(t, gdb.First(&license, "polar_order_id = ?", "ord_1").Error)
	assert.Equal(t, profile.ID, license.UserID)
	assert.Equal(t, models.LicenseStatusActive, license.Status)
	assert.Equal(t, models.ProductTypeLifetime, license.ProductType)
	assert.Equal(t, "a@example.com", license.UserEmail)
	assert.Equal(t, result.LicenseKey, license.LicenseKey)
	assert.True(t, license.ExpiresAt.Equal(models.LifetimeExpiry))
	assert.Equal(t, "polar", license.Source)
	require.NotNil(t, license.PolarProductID)
	assert.Equal(t, "prod_lifetime", *license.PolarProductID)
}

func TestProcessOrderPaidIdempotent(t *testing.T) {
	gdb := newTestDB(t)
	seedProfile(t, gdb, "a@example.com")
	issuer := newTestIssuer(gdb)

	payload := map[string]any{
		"customer_email": "a@example.com",
		"id":             "ord_1",
		"product_id":     "prod_lifetime",
	}

	first, err := issuer.ProcessOrderPaid(payload)
	require.NoError(t, err)

	second, err := issuer.ProcessOrderPaid(payload)
	require.NoError(t, err)
	assert.True(t, second.Existing)
	assert.Equal(t, first.LicenseKey, second.LicenseKey)

	var count int64
	require.NoError(t, gdb.Model(&models.License{}).Where("polar_order_id = ?", "ord_1").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestProcessOrderPaidClassification(t *testing.T) {
	tests := []struct {
		name     string
		payload  map[string]any
		wantType string
	}{
		{
			name:     "configured monthly id",
			payload:  map[string]any{"product_id": "prod_monthly"},
			wantType: models.ProductTypeMonthly,
		},
		{
			name:     "configured lifetime id",
			payload:  map[string]any{"product_id": "prod_lifetime"},
			wantType: models.ProductTypeLifetime,
		},
		{
			name:     "month substring in product name",
			payload:  map[string]any{"product_id": "prod_other", "product_name": "VideoLighter 1-Month Plan"},
			wantType: models.ProductTypeMonthly,
		},
		{
			name:     "unknown product defaults to lifetime",
			payload:  map[string]any{"product_id": "prod_other", "product_name": "VideoLighter Special"},
			wantType: models.ProductTypeLifetime,
		},
		{
			name:     "no product at all defaults to lifetime",
			payload:  map[string]any{},
			wantType: models.ProductTypeLifetime,
		},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gdb := newTestDB(t)
			seedProfile(t, gdb, "a@example.com")
			issuer := newTestIssuer(gdb)

			now := time.Now()
			tt.payload["customer_email"] = "a@example.com"
			tt.payload["id"] = "ord_" + string(rune('a'+i))

			result, err := issuer.ProcessOrderPaid(tt.payload)
			require.NoError(t, err)
			require.NotNil(t, result.License)
			assert.Equal(t, tt.wantType, result.License.ProductType)

			if tt.wantType == models.ProductTypeMonthly {
				assert.WithinDuration(t, now.Add(31*24*time.Hour), result.License.ExpiresAt, time.Minute)
			} else {
				assert.True(t, result.License.ExpiresAt.Equal(models.LifetimeExpiry))
			}
		})
	}
}

func TestProcessOrderPaidValidation(t *testing.T) {
	gdb := newTestDB(t)
	seedProfile(t, gdb, "a@example.com")
	issuer := newTestIssuer(gdb)

	tests := []struct {
		name    string
		payload map[string]any
	}{
		{name: "missing email", payload: map[string]any{"id": "ord_1"}},
		{name: "missing order id", payload: map[string]any{"customer_email": "a@example.com"}},
		{name: "blank email", payload: map[string]any{"customer_email": "   ", "id": "ord_1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := issuer.ProcessOrderPaid(tt.payload)
			var validation *ValidationError
			require.ErrorAs(t, err, &validation)
		})
	}

	var count int64
	require.NoError(t, gdb.Model(&models.License{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestProcessOrderPaidUnknownProfile(t *testing.T) {
	gdb := newTestDB(t)
	issuer := newTestIssuer(gdb)

	_, err := issuer.ProcessOrderPaid(map[string]any{
		"customer_email": "nobody@example.com",
		"id":             "ord_1",
	})
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Contains(t, notFound.Error(), "nobody@example.com")
}

func TestProcessOrderPaidPaymentFields(t *testing.T) {
	gdb := newTestDB(t)
	seedProfile(t, gdb, "a@example.com")
	issuer := newTestIssuer(gdb)

	result, err := issuer.ProcessOrderPaid(map[string]any{
		"user":         map[string]any{"email": "a@example.com"},
		"order_id":     "ord_1",
		"customer":     map[string]any{"id": "cus_9"},
		"total_amount": float64(2900),
		"currency":     "usd",
	})
	require.NoError(t, err)

	license := result.License
	require.NotNil(t, license)
	require.NotNil(t, license.PolarCustomerID)
	assert.Equal(t, "cus_9", *license.PolarCustomerID)
	require.NotNil(t, license.PaidAmountCents)
	assert.Equal(t, int64(2900), *license.PaidAmountCents)
	require.NotNil(t, license.PaidCurrency)
	assert.Equal(t, "USD", *license.PaidCurrency)
	assert.Nil(t, license.PolarProductID)
}
