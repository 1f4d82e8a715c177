package licensing

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/videolighter/videolighter/go/models"
)

const monthlyTerm = 31 * 24 * time.Hour

// Issuer turns an order.paid event into a license row, at most once per
// order id.
type Issuer struct {
	DB       *gorm.DB
	Resolver *Resolver

	// product ids configured for the two plans; either may be empty
	MonthlyProductID  string
	LifetimeProductID string

	Now         func() time.Time // defaults to time.Now
	GenerateKey func() string    // defaults to GenerateLicenseKey
}

type IssueResult struct {
	LicenseKey string
	Existing   bool
	Order      Order
	License    *models.License // nil when Existing
}

func (is *Issuer) now() time.Time {
	if is.Now != nil {
		return is.Now()
	}
	return time.Now()
}

func (is *Issuer) generateKey() string {
	if is.GenerateKey != nil {
		return is.GenerateKey()
	}
	return GenerateLicenseKey()
}

// classifyProduct decides the plan. Order matters: configured ids first,
// then the "month" substring heuristic, then the lifetime default.
func (is *Issuer) classifyProduct(order Order) string {
	switch {
	case is.MonthlyProductID != "" && order.ProductID == is.MonthlyProductID:
		return models.ProductTypeMonthly
	case is.LifetimeProductID != "" && order.ProductID == is.LifetimeProductID:
		return models.ProductTypeLifetime
	case strings.Contains(strings.ToLower(order.ProductName), "month"):
		return models.ProductTypeMonthly
	}
	return models.ProductTypeLifetime
}

func (is *Issuer) ProcessOrderPaid(data map[string]any) (*IssueResult, error) {
	order := NormalizeOrder(data)
	if order.Email == "" || order.OrderID == "" {
		return nil, &ValidationError{Msg: "Missing required fields: email or orderId"}
	}

	productType := is.classifyProduct(order)
	expiresAt := models.LifetimeExpiry
	if productType == models.ProductTypeMonthly {
		expiresAt = is.now().Add(monthlyTerm)
	}

	profile, err := is.Resolver.Resolve(order.Email)
	if err != nil {
		return nil, err
	}

	// redelivery guard: one license per order, first key wins
	var existing models.License
	res := is.DB.First(&existing, "polar_order_id = ?", order.OrderID)
	if res.Error == nil {
		return &IssueResult{LicenseKey: existing.LicenseKey, Existing: true, Order: order}, nil
	}
	if !errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, res.Error
	}

	license := &models.License{
		UserID:          profile.ID,
		LicenseKey:      is.generateKey(),
		Status:          models.LicenseStatusActive,
		ProductType:     productType,
		ExpiresAt:       expiresAt,
		UserEmail:       order.Email,
		PolarOrderID:    order.OrderID,
		PaidAmountCents: order.AmountCents,
		PaidCurrency:    order.Currency,
		Source:          "polar",
	}
	if order.ProductID != "" {
		license.PolarProductID = &order.ProductID
	}
	if order.CustomerID != "" {
		license.PolarCustomerID = &order.CustomerID
	}

	// Upsert on the order id so a concurrent redelivery converges on one
	// row instead of failing the unique index.
	res = is.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "polar_order_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"user_id", "license_key", "status", "product_type", "expires_at",
			"user_email", "polar_product_id", "polar_customer_id",
			"paid_amount_cents", "paid_currency", "source",
		}),
	}).Create(license)
	if res.Error != nil {
		return nil, res.Error
	}

	return &IssueResult{LicenseKey: license.LicenseKey, Order: order, License: license}, nil
}
