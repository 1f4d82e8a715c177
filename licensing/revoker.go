package licensing

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/videolighter/videolighter/go/models"
)

const deactivatedReasonRefund = "order_refunded"

// Revoker handles order.refunded events: licenses for the order flip to
// refunded and every live activation under them is shut off.
type Revoker struct {
	DB  *gorm.DB
	Now func() time.Time
}

type RefundResult struct {
	OrderID                string
	DeactivatedActivations int64
}

func (rv *Revoker) now() time.Time {
	if rv.Now != nil {
		return rv.Now()
	}
	return time.Now()
}

// ProcessOrderRefunded returns (nil, nil) when the event carries no order
// id: there is nothing to correlate against, and an error would only make
// the provider redeliver a payload that can never be actioned.
func (rv *Revoker) ProcessOrderRefunded(data map[string]any) (*RefundResult, error) {
	orderID := firstString(data, orderAliases)
	if orderID == "" {
		return nil, nil
	}

	// the order id is unique by invariant, but tolerate multiple rows
	var licenses []models.License
	if res := rv.DB.Select("id").Where("polar_order_id = ?", orderID).Find(&licenses); res.Error != nil {
		return nil, res.Error
	}

	now := rv.now()
	res := rv.DB.Model(&models.License{}).
		Where("polar_order_id = ?", orderID).
		Updates(map[string]any{"status": models.LicenseStatusRefunded, "expires_at": now})
	if res.Error != nil {
		return nil, res.Error
	}

	var deactivated int64
	if len(licenses) > 0 {
		ids := make([]uuid.UUID, len(licenses))
		for i, l := range licenses {
			ids[i] = l.ID
		}

		// the null filter makes replays touch zero rows
		res := rv.DB.Model(&models.LicenseActivation{}).
			Where("license_id IN ? AND deactivated_at IS NULL", ids).
			Updates(map[string]any{"deactivated_at": now, "deactivated_reason": deactivatedReasonRefund})
		if res.Error != nil {
			return nil, res.Error
		}
		deactivated = res.RowsAffected
	}

	return &RefundResult{OrderID: orderID, DeactivatedActivations: deactivated}, nil
}
