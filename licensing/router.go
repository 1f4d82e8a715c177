package licensing

import (
	"github.com/videolighter/videolighter/go/models"
)

const (
	EventOrderPaid     = "order.paid"
	EventOrderRefunded = "order.refunded"
)

// Router dispatches a webhook envelope to the right processor. Anything it
// does not recognize is acknowledged and dropped: Polar retries on non-2xx,
// and unknown-but-harmless event types must not cause retry storms.
type Router struct {
	Issuer  *Issuer
	Revoker *Revoker
}

// HandleResult carries the JSON-ready response body plus the issuance
// result when the event minted a new license, so the HTTP layer can fire
// notifications without re-deriving anything.
type HandleResult struct {
	Body   any
	Issued *IssueResult
}

func (r *Router) HandleEvent(event models.WebhookEvent) (*HandleResult, error) {
	switch event.Type {
	case EventOrderPaid:
		result, err := r.Issuer.ProcessOrderPaid(event.Data)
		if err != nil {
			return nil, err
		}
		out := &HandleResult{
			Body: models.IssueResponse{Success: true, LicenseKey: result.LicenseKey, Existing: result.Existing},
		}
		if !result.Existing {
			out.Issued = result
		}
		return out, nil

	case EventOrderRefunded:
		result, err := r.Revoker.ProcessOrderRefunded(event.Data)
		if err != nil {
			return nil, err
		}
		if result == nil {
			return &HandleResult{Body: models.IgnoredResponse{Message: "Refund event without order id"}}, nil
		}
		return &HandleResult{
			Body: models.RefundResponse{
				Success:                true,
				RefundedOrderID:        result.OrderID,
				DeactivatedActivations: result.DeactivatedActivations,
			},
		}, nil
	}

	return &HandleResult{Body: models.IgnoredResponse{Message: "Ignored event"}}, nil
}
