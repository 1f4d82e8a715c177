package licensing

import (
	"math"
	"strconv"
	"strings"
)

// Order is the strict record extracted from a Polar webhook payload. The
// provider has shipped several payload shapes over time, so every field is
// resolved through an ordered alias chain here and nowhere else.
type Order struct {
	Email       string // trimmed, lowercased
	OrderID     string
	CustomerID  string
	ProductID   string
	ProductName string
	AmountCents *int64
	Currency    *string // uppercase ISO code
}

var (
	emailAliases    = []string{"customer_email", "user.email", "customer.email"}
	productAliases  = []string{"product_id", "product.id", "product.product_id"}
	orderAliases    = []string{"id", "order_id"}
	customerAliases = []string{"customer_id", "customer.id"}
)

// NormalizeOrder resolves each field's alias chain, first non-empty wins.
func NormalizeOrder(data map[string]any) Order {
	order := Order{
		Email:       strings.ToLower(strings.TrimSpace(firstString(data, emailAliases))),
		OrderID:     firstString(data, orderAliases),
		CustomerID:  firstString(data, customerAliases),
		ProductID:   firstString(data, productAliases),
		ProductName: firstString(data, []string{"product_name"}),
	}
	if cents, ok := coerceNumber(data["total_amount"]); ok {
		order.AmountCents = &cents
	}
	if s, ok := data["currency"].(string); ok {
		upper := strings.ToUpper(s)
		order.Currency = &upper
	}
	return order
}

func firstString(data map[string]any, aliases []string) string {
	for _, alias := range aliases {
		if s, ok := lookup(data, alias).(string); ok && s != "" {
			return s
		}
	}
	return ""
}

// lookup walks a dotted path through nested objects.
func lookup(data map[string]any, path string) any {
	var cur any = data
	for _, part := range strings.Split(path, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		cur = m[part]
	}
	return cur
}

func coerceNumber(v any) (int64, bool) {
	switch n := v.(type) {
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return int64(n), true
	case int64:
		return n, true
	case int:
		return int64(n), true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0, false
		}
		return int64(f), true
	}
	return 0, false
}
