package stats

import "github.com/shopspring/decimal"

// ExtractRevenue returns the value of a sale. A usable financial-section price
// wins; cash sales leave it empty, so the line-item total is used instead.
// The result is never negative.
func ExtractRevenue(s Sale) decimal.Decimal {
	if s.Financial != nil && s.Financial.Price != nil && !s.Financial.Price.IsNegative() {
		return *s.Financial.Price
	}
	return LineItemsTotal(s.Items)
}

// LineItemsTotal sums quantity times unit price over the items
func LineItemsTotal(items []LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Total())
	}
	return total
}

// UnitPrice resolves the price of one unit: custom price, then the service
// price, then the package price. Offered items are free.
func (li LineItem) UnitPrice() decimal.Decimal {
	if li.Offered {
		return decimal.Zero
	}
	for _, p := range []*decimal.Decimal{li.CustomPrice, li.ServicePrice, li.PackagePrice} {
		if p != nil {
			return *p
		}
	}
	return decimal.Zero
}

// Total is the line amount, floored at zero
func (li LineItem) Total() decimal.Decimal {
	if li.Quantity <= 0 {
		return decimal.Zero
	}
	amount := li.UnitPrice().Mul(decimal.NewFromInt(li.Quantity))
	if amount.IsNegative() {
		return decimal.Zero
	}
	return amount
}
