package workflows

import (
	"time"

	"github.com/shopspring/decimal"

	"bakeshop/internal/models"
)

// defaultCollectionHours is used when a location has no explicit hours.
const defaultCollectionHours = "10am - 2pm"

// terminalStatusFor decides how an order leaves the system: paid orders
// are refunded, unpaid ones are cancelled.
func terminalStatusFor(payment models.PaymentStatus) models.OrderStatus {
	if payment == models.PaymentCompleted {
		return models.StatusRefunded
	}
	return models.StatusCancelled
}

// cutoffFor computes the order cutoff for a bake-sale date: noon on the
// calendar day immediately before it, in the date's own location.
func cutoffFor(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day()-1, 12, 0, 0, 0, date.Location())
}

// formatDate renders dates the way customer emails expect them, en-GB
// style ("27 November 2025").
func formatDate(t time.Time) string {
	return t.Format("2 January 2006")
}

// lineSubtotal is unit price times quantity, on exact decimals.
func lineSubtotal(unitPrice float64, quantity int) decimal.Decimal {
	return decimal.NewFromFloat(unitPrice).Mul(decimal.NewFromInt(int64(quantity)))
}

// formatMoney fixes an amount to two decimal places for notifications.
func formatMoney(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}

func collectionHoursOrDefault(hours string) string {
	if hours == "" {
		return defaultCollectionHours
	}
	return hours
}
