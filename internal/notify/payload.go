package notify

// Payload is one templated message body. Each template gets its own struct
// so a send is checked against the fields its template needs; Data flattens
// to the wire shape the mail service expects. Dates arrive pre-formatted
// ("27 November 2025") and money pre-fixed to two decimals.
type Payload interface {
	Template() string
	Data() map[string]string
}

// ActionRequired asks the customer to choose between transferring the
// order to another bake sale or cancelling it.
type ActionRequired struct {
	OrderRef       string
	OriginalDate   string
	ResolutionLink string
}

func (p ActionRequired) Template() string { return "action_required" }

func (p ActionRequired) Data() map[string]string {
	return map[string]string{
		"order_ref":       p.OrderRef,
		"original_date":   p.OriginalDate,
		"resolution_link": p.ResolutionLink,
	}
}

// BakeSaleCancelled tells the customer their order was cancelled or
// refunded because the bake sale is off.
type BakeSaleCancelled struct {
	OrderRef     string
	Date         string
	LocationName string
	Reason       string
}

func (p BakeSaleCancelled) Template() string { return "bake_sale_cancelled" }

func (p BakeSaleCancelled) Data() map[string]string {
	return map[string]string{
		"order_ref": p.OrderRef,
		"date":      p.Date,
		"location":  p.LocationName,
		"reason":    p.Reason,
	}
}

// BakeSaleRescheduled is purely informational; the order itself is
// untouched.
type BakeSaleRescheduled struct {
	OrderRef string
	OldDate  string
	NewDate  string
	Reason   string
}

func (p BakeSaleRescheduled) Template() string { return "bake_sale_rescheduled" }

func (p BakeSaleRescheduled) Data() map[string]string {
	return map[string]string{
		"order_ref": p.OrderRef,
		"old_date":  p.OldDate,
		"new_date":  p.NewDate,
		"reason":    p.Reason,
	}
}

// OrderReadyForCollection carries the collection point details.
type OrderReadyForCollection struct {
	OrderRef        string
	LocationName    string
	LocationAddress string
	CollectionTime  string
}

func (p OrderReadyForCollection) Template() string { return "order_ready_for_collection" }

func (p OrderReadyForCollection) Data() map[string]string {
	return map[string]string{
		"order_ref":       p.OrderRef,
		"location":        p.LocationName,
		"address":         p.LocationAddress,
		"collection_time": p.CollectionTime,
	}
}

type OrderCompleted struct {
	OrderRef string
}

func (p OrderCompleted) Template() string { return "order_completed" }

func (p OrderCompleted) Data() map[string]string {
	return map[string]string{"order_ref": p.OrderRef}
}

// ChangeAudience selects which order-update template a line-item change
// summary is rendered with.
type ChangeAudience string

const (
	AudienceCustomer ChangeAudience = "customer"
	AudienceBakery   ChangeAudience = "bakery"
)

// OrderUpdate summarises staff edits to an order's line items.
type OrderUpdate struct {
	Audience      ChangeAudience
	OrderRef      string
	ChangeDetails string
	NewTotal      string
}

func (p OrderUpdate) Template() string {
	if p.Audience == AudienceBakery {
		return "order_update_bakery"
	}
	return "order_update_customer"
}

func (p OrderUpdate) Data() map[string]string {
	return map[string]string{
		"order_ref":      p.OrderRef,
		"change_details": p.ChangeDetails,
		"new_total":      p.NewTotal,
	}
}
