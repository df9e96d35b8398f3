package notify

import "testing"

func TestPayloadTemplates(t *testing.T) {
	tests := []struct {
		payload Payload
		want    string
	}{
		{ActionRequired{}, "action_required"},
		{BakeSaleCancelled{}, "bake_sale_cancelled"},
		{BakeSaleRescheduled{}, "bake_sale_rescheduled"},
		{OrderReadyForCollection{}, "order_ready_for_collection"},
		{OrderCompleted{}, "order_completed"},
		{OrderUpdate{Audience: AudienceCustomer}, "order_update_customer"},
		{OrderUpdate{Audience: AudienceBakery}, "order_update_bakery"},
	}

	for _, tc := range tests {
		if got := tc.payload.Template(); got != tc.want {
			t.Fatalf("expected template %q, got %q", tc.want, got)
		}
	}
}

func TestActionRequiredData(t *testing.T) {
	p := ActionRequired{
		OrderRef:       "#A1B2C3",
		OriginalDate:   "27 November 2025",
		ResolutionLink: "https://shop.example/orders/abc/resolve",
	}
	data := p.Data()
	if data["order_ref"] != "#A1B2C3" {
		t.Fatalf("unexpected order_ref %q", data["order_ref"])
	}
	if data["original_date"] != "27 November 2025" {
		t.Fatalf("unexpected original_date %q", data["original_date"])
	}
	if data["resolution_link"] == "" {
		t.Fatal("expected resolution_link to be set")
	}
}

func TestOrderUpdateData(t *testing.T) {
	p := OrderUpdate{
		Audience:      AudienceCustomer,
		OrderRef:      "#A1B2C3",
		ChangeDetails: "<ul><li>Sourdough Loaf removed</li></ul>",
		NewTotal:      "30.00",
	}
	data := p.Data()
	if data["new_total"] != "30.00" {
		t.Fatalf("unexpected new_total %q", data["new_total"])
	}
	if data["change_details"] == "" {
		t.Fatal("expected change_details to be set")
	}
}
