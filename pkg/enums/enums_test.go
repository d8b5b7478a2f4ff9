package enums

import "testing"

func TestParseProductCategory(t *testing.T) {
	if _, err := ParseProductCategory("originals"); err != nil {
		t.Fatalf("expected originals to parse: %v", err)
	}
	if _, err := ParseProductCategory("paintings"); err == nil {
		t.Fatal("expected unknown category to fail")
	}
}

func TestOrderStatusTerminal(t *testing.T) {
	if !OrderStatusDelivered.IsTerminal() {
		t.Fatal("delivered should be terminal")
	}
	if !OrderStatusCancelled.IsTerminal() {
		t.Fatal("cancelled should be terminal")
	}
	if OrderStatusShipped.IsTerminal() {
		t.Fatal("shipped should not be terminal")
	}
}

func TestDeliveryMethodLabels(t *testing.T) {
	cases := map[DeliveryMethod]string{
		DeliveryMethodPost: "Почта России",
		DeliveryMethodCDEK: "СДЭК",
		DeliveryMethodOzon: "OZON",
	}
	for method, want := range cases {
		if got := method.Label(); got != want {
			t.Fatalf("label for %s: expected %q, got %q", method, want, got)
		}
	}
	if _, err := ParseDeliveryMethod("courier"); err == nil {
		t.Fatal("expected unknown delivery method to fail")
	}
}
