package enums

import "fmt"

// DeliveryMethod names the carriers the shop hands parcels to.
type DeliveryMethod string

const (
	DeliveryMethodPost DeliveryMethod = "post"
	DeliveryMethodCDEK DeliveryMethod = "cdek"
	DeliveryMethodOzon DeliveryMethod = "ozon"
)

var validDeliveryMethods = []DeliveryMethod{
	DeliveryMethodPost,
	DeliveryMethodCDEK,
	DeliveryMethodOzon,
}

var deliveryMethodLabels = map[DeliveryMethod]string{
	DeliveryMethodPost: "Почта России",
	DeliveryMethodCDEK: "СДЭК",
	DeliveryMethodOzon: "OZON",
}

// String implements fmt.Stringer.
func (d DeliveryMethod) String() string {
	return string(d)
}

// IsValid reports whether the value is a known DeliveryMethod.
func (d DeliveryMethod) IsValid() bool {
	for _, candidate := range validDeliveryMethods {
		if candidate == d {
			return true
		}
	}
	return false
}

// Label returns the customer-facing carrier name used in order messages.
func (d DeliveryMethod) Label() string {
	if label, ok := deliveryMethodLabels[d]; ok {
		return label
	}
	return string(d)
}

// ParseDeliveryMethod converts raw input into a DeliveryMethod.
func ParseDeliveryMethod(value string) (DeliveryMethod, error) {
	for _, candidate := range validDeliveryMethods {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid delivery method %q", value)
}
