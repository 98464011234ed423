// Package status holds the canonical order lifecycle codes and the mapping
// from legacy display labels to them. Everything past Resolve stores codes only.
package status

import "strings"

type Code string

const (
	Placed         Code = "placed"
	Confirmed      Code = "confirmed"
	Packed         Code = "packed"
	Shipped        Code = "shipped"
	OutForDelivery Code = "out_for_delivery"
	Delivered      Code = "delivered"
	Completed      Code = "completed"
	Cancelled      Code = "cancelled"
	Returned       Code = "returned"
	Refunded       Code = "refunded"
)

var labels = map[Code]string{
	Placed:         "Order Placed",
	Confirmed:      "Confirmed",
	Packed:         "Packed",
	Shipped:        "Shipped",
	OutForDelivery: "Out for delivery",
	Delivered:      "Delivered",
	Completed:      "Completed",
	Cancelled:      "Cancelled",
	Returned:       "Returned",
	Refunded:       "Refunded",
}

// legacy display strings still arriving from older admin clients
var legacy = map[string]Code{
	"order placed":     Placed,
	"placed":           Placed,
	"pending":          Placed,
	"confirmed":        Confirmed,
	"processing":       Confirmed,
	"packing":          Packed,
	"packed":           Packed,
	"shipped":          Shipped,
	"out for delivery": OutForDelivery,
	"out_for_delivery": OutForDelivery,
	"delivered":        Delivered,
	"completed":        Completed,
	"cancelled":        Cancelled,
	"canceled":         Cancelled,
	"returned":         Returned,
	"refunded":         Refunded,
}

// Resolve maps a canonical code or a legacy display label to the canonical
// pair. Unrecognized input falls back to Placed.
func Resolve(input string) (Code, string) {
	key := strings.ToLower(strings.TrimSpace(input))
	if code, ok := legacy[key]; ok {
		return code, labels[code]
	}
	return Placed, labels[Placed]
}

// Known reports whether input resolves to something other than the fallback.
func Known(input string) bool {
	key := strings.ToLower(strings.TrimSpace(input))
	_, ok := legacy[key]
	return ok
}

func (c Code) Label() string {
	if l, ok := labels[c]; ok {
		return l
	}
	return labels[Placed]
}

// Terminal states cannot transition further.
func (c Code) Terminal() bool {
	switch c {
	case Completed, Cancelled, Returned, Refunded:
		return true
	}
	return false
}
