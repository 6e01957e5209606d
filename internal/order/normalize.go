package order

// Buyer contact fields arrived under several historical keys depending on
// which client wrote the order. NormalizeBuyer maps a loosely-shaped customer
// record to the strict flattened fields; unknown shapes default to empty
// strings at this boundary instead of leaking ambiguity inward.

var buyerNameKeys = []string{"name", "customerName", "fullName", "buyerName"}
var buyerPhoneKeys = []string{"phone", "tel", "phoneNumber", "buyerPhone"}
var buyerAddressKeys = []string{"address", "shippingAddress", "addr", "buyerAddress"}

// NormalizeBuyer extracts (name, phone, address) from a raw customer record.
func NormalizeBuyer(raw map[string]any) (name, phone, address string) {
	name = firstString(raw, buyerNameKeys)
	phone = firstString(raw, buyerPhoneKeys)
	address = firstString(raw, buyerAddressKeys)
	return name, phone, address
}

func firstString(raw map[string]any, keys []string) string {
	for _, k := range keys {
		if v, ok := raw[k]; ok {
			if s, ok := v.(string); ok && s != "" {
				return s
			}
		}
	}
	return ""
}
