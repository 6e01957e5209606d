package order

import "testing"

func TestNormalizeBuyer_LegacyKeys(t *testing.T) {
	cases := []struct {
		name string
		raw  map[string]any
		want [3]string
	}{
		{
			name: "canonical keys",
			raw:  map[string]any{"name": "Somchai", "phone": "0891234567", "address": "99 Rama IV Rd"},
			want: [3]string{"Somchai", "0891234567", "99 Rama IV Rd"},
		},
		{
			name: "legacy customerName and tel",
			raw:  map[string]any{"customerName": "Malee", "tel": "021234567", "shippingAddress": "1 Sukhumvit"},
			want: [3]string{"Malee", "021234567", "1 Sukhumvit"},
		},
		{
			name: "fullName and phoneNumber",
			raw:  map[string]any{"fullName": "Anan", "phoneNumber": "0812223333", "addr": "5 Silom"},
			want: [3]string{"Anan", "0812223333", "5 Silom"},
		},
		{
			name: "canonical wins over legacy",
			raw:  map[string]any{"name": "Somchai", "customerName": "Other", "phone": "1", "tel": "2"},
			want: [3]string{"Somchai", "1", ""},
		},
		{
			name: "empty canonical falls through to legacy",
			raw:  map[string]any{"name": "", "customerName": "Malee"},
			want: [3]string{"Malee", "", ""},
		},
		{
			name: "non-string values ignored",
			raw:  map[string]any{"name": 42, "customerName": "Malee", "phone": true},
			want: [3]string{"Malee", "", ""},
		},
		{
			name: "unknown shape defaults to empty",
			raw:  map[string]any{"something": "else"},
			want: [3]string{"", "", ""},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			name, phone, address := NormalizeBuyer(tc.raw)
			if name != tc.want[0] || phone != tc.want[1] || address != tc.want[2] {
				t.Errorf("got (%q, %q, %q), want (%q, %q, %q)",
					name, phone, address, tc.want[0], tc.want[1], tc.want[2])
			}
		})
	}
}
