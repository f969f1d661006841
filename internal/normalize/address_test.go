package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/joseph-ayodele/invoice-ledger/internal/entity"
)

func TestParseAddress(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want entity.Address
	}{
		{
			name: "street, postal code and city, country",
			in:   "Main St 5, 10115 Berlin, Germany",
			want: entity.Address{Address: "Main St 5", PostalCode: "10115", City: "Berlin", Country: "Germany"},
		},
		{
			name: "city without postal code",
			in:   "Hauptstr. 1, Munich",
			want: entity.Address{Address: "Hauptstr. 1", City: "Munich"},
		},
		{
			name: "multi-word city",
			in:   "Rue 3, 75001 Paris Centre, France, EU",
			want: entity.Address{Address: "Rue 3", PostalCode: "75001", City: "Paris Centre", Country: "France"},
		},
		{
			name: "street only",
			in:   "  Lone Road 9 ",
			want: entity.Address{Address: "Lone Road 9"},
		},
		{
			name: "postal code alone is a city",
			in:   "Street 1, 10115",
			want: entity.Address{Address: "Street 1", City: "10115"},
		},
		{name: "empty", in: "", want: entity.Address{}},
		{name: "blank", in: "   ", want: entity.Address{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseAddress(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Empty(t, got.State)
		})
	}
}
