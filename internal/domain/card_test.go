package domain_test

import (
	"testing"

	"github.com/DanielPopoola/ficmart-checkout/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestClassifyCard(t *testing.T) {
	tests := []struct {
		number string
		want   domain.CardNetwork
	}{
		{"1111222233334444", domain.NetworkMister},
		{"1111.2222.3333.4444", domain.NetworkMister},
		{"2222", domain.NetworkVista},
		{"3333.0000", domain.NetworkDaciolo},
		{"4444111122223333", ""},
		{"111", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.number, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.ClassifyCard(tt.number))
		})
	}
}

func TestClassifyCard_OnlyPrefixMatters(t *testing.T) {
	base := domain.ClassifyCard("2222000000000000")
	for _, rest := range []string{"999999999999", "123412341234", "0"} {
		assert.Equal(t, base, domain.ClassifyCard("2222"+rest))
	}
}

func TestFormatCardNumber(t *testing.T) {
	assert.Equal(t, "1111.2222.3333.4444", domain.FormatCardNumber("1111222233334444"))
	assert.Equal(t, "1111.22", domain.FormatCardNumber("111122"))
	assert.Equal(t, "1111", domain.FormatCardNumber("1111"))
	assert.Equal(t, "", domain.FormatCardNumber(""))
}

func TestLastFour(t *testing.T) {
	assert.Equal(t, "4444", domain.LastFour("1111.2222.3333.4444"))
	assert.Equal(t, "12", domain.LastFour("12"))
}
