package domain_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/ayodeji-m/kobowallet/internal/domain"
)

func TestNormalizeAccountNumber(t *testing.T) {
	tests := []struct {
		name          string
		phoneNumber   string
		dialingPrefix string
		want          string
	}{
		{
			name:          "international format",
			phoneNumber:   "+2348012345678",
			dialingPrefix: "+234",
			want:          "8012345678",
		},
		{
			name:          "local format with leading zero",
			phoneNumber:   "08012345678",
			dialingPrefix: "+234",
			want:          "8012345678",
		},
		{
			name:          "no prefix and no leading zero",
			phoneNumber:   "8012345678",
			dialingPrefix: "+234",
			want:          "8012345678",
		},
		{
			name:          "empty prefix falls back to default",
			phoneNumber:   "+2348012345678",
			dialingPrefix: "",
			want:          "8012345678",
		},
		{
			name:          "custom prefix",
			phoneNumber:   "+4478123456789",
			dialingPrefix: "+44",
			want:          "78123456789",
		},
		{
			name:          "only one leading zero is stripped",
			phoneNumber:   "008012345678",
			dialingPrefix: "+234",
			want:          "08012345678",
		},
		{
			name:          "surrounding whitespace is trimmed",
			phoneNumber:   "  +2348012345678  ",
			dialingPrefix: "+234",
			want:          "8012345678",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.NormalizeAccountNumber(tt.phoneNumber, tt.dialingPrefix)
			if got != tt.want {
				t.Errorf("NormalizeAccountNumber(%q, %q) = %q, want %q",
					tt.phoneNumber, tt.dialingPrefix, got, tt.want)
			}
		})
	}
}

func TestValidatePhoneNumber(t *testing.T) {
	tests := []struct {
		name        string
		phoneNumber string
		wantErr     bool
	}{
		{name: "international format", phoneNumber: "+2348012345678"},
		{name: "local format", phoneNumber: "08012345678"},
		{name: "bare digits", phoneNumber: "8012345678"},
		{name: "empty", phoneNumber: "", wantErr: true},
		{name: "letters", phoneNumber: "not-a-number", wantErr: true},
		{name: "too short", phoneNumber: "123", wantErr: true},
		{name: "too long", phoneNumber: "1234567890123456", wantErr: true},
		{name: "plus in the middle", phoneNumber: "080+1234567", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := domain.ValidatePhoneNumber(tt.phoneNumber)
			if tt.wantErr && !errors.Is(err, domain.ErrInvalidPhoneNumber) {
				t.Errorf("expected ErrInvalidPhoneNumber, got %v", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidateCurrency(t *testing.T) {
	for _, code := range []string{"NGN", "USD", "ngn", " GBP "} {
		if err := domain.ValidateCurrency(code); err != nil {
			t.Errorf("ValidateCurrency(%q): unexpected error: %v", code, err)
		}
	}

	for _, code := range []string{"", "XYZ", "NAIRA"} {
		if err := domain.ValidateCurrency(code); !errors.Is(err, domain.ErrInvalidCurrency) {
			t.Errorf("ValidateCurrency(%q): expected ErrInvalidCurrency, got %v", code, err)
		}
	}
}

func TestValidateAmount(t *testing.T) {
	if err := domain.ValidateAmount(decimal.NewFromInt(100)); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	if err := domain.ValidateAmount(decimal.Zero); !errors.Is(err, domain.ErrInvalidAmount) {
		t.Errorf("expected ErrInvalidAmount for zero, got %v", err)
	}

	if err := domain.ValidateAmount(decimal.NewFromInt(-50)); !errors.Is(err, domain.ErrInvalidAmount) {
		t.Errorf("expected ErrInvalidAmount for negative, got %v", err)
	}

	huge, _ := decimal.NewFromString("1000000001")
	if err := domain.ValidateAmount(huge); !errors.Is(err, domain.ErrAmountTooLarge) {
		t.Errorf("expected ErrAmountTooLarge, got %v", err)
	}
}

func TestValidatePagination(t *testing.T) {
	tests := []struct {
		name       string
		limit      int
		offset     int
		wantLimit  int
		wantOffset int
	}{
		{name: "defaults", limit: 0, offset: 0, wantLimit: 50, wantOffset: 0},
		{name: "negative values", limit: -1, offset: -10, wantLimit: 50, wantOffset: 0},
		{name: "capped limit", limit: 1000, offset: 20, wantLimit: 200, wantOffset: 20},
		{name: "passthrough", limit: 25, offset: 75, wantLimit: 25, wantOffset: 75},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limit, offset := domain.ValidatePagination(tt.limit, tt.offset)
			if limit != tt.wantLimit || offset != tt.wantOffset {
				t.Errorf("ValidatePagination(%d, %d) = (%d, %d), want (%d, %d)",
					tt.limit, tt.offset, limit, offset, tt.wantLimit, tt.wantOffset)
			}
		})
	}
}
