package domain

import (
	"errors"
	"math"
	"testing"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want Amount
	}{
		{"0", 0},
		{"1", 1_000_000},
		{"0.001", 1000},
		{"2.5", 2_500_000},
		{"10.725", 10_725_000},
		{"0.000001", 1},
		{"1000000", 1_000_000_000_000},
	}
	for _, tc := range tests {
		got, err := ParseAmount(tc.in)
		if err != nil {
			t.Fatalf("ParseAmount(%q) returned error: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ParseAmount(%q): got %d want %d", tc.in, got, tc.want)
		}
	}
}

func TestParseAmountRejections(t *testing.T) {
	tests := []struct {
		in   string
		want error
	}{
		{"", ErrInvalidAmount},
		{"abc", ErrInvalidAmount},
		{"-1", ErrInvalidAmount},
		{"0.0000001", ErrInvalidAmount},
		{"99999999999999999999", ErrAmountOverflow},
	}
	for _, tc := range tests {
		if _, err := ParseAmount(tc.in); !errors.Is(err, tc.want) {
			t.Fatalf("ParseAmount(%q): got %v want %v", tc.in, err, tc.want)
		}
	}
}

func TestAmountString(t *testing.T) {
	tests := []struct {
		in   Amount
		want string
	}{
		{0, "0"},
		{1_000_000, "1"},
		{275_000, "0.275"},
		{10_725_000, "10.725"},
		{1, "0.000001"},
	}
	for _, tc := range tests {
		if got := tc.in.String(); got != tc.want {
			t.Fatalf("Amount(%d).String(): got %q want %q", tc.in, got, tc.want)
		}
	}
}

func TestAmountAdd(t *testing.T) {
	if got, err := Amount(1).Add(2); err != nil || got != 3 {
		t.Fatalf("Add: got %d, %v", got, err)
	}
	if got, err := Amount(5).Add(-2); err != nil || got != 3 {
		t.Fatalf("Add negative: got %d, %v", got, err)
	}
	if _, err := Amount(math.MaxInt64).Add(1); !errors.Is(err, ErrAmountOverflow) {
		t.Fatalf("overflow: got %v", err)
	}
	if _, err := Amount(math.MinInt64).Add(-1); !errors.Is(err, ErrAmountOverflow) {
		t.Fatalf("underflow: got %v", err)
	}
}

func TestSplitFee(t *testing.T) {
	tests := []struct {
		raw     Amount
		bps     int64
		fee     Amount
		net     Amount
		comment string
	}{
		{11_000_000, 250, 275_000, 10_725_000, "11 units at 2.5%"},
		{5_000_000, 250, 125_000, 4_875_000, "5 units at 2.5%"},
		{10_000_000, 1000, 1_000_000, 9_000_000, "max rate"},
		{10_000_000, 0, 0, 10_000_000, "zero rate"},
		{1, 250, 0, 1, "fee floors to zero"},
		{math.MaxInt64, 1000, math.MaxInt64 / 10, math.MaxInt64 - math.MaxInt64/10, "no intermediate overflow"},
	}
	for _, tc := range tests {
		fee, net := SplitFee(tc.raw, tc.bps)
		if fee != tc.fee || net != tc.net {
			t.Fatalf("%s: SplitFee(%d, %d) = (%d, %d), want (%d, %d)",
				tc.comment, tc.raw, tc.bps, fee, net, tc.fee, tc.net)
		}
		if fee+net != tc.raw {
			t.Fatalf("%s: fee+net != raw", tc.comment)
		}
	}
}

func TestValidateFeeBps(t *testing.T) {
	for _, bps := range []int64{0, 1, 250, 1000} {
		if err := ValidateFeeBps(bps); err != nil {
			t.Fatalf("ValidateFeeBps(%d) rejected: %v", bps, err)
		}
	}
	for _, bps := range []int64{-1, 1001, 10000} {
		if err := ValidateFeeBps(bps); !errors.Is(err, ErrInvalidFee) {
			t.Fatalf("ValidateFeeBps(%d): got %v want %v", bps, err, ErrInvalidFee)
		}
	}
}
