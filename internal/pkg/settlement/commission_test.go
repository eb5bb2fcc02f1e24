package settlement

import "testing"

func TestSplitAmountRoundTrip(t *testing.T) {
	percents := []float64{0, 0.5, 7.25, 10, 33.33, 50, 99.99, 100}
	amounts := []int64{1, 2, 3, 49, 50, 99, 100, 101, 999, 12345, 1000000}

	for _, pct := range percents {
		for _, amount := range amounts {
			commission, transfer := SplitAmount(amount, pct)
			if commission+transfer != amount {
				t.Fatalf("SplitAmount(%d, %v) = %d + %d, does not round-trip", amount, pct, commission, transfer)
			}
			if commission < 0 || transfer < 0 {
				t.Fatalf("SplitAmount(%d, %v) produced negative part: %d/%d", amount, pct, commission, transfer)
			}
		}
	}
}

func TestSplitAmountKnownValues(t *testing.T) {
	tests := []struct {
		amount         int64
		percent        float64
		wantCommission int64
		wantTransfer   int64
	}{
		{amount: 100, percent: 10, wantCommission: 10, wantTransfer: 90},
		{amount: 1, percent: 100, wantCommission: 1, wantTransfer: 0},
		{amount: 1, percent: 0, wantCommission: 0, wantTransfer: 1},
		// 15 * 0.10 = 1.5 rounds half-up to 2.
		{amount: 15, percent: 10, wantCommission: 2, wantTransfer: 13},
		{amount: 999, percent: 12.5, wantCommission: 125, wantTransfer: 874},
	}

	for _, tt := range tests {
		commission, transfer := SplitAmount(tt.amount, tt.percent)
		if commission != tt.wantCommission || transfer != tt.wantTransfer {
			t.Fatalf("SplitAmount(%d, %v) = (%d, %d), want (%d, %d)",
				tt.amount, tt.percent, commission, transfer, tt.wantCommission, tt.wantTransfer)
		}
	}
}

func TestResolveCommissionPercent(t *testing.T) {
	override := 25.0
	badOverride := 150.0

	tests := []struct {
		name            string
		override        *float64
		platformDefault float64
		want            float64
	}{
		{name: "override wins", override: &override, platformDefault: 10, want: 25},
		{name: "default without override", override: nil, platformDefault: 15, want: 15},
		{name: "out of range override ignored", override: &badOverride, platformDefault: 15, want: 15},
		{name: "out of range default falls back", override: nil, platformDefault: -1, want: 10},
	}

	for _, tt := range tests {
		if got := ResolveCommissionPercent(tt.override, tt.platformDefault, 10); got != tt.want {
			t.Fatalf("%s: ResolveCommissionPercent = %v, want %v", tt.name, got, tt.want)
		}
	}
}
