package models

import (
	"testing"

	"github.com/shopspring/decimal"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal literal %q: %v", s, err)
	}
	return d
}

func decPtr(t *testing.T, s string) *decimal.Decimal {
	t.Helper()
	d := dec(t, s)
	return &d
}

func TestClassifyPurchaseUnit(t *testing.T) {
	cases := []struct {
		raw    string
		want   TargetUnit
		wantOk bool
	}{
		{"kg", TargetUnitMass, true},
		{" KG ", TargetUnitMass, true},
		{"Kilo", TargetUnitMass, true},
		{"g", TargetUnitMass, true},
		{"Liter", TargetUnitVolume, true},
		{"l", TargetUnitVolume, true},
		{"ml", TargetUnitVolume, true},
		{"Stk", TargetUnitCount, true},
		{"stück", TargetUnitCount, true},
		{"pc", TargetUnitCount, true},
		{"", "", false},
		{"Karton", "", false},
	}
	for _, tc := range cases {
		got, ok := ClassifyPurchaseUnit(tc.raw)
		if ok != tc.wantOk || got != tc.want {
			t.Fatalf("ClassifyPurchaseUnit(%q) = (%q, %v), want (%q, %v)", tc.raw, got, ok, tc.want, tc.wantOk)
		}
	}
}

func TestRecipeUnitFor(t *testing.T) {
	cases := map[TargetUnit]RecipeUnit{
		TargetUnitMass:   RecipeUnitGram,
		TargetUnitVolume: RecipeUnitMillilitre,
		TargetUnitCount:  RecipeUnitPiece,
	}
	for target, want := range cases {
		got, ok := RecipeUnitFor(target)
		if !ok || got != want {
			t.Fatalf("RecipeUnitFor(%q) = (%q, %v), want %q", target, got, ok, want)
		}
	}
	if _, ok := RecipeUnitFor(""); ok {
		t.Fatal("RecipeUnitFor(\"\") should not resolve")
	}
}

func TestPricePerBaseMassScalesToGram(t *testing.T) {
	got := PricePerBase(decPtr(t, "12"), decPtr(t, "6"), TargetUnitMass)
	if got == nil {
		t.Fatal("expected a price")
	}
	if !got.Equal(dec(t, "0.002")) {
		t.Fatalf("price per gram = %s, want 0.002", got)
	}
}

func TestPricePerBaseCountUnscaled(t *testing.T) {
	got := PricePerBase(decPtr(t, "3"), decPtr(t, "5"), TargetUnitCount)
	if got == nil {
		t.Fatal("expected a price")
	}
	if !got.Equal(dec(t, "0.6")) {
		t.Fatalf("price per piece = %s, want 0.6", got)
	}
}

func TestPricePerBaseZeroContent(t *testing.T) {
	if got := PricePerBase(decPtr(t, "3"), decPtr(t, "0"), TargetUnitMass); got != nil {
		t.Fatalf("zero content should yield nil, got %s", got)
	}
	if got := PricePerBase(decPtr(t, "3"), nil, TargetUnitMass); got != nil {
		t.Fatalf("absent content should yield nil, got %s", got)
	}
	if got := PricePerBase(nil, decPtr(t, "5"), TargetUnitMass); got != nil {
		t.Fatalf("absent price should yield nil, got %s", got)
	}
}

// Scaling back up by the package content (times 1000 for mass and volume)
// must reconstruct the purchase price.
func TestPricePerBaseRoundTrip(t *testing.T) {
	tolerance := dec(t, "0.000001")
	for _, tc := range []struct {
		price, content string
		target         TargetUnit
	}{
		{"12.49", "7", TargetUnitMass},
		{"3.90", "0.75", TargetUnitVolume},
		{"19.99", "12", TargetUnitCount},
	} {
		price := dec(t, tc.price)
		content := dec(t, tc.content)
		perBase := PricePerBase(&price, &content, tc.target)
		if perBase == nil {
			t.Fatalf("no price for %+v", tc)
		}
		scale := content
		if tc.target != TargetUnitCount {
			scale = scale.Mul(dec(t, "1000"))
		}
		back := perBase.Mul(scale)
		if back.Sub(price).Abs().GreaterThan(tolerance) {
			t.Fatalf("round trip %+v: got %s, want %s", tc, back, price)
		}
	}
}

func TestParseTargetUnitAcceptsCanonicalAndRaw(t *testing.T) {
	for raw, want := range map[string]TargetUnit{
		"mass":   TargetUnitMass,
		"volume": TargetUnitVolume,
		"count":  TargetUnitCount,
		"kg":     TargetUnitMass,
		"L":      TargetUnitVolume,
		"stk":    TargetUnitCount,
	} {
		got, ok := ParseTargetUnit(raw)
		if !ok || got != want {
			t.Fatalf("ParseTargetUnit(%q) = (%q, %v), want %q", raw, got, ok, want)
		}
	}
}
