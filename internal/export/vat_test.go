package export

import (
	"math"
	"math/rand"
	"testing"

	"facturex/pkg/models"
)

func TestAllocateGroupsByRate(t *testing.T) {
	inv := models.Invoice{
		Number: "1",
		Items: []models.LineItem{
			{Quantity: 2, UnitPrice: 50, VatRate: 20},
			{Quantity: 1, UnitPrice: 30, VatRate: 20},
			{Quantity: 1, UnitPrice: 40, VatRate: 10},
		},
	}

	brackets := Allocate(&inv)
	if len(brackets) != 2 {
		t.Fatalf("got %d brackets, want 2", len(brackets))
	}
	if brackets[0].Rate != 20 || math.Abs(brackets[0].NetHT-130) > 1e-9 {
		t.Errorf("bracket 0 = %+v, want rate 20 HT 130", brackets[0])
	}
	if brackets[1].Rate != 10 || math.Abs(brackets[1].NetHT-40) > 1e-9 {
		t.Errorf("bracket 1 = %+v, want rate 10 HT 40", brackets[1])
	}
	if math.Abs(brackets[0].VatAmount()-26) > 1e-9 {
		t.Errorf("VAT at 20%% = %v, want 26", brackets[0].VatAmount())
	}
}

func TestAllocateProportionalDiscount(t *testing.T) {
	// Two brackets (100 @ 20%, 50 @ 10%) with a 15 global discount must
	// come out as 90 and 45.
	inv := models.Invoice{
		Number:         "1",
		DiscountAmount: 15,
		Items: []models.LineItem{
			{Quantity: 1, UnitPrice: 100, VatRate: 20},
			{Quantity: 1, UnitPrice: 50, VatRate: 10},
		},
	}

	brackets := Allocate(&inv)
	if len(brackets) != 2 {
		t.Fatalf("got %d brackets, want 2", len(brackets))
	}
	if math.Abs(brackets[0].NetHT-90) > 1e-9 {
		t.Errorf("bracket @20%% HT = %v, want 90", brackets[0].NetHT)
	}
	if math.Abs(brackets[1].NetHT-45) > 1e-9 {
		t.Errorf("bracket @10%% HT = %v, want 45", brackets[1].NetHT)
	}
}

func TestAllocateLineDiscounts(t *testing.T) {
	inv := models.Invoice{
		Number: "1",
		Items: []models.LineItem{
			{Quantity: 1, UnitPrice: 100, VatRate: 20, Discount: 10, DiscountType: models.DiscountPercentage},
			{Quantity: 1, UnitPrice: 50, VatRate: 20, Discount: 5, DiscountType: models.DiscountFixed},
		},
	}

	brackets := Allocate(&inv)
	if len(brackets) != 1 {
		t.Fatalf("got %d brackets, want 1", len(brackets))
	}
	// 100*0.9 + (50-5) = 135
	if math.Abs(brackets[0].NetHT-135) > 1e-9 {
		t.Errorf("HT = %v, want 135", brackets[0].NetHT)
	}
}

func TestAllocateConservation(t *testing.T) {
	// Property: sum of bracket HT equals total line HT minus the global
	// discount, for random item sets and discounts.
	rates := []float64{20, 10, 5.5, 2.1, 0}
	rng := rand.New(rand.NewSource(42))

	for trial := 0; trial < 200; trial++ {
		n := 1 + rng.Intn(8)
		items := make([]models.LineItem, n)
		var total float64
		for i := range items {
			items[i] = models.LineItem{
				Quantity:  float64(1 + rng.Intn(5)),
				UnitPrice: 1 + rng.Float64()*500,
				VatRate:   rates[rng.Intn(len(rates))],
			}
			total += items[i].Quantity * items[i].UnitPrice
		}
		discount := rng.Float64() * total * 0.9

		inv := models.Invoice{Number: "p", DiscountAmount: discount, Items: items}
		var sum float64
		for _, b := range Allocate(&inv) {
			sum += b.NetHT
		}
		if math.Abs(sum-(total-discount)) > 0.01 {
			t.Fatalf("trial %d: brackets sum to %v, want %v (total %v, discount %v)",
				trial, sum, total-discount, total, discount)
		}
	}
}

func TestAllocateDropsNonPositiveBrackets(t *testing.T) {
	// The discount wipes out the whole total, so no ledger rows remain.
	inv := models.Invoice{
		Number:         "1",
		DiscountAmount: 150,
		Items: []models.LineItem{
			{Quantity: 1, UnitPrice: 100, VatRate: 20},
			{Quantity: 1, UnitPrice: 50, VatRate: 10},
		},
	}

	if brackets := Allocate(&inv); len(brackets) != 0 {
		t.Errorf("got %d brackets, want 0", len(brackets))
	}
}

func TestAllocateDegradedModeWithoutItems(t *testing.T) {
	inv := models.Invoice{
		Number:        "1",
		FinalTotalHT:  "100",
		FinalTotalVAT: 20.0,
	}

	brackets := Allocate(&inv)
	if len(brackets) != 1 {
		t.Fatalf("got %d brackets, want 1", len(brackets))
	}
	b := brackets[0]
	if !b.HasFixedVAT {
		t.Fatal("degraded bracket must carry the VAT amount verbatim")
	}
	if math.Abs(b.NetHT-100) > 1e-9 || math.Abs(b.VatAmount()-20) > 1e-9 {
		t.Errorf("bracket = %+v, want HT 100 VAT 20", b)
	}
	if b.Account() != "445710" {
		t.Errorf("degraded bracket account = %s, want 445710", b.Account())
	}
}

func TestVatAccountMap(t *testing.T) {
	tests := []struct {
		rate float64
		want string
	}{
		{20, "445710"},
		{10, "445711"},
		{5.5, "445712"},
		{2.1, "445713"},
		{0, "445714"},
		{8.5, "445710"}, // off-map rate falls back to the default account
	}
	for _, tt := range tests {
		b := VatBracket{Rate: tt.rate, NetHT: 1}
		if got := b.Account(); got != tt.want {
			t.Errorf("account for rate %v = %s, want %s", tt.rate, got, tt.want)
		}
	}
}
