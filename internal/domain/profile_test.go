package domain

import "testing"

func TestNewProfile_DropsValuesOutsideTaxonomy(t *testing.T) {
	tax := DefaultTaxonomy()

	p := NewProfile(tax, map[string][]string{
		"industry":     {"Technology", "Underwater Basket Weaving", "Finance"},
		"growth_stage": {"Scaling"},
		"moonphase":    {"Full"}, // unknown dimension
	})

	got := p.Values(DimIndustry)
	if len(got) != 2 || got[0] != "Technology" || got[1] != "Finance" {
		t.Errorf("expected hallucinated value dropped, got %v", got)
	}
	if vals := p.Values(Dimension("moonphase")); len(vals) != 0 {
		t.Errorf("unknown dimension must be ignored, got %v", vals)
	}
}

func TestNewProfile_MembershipInvariant(t *testing.T) {
	tax := DefaultTaxonomy()

	p := NewProfile(tax, map[string][]string{
		"industry":        {"Technology", "Healthcare"},
		"company_size":    {"Startup", "bogus"},
		"key_challenges":  {"Competition", "Market Entry", "nonsense"},
		"core_strategies": {"Differentiation"},
	})

	for _, dim := range tax.Dimensions() {
		for _, v := range p.Values(dim) {
			if !tax.Contains(dim, v) {
				t.Errorf("profile value %q not in taxonomy for %s", v, dim)
			}
		}
	}
}

func TestNewProfile_CapsAtThreeAndDeduplicates(t *testing.T) {
	tax := DefaultTaxonomy()

	p := NewProfile(tax, map[string][]string{
		"key_challenges": {
			"Competition", "Competition", "Market Entry",
			"Customer Acquisition", "Customer Retention",
		},
	})

	got := p.Values(DimKeyChallenges)
	if len(got) != MaxValuesPerDimension {
		t.Fatalf("expected %d values, got %d: %v", MaxValuesPerDimension, len(got), got)
	}
	want := []string{"Competition", "Market Entry", "Customer Acquisition"}
	for i, v := range want {
		if got[i] != v {
			t.Errorf("values[%d] = %q, expected %q", i, got[i], v)
		}
	}
}

func TestCanonicalText_DimensionOrder(t *testing.T) {
	tax := DefaultTaxonomy()

	p := NewProfile(tax, map[string][]string{
		"core_strategies": {"Differentiation", "Network Effects"},
		"industry":        {"Technology"},
		"growth_stage":    {"Scaling"},
	})

	want := "industry: Technology. growth stage: Scaling. " +
		"core strategies: Differentiation, Network Effects"
	if got := p.CanonicalText(); got != want {
		t.Errorf("canonical text:\n got  %q\n want %q", got, want)
	}
}

func TestCanonicalText_Idempotent(t *testing.T) {
	tax := DefaultTaxonomy()

	// Same mapping, different construction order.
	a := NewProfile(tax, map[string][]string{
		"industry":     {"Technology"},
		"growth_stage": {"Scaling"},
	})
	b := NewProfile(tax, map[string][]string{
		"growth_stage": {"Scaling"},
		"industry":     {"Technology"},
	})

	if a.CanonicalText() != b.CanonicalText() {
		t.Errorf("canonical text differs for equal profiles: %q vs %q",
			a.CanonicalText(), b.CanonicalText())
	}
}

func TestCanonicalText_EmptyProfile(t *testing.T) {
	tax := DefaultTaxonomy()

	p := EmptyProfile(tax)
	if !p.IsEmpty() {
		t.Error("EmptyProfile must be empty")
	}
	if got := p.CanonicalText(); got != "" {
		t.Errorf("expected empty canonical text, got %q", got)
	}
}

func TestProfile_ValuesCopies(t *testing.T) {
	tax := DefaultTaxonomy()

	p := NewProfile(tax, map[string][]string{"industry": {"Technology"}})
	vals := p.Values(DimIndustry)
	vals[0] = "mutated"

	if p.Values(DimIndustry)[0] != "Technology" {
		t.Error("Values must return a copy, not the backing slice")
	}
}
