package domain

import "testing"

func TestDefaultTaxonomy_Dimensions(t *testing.T) {
	tax := DefaultTaxonomy()

	dims := tax.Dimensions()
	want := []Dimension{
		DimIndustry, DimCompanySize, DimBusinessModel,
		DimGrowthStage, DimKeyChallenges, DimCoreStrategies,
	}
	if len(dims) != len(want) {
		t.Fatalf("expected %d dimensions, got %d", len(want), len(dims))
	}
	for i, d := range want {
		if dims[i] != d {
			t.Errorf("dims[%d] = %q, expected %q", i, dims[i], d)
		}
	}
}

func TestTaxonomy_Contains(t *testing.T) {
	tax := DefaultTaxonomy()

	tests := []struct {
		dim   Dimension
		value string
		want  bool
	}{
		{DimIndustry, "Technology", true},
		{DimIndustry, "technology", false}, // case-sensitive
		{DimIndustry, "Quantum Computing", false},
		{DimGrowthStage, "Scaling", true},
		{DimCoreStrategies, "Blue Ocean Strategy", true},
		{Dimension("unknown"), "Technology", false},
	}
	for _, tc := range tests {
		if got := tax.Contains(tc.dim, tc.value); got != tc.want {
			t.Errorf("Contains(%s, %q) = %v, expected %v", tc.dim, tc.value, got, tc.want)
		}
	}
}

func TestTaxonomy_IsSetValued(t *testing.T) {
	tax := DefaultTaxonomy()

	if tax.IsSetValued(DimIndustry) {
		t.Error("industry should be scalar")
	}
	if !tax.IsSetValued(DimKeyChallenges) {
		t.Error("key_challenges should be set-valued")
	}
	if !tax.IsSetValued(DimCoreStrategies) {
		t.Error("core_strategies should be set-valued")
	}
}

func TestTaxonomy_ValuesForCopies(t *testing.T) {
	tax := DefaultTaxonomy()

	vals := tax.ValuesFor(DimCompanySize)
	if len(vals) == 0 {
		t.Fatal("expected non-empty values")
	}
	vals[0] = "mutated"

	again := tax.ValuesFor(DimCompanySize)
	if again[0] == "mutated" {
		t.Error("ValuesFor must return a copy, not the backing slice")
	}
}

func TestTaxonomy_ValuesForUnknown(t *testing.T) {
	tax := DefaultTaxonomy()
	if vals := tax.ValuesFor(Dimension("nope")); vals != nil {
		t.Errorf("expected nil for unknown dimension, got %v", vals)
	}
}
