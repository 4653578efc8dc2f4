package domain

import "strings"

// MaxValuesPerDimension caps how many values a profile may carry per
// dimension, matching what the extractor prompt asks the model for.
const MaxValuesPerDimension = 3

// Profile is a structured selection of taxonomy values describing a business.
// Every value is guaranteed to be a member of the taxonomy's allowed set for
// its dimension; the invariant is enforced at construction, not downstream.
type Profile struct {
	tax    Taxonomy
	values map[Dimension][]string
}

// NewProfile builds a validated profile from raw dimension→values input.
// Values outside the taxonomy are silently dropped (the model hallucinating
// or a prompt injection proposing values must never reach store filters),
// duplicates are collapsed, and each dimension is capped at
// MaxValuesPerDimension. Unknown dimensions are ignored entirely.
func NewProfile(tax Taxonomy, raw map[string][]string) Profile {
	p := Profile{tax: tax, values: make(map[Dimension][]string)}
	for rawDim, vals := range raw {
		dim := Dimension(rawDim)
		if _, known := tax.members[dim]; !known {
			continue
		}
		seen := make(map[string]struct{}, len(vals))
		var kept []string
		for _, v := range vals {
			if !tax.Contains(dim, v) {
				continue
			}
			if _, dup := seen[v]; dup {
				continue
			}
			seen[v] = struct{}{}
			kept = append(kept, v)
			if len(kept) == MaxValuesPerDimension {
				break
			}
		}
		if len(kept) > 0 {
			p.values[dim] = kept
		}
	}
	return p
}

// EmptyProfile returns a profile with every taxonomy dimension unselected.
// Used as the fail-soft result when model output cannot be parsed.
func EmptyProfile(tax Taxonomy) Profile {
	return Profile{tax: tax, values: make(map[Dimension][]string)}
}

// Values returns the selected values for a dimension, possibly empty.
func (p Profile) Values(dim Dimension) []string {
	vals := p.values[dim]
	out := make([]string, len(vals))
	copy(out, vals)
	return out
}

// IsEmpty reports whether no dimension has any selected value.
func (p Profile) IsEmpty() bool {
	for _, vals := range p.values {
		if len(vals) > 0 {
			return false
		}
	}
	return true
}

// Taxonomy returns the taxonomy this profile was validated against.
func (p Profile) Taxonomy() Taxonomy {
	return p.tax
}

// CanonicalText renders the profile as deterministic embedding input:
// non-empty dimensions only, in taxonomy dimension order, each as
// "<dimension with spaces>: <comma-joined values>", joined by ". ".
// Equal profiles always render byte-identically, so identical profiles
// always embed identically.
func (p Profile) CanonicalText() string {
	var parts []string
	for _, dim := range p.tax.order {
		vals := p.values[dim]
		if len(vals) == 0 {
			continue
		}
		name := strings.ReplaceAll(string(dim), "_", " ")
		parts = append(parts, name+": "+strings.Join(vals, ", "))
	}
	return strings.Join(parts, ". ")
}
