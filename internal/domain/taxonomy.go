package domain

// Dimension identifies one axis of the business category taxonomy.
type Dimension string

// The six dimensions every case study is categorized along.
const (
	DimIndustry       Dimension = "industry"
	DimCompanySize    Dimension = "company_size"
	DimBusinessModel  Dimension = "business_model"
	DimGrowthStage    Dimension = "growth_stage"
	DimKeyChallenges  Dimension = "key_challenges"
	DimCoreStrategies Dimension = "core_strategies"
)

// Taxonomy is the fixed set of business dimensions and their allowed values.
// It is constructed once at startup and injected into every component that
// needs it; nothing reads it as ambient package state. Immutable after
// construction, safe for concurrent use.
type Taxonomy struct {
	order     []Dimension
	values    map[Dimension][]string
	members   map[Dimension]map[string]struct{}
	setValued map[Dimension]bool
}

// NewTaxonomy builds a taxonomy from an ordered dimension list, the allowed
// values per dimension, and the subset of dimensions that hold a set of
// values per case study (the rest hold a single scalar value).
func NewTaxonomy(order []Dimension, values map[Dimension][]string, setValued []Dimension) Taxonomy {
	t := Taxonomy{
		order:     make([]Dimension, len(order)),
		values:    make(map[Dimension][]string, len(values)),
		members:   make(map[Dimension]map[string]struct{}, len(values)),
		setValued: make(map[Dimension]bool, len(setValued)),
	}
	copy(t.order, order)
	for dim, vals := range values {
		vv := make([]string, len(vals))
		copy(vv, vals)
		t.values[dim] = vv

		m := make(map[string]struct{}, len(vals))
		for _, v := range vals {
			m[v] = struct{}{}
		}
		t.members[dim] = m
	}
	for _, dim := range setValued {
		t.setValued[dim] = true
	}
	return t
}

// Dimensions returns the dimension names in canonical order.
func (t Taxonomy) Dimensions() []Dimension {
	out := make([]Dimension, len(t.order))
	copy(out, t.order)
	return out
}

// ValuesFor returns the allowed values for a dimension, in declaration order.
// Unknown dimensions yield nil.
func (t Taxonomy) ValuesFor(dim Dimension) []string {
	vals, ok := t.values[dim]
	if !ok {
		return nil
	}
	out := make([]string, len(vals))
	copy(out, vals)
	return out
}

// Contains reports whether value is an allowed member of dimension.
func (t Taxonomy) Contains(dim Dimension, value string) bool {
	m, ok := t.members[dim]
	if !ok {
		return false
	}
	_, ok = m[value]
	return ok
}

// IsSetValued reports whether a case study stores a set of values for the
// dimension (key challenges, core strategies) rather than a single scalar.
func (t Taxonomy) IsSetValued(dim Dimension) bool {
	return t.setValued[dim]
}

// DefaultTaxonomy returns the built-in business strategy taxonomy.
func DefaultTaxonomy() Taxonomy {
	return NewTaxonomy(
		[]Dimension{
			DimIndustry, DimCompanySize, DimBusinessModel,
			DimGrowthStage, DimKeyChallenges, DimCoreStrategies,
		},
		map[Dimension][]string{
			DimIndustry: {
				"Technology", "Healthcare", "Finance", "Retail", "Manufacturing",
				"Education", "Entertainment", "Transportation", "Energy", "Real Estate",
				"Hospitality", "Agriculture", "Construction", "Telecommunications", "Media",
			},
			DimCompanySize: {
				"Startup", "Small Business", "Medium Business", "Large Business",
				"Enterprise", "Micro-Enterprise", "Unicorn",
			},
			DimBusinessModel: {
				"B2B", "B2C", "B2B2C", "C2C", "B2G", "D2C", "Marketplace/Platform",
				"Freemium", "Subscription", "SaaS", "PaaS", "IaaS", "Hardware/Product",
				"Service-Based", "Franchise", "Manufacturing", "Retail", "Wholesale",
			},
			DimGrowthStage: {
				"Pre-Seed/Idea Stage", "Seed/Startup", "Early Growth", "Scaling",
				"Maturity", "Expansion", "Diversification", "Consolidation",
				"Turnaround/Restructuring", "Declining", "Exit Preparation",
			},
			DimKeyChallenges: {
				"Funding/Capital Access", "Cash Flow Management", "Market Entry",
				"Customer Acquisition", "Customer Retention", "Product Development",
				"Scaling Operations", "Talent Acquisition/Retention", "Competition",
				"Regulatory Compliance", "Technology Adoption", "Digital Transformation",
				"Supply Chain Optimization", "Cost Reduction", "Internationalization",
				"Brand Development", "Innovation Management", "Organizational Restructuring",
				"Merger/Acquisition Integration", "Succession Planning", "Crisis Management",
			},
			DimCoreStrategies: {
				"Cost Leadership", "Value-Based Pricing", "Differentiation",
				"Market Focus/Niche", "Diversification", "Integration",
				"First Mover Advantage", "Fast Follower", "Growth Through Acquisition",
				"Organic Growth", "Network Effects", "Ecosystem Building",
				"Disruptive Innovation", "Blue Ocean Strategy", "Strategic Alliances/Partnerships",
				"Licensing/Franchising", "Market Penetration", "Customer Experience",
				"Technological Leadership", "Sustainable/Green Strategy",
				"Digital Transformation", "Platform Strategy", "Lean Operations", "Agile Methodology",
			},
		},
		[]Dimension{DimKeyChallenges, DimCoreStrategies},
	)
}
