package casestudy

import (
	"encoding/binary"
	"math"
	"strings"

	"github.com/kailas-cloud/casedex/internal/domain"
)

// Hash field names. Double-underscore fields are internal bookkeeping,
// the rest mirror the case study record.
const (
	fieldID         = "id"
	fieldTitle      = "title"
	fieldSummary    = "summary"
	fieldContent    = "content"
	fieldSourceURL  = "source_url"
	fieldSourceFile = "source_file"
	fieldVector     = "__vector"
	fieldVersion    = "__embedding_version"

	// tagSeparator joins multi-valued dimension values inside one TAG field.
	// "|" never appears in taxonomy values.
	tagSeparator = "|"
)

// buildHashFields converts a case study into a flat map[string]string for HSET.
// Dimension values are joined with tagSeparator so the TAG index matches any of them.
func buildHashFields(cs *domain.CaseStudy, vector []float32, version string) map[string]string {
	m := map[string]string{
		fieldID:         cs.ID,
		fieldTitle:      cs.Title,
		fieldSummary:    cs.Summary,
		fieldContent:    cs.Content,
		fieldSourceURL:  cs.SourceURL,
		fieldSourceFile: cs.SourceFile,
		fieldVector:     vectorToBytes(vector),
		fieldVersion:    version,
	}
	for _, dim := range cs.Profile.Taxonomy().Dimensions() {
		if vals := cs.Profile.Values(dim); len(vals) > 0 {
			m[string(dim)] = strings.Join(vals, tagSeparator)
		}
	}
	return m
}

// parseHashFields converts a flat hash map back into a case study.
// Unknown values are dropped by profile construction, so a record written
// under an older taxonomy degrades instead of failing.
func parseHashFields(id string, m map[string]string, tax domain.Taxonomy) domain.CaseStudy {
	raw := make(map[string][]string)
	for _, dim := range tax.Dimensions() {
		if joined, ok := m[string(dim)]; ok && joined != "" {
			raw[string(dim)] = strings.Split(joined, tagSeparator)
		}
	}

	if storedID := m[fieldID]; storedID != "" {
		id = storedID
	}

	return domain.CaseStudy{
		ID:         id,
		Title:      m[fieldTitle],
		Summary:    m[fieldSummary],
		Content:    m[fieldContent],
		SourceURL:  m[fieldSourceURL],
		SourceFile: m[fieldSourceFile],
		Profile:    domain.NewProfile(tax, raw),
	}
}

// vectorToBytes serializes []float32 to a binary string (4 bytes per float, little-endian).
func vectorToBytes(v []float32) string {
	buf := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return string(buf)
}

// bytesToVector deserializes a binary string back to []float32.
func bytesToVector(s string) []float32 {
	b := []byte(s)
	if len(b)%4 != 0 {
		return nil
	}
	v := make([]float32, len(b)/4)
	for i := range v {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return v
}
