// Package merge reconciles the records produced by the extraction strategies
// into one record per document, one value per field.
package merge

import (
	"log"
	"sort"
	"strings"

	"docfill/internal/country"
	"docfill/internal/domain"
)

// basePrecedence ranks strategies when choosing the base record; lower wins.
var basePrecedence = map[domain.Method]int{
	domain.MethodVisionLLM:      0,
	domain.MethodOCRLLM:         1,
	domain.MethodMRZ:            2,
	domain.MethodManualMRZ:      3,
	domain.MethodOCRPattern:     4,
	domain.MethodSampleFallback: 5,
}

var nameFields = map[string]bool{
	domain.FieldSurname:    true,
	domain.FieldGivenNames: true,
}

var mrzDateFields = map[string]bool{
	domain.FieldDateOfBirth: true,
	domain.FieldExpiryDate:  true,
	domain.FieldIssueDate:   true,
}

// Merger combines candidate records field by field.
type Merger struct {
	heuristics Heuristics
}

// NewMerger creates a Merger with the given heuristics.
func NewMerger(h Heuristics) *Merger {
	return &Merger{heuristics: h}
}

// candidate is one input record with its position in the caller's list.
type candidate struct {
	rec   *domain.ExtractedRecord
	index int
}

func isMRZ(m domain.Method) bool {
	return m == domain.MethodMRZ || m == domain.MethodManualMRZ
}

func rank(m domain.Method) int {
	if r, ok := basePrecedence[m]; ok {
		return r
	}
	return len(basePrecedence)
}

// Merge reconciles candidates into one record. Nil entries are ignored. The
// result depends only on the candidates and their order.
func (m *Merger) Merge(candidates []*domain.ExtractedRecord) *domain.MergedRecord {
	var present []candidate
	for i, c := range candidates {
		if c != nil {
			present = append(present, candidate{rec: c, index: i})
		}
	}

	switch len(present) {
	case 0:
		return &domain.MergedRecord{Fields: map[string]*string{}, Method: string(domain.MethodNone)}
	case 1:
		only := present[0].rec.Clone()
		return &domain.MergedRecord{Fields: only.Fields, Confidence: only.Confidence, Method: string(only.Method)}
	}

	ranked := make([]candidate, len(present))
	copy(ranked, present)
	sort.SliceStable(ranked, func(i, j int) bool {
		return rank(ranked[i].rec.Method) < rank(ranked[j].rec.Method)
	})

	var mrz *domain.ExtractedRecord
	for _, c := range ranked {
		if isMRZ(c.rec.Method) {
			mrz = c.rec
			break
		}
	}

	suspicious := false
	if mrz != nil && hasOtherThanMRZ(ranked) {
		suspicious = m.heuristics.Suspicious(mrz.Get(domain.FieldSurname), mrz.Get(domain.FieldGivenNames))
		if suspicious {
			log.Printf("merge.Merger.Merge: MRZ names %q/%q look misread, using other candidates",
				mrz.Get(domain.FieldSurname), mrz.Get(domain.FieldGivenNames))
		}
	}

	fields := make(map[string]*string)
	contributed := make(map[int]bool)
	for _, name := range unionFields(ranked) {
		src := m.pick(name, ranked, mrz, suspicious)
		if src == nil {
			fields[name] = nil
			continue
		}
		v := src.rec.Get(name)
		fields[name] = &v
		contributed[src.index] = true
	}

	reconcileCountry(fields)

	return &domain.MergedRecord{
		Fields:     fields,
		Confidence: mergedConfidence(ranked, suspicious),
		Method:     methodLabel(present, contributed),
	}
}

// Trusted reports whether an MRZ record can stand on its own: it was read
// with more than minConfidence and its names do not look misread.
func (m *Merger) Trusted(rec *domain.ExtractedRecord, minConfidence float64) bool {
	if rec == nil || !isMRZ(rec.Method) || rec.Confidence <= minConfidence {
		return false
	}
	return !m.heuristics.Suspicious(rec.Get(domain.FieldSurname), rec.Get(domain.FieldGivenNames))
}

func hasOtherThanMRZ(cs []candidate) bool {
	for _, c := range cs {
		if !isMRZ(c.rec.Method) {
			return true
		}
	}
	return false
}

// pick chooses the candidate whose value of field wins. ranked is ordered
// by base precedence.
func (m *Merger) pick(field string, ranked []candidate, mrz *domain.ExtractedRecord, suspicious bool) *candidate {
	switch {
	case nameFields[field] && suspicious:
		return firstWith(field, ranked, func(c candidate) bool { return !isMRZ(c.rec.Method) })

	case field == domain.FieldPassportNumber:
		var best *candidate
		for i := range ranked {
			v := ranked[i].rec.Get(field)
			if v == "" {
				continue
			}
			if best == nil || len(v) > len(best.rec.Get(field)) {
				best = &ranked[i]
			}
		}
		return best

	case mrzDateFields[field] && mrz != nil && mrz.Has(field):
		return firstWith(field, ranked, func(c candidate) bool { return c.rec == mrz })
	}

	return firstWith(field, ranked, func(candidate) bool { return true })
}

func firstWith(field string, ranked []candidate, ok func(candidate) bool) *candidate {
	for i := range ranked {
		if ok(ranked[i]) && ranked[i].rec.Has(field) {
			return &ranked[i]
		}
	}
	return nil
}

func unionFields(cs []candidate) []string {
	seen := make(map[string]bool)
	var names []string
	for _, c := range cs {
		for name := range c.rec.Fields {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	sort.Strings(names)
	return names
}

// reconcileCountry makes country_code an ISO-3 code and nationality its
// display name whenever either identifies a known country.
func reconcileCountry(fields map[string]*string) {
	get := func(k string) string {
		if v := fields[k]; v != nil {
			return *v
		}
		return ""
	}

	code := ""
	if c := get(domain.FieldCountryCode); c != "" {
		code = country.CodeFor(c)
	}
	if code == "" {
		if n := get(domain.FieldNationality); n != "" {
			code = country.CodeFor(n)
		}
	}
	if code == "" {
		return
	}

	name := country.NameFor(code)
	fields[domain.FieldCountryCode] = &code
	fields[domain.FieldNationality] = &name
}

func mergedConfidence(ranked []candidate, suspicious bool) float64 {
	best := 0.0
	for _, c := range ranked {
		if suspicious && isMRZ(c.rec.Method) {
			continue
		}
		if c.rec.Confidence > best {
			best = c.rec.Confidence
		}
	}
	return best
}

// methodLabel joins the short labels of contributing candidates in input
// order, e.g. "mrz+llm". A single contributor keeps its full method name.
func methodLabel(present []candidate, contributed map[int]bool) string {
	var contributors []domain.Method
	for _, c := range present {
		if contributed[c.index] {
			contributors = append(contributors, c.rec.Method)
		}
	}
	switch len(contributors) {
	case 0:
		return string(domain.MethodNone)
	case 1:
		return string(contributors[0])
	}

	var labels []string
	seen := make(map[string]bool)
	for _, m := range contributors {
		l := m.ShortLabel()
		if !seen[l] {
			seen[l] = true
			labels = append(labels, l)
		}
	}
	return strings.Join(labels, "+")
}
