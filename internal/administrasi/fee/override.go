package fee

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ClearOverride adalah input operator yang menghapus override satu baris.
const ClearOverride = "clear"

// Overrides memetakan id baris ke persentase fee yang diisi manual oleh
// operator. Nilainya tidak pernah diubah di tempat: Set dan Clear selalu
// mengembalikan map baru.
type Overrides map[string]float64

// Set mengembalikan salinan dengan override baru. Nilai di luar [0,100]
// ditolak; salinan tetap berisi nilai lama dan ok=false.
func (o Overrides) Set(lineID string, percentage float64) (Overrides, bool) {
	if percentage < 0 || percentage > 100 || math.IsNaN(percentage) {
		return o.clone(), false
	}
	next := o.clone()
	next[lineID] = percentage
	return next, true
}

// Clear mengembalikan salinan tanpa override untuk lineID.
func (o Overrides) Clear(lineID string) Overrides {
	next := o.clone()
	delete(next, lineID)
	return next
}

// Apply menerima input mentah dari form. String kosong atau "clear"
// menghapus override; angka di luar [0,100] atau teks tidak valid diabaikan.
func (o Overrides) Apply(lineID, input string) (Overrides, bool) {
	input = strings.TrimSpace(input)
	if input == "" || strings.EqualFold(input, ClearOverride) {
		return o.Clear(lineID), true
	}
	v, err := strconv.ParseFloat(strings.TrimSuffix(input, "%"), 64)
	if err != nil {
		return o.clone(), false
	}
	return o.Set(lineID, v)
}

func (o Overrides) Get(lineID string) (float64, bool) {
	v, ok := o[lineID]
	return v, ok
}

func (o Overrides) clone() Overrides {
	next := make(Overrides, len(o))
	for k, v := range o {
		next[k] = v
	}
	return next
}

// Resolution adalah persentase akhir untuk satu baris beserta asal-usulnya.
type Resolution struct {
	Percentage       float64
	Description      string
	RuleID           *int
	IsManualOverride bool
}

// Resolve menggabungkan hasil BestRule dengan override manual.
// Override selalu menang, termasuk override 0%.
func Resolve(lineID string, match Match, matched bool, overrides Overrides) Resolution {
	if pct, ok := overrides.Get(lineID); ok {
		return Resolution{
			Percentage:       pct,
			Description:      fmt.Sprintf("manual override: %s%%", formatPercent(pct)),
			IsManualOverride: true,
		}
	}
	if !matched {
		return Resolution{Description: MatchNone.String()}
	}
	id := match.Rule.ID
	return Resolution{
		Percentage:  match.Rule.FeePercentage,
		Description: describeMatch(match),
		RuleID:      &id,
	}
}

func describeMatch(m Match) string {
	desc := m.Kind.String()
	if m.Kind == MatchCategory {
		desc += " (" + m.Rule.Category + ")"
	}
	desc += ": " + formatPercent(m.Rule.FeePercentage) + "%"
	if m.Rule.Description != "" {
		desc += " - " + m.Rule.Description
	}
	return desc
}

func formatPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
