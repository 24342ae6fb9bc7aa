package fee

import "strings"

// Bobot skor aturan. Aturan dengan skor tertinggi menang; skor sama
// dimenangkan aturan yang muncul lebih dulu di katalog.
const (
	ScoreDoctorAndTreatment = 100
	ScoreDoctorOnly         = 50
	ScoreTreatmentOnly      = 40
	ScoreCategoryOnly       = 30
	ScoreDefaultOnly        = 10
	ScoreSpecificBonus      = 5

	specificMarker = "specific"
)

// MatchKind menjelaskan kombinasi yang membuat aturan cocok.
type MatchKind int

const (
	MatchNone MatchKind = iota
	MatchGeneric
	MatchDefault
	MatchCategory
	MatchTreatment
	MatchDoctor
	MatchDoctorAndTreatment
)

func (k MatchKind) String() string {
	switch k {
	case MatchDoctorAndTreatment:
		return "doctor + treatment rule"
	case MatchDoctor:
		return "doctor rule"
	case MatchTreatment:
		return "treatment rule"
	case MatchCategory:
		return "category rule"
	case MatchDefault:
		return "default rule"
	case MatchGeneric:
		return "general rule"
	default:
		return "no applicable rule"
	}
}

// Match adalah aturan terpilih beserta skornya.
type Match struct {
	Rule  FeeRule
	Score int
	Kind  MatchKind
}

// ScoreRule menilai satu aturan terhadap satu baris. ok=false berarti aturan
// tidak berlaku untuk dokter atau tindakan tersebut.
func ScoreRule(doctorID int, line BillableLine, rule FeeRule) (score int, kind MatchKind, ok bool) {
	doctorSpecific := containsInt(rule.DoctorIDs, doctorID)
	if len(rule.DoctorIDs) > 0 && !doctorSpecific && !rule.IsDefault {
		return 0, MatchNone, false
	}

	treatmentSpecific := containsString(rule.TreatmentTypes, line.Name)
	categoryMatch := rule.Category != "" && rule.Category == line.Category
	unscoped := len(rule.TreatmentTypes) == 0
	if !(unscoped || treatmentSpecific || categoryMatch || rule.IsDefault) {
		return 0, MatchNone, false
	}

	switch {
	case doctorSpecific && treatmentSpecific:
		score, kind = ScoreDoctorAndTreatment, MatchDoctorAndTreatment
	case doctorSpecific:
		score, kind = ScoreDoctorOnly, MatchDoctor
	case treatmentSpecific:
		score, kind = ScoreTreatmentOnly, MatchTreatment
	case categoryMatch:
		score, kind = ScoreCategoryOnly, MatchCategory
	case rule.IsDefault:
		score, kind = ScoreDefaultOnly, MatchDefault
	default:
		kind = MatchGeneric
	}
	if strings.Contains(strings.ToLower(rule.Description), specificMarker) {
		score += ScoreSpecificBonus
	}
	return score, kind, true
}

// BestRule memilih aturan terbaik untuk satu baris dari katalog.
// Urutan katalog menentukan pemenang saat skor sama, jadi pemanggil harus
// mengirim katalog dengan urutan yang stabil.
func BestRule(doctorID int, line BillableLine, catalog []FeeRule) (Match, bool) {
	var best Match
	found := false
	for _, rule := range catalog {
		score, kind, ok := ScoreRule(doctorID, line, rule)
		if !ok {
			continue
		}
		if !found || score > best.Score {
			best = Match{Rule: rule, Score: score, Kind: kind}
			found = true
		}
	}
	return best, found
}

func containsInt(ids []int, id int) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func containsString(names []string, name string) bool {
	for _, v := range names {
		if v == name {
			return true
		}
	}
	return false
}
