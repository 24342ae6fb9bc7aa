package fee

// Input adalah seluruh masukan satu perhitungan fee kunjungan.
type Input struct {
	Lines     []BillableLine
	DoctorID  int
	Catalog   []FeeRule
	Overrides Overrides
	Payment   PaymentState
}

// Aggregate menghitung tabel fee per baris dan total kunjungan.
// Baris dihitung ulang harganya (Priced) sebelum dipakai, jadi pemanggil
// boleh mengirim baris mentah. Tanpa baris atau tanpa dokter hasilnya
// kosong dengan total nol.
func Aggregate(in Input) ([]TreatmentFeeDetail, VisitTotals) {
	details := []TreatmentFeeDetail{}
	if len(in.Lines) == 0 || in.DoctorID <= 0 {
		return details, VisitTotals{}
	}

	lines := PriceLines(in.Lines)
	total := sumFinalPrice(lines)

	var totals VisitTotals
	for _, line := range lines {
		match, matched := BestRule(in.DoctorID, line, in.Catalog)
		res := Resolve(line.ID, match, matched, in.Overrides)

		base := feeBase(line.FinalPrice, total, in.Payment)
		calculated := base * res.Percentage / 100

		details = append(details, TreatmentFeeDetail{
			LineID:                line.ID,
			LineName:              line.Name,
			FinalPrice:            line.FinalPrice,
			ResolvedFeePercentage: res.Percentage,
			FeeBase:               base,
			CalculatedFee:         calculated,
			RuleID:                res.RuleID,
			RuleDescription:       res.Description,
			IsManualOverride:      res.IsManualOverride,
		})
		totals.TotalFinalPrice += line.FinalPrice
		totals.TotalFee += calculated
	}

	if totals.TotalFinalPrice > 0 {
		totals.AverageFeePercentage = totals.TotalFee / totals.TotalFinalPrice * 100
	}
	return details, totals
}

// Unmatched mengembalikan id baris yang tidak punya aturan maupun override,
// supaya UI bisa menandai baris tersebut.
func Unmatched(details []TreatmentFeeDetail) []string {
	var ids []string
	for _, d := range details {
		if d.RuleID == nil && !d.IsManualOverride {
			ids = append(ids, d.LineID)
		}
	}
	return ids
}
