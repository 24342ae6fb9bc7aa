package fee

// DiscountResult adalah hasil ResolveDiscount untuk satu baris.
type DiscountResult struct {
	Subtotal       float64
	DiscountAmount float64
	FinalPrice     float64
}

// ResolveDiscount menghitung subtotal, potongan, dan harga akhir satu baris.
// Input di luar batas dipotong (clamp), tidak pernah menghasilkan error:
// persen ke [0,100], nominal ke [0,subtotal]. Tipe diskon yang tidak dikenal
// dianggap tanpa diskon.
func ResolveDiscount(unitPrice float64, quantity int, discountValue float64, discountType DiscountType) DiscountResult {
	if unitPrice < 0 {
		unitPrice = 0
	}
	if quantity < 1 {
		quantity = 1
	}
	subtotal := unitPrice * float64(quantity)

	var discount float64
	switch discountType {
	case DiscountPercentage:
		discount = subtotal * clamp(discountValue, 0, 100) / 100
	case DiscountNominal:
		discount = clamp(discountValue, 0, subtotal)
	}
	discount = clamp(discount, 0, subtotal)

	final := subtotal - discount
	if final < 0 {
		final = 0
	}
	return DiscountResult{Subtotal: subtotal, DiscountAmount: discount, FinalPrice: final}
}

// Priced mengembalikan salinan baris dengan field turunan terisi.
func (l BillableLine) Priced() BillableLine {
	if l.Quantity < 1 {
		l.Quantity = 1
	}
	r := ResolveDiscount(l.UnitPrice, l.Quantity, l.DiscountValue, l.DiscountType)
	l.Subtotal = r.Subtotal
	l.DiscountAmount = r.DiscountAmount
	l.FinalPrice = r.FinalPrice
	return l
}

// PriceLines menjalankan Priced untuk setiap baris tanpa mengubah slice asal.
func PriceLines(lines []BillableLine) []BillableLine {
	out := make([]BillableLine, len(lines))
	for i, l := range lines {
		out[i] = l.Priced()
	}
	return out
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
