package fee

// DPShare mengembalikan bagian DP yang dibebankan ke satu baris,
// proporsional terhadap harga akhirnya. Bernilai 0 bila total harga akhir 0.
func DPShare(finalPrice, totalFinalPrice, dpAmount float64) float64 {
	if totalFinalPrice <= 0 {
		return 0
	}
	return finalPrice / totalFinalPrice * dpAmount
}

// FeeBase menghitung dasar pengenaan fee satu baris.
//   - lunas: harga akhir baris
//   - dp   : harga akhir dikurangi bagian DP baris tersebut, minimal 0
//
// Status lain diperlakukan seperti lunas.
func FeeBase(line BillableLine, allLines []BillableLine, payment PaymentState) float64 {
	return feeBase(line.FinalPrice, sumFinalPrice(allLines), payment)
}

// feeBase sama dengan FeeBase dengan total harga akhir yang sudah dihitung.
func feeBase(finalPrice, totalFinalPrice float64, payment PaymentState) float64 {
	if payment.Status != StatusDP {
		return finalPrice
	}
	return feeBaseDP(finalPrice, totalFinalPrice, payment.DPAmount)
}

func feeBaseDP(finalPrice, totalFinalPrice, dpAmount float64) float64 {
	base := finalPrice - DPShare(finalPrice, totalFinalPrice, dpAmount)
	if base < 0 {
		return 0
	}
	return base
}

// AmountPaid mengembalikan jumlah yang sudah dibayar untuk total tagihan.
func AmountPaid(totalTindakan float64, payment PaymentState) float64 {
	if payment.Status == StatusDP {
		return payment.DPAmount
	}
	return totalTindakan
}

// Outstanding mengembalikan sisa tagihan: total tagihan dikurangi yang sudah
// dibayar. Tidak ada pengecekan DP < total di sini; itu tugas validasi form,
// sehingga hasil negatif mungkin muncul bila validasi dilewati.
func Outstanding(totalTindakan float64, payment PaymentState) float64 {
	return totalTindakan - AmountPaid(totalTindakan, payment)
}

func sumFinalPrice(lines []BillableLine) float64 {
	var total float64
	for _, l := range lines {
		total += l.FinalPrice
	}
	return total
}
