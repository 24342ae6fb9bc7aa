package fee

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ruleDrBudiScaling = FeeRule{ID: 1, DoctorIDs: []int{drBudi}, TreatmentTypes: []string{"Scaling"}, FeePercentage: 40}

func TestAggregate_ScenarioLunas(t *testing.T) {
	details, totals := Aggregate(Input{
		Lines:    []BillableLine{{ID: "t1", Name: "Scaling", UnitPrice: 200000, Quantity: 1}},
		DoctorID: drBudi,
		Catalog:  []FeeRule{ruleDrBudiScaling},
		Payment:  PaymentState{Status: StatusLunas},
	})

	require.Len(t, details, 1)
	assert.Equal(t, 200000.0, details[0].FinalPrice)
	assert.Equal(t, 80000.0, details[0].CalculatedFee)
	assert.Equal(t, 80000.0, totals.TotalFee)
	assert.Equal(t, 40.0, totals.AverageFeePercentage)
}

func TestAggregate_ScenarioDP(t *testing.T) {
	details, _ := Aggregate(Input{
		Lines:    []BillableLine{{ID: "t1", Name: "Scaling", UnitPrice: 200000, Quantity: 1}},
		DoctorID: drBudi,
		Catalog:  []FeeRule{ruleDrBudiScaling},
		Payment:  PaymentState{Status: StatusDP, DPAmount: 150000},
	})

	require.Len(t, details, 1)
	assert.InDelta(t, 50000, details[0].FeeBase, 1e-6)
	assert.InDelta(t, 20000, details[0].CalculatedFee, 1e-6)
}

func TestAggregate_ScenarioDPTwoLines(t *testing.T) {
	details, totals := Aggregate(Input{
		Lines: []BillableLine{
			{ID: "t1", Name: "Scaling", UnitPrice: 300000, Quantity: 1},
			{ID: "t2", Name: "Tambal Gigi", UnitPrice: 100000, Quantity: 1},
		},
		DoctorID: drBudi,
		Catalog:  []FeeRule{{ID: 2, IsDefault: true, FeePercentage: 10}},
		Payment:  PaymentState{Status: StatusDP, DPAmount: 100000},
	})

	require.Len(t, details, 2)
	assert.InDelta(t, 225000, details[0].FeeBase, 1e-6)
	assert.InDelta(t, 75000, details[1].FeeBase, 1e-6)
	assert.Equal(t, 400000.0, totals.TotalFinalPrice)
	assert.InDelta(t, 30000, totals.TotalFee, 1e-6)
}

func TestAggregate_ScenarioDiscountWithZeroOverride(t *testing.T) {
	overrides, ok := Overrides{}.Set("t1", 0)
	require.True(t, ok)

	details, totals := Aggregate(Input{
		Lines: []BillableLine{{
			ID: "t1", Name: "Scaling", UnitPrice: 100000, Quantity: 1,
			DiscountValue: 20, DiscountType: DiscountPercentage,
		}},
		DoctorID:  drBudi,
		Catalog:   []FeeRule{ruleDrBudiScaling},
		Overrides: overrides,
		Payment:   PaymentState{Status: StatusLunas},
	})

	require.Len(t, details, 1)
	assert.Equal(t, 80000.0, details[0].FinalPrice)
	assert.Zero(t, details[0].CalculatedFee)
	assert.True(t, details[0].IsManualOverride)
	assert.Zero(t, totals.TotalFee)
}

func TestAggregate_EmptyInputs(t *testing.T) {
	details, totals := Aggregate(Input{DoctorID: drBudi})
	assert.Empty(t, details)
	assert.Equal(t, VisitTotals{}, totals)

	details, totals = Aggregate(Input{
		Lines: []BillableLine{{ID: "t1", Name: "Scaling", UnitPrice: 100000}},
	})
	assert.Empty(t, details)
	assert.Equal(t, VisitTotals{}, totals)
}

func TestAggregate_NoRules(t *testing.T) {
	details, totals := Aggregate(Input{
		Lines:    []BillableLine{{ID: "t1", Name: "Scaling", UnitPrice: 100000, Quantity: 2}},
		DoctorID: drBudi,
	})

	require.Len(t, details, 1)
	assert.Equal(t, "no applicable rule", details[0].RuleDescription)
	assert.Zero(t, details[0].CalculatedFee)
	assert.Equal(t, 200000.0, totals.TotalFinalPrice)
	assert.Zero(t, totals.AverageFeePercentage)
	assert.Equal(t, []string{"t1"}, Unmatched(details))
}

func TestAggregate_ZeroPriceLines(t *testing.T) {
	_, totals := Aggregate(Input{
		Lines:    []BillableLine{{ID: "t1", Name: "Konsultasi", UnitPrice: 0, Quantity: 1}},
		DoctorID: drBudi,
		Catalog:  []FeeRule{{ID: 1, IsDefault: true, FeePercentage: 50}},
		Payment:  PaymentState{Status: StatusDP, DPAmount: 10000},
	})
	assert.Zero(t, totals.AverageFeePercentage)
	assert.Zero(t, totals.TotalFee)
}

func TestAggregate_Idempotent(t *testing.T) {
	overrides, _ := Overrides{}.Set("t2", 12.5)
	in := Input{
		Lines: []BillableLine{
			{ID: "t1", Name: "Scaling", Category: "gigi", UnitPrice: 175000, Quantity: 2, DiscountValue: 15, DiscountType: DiscountPercentage},
			{ID: "t2", Name: "Rontgen", Category: "lab", UnitPrice: 90000, Quantity: 1, DiscountValue: 10000, DiscountType: DiscountNominal},
			{ID: "t3", Name: "Konsultasi", UnitPrice: 50000, Quantity: 1},
		},
		DoctorID:  drBudi,
		Catalog:   []FeeRule{ruleDrBudiScaling, {ID: 2, Category: "lab", FeePercentage: 5}, {ID: 3, IsDefault: true, FeePercentage: 10}},
		Overrides: overrides,
		Payment:   PaymentState{Status: StatusDP, DPAmount: 123456},
	}

	d1, t1 := Aggregate(in)
	d2, t2 := Aggregate(in)

	b1, err := json.Marshal(struct {
		D []TreatmentFeeDetail
		T VisitTotals
	}{d1, t1})
	require.NoError(t, err)
	b2, err := json.Marshal(struct {
		D []TreatmentFeeDetail
		T VisitTotals
	}{d2, t2})
	require.NoError(t, err)
	assert.Equal(t, b1, b2)
}

func TestAggregate_RuleWithoutTreatmentListAppliesAcrossCategories(t *testing.T) {
	details, totals := Aggregate(Input{
		Lines:    []BillableLine{{ID: "t1", Name: "Scaling", Category: "gigi", UnitPrice: 200000, Quantity: 1}},
		DoctorID: drBudi,
		Catalog:  []FeeRule{{ID: 4, Category: "lab", FeePercentage: 15}},
		Payment:  PaymentState{Status: StatusLunas},
	})

	require.Len(t, details, 1)
	assert.Equal(t, 15.0, details[0].ResolvedFeePercentage)
	assert.InDelta(t, 30000, details[0].CalculatedFee, 1e-6)
	assert.Equal(t, "general rule: 15%", details[0].RuleDescription)
	require.NotNil(t, details[0].RuleID)
	assert.Equal(t, 4, *details[0].RuleID)
	assert.InDelta(t, 30000, totals.TotalFee, 1e-6)
}

func TestAggregate_FeeBaseMatchesPaymentAdjuster(t *testing.T) {
	lines := []BillableLine{
		{ID: "t1", Name: "Scaling", UnitPrice: 300000, Quantity: 1},
		{ID: "t2", Name: "Tambal Gigi", UnitPrice: 50000, Quantity: 2, DiscountValue: 10, DiscountType: DiscountPercentage},
	}
	for _, payment := range []PaymentState{
		{Status: StatusLunas},
		{Status: StatusDP, DPAmount: 120000},
	} {
		details, _ := Aggregate(Input{
			Lines:    lines,
			DoctorID: drBudi,
			Catalog:  []FeeRule{{ID: 1, IsDefault: true, FeePercentage: 10}},
			Payment:  payment,
		})
		priced := PriceLines(lines)
		require.Len(t, details, len(priced))
		for i, line := range priced {
			assert.Equal(t, FeeBase(line, priced, payment), details[i].FeeBase, "%s %s", payment.Status, line.ID)
		}
	}
}
