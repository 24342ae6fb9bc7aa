package services

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c14220110/klinik-backend/internal/administrasi/fee"
	"github.com/c14220110/klinik-backend/internal/manajemen/models"
)

type memFeeRuleRepo struct {
	rules  map[int]models.FeeRule
	nextID int
	lists  int
}

func newMemFeeRuleRepo() *memFeeRuleRepo {
	return &memFeeRuleRepo{rules: map[int]models.FeeRule{}, nextID: 1}
}

func (m *memFeeRuleRepo) List(_ context.Context, includeDeleted bool) ([]models.FeeRule, error) {
	m.lists++
	out := []models.FeeRule{}
	for _, r := range m.rules {
		if includeDeleted || r.DeletedAt == nil {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].IDFeeRule < out[j].IDFeeRule })
	return out, nil
}

func (m *memFeeRuleRepo) Get(_ context.Context, id int) (*models.FeeRule, error) {
	r, ok := m.rules[id]
	if !ok || r.DeletedAt != nil {
		return nil, ErrFeeRuleNotFound
	}
	return &r, nil
}

func (m *memFeeRuleRepo) Insert(_ context.Context, rule models.FeeRule) (int64, error) {
	rule.IDFeeRule = m.nextID
	m.rules[rule.IDFeeRule] = rule
	m.nextID++
	return int64(rule.IDFeeRule), nil
}

func (m *memFeeRuleRepo) Update(_ context.Context, rule models.FeeRule) error {
	m.rules[rule.IDFeeRule] = rule
	return nil
}

func (m *memFeeRuleRepo) SoftDelete(_ context.Context, id int, at time.Time) error {
	r, ok := m.rules[id]
	if !ok || r.DeletedAt != nil {
		return ErrFeeRuleNotFound
	}
	r.DeletedAt = &at
	m.rules[id] = r
	return nil
}

type memCache struct {
	rules       []fee.FeeRule
	ok          bool
	invalidated int
}

func (c *memCache) Get(context.Context) ([]fee.FeeRule, bool, error) { return c.rules, c.ok, nil }

func (c *memCache) Set(_ context.Context, rules []fee.FeeRule) error {
	c.rules, c.ok = rules, true
	return nil
}

func (c *memCache) Invalidate(context.Context) error {
	c.rules, c.ok = nil, false
	c.invalidated++
	return nil
}

func newTestFeeRuleService() (*FeeRuleService, *memFeeRuleRepo, *memCache) {
	repo, cache := newMemFeeRuleRepo(), &memCache{}
	svc := NewFeeRuleService(repo, cache, zerolog.Nop())
	svc.now = func() time.Time { return time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC) }
	return svc, repo, cache
}

func TestCreateFeeRule_Validation(t *testing.T) {
	svc, _, _ := newTestFeeRuleService()
	ctx := context.Background()

	cases := []struct {
		name  string
		req   models.FeeRuleRequest
		err   error
		field string
	}{
		{"persen negatif", models.FeeRuleRequest{FeePercentage: -1}, ErrPersenFeeDiLuarBatas, "fee_percentage"},
		{"persen di atas 100", models.FeeRuleRequest{FeePercentage: 100.5}, ErrPersenFeeDiLuarBatas, "fee_percentage"},
		{"dokter nol", models.FeeRuleRequest{DoctorIDs: []int{0}, FeePercentage: 10}, ErrDokterTidakValid, "doctor_ids"},
		{"tindakan kosong", models.FeeRuleRequest{TreatmentTypes: []string{" "}, FeePercentage: 10}, ErrTindakanTidakValid, "treatment_types"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateFeeRule(ctx, tc.req)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.err))
			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tc.field, verr.Field)
		})
	}

	rule, err := svc.CreateFeeRule(ctx, models.FeeRuleRequest{FeePercentage: 100, IsDefault: true})
	require.NoError(t, err)
	assert.Equal(t, 1, rule.IDFeeRule)
}

func TestActiveFeeRules_CacheReadThrough(t *testing.T) {
	svc, repo, cache := newTestFeeRuleService()
	ctx := context.Background()

	_, err := svc.CreateFeeRule(ctx, models.FeeRuleRequest{DoctorIDs: []int{7}, FeePercentage: 30, Description: "dr. Budi"})
	require.NoError(t, err)
	_, err = svc.CreateFeeRule(ctx, models.FeeRuleRequest{FeePercentage: 10, IsDefault: true})
	require.NoError(t, err)

	rules, err := svc.ActiveFeeRules(ctx)
	require.NoError(t, err)
	require.Len(t, rules, 2)
	assert.Equal(t, 1, rules[0].ID)
	assert.Equal(t, []int{7}, rules[0].DoctorIDs)
	assert.True(t, rules[1].IsDefault)
	assert.Equal(t, 1, repo.lists)

	_, err = svc.ActiveFeeRules(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.lists, "second read should hit the cache")

	require.NoError(t, svc.SoftDeleteFeeRule(ctx, 1))
	assert.False(t, cache.ok)

	rules, err = svc.ActiveFeeRules(ctx)
	require.NoError(t, err)
	require.Len(t, rules, 1)
	assert.Equal(t, 2, rules[0].ID)
	assert.Equal(t, 2, repo.lists)
}

func TestUpdateFeeRule(t *testing.T) {
	svc, _, cache := newTestFeeRuleService()
	ctx := context.Background()

	_, err := svc.UpdateFeeRule(ctx, 42, models.FeeRuleRequest{FeePercentage: 10})
	assert.ErrorIs(t, err, ErrFeeRuleNotFound)

	created, err := svc.CreateFeeRule(ctx, models.FeeRuleRequest{Category: "Gigi", FeePercentage: 15})
	require.NoError(t, err)

	updated, err := svc.UpdateFeeRule(ctx, created.IDFeeRule, models.FeeRuleRequest{Category: " Gigi ", FeePercentage: 20})
	require.NoError(t, err)
	assert.Equal(t, "Gigi", updated.Category)
	assert.Equal(t, 20.0, updated.FeePercentage)
	assert.Equal(t, 2, cache.invalidated)

	got, err := svc.GetFeeRule(ctx, created.IDFeeRule)
	require.NoError(t, err)
	assert.Equal(t, 20.0, got.FeePercentage)
}

func TestSoftDeleteFeeRule(t *testing.T) {
	svc, _, _ := newTestFeeRuleService()
	ctx := context.Background()

	assert.ErrorIs(t, svc.SoftDeleteFeeRule(ctx, 1), ErrFeeRuleNotFound)

	_, err := svc.CreateFeeRule(ctx, models.FeeRuleRequest{FeePercentage: 5})
	require.NoError(t, err)
	require.NoError(t, svc.SoftDeleteFeeRule(ctx, 1))

	all, err := svc.ListFeeRules(ctx, true)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.NotNil(t, all[0].DeletedAt)

	active, err := svc.ListFeeRules(ctx, false)
	require.NoError(t, err)
	assert.Empty(t, active)
}
