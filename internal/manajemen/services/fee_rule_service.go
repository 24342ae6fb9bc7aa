package services

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/c14220110/klinik-backend/internal/administrasi/fee"
	"github.com/c14220110/klinik-backend/internal/manajemen/models"
)

// RuleCache menyimpan salinan katalog aturan fee aktif.
type RuleCache interface {
	Get(ctx context.Context) ([]fee.FeeRule, bool, error)
	Set(ctx context.Context, rules []fee.FeeRule) error
	Invalidate(ctx context.Context) error
}

// FeeRuleService mengelola pengaturan fee dokter dan menyediakan katalog
// aturan aktif untuk perhitungan billing.
type FeeRuleService struct {
	repo  FeeRuleRepository
	cache RuleCache
	log   zerolog.Logger
	now   func() time.Time
}

// NewFeeRuleService membuat service; cache boleh nil.
func NewFeeRuleService(repo FeeRuleRepository, cache RuleCache, log zerolog.Logger) *FeeRuleService {
	return &FeeRuleService{repo: repo, cache: cache, log: log, now: time.Now}
}

func validateFeeRule(req models.FeeRuleRequest) error {
	if math.IsNaN(req.FeePercentage) || req.FeePercentage < 0 || req.FeePercentage > 100 {
		return &ValidationError{Err: ErrPersenFeeDiLuarBatas, Field: "fee_percentage"}
	}
	for _, id := range req.DoctorIDs {
		if id <= 0 {
			return &ValidationError{Err: ErrDokterTidakValid, Field: "doctor_ids"}
		}
	}
	for _, t := range req.TreatmentTypes {
		if strings.TrimSpace(t) == "" {
			return &ValidationError{Err: ErrTindakanTidakValid, Field: "treatment_types"}
		}
	}
	return nil
}

func (s *FeeRuleService) ListFeeRules(ctx context.Context, includeDeleted bool) ([]models.FeeRule, error) {
	return s.repo.List(ctx, includeDeleted)
}

func (s *FeeRuleService) GetFeeRule(ctx context.Context, id int) (*models.FeeRule, error) {
	return s.repo.Get(ctx, id)
}

func (s *FeeRuleService) CreateFeeRule(ctx context.Context, req models.FeeRuleRequest) (*models.FeeRule, error) {
	if err := validateFeeRule(req); err != nil {
		return nil, err
	}
	now := s.now()
	rule := models.FeeRule{
		DoctorIDs:      req.DoctorIDs,
		TreatmentTypes: req.TreatmentTypes,
		Category:       strings.TrimSpace(req.Category),
		FeePercentage:  req.FeePercentage,
		IsDefault:      req.IsDefault,
		Description:    req.Description,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	id, err := s.repo.Insert(ctx, rule)
	if err != nil {
		return nil, err
	}
	rule.IDFeeRule = int(id)
	s.invalidate(ctx)
	s.log.Info().Int("id_fee_rule", rule.IDFeeRule).Float64("fee_percentage", rule.FeePercentage).Msg("aturan fee dibuat")
	return &rule, nil
}

func (s *FeeRuleService) UpdateFeeRule(ctx context.Context, id int, req models.FeeRuleRequest) (*models.FeeRule, error) {
	if err := validateFeeRule(req); err != nil {
		return nil, err
	}
	rule, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	rule.DoctorIDs = req.DoctorIDs
	rule.TreatmentTypes = req.TreatmentTypes
	rule.Category = strings.TrimSpace(req.Category)
	rule.FeePercentage = req.FeePercentage
	rule.IsDefault = req.IsDefault
	rule.Description = req.Description
	rule.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, *rule); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	s.log.Info().Int("id_fee_rule", id).Msg("aturan fee diperbarui")
	return rule, nil
}

// SoftDeleteFeeRule mengisi deleted_at; aturan tidak lagi ikut katalog aktif.
func (s *FeeRuleService) SoftDeleteFeeRule(ctx context.Context, id int) error {
	if err := s.repo.SoftDelete(ctx, id, s.now()); err != nil {
		return err
	}
	s.invalidate(ctx)
	s.log.Info().Int("id_fee_rule", id).Msg("aturan fee dihapus")
	return nil
}

// ActiveFeeRules mengembalikan katalog aktif urut id naik, lewat cache bila ada.
func (s *FeeRuleService) ActiveFeeRules(ctx context.Context) ([]fee.FeeRule, error) {
	if s.cache != nil {
		rules, ok, err := s.cache.Get(ctx)
		if err != nil {
			s.log.Warn().Err(err).Msg("cache aturan fee tidak bisa dibaca")
		} else if ok {
			return rules, nil
		}
	}

	rows, err := s.repo.List(ctx, false)
	if err != nil {
		return nil, err
	}
	rules := make([]fee.FeeRule, 0, len(rows))
	for _, r := range rows {
		rules = append(rules, r.ToEngine())
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, rules); err != nil {
			s.log.Warn().Err(err).Msg("cache aturan fee tidak bisa ditulis")
		}
	}
	return rules, nil
}

func (s *FeeRuleService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.log.Warn().Err(err).Msg("gagal menghapus cache aturan fee")
	}
}
