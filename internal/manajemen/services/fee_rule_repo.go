package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/c14220110/klinik-backend/internal/manajemen/models"
)

type FeeRuleRepository interface {
	List(ctx context.Context, includeDeleted bool) ([]models.FeeRule, error)
	Get(ctx context.Context, id int) (*models.FeeRule, error)
	Insert(ctx context.Context, rule models.FeeRule) (int64, error)
	Update(ctx context.Context, rule models.FeeRule) error
	SoftDelete(ctx context.Context, id int, at time.Time) error
}

type feeRuleRepoMariaDB struct {
	db *sql.DB
}

func NewFeeRuleRepository(db *sql.DB) FeeRuleRepository {
	return &feeRuleRepoMariaDB{db: db}
}

const feeRuleSelect = `
	SELECT id_fee_rule, doctor_ids, treatment_types, COALESCE(category, ''), fee_percentage,
	       is_default, COALESCE(description, ''), created_at, updated_at, deleted_at
	FROM Fee_Rule`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanFeeRule(row rowScanner) (models.FeeRule, error) {
	var r models.FeeRule
	var doctorIDs, treatments []byte
	var deletedAt sql.NullTime
	if err := row.Scan(&r.IDFeeRule, &doctorIDs, &treatments, &r.Category, &r.FeePercentage,
		&r.IsDefault, &r.Description, &r.CreatedAt, &r.UpdatedAt, &deletedAt); err != nil {
		return r, err
	}
	if len(doctorIDs) > 0 {
		if err := json.Unmarshal(doctorIDs, &r.DoctorIDs); err != nil {
			return r, fmt.Errorf("doctor_ids fee rule %d: %w", r.IDFeeRule, err)
		}
	}
	if len(treatments) > 0 {
		if err := json.Unmarshal(treatments, &r.TreatmentTypes); err != nil {
			return r, fmt.Errorf("treatment_types fee rule %d: %w", r.IDFeeRule, err)
		}
	}
	if deletedAt.Valid {
		r.DeletedAt = &deletedAt.Time
	}
	return r, nil
}

// jsonColumn menyimpan slice kosong sebagai NULL.
func jsonColumn[T any](v []T) (interface{}, error) {
	if len(v) == 0 {
		return nil, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// List mengembalikan aturan urut id naik; urutan ini yang menjadi urutan katalog engine.
func (r *feeRuleRepoMariaDB) List(ctx context.Context, includeDeleted bool) ([]models.FeeRule, error) {
	query := feeRuleSelect
	if !includeDeleted {
		query += " WHERE deleted_at IS NULL"
	}
	query += " ORDER BY id_fee_rule ASC"

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}
	defer rows.Close()

	list := []models.FeeRule{}
	for rows.Next() {
		rule, err := scanFeeRule(rows)
		if err != nil {
			return nil, fmt.Errorf("scan error: %w", err)
		}
		list = append(list, rule)
	}
	return list, rows.Err()
}

func (r *feeRuleRepoMariaDB) Get(ctx context.Context, id int) (*models.FeeRule, error) {
	rule, err := scanFeeRule(r.db.QueryRowContext(ctx, feeRuleSelect+" WHERE id_fee_rule = ? AND deleted_at IS NULL", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrFeeRuleNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rule, nil
}

func (r *feeRuleRepoMariaDB) Insert(ctx context.Context, rule models.FeeRule) (int64, error) {
	doctorIDs, err := jsonColumn(rule.DoctorIDs)
	if err != nil {
		return 0, err
	}
	treatments, err := jsonColumn(rule.TreatmentTypes)
	if err != nil {
		return 0, err
	}
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO Fee_Rule
			(doctor_ids, treatment_types, category, fee_percentage, is_default, description, created_at, updated_at)
		VALUES (?,?,?,?,?,?,?,?)`,
		doctorIDs, treatments, rule.Category, rule.FeePercentage, rule.IsDefault, rule.Description,
		rule.CreatedAt, rule.UpdatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("insert fee rule: %w", err)
	}
	return res.LastInsertId()
}

func (r *feeRuleRepoMariaDB) Update(ctx context.Context, rule models.FeeRule) error {
	doctorIDs, err := jsonColumn(rule.DoctorIDs)
	if err != nil {
		return err
	}
	treatments, err := jsonColumn(rule.TreatmentTypes)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		UPDATE Fee_Rule
		SET doctor_ids = ?, treatment_types = ?, category = ?, fee_percentage = ?,
		    is_default = ?, description = ?, updated_at = ?
		WHERE id_fee_rule = ? AND deleted_at IS NULL`,
		doctorIDs, treatments, rule.Category, rule.FeePercentage, rule.IsDefault, rule.Description,
		rule.UpdatedAt, rule.IDFeeRule,
	)
	if err != nil {
		return fmt.Errorf("update fee rule: %w", err)
	}
	return nil
}

func (r *feeRuleRepoMariaDB) SoftDelete(ctx context.Context, id int, at time.Time) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE Fee_Rule SET deleted_at = ? WHERE id_fee_rule = ? AND deleted_at IS NULL", at, id)
	if err != nil {
		return fmt.Errorf("delete fee rule: %w", err)
	}
	return requireAffected(res)
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrFeeRuleNotFound
	}
	return nil
}
