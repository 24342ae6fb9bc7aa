package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/c14220110/klinik-backend/internal/administrasi/models"
)

// Karyawan adalah akun login beserta nama role-nya.
type Karyawan struct {
	models.Administrasi
	NamaRole string
}

type AdministrasiRepository interface {
	// FindByUsername mengembalikan ErrInvalidCredentials bila username tidak terdaftar.
	FindByUsername(ctx context.Context, username string) (*Karyawan, error)
	Privileges(ctx context.Context, idKaryawan int) ([]int, error)
}

type administrasiRepoMariaDB struct {
	db *sql.DB
}

func NewAdministrasiRepository(db *sql.DB) AdministrasiRepository {
	return &administrasiRepoMariaDB{db: db}
}

func (r *administrasiRepoMariaDB) FindByUsername(ctx context.Context, username string) (*Karyawan, error) {
	var k Karyawan
	err := r.db.QueryRowContext(ctx, `
		SELECT k.id_karyawan, k.nama, k.username, k.password, k.created_at, drk.id_role, r.nama_role
		FROM Karyawan k
		JOIN Detail_Role_Karyawan drk ON k.id_karyawan = drk.id_karyawan
		JOIN Role r ON drk.id_role = r.id_role
		WHERE k.username = ? AND k.deleted_at IS NULL`, username,
	).Scan(&k.ID_Admin, &k.Nama, &k.Username, &k.Password, &k.CreatedAt, &k.ID_Role, &k.NamaRole)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	return &k, nil
}

func (r *administrasiRepoMariaDB) Privileges(ctx context.Context, idKaryawan int) ([]int, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id_privilege FROM Detail_Privilege_Karyawan WHERE id_karyawan = ? ORDER BY id_privilege", idKaryawan)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	privs := []int{}
	for rows.Next() {
		var priv int
		if err := rows.Scan(&priv); err != nil {
			return nil, err
		}
		privs = append(privs, priv)
	}
	return privs, rows.Err()
}
