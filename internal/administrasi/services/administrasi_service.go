package services

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/c14220110/klinik-backend/internal/administrasi/models"
)

// RoleAdministrasi adalah nama role kasir pada tabel Role.
const RoleAdministrasi = "Administrasi"

type AdministrasiService struct {
	repo AdministrasiRepository
}

func NewAdministrasiService(repo AdministrasiRepository) *AdministrasiService {
	return &AdministrasiService{repo: repo}
}

// AuthenticateAdmin memvalidasi login karyawan ber-role Administrasi dan
// mengambil daftar privilege-nya. Password dicek sebelum role.
func (s *AdministrasiService) AuthenticateAdmin(ctx context.Context, username, password string) (*models.Administrasi, error) {
	k, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(k.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if k.NamaRole != RoleAdministrasi {
		return nil, ErrBukanAdministrasi
	}

	privs, err := s.repo.Privileges(ctx, k.ID_Admin)
	if err != nil {
		return nil, err
	}
	admin := k.Administrasi
	admin.Privileges = privs
	return &admin, nil
}
