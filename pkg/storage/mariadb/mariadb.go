package mariadb

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/c14220110/klinik-backend/config"
	_ "github.com/go-sql-driver/mysql"
)

// DSN menyusun data source name MariaDB.
// Format: username:password@tcp(host:port)/dbname?parseTime=true&loc=Asia%2FJakarta
func DSN(cfg *config.Config) string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true&loc=Asia%%2FJakarta",
		cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName)
}

// Connect membuka koneksi ke MariaDB dan memastikan server bisa di-ping.
func Connect(ctx context.Context, cfg *config.Config) (*sql.DB, error) {
	db, err := sql.Open("mysql", DSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("gagal membuka koneksi ke database: %w", err)
	}
	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("gagal melakukan ping ke database: %w", err)
	}
	return db, nil
}
