package mariadb

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c14220110/klinik-backend/config"
)

func TestDSN(t *testing.T) {
	cfg := &config.Config{DBUser: "root", DBPassword: "secret", DBHost: "db", DBPort: "3306", DBName: "klinik"}
	assert.Equal(t, "root:secret@tcp(db:3306)/klinik?parseTime=true&loc=Asia%2FJakarta", DSN(cfg))
}

func TestStatements(t *testing.T) {
	stmts := Statements()
	assert.Len(t, stmts, 3)
	for _, table := range []string{"Fee_Rule", "Billing", "Fee_Dokter_Detail"} {
		found := false
		for _, s := range stmts {
			if strings.Contains(s, "CREATE TABLE IF NOT EXISTS "+table+" (") {
				found = true
			}
		}
		assert.True(t, found, table)
	}
}

func TestStatements_FeeDetailKeteranganFitsLongRuleDescription(t *testing.T) {
	var detail string
	for _, s := range Statements() {
		if strings.Contains(s, "Fee_Dokter_Detail (") {
			detail = s
		}
	}
	require.NotEmpty(t, detail)
	assert.Regexp(t, `(?m)^\s*keterangan\s+TEXT\b`, detail)
	assert.Regexp(t, `(?m)^\s*description\s+VARCHAR\(255\)`, Statements()[0])
}
