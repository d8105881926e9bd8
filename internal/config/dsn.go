package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
)

// normalizeDSN parses a MySQL DSN and fills the options gorm relies on:
// parseTime, utf8mb4 and a dial timeout.
func normalizeDSN(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}
	dsn, err := mysql.ParseDSN(raw)
	if err != nil {
		return "", fmt.Errorf("invalid database.dsn: %w", err)
	}
	dsn.ParseTime = true
	if dsn.Params == nil {
		dsn.Params = map[string]string{}
	}
	if _, ok := dsn.Params["charset"]; !ok {
		dsn.Params["charset"] = "utf8mb4"
	}
	if dsn.Timeout == 0 {
		dsn.Timeout = 10 * time.Second
	}
	return dsn.FormatDSN(), nil
}
