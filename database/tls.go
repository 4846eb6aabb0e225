// File: /database/tls.go
package database

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"
	"strings"

	mysqldriver "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"

	applog "kustommania/logger"
)

const tlsConfigName = "managed"

// configureMySQLTLS registers a named TLS config when a CA bundle is given
// and points the DSN at it. Managed MySQL providers need this for public
// endpoints.
func configureMySQLTLS(dsn, caPath string) (string, error) {
	if caPath == "" {
		return dsn, nil
	}

	pem, err := os.ReadFile(caPath)
	if err != nil {
		return "", fmt.Errorf("failed to read DB_TLS_CA %s: %w", caPath, err)
	}
	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(pem) {
		return "", fmt.Errorf("no certificates found in %s", caPath)
	}

	if err := mysqldriver.RegisterTLSConfig(tlsConfigName, &tls.Config{
		RootCAs:    pool,
		MinVersion: tls.VersionTLS12,
	}); err != nil {
		return "", fmt.Errorf("failed to register TLS config: %w", err)
	}

	applog.GetLogger().Info("registered MySQL TLS config", zap.String("ca", caPath))
	return withTLSParam(dsn), nil
}

func withTLSParam(dsn string) string {
	if strings.Contains(dsn, "tls=") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "tls=" + tlsConfigName
}
