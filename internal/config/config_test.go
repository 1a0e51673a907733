package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsYEntorno(t *testing.T) {
	t.Setenv("REPORTE_WORKERS", "8")
	t.Setenv("CODIGO_MAX_REINTENTOS", "5")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8000, cfg.Port)
	assert.Equal(t, 8, cfg.ReporteWorkers)
	assert.Equal(t, 5, cfg.CodigoMaxReintentos)
	assert.Equal(t, 300*time.Second, cfg.ReporteTTL())
}

func TestOrigenes(t *testing.T) {
	cfg := &Config{CORSOrigins: " https://a.test, ,https://b.test"}
	assert.Equal(t, []string{"https://a.test", "https://b.test"}, cfg.Origenes())
	assert.Empty(t, (&Config{}).Origenes())
}
