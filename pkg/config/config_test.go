package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/helados-api/pkg/config"
)

func TestLoad_Valores(t *testing.T) {
	t.Setenv("DB_MAX_CONNS", "40")
	t.Setenv("DB_AUTO_MIGRATE", "true")
	t.Setenv("INVENTORY_DEFAULT_MIN_STOCK", "15")
	t.Setenv("BUSINESS_NAME", "Helados La Esquina")
	t.Setenv("HTTP_PORT", "9090")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, 40, cfg.DB.MaxConns)
	assert.True(t, cfg.DB.AutoMigrate)
	assert.Equal(t, 15, cfg.Inventory.DefaultMinStock)
	assert.Equal(t, "Helados La Esquina", cfg.Business.Name)
	assert.Equal(t, 9090, cfg.HTTP.Port)
}

func TestLoad_EnteroInvalidoUsaDefault(t *testing.T) {
	t.Setenv("DB_MAX_CONNS", "muchas")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, 25, cfg.DB.MaxConns)
}

func TestLoad_MinStockNegativo(t *testing.T) {
	t.Setenv("INVENTORY_DEFAULT_MIN_STOCK", "-1")

	_, err := config.Load()
	assert.Error(t, err)
}
