package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_ValoresPorDefecto(t *testing.T) {
	cfg, err := fromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, StoreDriverPostgres, cfg.Store.Driver)
	assert.True(t, cfg.Store.AutoSchema)
	assert.Equal(t, "tolva-gruesos", cfg.Staging.CounterID)
	assert.Equal(t, 25, cfg.DB.MaxConns)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
}

func TestFromViper_Sobrescrituras(t *testing.T) {
	v := viper.New()
	v.Set("STORE_DRIVER", "MEMORY")
	v.Set("HTTP_PORT", "9090")
	v.Set("STAGING_COUNTER_ID", "tolva-finos")
	v.Set("DB_MAX_CONNS", "no-es-numero")

	cfg, err := fromViper(v)
	require.NoError(t, err)
	assert.Equal(t, StoreDriverMemory, cfg.Store.Driver, "el driver se normaliza a minúsculas")
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, "tolva-finos", cfg.Staging.CounterID)
	assert.Equal(t, 25, cfg.DB.MaxConns, "un entero inválido vuelve al valor por defecto")
}

func TestFromViper_DriverInvalido(t *testing.T) {
	v := viper.New()
	v.Set("STORE_DRIVER", "firestore")
	_, err := fromViper(v)
	assert.Error(t, err)
}

func TestDBConfig_DSNEscapaPassword(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "kardex", Password: "p@ss/word", DBName: "kardex", SSLMode: "disable"}
	assert.Equal(t, "postgres://kardex:p%40ss%2Fword@db:5432/kardex?sslmode=disable", c.DSN())

	c.DatabaseURL = "postgres://otro"
	assert.Equal(t, "postgres://otro", c.ConnectionString())
}
