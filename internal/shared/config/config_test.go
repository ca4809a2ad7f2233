package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "/api/v1", cfg.GetAPIBasePath())
	assert.Equal(t, "static", cfg.Catalog.Source)
	assert.Equal(t, 35, cfg.Pricing.ServiceFeePermille)
	assert.Equal(t, 5, cfg.Pricing.ProcessingFee)
	assert.Equal(t, 8, cfg.Cart.MaxQuantityPerAdd)
	assert.Equal(t, 2*time.Second, cfg.Payment.SimulatedDelay)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("PAYMENT_SIMULATED_DELAY", "150ms")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("CART_MAX_QUANTITY_PER_ADD", "not-a-number")

	cfg := Load()

	assert.Equal(t, ":9090", cfg.GetServerAddress())
	assert.Equal(t, 150*time.Millisecond, cfg.Payment.SimulatedDelay)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 8, cfg.Cart.MaxQuantityPerAdd)
}
