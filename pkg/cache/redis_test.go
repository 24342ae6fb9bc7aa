package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c14220110/klinik-backend/config"
	"github.com/c14220110/klinik-backend/internal/administrasi/fee"
)

func setupCache(t *testing.T, ttl time.Duration) (*FeeRuleCache, *miniredis.Miniredis) {
	t.Helper()
	s, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(s.Close)

	rdb := redis.NewClient(&redis.Options{Addr: s.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return NewFeeRuleCache(rdb, ttl), s
}

func TestFeeRuleCache_RoundTrip(t *testing.T) {
	c, s := setupCache(t, time.Minute)
	ctx := context.Background()

	_, ok, err := c.Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	rules := []fee.FeeRule{
		{ID: 1, DoctorIDs: []int{7}, TreatmentTypes: []string{"Scaling"}, FeePercentage: 40},
		{ID: 2, IsDefault: true, FeePercentage: 10, Description: "default"},
	}
	require.NoError(t, c.Set(ctx, rules))
	assert.True(t, s.Exists(KeyActiveFeeRules))
	assert.Equal(t, time.Minute, s.TTL(KeyActiveFeeRules))

	got, ok, err := c.Get(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, rules, got)

	require.NoError(t, c.Invalidate(ctx))
	_, ok, err = c.Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFeeRuleCache_Expiry(t *testing.T) {
	c, s := setupCache(t, 5*time.Second)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, nil))
	got, ok, err := c.Get(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, got)

	s.FastForward(6 * time.Second)
	_, ok, err = c.Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFeeRuleCache_CorruptValue(t *testing.T) {
	c, s := setupCache(t, time.Minute)
	require.NoError(t, s.Set(KeyActiveFeeRules, "{not json"))

	_, ok, err := c.Get(context.Background())
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestNewClient(t *testing.T) {
	s, err := miniredis.Run()
	require.NoError(t, err)

	addr := s.Addr()
	client, err := NewClient(context.Background(), &config.Config{RedisAddr: addr})
	require.NoError(t, err)
	client.Close()

	s.Close()
	_, err = NewClient(context.Background(), &config.Config{RedisAddr: addr})
	assert.Error(t, err)
}
