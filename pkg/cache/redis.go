package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/c14220110/klinik-backend/config"
	"github.com/c14220110/klinik-backend/internal/administrasi/fee"
)

// KeyActiveFeeRules menyimpan katalog aturan fee aktif dalam bentuk JSON.
const KeyActiveFeeRules = "fee_rule:active"

// NewClient membuat client Redis dan memastikan server bisa di-ping.
func NewClient(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("gagal terhubung ke redis %s: %w", cfg.RedisAddr, err)
	}
	return client, nil
}

// FeeRuleCache menyimpan katalog aturan fee aktif di Redis dengan TTL.
type FeeRuleCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewFeeRuleCache(client *redis.Client, ttl time.Duration) *FeeRuleCache {
	return &FeeRuleCache{client: client, ttl: ttl}
}

// Get mengembalikan ok=false bila key belum ada atau sudah kedaluwarsa.
func (c *FeeRuleCache) Get(ctx context.Context) ([]fee.FeeRule, bool, error) {
	raw, err := c.client.Get(ctx, KeyActiveFeeRules).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var rules []fee.FeeRule
	if err := json.Unmarshal(raw, &rules); err != nil {
		return nil, false, fmt.Errorf("decode %s: %w", KeyActiveFeeRules, err)
	}
	return rules, true, nil
}

func (c *FeeRuleCache) Set(ctx context.Context, rules []fee.FeeRule) error {
	if rules == nil {
		rules = []fee.FeeRule{}
	}
	raw, err := json.Marshal(rules)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, KeyActiveFeeRules, raw, c.ttl).Err()
}

func (c *FeeRuleCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, KeyActiveFeeRules).Err()
}
