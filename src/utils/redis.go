package utils

import (
	"context"
	"encoding/hex"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/blake2b"
)

// RevokedTokens is a Redis backed blacklist of access tokens. A nil *RevokedTokens
// (no Redis configured) revokes nothing.
type RevokedTokens struct {
	client *redis.Client
}

func NewRevokedTokens(client *redis.Client) *RevokedTokens {
	if client == nil {
		return nil
	}
	return &RevokedTokens{client: client}
}

// blacklistKey stores a digest so raw tokens never land in Redis.
func blacklistKey(token string) string {
	sum := blake2b.Sum256([]byte(token))
	return "blacklist:" + hex.EncodeToString(sum[:])
}

// Revoke เพิ่ม access token เข้า blacklist จนกว่า token จะหมดอายุ
func (r *RevokedTokens) Revoke(ctx context.Context, token string, expiresIn time.Duration) error {
	if r == nil {
		log.Println("⚠️ redis client not initialized, token not revoked")
		return nil
	}
	if err := r.client.Set(ctx, blacklistKey(token), "1", expiresIn).Err(); err != nil {
		return fmt.Errorf("failed to blacklist token: %w", err)
	}
	return nil
}

// IsRevoked ตรวจสอบว่า token อยู่ใน blacklist หรือไม่
func (r *RevokedTokens) IsRevoked(ctx context.Context, token string) (bool, error) {
	if r == nil {
		return false, nil
	}
	n, err := r.client.Exists(ctx, blacklistKey(token)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check blacklist: %w", err)
	}
	return n > 0, nil
}
