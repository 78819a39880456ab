package usecase

import (
	"context"
	"fmt"
	"time"

	cacheport "github.com/nahid515023/MyTutor-App-sub002/internal/infrastructure/cache/port"
)

// LogoutInput identifies the token being revoked.
type LogoutInput struct {
	TokenID   string
	ExpiresAt time.Time
}

// LogoutUseCase marks the token id as revoked for the remainder of its
// lifetime. The auth middleware rejects any revoked token id.
type LogoutUseCase struct {
	Cache cacheport.Cache
}

func NewLogoutUseCase(cache cacheport.Cache) *LogoutUseCase {
	return &LogoutUseCase{Cache: cache}
}

func (uc *LogoutUseCase) Execute(ctx context.Context, in LogoutInput) error {
	if in.TokenID == "" {
		return fmt.Errorf("token id is required")
	}
	ttl := time.Until(in.ExpiresAt)
	if ttl <= 0 {
		// Already expired; nothing to revoke.
		return nil
	}
	if err := uc.Cache.Set(ctx, RevokedKey(in.TokenID), "1", ttl); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return nil
}

// RevokedKey is the cache key holding a revoked token marker.
func RevokedKey(tokenID string) string {
	return "revoked:" + tokenID
}
