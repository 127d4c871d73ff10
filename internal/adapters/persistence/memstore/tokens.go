package memstore

import (
	"time"

	"gatewise-vms/internal/core/domain"
)

// InsertRefreshToken stores a refresh token record, keyed by its hash
func (d *Directory) InsertRefreshToken(t domain.RefreshToken) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now()
	}
	d.refreshTokens[t.TokenHash] = t
}

// RefreshTokenByHash looks up a stored refresh token
func (d *Directory) RefreshTokenByHash(hash string) (domain.RefreshToken, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	t, ok := d.refreshTokens[hash]
	return t, ok
}

// RevokeRefreshToken revokes a stored refresh token by hash
func (d *Directory) RevokeRefreshToken(hash string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	t, ok := d.refreshTokens[hash]
	if !ok {
		return false
	}
	now := time.Now()
	t.RevokedAt = &now
	d.refreshTokens[hash] = t
	return true
}

// RevokeAllRefreshTokens revokes every token held by one user
func (d *Directory) RevokeAllRefreshTokens(userID string) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	now := time.Now()
	revoked := 0
	for hash, t := range d.refreshTokens {
		if t.UserID == userID && t.RevokedAt == nil {
			t.RevokedAt = &now
			d.refreshTokens[hash] = t
			revoked++
		}
	}
	return revoked
}
