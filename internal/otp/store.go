package otp

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dhruvi159/Voxhire-Project/internal/models"
)

// DefaultTTL is the lifetime of a pending registration.
const DefaultTTL = 10 * time.Minute

const codeLength = 6

var ErrNotFound = errors.New("no pending registration")

// Store keeps one pending registration per email in Redis. A new Put for the
// same email replaces the previous entry and restarts its TTL.
type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewStore(rdb *redis.Client, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{rdb: rdb, ttl: ttl}
}

func key(email string) string {
	return "otp:pending:" + strings.ToLower(email)
}

func (s *Store) TTL() time.Duration { return s.ttl }

func (s *Store) Put(ctx context.Context, p *models.PendingRegistration) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return err
	}
	ttl := time.Until(p.ExpiresAt)
	if ttl <= 0 || ttl > s.ttl {
		ttl = s.ttl
	}
	if err := s.rdb.Set(ctx, key(p.Email), raw, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store pending registration: %w", err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, email string) (*models.PendingRegistration, error) {
	raw, err := s.rdb.Get(ctx, key(email)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load pending registration: %w", err)
	}
	var p models.PendingRegistration
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("corrupt pending registration: %w", err)
	}
	return &p, nil
}

// Claim deletes the entry and reports whether this caller removed it, so
// only one of several concurrent verifications can win.
func (s *Store) Claim(ctx context.Context, email string) (bool, error) {
	n, err := s.rdb.Del(ctx, key(email)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to claim pending registration: %w", err)
	}
	return n == 1, nil
}

// Generate returns a zero-padded numeric code from crypto/rand.
func Generate() (string, error) {
	max := big.NewInt(1_000_000)
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", codeLength, n.Int64()), nil
}
