package rounds

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dhruvi159/Voxhire-Project/internal/models"
)

var (
	ErrNoRound      = errors.New("no active coding round")
	ErrAllSubmitted = errors.New("all questions answered")
)

const maxTxRetries = 5

// Store keeps each candidate's coding round (question set and running score)
// in Redis under round:<candidate>:*, expiring after ttl of inactivity.
type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewStore(rdb *redis.Client, ttl time.Duration) *Store {
	return &Store{rdb: rdb, ttl: ttl}
}

func questionsKey(candidate string) string { return "round:" + candidate + ":questions" }
func scoreKey(candidate string) string     { return "round:" + candidate + ":score" }

// Start replaces any existing round for the candidate with a fresh one at score zero.
func (s *Store) Start(ctx context.Context, candidate string, questions []models.CodingQuestion) error {
	raw, err := json.Marshal(questions)
	if err != nil {
		return err
	}
	_, err = s.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Set(ctx, questionsKey(candidate), raw, s.ttl)
		p.Set(ctx, scoreKey(candidate), 0, s.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to start round: %w", err)
	}
	return nil
}

func (s *Store) Questions(ctx context.Context, candidate string) ([]models.CodingQuestion, error) {
	raw, err := s.rdb.Get(ctx, questionsKey(candidate)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNoRound
	}
	if err != nil {
		return nil, err
	}
	var qs []models.CodingQuestion
	if err := json.Unmarshal(raw, &qs); err != nil {
		return nil, fmt.Errorf("corrupt round state: %w", err)
	}
	return qs, nil
}

// Next returns the first question not yet submitted.
func (s *Store) Next(ctx context.Context, candidate string) (*models.CodingQuestion, error) {
	qs, err := s.Questions(ctx, candidate)
	if err != nil {
		return nil, err
	}
	for i := range qs {
		if !qs[i].Submitted {
			return &qs[i], nil
		}
	}
	return nil, ErrAllSubmitted
}

// MarkSubmitted flags the current question as answered. It is a no-op once
// every question has been submitted.
func (s *Store) MarkSubmitted(ctx context.Context, candidate string) error {
	key := questionsKey(candidate)
	txf := func(tx *redis.Tx) error {
		raw, err := tx.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return ErrNoRound
		}
		if err != nil {
			return err
		}
		var qs []models.CodingQuestion
		if err := json.Unmarshal(raw, &qs); err != nil {
			return fmt.Errorf("corrupt round state: %w", err)
		}
		for i := range qs {
			if !qs[i].Submitted {
				qs[i].Submitted = true
				break
			}
		}
		updated, err := json.Marshal(qs)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(p redis.Pipeliner) error {
			p.Set(ctx, key, updated, s.ttl)
			return nil
		})
		return err
	}
	return s.watch(ctx, txf, key)
}

// AddScore atomically adds delta to the running score and returns the new total.
func (s *Store) AddScore(ctx context.Context, candidate string, delta float64) (float64, error) {
	key := scoreKey(candidate)
	var total float64
	txf := func(tx *redis.Tx) error {
		n, err := tx.Exists(ctx, key).Result()
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrNoRound
		}
		var incr *redis.FloatCmd
		_, err = tx.TxPipelined(ctx, func(p redis.Pipeliner) error {
			incr = p.IncrByFloat(ctx, key, delta)
			p.Expire(ctx, key, s.ttl)
			p.Expire(ctx, questionsKey(candidate), s.ttl)
			return nil
		})
		if err != nil {
			return err
		}
		total = incr.Val()
		return nil
	}
	if err := s.watch(ctx, txf, key); err != nil {
		return 0, err
	}
	return total, nil
}

// Finish removes the round and returns its final score.
func (s *Store) Finish(ctx context.Context, candidate string) (float64, error) {
	score, err := s.rdb.GetDel(ctx, scoreKey(candidate)).Float64()
	if errors.Is(err, redis.Nil) {
		return 0, ErrNoRound
	}
	if err != nil {
		return 0, err
	}
	if err := s.rdb.Del(ctx, questionsKey(candidate)).Err(); err != nil {
		return score, fmt.Errorf("failed to clear round questions: %w", err)
	}
	return score, nil
}

func (s *Store) watch(ctx context.Context, txf func(*redis.Tx) error, key string) error {
	for i := 0; i < maxTxRetries; i++ {
		err := s.rdb.Watch(ctx, txf, key)
		if !errors.Is(err, redis.TxFailedErr) {
			return err
		}
	}
	return fmt.Errorf("round %s: too much contention", key)
}
