package session

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/barberking/booking-api/internal/domain/booking"
	"github.com/barberking/booking-api/internal/httperr"
)

const keyPrefix = "booking_session:"

// Store keeps booking sessions in Redis with a sliding TTL. An expired key
// means the visitor starts over, same as a page reload in the old flow.
type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewStore(rdb *redis.Client, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &Store{rdb: rdb, ttl: ttl}
}

func (s *Store) Save(ctx context.Context, sess *booking.Session) error {
	raw, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, keyPrefix+sess.ID, raw, s.ttl).Err()
}

func (s *Store) Get(ctx context.Context, id string) (*booking.Session, error) {
	raw, err := s.rdb.Get(ctx, keyPrefix+id).Bytes()
	if err == redis.Nil {
		return nil, httperr.ErrBusiness("session_not_found")
	}
	if err != nil {
		return nil, err
	}

	var sess booking.Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}
