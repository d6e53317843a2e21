package sessionstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// keyPrefix префикс ключей сессий в Redis
const keyPrefix = "booking_session:"

// Store хранилище сессий бронирования в Redis
// Сессия сериализуется в JSON целиком и живет до истечения TTL;
// каждый Save продлевает TTL заново
type Store struct {
	client *redis.Client
}

// NewStore создает новое хранилище сессий
func NewStore(client *redis.Client) *Store {
	return &Store{client: client}
}

// Save сохраняет сессию с указанным TTL
func (s *Store) Save(ctx context.Context, session *domain.BookingSession, ttl time.Duration) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("%w: Save - session id=%s: %v", ErrMarshal, session.ID, err)
	}

	if err := s.client.Set(ctx, sessionKey(session.ID), payload, ttl).Err(); err != nil {
		return fmt.Errorf("%w: Save - session id=%s: %v", ErrStore, session.ID, err)
	}

	return nil
}

// Get возвращает сессию по ID
func (s *Store) Get(ctx context.Context, sessionID string) (*domain.BookingSession, error) {
	payload, err := s.client.Get(ctx, sessionKey(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("%w: Get - session id=%s: %v", ErrStore, sessionID, err)
	}

	var session domain.BookingSession
	if err := json.Unmarshal(payload, &session); err != nil {
		return nil, fmt.Errorf("%w: Get - session id=%s: %v", ErrUnmarshal, sessionID, err)
	}

	return &session, nil
}

// Delete удаляет сессию
// Удаление отсутствующей сессии не ошибка
func (s *Store) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, sessionKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("%w: Delete - session id=%s: %v", ErrStore, sessionID, err)
	}

	return nil
}

// sessionKey собирает ключ Redis для сессии
func sessionKey(sessionID string) string {
	return keyPrefix + sessionID
}
