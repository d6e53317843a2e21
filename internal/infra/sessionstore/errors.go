package sessionstore

import "errors"

var (
	// ErrSessionNotFound возвращается, когда сессия не найдена или истек её TTL
	ErrSessionNotFound = errors.New("session not found")

	// ErrMarshal возвращается при ошибке сериализации сессии
	ErrMarshal = errors.New("failed to marshal session")

	// ErrUnmarshal возвращается при ошибке десериализации сессии
	ErrUnmarshal = errors.New("failed to unmarshal session")

	// ErrStore возвращается при ошибке обращения к Redis
	ErrStore = errors.New("session store error")
)
