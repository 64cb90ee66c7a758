package directory

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/praveenchdev/followup-agent/internal/domain/entities"
	repo "github.com/praveenchdev/followup-agent/internal/domain/repositories"
)

// Cache is the key-value store used to memoize resolutions
type Cache interface {
	Set(ctx context.Context, key, value string, expiration time.Duration) error
	Get(ctx context.Context, key string) (string, bool)
}

const cacheTTL = 30 * time.Minute

// Service resolves free-text owner tokens against the team directory.
// Resolution is best effort: a miss is not an error, callers keep the
// raw token and flag it unresolved.
type Service struct {
	users  repo.UserRepository
	cache  Cache
	logger *zap.Logger
}

// NewService creates a new directory service
func NewService(users repo.UserRepository, cache Cache, logger *zap.Logger) *Service {
	return &Service{users: users, cache: cache, logger: logger}
}

// Resolve finds the directory entry for a name, alias, email or employee
// id. The bool reports whether a match was found.
func (s *Service) Resolve(ctx context.Context, token string) (*entities.User, bool) {
	needle := strings.ToLower(strings.TrimSpace(token))
	if needle == "" || needle == "unassigned" {
		return nil, false
	}

	if s.cache != nil {
		if raw, ok := s.cache.Get(ctx, "dir:"+needle); ok {
			var user entities.User
			if err := json.Unmarshal([]byte(raw), &user); err == nil {
				return &user, true
			}
		}
	}

	user, ok := s.lookup(ctx, needle)
	if !ok {
		return nil, false
	}

	if s.cache != nil {
		if raw, err := json.Marshal(user); err == nil {
			if err := s.cache.Set(ctx, "dir:"+needle, string(raw), cacheTTL); err != nil {
				s.logger.Warn("directory cache write failed", zap.Error(err))
			}
		}
	}
	return user, true
}

// ResolveEmail is a shortcut returning just the mail address
func (s *Service) ResolveEmail(ctx context.Context, token string) (string, bool) {
	user, ok := s.Resolve(ctx, token)
	if !ok {
		return "", false
	}
	return user.Email, true
}

// ResolveSender finds the directory entry behind an inbound address
func (s *Service) ResolveSender(ctx context.Context, email string) (*entities.User, bool) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, entities.ErrUserNotFound) {
			s.logger.Warn("sender lookup failed", zap.String("email", email), zap.Error(err))
		}
		return nil, false
	}
	return user, true
}

// lookup runs the match cascade: exact username, exact full name, alias,
// substring of full name, first name, email, employee id. First hit wins.
func (s *Service) lookup(ctx context.Context, needle string) (*entities.User, bool) {
	if user, err := s.users.FindByUsername(ctx, needle); err == nil {
		return user, true
	}

	users, err := s.users.ListActive(ctx)
	if err != nil {
		s.logger.Warn("directory scan failed", zap.Error(err))
		return nil, false
	}

	for _, u := range users {
		if strings.ToLower(u.FullName) == needle {
			return u, true
		}
	}
	for _, u := range users {
		if u.HasAlias(needle) {
			return u, true
		}
	}
	for _, u := range users {
		full := strings.ToLower(u.FullName)
		if strings.Contains(full, needle) || strings.Contains(needle, full) {
			return u, true
		}
	}

	first := needle
	if i := strings.IndexByte(first, ' '); i > 0 {
		first = first[:i]
	}
	for _, u := range users {
		nameFirst := strings.ToLower(u.FullName)
		if i := strings.IndexByte(nameFirst, ' '); i > 0 {
			nameFirst = nameFirst[:i]
		}
		if first == nameFirst {
			return u, true
		}
	}

	for _, u := range users {
		if strings.Contains(strings.ToLower(u.Email), needle) {
			return u, true
		}
	}
	for _, u := range users {
		if u.EmployeeID != "" && strings.EqualFold(u.EmployeeID, needle) {
			return u, true
		}
	}

	return nil, false
}
