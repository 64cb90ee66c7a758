package directory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/praveenchdev/followup-agent/internal/adapter/repository"
	"github.com/praveenchdev/followup-agent/internal/domain/entities"
)

// countingCache records lookups so cache behavior is observable
type countingCache struct {
	data map[string]string
	hits int
	sets int
}

func newCountingCache() *countingCache {
	return &countingCache{data: make(map[string]string)}
}

func (c *countingCache) Set(_ context.Context, key, value string, _ time.Duration) error {
	c.sets++
	c.data[key] = value
	return nil
}

func (c *countingCache) Get(_ context.Context, key string) (string, bool) {
	v, ok := c.data[key]
	if ok {
		c.hits++
	}
	return v, ok
}

func testUsers() []*entities.User {
	return []*entities.User{
		{
			ID:         uuid.New(),
			Username:   "sarika",
			FullName:   "Sarika Menon",
			Email:      "sarika@test.local",
			EmployeeID: "E1001",
			Aliases:    datatypes.JSON(`["sarika m"]`),
			IsActive:   true,
		},
		{
			ID:       uuid.New(),
			Username: "sunil",
			FullName: "Sunil Rao",
			Email:    "sunil@test.local",
			IsActive: true,
		},
		{
			ID:       uuid.New(),
			Username: "oldtimer",
			FullName: "Retired Person",
			Email:    "oldtimer@test.local",
			IsActive: false,
		},
	}
}

func newTestService(cache Cache) *Service {
	return NewService(repository.NewMemoryUserRepository(testUsers()...), cache, zap.NewNop())
}

func TestResolve_Cascade(t *testing.T) {
	svc := newTestService(nil)
	cases := []struct {
		token string
		want  string
	}{
		{"sarika", "sarika"},          // exact username
		{"Sarika Menon", "sarika"},    // exact full name
		{"sarika m", "sarika"},        // alias
		{"Menon", "sarika"},           // substring of full name
		{"Sarika K", "sarika"},        // first-name fallback
		{"sunil@test.local", "sunil"}, // email
		{"E1001", "sarika"},           // employee id
	}
	for _, tc := range cases {
		user, ok := svc.Resolve(context.Background(), tc.token)
		if !ok {
			t.Fatalf("%q: no match", tc.token)
		}
		if user.Username != tc.want {
			t.Fatalf("%q: expected %s got %s", tc.token, tc.want, user.Username)
		}
	}
}

func TestResolve_Misses(t *testing.T) {
	svc := newTestService(nil)
	for _, token := range []string{"", "unassigned", "nobody here", "zz@elsewhere.example"} {
		if _, ok := svc.Resolve(context.Background(), token); ok {
			t.Fatalf("%q: unexpected match", token)
		}
	}
}

func TestResolve_InactiveUserNotMatchedByName(t *testing.T) {
	svc := newTestService(nil)
	if _, ok := svc.Resolve(context.Background(), "Retired Person"); ok {
		t.Fatalf("inactive user matched through the scan")
	}
}

func TestResolve_CachesHits(t *testing.T) {
	cache := newCountingCache()
	svc := newTestService(cache)

	if _, ok := svc.Resolve(context.Background(), "Sarika Menon"); !ok {
		t.Fatalf("first resolve missed")
	}
	if cache.sets != 1 {
		t.Fatalf("expected one cache write got %d", cache.sets)
	}

	user, ok := svc.Resolve(context.Background(), "sarika menon")
	if !ok || user.Username != "sarika" {
		t.Fatalf("cached resolve failed")
	}
	if cache.hits != 1 {
		t.Fatalf("expected cache hit got %d", cache.hits)
	}
}

func TestResolveEmail(t *testing.T) {
	svc := newTestService(nil)
	email, ok := svc.ResolveEmail(context.Background(), "sunil")
	if !ok || email != "sunil@test.local" {
		t.Fatalf("got %q ok=%v", email, ok)
	}
}

func TestResolveSender(t *testing.T) {
	svc := newTestService(nil)
	user, ok := svc.ResolveSender(context.Background(), "SARIKA@test.local")
	if !ok || user.Username != "sarika" {
		t.Fatalf("sender lookup failed: %v %v", user, ok)
	}
	if _, ok := svc.ResolveSender(context.Background(), "stranger@test.local"); ok {
		t.Fatalf("unknown sender resolved")
	}
}
