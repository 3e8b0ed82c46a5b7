// Package suite runs repository tests against a throwaway redis container.
package suite

import (
	"context"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictactoe-widget/internal/entity"
	"github.com/rocketscienceinc/tictactoe-widget/internal/repository"
)

const (
	containerLifetime = 120 // seconds
	maxWait           = 120 * time.Second

	redisImage = "redis"
	redisTag   = "alpine"
	redisPort  = "6379/tcp"

	// SessionTTL is the ttl the suite's session repository writes with.
	SessionTTL = time.Minute
)

type Suite struct {
	*testing.T

	Storage  *redis.Client
	Sessions repository.SessionRepository
}

// New starts redis and returns a session repository on top of it. Tests are
// skipped when docker is not reachable.
func New(t *testing.T) (context.Context, *Suite) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), maxWait)
	t.Cleanup(cancel)

	client := startRedis(ctx, t)

	return ctx, &Suite{
		T:        t,
		Storage:  client,
		Sessions: repository.NewSessionRepository(client, SessionTTL),
	}
}

// Seed stores a session under theme with moves already played.
func (that *Suite) Seed(ctx context.Context, theme entity.Theme, moves ...int) entity.Session {
	that.Helper()

	session := entity.NewSession(theme)
	for _, cell := range moves {
		game, accepted := session.Game.ApplyMove(cell)
		if !accepted {
			that.Fatalf("seed move %d rejected", cell)
		}
		session = session.WithGame(game)
	}

	if err := that.Sessions.CreateOrUpdate(ctx, session); err != nil {
		that.Fatalf("could not seed session: %v", err)
	}

	return session
}

// KeyTTL returns the remaining ttl of a stored session.
func (that *Suite) KeyTTL(ctx context.Context, sessionID string) time.Duration {
	that.Helper()

	ttl, err := that.Storage.TTL(ctx, repository.SessionKey(sessionID)).Result()
	if err != nil {
		that.Fatalf("could not read ttl: %v", err)
	}

	return ttl
}

func startRedis(ctx context.Context, t *testing.T) *redis.Client {
	t.Helper()

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Skipf("could not connect to docker: %v", err)
	}

	if err = pool.Client.Ping(); err != nil {
		t.Skipf("docker is not available: %v", err)
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: redisImage,
		Tag:        redisTag,
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("could not start redis: %v", err)
	}

	// hard kill in case cleanup never runs
	_ = resource.Expire(containerLifetime)

	pool.MaxWait = maxWait

	var client *redis.Client
	if err = pool.Retry(func() error {
		client = redis.NewClient(&redis.Options{Addr: resource.GetHostPort(redisPort)})
		return client.Ping(ctx).Err()
	}); err != nil {
		_ = pool.Purge(resource)
		t.Fatalf("could not connect to redis: %v", err)
	}

	t.Cleanup(func() {
		_ = client.Close()

		if purgeErr := pool.Purge(resource); purgeErr != nil {
			t.Errorf("could not purge redis: %v", purgeErr)
		}
	})

	return client
}
