package usecase

import (
	"context"
	"fmt"
	"hash/fnv"
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/tictactoe-widget/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-widget/internal/entity"
)

type GameUseCase interface {
	NewSession(ctx context.Context) (entity.Session, error)
	GetSession(ctx context.Context, sessionID string) (entity.Session, error)

	MakeTurn(ctx context.Context, sessionID string, cell int) (entity.Session, error)
	Restart(ctx context.Context, sessionID string) (entity.Session, error)
	ToggleTheme(ctx context.Context, sessionID string) (entity.Session, error)

	EndSession(ctx context.Context, sessionID string) error
}

type sessionRepo interface {
	CreateOrUpdate(ctx context.Context, session entity.Session) error
	GetByID(ctx context.Context, id string) (entity.Session, error)
	DeleteByID(ctx context.Context, id string) error
}

type publisher interface {
	Publish(session entity.Session)
}

const lockStripes = 64

type gameUseCase struct {
	logger       *slog.Logger
	sessionRepo  sessionRepo
	publisher    publisher
	defaultTheme entity.Theme

	locks [lockStripes]sync.Mutex
}

func NewGameUseCase(logger *slog.Logger, sessionRepo sessionRepo, publisher publisher, defaultTheme entity.Theme) GameUseCase {
	return &gameUseCase{
		logger:       logger.With("component", "usecase"),
		sessionRepo:  sessionRepo,
		publisher:    publisher,
		defaultTheme: defaultTheme,
	}
}

func (that *gameUseCase) NewSession(ctx context.Context) (entity.Session, error) {
	session := entity.NewSession(that.defaultTheme)

	if err := that.sessionRepo.CreateOrUpdate(ctx, session); err != nil {
		return entity.Session{}, fmt.Errorf("could not create session: %w", err)
	}

	that.logger.Debug("session created", "sessionID", session.ID)

	return session, nil
}

func (that *gameUseCase) GetSession(ctx context.Context, sessionID string) (entity.Session, error) {
	session, err := that.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return entity.Session{}, fmt.Errorf("failed to get session by id: %w", err)
	}

	return session, nil
}

// MakeTurn places the current mark. Occupied cells and decided games return
// the session unchanged without an error.
func (that *gameUseCase) MakeTurn(ctx context.Context, sessionID string, cell int) (entity.Session, error) {
	if !entity.IsValidCell(cell) {
		return entity.Session{}, fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, cell)
	}

	log := that.logger.With("method", "MakeTurn", "sessionID", sessionID, "cell", cell)

	return that.mutate(ctx, sessionID, func(session entity.Session) (entity.Session, bool) {
		game, accepted := session.Game.ApplyMove(cell)
		if !accepted {
			log.Debug("move ignored", "status", session.Game.StatusText())
			return session, false
		}

		log.Debug("move accepted", "status", game.StatusText(), "moves", game.MovesPlayed())

		return session.WithGame(game), true
	})
}

func (that *gameUseCase) Restart(ctx context.Context, sessionID string) (entity.Session, error) {
	return that.mutate(ctx, sessionID, func(session entity.Session) (entity.Session, bool) {
		return session.WithGame(session.Game.Restart()), true
	})
}

func (that *gameUseCase) ToggleTheme(ctx context.Context, sessionID string) (entity.Session, error) {
	return that.mutate(ctx, sessionID, func(session entity.Session) (entity.Session, bool) {
		return session.WithTheme(session.Theme.Toggle()), true
	})
}

// EndSession drops a session whose page went away.
func (that *gameUseCase) EndSession(ctx context.Context, sessionID string) error {
	lock := that.lockFor(sessionID)
	lock.Lock()
	defer lock.Unlock()

	if err := that.sessionRepo.DeleteByID(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	that.logger.Debug("session ended", "sessionID", sessionID)

	return nil
}

// mutate runs a read-modify-write under the session's lock. Changed sessions
// are stored and then published.
func (that *gameUseCase) mutate(
	ctx context.Context,
	sessionID string,
	apply func(entity.Session) (entity.Session, bool),
) (entity.Session, error) {
	lock := that.lockFor(sessionID)
	lock.Lock()
	defer lock.Unlock()

	session, err := that.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return entity.Session{}, fmt.Errorf("failed to get session by id: %w", err)
	}

	next, changed := apply(session)
	if !changed {
		return session, nil
	}

	if err = that.sessionRepo.CreateOrUpdate(ctx, next); err != nil {
		return entity.Session{}, fmt.Errorf("failed to update session: %w", err)
	}

	that.publisher.Publish(next)

	return next, nil
}

// lockFor maps a session to one of a fixed set of mutexes.
func (that *gameUseCase) lockFor(sessionID string) *sync.Mutex {
	h := fnv.New32a()
	_, _ = h.Write([]byte(sessionID))

	return &that.locks[h.Sum32()%lockStripes]
}
