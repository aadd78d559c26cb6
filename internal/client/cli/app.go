package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophterms/internal/client/acceptance"
	"github.com/dmitrijs2005/gophterms/internal/client/client"
	"github.com/dmitrijs2005/gophterms/internal/client/config"
	"github.com/dmitrijs2005/gophterms/internal/client/services"
	"github.com/dmitrijs2005/gophterms/internal/client/session"
	"github.com/dmitrijs2005/gophterms/internal/filex"
	"github.com/dmitrijs2005/gophterms/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

const pingTimeout = 3 * time.Second

type App struct {
	config      *config.Config
	log         logging.Logger
	db          *sql.DB
	auth        services.AuthService
	collections services.CollectionService
	acceptance  *acceptance.Service

	mu       sync.RWMutex
	mode     Mode
	identity *session.Identity
	unsub    func()

	reader *bufio.Reader
	out    io.Writer
}

// NewApp opens the local database, builds the HTTP client and the services
// on top of it. The session fallback store is created here, once per process.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	dbFile, err := filex.EnsureParentDir(c.DatabaseFile)
	if err != nil {
		return nil, err
	}

	db, err := client.InitDatabase(ctx, dbFile)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	apiClient, err := client.NewHTTPClient(c.ServerURL, c.RequestTimeout)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	repos := client.NewRepositories(db)
	tracker := acceptance.NewService(apiClient, repos.LocalStorage, acceptance.NewMemoryStore(), log)

	return &App{
		config:      c,
		log:         log.With("module", "cli"),
		db:          db,
		auth:        services.NewAuthService(apiClient),
		collections: services.NewCollectionService(apiClient),
		acceptance:  tracker,
		reader:      bufio.NewReader(os.Stdin),
		out:         os.Stdout,
	}, nil
}

// Run starts the connectivity watcher and blocks in the REPL until the user
// exits or stdin closes.
func (a *App) Run(ctx context.Context) {
	defer a.close(ctx)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	fmt.Fprintln(a.out, "Welcome to gophterms CLI (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) close(ctx context.Context) {
	a.setIdentity(nil)
	if err := a.auth.Close(ctx); err != nil {
		a.log.Warn(ctx, "close client", "error", err)
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.log.Warn(ctx, "close local db", "error", err)
		}
	}
}

func (a *App) Mode() Mode {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.mode
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()

	if changed {
		a.log.Info(context.Background(), "mode switched", "mode", mode)
		fmt.Fprintf(a.out, "Switched to %s mode\n", mode)
	}
}

func (a *App) currentIdentity() *session.Identity {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.identity
}

// setIdentity swaps the principal and moves the change subscription to it.
func (a *App) setIdentity(id *session.Identity) {
	a.mu.Lock()
	unsub := a.unsub
	a.identity = id
	a.unsub = nil
	if id != nil {
		a.unsub = id.Subscribe(a.onIdentityChange)
	}
	a.mu.Unlock()

	if unsub != nil {
		unsub()
	}
}

func (a *App) onIdentityChange(c session.Change) {
	if c.CollectionID == "" {
		fmt.Fprintf(a.out, "[%s refreshed]\n", c.Attribute)
		return
	}
	fmt.Fprintf(a.out, "[%s updated for collection %s]\n", c.Attribute, c.CollectionID)
}

func (a *App) isLoggedIn() bool {
	return a.currentIdentity().Authenticated()
}

func (a *App) getStatus() string {
	s := "anonymous"
	if id := a.currentIdentity(); id != nil {
		s = id.UserName
	}
	if m := a.Mode(); m != "" {
		s = s + " " + string(m)
	}
	return fmt.Sprintf("(%s)", s)
}

// StartOnlineStatusWatcher pings the server every interval and flips the
// mode accordingly. It returns when ctx is done.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		a.log.Warn(ctx, "invalid online check interval, using default",
			"interval", interval, "default", config.DefaultOnlineCheckInterval)
		interval = config.DefaultOnlineCheckInterval
	}

	a.checkOnline(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) checkOnline(ctx context.Context) {
	pctx, cancel := context.WithTimeout(ctx, pingTimeout)
	err := a.auth.Ping(pctx)
	cancel()

	if ctx.Err() != nil {
		return
	}
	if err != nil {
		a.setMode(ModeOffline)
		return
	}
	a.setMode(ModeOnline)
}
