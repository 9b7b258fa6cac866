package reader

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/magabrotheeeer/daily-paper/internal/config"
	"github.com/magabrotheeeer/daily-paper/internal/lib/sl"
)

// errQuit сигнализирует о выходе из приложения по запросу читателя
// или по концу ввода.
var errQuit = errors.New("quit")

// App — терминальное приложение читателя.
type App struct {
	log      *slog.Logger
	in       *bufio.Scanner
	out      io.Writer
	outMu    sync.Mutex
	client   *Client
	provider *ProviderClient
	session  *Session
	tokens   TokenStore

	refreshInterval time.Duration
	confirmDelay    time.Duration
	now             func() time.Time

	ctx context.Context
}

// New собирает приложение читателя поверх потоков ввода-вывода.
func New(log *slog.Logger, cfg config.Reader, in io.Reader, out io.Writer, tokens TokenStore) *App {
	session := NewSession()
	return &App{
		log:             log,
		in:              bufio.NewScanner(in),
		out:             out,
		client:          NewClient(cfg.ServerURL, session),
		provider:        NewProviderClient(cfg.ProviderURL),
		session:         session,
		tokens:          tokens,
		refreshInterval: cfg.RefreshInterval,
		confirmDelay:    2 * time.Second,
		now:             time.Now,
	}
}

// Run восстанавливает сессию и крутит цикл страниц до выхода.
func (a *App) Run(ctx context.Context) error {
	a.ctx = ctx

	page := PageHome
	if a.restoreSession(ctx) {
		page = PageDashboard
	}

	for page != PageQuit {
		if err := ctx.Err(); err != nil {
			return nil
		}
		next, err := a.route(page)()
		if err != nil {
			if errors.Is(err, errQuit) {
				break
			}
			return err
		}
		page = next
	}

	a.printf("Goodbye.\n")
	return nil
}

// restoreSession проверяет сохраненный токен у провайдера и заполняет
// сессию, если токен еще действителен.
func (a *App) restoreSession(ctx context.Context) bool {
	token, err := a.tokens.Load()
	if err != nil {
		a.log.Warn("failed to load stored token", sl.Err(err))
		return false
	}
	if token == "" {
		return false
	}

	account, err := a.provider.CurrentUser(ctx, token)
	if err != nil {
		a.log.Info("stored token no longer valid")
		_ = a.tokens.Drop()
		return false
	}

	a.session.Populate(account, token)
	a.printf("Welcome back, %s!\n", account.Name)
	return true
}

// signOut очищает сессию и сохраненный токен.
func (a *App) signOut() {
	a.session.Clear()
	if err := a.tokens.Drop(); err != nil {
		a.log.Warn("failed to drop stored token", sl.Err(err))
	}
}

// printf сериализует вывод: горутина автообновления пишет на экран
// одновременно с циклом ввода.
func (a *App) printf(format string, args ...any) {
	a.outMu.Lock()
	defer a.outMu.Unlock()
	fmt.Fprintf(a.out, format, args...)
}

// prompt печатает приглашение и читает строку ввода.
// Конец ввода трактуется как выход из приложения.
func (a *App) prompt(label string) (string, error) {
	a.printf("%s", label)
	if !a.in.Scan() {
		return "", errQuit
	}
	return strings.TrimSpace(a.in.Text()), nil
}

// promptRequired повторяет запрос, пока читатель не введет непустое значение.
func (a *App) promptRequired(label string) (string, error) {
	for {
		value, err := a.prompt(label)
		if err != nil {
			return "", err
		}
		if value != "" {
			return value, nil
		}
		a.printf("This field is required.\n")
	}
}
