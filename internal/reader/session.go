package reader

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/magabrotheeeer/daily-paper/internal/models"
)

// Session хранит текущего читателя и его токен доступа.
// Страницы читают сессию, входы и выходы меняют ее через Populate и Clear.
type Session struct {
	mu      sync.RWMutex
	account *models.Account
	token   string
}

// NewSession создает пустую сессию.
func NewSession() *Session {
	return &Session{}
}

// Populate заполняет сессию после успешного входа.
func (s *Session) Populate(account *models.Account, token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.account = account
	s.token = token
}

// Clear очищает сессию при выходе.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.account = nil
	s.token = ""
}

// Account возвращает текущего читателя, nil если вход не выполнен.
func (s *Session) Account() *models.Account {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.account
}

// Token возвращает токен доступа текущей сессии.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// SignedIn сообщает, выполнен ли вход.
func (s *Session) SignedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.account != nil
}

// TokenStore сохраняет токен между запусками приложения.
type TokenStore interface {
	Load() (string, error)
	Save(token string) error
	Drop() error
}

// FileTokenStore хранит токен в файле в домашнем каталоге читателя.
type FileTokenStore struct {
	path string
}

// NewFileTokenStore создает хранилище токена по указанному пути.
// Пустой путь означает ~/.daily-paper/token.
func NewFileTokenStore(path string) (*FileTokenStore, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(home, ".daily-paper", "token")
	}
	return &FileTokenStore{path: path}, nil
}

// Load читает сохраненный токен. Отсутствие файла — пустой токен без ошибки.
func (f *FileTokenStore) Load() (string, error) {
	data, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// Save записывает токен, создавая каталог при необходимости.
func (f *FileTokenStore) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(f.path, []byte(token), 0o600)
}

// Drop удаляет сохраненный токен.
func (f *FileTokenStore) Drop() error {
	err := os.Remove(f.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
