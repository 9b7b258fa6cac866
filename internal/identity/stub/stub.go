// Package stub реализует локальный провайдер учётных записей для разработки
// и тестов. Он повторяет контракт внешнего провайдера: регистрация аккаунта,
// выдача токена по паролю и отдача аккаунта по bearer-токену.
//
// Учётные записи хранятся в памяти, пароли — в виде bcrypt-хэшей,
// токены подписываются HS256 тем же секретом, который знает шлюз.
package stub

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/go-chi/chi"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/magabrotheeeer/daily-paper/internal/lib/jwt"
	"github.com/magabrotheeeer/daily-paper/internal/lib/password"
	"github.com/magabrotheeeer/daily-paper/internal/lib/sl"
	"github.com/magabrotheeeer/daily-paper/internal/models"
)

// minPasswordLen — парольная политика провайдера.
const minPasswordLen = 6

type stubUser struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
}

// Server — in-memory провайдер учётных записей.
type Server struct {
	log      *slog.Logger
	jwtMaker jwt.Maker

	mu    sync.RWMutex
	users map[string]*stubUser // ключ — email
}

// New создает Server с пустым списком аккаунтов.
func New(log *slog.Logger, jwtMaker jwt.Maker) *Server {
	return &Server{
		log:      log,
		jwtMaker: jwtMaker,
		users:    map[string]*stubUser{},
	}
}

// Router собирает маршруты провайдера.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Post("/auth/v1/signup", s.handleCreateUser)
	r.Post("/auth/v1/admin/users", s.handleCreateUser)
	r.Post("/auth/v1/token", s.handleToken)
	r.Get("/auth/v1/user", s.handleUser)
	return r
}

func providerErr(w http.ResponseWriter, r *http.Request, status int, msg string) {
	w.WriteHeader(status)
	render.JSON(w, r, map[string]string{"msg": msg})
}

type createUserRequest struct {
	Email        string `json:"email"`
	Password     string `json:"password"`
	UserMetadata struct {
		Name string `json:"name"`
	} `json:"user_metadata"`
}

func userPayload(u *stubUser) map[string]any {
	return map[string]any{
		"id":            u.ID,
		"email":         u.Email,
		"user_metadata": map[string]string{"name": u.Name},
	}
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	const op = "identity.stub.handleCreateUser"
	log := s.log.With(slog.String("op", op))

	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		providerErr(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Email == "" || req.Password == "" {
		providerErr(w, r, http.StatusBadRequest, "email and password are required")
		return
	}
	if len(req.Password) < minPasswordLen {
		providerErr(w, r, http.StatusBadRequest, "password should be at least 6 characters")
		return
	}

	hash, err := password.GetHash(req.Password)
	if err != nil {
		log.Error("failed to hash password", sl.Err(err))
		providerErr(w, r, http.StatusInternalServerError, "internal error")
		return
	}

	email := strings.ToLower(req.Email)

	s.mu.Lock()
	if _, exists := s.users[email]; exists {
		s.mu.Unlock()
		providerErr(w, r, http.StatusBadRequest, "email already registered")
		return
	}
	user := &stubUser{
		ID:           uuid.New().String(),
		Email:        email,
		Name:         req.UserMetadata.Name,
		PasswordHash: hash,
	}
	s.users[email] = user
	s.mu.Unlock()

	log.Info("account created", slog.String("id", user.ID))
	render.JSON(w, r, userPayload(user))
}

type tokenRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleToken(w http.ResponseWriter, r *http.Request) {
	const op = "identity.stub.handleToken"
	log := s.log.With(slog.String("op", op))

	if gt := r.URL.Query().Get("grant_type"); gt != "" && gt != "password" {
		providerErr(w, r, http.StatusBadRequest, "unsupported grant type")
		return
	}

	var req tokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		providerErr(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	s.mu.RLock()
	user, ok := s.users[strings.ToLower(req.Email)]
	s.mu.RUnlock()

	if !ok || password.CompareHash(user.PasswordHash, req.Password) != nil {
		providerErr(w, r, http.StatusBadRequest, "invalid login credentials")
		return
	}

	token, err := s.jwtMaker.GenerateToken(user.ID, user.Email, user.Name)
	if err != nil {
		log.Error("failed to generate token", sl.Err(err))
		providerErr(w, r, http.StatusInternalServerError, "internal error")
		return
	}

	render.JSON(w, r, map[string]any{
		"access_token": token,
		"token_type":   "bearer",
		"user":         userPayload(user),
	})
}

func (s *Server) handleUser(w http.ResponseWriter, r *http.Request) {
	authHeader := r.Header.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		providerErr(w, r, http.StatusUnauthorized, "missing or invalid authorization header")
		return
	}

	claims, err := s.jwtMaker.ParseToken(strings.TrimPrefix(authHeader, "Bearer "))
	if err != nil {
		providerErr(w, r, http.StatusUnauthorized, "invalid or expired token")
		return
	}

	account := models.Account{ID: claims.Subject, Email: claims.Email, Name: claims.Name}
	render.JSON(w, r, map[string]any{
		"id":            account.ID,
		"email":         account.Email,
		"user_metadata": map[string]string{"name": account.Name},
	})
}
