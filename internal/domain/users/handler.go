package users

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"petshub/internal/middleware"
	"petshub/internal/platform/apperr"
	"petshub/internal/platform/logger"
	"petshub/internal/platform/respond"
	"petshub/internal/platform/validate"
)

var errUnauthorized = apperr.New(apperr.CodeUnauthorized, "authentication required")

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/auth", func(ar chi.Router) {
		ar.Post("/register", registerHandler(svc))
		ar.Post("/login", loginHandler(svc))
		ar.Get("/me", meHandler(svc))
	})
}

type registerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name" validate:"required,min=2"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type userResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

type sessionResponse struct {
	User  userResponse `json:"user"`
	Token string       `json:"token"`
}

// registerHandler godoc
// @Summary Registrar usuario
// @Description Crea la cuenta y devuelve un token de sesión (JWT).
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body registerRequest true "Datos de registro"
// @Success 201 {object} sessionResponse
// @Failure 400 {object} respond.ErrorBody "validación"
// @Failure 409 {object} respond.ErrorBody "email already registered"
// @Router /auth/register [post]
func registerHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if err := validate.DecodeJSON(r, &req); err != nil {
			respond.Error(w, r, err)
			return
		}

		sess, err := svc.Register(r.Context(), RegisterInput{
			Email:    req.Email,
			Password: req.Password,
			Name:     req.Name,
		})
		if err != nil {
			respond.Error(w, r, err)
			return
		}

		logger.FromContext(r.Context()).Info("user.registered", map[string]any{"user_id": sess.User.ID})
		respond.Created(w, toSessionResponse(sess))
	}
}

// loginHandler godoc
// @Summary Login
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body loginRequest true "Credenciales"
// @Success 200 {object} sessionResponse
// @Failure 400 {object} respond.ErrorBody "validación"
// @Failure 401 {object} respond.ErrorBody "invalid email or password"
// @Router /auth/login [post]
func loginHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := validate.DecodeJSON(r, &req); err != nil {
			respond.Error(w, r, err)
			return
		}

		sess, err := svc.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			respond.Error(w, r, err)
			return
		}
		respond.OK(w, toSessionResponse(sess))
	}
}

// meHandler godoc
// @Summary Usuario actual
// @Tags auth
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {object} userResponse
// @Failure 401 {object} respond.ErrorBody "unauthorized"
// @Failure 404 {object} respond.ErrorBody "user not found"
// @Router /auth/me [get]
func meHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid := middleware.UserID(r.Context())
		if uid == "" {
			respond.Error(w, r, errUnauthorized)
			return
		}

		u, err := svc.Get(r.Context(), uid)
		if err != nil {
			respond.Error(w, r, err)
			return
		}
		respond.OK(w, toUserResponse(u))
	}
}

func toUserResponse(u User) userResponse {
	return userResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		CreatedAt: u.CreatedAt,
	}
}

func toSessionResponse(s Session) sessionResponse {
	return sessionResponse{User: toUserResponse(s.User), Token: s.Token}
}
