package likes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"petshub/internal/domain/identity"
	"petshub/internal/middleware"
	"petshub/internal/platform/logger"
	"petshub/internal/platform/respond"
	"petshub/internal/platform/validate"
)

// RegisterRoutes monta /likes. writeMW se aplica solo a like/unlike (rate limit).
func RegisterRoutes(r chi.Router, svc *Service, writeMW ...func(http.Handler) http.Handler) {
	r.Route("/likes", func(lr chi.Router) {
		lr.With(writeMW...).Post("/", likeHandler(svc))
		lr.With(writeMW...).Delete("/{petID}", unlikeHandler(svc))
		lr.Get("/my-likes", myLikesHandler(svc))
	})
}

type likeRequest struct {
	PetID string `json:"petId" validate:"required,uuid"`
}

type likeResponse struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	UserID    string    `json:"userId,omitempty"`
	AnonID    string    `json:"anonId,omitempty"`
	PetID     string    `json:"petId"`
	CreatedAt time.Time `json:"createdAt"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type myLikesResponse struct {
	LikedPetIDs []string `json:"likedPetIds"`
}

// likeHandler godoc
// @Summary Dar like a una mascota
// @Description Registra un like como usuario autenticado (Bearer) o como visitante anónimo (`X-Anonymous-Id`). Si vienen ambos, gana el usuario. Dar like a una mascota deshabilitada está permitido.
// @Tags likes
// @Accept json
// @Produce json
// @Param Authorization header string false "Bearer token"
// @Param X-Anonymous-Id header string false "ID anónimo del dispositivo"
// @Param payload body likeRequest true "Mascota a la que se da like"
// @Success 201 {object} likeResponse
// @Failure 400 {object} respond.ErrorBody "petId inválido"
// @Failure 401 {object} respond.ErrorBody "sin usuario ni X-Anonymous-Id"
// @Failure 404 {object} respond.ErrorBody "pet not found"
// @Failure 409 {object} respond.ErrorBody "pet already liked"
// @Failure 429 {object} respond.ErrorBody "rate limit"
// @Router /likes [post]
func likeHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		who, err := middleware.GetIdentity(r.Context())
		if err != nil {
			respond.Error(w, r, err)
			return
		}
		if who.IsNone() {
			respond.Error(w, r, ErrAuthRequired)
			return
		}

		var req likeRequest
		if err := validate.DecodeJSON(r, &req); err != nil {
			respond.Error(w, r, err)
			return
		}

		l, err := svc.Like(r.Context(), who, req.PetID)
		if err != nil {
			respond.Error(w, r, err)
			return
		}

		logger.FromContext(r.Context()).Info("like.created", map[string]any{
			"pet_id": l.PetID,
			"kind":   string(l.Kind),
		})
		respond.Created(w, toLikeResponse(l))
	}
}

// unlikeHandler godoc
// @Summary Quitar like
// @Description Quita el like de la identidad actual (usuario o anónimo) sobre la mascota.
// @Tags likes
// @Produce json
// @Param Authorization header string false "Bearer token"
// @Param X-Anonymous-Id header string false "ID anónimo del dispositivo"
// @Param petID path string true "ID de la mascota"
// @Success 200 {object} messageResponse
// @Failure 401 {object} respond.ErrorBody "sin usuario ni X-Anonymous-Id"
// @Failure 404 {object} respond.ErrorBody "like not found"
// @Router /likes/{petID} [delete]
func unlikeHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		who, err := middleware.GetIdentity(r.Context())
		if err != nil {
			respond.Error(w, r, err)
			return
		}

		petID := chi.URLParam(r, "petID")
		if err := svc.Unlike(r.Context(), who, petID); err != nil {
			respond.Error(w, r, err)
			return
		}

		respond.OK(w, messageResponse{Message: "Like removed"})
	}
}

// myLikesHandler godoc
// @Summary Mascotas que me gustan
// @Description Devuelve los IDs de mascotas con like de la identidad actual. Sin identidad devuelve lista vacía.
// @Tags likes
// @Produce json
// @Param Authorization header string false "Bearer token"
// @Param X-Anonymous-Id header string false "ID anónimo del dispositivo"
// @Success 200 {object} myLikesResponse
// @Router /likes/my-likes [get]
func myLikesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		who, err := middleware.GetIdentity(r.Context())
		if err != nil {
			respond.Error(w, r, err)
			return
		}

		ids, err := svc.LikedPetIDs(r.Context(), who)
		if err != nil {
			respond.Error(w, r, err)
			return
		}
		respond.OK(w, myLikesResponse{LikedPetIDs: ids})
	}
}

func toLikeResponse(l Like) likeResponse {
	out := likeResponse{
		ID:        l.ID,
		Kind:      string(l.Kind),
		PetID:     l.PetID,
		CreatedAt: l.CreatedAt,
	}
	if l.Kind == identity.KindUser {
		out.UserID = l.SubjectID
	} else {
		out.AnonID = l.SubjectID
	}
	return out
}
