package pets

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"petshub/internal/domain/identity"
	"petshub/internal/domain/likes"
	"petshub/internal/middleware"
	"petshub/internal/platform/apperr"
	"petshub/internal/platform/logger"
	"petshub/internal/platform/respond"
	"petshub/internal/platform/validate"
)

// LikeStats es lo que el handler necesita del agregador de likes.
type LikeStats interface {
	Stats(ctx context.Context, viewer identity.Identity, petIDs []string) (map[string]likes.Stats, error)
}

var errUnauthorized = apperr.New(apperr.CodeUnauthorized, "authentication required")

func RegisterRoutes(r chi.Router, svc *Service, stats LikeStats) {
	r.Route("/pets", func(pr chi.Router) {
		// Públicas (identidad opcional para likedByMe)
		pr.Get("/", listPublicHandler(svc, stats))
		pr.Get("/{petID}", getPetHandler(svc, stats))

		// Del dueño
		pr.Get("/my/list", listMyPetsHandler(svc, stats))
		pr.Post("/", createPetHandler(svc))
		pr.Put("/{petID}", updatePetHandler(svc, stats))
		pr.Patch("/{petID}/toggle", togglePetHandler(svc, stats))
		pr.Delete("/{petID}", deletePetHandler(svc))
	})
}

type createPetRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=100"`
	FunFacts string `json:"funFacts" validate:"required"`
	Image    string `json:"image"`
	Enabled  *bool  `json:"enabled"`
}

type updatePetRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=1,max=100"`
	FunFacts *string `json:"funFacts" validate:"omitempty,min=1"`
	Image    *string `json:"image"`
	Enabled  *bool   `json:"enabled"`
}

type petResponse struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"ownerId"`
	Name      string    `json:"name"`
	FunFacts  string    `json:"funFacts"`
	Image     *string   `json:"image"`
	Enabled   bool      `json:"enabled"`
	LikeCount int       `json:"likeCount"`
	LikedByMe bool      `json:"likedByMe"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type listResponse struct {
	Items      []petResponse `json:"items"`
	Pagination Pagination    `json:"pagination"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// listPublicHandler godoc
// @Summary Listar mascotas públicas
// @Description Mascotas habilitadas, más nuevas primero, con búsqueda por nombre (case-insensitive). Incluye likeCount (usuarios + anónimos) y likedByMe según la identidad actual.
// @Tags pets
// @Produce json
// @Param X-Anonymous-Id header string false "ID anónimo del dispositivo"
// @Param page query int false "Página (default 1)"
// @Param limit query int false "Tamaño de página (default 12, máx 100)"
// @Param search query string false "Texto a buscar en el nombre"
// @Success 200 {object} listResponse
// @Failure 400 {object} respond.ErrorBody "query inválida"
// @Router /pets [get]
func listPublicHandler(svc *Service, stats LikeStats) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := validate.QueryInt(r, "page", 1, 1, 1_000_000)
		if err != nil {
			respond.Error(w, r, err)
			return
		}
		limit, err := validate.QueryInt(r, "limit", DefaultPageSize, 1, MaxPageSize)
		if err != nil {
			respond.Error(w, r, err)
			return
		}

		res, err := svc.ListPublic(r.Context(), ListPublicInput{
			Page:   page,
			Limit:  limit,
			Search: r.URL.Query().Get("search"),
		})
		if err != nil {
			respond.Error(w, r, err)
			return
		}

		items, err := decorate(r, stats, res.Items)
		if err != nil {
			respond.Error(w, r, err)
			return
		}
		respond.OK(w, listResponse{Items: items, Pagination: res.Pagination})
	}
}

// getPetHandler godoc
// @Summary Obtener mascota
// @Description Devuelve una mascota por ID con likeCount y likedByMe.
// @Tags pets
// @Produce json
// @Param X-Anonymous-Id header string false "ID anónimo del dispositivo"
// @Param petID path string true "ID de la mascota"
// @Success 200 {object} petResponse
// @Failure 404 {object} respond.ErrorBody "pet not found"
// @Router /pets/{petID} [get]
func getPetHandler(svc *Service, stats LikeStats) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := svc.GetByID(r.Context(), chi.URLParam(r, "petID"))
		if err != nil {
			respond.Error(w, r, err)
			return
		}
		writeDecorated(w, r, stats, http.StatusOK, p)
	}
}

// listMyPetsHandler godoc
// @Summary Mis mascotas
// @Description Mascotas del usuario autenticado, incluidas las deshabilitadas.
// @Tags pets
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {array} petResponse
// @Failure 401 {object} respond.ErrorBody "unauthorized"
// @Router /pets/my/list [get]
func listMyPetsHandler(svc *Service, stats LikeStats) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid := middleware.UserID(r.Context())
		if uid == "" {
			respond.Error(w, r, errUnauthorized)
			return
		}

		items, err := svc.ListByOwner(r.Context(), uid)
		if err != nil {
			respond.Error(w, r, err)
			return
		}

		out, err := decorate(r, stats, items)
		if err != nil {
			respond.Error(w, r, err)
			return
		}
		respond.OK(w, out)
	}
}

// createPetHandler godoc
// @Summary Crear mascota
// @Description Crea una mascota del usuario autenticado. image es una referencia opaca (URL); enabled default true.
// @Tags pets
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param payload body createPetRequest true "Datos de la mascota"
// @Success 201 {object} petResponse
// @Failure 400 {object} respond.ErrorBody "validación"
// @Failure 401 {object} respond.ErrorBody "unauthorized"
// @Router /pets [post]
func createPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid := middleware.UserID(r.Context())
		if uid == "" {
			respond.Error(w, r, errUnauthorized)
			return
		}

		var req createPetRequest
		if err := validate.DecodeJSON(r, &req); err != nil {
			respond.Error(w, r, err)
			return
		}

		p, err := svc.Create(r.Context(), uid, CreateInput{
			Name:     req.Name,
			FunFacts: req.FunFacts,
			Image:    req.Image,
			Enabled:  req.Enabled,
		})
		if err != nil {
			respond.Error(w, r, err)
			return
		}

		logger.FromContext(r.Context()).Info("pet.created", map[string]any{"pet_id": p.ID, "owner_id": uid})
		respond.Created(w, toPetResponse(p, likes.Stats{}))
	}
}

// updatePetHandler godoc
// @Summary Actualizar mascota
// @Description Update parcial de name, funFacts, image y enabled. Solo el dueño.
// @Tags pets
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param petID path string true "ID de la mascota"
// @Param payload body updatePetRequest true "Campos a modificar"
// @Success 200 {object} petResponse
// @Failure 400 {object} respond.ErrorBody "validación"
// @Failure 401 {object} respond.ErrorBody "unauthorized"
// @Failure 403 {object} respond.ErrorBody "forbidden"
// @Failure 404 {object} respond.ErrorBody "pet not found"
// @Router /pets/{petID} [put]
func updatePetHandler(svc *Service, stats LikeStats) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid := middleware.UserID(r.Context())
		if uid == "" {
			respond.Error(w, r, errUnauthorized)
			return
		}

		var req updatePetRequest
		if err := validate.DecodeJSON(r, &req); err != nil {
			respond.Error(w, r, err)
			return
		}

		p, err := svc.Update(r.Context(), chi.URLParam(r, "petID"), uid, UpdateInput{
			Name:     req.Name,
			FunFacts: req.FunFacts,
			Image:    req.Image,
			Enabled:  req.Enabled,
		})
		if err != nil {
			respond.Error(w, r, err)
			return
		}
		writeDecorated(w, r, stats, http.StatusOK, p)
	}
}

// togglePetHandler godoc
// @Summary Habilitar/deshabilitar mascota
// @Description Invierte la visibilidad pública. Solo el dueño. Los likes existentes se conservan.
// @Tags pets
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param petID path string true "ID de la mascota"
// @Success 200 {object} petResponse
// @Failure 401 {object} respond.ErrorBody "unauthorized"
// @Failure 403 {object} respond.ErrorBody "forbidden"
// @Failure 404 {object} respond.ErrorBody "pet not found"
// @Router /pets/{petID}/toggle [patch]
func togglePetHandler(svc *Service, stats LikeStats) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid := middleware.UserID(r.Context())
		if uid == "" {
			respond.Error(w, r, errUnauthorized)
			return
		}

		p, err := svc.Toggle(r.Context(), chi.URLParam(r, "petID"), uid)
		if err != nil {
			respond.Error(w, r, err)
			return
		}
		writeDecorated(w, r, stats, http.StatusOK, p)
	}
}

// deletePetHandler godoc
// @Summary Eliminar mascota
// @Description Elimina la mascota y todos sus likes. Solo el dueño.
// @Tags pets
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param petID path string true "ID de la mascota"
// @Success 200 {object} messageResponse
// @Failure 401 {object} respond.ErrorBody "unauthorized"
// @Failure 403 {object} respond.ErrorBody "forbidden"
// @Failure 404 {object} respond.ErrorBody "pet not found"
// @Router /pets/{petID} [delete]
func deletePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid := middleware.UserID(r.Context())
		if uid == "" {
			respond.Error(w, r, errUnauthorized)
			return
		}

		petID := chi.URLParam(r, "petID")
		if err := svc.Delete(r.Context(), petID, uid); err != nil {
			respond.Error(w, r, err)
			return
		}

		logger.FromContext(r.Context()).Info("pet.deleted", map[string]any{"pet_id": petID, "owner_id": uid})
		respond.OK(w, messageResponse{Message: "Pet deleted"})
	}
}

func writeDecorated(w http.ResponseWriter, r *http.Request, stats LikeStats, status int, p Pet) {
	out, err := decorate(r, stats, []Pet{p})
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, status, out[0])
}

// decorate agrega likeCount/likedByMe. Un X-Anonymous-Id malformado en lecturas
// se trata como "sin identidad" en vez de fallar el listado.
func decorate(r *http.Request, stats LikeStats, items []Pet) ([]petResponse, error) {
	viewer, err := middleware.GetIdentity(r.Context())
	if err != nil {
		viewer = identity.None
	}

	ids := make([]string, 0, len(items))
	for _, p := range items {
		ids = append(ids, p.ID)
	}

	byPet := map[string]likes.Stats{}
	if stats != nil {
		byPet, err = stats.Stats(r.Context(), viewer, ids)
		if err != nil {
			return nil, err
		}
	}

	out := make([]petResponse, 0, len(items))
	for _, p := range items {
		out = append(out, toPetResponse(p, byPet[p.ID]))
	}
	return out, nil
}

func toPetResponse(p Pet, st likes.Stats) petResponse {
	var image *string
	if p.Image != "" {
		img := p.Image
		image = &img
	}
	return petResponse{
		ID:        p.ID,
		OwnerID:   p.OwnerUserID,
		Name:      p.Name,
		FunFacts:  p.FunFacts,
		Image:     image,
		Enabled:   p.Enabled,
		LikeCount: st.LikeCount,
		LikedByMe: st.LikedByMe,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
