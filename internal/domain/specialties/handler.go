package specialties

import (
	"net/http"
	"strings"

	"petclinic/internal/domain/model"
	"petclinic/internal/platform/httpx"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/specialties", listSpecialtiesHandler(svc))
	r.Post("/specialties", createSpecialtyHandler(svc))
}

type specialtyRequest struct {
	Description string `json:"description"`
}

type specialtyResponse struct {
	ID          int64  `json:"id"`
	Description string `json:"description"`
}

// listSpecialtiesHandler godoc
// @Summary Listar especialidades
// @Tags specialties
// @Produce json
// @Success 200 {array} specialtyResponse
// @Router /specialties [get]
func listSpecialtiesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.FindAll(r.Context())
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		out := make([]specialtyResponse, 0, len(items))
		for _, s := range items {
			out = append(out, specialtyResponse{ID: s.ID, Description: s.Description})
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

// createSpecialtyHandler godoc
// @Summary Alta de especialidad
// @Tags specialties
// @Accept json
// @Produce json
// @Param payload body specialtyRequest true "Descripción"
// @Success 201 {object} specialtyResponse
// @Failure 400 {string} string "invalid json / description obligatoria"
// @Router /specialties [post]
func createSpecialtyHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req specialtyRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, err)
			return
		}
		if err := httpx.Required("description", req.Description); err != nil {
			httpx.WriteError(w, err)
			return
		}

		s, err := svc.Save(r.Context(), &model.Specialty{Description: strings.TrimSpace(req.Description)})
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, specialtyResponse{ID: s.ID, Description: s.Description})
	}
}
