package pettypes

import (
	"net/http"
	"strings"

	"petclinic/internal/domain/model"
	"petclinic/internal/platform/httpx"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/pettypes", listPetTypesHandler(svc))
	r.Post("/pettypes", createPetTypeHandler(svc))
}

type petTypeRequest struct {
	Name string `json:"name"`
}

type petTypeResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// listPetTypesHandler godoc
// @Summary Listar tipos de mascota
// @Tags pettypes
// @Produce json
// @Success 200 {array} petTypeResponse
// @Router /pettypes [get]
func listPetTypesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.FindAll(r.Context())
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		out := make([]petTypeResponse, 0, len(items))
		for _, t := range items {
			out = append(out, petTypeResponse{ID: t.ID, Name: t.Name})
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

// createPetTypeHandler godoc
// @Summary Alta de tipo de mascota
// @Tags pettypes
// @Accept json
// @Produce json
// @Param payload body petTypeRequest true "Nombre del tipo"
// @Success 201 {object} petTypeResponse
// @Failure 400 {string} string "invalid json / name obligatorio"
// @Router /pettypes [post]
func createPetTypeHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req petTypeRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, err)
			return
		}
		if err := httpx.Required("name", req.Name); err != nil {
			httpx.WriteError(w, err)
			return
		}

		t, err := svc.Save(r.Context(), &model.PetType{Name: strings.TrimSpace(req.Name)})
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, petTypeResponse{ID: t.ID, Name: t.Name})
	}
}
