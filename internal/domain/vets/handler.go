package vets

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"petclinic/internal/domain/model"
	"petclinic/internal/platform/httpx"

	"github.com/go-chi/chi/v5"
)

type SpecialtyFinder interface {
	FindByID(ctx context.Context, id int64) (*model.Specialty, error)
}

func RegisterRoutes(r chi.Router, svc *Service, specs SpecialtyFinder) {
	r.Get("/vets", listVetsHandler(svc))
	r.Post("/vets", createVetHandler(svc, specs))
	r.Get("/vets/{vetID}", getVetHandler(svc))
}

// specialtyRef: con id se usa una especialidad existente; sin id se crea
// una nueva con la descripción (cascada de vets.Service.Save).
type specialtyRef struct {
	ID          int64  `json:"id,omitempty"`
	Description string `json:"description,omitempty"`
}

type vetRequest struct {
	FirstName   string         `json:"firstName"`
	LastName    string         `json:"lastName"`
	Specialties []specialtyRef `json:"specialties"`
}

type vetResponse struct {
	ID          int64          `json:"id"`
	FirstName   string         `json:"firstName"`
	LastName    string         `json:"lastName"`
	Specialties []specialtyRef `json:"specialties"`
}

// listVetsHandler godoc
// @Summary Listar veterinarios
// @Description Con `lastName` filtra por fragmento del apellido.
// @Tags vets
// @Produce json
// @Param lastName query string false "Fragmento del apellido"
// @Success 200 {array} vetResponse
// @Router /vets [get]
func listVetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lastName := strings.TrimSpace(r.URL.Query().Get("lastName"))

		var out []vetResponse
		err := svc.View(r.Context(), func(ctx context.Context) error {
			items, err := svc.FindAllByLastNameLike(ctx, lastName)
			if err != nil {
				return err
			}
			out = make([]vetResponse, 0, len(items))
			for _, v := range items {
				out = append(out, toVetResponse(v))
			}
			return nil
		})
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

// getVetHandler godoc
// @Summary Detalle de veterinario
// @Tags vets
// @Produce json
// @Param vetID path int true "ID del veterinario"
// @Success 200 {object} vetResponse
// @Failure 404 {string} string "vet not found"
// @Router /vets/{vetID} [get]
func getVetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := httpx.PathID(r, "vetID")
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		var out vetResponse
		err = svc.View(r.Context(), func(ctx context.Context) error {
			v, err := svc.FindByID(ctx, id)
			if err != nil {
				return err
			}
			out = toVetResponse(v)
			return nil
		})
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

// createVetHandler godoc
// @Summary Alta de veterinario
// @Description Las especialidades sin `id` se crean junto con el veterinario.
// @Tags vets
// @Accept json
// @Produce json
// @Param payload body vetRequest true "Datos del veterinario"
// @Success 201 {object} vetResponse
// @Failure 400 {string} string "invalid json / campos obligatorios / especialidad desconocida"
// @Router /vets [post]
func createVetHandler(svc *Service, specs SpecialtyFinder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req vetRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, err)
			return
		}
		if err := httpx.Required("firstName", req.FirstName, "lastName", req.LastName); err != nil {
			httpx.WriteError(w, err)
			return
		}

		v := &model.Vet{Person: model.Person{
			FirstName: strings.TrimSpace(req.FirstName),
			LastName:  strings.TrimSpace(req.LastName),
		}}
		for _, ref := range req.Specialties {
			s, err := resolveSpecialty(r.Context(), specs, ref)
			if err != nil {
				httpx.WriteError(w, err)
				return
			}
			model.AddSpecialtyToVet(v, s)
		}

		saved, err := svc.Save(r.Context(), v)
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, toVetResponse(saved))
	}
}

func resolveSpecialty(ctx context.Context, specs SpecialtyFinder, ref specialtyRef) (*model.Specialty, error) {
	if ref.ID == 0 {
		if err := httpx.Required("specialties.description", ref.Description); err != nil {
			return nil, err
		}
		return &model.Specialty{Description: strings.TrimSpace(ref.Description)}, nil
	}
	s, err := specs.FindByID(ctx, ref.ID)
	if errors.Is(err, model.ErrNotFound) {
		return nil, fmt.Errorf("%w: unknown specialty %d", httpx.ErrBadRequest, ref.ID)
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

func toVetResponse(v *model.Vet) vetResponse {
	out := vetResponse{
		ID:          v.ID,
		FirstName:   v.FirstName,
		LastName:    v.LastName,
		Specialties: make([]specialtyRef, 0),
	}
	for _, s := range v.Specialties() {
		out.Specialties = append(out.Specialties, specialtyRef{ID: s.ID, Description: s.Description})
	}
	return out
}
