package visits

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"petclinic/internal/domain/model"
	"petclinic/internal/platform/httpx"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Post("/owners/{ownerID}/pets/{petID}/visits", createVisitHandler(svc))
	r.Get("/pets/{petID}/visits", listVisitsHandler(svc))
}

type visitRequest struct {
	Date        string `json:"date"` // YYYY-MM-DD; vacío = hoy
	Description string `json:"description"`
}

type visitResponse struct {
	ID          int64  `json:"id"`
	PetID       int64  `json:"petId"`
	Date        string `json:"date"`
	Description string `json:"description"`
}

// createVisitHandler godoc
// @Summary Registrar visita
// @Description La mascota debe existir y pertenecer al owner indicado. Sin `date` se usa la fecha de hoy.
// @Tags visits
// @Accept json
// @Produce json
// @Param ownerID path int true "ID del owner"
// @Param petID path int true "ID de la mascota"
// @Param payload body visitRequest true "Datos de la visita"
// @Success 201 {object} visitResponse
// @Failure 400 {string} string "invalid json / description obligatoria"
// @Failure 404 {string} string "pet not found"
// @Router /owners/{ownerID}/pets/{petID}/visits [post]
func createVisitHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, err := httpx.PathID(r, "ownerID")
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		petID, err := httpx.PathID(r, "petID")
		if err != nil {
			httpx.WriteError(w, err)
			return
		}

		var req visitRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, err)
			return
		}
		if err := httpx.Required("description", req.Description); err != nil {
			httpx.WriteError(w, err)
			return
		}
		date, err := httpx.ParseDate("date", req.Date)
		if err != nil {
			httpx.WriteError(w, err)
			return
		}

		v := &model.Visit{Description: strings.TrimSpace(req.Description)}
		if date != nil {
			v.Date = *date
		}

		var out visitResponse
		err = svc.Update(r.Context(), func(ctx context.Context) error {
			pet, err := svc.pets.FindByID(ctx, petID)
			if err != nil {
				return err
			}
			if pet.OwnerID != ownerID {
				return fmt.Errorf("%w: pet %d for owner %d", model.ErrNotFound, petID, ownerID)
			}
			model.SetPetOnVisit(v, pet)

			saved, err := svc.Save(ctx, v)
			if err != nil {
				return err
			}
			out = toVisitResponse(saved)
			return nil
		})
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, out)
	}
}

// listVisitsHandler godoc
// @Summary Listar visitas de una mascota
// @Tags visits
// @Produce json
// @Param petID path int true "ID de la mascota"
// @Success 200 {array} visitResponse
// @Failure 404 {string} string "pet not found"
// @Router /pets/{petID}/visits [get]
func listVisitsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID, err := httpx.PathID(r, "petID")
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		var out []visitResponse
		err = svc.View(r.Context(), func(ctx context.Context) error {
			items, err := svc.ListByPet(ctx, petID)
			if err != nil {
				return err
			}
			out = make([]visitResponse, 0, len(items))
			for _, v := range items {
				out = append(out, toVisitResponse(v))
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

func toVisitResponse(v *model.Visit) visitResponse {
	return visitResponse{
		ID:          v.ID,
		PetID:       v.PetID,
		Date:        httpx.FormatDate(&v.Date),
		Description: v.Description,
	}
}
