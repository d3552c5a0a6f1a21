package pets

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

// PetTypeFinder resuelve el tipo que llega por nombre en el request.
type PetTypeFinder interface {
	FindByName(ctx context.Context, name string) (*model.PetType, error)
}

func RegisterRoutes(r chi.Router, svc *Service, types PetTypeFinder) {
	r.Post("/owners/{ownerID}/pets", createPetHandler(svc, types))
	r.Put("/owners/{ownerID}/pets/{petID}", updatePetHandler(svc, types))

	r.Get("/pets/{petID}", getPetHandler(svc))
	r.Delete("/pets/{petID}", deletePetHandler(svc))
}

type petRequest struct {
	Name      string `json:"name"`
	BirthDate string `json:"birthDate"` // YYYY-MM-DD opcional
	Type      string `json:"type"`
}

type petResponse struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	BirthDate string          `json:"birthDate,omitempty"`
	Type      string          `json:"type,omitempty"`
	OwnerID   int64           `json:"ownerId"`
	Visits    []visitResponse `json:"visits"`
}

type visitResponse struct {
	ID          int64  `json:"id"`
	Date        string `json:"date"`
	Description string `json:"description"`
}

// resolve arma los campos del pet a partir del request (tipo por nombre).
func (req petRequest) resolve(ctx context.Context, types PetTypeFinder, p *model.Pet) error {
	if err := httpx.Required("name", req.Name, "type", req.Type); err != nil {
		return err
	}
	bd, err := httpx.ParseDate("birthDate", req.BirthDate)
	if err != nil {
		return err
	}
	pt, err := types.FindByName(ctx, strings.TrimSpace(req.Type))
	if errors.Is(err, model.ErrNotFound) {
		return fmt.Errorf("%w: unknown pet type %q", httpx.ErrBadRequest, req.Type)
	}
	if err != nil {
		return err
	}

	p.Name = strings.TrimSpace(req.Name)
	p.BirthDate = bd
	p.PetType = pt
	return nil
}

// createPetHandler godoc
// @Summary Alta de mascota para un owner
// @Description El tipo se indica por nombre (`type`) y debe existir. El nombre no puede repetirse dentro del mismo owner.
// @Tags pets
// @Accept json
// @Produce json
// @Param ownerID path int true "ID del owner"
// @Param payload body petRequest true "Datos de la mascota; birthDate en formato YYYY-MM-DD"
// @Success 201 {object} petResponse
// @Failure 400 {string} string "invalid json / tipo desconocido / nombre duplicado"
// @Failure 404 {string} string "owner not found"
// @Router /owners/{ownerID}/pets [post]
func createPetHandler(svc *Service, types PetTypeFinder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, err := httpx.PathID(r, "ownerID")
		if err != nil {
			httpx.WriteError(w, err)
			return
		}

		var req petRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, err)
			return
		}

		// el chequeo de nombre duplicado y el alta van bajo los mismos locks
		var out petResponse
		err = svc.Update(r.Context(), func(ctx context.Context) error {
			owner, err := svc.owners.FindByID(ctx, ownerID)
			if err != nil {
				return err
			}
			p := &model.Pet{OwnerID: owner.ID}
			if err := req.resolve(ctx, types, p); err != nil {
				return err
			}
			if hasPetNamed(owner, p.Name, 0) {
				return fmt.Errorf("%w: pet %q already exists", httpx.ErrBadRequest, p.Name)
			}

			saved, err := svc.Save(ctx, p)
			if err != nil {
				return err
			}
			out = toPetResponse(saved)
			return nil
		})
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, out)
	}
}

// updatePetHandler godoc
// @Summary Modificar mascota
// @Tags pets
// @Accept json
// @Produce json
// @Param ownerID path int true "ID del owner"
// @Param petID path int true "ID de la mascota"
// @Param payload body petRequest true "Datos de la mascota"
// @Success 200 {object} petResponse
// @Failure 400 {string} string "invalid json / tipo desconocido / nombre duplicado"
// @Failure 404 {string} string "owner o mascota no encontrados"
// @Router /owners/{ownerID}/pets/{petID} [put]
func updatePetHandler(svc *Service, types PetTypeFinder) http.HandlerFunc {
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

		var req petRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, err)
			return
		}

		var out petResponse
		err = svc.Update(r.Context(), func(ctx context.Context) error {
			owner, err := svc.owners.FindByID(ctx, ownerID)
			if err != nil {
				return err
			}
			p, err := svc.FindByID(ctx, petID)
			if err != nil {
				return err
			}
			if p.OwnerID != owner.ID {
				return fmt.Errorf("%w: pet %d for owner %d", model.ErrNotFound, petID, ownerID)
			}

			// se resuelve sobre una copia para no tocar la mascota guardada si el request es inválido
			next := model.Pet{BaseEntity: p.BaseEntity, OwnerID: p.OwnerID}
			if err := req.resolve(ctx, types, &next); err != nil {
				return err
			}
			if hasPetNamed(owner, next.Name, p.ID) {
				return fmt.Errorf("%w: pet %q already exists", httpx.ErrBadRequest, next.Name)
			}

			p.Name = next.Name
			p.BirthDate = next.BirthDate
			p.PetType = next.PetType

			saved, err := svc.Save(ctx, p)
			if err != nil {
				return err
			}
			out = toPetResponse(saved)
			return nil
		})
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

// getPetHandler godoc
// @Summary Detalle de mascota con sus visitas
// @Tags pets
// @Produce json
// @Param petID path int true "ID de la mascota"
// @Success 200 {object} petResponse
// @Failure 404 {string} string "pet not found"
// @Router /pets/{petID} [get]
func getPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := httpx.PathID(r, "petID")
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		var out petResponse
		err = svc.View(r.Context(), func(ctx context.Context) error {
			p, err := svc.FindByID(ctx, id)
			if err != nil {
				return err
			}
			out = toPetResponse(p)
			return nil
		})
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

// deletePetHandler godoc
// @Summary Baja de mascota
// @Description Borra también sus visitas. Si no existe no hace nada.
// @Tags pets
// @Param petID path int true "ID de la mascota"
// @Success 204
// @Router /pets/{petID} [delete]
func deletePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := httpx.PathID(r, "petID")
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		if err := svc.DeleteByID(r.Context(), id); err != nil {
			httpx.WriteError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// hasPetNamed: nombre case-insensitive, ignorando la propia mascota (skipID).
func hasPetNamed(owner *model.Owner, name string, skipID int64) bool {
	for _, p := range owner.Pets() {
		if p.ID != skipID && strings.EqualFold(p.Name, name) {
			return true
		}
	}
	return false
}

func toPetResponse(p *model.Pet) petResponse {
	out := petResponse{
		ID:        p.ID,
		Name:      p.Name,
		BirthDate: httpx.FormatDate(p.BirthDate),
		OwnerID:   p.OwnerID,
		Visits:    make([]visitResponse, 0),
	}
	if p.PetType != nil {
		out.Type = p.PetType.Name
	}
	for _, v := range p.Visits() {
		out.Visits = append(out.Visits, visitResponse{
			ID:          v.ID,
			Date:        httpx.FormatDate(&v.Date),
			Description: v.Description,
		})
	}
	return out
}
