package owners

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
	r.Get("/owners", listOwnersHandler(svc))
	r.Post("/owners", createOwnerHandler(svc))
	r.Get("/owners/{ownerID}", getOwnerHandler(svc))
	r.Put("/owners/{ownerID}", updateOwnerHandler(svc))
}

type ownerRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Address   string `json:"address"`
	City      string `json:"city"`
	Telephone string `json:"telephone"`
}

type ownerResponse struct {
	ID        int64              `json:"id"`
	FirstName string             `json:"firstName"`
	LastName  string             `json:"lastName"`
	Address   string             `json:"address"`
	City      string             `json:"city"`
	Telephone string             `json:"telephone"`
	Pets      []ownerPetResponse `json:"pets"`
}

type ownerPetResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	BirthDate string `json:"birthDate,omitempty"`
	Type      string `json:"type,omitempty"`
	Visits    int    `json:"visits"`
}

// validate replica las reglas del formulario de owner: todo obligatorio y
// teléfono numérico de hasta 10 dígitos.
func (req ownerRequest) validate() error {
	if err := httpx.Required(
		"firstName", req.FirstName,
		"lastName", req.LastName,
		"address", req.Address,
		"city", req.City,
		"telephone", req.Telephone,
	); err != nil {
		return err
	}
	tel := strings.TrimSpace(req.Telephone)
	if len(tel) > 10 || strings.Trim(tel, "0123456789") != "" {
		return fmt.Errorf("%w: telephone must be numeric (max 10 digits)", httpx.ErrBadRequest)
	}
	return nil
}

func (req ownerRequest) apply(o *model.Owner) {
	o.FirstName = strings.TrimSpace(req.FirstName)
	o.LastName = strings.TrimSpace(req.LastName)
	o.Address = strings.TrimSpace(req.Address)
	o.City = strings.TrimSpace(req.City)
	o.Telephone = strings.TrimSpace(req.Telephone)
}

// listOwnersHandler godoc
// @Summary Buscar owners por apellido
// @Description Devuelve los owners cuyo apellido contiene `lastName` (case-sensitive). Sin `lastName` devuelve todos.
// @Tags owners
// @Produce json
// @Param lastName query string false "Fragmento del apellido"
// @Success 200 {array} ownerResponse
// @Router /owners [get]
func listOwnersHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lastName := strings.TrimSpace(r.URL.Query().Get("lastName"))

		var out []ownerResponse
		err := svc.View(r.Context(), func(ctx context.Context) error {
			items, err := svc.FindAllByLastNameLike(ctx, lastName)
			if err != nil {
				return err
			}
			out = make([]ownerResponse, 0, len(items))
			for _, o := range items {
				out = append(out, toOwnerResponse(o))
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

// getOwnerHandler godoc
// @Summary Detalle de owner
// @Tags owners
// @Produce json
// @Param ownerID path int true "ID del owner"
// @Success 200 {object} ownerResponse
// @Failure 400 {string} string "ownerID inválido"
// @Failure 404 {string} string "owner not found"
// @Router /owners/{ownerID} [get]
func getOwnerHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := httpx.PathID(r, "ownerID")
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		var out ownerResponse
		err = svc.View(r.Context(), func(ctx context.Context) error {
			o, err := svc.FindByID(ctx, id)
			if err != nil {
				return err
			}
			out = toOwnerResponse(o)
			return nil
		})
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

// createOwnerHandler godoc
// @Summary Alta de owner
// @Tags owners
// @Accept json
// @Produce json
// @Param payload body ownerRequest true "Datos del owner"
// @Success 201 {object} ownerResponse
// @Failure 400 {string} string "invalid json / campos obligatorios"
// @Router /owners [post]
func createOwnerHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ownerRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, err)
			return
		}
		if err := req.validate(); err != nil {
			httpx.WriteError(w, err)
			return
		}

		o := &model.Owner{}
		req.apply(o)

		var out ownerResponse
		err := svc.Update(r.Context(), func(ctx context.Context) error {
			saved, err := svc.Save(ctx, o)
			if err != nil {
				return err
			}
			out = toOwnerResponse(saved)
			return nil
		})
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, out)
	}
}

// updateOwnerHandler godoc
// @Summary Modificar owner
// @Description Reemplaza los datos del owner. Sus mascotas no cambian.
// @Tags owners
// @Accept json
// @Produce json
// @Param ownerID path int true "ID del owner"
// @Param payload body ownerRequest true "Datos del owner"
// @Success 200 {object} ownerResponse
// @Failure 400 {string} string "invalid json / campos obligatorios"
// @Failure 404 {string} string "owner not found"
// @Router /owners/{ownerID} [put]
func updateOwnerHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := httpx.PathID(r, "ownerID")
		if err != nil {
			httpx.WriteError(w, err)
			return
		}

		var req ownerRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, err)
			return
		}
		if err := req.validate(); err != nil {
			httpx.WriteError(w, err)
			return
		}

		// el owner guardado se modifica bajo los locks de escritura
		var out ownerResponse
		err = svc.Update(r.Context(), func(ctx context.Context) error {
			o, err := svc.FindByID(ctx, id)
			if err != nil {
				return err
			}
			req.apply(o)

			saved, err := svc.Save(ctx, o)
			if err != nil {
				return err
			}
			out = toOwnerResponse(saved)
			return nil
		})
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

func toOwnerResponse(o *model.Owner) ownerResponse {
	out := ownerResponse{
		ID:        o.ID,
		FirstName: o.FirstName,
		LastName:  o.LastName,
		Address:   o.Address,
		City:      o.City,
		Telephone: o.Telephone,
		Pets:      make([]ownerPetResponse, 0),
	}
	for _, p := range o.Pets() {
		pr := ownerPetResponse{
			ID:        p.ID,
			Name:      p.Name,
			BirthDate: httpx.FormatDate(p.BirthDate),
			Visits:    len(p.Visits()),
		}
		if p.PetType != nil {
			pr.Type = p.PetType.Name
		}
		out.Pets = append(out.Pets, pr)
	}
	return out
}
