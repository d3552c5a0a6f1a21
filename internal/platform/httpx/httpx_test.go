package httpx

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"petclinic/internal/domain/model"

	"github.com/go-chi/chi/v5"
)

func TestWriteErrorStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("%w: x", ErrBadRequest), http.StatusBadRequest},
		{fmt.Errorf("%w: nil", model.ErrInvalidArgument), http.StatusBadRequest},
		{fmt.Errorf("%w: owner 1", model.ErrNotFound), http.StatusNotFound},
		{fmt.Errorf("%w: no owner", model.ErrMissingPrerequisite), http.StatusUnprocessableEntity},
		{errors.New("db down"), http.StatusInternalServerError},
	}
	for _, c := range cases {
		rec := httptest.NewRecorder()
		WriteError(rec, c.err)
		if rec.Code != c.want {
			t.Fatalf("%v: expected %d, got %d", c.err, c.want, rec.Code)
		}
	}
}

func TestPathID(t *testing.T) {
	r := chi.NewRouter()
	var (
		got    int64
		gotErr error
	)
	r.Get("/owners/{ownerID}", func(_ http.ResponseWriter, req *http.Request) {
		got, gotErr = PathID(req, "ownerID")
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/owners/12", nil))
	if gotErr != nil || got != 12 {
		t.Fatalf("expected 12, got %d (%v)", got, gotErr)
	}

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/owners/abc", nil))
	if !errors.Is(gotErr, ErrBadRequest) {
		t.Fatalf("expected ErrBadRequest, got %v", gotErr)
	}

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/owners/0", nil))
	if !errors.Is(gotErr, ErrBadRequest) {
		t.Fatalf("expected ErrBadRequest for 0, got %v", gotErr)
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("birthDate", "2020-01-01")
	if err != nil || d == nil || FormatDate(d) != "2020-01-01" {
		t.Fatalf("unexpected parse: %v %v", d, err)
	}
	if d, err := ParseDate("birthDate", " "); err != nil || d != nil {
		t.Fatalf("expected nil date for blank, got %v %v", d, err)
	}
	if _, err := ParseDate("birthDate", "01/01/2020"); !errors.Is(err, ErrBadRequest) {
		t.Fatalf("expected ErrBadRequest, got %v", err)
	}
}

func TestRequired(t *testing.T) {
	if err := Required("firstName", "Bob", "lastName", "Smith"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err := Required("firstName", "", "lastName", " ")
	if !errors.Is(err, ErrBadRequest) {
		t.Fatalf("expected ErrBadRequest, got %v", err)
	}
	if err.Error() != "bad request: required: firstName, lastName" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}
