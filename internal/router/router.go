package router

import (
	"database/sql"
	"net/http"

	_ "petclinic/docs"
	"petclinic/internal/clinic"
	"petclinic/internal/domain/owners"
	"petclinic/internal/domain/pets"
	"petclinic/internal/domain/pettypes"
	"petclinic/internal/domain/specialties"
	"petclinic/internal/domain/vets"
	"petclinic/internal/domain/visits"
	"petclinic/internal/middleware"
	"petclinic/internal/platform/logger"
	"petclinic/internal/platform/metrics"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	Logger logger.Logger // nil => logger.Nop()

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	// nil => registry propio con collectors de Go y proceso.
	Registry *prometheus.Registry
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	reg := opts.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logging(log))
	r.Use(middleware.Recover(log))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	var repos clinic.Repositories
	if opts.DB != nil {
		repos = clinic.PostgresRepositories(opts.DB)
		log.Info("storage", map[string]any{"backing": "postgres"})
	} else {
		repos = clinic.MemoryRepositories(metrics.NewStore(reg))
		log.Info("storage", map[string]any{"backing": "memory"})
	}

	svc := clinic.New(repos)

	// Rutas por módulo
	owners.RegisterRoutes(r, svc.Owners)
	pets.RegisterRoutes(r, svc.Pets, svc.PetTypes)
	visits.RegisterRoutes(r, svc.Visits)
	vets.RegisterRoutes(r, svc.Vets, svc.Specialties)
	pettypes.RegisterRoutes(r, svc.PetTypes)
	specialties.RegisterRoutes(r, svc.Specialties)

	return r
}
