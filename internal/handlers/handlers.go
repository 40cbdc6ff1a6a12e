package handlers

import (
	"net/http"

	_ "github.com/thumbforge/thumbforge/docs"
	"github.com/thumbforge/thumbforge/internal/config"
	authhandlers "github.com/thumbforge/thumbforge/internal/handlers/auth"
	creditshandlers "github.com/thumbforge/thumbforge/internal/handlers/credits"
	generatehandlers "github.com/thumbforge/thumbforge/internal/handlers/generate"
	storagehandlers "github.com/thumbforge/thumbforge/internal/handlers/storage"
	webhookhandlers "github.com/thumbforge/thumbforge/internal/handlers/webhook"
	"github.com/thumbforge/thumbforge/internal/observability"
	"github.com/thumbforge/thumbforge/internal/service"
	"github.com/thumbforge/thumbforge/pkg/auth"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type AuthHandler interface {
	Register(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
}

type GenerateHandler interface {
	Generate(w http.ResponseWriter, r *http.Request)
}

type CreditsHandler interface {
	GetCredits(w http.ResponseWriter, r *http.Request)
	GetTransactions(w http.ResponseWriter, r *http.Request)
	Decrement(w http.ResponseWriter, r *http.Request)
}

type StorageHandler interface {
	GetGenerations(w http.ResponseWriter, r *http.Request)
	DeleteGeneration(w http.ResponseWriter, r *http.Request)
}

type WebhookHandler interface {
	HandleEvent(w http.ResponseWriter, r *http.Request)
}

type Handlers struct {
	AuthHandler     AuthHandler
	GenerateHandler GenerateHandler
	CreditsHandler  CreditsHandler
	StorageHandler  StorageHandler
	WebhookHandler  WebhookHandler
}

func New(s *service.Services, cfg *config.Config) *Handlers {
	return &Handlers{
		AuthHandler:     authhandlers.New(s.AuthService),
		GenerateHandler: generatehandlers.New(s.GenerationService),
		CreditsHandler:  creditshandlers.New(s.CreditService),
		StorageHandler:  storagehandlers.New(s.StorageService),
		WebhookHandler:  webhookhandlers.New(s.WebhookService, cfg.StripeWebhookSecret),
	}
}

func (h *Handlers) InitRoutes(r chi.Router) chi.Router {
	r.Use(
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
	)
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("doc.json"),
	))
	r.Get("/api/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Method(http.MethodGet, "/metrics", observability.Handler())

	r.Route("/api/user", func(r chi.Router) {
		r.Post("/register", h.AuthHandler.Register)
		r.Post("/login", h.AuthHandler.Login)
	})

	r.Post("/api/stripe/webhook", h.WebhookHandler.HandleEvent)

	r.Group(func(r chi.Router) {
		r.Use(auth.AuthMiddleware)
		r.Post("/api/generate", h.GenerateHandler.Generate)
		r.Route("/api/credits", func(r chi.Router) {
			r.Get("/", h.CreditsHandler.GetCredits)
			r.Get("/transactions", h.CreditsHandler.GetTransactions)
			r.Post("/decrement", h.CreditsHandler.Decrement)
		})
		r.Route("/api/storage", func(r chi.Router) {
			r.Get("/", h.StorageHandler.GetGenerations)
			r.Delete("/{id}", h.StorageHandler.DeleteGeneration)
		})
	})

	return r
}
