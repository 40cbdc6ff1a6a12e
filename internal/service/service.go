package service

import (
	"github.com/thumbforge/thumbforge/internal/config"
	"github.com/thumbforge/thumbforge/internal/genai"
	"github.com/thumbforge/thumbforge/internal/handlers/auth"
	"github.com/thumbforge/thumbforge/internal/handlers/credits"
	"github.com/thumbforge/thumbforge/internal/handlers/generate"
	"github.com/thumbforge/thumbforge/internal/handlers/storage"
	"github.com/thumbforge/thumbforge/internal/handlers/webhook"
	"github.com/thumbforge/thumbforge/internal/pg"
	"github.com/thumbforge/thumbforge/internal/ratelimit"
	"github.com/thumbforge/thumbforge/internal/repo"
	objectstorage "github.com/thumbforge/thumbforge/internal/storage"
	"github.com/thumbforge/thumbforge/internal/stripe"

	pkgauth "github.com/thumbforge/thumbforge/pkg/auth"
	"github.com/thumbforge/thumbforge/pkg/clients"

	authservice "github.com/thumbforge/thumbforge/internal/service/authservice"
	creditservice "github.com/thumbforge/thumbforge/internal/service/creditservice"
	generationservice "github.com/thumbforge/thumbforge/internal/service/generationservice"
	webhookservice "github.com/thumbforge/thumbforge/internal/service/webhookservice"
)

type Services struct {
	AuthService       auth.Service
	CreditService     credits.Service
	GenerationService generate.Service
	StorageService    storage.Service
	WebhookService    webhook.Service

	RateLimiter *ratelimit.Limiter
}

func New(repo *repo.Repositories, txManager pg.TXManager, cfg *config.Config) *Services {
	httpClient := clients.NewHTTPClient()

	var store ratelimit.Store
	if cfg.RedisAddr != "" {
		store = ratelimit.NewRedisStore(cfg.RedisAddr)
	} else {
		store = ratelimit.NewMemoryStore()
	}
	limiter := ratelimit.New(store, cfg.RateLimit, cfg.RateWindow)

	creditService := creditservice.New(repo.ProfileRepo, repo.TransactionRepo, txManager, cfg.FreeCredits)
	authService := authservice.New(repo.UserRepo, creditService, &pkgauth.HashService{}, &pkgauth.JWTService{})
	generationService := generationservice.New(
		repo.GenerationRepo,
		repo.UnbilledRepo,
		creditService,
		genai.New(cfg, httpClient),
		objectstorage.New(cfg, httpClient),
		limiter,
		txManager,
	)
	webhookService := webhookservice.New(
		repo.UserRepo,
		repo.PaymentRepo,
		creditService,
		stripe.New(cfg, httpClient),
		txManager,
		cfg,
	)

	return &Services{
		AuthService:       authService,
		CreditService:     creditService,
		GenerationService: generationService,
		StorageService:    generationService,
		WebhookService:    webhookService,
		RateLimiter:       limiter,
	}
}
