package generate

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/thumbforge/thumbforge/internal/dto"
	"github.com/thumbforge/thumbforge/internal/observability"
	creditservice "github.com/thumbforge/thumbforge/internal/service/creditservice"
	generationservice "github.com/thumbforge/thumbforge/internal/service/generationservice"
	"github.com/thumbforge/thumbforge/pkg/auth"
	"github.com/thumbforge/thumbforge/pkg/utils"
)

//go:generate mockgen -source=generate.go -destination=generate_mock.go -package=generate

type Service interface {
	Generate(ctx context.Context, userID int, input generationservice.GenerateInput) ([]string, error)
}

type GenerateHandler struct {
	generationService Service
}

func New(generationService Service) *GenerateHandler {
	return &GenerateHandler{
		generationService: generationService,
	}
}

// Generate godoc
//
//	@Summary		Generate thumbnails
//	@Description	Generate thumbnail images from a face image, an inspiration image and a prompt. Each produced image costs one credit; requests above the balance are clamped down.
//	@Tags			Generation
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.GenerateRequestDTO	true	"Generation request payload"
//	@Success		200		{object}	dto.GenerateResponseDTO	"Stored image URLs, or raw payloads when storage is degraded"
//	@Failure		400		{object}	utils.Response			"Invalid request"
//	@Failure		401		{object}	utils.Response			"User not authorized"
//	@Failure		402		{object}	utils.Response			"No credits available"
//	@Failure		404		{object}	utils.Response			"Profile not found"
//	@Failure		429		{object}	utils.Response			"Rate limit exceeded"
//	@Failure		500		{object}	utils.Response			"Internal server error"
//	@Router			/api/generate [post]
func (h *GenerateHandler) Generate(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	var req dto.GenerateRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	images, err := h.generationService.Generate(r.Context(), userID, generationservice.GenerateInput{
		FaceImage:        req.FaceImageURL,
		InspirationImage: req.InspirationImageURL,
		ExtraImage:       req.ExtraImageURL,
		Prompt:           req.Prompt,
		Count:            req.Count,
	})
	if err != nil {
		switch {
		case errors.Is(err, generationservice.ErrMissingInput),
			errors.Is(err, generationservice.ErrPromptTooShort),
			errors.Is(err, generationservice.ErrCountOutOfRange):
			observability.GenerationsTotal.WithLabelValues("invalid").Inc()
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, generationservice.ErrRateLimited):
			observability.GenerationsTotal.WithLabelValues("rate_limited").Inc()
			utils.RespondWithError(w, http.StatusTooManyRequests, err.Error())
		case errors.Is(err, generationservice.ErrNoCredits):
			observability.GenerationsTotal.WithLabelValues("no_credits").Inc()
			utils.RespondWithError(w, http.StatusPaymentRequired, err.Error())
		case errors.Is(err, creditservice.ErrProfileNotFound):
			observability.GenerationsTotal.WithLabelValues("no_profile").Inc()
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
		default:
			observability.GenerationsTotal.WithLabelValues("error").Inc()
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	observability.GenerationsTotal.WithLabelValues("ok").Inc()
	observability.CreditsSpentTotal.Add(float64(len(images)))
	utils.RespondWithJSON(w, http.StatusOK, dto.GenerateResponseDTO{
		Images: images,
	})
}
