package storage

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/thumbforge/thumbforge/internal/domain"
	"github.com/thumbforge/thumbforge/internal/dto"
	generationservice "github.com/thumbforge/thumbforge/internal/service/generationservice"
	"github.com/thumbforge/thumbforge/pkg/auth"
	"github.com/thumbforge/thumbforge/pkg/utils"
)

//go:generate mockgen -source=storage.go -destination=storage_mock.go -package=storage

type Service interface {
	GetGenerations(ctx context.Context, userID int) ([]domain.Generation, error)
	DeleteGeneration(ctx context.Context, userID, generationID int) error
}

type StorageHandler struct {
	generationService Service
}

func New(generationService Service) *StorageHandler {
	return &StorageHandler{
		generationService: generationService,
	}
}

// GetGenerations godoc
//
//	@Summary		List stored generations
//	@Description	Get the stored generations for the authenticated account, newest first.
//	@Tags			Storage
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		dto.GenerationResponseDTO	"Stored generations"
//	@Failure		401	{object}	utils.Response				"User not authorized"
//	@Failure		500	{object}	utils.Response				"Internal server error"
//	@Router			/api/storage [get]
func (h *StorageHandler) GetGenerations(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	generations, err := h.generationService.GetGenerations(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch generations")
		return
	}

	response := make([]dto.GenerationResponseDTO, len(generations))
	for i, g := range generations {
		response[i] = dto.GenerationResponseDTO{
			ID:          g.ID,
			Prompt:      g.Prompt,
			ImageURL:    g.ImageURL,
			CreditsUsed: g.CreditsUsed,
			CreatedAt:   g.CreatedAt,
		}
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// DeleteGeneration godoc
//
//	@Summary		Delete a stored generation
//	@Description	Remove one generation's stored image and its record. Only the owning account may delete it.
//	@Tags			Storage
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		int	true	"Generation ID"
//	@Success		200	{object}	dto.DeleteGenerationResponseDTO
//	@Failure		400	{object}	utils.Response	"Invalid generation id"
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		404	{object}	utils.Response	"Generation not found"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/storage/{id} [delete]
func (h *StorageHandler) DeleteGeneration(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	generationID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid generation id")
		return
	}

	if err := h.generationService.DeleteGeneration(r.Context(), userID, generationID); err != nil {
		if errors.Is(err, generationservice.ErrGenerationNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dto.DeleteGenerationResponseDTO{
		Success: true,
	})
}
