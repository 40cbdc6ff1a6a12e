package credits

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/thumbforge/thumbforge/internal/domain"
	"github.com/thumbforge/thumbforge/internal/dto"
	creditservice "github.com/thumbforge/thumbforge/internal/service/creditservice"
	"github.com/thumbforge/thumbforge/pkg/auth"
	"github.com/thumbforge/thumbforge/pkg/utils"
)

//go:generate mockgen -source=credits.go -destination=credits_mock.go -package=credits

type Service interface {
	GetProfile(ctx context.Context, userID int) (*domain.Profile, error)
	GetTransactions(ctx context.Context, userID int) ([]domain.CreditTransaction, error)
	Debit(ctx context.Context, userID, amount int, description string) (int, error)
}

type CreditsHandler struct {
	creditService Service
}

func New(creditService Service) *CreditsHandler {
	return &CreditsHandler{
		creditService: creditService,
	}
}

// GetCredits godoc
//
//	@Summary		Get current credit balance
//	@Description	Retrieve the credit balance and subscription tier for the authenticated account.
//	@Tags			Credits
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	dto.CreditsResponseDTO	"Current balance"
//	@Failure		401	{object}	utils.Response			"User not authorized"
//	@Failure		404	{object}	utils.Response			"Profile not found"
//	@Failure		500	{object}	utils.Response			"Internal server error"
//	@Router			/api/credits [get]
func (h *CreditsHandler) GetCredits(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	profile, err := h.creditService.GetProfile(r.Context(), userID)
	if err != nil {
		if errors.Is(err, creditservice.ErrProfileNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.CreditsResponseDTO{
		Credits:          profile.Credits,
		SubscriptionTier: profile.SubscriptionTier,
	})
}

// GetTransactions godoc
//
//	@Summary		Get credit transaction history
//	@Description	Get the ledger entries for the authenticated account, newest first.
//	@Tags			Credits
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		dto.TransactionResponseDTO	"Transaction history"
//	@Failure		401	{object}	utils.Response				"User not authorized"
//	@Failure		500	{object}	utils.Response				"Internal server error"
//	@Router			/api/credits/transactions [get]
func (h *CreditsHandler) GetTransactions(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	transactions, err := h.creditService.GetTransactions(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch transactions")
		return
	}

	response := make([]dto.TransactionResponseDTO, len(transactions))
	for i, t := range transactions {
		response[i] = dto.TransactionResponseDTO{
			Amount:      t.Amount,
			Type:        t.Type,
			Description: t.Description,
			CreatedAt:   t.CreatedAt,
		}
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// Decrement godoc
//
//	@Summary		Debit credits
//	@Description	Atomically deduct credits from the authenticated account. Fails when the balance is lower than the requested amount.
//	@Tags			Credits
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.DecrementRequestDTO	true	"Debit request payload"
//	@Success		200		{object}	dto.DecrementResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid request"
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		402		{object}	utils.Response	"Insufficient credits"
//	@Failure		404		{object}	utils.Response	"Profile not found"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/credits/decrement [post]
func (h *CreditsHandler) Decrement(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	var req dto.DecrementRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Count <= 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Count must be positive")
		return
	}

	description := fmt.Sprintf("Debited %d credit(s)", req.Count)
	newCredits, err := h.creditService.Debit(r.Context(), userID, req.Count, description)
	if err != nil {
		switch {
		case errors.Is(err, creditservice.ErrInsufficientCredits):
			utils.RespondWithError(w, http.StatusPaymentRequired, err.Error())
		case errors.Is(err, creditservice.ErrProfileNotFound):
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dto.DecrementResponseDTO{
		Success:    true,
		NewCredits: newCredits,
	})
}
