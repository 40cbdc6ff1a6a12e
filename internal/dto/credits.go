package dto

import "time"

type CreditsResponseDTO struct {
	Credits          int    `json:"credits" example:"5"`
	SubscriptionTier string `json:"subscriptionTier" example:"starter"`
}

type DecrementRequestDTO struct {
	Count int `json:"count" example:"2"`
}

type DecrementResponseDTO struct {
	Success    bool `json:"success"`
	NewCredits int  `json:"newCredits" example:"3"`
}

type TransactionResponseDTO struct {
	Amount      int       `json:"amount" example:"-2"`
	Type        string    `json:"type" example:"generation"`
	Description string    `json:"description" example:"Generated 2 thumbnail(s)"`
	CreatedAt   time.Time `json:"created_at" example:"2024-11-09T16:09:57+03:00"`
}
