package dto

import "time"

type GenerationResponseDTO struct {
	ID          int       `json:"id" example:"42"`
	Prompt      string    `json:"prompt" example:"dramatic reveal, bold yellow text"`
	ImageURL    string    `json:"image_url" example:"https://storage.example.com/generations/1/generation-abc.png"`
	CreditsUsed int       `json:"credits_used" example:"1"`
	CreatedAt   time.Time `json:"created_at" example:"2024-11-09T16:09:57+03:00"`
}

type DeleteGenerationResponseDTO struct {
	Success bool `json:"success"`
}
