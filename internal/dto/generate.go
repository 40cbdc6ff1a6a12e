package dto

type GenerateRequestDTO struct {
	FaceImageURL        string `json:"faceImageUrl" example:"data:image/png;base64,iVBOR..."`
	InspirationImageURL string `json:"inspirationImageUrl" example:"data:image/png;base64,iVBOR..."`
	ExtraImageURL       string `json:"extraImageUrl,omitempty" example:"data:image/png;base64,iVBOR..."`
	Prompt              string `json:"prompt" example:"dramatic reveal, bold yellow text, shocked face"`
	Count               int    `json:"count,omitempty" example:"2"`
}

type GenerateResponseDTO struct {
	Images []string `json:"images"`
}
