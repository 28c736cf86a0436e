package dto

// NamedDTO — элемент простого справочника (производители, категории).
type NamedDTO struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

type ModelDTO struct {
	ID           uint64 `json:"id"`
	Name         string `json:"name"`
	Manufacturer string `json:"manufacturer"`
	Category     string `json:"category"`
}

type SuggestionDTO struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

type CreateSuggestionDTO struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}
