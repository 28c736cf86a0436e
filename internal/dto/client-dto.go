package dto

type ClientDTO struct {
	ID      uint64 `json:"id"`
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type UpdateClientDTO struct {
	Name    *string `json:"name,omitempty" validate:"omitempty,min=2,max=255"`
	Phone   *string `json:"phone,omitempty" validate:"omitempty,max=50"`
	Address *string `json:"address,omitempty" validate:"omitempty,max=255"`
}
