package dto

type SettingDTO struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type SetSettingDTO struct {
	Value string `json:"value" validate:"max=4000"`
}
