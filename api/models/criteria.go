package models

import "github.com/codebreakerd260/SIH2k25-Prod/storage"

type CriterionCreateRequest struct {
	Key      string  `json:"key" binding:"required"`
	Name     string  `json:"name" binding:"required"`
	MaxScore int     `json:"maxScore" binding:"required,gt=0"`
	Weight   float64 `json:"weight" binding:"gte=0"`
	Round    int     `json:"round" binding:"gte=0"`
	IsActive *bool   `json:"isActive"`
	Order    int     `json:"order" binding:"gte=0"`
}

type CriterionUpdateRequest struct {
	Name     string   `json:"name"`
	MaxScore *int     `json:"maxScore"`
	Weight   *float64 `json:"weight"`
	Round    *int     `json:"round"`
	IsActive *bool    `json:"isActive"`
	Order    *int     `json:"order"`
}

type CriterionResponse struct {
	Key      string  `json:"key"`
	Name     string  `json:"name"`
	MaxScore int     `json:"maxScore"`
	Weight   float64 `json:"weight"`
	Round    int     `json:"round,omitempty"`
	IsActive bool    `json:"isActive"`
	Order    int     `json:"order"`
}

func TransformCriterionFromStorage(c *storage.JudgingCriterion) CriterionResponse {
	return CriterionResponse{
		Key:      c.Key,
		Name:     c.Name,
		MaxScore: c.MaxScore,
		Weight:   c.Weight,
		Round:    c.Round,
		IsActive: c.IsActive,
		Order:    c.Order,
	}
}
