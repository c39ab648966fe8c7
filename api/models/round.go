package models

import (
	"time"

	"github.com/codebreakerd260/SIH2k25-Prod/storage"
)

type RoundCreateRequest struct {
	Round    int       `json:"round" binding:"required,gt=0"`
	Name     string    `json:"name" binding:"required"`
	StartAt  time.Time `json:"startAt" binding:"required"`
	EndAt    time.Time `json:"endAt" binding:"required"`
	IsActive *bool     `json:"isActive"`
}

type RoundUpdateRequest struct {
	Name     string     `json:"name"`
	StartAt  *time.Time `json:"startAt"`
	EndAt    *time.Time `json:"endAt"`
	IsActive *bool      `json:"isActive"`
}

type RoundResponse struct {
	Round    int       `json:"round"`
	Name     string    `json:"name"`
	StartAt  time.Time `json:"startAt"`
	EndAt    time.Time `json:"endAt"`
	IsActive bool      `json:"isActive"`
}

func TransformRoundFromStorage(r *storage.Round) RoundResponse {
	return RoundResponse{
		Round:    r.Round,
		Name:     r.Name,
		StartAt:  r.StartAt,
		EndAt:    r.EndAt,
		IsActive: r.IsActive,
	}
}
