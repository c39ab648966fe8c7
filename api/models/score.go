package models

import (
	"time"

	"github.com/codebreakerd260/SIH2k25-Prod/storage"
)

type CriteriaValues struct {
	Innovation   *float64 `json:"innovation" binding:"required"`
	Feasibility  *float64 `json:"feasibility" binding:"required"`
	Technical    *float64 `json:"technical" binding:"required"`
	Presentation *float64 `json:"presentation" binding:"required"`
}

func (c CriteriaValues) ToStorage() storage.ScoreCriteria {
	return storage.ScoreCriteria{
		Innovation:   *c.Innovation,
		Feasibility:  *c.Feasibility,
		Technical:    *c.Technical,
		Presentation: *c.Presentation,
	}
}

type MentorScoreRequest struct {
	TeamCode string         `json:"teamCode" binding:"required"`
	Round    int            `json:"round" binding:"required,gt=0"`
	Criteria CriteriaValues `json:"criteria" binding:"required"`
	Comments string         `json:"comments" binding:"required,min=1"`
}

type AdminScoreRequest struct {
	TeamCode     string   `json:"teamCode" binding:"required"`
	Round        int      `json:"round" binding:"required,gt=0"`
	Total        *float64 `json:"total" binding:"required,gte=0"`
	FinalComment string   `json:"finalComment"`
}

type MentorScoreEntryResponse struct {
	MentorID     string  `json:"mentorId"`
	Innovation   float64 `json:"innovation"`
	Feasibility  float64 `json:"feasibility"`
	Technical    float64 `json:"technical"`
	Presentation float64 `json:"presentation"`
	Comments     string  `json:"comments"`
	Total        float64 `json:"total"`
}

type AdminScoreResponse struct {
	Total        float64 `json:"total"`
	FinalComment string  `json:"finalComment"`
}

type ScoreResponse struct {
	TeamCode     string                     `json:"teamCode"`
	Round        int                        `json:"round"`
	MentorScores []MentorScoreEntryResponse `json:"mentorScores"`
	AdminScore   *AdminScoreResponse        `json:"adminScore,omitempty"`
	AverageScore float64                    `json:"averageScore"`
	UpdatedAt    time.Time                  `json:"updatedAt"`
}

func TransformScoreFromStorage(s *storage.Score) ScoreResponse {
	entries := make([]MentorScoreEntryResponse, 0, len(s.MentorScores))
	for _, m := range s.MentorScores {
		entries = append(entries, MentorScoreEntryResponse{
			MentorID:     m.MentorID,
			Innovation:   m.Criteria.Innovation,
			Feasibility:  m.Criteria.Feasibility,
			Technical:    m.Criteria.Technical,
			Presentation: m.Criteria.Presentation,
			Comments:     m.Comments,
			Total:        m.Total,
		})
	}

	resp := ScoreResponse{
		TeamCode:     s.TeamCode,
		Round:        s.Round,
		MentorScores: entries,
		AverageScore: s.AverageScore,
		UpdatedAt:    s.UpdatedAt,
	}
	if s.AdminScore != nil {
		resp.AdminScore = &AdminScoreResponse{
			Total:        s.AdminScore.Total,
			FinalComment: s.AdminScore.FinalComment,
		}
	}
	return resp
}
