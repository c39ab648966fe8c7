package models

import (
	"time"

	"github.com/codebreakerd260/SIH2k25-Prod/storage"
)

type SubmissionFieldsRequest struct {
	Title           string `json:"title" binding:"required,min=5"`
	Description     string `json:"description" binding:"required,min=20"`
	RepoURL         string `json:"repoUrl" binding:"omitempty,url"`
	LiveURL         string `json:"liveUrl" binding:"omitempty,url"`
	PresentationURL string `json:"presentationUrl" binding:"omitempty,url"`
}

type SubmissionCreateRequest struct {
	Round  int                     `json:"round" binding:"required,gt=0"`
	Fields SubmissionFieldsRequest `json:"fields" binding:"required"`
}

type SubmissionStatusUpdateRequest struct {
	Status string `json:"status" binding:"required"`
}

type SubmissionResponse struct {
	TeamCode        string    `json:"teamCode"`
	Round           int       `json:"round"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	RepoURL         string    `json:"repoUrl,omitempty"`
	LiveURL         string    `json:"liveUrl,omitempty"`
	PresentationURL string    `json:"presentationUrl,omitempty"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"createdAt"`
}

func TransformSubmissionFromStorage(s *storage.Submission) SubmissionResponse {
	return SubmissionResponse{
		TeamCode:        s.TeamCode,
		Round:           s.Round,
		Title:           s.Fields.Title,
		Description:     s.Fields.Description,
		RepoURL:         s.Fields.RepoURL,
		LiveURL:         s.Fields.LiveURL,
		PresentationURL: s.Fields.PresentationURL,
		Status:          s.Status,
		CreatedAt:       s.CreatedAt,
	}
}

// StatusRank orders submission statuses along their one-way lifecycle.
// A transition is legal only when the rank strictly increases.
func StatusRank(status string) int {
	switch status {
	case storage.StatusDraft:
		return 0
	case storage.StatusSubmitted:
		return 1
	case storage.StatusReviewed:
		return 2
	default:
		return -1
	}
}
