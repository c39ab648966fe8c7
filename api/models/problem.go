package models

import "github.com/codebreakerd260/SIH2k25-Prod/storage"

type ProblemCreateRequest struct {
	SNo          int    `json:"sNo" binding:"required,gt=0"`
	Organization string `json:"organization" binding:"required"`
	Title        string `json:"title" binding:"required"`
	Description  string `json:"description" binding:"required"`
	Category     string `json:"category" binding:"required"`
	PSNumber     string `json:"psNumber" binding:"required"`
	Theme        string `json:"theme" binding:"required"`
	IsActive     *bool  `json:"isActive"`
}

type ProblemUpdateRequest struct {
	Organization string `json:"organization"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Category     string `json:"category"`
	PSNumber     string `json:"psNumber"`
	Theme        string `json:"theme"`
	Ideas        *int   `json:"ideas"`
	IsActive     *bool  `json:"isActive"`
}

type ProblemResponse struct {
	SNo          int    `json:"sNo"`
	Organization string `json:"organization"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Category     string `json:"category"`
	PSNumber     string `json:"psNumber"`
	Theme        string `json:"theme"`
	Ideas        int    `json:"ideas"`
	IsActive     bool   `json:"isActive"`
}

func TransformProblemFromStorage(p *storage.ProblemStatement) ProblemResponse {
	return ProblemResponse{
		SNo:          p.SNo,
		Organization: p.Organization,
		Title:        p.Title,
		Description:  p.Description,
		Category:     p.Category,
		PSNumber:     p.PSNumber,
		Theme:        p.Theme,
		Ideas:        p.Ideas,
		IsActive:     p.IsActive,
	}
}
