package models

import "github.com/codebreakerd260/SIH2k25-Prod/storage"

type TeamMemberResponse struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	RollNo string `json:"rollNo"`
}

type TeamResponse struct {
	TeamCode           string               `json:"teamCode"`
	TeamName           string               `json:"teamName"`
	Leader             TeamMemberResponse   `json:"leader"`
	Members            []TeamMemberResponse `json:"members"`
	ProblemStatementID string               `json:"problemStatementId,omitempty"`
}

func TransformTeamFromStorage(t *storage.Team) TeamResponse {
	members := make([]TeamMemberResponse, 0, len(t.Members))
	for _, m := range t.Members {
		members = append(members, TeamMemberResponse(m))
	}
	return TeamResponse{
		TeamCode:           t.TeamCode,
		TeamName:           t.TeamName,
		Leader:             TeamMemberResponse(t.Leader),
		Members:            members,
		ProblemStatementID: t.ProblemStatementID,
	}
}
