package models

import "github.com/codebreakerd260/SIH2k25-Prod/scoring"

type LeaderboardEntry struct {
	TeamCode     string  `json:"teamCode"`
	TeamName     string  `json:"teamName"`
	AverageScore float64 `json:"averageScore"`
	Rank         int     `json:"rank"`
	Submissions  int     `json:"submissions"`
}

type LeaderboardResponse struct {
	Leaderboard []LeaderboardEntry `json:"leaderboard"`
}

func TransformStandings(standings []scoring.Standing) LeaderboardResponse {
	entries := make([]LeaderboardEntry, 0, len(standings))
	for _, s := range standings {
		entries = append(entries, LeaderboardEntry(s))
	}
	return LeaderboardResponse{Leaderboard: entries}
}
