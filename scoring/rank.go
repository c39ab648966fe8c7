package scoring

import (
	"sort"

	"github.com/codebreakerd260/SIH2k25-Prod/storage"
)

// AllRounds selects every round in RoundStandings.
const AllRounds = 0

type Standing struct {
	TeamCode     string
	TeamName     string
	AverageScore float64
	Rank         int
	Submissions  int
}

// Standings ranks every team by the mean of its per-round average scores,
// equal-weighted per round. Teams without any Score record rank with 0.
// Ties break on ascending team code so the order is deterministic.
func Standings(teams []*storage.Team, scores []*storage.Score, submissions []*storage.Submission) []Standing {
	return rank(teams, scores, submissions, AllRounds, false)
}

// RoundStandings is the round-filtered variant: only Score records for the
// requested round count (AllRounds keeps every record), and an admin final
// total takes precedence over the mentor average for each record.
func RoundStandings(teams []*storage.Team, scores []*storage.Score, submissions []*storage.Submission, round int) []Standing {
	return rank(teams, scores, submissions, round, true)
}

func rank(teams []*storage.Team, scores []*storage.Score, submissions []*storage.Submission, round int, preferAdmin bool) []Standing {
	scoresByTeam := make(map[string][]*storage.Score)
	for _, s := range scores {
		if round != AllRounds && s.Round != round {
			continue
		}
		scoresByTeam[s.TeamCode] = append(scoresByTeam[s.TeamCode], s)
	}

	subsByTeam := make(map[string]int)
	for _, s := range submissions {
		subsByTeam[s.TeamCode]++
	}

	standings := make([]Standing, 0, len(teams))
	for _, team := range teams {
		teamScores := scoresByTeam[team.TeamCode]
		avg := 0.0
		if len(teamScores) > 0 {
			sum := 0.0
			for _, s := range teamScores {
				sum += scoreKey(s, preferAdmin)
			}
			avg = sum / float64(len(teamScores))
		}
		standings = append(standings, Standing{
			TeamCode:     team.TeamCode,
			TeamName:     team.TeamName,
			AverageScore: avg,
			Submissions:  subsByTeam[team.TeamCode],
		})
	}

	sort.SliceStable(standings, func(i, j int) bool {
		if standings[i].AverageScore != standings[j].AverageScore {
			return standings[i].AverageScore > standings[j].AverageScore
		}
		return standings[i].TeamCode < standings[j].TeamCode
	})
	for i := range standings {
		standings[i].Rank = i + 1
	}
	return standings
}

func scoreKey(s *storage.Score, preferAdmin bool) float64 {
	if preferAdmin && s.AdminScore != nil {
		return s.AdminScore.Total
	}
	return s.AverageScore
}
