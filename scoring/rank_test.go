package scoring

import (
	"testing"

	"github.com/codebreakerd260/SIH2k25-Prod/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func team(code, name string) *storage.Team {
	return &storage.Team{TeamCode: code, TeamName: name}
}

func TestStandings(t *testing.T) {
	teams := []*storage.Team{
		team("AAA111", "Alpha"),
		team("BBB222", "Bravo"),
		team("CCC333", "Charlie"),
	}

	t.Run("ranks by mean of per-round averages", func(t *testing.T) {
		scores := []*storage.Score{
			{TeamCode: "AAA111", Round: 1, AverageScore: 27},
			{TeamCode: "AAA111", Round: 2, AverageScore: 33},
			{TeamCode: "BBB222", Round: 1, AverageScore: 35},
		}

		standings := Standings(teams, scores, nil)
		require.Len(t, standings, 3)

		assert.Equal(t, "BBB222", standings[0].TeamCode)
		assert.Equal(t, 35.0, standings[0].AverageScore)
		assert.Equal(t, 1, standings[0].Rank)

		assert.Equal(t, "AAA111", standings[1].TeamCode)
		assert.Equal(t, 30.0, standings[1].AverageScore)
		assert.Equal(t, 2, standings[1].Rank)

		assert.Equal(t, "CCC333", standings[2].TeamCode)
		assert.Equal(t, 0.0, standings[2].AverageScore)
		assert.Equal(t, 3, standings[2].Rank)
	})

	t.Run("ranks are contiguous and ties break on team code", func(t *testing.T) {
		scores := []*storage.Score{
			{TeamCode: "CCC333", Round: 1, AverageScore: 20},
			{TeamCode: "BBB222", Round: 1, AverageScore: 20},
			{TeamCode: "AAA111", Round: 1, AverageScore: 20},
		}

		standings := Standings(teams, scores, nil)
		require.Len(t, standings, 3)
		for i, s := range standings {
			assert.Equal(t, i+1, s.Rank)
		}
		assert.Equal(t, "AAA111", standings[0].TeamCode)
		assert.Equal(t, "BBB222", standings[1].TeamCode)
		assert.Equal(t, "CCC333", standings[2].TeamCode)
	})

	t.Run("counts submissions per team", func(t *testing.T) {
		subs := []*storage.Submission{
			{TeamCode: "AAA111", Round: 1},
			{TeamCode: "AAA111", Round: 2},
			{TeamCode: "BBB222", Round: 1},
		}

		standings := Standings(teams, nil, subs)
		byCode := make(map[string]Standing)
		for _, s := range standings {
			byCode[s.TeamCode] = s
		}
		assert.Equal(t, 2, byCode["AAA111"].Submissions)
		assert.Equal(t, 1, byCode["BBB222"].Submissions)
		assert.Equal(t, 0, byCode["CCC333"].Submissions)
	})

	t.Run("admin total is ignored without a round filter", func(t *testing.T) {
		scores := []*storage.Score{
			{TeamCode: "AAA111", Round: 1, AverageScore: 27, AdminScore: &storage.AdminScore{Total: 85}},
		}

		standings := Standings(teams, scores, nil)
		assert.Equal(t, 27.0, standings[0].AverageScore)
	})
}

func TestRoundStandings(t *testing.T) {
	teams := []*storage.Team{
		team("AAA111", "Alpha"),
		team("BBB222", "Bravo"),
	}
	scores := []*storage.Score{
		{TeamCode: "AAA111", Round: 1, AverageScore: 27, AdminScore: &storage.AdminScore{Total: 85}},
		{TeamCode: "AAA111", Round: 2, AverageScore: 33},
		{TeamCode: "BBB222", Round: 1, AverageScore: 35},
	}

	t.Run("filters to the requested round and prefers the admin total", func(t *testing.T) {
		standings := RoundStandings(teams, scores, nil, 1)
		require.Len(t, standings, 2)

		assert.Equal(t, "AAA111", standings[0].TeamCode)
		assert.Equal(t, 85.0, standings[0].AverageScore)
		assert.Equal(t, "BBB222", standings[1].TeamCode)
		assert.Equal(t, 35.0, standings[1].AverageScore)
	})

	t.Run("round without a record scores zero", func(t *testing.T) {
		standings := RoundStandings(teams, scores, nil, 2)
		byCode := make(map[string]Standing)
		for _, s := range standings {
			byCode[s.TeamCode] = s
		}
		assert.Equal(t, 33.0, byCode["AAA111"].AverageScore)
		assert.Equal(t, 0.0, byCode["BBB222"].AverageScore)
	})

	t.Run("all rounds keeps every record with admin precedence per record", func(t *testing.T) {
		standings := RoundStandings(teams, scores, nil, AllRounds)
		byCode := make(map[string]Standing)
		for _, s := range standings {
			byCode[s.TeamCode] = s
		}
		// (85 + 33) / 2 for Alpha, 35 for Bravo
		assert.Equal(t, 59.0, byCode["AAA111"].AverageScore)
		assert.Equal(t, 35.0, byCode["BBB222"].AverageScore)
	})
}
