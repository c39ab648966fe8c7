package controllers

import (
	"net/http"
	"strconv"

	"github.com/codebreakerd260/SIH2k25-Prod/api/models"
	"github.com/codebreakerd260/SIH2k25-Prod/api/transport"
	"github.com/codebreakerd260/SIH2k25-Prod/logging"
	"github.com/codebreakerd260/SIH2k25-Prod/scoring"
	"github.com/codebreakerd260/SIH2k25-Prod/storage"
	"github.com/gin-gonic/gin"
)

type LeaderboardController struct {
	teamsStorage       storage.TeamStorage
	scoresStorage      storage.ScoreStorage
	submissionsStorage storage.SubmissionStorage
}

func NewLeaderboardController(teamStorage storage.TeamStorage, scoreStorage storage.ScoreStorage, submissionStorage storage.SubmissionStorage) *LeaderboardController {
	return &LeaderboardController{
		teamsStorage:       teamStorage,
		scoresStorage:      scoreStorage,
		submissionsStorage: submissionStorage,
	}
}

func (c *LeaderboardController) RegisterRoutes(engine *gin.Engine) {
	engine.GET("/api/leaderboard", transport.AuthMiddleware(), c.getLeaderboard)
}

// @Security BearerToken
// getLeaderboard godoc
// @Summary Ranked view of all teams
// @Description Without a round parameter teams rank by the mean of their per-round mentor averages. With round=N (or round=all) the admin final total takes precedence per record.
// @Tags leaderboard
// @Produce json
// @Param round query string false "Round number or 'all'"
// @Success 200 {object} models.LeaderboardResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/leaderboard [get]
func (c *LeaderboardController) getLeaderboard(g *gin.Context) {
	teams, err := c.teamsStorage.GetAll(g.Request.Context())
	if err != nil {
		logging.Log.Errorf("LEADERBOARD: failed to load teams: %v", err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: "could not load teams"})
		return
	}
	scores, err := c.scoresStorage.GetAll(g.Request.Context())
	if err != nil {
		logging.Log.Errorf("LEADERBOARD: failed to load scores: %v", err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: "could not load scores"})
		return
	}
	submissions, err := c.submissionsStorage.GetAll(g.Request.Context())
	if err != nil {
		logging.Log.Errorf("LEADERBOARD: failed to load submissions: %v", err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: "could not load submissions"})
		return
	}

	roundParam := g.Query("round")
	var standings []scoring.Standing
	switch roundParam {
	case "":
		standings = scoring.Standings(teams, scores, submissions)
	case "all":
		standings = scoring.RoundStandings(teams, scores, submissions, scoring.AllRounds)
	default:
		round, err := strconv.Atoi(roundParam)
		if err != nil || round < 1 {
			g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "invalid round parameter"})
			return
		}
		standings = scoring.RoundStandings(teams, scores, submissions, round)
	}

	g.JSON(http.StatusOK, models.TransformStandings(standings))
}
