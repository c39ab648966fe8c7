package controllers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/codebreakerd260/SIH2k25-Prod/api/models"
	"github.com/codebreakerd260/SIH2k25-Prod/api/transport"
	"github.com/codebreakerd260/SIH2k25-Prod/logging"
	"github.com/codebreakerd260/SIH2k25-Prod/scoring"
	"github.com/codebreakerd260/SIH2k25-Prod/storage"
	"github.com/gin-gonic/gin"
)

// Attempts per scoring request before giving up on the optimistic lock.
const maxUpsertAttempts = 3

type ScoreController struct {
	scoresStorage storage.ScoreStorage
	teamsStorage  storage.TeamStorage
}

func NewScoreController(scoreStorage storage.ScoreStorage, teamStorage storage.TeamStorage) *ScoreController {
	return &ScoreController{
		scoresStorage: scoreStorage,
		teamsStorage:  teamStorage,
	}
}

func (c *ScoreController) RegisterRoutes(engine *gin.Engine) {
	group := engine.Group("/api/scores", transport.AuthMiddleware())

	group.POST("/mentor", transport.RequireRoles(storage.RoleMentor, storage.RoleAdmin), c.submitMentorScore)
	group.POST("/admin", transport.RequireRoles(storage.RoleAdmin), c.submitAdminScore)
	group.GET("", transport.RequireRoles(storage.RoleMentor, storage.RoleAdmin), c.getAll)
	group.GET("/:teamCode/:round", transport.RequireRoles(storage.RoleMentor, storage.RoleAdmin), c.get)
}

// @Security BearerToken
// submitMentorScore godoc
// @Summary Record a mentor's score for a team and round
// @Description Re-submitting replaces the mentor's previous entry; the average over mentors is kept consistent
// @Tags scores
// @Accept json
// @Produce json
// @Param score body models.MentorScoreRequest true "Mentor score"
// @Success 200 {object} models.ScoreResponse
// @Failure 400 {object} models.ErrorResponse "Criteria value out of range"
// @Failure 404 {object} models.ErrorResponse "Unknown team"
// @Failure 500 {object} models.ErrorResponse
// @Router /api/scores/mentor [post]
func (c *ScoreController) submitMentorScore(g *gin.Context) {
	var req models.MentorScoreRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "invalid score data: " + err.Error()})
		return
	}

	criteria := req.Criteria.ToStorage()
	if err := scoring.ValidateCriteria(criteria); err != nil {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: err.Error()})
		return
	}

	if !c.teamExists(g, req.TeamCode) {
		return
	}

	entry := storage.MentorScore{
		MentorID: g.GetString(transport.CtxUserID),
		Criteria: criteria,
		Comments: req.Comments,
		Total:    scoring.CriteriaTotal(criteria),
	}

	score, err := c.upsertMentorEntry(g.Request.Context(), req.TeamCode, req.Round, entry)
	if err != nil {
		logging.Log.Errorf("SCORE: failed to record mentor score for %s round %d: %v", req.TeamCode, req.Round, err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: "could not save score"})
		return
	}

	logging.Log.Infof("SCORE: mentor %s scored team %s round %d (total %.1f)", entry.MentorID, req.TeamCode, req.Round, entry.Total)
	g.JSON(http.StatusOK, models.TransformScoreFromStorage(score))
}

// upsertMentorEntry runs the read-modify-write cycle under the document
// version lock. Concurrent mentors may collide on the conditional put; the
// loser re-reads and reapplies its entry, so no entry is ever duplicated or
// lost.
func (c *ScoreController) upsertMentorEntry(ctx context.Context, teamCode string, round int, entry storage.MentorScore) (*storage.Score, error) {
	var lastErr error
	for attempt := 0; attempt < maxUpsertAttempts; attempt++ {
		score, err := c.scoresStorage.Get(ctx, teamCode, round)
		if err != nil {
			return nil, err
		}

		if score == nil {
			score = &storage.Score{
				TeamCode:     teamCode,
				Round:        round,
				MentorScores: []storage.MentorScore{entry},
			}
			score.AverageScore = scoring.AverageTotal(score.MentorScores)
			err = c.scoresStorage.Create(ctx, score)
			if errors.Is(err, storage.ErrItemAlreadyExists) {
				lastErr = err
				continue
			}
			if err != nil {
				return nil, err
			}
			return score, nil
		}

		score.MentorScores = scoring.UpsertMentorEntry(score.MentorScores, entry)
		score.AverageScore = scoring.AverageTotal(score.MentorScores)
		err = c.scoresStorage.Update(ctx, score, score.Version)
		if errors.Is(err, storage.ErrVersionConflict) {
			lastErr = err
			continue
		}
		if err != nil {
			return nil, err
		}
		return score, nil
	}
	return nil, lastErr
}

// @Security BearerToken
// submitAdminScore godoc
// @Summary Record the administrator's final score for a team and round
// @Description Replaces any previous admin score wholesale; mentor scores and their average are untouched
// @Tags scores
// @Accept json
// @Produce json
// @Param score body models.AdminScoreRequest true "Admin score"
// @Success 200 {object} models.ScoreResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse "Unknown team"
// @Failure 500 {object} models.ErrorResponse
// @Router /api/scores/admin [post]
func (c *ScoreController) submitAdminScore(g *gin.Context) {
	var req models.AdminScoreRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "invalid score data: " + err.Error()})
		return
	}

	if !c.teamExists(g, req.TeamCode) {
		return
	}

	adminScore := &storage.AdminScore{
		Total:        *req.Total,
		FinalComment: req.FinalComment,
	}

	var result *storage.Score
	var lastErr error
	for attempt := 0; attempt < maxUpsertAttempts; attempt++ {
		score, err := c.scoresStorage.Get(g.Request.Context(), req.TeamCode, req.Round)
		if err != nil {
			lastErr = err
			break
		}

		if score == nil {
			score = &storage.Score{
				TeamCode:     req.TeamCode,
				Round:        req.Round,
				MentorScores: []storage.MentorScore{},
				AdminScore:   adminScore,
			}
			err = c.scoresStorage.Create(g.Request.Context(), score)
			if errors.Is(err, storage.ErrItemAlreadyExists) {
				lastErr = err
				continue
			}
		} else {
			score.AdminScore = adminScore
			err = c.scoresStorage.Update(g.Request.Context(), score, score.Version)
			if errors.Is(err, storage.ErrVersionConflict) {
				lastErr = err
				continue
			}
		}
		if err != nil {
			lastErr = err
			break
		}
		result = score
		lastErr = nil
		break
	}

	if lastErr != nil || result == nil {
		logging.Log.Errorf("SCORE: failed to record admin score for %s round %d: %v", req.TeamCode, req.Round, lastErr)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: "could not save score"})
		return
	}

	logging.Log.Infof("SCORE: admin set final total %.1f for team %s round %d", adminScore.Total, req.TeamCode, req.Round)
	g.JSON(http.StatusOK, models.TransformScoreFromStorage(result))
}

// @Security BearerToken
// getAll godoc
// @Summary List all score records
// @Tags scores
// @Produce json
// @Success 200 {array} models.ScoreResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/scores [get]
func (c *ScoreController) getAll(g *gin.Context) {
	scores, err := c.scoresStorage.GetAll(g.Request.Context())
	if err != nil {
		logging.Log.Errorf("SCORE: failed to list scores: %v", err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: "could not load scores"})
		return
	}

	responses := make([]models.ScoreResponse, 0, len(scores))
	for _, s := range scores {
		responses = append(responses, models.TransformScoreFromStorage(s))
	}
	g.JSON(http.StatusOK, responses)
}

// @Security BearerToken
// get godoc
// @Summary Get the score record for a team and round
// @Tags scores
// @Produce json
// @Param teamCode path string true "Team code"
// @Param round path int true "Round number"
// @Success 200 {object} models.ScoreResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/scores/{teamCode}/{round} [get]
func (c *ScoreController) get(g *gin.Context) {
	teamCode := g.Param("teamCode")
	round, err := strconv.Atoi(g.Param("round"))
	if err != nil || round < 1 {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "invalid round number"})
		return
	}

	score, err := c.scoresStorage.Get(g.Request.Context(), teamCode, round)
	if err != nil {
		logging.Log.Errorf("SCORE: failed to get score for %s round %d: %v", teamCode, round, err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: "could not load score"})
		return
	}
	if score == nil {
		g.JSON(http.StatusNotFound, &models.ErrorResponse{Error: "no score recorded for this team and round"})
		return
	}

	g.JSON(http.StatusOK, models.TransformScoreFromStorage(score))
}

func (c *ScoreController) teamExists(g *gin.Context, teamCode string) bool {
	team, err := c.teamsStorage.Get(g.Request.Context(), teamCode)
	if err != nil {
		logging.Log.Errorf("SCORE: failed to check team %s: %v", teamCode, err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: "could not verify team"})
		return false
	}
	if team == nil {
		g.JSON(http.StatusNotFound, &models.ErrorResponse{Error: "team not found"})
		return false
	}
	return true
}
