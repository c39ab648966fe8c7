package controllers

import (
	"errors"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/codebreakerd260/SIH2k25-Prod/api/models"
	"github.com/codebreakerd260/SIH2k25-Prod/api/transport"
	"github.com/codebreakerd260/SIH2k25-Prod/logging"
	"github.com/codebreakerd260/SIH2k25-Prod/scoring"
	"github.com/codebreakerd260/SIH2k25-Prod/storage"
	"github.com/gin-gonic/gin"
)

type SubmissionController struct {
	submissionsStorage storage.SubmissionStorage
	roundsStorage      storage.RoundStorage
	now                func() time.Time
}

func NewSubmissionController(submissionStorage storage.SubmissionStorage, roundStorage storage.RoundStorage) *SubmissionController {
	return &SubmissionController{
		submissionsStorage: submissionStorage,
		roundsStorage:      roundStorage,
		now:                func() time.Time { return time.Now().UTC() },
	}
}

func (c *SubmissionController) RegisterRoutes(engine *gin.Engine) {
	group := engine.Group("/api/submissions", transport.AuthMiddleware())
	group.POST("", c.create)
	group.GET("/me", c.mySubmissions)

	admin := engine.Group("/api/admin/submissions", transport.AuthMiddleware(), transport.RequireRoles(storage.RoleAdmin))
	admin.PATCH("/:teamCode/:round/status", c.updateStatus)
}

// @Security BearerToken
// create godoc
// @Summary Submit a solution for a round
// @Description Only the team leader may submit, only inside the round window, at most once per round
// @Tags submissions
// @Accept json
// @Produce json
// @Param submission body models.SubmissionCreateRequest true "Submission data"
// @Success 201 {object} models.SubmissionResponse
// @Failure 400 {object} models.ErrorResponse "Validation, closed window or inactive round"
// @Failure 403 {object} models.ErrorResponse "Caller is not a team leader"
// @Failure 409 {object} models.ErrorResponse "Submission already exists for this round"
// @Failure 500 {object} models.ErrorResponse
// @Router /api/submissions [post]
func (c *SubmissionController) create(g *gin.Context) {
	teamCode := g.GetString(transport.CtxTeamCode)
	role := g.GetString(transport.CtxRole)
	if teamCode == "" || role != storage.RoleTeamLead {
		g.JSON(http.StatusForbidden, &models.ErrorResponse{Error: "only team leaders can submit solutions"})
		return
	}

	var req models.SubmissionCreateRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "invalid submission data: " + err.Error()})
		return
	}

	round, err := c.roundsStorage.Get(g.Request.Context(), req.Round)
	if err != nil {
		logging.Log.Errorf("SUBMISSION: failed to load round %d: %v", req.Round, err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: "could not check round window"})
		return
	}
	if err := scoring.CheckSubmissionWindow(round, c.now()); err != nil {
		logging.Log.Warnf("SUBMISSION: rejected for team %s round %d: %v", teamCode, req.Round, err)
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: err.Error()})
		return
	}

	submission := &storage.Submission{
		TeamCode: teamCode,
		Round:    req.Round,
		Fields: storage.SubmissionFields{
			Title:           req.Fields.Title,
			Description:     req.Fields.Description,
			RepoURL:         req.Fields.RepoURL,
			LiveURL:         req.Fields.LiveURL,
			PresentationURL: req.Fields.PresentationURL,
		},
		Status: storage.StatusSubmitted,
	}

	if err := c.submissionsStorage.Create(g.Request.Context(), submission); err != nil {
		if errors.Is(err, storage.ErrItemAlreadyExists) {
			g.JSON(http.StatusConflict, &models.ErrorResponse{Error: "submission already exists for this round"})
			return
		}
		logging.Log.Errorf("SUBMISSION: failed to create submission: %v", err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: "could not save submission"})
		return
	}

	logging.Log.Infof("SUBMISSION: team %s submitted for round %d", teamCode, req.Round)
	g.JSON(http.StatusCreated, models.TransformSubmissionFromStorage(submission))
}

// @Security BearerToken
// mySubmissions godoc
// @Summary Submissions of the caller's team
// @Tags submissions
// @Produce json
// @Success 200 {array} models.SubmissionResponse
// @Failure 404 {object} models.ErrorResponse "Caller has no team"
// @Failure 500 {object} models.ErrorResponse
// @Router /api/submissions/me [get]
func (c *SubmissionController) mySubmissions(g *gin.Context) {
	teamCode := g.GetString(transport.CtxTeamCode)
	if teamCode == "" {
		g.JSON(http.StatusNotFound, &models.ErrorResponse{Error: "no team associated with this account"})
		return
	}

	subs, err := c.submissionsStorage.GetByTeam(g.Request.Context(), teamCode)
	if err != nil {
		logging.Log.Errorf("SUBMISSION: failed to load submissions for %s: %v", teamCode, err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: "could not load submissions"})
		return
	}

	responses := make([]models.SubmissionResponse, 0, len(subs))
	for _, s := range subs {
		responses = append(responses, models.TransformSubmissionFromStorage(s))
	}
	sort.SliceStable(responses, func(i, j int) bool {
		return responses[i].Round < responses[j].Round
	})
	g.JSON(http.StatusOK, responses)
}

// @Security BearerToken
// updateStatus godoc
// @Summary Advance a submission status
// @Description Status only moves forward: draft, submitted, reviewed
// @Tags admin/submissions
// @Accept json
// @Produce json
// @Param teamCode path string true "Team code"
// @Param round path int true "Round number"
// @Param body body models.SubmissionStatusUpdateRequest true "New status"
// @Success 200 {object} models.SubmissionResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/admin/submissions/{teamCode}/{round}/status [patch]
func (c *SubmissionController) updateStatus(g *gin.Context) {
	teamCode := g.Param("teamCode")
	roundNo, err := strconv.Atoi(g.Param("round"))
	if err != nil || roundNo < 1 {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "invalid round number"})
		return
	}

	var req models.SubmissionStatusUpdateRequest
	if err := g.ShouldBindJSON(&req); err != nil || models.StatusRank(req.Status) < 0 {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "invalid status"})
		return
	}

	submission, err := c.submissionsStorage.Get(g.Request.Context(), teamCode, roundNo)
	if err != nil {
		logging.Log.Errorf("SUBMISSION: failed to load %s round %d: %v", teamCode, roundNo, err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: "could not load submission"})
		return
	}
	if submission == nil {
		g.JSON(http.StatusNotFound, &models.ErrorResponse{Error: "submission not found"})
		return
	}

	if models.StatusRank(req.Status) <= models.StatusRank(submission.Status) {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "status can only move forward"})
		return
	}

	if err := c.submissionsStorage.UpdateStatus(g.Request.Context(), teamCode, roundNo, req.Status); err != nil {
		logging.Log.Errorf("SUBMISSION: failed to update status for %s round %d: %v", teamCode, roundNo, err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: "could not update status"})
		return
	}

	submission.Status = req.Status
	g.JSON(http.StatusOK, models.TransformSubmissionFromStorage(submission))
}
