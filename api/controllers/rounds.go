package controllers

import (
	"errors"
	"net/http"
	"sort"
	"strconv"

	"github.com/codebreakerd260/SIH2k25-Prod/api/models"
	"github.com/codebreakerd260/SIH2k25-Prod/api/transport"
	"github.com/codebreakerd260/SIH2k25-Prod/logging"
	"github.com/codebreakerd260/SIH2k25-Prod/storage"
	"github.com/gin-gonic/gin"
)

type RoundController struct {
	storage storage.RoundStorage
}

func NewRoundController(s storage.RoundStorage) *RoundController {
	return &RoundController{storage: s}
}

func (c *RoundController) RegisterRoutes(engine *gin.Engine) {
	group := engine.Group("/api/admin/rounds", transport.AuthMiddleware(), transport.RequireRoles(storage.RoleAdmin))

	group.GET("", c.getAll)
	group.POST("", c.create)
	group.PUT("/:round", c.update)
	group.DELETE("/:round", c.delete)
}

// @Security BearerToken
// getAll godoc
// @Summary List all rounds
// @Tags admin/rounds
// @Produce json
// @Success 200 {array} models.RoundResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/admin/rounds [get]
func (c *RoundController) getAll(g *gin.Context) {
	rounds, err := c.storage.GetAll(g.Request.Context())
	if err != nil {
		logging.Log.Errorf("ROUND: failed to get all rounds: %v", err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: err.Error()})
		return
	}

	// Sort this so it shows the same for everyone
	sort.SliceStable(rounds, func(i, j int) bool {
		return rounds[i].Round < rounds[j].Round
	})

	responses := make([]models.RoundResponse, 0, len(rounds))
	for _, r := range rounds {
		responses = append(responses, models.TransformRoundFromStorage(r))
	}
	g.JSON(http.StatusOK, responses)
}

// @Security BearerToken
// create godoc
// @Summary Create a round
// @Tags admin/rounds
// @Accept json
// @Produce json
// @Param round body models.RoundCreateRequest true "Round object"
// @Success 201 {object} models.RoundResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse "Round number already exists"
// @Failure 500 {object} models.ErrorResponse
// @Router /api/admin/rounds [post]
func (c *RoundController) create(g *gin.Context) {
	var req models.RoundCreateRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "invalid round data: " + err.Error()})
		return
	}
	if !req.EndAt.After(req.StartAt) {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "endAt must be after startAt"})
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}
	round := &storage.Round{
		Round:    req.Round,
		Name:     req.Name,
		StartAt:  req.StartAt.UTC(),
		EndAt:    req.EndAt.UTC(),
		IsActive: isActive,
	}

	if err := c.storage.Create(g.Request.Context(), round); err != nil {
		if errors.Is(err, storage.ErrItemAlreadyExists) {
			g.JSON(http.StatusConflict, &models.ErrorResponse{Error: "round already exists"})
			return
		}
		logging.Log.Errorf("ROUND: failed to create round: %v", err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: err.Error()})
		return
	}

	logging.Log.Infof("ROUND: created round %d (%s)", round.Round, round.Name)
	g.JSON(http.StatusCreated, models.TransformRoundFromStorage(round))
}

// @Security BearerToken
// update godoc
// @Summary Update a round
// @Tags admin/rounds
// @Accept json
// @Produce json
// @Param round path int true "Round number"
// @Param body body models.RoundUpdateRequest true "Fields to change"
// @Success 200 {object} models.RoundResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/admin/rounds/{round} [put]
func (c *RoundController) update(g *gin.Context) {
	roundNo, err := strconv.Atoi(g.Param("round"))
	if err != nil || roundNo < 1 {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "invalid round number"})
		return
	}

	var req models.RoundUpdateRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "invalid round data"})
		return
	}

	round, err := c.storage.Get(g.Request.Context(), roundNo)
	if err != nil {
		logging.Log.Errorf("ROUND: failed to get round %d: %v", roundNo, err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: err.Error()})
		return
	}
	if round == nil {
		g.JSON(http.StatusNotFound, &models.ErrorResponse{Error: "round not found"})
		return
	}

	if req.Name != "" {
		round.Name = req.Name
	}
	if req.StartAt != nil {
		round.StartAt = req.StartAt.UTC()
	}
	if req.EndAt != nil {
		round.EndAt = req.EndAt.UTC()
	}
	if req.IsActive != nil {
		round.IsActive = *req.IsActive
	}
	if !round.EndAt.After(round.StartAt) {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "endAt must be after startAt"})
		return
	}

	if err := c.storage.Update(g.Request.Context(), round); err != nil {
		logging.Log.Errorf("ROUND: failed to update round %d: %v", roundNo, err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: err.Error()})
		return
	}

	g.JSON(http.StatusOK, models.TransformRoundFromStorage(round))
}

// @Security BearerToken
// delete godoc
// @Summary Delete a round
// @Tags admin/rounds
// @Produce json
// @Param round path int true "Round number"
// @Success 200 {object} map[string]string
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/admin/rounds/{round} [delete]
func (c *RoundController) delete(g *gin.Context) {
	roundNo, err := strconv.Atoi(g.Param("round"))
	if err != nil || roundNo < 1 {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "invalid round number"})
		return
	}

	if err := c.storage.Delete(g.Request.Context(), roundNo); err != nil {
		logging.Log.Errorf("ROUND: failed to delete round %d: %v", roundNo, err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: err.Error()})
		return
	}
	g.JSON(http.StatusOK, gin.H{"deleted": g.Param("round")})
}
