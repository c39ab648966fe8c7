package controllers

import (
	"errors"
	"net/http"
	"sort"

	"github.com/codebreakerd260/SIH2k25-Prod/api/models"
	"github.com/codebreakerd260/SIH2k25-Prod/api/transport"
	"github.com/codebreakerd260/SIH2k25-Prod/logging"
	"github.com/codebreakerd260/SIH2k25-Prod/storage"
	"github.com/gin-gonic/gin"
)

type CriteriaController struct {
	storage storage.CriterionStorage
}

func NewCriteriaController(s storage.CriterionStorage) *CriteriaController {
	return &CriteriaController{storage: s}
}

func (c *CriteriaController) RegisterRoutes(engine *gin.Engine) {
	engine.GET("/api/criteria", transport.AuthMiddleware(), c.getActive)

	group := engine.Group("/api/admin/criteria", transport.AuthMiddleware(), transport.RequireRoles(storage.RoleAdmin))
	group.GET("", c.getAll)
	group.POST("", c.create)
	group.PUT("/:key", c.update)
	group.DELETE("/:key", c.delete)
}

// @Security BearerToken
// getActive godoc
// @Summary List active judging criteria
// @Description Only active criteria are exposed to mentors at scoring time
// @Tags criteria
// @Produce json
// @Success 200 {array} models.CriterionResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/criteria [get]
func (c *CriteriaController) getActive(g *gin.Context) {
	criteria, err := c.storage.GetAll(g.Request.Context())
	if err != nil {
		logging.Log.Errorf("CRITERION: failed to get criteria: %v", err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: err.Error()})
		return
	}

	responses := make([]models.CriterionResponse, 0, len(criteria))
	for _, cr := range criteria {
		if !cr.IsActive {
			continue
		}
		responses = append(responses, models.TransformCriterionFromStorage(cr))
	}
	sortCriteria(responses)
	g.JSON(http.StatusOK, responses)
}

// @Security BearerToken
// getAll godoc
// @Summary List all judging criteria
// @Tags admin/criteria
// @Produce json
// @Success 200 {array} models.CriterionResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/admin/criteria [get]
func (c *CriteriaController) getAll(g *gin.Context) {
	criteria, err := c.storage.GetAll(g.Request.Context())
	if err != nil {
		logging.Log.Errorf("CRITERION: failed to get criteria: %v", err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: err.Error()})
		return
	}

	responses := make([]models.CriterionResponse, 0, len(criteria))
	for _, cr := range criteria {
		responses = append(responses, models.TransformCriterionFromStorage(cr))
	}
	sortCriteria(responses)
	g.JSON(http.StatusOK, responses)
}

// @Security BearerToken
// create godoc
// @Summary Create a judging criterion
// @Tags admin/criteria
// @Accept json
// @Produce json
// @Param criterion body models.CriterionCreateRequest true "Criterion object"
// @Success 201 {object} models.CriterionResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse "Key already exists"
// @Failure 500 {object} models.ErrorResponse
// @Router /api/admin/criteria [post]
func (c *CriteriaController) create(g *gin.Context) {
	var req models.CriterionCreateRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "invalid criterion data: " + err.Error()})
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}
	criterion := &storage.JudgingCriterion{
		Key:      req.Key,
		Name:     req.Name,
		MaxScore: req.MaxScore,
		Weight:   req.Weight,
		Round:    req.Round,
		IsActive: isActive,
		Order:    req.Order,
	}

	if err := c.storage.Create(g.Request.Context(), criterion); err != nil {
		if errors.Is(err, storage.ErrItemAlreadyExists) {
			g.JSON(http.StatusConflict, &models.ErrorResponse{Error: "criterion key already exists"})
			return
		}
		logging.Log.Errorf("CRITERION: failed to create criterion: %v", err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: err.Error()})
		return
	}

	g.JSON(http.StatusCreated, models.TransformCriterionFromStorage(criterion))
}

// @Security BearerToken
// update godoc
// @Summary Update a judging criterion
// @Tags admin/criteria
// @Accept json
// @Produce json
// @Param key path string true "Criterion key"
// @Param body body models.CriterionUpdateRequest true "Fields to change"
// @Success 200 {object} models.CriterionResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/admin/criteria/{key} [put]
func (c *CriteriaController) update(g *gin.Context) {
	key := g.Param("key")

	var req models.CriterionUpdateRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "invalid criterion data"})
		return
	}

	criterion, err := c.storage.Get(g.Request.Context(), key)
	if err != nil {
		logging.Log.Errorf("CRITERION: failed to get criterion %s: %v", key, err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: err.Error()})
		return
	}
	if criterion == nil {
		g.JSON(http.StatusNotFound, &models.ErrorResponse{Error: "criterion not found"})
		return
	}

	if req.Name != "" {
		criterion.Name = req.Name
	}
	if req.MaxScore != nil {
		if *req.MaxScore < 1 {
			g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "maxScore must be positive"})
			return
		}
		criterion.MaxScore = *req.MaxScore
	}
	if req.Weight != nil {
		if *req.Weight < 0 {
			g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "weight must not be negative"})
			return
		}
		criterion.Weight = *req.Weight
	}
	if req.Round != nil {
		criterion.Round = *req.Round
	}
	if req.IsActive != nil {
		criterion.IsActive = *req.IsActive
	}
	if req.Order != nil {
		criterion.Order = *req.Order
	}

	if err := c.storage.Update(g.Request.Context(), criterion); err != nil {
		logging.Log.Errorf("CRITERION: failed to update criterion %s: %v", key, err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: err.Error()})
		return
	}

	g.JSON(http.StatusOK, models.TransformCriterionFromStorage(criterion))
}

// @Security BearerToken
// delete godoc
// @Summary Delete a judging criterion
// @Tags admin/criteria
// @Produce json
// @Param key path string true "Criterion key"
// @Success 200 {object} map[string]string
// @Failure 500 {object} models.ErrorResponse
// @Router /api/admin/criteria/{key} [delete]
func (c *CriteriaController) delete(g *gin.Context) {
	key := g.Param("key")

	if err := c.storage.Delete(g.Request.Context(), key); err != nil {
		logging.Log.Errorf("CRITERION: failed to delete criterion %s: %v", key, err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: err.Error()})
		return
	}
	g.JSON(http.StatusOK, gin.H{"deleted": key})
}

func sortCriteria(criteria []models.CriterionResponse) {
	sort.SliceStable(criteria, func(i, j int) bool {
		if criteria[i].Round != criteria[j].Round {
			return criteria[i].Round < criteria[j].Round
		}
		if criteria[i].Order != criteria[j].Order {
			return criteria[i].Order < criteria[j].Order
		}
		return criteria[i].Name < criteria[j].Name
	})
}
