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

type ProblemController struct {
	storage storage.ProblemStorage
}

func NewProblemController(s storage.ProblemStorage) *ProblemController {
	return &ProblemController{storage: s}
}

func (c *ProblemController) RegisterRoutes(engine *gin.Engine) {
	engine.GET("/api/problems", c.getActive)

	group := engine.Group("/api/admin/problems", transport.AuthMiddleware(), transport.RequireRoles(storage.RoleAdmin))
	group.GET("", c.getAll)
	group.POST("", c.create)
	group.PUT("/:sno", c.update)
	group.DELETE("/:sno", c.delete)
}

// getActive godoc
// @Summary List active problem statements
// @Tags problems
// @Produce json
// @Success 200 {array} models.ProblemResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/problems [get]
func (c *ProblemController) getActive(g *gin.Context) {
	problems, err := c.storage.GetAll(g.Request.Context())
	if err != nil {
		logging.Log.Errorf("PROBLEM: failed to get problems: %v", err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: err.Error()})
		return
	}

	responses := make([]models.ProblemResponse, 0, len(problems))
	for _, p := range problems {
		if !p.IsActive {
			continue
		}
		responses = append(responses, models.TransformProblemFromStorage(p))
	}
	sort.SliceStable(responses, func(i, j int) bool {
		return responses[i].SNo < responses[j].SNo
	})
	g.JSON(http.StatusOK, responses)
}

// @Security BearerToken
// getAll godoc
// @Summary List all problem statements
// @Tags admin/problems
// @Produce json
// @Success 200 {array} models.ProblemResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/admin/problems [get]
func (c *ProblemController) getAll(g *gin.Context) {
	problems, err := c.storage.GetAll(g.Request.Context())
	if err != nil {
		logging.Log.Errorf("PROBLEM: failed to get problems: %v", err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: err.Error()})
		return
	}

	responses := make([]models.ProblemResponse, 0, len(problems))
	for _, p := range problems {
		responses = append(responses, models.TransformProblemFromStorage(p))
	}
	sort.SliceStable(responses, func(i, j int) bool {
		return responses[i].SNo < responses[j].SNo
	})
	g.JSON(http.StatusOK, responses)
}

// @Security BearerToken
// create godoc
// @Summary Create a problem statement
// @Tags admin/problems
// @Accept json
// @Produce json
// @Param problem body models.ProblemCreateRequest true "Problem statement"
// @Success 201 {object} models.ProblemResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/admin/problems [post]
func (c *ProblemController) create(g *gin.Context) {
	var req models.ProblemCreateRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "invalid problem data: " + err.Error()})
		return
	}
	if !models.ValidProblemCategories[req.Category] {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "category must be Software or Hardware"})
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}
	problem := &storage.ProblemStatement{
		SNo:          req.SNo,
		Organization: req.Organization,
		Title:        req.Title,
		Description:  req.Description,
		Category:     req.Category,
		PSNumber:     req.PSNumber,
		Theme:        req.Theme,
		IsActive:     isActive,
	}

	if err := c.storage.Create(g.Request.Context(), problem); err != nil {
		if errors.Is(err, storage.ErrItemAlreadyExists) {
			g.JSON(http.StatusConflict, &models.ErrorResponse{Error: "problem statement already exists"})
			return
		}
		logging.Log.Errorf("PROBLEM: failed to create problem: %v", err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: err.Error()})
		return
	}

	g.JSON(http.StatusCreated, models.TransformProblemFromStorage(problem))
}

// @Security BearerToken
// update godoc
// @Summary Update a problem statement
// @Tags admin/problems
// @Accept json
// @Produce json
// @Param sno path int true "Problem serial number"
// @Param body body models.ProblemUpdateRequest true "Fields to change"
// @Success 200 {object} models.ProblemResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/admin/problems/{sno} [put]
func (c *ProblemController) update(g *gin.Context) {
	sNo, err := strconv.Atoi(g.Param("sno"))
	if err != nil || sNo < 1 {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "invalid problem number"})
		return
	}

	var req models.ProblemUpdateRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "invalid problem data"})
		return
	}
	if req.Category != "" && !models.ValidProblemCategories[req.Category] {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "category must be Software or Hardware"})
		return
	}

	problem, err := c.storage.Get(g.Request.Context(), sNo)
	if err != nil {
		logging.Log.Errorf("PROBLEM: failed to get problem %d: %v", sNo, err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: err.Error()})
		return
	}
	if problem == nil {
		g.JSON(http.StatusNotFound, &models.ErrorResponse{Error: "problem statement not found"})
		return
	}

	if req.Organization != "" {
		problem.Organization = req.Organization
	}
	if req.Title != "" {
		problem.Title = req.Title
	}
	if req.Description != "" {
		problem.Description = req.Description
	}
	if req.Category != "" {
		problem.Category = req.Category
	}
	if req.PSNumber != "" {
		problem.PSNumber = req.PSNumber
	}
	if req.Theme != "" {
		problem.Theme = req.Theme
	}
	if req.Ideas != nil {
		problem.Ideas = *req.Ideas
	}
	if req.IsActive != nil {
		problem.IsActive = *req.IsActive
	}

	if err := c.storage.Update(g.Request.Context(), problem); err != nil {
		logging.Log.Errorf("PROBLEM: failed to update problem %d: %v", sNo, err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: err.Error()})
		return
	}

	g.JSON(http.StatusOK, models.TransformProblemFromStorage(problem))
}

// @Security BearerToken
// delete godoc
// @Summary Delete a problem statement
// @Tags admin/problems
// @Produce json
// @Param sno path int true "Problem serial number"
// @Success 200 {object} map[string]string
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/admin/problems/{sno} [delete]
func (c *ProblemController) delete(g *gin.Context) {
	sNo, err := strconv.Atoi(g.Param("sno"))
	if err != nil || sNo < 1 {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "invalid problem number"})
		return
	}

	if err := c.storage.Delete(g.Request.Context(), sNo); err != nil {
		logging.Log.Errorf("PROBLEM: failed to delete problem %d: %v", sNo, err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: err.Error()})
		return
	}
	g.JSON(http.StatusOK, gin.H{"deleted": g.Param("sno")})
}
