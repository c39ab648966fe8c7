package controllers

import (
	"net/http"

	"github.com/codebreakerd260/SIH2k25-Prod/api/models"
	"github.com/codebreakerd260/SIH2k25-Prod/api/transport"
	"github.com/codebreakerd260/SIH2k25-Prod/logging"
	"github.com/codebreakerd260/SIH2k25-Prod/storage"
	"github.com/gin-gonic/gin"
)

type TeamController struct {
	storage storage.TeamStorage
}

func NewTeamController(s storage.TeamStorage) *TeamController {
	return &TeamController{storage: s}
}

func (c *TeamController) RegisterRoutes(engine *gin.Engine) {
	group := engine.Group("/api/teams", transport.AuthMiddleware())

	group.GET("/me", c.myTeam)
	group.GET("", transport.RequireRoles(storage.RoleMentor, storage.RoleAdmin), c.getAll)
	group.GET("/:teamCode", transport.RequireRoles(storage.RoleMentor, storage.RoleAdmin), c.get)
}

// @Security BearerToken
// myTeam godoc
// @Summary Team of the authenticated caller
// @Tags teams
// @Produce json
// @Success 200 {object} models.TeamResponse
// @Failure 404 {object} models.ErrorResponse "Caller has no team"
// @Failure 500 {object} models.ErrorResponse
// @Router /api/teams/me [get]
func (c *TeamController) myTeam(g *gin.Context) {
	teamCode := g.GetString(transport.CtxTeamCode)
	if teamCode == "" {
		g.JSON(http.StatusNotFound, &models.ErrorResponse{Error: "no team associated with this account"})
		return
	}

	team, err := c.storage.Get(g.Request.Context(), teamCode)
	if err != nil {
		logging.Log.Errorf("TEAM: failed to get team %s: %v", teamCode, err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: err.Error()})
		return
	}
	if team == nil {
		g.JSON(http.StatusNotFound, &models.ErrorResponse{Error: "team not found"})
		return
	}

	g.JSON(http.StatusOK, models.TransformTeamFromStorage(team))
}

// @Security BearerToken
// getAll godoc
// @Summary List all teams
// @Tags teams
// @Produce json
// @Success 200 {array} models.TeamResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/teams [get]
func (c *TeamController) getAll(g *gin.Context) {
	teams, err := c.storage.GetAll(g.Request.Context())
	if err != nil {
		logging.Log.Errorf("TEAM: failed to get all teams: %v", err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: err.Error()})
		return
	}

	responses := make([]models.TeamResponse, 0, len(teams))
	for _, t := range teams {
		responses = append(responses, models.TransformTeamFromStorage(t))
	}
	g.JSON(http.StatusOK, responses)
}

// @Security BearerToken
// get godoc
// @Summary Get a team by code
// @Tags teams
// @Produce json
// @Param teamCode path string true "Team code"
// @Success 200 {object} models.TeamResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/teams/{teamCode} [get]
func (c *TeamController) get(g *gin.Context) {
	teamCode := g.Param("teamCode")

	team, err := c.storage.Get(g.Request.Context(), teamCode)
	if err != nil {
		logging.Log.Errorf("TEAM: failed to get team %s: %v", teamCode, err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: err.Error()})
		return
	}
	if team == nil {
		g.JSON(http.StatusNotFound, &models.ErrorResponse{Error: "team not found"})
		return
	}

	g.JSON(http.StatusOK, models.TransformTeamFromStorage(team))
}
