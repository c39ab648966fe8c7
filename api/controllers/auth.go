package controllers

import (
	"context"
	"errors"
	"math/rand"
	"net/http"
	"strings"

	"github.com/codebreakerd260/SIH2k25-Prod/api/models"
	"github.com/codebreakerd260/SIH2k25-Prod/api/transport"
	"github.com/codebreakerd260/SIH2k25-Prod/auth"
	"github.com/codebreakerd260/SIH2k25-Prod/logging"
	"github.com/codebreakerd260/SIH2k25-Prod/storage"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const tempPasswordLength = 8

type AuthController struct {
	usersStorage storage.UserStorage
	teamsStorage storage.TeamStorage
}

func NewAuthController(userStorage storage.UserStorage, teamStorage storage.TeamStorage) *AuthController {
	return &AuthController{
		usersStorage: userStorage,
		teamsStorage: teamStorage,
	}
}

func (c *AuthController) RegisterRoutes(engine *gin.Engine) {
	group := engine.Group("/api")

	group.POST("/auth/register", c.register)
	group.POST("/auth/login", c.login)
	group.GET("/user/me", transport.AuthMiddleware(), c.me)
}

// register godoc
// @Summary Register a team
// @Description Creates the team, its leader account and member accounts, and issues a unique team code
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.RegisterRequest true "Registration data"
// @Success 201 {object} models.RegisterResponse
// @Failure 400 {object} models.ErrorResponse "Invalid registration data"
// @Failure 409 {object} models.ErrorResponse "Email already registered"
// @Failure 500 {object} models.ErrorResponse
// @Router /api/auth/register [post]
func (c *AuthController) register(g *gin.Context) {
	var req models.RegisterRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "invalid registration data: " + err.Error()})
		return
	}

	// Team size 1-5: leader plus up to 4 members, all emails distinct
	emails := map[string]bool{strings.ToLower(req.LeadEmail): true}
	for _, m := range req.Members {
		email := strings.ToLower(m.Email)
		if emails[email] {
			g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "duplicate email addresses found"})
			return
		}
		emails[email] = true
	}

	if _, err := c.usersStorage.GetByEmail(g.Request.Context(), req.LeadEmail); err == nil {
		g.JSON(http.StatusConflict, &models.ErrorResponse{Error: "email already registered"})
		return
	} else if !errors.Is(err, storage.ErrNotFound) {
		logging.Log.Errorf("AUTH: failed to check existing user: %v", err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: "could not register team"})
		return
	}

	teamCode, err := c.generateTeamCode(g)
	if err != nil {
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: "could not generate team code"})
		return
	}

	hash, err := auth.HashPassword(req.LeadPassword)
	if err != nil {
		logging.Log.Errorf("AUTH: failed to hash password: %v", err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: "could not register team"})
		return
	}

	leader := &storage.User{
		Email:    req.LeadEmail,
		ID:       uuid.NewString(),
		Name:     req.LeadName,
		RollNo:   req.LeadRollNo,
		Role:     storage.RoleTeamLead,
		TeamCode: teamCode,
		Password: hash,
	}
	if err := c.usersStorage.Create(g.Request.Context(), leader); err != nil {
		if errors.Is(err, storage.ErrItemAlreadyExists) {
			g.JSON(http.StatusConflict, &models.ErrorResponse{Error: "email already registered"})
			return
		}
		logging.Log.Errorf("AUTH: failed to create leader: %v", err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: "could not register team"})
		return
	}

	createdUsers := []string{leader.Email}
	members := make([]storage.TeamMember, 0, len(req.Members))
	for _, m := range req.Members {
		// Members get a random temporary password, reset handled offline
		tempHash, err := auth.HashPassword(randomPassword(tempPasswordLength))
		if err != nil {
			logging.Log.Errorf("AUTH: failed to hash member password: %v", err)
			c.rollbackUsers(g.Request.Context(), createdUsers)
			g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: "could not register team"})
			return
		}
		member := &storage.User{
			Email:    m.Email,
			ID:       uuid.NewString(),
			Name:     m.Name,
			RollNo:   m.RollNo,
			Role:     storage.RoleTeamMember,
			TeamCode: teamCode,
			Password: tempHash,
		}
		if err := c.usersStorage.Create(g.Request.Context(), member); err != nil {
			c.rollbackUsers(g.Request.Context(), createdUsers)
			if errors.Is(err, storage.ErrItemAlreadyExists) {
				g.JSON(http.StatusConflict, &models.ErrorResponse{Error: "email already registered: " + m.Email})
				return
			}
			logging.Log.Errorf("AUTH: failed to create member %s: %v", m.Email, err)
			g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: "could not register team"})
			return
		}
		createdUsers = append(createdUsers, member.Email)
		members = append(members, storage.TeamMember{Name: m.Name, Email: strings.ToLower(m.Email), RollNo: m.RollNo})
	}

	team := &storage.Team{
		TeamCode: teamCode,
		TeamName: req.TeamName,
		Leader:   storage.TeamMember{Name: req.LeadName, Email: strings.ToLower(req.LeadEmail), RollNo: req.LeadRollNo},
		Members:  members,
	}
	if err := c.teamsStorage.Create(g.Request.Context(), team); err != nil {
		logging.Log.Errorf("AUTH: failed to create team: %v", err)
		c.rollbackUsers(g.Request.Context(), createdUsers)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: "could not register team"})
		return
	}

	logging.Log.Infof("AUTH: registered team %s (%s) with %d members", teamCode, req.TeamName, len(members))
	g.JSON(http.StatusCreated, &models.RegisterResponse{
		Message:  "team registered successfully",
		TeamCode: teamCode,
		TeamName: req.TeamName,
	})
}

// login godoc
// @Summary Log in
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Credentials"
// @Success 200 {object} models.LoginResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse "Wrong email or password"
// @Router /api/auth/login [post]
func (c *AuthController) login(g *gin.Context) {
	var req models.LoginRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "invalid request format"})
		return
	}

	user, err := c.usersStorage.GetByEmail(g.Request.Context(), req.Email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			g.JSON(http.StatusUnauthorized, &models.ErrorResponse{Error: "invalid email or password"})
			return
		}
		logging.Log.Errorf("AUTH: failed to load user %s: %v", req.Email, err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: "could not log in"})
		return
	}

	if !auth.ComparePassword(req.Password, user.Password) {
		logging.Log.Warnf("AUTH: wrong password for %s", req.Email)
		g.JSON(http.StatusUnauthorized, &models.ErrorResponse{Error: "invalid email or password"})
		return
	}

	token, err := auth.GenerateToken(user.ID, user.Email, user.Role, user.TeamCode)
	if err != nil {
		logging.Log.Errorf("AUTH: failed to sign token: %v", err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: "could not log in"})
		return
	}

	g.JSON(http.StatusOK, &models.LoginResponse{
		Token: token,
		User:  models.TransformUserFromStorage(user),
	})
}

// @Security BearerToken
// me godoc
// @Summary Current user profile
// @Tags auth
// @Produce json
// @Success 200 {object} models.UserResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/user/me [get]
func (c *AuthController) me(g *gin.Context) {
	email := g.GetString(transport.CtxEmail)

	user, err := c.usersStorage.GetByEmail(g.Request.Context(), email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			g.JSON(http.StatusNotFound, &models.ErrorResponse{Error: "user not found"})
			return
		}
		logging.Log.Errorf("AUTH: failed to load user %s: %v", email, err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: "could not load user"})
		return
	}

	g.JSON(http.StatusOK, models.TransformUserFromStorage(user))
}

// generateTeamCode issues a short unique code, retrying on the rare collision.
func (c *AuthController) generateTeamCode(g *gin.Context) (string, error) {
	for {
		code, err := gonanoid.Generate(models.Alphabet, models.TeamCodeLength)
		if err != nil {
			logging.Log.Errorf("AUTH: failed to generate team code: %v", err)
			return "", err
		}
		existing, err := c.teamsStorage.Get(g.Request.Context(), code)
		if err != nil {
			return "", err
		}
		if existing == nil {
			return code, nil
		}
	}
}

// rollbackUsers removes accounts created earlier in a failed registration so
// the same leader email can register again. Deletes are best effort.
func (c *AuthController) rollbackUsers(ctx context.Context, emails []string) {
	for _, email := range emails {
		if err := c.usersStorage.Delete(ctx, email); err != nil {
			logging.Log.Errorf("AUTH: failed to roll back user %s: %v", email, err)
		}
	}
}

func randomPassword(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = models.Alphabet[rand.Intn(len(models.Alphabet))]
	}
	return string(b)
}
