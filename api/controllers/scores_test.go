package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/codebreakerd260/SIH2k25-Prod/api/models"
	ctesting "github.com/codebreakerd260/SIH2k25-Prod/api/controllers/testing"
	"github.com/codebreakerd260/SIH2k25-Prod/api/transport"
	"github.com/codebreakerd260/SIH2k25-Prod/storage"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestScoreController(t *testing.T) (*gin.Engine, *storage.DynamoTeamStorage) {
	t.Helper()

	db := localstackClient(t)
	scoreStorage := &storage.DynamoScoreStorage{Client: db, TableName: "Scores"}
	teamStorage := &storage.DynamoTeamStorage{Client: db, TableName: "Teams"}

	t.Cleanup(func() {
		cleanupTable(t, db, "Scores")
		cleanupTable(t, db, "Teams")
	})

	controller := NewScoreController(scoreStorage, teamStorage)
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/scores/mentor", transport.AuthMiddleware(), transport.RequireRoles(storage.RoleMentor, storage.RoleAdmin), controller.submitMentorScore)
	r.POST("/api/scores/admin", transport.AuthMiddleware(), transport.RequireRoles(storage.RoleAdmin), controller.submitAdminScore)
	r.GET("/api/scores", transport.AuthMiddleware(), transport.RequireRoles(storage.RoleMentor, storage.RoleAdmin), controller.getAll)
	r.GET("/api/scores/:teamCode/:round", transport.AuthMiddleware(), transport.RequireRoles(storage.RoleMentor, storage.RoleAdmin), controller.get)

	return r, teamStorage
}

func seedTeam(t *testing.T, teamStorage *storage.DynamoTeamStorage, teamCode string) {
	t.Helper()
	err := teamStorage.Create(context.TODO(), &storage.Team{
		TeamCode: teamCode,
		TeamName: "Team " + teamCode,
		Leader:   storage.TeamMember{Name: "Lead", Email: teamCode + "@college.edu", RollNo: "21CS9999"},
	})
	require.NoError(t, err)
}

func floatPtr(v float64) *float64 { return &v }

func mentorScorePayload(teamCode string, round int) models.MentorScoreRequest {
	return models.MentorScoreRequest{
		TeamCode: teamCode,
		Round:    round,
		Criteria: models.CriteriaValues{
			Innovation:   floatPtr(8),
			Feasibility:  floatPtr(7),
			Technical:    floatPtr(9),
			Presentation: floatPtr(6),
		},
		Comments: "solid prototype",
	}
}

func TestSubmitMentorScore(t *testing.T) {
	router, teamStorage := setupTestScoreController(t)
	seedTeam(t, teamStorage, "ABC123")

	mentor1 := bearerToken(t, "mentor-1", "mentor1@college.edu", storage.RoleMentor, "")
	mentor2 := bearerToken(t, "mentor-2", "mentor2@college.edu", storage.RoleMentor, "")

	t.Run("Happy path - first mentor creates the record", func(t *testing.T) {
		res := ctesting.PerformRequest(router, http.MethodPost, "/api/scores/mentor", mentorScorePayload("ABC123", 1), mentor1)
		require.Equal(t, http.StatusOK, res.Code)

		var body models.ScoreResponse
		require.NoError(t, json.Unmarshal(res.Body.Bytes(), &body))
		require.Len(t, body.MentorScores, 1)
		assert.Equal(t, 30.0, body.MentorScores[0].Total)
		assert.Equal(t, 30.0, body.AverageScore)
	})

	t.Run("Second mentor moves the average", func(t *testing.T) {
		payload := mentorScorePayload("ABC123", 1)
		payload.Criteria = models.CriteriaValues{
			Innovation:   floatPtr(6),
			Feasibility:  floatPtr(6),
			Technical:    floatPtr(7),
			Presentation: floatPtr(5),
		}

		res := ctesting.PerformRequest(router, http.MethodPost, "/api/scores/mentor", payload, mentor2)
		require.Equal(t, http.StatusOK, res.Code)

		var body models.ScoreResponse
		require.NoError(t, json.Unmarshal(res.Body.Bytes(), &body))
		require.Len(t, body.MentorScores, 2)
		assert.Equal(t, 27.0, body.AverageScore)
	})

	t.Run("Re-submission replaces, never duplicates", func(t *testing.T) {
		payload := mentorScorePayload("ABC123", 1)
		payload.Criteria = models.CriteriaValues{
			Innovation:   floatPtr(10),
			Feasibility:  floatPtr(9),
			Technical:    floatPtr(9),
			Presentation: floatPtr(8),
		}

		res := ctesting.PerformRequest(router, http.MethodPost, "/api/scores/mentor", payload, mentor1)
		require.Equal(t, http.StatusOK, res.Code)

		var body models.ScoreResponse
		require.NoError(t, json.Unmarshal(res.Body.Bytes(), &body))
		require.Len(t, body.MentorScores, 2)
		assert.Equal(t, 30.0, body.AverageScore)
	})

	t.Run("Out of range criterion", func(t *testing.T) {
		payload := mentorScorePayload("ABC123", 1)
		payload.Criteria.Technical = floatPtr(11)

		res := ctesting.PerformRequest(router, http.MethodPost, "/api/scores/mentor", payload, mentor1)
		require.Equal(t, http.StatusBadRequest, res.Code)

		var body models.ErrorResponse
		require.NoError(t, json.Unmarshal(res.Body.Bytes(), &body))
		assert.Equal(t, "technical must be between 0 and 10", body.Error)
	})

	t.Run("Unknown team", func(t *testing.T) {
		res := ctesting.PerformRequest(router, http.MethodPost, "/api/scores/mentor", mentorScorePayload("ZZZ999", 1), mentor1)
		require.Equal(t, http.StatusNotFound, res.Code)
	})

	t.Run("Team role is forbidden", func(t *testing.T) {
		lead := bearerToken(t, "lead-1", "lead@college.edu", storage.RoleTeamLead, "ABC123")
		res := ctesting.PerformRequest(router, http.MethodPost, "/api/scores/mentor", mentorScorePayload("ABC123", 1), lead)
		require.Equal(t, http.StatusForbidden, res.Code)
	})
}

func TestSubmitAdminScore(t *testing.T) {
	router, teamStorage := setupTestScoreController(t)
	seedTeam(t, teamStorage, "DEF456")

	mentor := bearerToken(t, "mentor-1", "mentor1@college.edu", storage.RoleMentor, "")
	admin := bearerToken(t, "admin-1", "admin@college.edu", storage.RoleAdmin, "")

	res := ctesting.PerformRequest(router, http.MethodPost, "/api/scores/mentor", mentorScorePayload("DEF456", 2), mentor)
	require.Equal(t, http.StatusOK, res.Code)

	t.Run("Happy path - admin total leaves the mentor average untouched", func(t *testing.T) {
		res := ctesting.PerformRequest(router, http.MethodPost, "/api/scores/admin", models.AdminScoreRequest{
			TeamCode:     "DEF456",
			Round:        2,
			Total:        floatPtr(85),
			FinalComment: "impressive demo",
		}, admin)
		require.Equal(t, http.StatusOK, res.Code)

		var body models.ScoreResponse
		require.NoError(t, json.Unmarshal(res.Body.Bytes(), &body))
		require.NotNil(t, body.AdminScore)
		assert.Equal(t, 85.0, body.AdminScore.Total)
		assert.Equal(t, 30.0, body.AverageScore)
	})

	t.Run("Re-submission replaces the admin score wholesale", func(t *testing.T) {
		res := ctesting.PerformRequest(router, http.MethodPost, "/api/scores/admin", models.AdminScoreRequest{
			TeamCode: "DEF456",
			Round:    2,
			Total:    floatPtr(90),
		}, admin)
		require.Equal(t, http.StatusOK, res.Code)

		var body models.ScoreResponse
		require.NoError(t, json.Unmarshal(res.Body.Bytes(), &body))
		require.NotNil(t, body.AdminScore)
		assert.Equal(t, 90.0, body.AdminScore.Total)
		assert.Empty(t, body.AdminScore.FinalComment)
	})

	t.Run("Mentor role is forbidden", func(t *testing.T) {
		res := ctesting.PerformRequest(router, http.MethodPost, "/api/scores/admin", models.AdminScoreRequest{
			TeamCode: "DEF456",
			Round:    2,
			Total:    floatPtr(50),
		}, mentor)
		require.Equal(t, http.StatusForbidden, res.Code)
	})

	t.Run("Get returns the full record", func(t *testing.T) {
		res := ctesting.PerformRequest(router, http.MethodGet, "/api/scores/DEF456/2", nil, mentor)
		require.Equal(t, http.StatusOK, res.Code)

		var body models.ScoreResponse
		require.NoError(t, json.Unmarshal(res.Body.Bytes(), &body))
		assert.Len(t, body.MentorScores, 1)
		require.NotNil(t, body.AdminScore)
	})

	t.Run("Get for an unscored round", func(t *testing.T) {
		res := ctesting.PerformRequest(router, http.MethodGet, "/api/scores/DEF456/9", nil, mentor)
		require.Equal(t, http.StatusNotFound, res.Code)
	})
}
