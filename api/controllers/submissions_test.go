package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/codebreakerd260/SIH2k25-Prod/api/models"
	ctesting "github.com/codebreakerd260/SIH2k25-Prod/api/controllers/testing"
	"github.com/codebreakerd260/SIH2k25-Prod/api/transport"
	"github.com/codebreakerd260/SIH2k25-Prod/storage"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestSubmissionController(t *testing.T) (*SubmissionController, *gin.Engine, *storage.DynamoRoundStorage) {
	t.Helper()

	db := localstackClient(t)
	submissionStorage := &storage.DynamoSubmissionStorage{Client: db, TableName: "Submissions"}
	roundStorage := &storage.DynamoRoundStorage{Client: db, TableName: "Rounds"}

	t.Cleanup(func() {
		cleanupTable(t, db, "Submissions")
		cleanupTable(t, db, "Rounds")
	})

	controller := NewSubmissionController(submissionStorage, roundStorage)
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/submissions", transport.AuthMiddleware(), controller.create)
	r.GET("/api/submissions/me", transport.AuthMiddleware(), controller.mySubmissions)
	r.PATCH("/api/admin/submissions/:teamCode/:round/status", transport.AuthMiddleware(), transport.RequireRoles(storage.RoleAdmin), controller.updateStatus)

	return controller, r, roundStorage
}

func submissionPayload(round int) models.SubmissionCreateRequest {
	return models.SubmissionCreateRequest{
		Round: round,
		Fields: models.SubmissionFieldsRequest{
			Title:       "Smart irrigation controller",
			Description: "An IoT controller that schedules irrigation from soil moisture readings.",
			RepoURL:     "https://github.com/example/irrigation",
		},
	}
}

func TestCreateSubmission(t *testing.T) {
	controller, router, roundStorage := setupTestSubmissionController(t)

	windowStart := time.Date(2025, 9, 1, 9, 0, 0, 0, time.UTC)
	windowEnd := time.Date(2025, 9, 1, 18, 0, 0, 0, time.UTC)
	require.NoError(t, roundStorage.Create(context.TODO(), &storage.Round{
		Round:    1,
		Name:     "Ideation",
		StartAt:  windowStart,
		EndAt:    windowEnd,
		IsActive: true,
	}))
	require.NoError(t, roundStorage.Create(context.TODO(), &storage.Round{
		Round:    2,
		Name:     "Prototype",
		StartAt:  windowStart,
		EndAt:    windowEnd,
		IsActive: false,
	}))

	controller.now = func() time.Time { return windowStart.Add(time.Hour) }

	lead := bearerToken(t, "lead-1", "lead@college.edu", storage.RoleTeamLead, "ABC123")
	member := bearerToken(t, "member-1", "member@college.edu", storage.RoleTeamMember, "ABC123")

	t.Run("Happy path - leader submits inside the window", func(t *testing.T) {
		res := ctesting.PerformRequest(router, http.MethodPost, "/api/submissions", submissionPayload(1), lead)
		require.Equal(t, http.StatusCreated, res.Code)

		var body models.SubmissionResponse
		require.NoError(t, json.Unmarshal(res.Body.Bytes(), &body))
		assert.Equal(t, "ABC123", body.TeamCode)
		assert.Equal(t, storage.StatusSubmitted, body.Status)
	})

	t.Run("Second submission for the same round", func(t *testing.T) {
		res := ctesting.PerformRequest(router, http.MethodPost, "/api/submissions", submissionPayload(1), lead)
		require.Equal(t, http.StatusConflict, res.Code)
	})

	t.Run("Member cannot submit", func(t *testing.T) {
		res := ctesting.PerformRequest(router, http.MethodPost, "/api/submissions", submissionPayload(1), member)
		require.Equal(t, http.StatusForbidden, res.Code)
	})

	t.Run("Closed window", func(t *testing.T) {
		controller.now = func() time.Time { return windowEnd.Add(time.Minute) }
		defer func() { controller.now = func() time.Time { return windowStart.Add(time.Hour) } }()

		res := ctesting.PerformRequest(router, http.MethodPost, "/api/submissions", submissionPayload(1), lead)
		require.Equal(t, http.StatusBadRequest, res.Code)

		var body models.ErrorResponse
		require.NoError(t, json.Unmarshal(res.Body.Bytes(), &body))
		assert.Equal(t, "submission window closed", body.Error)
	})

	t.Run("Inactive round", func(t *testing.T) {
		res := ctesting.PerformRequest(router, http.MethodPost, "/api/submissions", submissionPayload(2), lead)
		require.Equal(t, http.StatusBadRequest, res.Code)

		var body models.ErrorResponse
		require.NoError(t, json.Unmarshal(res.Body.Bytes(), &body))
		assert.Equal(t, "round not active", body.Error)
	})

	t.Run("Unknown round", func(t *testing.T) {
		res := ctesting.PerformRequest(router, http.MethodPost, "/api/submissions", submissionPayload(9), lead)
		require.Equal(t, http.StatusBadRequest, res.Code)
	})

	t.Run("Own submissions are listed", func(t *testing.T) {
		res := ctesting.PerformRequest(router, http.MethodGet, "/api/submissions/me", nil, lead)
		require.Equal(t, http.StatusOK, res.Code)

		var body []models.SubmissionResponse
		require.NoError(t, json.Unmarshal(res.Body.Bytes(), &body))
		require.Len(t, body, 1)
		assert.Equal(t, 1, body[0].Round)
	})
}

func TestUpdateSubmissionStatus(t *testing.T) {
	controller, router, roundStorage := setupTestSubmissionController(t)

	windowStart := time.Date(2025, 9, 1, 9, 0, 0, 0, time.UTC)
	require.NoError(t, roundStorage.Create(context.TODO(), &storage.Round{
		Round:    1,
		Name:     "Ideation",
		StartAt:  windowStart,
		EndAt:    windowStart.Add(9 * time.Hour),
		IsActive: true,
	}))
	controller.now = func() time.Time { return windowStart.Add(time.Hour) }

	lead := bearerToken(t, "lead-1", "lead@college.edu", storage.RoleTeamLead, "ABC123")
	admin := bearerToken(t, "admin-1", "admin@college.edu", storage.RoleAdmin, "")

	res := ctesting.PerformRequest(router, http.MethodPost, "/api/submissions", submissionPayload(1), lead)
	require.Equal(t, http.StatusCreated, res.Code)

	t.Run("Happy path - status advances to reviewed", func(t *testing.T) {
		res := ctesting.PerformRequest(router, http.MethodPatch, "/api/admin/submissions/ABC123/1/status",
			models.SubmissionStatusUpdateRequest{Status: storage.StatusReviewed}, admin)
		require.Equal(t, http.StatusOK, res.Code)

		var body models.SubmissionResponse
		require.NoError(t, json.Unmarshal(res.Body.Bytes(), &body))
		assert.Equal(t, storage.StatusReviewed, body.Status)
	})

	t.Run("Status never moves backwards", func(t *testing.T) {
		res := ctesting.PerformRequest(router, http.MethodPatch, "/api/admin/submissions/ABC123/1/status",
			models.SubmissionStatusUpdateRequest{Status: storage.StatusSubmitted}, admin)
		require.Equal(t, http.StatusBadRequest, res.Code)
	})

	t.Run("Unknown status value", func(t *testing.T) {
		res := ctesting.PerformRequest(router, http.MethodPatch, "/api/admin/submissions/ABC123/1/status",
			models.SubmissionStatusUpdateRequest{Status: "archived"}, admin)
		require.Equal(t, http.StatusBadRequest, res.Code)
	})

	t.Run("Missing submission", func(t *testing.T) {
		res := ctesting.PerformRequest(router, http.MethodPatch, "/api/admin/submissions/ZZZ999/1/status",
			models.SubmissionStatusUpdateRequest{Status: storage.StatusReviewed}, admin)
		require.Equal(t, http.StatusNotFound, res.Code)
	})

	t.Run("Non-admin is forbidden", func(t *testing.T) {
		res := ctesting.PerformRequest(router, http.MethodPatch, "/api/admin/submissions/ABC123/1/status",
			models.SubmissionStatusUpdateRequest{Status: storage.StatusReviewed}, lead)
		require.Equal(t, http.StatusForbidden, res.Code)
	})
}
