package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/codebreakerd260/SIH2k25-Prod/api/models"
	ctesting "github.com/codebreakerd260/SIH2k25-Prod/api/controllers/testing"
	"github.com/codebreakerd260/SIH2k25-Prod/api/transport"
	"github.com/codebreakerd260/SIH2k25-Prod/logging"
	"github.com/codebreakerd260/SIH2k25-Prod/storage"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// In-memory ScoreStorage with the same version semantics as the Dynamo
// implementation. Tests override create/update to stage a concurrent writer
// between the controller's read and its conditional put.
type fakeScoreStorage struct {
	scores  map[string]*storage.Score
	create  func(*storage.Score) error
	update  func(*storage.Score, int64) error
	creates int
	updates int
}

func newFakeScoreStorage() *fakeScoreStorage {
	f := &fakeScoreStorage{scores: map[string]*storage.Score{}}
	f.create = f.storeCreate
	f.update = f.storeUpdate
	return f
}

func fakeScoreKey(teamCode string, round int) string {
	return fmt.Sprintf("%s#%d", teamCode, round)
}

func (f *fakeScoreStorage) put(s *storage.Score) {
	f.scores[fakeScoreKey(s.TeamCode, s.Round)] = s
}

func (f *fakeScoreStorage) storeCreate(s *storage.Score) error {
	key := fakeScoreKey(s.TeamCode, s.Round)
	if _, ok := f.scores[key]; ok {
		return storage.ErrItemAlreadyExists
	}
	cp := *s
	cp.Version = 1
	f.scores[key] = &cp
	return nil
}

func (f *fakeScoreStorage) storeUpdate(s *storage.Score, expectedVersion int64) error {
	stored, ok := f.scores[fakeScoreKey(s.TeamCode, s.Round)]
	if !ok || stored.Version != expectedVersion {
		return storage.ErrVersionConflict
	}
	cp := *s
	cp.Version = expectedVersion + 1
	f.scores[fakeScoreKey(s.TeamCode, s.Round)] = &cp
	return nil
}

func (f *fakeScoreStorage) Get(ctx context.Context, teamCode string, round int) (*storage.Score, error) {
	stored, ok := f.scores[fakeScoreKey(teamCode, round)]
	if !ok {
		return nil, nil
	}
	cp := *stored
	cp.MentorScores = append([]storage.MentorScore(nil), stored.MentorScores...)
	return &cp, nil
}

func (f *fakeScoreStorage) GetAll(ctx context.Context) ([]*storage.Score, error) {
	return nil, nil
}

func (f *fakeScoreStorage) GetByTeam(ctx context.Context, teamCode string) ([]*storage.Score, error) {
	return nil, nil
}

func (f *fakeScoreStorage) Create(ctx context.Context, s *storage.Score) error {
	f.creates++
	return f.create(s)
}

func (f *fakeScoreStorage) Update(ctx context.Context, s *storage.Score, expectedVersion int64) error {
	f.updates++
	return f.update(s, expectedVersion)
}

type fakeTeamStorage struct {
	team *storage.Team
}

func (f *fakeTeamStorage) Get(ctx context.Context, teamCode string) (*storage.Team, error) {
	if f.team != nil && f.team.TeamCode == teamCode {
		return f.team, nil
	}
	return nil, nil
}

func (f *fakeTeamStorage) GetAll(ctx context.Context) ([]*storage.Team, error) {
	return []*storage.Team{f.team}, nil
}

func (f *fakeTeamStorage) Create(ctx context.Context, team *storage.Team) error { return nil }

func (f *fakeTeamStorage) Delete(ctx context.Context, teamCode string) error { return nil }

func setupScoreRetryRouter(t *testing.T, scores *fakeScoreStorage) *gin.Engine {
	t.Helper()
	logging.Log = logrus.New()
	t.Setenv("JWT_SECRET", "test-secret")

	teams := &fakeTeamStorage{team: &storage.Team{TeamCode: "ABC123", TeamName: "Circuit Breakers"}}
	controller := NewScoreController(scores, teams)
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/scores/mentor", transport.AuthMiddleware(), transport.RequireRoles(storage.RoleMentor, storage.RoleAdmin), controller.submitMentorScore)
	return r
}

func mentorEntry(mentorID string, total float64) storage.MentorScore {
	return storage.MentorScore{
		MentorID: mentorID,
		Criteria: storage.ScoreCriteria{Innovation: total / 4, Feasibility: total / 4, Technical: total / 4, Presentation: total / 4},
		Comments: "baseline",
		Total:    total,
	}
}

func TestSubmitMentorScoreConcurrency(t *testing.T) {
	mentor1 := func(t *testing.T) map[string]string {
		return bearerToken(t, "mentor-1", "mentor1@college.edu", storage.RoleMentor, "")
	}

	t.Run("Create collision re-reads and keeps both entries", func(t *testing.T) {
		fake := newFakeScoreStorage()
		router := setupScoreRetryRouter(t, fake)

		// First create loses: another mentor's document lands in between
		fake.create = func(s *storage.Score) error {
			fake.create = fake.storeCreate
			fake.put(&storage.Score{
				TeamCode:     s.TeamCode,
				Round:        s.Round,
				MentorScores: []storage.MentorScore{mentorEntry("mentor-2", 24)},
				AverageScore: 24,
				Version:      1,
			})
			return storage.ErrItemAlreadyExists
		}

		res := ctesting.PerformRequest(router, http.MethodPost, "/api/scores/mentor", mentorScorePayload("ABC123", 1), mentor1(t))
		require.Equal(t, http.StatusOK, res.Code)

		var body models.ScoreResponse
		require.NoError(t, json.Unmarshal(res.Body.Bytes(), &body))
		require.Len(t, body.MentorScores, 2)
		assert.Equal(t, 27.0, body.AverageScore)
		assert.Equal(t, 1, fake.creates)
		assert.Equal(t, 1, fake.updates)
	})

	t.Run("Version conflict reapplies the entry on fresh state", func(t *testing.T) {
		fake := newFakeScoreStorage()
		router := setupScoreRetryRouter(t, fake)

		fake.put(&storage.Score{
			TeamCode:     "ABC123",
			Round:        1,
			MentorScores: []storage.MentorScore{mentorEntry("mentor-2", 24)},
			AverageScore: 24,
			Version:      1,
		})

		// First conditional put loses to a third mentor's write
		fake.update = func(s *storage.Score, expectedVersion int64) error {
			fake.update = fake.storeUpdate
			fake.put(&storage.Score{
				TeamCode:     "ABC123",
				Round:        1,
				MentorScores: []storage.MentorScore{mentorEntry("mentor-2", 24), mentorEntry("mentor-3", 18)},
				AverageScore: 21,
				Version:      2,
			})
			return storage.ErrVersionConflict
		}

		res := ctesting.PerformRequest(router, http.MethodPost, "/api/scores/mentor", mentorScorePayload("ABC123", 1), mentor1(t))
		require.Equal(t, http.StatusOK, res.Code)

		var body models.ScoreResponse
		require.NoError(t, json.Unmarshal(res.Body.Bytes(), &body))
		require.Len(t, body.MentorScores, 3)
		assert.Equal(t, 24.0, body.AverageScore)
		assert.Equal(t, 2, fake.updates)

		stored, err := fake.Get(context.TODO(), "ABC123", 1)
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Len(t, stored.MentorScores, 3)
		assert.Equal(t, int64(3), stored.Version)
	})

	t.Run("Persistent conflicts give up after the attempt budget", func(t *testing.T) {
		fake := newFakeScoreStorage()
		router := setupScoreRetryRouter(t, fake)

		fake.put(&storage.Score{
			TeamCode:     "ABC123",
			Round:        1,
			MentorScores: []storage.MentorScore{mentorEntry("mentor-2", 24)},
			AverageScore: 24,
			Version:      1,
		})
		fake.update = func(s *storage.Score, expectedVersion int64) error {
			return storage.ErrVersionConflict
		}

		res := ctesting.PerformRequest(router, http.MethodPost, "/api/scores/mentor", mentorScorePayload("ABC123", 1), mentor1(t))
		require.Equal(t, http.StatusInternalServerError, res.Code)
		assert.Equal(t, maxUpsertAttempts, fake.updates)
	})
}
