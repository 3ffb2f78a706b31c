package app_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"collab_hub_backend/internal/app"
	"collab_hub_backend/internal/config"
	"collab_hub_backend/internal/domain"
	"collab_hub_backend/internal/invite"
	"collab_hub_backend/internal/jobs"
	"collab_hub_backend/internal/platform/database/dbtest"
	"collab_hub_backend/internal/project"
	"collab_hub_backend/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// APIIntegrationTestSuite drives the full router against a fresh SQLite store
// per test.
type APIIntegrationTestSuite struct {
	suite.Suite
	DB      *gorm.DB
	Handler http.Handler
}

func (s *APIIntegrationTestSuite) SetupTest() {
	logger := zap.NewNop()
	cfg := &config.Config{GinMode: gin.TestMode, CORSAllowedOrigins: []string{"*"}}
	s.DB = dbtest.New(s.T())

	guard, err := app.NewWriteGuard(context.Background(), cfg, logger)
	s.Require().NoError(err)

	server, err := app.NewServer(
		cfg,
		logger,
		user.NewHandler(user.NewService(user.NewGORMRepository(s.DB), logger), logger),
		invite.NewHandler(invite.NewService(invite.NewGORMRepository(s.DB), logger), logger),
		project.NewHandler(project.NewService(project.NewGORMRepository(s.DB), logger), logger),
		jobs.NewStoreHealthJob(jobs.NewStoreProbe(s.DB), logger, cfg),
		guard,
	)
	s.Require().NoError(err)
	s.Handler = server.Handler()
}

func (s *APIIntegrationTestSuite) do(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Handler.ServeHTTP(w, req)
	return w
}

func (s *APIIntegrationTestSuite) decode(w *httptest.ResponseRecorder, out interface{}) {
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), out), w.Body.String())
}

func (s *APIIntegrationTestSuite) createUser(body string) domain.User {
	w := s.do(http.MethodPost, "/api/users", body)
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var usr domain.User
	s.decode(w, &usr)
	return usr
}

func (s *APIIntegrationTestSuite) TestProfileLifecycle() {
	created := s.createUser(`{"firebaseUid":"fb-ana","name":"Ana","email":"Ana@Example.com",
		"skills":[{"skillId":"Go","level":"Beginner"},{"skillId":" Go ","level":"Expert"},{"skillId":""}]}`)
	s.Equal("Ana@Example.com", created.Email)

	w := s.do(http.MethodGet, "/api/users/firebase/fb-ana", "")
	s.Require().Equal(http.StatusOK, w.Code)
	var fetched domain.User
	s.decode(w, &fetched)
	s.Require().Len(fetched.Skills, 1)
	s.Equal("Go", fetched.Skills[0].Skill.Name)
	s.Equal("Expert", fetched.Skills[0].Level)

	// Non-array lists are coerced to empty, so the skill set is cleared.
	w = s.do(http.MethodPatch, "/api/users/firebase/fb-ana", `{"bio":"hi","skills":"oops","featuredProjects":{}}`)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var updated domain.User
	s.decode(w, &updated)
	s.Equal(created.ID, updated.ID)
	s.Require().NotNil(updated.Bio)
	s.Equal("hi", *updated.Bio)
	s.Empty(updated.Skills)
	s.Equal([]string{}, updated.FeaturedProjects)

	var skillCount int64
	s.Require().NoError(s.DB.Model(&domain.Skill{}).Count(&skillCount).Error)
	s.Equal(int64(1), skillCount, "the vocabulary keeps skills that are no longer linked")
}

func (s *APIIntegrationTestSuite) TestUpsertCreatesMissingUser() {
	w := s.do(http.MethodPut, "/api/users/firebase/fb-new",
		`{"name":"New","email":"new@example.com","skills":[{"skillId":"Rust"}]}`)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var usr domain.User
	s.decode(w, &usr)
	s.Equal("fb-new", usr.FirebaseUID)
	s.Require().Len(usr.Skills, 1)
	s.Equal(domain.DefaultSkillLevel, usr.Skills[0].Level)
}

func (s *APIIntegrationTestSuite) TestEmailConflictAndStackFilter() {
	s.createUser(`{"firebaseUid":"fb-1","name":"One","email":"one@example.com","skills":[{"skillId":"Go"}]}`)
	s.createUser(`{"firebaseUid":"fb-2","name":"Two","email":"two@example.com","skills":[{"skillId":"Python"}]}`)
	s.createUser(`{"firebaseUid":"fb-3","name":"Three","email":"three@example.com"}`)

	w := s.do(http.MethodPost, "/api/users", `{"firebaseUid":"fb-4","name":"Four","email":"one@example.com"}`)
	s.Equal(http.StatusBadRequest, w.Code)

	w = s.do(http.MethodGet, "/api/users?stack=Go,%20Python,", "")
	s.Require().Equal(http.StatusOK, w.Code)
	var users []domain.User
	s.decode(w, &users)
	s.Len(users, 2)

	w = s.do(http.MethodGet, "/api/users?page=2&limit=2", "")
	s.Require().Equal(http.StatusOK, w.Code)
	users = nil
	s.decode(w, &users)
	s.Require().Len(users, 1)
	s.Equal("fb-3", users[0].FirebaseUID)
}

func (s *APIIntegrationTestSuite) TestDeclinedInviteAddsNoCollaborator() {
	owner := s.createUser(`{"firebaseUid":"owner","name":"Owner","email":"owner@example.com"}`)
	member := s.createUser(`{"firebaseUid":"member","name":"Member","email":"member@example.com"}`)

	w := s.do(http.MethodPost, "/api/projects", `{"creatorId":"`+owner.ID.String()+`","title":"Study Buddy"}`)
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var proj domain.Project
	s.decode(w, &proj)

	w = s.do(http.MethodPost, "/api/invites",
		`{"senderId":"`+owner.ID.String()+`","receiverId":"`+member.ID.String()+`","projectId":"`+proj.ID.String()+`","role":"Designer"}`)
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var inv domain.Invite
	s.decode(w, &inv)
	s.Equal(domain.InviteStatusPending, inv.Status)

	w = s.do(http.MethodGet, "/api/invites/received?userId="+member.ID.String(), "")
	s.Require().Equal(http.StatusOK, w.Code)
	var received []invite.ReceivedInviteResponse
	s.decode(w, &received)
	s.Require().Len(received, 1)
	s.Equal("Owner", received[0].Sender.Name)
	s.Require().NotNil(received[0].Project)
	s.Equal("Study Buddy", received[0].Project.Title)

	w = s.do(http.MethodPatch, "/api/invites/"+inv.ID.String(), `{"status":"declined"}`)
	s.Require().Equal(http.StatusOK, w.Code)

	w = s.do(http.MethodGet, "/api/users/"+member.ID.String()+"/collaborations", "")
	s.Require().Equal(http.StatusOK, w.Code)
	s.JSONEq(`[]`, w.Body.String())
}

func TestAPIIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(APIIntegrationTestSuite))
}
