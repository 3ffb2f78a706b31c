package invite

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"collab_hub_backend/internal/domain"
	"collab_hub_backend/internal/platform/database/dbtest"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupInviteRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := dbtest.New(t)
	logger := zap.NewNop()
	handler := NewHandler(NewService(NewGORMRepository(db), logger), logger)

	router := gin.New()
	handler.RegisterRoutes(router.Group("/api"), func(c *gin.Context) { c.Next() })
	return router, db
}

func perform(router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestInviteHandler_Flow(t *testing.T) {
	router, db := setupInviteRouter(t)
	f := newInviteFixture(t, db)

	body, err := json.Marshal(map[string]string{
		"senderId":   f.sender.ID.String(),
		"receiverId": f.receiver.ID.String(),
		"projectId":  f.project.ID.String(),
		"role":       "Designer",
	})
	require.NoError(t, err)

	w := perform(router, http.MethodPost, "/api/invites", string(body))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created domain.Invite
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, domain.InviteStatusPending, created.Status)
	assert.Equal(t, "Designer", created.Role)

	w = perform(router, http.MethodGet, "/api/invites/received?userId="+f.receiver.ID.String(), "")
	require.Equal(t, http.StatusOK, w.Code)
	var received []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &received))
	require.Len(t, received, 1)
	sender, ok := received[0]["sender"].(map[string]interface{})
	require.True(t, ok)
	assert.ElementsMatch(t, []string{"id", "name", "email", "githubUrl"}, keys(sender))
	project, ok := received[0]["project"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Hub", project["title"])

	w = perform(router, http.MethodPatch, "/api/invites/"+created.ID.String(), `{"status":"accepted"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w = perform(router, http.MethodPatch, "/api/invites/"+created.ID.String(), `{"status":"accepted"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(1), collaboratorCount(t, db, f.project.ID))
}

func TestInviteHandler_Validation(t *testing.T) {
	router, _ := setupInviteRouter(t)

	w := perform(router, http.MethodPost, "/api/invites", `{"role":"x"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = perform(router, http.MethodPost, "/api/invites", `{"senderId":"nope"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = perform(router, http.MethodGet, "/api/invites/received", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = perform(router, http.MethodPatch, "/api/invites/"+uuid.NewString(), `{"status":"maybe"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = perform(router, http.MethodPatch, "/api/invites/"+uuid.NewString(), `{"status":"declined"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = perform(router, http.MethodPatch, "/api/invites/not-a-uuid", `{"status":"declined"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func keys(m map[string]interface{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
