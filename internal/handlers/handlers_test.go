package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskhive-dev/taskhive/db"
	"github.com/taskhive-dev/taskhive/internal/auth"
	"github.com/taskhive-dev/taskhive/internal/handlers"
	"github.com/taskhive-dev/taskhive/internal/models"
	"github.com/taskhive-dev/taskhive/internal/router"
	"github.com/taskhive-dev/taskhive/internal/types"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type envelope struct {
	Success    bool              `json:"success"`
	Message    string            `json:"message"`
	Token      string            `json:"token"`
	Count      *int              `json:"count"`
	Pagination *types.Pagination `json:"pagination"`
	Data       json.RawMessage   `json:"data"`
	User       json.RawMessage   `json:"user"`
}

func setupTestServer(t *testing.T) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)

	require.NoError(t, auth.InitJWT("handlers-test-secret", 30))

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	database, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := database.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.Task{},
		&models.Comment{},
	))

	db.DB = database
	handlers.Init(database)

	return router.NewRouter(nil)
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), "body: %s", w.Body.String())
	}

	return w, env
}

func registerUser(t *testing.T, r *gin.Engine, name, email, role string) (string, uint) {
	t.Helper()

	w, env := doJSON(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"name":     name,
		"email":    email,
		"password": "password123",
		"role":     role,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	require.NotEmpty(t, env.Token)

	var user types.UserResponse
	require.NoError(t, json.Unmarshal(env.User, &user))

	return env.Token, user.ID
}

func TestRegister_DuplicateEmail(t *testing.T) {
	r := setupTestServer(t)

	registerUser(t, r, "First", "dup@example.com", "team-member")

	w, env := doJSON(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"name":     "Second",
		"email":    "dup@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.False(t, env.Success)
	assert.Empty(t, env.Token)
}

func TestLogin_WrongPassword(t *testing.T) {
	r := setupTestServer(t)

	registerUser(t, r, "User", "user@example.com", "team-member")

	w, env := doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "user@example.com",
		"password": "not-the-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, env.Success)
	assert.Empty(t, env.Token)
	assert.Empty(t, w.Result().Cookies())
}

func TestAuth_NoToken(t *testing.T) {
	r := setupTestServer(t)

	w, _ := doJSON(t, r, http.MethodGet, "/api/projects", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_TokenViaQueryParam(t *testing.T) {
	r := setupTestServer(t)

	token, _ := registerUser(t, r, "User", "user@example.com", "team-member")

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me?token="+token, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestAuth_CookieTakesPrecedenceOverHeader(t *testing.T) {
	r := setupTestServer(t)

	token, _ := registerUser(t, r, "User", "user@example.com", "team-member")

	// A bad cookie is used even when a valid header is present: the
	// extraction order is cookie, header, query.
	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	req.AddCookie(&http.Cookie{Name: "token", Value: "garbage"})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProjectCreate_RequiresAdmin(t *testing.T) {
	r := setupTestServer(t)

	memberToken, _ := registerUser(t, r, "Member", "member@example.com", "team-member")

	w, _ := doJSON(t, r, http.MethodPost, "/api/projects", memberToken, gin.H{
		"name":        "Nope",
		"description": "not allowed",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestUsersList_AdminOnly(t *testing.T) {
	r := setupTestServer(t)

	adminToken, _ := registerUser(t, r, "Admin", "admin@example.com", "admin")
	memberToken, _ := registerUser(t, r, "Member", "member@example.com", "team-member")

	w, _ := doJSON(t, r, http.MethodGet, "/api/users", memberToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, env := doJSON(t, r, http.MethodGet, "/api/users", adminToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, env.Count)
	assert.Equal(t, 2, *env.Count)
}

func TestTaskUpdate_FieldMask(t *testing.T) {
	r := setupTestServer(t)

	adminToken, _ := registerUser(t, r, "Admin", "admin@example.com", "admin")
	memberToken, memberID := registerUser(t, r, "Member", "member@example.com", "team-member")
	otherToken, _ := registerUser(t, r, "Other", "other@example.com", "team-member")

	_, env := doJSON(t, r, http.MethodPost, "/api/projects", adminToken, gin.H{
		"name":        "P",
		"description": "d",
	})
	var project handlers.ProjectResponse
	require.NoError(t, json.Unmarshal(env.Data, &project))

	w, env := doJSON(t, r, http.MethodPost, "/api/tasks", adminToken, gin.H{
		"title":       "Design homepage",
		"description": "d",
		"priority":    "High",
		"assignedTo":  memberID,
		"project":     project.ID,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var task handlers.TaskResponse
	require.NoError(t, json.Unmarshal(env.Data, &task))

	// A team member not assigned to the task is denied regardless of payload.
	w, _ = doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/tasks/%d", task.ID), otherToken, gin.H{
		"status": "Done",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// The assignee's update applies status only; other fields are ignored.
	w, env = doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/tasks/%d", task.ID), memberToken, gin.H{
		"status": "Done",
		"title":  "hacked",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var updated handlers.TaskResponse
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.Equal(t, "Done", updated.Status)
	assert.Equal(t, "Design homepage", updated.Title)

	// An admin may update any field.
	w, env = doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/tasks/%d", task.ID), adminToken, gin.H{
		"title":    "Design homepage v2",
		"priority": "Low",
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.Equal(t, "Design homepage v2", updated.Title)
	assert.Equal(t, "Low", updated.Priority)
}

func TestCommentMutation_AuthorOrAdmin(t *testing.T) {
	r := setupTestServer(t)

	adminToken, _ := registerUser(t, r, "Admin", "admin@example.com", "admin")
	memberToken, memberID := registerUser(t, r, "Member", "member@example.com", "team-member")
	otherToken, _ := registerUser(t, r, "Other", "other@example.com", "team-member")

	_, env := doJSON(t, r, http.MethodPost, "/api/projects", adminToken, gin.H{"name": "P", "description": "d"})
	var project handlers.ProjectResponse
	require.NoError(t, json.Unmarshal(env.Data, &project))

	_, env = doJSON(t, r, http.MethodPost, "/api/tasks", adminToken, gin.H{
		"title": "T", "description": "d", "assignedTo": memberID, "project": project.ID,
	})
	var task handlers.TaskResponse
	require.NoError(t, json.Unmarshal(env.Data, &task))

	w, env := doJSON(t, r, http.MethodPost, "/api/comments", memberToken, gin.H{
		"text": "first", "task": task.ID,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var comment handlers.CommentResponse
	require.NoError(t, json.Unmarshal(env.Data, &comment))
	assert.Equal(t, memberID, comment.User.ID)

	// A third party may neither edit nor delete.
	w, _ = doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/comments/%d", comment.ID), otherToken, gin.H{"text": "x"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	w, _ = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/comments/%d", comment.ID), otherToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// The author may edit.
	w, env = doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/comments/%d", comment.ID), memberToken, gin.H{"text": "edited"})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(env.Data, &comment))
	assert.Equal(t, "edited", comment.Text)

	// An admin may delete someone else's comment.
	w, _ = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/comments/%d", comment.ID), adminToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/comments/%d", comment.ID), adminToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestEndToEnd_ProjectLifecycle(t *testing.T) {
	r := setupTestServer(t)

	adminToken, _ := registerUser(t, r, "Admin", "admin@example.com", "admin")
	memberToken, memberID := registerUser(t, r, "Member", "member@example.com", "team-member")

	// Admin creates the project.
	w, env := doJSON(t, r, http.MethodPost, "/api/projects", adminToken, gin.H{
		"name":        "Website Redesign",
		"description": "Revamp the marketing site",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var project handlers.ProjectResponse
	require.NoError(t, json.Unmarshal(env.Data, &project))

	// Admin creates a high-priority task assigned to the member.
	w, env = doJSON(t, r, http.MethodPost, "/api/tasks", adminToken, gin.H{
		"title":       "Design homepage",
		"description": "New hero section",
		"priority":    "High",
		"assignedTo":  memberID,
		"project":     project.ID,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var task handlers.TaskResponse
	require.NoError(t, json.Unmarshal(env.Data, &task))
	assert.Equal(t, "Website Redesign", task.Project.Name)
	assert.Equal(t, "member@example.com", task.AssignedTo.Email)

	// The member lists their tasks and sees exactly that one.
	w, env = doJSON(t, r, http.MethodGet, "/api/tasks?assignedTo=me", memberToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var tasks []handlers.TaskResponse
	require.NoError(t, json.Unmarshal(env.Data, &tasks))
	require.Len(t, tasks, 1)
	assert.Equal(t, task.ID, tasks[0].ID)
	require.NotNil(t, env.Pagination)
	assert.EqualValues(t, 1, env.Pagination.Total)

	// The member moves it to In Progress.
	w, env = doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/tasks/%d", task.ID), memberToken, gin.H{
		"status": "In Progress",
	})
	require.Equal(t, http.StatusOK, w.Code)
	var updated handlers.TaskResponse
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.Equal(t, "In Progress", updated.Status)

	// Admin deletes the project; the task is gone with it.
	w, _ = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/projects/%d", project.ID), adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/tasks/%d", task.ID), memberToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProjectTasks_PaginationAndSort(t *testing.T) {
	r := setupTestServer(t)

	adminToken, adminID := registerUser(t, r, "Admin", "admin@example.com", "admin")

	_, env := doJSON(t, r, http.MethodPost, "/api/projects", adminToken, gin.H{"name": "P", "description": "d"})
	var project handlers.ProjectResponse
	require.NoError(t, json.Unmarshal(env.Data, &project))

	for _, priority := range []string{"Low", "High", "Medium"} {
		w, _ := doJSON(t, r, http.MethodPost, "/api/tasks", adminToken, gin.H{
			"title":       "task " + priority,
			"description": "d",
			"priority":    priority,
			"assignedTo":  adminID,
			"project":     project.ID,
		})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	path := fmt.Sprintf("/api/projects/%d/tasks?sort=priority", project.ID)
	w, env := doJSON(t, r, http.MethodGet, path, adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var tasks []handlers.TaskResponse
	require.NoError(t, json.Unmarshal(env.Data, &tasks))
	require.Len(t, tasks, 3)
	assert.Equal(t, "High", tasks[0].Priority)
	assert.Equal(t, "Medium", tasks[1].Priority)
	assert.Equal(t, "Low", tasks[2].Priority)

	// A page past the end is empty but keeps the metadata.
	path = fmt.Sprintf("/api/projects/%d/tasks?page=5&limit=2", project.ID)
	w, env = doJSON(t, r, http.MethodGet, path, adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(env.Data, &tasks))
	assert.Empty(t, tasks)
	require.NotNil(t, env.Pagination)
	assert.EqualValues(t, 3, env.Pagination.Total)
	assert.Equal(t, 2, env.Pagination.Pages)
}
