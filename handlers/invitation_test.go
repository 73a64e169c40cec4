package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"recipebook-backend/database"
	"recipebook-backend/models"
	"recipebook-backend/services"
	"recipebook-backend/store"
	"recipebook-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testJWTSecret = "test-secret"

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	m.Run()
}

type recordingDispatcher struct {
	sent []services.EmailOptions
	fail bool
}

func (d *recordingDispatcher) SendEmail(opts services.EmailOptions) services.EmailResult {
	d.sent = append(d.sent, opts)
	if d.fail {
		return services.EmailResult{Success: false, Err: errors.New("smtp down")}
	}
	return services.EmailResult{Success: true, MessageID: "msg-1"}
}

type testServer struct {
	router      *gin.Engine
	db          *gorm.DB
	users       *store.UserStore
	invitations *store.InvitationStore
	dispatcher  *recordingDispatcher
	cache       *fakeRecipeCache
	svc         *services.InvitationService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))

	users := store.NewUserStore(db)
	invitations := store.NewInvitationStore(db)
	recipes := store.NewRecipeStore(db)
	archives := store.NewArchiveStore(db)
	dispatcher := &recordingDispatcher{}
	cache := newFakeRecipeCache()
	svc := services.NewInvitationService(db, invitations, users, dispatcher,
		"http://localhost:3000", "Recipe Management System")

	router := SetupRouter(RouterDeps{
		JWTSecret:   testJWTSecret,
		SiteName:    "Recipe Management System",
		Auth:        NewAuthHandler(users, testJWTSecret),
		Users:       NewUserHandler(users),
		Invitations: NewInvitationHandler(svc),
		Recipes:     NewRecipeHandler(recipes, archives, cache),
		Archives:    NewArchiveHandler(archives),
	})

	return &testServer{router: router, db: db, users: users, invitations: invitations, dispatcher: dispatcher, cache: cache, svc: svc}
}

func (ts *testServer) seedUser(t *testing.T, email string, role models.UserRole) string {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	user := &models.User{
		FirstName: "Seed",
		LastName:  "User",
		Email:     email,
		Password:  string(hashed),
		Role:      role,
	}
	require.NoError(t, ts.users.Create(user))

	token, err := utils.GenerateToken(testJWTSecret, user)
	require.NoError(t, err)
	return token
}

func (ts *testServer) do(t *testing.T, method, path, authToken string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if authToken != "" {
		req.Header.Set("Authorization", "Bearer "+authToken)
	}
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestCreateInvitationRequiresAuth(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodPost, "/invitations", "", gin.H{"email": "x@example.com", "role": "STAFF"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Not authenticated", decodeJSON(t, w)["error"])
}

func TestCreateInvitationForbiddenForStaff(t *testing.T) {
	ts := newTestServer(t)
	staff := ts.seedUser(t, "staff@example.com", models.RoleStaff)

	w := ts.do(t, http.MethodPost, "/invitations", staff, gin.H{"email": "x@example.com", "role": "STAFF"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Not authorized", decodeJSON(t, w)["error"])
}

func TestCreateInvitationHTTP(t *testing.T) {
	ts := newTestServer(t)
	admin := ts.seedUser(t, "admin@example.com", models.RoleAdmin)

	w := ts.do(t, http.MethodPost, "/invitations", admin, gin.H{"email": "New@Example.com", "role": "CHEF"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	body := decodeJSON(t, w)
	inv := body["invitation"].(map[string]any)
	assert.Equal(t, "new@example.com", inv["email"])
	assert.Equal(t, "PENDING", inv["status"])
	assert.Equal(t, "http://localhost:3000/register?token="+inv["token"].(string), body["magicLink"])
	assert.Len(t, ts.dispatcher.sent, 1)
}

func TestCreateInvitationMissingFields(t *testing.T) {
	ts := newTestServer(t)
	admin := ts.seedUser(t, "admin@example.com", models.RoleAdmin)

	w := ts.do(t, http.MethodPost, "/invitations", admin, gin.H{"email": "x@example.com"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Email and role are required", decodeJSON(t, w)["error"])
}

func TestCreateInvitationDuplicate(t *testing.T) {
	ts := newTestServer(t)
	admin := ts.seedUser(t, "admin@example.com", models.RoleAdmin)

	w := ts.do(t, http.MethodPost, "/invitations", admin, gin.H{"email": "dup@example.com", "role": "STAFF"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = ts.do(t, http.MethodPost, "/invitations", admin, gin.H{"email": "dup@example.com", "role": "STAFF"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "An active invitation already exists for this email", decodeJSON(t, w)["error"])
}

func TestListInvitationsHTTP(t *testing.T) {
	ts := newTestServer(t)
	admin := ts.seedUser(t, "admin@example.com", models.RoleAdmin)

	for i := 0; i < 3; i++ {
		w := ts.do(t, http.MethodPost, "/invitations", admin,
			gin.H{"email": fmt.Sprintf("u%d@example.com", i), "role": "STAFF"})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := ts.do(t, http.MethodGet, "/invitations?page=1&limit=2", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeJSON(t, w)
	assert.Len(t, body["invitations"], 2)
	assert.EqualValues(t, 3, body["total"])
	assert.EqualValues(t, 1, body["page"])
	assert.EqualValues(t, 2, body["totalPages"])
}

func TestVerifyInvitationHTTP(t *testing.T) {
	ts := newTestServer(t)
	admin := ts.seedUser(t, "admin@example.com", models.RoleAdmin)

	w := ts.do(t, http.MethodPost, "/invitations", admin, gin.H{"email": "v@example.com", "role": "MANAGER"})
	require.Equal(t, http.StatusCreated, w.Code)
	token := decodeJSON(t, w)["invitation"].(map[string]any)["token"].(string)

	// No session required on the verify path.
	w = ts.do(t, http.MethodGet, "/invitations/verify/"+token, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeJSON(t, w)
	assert.Equal(t, true, body["valid"])
	assert.Equal(t, "MANAGER", body["invitation"].(map[string]any)["role"])

	w = ts.do(t, http.MethodGet, "/invitations/verify/bogus-token", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invitation not found", decodeJSON(t, w)["error"])
}

func TestCompleteInvitationHTTP(t *testing.T) {
	ts := newTestServer(t)
	admin := ts.seedUser(t, "admin@example.com", models.RoleAdmin)

	w := ts.do(t, http.MethodPost, "/invitations", admin, gin.H{"email": "hire@example.com", "role": "CHEF"})
	require.Equal(t, http.StatusCreated, w.Code)
	token := decodeJSON(t, w)["invitation"].(map[string]any)["token"].(string)

	w = ts.do(t, http.MethodPost, "/invitations/complete", "", gin.H{
		"token":     token,
		"firstName": "Ada",
		"lastName":  "Lovelace",
		"password":  "s3cret-pass",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	body := decodeJSON(t, w)
	assert.Equal(t, "Registration completed successfully", body["message"])
	user := body["user"].(map[string]any)
	assert.Equal(t, "hire@example.com", user["email"])
	assert.Equal(t, "CHEF", user["role"])
	assert.NotContains(t, w.Body.String(), "s3cret-pass")
	assert.NotContains(t, user, "password")

	// The new account can log in right away.
	w = ts.do(t, http.MethodPost, "/auth/login", "", gin.H{"email": "hire@example.com", "password": "s3cret-pass"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.NotEmpty(t, decodeJSON(t, w)["token"])

	// Redeeming the same token again fails.
	w = ts.do(t, http.MethodPost, "/invitations/complete", "", gin.H{
		"token":     token,
		"firstName": "Ada",
		"lastName":  "Lovelace",
		"password":  "s3cret-pass",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invitation has already been used", decodeJSON(t, w)["error"])
}

func TestCompleteInvitationMissingFields(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodPost, "/invitations/complete", "", gin.H{"token": "abc", "firstName": "A"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "All fields are required", decodeJSON(t, w)["error"])
}

func TestResendInvitationHTTP(t *testing.T) {
	ts := newTestServer(t)
	admin := ts.seedUser(t, "admin@example.com", models.RoleAdmin)

	w := ts.do(t, http.MethodPost, "/invitations", admin, gin.H{"email": "r@example.com", "role": "STAFF"})
	require.Equal(t, http.StatusCreated, w.Code)
	id := decodeJSON(t, w)["invitation"].(map[string]any)["id"].(string)

	w = ts.do(t, http.MethodPost, "/invitations/"+id+"/resend", admin, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Invitation email sent", decodeJSON(t, w)["message"])
	assert.Len(t, ts.dispatcher.sent, 2)

	w = ts.do(t, http.MethodPost, "/invitations/not-a-uuid/resend", admin, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid invitation ID", decodeJSON(t, w)["error"])
}

func TestMethodNotAllowed(t *testing.T) {
	ts := newTestServer(t)
	admin := ts.seedUser(t, "admin@example.com", models.RoleAdmin)

	w := ts.do(t, http.MethodDelete, "/invitations", admin, nil)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestLoginInvalidCredentials(t *testing.T) {
	ts := newTestServer(t)
	ts.seedUser(t, "known@example.com", models.RoleStaff)

	w := ts.do(t, http.MethodPost, "/auth/login", "", gin.H{"email": "known@example.com", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid email or password", decodeJSON(t, w)["error"])

	w = ts.do(t, http.MethodPost, "/auth/login", "", gin.H{"email": "nobody@example.com", "password": "whatever"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
