package auth_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shkhalid/maxerp/internal/auth"
	"github.com/shkhalid/maxerp/internal/domain"
	"github.com/shkhalid/maxerp/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type registerEnvelope struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Data    auth.AuthResponse `json:"data"`
}

func TestAuthHandler_Register(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success", func(t *testing.T) {
		var created *user.User
		repo := &fakeUserRepository{
			createFn: func(ctx context.Context, u *user.User) error {
				created = u
				return nil
			},
		}
		h := auth.NewHandler(auth.NewService(repo))

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"name":"Bob Employee","email":"bob@example.com","password":"secret-pass"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Register(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		var env registerEnvelope
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
		assert.True(t, env.Success)
		assert.Equal(t, "employee", env.Data.Role)
		assert.NotNil(t, created)
	})

	t.Run("success role field in the payload is ignored", func(t *testing.T) {
		var created *user.User
		repo := &fakeUserRepository{
			createFn: func(ctx context.Context, u *user.User) error {
				created = u
				return nil
			},
		}
		h := auth.NewHandler(auth.NewService(repo))

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"name":"Mallory","email":"mallory@example.com","password":"secret-pass","role":"manager"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Register(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		var env registerEnvelope
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
		assert.Equal(t, "employee", env.Data.Role)
		assert.NotNil(t, created)
		assert.Equal(t, domain.RoleEmployee, created.Role)
		assert.False(t, created.Role.Can(domain.CapReviewLeaveRequests))
	})

	t.Run("negative missing password", func(t *testing.T) {
		h := auth.NewHandler(auth.NewService(&fakeUserRepository{}))

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"name":"Bob Employee","email":"bob@example.com"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Register(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}
