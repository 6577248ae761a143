//go:build e2e

package directory_test

import (
	"fmt"
	"net/http"
	"testing"

	resdto "shareit/internal/handler/dto/response"
	"shareit/tests/common/builder"
	"shareit/tests/common/dbtest"
	"shareit/tests/common/httptest"
	"shareit/tests/e2e"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	usersURL = "/users"
	userURL  = "/users/%d"
)

type UserSuite struct {
	e2e.SharedSuite
}

func TestUserSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(UserSuite))
}

// =============================================================================
// TestCreateUser
// =============================================================================

func (s *UserSuite) TestCreateUser() {
	s.Run("Normal case: user is created and readable", func() {
		t := s.T()
		body := builder.NewUserBuilder().WithName("Alice").WithEmail("alice@example.com").BuildCreateRequestDTO()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, usersURL, body, 0)
		var created resdto.UserResponse
		httptest.AssertSuccessResponse(t, w, http.StatusCreated, &created)

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(userURL, created.ID), nil, 0)
		var got resdto.UserResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &got)

		want := resdto.UserResponse{ID: created.ID, Name: "Alice", Email: "alice@example.com"}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("user mismatch (-want +got):\n%s", diff)
		}
	})

	s.Run("Error case: duplicate email is a conflict", func() {
		t := s.T()
		dbtest.CreateTestUser(t, s.DB, "Alice", "alice@example.com")

		body := builder.NewUserBuilder().WithName("Other").WithEmail("alice@example.com").BuildCreateRequestDTO()
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, usersURL, body, 0)
		httptest.AssertErrorCode(t, w, http.StatusConflict, "CONFLICT")
	})

	s.Run("Error case: malformed email", func() {
		t := s.T()
		body := builder.NewUserBuilder().WithEmail("not-an-email").BuildCreateRequestDTO()
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, usersURL, body, 0)
		httptest.AssertErrorCode(t, w, http.StatusBadRequest, "BAD_REQUEST")
	})
}

// =============================================================================
// TestUpdateUser
// =============================================================================

func (s *UserSuite) TestUpdateUser() {
	s.Run("Normal case: partial update keeps the other field", func() {
		t := s.T()
		id := dbtest.CreateTestUser(t, s.DB, "Alice", "alice@example.com")

		w := httptest.PerformRequest(t, s.Router, http.MethodPatch, fmt.Sprintf(userURL, id),
			map[string]any{"name": "Alicia"}, 0)
		var got resdto.UserResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &got)
		require.Equal(t, "Alicia", got.Name)
		require.Equal(t, "alice@example.com", got.Email)
	})

	s.Run("Normal case: keeping your own email is not a conflict", func() {
		t := s.T()
		id := dbtest.CreateTestUser(t, s.DB, "Alice", "alice@example.com")

		w := httptest.PerformRequest(t, s.Router, http.MethodPatch, fmt.Sprintf(userURL, id),
			map[string]any{"email": "alice@example.com"}, 0)
		httptest.AssertSuccessResponse(t, w, http.StatusOK, nil)
	})

	s.Run("Error case: taking another user's email", func() {
		t := s.T()
		dbtest.CreateTestUser(t, s.DB, "Alice", "alice@example.com")
		bob := dbtest.CreateTestUser(t, s.DB, "Bob", "bob@example.com")

		w := httptest.PerformRequest(t, s.Router, http.MethodPatch, fmt.Sprintf(userURL, bob),
			map[string]any{"email": "alice@example.com"}, 0)
		httptest.AssertErrorCode(t, w, http.StatusConflict, "CONFLICT")
	})
}

// =============================================================================
// TestDeleteUser
// =============================================================================

func (s *UserSuite) TestDeleteUser() {
	s.Run("Normal case: deleting a user removes their items", func() {
		t := s.T()
		owner := dbtest.CreateTestUser(t, s.DB, "Owner", "owner@example.com")
		itemID := dbtest.CreateTestItem(t, s.DB, owner, "Drill", true)
		viewer := dbtest.CreateTestUser(t, s.DB, "Viewer", "viewer@example.com")

		w := httptest.PerformRequest(t, s.Router, http.MethodDelete, fmt.Sprintf(userURL, owner), nil, 0)
		require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(userURL, owner), nil, 0)
		httptest.AssertErrorCode(t, w, http.StatusNotFound, "NOT_FOUND")

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf("/items/%d", itemID), nil, viewer)
		httptest.AssertErrorCode(t, w, http.StatusNotFound, "NOT_FOUND")
	})

	s.Run("Normal case: list returns users in id order", func() {
		t := s.T()
		dbtest.CreateTestUser(t, s.DB, "Alice", "alice@example.com")
		dbtest.CreateTestUser(t, s.DB, "Bob", "bob@example.com")

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, usersURL, nil, 0)
		var got []resdto.UserResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &got)
		require.Len(t, got, 2)
		require.Equal(t, "Alice", got[0].Name)
		require.Equal(t, "Bob", got[1].Name)
	})
}
