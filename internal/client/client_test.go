package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"planner/internal/model"
	"planner/internal/repository"
)

func TestLoginStoresTokenAndPrincipal(t *testing.T) {
	// Arrange
	userID := uuid.New()
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/login":
			json.NewEncoder(w).Encode(map[string]any{
				"token": "token-abc",
				"user": map[string]any{
					"id":             userID.String(),
					"email":          "test@example.com",
					"name":           "Test User",
					"email_verified": true,
				},
			})
		case "/tasks/unassigned":
			gotAuth = r.Header.Get("Authorization")
			json.NewEncoder(w).Encode([]any{})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()
	c := New(server.URL)

	// Act
	principal, err := c.Login(context.Background(), "test@example.com", "password123")
	assert.NoError(t, err)
	_, err = c.ListUnassigned(context.Background())

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, userID, principal.ID)
	assert.True(t, principal.EmailVerified)
	assert.Equal(t, principal, c.Auth().Current())
	assert.Equal(t, "Bearer token-abc", gotAuth)
}

func TestListForDateNormalizesPartialDocuments(t *testing.T) {
	// Arrange
	idA := uuid.New()
	idB := uuid.New()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/tasks/date/2024-06-15", r.URL.Path)
		json.NewEncoder(w).Encode([]map[string]any{
			{"id": idA.String(), "text": "Later task", "order": 2, "completed": true, "dateKey": "2024-06-15"},
			{"id": idB.String(), "text": "Sparse task", "dateKey": "2024-06-15"},
		})
	}))
	defer server.Close()
	c := New(server.URL)

	// Act
	tasks, err := c.ListForDate(context.Background(), "2024-06-15")

	// Assert
	assert.NoError(t, err)
	assert.Len(t, tasks, 2)
	assert.Equal(t, idB, tasks[0].ID)
	assert.Equal(t, 0, tasks[0].Order)
	assert.False(t, tasks[0].Completed)
	assert.Equal(t, idA, tasks[1].ID)
	assert.True(t, tasks[1].Completed)
}

func TestUpdateRoutesDateKeyThroughAssignEndpoints(t *testing.T) {
	// Arrange
	taskID := uuid.New()
	var calls []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.Method+" "+r.URL.Path)
		if r.Method == http.MethodPost {
			var body map[string]string
			json.NewDecoder(r.Body).Decode(&body)
			assert.Equal(t, "2024-06-15", body["date_key"])
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()
	c := New(server.URL)
	key := "2024-06-15"

	// Act
	err := c.Update(context.Background(), taskID, model.TaskPatch{DateKey: &key, DateKeySet: true})
	assert.NoError(t, err)
	err = c.Update(context.Background(), taskID, model.TaskPatch{DateKeySet: true})

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, []string{
		"POST /tasks/" + taskID.String() + "/assign",
		"DELETE /tasks/" + taskID.String() + "/assign",
	}, calls)
}

func TestUpdateSendsFieldPatch(t *testing.T) {
	// Arrange
	taskID := uuid.New()
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/tasks/"+taskID.String(), r.URL.Path)
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()
	c := New(server.URL)
	completed := true

	// Act
	err := c.Update(context.Background(), taskID, model.TaskPatch{Completed: &completed})

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, map[string]any{"completed": true}, gotBody)
}

func TestNoteAbsentReturnsNil(t *testing.T) {
	// Arrange
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()
	c := New(server.URL)

	// Act
	note, err := c.Note(context.Background(), "2024-06-15")

	// Assert
	assert.NoError(t, err)
	assert.Nil(t, note)
}

func TestNoteKeysSendsRangeQuery(t *testing.T) {
	// Arrange
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/notes", r.URL.Path)
		assert.Equal(t, "2024-06-01", r.URL.Query().Get("from"))
		assert.Equal(t, "2024-06-30", r.URL.Query().Get("to"))
		json.NewEncoder(w).Encode(map[string]any{"dateKeys": []string{"2024-06-02", "2024-06-15"}})
	}))
	defer server.Close()
	c := New(server.URL)

	// Act
	keys, err := c.NoteKeys(context.Background(), "2024-06-01", "2024-06-30")

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, []string{"2024-06-02", "2024-06-15"}, keys)
}

func TestStatusCodesMapToSentinelErrors(t *testing.T) {
	// Arrange
	status := http.StatusUnauthorized
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
	}))
	defer server.Close()
	c := New(server.URL)

	// Act / Assert
	_, err := c.ListUnassigned(context.Background())
	assert.ErrorIs(t, err, repository.ErrUnauthenticated)

	status = http.StatusForbidden
	_, err = c.ListUnassigned(context.Background())
	assert.ErrorIs(t, err, repository.ErrUnverified)

	status = http.StatusInternalServerError
	_, err = c.ListUnassigned(context.Background())
	assert.ErrorIs(t, err, repository.ErrStoreUnavailable)
}

func TestTransportFailureIsStoreUnavailable(t *testing.T) {
	// Arrange
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()
	c := New(server.URL)

	// Act
	_, err := c.ListUnassigned(context.Background())

	// Assert
	assert.ErrorIs(t, err, repository.ErrStoreUnavailable)
}
