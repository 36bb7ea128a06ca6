package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"record-service/internal/models"
	"record-service/internal/services"
	"record-service/internal/tasks"
)

func newTaskServer(t *testing.T) (*httptest.Server, *services.Client) {
	t.Helper()
	srv := httptest.NewServer(NewTaskServer(NewTaskHandler(tasks.NewList())))
	t.Cleanup(srv.Close)
	return srv, services.NewClient(srv.URL)
}

func TestTasks_ListEmpty(t *testing.T) {
	srv, _ := newTaskServer(t)

	resp, err := http.Get(srv.URL + "/tasks")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(body))
}

func TestTasks_CreateAndList(t *testing.T) {
	_, client := newTaskServer(t)
	ctx := context.Background()

	var want []models.Task
	for i := 0; i < 3; i++ {
		task := models.Task{Title: fmt.Sprintf("t%d", i), Description: "d", Status: i == 1}
		created, err := client.CreateTask(ctx, task)
		require.NoError(t, err)
		assert.Equal(t, task, *created)
		want = append(want, task)
	}

	got, err := client.ListTasks(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestTasks_UpdateAndDelete(t *testing.T) {
	_, client := newTaskServer(t)
	ctx := context.Background()

	for _, title := range []string{"a", "b", "c"} {
		_, err := client.CreateTask(ctx, models.Task{Title: title})
		require.NoError(t, err)
	}

	updated, err := client.UpdateTask(ctx, 0, models.Task{Title: "A", Status: true})
	require.NoError(t, err)
	assert.Equal(t, models.Task{Title: "A", Status: true}, *updated)

	removed, err := client.DeleteTask(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "b", removed.Title)

	shifted, err := client.GetTask(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "c", shifted.Title)

	all, err := client.ListTasks(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.Task{{Title: "A", Status: true}, {Title: "c"}}, all)
}

func TestTasks_OutOfRange(t *testing.T) {
	srv, client := newTaskServer(t)
	ctx := context.Background()

	_, err := client.CreateTask(ctx, models.Task{Title: "only"})
	require.NoError(t, err)

	for _, pos := range []int{-1, 1, 5} {
		_, err := client.GetTask(ctx, pos)
		assert.True(t, services.IsNotFound(err), "get %d", pos)

		_, err = client.UpdateTask(ctx, pos, models.Task{Title: "x"})
		assert.True(t, services.IsNotFound(err), "update %d", pos)

		_, err = client.DeleteTask(ctx, pos)
		var apiErr *services.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusNotFound, apiErr.Status)
		assert.Equal(t, "Task not found", apiErr.Detail)
	}

	all, err := client.ListTasks(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.Task{{Title: "only"}}, all)

	resp, err := http.Get(srv.URL + "/tasks/99999999999999999999")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestTasks_MalformedBody(t *testing.T) {
	srv, client := newTaskServer(t)

	resp, err := http.Post(srv.URL+"/tasks", "application/json", strings.NewReader(`{"status": "done"}`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	all, err := client.ListTasks(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestTasks_NullBodyLeavesTaskUnchanged(t *testing.T) {
	srv, client := newTaskServer(t)
	ctx := context.Background()

	_, err := client.CreateTask(ctx, models.Task{Title: "keep", Description: "me", Status: true})
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPut, srv.URL+"/tasks/0", strings.NewReader("null"))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	got, err := client.GetTask(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, models.Task{Title: "keep", Description: "me", Status: true}, *got)
}

func TestTasks_EmptyObjectUsesZeroValues(t *testing.T) {
	srv, client := newTaskServer(t)

	resp, err := http.Post(srv.URL+"/tasks", "application/json", strings.NewReader(`{}`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	all, err := client.ListTasks(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []models.Task{{}}, all)
}
