package api

import (
	"net/http"

	"record-service/internal/models"
	"record-service/internal/tasks"
)

type TaskHandler struct {
	list *tasks.List
}

func NewTaskHandler(list *tasks.List) *TaskHandler {
	return &TaskHandler{list: list}
}

func (h *TaskHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /tasks", h.ListTasks)
	mux.HandleFunc("POST /tasks", h.CreateTask)
	mux.HandleFunc("GET /tasks/{position}", h.GetTask)
	mux.HandleFunc("PUT /tasks/{position}", h.UpdateTask)
	mux.HandleFunc("DELETE /tasks/{position}", h.DeleteTask)
	mux.HandleFunc("GET /healthz", healthz)
}

func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.list.All())
}

func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var in models.Task
	if !decodeBody(w, r, &in) {
		return
	}
	writeJSON(w, http.StatusOK, h.list.Create(in))
}

func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	pos, ok := position(w, r)
	if !ok {
		return
	}
	task, err := h.list.Get(pos)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	pos, ok := position(w, r)
	if !ok {
		return
	}
	var in models.Task
	if !decodeBody(w, r, &in) {
		return
	}
	task, err := h.list.Update(pos, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	pos, ok := position(w, r)
	if !ok {
		return
	}
	task, err := h.list.Delete(pos)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

// position parses the {position} path value. Values that do not fit an int
// are reported as out of range rather than as malformed.
func position(w http.ResponseWriter, r *http.Request) (int, bool) {
	n, ok := pathInt(w, r, "position")
	if !ok {
		return 0, false
	}
	if int64(int(n)) != n {
		writeDetail(w, http.StatusNotFound, "Task not found")
		return 0, false
	}
	return int(n), true
}
