package web

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/code-and-relax/studio/internal/engine"
	"github.com/code-and-relax/studio/internal/service"
)

// defaultProfile is used when a request does not name one.
const defaultProfile = "studio"

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// profileView is the API representation of an import profile.
type profileView struct {
	Key     string   `json:"key"`
	Label   string   `json:"label"`
	Headers []string `json:"headers"`
}

func (s *Server) handleListProfiles(w http.ResponseWriter, r *http.Request) {
	profiles := engine.Profiles()
	views := make([]profileView, len(profiles))
	for i, p := range profiles {
		views[i] = profileView{
			Key:     p.Key,
			Label:   p.Label,
			Headers: []string{p.Termini.Name, p.Content.Name, p.DueDate.Name},
		}
	}
	respondJSON(w, http.StatusOK, views)
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	profile := r.URL.Query().Get("profile")
	if profile == "" {
		profile = defaultProfile
	}

	if err := r.ParseMultipartForm(s.cfg.Import.MaxFileSize); err != nil {
		respondBadRequest(w, "invalid multipart form: "+err.Error(), "FILE002")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondBadRequest(w, "no file provided", "FILE003")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	report, err := s.service.ImportFile(r.Context(), profile, header.Filename, data)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, report)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	profile := r.URL.Query().Get("profile")
	if profile == "" {
		profile = defaultProfile
	}

	csvText, err := s.service.ExportCSV(r.Context(), profile)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="tasks.csv"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(csvText))
}

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := s.service.ListTasks(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, tasks)
}

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	var params service.CreateParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		respondBadRequest(w, "invalid request body: "+err.Error(), "REQ001")
		return
	}

	rec, err := s.service.CreateTask(r.Context(), params)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, rec)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.service.Stats(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

func (s *Server) handleGetTask(w http.ResponseWriter, r *http.Request) {
	id, ok := taskID(w, r)
	if !ok {
		return
	}
	rec, err := s.service.GetTask(r.Context(), id)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, rec)
}

func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	id, ok := taskID(w, r)
	if !ok {
		return
	}

	var params service.UpdateParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		respondBadRequest(w, "invalid request body: "+err.Error(), "REQ001")
		return
	}

	rec, err := s.service.UpdateTask(r.Context(), id, params)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, rec)
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	id, ok := taskID(w, r)
	if !ok {
		return
	}
	if err := s.service.DeleteTask(r.Context(), id); err != nil {
		s.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// taskID parses the {id} URL parameter, writing a 400 on failure.
func taskID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondBadRequest(w, "invalid task id", "REQ002")
		return uuid.UUID{}, false
	}
	return id, true
}

// respondJSON writes a JSON response with the given status.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
