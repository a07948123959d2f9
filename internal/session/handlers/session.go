package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"galaxy-server/internal/session"
	"galaxy-server/internal/shared/errors"
	"galaxy-server/internal/shared/response"
)

type SessionHandler struct {
	session *session.Session
}

func NewSessionHandler(s *session.Session) *SessionHandler {
	return &SessionHandler{session: s}
}

type SetSeedRequest struct {
	Seed *int64 `json:"seed"`
}

type LoadConfigRequest struct {
	Path string `json:"path"`
}

func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "get_session")

	if r.Method != http.MethodGet {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	response.Success(w, http.StatusOK, h.session.State())
}

func (h *SessionHandler) SetSeed(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "set_seed")

	if r.Method != http.MethodPut {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	var req SetSeedRequest
	if err := decodeJSON(w, r, &req); err != nil {
		response.Error(w, r, logger, err)
		return
	}
	if req.Seed == nil {
		response.Error(w, r, logger, errors.Validation("seed is required"))
		return
	}

	if err := h.session.SetSeed(r.Context(), *req.Seed); err != nil {
		response.Error(w, r, logger, err)
		return
	}

	logger.Info("Galaxy seed changed", "seed", *req.Seed)
	response.Success(w, http.StatusOK, h.session.State())
}

func (h *SessionHandler) UpdateConfig(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "update_config")

	if r.Method != http.MethodPut {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	var update session.ConfigUpdate
	if err := decodeJSON(w, r, &update); err != nil {
		response.Error(w, r, logger, err)
		return
	}

	if err := h.session.Update(r.Context(), update); err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, h.session.State())
}

func (h *SessionHandler) LoadConfig(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "load_config")

	if r.Method != http.MethodPut {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	var req LoadConfigRequest
	if err := decodeJSON(w, r, &req); err != nil {
		response.Error(w, r, logger, err)
		return
	}
	if req.Path == "" {
		response.Error(w, r, logger, errors.Validation("path is required"))
		return
	}

	if _, err := h.session.LoadConfig(r.Context(), req.Path); err != nil {
		response.Error(w, r, logger, err)
		return
	}

	logger.Info("Galaxy config loaded", "path", req.Path)
	response.Success(w, http.StatusOK, h.session.State())
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return errors.WrapValidation("invalid request body", err)
	}
	return nil
}
