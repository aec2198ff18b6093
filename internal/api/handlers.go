package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/cedricworldwide/CuriosityQuest/internal/models"
	"github.com/cedricworldwide/CuriosityQuest/internal/prompts"
	"github.com/cedricworldwide/CuriosityQuest/internal/store"
	"github.com/cedricworldwide/CuriosityQuest/internal/topics"
)

// Response helpers. The wire shapes are flat ({topics}, {token, user},
// {points, badges}, {error}) to stay compatible with the existing
// web and mobile clients.

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// Health handlers

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if err := s.users.Ping(r.Context()); err != nil {
		respondError(w, http.StatusServiceUnavailable, "service not ready")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"status": "ready",
	})
}

// Topic handlers

func (s *Server) handleListTopics(w http.ResponseWriter, r *http.Request) {
	summaries, err := s.catalog.List()
	if err != nil {
		slog.Error("failed to list topics", "error", err)
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"topics": summaries,
	})
}

func (s *Server) handleGetTopic(w http.ResponseWriter, r *http.Request) {
	// A non-integer id can never match a topic, so it is a plain 404
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusNotFound, "Topic not found")
		return
	}

	topic, err := s.catalog.Get(id)
	if err != nil {
		if errors.Is(err, topics.ErrTopicNotFound) {
			respondError(w, http.StatusNotFound, "Topic not found")
			return
		}
		slog.Error("failed to get topic", "error", err, "id", id)
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"topic": topic,
	})
}

// Auth handlers

type signupRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"displayName"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	if req.Email == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	user, err := s.users.Create(r.Context(), req.Email, req.Password, req.DisplayName)
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			respondError(w, http.StatusBadRequest, "User already exists")
			return
		}
		slog.Error("failed to create user", "error", err)
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	token, err := s.tokens.Issue(user.Email)
	if err != nil {
		slog.Error("failed to issue token", "error", err)
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondJSON(w, http.StatusOK, authResponse{Token: token, User: user})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	user, err := s.users.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, store.ErrInvalidCredentials) {
			respondError(w, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		slog.Error("failed to authenticate user", "error", err)
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	token, err := s.tokens.Issue(user.Email)
	if err != nil {
		slog.Error("failed to issue token", "error", err)
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondJSON(w, http.StatusOK, authResponse{Token: token, User: user})
}

// Reward handler

type rewardRequest struct {
	Points *int   `json:"points"`
	Badge  string `json:"badge"`
}

func (s *Server) handleReward(w http.ResponseWriter, r *http.Request) {
	email := EmailFromContext(r.Context())

	var req rewardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	result, err := s.engine.Award(r.Context(), email, req.Points, req.Badge)
	if err != nil {
		if errors.Is(err, store.ErrNegativePoints) {
			respondError(w, http.StatusBadRequest, "Points must not be negative")
			return
		}
		if errors.Is(err, store.ErrNotFound) {
			// The token outlived the account; tokens stay valid until expiry
			respondError(w, http.StatusNotFound, "User not found")
			return
		}
		slog.Error("failed to apply reward", "error", err, "email", email)
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// AI prompt handler

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	topicID, err := strconv.Atoi(r.URL.Query().Get("topicId"))
	if err != nil {
		respondError(w, http.StatusNotFound, "Topic not found")
		return
	}
	lang := r.URL.Query().Get("lang")

	prompt, err := s.generator.Generate(topicID, lang)
	if err != nil {
		if errors.Is(err, topics.ErrTopicNotFound) || errors.Is(err, prompts.ErrNoPrompts) {
			respondError(w, http.StatusNotFound, "Topic not found")
			return
		}
		slog.Error("failed to generate prompt", "error", err, "topic_id", topicID)
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"prompt": prompt,
	})
}
