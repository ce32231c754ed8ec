package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/leogic/blog-backend/internal/api/httpx"
	"github.com/leogic/blog-backend/internal/middleware"
	"github.com/leogic/blog-backend/internal/services"
	"github.com/leogic/blog-backend/internal/storage"
)

type AuthHandler struct {
	users  *services.UserService
	images storage.ImageStore
	log    *slog.Logger
}

func NewAuthHandler(users *services.UserService, images storage.ImageStore, log *slog.Logger) *AuthHandler {
	return &AuthHandler{users: users, images: images, log: log}
}

// Register accepts JSON or multipart form data (with an optional profile
// image) and responds with a bearer token for the new account.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var in services.RegisterInput

	if isMultipart(r) {
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "bad request")
			return
		}
		in.Username = r.FormValue("username")
		in.Email = r.FormValue("email")
		in.Password = r.FormValue("password")

		url, uploaded, err := uploadIfPresent(r, h.images)
		if err != nil {
			respondError(w, h.log, err, "Resource not found")
			return
		}
		if uploaded {
			in.PhotoURL = url
		}
	} else {
		var req struct {
			Username string `json:"username"`
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "bad request")
			return
		}
		in.Username, in.Email, in.Password = req.Username, req.Email, req.Password
	}

	u, token, err := h.users.Register(r.Context(), in)
	if err != nil {
		respondError(w, h.log, err, "Resource not found")
		return
	}
	httpx.WriteToken(w, http.StatusCreated, token, u)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad request")
		return
	}

	token, u, err := h.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondError(w, h.log, err, "Resource not found")
		return
	}
	httpx.WriteToken(w, http.StatusOK, token, u)
}

func (h *AuthHandler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFrom(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "Not authorized to access this route")
		return
	}
	u, err := h.users.Current(r.Context(), actor.ID)
	if err != nil {
		respondError(w, h.log, err, "User not found")
		return
	}
	httpx.WriteData(w, http.StatusOK, u)
}

// UpdateProfile changes username/email/photo; a password change requires
// the current password alongside the new one.
func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFrom(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "Not authorized to access this route")
		return
	}

	var in services.ProfileUpdate

	if isMultipart(r) {
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "bad request")
			return
		}
		in.Username = r.FormValue("username")
		in.Email = r.FormValue("email")
		in.CurrentPassword = r.FormValue("currentPassword")
		in.NewPassword = r.FormValue("newPassword")
		in.RemovePhoto = r.FormValue("removePhoto") == "true"

		url, uploaded, err := uploadIfPresent(r, h.images)
		if err != nil {
			respondError(w, h.log, err, "User not found")
			return
		}
		if uploaded {
			in.PhotoURL = &url
		}
	} else {
		var req struct {
			Username        string  `json:"username"`
			Email           string  `json:"email"`
			ProfilePhoto    *string `json:"profilePhoto"`
			RemovePhoto     bool    `json:"removePhoto"`
			CurrentPassword string  `json:"currentPassword"`
			NewPassword     string  `json:"newPassword"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "bad request")
			return
		}
		in.Username = req.Username
		in.Email = req.Email
		in.PhotoURL = req.ProfilePhoto
		in.RemovePhoto = req.RemovePhoto
		in.CurrentPassword = req.CurrentPassword
		in.NewPassword = req.NewPassword
	}

	u, err := h.users.UpdateProfile(r.Context(), actor.ID, in)
	if err != nil {
		respondError(w, h.log, err, "User not found")
		return
	}
	httpx.WriteData(w, http.StatusOK, u)
}
