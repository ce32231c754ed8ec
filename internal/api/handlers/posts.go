package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/leogic/blog-backend/internal/api/httpx"
	"github.com/leogic/blog-backend/internal/middleware"
	"github.com/leogic/blog-backend/internal/models"
	"github.com/leogic/blog-backend/internal/services"
	"github.com/leogic/blog-backend/internal/storage"
)

type PostsHandler struct {
	posts  *services.PostService
	images storage.ImageStore
	log    *slog.Logger
}

func NewPostsHandler(posts *services.PostService, images storage.ImageStore, log *slog.Logger) *PostsHandler {
	return &PostsHandler{posts: posts, images: images, log: log}
}

func (h *PostsHandler) List(w http.ResponseWriter, r *http.Request) {
	posts, err := h.posts.List(r.Context())
	if err != nil {
		respondError(w, h.log, err, "Post not found")
		return
	}
	httpx.WriteList(w, http.StatusOK, len(posts), posts)
}

func (h *PostsHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	posts, err := h.posts.ListByAuthor(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		respondError(w, h.log, err, "Post not found")
		return
	}
	httpx.WriteList(w, http.StatusOK, len(posts), posts)
}

func (h *PostsHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.posts.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, h.log, err, "Post not found")
		return
	}
	httpx.WriteData(w, http.StatusOK, p)
}

// Create stores a new post for the acting user. Any author field in the
// request body is discarded.
func (h *PostsHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFrom(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "Not authorized to access this route")
		return
	}

	var in services.PostInput

	if isMultipart(r) {
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "bad request")
			return
		}
		in.Title = r.FormValue("title")
		in.Content = r.FormValue("content")
		in.Tags = splitTags(r.FormValue("tags"))

		url, uploaded, err := uploadIfPresent(r, h.images)
		if err != nil {
			respondError(w, h.log, err, "Post not found")
			return
		}
		if uploaded {
			in.Image = url
		}
	} else {
		var req struct {
			Title   string   `json:"title"`
			Content string   `json:"content"`
			Image   string   `json:"image"`
			Tags    []string `json:"tags"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "bad request")
			return
		}
		in.Title, in.Content, in.Image, in.Tags = req.Title, req.Content, req.Image, req.Tags
	}

	p, err := h.posts.Create(r.Context(), actor.ID, in)
	if err != nil {
		respondError(w, h.log, err, "Post not found")
		return
	}
	httpx.WriteData(w, http.StatusCreated, p)
}

// Update applies a partial mutation. An uploaded image replaces the current
// one; removeImage=true clears it; otherwise the stored image is untouched.
func (h *PostsHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFrom(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "Not authorized to access this route")
		return
	}

	var upd models.PostUpdate

	if isMultipart(r) {
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "bad request")
			return
		}
		if v := r.FormValue("title"); v != "" {
			upd.Title = &v
		}
		if v := r.FormValue("content"); v != "" {
			upd.Content = &v
		}
		if v := r.FormValue("tags"); v != "" {
			upd.Tags = splitTags(v)
		}
		upd.RemoveImage = r.FormValue("removeImage") == "true"

		if !upd.RemoveImage {
			url, uploaded, err := uploadIfPresent(r, h.images)
			if err != nil {
				respondError(w, h.log, err, "Post not found")
				return
			}
			if uploaded {
				upd.Image = &url
			}
		}
	} else {
		var req struct {
			Title       *string  `json:"title"`
			Content     *string  `json:"content"`
			Image       *string  `json:"image"`
			Tags        []string `json:"tags"`
			RemoveImage bool     `json:"removeImage"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "bad request")
			return
		}
		upd.Title, upd.Content, upd.Tags = req.Title, req.Content, req.Tags
		upd.RemoveImage = req.RemoveImage
		if !req.RemoveImage {
			upd.Image = req.Image
		}
	}

	p, err := h.posts.Update(r.Context(), actor.ID, actor.Role, chi.URLParam(r, "id"), upd)
	if err != nil {
		respondError(w, h.log, err, "Post not found")
		return
	}
	httpx.WriteData(w, http.StatusOK, p)
}

func (h *PostsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFrom(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "Not authorized to access this route")
		return
	}
	if err := h.posts.Delete(r.Context(), actor.ID, actor.Role, chi.URLParam(r, "id")); err != nil {
		respondError(w, h.log, err, "Post not found")
		return
	}
	httpx.WriteData(w, http.StatusOK, struct{}{})
}

func (h *PostsHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFrom(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "Not authorized to access this route")
		return
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad request")
		return
	}

	c, err := h.posts.AddComment(r.Context(), actor.ID, chi.URLParam(r, "id"), req.Content)
	if err != nil {
		respondError(w, h.log, err, "Post not found")
		return
	}
	httpx.WriteData(w, http.StatusOK, c)
}

func (h *PostsHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFrom(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "Not authorized to access this route")
		return
	}
	err := h.posts.DeleteComment(r.Context(), actor.ID, actor.Role,
		chi.URLParam(r, "postId"), chi.URLParam(r, "commentId"))
	if err != nil {
		respondError(w, h.log, err, "Comment not found")
		return
	}
	httpx.WriteData(w, http.StatusOK, struct{}{})
}

func (h *PostsHandler) RegisterView(w http.ResponseWriter, r *http.Request) {
	views, err := h.posts.RegisterView(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, h.log, err, "Post not found")
		return
	}
	httpx.WriteData(w, http.StatusOK, map[string]int{"views": views})
}
