package handlers

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	apierrors "github.com/pribylovaa/review-comments/internal/errors"
	"github.com/pribylovaa/review-comments/internal/models"
)

// createCommentRequest — тело POST /revisions/{revision_id}/comments.
type createCommentRequest struct {
	Type    string     `json:"tipo"`
	Content string     `json:"contenido"`
	ReplyTo *uuid.UUID `json:"respuesta_a"`
}

// updateCommentRequest — тело PATCH /comments/{id}.
type updateCommentRequest struct {
	Content string `json:"contenido"`
}

func (h *Handlers) ListComments(w http.ResponseWriter, r *http.Request) {
	c, err := caller(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	revisionID, err := uuidParam(r, "revision_id")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	var params models.ListParams
	if v := r.URL.Query().Get("page_size"); v != "" {
		n, err := strconv.ParseInt(v, 10, 32)
		if err != nil || n < 0 {
			apierrors.WriteError(w, r, apierrors.ErrBadRequest)
			return
		}

		params.PageSize = int32(n)
	}
	params.PageToken = r.URL.Query().Get("page_token")

	resp, err := h.Comments.ListComments(r.Context(), c, revisionID, params)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handlers) CreateComment(w http.ResponseWriter, r *http.Request) {
	c, err := caller(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	revisionID, err := uuidParam(r, "revision_id")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	var in createCommentRequest
	if err := decodeStrict(w, r, &in); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	resp, err := h.Comments.CreateComment(r.Context(), c, models.CreateCommentInput{
		RevisionID: revisionID,
		Type:       in.Type,
		Content:    in.Content,
		ReplyTo:    in.ReplyTo,
	})
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

func (h *Handlers) Statistics(w http.ResponseWriter, r *http.Request) {
	c, err := caller(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	revisionID, err := uuidParam(r, "revision_id")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	resp, err := h.Comments.Statistics(r.Context(), c, revisionID)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handlers) GetComment(w http.ResponseWriter, r *http.Request) {
	c, err := caller(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	id, err := uuidParam(r, "id")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	resp, err := h.Comments.CommentByID(r.Context(), c, id)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handlers) UpdateComment(w http.ResponseWriter, r *http.Request) {
	c, err := caller(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	id, err := uuidParam(r, "id")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	var in updateCommentRequest
	if err := decodeStrict(w, r, &in); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	resp, err := h.Comments.UpdateComment(r.Context(), c, id, in.Content)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handlers) ToggleState(w http.ResponseWriter, r *http.Request) {
	c, err := caller(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	id, err := uuidParam(r, "id")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	resp, err := h.Comments.ToggleState(r.Context(), c, id)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handlers) DeleteComment(w http.ResponseWriter, r *http.Request) {
	c, err := caller(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	id, err := uuidParam(r, "id")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	if err := h.Comments.DeleteComment(r.Context(), c, id); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
