package site

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/wolfman30/paramount-detail-site/internal/booking"
	"github.com/wolfman30/paramount-detail-site/internal/session"
	"github.com/wolfman30/paramount-detail-site/internal/toast"
)

// ViewResponse is the JSON shape of a page view.
type ViewResponse struct {
	ID           string              `json:"id"`
	State        booking.State       `json:"state"`
	CanSubmit    bool                `json:"can_submit"`
	MenuOpen     bool                `json:"menu_open"`
	Fields       booking.Request     `json:"fields"`
	Missing      []string            `json:"missing,omitempty"`
	Toast        *toast.Notification `json:"toast,omitempty"`
	Confirmation string              `json:"confirmation,omitempty"`
}

type errorResponse struct {
	Error string        `json:"error"`
	View  *ViewResponse `json:"view,omitempty"`
}

// FieldUpdate is the body of PATCH /api/views/{id}/fields.
type FieldUpdate struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

func newViewResponse(st session.State) ViewResponse {
	resp := ViewResponse{
		ID:        st.ID,
		State:     st.Form.State,
		CanSubmit: st.Form.CanSubmit(),
		MenuOpen:  st.MenuOpen,
		Fields:    st.Form.Fields,
		Missing:   st.Form.Fields.Missing(),
	}
	if n, ok := st.Toast.Get(); ok {
		resp.Toast = &n
	}
	if st.Form.Done() {
		resp.Confirmation = booking.ConfirmationMessage
	}
	return resp
}

// CreateView handles POST /api/views.
func (h *Handler) CreateView(w http.ResponseWriter, r *http.Request) {
	st, err := h.views.NewView(r.Context())
	if err != nil {
		h.logger.Error("failed to create view", "error", err)
		writeError(w, err, nil)
		return
	}
	writeJSON(w, http.StatusCreated, newViewResponse(st))
}

// GetView handles GET /api/views/{id}.
func (h *Handler) GetView(w http.ResponseWriter, r *http.Request) {
	st, err := h.views.View(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err, nil)
		return
	}
	writeJSON(w, http.StatusOK, newViewResponse(st))
}

// UpdateField handles PATCH /api/views/{id}/fields.
func (h *Handler) UpdateField(w http.ResponseWriter, r *http.Request) {
	if h.embedURL != "" {
		writeError(w, ErrBookingEmbedded, nil)
		return
	}
	var body FieldUpdate
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if body.Field == booking.FieldPackage && body.Value != "" {
		if err := h.site.RequirePackage(body.Value); err != nil {
			writeError(w, err, nil)
			return
		}
		body.Value = h.canonicalPackage(body.Value)
	}

	st, err := h.views.UpdateField(r.Context(), chi.URLParam(r, "id"), body.Field, body.Value)
	if err != nil {
		writeError(w, err, viewOrNil(st))
		return
	}
	writeJSON(w, http.StatusOK, newViewResponse(st))
}

// Submit handles POST /api/views/{id}/submit. An optional JSON body carries
// the form's current fields; they are applied before submitting so the
// request always matches what the customer sees.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	if h.embedURL != "" {
		writeError(w, ErrBookingEmbedded, nil)
		return
	}
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	var fields *booking.Request
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if fields != nil {
		if fields.Package != "" {
			if err := h.site.RequirePackage(fields.Package); err != nil {
				writeError(w, err, nil)
				return
			}
			fields.Package = h.canonicalPackage(fields.Package)
		}
		// A form that already left Editing is reported by Submit below.
		if st, err := h.views.UpdateFields(ctx, id, *fields); err != nil && !errors.Is(err, booking.ErrNotEditable) {
			writeError(w, err, viewOrNil(st))
			return
		}
	}

	out, err := h.views.Submit(ctx, id)
	if err != nil {
		if statusFor(err) == http.StatusInternalServerError {
			h.logger.Error("booking submit failed", "error", err)
		}
		writeError(w, err, viewOrNil(out.View))
		return
	}
	writeJSON(w, http.StatusOK, newViewResponse(out.View))
}

// DismissToast handles DELETE /api/views/{id}/toast.
func (h *Handler) DismissToast(w http.ResponseWriter, r *http.Request) {
	st, err := h.views.CloseToast(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err, nil)
		return
	}
	writeJSON(w, http.StatusOK, newViewResponse(st))
}

func viewOrNil(st session.State) *ViewResponse {
	if st.ID == "" {
		return nil
	}
	resp := newViewResponse(st)
	return &resp
}

func writeError(w http.ResponseWriter, err error, view *ViewResponse) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "internal error"
	}
	writeJSON(w, status, errorResponse{Error: msg, View: view})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
