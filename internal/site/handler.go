package site

import (
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/schema"

	"github.com/wolfman30/paramount-detail-site/internal/booking"
	"github.com/wolfman30/paramount-detail-site/internal/content"
	"github.com/wolfman30/paramount-detail-site/internal/session"
	"github.com/wolfman30/paramount-detail-site/pkg/logging"
)

// Handler serves the page and its form posts.
type Handler struct {
	views    *session.Service
	site     *content.Site
	renderer *Renderer
	embedURL string
	sections Sections
	decoder  *schema.Decoder
	logger   *logging.Logger
	now      func() time.Time
}

// NewHandler wires the page handler. embedURL switches the booking section to
// the third-party scheduler.
func NewHandler(views *session.Service, site *content.Site, renderer *Renderer, embedURL string, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	decoder := schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)
	return &Handler{
		views:    views,
		site:     site,
		renderer: renderer,
		embedURL: embedURL,
		sections: PageSections,
		decoder:  decoder,
		logger:   logger,
		now:      time.Now,
	}
}

type bookingPost struct {
	View    string `schema:"view"`
	Name    string `schema:"name"`
	Phone   string `schema:"phone"`
	Address string `schema:"address"`
	Date    string `schema:"date"`
	Package string `schema:"package"`
	// Intent "save" stores the fields without submitting. It backs the
	// no-script form, whose send button stays disabled until the fields
	// are complete.
	Intent string `schema:"intent"`
}

type viewPost struct {
	View    string `schema:"view"`
	Action  string `schema:"action"`
	Section string `schema:"section"`
}

// Index handles GET /. ?view=<id> re-renders an existing page view; anything
// else starts a new one.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	st, err := h.views.ViewOrNew(ctx, r.URL.Query().Get("view"))
	if err != nil {
		h.logger.Error("failed to load view", "error", err)
		http.Error(w, "failed to load page", http.StatusInternalServerError)
		return
	}

	page := Page{
		Site:     h.site,
		View:     st,
		EmbedURL: h.embedURL,
		Sections: h.sections,
		Year:     h.now().Year(),
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if err := h.renderer.Render(w, page); err != nil {
		h.logger.Error("failed to render page", "error", err, "view_id", st.ID)
		http.Error(w, "failed to render page", http.StatusInternalServerError)
	}
}

// SubmitBooking handles POST /booking: apply the posted fields, then submit.
// An incomplete form is blocked silently and re-rendered with its values.
func (h *Handler) SubmitBooking(w http.ResponseWriter, r *http.Request) {
	if h.embedURL != "" {
		http.NotFound(w, r)
		return
	}
	var post bookingPost
	if err := h.decodeForm(r, &post); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	st, err := h.views.ViewOrNew(ctx, post.View)
	if err != nil {
		h.logger.Error("failed to load view", "error", err)
		http.Error(w, "failed to load page", http.StatusInternalServerError)
		return
	}

	req := booking.Request{
		Name:    post.Name,
		Phone:   post.Phone,
		Address: post.Address,
		Date:    post.Date,
		Package: h.canonicalPackage(post.Package),
	}
	if _, err := h.views.UpdateFields(ctx, st.ID, req); err != nil {
		if errors.Is(err, booking.ErrNotEditable) {
			h.redirect(w, r, st.ID, "booking")
			return
		}
		h.logger.Error("failed to update booking form", "error", err, "view_id", st.ID)
		http.Error(w, "failed to update form", statusFor(err))
		return
	}

	if post.Intent == "save" {
		h.redirect(w, r, st.ID, "booking")
		return
	}

	_, err = h.views.Submit(ctx, st.ID)
	switch {
	case err == nil:
	case errors.Is(err, booking.ErrIncomplete),
		errors.Is(err, booking.ErrSubmissionInFlight),
		errors.Is(err, booking.ErrAlreadySubmitted):
	default:
		h.logger.Error("booking submit failed", "error", err, "view_id", st.ID)
		http.Error(w, "failed to submit request", statusFor(err))
		return
	}
	h.redirect(w, r, st.ID, "booking")
}

// CloseToast handles POST /toast/close.
func (h *Handler) CloseToast(w http.ResponseWriter, r *http.Request) {
	var post viewPost
	if err := h.decodeForm(r, &post); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	if _, err := h.views.CloseToast(r.Context(), post.View); err != nil && !errors.Is(err, session.ErrViewNotFound) {
		h.logger.Error("failed to close toast", "error", err, "view_id", post.View)
		http.Error(w, "failed to close toast", statusFor(err))
		return
	}
	h.redirect(w, r, post.View, "")
}

// Menu handles POST /menu. action=toggle flips the mobile menu; action=close
// closes it and, when section names a known section, jumps there.
func (h *Handler) Menu(w http.ResponseWriter, r *http.Request) {
	var post viewPost
	if err := h.decodeForm(r, &post); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	ctx := r.Context()
	var err error
	switch post.Action {
	case "close":
		_, err = h.views.CloseMenu(ctx, post.View)
	default:
		_, err = h.views.ToggleMenu(ctx, post.View)
	}
	if err != nil && !errors.Is(err, session.ErrViewNotFound) {
		h.logger.Error("failed to update menu", "error", err, "view_id", post.View)
		http.Error(w, "failed to update menu", statusFor(err))
		return
	}
	h.redirect(w, r, post.View, post.Section)
}

func (h *Handler) decodeForm(r *http.Request, dst any) error {
	if err := r.ParseForm(); err != nil {
		return err
	}
	return h.decoder.Decode(dst, r.PostForm)
}

// canonicalPackage maps a posted package to its configured spelling. Unknown
// values become "" so the form keeps its current selection.
func (h *Handler) canonicalPackage(name string) string {
	if p, ok := h.site.Package(name); ok {
		return p.Name
	}
	return ""
}

func (h *Handler) redirect(w http.ResponseWriter, r *http.Request, viewID, section string) {
	q := url.Values{}
	if viewID != "" {
		q.Set("view", viewID)
	}
	target := "/"
	if len(q) > 0 {
		target += "?" + q.Encode()
	}
	if href := h.sections.ScrollHref(strings.TrimSpace(section)); href != "" {
		target += href
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}
