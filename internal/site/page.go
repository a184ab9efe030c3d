// Package site server-renders the single marketing page and handles the
// booking, toast and menu interactions, both as HTML form posts and as a
// small JSON API for the embedded script.
package site

import (
	"html/template"

	"github.com/wolfman30/paramount-detail-site/internal/booking"
	"github.com/wolfman30/paramount-detail-site/internal/content"
	"github.com/wolfman30/paramount-detail-site/internal/session"
	"github.com/wolfman30/paramount-detail-site/internal/toast"
)

// Page is the view model for one render.
type Page struct {
	Site     *content.Site
	View     session.State
	EmbedURL string
	Sections Sections
	Year     int
}

// Embedded reports whether the booking section shows the third-party scheduler.
func (p Page) Embedded() bool {
	return p.EmbedURL != ""
}

// Nav returns the header items whose target section exists.
func (p Page) Nav() []content.NavItem {
	items := make([]content.NavItem, 0, len(p.Site.Nav))
	for _, n := range p.Site.Nav {
		if p.Sections.Has(n.SectionID) {
			items = append(items, n)
		}
	}
	return items
}

func (p Page) CanSubmit() bool {
	return p.View.Form.CanSubmit()
}

func (p Page) Done() bool {
	return p.View.Form.Done()
}

func (p Page) Fields() booking.Request {
	return p.View.Form.Fields
}

func (p Page) Confirmation() string {
	return booking.ConfirmationMessage
}

// TelHref is trusted: contact values come from startup configuration.
func (p Page) TelHref() template.URL {
	return template.URL(p.Site.Contact.TelHref())
}

// Notification is the toast to show, or nil.
func (p Page) Notification() *toast.Notification {
	if n, ok := p.View.Toast.Get(); ok {
		return &n
	}
	return nil
}
