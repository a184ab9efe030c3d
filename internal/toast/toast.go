// Package toast implements the single-slot feedback notification.
package toast

// Notification is one toast message.
type Notification struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

// RequestSent is shown after a booking request goes out.
var RequestSent = Notification{
	Title:   "Request sent",
	Message: "We’ll text you to confirm.",
}

// Slot holds zero or one notification. Show overwrites; nothing is queued and
// nothing expires on its own.
type Slot struct {
	Current *Notification `json:"current,omitempty"`
}

// Show replaces whatever is displayed.
func (s *Slot) Show(title, message string) {
	s.Current = &Notification{Title: title, Message: message}
}

// ShowNotification is Show for a prepared Notification.
func (s *Slot) ShowNotification(n Notification) {
	s.Show(n.Title, n.Message)
}

// Close clears the slot. Closing an empty slot is a no-op.
func (s *Slot) Close() {
	s.Current = nil
}

// Get returns the displayed notification, if any.
func (s Slot) Get() (Notification, bool) {
	if s.Current == nil {
		return Notification{}, false
	}
	return *s.Current, true
}

// Visible reports whether anything should be rendered.
func (s Slot) Visible() bool {
	return s.Current != nil
}
