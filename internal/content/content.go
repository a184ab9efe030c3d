// Package content holds the static, read-only copy the site renders: brand,
// contact details, service packages, reviews, gallery tiles and FAQ entries.
package content

import (
	"fmt"
	"strings"
)

// Brand identifies the business.
type Brand struct {
	Name        string `yaml:"name" validate:"required"`
	Tagline     string `yaml:"tagline" validate:"required"`
	Subtag      string `yaml:"subtag"`
	ServiceArea string `yaml:"service_area"`
}

// Contact holds the details rendered into tel:/mailto: links. Values are not validated.
type Contact struct {
	PhoneDisplay string `yaml:"phone_display" validate:"required"`
	PhoneHref    string `yaml:"phone_href" validate:"required"`
	Email        string `yaml:"email"`
	Hours        string `yaml:"hours"`
	Instagram    string `yaml:"instagram"`
}

// TelHref returns the tel: link for the business phone.
func (c Contact) TelHref() string {
	return "tel:" + c.PhoneHref
}

// MailtoHref returns the mailto: link, or "" when no email is configured.
func (c Contact) MailtoHref() string {
	if c.Email == "" {
		return ""
	}
	return "mailto:" + c.Email
}

// ServicePackage is one priced detailing package.
type ServicePackage struct {
	Name      string   `yaml:"name" validate:"required"`
	From      int      `yaml:"from" validate:"gt=0"`
	Badge     string   `yaml:"badge"`
	Icon      string   `yaml:"icon" validate:"omitempty,oneof=sparkles shield car"`
	Features  []string `yaml:"features" validate:"min=1,dive,required"`
	Highlight bool     `yaml:"highlight"`
}

// Price renders the starting price the way the cards show it, e.g. "$129+".
func (p ServicePackage) Price() string {
	return FormatMoney(p.From) + "+"
}

// Review is a short customer quote.
type Review struct {
	Name string `yaml:"name" validate:"required"`
	Text string `yaml:"text" validate:"required"`
	Meta string `yaml:"meta"`
}

// FAQEntry is one question/answer pair in the accordion.
type FAQEntry struct {
	Question string `yaml:"q" validate:"required"`
	Answer   string `yaml:"a" validate:"required"`
}

// GalleryTile is a static image card in the results section.
type GalleryTile struct {
	Title    string `yaml:"title" validate:"required"`
	Subtitle string `yaml:"subtitle"`
	ImageURL string `yaml:"image_url" validate:"required,url"`
	Wide     bool   `yaml:"wide"`
}

// HeroStat is a small highlight under the hero copy.
type HeroStat struct {
	Icon  string `yaml:"icon"`
	Title string `yaml:"title" validate:"required"`
	Desc  string `yaml:"desc"`
}

// NavItem links a header button to a page section.
type NavItem struct {
	Label     string `yaml:"label" validate:"required"`
	SectionID string `yaml:"section" validate:"required,oneof=top pricing results booking faq"`
}

// Site is the complete content configuration. It is loaded once at startup and never mutated.
type Site struct {
	Brand     Brand            `yaml:"brand"`
	Contact   Contact          `yaml:"contact"`
	Nav       []NavItem        `yaml:"nav" validate:"dive"`
	HeroStats []HeroStat       `yaml:"hero_stats" validate:"dive"`
	Packages  []ServicePackage `yaml:"packages" validate:"min=1,dive"`
	Gallery   []GalleryTile    `yaml:"gallery" validate:"dive"`
	Reviews   []Review         `yaml:"reviews" validate:"dive"`
	FAQ       []FAQEntry       `yaml:"faq" validate:"dive"`
}

// Package looks up a service package by name, case-insensitively.
func (s *Site) Package(name string) (ServicePackage, bool) {
	name = strings.TrimSpace(name)
	for _, p := range s.Packages {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return ServicePackage{}, false
}

// PackageNames lists package names in display order.
func (s *Site) PackageNames() []string {
	names := make([]string, 0, len(s.Packages))
	for _, p := range s.Packages {
		names = append(names, p.Name)
	}
	return names
}

// RequirePackage fails when name does not match a configured package.
func (s *Site) RequirePackage(name string) error {
	if _, ok := s.Package(name); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownPackage, name)
	}
	return nil
}
