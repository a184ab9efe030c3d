package content

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	site := Default()
	require.NoError(t, site.Validate("Standard"))

	assert.Equal(t, []string{"Basic", "Standard", "Full Detail"}, site.PackageNames())
	std, ok := site.Package("standard")
	require.True(t, ok)
	assert.True(t, std.Highlight)
	assert.Equal(t, "$129+", std.Price())
}

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{59, "$59"},
		{0, "$0"},
		{1299, "$1,299"},
		{1250000, "$1,250,000"},
		{-40, "-$40"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatMoney(tt.in), "FormatMoney(%d)", tt.in)
	}
}

func TestContactLinks(t *testing.T) {
	c := Default().Contact
	assert.Equal(t, "tel:+14804796100", c.TelHref())
	assert.Equal(t, "mailto:paramountmobiledetail@gmail.com", c.MailtoHref())

	c.Email = ""
	assert.Empty(t, c.MailtoHref())
}

func TestValidateRejectsBadContent(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Site)
		defPkg string
	}{
		{"no packages", func(s *Site) { s.Packages = nil }, "Standard"},
		{"zero price", func(s *Site) { s.Packages[0].From = 0 }, "Standard"},
		{"empty feature", func(s *Site) { s.Packages[1].Features = []string{""} }, "Standard"},
		{"duplicate package", func(s *Site) { s.Packages[2].Name = "basic" }, "Standard"},
		{"missing default package", func(s *Site) {}, "Ceramic"},
		{"empty default package", func(s *Site) {}, ""},
		{"unknown nav section", func(s *Site) { s.Nav[0].SectionID = "about" }, "Standard"},
		{"bad gallery url", func(s *Site) { s.Gallery[0].ImageURL = "not a url" }, "Standard"},
		{"missing brand name", func(s *Site) { s.Brand.Name = "" }, "Standard"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			site := Default()
			tt.mutate(site)
			err := site.Validate(tt.defPkg)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidContent), "got %v", err)
		})
	}
}

func TestDecodeYAML(t *testing.T) {
	doc := `
brand:
  name: Shine Co
  tagline: We shine.
contact:
  phone_display: "(555) 010-0000"
  phone_href: "+15550100000"
packages:
  - name: Standard
    from: 99
    icon: shield
    features: [Wash, Vacuum]
faq:
  - q: Do you travel?
    a: Yes.
`
	site, err := Decode(strings.NewReader(doc))
	require.NoError(t, err)
	require.NoError(t, site.Validate("Standard"))
	assert.Equal(t, "Shine Co", site.Brand.Name)
	assert.Equal(t, "$99+", site.Packages[0].Price())
	assert.Equal(t, "Do you travel?", site.FAQ[0].Question)
}

func TestDecodeRejectsUnknownKeys(t *testing.T) {
	_, err := Decode(strings.NewReader("brand:\n  name: X\n  slogan: nope\n"))
	require.Error(t, err)
}

func TestDecodeEmptyDocument(t *testing.T) {
	_, err := Decode(strings.NewReader(""))
	require.ErrorIs(t, err, ErrInvalidContent)
}

func TestLoad(t *testing.T) {
	site, err := Load("", "Standard")
	require.NoError(t, err)
	assert.Equal(t, "Paramount Mobile Detail", site.Brand.Name)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"), "Standard")
	require.Error(t, err)

	path := filepath.Join(t.TempDir(), "site.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
brand: {name: Shine Co, tagline: We shine.}
contact: {phone_display: x, phone_href: "+1"}
packages:
  - {name: Basic, from: 40, features: [Wash]}
`), 0o600))
	_, err = Load(path, "Standard")
	require.ErrorIs(t, err, ErrInvalidContent)

	site, err = Load(path, "Basic")
	require.NoError(t, err)
	assert.Equal(t, "Shine Co", site.Brand.Name)
}
