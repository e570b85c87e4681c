// Package view renders client snapshots as terminal text.
package view

import (
	"embed"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/template"
	"time"

	"cherishedwords/internal/client"
	"cherishedwords/internal/models"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Creator theme colours.
const (
	GirlfriendColor = "#ec4899"
	BoyfriendColor  = "#0ea5e9"
)

// CreatorColor returns the theme colour of a card's creator.
func CreatorColor(c models.Creator) string {
	if c == models.CreatorBoyfriend {
		return BoyfriendColor
	}
	return GirlfriendColor
}

// Renderer draws snapshots. It is safe for concurrent use.
type Renderer struct {
	tmpl  *template.Template
	color bool
}

// New parses the templates. With color set, creator themes are drawn with
// 24-bit ANSI escapes.
func New(color bool) (*Renderer, error) {
	r := &Renderer{color: color}
	tmpl, err := template.New("view").Funcs(template.FuncMap{
		"paint":   r.paint,
		"default": defaultFn,
		"mask":    mask,
		"date":    displayDate,
		"lines":   lines,
		"heart":   func() string { return "<3" },
		"lock":    func() string { return "[locked]" },
	}).ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse view templates: %w", err)
	}
	r.tmpl = tmpl
	return r, nil
}

// Render writes the surface for snap: the sign-in surface alone while signed
// out, the gallery otherwise.
func (r *Renderer) Render(w io.Writer, snap client.Snapshot) error {
	name := "gallery"
	if !snap.SignedIn {
		name = "signin"
	}
	return r.tmpl.ExecuteTemplate(w, name, snap)
}

func (r *Renderer) paint(c models.Creator, s string) string {
	if !r.color {
		return s
	}
	red, green, blue := hexRGB(CreatorColor(c))
	return fmt.Sprintf("\x1b[38;2;%d;%d;%dm%s\x1b[0m", red, green, blue, s)
}

func hexRGB(hex string) (r, g, b uint8) {
	v, err := strconv.ParseUint(strings.TrimPrefix(hex, "#"), 16, 32)
	if err != nil {
		return 0, 0, 0
	}
	return uint8(v >> 16), uint8(v >> 8), uint8(v)
}

// defaultFn supports pipe usage: {{ .Value | default "-" }}
func defaultFn(fallback, value string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

func mask(s string) string {
	if s == "" {
		return "-"
	}
	return strings.Repeat("*", len([]rune(s)))
}

func displayDate(createdAt string) string {
	t, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return createdAt
	}
	return t.Format("Jan 2, 2006")
}

func lines(s string) []string {
	return strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
}
