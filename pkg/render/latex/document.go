package latex

import (
	"embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"
	"time"

	"github.com/chrissnell/skyalmanac/internal/constants"
	"github.com/chrissnell/skyalmanac/pkg/almanac"
	"github.com/chrissnell/skyalmanac/pkg/config"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// ErrOutputFileBusy is returned when the output .tex file cannot be opened
// for writing, typically because a previous PDF build still holds it.
var ErrOutputFileBusy = errors.New("latex: output file is locked by another process")

// Meta carries provenance printed in the document footer.
type Meta struct {
	RunID         string
	GeneratedAt   time.Time
	EOPMeasured   time.Time // zero when IERS data was unavailable
	EOPPredicted  time.Time
	EphemerisName string
}

// Document is the full almanac handed to the template set.
type Document struct {
	Cfg   *config.ConfigData
	Meta  Meta
	Pages []*almanac.Page

	First, Last almanac.Date
}

// HasEOP reports whether IERS earth-orientation data backed the run.
func (d *Document) HasEOP() bool { return !d.Meta.EOPMeasured.IsZero() }

// Version is exposed to the footer template.
func (d *Document) Version() string { return constants.Version }

// allDayAbove and allDayBelow are the event-cell tokens the engine emits for
// latitudes where the body never crosses the horizon; the adjacent token marks
// a cell settled by a neighbouring day's event.
const (
	allDayAbove = almanac.CellAboveAllDay
	allDayBelow = almanac.CellBelowAllDay
	adjacent    = almanac.CellAdjacent
)

// openingCtx pairs a page with its document so nested templates can reach
// the run configuration.
type openingCtx struct {
	Doc  *Document
	Page *almanac.Page
}

var funcs = template.FuncMap{
	"opening": func(doc *Document, p *almanac.Page) openingCtx { return openingCtx{doc, p} },
	"hours": func() []int {
		h := make([]int, 24)
		for i := range h {
			h[i] = i
		}
		return h
	},
	"cell":    cellTeX,
	"eqtCell": eqtCellTeX,
	"esc":     escapeTeX,
	"mag":     magTeX,
	"date":    dateTeX,
	"lat":     latTeX,
	"add":     func(a, b int) int { return a + b },
	"f1":      func(v float64) string { return fmt.Sprintf("%.1f", v) },
	"f3":      func(v float64) string { return fmt.Sprintf("%.3f", v) },
	"second":  secondEventTeX,
}

var tmpl = template.Must(template.New("document.tex.tmpl").
	Delims("<<", ">>").Funcs(funcs).
	ParseFS(templateFS, "templates/*.tmpl"))

// cellTeX turns an event cell into LaTeX. The all-day tokens become the
// traditional filled and open horizon bars, the adjacent token a centered
// ellipsis, and empty cells a phantom so columns keep their width.
func cellTeX(s string) string {
	switch s {
	case allDayAbove:
		return `\horizonabove`
	case allDayBelow:
		return `\horizonbelow`
	case adjacent:
		return `\eventadjacent`
	case "", almanac.NoEvent:
		return `\noevent`
	}
	return `\texttt{` + escapeTeX(s) + `}`
}

// second wraps a second-event cell in the double-event background swatch.
func secondEventTeX(s string) string {
	if s == "" {
		return ""
	}
	return `\cellcolor{doubleevent}` + cellTeX(s)
}

// eqtCellTeX shades an equation-of-time value when its flag is set.
func eqtCellTeX(v string, flagged bool) string {
	if flagged {
		return `\cellcolor{slowsun}\texttt{` + escapeTeX(v) + `}`
	}
	return `\texttt{` + escapeTeX(v) + `}`
}

func magTeX(m float64) string {
	return fmt.Sprintf("%.1f", m)
}

func dateTeX(d almanac.Date) string {
	return d.Time().Format("2 January 2006")
}

// latTeX renders a tabulated latitude: N/S prefix, degrees only.
func latTeX(lat int) string {
	if lat < 0 {
		return fmt.Sprintf("S %d", -lat)
	}
	return fmt.Sprintf("N %d", lat)
}

var texEscaper = strings.NewReplacer(
	`\`, `\textbackslash{}`,
	`&`, `\&`,
	`%`, `\%`,
	`$`, `\$`,
	`#`, `\#`,
	`_`, `\_`,
	`{`, `\{`,
	`}`, `\}`,
	`~`, `\textasciitilde{}`,
	`^`, `\textasciicircum{}`,
)

func escapeTeX(s string) string {
	return texEscaper.Replace(s)
}

// Render writes the complete LaTeX document to w.
func Render(w io.Writer, doc *Document) error {
	if err := tmpl.ExecuteTemplate(w, "document.tex.tmpl", doc); err != nil {
		return fmt.Errorf("executing almanac template: %w", err)
	}
	return nil
}

// WriteFile renders the document to path, replacing any previous output.
func WriteFile(path string, doc *Document) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrPermission) {
			return fmt.Errorf("%w: %s", ErrOutputFileBusy, path)
		}
		return fmt.Errorf("opening output file: %w", err)
	}
	if err := Render(f, doc); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing output file: %w", err)
	}
	return nil
}
