package report

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/lexandro/docscan/stats"
)

const readmeName = "README.md"

// Label returns the short display name of a document path:
// "<project>/README.md" for READMEs, "<project>/<dir>/<file>" otherwise.
func Label(path string) string {
	path = filepath.Clean(path)
	name := filepath.Base(path)
	parent := filepath.Dir(path)

	if name == readmeName {
		return filepath.Base(parent) + "/" + readmeName
	}
	return filepath.Base(filepath.Dir(parent)) + "/" + filepath.Base(parent) + "/" + name
}

// Printer writes report lines to an output stream.
// Colors are applied only when enabled; the text is identical either way.
type Printer struct {
	out     io.Writer
	colored bool
	heading *color.Color
	label   *color.Color
	fail    *color.Color
}

// NewPrinter creates a Printer writing to out.
func NewPrinter(out io.Writer, colored bool) *Printer {
	p := &Printer{
		out:     out,
		colored: colored,
	}
	if colored {
		p.heading = color.New(color.FgCyan, color.Bold)
		p.label = color.New(color.Bold)
		p.fail = color.New(color.FgRed)
		for _, c := range []*color.Color{p.heading, p.label, p.fail} {
			c.EnableColor()
		}
	}
	return p
}

// FormatCount renders n with English thousands separators (1234567 -> "1,234,567").
func FormatCount(n int) string {
	return message.NewPrinter(language.English).Sprintf("%d", n)
}

// RenderPreview writes the preview block for one document:
// a blank line, the label, the word count and the preview followed by "...".
func (p *Printer) RenderPreview(path string, fileStats *stats.FileStats) {
	fmt.Fprintln(p.out)
	fmt.Fprintf(p.out, "📄 %s\n", p.paint(p.label, Label(path)))
	fmt.Fprintf(p.out, "   Words: %s\n", FormatCount(fileStats.WordCount))
	fmt.Fprintf(p.out, "   Preview: %s...\n", fileStats.Preview)
}

// PreviewBlock returns what RenderPreview would write, without color.
func PreviewBlock(path string, fileStats *stats.FileStats) string {
	var builder strings.Builder
	NewPrinter(&builder, false).RenderPreview(path, fileStats)
	return builder.String()
}

func (p *Printer) line(format string, args ...any) {
	fmt.Fprintf(p.out, format+"\n", args...)
}

func (p *Printer) paint(c *color.Color, s string) string {
	if !p.colored || c == nil {
		return s
	}
	return c.Sprint(s)
}
