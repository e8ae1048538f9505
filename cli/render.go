package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mattn/go-isatty"
	"github.com/morikuni/failure/v2"
	"github.com/raysurfer/raysurfer-cli/api"
	"github.com/samber/lo"
)

// printer renders API responses for a terminal or a plain writer
type printer struct {
	w io.Writer
	r *lipgloss.Renderer
}

func newPrinter(w io.Writer) *printer {
	return &printer{w: w, r: lipgloss.NewRenderer(w)}
}

func (p *printer) bold() lipgloss.Style {
	return p.r.NewStyle().Bold(true)
}

func (p *printer) dim() lipgloss.Style {
	return p.r.NewStyle().Faint(true)
}

func (p *printer) success(msg string) {
	fmt.Fprintln(p.w, p.r.NewStyle().Bold(true).Foreground(lipgloss.Color("2")).Render(msg))
}

func (p *printer) muted(msg string) {
	fmt.Fprintln(p.w, p.dim().Render(msg))
}

func (p *printer) json(v any) error {
	return writeJSON(p.w, v)
}

func writeJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return failure.Wrap(err)
	}
	_, err = fmt.Fprintf(w, "%s\n", b)
	return err
}

// searchSummary prints the one-line header of a search
func (p *printer) searchSummary(resp *api.SearchResponse) {
	header := fmt.Sprintf("Found %d result(s)", resp.TotalFound)
	fmt.Fprintf(p.w, "\n%s  |  cache_hit=%t  |  namespaces=[%s]\n\n",
		p.bold().Render(header), resp.CacheHit, strings.Join(resp.SearchNamespaces, ", "))
}

// row is one line of a result table
type row struct {
	name     string
	id       string
	language string
	score    float64
	up, down int
}

func matchRow(m api.SearchMatch) row {
	var cb api.CodeBlock
	if m.CodeBlock != nil {
		cb = *m.CodeBlock
	}
	name, _ := lo.Coalesce(cb.Name, m.Filename, "unnamed")
	lang, _ := lo.Coalesce(cb.Language, m.Language)
	return row{
		name:     name,
		id:       cb.ID,
		language: lang,
		score:    m.CombinedScore,
		up:       m.ThumbsUp,
		down:     m.ThumbsDown,
	}
}

func patternRow(e api.PatternEntry) row {
	var cb api.CodeBlock
	if e.CodeBlock != nil {
		cb = *e.CodeBlock
	}
	name, _ := lo.Coalesce(cb.Name, "unnamed")
	return row{
		name:  name,
		id:    cb.ID,
		score: e.CombinedScore,
		up:    e.ThumbsUp,
		down:  e.ThumbsDown,
	}
}

// table prints rows in the order given; withLanguage adds the Language column
func (p *printer) table(rows []row, withLanguage bool) {
	headers := []string{"#", "Name / ID"}
	if withLanguage {
		headers = append(headers, "Language")
	}
	headers = append(headers, "Score", "Votes")

	cells := lo.Map(rows, func(r row, i int) []string {
		label := r.name
		if r.id != "" {
			label += "\n" + r.id
		}
		c := []string{strconv.Itoa(i + 1), label}
		if withLanguage {
			c = append(c, r.language)
		}
		return append(c,
			fmt.Sprintf("%.2f", r.score),
			fmt.Sprintf("+%d / -%d", r.up, r.down),
		)
	})

	headerStyle := p.r.NewStyle().Bold(true).Foreground(lipgloss.Color("6")).Padding(0, 1)
	cellStyle := p.r.NewStyle().Padding(0, 1)
	numeric := len(headers) - 2

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(p.r.NewStyle().Foreground(lipgloss.Color("62"))).
		Headers(headers...).
		Rows(cells...).
		StyleFunc(func(rowIdx, col int) lipgloss.Style {
			switch {
			case rowIdx == table.HeaderRow:
				return headerStyle
			case col == 0:
				return cellStyle.Faint(true)
			case col >= numeric:
				return cellStyle.Align(lipgloss.Right)
			default:
				return cellStyle
			}
		})

	fmt.Fprintln(p.w, t.Render())
}

// codeBlock is source text with a display title
type codeBlock struct {
	title    string
	language string
	source   string
}

// renderCode renders code blocks as highlighted markdown
func (p *printer) renderCode(blocks []codeBlock) (string, error) {
	style := glamour.WithStandardStyle("notty")
	if isTerminal(p.w) {
		style = glamour.WithAutoStyle()
	}
	renderer, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(100))
	if err != nil {
		return "", failure.Wrap(err)
	}

	var b strings.Builder
	for _, blk := range blocks {
		b.WriteString(p.bold().Render(blk.title))
		b.WriteString("\n")
		md := fmt.Sprintf("```%s\n%s\n```\n", blk.language, strings.TrimRight(blk.source, "\n"))
		out, err := renderer.Render(md)
		if err != nil {
			return "", failure.Wrap(err)
		}
		b.WriteString(out)
	}
	return b.String(), nil
}

// isTerminal reports whether w is an interactive terminal
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
