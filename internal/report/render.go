package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/nikbrunner/bmorg/internal/cluster"
	"github.com/nikbrunner/bmorg/internal/organizer"
)

// Styles holds the lipgloss styles used by the renderers.
type Styles struct {
	Title lipgloss.Style
	Label lipgloss.Style
	Value lipgloss.Style
	Muted lipgloss.Style
	Warn  lipgloss.Style
}

// DefaultStyles returns grayscale styles with a teal accent.
func DefaultStyles() Styles {
	primary := lipgloss.AdaptiveColor{Light: "#505050", Dark: "#A0A0A0"}
	subtle := lipgloss.AdaptiveColor{Light: "#888888", Dark: "#606060"}
	accent := lipgloss.AdaptiveColor{Light: "#4A7070", Dark: "#5F8787"}
	warn := lipgloss.AdaptiveColor{Light: "#8A6D3B", Dark: "#C8A165"}

	return Styles{
		Title: lipgloss.NewStyle().Bold(true).Foreground(accent).MarginTop(1),
		Label: lipgloss.NewStyle().Foreground(subtle).Width(26),
		Value: lipgloss.NewStyle().Foreground(primary),
		Muted: lipgloss.NewStyle().Foreground(subtle),
		Warn:  lipgloss.NewStyle().Foreground(warn),
	}
}

// Renderer writes reports to a terminal.
type Renderer struct {
	w      io.Writer
	styles Styles
}

// NewRenderer creates a Renderer writing to w.
func NewRenderer(w io.Writer, styles Styles) *Renderer {
	return &Renderer{w: w, styles: styles}
}

func (r *Renderer) title(s string) {
	fmt.Fprintln(r.w, r.styles.Title.Render(s))
}

func (r *Renderer) row(label, value string) {
	fmt.Fprintln(r.w, r.styles.Label.Render(label)+r.styles.Value.Render(value))
}

// Stats renders bookmark statistics.
func (r *Renderer) Stats(s Stats) {
	r.title("Bookmark Statistics")
	r.row("Total Bookmarks", fmt.Sprintf("%d", s.Total))
	r.row("Total Folders", fmt.Sprintf("%d", s.Folders))
	r.row("Bookmarks with Icons", fmt.Sprintf("%d (%.1f%%)", s.WithIcons, Percent(s.WithIcons, s.Total)))
	r.row("Bookmarks without Icons", fmt.Sprintf("%d (%.1f%%)", s.WithoutIcons, Percent(s.WithoutIcons, s.Total)))
	r.row("Maximum Folder Depth", fmt.Sprintf("%d", s.MaxDepth))
	r.row("Total Unique Domains", fmt.Sprintf("%d", s.Domains))

	if s.Oldest != nil || s.Newest != nil {
		r.title("Date Range")
		for _, d := range []struct {
			label string
			dated *Dated
		}{{"Oldest Bookmark", s.Oldest}, {"Newest Bookmark", s.Newest}} {
			if d.dated != nil {
				r.row(d.label, fmt.Sprintf("%s (%s)", d.dated.Title, d.dated.Added.Format("2006-01-02")))
			}
		}
	}

	r.ranking(fmt.Sprintf("Top %d Domains", TopN), s.TopDomains)
	r.ranking(fmt.Sprintf("Top %d Folders", TopN), s.TopFolders)
}

func (r *Renderer) ranking(title string, counts []Count) {
	if len(counts) == 0 {
		return
	}
	r.title(title)
	for _, c := range counts {
		name := c.Name
		if name == "" {
			name = "(none)"
		}
		fmt.Fprintf(r.w, "  %s %s\n",
			r.styles.Value.Render(name+":"),
			r.styles.Muted.Render(fmt.Sprintf("%d bookmarks (%.1f%%)", c.Count, c.Percent)),
		)
	}
}

// Summary describes one organize run.
type Summary struct {
	RunID   string
	Result  organizer.Result
	Input   string
	Outputs []string
}

// Summary renders the processing summary of a run.
func (r *Renderer) Summary(s Summary) {
	res := s.Result

	r.title("Processing Summary")
	if s.RunID != "" {
		r.row("Run", s.RunID)
	}
	r.row("Input Bookmarks", fmt.Sprintf("%d", res.Input))
	r.row("Unique Bookmarks", fmt.Sprintf("%d", res.Unique))
	r.row("Duplicates Dropped", fmt.Sprintf("%d", res.Dropped))
	if res.Root != nil {
		// The root is not an output folder.
		r.row("Output Folders", fmt.Sprintf("%d", res.Root.CountFolders()-1))
		r.row("Bookmark Placements", fmt.Sprintf("%d", res.Root.CountBookmarks()))
	}
	r.row("Bookmarks Bar", fmt.Sprintf("%d", res.BarSize))

	method := string(res.Method)
	if method == "" {
		method = "none"
	}
	r.row("Clustering", method)
	if res.Method == cluster.MethodFallback && res.FallbackErr != nil {
		r.row("", r.styles.Warn.Render(res.FallbackErr.Error()))
	}

	if len(res.Clusters) > 0 {
		r.title("Folders")
		for _, c := range res.Clusters {
			fmt.Fprintf(r.w, "  %s %s\n", r.styles.Value.Render(c.Name), r.styles.Muted.Render(fmt.Sprintf("(%d)", c.Size)))
		}
	}

	if s.Input != "" || len(s.Outputs) > 0 {
		r.title("Files")
		if s.Input != "" {
			r.row("Input File", s.Input)
		}
		if len(s.Outputs) > 0 {
			r.row("Output Files", strings.Join(s.Outputs, ", "))
		}
	}
}
