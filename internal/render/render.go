package render

import (
	"fmt"
	"strings"

	"codeberg.org/algopatterns/codeassist/internal/codeassist"
	"codeberg.org/algopatterns/codeassist/internal/workflow"
	"github.com/charmbracelet/glamour"
)

const (
	StyleDark  = "dark"
	StyleNoTTY = "notty"
)

// turns workflow results into terminal output
type Renderer struct {
	md    *glamour.TermRenderer
	width int
}

// creates a renderer wrapping at width columns using one of glamour's
// standard styles
func New(width int, style string) (*Renderer, error) {
	if width <= 0 {
		width = 80
	}

	if style == "" {
		style = StyleDark
	}

	md, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create markdown renderer: %w", err)
	}

	return &Renderer{md: md, width: width}, nil
}

func (r *Renderer) Width() int {
	return r.width
}

// renders a fenced code block highlighted for lang
func (r *Renderer) Code(lang codeassist.Language, code string) string {
	return r.markdown(CodeBlock(lang, code), code)
}

// renders the improvement list and performance gain, "" when there are none
func (r *Renderer) Notes(res *workflow.OptimizationResult) string {
	md := Notes(res)
	if md == "" {
		return ""
	}

	return r.markdown(md, md)
}

// renders everything a snapshot has to show, in display order
func (r *Renderer) State(s workflow.State) string {
	var b strings.Builder

	if msg := s.ErrorMessage(); msg != "" {
		b.WriteString(ErrorStyle.Render("error: " + msg))
		b.WriteString("\n\n")
	}

	b.WriteString(r.Results(s))

	return b.String()
}

// renders the generated code and optimization panels without the error
func (r *Renderer) Results(s workflow.State) string {
	var b strings.Builder

	if s.HasGeneratedCode() {
		b.WriteString(HeadingStyle.Render("Generated Code"))
		b.WriteString("\n")
		b.WriteString(r.Code(s.Language, s.GeneratedCode))
	}

	if s.Optimization != nil {
		if notes := r.Notes(s.Optimization); notes != "" {
			b.WriteString(HeadingStyle.Render("Optimization Results"))
			b.WriteString("\n")
			b.WriteString(notes)
		}

		b.WriteString(HeadingStyle.Render("Optimized Code"))
		b.WriteString("\n")
		b.WriteString(r.Code(s.Language, s.Optimization.OptimizedCode))
	}

	return b.String()
}

// falls back to plain text if glamour cannot render
func (r *Renderer) markdown(md, plain string) string {
	out, err := r.md.Render(md)
	if err != nil {
		return plain + "\n"
	}

	return out
}

// builds the markdown for a fenced code block
func CodeBlock(lang codeassist.Language, code string) string {
	fence := "```"
	for strings.Contains(code, fence) {
		fence += "`"
	}

	return fmt.Sprintf("%s%s\n%s\n%s\n", fence, lang, strings.TrimRight(code, "\n"), fence)
}

// builds the markdown for the optimization notes
func Notes(res *workflow.OptimizationResult) string {
	if !res.HasNotes() {
		return ""
	}

	var b strings.Builder

	if len(res.Improvements) > 0 {
		b.WriteString("**Improvements**\n\n")
		for _, item := range res.Improvements {
			b.WriteString("- ")
			b.WriteString(item)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if res.PerformanceGain != "" {
		b.WriteString("**Performance Gain:** ")
		b.WriteString(res.PerformanceGain)
		b.WriteString("\n")
	}

	return b.String()
}
