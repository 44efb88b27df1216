package style

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/rigup/pkg/manifest"
	"github.com/arthur-debert/rigup/pkg/pipeline"
)

// RenderSummary formats the end-of-run report, listing every failed record.
func RenderSummary(s pipeline.Summary) string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("Installation summary") + "\n")
	b.WriteString(fmt.Sprintf("%s %d installed\n", SuccessStyle.Render("✓"), s.Installed))
	b.WriteString(fmt.Sprintf("%s %d already present\n", MutedStyle.Render("•"), s.Skipped))
	if remaining := s.Total - s.Processed(); remaining > 0 {
		b.WriteString(fmt.Sprintf("%s %d not attempted\n", WarningStyle.Render("!"), remaining))
	}

	if len(s.Failed) == 0 {
		b.WriteString(fmt.Sprintf("%s nothing failed", SuccessStyle.Render("✓")))
		return BoxStyle.Render(b.String())
	}

	b.WriteString(fmt.Sprintf("%s %d failed:\n", ErrorStyle.Render("✗"), len(s.Failed)))
	for i, f := range s.Failed {
		line := fmt.Sprintf("%s %s", TagStyle(f.Record.Tag).Render(f.Record.Tag.String()), f.Record.Identifier)
		if f.Record.Line > 0 {
			line += MutedStyle.Render(fmt.Sprintf(" (line %d)", f.Record.Line))
		}
		b.WriteString(Indent(line, 1))
		if i < len(s.Failed)-1 {
			b.WriteString("\n")
		}
	}
	return BoxStyle.Render(b.String())
}

// RenderManifest lists records with their tags, one per line.
func RenderManifest(m *manifest.Manifest) string {
	if m.Len() == 0 {
		return MutedStyle.Render("No records")
	}

	var b strings.Builder
	for _, rec := range m.Records {
		if rec.Err != nil {
			b.WriteString(ErrorStyle.Render(fmt.Sprintf("%-8s", "INVALID")))
			b.WriteString(fmt.Sprintf(" %s", rec.Identifier))
			b.WriteString(MutedStyle.Render(" " + rec.Err.Error()))
			b.WriteString("\n")
			continue
		}
		tag := TagStyle(rec.Tag).Render(fmt.Sprintf("%-8s", rec.Tag.String()))
		b.WriteString(fmt.Sprintf("%s %s", tag, rec.Identifier))
		if ann := manifest.Unquote(rec.Annotation); ann != "" {
			b.WriteString(MutedStyle.Render(" " + ann))
		}
		b.WriteString("\n")
	}

	counts := m.CountByTag()
	parts := make([]string, 0, len(manifest.Tags))
	for _, tag := range manifest.Tags {
		parts = append(parts, fmt.Sprintf("%s %d", tag, counts[tag]))
	}
	b.WriteString(TitleStyle.Render(fmt.Sprintf("%d records", m.Len())))
	b.WriteString(MutedStyle.Render(" (" + strings.Join(parts, ", ") + ")"))
	if n := len(m.Invalid()); n > 0 {
		b.WriteString(ErrorStyle.Render(fmt.Sprintf(", %d invalid", n)))
	}
	return b.String()
}
