// Package report renders a document summary as markdown.
package report

import (
	"fmt"
	"slices"
	"strings"

	"github.com/aretw0/canvasdoc/internal/presentation/graph"
	"github.com/aretw0/canvasdoc/pkg/document"
)

type options struct {
	graph      bool
	validation []error
}

// Option tunes Markdown.
type Option func(*options)

// WithoutGraph leaves out the Mermaid diagram.
func WithoutGraph() Option {
	return func(o *options) { o.graph = false }
}

// WithValidation lists the given validation failures in their own section.
func WithValidation(errs []error) Option {
	return func(o *options) { o.validation = errs }
}

// Markdown summarizes doc: metadata, a component table, diagnostics and
// optionally a Mermaid flowchart of the wiring.
func Markdown(doc *document.Document, opts ...Option) string {
	o := options{graph: true}
	for _, opt := range opts {
		opt(&o)
	}

	var sb strings.Builder
	meta := document.Metadata{}
	if doc.Metadata != nil {
		meta = *doc.Metadata
	}

	title := meta.Title
	if title == "" {
		title = "Canvas document"
	}
	fmt.Fprintf(&sb, "# %s\n\n", cell(title))

	sb.WriteString("| Field | Value |\n|---|---|\n")
	row(&sb, "Schema", doc.SchemaVersion)
	if meta.Generator != "" {
		row(&sb, "Generator", strings.TrimSpace(meta.Generator+" "+meta.GeneratorVersion))
	}
	if meta.Author != "" {
		row(&sb, "Author", meta.Author)
	}
	if meta.Created != nil {
		row(&sb, "Created", meta.Created.UTC().Format("2006-01-02 15:04:05Z"))
	}
	row(&sb, "Components", fmt.Sprint(len(doc.Components)))
	row(&sb, "Connections", fmt.Sprint(len(doc.Connections)))
	row(&sb, "Groups", fmt.Sprint(len(doc.Groups)))
	sb.WriteString("\n")

	if len(doc.Components) > 0 {
		sb.WriteString("## Components\n\n")
		sb.WriteString("| Name | Nickname | Instance | Inputs | Outputs | Extensions |\n")
		sb.WriteString("|---|---|---|---|---|---|\n")
		for _, rec := range doc.Components {
			fmt.Fprintf(&sb, "| %s | %s | `%s` | %d | %d | %s |\n",
				cell(rec.Name), cell(rec.NickName), rec.InstanceGUID.String()[:8],
				len(rec.Inputs), len(rec.Outputs), cell(strings.Join(extensionKeys(rec), ", ")))
		}
		sb.WriteString("\n")
	}

	if diag := diagnostics(doc); diag != "" {
		sb.WriteString("## Diagnostics\n\n")
		sb.WriteString(diag)
		sb.WriteString("\n")
	}

	if len(o.validation) > 0 {
		sb.WriteString("## Validation\n\n")
		for _, err := range o.validation {
			fmt.Fprintf(&sb, "- %s\n", err)
		}
		sb.WriteString("\n")
	}

	if o.graph && len(doc.Components) > 0 {
		sb.WriteString("## Graph\n\n```mermaid\n")
		sb.WriteString(graph.GenerateMermaid(doc))
		sb.WriteString("```\n")
	}

	return sb.String()
}

func diagnostics(doc *document.Document) string {
	var sb strings.Builder
	for _, rec := range doc.Components {
		name := rec.NickName
		if name == "" {
			name = rec.Name
		}
		for _, msg := range rec.Errors {
			fmt.Fprintf(&sb, "- **error** %s: %s\n", name, msg)
		}
		for _, msg := range rec.Warnings {
			fmt.Fprintf(&sb, "- **warning** %s: %s\n", name, msg)
		}
	}
	return sb.String()
}

func extensionKeys(rec document.Record) []string {
	if rec.State == nil {
		return nil
	}
	keys := make([]string, 0, len(rec.State.Extensions))
	for k := range rec.State.Extensions {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func row(sb *strings.Builder, k, v string) {
	fmt.Fprintf(sb, "| %s | %s |\n", k, cell(v))
}

// cell keeps table rows intact.
func cell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}
