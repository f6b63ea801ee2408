package graph

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/aretw0/canvasdoc/pkg/document"
)

// Extension keys that mark input-style objects and script nodes.
var (
	inputKeys  = []string{"gh.numberslider", "gh.booleantoggle", "gh.colourswatch", "gh.panel"}
	scriptKeys = []string{"gh.script"}
)

// GenerateMermaid produces a Mermaid flowchart for doc.
// Shapes follow the role of each component:
//   - Inputs (sliders, toggles, swatches, panels): [/Parallelogram/]
//   - Scripts: [[Subroutine]]
//   - Default: [Rectangle]
//
// Groups become subgraphs, and components carrying runtime errors or
// warnings are styled with the error and warning classes.
func GenerateMermaid(doc *document.Document) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	grouped := make(map[uuid.UUID]bool)
	for _, g := range doc.Groups {
		fmt.Fprintf(&sb, "    subgraph %s[\"%s\"]\n", nodeID(g.InstanceGUID), escape(groupLabel(g)))
		for _, id := range g.Members {
			if rec, ok := doc.Component(id); ok {
				sb.WriteString("    " + nodeLine(rec))
				grouped[id] = true
			}
		}
		sb.WriteString("    end\n")
	}

	for i := range doc.Components {
		rec := &doc.Components[i]
		if !grouped[rec.InstanceGUID] {
			sb.WriteString(nodeLine(rec))
		}
	}

	for _, c := range doc.Connections {
		arrow := "-->"
		if label := edgeLabel(c); label != "" {
			arrow = fmt.Sprintf("-- \"%s\" -->", escape(label))
		}
		fmt.Fprintf(&sb, "    %s %s %s\n", nodeID(c.From.InstanceGUID), arrow, nodeID(c.To.InstanceGUID))
	}

	var failed, warned []string
	for _, rec := range doc.Components {
		switch {
		case len(rec.Errors) > 0:
			failed = append(failed, nodeID(rec.InstanceGUID))
		case len(rec.Warnings) > 0:
			warned = append(warned, nodeID(rec.InstanceGUID))
		}
	}
	if len(failed)+len(warned) > 0 {
		sb.WriteString("\n    %% Diagnostics\n")
		// Black text keeps labels readable on both themes.
		sb.WriteString("    classDef error fill:#ffebee,stroke:#c62828,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef warning fill:#fff8e1,stroke:#f9a825,stroke-width:2px,color:#000;\n")
		for _, id := range failed {
			fmt.Fprintf(&sb, "    class %s error;\n", id)
		}
		for _, id := range warned {
			fmt.Fprintf(&sb, "    class %s warning;\n", id)
		}
	}

	return sb.String()
}

func nodeLine(rec *document.Record) string {
	opener, closer := "[", "]"
	switch {
	case hasAny(rec, inputKeys):
		opener, closer = "[/", "/]"
	case hasAny(rec, scriptKeys):
		opener, closer = "[[", "]]"
	}
	return fmt.Sprintf("    %s%s\"%s\"%s\n", nodeID(rec.InstanceGUID), opener, escape(label(rec)), closer)
}

func hasAny(rec *document.Record, keys []string) bool {
	for _, k := range keys {
		if _, ok := rec.Extension(k); ok {
			return true
		}
	}
	return false
}

func label(rec *document.Record) string {
	if rec.NickName != "" {
		return rec.NickName
	}
	return rec.Name
}

func groupLabel(g document.Group) string {
	if g.Name != "" {
		return g.Name
	}
	return "group"
}

func edgeLabel(c document.Connection) string {
	switch {
	case c.From.ParamName != "" && c.To.ParamName != "":
		return c.From.ParamName + " → " + c.To.ParamName
	case c.To.ParamName != "":
		return c.To.ParamName
	default:
		return c.From.ParamName
	}
}

// nodeID derives a Mermaid-safe id from an instance id.
func nodeID(id uuid.UUID) string {
	return "n" + strings.ReplaceAll(id.String(), "-", "")[:12]
}

func escape(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}
