package graph_test

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/aretw0/canvasdoc/internal/presentation/graph"
	"github.com/aretw0/canvasdoc/pkg/document"
)

var (
	sliderID = uuid.MustParse("11111111-2222-3333-4444-555555555555")
	addID    = uuid.MustParse("aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee")
	scriptID = uuid.MustParse("99999999-8888-7777-6666-555555555555")
	groupID  = uuid.MustParse("12345678-1234-1234-1234-123456789abc")
)

func sample() *document.Document {
	slider := document.Record{Name: "Number Slider", InstanceGUID: sliderID}
	slider.SetExtension("gh.numberslider", map[string]any{"value": "1<0~2>"})
	script := document.Record{Name: "Script", NickName: `say "hi"`, InstanceGUID: scriptID, Errors: []string{"syntax error"}}
	script.SetExtension("gh.script", map[string]any{"source": "x"})
	add := document.Record{Name: "Addition", InstanceGUID: addID, Warnings: []string{"input B empty"}}

	doc := document.New()
	doc.Components = []document.Record{slider, add, script}
	doc.Connections = []document.Connection{
		{From: document.Endpoint{InstanceGUID: sliderID, ParamName: "Number"}, To: document.Endpoint{InstanceGUID: addID, ParamName: "A"}},
		{From: document.Endpoint{InstanceGUID: addID}, To: document.Endpoint{InstanceGUID: scriptID}},
	}
	return doc
}

func TestGenerateMermaid(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*document.Document)
		contains []string
		absent   []string
	}{
		{
			name: "shapes",
			contains: []string{
				`n111111112222["Number Slider"/]`,
				`naaaaaaaabbbb["Addition"]`,
				`n999999998888[["say 'hi'"]]`,
			},
		},
		{
			name: "edges",
			contains: []string{
				`n111111112222 -- "Number → A" --> naaaaaaaabbbb`,
				`naaaaaaaabbbb --> n999999998888`,
			},
		},
		{
			name: "diagnostics",
			contains: []string{
				"class n999999998888 error;",
				"class naaaaaaaabbbb warning;",
			},
		},
		{
			name: "groups",
			mutate: func(d *document.Document) {
				d.Groups = []document.Group{{InstanceGUID: groupID, Name: "inputs", Members: []uuid.UUID{sliderID}}}
			},
			contains: []string{
				`subgraph n123456781234["inputs"]`,
				"    end\n",
			},
		},
		{
			name: "clean document has no styles",
			mutate: func(d *document.Document) {
				for i := range d.Components {
					d.Components[i].Errors = nil
					d.Components[i].Warnings = nil
				}
			},
			absent: []string{"classDef"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := sample()
			if tt.mutate != nil {
				tt.mutate(doc)
			}
			out := graph.GenerateMermaid(doc)
			assert.True(t, strings.HasPrefix(out, "graph LR\n"))
			for _, s := range tt.contains {
				assert.Contains(t, out, s)
			}
			for _, s := range tt.absent {
				assert.NotContains(t, out, s)
			}
		})
	}
}

func TestGroupedNodesAreNotRepeated(t *testing.T) {
	doc := sample()
	doc.Groups = []document.Group{{InstanceGUID: groupID, Members: []uuid.UUID{sliderID}}}

	out := graph.GenerateMermaid(doc)
	assert.Equal(t, 1, strings.Count(out, `n111111112222["Number Slider"/]`))
	assert.Contains(t, out, `["group"]`)
}
