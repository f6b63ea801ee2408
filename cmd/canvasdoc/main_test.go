package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/canvasdoc"
	"github.com/aretw0/canvasdoc/pkg/document"
	"github.com/aretw0/canvasdoc/pkg/host"
	"github.com/aretw0/canvasdoc/pkg/host/memhost"
)

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	rootCmd.SetArgs(args)
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetIn(strings.NewReader(""))
	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

// writeSample serializes a small canvas to dir in the given format.
func writeSample(t *testing.T, dir, name string) string {
	t.Helper()
	canvas := memhost.NewCanvas()
	slider := memhost.NewSlider(4, 0, 10)
	add := memhost.NewAddition()
	require.NoError(t, canvas.Add(slider, add))
	require.NoError(t, canvas.Connect(host.Wire{From: slider.InstanceGUID(), To: add.InstanceGUID(), ToParam: "A", ToIndex: -1}))

	doc, err := canvasdoc.New().SerializeCanvas(canvas)
	require.NoError(t, err)

	path := filepath.Join(dir, name)
	format, err := document.FormatFromPath(path)
	require.NoError(t, err)
	data, err := document.Marshal(doc, format)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestVersion(t *testing.T) {
	out, _, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "canvasdoc version "+canvasdoc.Version+" (schema "+document.SchemaVersion+")\n", out)
}

func TestValueCommands(t *testing.T) {
	out, _, err := run(t, "value", "decode", "pointXYZ:1,2,3")
	require.NoError(t, err)
	assert.Equal(t, "point {\"X\":1,\"Y\":2,\"Z\":3}\n", out)

	out, _, err = run(t, "value", "encode", "color", `{"A":64,"R":255,"G":0,"B":128}`)
	require.NoError(t, err)
	assert.Equal(t, "argb:64,255,0,128\n", out)

	_, _, err = run(t, "value", "decode", "interval:5<2")
	assert.Error(t, err)

	_, _, err = run(t, "value", "encode", "quaternion", "{}")
	assert.Error(t, err)

	out, _, err = run(t, "value", "kinds")
	require.NoError(t, err)
	assert.Contains(t, out, "pointXYZ")
}

func TestValidateAndConvert(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	dir := t.TempDir()
	jsonPath := writeSample(t, dir, "sample.json")
	yamlPath := filepath.Join(dir, "sample.yaml")

	_, _, err := run(t, "convert", jsonPath, yamlPath, "--from", "", "--to", "")
	require.NoError(t, err)

	out, _, err := run(t, "validate", jsonPath, yamlPath, "--format", "")
	require.NoError(t, err)
	assert.Contains(t, out, "✔ "+jsonPath+" is valid (2 components, 1 connections)")
	assert.Contains(t, out, "✔ "+yamlPath+" is valid")

	broken := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(broken, []byte(`{"schema_version":"1.0","components":[{"name":"x","instance_guid":"00000000-0000-0000-0000-000000000000"}],"connections":[]}`), 0o644))
	out, _, err = run(t, "validate", broken, "--format", "")
	assert.Error(t, err)
	assert.Contains(t, out, "✘ "+broken)
}

func TestInspectPrintsRawMarkdown(t *testing.T) {
	path := writeSample(t, t.TempDir(), "sample.yaml")

	out, _, err := run(t, "inspect", path, "--format", "", "--no-graph=false")
	require.NoError(t, err)
	assert.Contains(t, out, "## Components")
	assert.Contains(t, out, "```mermaid")
}

func TestReplay(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	path := writeSample(t, t.TempDir(), "sample.json")

	out, stderr, err := run(t, "replay", path, "--from", "", "--to", "yaml", "--metrics", "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, stderr, "replayed 2 of 2 components, 1 wires")
	assert.Contains(t, stderr, "canvasdoc_handler_invocations_total{")

	doc, err := document.Unmarshal([]byte(out), document.FormatYAML)
	require.NoError(t, err)
	assert.Len(t, doc.Components, 2)
	assert.Len(t, doc.Connections, 1)
}

func TestStoreCommands(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("CANVASDOC_STORE_DIR", filepath.Join(dir, "store"))
	path := writeSample(t, dir, "sample.json")

	_, _, err := run(t, "store", "put", "tower", path, "--format", "")
	require.NoError(t, err)

	out, _, err := run(t, "store", "list")
	require.NoError(t, err)
	assert.Equal(t, "tower\n", out)

	out, _, err = run(t, "store", "get", "tower", "--format", "json")
	require.NoError(t, err)
	doc, err := document.Unmarshal([]byte(out), document.FormatJSON)
	require.NoError(t, err)
	assert.Len(t, doc.Components, 2)

	_, _, err = run(t, "store", "delete", "tower")
	require.NoError(t, err)
	_, _, err = run(t, "store", "get", "tower", "--format", "json")
	assert.Error(t, err)
}
