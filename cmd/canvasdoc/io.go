package main

import (
	"fmt"
	"io"
	"os"

	"github.com/aretw0/canvasdoc/pkg/document"
)

// readDocument decodes path, or stdin when path is "-". The format comes
// from the extension unless override is set.
func readDocument(stdin io.Reader, path, override string) (*document.Document, error) {
	format, err := formatFor(path, override)
	if err != nil {
		return nil, err
	}
	r := stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	doc, err := document.Decode(r, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// writeDocument encodes doc to path, or w when path is "" or "-".
func writeDocument(w io.Writer, path, override string, doc *document.Document) error {
	if path == "" || path == "-" {
		if override == "" {
			override = string(document.FormatJSON)
		}
		format, err := document.ParseFormat(override)
		if err != nil {
			return err
		}
		return document.Encode(w, doc, format)
	}
	format, err := formatFor(path, override)
	if err != nil {
		return err
	}
	data, err := document.Marshal(doc, format)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func formatFor(path, override string) (document.Format, error) {
	if override != "" {
		return document.ParseFormat(override)
	}
	if path == "-" {
		return document.FormatJSON, nil
	}
	return document.FormatFromPath(path)
}
