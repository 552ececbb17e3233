package main

import (
	"fmt"
	"io"
	"os"

	"github.com/samber/lo"

	yamlkit "github.com/yamlkit/yamlkit"
	"github.com/yamlkit/yamlkit/encode"
	"github.com/yamlkit/yamlkit/ir"
)

// readInput returns the contents of path, or stdin for "" and "-".
func readInput(path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

// parseFile reads and parses every document in a file. If any document
// has syntax errors, it logs all of them and fails with their count.
func parseFile(path string) ([]*ir.Document, error) {
	d, err := readInput(path)
	if err != nil {
		return nil, err
	}
	st := yamlkit.ParseAllDocuments(string(d), yamlkit.Schema(root.Schema))
	errs := lo.FlatMap(st.Docs, func(doc *ir.Document, _ int) []*ir.Error {
		return doc.Errors
	})
	if len(errs) > 0 {
		for _, e := range errs {
			log.Error(e.Error())
		}
		return nil, fmt.Errorf("%s: %d syntax errors", displayName(path), len(errs))
	}
	return st.Docs, nil
}

func displayName(path string) string {
	if path == "" || path == "-" {
		return "stdin"
	}
	return path
}

// outOpts assembles encoder options from the global flags.
func outOpts(extra ...encode.Option) []yamlkit.Option {
	encOpts := []encode.Option{
		encode.Indent(root.Indent),
		encode.LineWidth(root.Width),
	}
	encOpts = append(encOpts, extra...)
	return []yamlkit.Option{
		yamlkit.Schema(root.Schema),
		yamlkit.EncodeOptions(encOpts...),
	}
}

// writeDocs stringifies a document stream to stdout.
func writeDocs(docs []*ir.Document, extra ...encode.Option) error {
	out, err := yamlkit.StringifyAll(docs, outOpts(extra...)...)
	if err != nil {
		return err
	}
	_, err = io.WriteString(os.Stdout, out)
	return err
}
