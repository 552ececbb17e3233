package main

import (
	"fmt"
	"os"

	"github.com/sergi/go-diff/diffmatchpatch"

	yamlkit "github.com/yamlkit/yamlkit"
	"github.com/yamlkit/yamlkit/encode"
)

type diffCmd struct {
	Args struct {
		A string `positional-arg-name:"A" required:"yes"`
		B string `positional-arg-name:"B" required:"yes"`
	} `positional-args:"yes"`
}

// Execute compares the normalized renderings of two files, so
// formatting-only differences vanish. Exits 1 when the documents
// differ.
func (c *diffCmd) Execute([]string) error {
	setup()
	a, err := normalized(c.Args.A)
	if err != nil {
		return err
	}
	b, err := normalized(c.Args.B)
	if err != nil {
		return err
	}
	if a == b {
		return nil
	}
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(a, b, false)
	diffs = dmp.DiffCleanupSemantic(diffs)
	fmt.Print(dmp.DiffPrettyText(diffs))
	os.Exit(1)
	return nil
}

func normalized(path string) (string, error) {
	docs, err := parseFile(path)
	if err != nil {
		return "", err
	}
	return yamlkit.StringifyAll(docs, outOpts(encode.SortMapEntries(true))...)
}
