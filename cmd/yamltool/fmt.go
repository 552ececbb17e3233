package main

import (
	"github.com/yamlkit/yamlkit/encode"
)

type fmtCmd struct {
	Sort       bool `long:"sort" description:"Sort map entries lexicographically"`
	CompactSeq bool `long:"compact-seq" description:"Align sequence markers with their mapping keys"`
	Args       struct {
		File string `positional-arg-name:"FILE" description:"Input file, - for stdin"`
	} `positional-args:"yes"`
}

func (c *fmtCmd) Execute([]string) error {
	setup()
	docs, err := parseFile(c.Args.File)
	if err != nil {
		return err
	}
	extra := []encode.Option{encode.IndentSeq(!c.CompactSeq)}
	if c.Sort {
		extra = append(extra, encode.SortMapEntries(true))
	}
	return writeDocs(docs, extra...)
}
