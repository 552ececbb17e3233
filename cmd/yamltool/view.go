package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/yamlkit/yamlkit/encode"
)

type viewCmd struct {
	NoColor bool `long:"no-color" description:"Disable ANSI colors"`
	Args    struct {
		File string `positional-arg-name:"FILE" description:"Input file, - for stdin"`
	} `positional-args:"yes"`
}

func (c *viewCmd) Execute([]string) error {
	setup()
	if c.NoColor || !isatty.IsTerminal(os.Stdout.Fd()) {
		color.NoColor = true
	}
	docs, err := parseFile(c.Args.File)
	if err != nil {
		return err
	}
	return writeDocs(docs, encode.WithColors(encode.NewColors()))
}
