package main

import (
	"encoding/json"
	"fmt"
	"os"

	yamlkit "github.com/yamlkit/yamlkit"
	"github.com/yamlkit/yamlkit/format"
)

type convertCmd struct {
	To   format.Format `long:"to" default:"json" description:"Target format: yaml or json"`
	Args struct {
		File string `positional-arg-name:"FILE" description:"Input file, - for stdin"`
	} `positional-args:"yes"`
}

func (c *convertCmd) Execute([]string) error {
	setup()
	if c.To.IsJSON() {
		docs, err := parseFile(c.Args.File)
		if err != nil {
			return err
		}
		for _, doc := range docs {
			out, err := doc.ToJSONIndent()
			if err != nil {
				return err
			}
			fmt.Println(string(out))
		}
		return nil
	}
	d, err := readInput(c.Args.File)
	if err != nil {
		return err
	}
	var v any
	if err := json.Unmarshal(d, &v); err != nil {
		return fmt.Errorf("%s: %w", displayName(c.Args.File), err)
	}
	out, err := yamlkit.Stringify(v, outOpts()...)
	if err != nil {
		return err
	}
	_, err = os.Stdout.WriteString(out)
	return err
}
