package main

import (
	"fmt"

	"github.com/expr-lang/expr"

	yamlkit "github.com/yamlkit/yamlkit"
)

type getCmd struct {
	Expr string `short:"e" long:"expr" required:"yes" description:"Expression over the decoded document, e.g. 'doc.spec.replicas'"`
	Args struct {
		File string `positional-arg-name:"FILE" description:"Input file, - for stdin"`
	} `positional-args:"yes"`
}

// Execute decodes the document to native values and evaluates the
// expression with the root bound as "doc".
func (c *getCmd) Execute([]string) error {
	setup()
	docs, err := parseFile(c.Args.File)
	if err != nil {
		return err
	}
	program, err := expr.Compile(c.Expr, expr.AllowUndefinedVariables())
	if err != nil {
		return fmt.Errorf("compile expression: %w", err)
	}
	for _, doc := range docs {
		v, err := doc.ToNative()
		if err != nil {
			return err
		}
		res, err := expr.Run(program, map[string]any{"doc": v})
		if err != nil {
			return fmt.Errorf("evaluate expression: %w", err)
		}
		out, err := yamlkit.Stringify(res, outOpts()...)
		if err != nil {
			return err
		}
		fmt.Print(out)
	}
	return nil
}
