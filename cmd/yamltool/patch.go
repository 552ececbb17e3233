package main

import (
	"encoding/json"
	"fmt"
	"os"

	jsonpatch "github.com/evanphx/json-patch"

	yamlkit "github.com/yamlkit/yamlkit"
)

type patchCmd struct {
	PatchFile string `short:"p" long:"patch" required:"yes" description:"RFC 6902 patch file (JSON or YAML)"`
	Args      struct {
		File string `positional-arg-name:"FILE" description:"Input file, - for stdin"`
	} `positional-args:"yes"`
}

// Execute applies a JSON Patch to the document's JSON projection and
// re-emits the result as YAML. Comments and styles do not survive the
// projection.
func (c *patchCmd) Execute([]string) error {
	setup()
	patchBytes, err := os.ReadFile(c.PatchFile)
	if err != nil {
		return err
	}
	if !json.Valid(patchBytes) {
		// the patch itself may be written in YAML
		pv, err := yamlkit.Parse(string(patchBytes), yamlkit.Schema("json"))
		if err != nil {
			return fmt.Errorf("parse patch: %w", err)
		}
		patchBytes, err = json.Marshal(pv)
		if err != nil {
			return err
		}
	}
	patch, err := jsonpatch.DecodePatch(patchBytes)
	if err != nil {
		return fmt.Errorf("decode patch: %w", err)
	}

	docs, err := parseFile(c.Args.File)
	if err != nil {
		return err
	}
	for _, doc := range docs {
		src, err := doc.ToJSON()
		if err != nil {
			return err
		}
		patched, err := patch.Apply(src)
		if err != nil {
			return fmt.Errorf("apply patch: %w", err)
		}
		var v any
		if err := json.Unmarshal(patched, &v); err != nil {
			return err
		}
		out, err := yamlkit.Stringify(v, outOpts()...)
		if err != nil {
			return err
		}
		fmt.Print(out)
	}
	return nil
}
