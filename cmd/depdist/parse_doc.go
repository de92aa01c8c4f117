package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/revelaction/depdist/conllu"
	"github.com/revelaction/depdist/token"
)

func parseCommand(opts ParseOptions, path string, ui UI) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	tokens, err := conllu.Parse(string(content))
	if err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	title := opts.Title
	if title == "" {
		title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	doc := token.Doc{
		Title:  title,
		Labels: opts.Labels,
		Tokens: tokens,
	}

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}

	if opts.Out == "" {
		_, err = fmt.Fprintln(ui.Out, string(out))
		return err
	}

	return os.WriteFile(opts.Out, out, 0o644)
}
