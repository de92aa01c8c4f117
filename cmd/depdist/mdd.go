package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/revelaction/depdist/conllu"
	"github.com/revelaction/depdist/mdd"
	"github.com/revelaction/depdist/render"
	"github.com/revelaction/depdist/storage/filesystem"
	"github.com/revelaction/depdist/token"
)

func mddCommand(opts MddOptions, source, sentId string, ui UI) error {
	tokens, err := loadTokens(opts.DocPath, source)
	if err != nil {
		return err
	}

	if sentId != "" {
		tokens = restrictSentence(tokens, sentId)
		if len(tokens) == 0 {
			return fmt.Errorf("no sentence with id %s in %s", sentId, source)
		}
	}

	g := mdd.Document
	if opts.Granularity == "sentence" {
		g = mdd.Sentence
	}

	hdl := mdd.NewHandler(g)
	hdl.Aggregate(tokens)

	render.Anomalies(ui.Err, hdl.Anomalies())

	r, err := render.NewRenderer(opts.Format, ui.Out)
	if err != nil {
		return err
	}
	if tr, ok := r.(*render.TableRenderer); ok {
		tr.HasColor = !opts.NoColor
	}

	return r.Render(hdl.Rows())
}

// loadTokens reads the token table from a .conllu file, a JSON doc file or a
// stored document id.
func loadTokens(docPath, source string) ([]token.Token, error) {
	if isFile(source) {
		if strings.HasSuffix(source, ".conllu") {
			content, err := os.ReadFile(source)
			if err != nil {
				return nil, err
			}
			return conllu.Parse(string(content))
		}

		doc, err := filesystem.ReadDoc(source)
		if err != nil {
			return nil, err
		}
		return doc.Tokens, nil
	}

	id, err := strconv.Atoi(source)
	if err != nil {
		return nil, fmt.Errorf("invalid DB ID: %s", source)
	}

	pool := &Pool{}
	defer pool.Close()

	repo, err := NewDocRepository(pool, docPath)
	if err != nil {
		return nil, err
	}

	doc, err := repo.Read(id)
	if err != nil {
		return nil, err
	}
	return doc.Tokens, nil
}

// restrictSentence keeps only the tokens of one sentence. The id is matched
// against the SentenceID of any document in the table.
func restrictSentence(tokens []token.Token, sentId string) []token.Token {
	var out []token.Token
	for _, t := range tokens {
		if t.SentenceID == sentId {
			out = append(out, t)
		}
	}
	return out
}
