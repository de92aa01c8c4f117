package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/revelaction/depdist/storage/filesystem"
	"github.com/revelaction/depdist/token"
)

func docCommand(opts DocOptions, arg string, ui UI) error {
	if isFile(arg) {
		doc, err := filesystem.ReadDoc(arg)
		if err != nil {
			return err
		}
		renderDoc(doc, opts, ui)
		return nil
	}

	pool := &Pool{}
	defer pool.Close()

	repo, err := NewDocRepository(pool, opts.DocPath)
	if err != nil {
		return err
	}

	if arg == "" {
		docs, err := repo.List("")
		if err != nil {
			return err
		}
		for _, doc := range docs {
			fmt.Fprintf(ui.Out, "📖 %d %s %s\n", doc.Id, doc.Title, strings.Join(doc.Labels, ","))
		}
		return nil
	}

	id, _ := strconv.Atoi(arg)
	doc, err := repo.Read(id)
	if err != nil {
		return err
	}

	renderDoc(doc, opts, ui)
	return nil
}

func renderDoc(doc token.Doc, opts DocOptions, ui UI) {
	sentences := doc.Sentences()

	start := opts.Start
	if start < 0 {
		start = 0
	}
	if start >= len(sentences) {
		return
	}

	sentences = sentences[start:]
	if opts.Count >= 0 && opts.Count < len(sentences) {
		sentences = sentences[:opts.Count]
	}

	for _, sentence := range sentences {
		fmt.Fprintf(ui.Out, "✍  %s-%s %s\n", sentence[0].DocID, sentence[0].SentenceID, sentenceText(sentence))
	}
}

// sentenceText joins the surface forms of a sentence. Token offsets are not
// retained from the source, a single space goes between words.
func sentenceText(sentence []token.Token) string {
	words := make([]string, 0, len(sentence))
	for _, t := range sentence {
		words = append(words, t.Text)
	}
	return strings.Join(words, " ")
}
