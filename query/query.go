// Package query implements the interactive REPL for exploring mean
// dependency distance over a document repository.
package query

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/c-bata/go-prompt"

	"github.com/revelaction/depdist/mdd"
	"github.com/revelaction/depdist/render"
	"github.com/revelaction/depdist/storage"
	"github.com/revelaction/depdist/token"
)

const completionThreshold = 1

type Handler struct {
	DocRepo storage.DocReader

	Granularity mdd.Granularity
	Format      string

	docs []token.Doc
}

func NewHandler(dr storage.DocReader, g mdd.Granularity, format string) *Handler {
	return &Handler{
		DocRepo:     dr,
		Granularity: g,
		Format:      format,
	}
}

func (h *Handler) Run() error {

	fmt.Println("🔑 Ctrl+F: next format, Ctrl+X: toggle granularity, type quit to exit")

	docs, err := h.DocRepo.List("")
	if err != nil {
		return err
	}
	h.docs = docs

	// initialize prompt history
	history := []string{}

	for {

		in := prompt.Input("      📐 ", h.completer,
			prompt.OptionTitle("depdist query"),
			prompt.OptionPrefixTextColor(prompt.Yellow),
			prompt.OptionPreviewSuggestionTextColor(prompt.Blue),
			prompt.OptionSelectedSuggestionBGColor(prompt.LightGray),
			prompt.OptionMaxSuggestion(12),
			prompt.OptionSuggestionBGColor(prompt.DarkGray),
			prompt.OptionHistory(history),
			prompt.OptionAddKeyBind(prompt.KeyBind{
				Key: prompt.ControlF,
				Fn: func(buf *prompt.Buffer) {
					h.Format = render.NextFormat(h.Format)
					fmt.Println("Format set to: " + h.Format)
				}}),
			prompt.OptionAddKeyBind(prompt.KeyBind{
				Key: prompt.ControlX,
				Fn: func(buf *prompt.Buffer) {
					if h.Granularity == mdd.Document {
						h.Granularity = mdd.Sentence
					} else {
						h.Granularity = mdd.Document
					}
					fmt.Println("Granularity set to: " + h.Granularity.String())
				}}),
		)

		if in == "quit" {
			return nil
		}

		if strings.TrimSpace(in) == "" {
			continue
		}

		history = append(history, in)

		if err := h.eval(in); err != nil {
			fmt.Printf("✍  %v\n", err)
		}
	}
}

// eval computes and prints the MDD rows for an input of the form
// `<docId> [sentenceId]`.
func (h *Handler) eval(in string) error {
	fields := strings.Fields(in)

	id, err := strconv.Atoi(fields[0])
	if err != nil {
		return fmt.Errorf("not a doc id: %s", fields[0])
	}

	doc, err := h.DocRepo.Read(id)
	if err != nil {
		return err
	}

	tokens := doc.Tokens
	if len(fields) > 1 {
		sentId := fields[1]
		var restricted []token.Token
		for _, t := range tokens {
			if t.SentenceID == sentId {
				restricted = append(restricted, t)
			}
		}
		if len(restricted) == 0 {
			return fmt.Errorf("no sentence with id %s in doc %d", sentId, id)
		}
		tokens = restricted
	}

	hdl := mdd.NewHandler(h.Granularity)
	hdl.Aggregate(tokens)

	for _, a := range hdl.Anomalies() {
		fmt.Printf("⚠  doc %s sent %s: %s (%d)\n", a.DocID, a.SentenceID, a.Kind, a.Index)
	}

	r, err := render.NewRenderer(h.Format, os.Stdout)
	if err != nil {
		return err
	}

	return r.Render(hdl.Rows())
}

func (h *Handler) completer(d prompt.Document) []prompt.Suggest {
	word := d.GetWordBeforeCursor()
	if len(word) < completionThreshold {
		return nil
	}

	var suggests []prompt.Suggest
	for _, doc := range h.docs {
		id := strconv.Itoa(doc.Id)
		if strings.HasPrefix(id, word) {
			suggests = append(suggests, prompt.Suggest{Text: id, Description: doc.Title})
		}
	}

	return suggests
}
