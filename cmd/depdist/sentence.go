package main

import (
	"fmt"

	"github.com/revelaction/depdist/mdd"
	"github.com/revelaction/depdist/token"
)

func sentenceCommand(opts SentenceOptions, source, sentId string, ui UI) error {
	tokens, err := loadTokens(opts.DocPath, source)
	if err != nil {
		return err
	}

	sentence := restrictSentence(tokens, sentId)
	if len(sentence) == 0 {
		return fmt.Errorf("no sentence with id %s in %s", sentId, source)
	}

	fmt.Fprintf(ui.Out, "✍  %s-%s %s\n\n", sentence[0].DocID, sentence[0].SentenceID, sentenceText(sentence))

	// the filtered, re-indexed view next to the original columns
	entries, _ := mdd.Reindex(sentence)
	reindexed := map[int]mdd.Entry{}
	for _, e := range entries {
		reindexed[e.Index] = e
	}

	for _, t := range sentence {
		fmt.Fprintf(ui.Out, "%20q %15q %8s %6d %6d %8s %s\n", t.Text, t.Lemma, t.Pos, t.Index, t.Head, t.Dep, ddColumn(t, reindexed))
	}

	return nil
}

func ddColumn(t token.Token, reindexed map[int]mdd.Entry) string {
	e, ok := reindexed[t.Index]
	if !ok {
		return "-"
	}
	if !e.HeadKnown {
		return "?"
	}
	return fmt.Sprintf("dd=%d", mdd.DD(e))
}
