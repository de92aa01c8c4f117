package main

import (
	"github.com/revelaction/depdist/mdd"
	"github.com/revelaction/depdist/query"
)

func queryCommand(opts QueryOptions, ui UI) error {
	pool := &Pool{}
	defer pool.Close()

	repo, err := NewDocRepository(pool, opts.DocPath)
	if err != nil {
		return err
	}

	g := mdd.Document
	if opts.Granularity == "sentence" {
		g = mdd.Sentence
	}

	h := query.NewHandler(repo, g, opts.Format)
	return h.Run()
}
