package main

import (
	"fmt"

	"github.com/gosuri/uiprogress"
	"github.com/revelaction/depdist/storage/filesystem"
	"github.com/revelaction/depdist/storage/sqlite/zombiezen"
)

func exportDocCommand(opts ExportDocOptions, ui UI) error {
	pool, err := zombiezen.NewPool(opts.From)
	if err != nil {
		return err
	}
	defer pool.Close()

	src := zombiezen.NewDocStore(pool)

	dst, err := filesystem.NewDocStore(opts.To)
	if err != nil {
		return err
	}

	docs, err := src.List("")
	if err != nil {
		return err
	}

	uiprogress.Start()
	bar := uiprogress.AddBar(len(docs))
	bar.AppendCompleted()
	bar.PrependElapsed()

	count := 0
	for _, docMeta := range docs {
		doc, err := src.Read(docMeta.Id)
		if err != nil {
			uiprogress.Stop()
			return fmt.Errorf("failed to read doc %d: %w", docMeta.Id, err)
		}

		if err := dst.Write(doc); err != nil {
			uiprogress.Stop()
			return fmt.Errorf("failed to write doc %s: %w", doc.Title, err)
		}
		count++
		bar.Incr()
	}
	uiprogress.Stop()

	fmt.Fprintf(ui.Out, "Successfully exported %d docs from %s to %s\n", count, opts.From, opts.To)
	return nil
}
