package filesystem

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/revelaction/depdist/storage"
	"github.com/revelaction/depdist/token"
)

// DocStore serves documents stored as one JSON file per document in a
// directory. File names (without extension) are the document titles; ids are
// assigned by directory order.
type DocStore struct {
	docDir string

	// In-memory metadata cache
	docs []token.Doc
}

var _ storage.DocRepository = (*DocStore)(nil)

// NewDocStore creates a filesystem document store over docDir.
func NewDocStore(docDir string) (*DocStore, error) {
	files, err := os.ReadDir(docDir)
	if err != nil {
		return nil, err
	}

	docs := make([]token.Doc, 0, len(files))

	idx := 0
	for _, file := range files {
		if filepath.Ext(file.Name()) == ".json" {
			docs = append(docs, token.Doc{
				Id:    idx,
				Title: strings.TrimSuffix(file.Name(), ".json"),
			})
			idx++
		}
	}

	return &DocStore{
		docDir: docDir,
		docs:   docs,
	}, nil
}

func (h *DocStore) List(labelMatch string) ([]token.Doc, error) {
	if labelMatch == "" {
		return h.docs, nil
	}

	var docs []token.Doc
	for _, doc := range h.docs {
		// labels live inside the file, load on demand
		full, err := h.Read(doc.Id)
		if err != nil {
			return nil, err
		}

		for _, l := range full.Labels {
			if strings.Contains(l, labelMatch) {
				doc.Labels = full.Labels
				docs = append(docs, doc)
				break
			}
		}
	}

	return docs, nil
}

func (h *DocStore) Read(id int) (token.Doc, error) {
	if id < 0 || id >= len(h.docs) {
		return token.Doc{}, fmt.Errorf("doc id out of range: %d", id)
	}

	path := filepath.Join(h.docDir, h.docs[id].Title+".json")
	doc, err := ReadDoc(path)
	if err != nil {
		return token.Doc{}, err
	}

	doc.Id = id
	doc.Title = h.docs[id].Title
	return doc, nil
}

func (h *DocStore) Write(doc token.Doc) error {
	if doc.Title == "" {
		return fmt.Errorf("doc has no title")
	}

	content, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}

	path := filepath.Join(h.docDir, doc.Title+".json")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return err
	}

	h.docs = append(h.docs, token.Doc{Id: len(h.docs), Title: doc.Title, Labels: doc.Labels})
	return nil
}

// ReadDoc reads a Doc JSON from the given path and unmarshals it.
func ReadDoc(path string) (token.Doc, error) {
	f, err := os.ReadFile(path)
	if err != nil {
		return token.Doc{}, err
	}

	var doc token.Doc
	err = json.Unmarshal(f, &doc)
	if err != nil {
		return token.Doc{}, err
	}

	return doc, nil
}
