package storage

import (
	"github.com/revelaction/depdist/token"
)

// DocReader defines read operations for document storage
type DocReader interface {
	// List returns the metadata (Id, Title, Labels) of documents.
	// If labelMatch is not empty, only documents with at least one label
	// containing the string are returned. Content (Tokens) is not loaded.
	List(labelMatch string) ([]token.Doc, error)

	// Read returns a document with its token table by ID
	Read(id int) (token.Doc, error)
}

// DocWriter defines write operations for document storage
type DocWriter interface {
	// Write persists a document and its token table to storage
	Write(doc token.Doc) error
}

// DocRepository combines read and write operations
type DocRepository interface {
	DocReader
	DocWriter
}
