package zombiezen

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/revelaction/depdist/storage"
	"github.com/revelaction/depdist/token"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

// DocStore persists documents in SQLite: one row per document in docs, one
// row per sentence in sentences with the token slice as a JSON blob.
type DocStore struct {
	pool *sqlitex.Pool
}

var _ storage.DocRepository = (*DocStore)(nil)

func NewDocStore(pool *sqlitex.Pool) *DocStore {
	return &DocStore{pool: pool}
}

func (h *DocStore) List(labelMatch string) ([]token.Doc, error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer h.pool.Put(conn)

	var docs []token.Doc
	err = sqlitex.Execute(conn, "SELECT id, title, labels FROM docs ORDER BY id", &sqlitex.ExecOptions{
		ResultFunc: func(stmt *sqlite.Stmt) error {
			doc := token.Doc{
				Id:    stmt.ColumnInt(0),
				Title: stmt.ColumnText(1),
			}
			labelsStr := stmt.ColumnText(2)
			if labelsStr != "" {
				doc.Labels = strings.Split(labelsStr, ",")
			}

			if labelMatch != "" && !hasLabel(doc.Labels, labelMatch) {
				return nil
			}

			docs = append(docs, doc)
			return nil
		},
	})
	if err != nil {
		return nil, err
	}
	return docs, nil
}

func (h *DocStore) Read(id int) (token.Doc, error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return token.Doc{}, err
	}
	defer h.pool.Put(conn)

	doc := token.Doc{Id: id}
	found := false

	err = sqlitex.Execute(conn, "SELECT title, labels FROM docs WHERE id = ?", &sqlitex.ExecOptions{
		Args: []interface{}{id},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			found = true
			doc.Title = stmt.ColumnText(0)
			labelsStr := stmt.ColumnText(1)
			if labelsStr != "" {
				doc.Labels = strings.Split(labelsStr, ",")
			}
			return nil
		},
	})
	if err != nil {
		return token.Doc{}, err
	}
	if !found {
		return token.Doc{}, fmt.Errorf("doc not found: %d", id)
	}

	err = sqlitex.Execute(conn, "SELECT data FROM sentences WHERE doc_id = ? ORDER BY rowid", &sqlitex.ExecOptions{
		Args: []interface{}{id},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			data := stmt.ColumnText(0)
			var tokens []token.Token
			if err := json.Unmarshal([]byte(data), &tokens); err != nil {
				return err
			}
			doc.Tokens = append(doc.Tokens, tokens...)
			return nil
		},
	})
	if err != nil {
		return token.Doc{}, err
	}

	return doc, nil
}

func (h *DocStore) Write(doc token.Doc) error {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return err
	}
	defer h.pool.Put(conn)

	// Start Transaction
	defer sqlitex.Save(conn)(&err)

	labels := strings.Join(doc.Labels, ",")
	err = sqlitex.Execute(conn, "INSERT INTO docs (title, labels) VALUES (?, ?)", &sqlitex.ExecOptions{
		Args: []interface{}{doc.Title, labels},
	})
	if err != nil {
		return err
	}

	docID := conn.LastInsertRowID()

	var data []byte
	for _, sentence := range doc.Sentences() {
		data, err = json.Marshal(sentence)
		if err != nil {
			return err
		}

		err = sqlitex.Execute(conn, "INSERT INTO sentences (doc_id, sent_id, data) VALUES (?, ?, ?)", &sqlitex.ExecOptions{
			Args: []interface{}{docID, sentence[0].SentenceID, string(data)},
		})
		if err != nil {
			return err
		}
	}

	return nil
}

func hasLabel(labels []string, match string) bool {
	for _, l := range labels {
		if strings.Contains(l, match) {
			return true
		}
	}
	return false
}
