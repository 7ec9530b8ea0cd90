// Package anki writes French conjugation decks as .apkg packages and
// reads them back for verification.
package anki

import (
	"archive/zip"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite"
)

// Package is an opened .apkg file. It extracts to a temp directory
// that Close removes.
type Package struct {
	path    string
	tempDir string
	db      *sql.DB

	Models map[int64]*Model
	Decks  map[int64]*Deck
	Notes  []*Note
	Cards  []*Card
}

// Model is an Anki note type.
type Model struct {
	ID     int64   `json:"id"`
	Name   string  `json:"name"`
	Fields []Field `json:"flds"`
	CSS    string  `json:"css"`
	Type   int     `json:"type"`
}

// Field is one field of a note type.
type Field struct {
	Name string `json:"name"`
	Ord  int    `json:"ord"`
}

// Deck is an Anki deck.
type Deck struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Desc string `json:"desc"`
}

// Note is a row of the notes table with its fields split out.
type Note struct {
	ID      int64
	GUID    string
	ModelID int64
	Mod     int64
	Tags    string
	Fields  []string
	SortFld string
	CSum    int64
}

// Card is a row of the cards table.
type Card struct {
	ID     int64
	NoteID int64
	DeckID int64
	Ord    int
	Due    int
}

// OpenPackage extracts and loads a .apkg for inspection.
func OpenPackage(path string) (*Package, error) {
	tempDir, err := os.MkdirTemp("", "apkg-read-*")
	if err != nil {
		return nil, fmt.Errorf("creating temp dir: %w", err)
	}
	p := &Package{
		path:    path,
		tempDir: tempDir,
		Models:  make(map[int64]*Model),
		Decks:   make(map[int64]*Deck),
	}
	if err := p.extract(); err != nil {
		p.Close()
		return nil, err
	}

	dbPath := filepath.Join(tempDir, "collection.anki2")
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		dbPath = filepath.Join(tempDir, "collection.anki21")
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		p.Close()
		return nil, fmt.Errorf("opening database: %w", err)
	}
	p.db = db

	for _, load := range []func() error{p.loadCollection, p.loadNotes, p.loadCards} {
		if err := load(); err != nil {
			p.Close()
			return nil, err
		}
	}
	return p, nil
}

// extract unzips the package, refusing paths that escape the temp dir.
func (p *Package) extract() error {
	r, err := zip.OpenReader(p.path)
	if err != nil {
		return fmt.Errorf("opening package: %w", err)
	}
	defer r.Close()

	root := filepath.Clean(p.tempDir) + string(os.PathSeparator)
	for _, f := range r.File {
		dest := filepath.Join(p.tempDir, f.Name)
		if !strings.HasPrefix(dest, root) {
			return fmt.Errorf("illegal path in package: %s", f.Name)
		}
		if f.FileInfo().IsDir() {
			continue
		}
		if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			return err
		}
		rc, err := f.Open()
		if err != nil {
			return err
		}
		out, err := os.Create(dest)
		if err != nil {
			rc.Close()
			return err
		}
		_, err = io.Copy(out, rc)
		rc.Close()
		if cerr := out.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return fmt.Errorf("extracting %s: %w", f.Name, err)
		}
	}
	return nil
}

func (p *Package) loadCollection() error {
	var models, decks string
	row := p.db.QueryRow("SELECT models, decks FROM col")
	if err := row.Scan(&models, &decks); err != nil {
		return fmt.Errorf("reading collection: %w", err)
	}

	var modelsMap map[string]json.RawMessage
	if err := json.Unmarshal([]byte(models), &modelsMap); err != nil {
		return fmt.Errorf("parsing models: %w", err)
	}
	for _, raw := range modelsMap {
		var m Model
		if err := json.Unmarshal(raw, &m); err != nil {
			continue
		}
		p.Models[m.ID] = &m
	}

	var decksMap map[string]json.RawMessage
	if err := json.Unmarshal([]byte(decks), &decksMap); err != nil {
		return fmt.Errorf("parsing decks: %w", err)
	}
	for _, raw := range decksMap {
		var d Deck
		if err := json.Unmarshal(raw, &d); err != nil {
			continue
		}
		p.Decks[d.ID] = &d
	}
	return nil
}

func (p *Package) loadNotes() error {
	rows, err := p.db.Query(
		"SELECT id, guid, mid, mod, tags, flds, sfld, csum FROM notes ORDER BY id")
	if err != nil {
		return fmt.Errorf("querying notes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var n Note
		var flds string
		if err := rows.Scan(&n.ID, &n.GUID, &n.ModelID, &n.Mod,
			&n.Tags, &flds, &n.SortFld, &n.CSum); err != nil {
			return fmt.Errorf("scanning note: %w", err)
		}
		n.Fields = strings.Split(flds, "\x1f")
		p.Notes = append(p.Notes, &n)
	}
	return rows.Err()
}

func (p *Package) loadCards() error {
	rows, err := p.db.Query(
		"SELECT id, nid, did, ord, due FROM cards ORDER BY id")
	if err != nil {
		return fmt.Errorf("querying cards: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var c Card
		if err := rows.Scan(&c.ID, &c.NoteID, &c.DeckID, &c.Ord, &c.Due); err != nil {
			return fmt.Errorf("scanning card: %w", err)
		}
		p.Cards = append(p.Cards, &c)
	}
	return rows.Err()
}

// GetModel returns the note type of a note, nil when unknown.
func (p *Package) GetModel(note *Note) *Model {
	return p.Models[note.ModelID]
}

// GetFieldValue returns a note's field by name, "" when the model or
// field is unknown.
func (p *Package) GetFieldValue(note *Note, fieldName string) string {
	model := p.GetModel(note)
	if model == nil {
		return ""
	}
	for _, f := range model.Fields {
		if strings.EqualFold(f.Name, fieldName) && f.Ord < len(note.Fields) {
			return note.Fields[f.Ord]
		}
	}
	return ""
}

// GetFieldNames returns the field names of a note's model in order.
func (p *Package) GetFieldNames(note *Note) []string {
	model := p.GetModel(note)
	if model == nil {
		return nil
	}
	names := make([]string, len(model.Fields))
	for i, f := range model.Fields {
		names[i] = f.Name
	}
	return names
}

// Close releases the database and the extracted files.
func (p *Package) Close() error {
	if p.db != nil {
		p.db.Close()
	}
	if p.tempDir != "" {
		os.RemoveAll(p.tempDir)
	}
	return nil
}

// Summary formats the package contents for inspection.
func (p *Package) Summary() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Package: %s\n", filepath.Base(p.path))

	deckNames := make([]string, 0, len(p.Decks))
	for _, d := range p.Decks {
		deckNames = append(deckNames, d.Name)
	}
	sort.Strings(deckNames)
	fmt.Fprintf(&sb, "  Decks: %d\n", len(p.Decks))
	for _, name := range deckNames {
		fmt.Fprintf(&sb, "    - %s\n", name)
	}

	modelNames := make([]string, 0, len(p.Models))
	for _, m := range p.Models {
		modelNames = append(modelNames, fmt.Sprintf("%s (%d fields)", m.Name, len(m.Fields)))
	}
	sort.Strings(modelNames)
	fmt.Fprintf(&sb, "  Note types: %d\n", len(p.Models))
	for _, name := range modelNames {
		fmt.Fprintf(&sb, "    - %s\n", name)
	}

	fmt.Fprintf(&sb, "  Notes: %d\n", len(p.Notes))
	fmt.Fprintf(&sb, "  Cards: %d\n", len(p.Cards))
	return sb.String()
}
