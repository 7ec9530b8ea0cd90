package anki

import (
	"archive/zip"
	"crypto/sha256"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/cbueth/conjugateur-fr/internal/colorize"
	"github.com/cbueth/conjugateur-fr/internal/conjug"
	"github.com/cbueth/conjugateur-fr/internal/verbdata"
)

// ModelName is the note type created in exported decks.
const ModelName = "Conjugaison FR"

// ModelFields are the note fields, in order. The infinitive doubles as
// the sort field.
var ModelFields = []string{"Infinitive", "Tense", "Person", "Form", "IPA", "Marker"}

// collection.anki2 schema, version 11.
var schema = []string{
	`CREATE TABLE col (
		id integer primary key,
		crt integer not null,
		mod integer not null,
		scm integer not null,
		ver integer not null,
		dty integer not null,
		usn integer not null,
		ls integer not null,
		conf text not null,
		models text not null,
		decks text not null,
		dconf text not null,
		tags text not null
	)`,
	`CREATE TABLE notes (
		id integer primary key,
		guid text not null,
		mid integer not null,
		mod integer not null,
		usn integer not null,
		tags text not null,
		flds text not null,
		sfld integer not null,
		csum integer not null,
		flags integer not null,
		data text not null
	)`,
	`CREATE TABLE cards (
		id integer primary key,
		nid integer not null,
		did integer not null,
		ord integer not null,
		mod integer not null,
		usn integer not null,
		type integer not null,
		queue integer not null,
		due integer not null,
		ivl integer not null,
		factor integer not null,
		reps integer not null,
		lapses integer not null,
		left integer not null,
		odue integer not null,
		odid integer not null,
		flags integer not null,
		data text not null
	)`,
	`CREATE TABLE revlog (
		id integer primary key,
		cid integer not null,
		usn integer not null,
		ease integer not null,
		ivl integer not null,
		lastIvl integer not null,
		factor integer not null,
		time integer not null,
		type integer not null
	)`,
	`CREATE TABLE graves (
		usn integer not null,
		oid integer not null,
		type integer not null
	)`,
	`CREATE INDEX ix_notes_usn on notes (usn)`,
	`CREATE INDEX ix_cards_usn on cards (usn)`,
	`CREATE INDEX ix_revlog_usn on revlog (usn)`,
	`CREATE INDEX ix_cards_nid on cards (nid)`,
	`CREATE INDEX ix_cards_sched on cards (did, queue, due)`,
	`CREATE INDEX ix_revlog_cid on revlog (cid)`,
	`CREATE INDEX ix_notes_csum on notes (csum)`,
}

const deckCSS = `.card {
 font-family: arial;
 font-size: 22px;
 text-align: center;
 color: black;
 background-color: white;
}
.ipa { font-style: italic; color: #1E40AF; }
.marker { font-size: 26px; }`

const latexPre = "\\documentclass[12pt]{article}\n\\special{papersize=3in,5in}\n" +
	"\\usepackage[utf8]{inputenc}\n\\usepackage{amssymb,amsmath}\n" +
	"\\pagestyle{empty}\n\\setlength{\\parindent}{0in}\n\\begin{document}\n"

// ExportDeck writes a .apkg at path with one note per attested form of
// each record's tenses. It returns the number of notes written.
func ExportDeck(path, deckName string, recs []*verbdata.Record) (int, error) {
	tempDir, err := os.MkdirTemp("", "apkg-*")
	if err != nil {
		return 0, fmt.Errorf("creating temp dir: %w", err)
	}
	defer os.RemoveAll(tempDir)

	dbPath := filepath.Join(tempDir, "collection.anki2")
	notes, err := writeCollection(dbPath, deckName, recs)
	if err != nil {
		return 0, err
	}
	if err := writePackage(path, dbPath); err != nil {
		return 0, err
	}
	return notes, nil
}

func writeCollection(dbPath, deckName string, recs []*verbdata.Record) (int, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return 0, fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return 0, fmt.Errorf("creating schema: %w", err)
		}
	}

	now := time.Now()
	base := now.UnixMilli()
	modelID, deckID := base, base+1

	if err := insertCol(db, now, modelID, deckID, deckName); err != nil {
		return 0, err
	}

	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	id := base + 2
	count := 0
	for _, rec := range recs {
		marker := colorize.DisplayMarker(rec.Irregularity)
		for _, tense := range conjug.Tenses {
			for i, f := range rec.TenseForms(tense) {
				if f.Form == "" || i >= conjug.PersonCount {
					continue
				}
				flds := []string{
					rec.Word, tense.French(), conjug.Person(i).Label(),
					f.Form, f.IPA, marker,
				}
				noteID, cardID := id, id+1
				id += 2
				count++

				_, err := tx.Exec(
					`INSERT INTO notes (id, guid, mid, mod, usn, tags, flds, sfld, csum, flags, data)
					 VALUES (?, ?, ?, ?, -1, '', ?, ?, ?, 0, '')`,
					noteID, uuid.NewString(), modelID, now.Unix(),
					strings.Join(flds, "\x1f"), flds[0], checksum(flds[0]))
				if err != nil {
					return 0, fmt.Errorf("inserting note for %s: %w", rec.Word, err)
				}
				_, err = tx.Exec(
					`INSERT INTO cards (id, nid, did, ord, mod, usn, type, queue, due,
					                    ivl, factor, reps, lapses, left, odue, odid, flags, data)
					 VALUES (?, ?, ?, 0, ?, -1, 0, 0, ?, 0, 0, 0, 0, 0, 0, 0, 0, '')`,
					cardID, noteID, deckID, now.Unix(), count)
				if err != nil {
					return 0, fmt.Errorf("inserting card for %s: %w", rec.Word, err)
				}
			}
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing notes: %w", err)
	}
	return count, nil
}

func insertCol(db *sql.DB, now time.Time, modelID, deckID int64, deckName string) error {
	mod := now.Unix()
	blobs := make([]string, 0, 4)
	decks := map[string]any{
		"1":                           deckJSON(1, "Default", mod),
		strconv.FormatInt(deckID, 10): deckJSON(deckID, deckName, mod),
	}
	for _, v := range []any{
		confJSON(modelID),
		map[string]any{strconv.FormatInt(modelID, 10): modelJSON(modelID, deckID, mod)},
		decks,
		dconfJSON(),
	} {
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("marshaling collection: %w", err)
		}
		blobs = append(blobs, string(b))
	}

	_, err := db.Exec(
		`INSERT INTO col (id, crt, mod, scm, ver, dty, usn, ls, conf, models, decks, dconf, tags)
		 VALUES (1, ?, ?, ?, 11, 0, 0, 0, ?, ?, ?, ?, '{}')`,
		now.Unix(), now.UnixMilli(), now.UnixMilli(),
		blobs[0], blobs[1], blobs[2], blobs[3])
	if err != nil {
		return fmt.Errorf("inserting collection row: %w", err)
	}
	return nil
}

func confJSON(modelID int64) map[string]any {
	return map[string]any{
		"nextPos": 1, "estTimes": true, "activeDecks": []int64{1},
		"sortType": "noteFld", "timeLim": 0, "sortBackwards": false,
		"addToCur": true, "curDeck": 1, "newBury": true, "newSpread": 0,
		"dueCounts": true, "curModel": strconv.FormatInt(modelID, 10),
		"collapseTime": 1200,
	}
}

func modelJSON(id, deckID, mod int64) map[string]any {
	flds := make([]map[string]any, len(ModelFields))
	for i, name := range ModelFields {
		flds[i] = map[string]any{
			"name": name, "ord": i, "sticky": false, "rtl": false,
			"font": "Arial", "size": 20, "media": []string{},
		}
	}
	return map[string]any{
		"id": id, "name": ModelName, "type": 0, "mod": mod, "usn": -1,
		"sortf": 0, "did": deckID, "flds": flds,
		"tmpls": []map[string]any{{
			"name": "Conjugaison", "ord": 0,
			"qfmt":  "{{Infinitive}}<br><i>{{Tense}}</i> · {{Person}}",
			"afmt":  "{{FrontSide}}<hr id=answer>{{Form}}<br><span class='ipa'>\\{{IPA}}\\</span><br><span class='marker'>{{Marker}}</span>",
			"bqfmt": "", "bafmt": "", "did": nil,
		}},
		"css":      deckCSS,
		"latexPre": latexPre, "latexPost": "\\end{document}", "latexsvg": false,
		"req":  []any{[]any{0, "any", []int{0, 1, 2}}},
		"tags": []string{}, "vers": []string{},
	}
}

func deckJSON(id int64, name string, mod int64) map[string]any {
	return map[string]any{
		"id": id, "mod": mod, "name": name, "usn": -1,
		"lrnToday": []int{0, 0}, "revToday": []int{0, 0},
		"newToday": []int{0, 0}, "timeToday": []int{0, 0},
		"collapsed": false, "browserCollapsed": false,
		"desc": "", "dyn": 0, "conf": 1,
		"extendNew": 10, "extendRev": 50,
	}
}

func dconfJSON() map[string]any {
	return map[string]any{
		"1": map[string]any{
			"id": 1, "mod": 0, "name": "Default", "usn": 0,
			"maxTaken": 60, "autoplay": true, "timer": 0, "replayq": true,
			"new": map[string]any{
				"bury": true, "delays": []int{1, 10}, "initialFactor": 2500,
				"ints": []int{1, 4, 7}, "order": 1, "perDay": 20, "separate": true,
			},
			"rev": map[string]any{
				"bury": true, "ease4": 1.3, "fuzz": 0.05, "ivlFct": 1,
				"maxIvl": 36500, "minSpace": 1, "perDay": 100,
			},
			"lapse": map[string]any{
				"delays": []int{10}, "leechAction": 0, "leechFails": 8,
				"minInt": 1, "mult": 0,
			},
		},
	}
}

// checksum is the first eight hex digits of the sha256 of the sort
// field, the dedup key Anki expects.
func checksum(sfld string) int64 {
	sum := fmt.Sprintf("%x", sha256.Sum256([]byte(sfld)))
	csum, _ := strconv.ParseInt(sum[:8], 16, 64)
	return csum
}

func writePackage(path, dbPath string) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating package: %w", err)
	}
	defer out.Close()

	zw := zip.NewWriter(out)
	w, err := zw.Create("collection.anki2")
	if err != nil {
		return fmt.Errorf("creating zip entry: %w", err)
	}
	f, err := os.Open(dbPath)
	if err != nil {
		return fmt.Errorf("opening collection: %w", err)
	}
	if _, err := io.Copy(w, f); err != nil {
		f.Close()
		return fmt.Errorf("writing collection: %w", err)
	}
	f.Close()

	w, err = zw.Create("media")
	if err != nil {
		return fmt.Errorf("creating media entry: %w", err)
	}
	if _, err := w.Write([]byte("{}")); err != nil {
		return fmt.Errorf("writing media manifest: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("finishing package: %w", err)
	}
	return nil
}
