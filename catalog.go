package gsdump

import (
	"bytes"
	"database/sql"
	"fmt"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/bodgit/gsdump/dump"
	_ "github.com/mattn/go-sqlite3"
)

// DumpDB is a catalog of converted dumps backed by an SQLite database.
type DumpDB struct {
	db *sql.DB
}

// Entry is a single catalogued dump
type Entry struct {
	ID           int64
	SHA1         string
	Serial       string
	CRC          uint32
	StateVersion uint32
	HeaderSize   uint32
	Screenshot   []byte
	Conversions  []Conversion
}

// Conversion records one rendering of a dump
type Conversion struct {
	Output     string
	Width      int
	Height     int
	Base       uint32
	ForceAlpha bool
}

// NewDumpDB opens, creating if necessary, the catalog stored in file.
func NewDumpDB(file string) (*DumpDB, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS dump (id INTEGER PRIMARY KEY NOT NULL, sha1 TEXT NOT NULL UNIQUE, serial TEXT NOT NULL, crc INTEGER NOT NULL, state_version INTEGER NOT NULL, header_size INTEGER NOT NULL)"); err != nil {
		db.Close()
		return nil, err
	}

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS screenshot (dump_id INTEGER NOT NULL UNIQUE, png BLOB NOT NULL, FOREIGN KEY(dump_id) REFERENCES dump(id))"); err != nil {
		db.Close()
		return nil, err
	}

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS conversion (dump_id INTEGER NOT NULL, output TEXT NOT NULL UNIQUE, width INTEGER NOT NULL, height INTEGER NOT NULL, base INTEGER NOT NULL, force_alpha INTEGER NOT NULL, FOREIGN KEY(dump_id) REFERENCES dump(id))"); err != nil {
		db.Close()
		return nil, err
	}

	return &DumpDB{
		db: db,
	}, nil
}

// Close closes the underlying database
func (db *DumpDB) Close() error {
	return db.db.Close()
}

// AddDump adds d to the catalog under the checksum sum, returning the id of
// the new or already existing entry.
func (db *DumpDB) AddDump(sum string, d *dump.Dump) (int64, error) {
	// Concurrent callers may add the same dump so let the unique constraint
	// decide who inserts rather than checking first
	result, err := db.db.Exec("INSERT INTO dump (sha1, serial, crc, state_version, header_size) VALUES (?, ?, ?, ?, ?) ON CONFLICT(sha1) DO NOTHING", sum, d.Serial, d.Header.CRC, d.Header.StateVersion, d.HeaderSize)
	if err != nil {
		return 0, err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}

	var id int64
	if err := db.db.QueryRow("SELECT id FROM dump WHERE sha1 = ?", sum).Scan(&id); err != nil {
		return 0, err
	}

	if n > 0 && d.Screenshot != nil {
		if err := db.addScreenshot(id, d); err != nil {
			return 0, err
		}
	}

	return id, nil
}

func (db *DumpDB) addScreenshot(id int64, d *dump.Dump) error {
	b := new(bytes.Buffer)
	if err := imgio.PNGEncoder()(b, d.Screenshot); err != nil {
		return err
	}
	if _, err := db.db.Exec("INSERT OR REPLACE INTO screenshot (dump_id, png) VALUES (?, ?)", id, b.Bytes()); err != nil {
		return err
	}
	return nil
}

// AddConversion records that dump id was rendered as c. Rendering to the
// same output again replaces the earlier record.
func (db *DumpDB) AddConversion(id int64, c Conversion) error {
	if _, err := db.db.Exec("INSERT OR REPLACE INTO conversion (dump_id, output, width, height, base, force_alpha) VALUES (?, ?, ?, ?, ?, ?)", id, c.Output, c.Width, c.Height, c.Base, c.ForceAlpha); err != nil {
		return err
	}
	return nil
}

func (db *DumpDB) conversions(e *Entry) error {
	rows, err := db.db.Query("SELECT output, width, height, base, force_alpha FROM conversion WHERE dump_id = ? ORDER BY output", e.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var c Conversion
		if err := rows.Scan(&c.Output, &c.Width, &c.Height, &c.Base, &c.ForceAlpha); err != nil {
			return err
		}
		e.Conversions = append(e.Conversions, c)
	}

	return rows.Err()
}

// FindDumpBySHA1 returns the catalogued dump with checksum sum, or nil if
// there isn't one.
func (db *DumpDB) FindDumpBySHA1(sum string) (*Entry, error) {
	e := new(Entry)
	switch err := db.db.QueryRow("SELECT d.id, d.sha1, d.serial, d.crc, d.state_version, d.header_size, s.png FROM dump AS d LEFT JOIN screenshot AS s ON s.dump_id = d.id WHERE d.sha1 = ?", sum).Scan(&e.ID, &e.SHA1, &e.Serial, &e.CRC, &e.StateVersion, &e.HeaderSize, &e.Screenshot); err {
	case sql.ErrNoRows:
		return nil, nil
	case nil:
		if err := db.conversions(e); err != nil {
			return nil, err
		}
		return e, nil
	default:
		return nil, err
	}
}

// Dumps returns every catalogued dump ordered by serial then checksum.
// Screenshots are not loaded.
func (db *DumpDB) Dumps() ([]Entry, error) {
	rows, err := db.db.Query("SELECT id, sha1, serial, crc, state_version, header_size FROM dump ORDER BY serial, sha1")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.SHA1, &e.Serial, &e.CRC, &e.StateVersion, &e.HeaderSize); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	for i := range entries {
		if err := db.conversions(&entries[i]); err != nil {
			return nil, err
		}
	}

	return entries, nil
}
