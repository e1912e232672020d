package prodoc

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/boltdb/bolt"
	lru "github.com/hashicorp/golang-lru/v2"
	"gopkg.in/vmihailenco/msgpack.v2"
)

var (
	entriesBucket = []byte("entries")
	metaBucket    = []byte("meta")
	sourceKey     = []byte("source")
)

var (
	// ErrEmptyKey is returned when the key function yields "".
	ErrEmptyKey = errors.New("prodoc: empty index key")
	// ErrDuplicateKey is returned when two entries share a key.
	ErrDuplicateKey = errors.New("prodoc: duplicate index key")
	// ErrNotFound is returned by Dictionary.Get for unknown keys.
	ErrNotFound = errors.New("prodoc: key not found")
)

// KeyFunc derives the index key of a record.
type KeyFunc func(*Record) string

// ByAccession keys records by their PDOC accession.
func ByAccession(r *Record) string { return r.Accession }

type span struct {
	Offset int64 `msgpack:"o"`
	Length int64 `msgpack:"l"`
}

// BuildIndex scans the PRODOC file at path and writes the byte span of
// every entry to the bolt database at dbPath, replacing any previous index.
// progress, if not nil, is called with the byte offset reached after each
// entry. It returns the number of entries indexed.
func BuildIndex(path, dbPath string, key KeyFunc, progress func(offset int64)) (int, error) {
	if key == nil {
		key = ByAccession
	}
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	db, err := bolt.Open(dbPath, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return 0, err
	}
	defer db.Close()

	n := 0
	err = db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket(entriesBucket); err != nil && err != bolt.ErrBucketNotFound {
			return err
		}
		b, err := tx.CreateBucket(entriesBucket)
		if err != nil {
			return err
		}
		meta, err := tx.CreateBucketIfNotExists(metaBucket)
		if err != nil {
			return err
		}
		if err := meta.Put(sourceKey, []byte(path)); err != nil {
			return err
		}

		rd := NewReader(f)
		for {
			rec, err := rd.Read()
			if err == io.EOF {
				return nil
			}
			if err != nil {
				return err
			}
			k := key(rec)
			if k == "" {
				return ErrEmptyKey
			}
			if b.Get([]byte(k)) != nil {
				return fmt.Errorf("%w: %s", ErrDuplicateKey, k)
			}
			off, length := rd.Span()
			v, err := msgpack.Marshal(span{Offset: off, Length: length})
			if err != nil {
				return err
			}
			if err := b.Put([]byte(k), v); err != nil {
				return err
			}
			n++
			if progress != nil {
				progress(off + length)
			}
		}
	})
	if err != nil {
		return 0, err
	}
	return n, nil
}

// Dictionary gives keyed access to an indexed PRODOC file. Parsed records
// are cached; callers must treat returned records as read-only.
type Dictionary struct {
	db     *bolt.DB
	f      *os.File
	source string
	cache  *lru.Cache[string, *Record]
}

// OpenDictionary opens an index built by BuildIndex. cacheSize bounds the
// number of parsed records kept in memory.
func OpenDictionary(dbPath string, cacheSize int) (*Dictionary, error) {
	if cacheSize <= 0 {
		cacheSize = 128
	}
	db, err := bolt.Open(dbPath, 0o600, &bolt.Options{Timeout: time.Second, ReadOnly: true})
	if err != nil {
		return nil, err
	}
	var source string
	err = db.View(func(tx *bolt.Tx) error {
		meta := tx.Bucket(metaBucket)
		if meta == nil || tx.Bucket(entriesBucket) == nil {
			return fmt.Errorf("prodoc: %s is not a prodoc index", dbPath)
		}
		source = string(meta.Get(sourceKey))
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	f, err := os.Open(source)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	cache, err := lru.New[string, *Record](cacheSize)
	if err != nil {
		_ = f.Close()
		_ = db.Close()
		return nil, err
	}
	return &Dictionary{db: db, f: f, source: source, cache: cache}, nil
}

// Source is the path of the indexed file.
func (d *Dictionary) Source() string { return d.source }

func (d *Dictionary) lookup(key string) (span, error) {
	var s span
	err := d.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(entriesBucket).Get([]byte(key))
		if v == nil {
			return fmt.Errorf("%w: %s", ErrNotFound, key)
		}
		return msgpack.Unmarshal(v, &s)
	})
	return s, err
}

// Raw returns the unparsed text of the entry stored under key.
func (d *Dictionary) Raw(key string) ([]byte, error) {
	s, err := d.lookup(key)
	if err != nil {
		return nil, err
	}
	buf := make([]byte, s.Length)
	n, err := d.f.ReadAt(buf, s.Offset)
	if n < len(buf) {
		if err == nil || err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return nil, fmt.Errorf("prodoc: entry %s in %s: %w", key, d.source, err)
	}
	return buf, nil
}

// Get returns the parsed entry stored under key.
func (d *Dictionary) Get(key string) (*Record, error) {
	if rec, ok := d.cache.Get(key); ok {
		return rec, nil
	}
	raw, err := d.Raw(key)
	if err != nil {
		return nil, err
	}
	rec, err := ReadOne(bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	d.cache.Add(key, rec)
	return rec, nil
}

// Keys lists every indexed key in byte order.
func (d *Dictionary) Keys() ([]string, error) {
	var keys []string
	err := d.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(entriesBucket).ForEach(func(k, _ []byte) error {
			keys = append(keys, string(k))
			return nil
		})
	})
	return keys, err
}

// Len is the number of indexed entries.
func (d *Dictionary) Len() (int, error) {
	var n int
	err := d.db.View(func(tx *bolt.Tx) error {
		n = tx.Bucket(entriesBucket).Stats().KeyN
		return nil
	})
	return n, err
}

// Close releases the index and the source file.
func (d *Dictionary) Close() error {
	ferr := d.f.Close()
	if err := d.db.Close(); err != nil {
		return err
	}
	return ferr
}
