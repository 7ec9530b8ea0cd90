package verbdata

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// Store is an in-memory view over a built dataset directory. All tiers
// load eagerly; lookups are case-insensitive on the infinitive.
type Store struct {
	manifest *Manifest
	records  map[string]*Record
	tiers    [][]string
}

// Open loads the dataset at dir.
func Open(dir string) (*Store, error) {
	manifest, err := ReadManifest(filepath.Join(dir, ManifestFile))
	if err != nil {
		return nil, err
	}
	if manifest.Version != ManifestVersion {
		return nil, fmt.Errorf("unsupported manifest version %d", manifest.Version)
	}

	s := &Store{
		manifest: manifest,
		records:  make(map[string]*Record),
	}
	tierFiles := [][]string{
		{manifest.MostCommonVerbs.File},
		{manifest.CommonVerbs.File},
		manifest.LetterChunks.Files,
	}
	for _, files := range tierFiles {
		var names []string
		for _, f := range files {
			if f == "" {
				continue
			}
			chunk, err := ReadChunk(filepath.Join(dir, filepath.FromSlash(f)))
			if err != nil {
				return nil, err
			}
			for i := range chunk.Verbs {
				rec := &chunk.Verbs[i]
				key := strings.ToLower(rec.Word)
				if _, dup := s.records[key]; dup {
					continue
				}
				s.records[key] = rec
				names = append(names, key)
			}
		}
		sort.Strings(names)
		s.tiers = append(s.tiers, names)
	}
	return s, nil
}

// Manifest returns the dataset manifest.
func (s *Store) Manifest() *Manifest { return s.manifest }

// Len returns the number of loaded verbs.
func (s *Store) Len() int { return len(s.records) }

// Lookup finds a verb by infinitive, case-insensitively.
func (s *Store) Lookup(infinitive string) (*Record, bool) {
	rec, ok := s.records[strings.ToLower(strings.TrimSpace(infinitive))]
	return rec, ok
}

// Suggest returns up to limit infinitives starting with prefix, most
// frequent tier first, alphabetical within a tier. An empty prefix lists
// the top tier first.
func (s *Store) Suggest(prefix string, limit int) []string {
	if limit <= 0 {
		return nil
	}
	p := strings.ToLower(strings.TrimSpace(prefix))
	var out []string
	for _, tier := range s.tiers {
		for _, name := range tier {
			if p != "" && !strings.HasPrefix(name, p) {
				continue
			}
			out = append(out, name)
			if len(out) == limit {
				return out
			}
		}
	}
	return out
}
