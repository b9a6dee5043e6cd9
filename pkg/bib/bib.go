package bib

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"

	"github.com/nickng/bibtex"
)

// arXiv identifiers, new YYMM.NNNNN and old archive/YYMMNNN formats,
// as they appear inside url/note fields of bibliography entries
var arxivIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)arxiv[:\s/]+(\d{4}\.\d{4,5}(?:v\d+)?)`),
	regexp.MustCompile(`(?i)arxiv\.org/(?:abs|pdf)/(\d{4}\.\d{4,5}(?:v\d+)?)`),
	regexp.MustCompile(`(?i)arxiv\.org/(?:abs|pdf)/([a-z-]+/\d{7}(?:v\d+)?)`),
}

// fields consulted when an entry carries no explicit eprint
var fallbackFields = []string{"url", "note", "journal"}

// Scan parses every *.bib file under dir and returns the arXiv
// identifiers of its entries, in file order. Entries with no resolvable
// identifier are skipped silently; bibliographies routinely mix in
// books and journal papers that never touched a preprint server.
func Scan(dir string) ([]string, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.bib"))
	if err != nil {
		return nil, fmt.Errorf("glob %s: %w", dir, err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no .bib files in %s", dir)
	}

	var ids []string
	for _, path := range paths {
		fileIDs, err := scanFile(path)
		if err != nil {
			return nil, err
		}
		log.Printf("[DEBUG] %s: %d entries with arXiv identifiers", path, len(fileIDs))
		ids = append(ids, fileIDs...)
	}
	return ids, nil
}

func scanFile(path string) ([]string, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from a CLI-provided directory
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	parsed, err := bibtex.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	var ids []string
	for _, entry := range parsed.Entries {
		if id := entryID(entry); id != "" {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// entryID resolves an entry's arXiv identifier: the eprint field when
// present, otherwise a recognizable ID inside url/note/journal.
func entryID(entry *bibtex.BibEntry) string {
	if eprint, ok := entry.Fields["eprint"]; ok {
		if id := eprint.String(); id != "" {
			return id
		}
	}
	for _, field := range fallbackFields {
		value, ok := entry.Fields[field]
		if !ok {
			continue
		}
		for _, re := range arxivIDPatterns {
			if m := re.FindStringSubmatch(value.String()); m != nil {
				return m[1]
			}
		}
	}
	return ""
}
