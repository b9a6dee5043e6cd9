package bib

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeBib(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestScan(t *testing.T) {
	dir := t.TempDir()
	writeBib(t, dir, "refs.bib", `
@article{smith2024,
  title = {Virus spread models},
  author = {Smith, Jane},
  eprint = {2401.00001}
}

@book{knuth1984,
  title = {The TeXbook},
  author = {Knuth, Donald E.},
  publisher = {Addison-Wesley}
}

@misc{jones2023,
  title = {Entanglement notes},
  author = {Jones, Bob},
  url = {https://arxiv.org/abs/2312.12345v2}
}
`)
	writeBib(t, dir, "more.bib", `
@article{old2005,
  title = {An older preprint},
  author = {Doe, John},
  note = {arXiv preprint arXiv:0501.00123}
}
`)

	ids, err := Scan(dir)
	require.NoError(t, err)
	// glob returns files lexically, more.bib before refs.bib
	assert.Equal(t, []string{"0501.00123", "2401.00001", "2312.12345v2"}, ids,
		"eprint field and url/note fallbacks resolved, book skipped silently")
}

func TestScan_NoBibFiles(t *testing.T) {
	_, err := Scan(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no .bib files")
}

func TestScan_OldStyleIdentifier(t *testing.T) {
	dir := t.TempDir()
	writeBib(t, dir, "hep.bib", `
@article{hep1999,
  title = {Something stringy},
  author = {Witten, Edward},
  url = {https://arxiv.org/abs/hep-th/9901001}
}
`)
	ids, err := Scan(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"hep-th/9901001"}, ids)
}
