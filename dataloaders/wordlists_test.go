package dataloaders

import (
	"compress/gzip"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matryer/is"
)

const sample = `# answers
abide
  Blimp

brass 12
#arose
crane
`

func TestReadWords(t *testing.T) {
	is := is.New(t)
	words, err := ReadWords(strings.NewReader(sample))
	is.NoErr(err)
	is.Equal(words, []string{"abide", "blimp", "brass", "crane"})
}

func TestLoadWordList(t *testing.T) {
	is := is.New(t)
	dir := t.TempDir()
	plain := filepath.Join(dir, "answers.txt")
	is.NoErr(os.WriteFile(plain, []byte(sample), 0o644))
	words, err := LoadWordList(plain)
	is.NoErr(err)
	is.Equal(len(words), 4)

	zipped := filepath.Join(dir, "answers.txt.gz")
	f, err := os.Create(zipped)
	is.NoErr(err)
	gz := gzip.NewWriter(f)
	_, err = gz.Write([]byte(sample))
	is.NoErr(err)
	is.NoErr(gz.Close())
	is.NoErr(f.Close())
	gzWords, err := LoadWordList(zipped)
	is.NoErr(err)
	is.Equal(gzWords, words)

	_, err = LoadWordList(filepath.Join(dir, "missing.txt"))
	is.True(os.IsNotExist(err))
}
