// Package dataloaders reads word lists from disk.
package dataloaders

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/domino14/wordlebits/tilemapping"
)

// ReadWords reads one word per line. Blank lines and lines starting with
// '#' are skipped; words are trimmed and lowercased but not validated.
func ReadWords(r io.Reader) ([]string, error) {
	var words []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		// Lists sometimes carry a frequency or definition after the word.
		if fields := strings.Fields(line); len(fields) > 1 {
			line = fields[0]
		}
		words = append(words, tilemapping.Normalize(line))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return words, nil
}

// LoadWordList reads a word list file. Files ending in .gz are
// decompressed.
func LoadWordList(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		defer gz.Close()
		r = gz
	}
	words, err := ReadWords(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	log.Debug().Str("path", path).Int("words", len(words)).Msg("loaded-word-list")
	return words, nil
}
