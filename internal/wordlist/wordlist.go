// Package wordlist loads word lists from files.
package wordlist

import (
	"fmt"
	"os"
)

// LoadWords reads a file with one word per line and normalizes it.
func LoadWords(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	words := Normalize(string(data))
	if len(words) == 0 {
		return nil, fmt.Errorf("word list is empty")
	}
	return words, nil
}
