package main

import (
	"encoding/json"
	"fmt"
	"os"
	"unicode/utf8"
)

type quoteEntry struct {
	Index  int    `json:"index"`
	Text   string `json:"text"`
	Author string `json:"author"`
}

const expectedCount = 50

func main() {
	path := "./quotes.json"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Printf("%s: read error: %v\n", path, err)
		os.Exit(1)
	}

	var entries []quoteEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		fmt.Printf("%s: parse error: %v\n", path, err)
		os.Exit(1)
	}

	exitCode := 0
	bad := 0

	if len(entries) != expectedCount {
		fmt.Printf("%s: expected %d quotes, found %d\n", path, expectedCount, len(entries))
		exitCode = 1
	}

	seen := make(map[int]bool)
	for i, entry := range entries {
		if entry.Index < 0 || entry.Index >= expectedCount {
			fmt.Printf("%s: quote %d: index %d out of range [0, %d)\n", path, i, entry.Index, expectedCount)
			bad++
			continue
		}
		if seen[entry.Index] {
			fmt.Printf("%s: quote %d: duplicate index %d\n", path, i, entry.Index)
			bad++
		}
		seen[entry.Index] = true

		if entry.Text == "" {
			fmt.Printf("%s: quote %d: empty text\n", path, i)
			bad++
		}
		if utf8.RuneCountInString(entry.Text) > 300 {
			fmt.Printf("%s: quote %d: text longer than 300 characters\n", path, i)
			bad++
		}
	}

	if bad > 0 {
		exitCode = 1
	}
	if exitCode == 0 {
		fmt.Printf("%s: OK\n", path)
	}
	os.Exit(exitCode)
}
