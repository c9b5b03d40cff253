package loader

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"

	"github.com/zero-day-ai/jsonschema/internal/jsonvalue"
)

// maxLineSize bounds a single JSON Lines record.
const maxLineSize = 16 << 20

// Line is one record of a JSON Lines document.
type Line struct {
	// Number is the 1-based line number in the input.
	Number int
	Value  any
}

// IsLines reports whether ext names a JSON Lines file.
func IsLines(ext string) bool {
	return strings.EqualFold(ext, ".jsonl") || strings.EqualFold(ext, ".ndjson")
}

// DecodeLines decodes newline-delimited JSON. Blank lines are skipped.
func DecodeLines(data []byte) ([]Line, error) {
	var lines []Line
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	number := 0
	for scanner.Scan() {
		number++
		raw := bytes.TrimSpace(scanner.Bytes())
		if len(raw) == 0 {
			continue
		}
		value, err := jsonvalue.Decode(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to parse JSON at line %d: %w", number, err)
		}
		lines = append(lines, Line{Number: number, Value: value})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading JSON lines: %w", err)
	}
	return lines, nil
}
