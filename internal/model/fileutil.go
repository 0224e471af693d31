package model

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Default size of the window shown around a breakpoint.
const (
	ContextBefore = 6
	ContextAfter  = 4
)

// ContextLine is one line of a context window.
type ContextLine struct {
	Number   int    `json:"number"`
	Text     string `json:"text"`
	IsTarget bool   `json:"is_target"`
}

// LineContext represents a line from a file with surrounding context
type LineContext struct {
	File       string        `json:"file"`
	LineNumber int           `json:"line_number"` // Line number of the target
	Lines      []ContextLine `json:"lines"`
	ErrorMsg   string        `json:"error,omitempty"` // Set if the file couldn't be read
}

// GetLineContext reads a file fresh from disk and returns the lines from
// before lines above the target through after lines below it, clamped to
// the bounds of the file.
func GetLineContext(filePath string, lineNumber, before, after int) LineContext {
	result := LineContext{
		File:       filePath,
		LineNumber: lineNumber,
	}

	file, err := os.Open(filePath)
	if err != nil {
		result.ErrorMsg = fmt.Sprintf("Could not read file: %v", err)
		return result
	}
	defer file.Close()

	if lineNumber < 1 {
		result.ErrorMsg = fmt.Sprintf("Invalid line number %d", lineNumber)
		return result
	}

	first := lineNumber - before
	if first < 1 {
		first = 1
	}
	last := lineNumber + after

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 10*1024*1024)
	currentLine := 0
	found := false
	for scanner.Scan() {
		currentLine++
		if currentLine < first {
			continue
		}
		if currentLine > last {
			break
		}
		if currentLine == lineNumber {
			found = true
		}
		result.Lines = append(result.Lines, ContextLine{
			Number:   currentLine,
			Text:     strings.TrimRight(scanner.Text(), " \t\r"),
			IsTarget: currentLine == lineNumber,
		})
	}

	if err := scanner.Err(); err != nil {
		result.ErrorMsg = fmt.Sprintf("Error reading file: %v", err)
		result.Lines = nil
		return result
	}

	// Check if line number is valid
	if !found {
		result.ErrorMsg = fmt.Sprintf("Line %d out of range (file has %d lines)", lineNumber, currentLine)
		result.Lines = nil
	}

	return result
}

// Format renders the context window as plain text, marking the target line.
func (c LineContext) Format() string {
	if c.ErrorMsg != "" {
		return c.ErrorMsg
	}
	var b strings.Builder
	for _, l := range c.Lines {
		marker := "    "
		if l.IsTarget {
			marker = IconTarget + " "
		}
		fmt.Fprintf(&b, "%s%d: %s\n", marker, l.Number, l.Text)
	}
	return strings.TrimSuffix(b.String(), "\n")
}
