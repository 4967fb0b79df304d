package logger

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// chainError is the part of a zerr.Error the formatter relies on.
type chainError interface {
	Message() string
	Metadata() map[string]any
}

// errorEntry is one layer of an error chain.
type errorEntry struct {
	Message  string
	Metadata map[string]any
}

// collectErrorEntries flattens an error chain into one entry per layer.
// zerr layers contribute their own message and metadata; layers with an empty
// message only add metadata to the layer above. Joined errors are expanded in
// order. A plain error ends its branch with its full text.
func collectErrorEntries(err error) []errorEntry {
	var entries []errorEntry
	pending := map[string]any{}

	var walk func(error)
	walk = func(current error) {
		for current != nil {
			if joined, ok := current.(interface{ Unwrap() []error }); ok {
				for _, e := range joined.Unwrap() {
					walk(e)
				}
				return
			}

			z, ok := current.(chainError)
			if !ok {
				entries = append(entries, errorEntry{Message: current.Error(), Metadata: pending})
				pending = map[string]any{}
				return
			}

			maps.Copy(pending, z.Metadata())
			if z.Message() != "" {
				entries = append(entries, errorEntry{Message: z.Message(), Metadata: pending})
				pending = map[string]any{}
			}
			current = errors.Unwrap(current)
		}
	}
	walk(err)

	if len(pending) > 0 && len(entries) > 0 {
		maps.Copy(entries[len(entries)-1].Metadata, pending)
	}
	return entries
}

// formatErrorEntries renders the entries as a headline followed by a
// "Caused by:" list. Metadata is printed sorted by key.
func formatErrorEntries(entries []errorEntry) string {
	var lines []string

	for i, entry := range entries {
		msgLines := strings.Split(entry.Message, "\n")

		if i == 0 {
			lines = append(lines, "Error: "+msgLines[0])
			for _, line := range msgLines[1:] {
				lines = append(lines, "       "+line)
			}
		} else {
			if i == 1 {
				lines = append(lines, "", "  Caused by:")
			}
			lines = append(lines, "    → "+msgLines[0])
			for _, line := range msgLines[1:] {
				lines = append(lines, "      "+line)
			}
		}

		indent := "       "
		if i > 0 {
			indent = "        "
		}
		for _, key := range slices.Sorted(maps.Keys(entry.Metadata)) {
			lines = append(lines, fmt.Sprintf("%s%s: %v", indent, key, entry.Metadata[key]))
		}
	}

	return strings.Join(lines, "\n")
}
