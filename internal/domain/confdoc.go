// Package domain implements the scaffolding pipeline: config patching,
// layout migration, template materialization and step orchestration.
package domain

import (
	"strings"

	m "nuxtsmith.dev/pkg/nuxtsmith/internal/model"
)

const (
	// ConfigFileName is the configuration artifact every patch targets.
	ConfigFileName = "nuxt.config.ts"

	configFactoryToken = "defineNuxtConfig("
	modulesKey         = "modules"
)

// EnsureImport prepends importLine to the document unless some line already
// contains that exact text. Reports whether the document changed.
func EnsureImport(doc *m.ConfigDocument, importLine string) bool {
	if doc.HasLine(importLine) {
		return false
	}

	doc.Raw = importLine + "\n" + doc.Raw

	return true
}

// MergeIntoModuleList appends module to the modules array unless it is
// already listed (case-sensitive exact match). The array is re-serialized
// with single quotes regardless of the quoting found on disk. A document
// without a modules array is a precondition violation, not a no-op.
func MergeIntoModuleList(doc *m.ConfigDocument, module string) (bool, error) {
	open, closing, err := locateModulesArray(doc.Raw)
	if err != nil {
		return false, err
	}

	modules := parseModuleList(doc.Raw[open+1 : closing])

	for _, existing := range modules {
		if existing == module {
			return false, nil
		}
	}

	modules = append(modules, module)
	doc.Raw = doc.Raw[:open] + serializeModuleList(modules) + doc.Raw[closing+1:]

	return true, nil
}

// InsertKeyBlockIfAbsent inserts block immediately after the modules array's
// closing delimiter unless keyName occurs anywhere in the document.
func InsertKeyBlockIfAbsent(doc *m.ConfigDocument, keyName, block string) (bool, error) {
	if doc.HasKey(keyName) {
		return false, nil
	}

	_, closing, err := locateModulesArray(doc.Raw)
	if err != nil {
		return false, err
	}

	raw := doc.Raw
	at := closing + 1

	if at < len(raw) && raw[at] == ',' {
		at++
	} else {
		raw = raw[:at] + "," + raw[at:]
		at++
	}

	insert := "\n  " + strings.TrimRight(block, "\n,") + ","
	doc.Raw = raw[:at] + insert + raw[at:]

	return true, nil
}

// EnsureTopLevelDefaults injects the given option lines directly after the
// factory call's opening brace. It is a no-op when any default's key marker
// (the text before ':') is already present in the document.
func EnsureTopLevelDefaults(doc *m.ConfigDocument, defaults []string) (bool, error) {
	if len(defaults) == 0 {
		return false, nil
	}

	for _, line := range defaults {
		marker := line
		if i := strings.Index(line, ":"); i >= 0 {
			marker = line[:i]
		}

		if doc.HasKey(strings.TrimSpace(marker)) {
			return false, nil
		}
	}

	factory := strings.Index(doc.Raw, configFactoryToken)
	if factory < 0 {
		return false, &m.PatchError{Reason: "missing " + configFactoryToken + " in " + ConfigFileName}
	}

	brace := strings.Index(doc.Raw[factory:], "{")
	if brace < 0 {
		return false, &m.PatchError{Reason: "missing configuration object after " + configFactoryToken}
	}

	at := factory + brace + 1

	var b strings.Builder
	for _, line := range defaults {
		b.WriteString("\n  ")
		b.WriteString(strings.TrimRight(line, ","))
		b.WriteString(",")
	}

	doc.Raw = doc.Raw[:at] + b.String() + doc.Raw[at:]

	return true, nil
}

// locateModulesArray returns the offsets of the opening and closing brackets
// of the modules array inside the factory call.
func locateModulesArray(raw string) (int, int, error) {
	factory := strings.Index(raw, configFactoryToken)
	if factory < 0 {
		return 0, 0, &m.PatchError{Reason: "missing " + configFactoryToken + " in " + ConfigFileName}
	}

	open := -1

	for search := factory; search < len(raw); {
		idx := strings.Index(raw[search:], modulesKey)
		if idx < 0 {
			break
		}

		after := skipSpaces(raw, search+idx+len(modulesKey))
		if after < len(raw) && raw[after] == ':' {
			after = skipSpaces(raw, after+1)
			if after < len(raw) && raw[after] == '[' {
				open = after
				break
			}
		}

		search += idx + len(modulesKey)
	}

	if open < 0 {
		return 0, 0, &m.PatchError{Reason: "missing " + modulesKey + " array in " + ConfigFileName}
	}

	depth := 0
	quote := byte(0)

	for i := open; i < len(raw); i++ {
		c := raw[i]

		if quote != 0 {
			if c == quote && raw[i-1] != '\\' {
				quote = 0
			}

			continue
		}

		switch c {
		case '\'', '"', '`':
			quote = c
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return open, i, nil
			}
		}
	}

	return 0, 0, &m.PatchError{Reason: "unbalanced " + modulesKey + " array in " + ConfigFileName}
}

// parseModuleList splits the bracketed array body into trimmed, unquoted,
// deduplicated entries, preserving first-seen order.
func parseModuleList(body string) []string {
	var (
		entries []string
		seen    = map[string]struct{}{}
		current strings.Builder
		quote   byte
	)

	flush := func() {
		entry := strings.TrimSpace(current.String())
		current.Reset()
		entry = strings.Trim(entry, `'"`+"`")

		if entry == "" {
			return
		}

		if _, dup := seen[entry]; dup {
			return
		}

		seen[entry] = struct{}{}
		entries = append(entries, entry)
	}

	for i := 0; i < len(body); i++ {
		c := body[i]

		if quote != 0 {
			current.WriteByte(c)

			if c == quote && body[i-1] != '\\' {
				quote = 0
			}

			continue
		}

		switch c {
		case '\'', '"', '`':
			quote = c

			current.WriteByte(c)
		case ',':
			flush()
		default:
			current.WriteByte(c)
		}
	}

	flush()

	return entries
}

// serializeModuleList renders entries as a single-line, single-quoted array.
func serializeModuleList(entries []string) string {
	quoted := make([]string, 0, len(entries))
	for _, entry := range entries {
		quoted = append(quoted, "'"+entry+"'")
	}

	return "[" + strings.Join(quoted, ", ") + "]"
}

func skipSpaces(s string, i int) int {
	for i < len(s) && (s[i] == ' ' || s[i] == '\t' || s[i] == '\n' || s[i] == '\r') {
		i++
	}

	return i
}
