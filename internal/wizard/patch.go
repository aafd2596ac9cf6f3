// Package wizard implements the interactive setup flow for condaprep.
//
// # TOML Patching Strategy
//
// Config updates use line-based TOML patching instead of the go-toml
// library's tree manipulation. go-toml's ToTomlString() loses inline comments
// and rearranges leading comments; users expect their config formatting to be
// preserved across init runs. The patcher rewrites sections in template order
// and keeps any sections or comments it does not manage. The go-toml library
// is still used for syntax validation before processing.
package wizard

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	// toml is used for syntax validation only; manipulation is line-based to
	// preserve comments and formatting.
	toml "github.com/pelletier/go-toml"

	"github.com/condaprep/condaprep/internal/messages"
)

type tomlBlock struct {
	name  string
	lines []string
}

type tomlDocument struct {
	preamble []string
	sections map[string]*tomlBlock
	order    []string
}

// PatchConfig applies wizard choices to condaprep.toml content. content may
// be empty, in which case the canonical template is used as the base.
func PatchConfig(content string, choices *Choices) (string, error) {
	if strings.TrimSpace(content) == "" {
		content = configTemplate
	}
	if _, err := toml.LoadBytes([]byte(content)); err != nil {
		return "", fmt.Errorf(messages.WizardParseConfigFmt, err)
	}

	templateDoc := parseTomlDocument(configTemplate)
	currentDoc := parseTomlDocument(content)

	preamble := choosePreamble(currentDoc.preamble, templateDoc.preamble)
	output := make([]string, 0, len(preamble))
	output = append(output, preamble...)

	for _, name := range templateDoc.order {
		block := currentDoc.sections[name]
		if block == nil {
			block = templateDoc.sections[name]
		}
		updated := cloneBlock(block)
		applySectionUpdates(name, updated, templateDoc.sections[name], choices)
		appendBlock(&output, updated.lines)
	}

	for _, block := range extraSectionBlocks(currentDoc.sections, templateDoc.sections) {
		appendBlock(&output, block.lines)
	}

	return strings.Join(trimTrailingEmptyLines(output), "\n") + "\n", nil
}

// applySectionUpdates mutates the block in place based on wizard choices.
func applySectionUpdates(name string, block *tomlBlock, templateBlock *tomlBlock, choices *Choices) {
	switch name {
	case "install":
		setKeyValue(block, templateBlock, "dir", formatTomlValue(choices.PrefixDir), "")
	case "env":
		setKeyValue(block, templateBlock, "name", formatTomlValue(choices.EnvName), "")
		setKeyValue(block, templateBlock, "spec_file", formatTomlValue(choices.SpecFile), "name")
	case "reporting":
		setKeyValue(block, templateBlock, "tools", formatTomlValue(choices.ReportingTools), "")
	}
}

// choosePreamble returns the preamble lines to keep before the first table.
func choosePreamble(current []string, template []string) []string {
	for _, line := range current {
		if strings.TrimSpace(line) != "" {
			return current
		}
	}
	return template
}

// keyLine holds a parsed key/value line with comment metadata.
type keyLine struct {
	raw           string
	indent        string
	commented     bool
	inlineComment string
}

// findKeyLine searches lines for a key/value assignment and returns the
// parsed line. Returns false if the key is not present.
func findKeyLine(lines []string, key string) (keyLine, bool) {
	for _, line := range lines {
		if parsed, ok := parseKeyLine(line, key); ok {
			return parsed, true
		}
	}
	return keyLine{}, false
}

// parseKeyLine parses a key/value assignment line. Returns false when the
// line does not define the requested key.
func parseKeyLine(line string, key string) (keyLine, bool) {
	indentLen := len(line) - len(strings.TrimLeft(line, " \t"))
	indent := line[:indentLen]
	trimmed := strings.TrimLeft(line[indentLen:], " \t")
	commented := false
	if strings.HasPrefix(trimmed, "#") {
		commented = true
		trimmed = strings.TrimLeft(strings.TrimPrefix(trimmed, "#"), " \t")
	}
	if !strings.HasPrefix(trimmed, key) {
		return keyLine{}, false
	}
	rest := strings.TrimSpace(trimmed[len(key):])
	if !strings.HasPrefix(rest, "=") {
		return keyLine{}, false
	}
	return keyLine{raw: line, indent: indent, commented: commented, inlineComment: extractInlineComment(trimmed)}, true
}

// extractInlineComment returns the inline comment portion of a value line,
// skipping # characters inside quoted strings.
func extractInlineComment(line string) string {
	inDouble := false
	inSingle := false
	for i := 0; i < len(line); i++ {
		ch := line[i]
		if inDouble {
			if ch == '\\' {
				i++
				continue
			}
			if ch == '"' {
				inDouble = false
			}
			continue
		}
		if inSingle {
			if ch == '\'' {
				inSingle = false
			}
			continue
		}
		switch ch {
		case '"':
			inDouble = true
		case '\'':
			inSingle = true
		case '#':
			return strings.TrimSpace(line[i:])
		}
	}
	return ""
}

// setKeyValue updates or inserts a key/value line in a section block. The
// existing line's indentation and inline comment are kept; the template
// provides formatting for keys absent from the user's file. afterKey controls
// insertion order for new keys.
func setKeyValue(block *tomlBlock, templateBlock *tomlBlock, key string, value string, afterKey string) {
	var base keyLine
	if existingLine, ok := findKeyLine(block.lines, key); ok && !existingLine.commented {
		base = existingLine
	}
	if base.raw == "" && templateBlock != nil {
		if templateLine, ok := findKeyLine(templateBlock.lines, key); ok {
			base = templateLine
		}
	}
	newLine := fmt.Sprintf("%s%s = %s", base.indent, key, value)
	if base.inlineComment != "" {
		newLine += " " + base.inlineComment
	}
	replaceOrInsertLine(block, key, newLine, afterKey)
}

// replaceOrInsertLine replaces an existing uncommented key line or inserts a
// new line after afterKey. Duplicate key lines are removed.
func replaceOrInsertLine(block *tomlBlock, key string, newLine string, afterKey string) {
	var matches []int
	uncommentedIndex := -1
	for i, line := range block.lines {
		parsed, ok := parseKeyLine(line, key)
		if !ok {
			continue
		}
		if parsed.commented {
			continue
		}
		matches = append(matches, i)
		if uncommentedIndex == -1 {
			uncommentedIndex = i
		}
	}
	if uncommentedIndex >= 0 {
		block.lines[uncommentedIndex] = newLine
		for i := len(matches) - 1; i >= 0; i-- {
			if matches[i] == uncommentedIndex {
				continue
			}
			block.lines = append(block.lines[:matches[i]], block.lines[matches[i]+1:]...)
		}
		return
	}
	insertAt := findInsertIndex(block.lines, afterKey)
	block.lines = append(block.lines[:insertAt], append([]string{newLine}, block.lines[insertAt:]...)...)
}

// findInsertIndex returns the line index at which to insert a new key line.
// lines include the section header as the first entry.
func findInsertIndex(lines []string, afterKey string) int {
	if len(lines) == 0 {
		return 0
	}
	if afterKey != "" {
		for i, line := range lines {
			if parsed, ok := parseKeyLine(line, afterKey); ok && !parsed.commented {
				return i + 1
			}
		}
	}
	// After the header and any leading comment run attached to the first key.
	for i := 1; i < len(lines); i++ {
		trimmed := strings.TrimSpace(lines[i])
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		return i
	}
	return len(lines)
}

// formatTomlValue converts a scalar or string-slice value into a TOML literal.
func formatTomlValue(value interface{}) string {
	switch v := value.(type) {
	case string:
		return strconv.Quote(v)
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case []string:
		quoted := make([]string, len(v))
		for i, s := range v {
			quoted[i] = strconv.Quote(s)
		}
		return "[" + strings.Join(quoted, ", ") + "]"
	default:
		return fmt.Sprintf("%v", v)
	}
}

// parseTomlDocument splits TOML content into preamble lines and section
// blocks, recording section order by appearance.
func parseTomlDocument(content string) tomlDocument {
	lines := strings.Split(content, "\n")
	sections := make(map[string]*tomlBlock)
	var order []string
	var preamble []string
	var current *tomlBlock

	flush := func() {
		if current == nil {
			return
		}
		if _, exists := sections[current.name]; !exists {
			sections[current.name] = current
			order = append(order, current.name)
		}
		current = nil
	}

	for _, line := range lines {
		if name, ok := parseTomlHeader(line); ok {
			flush()
			current = &tomlBlock{name: name, lines: []string{line}}
			continue
		}
		if current == nil {
			preamble = append(preamble, line)
			continue
		}
		current.lines = append(current.lines, line)
	}
	flush()

	return tomlDocument{preamble: preamble, sections: sections, order: order}
}

// parseTomlHeader detects a TOML table header line and extracts its name.
// Handles inline comments like `[section] # comment`.
func parseTomlHeader(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return "", false
	}
	if idx := strings.Index(trimmed, "#"); idx > 0 {
		trimmed = strings.TrimSpace(trimmed[:idx])
	}
	if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") && !strings.HasPrefix(trimmed, "[[") {
		name := strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(trimmed, "["), "]"))
		return name, name != ""
	}
	return "", false
}

// cloneBlock returns a deep copy of a block, including its lines.
func cloneBlock(block *tomlBlock) *tomlBlock {
	if block == nil {
		return nil
	}
	lines := make([]string, len(block.lines))
	copy(lines, block.lines)
	return &tomlBlock{name: block.name, lines: lines}
}

// appendBlock appends a block to the output, inserting a single blank line
// between blocks.
func appendBlock(output *[]string, block []string) {
	trimmed := trimEmptyLines(block)
	if len(trimmed) == 0 {
		return
	}
	if len(*output) > 0 && (*output)[len(*output)-1] != "" {
		*output = append(*output, "")
	}
	*output = append(*output, trimmed...)
}

// trimEmptyLines removes leading and trailing blank lines from a block.
func trimEmptyLines(lines []string) []string {
	start := 0
	for start < len(lines) && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	end := len(lines)
	for end > start && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	return lines[start:end]
}

// trimTrailingEmptyLines removes trailing blank lines from the output.
func trimTrailingEmptyLines(lines []string) []string {
	end := len(lines)
	for end > 0 && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	return lines[:end]
}

// extraSectionBlocks returns non-template section blocks sorted by name.
func extraSectionBlocks(sections map[string]*tomlBlock, templateSections map[string]*tomlBlock) []*tomlBlock {
	extra := make([]*tomlBlock, 0)
	for name, block := range sections {
		if _, exists := templateSections[name]; exists {
			continue
		}
		extra = append(extra, cloneBlock(block))
	}
	sort.Slice(extra, func(i, j int) bool {
		return extra[i].name < extra[j].name
	})
	return extra
}
