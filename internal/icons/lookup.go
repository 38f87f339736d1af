// Package icons resolves classification labels to display icons.
package icons

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
)

type compiledRule interface {
	Match(label string) (Icon, bool)
}

// RuleParser parses one line of an icon rules file.
type RuleParser interface {
	CanParse(line string) bool
	Parse(line string) (compiledRule, error)
}

// Table looks labels up in user rules first, then in the built-in dictionary.
type Table struct {
	rules []compiledRule
}

// NewTable returns a table with only the built-in dictionary.
func NewTable() *Table {
	return &Table{}
}

// LoadTable reads additional rules from path. A blank path or a missing file
// yields the built-in table.
func LoadTable(path string) (*Table, error) {
	return LoadTableWithParsers(path, defaultRuleParsers())
}

// LoadTableWithParsers allows parser extension without table changes.
func LoadTableWithParsers(path string, parsers []RuleParser) (*Table, error) {
	if len(parsers) == 0 {
		parsers = defaultRuleParsers()
	}
	if strings.TrimSpace(path) == "" {
		return NewTable(), nil
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return NewTable(), nil
		}
		return nil, fmt.Errorf("failed to read icon rules %q: %w", path, err)
	}

	rules, err := parseRules(string(contents), parsers)
	if err != nil {
		return nil, fmt.Errorf("failed to parse icon rules %q: %w", path, err)
	}
	return &Table{rules: rules}, nil
}

// Lookup implements ports.IconLookup.
func (t *Table) Lookup(label string) (string, string) {
	icon := t.Resolve(label)
	return icon.Glyph, icon.Name
}

// Resolve returns the icon for label: user rules in file order, then an exact
// built-in key, then the first built-in key that contains or is contained in
// the label.
func (t *Table) Resolve(label string) Icon {
	lower := strings.ToLower(strings.TrimSpace(label))
	if lower == "" {
		return Unknown
	}

	if t != nil {
		for _, rule := range t.rules {
			if icon, ok := rule.Match(lower); ok {
				return icon
			}
		}
	}

	for _, e := range builtin {
		if e.key == lower {
			return e.icon
		}
	}
	for _, e := range builtin {
		if strings.Contains(lower, e.key) || strings.Contains(e.key, lower) {
			return e.icon
		}
	}
	return Unknown
}

func parseRules(contents string, parsers []RuleParser) ([]compiledRule, error) {
	lines := strings.Split(contents, "\n")
	rules := make([]compiledRule, 0, len(lines))

	for index, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parsed := false
		for _, parser := range parsers {
			if !parser.CanParse(line) {
				continue
			}
			rule, err := parser.Parse(line)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", index+1, err)
			}
			rules = append(rules, rule)
			parsed = true
			break
		}

		if !parsed {
			return nil, fmt.Errorf("line %d: unsupported rule format", index+1)
		}
	}

	return rules, nil
}

func defaultRuleParsers() []RuleParser {
	return []RuleParser{regexRuleParser{}, literalRuleParser{}}
}

// parseIcon splits "🐔 Chicken" into glyph and name. A missing name falls
// back to the glyph text.
func parseIcon(text string) (Icon, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Icon{}, errors.New("icon cannot be empty")
	}
	parts := strings.SplitN(text, " ", 2)
	icon := Icon{Glyph: parts[0], Name: parts[0]}
	if len(parts) == 2 && strings.TrimSpace(parts[1]) != "" {
		icon.Name = strings.TrimSpace(parts[1])
	}
	return icon, nil
}

// "dog => 🐕 Dog"
type literalRuleParser struct{}

func (literalRuleParser) CanParse(line string) bool {
	return strings.Contains(line, "=>")
}

func (literalRuleParser) Parse(line string) (compiledRule, error) {
	parts := strings.SplitN(line, "=>", 2)
	if len(parts) != 2 {
		return nil, errors.New("invalid literal rule")
	}
	key := strings.ToLower(strings.TrimSpace(parts[0]))
	if key == "" {
		return nil, errors.New("literal rule key cannot be empty")
	}
	icon, err := parseIcon(parts[1])
	if err != nil {
		return nil, err
	}
	return literalRule{key: key, icon: icon}, nil
}

type literalRule struct {
	key  string
	icon Icon
}

func (r literalRule) Match(label string) (Icon, bool) {
	if label == r.key || strings.Contains(label, r.key) {
		return r.icon, true
	}
	return Icon{}, false
}

// "m/\bhen\b/ 🐔 Hen"
type regexRuleParser struct{}

func (regexRuleParser) CanParse(line string) bool {
	return len(line) > 1 && line[0] == 'm' && !isAlphaNumericOrSpace(line[1])
}

func (regexRuleParser) Parse(line string) (compiledRule, error) {
	delim := line[1]
	pattern, pos, err := parseDelimited(line, 2, delim)
	if err != nil {
		return nil, fmt.Errorf("invalid regex pattern: %w", err)
	}
	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid regex: %w", err)
	}
	icon, err := parseIcon(line[pos:])
	if err != nil {
		return nil, err
	}
	return regexRule{re: re, icon: icon}, nil
}

type regexRule struct {
	re   *regexp.Regexp
	icon Icon
}

func (r regexRule) Match(label string) (Icon, bool) {
	if r.re.MatchString(label) {
		return r.icon, true
	}
	return Icon{}, false
}

func parseDelimited(line string, start int, delim byte) (string, int, error) {
	if start >= len(line) {
		return "", 0, errors.New("unexpected end of expression")
	}

	var builder strings.Builder
	escaped := false
	for index := start; index < len(line); index++ {
		char := line[index]
		if escaped {
			builder.WriteByte(char)
			escaped = false
			continue
		}
		if char == '\\' {
			escaped = true
			builder.WriteByte(char)
			continue
		}
		if char == delim {
			return builder.String(), index + 1, nil
		}
		builder.WriteByte(char)
	}
	return "", 0, errors.New("unterminated expression")
}

func isAlphaNumericOrSpace(char byte) bool {
	return (char >= 'a' && char <= 'z') ||
		(char >= 'A' && char <= 'Z') ||
		(char >= '0' && char <= '9') ||
		char == ' ' || char == '\t'
}
