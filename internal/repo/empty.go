// SPDX-License-Identifier: MPL-2.0

package repo

import (
	"fmt"
	"os"
	"strings"

	"routegen-cli/internal/convention"

	"github.com/spf13/afero"
)

// FindEmptyFiles recursively collects every command or configuration file
// under commandsDir whose content, after stripping comments, is blank.
// Handler companions are excluded; they are stubbed through their lazy
// counterpart. A missing commands directory yields an empty list.
func (s *Scanner) FindEmptyFiles(commandsDir string) ([]string, error) {
	var out []string
	err := afero.Walk(s.fs, commandsDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if info.IsDir() {
			return nil
		}
		name := info.Name()
		if !stubbable(name) {
			return nil
		}
		raw, err := afero.ReadFile(s.fs, path)
		if err != nil {
			return fmt.Errorf("read %q: %w", path, err)
		}
		if isBlank(string(raw)) {
			out = append(out, path)
		}
		return nil
	})
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("find empty files under %q: %w", commandsDir, err)
	}
	return out, nil
}

// stubbable reports whether a filename is eligible for stub population:
// command files (lazy included) and the special configuration files.
func stubbable(name string) bool {
	return convention.IsCommandFile(name) ||
		convention.IsGroupConfigFile(name) ||
		convention.IsRootConfigFile(name)
}

// isBlank reports whether source content is empty once comments and
// whitespace are removed.
func isBlank(content string) bool {
	return strings.TrimSpace(stripComments(content)) == ""
}

// stripComments removes // line comments and /* */ block comments from
// source text. String and template literals are left intact so comment
// markers inside them do not truncate real content.
func stripComments(src string) string {
	var b strings.Builder
	b.Grow(len(src))

	const (
		code = iota
		lineComment
		blockComment
		strSingle
		strDouble
		strBacktick
	)

	state := code
	for i := 0; i < len(src); i++ {
		c := src[i]
		switch state {
		case code:
			switch {
			case c == '/' && i+1 < len(src) && src[i+1] == '/':
				state = lineComment
				i++
			case c == '/' && i+1 < len(src) && src[i+1] == '*':
				state = blockComment
				i++
			case c == '\'':
				state = strSingle
				b.WriteByte(c)
			case c == '"':
				state = strDouble
				b.WriteByte(c)
			case c == '`':
				state = strBacktick
				b.WriteByte(c)
			default:
				b.WriteByte(c)
			}
		case lineComment:
			if c == '\n' {
				state = code
				b.WriteByte(c)
			}
		case blockComment:
			if c == '*' && i+1 < len(src) && src[i+1] == '/' {
				state = code
				i++
			}
		case strSingle, strDouble, strBacktick:
			b.WriteByte(c)
			if c == '\\' && i+1 < len(src) {
				b.WriteByte(src[i+1])
				i++
				continue
			}
			if (state == strSingle && c == '\'') ||
				(state == strDouble && c == '"') ||
				(state == strBacktick && c == '`') {
				state = code
			}
		}
	}
	return b.String()
}
