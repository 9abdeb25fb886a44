package cli

import (
	"strings"

	"github.com/kballard/go-shellquote"

	"github.com/zoro11031/file-manager/internal/common"
)

// tokenize splits a line into a lower-cased command name and its arguments.
// Arguments may be quoted to contain spaces. A blank line yields no name.
func tokenize(line string) (string, []string, error) {
	words, err := shellquote.Split(line)
	if err != nil {
		return "", nil, common.Usagef("unterminated quote or escape")
	}
	if len(words) == 0 {
		return "", nil, nil
	}
	return strings.ToLower(words[0]), words[1:], nil
}
