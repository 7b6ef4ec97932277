package tui

import (
	"strings"

	"github.com/Zuo-Peng/chatlog/internal/search"
)

const senderPrefix = "from:"

// parseQuery splits the search box into text terms and a "from:name"
// sender filter. The last from: term wins; a bare "from:" is ignored.
func parseQuery(input string, base search.Options) search.Options {
	opts := base
	var terms []string
	for _, f := range strings.Fields(input) {
		if name, ok := strings.CutPrefix(strings.ToLower(f), senderPrefix); ok {
			if name != "" {
				opts.Sender = f[len(senderPrefix):]
			}
			continue
		}
		terms = append(terms, f)
	}
	opts.Query = strings.Join(terms, " ")
	return opts
}
