// Package globmatch compiles the glob syntax used by [[lsp_servers]]
// file_patterns (**, *, ?, [abc]) into cached regular expressions.
//
// No glob-matching library appears anywhere in the retrieved example corpus,
// so this is a deliberate stdlib leaf: regexp is the direct, correct tool
// for a small, fixed glob grammar.
package globmatch

import (
	"regexp"
	"strings"
	"sync"
)

// Pattern is a compiled glob pattern, safe for concurrent use.
type Pattern struct {
	raw string
	re  *regexp.Regexp
}

// Match reports whether path (expected to use forward slashes) matches the
// pattern.
func (p *Pattern) Match(path string) bool {
	return p.re.MatchString(path)
}

func (p *Pattern) String() string { return p.raw }

// Compile translates a glob pattern into a Pattern. The grammar supported:
//
//	**   matches any number of path segments, including none
//	*    matches any run of characters except '/'
//	?    matches exactly one character except '/'
//	[abc] / [a-z] / [!abc] character classes, passed through to regexp
func Compile(glob string) (*Pattern, error) {
	re, err := regexp.Compile("^" + translate(glob) + "$")
	if err != nil {
		return nil, err
	}
	return &Pattern{raw: glob, re: re}, nil
}

func translate(glob string) string {
	var b strings.Builder
	runes := []rune(glob)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch r {
		case '*':
			if i+1 < len(runes) && runes[i+1] == '*' {
				// "**/" consumes the following slash so it also matches zero
				// intermediate segments; otherwise it behaves like ".*".
				if i+2 < len(runes) && runes[i+2] == '/' {
					b.WriteString("(?:.*/)?")
					i += 2
				} else {
					b.WriteString(".*")
					i++
				}
			} else {
				b.WriteString("[^/]*")
			}
		case '?':
			b.WriteString("[^/]")
		case '[':
			j := i + 1
			if j < len(runes) && runes[j] == '!' {
				j++
			}
			for j < len(runes) && runes[j] != ']' {
				j++
			}
			if j >= len(runes) {
				b.WriteString(regexp.QuoteMeta(string(r)))
				continue
			}
			class := string(runes[i : j+1])
			class = strings.Replace(class, "[!", "[^", 1)
			b.WriteString(class)
			i = j
		case '.', '+', '(', ')', '|', '^', '$', '{', '}', '\\':
			b.WriteString("\\")
			b.WriteRune(r)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Cache memoizes compiled patterns, since the same ServerSpec.FilePatterns
// are evaluated against every file dispatch decision.
type Cache struct {
	mu    sync.RWMutex
	cache map[string]*Pattern
}

func NewCache() *Cache {
	return &Cache{cache: make(map[string]*Pattern)}
}

// Get returns the compiled Pattern for glob, compiling and memoizing it on
// first use. Invalid patterns are memoized as a never-matching Pattern so a
// single bad config entry does not repeatedly fail to compile.
func (c *Cache) Get(glob string) *Pattern {
	c.mu.RLock()
	p, ok := c.cache[glob]
	c.mu.RUnlock()
	if ok {
		return p
	}

	compiled, err := Compile(glob)
	if err != nil {
		compiled = &Pattern{raw: glob, re: regexp.MustCompile(`[^\x00-\x{10FFFF}]`)}
	}

	c.mu.Lock()
	c.cache[glob] = compiled
	c.mu.Unlock()
	return compiled
}

// MatchAny reports whether path matches any of the given glob patterns.
func (c *Cache) MatchAny(patterns []string, path string) bool {
	for _, g := range patterns {
		if c.Get(g).Match(path) {
			return true
		}
	}
	return false
}
