package textutil

import (
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Casers carry internal state and must not be shared between goroutines.
var (
	lowerPool = sync.Pool{New: func() any { c := cases.Lower(language.Und); return &c }}
	foldPool  = sync.Pool{New: func() any { c := cases.Fold(); return &c }}
)

// Lower returns s lowercased using Unicode rules.
func Lower(s string) string {
	if isLowerASCII(s) {
		return s
	}
	c := lowerPool.Get().(*cases.Caser)
	defer lowerPool.Put(c)
	return c.String(s)
}

// Fold returns the case-folded form of s for caseless comparison.
func Fold(s string) string {
	c := foldPool.Get().(*cases.Caser)
	defer foldPool.Put(c)
	return c.String(s)
}

// EqualFold reports whether a and b are equal under Unicode case folding.
func EqualFold(a, b string) bool {
	if a == b {
		return true
	}
	return Fold(a) == Fold(b)
}

func isLowerASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 0x80 || ('A' <= c && c <= 'Z') {
			return false
		}
	}
	return true
}
