// internal/app/system/identifier/identifier.go

// Package identifier generates the short human-readable IDs used for
// surveys and master projects. The generators are pure apart from the
// randomness source; they do not check for collisions. Callers insert
// under a unique index and retry on conflict (see the survey and
// master-project stores).
package identifier

import (
	"math/rand"
	"strings"
	"sync"
	"time"
	"unicode"
)

const (
	letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digits  = "0123456789"
)

// Generator produces survey and master-project IDs from an injectable
// randomness source so tests can make the output deterministic.
type Generator struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// New returns a Generator seeded from the current time.
func New() *Generator {
	return NewWithSource(rand.NewSource(time.Now().UnixNano()))
}

// NewWithSource returns a Generator driven by the given source.
func NewWithSource(src rand.Source) *Generator {
	return &Generator{rnd: rand.New(src)}
}

// SurveyID builds an ID from the survey name: the name is uppercased,
// whitespace is stripped, the first three characters are kept, and a
// random three-digit number (100-999) is appended. Names shorter than
// three characters after normalization yield a shorter prefix.
func (g *Generator) SurveyID(surveyName string) string {
	norm := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return unicode.ToUpper(r)
	}, surveyName)

	prefix := norm
	if len(prefix) > 3 {
		prefix = prefix[:3]
	}

	g.mu.Lock()
	n := 100 + g.rnd.Intn(900)
	g.mu.Unlock()

	return prefix + itoa3(n)
}

// MasterProjectID returns four random uppercase letters followed by four
// random digits.
func (g *Generator) MasterProjectID() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	var b strings.Builder
	b.Grow(8)
	for i := 0; i < 4; i++ {
		b.WriteByte(letters[g.rnd.Intn(len(letters))])
	}
	for i := 0; i < 4; i++ {
		b.WriteByte(digits[g.rnd.Intn(len(digits))])
	}
	return b.String()
}

// itoa3 formats n (100-999) as exactly three digits.
func itoa3(n int) string {
	return string([]byte{
		byte('0' + n/100),
		byte('0' + (n/10)%10),
		byte('0' + n%10),
	})
}
