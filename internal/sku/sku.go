package sku

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
)

// Generator produces a unique SKU for a (category, brand, name) triple.
type Generator interface {
	Generate(category, brand, name string) (string, error)
}

// Local generates SKUs in-process from upper-cased fragments of the product
// identity plus a short random suffix, e.g. LAP-HP-ELI-3F2A9C.
type Local struct{}

func NewLocal() *Local {
	return &Local{}
}

func (g *Local) Generate(category, brand, name string) (string, error) {
	id := uuid.New().String()
	suffix := strings.ToUpper(strings.ReplaceAll(id, "-", "")[:6])
	return fmt.Sprintf("%s-%s-%s-%s", fragment(category), fragment(brand), fragment(name), suffix), nil
}

// Fallback returns the timestamp-based SKU used whenever a generator fails.
func Fallback(now time.Time) string {
	return fmt.Sprintf("SKU-%d", now.UnixMilli())
}

// fragment keeps the first three letters or digits, upper-cased. Empty input
// maps to "XXX" so the SKU shape stays stable.
func fragment(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToUpper(r))
			if b.Len() >= 3 {
				break
			}
		}
	}
	if b.Len() == 0 {
		return "XXX"
	}
	return b.String()
}
