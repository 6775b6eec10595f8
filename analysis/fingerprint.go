package analysis

import (
	"crypto/sha256"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/speakeasy-api/sinkflow/sat"
)

// Fingerprint returns a hex digest of e that ignores the operand order of
// every AND and OR.
func Fingerprint(e sat.Expr) string {
	sum := sha256.Sum256([]byte(canonical(e)))
	return fmt.Sprintf("%x", sum[:])
}

// canonical renders e with sorted operands. Constants and variables use
// distinct prefixes, since an index atom may be named "0" or "1".
func canonical(e sat.Expr) string {
	switch e := e.(type) {
	case sat.Const:
		if e {
			return "#t"
		}
		return "#f"
	case *sat.Var:
		return "v:" + e.Name
	case *sat.NotExpr:
		return "!" + canonical(e.X)
	case *sat.AndExpr:
		return canonicalList("&", e.Xs)
	case *sat.OrExpr:
		return canonicalList("|", e.Xs)
	default:
		panic(fmt.Sprintf("canonical: unexpected expression %T", e))
	}
}

func canonicalList(op string, xs []sat.Expr) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = canonical(x)
	}
	sort.Strings(parts)
	return op + "(" + strings.Join(parts, ",") + ")"
}

// memo caches solver outcomes by fingerprint for one run.
type memo struct {
	mu       sync.Mutex
	outcomes map[string]bool
	hits     int
}

func newMemo() *memo {
	return &memo{outcomes: make(map[string]bool)}
}

func (m *memo) lookup(e sat.Expr) (key string, satisfiable, ok bool) {
	key = Fingerprint(e)
	m.mu.Lock()
	defer m.mu.Unlock()
	satisfiable, ok = m.outcomes[key]
	if ok {
		m.hits++
	}
	return key, satisfiable, ok
}

func (m *memo) store(key string, satisfiable bool) {
	m.mu.Lock()
	m.outcomes[key] = satisfiable
	m.mu.Unlock()
}
