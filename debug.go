package geoscribe

import (
	"fmt"
	"os"
)

// globalDebug enables internal invariant checks. Off by default; the checks
// are skipped entirely in release use.
var globalDebug bool

// SetDebug toggles debug invariant checking for the whole package.
// When enabled, misuse such as operating on a stopped session or a destroyed
// scratch layer panics with a descriptive message instead of silently
// corrupting state.
func SetDebug(enabled bool) {
	globalDebug = enabled
}

// debugCheckStoppedSession panics when op is invoked on a stopped session.
func debugCheckStoppedSession(s *baseSession, op string) {
	if s.stoppedFlag.Load() {
		panic(fmt.Sprintf("geoscribe debug: %s on stopped session (type %d)", op, s.typ))
	}
}

// debugCheckDestroyedScratch panics when op is invoked on a destroyed
// scratch layer.
func debugCheckDestroyedScratch(s *ScratchLayer, op string) {
	if s.destroyed {
		panic(fmt.Sprintf("geoscribe debug: %s on destroyed scratch layer", op))
	}
}

// debugWarnLargeSelection warns on stderr when an edit session is handed an
// unusually large feature set; every drag event rewrites all of them.
const debugMaxSelection = 10000

func debugWarnLargeSelection(n int) {
	if n > debugMaxSelection {
		_, _ = fmt.Fprintf(os.Stderr, "[geoscribe] warning: selection of %d features exceeds %d\n",
			n, debugMaxSelection)
	}
}
