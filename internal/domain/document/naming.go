package document

import (
	"fmt"
	"time"
)

const defaultNamePrefix = "Document "

// nextDefaultName probes "Document {n}" candidates against the taken
// names, starting at n=1, and returns the first free one.
func nextDefaultName(taken []string) string {
	used := make(map[string]struct{}, len(taken))
	for _, name := range taken {
		used[name] = struct{}{}
	}
	for n := 1; ; n++ {
		candidate := fmt.Sprintf("%s%d", defaultNamePrefix, n)
		if _, ok := used[candidate]; !ok {
			return candidate
		}
	}
}

// timestampedName guarantees forward progress when a probed candidate was
// taken between listing and commit.
func timestampedName(now time.Time) string {
	return fmt.Sprintf("%s%s", defaultNamePrefix, now.Format("2006-01-02 15:04:05.000"))
}

func nameTaken(names []string, candidate string) bool {
	for _, name := range names {
		if name == candidate {
			return true
		}
	}
	return false
}
