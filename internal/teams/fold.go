package teams

import (
	"sync"

	"golang.org/x/text/cases"

	"github.com/aaronzipp/scoreboards/internal/chat"
)

// caserWrapper lets a cases.Caser live in a sync.Pool.
type caserWrapper struct {
	caser cases.Caser
}

// Casers are stateful and not safe for concurrent use.
var foldPool = sync.Pool{
	New: func() any {
		return &caserWrapper{caser: cases.Fold()}
	},
}

// Key is the identity a team name is compared by: colour codes in either
// notation removed, then case folded.
func Key(name string) string {
	w := foldPool.Get().(*caserWrapper)
	defer foldPool.Put(w)
	return w.caser.String(chat.StripAll(name))
}
