package correlate

import (
	"fmt"
	"strings"
)

// NoCorrelationWarning means no patch train is a prefix of the backup's train.
type NoCorrelationWarning struct {
	Backup string
	Train  string
}

func (w *NoCorrelationWarning) Error() string {
	return fmt.Sprintf("no patch for backup %q (train %q)", w.Backup, w.Train)
}

// AmbiguousCorrelationWarning means several patches matched. None is chosen;
// the candidates are listed for manual resolution.
type AmbiguousCorrelationWarning struct {
	Backup     string
	Train      string
	Candidates []string
}

func (w *AmbiguousCorrelationWarning) Error() string {
	return fmt.Sprintf("%d patches match backup %q (train %q): %s",
		len(w.Candidates), w.Backup, w.Train, strings.Join(w.Candidates, ", "))
}
