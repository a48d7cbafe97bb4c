// meta/meta.go
package meta

import "time"

// DEFAULT_SOURCE names the embedded opening tree drilled when nothing else is configured.
const DEFAULT_SOURCE = "scotch-gambit"

// DEFAULT_REPLY_DELAY is how long the automated side "thinks" before replying.
const DEFAULT_REPLY_DELAY = time.Second

// DEFAULT_LOG_LEVEL for the command line tool.
const DEFAULT_LOG_LEVEL = "info"

// ScotchGambitPrefix is the fixed opening played before the drill starts:
// 1.e4 e5 2.Nf3 Nc6 3.d4 exd4 4.Bc4
func ScotchGambitPrefix() []string {
	return []string{"e4", "e5", "Nf3", "Nc6", "d4", "exd4", "Bc4"}
}
