package planner

import "github.com/sirupsen/logrus"

// log is the package-level logger, grounded in the pack's
// inference-sim/cmd/root.go convention of driving a single shared logrus
// logger rather than threading one through every call. The planner's own
// diagnostics (§7 class 2/3, and the original's bitmask-gated dbgs()
// dumps — see SPEC_FULL.md) are emitted through it at Debug level;
// callers control verbosity with logrus.SetLevel the same way
// inference-sim's CLI does.
var log = logrus.WithField("component", "planner")
