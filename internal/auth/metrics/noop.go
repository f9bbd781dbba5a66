package metrics

import "time"

// Noop discards everything. It is the zero-cost default when no registry is
// wired in, e.g. in tests.
type Noop struct{}

var _ Recorder = Noop{}

func (Noop) RecordLogin(string)                                   {}
func (Noop) RecordRefresh(string)                                 {}
func (Noop) RecordLogout()                                        {}
func (Noop) RecordSessionsSwept()                                 {}
func (Noop) RecordHTTPRequest(string, string, int, time.Duration) {}

// OrNoop returns r, or Noop when r is nil.
func OrNoop(r Recorder) Recorder {
	if r == nil {
		return Noop{}
	}
	return r
}
