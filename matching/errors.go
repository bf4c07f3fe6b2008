package matching

import "errors"

// ErrEngineShutdown is returned by ProcessOrder/ProcessBatch once Stop has
// been called. Outstanding work at the moment of Stop is allowed to finish;
// only calls issued after are rejected. CancelOrder returns only a bool and
// does not report shutdown.
var ErrEngineShutdown = errors.New("matching: engine is shut down")

// errUnknownSymbol names the "no book for this symbol" condition. No method
// returns it: CancelOrder surfaces "no such symbol" as a plain false, with
// no error.
var errUnknownSymbol = errors.New("matching: unknown symbol")
