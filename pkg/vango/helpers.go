package vango

import (
	"sync/atomic"
	"time"
)

// Timeout runs fn on the event loop once d has elapsed. The returned Cleanup
// cancels the timer; after it returns, fn will not start.
//
// Timeout must be called where UseCtx is available, typically inside an
// effect, and its Cleanup returned from that effect so that a re-run or a
// dispose cancels the pending call:
//
//	vango.CreateEffect(func() vango.Cleanup {
//	    if !valid.Get() {
//	        return nil
//	    }
//	    return vango.Timeout(100*time.Millisecond, focusSubmit)
//	})
func Timeout(d time.Duration, fn func(), opts ...TimeoutOption) Cleanup {
	ctx := UseCtx()
	if ctx == nil {
		panic(ErrEffectContext)
	}

	var cfg timeoutConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	// cancelled is checked both before dispatch and on the loop, so a
	// cancel that races with the timer still suppresses fn.
	var cancelled atomic.Bool
	timer := time.AfterFunc(d, func() {
		if cancelled.Load() {
			return
		}
		ctx.Dispatch(func() {
			if cancelled.Load() {
				return
			}
			TxNamed(cfg.name(), fn)
		})
	})

	return func() {
		cancelled.Store(true)
		timer.Stop()
	}
}

type timeoutConfig struct {
	txName string
}

func (c *timeoutConfig) name() string {
	if c.txName != "" {
		return "Timeout:" + c.txName
	}
	return "Timeout"
}

// TimeoutOption configures Timeout.
type TimeoutOption func(*timeoutConfig)

// TimeoutTxName names the timer's transaction for debug logs.
func TimeoutTxName(name string) TimeoutOption {
	return func(c *timeoutConfig) {
		c.txName = name
	}
}
