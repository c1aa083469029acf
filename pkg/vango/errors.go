package vango

import "errors"

// ErrEffectContext is the panic value of effect helpers such as Timeout when
// they run without a Ctx installed by WithCtx.
var ErrEffectContext = errors.New("vango: effect helper called outside WithCtx")
