package postal

import (
	"context"
	"time"

	"github.com/dmitrijs2005/scholarmatch/internal/logging"
)

// AutoFill debounces postal lookups driven by pincode edits.
type AutoFill struct {
	client   *Client
	debounce *Debouncer
	log      logging.Logger
}

func NewAutoFill(c *Client, delay time.Duration, log logging.Logger) *AutoFill {
	return &AutoFill{client: c, debounce: NewDebouncer(delay), log: log.With("module", "postal")}
}

// PincodeChanged schedules a lookup and reports whether one was scheduled.
// onResult runs on a background goroutine, only for the latest edit.
func (a *AutoFill) PincodeChanged(ctx context.Context, country, pincode string, onResult func(Address, error)) bool {
	if !Applicable(country, pincode) {
		a.debounce.Stop()
		return false
	}
	a.debounce.Trigger(ctx, func(ctx context.Context, commit func() bool) {
		addr, err := a.client.Lookup(ctx, pincode)
		if err != nil {
			a.log.Warn(ctx, "postal lookup failed", "pincode", pincode, "error", err)
		}
		if commit() {
			onResult(addr, err)
		}
	})
	return true
}

// Stop abandons any pending lookup.
func (a *AutoFill) Stop() {
	a.debounce.Stop()
}
