package session

import (
	"context"
	"sync"

	"github.com/worldpincode/pincode-cli/internal/core/ports/driving"
	"github.com/worldpincode/pincode-cli/internal/logger"
)

// Runner performs effects against the lookup service and reports each
// outcome as an Event.
type Runner struct {
	svc       driving.LookupService
	debouncer *Debouncer
	emit      func(Event)

	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

// NewRunner creates a runner. emit is called from background goroutines.
func NewRunner(svc driving.LookupService, debouncer *Debouncer, emit func(Event)) *Runner {
	ctx, cancel := context.WithCancel(context.Background())
	return &Runner{
		svc:       svc,
		debouncer: debouncer,
		emit:      emit,
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Perform runs a blocking effect and returns its outcome. It returns nil
// for autocomplete effects, which Dispatch routes through the debouncer.
func (r *Runner) Perform(ctx context.Context, eff Effect) Event {
	switch eff := eff.(type) {
	case FetchLocations:
		items := r.svc.ListLocations(ctx, eff.Level, eff.Context)
		return LocationsLoaded{Level: eff.Level, Seq: eff.Seq, Items: items}
	case RunSearch:
		result, err := r.svc.Lookup(ctx, eff.Query)
		if err != nil {
			return SearchFinished{Epoch: eff.Epoch, Query: eff.Query, Err: err}
		}
		return SearchFinished{Epoch: eff.Epoch, Query: eff.Query, Result: result}
	case ScheduleAutocomplete:
		return SuggestionsLoaded{Partial: eff.Partial, Items: r.svc.QuickSuggestions(ctx, eff.Partial)}
	default:
		return nil
	}
}

// Dispatch starts every effect in the background. Outcomes arrive through
// emit in settlement order.
func (r *Runner) Dispatch(effects []Effect) {
	for _, eff := range effects {
		switch eff := eff.(type) {
		case CancelAutocomplete:
			r.debouncer.Cancel()
		case ScheduleAutocomplete:
			r.debouncer.Schedule(func() {
				r.spawn(eff)
			})
		default:
			r.spawn(eff)
		}
	}
}

// Close cancels pending autocomplete, aborts outstanding calls and waits
// for their goroutines. Later effects are ignored.
func (r *Runner) Close() {
	r.mu.Lock()
	r.closed = true
	r.mu.Unlock()

	r.debouncer.Stop()
	r.cancel()
	r.wg.Wait()
}

func (r *Runner) spawn(eff Effect) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		ev := r.Perform(r.ctx, eff)
		if ev == nil || r.ctx.Err() != nil {
			return
		}
		logger.Debug("Effect %T settled as %T", eff, ev)
		r.emit(ev)
	}()
}
