package orchestrator

import "context"

func (o *implOrchestrator) Schedule() bool {
	select {
	case o.queue <- struct{}{}:
		return true
	default:
		// A pending request will read a snapshot at least as new as ours.
		return false
	}
}

func (o *implOrchestrator) Run(ctx context.Context) error {
	o.logger.Info(ctx, "Summary worker started (queue size %d)", cap(o.queue))
	for {
		select {
		case <-ctx.Done():
			o.logger.Info(ctx, "Summary worker stopped")
			return ctx.Err()
		case <-o.queue:
			o.Recompute(ctx)
		}
	}
}
