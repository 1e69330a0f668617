package impl

import (
	"context"
	"log/slog"
	"time"

	"fuelwatch/internal/domain/entity"
	"fuelwatch/internal/domain/service"

	"golang.org/x/sync/errgroup"
)

// sendJob is one (payload, subscription) pair. Tag lets callers group results.
type sendJob struct {
	tag          int
	subscription *entity.PushSubscription
	payload      *entity.PushPayload
}

// sendResult is the typed outcome of one push attempt
type sendResult struct {
	tag          int
	subscription *entity.PushSubscription
	outcome      service.SendOutcome
	err          error
}

// fanoutTotals partitions a batch of send results
type fanoutTotals struct {
	sent      int
	transient int
	gone      []*entity.PushSubscription
}

// attempted reports whether at least one send was issued
func (t fanoutTotals) attempted() bool {
	return t.sent+t.transient+len(t.gone) > 0
}

// pushFanout sends one payload to many subscriptions concurrently
type pushFanout struct {
	sender      service.PushSender
	metrics     service.DispatchMetrics
	timeout     time.Duration
	concurrency int
}

// broadcastJobs pairs one payload with every subscription
func broadcastJobs(tag int, subs []*entity.PushSubscription, payload *entity.PushPayload) []sendJob {
	jobs := make([]sendJob, 0, len(subs))
	for _, sub := range subs {
		jobs = append(jobs, sendJob{tag: tag, subscription: sub, payload: payload})
	}

	return jobs
}

// sendAll issues every job concurrently and waits for all of them.
// A failing or slow device never delays the others beyond the per-send timeout.
func (f *pushFanout) sendAll(ctx context.Context, logger *slog.Logger, jobs []sendJob) []sendResult {
	results := make([]sendResult, len(jobs))

	var g errgroup.Group
	g.SetLimit(max(f.concurrency, 1))

	for i, job := range jobs {
		g.Go(func() error {
			sendCtx, cancel := context.WithTimeout(ctx, f.timeout)
			defer cancel()

			outcome, err := f.sender.Send(sendCtx, job.subscription, job.payload)
			if err != nil && outcome == service.SendDelivered {
				outcome = service.SendTransient
			}
			results[i] = sendResult{tag: job.tag, subscription: job.subscription, outcome: outcome, err: err}

			return nil
		})
	}

	_ = g.Wait()

	for _, r := range results {
		if f.metrics != nil {
			f.metrics.IncSend(r.outcome)
		}

		switch r.outcome {
		case service.SendGone:
			logger.Info("[Push] Subscription is gone",
				slog.String("subscription_id", r.subscription.ID),
			)
		case service.SendTransient:
			logger.Warn("[Push] Failed to send notification",
				slog.String("subscription_id", r.subscription.ID),
				slog.Any("error", r.err),
			)
		}
	}

	return results
}

// partition aggregates send results into totals
func partition(results []sendResult) fanoutTotals {
	var t fanoutTotals
	for _, r := range results {
		switch r.outcome {
		case service.SendDelivered:
			t.sent++
		case service.SendGone:
			t.gone = append(t.gone, r.subscription)
		default:
			t.transient++
		}
	}

	return t
}
