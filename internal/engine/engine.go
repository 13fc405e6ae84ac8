// Package engine is the notification core: it periodically decides which
// subscriptions and alerts are due, fetches one quote per distinct
// (coin, currency) pair, dispatches chat messages and advances per-record
// timestamps. Storage, quotes and delivery are collaborators behind
// interfaces; the engine holds no state between passes.
package engine

import (
	"context"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/hatem4830/cryptopulse/internal/market"
	"github.com/hatem4830/cryptopulse/internal/types"
)

// alertCooldownSeconds is the minimum gap between two firings of the same
// alert. It is a hard constant, independent of the scheduler cadence, so an
// alert oscillating around its threshold cannot fire on consecutive passes.
const alertCooldownSeconds = 60

// Store is the record store the engine reads and updates. Updates are
// idempotent timestamp writes; no transaction spans a pass.
type Store interface {
	ListSubscriptions() ([]types.Subscription, error)
	ListEnabledAlerts() ([]types.Alert, error)
	MarkSubscriptionSent(id int64, sentAt int64) error
	MarkAlertTriggered(id int64, triggeredAt int64) error
}

// QuoteClient provides current prices. A false second return means the
// provider has no data for the pair; that is a normal outcome, not an error.
type QuoteClient interface {
	Price(coinID, currency string) (float64, bool)
	Market(coinID, currency string) (*market.Info, bool)
}

// Notifier delivers a message to a chat. Failures are non-fatal to the pass.
type Notifier interface {
	Notify(chatID int64, text string) error
}

// Config tunes the scheduler. TickInterval bounds how often due checks run;
// the actual notification rate is governed by each record's own interval.
type Config struct {
	TickInterval          time.Duration
	DefaultUpdateInterval int64 // seconds, applied when a record carries none
}

// Engine drives the scheduling passes.
type Engine struct {
	store    Store
	quotes   QuoteClient
	notifier Notifier
	cfg      Config
}

func New(store Store, quotes QuoteClient, notifier Notifier, cfg Config) *Engine {
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = 5 * time.Second
	}
	if cfg.DefaultUpdateInterval <= 0 {
		cfg.DefaultUpdateInterval = 300
	}
	return &Engine{store: store, quotes: quotes, notifier: notifier, cfg: cfg}
}

// PassResult captures what one pass did. The loop logs it and moves on;
// nothing in a pass is fatal to the process.
type PassResult struct {
	Dispatched       int
	Triggered        int
	SkippedPairs     int
	DeliveryFailures int
	Errors           []error
}

// Run executes passes on a fixed cadence until ctx is cancelled. A pass runs
// to completion before the next starts; cancellation is observed between
// passes, so shutdown latency is bounded by the cadence.
func (e *Engine) Run(ctx context.Context) {
	log.Infof("scheduler started, cadence %s", e.cfg.TickInterval)

	ticker := time.NewTicker(e.cfg.TickInterval)
	defer ticker.Stop()

	for {
		res := e.safePass(time.Now().Unix())
		passesTotal.Inc()

		for _, err := range res.Errors {
			log.Errorf("pass error: %v", err)
		}
		if log.IsLevelEnabled(log.DebugLevel) {
			log.Debug(spew.Sdump(res))
		}

		select {
		case <-ctx.Done():
			log.Info("scheduler stopped")
			return
		case <-ticker.C:
		}
	}
}

// safePass shields the loop from anything a pass might panic on.
func (e *Engine) safePass(now int64) (res PassResult) {
	defer func() {
		if r := recover(); r != nil {
			log.Errorf("recovered from panic in pass: %v", r)
			res.Errors = append(res.Errors, errors.Errorf("pass panicked: %v", r))
		}
	}()
	return e.Pass(now)
}

// Pass runs one complete round: due-set selection, batched quote fetches,
// subscription dispatch and alert evaluation. now is captured once by the
// caller; every timestamp written during the pass uses it.
func (e *Engine) Pass(now int64) PassResult {
	var res PassResult

	subs, err := e.store.ListSubscriptions()
	if err != nil {
		res.Errors = append(res.Errors, errors.Wrap(err, "list subscriptions"))
	} else {
		for pair, due := range DueSubscriptions(subs, now, e.cfg.DefaultUpdateInterval) {
			e.dispatchBucket(pair, due, now, &res)
		}
	}

	alerts, err := e.store.ListEnabledAlerts()
	if err != nil {
		res.Errors = append(res.Errors, errors.Wrap(err, "list alerts"))
	} else {
		for pair, group := range GroupAlerts(alerts) {
			e.evaluateBucket(pair, group, now, &res)
		}
	}

	return res
}

func (e *Engine) dispatchBucket(p Pair, due []types.Subscription, now int64, res *PassResult) {
	quoteFetches.Inc()
	price, ok := e.quotes.Price(p.CoinID, p.Currency)
	if !ok {
		log.Debugf("no price for %s/%s, skipping %d subscriptions", p.CoinID, p.Currency, len(due))
		res.SkippedPairs++
		skippedPairs.Inc()
		return
	}
	info, _ := e.quotes.Market(p.CoinID, p.Currency)

	text := SubscriptionMessage(p, price, info)
	for _, s := range due {
		if err := e.notifier.Notify(s.ChatID, text); err != nil {
			// last_sent still advances below: one missed interval beats a
			// retry storm against a broken chat.
			log.Errorf("could not deliver update to chat %d: %v", s.ChatID, err)
			res.DeliveryFailures++
		}
		if err := e.store.MarkSubscriptionSent(s.ID, now); err != nil {
			res.Errors = append(res.Errors, errors.Wrapf(err, "mark subscription %d sent", s.ID))
			continue
		}
		res.Dispatched++
		notificationsSent.Inc()
	}
}

func (e *Engine) evaluateBucket(p Pair, group []types.Alert, now int64, res *PassResult) {
	quoteFetches.Inc()
	price, ok := e.quotes.Price(p.CoinID, p.Currency)
	if !ok {
		log.Debugf("no price for %s/%s, skipping %d alerts", p.CoinID, p.Currency, len(group))
		res.SkippedPairs++
		skippedPairs.Inc()
		return
	}
	info, _ := e.quotes.Market(p.CoinID, p.Currency)

	for _, a := range group {
		if !ShouldTrigger(a, price, now) {
			continue
		}

		if err := e.notifier.Notify(a.ChatID, AlertMessage(a, price, info)); err != nil {
			log.Errorf("could not deliver alert %d to chat %d: %v", a.ID, a.ChatID, err)
			res.DeliveryFailures++
		}
		if err := e.store.MarkAlertTriggered(a.ID, now); err != nil {
			res.Errors = append(res.Errors, errors.Wrapf(err, "mark alert %d triggered", a.ID))
			continue
		}
		res.Triggered++
		alertsTriggered.Inc()
	}
}
