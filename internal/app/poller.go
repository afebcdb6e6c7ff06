// internal/app/poller.go
package app

import (
	"context"
	"fmt"
	"time"

	"homework_status_bot/internal/domain/homework"
	domainTelegram "homework_status_bot/internal/domain/telegram"
	"homework_status_bot/internal/infra/config"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Waiter blocks between two polling cycles.
type Waiter interface {
	Wait(ctx context.Context) error
}

// Poller checks the latest submission status and reports every change to one chat.
// It is not safe for concurrent use; RunForever owns all of its state.
type Poller struct {
	cfg            *config.AppConfig
	source         homework.Source
	telegramClient domainTelegram.Client
	waiter         Waiter
	logger         *logrus.Logger

	now        func() time.Time
	newCycleID func() string

	cursor       int64
	lastNotified string
}

func NewPoller(
	cfg *config.AppConfig,
	source homework.Source,
	tc domainTelegram.Client,
	waiter Waiter,
	logger *logrus.Logger,
) *Poller {
	return &Poller{
		cfg:            cfg,
		source:         source,
		telegramClient: tc,
		waiter:         waiter,
		logger:         logger,
		now:            time.Now,
		newCycleID:     uuid.NewString,
	}
}

// RunForever validates credentials and then polls until ctx is cancelled.
// Missing credentials are fatal: the error is logged at fatal level, which exits the process.
func (p *Poller) RunForever(ctx context.Context) error {
	if err := p.cfg.CheckTokens(); err != nil {
		p.logger.WithError(err).Fatal("Required environment variables are missing. Bot stopped.")
		return err // only reached when the logger's ExitFunc does not exit
	}

	p.cursor = p.now().Unix()
	p.lastNotified = ""
	p.logger.WithField("cursor", p.cursor).Info("Homework status polling started")

	for {
		p.runCycle(ctx)
		if err := p.waiter.Wait(ctx); err != nil {
			p.logger.WithError(err).Info("Homework status polling stopped")
			return nil
		}
	}
}

func (p *Poller) runCycle(ctx context.Context) {
	log := p.logger.WithFields(logrus.Fields{
		"cycle_id": p.newCycleID(),
		"cursor":   p.cursor,
	})
	log.Debug("Polling review API")

	if err := p.checkSubmissions(ctx, log); err != nil {
		p.handleFailure(ctx, log, err)
	}
}

func (p *Poller) checkSubmissions(ctx context.Context, log *logrus.Entry) error {
	raw, err := p.source.FetchSubmissions(ctx, p.cursor)
	if err != nil {
		return err
	}

	if ts, ok := homework.CurrentDate(raw); ok {
		p.advanceCursor(log, ts)
	}

	report, err := homework.ValidateReport(raw)
	if err != nil {
		return err
	}

	record, ok := report.Latest()
	if !ok {
		log.Debug("No updates: no homework changed in the polling window")
		return nil
	}

	text, err := homework.RenderStatus(record)
	if err != nil {
		return err
	}
	p.notifyIfChanged(log, text)
	return nil
}

// advanceCursor moves the cursor forward only; an older server timestamp is ignored.
func (p *Poller) advanceCursor(log *logrus.Entry, ts int64) {
	if ts <= p.cursor {
		if ts < p.cursor {
			log.WithField("current_date", ts).Warn("Review API reported a timestamp behind the cursor, keeping cursor")
		}
		return
	}
	log.WithFields(logrus.Fields{"from": p.cursor, "to": ts}).Debug("Cursor advanced")
	p.cursor = ts
}

func (p *Poller) handleFailure(ctx context.Context, log *logrus.Entry, err error) {
	if ctx.Err() != nil {
		log.WithError(err).Debug("Cycle interrupted by shutdown")
		return
	}

	kind := homework.KindOf(err)
	errLog := log.WithError(err).WithField("kind", kind.String())
	switch kind {
	case homework.KindAPI:
		errLog.Error("Review API request failed")
	case homework.KindResponse:
		errLog.Error("Review API returned an invalid report")
	case homework.KindConfiguration:
		errLog.Error("Configuration error during polling")
	case homework.KindUnknown:
		errLog.Error("Unclassified error during polling")
	}

	p.notifyIfChanged(log, fmt.Sprintf("Program failure: %v", err))
}

// notifyIfChanged sends text unless it equals the last notification.
// The text is remembered even when delivery fails, so it is never sent twice in a row.
func (p *Poller) notifyIfChanged(log *logrus.Entry, text string) {
	if text == p.lastNotified {
		log.Debug("No updates")
		return
	}
	p.notify(log, text)
	p.lastNotified = text
}

func (p *Poller) notify(log *logrus.Entry, text string) {
	log = log.WithField("chat_id", p.cfg.TelegramChatID)
	if err := p.telegramClient.SendMessage(p.cfg.TelegramChatID, text); err != nil {
		log.WithError(err).Error("Failed to send Telegram message")
		return
	}
	log.WithField("message", text).Debug("Bot sent message")
}
