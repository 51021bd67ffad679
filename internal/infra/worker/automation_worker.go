package worker

import (
	"context"
	"log"
	"time"

	"github.com/ipshopy/order-notify/internal/infra/queue"
	"github.com/ipshopy/order-notify/internal/usecase"
)

// AutomationWorker re-runs the batch automation on a fixed interval so
// notifications go out without anyone hitting the HTTP endpoint. Each
// tick is one full serial run; ticks never overlap because the run
// blocks the loop.
type AutomationWorker struct {
	uc           *usecase.AutomateSendUseCase
	tickInterval time.Duration
	daysBack     int
}

func NewAutomationWorker(uc *usecase.AutomateSendUseCase, tickInterval time.Duration, daysBack int) *AutomationWorker {
	return &AutomationWorker{
		uc:           uc,
		tickInterval: tickInterval,
		daysBack:     daysBack,
	}
}

func (w *AutomationWorker) Start(ctx context.Context) {
	log.Printf("🕒 Automation worker started (every %s, last %d days)", w.tickInterval, w.daysBack)

	ticker := time.NewTicker(w.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("⚠️ Automation worker stopped")
			return
		case <-ticker.C:
			w.runOnce(ctx)
		}
	}
}

func (w *AutomationWorker) runOnce(ctx context.Context) {
	daysBack := w.daysBack

	output, err := w.uc.Execute(ctx, usecase.AutomateSendInput{
		DaysBack:     &daysBack,
		DelaySeconds: 1,
		Source:       queue.SourceWorker,
	})
	if err != nil {
		log.Printf("❌ Scheduled automation run failed: %v", err)
		return
	}

	if output.OrdersFound == 0 {
		return
	}
	if output.Result != nil {
		log.Printf("✅ Scheduled run %s: %d/%d sent", output.RunID, output.Result.Success, output.Result.Total)
	}
}
