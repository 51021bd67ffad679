package usecase

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/ipshopy/order-notify/internal/entity"
	"github.com/ipshopy/order-notify/internal/infra/queue"
)

type AutomateSendInput struct {
	Limit         *int    `json:"limit"`
	OrderStatusID *int    `json:"order_status_id"`
	DaysBack      *int    `json:"days_back"`
	DelaySeconds  float64 `json:"delay_seconds"`
	DryRun        bool    `json:"dry_run"`

	// Source tags the delivery events this run publishes. Empty means an
	// HTTP-triggered batch; the scheduler sets queue.SourceWorker.
	Source string `json:"-"`
}

type AutomateSendOutput struct {
	RunID       string
	OrdersFound int
	DryRun      bool
	Orders      []entity.Order
	Result      *entity.BatchResult
}

type AutomateSendUseCase struct {
	Repo     entity.OrderRepository
	Sender   *BatchSender
	Mailer   ReportMailer
	ReportTo string
}

func NewAutomateSendUseCase(repo entity.OrderRepository, sender *BatchSender, mailer ReportMailer, reportTo string) *AutomateSendUseCase {
	return &AutomateSendUseCase{
		Repo:     repo,
		Sender:   sender,
		Mailer:   mailer,
		ReportTo: reportTo,
	}
}

// Execute pulls the filtered order set and either returns it as-is (dry
// run) or drives the batch sender over it. The summary email is best
// effort and only goes out for real runs.
func (uc *AutomateSendUseCase) Execute(ctx context.Context, input AutomateSendInput) (*AutomateSendOutput, error) {
	output := &AutomateSendOutput{
		RunID:  uuid.New().String(),
		DryRun: input.DryRun,
	}

	// 1. Fetch candidates
	orders, err := uc.Repo.FindForAutomation(ctx, entity.AutomationFilter{
		Limit:         input.Limit,
		OrderStatusID: input.OrderStatusID,
		DaysBack:      input.DaysBack,
	})
	if err != nil {
		log.Printf("❌ Database error fetching automation orders: %v", err)
		return output, &TechnicalError{Code: CodeDatabaseError, Message: "Database error: " + err.Error()}
	}

	output.OrdersFound = len(orders)
	if len(orders) == 0 {
		return output, nil
	}

	// 2. Dry run stops here
	if input.DryRun {
		output.Orders = orders
		return output, nil
	}

	// 3. Serial send with pacing
	log.Printf("🚀 Automation run %s: sending to %d orders", output.RunID, len(orders))
	delay := time.Duration(input.DelaySeconds * float64(time.Second))

	source := input.Source
	if source == "" {
		source = queue.SourceBatch
	}

	result, err := uc.Sender.Run(ctx, orders, delay, source)
	if err != nil {
		return output, err
	}
	output.Result = &result

	log.Printf("✅ Automation run %s done: %d success, %d failed, %d skipped of %d",
		output.RunID, result.Success, result.Failed, result.Skipped, result.Total)

	// 4. Summary mail, when configured
	if uc.Mailer != nil && uc.ReportTo != "" {
		if err := uc.Mailer.SendBatchReport(uc.ReportTo, output.RunID, result); err != nil {
			log.Printf("⚠️ Batch report email failed: %v", err)
		}
	}

	return output, nil
}

// Preview is the fetch half of Execute: same filters, no sending.
func (uc *AutomateSendUseCase) Preview(ctx context.Context, filter entity.AutomationFilter) ([]entity.Order, error) {
	orders, err := uc.Repo.FindForAutomation(ctx, filter)
	if err != nil {
		log.Printf("❌ Database error fetching preview orders: %v", err)
		return nil, &TechnicalError{Code: CodeDatabaseError, Message: "Database error: " + err.Error()}
	}
	return orders, nil
}
