package jobs

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/robfig/cron/v3"

	"github.com/Quick-coder123/zvit/internal/config"
	"github.com/Quick-coder123/zvit/internal/logger"
	"github.com/Quick-coder123/zvit/internal/serviceiface"
)

// CronService schedules the nightly account-status reconciliation.
type CronService struct {
	cfg  map[string]interface{}
	pool *pgxpool.Pool
	cron *cron.Cron
}

func NewCronService(cfg map[string]interface{}, pool *pgxpool.Pool) serviceiface.Service {
	return &CronService{cfg: cfg, pool: pool}
}

func (s *CronService) Name() string {
	return "cron"
}

func (s *CronService) Start() error {
	schedule := config.ReconcileSchedule
	if v, ok := s.cfg["reconcile_schedule"].(string); ok && v != "" {
		schedule = v
	}
	loc, err := time.LoadLocation(config.DefaultTimeZone)
	if err != nil {
		return fmt.Errorf("load timezone: %w", err)
	}

	s.cron = cron.New(cron.WithLocation(loc))
	if _, err := s.cron.AddFunc(schedule, func() {
		if err := ReconcileAccountStatuses(context.Background(), s.pool); err != nil {
			log.Println("[ERROR] status reconciliation failed:", err)
		}
	}); err != nil {
		return fmt.Errorf("schedule reconciliation: %w", err)
	}
	s.cron.Start()
	log.Println("Cron service started — status reconciliation scheduled:", schedule)
	return nil
}

func (s *CronService) Stop() error {
	if s.cron != nil {
		s.cron.Stop()
	}
	return nil
}

// ReconcileAccountStatuses re-derives account_status for every row that is
// not under a manual override: a first deposit means active, none means
// awaiting activation. Keeps the invariant even for rows written by older
// clients that set the status by hand.
func ReconcileAccountStatuses(ctx context.Context, pool *pgxpool.Pool) error {
	tag, err := pool.Exec(ctx, `
		UPDATE zvit_table
		SET account_status = CASE
			WHEN date_first_deposit IS NOT NULL THEN 'Активний'
			ELSE 'Очікує активацію'
		END
		WHERE account_status NOT IN ('Заблокований', 'Закритий')
		  AND account_status IS DISTINCT FROM CASE
			WHEN date_first_deposit IS NOT NULL THEN 'Активний'
			ELSE 'Очікує активацію'
		END`)
	if err != nil {
		return err
	}
	if n := tag.RowsAffected(); n > 0 {
		if logger.GlobalLogger != nil {
			logger.GlobalLogger.LogAudit(fmt.Sprintf("status reconciliation updated %d records", n))
		}
	}
	return nil
}
