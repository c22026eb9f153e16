package services

import (
	"log"
	"sync/atomic"
	"time"
)

// SchedulerService runs the daily overdue sweep. The sweep is detection only:
// it surfaces open records past their due date and never touches fine
// amounts — fines are computed once, at return time, from the final
// days-overdue count.
type SchedulerService struct {
	borrowService *BorrowService
	interval      time.Duration
	running       atomic.Bool
	stop          chan struct{}
}

func NewSchedulerService(borrowService *BorrowService, interval time.Duration) *SchedulerService {
	if interval <= 0 {
		interval = 24 * time.Hour
	}
	return &SchedulerService{
		borrowService: borrowService,
		interval:      interval,
		stop:          make(chan struct{}),
	}
}

// Start launches the periodic sweep goroutine.
func (s *SchedulerService) Start() {
	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if _, err := s.FlagOverdueRecords(); err != nil {
					// Keep the scheduler alive; the next tick retries.
					log.Printf("Error processing overdue records: %v\n", err)
				}
			case <-s.stop:
				return
			}
		}
	}()
}

// Stop terminates the sweep goroutine.
func (s *SchedulerService) Stop() {
	close(s.stop)
}

// FlagOverdueRecords scans for open records past due and logs them. A run
// that overlaps a still-active previous run is skipped.
func (s *SchedulerService) FlagOverdueRecords() (int, error) {
	if !s.running.CompareAndSwap(false, true) {
		log.Println("Overdue check already running, skipping this cycle")
		return 0, nil
	}
	defer s.running.Store(false)

	log.Println("Starting daily overdue records check...")

	records, err := s.borrowService.GetOverdueBorrowRecords(time.Now())
	if err != nil {
		return 0, err
	}

	if len(records) == 0 {
		log.Println("No overdue records found")
		return 0, nil
	}

	for _, record := range records {
		log.Printf("Flagging overdue record: Book ID %s, Borrower ID %s, Due Date: %s\n",
			record.BookId, record.BorrowerId, record.DueDate.Format("2006-01-02"))
	}

	log.Printf("Successfully processed %d overdue records\n", len(records))
	return len(records), nil
}
