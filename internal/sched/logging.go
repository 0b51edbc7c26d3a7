package sched

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"strconv"
)

// EnableCSVLogging opens path for CSV logging of the scheduler's status
// stream and starts a goroutine draining it, adapted from the teacher's
// EnableCSVLogging/handleEvent pair. Call before Start. The file is closed
// on Destroy.
func (s *Scheduler) EnableCSVLogging(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := csv.NewWriter(f)
	if err := w.Write([]string{"timestamp", "event", "task_id", "worker_id", "reason"}); err != nil {
		f.Close()
		return err
	}
	w.Flush()

	s.csvCloser = func() {
		w.Flush()
		f.Close()
	}

	go func() {
		for ev := range s.statusCh {
			rec := []string{
				ev.Time.Format("2006-01-02T15:04:05.000Z07:00"),
				ev.Kind.String(),
				strconv.FormatUint(uint64(ev.TaskID), 10),
				strconv.Itoa(ev.WorkerID),
				ev.Reason,
			}
			w.Write(rec)
			w.Flush()
		}
	}()
	return nil
}

// LogTo starts a goroutine that writes every status event to logger, in
// the teacher's terse one-line-per-event style.
func (s *Scheduler) LogTo(logger *log.Logger) {
	if logger == nil {
		logger = log.Default()
	}
	go func() {
		for ev := range s.statusCh {
			logger.Println(formatEvent(ev))
		}
	}()
}

func formatEvent(ev StatusEvent) string {
	switch ev.Kind {
	case StatusDispatch:
		return fmt.Sprintf("[%s] task=%d worker=%d", ev.Kind, ev.TaskID, ev.WorkerID)
	case StatusBlock:
		return fmt.Sprintf("[%s] task=%d reason=%s", ev.Kind, ev.TaskID, ev.Reason)
	case StatusStop:
		return fmt.Sprintf("[%s]", ev.Kind)
	default:
		return fmt.Sprintf("[%s] task=%d", ev.Kind, ev.TaskID)
	}
}
