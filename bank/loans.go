package bank

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// loanScheduler tracks deferred loan grants so they can be cancelled
// when the account is closed or the session ends before the processing
// delay elapses. A grant that fires after its account is gone would
// deposit onto a record that no longer exists.
type loanScheduler struct {
	mu   sync.Mutex
	jobs map[string]*loanJob
}

type loanJob struct {
	accountID string
	timer     *time.Timer
}

func newLoanScheduler() *loanScheduler {
	return &loanScheduler{jobs: make(map[string]*loanJob)}
}

// schedule queues fn to run after delay and returns the job ID. The job
// removes itself before running.
func (l *loanScheduler) schedule(accountID string, delay time.Duration, fn func()) string {
	l.mu.Lock()
	defer l.mu.Unlock()

	id := uuid.New().String()
	job := &loanJob{accountID: accountID}
	job.timer = time.AfterFunc(delay, func() {
		if !l.take(id) {
			return
		}
		fn()
	})
	l.jobs[id] = job
	return id
}

// take claims a job for execution; it reports false when the job was
// already cancelled.
func (l *loanScheduler) take(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.jobs[id]; !ok {
		return false
	}
	delete(l.jobs, id)
	return true
}

// cancelAccount drops every pending grant for one account.
func (l *loanScheduler) cancelAccount(accountID string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for id, job := range l.jobs {
		if job.accountID == accountID {
			job.timer.Stop()
			delete(l.jobs, id)
		}
	}
}

// cancelAll drops every pending grant, used when a session ends.
func (l *loanScheduler) cancelAll() {
	l.mu.Lock()
	defer l.mu.Unlock()
	for id, job := range l.jobs {
		job.timer.Stop()
		delete(l.jobs, id)
	}
}

// pending reports the number of queued grants.
func (l *loanScheduler) pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.jobs)
}
