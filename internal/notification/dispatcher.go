// Package notification decouples outbound candidate mail from the request
// path. Messages go through a buffered queue served by a single worker
// goroutine; delivery is best effort and failures are only logged.
package notification

import (
	"log/slog"
	"sync"

	"talentmatch-backend/internal/domain"
	"talentmatch-backend/pkg/email"
)

// Mailer is the delivery backend, satisfied by pkg/email.Mailer.
type Mailer interface {
	SendConfirmation(to string, data email.ConfirmationData) error
	SendMessage(to, subject string, data email.MessageData) error
}

type task struct {
	kind string
	send func() error
}

type Dispatcher struct {
	mailer Mailer
	log    *slog.Logger
	queue  chan task
	wg     sync.WaitGroup

	closeOnce sync.Once
}

// NewDispatcher starts the worker goroutine. queueSize bounds how many
// pending messages may pile up before new ones are dropped.
func NewDispatcher(mailer Mailer, queueSize int, log *slog.Logger) *Dispatcher {
	d := &Dispatcher{
		mailer: mailer,
		log:    log,
		queue:  make(chan task, queueSize),
	}
	d.wg.Add(1)
	go d.run()
	return d
}

func (d *Dispatcher) run() {
	defer d.wg.Done()
	for t := range d.queue {
		if err := t.send(); err != nil {
			d.log.Error("notification delivery failed", "kind", t.kind, "error", err)
		}
	}
}

// enqueue never blocks: when the queue is full the message is dropped and
// the drop is logged.
func (d *Dispatcher) enqueue(t task) {
	select {
	case d.queue <- t:
	default:
		d.log.Error("notification queue full, message dropped", "kind", t.kind)
	}
}

// CandidatureConfirmation queues the confirmation email sent after a
// candidature is created.
func (d *Dispatcher) CandidatureConfirmation(c *domain.Candidate, job *domain.Job) {
	to := c.Email
	data := email.ConfirmationData{
		CandidateName: c.Name,
		JobTitle:      job.Title,
		Department:    job.Department,
	}
	d.enqueue(task{
		kind: "candidature_confirmation",
		send: func() error { return d.mailer.SendConfirmation(to, data) },
	})
}

// CandidateMessage queues a recruiter-authored message.
func (d *Dispatcher) CandidateMessage(c *domain.Candidate, subject, body string) {
	to := c.Email
	data := email.MessageData{CandidateName: c.Name, Body: body}
	d.enqueue(task{
		kind: "candidate_message",
		send: func() error { return d.mailer.SendMessage(to, subject, data) },
	})
}

// Close stops accepting messages and waits for the worker to drain the
// queue. Called on shutdown.
func (d *Dispatcher) Close() {
	d.closeOnce.Do(func() {
		close(d.queue)
	})
	d.wg.Wait()
}

var _ domain.Notifier = (*Dispatcher)(nil)
