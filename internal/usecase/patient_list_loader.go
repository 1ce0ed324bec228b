package usecase

import (
	"context"
	"sync"
	"time"

	"mediforge/internal/domain/entity"
	"mediforge/internal/domain/repository"

	"github.com/sirupsen/logrus"
)

// PatientListLoader drives one patient list view through
// Idle -> Loading -> Populated (or Failed).
//
// The delayed load is bound to the context given to Start and to Close:
// once either ends, no further state change is applied or reported.
// notify runs with the loader's lock held and must not call back into the
// loader.
type PatientListLoader struct {
	mu       sync.Mutex
	state    entity.ListState
	patients []entity.Patient
	err      error
	closed   bool
	cancel   context.CancelFunc
	done     chan struct{}

	repo   repository.PatientRepository
	delay  time.Duration
	log    *logrus.Logger
	notify func(entity.PatientListSnapshot)
}

func NewPatientListLoader(repo repository.PatientRepository, delay time.Duration, log *logrus.Logger, notify func(entity.PatientListSnapshot)) *PatientListLoader {
	if notify == nil {
		notify = func(entity.PatientListSnapshot) {}
	}
	return &PatientListLoader{
		state:  entity.ListIdle,
		done:   make(chan struct{}),
		repo:   repo,
		delay:  delay,
		log:    log,
		notify: notify,
	}
}

// Start enters Loading and schedules the load. It reports false when the
// loader already left Idle or was closed.
func (l *PatientListLoader) Start(ctx context.Context) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed || l.state != entity.ListIdle {
		return false
	}

	runCtx, cancel := context.WithCancel(ctx)
	l.cancel = cancel
	l.state = entity.ListLoading
	l.notify(l.snapshotLocked())

	go l.run(runCtx)
	return true
}

func (l *PatientListLoader) run(ctx context.Context) {
	defer close(l.done)

	timer := time.NewTimer(l.delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		l.log.Debug("Patient list load cancelled before delay elapsed")
		return
	case <-timer.C:
	}

	patients, err := l.repo.FindAll(ctx)

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed || ctx.Err() != nil {
		l.log.Debug("Dropping patient list update for a torn down view")
		return
	}

	if err != nil {
		l.log.Warnf("Failed to load patients: %+v", err)
		l.state = entity.ListFailed
		l.err = err
	} else {
		l.state = entity.ListPopulated
		l.patients = patients
	}
	l.notify(l.snapshotLocked())
}

// Close tears the view down, cancelling a pending load and waiting for it
// to exit. Safe to call multiple times.
func (l *PatientListLoader) Close() {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	l.closed = true
	cancel := l.cancel
	l.mu.Unlock()

	if cancel != nil {
		cancel()
		<-l.done
	}
}

// Done is closed once a started load has finished or been cancelled.
func (l *PatientListLoader) Done() <-chan struct{} {
	return l.done
}

func (l *PatientListLoader) State() entity.ListState {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

func (l *PatientListLoader) Snapshot() entity.PatientListSnapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.snapshotLocked()
}

func (l *PatientListLoader) snapshotLocked() entity.PatientListSnapshot {
	var patients []entity.Patient
	if l.patients != nil {
		patients = make([]entity.Patient, len(l.patients))
		copy(patients, l.patients)
	}
	return entity.PatientListSnapshot{
		State:    l.state,
		Patients: patients,
		Err:      l.err,
	}
}
