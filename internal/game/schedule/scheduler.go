package schedule

import (
	"container/heap"
	"fmt"

	"go.uber.org/zap"
)

// WorldOwner marks events that belong to the simulation itself rather than
// to any unit. World-owned events are exempt from owner cancellation, which
// is what lets in-flight projectiles and highlight cleanups outlive the
// unit that caused them.
const WorldOwner = -1

// Event is a pending simulation action: a command due at a tick, owned by a
// unit id (or WorldOwner).
type Event struct {
	Tick    int64
	OwnerID int
	Command Command
}

// item wraps an Event with the bookkeeping the queue needs. Cancelled items
// stay in the heap as tombstones and are discarded when they surface.
type item struct {
	ev        Event
	seq       uint64
	cancelled bool
}

// queue implements heap.Interface ordered by due tick ascending, then by
// insertion sequence, so equal-tick events fire in the order they were
// scheduled.
type queue []*item

func (q queue) Len() int { return len(q) }

func (q queue) Less(i, j int) bool {
	if q[i].ev.Tick != q[j].ev.Tick {
		return q[i].ev.Tick < q[j].ev.Tick
	}
	return q[i].seq < q[j].seq
}

func (q queue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *queue) Push(x any) { *q = append(*q, x.(*item)) }

func (q *queue) Pop() any {
	old := *q
	n := len(old)
	it := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return it
}

// Scheduler is the priority event queue for the simulation. It is owned by
// the engine loop and is not safe for concurrent use.
//
// Invariant: no event is delivered before its due tick; equal-tick events
// are delivered in scheduling order; after CancelOwned(id) no event owned
// by id is ever delivered.
type Scheduler struct {
	clock  *Clock
	logger *zap.Logger
	q      queue
	owners map[int]map[*item]struct{}
	seq    uint64
	live   int
}

// NewScheduler creates an empty Scheduler bound to clock.
//
// Precondition: clock and logger must be non-nil.
func NewScheduler(clock *Clock, logger *zap.Logger) *Scheduler {
	if clock == nil {
		panic("schedule: NewScheduler: clock must not be nil")
	}
	if logger == nil {
		panic("schedule: NewScheduler: logger must not be nil")
	}
	return &Scheduler{
		clock:  clock,
		logger: logger,
		owners: make(map[int]map[*item]struct{}),
	}
}

// Schedule queues cmd to run at the given tick under the given owner.
// Scheduling at the current tick is legal; the event fires during the
// current drain. Scheduling before the current tick is a caller contract
// breach.
//
// Precondition: tick >= clock.Now(); cmd must be non-nil.
func (s *Scheduler) Schedule(tick int64, ownerID int, cmd Command) {
	if cmd == nil {
		panic("schedule: Scheduler.Schedule: precondition violated: cmd must not be nil")
	}
	if now := s.clock.Now(); tick < now {
		panic(fmt.Sprintf(
			"schedule: Scheduler.Schedule: precondition violated: tick %d is before current tick %d (command %s)",
			tick, now, cmd.CommandName()))
	}
	it := &item{
		ev:  Event{Tick: tick, OwnerID: ownerID, Command: cmd},
		seq: s.seq,
	}
	s.seq++
	heap.Push(&s.q, it)
	s.live++
	if ownerID != WorldOwner {
		byOwner, ok := s.owners[ownerID]
		if !ok {
			byOwner = make(map[*item]struct{})
			s.owners[ownerID] = byOwner
		}
		byOwner[it] = struct{}{}
	}
	s.logger.Debug("event scheduled",
		zap.Int64("tick", tick),
		zap.Int("owner", ownerID),
		zap.String("command", cmd.CommandName()),
	)
}

// ScheduleAfter queues cmd to run delay ticks from now.
//
// Precondition: delay >= 0.
func (s *Scheduler) ScheduleAfter(delay int64, ownerID int, cmd Command) {
	s.Schedule(s.clock.Now()+delay, ownerID, cmd)
}

// CancelOwned removes every pending event owned by ownerID and returns how
// many were removed. The removal is atomic with respect to the simulation
// step: once CancelOwned returns, no later drain can deliver an event with
// that owner. World-owned events cannot be cancelled; CancelOwned(WorldOwner)
// is a no-op returning 0.
func (s *Scheduler) CancelOwned(ownerID int) int {
	if ownerID == WorldOwner {
		return 0
	}
	byOwner := s.owners[ownerID]
	if len(byOwner) == 0 {
		return 0
	}
	cancelled := 0
	for it := range byOwner {
		it.cancelled = true
		cancelled++
	}
	delete(s.owners, ownerID)
	s.live -= cancelled
	s.logger.Debug("owner events cancelled",
		zap.Int("owner", ownerID),
		zap.Int("count", cancelled),
	)
	return cancelled
}

// DrainDue delivers, in tick-then-FIFO order, every live event whose due
// tick is <= now, removing each from the queue before running it. The heap
// is re-examined after every delivery, so events scheduled by run for a
// tick <= now fire in the same drain. Tombstoned events are discarded
// silently.
//
// Precondition: run must be non-nil.
func (s *Scheduler) DrainDue(now int64, run func(Event)) {
	if run == nil {
		panic("schedule: Scheduler.DrainDue: precondition violated: run must not be nil")
	}
	for len(s.q) > 0 {
		top := s.q[0]
		if top.cancelled {
			heap.Pop(&s.q)
			continue
		}
		if top.ev.Tick > now {
			return
		}
		heap.Pop(&s.q)
		s.live--
		if top.ev.OwnerID != WorldOwner {
			if byOwner, ok := s.owners[top.ev.OwnerID]; ok {
				delete(byOwner, top)
				if len(byOwner) == 0 {
					delete(s.owners, top.ev.OwnerID)
				}
			}
		}
		run(top.ev)
	}
}

// Len returns the number of live (not cancelled, not yet delivered) events.
func (s *Scheduler) Len() int {
	return s.live
}

// PendingFor returns the number of live events owned by ownerID.
//
// Postcondition: PendingFor(id) == 0 immediately after CancelOwned(id).
func (s *Scheduler) PendingFor(ownerID int) int {
	return len(s.owners[ownerID])
}
