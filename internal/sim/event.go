package sim

import (
	"container/heap"
	"fmt"
	"math"
)

// ActionKind dispatches a popped event to its handler.
type ActionKind int

const (
	ActionHunterAttack ActionKind = iota
	ActionEnemyAttack
	ActionBossSpecial
	ActionSubAttack
	ActionRegen
)

func (k ActionKind) String() string {
	switch k {
	case ActionHunterAttack:
		return "hunter_attack"
	case ActionEnemyAttack:
		return "enemy_attack"
	case ActionBossSpecial:
		return "boss_special"
	case ActionSubAttack:
		return "sub_attack"
	case ActionRegen:
		return "regen"
	default:
		return fmt.Sprintf("ActionKind(%d)", int(k))
	}
}

// Tie-break priorities for events sharing a timestamp. Triggered
// sub-attacks resolve before the next primary action; regen always goes
// last. These values are a correctness contract: changing them changes
// simulation outcomes.
const (
	prioSubAttack    = 0
	prioHunterAttack = 1
	prioEnemyAttack  = 2
	prioBossSpecial  = 2
	prioRegen        = 3
)

// Event is a scheduled action. The total order is (Time, Priority, seq):
// seq is a monotonic insertion counter so events that tie on both time and
// priority resolve in insertion order instead of heap-internal order.
type Event struct {
	Time     float64
	Priority int
	Kind     ActionKind
	seq      uint64
}

// eventQueue is a min-heap of pending events.
type eventQueue struct {
	events  []Event
	nextSeq uint64
}

func newEventQueue() *eventQueue {
	return &eventQueue{}
}

func (q *eventQueue) Len() int { return len(q.events) }

func (q *eventQueue) Less(i, j int) bool {
	a, b := q.events[i], q.events[j]
	if a.Time != b.Time {
		return a.Time < b.Time
	}
	if a.Priority != b.Priority {
		return a.Priority < b.Priority
	}
	return a.seq < b.seq
}

func (q *eventQueue) Swap(i, j int) { q.events[i], q.events[j] = q.events[j], q.events[i] }

func (q *eventQueue) Push(x any) { q.events = append(q.events, x.(Event)) }

func (q *eventQueue) Pop() any {
	old := q.events
	n := len(old)
	ev := old[n-1]
	q.events = old[:n-1]
	return ev
}

// roundTime truncates timestamps to 3 decimal places before insertion so
// accumulated float drift cannot produce spuriously-unordered
// near-duplicate timestamps.
func roundTime(t float64) float64 {
	return math.Round(t*1000) / 1000
}

// Schedule inserts an event at the rounded timestamp.
func (q *eventQueue) Schedule(t float64, priority int, kind ActionKind) {
	ev := Event{Time: roundTime(t), Priority: priority, Kind: kind, seq: q.nextSeq}
	q.nextSeq++
	heap.Push(q, ev)
}

// PopNext removes and returns the earliest pending event.
func (q *eventQueue) PopNext() Event {
	return heap.Pop(q).(Event)
}

// Delay pushes the queued event of the given kind later by d. Later stuns
// are additive delays on the same event, not replacements. No-op if no
// event of that kind is pending.
func (q *eventQueue) Delay(kind ActionKind, d float64) {
	for i := range q.events {
		if q.events[i].Kind == kind {
			q.events[i].Time = roundTime(q.events[i].Time + d)
			heap.Fix(q, i)
			return
		}
	}
}
