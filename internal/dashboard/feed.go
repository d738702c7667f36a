package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/civicgrid/hr-management/internal/core/events"
)

// FeedCapacity is how many activity entries the in-memory feed retains.
const FeedCapacity = 50

const (
	ActivityRoleChange    = "role_change"
	ActivityLeaveDecision = "leave_decision"
	ActivityOnboarding    = "onboarding"
	ActivityCheckIn       = "check_in"
)

// Activity is one line on the dashboard feed. The feed is presentational
// only; entries are lost on restart.
type Activity struct {
	ID         string    `json:"id"`
	Kind       string    `json:"kind"`
	Message    string    `json:"message"`
	OccurredAt time.Time `json:"occurred_at"`
}

// ActivityFeed is a fixed-capacity ring of recent activity fed by the event
// bus. Oldest entries are overwritten once the ring is full.
type ActivityFeed struct {
	mu      sync.Mutex
	entries []Activity
	next    int
	full    bool
	logger  *slog.Logger
}

func NewActivityFeed(logger *slog.Logger) *ActivityFeed {
	return &ActivityFeed{
		entries: make([]Activity, FeedCapacity),
		logger:  logger,
	}
}

// Register hooks the feed into the event bus.
func (f *ActivityFeed) Register(bus *events.EventBus) {
	bus.Subscribe(events.EventTypeRoleChanged, f.onRoleChanged)
	bus.Subscribe(events.EventTypeLeaveDecided, f.onLeaveDecided)
	bus.Subscribe(events.EventTypeEmployeeOnboarded, f.onEmployeeOnboarded)
	bus.Subscribe(events.EventTypeAttendanceCheckIn, f.onAttendanceCheckIn)
}

func (f *ActivityFeed) onRoleChanged(ctx context.Context, event events.Event) error {
	e, ok := event.(*events.RoleChangedEvent)
	if !ok {
		return fmt.Errorf("unexpected event payload for %s", event.EventType())
	}

	f.add(Activity{
		ID:         e.EventID(),
		Kind:       ActivityRoleChange,
		Message:    fmt.Sprintf("%s's role changed from %s to %s", e.TargetUserName, e.OldRole, e.NewRole),
		OccurredAt: e.OccurredAt(),
	})
	return nil
}

func (f *ActivityFeed) onLeaveDecided(ctx context.Context, event events.Event) error {
	e, ok := event.(*events.LeaveDecidedEvent)
	if !ok {
		return fmt.Errorf("unexpected event payload for %s", event.EventType())
	}

	f.add(Activity{
		ID:         e.EventID(),
		Kind:       ActivityLeaveDecision,
		Message:    fmt.Sprintf("%s's %s leave was %s by %s", e.UserName, e.LeaveType, e.Decision, e.ReviewedBy),
		OccurredAt: e.OccurredAt(),
	})
	return nil
}

func (f *ActivityFeed) onEmployeeOnboarded(ctx context.Context, event events.Event) error {
	e, ok := event.(*events.EmployeeOnboardedEvent)
	if !ok {
		return fmt.Errorf("unexpected event payload for %s", event.EventType())
	}

	message := fmt.Sprintf("%s joined", e.FullName)
	if e.Department != "" {
		message = fmt.Sprintf("%s joined %s", e.FullName, e.Department)
	}
	f.add(Activity{
		ID:         e.EventID(),
		Kind:       ActivityOnboarding,
		Message:    message,
		OccurredAt: e.OccurredAt(),
	})
	return nil
}

func (f *ActivityFeed) onAttendanceCheckIn(ctx context.Context, event events.Event) error {
	e, ok := event.(*events.AttendanceCheckInEvent)
	if !ok {
		return fmt.Errorf("unexpected event payload for %s", event.EventType())
	}

	f.add(Activity{
		ID:         e.EventID(),
		Kind:       ActivityCheckIn,
		Message:    fmt.Sprintf("%s checked in (%s)", e.UserName, e.Status),
		OccurredAt: e.OccurredAt(),
	})
	return nil
}

func (f *ActivityFeed) add(activity Activity) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.entries[f.next] = activity
	f.next = (f.next + 1) % FeedCapacity
	if f.next == 0 {
		f.full = true
	}
}

// Recent returns up to limit entries, newest first.
func (f *ActivityFeed) Recent(limit int) []Activity {
	if limit <= 0 || limit > FeedCapacity {
		limit = FeedCapacity
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	size := f.next
	if f.full {
		size = FeedCapacity
	}
	if limit > size {
		limit = size
	}

	out := make([]Activity, 0, limit)
	for i := 1; i <= limit; i++ {
		idx := (f.next - i + FeedCapacity) % FeedCapacity
		out = append(out, f.entries[idx])
	}
	return out
}
