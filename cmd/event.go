package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/civicgrid/hr-management/internal/core/events"
	"github.com/civicgrid/hr-management/pkg/logger"
)

var eventCmd = &cobra.Command{
	Use:   "event",
	Short: "Event management commands",
	Long:  `Publish sample events to a local bus for debugging feed consumers`,
}

var publishEventCmd = &cobra.Command{
	Use:   "publish [event-type]",
	Short: "Publish a sample event",
	Long:  `Publish a sample event of the given type (role.changed, leave.decided, employee.onboarded, attendance.checked_in)`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		publishSampleEvent(args[0])
	},
}

func publishSampleEvent(eventType string) {
	lg := logger.L()
	eventBus := events.NewEventBus(lg)

	eventBus.Subscribe(eventType, func(ctx context.Context, event events.Event) error {
		lg.Info("handler received event",
			"event_id", event.EventID(),
			"event_type", event.EventType(),
			"occurred_at", event.OccurredAt())
		return nil
	})

	var event events.Event
	switch eventType {
	case events.EventTypeRoleChanged:
		event = events.NewRoleChangedEvent("sample-user", "Sample User", "sample-admin", "employee", "hr_officer")
	case events.EventTypeLeaveDecided:
		event = events.NewLeaveDecidedEvent("sample-request", "sample-user", "Sample User", "casual", "approved", "Sample Reviewer")
	case events.EventTypeEmployeeOnboarded:
		event = events.NewEmployeeOnboardedEvent("sample-user", "Sample User", "Sanitation", "Clerk")
	case events.EventTypeAttendanceCheckIn:
		event = events.NewAttendanceCheckInEvent("sample-user", "Sample User", "present", time.Now().Format("2006-01-02"))
	default:
		fmt.Printf("unknown event type: %s\n", eventType)
		return
	}

	eventBus.Publish(context.Background(), event)
	eventBus.Wait()

	fmt.Printf("published %s event %s\n", event.EventType(), event.EventID())
}

func init() {
	eventCmd.AddCommand(publishEventCmd)
}
