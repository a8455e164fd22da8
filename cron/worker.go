package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"curanest/config"
	"curanest/models"
	"curanest/utils"
)

const TypeBookingReminder = "booking:reminder"

// ReminderLeadTime is how long before the scheduled start the reminder fires.
const ReminderLeadTime = time.Hour

// ReminderPayload is the task body for a booking reminder.
type ReminderPayload struct {
	BookingID   string    `json:"bookingId"`
	PatientID   string    `json:"patientId"`
	NurseID     string    `json:"nurseId"`
	ScheduledAt time.Time `json:"scheduledAt"`
}

func redisOpts() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	}
}

// NewReminderClient returns an asynq client for enqueueing reminders.
func NewReminderClient() *asynq.Client {
	return asynq.NewClient(redisOpts())
}

// EnqueueBookingReminder schedules a reminder one hour before the booking
// starts. Bookings starting sooner than the lead time get no reminder.
func EnqueueBookingReminder(client *asynq.Client, booking models.Booking) error {
	if client == nil {
		return nil
	}
	fireAt := booking.ScheduledAt.Add(-ReminderLeadTime)
	if !fireAt.After(time.Now()) {
		return nil
	}
	payload, err := json.Marshal(ReminderPayload{
		BookingID:   booking.ID,
		PatientID:   booking.PatientID,
		NurseID:     booking.NurseID,
		ScheduledAt: booking.ScheduledAt,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal reminder payload: %w", err)
	}
	task := asynq.NewTask(TypeBookingReminder, payload)
	if _, err := client.Enqueue(task, asynq.ProcessAt(fireAt)); err != nil {
		return fmt.Errorf("failed to enqueue booking reminder: %w", err)
	}
	return nil
}

// InitReminderWorker runs the async worker in background.
func InitReminderWorker() {
	srv := asynq.NewServer(
		redisOpts(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeBookingReminder, handleReminderTask)

	go func() {
		log.Println("[ReminderWorker] starting async worker...")
		if err := srv.Run(mux); err != nil {
			log.Printf("[ReminderWorker] worker stopped: %v", err)
		}
	}()
}

func handleReminderTask(ctx context.Context, task *asynq.Task) error {
	var p ReminderPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		return fmt.Errorf("invalid reminder payload: %w", err)
	}

	// Delivery itself belongs to the messaging collaborator; the worker
	// records that the reminder came due.
	utils.GetLogger().Info("booking reminder due",
		zap.String("bookingID", p.BookingID),
		zap.String("patientID", p.PatientID),
		zap.String("nurseID", p.NurseID),
		zap.Time("scheduledAt", p.ScheduledAt))
	return nil
}
