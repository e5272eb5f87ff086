package reminders

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/lex4u/BSM-SchedulingService/internal/config"
	"github.com/lex4u/BSM-SchedulingService/internal/domain"
)

// Scheduler рассылает WhatsApp напоминания о завтрашних записях по cron
// расписанию. Остановка через Stop ждёт завершения запущенной рассылки.
type Scheduler struct {
	cron            *cron.Cron
	twilioClient    *twilio.RestClient
	fromNumber      string
	schedule        string
	appointmentRepo AppointmentRepository
	directoryRepo   DirectoryRepository
	timeProvider    TimeProvider
	logger          Logger
}

// NewScheduler создает новый планировщик напоминаний
func NewScheduler(
	cfg config.RemindersConfig,
	appointmentRepo AppointmentRepository,
	directoryRepo DirectoryRepository,
	timeProvider TimeProvider,
	logger Logger,
) *Scheduler {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.AccountSID,
		Password: cfg.AuthToken,
	})

	return &Scheduler{
		cron:            cron.New(),
		twilioClient:    client,
		fromNumber:      cfg.FromNumber,
		schedule:        cfg.Schedule,
		appointmentRepo: appointmentRepo,
		directoryRepo:   directoryRepo,
		timeProvider:    timeProvider,
		logger:          logger,
	}
}

// Start регистрирует cron задачу и запускает планировщик
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.schedule, s.sendTomorrowReminders); err != nil {
		return fmt.Errorf("register reminders cron job: %w", err)
	}

	s.cron.Start()
	s.logger.Info("Reminders scheduler started with schedule %q", s.schedule)
	return nil
}

// Stop останавливает планировщик и ждёт завершения запущенной рассылки
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.logger.Info("Reminders scheduler stopped")
}

// sendTomorrowReminders обходит календари активных мастеров на завтра и
// отправляет напоминание каждому клиенту с номером телефона
func (s *Scheduler) sendTomorrowReminders() {
	ctx := context.Background()
	tomorrow := s.timeProvider.Now().AddDate(0, 0, 1)

	s.logger.Info("Reminders: processing appointments for %s", tomorrow.Format(domain.DateFormat))

	staffList, err := s.directoryRepo.ListActiveStaff(ctx)
	if err != nil {
		s.logger.Error("Reminders: failed to list active staff: %v", err)
		return
	}

	sent := 0
	for _, staff := range staffList {
		appointments, err := s.appointmentRepo.GetByStaffDay(ctx, domain.StaffDayFilter{
			StaffID: staff.ID,
			Date:    tomorrow,
		})
		if err != nil {
			s.logger.Error("Reminders: failed to get appointments for staff=%d: %v", staff.ID, err)
			continue
		}

		for _, appt := range appointments {
			if s.remindAppointment(ctx, appt, staff) {
				sent++
			}
		}
	}

	s.logger.Info("Reminders: sent %d reminders for %s", sent, tomorrow.Format(domain.DateFormat))
}

// remindAppointment отправляет напоминание по одной записи.
// Записи без клиента с номером телефона молча пропускаются.
func (s *Scheduler) remindAppointment(ctx context.Context, appt *domain.Appointment, staff *domain.Staff) bool {
	// Напоминаем только о записях, ожидающих клиента
	if appt.Status != domain.StatusScheduled && appt.Status != domain.StatusConfirmed {
		return false
	}

	client, err := s.directoryRepo.GetClientByID(ctx, appt.ClientID)
	if err != nil {
		s.logger.Warn("Reminders: failed to get client id=%d for appointment id=%d: %v",
			appt.ClientID, appt.ID, err)
		return false
	}

	if client.Phone == nil || *client.Phone == "" {
		return false
	}

	message := fmt.Sprintf("Напоминание: завтра, %s в %s, вы записаны на услугу %q к мастеру %s.",
		appt.Date.Format("02.01.2006"), appt.StartTime, appt.ServiceName, staff.Name)

	if err := s.send(*client.Phone, message); err != nil {
		s.logger.Error("Reminders: failed to send reminder for appointment id=%d: %v", appt.ID, err)
		return false
	}

	// Пауза между сообщениями, чтобы не упереться в rate limit Twilio
	time.Sleep(100 * time.Millisecond)
	return true
}

// send отправляет WhatsApp сообщение через Twilio
func (s *Scheduler) send(to, body string) error {
	if !strings.HasPrefix(to, "whatsapp:") {
		to = "whatsapp:" + to
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(s.fromNumber)
	params.SetBody(body)

	_, err := s.twilioClient.Api.CreateMessage(params)
	return err
}
