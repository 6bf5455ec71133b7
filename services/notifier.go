package services

import (
	"fmt"
	"net/smtp"

	"github.com/dinebook/reservation-app/models"
	"github.com/dinebook/reservation-app/utils"
	"gorm.io/gorm"
)

// Notifier delivers reservation messages to customers. Delivery failures
// are reported to the caller but never roll back the state change that
// triggered them.
type Notifier interface {
	NotifyReminder(reservation *models.Reservation) error
	NotifyConfirmation(reservation *models.Reservation) error
}

func reminderMessage(r *models.Reservation) string {
	return fmt.Sprintf(
		"Dear %s,\n\nThis is a reminder of your reservation for %d people on %s at table %s.\n\nWe look forward to seeing you!",
		r.Customer.Name, r.PartySize, r.StartTime.Format("2006-01-02 15:04"), r.Table.Number)
}

func confirmationMessage(r *models.Reservation) string {
	return fmt.Sprintf(
		"Dear %s,\n\nYour reservation has been registered:\nDate: %s\nTable: %s\nPeople: %d\n\nWe look forward to seeing you!",
		r.Customer.Name, r.StartTime.Format("2006-01-02 15:04"), r.Table.Number, r.PartySize)
}

// LogNotifier records each notification in the database and logs it.
// It is the default when SMTP is not configured and doubles as the
// audit trail for sent mail.
type LogNotifier struct {
	DB *gorm.DB
}

func NewLogNotifier(db *gorm.DB) *LogNotifier {
	return &LogNotifier{DB: db}
}

func (n *LogNotifier) record(r *models.Reservation, kind, message string) error {
	notif := models.Notification{
		ReservationID: r.ID,
		Kind:          kind,
		Recipient:     r.Customer.Email,
		Message:       message,
	}
	if err := n.DB.Create(&notif).Error; err != nil {
		return err
	}
	utils.InfoLogger.Printf("Notification (%s) for reservation %d sent to %s", kind, r.ID, r.Customer.Email)
	return nil
}

func (n *LogNotifier) NotifyReminder(r *models.Reservation) error {
	return n.record(r, models.NotificationReminder, reminderMessage(r))
}

func (n *LogNotifier) NotifyConfirmation(r *models.Reservation) error {
	return n.record(r, models.NotificationConfirmation, confirmationMessage(r))
}

// MailNotifier sends reservation mail over SMTP and keeps the same
// database audit trail as LogNotifier.
type MailNotifier struct {
	DB   *gorm.DB
	Host string
	Port string
	From string
}

func NewMailNotifier(db *gorm.DB, host, port, from string) *MailNotifier {
	return &MailNotifier{DB: db, Host: host, Port: port, From: from}
}

func (n *MailNotifier) send(r *models.Reservation, kind, subject, message string) error {
	body := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n",
		n.From, r.Customer.Email, subject, message)

	addr := n.Host + ":" + n.Port
	if err := smtp.SendMail(addr, nil, n.From, []string{r.Customer.Email}, []byte(body)); err != nil {
		utils.ErrorLogger.Printf("Failed to send %s mail for reservation %d: %v", kind, r.ID, err)
		return err
	}

	notif := models.Notification{
		ReservationID: r.ID,
		Kind:          kind,
		Recipient:     r.Customer.Email,
		Message:       message,
	}
	return n.DB.Create(&notif).Error
}

func (n *MailNotifier) NotifyReminder(r *models.Reservation) error {
	return n.send(r, models.NotificationReminder, "Reservation Reminder", reminderMessage(r))
}

func (n *MailNotifier) NotifyConfirmation(r *models.Reservation) error {
	return n.send(r, models.NotificationConfirmation, "Reservation Confirmation", confirmationMessage(r))
}
