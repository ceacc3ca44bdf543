package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/nuevas-energias/hrcore/internal/database"
	"gorm.io/gorm"
)

// Broadcaster pushes a freshly created notification to any live
// subscriber (the websocket stream implements this).
type Broadcaster interface {
	Push(userID uint, notification database.Notification)
}

// EmailSender delivers one email. Implementations are best-effort;
// errors are logged by the caller and never propagated further.
type EmailSender interface {
	Send(to, subject, htmlBody string) error
}

// ChannelPoster posts a message to the HR operations channel.
type ChannelPoster interface {
	Post(message string) error
}

// NotificationService fans incident events out to the channels the
// deployment has configured: in-app rows, websocket pushes, email and
// the ops channel. Every channel is fire-and-forget; a delivery
// failure is logged and never reaches the operation that emitted the
// event.
type NotificationService struct {
	db          *gorm.DB
	broadcaster Broadcaster
	email       EmailSender
	channel     ChannelPoster
	portalURL   string
}

// NewNotificationService creates a notification service. The delivery
// collaborators are optional; nil simply disables that channel.
func NewNotificationService(db *gorm.DB, portalURL string) *NotificationService {
	return &NotificationService{db: db, portalURL: portalURL}
}

// SetBroadcaster wires the live push channel.
func (s *NotificationService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// SetEmailSender wires the email channel.
func (s *NotificationService) SetEmailSender(e EmailSender) {
	s.email = e
}

// SetChannelPoster wires the ops channel.
func (s *NotificationService) SetChannelPoster(c ChannelPoster) {
	s.channel = c
}

// AnnounceNewIncident notifies every implicated employee that they
// were involved in a new incident group.
func (s *NotificationService) AnnounceNewIncident(employees []database.Employee, typeLabel, groupID string, occurrence time.Time, description string) {
	link := fmt.Sprintf("/incidentes/detalle/%s/", groupID)
	message := fmt.Sprintf("Has sido involucrado en un nuevo incidente: %s.", typeLabel)

	for _, employee := range employees {
		if employee.UserID != nil {
			s.notifyUser(*employee.UserID, message, link)
		}
		if employee.Email != "" {
			subject := fmt.Sprintf("Notificación de Incidente: %s", typeLabel)
			body := incidentEmailBody(employee.FirstName, typeLabel, occurrence, description, s.portalURL+link)
			s.sendEmail(employee.Email, subject, body)
		}
	}

	s.postToChannel(fmt.Sprintf("Nuevo grupo de incidentes *%s* (%s) con %d empleado(s) involucrado(s).", typeLabel, groupID, len(employees)))
}

// AnnounceResolved notifies every implicated employee that their
// incident group was closed.
func (s *NotificationService) AnnounceResolved(employees []database.Employee, typeLabel, groupID string) {
	link := fmt.Sprintf("/incidentes/detalle/%s/", groupID)
	message := fmt.Sprintf("El incidente '%s' ha sido resuelto.", typeLabel)

	for _, employee := range employees {
		if employee.UserID != nil {
			s.notifyUser(*employee.UserID, message, link)
		}
	}

	s.postToChannel(fmt.Sprintf("Grupo de incidentes *%s* (%s) resuelto.", typeLabel, groupID))
}

// notifyUser stores an in-app notification and pushes it to live
// subscribers. Failures are logged only.
func (s *NotificationService) notifyUser(userID uint, message, link string) {
	notification := database.Notification{
		UserID:  userID,
		Message: message,
		Link:    link,
	}
	if err := s.db.Create(&notification).Error; err != nil {
		log.Printf("NotificationService: failed to store notification for user %d: %v", userID, err)
		return
	}
	if s.broadcaster != nil {
		s.broadcaster.Push(userID, notification)
	}
}

func (s *NotificationService) sendEmail(to, subject, body string) {
	if s.email == nil {
		return
	}
	go func() {
		if err := s.email.Send(to, subject, body); err != nil {
			log.Printf("NotificationService: failed to send email to %s: %v", to, err)
		} else {
			log.Printf("NotificationService: incident email sent to %s", to)
		}
	}()
}

func (s *NotificationService) postToChannel(message string) {
	if s.channel == nil {
		return
	}
	go func() {
		if err := s.channel.Post(message); err != nil {
			log.Printf("NotificationService: failed to post to ops channel: %v", err)
		}
	}()
}

// ListForUser returns a page of the user's notifications, newest
// first.
func (s *NotificationService) ListForUser(userID uint, offset, limit int) ([]database.Notification, int64, error) {
	var total int64
	if err := s.db.Model(&database.Notification{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var notifications []database.Notification
	err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Offset(offset).Limit(limit).
		Find(&notifications).Error
	if err != nil {
		return nil, 0, err
	}
	return notifications, total, nil
}

// MarkRead marks one of the user's notifications as read.
func (s *NotificationService) MarkRead(userID, notificationID uint) error {
	var notification database.Notification
	err := s.db.Where("id = ? AND user_id = ?", notificationID, userID).First(&notification).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotificationNotFound
	}
	if err != nil {
		return err
	}
	return s.db.Model(&notification).Update("read", true).Error
}

// incidentEmailBody renders the incident notification email.
func incidentEmailBody(firstName, typeLabel string, occurrence time.Time, description, detailURL string) string {
	return fmt.Sprintf(`<html><body>
<p>Hola %s,</p>
<p>Has sido involucrado en un nuevo incidente: <strong>%s</strong>.</p>
<p>Fecha de ocurrencia: %s</p>
<p>Descripción: %s</p>
<p><a href="%s">Ver detalle del incidente</a></p>
</body></html>`, firstName, typeLabel, occurrence.Format("02/01/2006"), description, detailURL)
}
