package validation

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/gravadigital/wedding-api/internal/domain/guest"
	"github.com/gravadigital/wedding-api/internal/domain/rsvp"
)

// Longitudes máximas aceptadas por campo
const (
	MaxNameLength    = 150
	MaxEmailLength   = 254
	MaxPhoneLength   = 40
	MaxMessageLength = 2000
)

// ValidateRequired valida que un campo no esté vacío
func ValidateRequired(value, fieldName string) error {
	if strings.TrimSpace(value) == "" {
		return errors.New(fieldName + " is required")
	}
	return nil
}

// ValidateMaxLength valida la longitud máxima de un string
func ValidateMaxLength(value string, maxLength int, fieldName string) error {
	if utf8.RuneCountInString(value) > maxLength {
		return fmt.Errorf("%s must be at most %d characters long", fieldName, maxLength)
	}
	return nil
}

// ValidateUUID valida que un string sea un UUID válido
func ValidateUUID(value, fieldName string) (uuid.UUID, error) {
	if err := ValidateRequired(value, fieldName); err != nil {
		return uuid.Nil, err
	}
	id, err := uuid.Parse(strings.TrimSpace(value))
	if err != nil {
		return uuid.Nil, errors.New(fieldName + " must be a valid UUID")
	}
	return id, nil
}

// ValidateEmail valida formato básico de email
func ValidateEmail(email string) error {
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return errors.New("email must have a valid format")
	}
	return nil
}

// GuestValidation contiene validaciones específicas para credenciales
type GuestValidation struct{}

// ValidatePassword valida la contraseña de un invitado
func (v GuestValidation) ValidatePassword(password string) error {
	return ValidateRequired(password, "password")
}

// ValidateGroup valida y convierte el grupo de un invitado
func (v GuestValidation) ValidateGroup(group string) (guest.Group, error) {
	if err := ValidateRequired(group, "guest_group"); err != nil {
		return "", err
	}
	g, ok := guest.ParseGroup(group)
	if !ok {
		return "", fmt.Errorf("guest_group must be one of friends, family or admin")
	}
	return g, nil
}

// ValidateGuestName valida el nombre opcional de un invitado
func (v GuestValidation) ValidateGuestName(name *string) error {
	if name == nil {
		return nil
	}
	return ValidateMaxLength(*name, MaxNameLength, "guest_name")
}

// RSVPValidation contiene validaciones específicas para confirmaciones
type RSVPValidation struct{}

// ValidateContact valida nombre, email y teléfono
func (v RSVPValidation) ValidateContact(name, email, phone string) error {
	if err := ValidateRequired(name, "name"); err != nil {
		return err
	}
	if err := ValidateMaxLength(name, MaxNameLength, "name"); err != nil {
		return err
	}
	if err := ValidateRequired(email, "email"); err != nil {
		return err
	}
	if err := ValidateMaxLength(email, MaxEmailLength, "email"); err != nil {
		return err
	}
	if err := ValidateEmail(email); err != nil {
		return err
	}
	if err := ValidateRequired(phone, "phone"); err != nil {
		return err
	}
	return ValidateMaxLength(phone, MaxPhoneLength, "phone")
}

// ValidateAttendance valida y convierte la respuesta de asistencia
func (v RSVPValidation) ValidateAttendance(attendance string) (rsvp.Attendance, error) {
	if err := ValidateRequired(attendance, "attendance"); err != nil {
		return "", err
	}
	a, ok := rsvp.ParseAttendance(attendance)
	if !ok {
		return "", errors.New("attendance must be yes or no")
	}
	return a, nil
}

// ValidateMessage valida el mensaje opcional
func (v RSVPValidation) ValidateMessage(message string) error {
	return ValidateMaxLength(message, MaxMessageLength, "message")
}
