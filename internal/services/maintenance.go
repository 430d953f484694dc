package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/gravadigital/wedding-api/internal/domain/rsvp"
	"github.com/gravadigital/wedding-api/internal/logger"
	"github.com/gravadigital/wedding-api/internal/storage/postgres"
)

// MaintenanceService holds operator-only operations that have no HTTP route
type MaintenanceService struct {
	rsvps postgres.RSVPRepository
	log   *log.Logger
}

func NewMaintenanceService(rsvps postgres.RSVPRepository) *MaintenanceService {
	return &MaintenanceService{rsvps: rsvps, log: logger.Service("maintenance")}
}

// PurgeResult lists what a purge removed
type PurgeResult struct {
	ByID    bool
	Deleted []*rsvp.Submission
}

// Count returns how many submissions were removed
func (r PurgeResult) Count() int {
	return len(r.Deleted)
}

// PurgeRSVP deletes submissions matching target. A UUID target deletes that
// row; anything else deletes every submission with that email and then every
// submission with that guest name.
func (s *MaintenanceService) PurgeRSVP(ctx context.Context, target string) (PurgeResult, error) {
	target = strings.TrimSpace(target)
	if target == "" {
		return PurgeResult{}, fmt.Errorf("target cannot be empty")
	}

	if id, err := uuid.Parse(target); err == nil {
		deleted, err := s.rsvps.Delete(ctx, id)
		if err != nil {
			return PurgeResult{}, fmt.Errorf("failed to delete RSVP %s: %w", id, err)
		}
		if !deleted {
			return PurgeResult{ByID: true}, nil
		}
		s.log.Info("Deleted RSVP", "rsvp_id", id)
		return PurgeResult{ByID: true, Deleted: []*rsvp.Submission{{ID: id}}}, nil
	}

	var result PurgeResult
	finders := []struct {
		field string
		find  func(context.Context, string) ([]*rsvp.Submission, error)
	}{
		{"email", s.rsvps.FindByEmail},
		{"guest_name", s.rsvps.FindByGuestName},
	}

	for _, f := range finders {
		matches, err := f.find(ctx, target)
		if err != nil {
			return result, fmt.Errorf("failed to look up RSVPs by %s: %w", f.field, err)
		}
		for _, sub := range matches {
			deleted, err := s.rsvps.Delete(ctx, sub.ID)
			if err != nil {
				return result, fmt.Errorf("failed to delete RSVP %s: %w", sub.ID, err)
			}
			if deleted {
				s.log.Info("Deleted RSVP", "rsvp_id", sub.ID, "matched", f.field)
				result.Deleted = append(result.Deleted, sub)
			}
		}
	}

	return result, nil
}
