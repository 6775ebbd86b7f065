package service

import (
	"context"
	"time"

	"followup_backend/internal/leads/digest"
	"followup_backend/internal/leads/domain"
	"followup_backend/internal/leads/transport"

	"github.com/google/uuid"
)

// BuildDigest computes today's digest from the current lead set.
func (s *Service) BuildDigest(ctx context.Context) (digest.Digest, error) {
	return s.buildDigestAt(ctx, s.evaluationTime())
}

func (s *Service) buildDigestAt(ctx context.Context, now time.Time) (digest.Digest, error) {
	leads, err := s.repo.List(ctx)
	if err != nil {
		return digest.Digest{}, err
	}

	views := domain.Views()
	d := digest.Digest{
		Date:        domain.DateOf(now).String(),
		GeneratedAt: now,
		Counts:      make(map[string]int, len(views)),
		DueToday:    []uuid.UUID{},
		Overdue:     []uuid.UUID{},
	}
	for _, view := range views {
		d.Counts[string(view)] = 0
	}

	for _, lead := range leads {
		classification, _ := classifyLead(lead, now)
		for _, view := range views {
			if view.Matches(classification) {
				d.Counts[string(view)]++
			}
		}
		switch {
		case domain.ViewDueToday.Matches(classification):
			d.DueToday = append(d.DueToday, lead.ID)
		case domain.ViewOverdue.Matches(classification):
			d.Overdue = append(d.Overdue, lead.ID)
		}
	}
	return d, nil
}

// RefreshDigest rebuilds today's digest and stores it when a cache is set.
// A build overtaken by a lead write is returned but not stored.
func (s *Service) RefreshDigest(ctx context.Context) (digest.Digest, error) {
	now := s.evaluationTime()
	date := domain.DateOf(now).String()

	var gen int64
	if s.digests != nil {
		var err error
		if gen, err = s.digests.Generation(ctx, date); err != nil {
			return digest.Digest{}, err
		}
	}

	d, err := s.buildDigestAt(ctx, now)
	if err != nil {
		return digest.Digest{}, err
	}
	if s.digests != nil {
		saved, err := s.digests.SaveIfCurrent(ctx, d, gen)
		if err != nil {
			return digest.Digest{}, err
		}
		if !saved {
			s.log.WithContext(ctx).Info("digest refresh overtaken by a lead write; not stored", "date", date)
		}
	}
	return d, nil
}

// Digest serves today's digest, from the cache when one is stored.
// Cache failures degrade to a live computation.
func (s *Service) Digest(ctx context.Context) (transport.DigestResponse, error) {
	log := s.log.WithContext(ctx)
	now := s.evaluationTime()
	date := domain.DateOf(now).String()

	cacheable := false
	var gen int64
	if s.digests != nil {
		cached, ok, err := s.digests.Get(ctx, date)
		switch {
		case err != nil:
			log.Warn("digest cache read failed", "date", date, "error", err)
		case ok:
			return toDigestResponse(cached, true), nil
		default:
			if gen, err = s.digests.Generation(ctx, date); err != nil {
				log.Warn("digest generation read failed", "date", date, "error", err)
			} else {
				cacheable = true
			}
		}
	}

	d, err := s.buildDigestAt(ctx, now)
	if err != nil {
		return transport.DigestResponse{}, err
	}
	if cacheable {
		if _, err := s.digests.SaveIfCurrent(ctx, d, gen); err != nil {
			log.Warn("digest cache write failed", "date", d.Date, "error", err)
		}
	}
	return toDigestResponse(d, false), nil
}

// InvalidateDigest drops today's cached digest after the lead set changed.
func (s *Service) InvalidateDigest(ctx context.Context) error {
	if s.digests == nil {
		return nil
	}
	return s.digests.Invalidate(ctx, s.Today().String())
}

// invalidateAfterWrite runs on the request path so the writer's next digest
// read already misses the cache. Failures only cost freshness.
func (s *Service) invalidateAfterWrite(ctx context.Context) {
	if err := s.InvalidateDigest(ctx); err != nil {
		s.log.WithContext(ctx).Warn("digest invalidation failed", "error", err)
	}
}
