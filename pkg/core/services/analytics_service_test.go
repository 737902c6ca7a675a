package services

import (
	"context"
	"testing"
	"time"

	"visittracker/pkg/core/domain"
)

type stubRepo struct {
	appended []*domain.Visit
	resets   int
}

func (s *stubRepo) Append(_ context.Context, v *domain.Visit) error {
	v.ID = int64(len(s.appended) + 1)
	s.appended = append(s.appended, v)
	return nil
}

func (s *stubRepo) Stats(context.Context) (*domain.Stats, error) { return &domain.Stats{}, nil }

func (s *stubRepo) DeleteAll(context.Context) error {
	s.resets++
	s.appended = nil
	return nil
}

func (s *stubRepo) Dump(context.Context) ([]domain.Visit, error) { return nil, nil }

func TestTrackDefaults(t *testing.T) {
	tests := []struct {
		name        string
		path        string
		referrer    string
		ip          string
		wantPath    string
		wantRef     string
		wantIP      string
	}{
		{
			name:     "All Present",
			path:     "/pricing",
			referrer: "x.com",
			ip:       "1.2.3.4",
			wantPath: "/pricing",
			wantRef:  "x.com",
			wantIP:   "1.2.3.4",
		},
		{
			name:     "All Defaulted",
			wantPath: "/",
			wantRef:  "direct",
			wantIP:   "unknown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &stubRepo{}
			svc := NewAnalyticsService(repo)

			if err := svc.Track(context.Background(), tt.path, tt.referrer, "ua", tt.ip); err != nil {
				t.Fatalf("Track failed: %v", err)
			}
			if len(repo.appended) != 1 {
				t.Fatalf("Expected 1 appended visit, got %d", len(repo.appended))
			}

			v := repo.appended[0]
			if v.Path != tt.wantPath {
				t.Errorf("path: got %q want %q", v.Path, tt.wantPath)
			}
			if v.Referrer != tt.wantRef {
				t.Errorf("referrer: got %q want %q", v.Referrer, tt.wantRef)
			}
			if v.IP != tt.wantIP {
				t.Errorf("ip: got %q want %q", v.IP, tt.wantIP)
			}
		})
	}
}

func TestTrackAssignsServerTimestamp(t *testing.T) {
	repo := &stubRepo{}
	svc := NewAnalyticsService(repo)

	before := time.Now().UTC()
	if err := svc.Track(context.Background(), "/", "", "ua", ""); err != nil {
		t.Fatalf("Track failed: %v", err)
	}
	after := time.Now().UTC()

	ts := repo.appended[0].Timestamp
	if ts.Before(before) || ts.After(after) {
		t.Errorf("Timestamp %v outside [%v, %v]", ts, before, after)
	}
	if ts.Location() != time.UTC {
		t.Errorf("Timestamp must be UTC, got %v", ts.Location())
	}
}

func TestTrackKeepsUserAgentUnbounded(t *testing.T) {
	repo := &stubRepo{}
	svc := NewAnalyticsService(repo)

	ua := make([]byte, 500)
	for i := range ua {
		ua[i] = 'x'
	}
	if err := svc.Track(context.Background(), "/", "", string(ua), ""); err != nil {
		t.Fatalf("Track failed: %v", err)
	}
	// Truncation to 80 chars happens at read time in the recent projection,
	// never on the write path.
	if got := len(repo.appended[0].UserAgent); got != 500 {
		t.Errorf("Expected raw user agent stored, got length %d", got)
	}
}

func TestReset(t *testing.T) {
	repo := &stubRepo{}
	svc := NewAnalyticsService(repo)

	_ = svc.Track(context.Background(), "/", "", "ua", "")
	if err := svc.Reset(context.Background()); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	if repo.resets != 1 || len(repo.appended) != 0 {
		t.Errorf("Expected one reset clearing visits, got resets=%d visits=%d", repo.resets, len(repo.appended))
	}
}
