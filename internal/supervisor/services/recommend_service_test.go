// Filmoteca - Movie Catalog Query and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmoteca

package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"

	"github.com/tomtom215/filmoteca/internal/metrics"
	"github.com/tomtom215/filmoteca/internal/recommend"
)

type mockRecommendEngine struct {
	mu         sync.Mutex
	trainCalls int
	trainErrs  []error // consumed in order; nil once exhausted
	trainDelay time.Duration
	status     recommend.TrainingStatus
}

func (m *mockRecommendEngine) Train(ctx context.Context) error {
	m.mu.Lock()
	m.trainCalls++
	var err error
	if len(m.trainErrs) > 0 {
		err = m.trainErrs[0]
		m.trainErrs = m.trainErrs[1:]
	}
	if err == nil {
		m.status.ModelVersion++
		m.status.ItemCount = 6
	}
	m.mu.Unlock()

	if m.trainDelay > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(m.trainDelay):
		}
	}
	return err
}

func (m *mockRecommendEngine) GetStatus() recommend.TrainingStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status
}

func (m *mockRecommendEngine) getTrainCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.trainCalls
}

func runFor(s *RecommendService, d time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), d)
	defer cancel()
	return s.Serve(ctx)
}

func TestRecommendService_String(t *testing.T) {
	service := NewRecommendService(&mockRecommendEngine{}, RecommendServiceConfig{}, zerolog.Nop())
	if got := service.String(); got != "recommend-service" {
		t.Errorf("String() = %q, want %q", got, "recommend-service")
	}
}

func TestRecommendService_TrainOnStartup(t *testing.T) {
	engine := &mockRecommendEngine{}
	service := NewRecommendService(engine, RecommendServiceConfig{TrainOnStartup: true}, zerolog.Nop())

	_ = runFor(service, 100*time.Millisecond)

	if got := engine.getTrainCalls(); got != 1 {
		t.Errorf("Train() called %d times, want 1", got)
	}
}

func TestRecommendService_NoTrainOnStartup(t *testing.T) {
	engine := &mockRecommendEngine{}
	service := NewRecommendService(engine, RecommendServiceConfig{TrainInterval: time.Hour}, zerolog.Nop())

	_ = runFor(service, 100*time.Millisecond)

	if got := engine.getTrainCalls(); got != 0 {
		t.Errorf("Train() called %d times, want 0", got)
	}
}

func TestRecommendService_ScheduledTraining(t *testing.T) {
	engine := &mockRecommendEngine{}
	service := NewRecommendService(engine, RecommendServiceConfig{
		TrainInterval: 40 * time.Millisecond,
	}, zerolog.Nop())

	_ = runFor(service, 150*time.Millisecond)

	if got := engine.getTrainCalls(); got < 2 {
		t.Errorf("Train() called %d times, want >= 2", got)
	}
}

func TestRecommendService_RetriesUntilTrained(t *testing.T) {
	engine := &mockRecommendEngine{
		trainErrs: []error{errors.New("db busy"), errors.New("db busy")},
	}
	service := NewRecommendService(engine, RecommendServiceConfig{
		TrainOnStartup: true,
		RetryInterval:  20 * time.Millisecond,
	}, zerolog.Nop())

	_ = runFor(service, 200*time.Millisecond)

	// Two failures, one success, then no retraining.
	if got := engine.getTrainCalls(); got != 3 {
		t.Errorf("Train() called %d times, want 3", got)
	}
	if engine.GetStatus().ModelVersion != 1 {
		t.Errorf("ModelVersion = %d, want 1", engine.GetStatus().ModelVersion)
	}
}

func TestRecommendService_GracefulShutdown(t *testing.T) {
	engine := &mockRecommendEngine{trainDelay: 50 * time.Millisecond}
	service := NewRecommendService(engine, RecommendServiceConfig{TrainOnStartup: true}, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- service.Serve(ctx)
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Serve() returned %v, want context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Serve() did not complete in time")
	}
}

func TestRecommendService_NextRun(t *testing.T) {
	tests := []struct {
		name    string
		cfg     RecommendServiceConfig
		trained bool
		want    time.Duration
	}{
		{"nothing scheduled", RecommendServiceConfig{}, false, 0},
		{"trained no interval", RecommendServiceConfig{RetryInterval: time.Second}, true, 0},
		{"retry before first model", RecommendServiceConfig{RetryInterval: time.Second, TrainInterval: time.Hour}, false, time.Second},
		{"interval shorter than retry", RecommendServiceConfig{RetryInterval: time.Minute, TrainInterval: time.Second}, false, time.Second},
		{"interval after success", RecommendServiceConfig{RetryInterval: time.Second, TrainInterval: time.Hour}, true, time.Hour},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewRecommendService(&mockRecommendEngine{}, tt.cfg, zerolog.Nop())
			if got := s.nextRun(tt.trained); got != tt.want {
				t.Errorf("nextRun(%v) = %v, want %v", tt.trained, got, tt.want)
			}
		})
	}
}

func TestTrainResult(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, TrainResultSuccess},
		{recommend.ErrTrainingInProgress, TrainResultInProgress},
		{fmt.Errorf("load: %w", recommend.ErrInsufficientItems), TrainResultInsufficient},
		{errors.New("boom"), TrainResultFailure},
	}

	for _, tt := range tests {
		if got := trainResult(tt.err); got != tt.want {
			t.Errorf("trainResult(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestRecommendService_RecordsMetrics(t *testing.T) {
	success := metrics.RecommendTrainingTotal.WithLabelValues(TrainResultSuccess)
	failure := metrics.RecommendTrainingTotal.WithLabelValues(TrainResultFailure)
	successBefore := testutil.ToFloat64(success)
	failureBefore := testutil.ToFloat64(failure)

	engine := &mockRecommendEngine{trainErrs: []error{errors.New("boom")}}
	s := NewRecommendService(engine, RecommendServiceConfig{}, zerolog.Nop())

	_ = s.train(context.Background())
	_ = s.train(context.Background())

	if got := testutil.ToFloat64(failure) - failureBefore; got != 1 {
		t.Errorf("failure delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(success) - successBefore; got != 1 {
		t.Errorf("success delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(metrics.RecommendModelVersion); got != 1 {
		t.Errorf("model version gauge = %v, want 1", got)
	}
}
