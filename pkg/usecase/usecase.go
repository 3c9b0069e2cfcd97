package usecase

import (
	"time"

	"github.com/guardline/shiftwatch/pkg/domain/interfaces"
	"github.com/guardline/shiftwatch/pkg/service/urgency"
)

const defaultStaleAfter = time.Hour

type UseCases struct {
	repository  interfaces.Repository
	shiftSource interfaces.ShiftSource
	notifier    interfaces.AlertNotifier
	calculator  *urgency.Calculator

	// staleAfter is how long an unresolved alert may sit without a
	// lifecycle action before the sweep escalates it.
	staleAfter time.Duration
}

type Option func(*UseCases)

func WithRepository(repository interfaces.Repository) Option {
	return func(u *UseCases) {
		u.repository = repository
	}
}

func WithShiftSource(shiftSource interfaces.ShiftSource) Option {
	return func(u *UseCases) {
		u.shiftSource = shiftSource
	}
}

func WithNotifier(notifier interfaces.AlertNotifier) Option {
	return func(u *UseCases) {
		u.notifier = notifier
	}
}

func WithCalculator(calculator *urgency.Calculator) Option {
	return func(u *UseCases) {
		u.calculator = calculator
	}
}

func WithStaleAfter(staleAfter time.Duration) Option {
	return func(u *UseCases) {
		if staleAfter > 0 {
			u.staleAfter = staleAfter
		}
	}
}

func New(opts ...Option) *UseCases {
	uc := &UseCases{
		calculator: urgency.New(urgency.DefaultConfig()),
		staleAfter: defaultStaleAfter,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}
