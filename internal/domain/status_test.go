package domain_test

import (
	"testing"

	"github.com/abdidvp/integrity/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		raw  string
		want domain.Status
	}{
		{"TRUE", domain.StatusTrue},
		{"true", domain.StatusTrue},
		{" False ", domain.StatusFalse},
		{"warning", domain.StatusWarning},
		{"ERROR", domain.StatusError},
		{"UNKNOWN", domain.StatusUnknown},
		{"", domain.StatusUnknown},
		{"1", domain.StatusUnknown},
		{"None", domain.StatusUnknown},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, domain.ParseStatus(tt.raw), "raw %q", tt.raw)
	}
}

func TestStatus_IsPass(t *testing.T) {
	assert.True(t, domain.StatusTrue.IsPass())
	for _, s := range []domain.Status{domain.StatusFalse, domain.StatusWarning, domain.StatusError, domain.StatusUnknown} {
		assert.False(t, s.IsPass(), "%s must not pass", s)
	}
}

func TestStatus_IsValid(t *testing.T) {
	for _, s := range domain.ValidStatuses {
		assert.True(t, s.IsValid())
	}
	assert.False(t, domain.Status("MAYBE").IsValid())
	assert.False(t, domain.Status("true").IsValid())
}

func TestReduceRowStatuses(t *testing.T) {
	tests := []struct {
		name   string
		values []string
		want   domain.Status
	}{
		{"mixed", []string{"TRUE", "TRUE", "FALSE"}, domain.StatusWarning},
		{"all false", []string{"FALSE", "FALSE"}, domain.StatusFalse},
		{"all true", []string{"TRUE", "TRUE"}, domain.StatusTrue},
		{"false with noise", []string{"FALSE", "NULL"}, domain.StatusFalse},
		{"only noise", []string{"PENDING"}, domain.StatusTrue},
		{"lowercase input", []string{"true", "false"}, domain.StatusWarning},
		{"nothing", nil, domain.StatusTrue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.ReduceRowStatuses(tt.values))
		})
	}
}
