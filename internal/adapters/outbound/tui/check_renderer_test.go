package tui_test

import (
	"testing"

	"github.com/abdidvp/integrity/internal/adapters/outbound/tui"
	"github.com/abdidvp/integrity/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestRenderChecks(t *testing.T) {
	output := tui.RenderChecks(domain.Registry{
		{Name: "Orders vs Invoices", Description: "Every order has an invoice.", Query: "q", StatusColumn: "Status"},
		{Name: "Daily Load", Query: "q", StatusColumn: "Result", MultiRow: true},
	})

	assert.Contains(t, output, "(2)")
	assert.Contains(t, output, "Orders vs Invoices")
	assert.Contains(t, output, "Every order has an invoice.")
	assert.Contains(t, output, "status: Result")
	assert.Contains(t, output, "multi")
	assert.Contains(t, output, "single")
}

func TestRenderChecks_Empty(t *testing.T) {
	output := tui.RenderChecks(nil)
	assert.Contains(t, output, "No checks configured.")
}
