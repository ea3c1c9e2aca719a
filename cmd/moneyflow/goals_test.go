package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/moneyflow/internal/common"
)

func TestGoalsLifecycle(t *testing.T) {
	c := newTestCLI(t)

	assert.Contains(t, c.mustRun("goals", "list"), "No savings goals found")

	id := extractID(t, c.mustRun("goals", "add", "Vacation", "--target", "1000", "--current", "100", "--date", "2024-06-01"))

	out := c.mustRun("goals", "list")
	assert.Contains(t, out, "Vacation")
	assert.Contains(t, out, "10%")
	assert.Contains(t, out, "73 days left")

	out = c.mustRun("goals", "deposit", id, "50")
	assert.Contains(t, out, "150.00")

	out = c.mustRun("goals", "withdraw", id, "500")
	assert.Contains(t, out, "0.00 of")

	c.mustRun("goals", "update", id, "--clear-date", "--name", "Holiday")
	out = c.mustRun("goals", "list")
	assert.Contains(t, out, "Holiday")
	assert.Contains(t, out, "no target date")

	c.mustRun("goals", "delete", id, "--force")
	assert.Contains(t, c.mustRun("goals", "list"), "No savings goals found")
}

func TestGoalsCompletedAndOverdue(t *testing.T) {
	c := newTestCLI(t)
	c.mustRun("goals", "add", "Laptop", "--target", "800", "--current", "850")
	c.mustRun("goals", "add", "Bike", "--target", "500", "--date", "2024-03-10")

	out := c.mustRun("goals", "list")
	assert.Contains(t, out, "106%")
	assert.Contains(t, out, "completed")
	assert.Contains(t, out, "overdue by 10 days")
}

func TestGoalsRejections(t *testing.T) {
	c := newTestCLI(t)
	id := extractID(t, c.mustRun("goals", "add", "Vacation", "--target", "1000"))

	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{name: "zero target", args: []string{"goals", "add", "Car", "--target", "0"}, wantErr: common.ErrValidation},
		{name: "negative current", args: []string{"goals", "add", "Car", "--target", "10", "--current", "-1"}, wantErr: common.ErrValidation},
		{name: "zero deposit", args: []string{"goals", "deposit", id, "0"}, wantErr: common.ErrValidation},
		{name: "unknown goal", args: []string{"goals", "deposit", "missing", "5"}, wantErr: common.ErrNotFound},
		{name: "nothing to update", args: []string{"goals", "update", id}, wantErr: common.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.run(tt.args...)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
