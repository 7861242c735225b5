package plans

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuota(t *testing.T) {
	tests := []struct {
		name      string
		planName  string
		wantQuota int
		wantOK    bool
	}{
		{name: "pro yearly", planName: "Saas Pro Yearly", wantQuota: 500, wantOK: true},
		{name: "pro monthly", planName: "Saas Pro Monthly", wantQuota: 100, wantOK: true},
		{name: "premium yearly", planName: "Saas Premium Yearly", wantQuota: 1000, wantOK: true},
		{name: "unknown plan", planName: "Unknown Plan", wantQuota: 0, wantOK: false},
		{name: "empty name", planName: "", wantQuota: 0, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, ok := Quota(tt.planName)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantQuota, q)
		})
	}
}
