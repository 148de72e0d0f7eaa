/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package mapper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseYear(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"2004-07-01T10:00:00Z", "2004", false},
		{"2004-07-01T10:00:00.123+10:00", "2004", false},
		{"2004-07-01T10:00+10:00", "2004", false},
		{"2004-07-01", "2004", false},
		{"2004-07", "2004", false},
		{"2004", "2004", false},
		{" 1999 ", "1999", false},
		{"", "", true},
		{"July 2004", "", true},
		{"0000-bad", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseYear(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
