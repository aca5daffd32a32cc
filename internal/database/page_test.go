package database_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/finanzas/internal/database"
)

func TestPage_Normalize(t *testing.T) {
	tests := []struct {
		name string
		in   database.Page
		want database.Page
	}{
		{name: "Default", in: database.Page{}, want: database.Page{Limit: 100}},
		{name: "Capped", in: database.Page{Offset: 10, Limit: 5000}, want: database.Page{Offset: 10, Limit: 1000}},
		{name: "NegativeOffset", in: database.Page{Offset: -3, Limit: 20}, want: database.Page{Limit: 20}},
		{name: "Kept", in: database.Page{Offset: 40, Limit: 20}, want: database.Page{Offset: 40, Limit: 20}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Normalize())
		})
	}
}
