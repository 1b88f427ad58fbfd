package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strp(s string) *string { return &s }

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		in      *string
		want    *time.Time
		wantErr bool
	}{
		{name: "nil", in: nil},
		{name: "blank", in: strp("  ")},
		{name: "date only", in: strp("2024-03-05"), want: ptrTime(time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC))},
		{name: "rfc3339 with offset", in: strp("2024-03-05T10:00:00+02:00"), want: ptrTime(time.Date(2024, 3, 5, 8, 0, 0, 0, time.UTC))},
		{name: "garbage", in: strp("next tuesday"), wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseDate(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, errInvalidDate)
				return
			}
			require.NoError(t, err)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.True(t, tt.want.Equal(*got))
		})
	}
}

func ptrTime(t time.Time) *time.Time { return &t }

func TestPage(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}
	app := fiber.New()
	var got []int
	app.Get("/", func(c *fiber.Ctx) error {
		got = page(c, items, 2)
		return nil
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, got)
	assert.Equal(t, "5", resp.Header.Get("X-Total-Count"))

	_, err = app.Test(httptest.NewRequest(http.MethodGet, "/?limit=3&offset=3", nil))
	require.NoError(t, err)
	assert.Equal(t, []int{4, 5}, got)

	_, err = app.Test(httptest.NewRequest(http.MethodGet, "/?offset=10", nil))
	require.NoError(t, err)
	assert.Empty(t, got)
}
