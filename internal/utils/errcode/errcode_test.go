package errcode

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

func TestGetHTTPStatus(t *testing.T) {
	type testcase struct {
		name         string
		err          error
		expectStatus int
		expectFound  bool
	}

	cases := []testcase{
		{name: "Direct", err: ErrSessionNotFound, expectStatus: fiber.StatusNotFound, expectFound: true},
		{name: "Wrapped", err: fmt.Errorf("open: %w", ErrBackendNetwork), expectStatus: fiber.StatusBadGateway, expectFound: true},
		{name: "BackendAuthorization", err: ErrBackendAuthorization, expectStatus: fiber.StatusForbidden, expectFound: true},
		{name: "NotReady", err: ErrSessionNotReady, expectStatus: fiber.StatusConflict, expectFound: true},
		{name: "Unknown", err: errors.New("boom"), expectFound: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, ok := GetHTTPStatus(tc.err)
			require.Equal(t, tc.expectFound, ok)
			require.Equal(t, tc.expectStatus, status)
		})
	}
}
