package create_booking

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	createBooking "github.com/m04kA/SMC-SchedulingService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
)

type stubUseCase struct {
	err error
}

func (s stubUseCase) Execute(ctx context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	return nil, s.err
}

func TestHandleInvalidInputNamesCause(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{fmt.Errorf("%w: Name(required)", createBooking.ErrMissingFields), msgMissingFields},
		{fmt.Errorf("%w: InviteeEmail(email)", createBooking.ErrInvalidEmail), msgInvalidEmail},
		{fmt.Errorf("%w: InviteeName(max)", createBooking.ErrFieldTooLong), msgFieldTooLong},
		{fmt.Errorf("%w: \"19.10.2026\"", createBooking.ErrInvalidDate), msgInvalidDate},
		{fmt.Errorf("%w: \"25:00\"", createBooking.ErrInvalidTime), msgInvalidTime},
		{fmt.Errorf("%w: ends at minute 1470", createBooking.ErrMeetingPastMidnight), msgPastMidnight},
		{createBooking.ErrInvalidInput, msgInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			h := NewHandler(stubUseCase{err: tt.err}, logger.NewNop())

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(`{"eventTypeId":1}`))
			h.Handle(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			var body handlers.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.want, body.Message)
		})
	}
}
