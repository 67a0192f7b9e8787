package submit_payment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	submitPayment "github.com/Fuzuri/CleanIT/internal/usecase/submit_payment"
)

type fakeUseCase struct {
	resp    *submitPayment.Response
	err     error
	lastReq *submitPayment.Request
}

func (f *fakeUseCase) Execute(_ context.Context, req *submitPayment.Request) (*submitPayment.Response, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func doRequest(t *testing.T, uc *fakeUseCase, bookingID, body string) *httptest.ResponseRecorder {
	t.Helper()
	handler := NewHandler(uc, nopLogger{})

	router := mux.NewRouter()
	router.HandleFunc("/api/v1/bookings/{bookingId}/payment", handler.Handle).Methods(http.MethodPost)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings/"+bookingID+"/payment", strings.NewReader(body))
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandle_PaymentSaved(t *testing.T) {
	uc := &fakeUseCase{resp: &submitPayment.Response{
		PaymentID: 7, BookingID: 1, PaymentMethod: "GCASH",
		PaymentStatus: "pending", Amount: 675,
		Instruction: "Please send ₱675.00 to GCASH Number: 09171112233.",
	}}

	body := `{"streetAddress":"123 Mabini St","city":"Quezon City","province":"Metro Manila","region":"NCR","paymentMethod":"GCASH"}`
	rec := doRequest(t, uc, "1", body)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, uc.lastReq)
	assert.Equal(t, int64(1), uc.lastReq.BookingID)
	assert.Contains(t, rec.Body.String(), "GCASH Number")
}

func TestHandle_InvalidBookingID(t *testing.T) {
	rec := doRequest(t, &fakeUseCase{}, "abc", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandle_UseCaseErrors(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{submitPayment.ErrInvalidInput, http.StatusBadRequest},
		{submitPayment.ErrBookingNotFound, http.StatusNotFound},
		{submitPayment.ErrInternal, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		rec := doRequest(t, &fakeUseCase{err: tc.err}, "1", `{"city":"QC"}`)
		assert.Equal(t, tc.code, rec.Code, "error %v", tc.err)
	}
}
