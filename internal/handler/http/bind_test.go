package http

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MKhiriev/vitascope/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBindForm(t *testing.T) {
	want := models.LoginForm{Username: "alice", Password: "Abcdef1!"}

	tests := []struct {
		name        string
		body        string
		contentType string
		want        models.LoginForm
		wantErr     error
	}{
		{
			name:        "urlencoded",
			body:        "username=alice&password=Abcdef1%21&extra=ignored",
			contentType: "application/x-www-form-urlencoded",
			want:        want,
		},
		{
			name:        "urlencoded with charset",
			body:        "username=alice&password=Abcdef1%21",
			contentType: "application/x-www-form-urlencoded; charset=UTF-8",
			want:        want,
		},
		{
			name:        "json",
			body:        `{"username":"alice","password":"Abcdef1!"}`,
			contentType: "application/json",
			want:        want,
		},
		{
			name:        "first value wins",
			body:        "username=alice&username=bob&password=Abcdef1%21",
			contentType: "application/x-www-form-urlencoded",
			want:        want,
		},
		{
			name: "missing content type yields empty form",
			body: "username=alice",
		},
		{
			name:        "malformed json",
			body:        `{"username":`,
			contentType: "application/json",
			wantErr:     ErrInvalidBody,
		},
		{
			name:        "json with wrong types",
			body:        `{"username":42}`,
			contentType: "application/json",
			wantErr:     ErrInvalidBody,
		},
		{
			name:        "unsupported type",
			body:        "<login/>",
			contentType: "text/xml",
			wantErr:     ErrUnsupportedContentType,
		},
		{
			name:        "broken content type",
			body:        "x",
			contentType: "/;;",
			wantErr:     ErrUnsupportedContentType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := newRawRequest(http.MethodPost, "/login", tt.body, tt.contentType)

			got, err := bindForm[models.LoginForm](httptest.NewRecorder(), req)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBindForm_Multipart(t *testing.T) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("otp_code", "007421"))
	require.NoError(t, mw.Close())

	req := newRawRequest(http.MethodPost, "/verify-otp", body.String(), mw.FormDataContentType())

	got, err := bindForm[models.OTPForm](httptest.NewRecorder(), req)

	require.NoError(t, err)
	assert.Equal(t, models.OTPForm{Code: "007421"}, got)
}

func TestBindForm_BodyTooLarge(t *testing.T) {
	big := `{"username":"` + strings.Repeat("a", maxBodyBytes) + `"}`
	req := newRawRequest(http.MethodPost, "/login", big, "application/json")

	_, err := bindForm[models.LoginForm](httptest.NewRecorder(), req)

	assert.ErrorIs(t, err, ErrInvalidBody)
}
