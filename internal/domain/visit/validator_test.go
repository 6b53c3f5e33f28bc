package visit_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/visit-pipeline/internal/domain"
	"github.com/jhoicas/visit-pipeline/internal/domain/entity"
	"github.com/jhoicas/visit-pipeline/internal/domain/visit"
)

var today = time.Date(2026, 6, 1, 9, 30, 0, 0, time.UTC)

func hostPtr(id int64) *int64 { return &id }

func validRequest() visit.Request {
	return visit.Request{
		HostID:    hostPtr(2),
		VisitDate: "2026-06-01",
		StartTime: "09:00",
		EndTime:   "10:30",
		Purpose:   "  Reunión de proyecto ",
		Notes:     "sala 3",
	}
}

func fieldOf(t *testing.T, err error) string {
	t.Helper()
	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve), "se esperaba ValidationError, llegó %v", err)
	assert.ErrorIs(t, err, domain.ErrValidation)
	return ve.Field
}

func TestValidateRequest_OK(t *testing.T) {
	out, err := visit.ValidateRequest(validRequest(), visit.Options{Today: today})
	require.NoError(t, err)

	assert.Equal(t, entity.KindHostApproval, out.Kind, "la variante por defecto es host_approval")
	assert.Equal(t, time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC), out.VisitDate)
	assert.Equal(t, "09:00", out.StartTime)
	assert.Equal(t, "10:30", out.EndTime)
	assert.Equal(t, "Reunión de proyecto", out.Purpose)
	require.NotNil(t, out.HostID)
	assert.Equal(t, int64(2), *out.HostID)
}

func TestValidateRequest_CamposRequeridos(t *testing.T) {
	cases := []struct {
		name  string
		edit  func(*visit.Request)
		field string
	}{
		{"sin anfitrión", func(r *visit.Request) { r.HostID = nil }, "host_id"},
		{"anfitrión cero", func(r *visit.Request) { r.HostID = hostPtr(0) }, "host_id"},
		{"sin fecha", func(r *visit.Request) { r.VisitDate = " " }, "visit_date"},
		{"sin inicio", func(r *visit.Request) { r.StartTime = "" }, "start_time"},
		{"sin fin", func(r *visit.Request) { r.EndTime = "" }, "end_time"},
		{"sin propósito", func(r *visit.Request) { r.Purpose = "   " }, "purpose"},
		{"variante desconocida", func(r *visit.Request) { r.Kind = "walk_in" }, "kind"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest()
			tc.edit(&req)
			_, err := visit.ValidateRequest(req, visit.Options{Today: today})
			assert.Equal(t, tc.field, fieldOf(t, err))
		})
	}
}

func TestValidateRequest_Fechas(t *testing.T) {
	req := validRequest()
	req.VisitDate = "01/06/2026"
	_, err := visit.ValidateRequest(req, visit.Options{Today: today})
	assert.Equal(t, "visit_date", fieldOf(t, err))

	req.VisitDate = "2026-05-31"
	_, err = visit.ValidateRequest(req, visit.Options{Today: today})
	assert.Equal(t, "visit_date", fieldOf(t, err), "ayer está en el pasado")

	// Hoy en la zona local puede ser otro día que en UTC
	bogota := time.FixedZone("COT", -5*3600)
	lateNight := time.Date(2026, 5, 31, 22, 0, 0, 0, bogota) // 2026-06-01 03:00 UTC
	_, err = visit.ValidateRequest(req, visit.Options{Today: lateNight})
	assert.NoError(t, err, "en Bogotá todavía es 31 de mayo")
}

func TestValidateRequest_Horas(t *testing.T) {
	cases := []struct {
		start, end string
		ok         bool
	}{
		{"09:00", "09:01", true},
		{"09:00:00", "17:30:00", true},
		{"09:00", "09:00", false},
		{"10:00", "09:59", false},
		{"09:00", "10:60", false},
		{"09:00", "25:00", false},
	}
	for _, tc := range cases {
		req := validRequest()
		req.StartTime, req.EndTime = tc.start, tc.end
		_, err := visit.ValidateRequest(req, visit.Options{Today: today})
		if tc.ok {
			assert.NoError(t, err, "%s-%s", tc.start, tc.end)
			continue
		}
		assert.Error(t, err, "%s-%s", tc.start, tc.end)
	}
}

func TestValidateRequest_PrimerFallo(t *testing.T) {
	req := validRequest()
	req.Purpose = ""
	req.VisitDate = "2020-01-01"
	req.EndTime = "08:00"
	_, err := visit.ValidateRequest(req, visit.Options{Today: today})
	assert.Equal(t, "purpose", fieldOf(t, err), "los requeridos se verifican antes que la fecha")
}

func TestValidateRequest_CheckinConFoto(t *testing.T) {
	req := validRequest()
	req.Kind = entity.KindPhotoCheckin
	req.HostID = hostPtr(2)

	_, err := visit.ValidateRequest(req, visit.Options{Today: today, RequirePhoto: true})
	assert.Equal(t, "photo", fieldOf(t, err))

	req.Photo = &visit.PhotoUpload{Filename: "me.png", Data: pngBytes}
	out, err := visit.ValidateRequest(req, visit.Options{Today: today, RequirePhoto: true})
	require.NoError(t, err)
	assert.Nil(t, out.HostID, "el check-in con foto no lleva anfitrión")
	require.NotNil(t, out.Photo)
	assert.Equal(t, "image/png", out.Photo.MIME)
}

func TestDateOf(t *testing.T) {
	bogota := time.FixedZone("COT", -5*3600)
	at := time.Date(2026, 6, 1, 23, 59, 0, 0, bogota)
	assert.Equal(t, time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC), visit.DateOf(at))
}

func TestClockMinutes(t *testing.T) {
	assert.Equal(t, 0, visit.ClockMinutes("00:00"))
	assert.Equal(t, 9*60+30, visit.ClockMinutes("09:30"))
	assert.Equal(t, 0, visit.ClockMinutes("nope"))
}
