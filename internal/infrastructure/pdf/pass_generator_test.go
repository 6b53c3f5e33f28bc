package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/visit-pipeline/internal/domain/entity"
)

func sampleDetails() *entity.VisitDetails {
	host := int64(2)
	return &entity.VisitDetails{
		Visit: entity.Visit{
			ID:        42,
			Kind:      entity.KindHostApproval,
			VisitorID: 1,
			HostID:    &host,
			VisitDate: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
			StartTime: "09:00",
			EndTime:   "10:30",
			Status:    entity.StatusApproved,
			Purpose:   "Reunión de proyecto",
		},
		VisitorName:     "Ana Pérez",
		VisitorPosition: "Analista",
		HostName:        "Luis Gómez",
		HostPosition:    "Gerente",
	}
}

func TestGeneratePass_GeneraPDF(t *testing.T) {
	out, err := NewPassGenerator("test").GeneratePass(context.Background(), sampleDetails())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), "la salida debe ser un PDF")
}

func TestGeneratePass_SinAnfitrion(t *testing.T) {
	d := sampleDetails()
	d.Kind = entity.KindPhotoCheckin
	d.HostID = nil
	out, err := NewPassGenerator("").GeneratePass(context.Background(), d)
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestGeneratePass_Nil(t *testing.T) {
	_, err := NewPassGenerator("").GeneratePass(context.Background(), nil)
	assert.Error(t, err)
}

func TestPassCode(t *testing.T) {
	assert.Equal(t, "VISIT:42:2026-06-01:09:00-10:30", PassCode(sampleDetails()))
}
