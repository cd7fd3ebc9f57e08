package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidStatus(t *testing.T) {
	for _, s := range []string{
		StatusSolicitado, StatusAsignado, StatusEnCursoRecogida,
		StatusRecogido, StatusEnCursoEntrega, StatusEntregado, StatusNovedad,
	} {
		assert.True(t, ValidStatus(s), s)
	}
	assert.False(t, ValidStatus("pendiente"))
	assert.False(t, ValidStatus(""))
}

func TestCanTransition(t *testing.T) {
	assert.True(t, CanTransition(StatusSolicitado, StatusAsignado))
	assert.True(t, CanTransition(StatusAsignado, StatusEnCursoRecogida))
	assert.True(t, CanTransition(StatusEnCursoEntrega, StatusEntregado))

	// Novedad is reachable from any non-terminal status.
	for _, s := range NonTerminalStatuses {
		assert.True(t, CanTransition(s, StatusNovedad), s)
	}

	// No skipping ahead and no leaving terminal statuses.
	assert.False(t, CanTransition(StatusSolicitado, StatusEntregado))
	assert.False(t, CanTransition(StatusEntregado, StatusSolicitado))
	assert.False(t, CanTransition(StatusNovedad, StatusAsignado))
}
