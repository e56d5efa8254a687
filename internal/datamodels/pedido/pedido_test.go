package pedido

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransicionarAvanzaEnOrden(t *testing.T) {
	estado := EstadoPendiente

	estado, err := Transicionar(estado, AccionAceptar)
	require.NoError(t, err)
	assert.Equal(t, EstadoAceptado, estado)

	estado, err = Transicionar(estado, AccionComenzar)
	require.NoError(t, err)
	assert.Equal(t, EstadoEnCamino, estado)

	estado, err = Transicionar(estado, AccionEntregar)
	require.NoError(t, err)
	assert.Equal(t, EstadoEntregado, estado)
}

func TestTransicionarRechazaAccionFueraDeOrden(t *testing.T) {
	casos := []struct {
		nombre string
		estado string
		accion string
	}{
		{"comenzar desde pendiente", EstadoPendiente, AccionComenzar},
		{"entregar desde pendiente", EstadoPendiente, AccionEntregar},
		{"aceptar desde aceptado", EstadoAceptado, AccionAceptar},
		{"entregar desde aceptado", EstadoAceptado, AccionEntregar},
		{"aceptar desde en camino", EstadoEnCamino, AccionAceptar},
		{"comenzar desde en camino", EstadoEnCamino, AccionComenzar},
		{"aceptar desde entregado", EstadoEntregado, AccionAceptar},
		{"comenzar desde entregado", EstadoEntregado, AccionComenzar},
		{"entregar desde entregado", EstadoEntregado, AccionEntregar},
	}
	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			_, err := Transicionar(c.estado, c.accion)
			assert.Error(t, err)
		})
	}
}

func TestTransicionarAccionDesconocida(t *testing.T) {
	_, err := Transicionar(EstadoPendiente, "cancelar")
	assert.Error(t, err)
	assert.False(t, AccionValida("cancelar"))
	assert.True(t, AccionValida(AccionAceptar))
}
