package dominio_test

import (
	"testing"
	"time"

	"servico-restaurante/internal/dominio"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMesa_ValidarTransicao(t *testing.T) {
	tests := []struct {
		name   string
		de     dominio.StatusMesa
		para   dominio.StatusMesa
		valida bool
	}{
		{"livre para ocupada", dominio.MesaLivre, dominio.MesaOcupada, true},
		{"livre para reservada", dominio.MesaLivre, dominio.MesaReservada, true},
		{"ocupada para livre", dominio.MesaOcupada, dominio.MesaLivre, true},
		{"reservada para livre", dominio.MesaReservada, dominio.MesaLivre, true},
		{"ocupada para reservada", dominio.MesaOcupada, dominio.MesaReservada, false},
		{"reservada para ocupada", dominio.MesaReservada, dominio.MesaOcupada, false},
		{"ocupada para ocupada", dominio.MesaOcupada, dominio.MesaOcupada, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mesa := &dominio.Mesa{Status: tc.de}
			err := mesa.ValidarTransicao(tc.para)
			if tc.valida {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, dominio.ErrValidacao)
			}
		})
	}
}

func TestParseStatusMesa(t *testing.T) {
	st, err := dominio.ParseStatusMesa("OCUPADA")
	require.NoError(t, err)
	assert.Equal(t, dominio.MesaOcupada, st)

	_, err = dominio.ParseStatusMesa("suja")
	assert.ErrorIs(t, err, dominio.ErrValidacao)
}

func TestNovaMesa(t *testing.T) {
	t.Run("cria um assento por lugar", func(t *testing.T) {
		mesa, err := dominio.NovaMesa(7, uuid.New(), 4)
		require.NoError(t, err)
		require.Len(t, mesa.Assentos, 4)
		assert.Equal(t, dominio.MesaLivre, mesa.Status)
		for i, a := range mesa.Assentos {
			assert.Equal(t, i+1, a.NumeroAssento)
			assert.Equal(t, mesa.ID, a.MesaID)
		}
	})

	t.Run("rejeita capacidade zero", func(t *testing.T) {
		_, err := dominio.NovaMesa(7, uuid.New(), 0)
		assert.ErrorIs(t, err, dominio.ErrValidacao)
	})
}

func TestMesa_AjustarCapacidade(t *testing.T) {
	mesa, err := dominio.NovaMesa(1, uuid.New(), 2)
	require.NoError(t, err)

	require.NoError(t, mesa.AjustarCapacidade(5))
	assert.Len(t, mesa.Assentos, 5)
	assert.Equal(t, 5, mesa.Assentos[4].NumeroAssento)

	require.NoError(t, mesa.AjustarCapacidade(3))
	assert.Len(t, mesa.Assentos, 3)
	assert.Equal(t, 3, mesa.Capacidade)

	assert.Error(t, mesa.AjustarCapacidade(0))
}

func TestMesa_VincularPedidoELimpar(t *testing.T) {
	mesa, err := dominio.NovaMesa(1, uuid.New(), 2)
	require.NoError(t, err)
	mesa.Status = dominio.MesaOcupada

	p1, p2 := uuid.New(), uuid.New()
	assento := 2
	nome := "Ana"
	require.NoError(t, mesa.VincularPedido(p1, &assento, &nome, dec("30")))
	require.NoError(t, mesa.VincularPedido(p2, nil, nil, dec("12.5")))

	invalido := 9
	assert.Error(t, mesa.VincularPedido(uuid.New(), &invalido, nil, dec("1")))

	assert.ElementsMatch(t, []uuid.UUID{p1, p2}, mesa.PedidosReferenciados())
	assert.Equal(t, "42.5", mesa.ValorTotal.String())
	assert.Equal(t, "Ana", *mesa.Assentos[1].NomeCliente)

	agora := time.Now()
	mesa.OcupadaDesde = &agora
	mesa.Limpar()
	assert.Equal(t, dominio.MesaLivre, mesa.Status)
	assert.Empty(t, mesa.PedidosReferenciados())
	assert.True(t, mesa.ValorTotal.IsZero())
	assert.Nil(t, mesa.OcupadaDesde)
	assert.Nil(t, mesa.Assentos[1].NomeCliente)
}

func TestListaUUID_ScanValue(t *testing.T) {
	id := uuid.New()
	lista := dominio.ListaUUID{id}

	v, err := lista.Value()
	require.NoError(t, err)

	var lida dominio.ListaUUID
	require.NoError(t, lida.Scan([]byte(v.(string))))
	assert.Equal(t, lista, lida)

	require.NoError(t, lida.Scan(nil))
	assert.Empty(t, lida)

	var nula dominio.ListaUUID
	v, err = nula.Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", v)
}

func TestEntradaFila_Atribuir(t *testing.T) {
	criada := time.Date(2024, 5, 1, 20, 0, 0, 0, time.UTC)
	entrada := &dominio.EntradaFila{Nome: "Bruno", NumeroPessoas: 3, Telefone: "1199", Status: dominio.FilaAguardando, CreatedAt: criada}
	require.True(t, entrada.PodeSerAtribuida())

	mesaID := uuid.New()
	entrada.Atribuir(mesaID, criada.Add(14*time.Minute+59*time.Second))

	assert.Equal(t, 14, entrada.TempoAtribuicao)
	assert.Equal(t, mesaID, *entrada.MesaID)
	assert.False(t, entrada.PodeSerAtribuida())
	assert.Equal(t, dominio.FilaAguardando, entrada.Status)

	require.NoError(t, entrada.Finalizar())
	assert.ErrorIs(t, entrada.Finalizar(), dominio.ErrValidacao)
}

func TestEntradaFila_Validar(t *testing.T) {
	assert.ErrorIs(t, (&dominio.EntradaFila{Nome: "x", NumeroPessoas: 0, Telefone: "1"}).Validar(), dominio.ErrValidacao)
	assert.ErrorIs(t, (&dominio.EntradaFila{Nome: "x", NumeroPessoas: 2}).Validar(), dominio.ErrValidacao)
	assert.NoError(t, (&dominio.EntradaFila{Nome: "x", NumeroPessoas: 2, Telefone: "1"}).Validar())
}
