package memoria

import (
	"context"
	"errors"
	"testing"
	"time"

	"servico-restaurante/internal/dominio"
	"servico-restaurante/internal/servico"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArmazem_RollbackPreservaEscritaDeFora(t *testing.T) {
	ctx := context.Background()
	a := Novo()

	dentro := make(chan struct{})
	soltar := make(chan struct{})
	fimTx := make(chan error, 1)
	go func() {
		fimTx <- a.Transacao(ctx, func(r servico.Repositorios) error {
			mesa, err := dominio.NovaMesa(1, uuid.New(), 2)
			if err != nil {
				return err
			}
			if err := r.Mesas.Criar(ctx, mesa); err != nil {
				return err
			}
			close(dentro)
			<-soltar
			return errors.New("falha no meio da transação")
		})
	}()
	<-dentro

	entrada := &dominio.EntradaFila{ID: uuid.New(), Nome: "Rui", NumeroPessoas: 2, Telefone: "119"}
	criada := make(chan error, 1)
	go func() { criada <- a.Repositorios().Fila.Criar(ctx, entrada) }()

	require.Never(t, func() bool { return len(criada) > 0 }, 50*time.Millisecond, 5*time.Millisecond,
		"escrita fora de transação não pode ocorrer com a transação aberta")

	close(soltar)
	require.Error(t, <-fimTx)
	require.NoError(t, <-criada)

	_, err := a.Repositorios().Fila.BuscarPorID(ctx, entrada.ID)
	assert.NoError(t, err)

	mesas, total, err := a.Repositorios().Mesas.Listar(ctx, servico.FiltroMesas{})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, mesas)
}

func TestFila_Finalizar(t *testing.T) {
	ctx := context.Background()
	a := Novo()
	r := a.Repositorios()

	entrada := &dominio.EntradaFila{ID: uuid.New(), Nome: "Rui", NumeroPessoas: 2, Telefone: "119"}
	require.NoError(t, r.Fila.Criar(ctx, entrada))

	require.NoError(t, r.Fila.Finalizar(ctx, entrada.ID))
	assert.ErrorIs(t, r.Fila.Finalizar(ctx, entrada.ID), dominio.ErrValidacao)
	assert.ErrorIs(t, r.Fila.Finalizar(ctx, uuid.New()), dominio.ErrNaoEncontrado)

	entrada.Nome = "Rui Costa"
	entrada.Status = dominio.FilaAguardando
	require.NoError(t, r.Fila.Salvar(ctx, entrada))

	salva, err := r.Fila.BuscarPorID(ctx, entrada.ID)
	require.NoError(t, err)
	assert.Equal(t, "Rui Costa", salva.Nome)
	assert.Equal(t, dominio.FilaFinalizado, salva.Status)
}
