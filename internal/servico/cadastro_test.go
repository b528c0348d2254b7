package servico_test

import (
	"context"
	"testing"

	"servico-restaurante/internal/dominio"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCadastroServico_Ambientes(t *testing.T) {
	ctx := context.Background()
	c := novoCenario(t)

	t.Run("nome repetido é conflito", func(t *testing.T) {
		_, err := c.cadastro.CriarAmbiente(ctx, "  Salão ", 10)
		assert.ErrorIs(t, err, dominio.ErrConflito)
	})

	t.Run("limite menor que um é inválido", func(t *testing.T) {
		_, err := c.cadastro.CriarAmbiente(ctx, "Varanda", 0)
		assert.ErrorIs(t, err, dominio.ErrValidacao)
	})

	t.Run("atualiza só os campos informados", func(t *testing.T) {
		varanda, err := c.cadastro.CriarAmbiente(ctx, "Varanda", 20)
		require.NoError(t, err)

		atualizado, err := c.cadastro.AtualizarAmbiente(ctx, varanda.ID, nil, ptr(30))
		require.NoError(t, err)
		assert.Equal(t, "Varanda", atualizado.Nome)
		assert.Equal(t, 30, atualizado.LimitePessoas)

		_, err = c.cadastro.AtualizarAmbiente(ctx, varanda.ID, ptr("Salão"), nil)
		assert.ErrorIs(t, err, dominio.ErrConflito)
	})

	t.Run("ambiente com mesas não pode ser excluído", func(t *testing.T) {
		c.criarMesa(t, 1, 2)
		err := c.cadastro.ExcluirAmbiente(ctx, c.ambiente.ID)
		assert.ErrorIs(t, err, dominio.ErrConflito)
	})

	t.Run("ambiente vazio é excluído", func(t *testing.T) {
		deck, err := c.cadastro.CriarAmbiente(ctx, "Deck", 8)
		require.NoError(t, err)
		require.NoError(t, c.cadastro.ExcluirAmbiente(ctx, deck.ID))

		err = c.cadastro.ExcluirAmbiente(ctx, deck.ID)
		assert.ErrorIs(t, err, dominio.ErrNaoEncontrado)
	})
}

func TestCadastroServico_Produtos(t *testing.T) {
	ctx := context.Background()
	c := novoCenario(t)

	p := c.criarProduto(t, "Feijoada", "59.999", 5)
	assert.Equal(t, "60", p.Preco.String())

	achado, err := c.cadastro.BuscarProduto(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Feijoada", achado.Nome)

	_, err = c.cadastro.BuscarProduto(ctx, uuid.New())
	assert.ErrorIs(t, err, dominio.ErrNaoEncontrado)

	_, err = c.cadastro.CriarProduto(ctx, "Suco", dec("-1"), 1)
	assert.ErrorIs(t, err, dominio.ErrValidacao)
}
