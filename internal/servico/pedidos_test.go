package servico_test

import (
	"context"
	"testing"

	"servico-restaurante/internal/dominio"
	"servico-restaurante/internal/servico"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPedidoServico_Criar(t *testing.T) {
	ctx := context.Background()

	t.Run("lança o pedido e ocupa a mesa livre", func(t *testing.T) {
		c := novoCenario(t)
		mesa := c.criarMesa(t, 3, 4)
		prato := c.criarProduto(t, "Moqueca", "55.90", 5)

		pedido, err := c.pedidos.Criar(ctx, servico.NovoPedido{
			MesaID:        mesa.ID,
			NumeroAssento: ptr(1),
			NomeCliente:   ptr("Rui"),
			Itens:         []servico.ItemSolicitado{{ProdutoID: prato.ID, Quantidade: 2, Modificacoes: "sem coentro"}},
		})
		require.NoError(t, err)
		assert.Equal(t, "111.8", pedido.Total.String())
		assert.Equal(t, dominio.PedidoPendente, pedido.Status)
		require.Len(t, pedido.Itens, 1)
		assert.Equal(t, "Moqueca", pedido.Itens[0].Nome)

		m := c.mesa(t, mesa.ID)
		assert.Equal(t, dominio.MesaOcupada, m.Status)
		assert.NotNil(t, m.OcupadaDesde)
		assert.Equal(t, "111.8", m.ValorTotal.String())
		assert.True(t, m.Pedidos.Contem(pedido.ID))
		assert.True(t, m.Assentos[0].Pedidos.Contem(pedido.ID))
		assert.Equal(t, "Rui", *m.Assentos[0].NomeCliente)

		produto, err := c.cadastro.BuscarProduto(ctx, prato.ID)
		require.NoError(t, err)
		assert.Equal(t, 3, produto.QuantidadeEstoque)

		assert.Contains(t, c.notif.Eventos(), dominio.EventoPedidoCriado)
		assert.Contains(t, c.notif.Eventos(), dominio.EventoMesaOcupada)
	})

	t.Run("estoque insuficiente desfaz tudo", func(t *testing.T) {
		c := novoCenario(t)
		mesa := c.criarMesa(t, 3, 4)
		prato := c.criarProduto(t, "Moqueca", "55.90", 5)
		bebida := c.criarProduto(t, "Água", "4", 1)

		_, err := c.pedidos.Criar(ctx, servico.NovoPedido{
			MesaID: mesa.ID,
			Itens: []servico.ItemSolicitado{
				{ProdutoID: prato.ID, Quantidade: 1},
				{ProdutoID: bebida.ID, Quantidade: 2},
			},
		})
		assert.ErrorIs(t, err, dominio.ErrValidacao)

		produto, err := c.cadastro.BuscarProduto(ctx, prato.ID)
		require.NoError(t, err)
		assert.Equal(t, 5, produto.QuantidadeEstoque)
		assert.Equal(t, dominio.MesaLivre, c.mesa(t, mesa.ID).Status)
	})

	t.Run("mesa reservada não recebe pedido", func(t *testing.T) {
		c := novoCenario(t)
		mesa := c.criarMesa(t, 3, 4)
		prato := c.criarProduto(t, "Moqueca", "55.90", 5)
		_, err := c.mesas.AtualizarStatus(ctx, mesa.ID, "reservada")
		require.NoError(t, err)

		_, err = c.pedidos.Criar(ctx, servico.NovoPedido{
			MesaID: mesa.ID,
			Itens:  []servico.ItemSolicitado{{ProdutoID: prato.ID, Quantidade: 1}},
		})
		assert.ErrorIs(t, err, dominio.ErrValidacao)
	})

	t.Run("assento inexistente e produto inexistente", func(t *testing.T) {
		c := novoCenario(t)
		mesa := c.criarMesa(t, 3, 2)
		prato := c.criarProduto(t, "Moqueca", "55.90", 5)

		_, err := c.pedidos.Criar(ctx, servico.NovoPedido{
			MesaID:        mesa.ID,
			NumeroAssento: ptr(9),
			Itens:         []servico.ItemSolicitado{{ProdutoID: prato.ID, Quantidade: 1}},
		})
		assert.ErrorIs(t, err, dominio.ErrValidacao)

		_, err = c.pedidos.Criar(ctx, servico.NovoPedido{
			MesaID: mesa.ID,
			Itens:  []servico.ItemSolicitado{{ProdutoID: uuid.New(), Quantidade: 1}},
		})
		assert.ErrorIs(t, err, dominio.ErrNaoEncontrado)

		_, err = c.pedidos.Criar(ctx, servico.NovoPedido{MesaID: mesa.ID})
		assert.ErrorIs(t, err, dominio.ErrValidacao)
	})
}

func TestPedidoServico_AtualizarStatus(t *testing.T) {
	ctx := context.Background()
	c := novoCenario(t)
	mesa := c.criarMesa(t, 1, 2)
	prato := c.criarProduto(t, "Pastel", "9", 10)

	pedido, err := c.pedidos.Criar(ctx, servico.NovoPedido{
		MesaID: mesa.ID,
		Itens:  []servico.ItemSolicitado{{ProdutoID: prato.ID, Quantidade: 1}},
	})
	require.NoError(t, err)

	atualizado, err := c.pedidos.AtualizarStatus(ctx, pedido.ID, "Pronto")
	require.NoError(t, err)
	assert.Equal(t, dominio.PedidoPronto, atualizado.Status)

	_, err = c.pedidos.AtualizarStatus(ctx, pedido.ID, "Finalizado")
	assert.ErrorIs(t, err, dominio.ErrValidacao)

	require.NoError(t, c.armazem.Repositorios().Pedidos.MarcarFinalizados(ctx, []uuid.UUID{pedido.ID}))
	_, err = c.pedidos.AtualizarStatus(ctx, pedido.ID, "Entregue")
	assert.ErrorIs(t, err, dominio.ErrValidacao)

	pagina, err := c.pedidos.Listar(ctx, servico.FiltroPedidos{MesaID: &mesa.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), pagina.Total)
}
