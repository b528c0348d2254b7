package manipulador

import (
	"servico-restaurante/internal/middleware"

	"github.com/gin-gonic/gin"
)

type OpcoesRotas struct {
	SegredoJWT       []byte
	DiretorioRecibos string
}

func RegistrarRotas(r *gin.Engine, h *Handlers, op OpcoesRotas) {
	r.Static("/recibos", op.DiretorioRecibos)

	api := r.Group("/api")
	api.GET("/health", Health)

	privado := api.Group("")
	privado.Use(middleware.Autenticar(op.SegredoJWT))

	gerente := middleware.ExigirPapel(middleware.PapelGerente)
	caixa := middleware.ExigirPapel(middleware.PapelGerente, middleware.PapelAgente)
	salao := middleware.ExigirPapel(middleware.PapelGerente, middleware.PapelAgente, middleware.PapelGarcom)

	fila := privado.Group("/queue")
	{
		fila.POST("", h.CriarEntrada)
		fila.GET("", h.ListarEntradas)
		fila.PUT("/:id", h.AtualizarEntrada)
		fila.PUT("/:id/finish", h.FinalizarEntrada)
		fila.DELETE("/:id", h.ExcluirEntrada)
	}

	mesas := privado.Group("/tables")
	{
		mesas.GET("", h.ListarMesas)
		mesas.GET("/available", h.ListarMesasDisponiveis)
		mesas.GET("/by-ambiente/:ambienteId", h.ListarMesasPorAmbiente)
		mesas.GET("/:id", h.BuscarMesa)
		mesas.POST("", gerente, h.CriarMesa)
		mesas.PUT("/:id", gerente, h.AtualizarMesa)
		mesas.DELETE("/:id", gerente, h.ExcluirMesa)
		mesas.PUT("/:id/status", salao, h.AtualizarStatusMesa)
		mesas.POST("/:id/finalizar", salao, h.FinalizarMesa)
	}

	reservas := privado.Group("/reservations")
	{
		reservas.GET("", salao, h.ListarReservas)
		reservas.GET("/:id", salao, h.BuscarReserva)
		reservas.POST("", caixa, h.CriarReserva)
		reservas.PUT("/:id", caixa, h.AtualizarReserva)
		reservas.DELETE("/:id", caixa, h.ExcluirReserva)
	}

	privado.GET("/finalized-tables", caixa, h.ListarMesasFinalizadas)
	privado.GET("/comandas/:id", caixa, h.BuscarComanda)
	privado.POST("/comandas/:id/pdf", caixa, h.RegerarPDFComanda)

	ambientes := privado.Group("/ambientes")
	{
		ambientes.GET("", h.ListarAmbientes)
		ambientes.POST("", gerente, h.CriarAmbiente)
		ambientes.PUT("/:id", gerente, h.AtualizarAmbiente)
		ambientes.DELETE("/:id", gerente, h.ExcluirAmbiente)
	}

	produtos := privado.Group("/produtos")
	{
		produtos.GET("", h.ListarProdutos)
		produtos.GET("/:id", h.BuscarProduto)
		produtos.POST("", gerente, h.CriarProduto)
	}

	pedidos := privado.Group("/orders")
	{
		pedidos.POST("", h.CriarPedido)
		pedidos.GET("", h.ListarPedidos)
		pedidos.GET("/:id", h.BuscarPedido)
		pedidos.PUT("/:id/status", h.AtualizarStatusPedido)
	}
}
