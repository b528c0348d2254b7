package servico

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"servico-restaurante/internal/dominio"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const limitePadraoFinalizadas = 10

type LiquidacaoServico struct {
	armazem     Armazem
	notificador Notificador
	gerador     GeradorRecibo
	agora       relogio
}

func NovoLiquidacaoServico(armazem Armazem, notificador Notificador, gerador GeradorRecibo) *LiquidacaoServico {
	return &LiquidacaoServico{armazem: armazem, notificador: notificador, gerador: gerador, agora: agoraPadrao}
}

// SolicitacaoFinalizacao é o fechamento pedido pelo caixa. GarcomID tem
// precedência sobre o garçom da mesa, que tem precedência sobre UsuarioID.
type SolicitacaoFinalizacao struct {
	FormaPagamento   string
	ValorPago        decimal.Decimal
	TipoDesconto     string
	ValorDesconto    decimal.Decimal
	ValorTaxaServico decimal.Decimal
	GarcomID         *uuid.UUID
	UsuarioID        *uuid.UUID
}

type ResultadoFinalizacao struct {
	Comanda        *dominio.Comanda        `json:"comanda"`
	MesaFinalizada *dominio.MesaFinalizada `json:"mesaFinalizada"`
	Mesa           *dominio.Mesa           `json:"mesa"`
	Totais         dominio.Totais          `json:"totais"`
	PdfPath        *string                 `json:"pdfPath"`
}

// payload do evento Mesa.Finalizada consumido pelos serviços de nota fiscal e
// e-mail.
type eventoMesaFinalizada struct {
	ComandaID        uuid.UUID              `json:"comandaId"`
	MesaID           uuid.UUID              `json:"mesaId"`
	NumeroMesa       int                    `json:"numeroMesa"`
	GarcomID         *uuid.UUID             `json:"garcomId,omitempty"`
	FormaPagamento   dominio.FormaPagamento `json:"formaPagamento"`
	ValorTotal       decimal.Decimal        `json:"valorTotal"`
	TotalComDesconto decimal.Decimal        `json:"totalComDesconto"`
	ValorTaxaServico decimal.Decimal        `json:"valorTaxaServico"`
	ValorPago        decimal.Decimal        `json:"valorPago"`
	Troco            decimal.Decimal        `json:"troco"`
	DataFinalizacao  time.Time              `json:"dataFinalizacao"`
	PdfPath          *string                `json:"pdfPath,omitempty"`
}

func (s *LiquidacaoServico) FinalizarMesa(ctx context.Context, mesaID uuid.UUID, req SolicitacaoFinalizacao) (*ResultadoFinalizacao, error) {
	forma, err := dominio.ParseFormaPagamento(req.FormaPagamento)
	if err != nil {
		return nil, err
	}
	tipo, err := dominio.ParseTipoDesconto(req.TipoDesconto)
	if err != nil {
		return nil, err
	}
	pg := dominio.Pagamento{
		Forma:         forma,
		ValorPago:     req.ValorPago,
		TipoDesconto:  tipo,
		ValorDesconto: req.ValorDesconto,
		TaxaServico:   req.ValorTaxaServico,
	}
	if err := pg.Validar(); err != nil {
		return nil, err
	}

	var res *ResultadoFinalizacao
	err = s.armazem.Transacao(ctx, func(r Repositorios) error {
		mesa, err := r.Mesas.BuscarParaAtualizar(ctx, mesaID)
		if err != nil {
			return err
		}
		if mesa.Status != dominio.MesaOcupada {
			return dominio.Validacao("Mesa não está ocupada ou já foi finalizada.")
		}

		pedidos, err := r.Pedidos.ListarEntreguesDaMesa(ctx, mesa.ID)
		if err != nil {
			return err
		}
		if len(pedidos) == 0 {
			return dominio.Validacao("Nenhum pedido com status \"Entregue\" para finalizar.")
		}

		totais, err := dominio.CalcularTotais(pedidos, pg)
		if err != nil {
			return err
		}

		agora := s.agora()
		comanda := dominio.NovaComanda(mesa, escolherGarcom(req, mesa), pedidos, pg, totais, agora)
		if err := r.Liquidacao.CriarComanda(ctx, comanda); err != nil {
			return fmt.Errorf("falha ao criar comanda: %w", err)
		}

		// sem PDF o fechamento segue; o recibo pode ser gerado de novo depois
		if caminho, err := s.gerador.Gerar(ctx, comanda); err != nil {
			log.Printf("Erro ao gerar PDF da comanda %s: %v", comanda.ID, err)
		} else {
			comanda.PdfPath = &caminho
			if err := r.Liquidacao.AnexarPDF(ctx, comanda.ID, caminho); err != nil {
				return fmt.Errorf("falha ao anexar PDF: %w", err)
			}
		}

		finalizada := dominio.NovaMesaFinalizada(comanda)
		if err := r.Liquidacao.CriarMesaFinalizada(ctx, finalizada); err != nil {
			return fmt.Errorf("falha ao registrar mesa finalizada: %w", err)
		}

		evento, err := dominio.NovoEventoOutbox(dominio.EventoOutboxMesaFinalizada, comanda.ID, eventoMesaFinalizada{
			ComandaID:        comanda.ID,
			MesaID:           mesa.ID,
			NumeroMesa:       mesa.NumeroMesa,
			GarcomID:         comanda.GarcomID,
			FormaPagamento:   comanda.FormaPagamento,
			ValorTotal:       comanda.ValorTotal,
			TotalComDesconto: comanda.TotalComDesconto,
			ValorTaxaServico: comanda.ValorTaxaServico,
			ValorPago:        comanda.ValorPago,
			Troco:            comanda.Troco,
			DataFinalizacao:  agora,
			PdfPath:          comanda.PdfPath,
		}, agora)
		if err != nil {
			return err
		}
		if err := r.Liquidacao.RegistrarEvento(ctx, evento); err != nil {
			return fmt.Errorf("falha ao registrar evento: %w", err)
		}

		if err := r.Mesas.Liberar(ctx, mesa.ID); err != nil {
			return err
		}
		if err := r.Pedidos.MarcarFinalizados(ctx, comanda.PedidoIDs); err != nil {
			return fmt.Errorf("falha ao finalizar pedidos: %w", err)
		}

		mesa.Limpar()
		res = &ResultadoFinalizacao{
			Comanda:        comanda,
			MesaFinalizada: finalizada,
			Mesa:           mesa,
			Totais:         totais,
			PdfPath:        comanda.PdfPath,
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, dominio.ErrConflito) {
			return nil, dominio.Conflito("A mesa foi alterada por outra operação. Tente novamente.")
		}
		return nil, err
	}

	notificar(ctx, s.notificador, dominio.EventoMesaFinalizada, res)
	notificar(ctx, s.notificador, dominio.EventoMesaLiberada, res.Mesa)
	return res, nil
}

func escolherGarcom(req SolicitacaoFinalizacao, mesa *dominio.Mesa) *uuid.UUID {
	switch {
	case req.GarcomID != nil:
		return req.GarcomID
	case mesa.GarcomID != nil:
		return mesa.GarcomID
	default:
		return req.UsuarioID
	}
}

func (s *LiquidacaoServico) BuscarComanda(ctx context.Context, id uuid.UUID) (*dominio.Comanda, error) {
	return s.armazem.Repositorios().Liquidacao.BuscarComanda(ctx, id)
}

// RegerarPDF gera o recibo de novo, útil quando o fechamento ficou sem PDF.
func (s *LiquidacaoServico) RegerarPDF(ctx context.Context, comandaID uuid.UUID) (*dominio.Comanda, error) {
	var comanda *dominio.Comanda
	err := s.armazem.Transacao(ctx, func(r Repositorios) error {
		var err error
		comanda, err = r.Liquidacao.BuscarComanda(ctx, comandaID)
		if err != nil {
			return err
		}
		caminho, err := s.gerador.Gerar(ctx, comanda)
		if err != nil {
			return fmt.Errorf("falha ao gerar PDF: %w", err)
		}
		if err := r.Liquidacao.AnexarPDF(ctx, comanda.ID, caminho); err != nil {
			return err
		}
		if err := r.Liquidacao.AnexarPDFMesaFinalizada(ctx, comanda.ID, caminho); err != nil {
			return err
		}
		comanda.PdfPath = &caminho
		return nil
	})
	if err != nil {
		return nil, err
	}
	return comanda, nil
}

func (s *LiquidacaoServico) ListarFinalizadas(ctx context.Context, filtro FiltroFinalizadas) (*Pagina[dominio.MesaFinalizada], error) {
	filtro.Pagina, filtro.Limite = normalizarPaginacao(filtro.Pagina, filtro.Limite, limitePadraoFinalizadas)
	if filtro.DataInicial != nil && filtro.DataFinal != nil && filtro.DataFinal.Before(*filtro.DataInicial) {
		return nil, dominio.Validacao("Data final anterior à data inicial.")
	}
	finalizadas, total, err := s.armazem.Repositorios().Liquidacao.ListarMesasFinalizadas(ctx, filtro)
	if err != nil {
		return nil, fmt.Errorf("falha ao listar mesas finalizadas: %w", err)
	}
	return novaPagina(finalizadas, total, filtro.Pagina, filtro.Limite), nil
}
