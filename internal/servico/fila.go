package servico

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"servico-restaurante/internal/dominio"

	"github.com/google/uuid"
)

const (
	tentativasAtribuicao = 3
	limitePadraoFila     = 5
)

type FilaServico struct {
	armazem     Armazem
	notificador Notificador
	agora       relogio
}

func NovoFilaServico(armazem Armazem, notificador Notificador) *FilaServico {
	return &FilaServico{armazem: armazem, notificador: notificador, agora: agoraPadrao}
}

// DadosEntrada traz os campos editáveis; nil mantém o valor atual.
type DadosEntrada struct {
	Nome          *string
	NumeroPessoas *int
	Contato       *string
	Telefone      *string
}

// MesaDisponivel devolve a menor mesa livre que comporta o grupo, ou nil.
func (s *FilaServico) MesaDisponivel(ctx context.Context, pessoas int) (*dominio.Mesa, error) {
	return s.armazem.Repositorios().Mesas.BuscarLivreParaGrupo(ctx, pessoas)
}

// ProximaEntrada devolve a entrada mais antiga que cabe na capacidade, ou nil.
func (s *FilaServico) ProximaEntrada(ctx context.Context, capacidade int) (*dominio.EntradaFila, error) {
	return s.armazem.Repositorios().Fila.ProximaAguardando(ctx, capacidade)
}

func (s *FilaServico) CriarEntrada(ctx context.Context, dados DadosEntrada) (*dominio.EntradaFila, error) {
	entrada := &dominio.EntradaFila{
		ID:        uuid.New(),
		Status:    dominio.FilaAguardando,
		CreatedAt: s.agora(),
	}
	aplicarDadosEntrada(entrada, dados)
	if err := entrada.Validar(); err != nil {
		return nil, err
	}

	if err := s.armazem.Repositorios().Fila.Criar(ctx, entrada); err != nil {
		return nil, fmt.Errorf("falha ao criar entrada na fila: %w", err)
	}
	notificar(ctx, s.notificador, dominio.EventoFilaCriada, entrada)

	s.tentarSentar(ctx, entrada)
	return entrada, nil
}

// AtualizarEntrada edita os dados do grupo. Um grupo já sentado não pode
// crescer além da capacidade da mesa dele.
func (s *FilaServico) AtualizarEntrada(ctx context.Context, id uuid.UUID, dados DadosEntrada) (*dominio.EntradaFila, error) {
	var entrada *dominio.EntradaFila
	err := s.armazem.Transacao(ctx, func(r Repositorios) error {
		var err error
		entrada, err = r.Fila.BuscarPorID(ctx, id)
		if err != nil {
			return err
		}

		aplicarDadosEntrada(entrada, dados)
		if err := entrada.Validar(); err != nil {
			return err
		}
		if entrada.MesaID != nil && entrada.Status == dominio.FilaAguardando {
			mesa, err := r.Mesas.BuscarPorID(ctx, *entrada.MesaID)
			if err != nil && !errors.Is(err, dominio.ErrNaoEncontrado) {
				return err
			}
			if mesa != nil && entrada.NumeroPessoas > mesa.Capacidade {
				return dominio.Validacao(fmt.Sprintf("A mesa %d comporta no máximo %d pessoas.", mesa.NumeroMesa, mesa.Capacidade))
			}
		}
		return r.Fila.Salvar(ctx, entrada)
	})
	if err != nil {
		return nil, err
	}

	if entrada.PodeSerAtribuida() {
		s.tentarSentar(ctx, entrada)
	}
	return entrada, nil
}

// FinalizarEntrada encerra a entrada e devolve a mesa dela para livre. A mesa
// liberada não é oferecida à fila aqui; isso só acontece na remoção.
func (s *FilaServico) FinalizarEntrada(ctx context.Context, id uuid.UUID) (*dominio.EntradaFila, error) {
	var entrada *dominio.EntradaFila
	var liberada *dominio.Mesa

	err := s.armazem.Transacao(ctx, func(r Repositorios) error {
		var err error
		entrada, err = r.Fila.BuscarPorID(ctx, id)
		if err != nil {
			return err
		}
		if err := entrada.Finalizar(); err != nil {
			return err
		}
		if err := r.Fila.Finalizar(ctx, entrada.ID); err != nil {
			return err
		}
		if entrada.MesaID == nil {
			return nil
		}
		liberada, err = liberarMesaDaEntrada(ctx, r, entrada)
		return err
	})
	if err != nil {
		return nil, err
	}

	notificar(ctx, s.notificador, dominio.EventoFilaFinalizada, entrada)
	if liberada != nil {
		notificar(ctx, s.notificador, dominio.EventoMesaLiberada, liberada)
	}
	return entrada, nil
}

// ExcluirEntrada remove a entrada. Se ela ocupava uma mesa, a mesa é liberada e
// oferecida à próxima entrada compatível na mesma transação. Devolve a entrada
// que foi sentada, se houver.
func (s *FilaServico) ExcluirEntrada(ctx context.Context, id uuid.UUID) (*dominio.EntradaFila, error) {
	var liberada *dominio.Mesa
	var sentada *dominio.EntradaFila

	err := s.armazem.Transacao(ctx, func(r Repositorios) error {
		entrada, err := r.Fila.BuscarPorID(ctx, id)
		if err != nil {
			return err
		}
		if err := r.Fila.Excluir(ctx, entrada.ID); err != nil {
			return err
		}
		if entrada.MesaID == nil || entrada.Status == dominio.FilaFinalizado {
			return nil
		}

		liberada, err = liberarMesaDaEntrada(ctx, r, entrada)
		if err != nil || liberada == nil {
			return err
		}

		proxima, err := r.Fila.ProximaAguardando(ctx, liberada.Capacidade)
		if err != nil || proxima == nil {
			return err
		}
		agora := s.agora()
		if err := r.Mesas.TrocarStatus(ctx, liberada.ID, dominio.MesaLivre, dominio.MesaOcupada, &agora); err != nil {
			return err
		}
		proxima.Atribuir(liberada.ID, agora)
		if err := r.Fila.Atribuir(ctx, proxima); err != nil {
			return err
		}
		sentada = proxima
		return nil
	})
	if err != nil {
		return nil, err
	}

	notificar(ctx, s.notificador, dominio.EventoFilaRemovida, map[string]uuid.UUID{"id": id})
	if liberada != nil {
		notificar(ctx, s.notificador, dominio.EventoMesaLiberada, liberada)
	}
	if sentada != nil {
		liberada.Status = dominio.MesaOcupada
		liberada.OcupadaDesde = sentada.AtribuidaEm
		notificar(ctx, s.notificador, dominio.EventoMesaOcupada, liberada)
		notificar(ctx, s.notificador, dominio.EventoFilaAtribuida, sentada)
	}
	return sentada, nil
}

func (s *FilaServico) ListarEntradas(ctx context.Context, pagina, limite int) (*Pagina[dominio.EntradaFila], error) {
	pagina, limite = normalizarPaginacao(pagina, limite, limitePadraoFila)
	entradas, total, err := s.armazem.Repositorios().Fila.Listar(ctx, pagina, limite)
	if err != nil {
		return nil, fmt.Errorf("falha ao listar fila: %w", err)
	}
	return novaPagina(entradas, total, pagina, limite), nil
}

// tentarSentar é best effort: sem mesa, ou depois de perder a disputa
// tentativasAtribuicao vezes, a entrada continua aguardando.
func (s *FilaServico) tentarSentar(ctx context.Context, entrada *dominio.EntradaFila) {
	for tentativa := 1; tentativa <= tentativasAtribuicao; tentativa++ {
		mesa, err := s.sentar(ctx, entrada)
		if err == nil {
			if mesa != nil {
				notificar(ctx, s.notificador, dominio.EventoMesaOcupada, mesa)
				notificar(ctx, s.notificador, dominio.EventoFilaAtribuida, entrada)
			}
			return
		}
		if !errors.Is(err, dominio.ErrConflito) {
			log.Printf("Erro ao atribuir mesa para a entrada %s: %v", entrada.ID, err)
			return
		}
		log.Printf("Conflito ao atribuir mesa para a entrada %s (tentativa %d)", entrada.ID, tentativa)
	}
}

func (s *FilaServico) sentar(ctx context.Context, entrada *dominio.EntradaFila) (*dominio.Mesa, error) {
	var mesa *dominio.Mesa
	candidata := *entrada

	err := s.armazem.Transacao(ctx, func(r Repositorios) error {
		livre, err := r.Mesas.BuscarLivreParaGrupo(ctx, candidata.NumeroPessoas)
		if err != nil || livre == nil {
			return err
		}
		agora := s.agora()
		if err := r.Mesas.TrocarStatus(ctx, livre.ID, dominio.MesaLivre, dominio.MesaOcupada, &agora); err != nil {
			return err
		}
		candidata.Atribuir(livre.ID, agora)
		if err := r.Fila.Atribuir(ctx, &candidata); err != nil {
			return err
		}
		livre.Status = dominio.MesaOcupada
		livre.OcupadaDesde = &agora
		mesa = livre
		return nil
	})
	if err != nil || mesa == nil {
		return nil, err
	}
	*entrada = candidata
	return mesa, nil
}

// liberarMesaDaEntrada devolve nil quando a mesa já não existe ou quando a
// ocupação atual não é mais a da entrada (mesa fechada e reocupada depois).
// Mesa com pedidos não é liberada por aqui; isso é papel do fechamento.
func liberarMesaDaEntrada(ctx context.Context, r Repositorios, entrada *dominio.EntradaFila) (*dominio.Mesa, error) {
	mesa, err := r.Mesas.BuscarParaAtualizar(ctx, *entrada.MesaID)
	if errors.Is(err, dominio.ErrNaoEncontrado) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if !entrada.OcupaMesa(mesa) {
		return nil, nil
	}
	if len(mesa.PedidosReferenciados()) > 0 {
		return nil, dominio.Validacao("A mesa desta entrada tem pedidos em aberto. Finalize a mesa antes.")
	}
	if err := r.Mesas.TrocarStatus(ctx, mesa.ID, dominio.MesaOcupada, dominio.MesaLivre, nil); err != nil {
		return nil, err
	}
	mesa.Status = dominio.MesaLivre
	mesa.OcupadaDesde = nil
	return mesa, nil
}

func aplicarDadosEntrada(e *dominio.EntradaFila, d DadosEntrada) {
	if d.Nome != nil {
		e.Nome = strings.TrimSpace(*d.Nome)
	}
	if d.NumeroPessoas != nil {
		e.NumeroPessoas = *d.NumeroPessoas
	}
	if d.Contato != nil {
		e.Contato = *d.Contato
	}
	if d.Telefone != nil {
		e.Telefone = strings.TrimSpace(*d.Telefone)
	}
}
