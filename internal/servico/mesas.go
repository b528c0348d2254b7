package servico

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"servico-restaurante/internal/dominio"

	"github.com/google/uuid"
)

const limitePadraoMesas = 10

type MesaServico struct {
	armazem     Armazem
	notificador Notificador
	cache       CacheMesas
	agora       relogio
}

// NovoMesaServico aceita cache nil; nesse caso a listagem de disponíveis vai
// sempre ao banco.
func NovoMesaServico(armazem Armazem, notificador Notificador, cache CacheMesas) *MesaServico {
	return &MesaServico{armazem: armazem, notificador: notificador, cache: cache, agora: agoraPadrao}
}

type DadosMesa struct {
	NumeroMesa *int
	AmbienteID *uuid.UUID
	Capacidade *int
}

func (s *MesaServico) Criar(ctx context.Context, numero int, ambienteID uuid.UUID, capacidade int) (*dominio.Mesa, error) {
	mesa, err := dominio.NovaMesa(numero, ambienteID, capacidade)
	if err != nil {
		return nil, err
	}

	err = s.armazem.Transacao(ctx, func(r Repositorios) error {
		if _, err := r.Ambientes.BuscarPorID(ctx, ambienteID); err != nil {
			return err
		}
		existente, err := r.Mesas.BuscarPorNumero(ctx, numero)
		if err != nil {
			return err
		}
		if existente != nil {
			return dominio.Conflito("Número da mesa já está em uso.")
		}
		return r.Mesas.Criar(ctx, mesa)
	})
	if err != nil {
		return nil, err
	}

	notificar(ctx, s.notificador, dominio.EventoMesaCriada, mesa)
	return mesa, nil
}

func (s *MesaServico) Atualizar(ctx context.Context, id uuid.UUID, dados DadosMesa) (*dominio.Mesa, error) {
	var mesa *dominio.Mesa
	err := s.armazem.Transacao(ctx, func(r Repositorios) error {
		var err error
		mesa, err = r.Mesas.BuscarParaAtualizar(ctx, id)
		if err != nil {
			return err
		}

		if dados.NumeroMesa != nil && *dados.NumeroMesa != mesa.NumeroMesa {
			if *dados.NumeroMesa < 1 {
				return dominio.Validacao("Número da mesa é obrigatório.")
			}
			existente, err := r.Mesas.BuscarPorNumero(ctx, *dados.NumeroMesa)
			if err != nil {
				return err
			}
			if existente != nil {
				return dominio.Conflito("Número da mesa já está em uso.")
			}
			mesa.NumeroMesa = *dados.NumeroMesa
		}

		if dados.AmbienteID != nil && *dados.AmbienteID != mesa.AmbienteID {
			if _, err := r.Ambientes.BuscarPorID(ctx, *dados.AmbienteID); err != nil {
				return err
			}
			mesa.AmbienteID = *dados.AmbienteID
			mesa.Ambiente = nil
		}

		if dados.Capacidade != nil && *dados.Capacidade != mesa.Capacidade {
			for _, a := range mesa.Assentos {
				if a.NumeroAssento > *dados.Capacidade && len(a.Pedidos) > 0 {
					return dominio.Validacao("Não é possível remover assento com pedidos.")
				}
			}
			if err := mesa.AjustarCapacidade(*dados.Capacidade); err != nil {
				return err
			}
		}

		return r.Mesas.Salvar(ctx, mesa)
	})
	if err != nil {
		return nil, err
	}

	notificar(ctx, s.notificador, dominio.EventoMesaAtualizada, mesa)
	return mesa, nil
}

func (s *MesaServico) Excluir(ctx context.Context, id uuid.UUID) error {
	repos := s.armazem.Repositorios()
	if _, err := repos.Mesas.BuscarPorID(ctx, id); err != nil {
		return err
	}
	if err := repos.Mesas.Excluir(ctx, id); err != nil {
		return fmt.Errorf("falha ao excluir mesa: %w", err)
	}
	notificar(ctx, s.notificador, dominio.EventoMesaExcluida, map[string]uuid.UUID{"id": id})
	return nil
}

func (s *MesaServico) BuscarPorID(ctx context.Context, id uuid.UUID) (*dominio.Mesa, error) {
	return s.armazem.Repositorios().Mesas.BuscarPorID(ctx, id)
}

func (s *MesaServico) Listar(ctx context.Context, pagina, limite int) (*Pagina[dominio.Mesa], error) {
	pagina, limite = normalizarPaginacao(pagina, limite, limitePadraoMesas)
	mesas, total, err := s.armazem.Repositorios().Mesas.Listar(ctx, FiltroMesas{Pagina: pagina, Limite: limite})
	if err != nil {
		return nil, fmt.Errorf("falha ao listar mesas: %w", err)
	}
	return novaPagina(mesas, total, pagina, limite), nil
}

func (s *MesaServico) ListarPorAmbiente(ctx context.Context, ambienteID uuid.UUID) ([]dominio.Mesa, error) {
	repos := s.armazem.Repositorios()
	if _, err := repos.Ambientes.BuscarPorID(ctx, ambienteID); err != nil {
		return nil, err
	}
	mesas, _, err := repos.Mesas.Listar(ctx, FiltroMesas{AmbienteID: &ambienteID})
	if err != nil {
		return nil, fmt.Errorf("falha ao listar mesas do ambiente: %w", err)
	}
	return mesas, nil
}

// ListarDisponiveis consulta o cache antes do banco. Falhas do cache não
// impedem a resposta.
func (s *MesaServico) ListarDisponiveis(ctx context.Context) ([]dominio.Mesa, error) {
	if s.cache != nil {
		mesas, ok, err := s.cache.ObterDisponiveis(ctx)
		if err != nil {
			log.Printf("Erro ao ler cache de mesas: %v", err)
		} else if ok {
			return mesas, nil
		}
	}

	livre := dominio.MesaLivre
	mesas, _, err := s.armazem.Repositorios().Mesas.Listar(ctx, FiltroMesas{Status: &livre})
	if err != nil {
		return nil, fmt.Errorf("falha ao listar mesas disponíveis: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.GuardarDisponiveis(ctx, mesas); err != nil {
			log.Printf("Erro ao gravar cache de mesas: %v", err)
		}
	}
	return mesas, nil
}

// AtualizarStatus aplica uma transição manual. Voltar a livre exige que todos
// os pedidos da mesa e dos assentos estejam entregues; a ocupação em si não é
// encerrada (pedidos e garçom continuam até o fechamento).
func (s *MesaServico) AtualizarStatus(ctx context.Context, id uuid.UUID, status string) (*dominio.Mesa, error) {
	para, err := dominio.ParseStatusMesa(status)
	if err != nil {
		return nil, err
	}

	var mesa *dominio.Mesa
	err = s.armazem.Transacao(ctx, func(r Repositorios) error {
		var err error
		mesa, err = r.Mesas.BuscarParaAtualizar(ctx, id)
		if err != nil {
			return err
		}
		if err := mesa.ValidarTransicao(para); err != nil {
			return err
		}

		if para == dominio.MesaLivre {
			if refs := mesa.PedidosReferenciados(); len(refs) > 0 {
				pendentes, err := r.Pedidos.ContarPendentes(ctx, refs)
				if err != nil {
					return err
				}
				if pendentes > 0 {
					return dominio.Validacao("Não é possível liberar a mesa: existem pedidos não entregues.")
				}
			}
		}

		var desde *time.Time
		if para == dominio.MesaOcupada {
			agora := s.agora()
			desde = &agora
		}
		if err := r.Mesas.TrocarStatus(ctx, mesa.ID, mesa.Status, para, desde); err != nil {
			return err
		}
		mesa.Status = para
		mesa.OcupadaDesde = desde
		return nil
	})
	if err != nil {
		if errors.Is(err, dominio.ErrConflito) {
			return nil, dominio.Conflito("A mesa foi alterada por outra operação. Tente novamente.")
		}
		return nil, err
	}

	notificar(ctx, s.notificador, eventoDoStatus(para), mesa)
	return mesa, nil
}

func eventoDoStatus(status dominio.StatusMesa) string {
	switch status {
	case dominio.MesaOcupada:
		return dominio.EventoMesaOcupada
	case dominio.MesaReservada:
		return dominio.EventoMesaReservada
	default:
		return dominio.EventoMesaLiberada
	}
}
