package servico

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"servico-restaurante/internal/dominio"

	"github.com/google/uuid"
)

const limitePadraoReservas = 10

// ReservaServico cuida das reservas e das trocas livre/reservada que elas
// provocam na mesa.
type ReservaServico struct {
	armazem     Armazem
	notificador Notificador
}

func NovoReservaServico(armazem Armazem, notificador Notificador) *ReservaServico {
	return &ReservaServico{armazem: armazem, notificador: notificador}
}

// DadosReserva traz os campos editáveis; nil mantém o valor atual.
type DadosReserva struct {
	NomeCliente   *string
	Telefone      *string
	MesaID        *uuid.UUID
	DataReserva   *time.Time
	NumeroPessoas *int
	Status        *string
}

// Criar grava a reserva e marca a mesa como reservada. Duas reservas ativas
// no mesmo horário para a mesma mesa são conflito.
func (s *ReservaServico) Criar(ctx context.Context, dados DadosReserva) (*dominio.Reserva, error) {
	reserva := &dominio.Reserva{ID: uuid.New(), Status: dominio.ReservaAtiva}
	if dados.MesaID != nil {
		reserva.MesaID = *dados.MesaID
	}
	aplicarDadosReserva(reserva, dados)
	if err := reserva.Validar(); err != nil {
		return nil, err
	}

	var reservada *dominio.Mesa
	err := s.armazem.Transacao(ctx, func(r Repositorios) error {
		mesa, err := r.Mesas.BuscarParaAtualizar(ctx, reserva.MesaID)
		if err != nil {
			return err
		}
		if err := conferirReserva(ctx, r, reserva, mesa); err != nil {
			return err
		}
		if err := r.Reservas.Criar(ctx, reserva); err != nil {
			return fmt.Errorf("falha ao criar reserva: %w", err)
		}
		if mesa.Status == dominio.MesaReservada {
			return nil
		}
		if err := mesa.ValidarTransicao(dominio.MesaReservada); err != nil {
			return err
		}
		if err := r.Mesas.TrocarStatus(ctx, mesa.ID, mesa.Status, dominio.MesaReservada, nil); err != nil {
			return err
		}
		mesa.Status = dominio.MesaReservada
		reservada = mesa
		return nil
	})
	if err != nil {
		return nil, err
	}

	notificar(ctx, s.notificador, dominio.EventoReservaCriada, reserva)
	if reservada != nil {
		notificar(ctx, s.notificador, dominio.EventoMesaReservada, reservada)
	}
	return reserva, nil
}

// Atualizar edita a reserva. A mesa não muda; para trocar de mesa a reserva é
// excluída e criada de novo. Concluir ou cancelar devolve a mesa a livre quando
// não resta outra reserva ativa para ela.
func (s *ReservaServico) Atualizar(ctx context.Context, id uuid.UUID, dados DadosReserva) (*dominio.Reserva, error) {
	var reserva *dominio.Reserva
	var liberada *dominio.Mesa

	err := s.armazem.Transacao(ctx, func(r Repositorios) error {
		var err error
		reserva, err = r.Reservas.BuscarPorID(ctx, id)
		if err != nil {
			return err
		}
		if dados.MesaID != nil && *dados.MesaID != reserva.MesaID {
			return dominio.Validacao("A mesa da reserva não pode ser alterada.")
		}

		aplicarDadosReserva(reserva, dados)
		if err := reserva.Validar(); err != nil {
			return err
		}
		if dados.Status != nil {
			para, err := dominio.ParseStatusReserva(*dados.Status)
			if err != nil {
				return err
			}
			if para != reserva.Status {
				if err := reserva.Encerrar(para); err != nil {
					return err
				}
			}
		}

		if reserva.Status == dominio.ReservaAtiva {
			mesa, err := r.Mesas.BuscarPorID(ctx, reserva.MesaID)
			if err != nil {
				return err
			}
			if err := conferirReserva(ctx, r, reserva, mesa); err != nil {
				return err
			}
		}
		if err := r.Reservas.Salvar(ctx, reserva); err != nil {
			return fmt.Errorf("falha ao atualizar reserva: %w", err)
		}

		if reserva.Status != dominio.ReservaAtiva {
			liberada, err = liberarMesaReservada(ctx, r, reserva.MesaID, reserva.ID)
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	notificar(ctx, s.notificador, dominio.EventoReservaAlterada, reserva)
	if liberada != nil {
		notificar(ctx, s.notificador, dominio.EventoMesaLiberada, liberada)
	}
	return reserva, nil
}

// Excluir remove a reserva; se era a última ativa da mesa, a mesa volta a livre.
func (s *ReservaServico) Excluir(ctx context.Context, id uuid.UUID) error {
	var liberada *dominio.Mesa

	err := s.armazem.Transacao(ctx, func(r Repositorios) error {
		reserva, err := r.Reservas.BuscarPorID(ctx, id)
		if err != nil {
			return err
		}
		if err := r.Reservas.Excluir(ctx, reserva.ID); err != nil {
			return err
		}
		if reserva.Status != dominio.ReservaAtiva {
			return nil
		}
		liberada, err = liberarMesaReservada(ctx, r, reserva.MesaID, reserva.ID)
		return err
	})
	if err != nil {
		return err
	}

	notificar(ctx, s.notificador, dominio.EventoReservaExcluida, map[string]uuid.UUID{"id": id})
	if liberada != nil {
		notificar(ctx, s.notificador, dominio.EventoMesaLiberada, liberada)
	}
	return nil
}

func (s *ReservaServico) BuscarPorID(ctx context.Context, id uuid.UUID) (*dominio.Reserva, error) {
	return s.armazem.Repositorios().Reservas.BuscarPorID(ctx, id)
}

func (s *ReservaServico) Listar(ctx context.Context, filtro FiltroReservas) (*Pagina[dominio.Reserva], error) {
	filtro.Pagina, filtro.Limite = normalizarPaginacao(filtro.Pagina, filtro.Limite, limitePadraoReservas)
	reservas, total, err := s.armazem.Repositorios().Reservas.Listar(ctx, filtro)
	if err != nil {
		return nil, fmt.Errorf("falha ao listar reservas: %w", err)
	}
	return novaPagina(reservas, total, filtro.Pagina, filtro.Limite), nil
}

func conferirReserva(ctx context.Context, r Repositorios, reserva *dominio.Reserva, mesa *dominio.Mesa) error {
	if reserva.NumeroPessoas > mesa.Capacidade {
		return dominio.Validacao(fmt.Sprintf("A mesa %d comporta no máximo %d pessoas.", mesa.NumeroMesa, mesa.Capacidade))
	}
	n, err := r.Reservas.ContarAtivas(ctx, mesa.ID, &reserva.DataReserva, reserva.ID)
	if err != nil {
		return err
	}
	if n > 0 {
		return dominio.Conflito("Mesa já reservada para esta data e hora.")
	}
	return nil
}

// liberarMesaReservada só age sobre mesa reservada sem outra reserva ativa.
func liberarMesaReservada(ctx context.Context, r Repositorios, mesaID, exceto uuid.UUID) (*dominio.Mesa, error) {
	n, err := r.Reservas.ContarAtivas(ctx, mesaID, nil, exceto)
	if err != nil || n > 0 {
		return nil, err
	}
	mesa, err := r.Mesas.BuscarParaAtualizar(ctx, mesaID)
	if errors.Is(err, dominio.ErrNaoEncontrado) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if mesa.Status != dominio.MesaReservada {
		return nil, nil
	}
	if err := r.Mesas.TrocarStatus(ctx, mesa.ID, dominio.MesaReservada, dominio.MesaLivre, nil); err != nil {
		return nil, err
	}
	mesa.Status = dominio.MesaLivre
	return mesa, nil
}

func aplicarDadosReserva(rv *dominio.Reserva, d DadosReserva) {
	if d.NomeCliente != nil {
		rv.NomeCliente = strings.TrimSpace(*d.NomeCliente)
	}
	if d.Telefone != nil {
		rv.Telefone = strings.TrimSpace(*d.Telefone)
	}
	if d.DataReserva != nil {
		rv.DataReserva = *d.DataReserva
	}
	if d.NumeroPessoas != nil {
		rv.NumeroPessoas = *d.NumeroPessoas
	}
}
