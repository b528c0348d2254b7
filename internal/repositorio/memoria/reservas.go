package memoria

import (
	"context"
	"time"

	"servico-restaurante/internal/dominio"
	"servico-restaurante/internal/servico"

	"github.com/google/uuid"
)

type reservas struct{ a acesso }

func (r *reservas) Criar(ctx context.Context, reserva *dominio.Reserva) error {
	return r.a.escrever(func(d *dados) error {
		if reserva.ID == uuid.Nil {
			reserva.ID = uuid.New()
		}
		if reserva.Status == "" {
			reserva.Status = dominio.ReservaAtiva
		}
		agora := time.Now()
		reserva.CreatedAt, reserva.UpdatedAt = agora, agora
		rv := *reserva
		rv.Mesa = nil
		d.reservas[rv.ID] = rv
		return nil
	})
}

func (r *reservas) Salvar(ctx context.Context, reserva *dominio.Reserva) error {
	return r.a.escrever(func(d *dados) error {
		rv, ok := d.reservas[reserva.ID]
		if !ok {
			return dominio.NaoEncontrado("Reserva não encontrada")
		}
		rv.NomeCliente = reserva.NomeCliente
		rv.Telefone = reserva.Telefone
		rv.DataReserva = reserva.DataReserva
		rv.NumeroPessoas = reserva.NumeroPessoas
		rv.Status = reserva.Status
		rv.UpdatedAt = time.Now()
		d.reservas[rv.ID] = rv
		return nil
	})
}

func (r *reservas) Excluir(ctx context.Context, id uuid.UUID) error {
	return r.a.escrever(func(d *dados) error {
		if _, ok := d.reservas[id]; !ok {
			return dominio.NaoEncontrado("Reserva não encontrada")
		}
		delete(d.reservas, id)
		return nil
	})
}

func (r *reservas) BuscarPorID(ctx context.Context, id uuid.UUID) (*dominio.Reserva, error) {
	var reserva *dominio.Reserva
	r.a.ler(func(d *dados) {
		if rv, ok := d.reservas[id]; ok {
			reserva = comMesaReservada(d, rv)
		}
	})
	if reserva == nil {
		return nil, dominio.NaoEncontrado("Reserva não encontrada")
	}
	return reserva, nil
}

func (r *reservas) Listar(ctx context.Context, filtro servico.FiltroReservas) ([]dominio.Reserva, int64, error) {
	var lista []dominio.Reserva
	r.a.ler(func(d *dados) {
		for _, rv := range d.reservas {
			if filtro.MesaID != nil && rv.MesaID != *filtro.MesaID {
				continue
			}
			if filtro.Status != nil && rv.Status != *filtro.Status {
				continue
			}
			lista = append(lista, *comMesaReservada(d, rv))
		}
	})
	ordenar(lista, func(a, b dominio.Reserva) bool {
		if !a.DataReserva.Equal(b.DataReserva) {
			return a.DataReserva.Before(b.DataReserva)
		}
		return a.ID.String() < b.ID.String()
	})
	return paginar(lista, filtro.Pagina, filtro.Limite), int64(len(lista)), nil
}

func (r *reservas) ContarAtivas(ctx context.Context, mesaID uuid.UUID, horario *time.Time, exceto uuid.UUID) (int64, error) {
	var n int64
	r.a.ler(func(d *dados) {
		for _, rv := range d.reservas {
			if rv.MesaID != mesaID || rv.Status != dominio.ReservaAtiva || rv.ID == exceto {
				continue
			}
			if horario != nil && !rv.DataReserva.Equal(*horario) {
				continue
			}
			n++
		}
	})
	return n, nil
}

func comMesaReservada(d *dados, rv dominio.Reserva) *dominio.Reserva {
	rv.Mesa = nil
	if m, ok := d.mesas[rv.MesaID]; ok {
		rv.Mesa = comAmbiente(d, m)
	}
	return &rv
}
