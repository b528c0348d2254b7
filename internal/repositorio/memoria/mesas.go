package memoria

import (
	"context"
	"time"

	"servico-restaurante/internal/dominio"
	"servico-restaurante/internal/servico"

	"github.com/google/uuid"
)

type mesas struct{ a acesso }

func (r *mesas) Criar(ctx context.Context, mesa *dominio.Mesa) error {
	return r.a.escrever(func(d *dados) error {
		for _, m := range d.mesas {
			if m.NumeroMesa == mesa.NumeroMesa {
				return dominio.Conflito("Número da mesa já está em uso.")
			}
		}
		if mesa.ID == uuid.Nil {
			mesa.ID = uuid.New()
		}
		if mesa.Status == "" {
			mesa.Status = dominio.MesaLivre
		}
		agora := time.Now()
		mesa.CreatedAt, mesa.UpdatedAt = agora, agora
		d.mesas[mesa.ID] = clonarMesa(*mesa)
		return nil
	})
}

func (r *mesas) Salvar(ctx context.Context, mesa *dominio.Mesa) error {
	return r.a.escrever(func(d *dados) error {
		if _, ok := d.mesas[mesa.ID]; !ok {
			return dominio.NaoEncontrado("Mesa não encontrada")
		}
		for _, m := range d.mesas {
			if m.ID != mesa.ID && m.NumeroMesa == mesa.NumeroMesa {
				return dominio.Conflito("Número da mesa já está em uso.")
			}
		}
		mesa.UpdatedAt = time.Now()
		d.mesas[mesa.ID] = clonarMesa(*mesa)
		return nil
	})
}

func (r *mesas) Excluir(ctx context.Context, id uuid.UUID) error {
	return r.a.escrever(func(d *dados) error {
		if _, ok := d.mesas[id]; !ok {
			return dominio.NaoEncontrado("Mesa não encontrada")
		}
		delete(d.mesas, id)
		for k, e := range d.fila {
			if e.MesaID != nil && *e.MesaID == id {
				e.MesaID = nil
				d.fila[k] = e
			}
		}
		for k, rv := range d.reservas {
			if rv.MesaID == id {
				delete(d.reservas, k)
			}
		}
		return nil
	})
}

func (r *mesas) BuscarPorID(ctx context.Context, id uuid.UUID) (*dominio.Mesa, error) {
	var mesa *dominio.Mesa
	r.a.ler(func(d *dados) {
		if m, ok := d.mesas[id]; ok {
			mesa = comAmbiente(d, m)
		}
	})
	if mesa == nil {
		return nil, dominio.NaoEncontrado("Mesa não encontrada")
	}
	return mesa, nil
}

// BuscarParaAtualizar não precisa de trava aqui: as transações já são
// serializadas pelo Armazem.
func (r *mesas) BuscarParaAtualizar(ctx context.Context, id uuid.UUID) (*dominio.Mesa, error) {
	return r.BuscarPorID(ctx, id)
}

func (r *mesas) BuscarPorNumero(ctx context.Context, numero int) (*dominio.Mesa, error) {
	var mesa *dominio.Mesa
	r.a.ler(func(d *dados) {
		for _, m := range d.mesas {
			if m.NumeroMesa == numero {
				mesa = comAmbiente(d, m)
				return
			}
		}
	})
	return mesa, nil
}

func (r *mesas) Listar(ctx context.Context, filtro servico.FiltroMesas) ([]dominio.Mesa, int64, error) {
	var lista []dominio.Mesa
	r.a.ler(func(d *dados) {
		for _, m := range d.mesas {
			if filtro.Status != nil && m.Status != *filtro.Status {
				continue
			}
			if filtro.AmbienteID != nil && m.AmbienteID != *filtro.AmbienteID {
				continue
			}
			lista = append(lista, *comAmbiente(d, m))
		}
	})
	ordenar(lista, func(a, b dominio.Mesa) bool { return a.NumeroMesa < b.NumeroMesa })
	return paginar(lista, filtro.Pagina, filtro.Limite), int64(len(lista)), nil
}

func (r *mesas) BuscarLivreParaGrupo(ctx context.Context, pessoas int) (*dominio.Mesa, error) {
	var melhor *dominio.Mesa
	r.a.ler(func(d *dados) {
		for _, m := range d.mesas {
			if m.Status != dominio.MesaLivre || m.Capacidade < pessoas {
				continue
			}
			if melhor == nil || m.Capacidade < melhor.Capacidade ||
				(m.Capacidade == melhor.Capacidade && m.NumeroMesa < melhor.NumeroMesa) {
				melhor = comAmbiente(d, m)
			}
		}
	})
	return melhor, nil
}

func (r *mesas) TrocarStatus(ctx context.Context, id uuid.UUID, de, para dominio.StatusMesa, ocupadaDesde *time.Time) error {
	return r.a.escrever(func(d *dados) error {
		m, ok := d.mesas[id]
		if !ok {
			return dominio.NaoEncontrado("Mesa não encontrada")
		}
		if m.Status != de {
			return dominio.Conflito("Status da mesa mudou.")
		}
		m.Status = para
		m.OcupadaDesde = ocupadaDesde
		m.UpdatedAt = time.Now()
		d.mesas[id] = m
		return nil
	})
}

func (r *mesas) Liberar(ctx context.Context, id uuid.UUID) error {
	return r.a.escrever(func(d *dados) error {
		m, ok := d.mesas[id]
		if !ok {
			return dominio.NaoEncontrado("Mesa não encontrada")
		}
		if m.Status != dominio.MesaOcupada {
			return dominio.Conflito("Status da mesa mudou.")
		}
		m = clonarMesa(m)
		m.Limpar()
		m.UpdatedAt = time.Now()
		d.mesas[id] = m
		return nil
	})
}

func comAmbiente(d *dados, m dominio.Mesa) *dominio.Mesa {
	c := clonarMesa(m)
	if amb, ok := d.ambientes[c.AmbienteID]; ok {
		c.Ambiente = &amb
	}
	return &c
}
