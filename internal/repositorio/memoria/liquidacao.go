package memoria

import (
	"context"
	"time"

	"servico-restaurante/internal/dominio"
	"servico-restaurante/internal/servico"

	"github.com/google/uuid"
)

type liquidacao struct{ a acesso }

func (r *liquidacao) CriarComanda(ctx context.Context, comanda *dominio.Comanda) error {
	return r.a.escrever(func(d *dados) error {
		if comanda.ID == uuid.Nil {
			comanda.ID = uuid.New()
		}
		comanda.CreatedAt = time.Now()
		d.comandas[comanda.ID] = clonarComanda(*comanda)
		return nil
	})
}

func (r *liquidacao) AnexarPDF(ctx context.Context, comandaID uuid.UUID, caminho string) error {
	return r.a.escrever(func(d *dados) error {
		c, ok := d.comandas[comandaID]
		if !ok {
			return dominio.NaoEncontrado("Comanda não encontrada")
		}
		c.PdfPath = &caminho
		d.comandas[comandaID] = c
		return nil
	})
}

func (r *liquidacao) BuscarComanda(ctx context.Context, id uuid.UUID) (*dominio.Comanda, error) {
	var comanda *dominio.Comanda
	r.a.ler(func(d *dados) {
		if c, ok := d.comandas[id]; ok {
			c = clonarComanda(c)
			comanda = &c
		}
	})
	if comanda == nil {
		return nil, dominio.NaoEncontrado("Comanda não encontrada")
	}
	return comanda, nil
}

func (r *liquidacao) CriarMesaFinalizada(ctx context.Context, finalizada *dominio.MesaFinalizada) error {
	return r.a.escrever(func(d *dados) error {
		if _, ok := d.finalizadas[finalizada.ComandaID]; ok {
			return dominio.Conflito("Comanda já registrada.")
		}
		if finalizada.ID == uuid.Nil {
			finalizada.ID = uuid.New()
		}
		f := *finalizada
		f.Pedidos = f.Pedidos.Copia()
		d.finalizadas[f.ComandaID] = f
		return nil
	})
}

func (r *liquidacao) AnexarPDFMesaFinalizada(ctx context.Context, comandaID uuid.UUID, caminho string) error {
	return r.a.escrever(func(d *dados) error {
		f, ok := d.finalizadas[comandaID]
		if !ok {
			return dominio.NaoEncontrado("Mesa finalizada não encontrada")
		}
		f.PdfPath = &caminho
		d.finalizadas[comandaID] = f
		return nil
	})
}

func (r *liquidacao) ListarMesasFinalizadas(ctx context.Context, filtro servico.FiltroFinalizadas) ([]dominio.MesaFinalizada, int64, error) {
	var lista []dominio.MesaFinalizada
	r.a.ler(func(d *dados) {
		for _, f := range d.finalizadas {
			if filtro.NumeroMesa != nil && f.NumeroMesa != *filtro.NumeroMesa {
				continue
			}
			if filtro.DataInicial != nil && f.DataFinalizacao.Before(*filtro.DataInicial) {
				continue
			}
			if filtro.DataFinal != nil && f.DataFinalizacao.After(*filtro.DataFinal) {
				continue
			}
			f.Pedidos = f.Pedidos.Copia()
			lista = append(lista, f)
		}
	})
	ordenar(lista, func(a, b dominio.MesaFinalizada) bool { return a.DataFinalizacao.After(b.DataFinalizacao) })
	return paginar(lista, filtro.Pagina, filtro.Limite), int64(len(lista)), nil
}

func (r *liquidacao) RegistrarEvento(ctx context.Context, evento *dominio.EventoOutbox) error {
	return r.a.escrever(func(d *dados) error {
		evento.ID = int64(len(d.eventos) + 1)
		d.eventos = append(d.eventos, *evento)
		return nil
	})
}

type mensagens struct{ a acesso }

func (r *mensagens) JaProcessada(ctx context.Context, id string) (bool, error) {
	var ok bool
	r.a.ler(func(d *dados) {
		_, ok = d.mensagens[id]
	})
	return ok, nil
}

func (r *mensagens) Registrar(ctx context.Context, id string) error {
	return r.a.escrever(func(d *dados) error {
		if _, ok := d.mensagens[id]; ok {
			return dominio.Conflito("Mensagem já processada.")
		}
		d.mensagens[id] = time.Now()
		return nil
	})
}
