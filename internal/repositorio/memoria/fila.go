package memoria

import (
	"context"
	"time"

	"servico-restaurante/internal/dominio"

	"github.com/google/uuid"
)

type fila struct{ a acesso }

func (r *fila) Criar(ctx context.Context, entrada *dominio.EntradaFila) error {
	return r.a.escrever(func(d *dados) error {
		if entrada.ID == uuid.Nil {
			entrada.ID = uuid.New()
		}
		if entrada.Status == "" {
			entrada.Status = dominio.FilaAguardando
		}
		if entrada.CreatedAt.IsZero() {
			entrada.CreatedAt = time.Now()
		}
		e := *entrada
		e.Mesa = nil
		d.fila[e.ID] = e
		return nil
	})
}

// Salvar grava os campos editáveis; status muda por Finalizar e a mesa por
// Atribuir.
func (r *fila) Salvar(ctx context.Context, entrada *dominio.EntradaFila) error {
	return r.a.escrever(func(d *dados) error {
		e, ok := d.fila[entrada.ID]
		if !ok {
			return dominio.NaoEncontrado("Entrada não encontrada")
		}
		e.Nome = entrada.Nome
		e.NumeroPessoas = entrada.NumeroPessoas
		e.Contato = entrada.Contato
		e.Telefone = entrada.Telefone
		d.fila[e.ID] = e
		return nil
	})
}

func (r *fila) Finalizar(ctx context.Context, id uuid.UUID) error {
	return r.a.escrever(func(d *dados) error {
		e, ok := d.fila[id]
		if !ok {
			return dominio.NaoEncontrado("Entrada não encontrada")
		}
		if e.Status != dominio.FilaAguardando {
			return dominio.Validacao("Essa entrada já está finalizada.")
		}
		e.Status = dominio.FilaFinalizado
		d.fila[id] = e
		return nil
	})
}

func (r *fila) Excluir(ctx context.Context, id uuid.UUID) error {
	return r.a.escrever(func(d *dados) error {
		if _, ok := d.fila[id]; !ok {
			return dominio.NaoEncontrado("Entrada não encontrada")
		}
		delete(d.fila, id)
		return nil
	})
}

func (r *fila) BuscarPorID(ctx context.Context, id uuid.UUID) (*dominio.EntradaFila, error) {
	var entrada *dominio.EntradaFila
	r.a.ler(func(d *dados) {
		if e, ok := d.fila[id]; ok {
			entrada = comMesa(d, e)
		}
	})
	if entrada == nil {
		return nil, dominio.NaoEncontrado("Entrada não encontrada")
	}
	return entrada, nil
}

func (r *fila) ProximaAguardando(ctx context.Context, capacidade int) (*dominio.EntradaFila, error) {
	var candidatas []dominio.EntradaFila
	r.a.ler(func(d *dados) {
		for _, e := range d.fila {
			if e.PodeSerAtribuida() && e.NumeroPessoas <= capacidade {
				candidatas = append(candidatas, e)
			}
		}
	})
	if len(candidatas) == 0 {
		return nil, nil
	}
	ordenar(candidatas, maisAntiga)
	return &candidatas[0], nil
}

func (r *fila) Atribuir(ctx context.Context, entrada *dominio.EntradaFila) error {
	return r.a.escrever(func(d *dados) error {
		e, ok := d.fila[entrada.ID]
		if !ok {
			return dominio.NaoEncontrado("Entrada não encontrada")
		}
		if !e.PodeSerAtribuida() {
			return dominio.Conflito("Entrada já possui mesa.")
		}
		e.MesaID = entrada.MesaID
		e.AtribuidaEm = entrada.AtribuidaEm
		e.TempoAtribuicao = entrada.TempoAtribuicao
		d.fila[e.ID] = e
		return nil
	})
}

func (r *fila) Listar(ctx context.Context, pagina, limite int) ([]dominio.EntradaFila, int64, error) {
	var lista []dominio.EntradaFila
	r.a.ler(func(d *dados) {
		for _, e := range d.fila {
			if e.Status != dominio.FilaFinalizado {
				lista = append(lista, *comMesa(d, e))
			}
		}
	})
	ordenar(lista, maisAntiga)
	return paginar(lista, pagina, limite), int64(len(lista)), nil
}

func maisAntiga(a, b dominio.EntradaFila) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	return a.ID.String() < b.ID.String()
}

func comMesa(d *dados, e dominio.EntradaFila) *dominio.EntradaFila {
	e.Mesa = nil
	if e.MesaID != nil {
		if m, ok := d.mesas[*e.MesaID]; ok {
			c := clonarMesa(m)
			e.Mesa = &c
		}
	}
	return &e
}
