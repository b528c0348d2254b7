package memoria

import (
	"context"
	"time"

	"servico-restaurante/internal/dominio"
)

type Outbox struct{ a acesso }

func (a *Armazem) Outbox() *Outbox {
	return &Outbox{acesso{a: a}}
}

func (o *Outbox) Pendentes(ctx context.Context, limite int) ([]dominio.EventoOutbox, error) {
	var pendentes []dominio.EventoOutbox
	o.a.ler(func(d *dados) {
		for _, e := range d.eventos {
			if e.DataPublicacao == nil {
				pendentes = append(pendentes, e)
			}
		}
	})
	return paginar(pendentes, 1, limite), nil
}

func (o *Outbox) MarcarPublicado(ctx context.Context, id int64, em time.Time) error {
	return o.a.escrever(func(d *dados) error {
		for i := range d.eventos {
			if d.eventos[i].ID == id {
				d.eventos[i].DataPublicacao = &em
				return nil
			}
		}
		return dominio.NaoEncontrado("Evento não encontrado")
	})
}
