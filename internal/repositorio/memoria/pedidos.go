package memoria

import (
	"context"
	"fmt"
	"strings"
	"time"

	"servico-restaurante/internal/dominio"
	"servico-restaurante/internal/servico"

	"github.com/google/uuid"
)

type pedidos struct{ a acesso }

func (r *pedidos) Criar(ctx context.Context, pedido *dominio.Pedido) error {
	return r.a.escrever(func(d *dados) error {
		if pedido.ID == uuid.Nil {
			pedido.ID = uuid.New()
		}
		if pedido.Status == "" {
			pedido.Status = dominio.PedidoPendente
		}
		agora := time.Now()
		pedido.CreatedAt, pedido.UpdatedAt = agora, agora
		d.pedidos[pedido.ID] = clonarPedido(*pedido)
		return nil
	})
}

func (r *pedidos) BuscarPorID(ctx context.Context, id uuid.UUID) (*dominio.Pedido, error) {
	var pedido *dominio.Pedido
	r.a.ler(func(d *dados) {
		if p, ok := d.pedidos[id]; ok {
			c := clonarPedido(p)
			pedido = &c
		}
	})
	if pedido == nil {
		return nil, dominio.NaoEncontrado("Pedido não encontrado")
	}
	return pedido, nil
}

func (r *pedidos) AtualizarStatus(ctx context.Context, id uuid.UUID, status dominio.StatusPedido) error {
	return r.a.escrever(func(d *dados) error {
		p, ok := d.pedidos[id]
		if !ok {
			return dominio.NaoEncontrado("Pedido não encontrado")
		}
		if p.Status == dominio.PedidoFinalizado {
			return dominio.Conflito("Pedido já finalizado.")
		}
		p.Status = status
		p.UpdatedAt = time.Now()
		d.pedidos[id] = p
		return nil
	})
}

func (r *pedidos) Listar(ctx context.Context, filtro servico.FiltroPedidos) ([]dominio.Pedido, int64, error) {
	var lista []dominio.Pedido
	r.a.ler(func(d *dados) {
		for _, p := range d.pedidos {
			if filtro.MesaID != nil && p.MesaID != *filtro.MesaID {
				continue
			}
			lista = append(lista, clonarPedido(p))
		}
	})
	ordenar(lista, func(a, b dominio.Pedido) bool { return a.CreatedAt.After(b.CreatedAt) })
	return paginar(lista, filtro.Pagina, filtro.Limite), int64(len(lista)), nil
}

func (r *pedidos) ListarEntreguesDaMesa(ctx context.Context, mesaID uuid.UUID) ([]dominio.Pedido, error) {
	var lista []dominio.Pedido
	r.a.ler(func(d *dados) {
		for _, p := range d.pedidos {
			if p.MesaID == mesaID && p.Status == dominio.PedidoEntregue {
				lista = append(lista, clonarPedido(p))
			}
		}
	})
	ordenar(lista, func(a, b dominio.Pedido) bool { return a.CreatedAt.Before(b.CreatedAt) })
	return lista, nil
}

func (r *pedidos) ContarPendentes(ctx context.Context, ids []uuid.UUID) (int64, error) {
	var n int64
	r.a.ler(func(d *dados) {
		for _, id := range ids {
			if p, ok := d.pedidos[id]; ok && !p.Status.Quitado() {
				n++
			}
		}
	})
	return n, nil
}

func (r *pedidos) MarcarFinalizados(ctx context.Context, ids []uuid.UUID) error {
	return r.a.escrever(func(d *dados) error {
		agora := time.Now()
		for _, id := range ids {
			if p, ok := d.pedidos[id]; ok {
				p.Status = dominio.PedidoFinalizado
				p.UpdatedAt = agora
				d.pedidos[id] = p
			}
		}
		return nil
	})
}

type produtos struct{ a acesso }

func (r *produtos) Criar(ctx context.Context, produto *dominio.Produto) error {
	return r.a.escrever(func(d *dados) error {
		if produto.ID == uuid.Nil {
			produto.ID = uuid.New()
		}
		agora := time.Now()
		produto.CreatedAt, produto.UpdatedAt = agora, agora
		d.produtos[produto.ID] = *produto
		return nil
	})
}

func (r *produtos) BuscarPorID(ctx context.Context, id uuid.UUID) (*dominio.Produto, error) {
	var produto *dominio.Produto
	r.a.ler(func(d *dados) {
		if p, ok := d.produtos[id]; ok {
			produto = &p
		}
	})
	if produto == nil {
		return nil, dominio.NaoEncontrado("Produto não encontrado")
	}
	return produto, nil
}

func (r *produtos) Listar(ctx context.Context) ([]dominio.Produto, error) {
	lista := []dominio.Produto{}
	r.a.ler(func(d *dados) {
		for _, p := range d.produtos {
			lista = append(lista, p)
		}
	})
	ordenar(lista, func(a, b dominio.Produto) bool { return a.Nome < b.Nome })
	return lista, nil
}

func (r *produtos) BaixarEstoque(ctx context.Context, id uuid.UUID, quantidade int) error {
	return r.a.escrever(func(d *dados) error {
		p, ok := d.produtos[id]
		if !ok {
			return dominio.NaoEncontrado("Produto não encontrado")
		}
		if p.QuantidadeEstoque < quantidade {
			return dominio.Validacao(fmt.Sprintf("Estoque insuficiente para o produto %s.", p.Nome))
		}
		p.QuantidadeEstoque -= quantidade
		p.UpdatedAt = time.Now()
		d.produtos[id] = p
		return nil
	})
}

type ambientes struct{ a acesso }

func nomeEmUso(d *dados, nome string, exceto uuid.UUID) bool {
	for _, a := range d.ambientes {
		if a.ID != exceto && strings.EqualFold(a.Nome, nome) {
			return true
		}
	}
	return false
}

func (r *ambientes) Criar(ctx context.Context, ambiente *dominio.Ambiente) error {
	return r.a.escrever(func(d *dados) error {
		if nomeEmUso(d, ambiente.Nome, uuid.Nil) {
			return dominio.Conflito("Já existe um ambiente com esse nome.")
		}
		if ambiente.ID == uuid.Nil {
			ambiente.ID = uuid.New()
		}
		agora := time.Now()
		ambiente.CreatedAt, ambiente.UpdatedAt = agora, agora
		d.ambientes[ambiente.ID] = *ambiente
		return nil
	})
}

func (r *ambientes) Salvar(ctx context.Context, ambiente *dominio.Ambiente) error {
	return r.a.escrever(func(d *dados) error {
		if _, ok := d.ambientes[ambiente.ID]; !ok {
			return dominio.NaoEncontrado("Ambiente não encontrado")
		}
		if nomeEmUso(d, ambiente.Nome, ambiente.ID) {
			return dominio.Conflito("Já existe um ambiente com esse nome.")
		}
		ambiente.UpdatedAt = time.Now()
		d.ambientes[ambiente.ID] = *ambiente
		return nil
	})
}

func (r *ambientes) Excluir(ctx context.Context, id uuid.UUID) error {
	return r.a.escrever(func(d *dados) error {
		if _, ok := d.ambientes[id]; !ok {
			return dominio.NaoEncontrado("Ambiente não encontrado")
		}
		delete(d.ambientes, id)
		return nil
	})
}

func (r *ambientes) BuscarPorID(ctx context.Context, id uuid.UUID) (*dominio.Ambiente, error) {
	var ambiente *dominio.Ambiente
	r.a.ler(func(d *dados) {
		if a, ok := d.ambientes[id]; ok {
			ambiente = &a
		}
	})
	if ambiente == nil {
		return nil, dominio.NaoEncontrado("Ambiente não encontrado")
	}
	return ambiente, nil
}

func (r *ambientes) Listar(ctx context.Context) ([]dominio.Ambiente, error) {
	lista := []dominio.Ambiente{}
	r.a.ler(func(d *dados) {
		for _, a := range d.ambientes {
			lista = append(lista, a)
		}
	})
	ordenar(lista, func(a, b dominio.Ambiente) bool { return a.Nome < b.Nome })
	return lista, nil
}
