// Package memoria guarda tudo em mapas do processo. Serve aos testes e ao modo
// ARMAZENAMENTO=memoria; nada sobrevive a um restart.
package memoria

import (
	"context"
	"sort"
	"sync"
	"time"

	"servico-restaurante/internal/dominio"
	"servico-restaurante/internal/servico"

	"github.com/google/uuid"
)

type dados struct {
	mesas       map[uuid.UUID]dominio.Mesa
	fila        map[uuid.UUID]dominio.EntradaFila
	reservas    map[uuid.UUID]dominio.Reserva
	pedidos     map[uuid.UUID]dominio.Pedido
	produtos    map[uuid.UUID]dominio.Produto
	ambientes   map[uuid.UUID]dominio.Ambiente
	comandas    map[uuid.UUID]dominio.Comanda
	finalizadas map[uuid.UUID]dominio.MesaFinalizada
	eventos     []dominio.EventoOutbox
	mensagens   map[string]time.Time
}

func novosDados() *dados {
	return &dados{
		mesas:       map[uuid.UUID]dominio.Mesa{},
		fila:        map[uuid.UUID]dominio.EntradaFila{},
		reservas:    map[uuid.UUID]dominio.Reserva{},
		pedidos:     map[uuid.UUID]dominio.Pedido{},
		produtos:    map[uuid.UUID]dominio.Produto{},
		ambientes:   map[uuid.UUID]dominio.Ambiente{},
		comandas:    map[uuid.UUID]dominio.Comanda{},
		finalizadas: map[uuid.UUID]dominio.MesaFinalizada{},
		mensagens:   map[string]time.Time{},
	}
}

func (d *dados) clonar() *dados {
	c := novosDados()
	for k, v := range d.mesas {
		c.mesas[k] = clonarMesa(v)
	}
	for k, v := range d.fila {
		c.fila[k] = v
	}
	for k, v := range d.reservas {
		c.reservas[k] = v
	}
	for k, v := range d.pedidos {
		c.pedidos[k] = clonarPedido(v)
	}
	for k, v := range d.produtos {
		c.produtos[k] = v
	}
	for k, v := range d.ambientes {
		c.ambientes[k] = v
	}
	for k, v := range d.comandas {
		c.comandas[k] = clonarComanda(v)
	}
	for k, v := range d.finalizadas {
		v.Pedidos = v.Pedidos.Copia()
		c.finalizadas[k] = v
	}
	c.eventos = append([]dominio.EventoOutbox(nil), d.eventos...)
	for k, v := range d.mensagens {
		c.mensagens[k] = v
	}
	return c
}

// Armazem implementa servico.Armazem. As transações são serializadas e, em
// caso de erro, o estado volta à cópia tirada no início.
type Armazem struct {
	tx sync.Mutex
	mu sync.Mutex
	d  *dados
}

func Novo() *Armazem {
	return &Armazem{d: novosDados()}
}

func (a *Armazem) Repositorios() servico.Repositorios {
	return repositoriosDe(acesso{a: a})
}

func repositoriosDe(ac acesso) servico.Repositorios {
	return servico.Repositorios{
		Mesas:      &mesas{ac},
		Fila:       &fila{ac},
		Reservas:   &reservas{ac},
		Pedidos:    &pedidos{ac},
		Produtos:   &produtos{ac},
		Ambientes:  &ambientes{ac},
		Liquidacao: &liquidacao{ac},
		Mensagens:  &mensagens{ac},
	}
}

func (a *Armazem) Transacao(ctx context.Context, fn func(r servico.Repositorios) error) error {
	a.tx.Lock()
	defer a.tx.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	a.mu.Lock()
	copia := a.d.clonar()
	a.mu.Unlock()

	if err := fn(repositoriosDe(acesso{a: a, emTx: true})); err != nil {
		a.mu.Lock()
		a.d = copia
		a.mu.Unlock()
		return err
	}
	return nil
}

// Eventos devolve as linhas de outbox gravadas até agora.
func (a *Armazem) Eventos() []dominio.EventoOutbox {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]dominio.EventoOutbox(nil), a.d.eventos...)
}

// acesso é a visão dos repositórios sobre o armazém. Fora de transação cada
// operação espera as transações abertas terminarem, para que um rollback não
// apague escritas alheias nem exponha estado ainda não confirmado.
type acesso struct {
	a    *Armazem
	emTx bool
}

func (ac acesso) ler(fn func(d *dados)) {
	if !ac.emTx {
		ac.a.tx.Lock()
		defer ac.a.tx.Unlock()
	}
	ac.a.mu.Lock()
	defer ac.a.mu.Unlock()
	fn(ac.a.d)
}

func (ac acesso) escrever(fn func(d *dados) error) error {
	if !ac.emTx {
		ac.a.tx.Lock()
		defer ac.a.tx.Unlock()
	}
	ac.a.mu.Lock()
	defer ac.a.mu.Unlock()
	return fn(ac.a.d)
}

func clonarMesa(m dominio.Mesa) dominio.Mesa {
	m.Pedidos = m.Pedidos.Copia()
	assentos := make([]dominio.Assento, len(m.Assentos))
	for i, a := range m.Assentos {
		a.Pedidos = a.Pedidos.Copia()
		assentos[i] = a
	}
	m.Assentos = assentos
	m.Ambiente = nil
	return m
}

func clonarPedido(p dominio.Pedido) dominio.Pedido {
	p.Itens = append([]dominio.ItemPedido(nil), p.Itens...)
	return p
}

func clonarComanda(c dominio.Comanda) dominio.Comanda {
	c.PedidoIDs = c.PedidoIDs.Copia()
	pedidos := make([]dominio.PedidoComanda, len(c.Pedidos))
	for i, p := range c.Pedidos {
		p.Itens = append([]dominio.ItemComanda(nil), p.Itens...)
		pedidos[i] = p
	}
	c.Pedidos = pedidos
	return c
}

func paginar[T any](itens []T, pagina, limite int) []T {
	if limite <= 0 {
		return itens
	}
	if pagina < 1 {
		pagina = 1
	}
	inicio := (pagina - 1) * limite
	if inicio >= len(itens) {
		return []T{}
	}
	fim := inicio + limite
	if fim > len(itens) {
		fim = len(itens)
	}
	return itens[inicio:fim]
}

func ordenar[T any](itens []T, menor func(a, b T) bool) {
	sort.SliceStable(itens, func(i, j int) bool { return menor(itens[i], itens[j]) })
}

var _ servico.Armazem = (*Armazem)(nil)
