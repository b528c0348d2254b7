// Package repositorio implementa os repositórios do serviço sobre gorm e
// postgres.
package repositorio

import (
	"context"
	"errors"

	"servico-restaurante/internal/dominio"
	"servico-restaurante/internal/servico"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Armazem struct {
	db *gorm.DB
}

func NovoArmazem(db *gorm.DB) *Armazem {
	return &Armazem{db: db}
}

func (a *Armazem) Repositorios() servico.Repositorios {
	return repositoriosDe(a.db)
}

func (a *Armazem) Transacao(ctx context.Context, fn func(r servico.Repositorios) error) error {
	return a.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(repositoriosDe(tx))
	})
}

func repositoriosDe(db *gorm.DB) servico.Repositorios {
	return servico.Repositorios{
		Mesas:      &Mesas{db: db},
		Fila:       &Fila{db: db},
		Reservas:   &Reservas{db: db},
		Pedidos:    &Pedidos{db: db},
		Produtos:   &Produtos{db: db},
		Ambientes:  &Ambientes{db: db},
		Liquidacao: &Liquidacao{db: db},
		Mensagens:  &Mensagens{db: db},
	}
}

var (
	travaExclusiva = clause.Locking{Strength: "UPDATE"}
	// linhas já travadas por outra transação são puladas, não esperadas
	travaPulando = clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}
)

// traduzir converte os erros do gorm para os tipos do domínio.
func traduzir(err error, naoEncontrado, duplicado string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return dominio.NaoEncontrado(naoEncontrado)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return dominio.Conflito(duplicado)
	default:
		return err
	}
}

// conferirAlteracao distingue registro inexistente de condição não atendida
// quando um UPDATE condicional não afeta nenhuma linha.
func conferirAlteracao(db *gorm.DB, res *gorm.DB, modelo any, id any, naoEncontrado string, falha error) error {
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		return nil
	}
	var n int64
	if err := db.Model(modelo).Where("id = ?", id).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return dominio.NaoEncontrado(naoEncontrado)
	}
	return falha
}

func paginar(q *gorm.DB, pagina, limite int) *gorm.DB {
	if limite <= 0 {
		return q
	}
	if pagina < 1 {
		pagina = 1
	}
	return q.Offset((pagina - 1) * limite).Limit(limite)
}

var _ servico.Armazem = (*Armazem)(nil)
