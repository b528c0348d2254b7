package repositorio

import (
	"context"
	"fmt"

	"servico-restaurante/internal/dominio"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	msgProdutoNaoEncontrado  = "Produto não encontrado"
	msgAmbienteNaoEncontrado = "Ambiente não encontrado"
	msgAmbienteDuplicado     = "Já existe um ambiente com esse nome."
)

type Produtos struct {
	db *gorm.DB
}

func (r *Produtos) Criar(ctx context.Context, produto *dominio.Produto) error {
	return r.db.WithContext(ctx).Create(produto).Error
}

func (r *Produtos) BuscarPorID(ctx context.Context, id uuid.UUID) (*dominio.Produto, error) {
	var produto dominio.Produto
	if err := r.db.WithContext(ctx).First(&produto, "id = ?", id).Error; err != nil {
		return nil, traduzir(err, msgProdutoNaoEncontrado, "")
	}
	return &produto, nil
}

func (r *Produtos) Listar(ctx context.Context) ([]dominio.Produto, error) {
	produtos := []dominio.Produto{}
	err := r.db.WithContext(ctx).Order("nome ASC").Find(&produtos).Error
	return produtos, err
}

// BaixarEstoque decrementa só se houver saldo suficiente.
func (r *Produtos) BaixarEstoque(ctx context.Context, id uuid.UUID, quantidade int) error {
	db := r.db.WithContext(ctx)
	res := db.Model(&dominio.Produto{}).
		Where("id = ? AND quantidade_estoque >= ?", id, quantidade).
		Update("quantidade_estoque", gorm.Expr("quantidade_estoque - ?", quantidade))
	return conferirAlteracao(db, res, &dominio.Produto{}, id, msgProdutoNaoEncontrado,
		dominio.Validacao(fmt.Sprintf("Estoque insuficiente para o produto %s.", id)))
}

type Ambientes struct {
	db *gorm.DB
}

func (r *Ambientes) Criar(ctx context.Context, ambiente *dominio.Ambiente) error {
	err := r.db.WithContext(ctx).Create(ambiente).Error
	return traduzir(err, msgAmbienteNaoEncontrado, msgAmbienteDuplicado)
}

func (r *Ambientes) Salvar(ctx context.Context, ambiente *dominio.Ambiente) error {
	err := r.db.WithContext(ctx).Save(ambiente).Error
	return traduzir(err, msgAmbienteNaoEncontrado, msgAmbienteDuplicado)
}

func (r *Ambientes) Excluir(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&dominio.Ambiente{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return dominio.NaoEncontrado(msgAmbienteNaoEncontrado)
	}
	return nil
}

func (r *Ambientes) BuscarPorID(ctx context.Context, id uuid.UUID) (*dominio.Ambiente, error) {
	var ambiente dominio.Ambiente
	if err := r.db.WithContext(ctx).First(&ambiente, "id = ?", id).Error; err != nil {
		return nil, traduzir(err, msgAmbienteNaoEncontrado, "")
	}
	return &ambiente, nil
}

func (r *Ambientes) Listar(ctx context.Context) ([]dominio.Ambiente, error) {
	ambientes := []dominio.Ambiente{}
	err := r.db.WithContext(ctx).Order("nome ASC").Find(&ambientes).Error
	return ambientes, err
}
