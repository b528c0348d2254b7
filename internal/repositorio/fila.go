package repositorio

import (
	"context"

	"servico-restaurante/internal/dominio"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const msgEntradaNaoEncontrada = "Entrada não encontrada"

type Fila struct {
	db *gorm.DB
}

func (r *Fila) Criar(ctx context.Context, entrada *dominio.EntradaFila) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(entrada).Error
}

// Salvar grava os campos editáveis; status muda por Finalizar e a mesa por
// Atribuir.
func (r *Fila) Salvar(ctx context.Context, entrada *dominio.EntradaFila) error {
	res := r.db.WithContext(ctx).Model(&dominio.EntradaFila{}).
		Where("id = ?", entrada.ID).
		Updates(map[string]interface{}{
			"nome":           entrada.Nome,
			"numero_pessoas": entrada.NumeroPessoas,
			"contato":        entrada.Contato,
			"telefone":       entrada.Telefone,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return dominio.NaoEncontrado(msgEntradaNaoEncontrada)
	}
	return nil
}

func (r *Fila) Finalizar(ctx context.Context, id uuid.UUID) error {
	db := r.db.WithContext(ctx)
	res := db.Model(&dominio.EntradaFila{}).
		Where("id = ? AND status = ?", id, dominio.FilaAguardando).
		Update("status", dominio.FilaFinalizado)
	return conferirAlteracao(db, res, &dominio.EntradaFila{}, id, msgEntradaNaoEncontrada,
		dominio.Validacao("Essa entrada já está finalizada."))
}

func (r *Fila) Excluir(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&dominio.EntradaFila{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return dominio.NaoEncontrado(msgEntradaNaoEncontrada)
	}
	return nil
}

func (r *Fila) BuscarPorID(ctx context.Context, id uuid.UUID) (*dominio.EntradaFila, error) {
	var entrada dominio.EntradaFila
	if err := r.db.WithContext(ctx).Preload("Mesa").First(&entrada, "id = ?", id).Error; err != nil {
		return nil, traduzir(err, msgEntradaNaoEncontrada, "")
	}
	return &entrada, nil
}

func (r *Fila) ProximaAguardando(ctx context.Context, capacidade int) (*dominio.EntradaFila, error) {
	var entradas []dominio.EntradaFila
	err := r.db.WithContext(ctx).
		Clauses(travaPulando).
		Where("status = ? AND mesa_id IS NULL AND numero_pessoas <= ?", dominio.FilaAguardando, capacidade).
		Order("created_at ASC, id ASC").
		Limit(1).
		Find(&entradas).Error
	if err != nil {
		return nil, err
	}
	if len(entradas) == 0 {
		return nil, nil
	}
	return &entradas[0], nil
}

func (r *Fila) Atribuir(ctx context.Context, entrada *dominio.EntradaFila) error {
	db := r.db.WithContext(ctx)
	res := db.Model(&dominio.EntradaFila{}).
		Where("id = ? AND status = ? AND mesa_id IS NULL", entrada.ID, dominio.FilaAguardando).
		Updates(map[string]interface{}{
			"mesa_id":          entrada.MesaID,
			"atribuida_em":     entrada.AtribuidaEm,
			"tempo_atribuicao": entrada.TempoAtribuicao,
		})
	return conferirAlteracao(db, res, &dominio.EntradaFila{}, entrada.ID, msgEntradaNaoEncontrada, dominio.Conflito("Entrada já possui mesa."))
}

func (r *Fila) Listar(ctx context.Context, pagina, limite int) ([]dominio.EntradaFila, int64, error) {
	q := r.db.WithContext(ctx).Model(&dominio.EntradaFila{}).
		Where("status <> ?", dominio.FilaFinalizado).
		Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	entradas := []dominio.EntradaFila{}
	err := paginar(q, pagina, limite).
		Preload("Mesa").
		Order("created_at ASC, id ASC").
		Find(&entradas).Error
	if err != nil {
		return nil, 0, err
	}
	return entradas, total, nil
}
