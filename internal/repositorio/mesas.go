package repositorio

import (
	"context"
	"errors"
	"time"

	"servico-restaurante/internal/dominio"
	"servico-restaurante/internal/servico"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const msgMesaNaoEncontrada = "Mesa não encontrada"

type Mesas struct {
	db *gorm.DB
}

func assentosOrdenados(db *gorm.DB) *gorm.DB {
	return db.Order("numero_assento ASC")
}

func (r *Mesas) Criar(ctx context.Context, mesa *dominio.Mesa) error {
	err := r.db.WithContext(ctx).Create(mesa).Error
	return traduzir(err, msgMesaNaoEncontrada, "Número da mesa já está em uso.")
}

// Salvar grava a mesa e os assentos e remove os que passaram da capacidade.
func (r *Mesas) Salvar(ctx context.Context, mesa *dominio.Mesa) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(mesa).Error; err != nil {
			return traduzir(err, msgMesaNaoEncontrada, "Número da mesa já está em uso.")
		}
		for i := range mesa.Assentos {
			mesa.Assentos[i].MesaID = mesa.ID
			if err := tx.Save(&mesa.Assentos[i]).Error; err != nil {
				return err
			}
		}
		return tx.Where("mesa_id = ? AND numero_assento > ?", mesa.ID, mesa.Capacidade).
			Delete(&dominio.Assento{}).Error
	})
}

func (r *Mesas) Excluir(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&dominio.Mesa{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return dominio.NaoEncontrado(msgMesaNaoEncontrada)
	}
	return nil
}

func (r *Mesas) BuscarPorID(ctx context.Context, id uuid.UUID) (*dominio.Mesa, error) {
	var mesa dominio.Mesa
	err := r.db.WithContext(ctx).
		Preload("Assentos", assentosOrdenados).
		Preload("Ambiente").
		First(&mesa, "id = ?", id).Error
	if err != nil {
		return nil, traduzir(err, msgMesaNaoEncontrada, "")
	}
	return &mesa, nil
}

// BuscarParaAtualizar trava a linha até o fim da transação corrente.
func (r *Mesas) BuscarParaAtualizar(ctx context.Context, id uuid.UUID) (*dominio.Mesa, error) {
	var mesa dominio.Mesa
	err := r.db.WithContext(ctx).
		Clauses(travaExclusiva).
		Preload("Assentos", assentosOrdenados).
		First(&mesa, "id = ?", id).Error
	if err != nil {
		return nil, traduzir(err, msgMesaNaoEncontrada, "")
	}
	return &mesa, nil
}

func (r *Mesas) BuscarPorNumero(ctx context.Context, numero int) (*dominio.Mesa, error) {
	var mesa dominio.Mesa
	err := r.db.WithContext(ctx).First(&mesa, "numero_mesa = ?", numero).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &mesa, nil
}

func (r *Mesas) Listar(ctx context.Context, filtro servico.FiltroMesas) ([]dominio.Mesa, int64, error) {
	q := r.db.WithContext(ctx).Model(&dominio.Mesa{})
	if filtro.Status != nil {
		q = q.Where("status = ?", *filtro.Status)
	}
	if filtro.AmbienteID != nil {
		q = q.Where("ambiente_id = ?", *filtro.AmbienteID)
	}
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	mesas := []dominio.Mesa{}
	err := paginar(q, filtro.Pagina, filtro.Limite).
		Preload("Assentos", assentosOrdenados).
		Preload("Ambiente").
		Order("numero_mesa ASC").
		Find(&mesas).Error
	if err != nil {
		return nil, 0, err
	}
	return mesas, total, nil
}

// BuscarLivreParaGrupo escolhe a menor mesa livre que comporta o grupo e a
// trava; mesas já travadas por outra atribuição em andamento são ignoradas.
func (r *Mesas) BuscarLivreParaGrupo(ctx context.Context, pessoas int) (*dominio.Mesa, error) {
	var mesas []dominio.Mesa
	err := r.db.WithContext(ctx).
		Clauses(travaPulando).
		Where("status = ? AND capacidade >= ?", dominio.MesaLivre, pessoas).
		Order("capacidade ASC, numero_mesa ASC").
		Limit(1).
		Find(&mesas).Error
	if err != nil {
		return nil, err
	}
	if len(mesas) == 0 {
		return nil, nil
	}
	return &mesas[0], nil
}

// TrocarStatus só grava se a mesa ainda estiver no status de.
func (r *Mesas) TrocarStatus(ctx context.Context, id uuid.UUID, de, para dominio.StatusMesa, ocupadaDesde *time.Time) error {
	db := r.db.WithContext(ctx)
	res := db.Model(&dominio.Mesa{}).
		Where("id = ? AND status = ?", id, de).
		Updates(map[string]interface{}{
			"status":        para,
			"ocupada_desde": ocupadaDesde,
			"updated_at":    time.Now(),
		})
	return conferirAlteracao(db, res, &dominio.Mesa{}, id, msgMesaNaoEncontrada, dominio.Conflito("Status da mesa mudou."))
}

func (r *Mesas) Liberar(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&dominio.Mesa{}).
			Where("id = ? AND status = ?", id, dominio.MesaOcupada).
			Updates(map[string]interface{}{
				"status":        dominio.MesaLivre,
				"garcom_id":     nil,
				"pedidos":       dominio.ListaUUID{},
				"valor_total":   decimal.Zero,
				"ocupada_desde": nil,
				"updated_at":    time.Now(),
			})
		if err := conferirAlteracao(tx, res, &dominio.Mesa{}, id, msgMesaNaoEncontrada, dominio.Conflito("Status da mesa mudou.")); err != nil {
			return err
		}
		return tx.Model(&dominio.Assento{}).
			Where("mesa_id = ?", id).
			Updates(map[string]interface{}{
				"nome_cliente": nil,
				"pedidos":      dominio.ListaUUID{},
			}).Error
	})
}
