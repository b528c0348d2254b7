package repositorio

import (
	"context"
	"time"

	"servico-restaurante/internal/dominio"
	"servico-restaurante/internal/servico"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const msgComandaNaoEncontrada = "Comanda não encontrada"

type Liquidacao struct {
	db *gorm.DB
}

func (r *Liquidacao) CriarComanda(ctx context.Context, comanda *dominio.Comanda) error {
	return r.db.WithContext(ctx).Create(comanda).Error
}

func (r *Liquidacao) AnexarPDF(ctx context.Context, comandaID uuid.UUID, caminho string) error {
	res := r.db.WithContext(ctx).Model(&dominio.Comanda{}).
		Where("id = ?", comandaID).
		Update("pdf_path", caminho)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return dominio.NaoEncontrado(msgComandaNaoEncontrada)
	}
	return nil
}

func (r *Liquidacao) BuscarComanda(ctx context.Context, id uuid.UUID) (*dominio.Comanda, error) {
	var comanda dominio.Comanda
	if err := r.db.WithContext(ctx).First(&comanda, "id = ?", id).Error; err != nil {
		return nil, traduzir(err, msgComandaNaoEncontrada, "")
	}
	return &comanda, nil
}

func (r *Liquidacao) CriarMesaFinalizada(ctx context.Context, finalizada *dominio.MesaFinalizada) error {
	err := r.db.WithContext(ctx).Create(finalizada).Error
	return traduzir(err, "", "Comanda já registrada.")
}

func (r *Liquidacao) AnexarPDFMesaFinalizada(ctx context.Context, comandaID uuid.UUID, caminho string) error {
	res := r.db.WithContext(ctx).Model(&dominio.MesaFinalizada{}).
		Where("comanda_id = ?", comandaID).
		Update("pdf_path", caminho)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return dominio.NaoEncontrado("Mesa finalizada não encontrada")
	}
	return nil
}

func (r *Liquidacao) ListarMesasFinalizadas(ctx context.Context, filtro servico.FiltroFinalizadas) ([]dominio.MesaFinalizada, int64, error) {
	q := r.db.WithContext(ctx).Model(&dominio.MesaFinalizada{})
	if filtro.NumeroMesa != nil {
		q = q.Where("numero_mesa = ?", *filtro.NumeroMesa)
	}
	if filtro.DataInicial != nil {
		q = q.Where("data_finalizacao >= ?", *filtro.DataInicial)
	}
	if filtro.DataFinal != nil {
		q = q.Where("data_finalizacao <= ?", *filtro.DataFinal)
	}
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	finalizadas := []dominio.MesaFinalizada{}
	err := paginar(q, filtro.Pagina, filtro.Limite).
		Order("data_finalizacao DESC").
		Find(&finalizadas).Error
	if err != nil {
		return nil, 0, err
	}
	return finalizadas, total, nil
}

func (r *Liquidacao) RegistrarEvento(ctx context.Context, evento *dominio.EventoOutbox) error {
	return r.db.WithContext(ctx).Create(evento).Error
}

type Mensagens struct {
	db *gorm.DB
}

func (r *Mensagens) JaProcessada(ctx context.Context, id string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&dominio.MensagemProcessada{}).
		Where("id_mensagem = ?", id).
		Count(&n).Error
	return n > 0, err
}

func (r *Mensagens) Registrar(ctx context.Context, id string) error {
	err := r.db.WithContext(ctx).Create(&dominio.MensagemProcessada{
		IDMensagem:     id,
		DataProcessada: time.Now(),
	}).Error
	return traduzir(err, "", "Mensagem já processada.")
}
