package repositorio

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"servico-restaurante/internal/dominio"
	"servico-restaurante/internal/servico"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func novoBancoMock(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func contagem(n int) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"count"}).AddRow(n)
}

func TestMesas_TrocarStatus(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()
	agora := time.Now()

	t.Run("grava quando o status esperado confere", func(t *testing.T) {
		db, mock := novoBancoMock(t)
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE "mesas" SET`)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := (&Mesas{db: db}).TrocarStatus(ctx, id, dominio.MesaLivre, dominio.MesaOcupada, &agora)
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("conflito quando outra transação mudou o status", func(t *testing.T) {
		db, mock := novoBancoMock(t)
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE "mesas" SET`)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "mesas"`)).
			WillReturnRows(contagem(1))

		err := (&Mesas{db: db}).TrocarStatus(ctx, id, dominio.MesaLivre, dominio.MesaOcupada, &agora)
		assert.ErrorIs(t, err, dominio.ErrConflito)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("mesa inexistente", func(t *testing.T) {
		db, mock := novoBancoMock(t)
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE "mesas" SET`)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "mesas"`)).
			WillReturnRows(contagem(0))

		err := (&Mesas{db: db}).TrocarStatus(ctx, id, dominio.MesaOcupada, dominio.MesaLivre, nil)
		assert.ErrorIs(t, err, dominio.ErrNaoEncontrado)
	})
}

func TestMesas_BuscarLivreParaGrupo(t *testing.T) {
	ctx := context.Background()

	t.Run("usa trava que pula linhas ocupadas", func(t *testing.T) {
		db, mock := novoBancoMock(t)
		id := uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "mesas" WHERE .*ORDER BY capacidade ASC, numero_mesa ASC LIMIT .* FOR UPDATE SKIP LOCKED`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "numero_mesa", "capacidade", "status"}).
				AddRow(id.String(), 4, 4, "livre"))

		mesa, err := (&Mesas{db: db}).BuscarLivreParaGrupo(ctx, 3)
		require.NoError(t, err)
		require.NotNil(t, mesa)
		assert.Equal(t, id, mesa.ID)
		assert.Equal(t, 4, mesa.NumeroMesa)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("nenhuma mesa devolve nil", func(t *testing.T) {
		db, mock := novoBancoMock(t)
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "mesas"`)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		mesa, err := (&Mesas{db: db}).BuscarLivreParaGrupo(ctx, 12)
		require.NoError(t, err)
		assert.Nil(t, mesa)
	})
}

func TestMesas_BuscarPorNumero_Inexistente(t *testing.T) {
	db, mock := novoBancoMock(t)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "mesas" WHERE numero_mesa = $1`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	mesa, err := (&Mesas{db: db}).BuscarPorNumero(context.Background(), 7)
	require.NoError(t, err)
	assert.Nil(t, mesa)
}

func TestFila_Atribuir_Conflito(t *testing.T) {
	db, mock := novoBancoMock(t)
	entrada := &dominio.EntradaFila{ID: uuid.New()}
	entrada.Atribuir(uuid.New(), time.Now())

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "entradas_fila" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "entradas_fila"`)).
		WillReturnRows(contagem(1))

	err := (&Fila{db: db}).Atribuir(context.Background(), entrada)
	assert.ErrorIs(t, err, dominio.ErrConflito)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProdutos_BaixarEstoque_Insuficiente(t *testing.T) {
	db, mock := novoBancoMock(t)
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "produtos" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "produtos"`)).
		WillReturnRows(contagem(1))

	err := (&Produtos{db: db}).BaixarEstoque(context.Background(), uuid.New(), 3)
	assert.ErrorIs(t, err, dominio.ErrValidacao)
}

func TestPedidos_ContarPendentes_SemIDs(t *testing.T) {
	db, mock := novoBancoMock(t)

	n, err := (&Pedidos{db: db}).ContarPendentes(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestArmazem_TransacaoDesfazEmErro(t *testing.T) {
	db, mock := novoBancoMock(t)
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "mesas" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectRollback()

	falha := errors.New("falha depois da troca")
	err := NovoArmazem(db).Transacao(context.Background(), func(r servico.Repositorios) error {
		if err := r.Mesas.TrocarStatus(context.Background(), uuid.New(), dominio.MesaLivre, dominio.MesaOcupada, nil); err != nil {
			return err
		}
		return falha
	})
	assert.ErrorIs(t, err, falha)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTraduzir(t *testing.T) {
	assert.ErrorIs(t, traduzir(gorm.ErrRecordNotFound, "x", "y"), dominio.ErrNaoEncontrado)
	assert.ErrorIs(t, traduzir(gorm.ErrDuplicatedKey, "x", "y"), dominio.ErrConflito)
	assert.NoError(t, traduzir(nil, "x", "y"))

	outro := errors.New("conexão recusada")
	assert.Equal(t, outro, traduzir(outro, "x", "y"))
}

func TestFila_Finalizar(t *testing.T) {
	ctx := context.Background()

	t.Run("só finaliza entrada aguardando", func(t *testing.T) {
		db, mock := novoBancoMock(t)
		mock.ExpectExec(`UPDATE "entradas_fila" SET "status"=\$1 WHERE id = \$2 AND status = \$3`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, (&Fila{db: db}).Finalizar(ctx, uuid.New()))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("entrada já finalizada", func(t *testing.T) {
		db, mock := novoBancoMock(t)
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE "entradas_fila" SET`)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "entradas_fila"`)).
			WillReturnRows(contagem(1))

		err := (&Fila{db: db}).Finalizar(ctx, uuid.New())
		assert.ErrorIs(t, err, dominio.ErrValidacao)
	})
}

func TestReservas_ContarAtivas(t *testing.T) {
	db, mock := novoBancoMock(t)
	horario := time.Date(2024, 6, 1, 20, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT count\(\*\) FROM "reservas" WHERE .*mesa_id = .*status = .*id <> .*data_reserva = `).
		WillReturnRows(contagem(2))

	n, err := (&Reservas{db: db}).ContarAtivas(context.Background(), uuid.New(), &horario, uuid.Nil)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}
