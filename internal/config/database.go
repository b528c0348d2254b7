package config

import (
	"fmt"
	"log"

	"servico-restaurante/internal/dominio"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InicializarDB(cfg DBConfig) (*gorm.DB, error) {
	nivel := logger.Warn
	if cfg.Log == "info" {
		nivel = logger.Info
	}

	db, err := gorm.Open(postgres.Open(cfg.URL), &gorm.Config{
		Logger:         logger.Default.LogMode(nivel),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("falha ao conectar DB: %w", err)
	}

	log.Println("Conexão com PostgreSQL estabelecida")

	err = db.AutoMigrate(
		&dominio.Ambiente{},
		&dominio.Mesa{},
		&dominio.Assento{},
		&dominio.EntradaFila{},
		&dominio.Reserva{},
		&dominio.Produto{},
		&dominio.Pedido{},
		&dominio.ItemPedido{},
		&dominio.Comanda{},
		&dominio.MesaFinalizada{},
		&dominio.EventoOutbox{},
		&dominio.MensagemProcessada{},
	)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar migrations: %w", err)
	}

	log.Println("Migrations aplicadas com sucesso")
	return db, nil
}
