package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"servico-restaurante/internal/cache"
	"servico-restaurante/internal/config"
	"servico-restaurante/internal/consumidor"
	"servico-restaurante/internal/manipulador"
	"servico-restaurante/internal/middleware"
	"servico-restaurante/internal/notificacao"
	"servico-restaurante/internal/publicador"
	"servico-restaurante/internal/recibo"
	"servico-restaurante/internal/repositorio"
	"servico-restaurante/internal/repositorio/memoria"
	"servico-restaurante/internal/servico"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
)

func main() {
	cfg := config.Carregar()

	ctx, parar := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer parar()

	// armazenamento
	var (
		armazem servico.Armazem
		outbox  publicador.FonteEventos
	)
	if cfg.Armazenamento == config.ArmazenamentoMemoria {
		log.Println("Usando armazenamento em memória; os dados somem ao reiniciar")
		m := memoria.Novo()
		armazem, outbox = m, m.Outbox()
	} else {
		db, err := config.InicializarDB(cfg.DB)
		if err != nil {
			log.Fatalf("Erro ao inicializar DB: %v", err)
		}
		sqlDB, _ := db.DB()
		defer sqlDB.Close()
		armazem, outbox = repositorio.NovoArmazem(db), repositorio.NovoOutbox(db)
	}

	// notificações em tempo real e cache de mesas livres
	var destinos []notificacao.Destino
	var cacheMesas servico.CacheMesas
	rdb, err := config.NovoRedis(ctx, cfg.Redis)
	if err != nil {
		log.Printf("Redis indisponível, seguindo sem cache e sem pub/sub: %v", err)
	} else if rdb != nil {
		defer rdb.Close()
		c := cache.NovoMesas(rdb, cfg.Redis.CacheTTL)
		cacheMesas = c
		destinos = append(destinos, notificacao.NovoRedis(rdb), c)
	}
	if w := config.NovoKafkaWriter(cfg.Kafka); w != nil {
		defer w.Close()
		destinos = append(destinos, notificacao.NovoKafka(w))
		log.Printf("Eventos enviados ao tópico kafka %s", cfg.Kafka.Topico)
	}
	var notificador servico.Notificador = notificacao.Nop{}
	if len(destinos) > 0 {
		notificador = notificacao.NovoMulti(destinos...)
	}

	gerador := recibo.NovoGeradorPDF(cfg.Recibos.Diretorio, cfg.Recibos.URLPublica, recibo.Estabelecimento{
		Nome:     cfg.Recibos.Estabelecimento,
		CNPJ:     cfg.Recibos.CNPJ,
		Endereco: cfg.Recibos.Endereco,
	})

	handlers := &manipulador.Handlers{
		Fila:       servico.NovoFilaServico(armazem, notificador),
		Reservas:   servico.NovoReservaServico(armazem, notificador),
		Mesas:      servico.NovoMesaServico(armazem, notificador, cacheMesas),
		Liquidacao: servico.NovoLiquidacaoServico(armazem, notificador, gerador),
		Pedidos:    servico.NovoPedidoServico(armazem, notificador),
		Cadastro:   servico.NovoCadastroServico(armazem),
	}

	// outbox e cozinha via RabbitMQ
	if cfg.RabbitURL != "" {
		conn, err := config.ConectarRabbit(cfg.RabbitURL, 15)
		if err != nil {
			log.Fatalf("Erro ao conectar RabbitMQ: %v", err)
		}
		defer conn.Close()

		chPub, err := conn.Channel()
		if err != nil {
			log.Fatalf("Erro ao abrir canal de publicação: %v", err)
		}
		if err := publicador.DeclararExchange(chPub); err != nil {
			log.Fatalf("Erro ao iniciar publicador outbox: %v", err)
		}
		go publicador.NovoPublicador(outbox, chPub).Rodar(ctx)

		chCons, err := conn.Channel()
		if err != nil {
			log.Fatalf("Erro ao abrir canal do consumidor: %v", err)
		}
		if err := consumidor.NovoConsumidor(armazem, notificador).Iniciar(ctx, chCons); err != nil {
			log.Fatalf("Erro ao iniciar consumidor RabbitMQ: %v", err)
		}
	} else {
		log.Println("RABBITMQ_URL não informado; outbox fica acumulado e a cozinha não é ouvida")
	}

	// servidor HTTP
	r := gin.Default()
	limite, err := middleware.LimitarRequisicoes(cfg.RateLimit)
	if err != nil {
		log.Fatalf("Erro ao configurar limite de requisições: %v", err)
	}
	r.Use(limite)
	manipulador.RegistrarRotas(r, handlers, manipulador.OpcoesRotas{
		SegredoJWT:       []byte(cfg.JWTSegredo),
		DiretorioRecibos: cfg.Recibos.Diretorio,
	})

	srv := &http.Server{
		Addr: ":" + cfg.Porta,
		Handler: cors.New(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
			AllowedHeaders: []string{"Authorization", "Content-Type"},
		}).Handler(r),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Servidor do restaurante iniciado na porta %s", cfg.Porta)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Erro ao iniciar servidor: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Encerrando servidor...")
	desligar, cancelar := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelar()
	if err := srv.Shutdown(desligar); err != nil {
		log.Printf("Erro ao encerrar servidor: %v", err)
	}
}
