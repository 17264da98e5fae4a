package main

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/estate-chain/marketplace-router/internal/config"
	"github.com/estate-chain/marketplace-router/internal/handlers/httphandlers"
	"github.com/estate-chain/marketplace-router/internal/lib"
	"github.com/estate-chain/marketplace-router/internal/repositories/contracts"
	"github.com/estate-chain/marketplace-router/internal/repositories/publisher"
	"github.com/estate-chain/marketplace-router/internal/repositories/workflows"
	"github.com/estate-chain/marketplace-router/internal/resources/estate/marketplace"
	"github.com/ethereum/go-ethereum/common"
)

func main() {
	err := start()
	if err != nil {
		panic(err)
	}
}

func start() error {
	var cfg config.Config
	err := config.LoadConfig(&cfg, os.Args, ".env")
	if err != nil {
		return err
	}

	logCfg := func(level string) lib.LoggerConfig {
		return lib.LoggerConfig{
			Level:      level,
			Color:      cfg.Log.Color,
			IsProd:     cfg.Log.IsProd,
			JSON:       cfg.Log.JSON,
			FolderPath: cfg.Log.FolderPath,
		}
	}

	log, err := lib.NewLogger("APP", logCfg(cfg.Log.LevelApp))
	if err != nil {
		return err
	}
	contractLog, err := lib.NewLogger("CONTRACT", logCfg(cfg.Log.LevelContract))
	if err != nil {
		return err
	}
	httpLog, err := lib.NewLogger("HTTP", logCfg(cfg.Log.LevelHTTP))
	if err != nil {
		return err
	}

	defer func() {
		_ = log.Sync()
		_ = contractLog.Sync()
		_ = httpLog.Sync()
	}()

	log.Infof("marketplace-router %s, environment %s", config.BuildVersion, cfg.Environment)
	log.Debugf("config: %+v", cfg.GetSanitized())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		s := <-shutdownChan
		log.Warnf("Received signal: %s", s)
		cancel()

		s = <-shutdownChan
		log.Warnf("Received signal: %s. Forcing exit...", s)
		os.Exit(1)
	}()

	ethClient, err := contracts.DialContext(ctx, cfg.Blockchain.EthNodeAddress)
	if err != nil {
		return err
	}
	defer ethClient.Close()

	if cfg.Blockchain.UseSubscriptions && !ethClient.SupportsSubscriptions() {
		log.Warnf("subscriptions requested but %s is not a websocket endpoint, falling back to polling", cfg.Blockchain.EthNodeAddress)
	}

	privateKey, err := lib.ResolvePrivateKey(cfg.Marketplace.WalletPrivateKey, cfg.Marketplace.Mnemonic, cfg.Marketplace.AccountIndex)
	if err != nil {
		return err
	}

	transactor, err := contracts.NewTransactor(ethClient, privateKey, contractLog.Named("TX"))
	if err != nil {
		return err
	}
	transactor.SetLegacyTx(cfg.Blockchain.EthLegacyTx)
	log.Infof("wallet address: %s", transactor.From().Hex())

	forcePolling := !cfg.Blockchain.UseSubscriptions || !ethClient.SupportsSubscriptions()
	marketplaceEth := contracts.MarketplaceEthereumFactory(
		common.HexToAddress(cfg.Marketplace.ContractAddress),
		ethClient,
		transactor,
		cfg.Blockchain.ReceiptTimeout,
		forcePolling,
		cfg.Blockchain.MaxReconnects,
		cfg.Blockchain.PollingInterval,
		contractLog,
	)

	var store marketplace.WorkflowStore
	if cfg.Store.PostgresURL != "" {
		pgStore, err := workflows.NewPostgresStore(ctx, cfg.Store.PostgresURL)
		if err != nil {
			return err
		}
		defer pgStore.Close()
		store = pgStore
		log.Info("listing workflows are persisted in postgres")
	} else {
		store = workflows.NewMemoryStore()
		log.Warn("listing workflows are kept in memory and will be lost on restart")
	}

	var pub marketplace.Publisher
	if brokers := cfg.KafkaBrokers(); len(brokers) > 0 {
		kafkaPub := publisher.NewKafkaPublisher(brokers, cfg.Kafka.Topic, log.Named("KAFKA"))
		defer func() {
			if err := kafkaPub.Close(); err != nil {
				log.Warnf("cannot close kafka writer: %s", err)
			}
		}()
		pub = kafkaPub
	}

	cache := marketplace.NewQueryCache(cfg.Marketplace.CacheTTL)
	feed := marketplace.NewEventFeed(cfg.Marketplace.EventFeedSize)
	service := marketplace.NewService(marketplaceEth, cache, cfg.Marketplace.MaxBidsScan, log.Named("SERVICE"))
	listing := marketplace.NewListingWorkflow(marketplaceEth, store, cache, log.Named("WORKFLOW"))
	reconciler := marketplace.NewReconciler(marketplaceEth, cache, feed, pub, contractLog.Named("RECONCILER"))

	publicUrl, err := url.Parse(cfg.Web.PublicUrl)
	if err != nil {
		return err
	}

	handl := httphandlers.NewHTTPHandler(service, listing, feed, cache, reconciler, &cfg, publicUrl, cfg.CORSOrigins(), httpLog)
	server := &http.Server{
		Addr:              cfg.Web.Address,
		Handler:           handl,
		ReadHeaderTimeout: 10 * time.Second,
	}

	reconcilerTask := lib.NewTask("reconciler", reconciler)
	reconcilerTask.Start(ctx)

	serverErr := make(chan error, 1)
	go func() {
		log.Infof("http server is listening: %s", cfg.Web.Address)
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case <-ctx.Done():
		err = ctx.Err()
	case <-reconcilerTask.Done():
		err = reconcilerTask.Err()
		log.Errorf("reconciler exited: %s", err)
	case err = <-serverErr:
		if err != nil {
			log.Errorf("http server exited: %s", err)
		}
	}
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if shutdownErr := server.Shutdown(shutdownCtx); shutdownErr != nil {
		log.Warnf("http server shutdown: %s", shutdownErr)
	}
	<-reconcilerTask.Stop()

	log.Infof("App exited due to %s", err)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
