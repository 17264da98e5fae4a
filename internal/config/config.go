package config

import (
	"strings"
	"time"
)

const DefaultContractAddress = "0x5FbDB2315678afecb367f032d93F642f64180aa3"

// Validation tags described here: https://pkg.go.dev/github.com/go-playground/validator/v10
type Config struct {
	Blockchain struct {
		EthNodeAddress   string        `env:"ETH_NODE_ADDRESS"      flag:"eth-node-address"      validate:"required,url"`
		UseSubscriptions bool          `env:"ETH_USE_SUBSCRIPTIONS" flag:"eth-use-subscriptions"                                  desc:"use websocket subscriptions for contract events"`
		PollingInterval  time.Duration `env:"ETH_POLLING_INTERVAL"  flag:"eth-polling-interval"  validate:"omitempty,duration"    desc:"interval between polling for contract events"`
		MaxReconnects    int           `env:"ETH_MAX_RECONNECTS"    flag:"eth-max-reconnects"    validate:"omitempty,number"      desc:"maximum number of reconnect attempts"`
		EthLegacyTx      bool          `env:"ETH_NODE_LEGACY_TX"    flag:"eth-node-legacy-tx"                                     desc:"use it to disable EIP-1559 transactions"`
		ReceiptTimeout   time.Duration `env:"ETH_RECEIPT_TIMEOUT"   flag:"eth-receipt-timeout"   validate:"omitempty,duration"    desc:"how long to wait for a transaction to be mined"`
	}
	Environment string `env:"ENVIRONMENT" flag:"environment"`
	Marketplace struct {
		ContractAddress  string        `env:"MARKETPLACE_ADDRESS"       flag:"marketplace-address"        validate:"required,eth_addr"`
		Mnemonic         string        `env:"WALLET_MNEMONIC"           flag:"wallet-mnemonic"            validate:"required_without=WalletPrivateKey"`
		AccountIndex     int           `env:"WALLET_ACCOUNT_INDEX"      flag:"wallet-account-index"       validate:"omitempty,min=0"`
		WalletPrivateKey string        `env:"WALLET_PRIVATE_KEY"        flag:"wallet-private-key"         validate:"required_without=Mnemonic"`
		MaxBidsScan      int           `env:"MARKETPLACE_MAX_BIDS_SCAN" flag:"marketplace-max-bids-scan"  validate:"omitempty,min=1"        desc:"upper bound of bids read per property"`
		CacheTTL         time.Duration `env:"MARKETPLACE_CACHE_TTL"     flag:"marketplace-cache-ttl"      validate:"omitempty,duration"     desc:"how long read queries are served from cache"`
		EventFeedSize    int           `env:"MARKETPLACE_EVENT_FEED"    flag:"marketplace-event-feed"     validate:"omitempty,min=1"        desc:"number of recent contract events kept in memory"`
	}
	Kafka struct {
		Brokers string `env:"KAFKA_BROKERS" flag:"kafka-brokers" desc:"comma separated broker list, disables publishing if empty"`
		Topic   string `env:"KAFKA_TOPIC"   flag:"kafka-topic"   validate:"required_with=Brokers"`
	}
	Store struct {
		PostgresURL string `env:"STORE_POSTGRES_URL" flag:"store-postgres-url" validate:"omitempty,url" desc:"persists listing workflows, in-memory store is used if empty"`
	}
	Log struct {
		Color         bool   `env:"LOG_COLOR"          flag:"log-color"`
		FolderPath    string `env:"LOG_FOLDER_PATH"    flag:"log-folder-path"    validate:"omitempty,dirpath"                                desc:"enables file logging and sets the folder path"`
		IsProd        bool   `env:"LOG_IS_PROD"        flag:"log-is-prod"                                                                    desc:"affects the format of the log output"`
		JSON          bool   `env:"LOG_JSON"           flag:"log-json"`
		LevelApp      string `env:"LOG_LEVEL_APP"      flag:"log-level-app"      validate:"omitempty,oneof=debug info warn error dpanic panic fatal"`
		LevelContract string `env:"LOG_LEVEL_CONTRACT" flag:"log-level-contract" validate:"omitempty,oneof=debug info warn error dpanic panic fatal"`
		LevelHTTP     string `env:"LOG_LEVEL_HTTP"     flag:"log-level-http"     validate:"omitempty,oneof=debug info warn error dpanic panic fatal"`
	}
	Web struct {
		Address     string `env:"WEB_ADDRESS"      flag:"web-address"      validate:"required,hostname_port" desc:"http server address host:port"`
		PublicUrl   string `env:"WEB_PUBLIC_URL"   flag:"web-public-url"   validate:"omitempty,url"          desc:"public url of the service, falls back to web-address if empty"`
		CORSOrigins string `env:"WEB_CORS_ORIGINS" flag:"web-cors-origins"                                   desc:"comma separated list of allowed origins, * allows all"`
	}
}

func (cfg *Config) SetDefaults() {
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}

	// Blockchain
	if cfg.Blockchain.MaxReconnects == 0 {
		cfg.Blockchain.MaxReconnects = 30
	}
	if cfg.Blockchain.PollingInterval == 0 {
		cfg.Blockchain.PollingInterval = 10 * time.Second
	}
	if cfg.Blockchain.ReceiptTimeout == 0 {
		cfg.Blockchain.ReceiptTimeout = 2 * time.Minute
	}

	// Marketplace
	if cfg.Marketplace.ContractAddress == "" {
		cfg.Marketplace.ContractAddress = DefaultContractAddress
	}
	cfg.Marketplace.WalletPrivateKey = strings.TrimPrefix(cfg.Marketplace.WalletPrivateKey, "0x")
	if cfg.Marketplace.MaxBidsScan == 0 {
		cfg.Marketplace.MaxBidsScan = 100
	}
	if cfg.Marketplace.CacheTTL == 0 {
		cfg.Marketplace.CacheTTL = 30 * time.Second
	}
	if cfg.Marketplace.EventFeedSize == 0 {
		cfg.Marketplace.EventFeedSize = 256
	}

	// Log
	if cfg.Log.LevelApp == "" {
		cfg.Log.LevelApp = "debug"
	}
	if cfg.Log.LevelContract == "" {
		cfg.Log.LevelContract = "debug"
	}
	if cfg.Log.LevelHTTP == "" {
		cfg.Log.LevelHTTP = "info"
	}

	// Web
	if cfg.Web.Address == "" {
		cfg.Web.Address = "0.0.0.0:8080"
	}
	if cfg.Web.PublicUrl == "" {
		cfg.Web.PublicUrl = "http://" + cfg.Web.Address
	}
}

// KafkaBrokers splits the broker list, empty means publishing is disabled
func (cfg *Config) KafkaBrokers() []string {
	return splitList(cfg.Kafka.Brokers)
}

func (cfg *Config) CORSOrigins() []string {
	return splitList(cfg.Web.CORSOrigins)
}

func splitList(s string) []string {
	var res []string
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			res = append(res, item)
		}
	}
	return res
}

// GetSanitized returns a copy of the config with sensitive data removed
// explicitly adding each field here to avoid accidentally leaking sensitive data
func (cfg *Config) GetSanitized() interface{} {
	publicCfg := Config{}

	publicCfg.Blockchain.UseSubscriptions = cfg.Blockchain.UseSubscriptions
	publicCfg.Blockchain.PollingInterval = cfg.Blockchain.PollingInterval
	publicCfg.Blockchain.MaxReconnects = cfg.Blockchain.MaxReconnects
	publicCfg.Blockchain.EthLegacyTx = cfg.Blockchain.EthLegacyTx
	publicCfg.Blockchain.ReceiptTimeout = cfg.Blockchain.ReceiptTimeout
	publicCfg.Environment = cfg.Environment

	publicCfg.Marketplace.ContractAddress = cfg.Marketplace.ContractAddress
	publicCfg.Marketplace.AccountIndex = cfg.Marketplace.AccountIndex
	publicCfg.Marketplace.MaxBidsScan = cfg.Marketplace.MaxBidsScan
	publicCfg.Marketplace.CacheTTL = cfg.Marketplace.CacheTTL
	publicCfg.Marketplace.EventFeedSize = cfg.Marketplace.EventFeedSize

	publicCfg.Kafka.Brokers = cfg.Kafka.Brokers
	publicCfg.Kafka.Topic = cfg.Kafka.Topic

	publicCfg.Log.Color = cfg.Log.Color
	publicCfg.Log.FolderPath = cfg.Log.FolderPath
	publicCfg.Log.IsProd = cfg.Log.IsProd
	publicCfg.Log.JSON = cfg.Log.JSON
	publicCfg.Log.LevelApp = cfg.Log.LevelApp
	publicCfg.Log.LevelContract = cfg.Log.LevelContract
	publicCfg.Log.LevelHTTP = cfg.Log.LevelHTTP

	publicCfg.Web.Address = cfg.Web.Address
	publicCfg.Web.PublicUrl = cfg.Web.PublicUrl
	publicCfg.Web.CORSOrigins = cfg.Web.CORSOrigins

	return publicCfg
}
