package config

type Config struct {
	Environment Environment
	Log         Log
	HTTP        HTTPServer
	DatabaseURL string `env:"DATABASE_URL" envDefault:"storefront.db"`

	Payment Payment `envPrefix:"PAYMENT_"`
	Bank    Bank    `envPrefix:"BANK_"`
}

type Payment struct {
	// shared secret the SMS relay posts as POSTKEY; the default is for
	// local development only, production must override it
	WebhookKey string `env:"WEBHOOK_KEY" envDefault:"789456123"`
	// minimum checkout total in whole MNT
	MinimumOrderAmount int64 `env:"MINIMUM_ORDER_AMOUNT" envDefault:"200000"`
}

type Bank struct {
	// known aliases of the bank SMS sender, matched case-insensitively
	ValidSenders []string `env:"VALID_SENDERS" envSeparator:"," envDefault:"khaan bank,khaanbank,khan bank,хаан банк,95197775,+97695197775"`

	AccountBankName   string `env:"ACCOUNT_BANK_NAME" envDefault:"Хаан банк"`
	AccountNumber     string `env:"ACCOUNT_NUMBER" envDefault:"06000 5021296757"`
	AccountHolderName string `env:"ACCOUNT_HOLDER_NAME" envDefault:"ДОЛЦОН МӨНХЧИМЭГ"`
}

type Environment struct {
	Name string `env:"ENVIRONMENT" envDefault:"development"`
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type HTTPServer struct {
	Host string `env:"HTTP_HOST" envDefault:"0.0.0.0"`
	Port string `env:"HTTP_PORT" envDefault:"8080"`
}
