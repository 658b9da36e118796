package internal

import (
	"fmt"
	"strings"
	"time"
)

type Config struct {
	Host     string `env:"HOST,default=0.0.0.0"`
	Port     int    `env:"PORT,default=5000"`
	LogLevel string `env:"LOG_LEVEL,default=INFO"`

	BadgerFilepath string `env:"BADGER_FILEPATH,default=./data/badger"`
	BadgerInMemory bool   `env:"BADGER_IN_MEMORY,default=false"`

	JWTSecret string `env:"JWT_SECRET,required=true"`
	JWTIssuer string `env:"JWT_ISSUER"`

	// FrontendOrigin is a comma separated list of allowed browser origins.
	FrontendOrigin string `env:"FRONTEND_ORIGIN,default=http://localhost:4200"`
	DevMode        bool   `env:"DEV_MODE,default=false"`

	HandshakeTimeout time.Duration `env:"HANDSHAKE_TIMEOUT,default=5s"`
	SinkTimeout      time.Duration `env:"SINK_TIMEOUT,default=2s"`
	RestartInterval  time.Duration `env:"RESTART_INTERVAL,default=1s"`
	ShutdownTimeout  time.Duration `env:"SHUTDOWN_TIMEOUT,default=10s"`

	MembershipQueueSize     int           `env:"MEMBERSHIP_QUEUE_SIZE,default=1024"`
	MembershipRetryInterval time.Duration `env:"MEMBERSHIP_RETRY_INTERVAL,default=500ms"`
	MembershipMaxAttempts   int           `env:"MEMBERSHIP_MAX_ATTEMPTS,default=5"`
	MetricInterval          time.Duration `env:"METRIC_INTERVAL,default=30s"`
	LowCapacityThreshold    int           `env:"LOW_CAPACITY_THRESHOLD,default=64"`
	RoomListConcurrency     int           `env:"ROOM_LIST_CONCURRENCY,default=8"`
	MaxContentLength        int           `env:"MAX_CONTENT_LENGTH,default=2000"`

	CensoredWordsDir string `env:"CENSORED_WORDS_DIR"`
	CharReplacement  string `env:"CHARACTER_REPLACEMENT,default=*"`

	// GRPCHealthPort at zero disables the gRPC health endpoint.
	GRPCHealthPort int `env:"GRPC_HEALTH_PORT,default=0"`
}

func (c Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func (c Config) FrontendOrigins() []string {
	return strings.Split(c.FrontendOrigin, ",")
}

func CharacterRune(str string) (rune, error) {
	r := []rune(str)
	if len(r) != 1 {
		return 0, fmt.Errorf(
			"CHARACTER_REPLACEMENT must be a single character, got %q",
			str,
		)
	}
	return r[0], nil
}
