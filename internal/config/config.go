package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/rocketscienceinc/minesweeper-backend/internal/entity"
)

type Config struct {
	LogLevel   string   `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort   string   `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	SocketPort string   `yaml:"socket-port" env:"SOCKET_PORT" env-default:"9091"`
	Redis      Redis    `yaml:"redis"`
	Game       Game     `yaml:"game"`
	Baseline   Baseline `yaml:"baseline"`
}

// Redis is only used to broadcast game events, game state stays in memory.
type Redis struct {
	Enabled bool   `yaml:"enabled" env:"REDIS_ENABLED" env-default:"false"`
	Host    string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port    string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
	Channel string `yaml:"channel" env:"REDIS_CHANNEL" env-default:"minesweeper:events"`
}

// Game holds the defaults for setup parameters the caller leaves out, and the
// largest board a caller may ask for.
type Game struct {
	Rows     int `yaml:"rows" env-default:"9"`
	Cols     int `yaml:"cols" env-default:"9"`
	NumMines int `yaml:"num-mines" env-default:"10"`
	MaxCells int `yaml:"max-cells" env:"GAME_MAX_CELLS" env-default:"10000"`
}

type Baseline struct {
	DefaultRuns int `yaml:"default-runs" env-default:"10000"`
	MaxRuns     int `yaml:"max-runs" env-default:"200000"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

func Load(path string) (*Config, error) {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	return config, nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}

// GameConfig returns the configured default board without a seed.
func (that *Game) GameConfig() entity.GameConfig {
	return entity.GameConfig{
		Rows:     that.Rows,
		Cols:     that.Cols,
		NumMines: that.NumMines,
	}
}
