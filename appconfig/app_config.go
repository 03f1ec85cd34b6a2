package appconfig

import (
	"github.com/SaiNageswarS/go-api-boot/config"
)

type AppConfig struct {
	config.BootConfig `ini:",extends"`

	MongoURI   string `env:"MONGO-URI" ini:"mongo_uri"`
	SqlitePath string `env:"SQLITE-PATH" ini:"sqlite_path"`

	HTTPPort       string `env:"HTTP-PORT" ini:"http_port"`
	AllowedOrigins string `env:"ALLOWED-ORIGINS" ini:"allowed_origins"`

	LLMProvider string `env:"LLM-PROVIDER" ini:"llm_provider"` // groq | anthropic
	LLMModel    string `env:"LLM-MODEL" ini:"llm_model"`

	TemporalHostPort  string `env:"TEMPORAL-HOST-PORT" ini:"temporal_host_port"`
	TemporalTaskQueue string `env:"TEMPORAL-TASK-QUEUE" ini:"temporal_task_queue"`
}
