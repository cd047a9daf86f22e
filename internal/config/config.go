package config

import (
	"os"
	"regexp"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server struct {
		Port         int           `yaml:"port" default:"8080"`
		Host         string        `yaml:"host" default:"0.0.0.0"`
		ReadTimeout  time.Duration `yaml:"read_timeout" default:"30s"`
		WriteTimeout time.Duration `yaml:"write_timeout" default:"30s"`
		RateLimit    float64       `yaml:"rate_limit" default:"60"` // requests per minute
	} `yaml:"server"`

	LLM struct {
		Provider string `yaml:"provider" default:"ollama"`
		Host     string `yaml:"host" default:"http://localhost:11434"`
		APIKey   string `yaml:"api_key"` // claude provider only

		// Phase 1 reasons over raw CV text, Phase 2 writes frontend code.
		// Models are loaded sequentially so only one working set is resident.
		BrainModel string `yaml:"brain_model" default:"deepseek-r1:7b"`
		CoderModel string `yaml:"coder_model" default:"qwen2.5-coder:14b"`

		AnalysisTemperature   float32       `yaml:"analysis_temperature" default:"0.3"`
		GenerationTemperature float32       `yaml:"generation_temperature" default:"0.2"`
		ContextWindow         int           `yaml:"context_window" default:"8192"`
		MaxTokens             int           `yaml:"max_tokens" default:"4096"`
		Timeout               time.Duration `yaml:"timeout" default:"600s"`
	} `yaml:"llm"`

	Output struct {
		Dir string `yaml:"dir" default:"outputs"`
	} `yaml:"output"`

	Logging struct {
		Level  string `yaml:"level" default:"info"`
		Format string `yaml:"format" default:"json"`
		Output string `yaml:"output" default:"stdout"`

		Adapters []struct {
			Name    string                 `yaml:"name"`
			Type    string                 `yaml:"type"`
			Enabled bool                   `yaml:"enabled"`
			Options map[string]interface{} `yaml:"options"`
		} `yaml:"adapters"`
	} `yaml:"logging"`
}

// expandEnvVars expands environment variables in a string using ${VAR} or $VAR syntax
func expandEnvVars(s string) string {
	// Expand ${VAR} syntax
	re := regexp.MustCompile(`\$\{([^}]+)\}`)
	s = re.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[2 : len(match)-1] // Remove ${ and }
		if val := os.Getenv(varName); val != "" {
			return val
		}
		return match // Return original if env var not found
	})

	// Expand $VAR syntax (but avoid replacing ${VAR} that was already processed)
	re2 := regexp.MustCompile(`\$([A-Za-z_][A-Za-z0-9_]*)`)
	s = re2.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[1:] // Remove $
		if val := os.Getenv(varName); val != "" {
			return val
		}
		return match // Return original if env var not found
	})

	return s
}

// LoadConfig loads configuration from file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	// Load .env file if it exists (ignore errors if file doesn't exist)
	_ = godotenv.Load()

	config := &Config{}

	// Set defaults
	config.Server.Port = 8080
	config.Server.Host = "0.0.0.0"
	config.Server.ReadTimeout = 30 * time.Second
	config.Server.WriteTimeout = 30 * time.Second
	config.Server.RateLimit = 60

	config.LLM.Provider = "ollama"
	config.LLM.Host = "http://localhost:11434"
	config.LLM.BrainModel = "deepseek-r1:7b"
	config.LLM.CoderModel = "qwen2.5-coder:14b"
	config.LLM.AnalysisTemperature = 0.3
	config.LLM.GenerationTemperature = 0.2
	config.LLM.ContextWindow = 8192
	config.LLM.MaxTokens = 4096
	config.LLM.Timeout = 600 * time.Second

	config.Output.Dir = "outputs"

	config.Logging.Level = "info"
	config.Logging.Format = "json"
	config.Logging.Output = "stdout"

	// Load from YAML file if it exists
	if configPath != "" {
		if data, err := os.ReadFile(configPath); err == nil {
			// Expand environment variables in the YAML content
			yamlContent := expandEnvVars(string(data))

			if err := yaml.Unmarshal([]byte(yamlContent), config); err != nil {
				return nil, err
			}
		}
	}

	// Override with environment variables
	config.loadFromEnv()

	return config, nil
}

// loadFromEnv loads configuration from environment variables
func (c *Config) loadFromEnv() {
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			c.Server.Port = p
		}
	}

	if host := os.Getenv("HOST"); host != "" {
		c.Server.Host = host
	}

	if provider := os.Getenv("LLM_PROVIDER"); provider != "" {
		c.LLM.Provider = provider
	}

	if ollamaHost := os.Getenv("OLLAMA_HOST"); ollamaHost != "" {
		c.LLM.Host = ollamaHost
	}

	if apiKey := os.Getenv("LLM_API_KEY"); apiKey != "" {
		c.LLM.APIKey = apiKey
	}

	if model := os.Getenv("BRAIN_MODEL"); model != "" {
		c.LLM.BrainModel = model
	}

	if model := os.Getenv("CODER_MODEL"); model != "" {
		c.LLM.CoderModel = model
	}

	if timeout := os.Getenv("LLM_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			c.LLM.Timeout = d
		}
	}

	if maxTokens := os.Getenv("LLM_MAX_TOKENS"); maxTokens != "" {
		if n, err := strconv.Atoi(maxTokens); err == nil {
			c.LLM.MaxTokens = n
		}
	}

	if contextWindow := os.Getenv("LLM_CONTEXT_WINDOW"); contextWindow != "" {
		if n, err := strconv.Atoi(contextWindow); err == nil {
			c.LLM.ContextWindow = n
		}
	}

	if outputDir := os.Getenv("OUTPUT_DIR"); outputDir != "" {
		c.Output.Dir = outputDir
	}

	if logLevel := os.Getenv("LOG_LEVEL"); logLevel != "" {
		c.Logging.Level = logLevel
	}

	if logFormat := os.Getenv("LOG_FORMAT"); logFormat != "" {
		c.Logging.Format = logFormat
	}
}
