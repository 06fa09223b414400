package model

// ================ Config ================

type AgentModelConfig struct {
	Model       string  `envconfig:"AGENT_MODEL" default:"gemini-2.5-flash"`
	MaxTokens   int     `envconfig:"AGENT_MAX_TOKENS" default:"2000"`
	Temperature float32 `envconfig:"AGENT_TEMPERATURE" default:"0.4"`
}

type SessionConfig struct {
	// RunTimeout bounds the wall-clock time of one streaming run.
	RunTimeout string `envconfig:"SESSION_RUN_TIMEOUT" default:"120s"`
	// MaxStageSteps caps stage executions per run so the machine
	// terminates even under adversarial model output.
	MaxStageSteps int `envconfig:"SESSION_MAX_STAGE_STEPS" default:"100"`
}

type TranscriptConfig struct {
	// TTL for per-conversation transcripts kept in Redis. Transcripts are
	// an audit surface only; the state machine never reads them.
	TTL string `envconfig:"TRANSCRIPT_TTL" default:"24h"`
}

type ServerConfig struct {
	Addr          string `envconfig:"SERVER_ADDR" default:":8000"`
	AllowedOrigin string `envconfig:"SERVER_ALLOWED_ORIGIN" default:"*"`
}
