package config

import "testing"

func validConfig() Config {
	return Config{
		HTTP:     HTTPConfig{Port: 8080},
		Database: DatabaseConfig{Addrs: []string{"localhost:6379"}},
		LLM:      LLMConfig{Model: "gpt-4o-mini"},
		Embedding: EmbeddingConfig{
			Model:      "bge-m3",
			Dimensions: 1024,
		},
	}
}

func TestValidate_OK(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_InvalidPort(t *testing.T) {
	cfg := validConfig()
	cfg.HTTP.Port = 0

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_MissingAddrs(t *testing.T) {
	cfg := validConfig()
	cfg.Database.Addrs = nil

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing database addrs")
	}
}

func TestValidate_MissingModels(t *testing.T) {
	cfg := validConfig()
	cfg.LLM.Model = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing llm model")
	}

	cfg = validConfig()
	cfg.Embedding.Model = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing embedding model")
	}
}

func TestValidate_ThresholdAboveOne(t *testing.T) {
	cfg := validConfig()
	cfg.Retrieval.SimilarityThreshold = 1.0

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for threshold >= 1")
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("expected ReadTimeoutSec=10, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.ShutdownSec != 10 {
		t.Errorf("expected ShutdownSec=10, got %d", cfg.HTTP.ShutdownSec)
	}
	if cfg.Database.ReadinessTimeout != 10 {
		t.Errorf("expected ReadinessTimeout=10, got %d", cfg.Database.ReadinessTimeout)
	}
	if cfg.Retrieval.SimilarityThreshold != 0.5 {
		t.Errorf("expected SimilarityThreshold=0.5, got %g", cfg.Retrieval.SimilarityThreshold)
	}
	if cfg.Retrieval.Limit != 5 {
		t.Errorf("expected Limit=5, got %d", cfg.Retrieval.Limit)
	}
	if cfg.Embedding.Dimensions != 1024 {
		t.Errorf("expected Dimensions=1024, got %d", cfg.Embedding.Dimensions)
	}
	if cfg.LLM.Temperature != 0.1 {
		t.Errorf("expected Temperature=0.1, got %g", cfg.LLM.Temperature)
	}
	if cfg.Retrieval.HNSWM != 32 {
		t.Errorf("expected HNSWM=32, got %d", cfg.Retrieval.HNSWM)
	}
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := Config{
		Retrieval: RetrievalConfig{SimilarityThreshold: 0.6, Limit: 10},
	}
	cfg.ApplyDefaults()

	if cfg.Retrieval.SimilarityThreshold != 0.6 {
		t.Errorf("explicit threshold overwritten: %g", cfg.Retrieval.SimilarityThreshold)
	}
	if cfg.Retrieval.Limit != 10 {
		t.Errorf("explicit limit overwritten: %d", cfg.Retrieval.Limit)
	}
}

func TestEmbeddingVersion(t *testing.T) {
	cfg := validConfig()
	cfg.ApplyDefaults()

	want := "openai/bge-m3@1024"
	if got := cfg.EmbeddingVersion(); got != want {
		t.Errorf("EmbeddingVersion() = %q, expected %q", got, want)
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("CASEDEX_TEST_KEY", "secret")

	got := string(expandEnvVars([]byte("api_key: ${CASEDEX_TEST_KEY}")))
	if got != "api_key: secret" {
		t.Errorf("unexpected expansion: %q", got)
	}

	got = string(expandEnvVars([]byte("addr: ${CASEDEX_UNSET:-localhost:6379}")))
	if got != "addr: localhost:6379" {
		t.Errorf("unexpected default expansion: %q", got)
	}
}
