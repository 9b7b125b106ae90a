package clientconfig

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild(t *testing.T) {
	tests := []struct {
		name    string
		builder Builder[BaseURLSet, TimeoutSet]
		want    Configuration
	}{
		{
			name:    "url then timeout",
			builder: WithTimeout(WithBaseURL(NewBuilder(), "https://api.example.com"), 10*time.Second),
			want:    Configuration{BaseURL: "https://api.example.com", Timeout: 10 * time.Second},
		},
		{
			name:    "timeout then url",
			builder: WithBaseURL(WithTimeout(NewBuilder(), time.Second), "http://localhost"),
			want:    Configuration{BaseURL: "http://localhost", Timeout: time.Second},
		},
		{
			name:    "logging set first",
			builder: WithTimeout(WithBaseURL(NewBuilder().WithLogging(true), "http://a"), time.Minute),
			want:    Configuration{BaseURL: "http://a", Timeout: time.Minute, EnableLogging: true},
		},
		{
			name:    "logging set last",
			builder: WithTimeout(WithBaseURL(NewBuilder(), "http://a"), time.Minute).WithLogging(true),
			want:    Configuration{BaseURL: "http://a", Timeout: time.Minute, EnableLogging: true},
		},
		{
			name:    "url overwritten",
			builder: WithBaseURL(WithTimeout(WithBaseURL(NewBuilder(), "http://old"), time.Second), "http://new"),
			want:    Configuration{BaseURL: "http://new", Timeout: time.Second},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Build(tt.builder))
		})
	}
}

func TestBuilder_StepsDoNotShareState(t *testing.T) {
	base := WithBaseURL(NewBuilder(), "http://a")
	short := WithTimeout(base, time.Second)
	long := WithTimeout(base, time.Hour).WithLogging(true)

	assert.Equal(t, time.Second, Build(short).Timeout)
	assert.False(t, Build(short).EnableLogging)
	assert.Equal(t, time.Hour, Build(long).Timeout)
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://api.example.com")
	t.Setenv("API_TIMEOUT", "5s")
	t.Setenv("API_LOGGING", "true")

	cfg, err := LoadEnv("api")
	require.NoError(t, err)
	assert.Equal(t, Configuration{
		BaseURL:       "https://api.example.com",
		Timeout:       5 * time.Second,
		EnableLogging: true,
	}, cfg)
}

func TestLoadEnv_LoggingDefault(t *testing.T) {
	t.Setenv("SVC_BASE_URL", "http://localhost:8080")
	t.Setenv("SVC_TIMEOUT", "250ms")

	cfg, err := LoadEnv("SVC")
	require.NoError(t, err)
	assert.False(t, cfg.EnableLogging)
	assert.Equal(t, 250*time.Millisecond, cfg.Timeout)
}

func TestLoadEnv_Errors(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "missing base url",
			env:     map[string]string{"CFGTEST_TIMEOUT": "1s"},
			wantErr: "missing required setting CFGTEST_BASE_URL",
		},
		{
			name:    "missing timeout",
			env:     map[string]string{"CFGTEST_BASE_URL": "http://a"},
			wantErr: "missing required setting CFGTEST_TIMEOUT",
		},
		{
			name:    "unparseable timeout",
			env:     map[string]string{"CFGTEST_BASE_URL": "http://a", "CFGTEST_TIMEOUT": "soon"},
			wantErr: `invalid CFGTEST_TIMEOUT "soon"`,
		},
		{
			name:    "zero timeout",
			env:     map[string]string{"CFGTEST_BASE_URL": "http://a", "CFGTEST_TIMEOUT": "0s"},
			wantErr: "must be a positive duration",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := LoadEnv("cfgtest")
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
