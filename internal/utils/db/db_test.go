package db

import (
	"context"
	"testing"

	"github.com/KromaEnergia/api-faturamento/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCredentials(t *testing.T) {
	u, p, err := parseCredentials(`{"username":"app","password":"x"}`)
	require.NoError(t, err)
	assert.Equal(t, "app", u)
	assert.Equal(t, "x", p)

	_, _, err = parseCredentials(`{"username":"app"}`)
	assert.Error(t, err)
	_, _, err = parseCredentials(`nope`)
	assert.Error(t, err)
}

func TestRetrieveCredentialsPrefersEnvironment(t *testing.T) {
	u, p, err := retrieveCredentials(context.Background(), &config.Config{DBUser: "a", DBPassword: "b", DBSecretID: "ignorado"})
	require.NoError(t, err)
	assert.Equal(t, "a", u)
	assert.Equal(t, "b", p)

	_, _, err = retrieveCredentials(context.Background(), &config.Config{})
	assert.Error(t, err)
}
