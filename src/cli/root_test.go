package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Quiznator-Backend/src/utils"
)

func TestRootRegistersCommands(t *testing.T) {
	cmd := newRootCmd()

	var names []string
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	assert.Subset(t, names, []string{"serve", "worker", "clone", "resume-clones", "token"})
}

func TestTokenSign(t *testing.T) {
	t.Setenv("JWT_SECRET", "cli-secret")
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"token", "sign", "--user", "u1", "--role", "admin"})

	require.NoError(t, cmd.Execute())

	claims, err := utils.ParseJWT(strings.TrimSpace(out.String()), "cli-secret")
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "admin", claims.Role)
}

func TestCloneRejectsBadOwner(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"clone", "--owner", "nope", "--tags", "a"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--owner")
}
