package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestReadPassword(t *testing.T) {
	p, err := readPassword(strings.NewReader("ignored\n"), []string{"from-arg"})
	require.NoError(t, err)
	assert.Equal(t, "from-arg", p)

	p, err = readPassword(strings.NewReader("Kustom-2025\r\nrest"), nil)
	require.NoError(t, err)
	assert.Equal(t, "Kustom-2025", p)

	p, err = readPassword(strings.NewReader("no-newline"), nil)
	require.NoError(t, err)
	assert.Equal(t, "no-newline", p)

	_, err = readPassword(strings.NewReader(""), nil)
	assert.Error(t, err)
}

func TestHashPasswordCommand(t *testing.T) {
	var out bytes.Buffer
	hashPasswordCmd.SetOut(&out)
	hashPasswordCmd.SetIn(strings.NewReader("Kustom-2025\n"))
	t.Cleanup(func() { allowWeakPassword = false })

	require.NoError(t, hashPasswordCmd.RunE(hashPasswordCmd, nil))
	hash := strings.TrimSpace(out.String())
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("Kustom-2025")))

	assert.Error(t, hashPasswordCmd.RunE(hashPasswordCmd, []string{"weak"}))

	allowWeakPassword = true
	out.Reset()
	require.NoError(t, hashPasswordCmd.RunE(hashPasswordCmd, []string{"weak"}))
	assert.NotEmpty(t, strings.TrimSpace(out.String()))
}
