package logic_test

import (
	"bytes"
	"fmt"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idelchi/arxbench/internal/config"
	"github.com/idelchi/arxbench/internal/encryption"
	"github.com/idelchi/arxbench/internal/logic"
)

func quietConfig(text ...string) *config.Config {
	cfg := config.New()
	cfg.Quiet = true
	cfg.Text = text

	return cfg
}

func outputLines(buf *bytes.Buffer) []string {
	return strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	t.Parallel()

	texts := []string{"hello", "(1 + 2) * 3", "exactly16bytes!!", "a longer message spanning several blocks"}

	var encrypted bytes.Buffer
	require.NoError(t, logic.Encrypt(quietConfig(texts...), &encrypted))

	ciphertexts := outputLines(&encrypted)
	require.Len(t, ciphertexts, len(texts))

	for i, ct := range ciphertexts {
		assert.Len(t, ct, 2*encryption.CiphertextLen(encryption.PaddedLen(len(texts[i]))), texts[i])
	}

	var decrypted bytes.Buffer
	require.NoError(t, logic.Decrypt(quietConfig(ciphertexts...), &decrypted))

	assert.Equal(t, texts, outputLines(&decrypted))
}

func TestEncryptParallel(t *testing.T) {
	t.Parallel()

	texts := make([]string, 20)
	for i := range texts {
		texts[i] = fmt.Sprintf("message %02d", i)
	}

	cfg := quietConfig(texts...)
	cfg.Parallel = 4

	var encrypted bytes.Buffer
	require.NoError(t, logic.Encrypt(cfg, &encrypted))

	cfg = quietConfig(outputLines(&encrypted)...)
	cfg.Parallel = 4

	var decrypted bytes.Buffer
	require.NoError(t, logic.Decrypt(cfg, &decrypted))

	got := outputLines(&decrypted)
	slices.Sort(got)
	assert.Equal(t, texts, got)
}

func TestEncryptWithKey(t *testing.T) {
	t.Parallel()

	cfg := quietConfig("hello")
	cfg.Key = "ffeeddccbbaa99887766554433221100"

	var encrypted bytes.Buffer
	require.NoError(t, logic.Encrypt(cfg, &encrypted))

	cfg.Text = outputLines(&encrypted)

	var decrypted bytes.Buffer
	require.NoError(t, logic.Decrypt(cfg, &decrypted))
	assert.Equal(t, "hello\n", decrypted.String())

	var other bytes.Buffer
	require.NoError(t, logic.Decrypt(quietConfig(cfg.Text...), &other))
	assert.NotEqual(t, "hello\n", other.String())
}

func TestDecryptErrors(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	err := logic.Decrypt(quietConfig("not hex"), &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoding hex")

	err = logic.Decrypt(quietConfig("00112233"), &out)
	require.ErrorIs(t, err, encryption.ErrShortCiphertext)
}

func TestDecryptStrict(t *testing.T) {
	t.Parallel()

	// A block-aligned message carries no padding block, so its last byte is text.
	var encrypted bytes.Buffer
	require.NoError(t, logic.Encrypt(quietConfig("ABCDEFGHIJKLMNOP"), &encrypted))

	var out bytes.Buffer
	require.NoError(t, logic.Decrypt(quietConfig(outputLines(&encrypted)...), &out))
	assert.Equal(t, "ABCDEFGHIJKLMNOP\n", out.String())

	cfg := quietConfig(outputLines(&encrypted)...)
	cfg.Strict = true

	err := logic.Decrypt(cfg, &bytes.Buffer{})
	require.ErrorIs(t, err, encryption.ErrInvalidPadding)
}

func TestInvalidKey(t *testing.T) {
	t.Parallel()

	cfg := quietConfig("hello")
	cfg.Key = "abc"

	require.Error(t, logic.Encrypt(cfg, &bytes.Buffer{}))
}
